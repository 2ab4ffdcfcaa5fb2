package effects

import (
	"fmt"

	"stellareffects/internal/amount"
)

// trustlineAuthorized is the trustline flag granting full authorization.
const trustlineAuthorized uint32 = 1

// opHandler emits the operation-specific effects for one operation kind.
type opHandler func(ng *Engine) error

// opHandlers maps operation kinds to their handlers. Kinds absent from the
// table deliberately produce no operation-specific effects; their ledger
// changes are still classified.
var opHandlers = map[OpType]opHandler{
	OpPayment:                  tradeHandler,
	OpPathPaymentStrictReceive: tradeHandler,
	OpPathPaymentStrictSend:    tradeHandler,
	OpManageSellOffer:          tradeHandler,
	OpManageBuyOffer:           tradeHandler,
	OpCreatePassiveSellOffer:   tradeHandler,
	OpSetOptions:               setOptionsHandler,
	OpBumpSequence:             bumpSequenceHandler,
	OpAllowTrust:               trustFlagsHandler,
	OpSetTrustLineFlags:        trustFlagsHandler,
	OpLiquidityPoolDeposit:     liquidityPoolDepositHandler,
	OpLiquidityPoolWithdraw:    liquidityPoolWithdrawHandler,
	OpInvokeHostFunction:       invokeHostFunctionHandler,
}

// tradeHandler emits one trade effect per offer claimed against the order
// book or a pool during a DEX-crossing operation.
func tradeHandler(ng *Engine) error {
	if ng.result == nil {
		return nil
	}
	for _, claim := range ng.result.ClaimedOffers {
		if amount.IsZero(claim.SoldAmount) && amount.IsZero(claim.BoughtAmount) {
			continue
		}
		ng.append(Effect{
			Type:    EffectTrade,
			Seller:  claim.Seller,
			OfferID: claim.OfferID,
			Pool:    claim.Pool,
			Assets: []AssetAmount{
				{Asset: claim.SoldAsset, Amount: claim.SoldAmount},
				{Asset: claim.BoughtAsset, Amount: claim.BoughtAmount},
			},
		})
	}
	return nil
}

// setOptionsHandler diffs the source account's configuration fields and
// emits one effect per changed option. Balance and signer changes are left
// to the change classifier.
func setOptionsHandler(ng *Engine) error {
	c := ng.findAccountChange(ng.op.Source, ActionUpdated)
	if c == nil {
		return nil
	}
	b, a := c.Before.Account, c.After.Account

	if b.HomeDomain != a.HomeDomain {
		ng.append(Effect{
			Type:       EffectAccountHomeDomainUpdated,
			Source:     a.Address,
			HomeDomain: a.HomeDomain,
		})
	}
	if b.Thresholds != a.Thresholds {
		t := a.Thresholds
		ng.append(Effect{
			Type:       EffectAccountThresholdsUpdated,
			Source:     a.Address,
			Thresholds: &t,
		})
	}
	if b.Flags != a.Flags {
		flags, prev := a.Flags, b.Flags
		ng.append(Effect{
			Type:      EffectAccountFlagsUpdated,
			Source:    a.Address,
			Flags:     &flags,
			PrevFlags: &prev,
		})
	}
	if b.InflationDest != a.InflationDest {
		ng.append(Effect{
			Type:          EffectAccountInflationDestUpdated,
			Source:        a.Address,
			InflationDest: a.InflationDest,
		})
	}
	return nil
}

func bumpSequenceHandler(ng *Engine) error {
	c := ng.findAccountChange(ng.op.Source, ActionUpdated)
	if c == nil {
		return nil
	}
	b, a := c.Before.Account, c.After.Account
	if b.Sequence == a.Sequence {
		return nil
	}
	ng.append(Effect{
		Type:     EffectSequenceBumped,
		Source:   a.Address,
		Sequence: a.Sequence,
	})
	return nil
}

// trustFlagsHandler diffs the trustor's trustline flags and, when
// authorization was revoked on a pool-share trustline, surfaces the
// implied liquidity pool withdrawals.
func trustFlagsHandler(ng *Engine) error {
	revoked := false
	for i := range ng.changes {
		c := &ng.changes[i]
		if c.Kind != EntryTrustline || c.Action != ActionUpdated {
			continue
		}
		b, a := c.Before.Trustline, c.After.Trustline
		if a.Account != ng.op.Trustor || b.Flags == a.Flags {
			continue
		}
		flags, prev := a.Flags, b.Flags
		ng.append(Effect{
			Type:      EffectTrustlineAuthorizationUpdated,
			Trustor:   a.Account,
			Asset:     a.Asset,
			Flags:     &flags,
			PrevFlags: &prev,
		})
		if prev&trustlineAuthorized != 0 && a.Flags&trustlineAuthorized == 0 {
			revoked = true
		}
	}
	if !revoked {
		return nil
	}

	// Revoking authorization on a pool-share trustline forces the pool to
	// pay the trustor out; the reserve deltas imply the withdrawals.
	for i := range ng.changes {
		c := &ng.changes[i]
		if c.Kind != EntryLiquidityPool || c.Action == ActionCreated {
			continue
		}
		if err := ng.poolDelta(c, EffectLiquidityPoolWithdrew, ng.op.Trustor); err != nil {
			return err
		}
	}
	return nil
}

func liquidityPoolDepositHandler(ng *Engine) error {
	return ng.poolOperation(EffectLiquidityPoolDeposited)
}

func liquidityPoolWithdrawHandler(ng *Engine) error {
	return ng.poolOperation(EffectLiquidityPoolWithdrew)
}

func (ng *Engine) poolOperation(t EffectType) error {
	for i := range ng.changes {
		c := &ng.changes[i]
		if c.Kind != EntryLiquidityPool || c.Action == ActionCreated {
			continue
		}
		if ng.op.PoolID != "" && c.state().LiquidityPool.PoolID != ng.op.PoolID {
			continue
		}
		if err := ng.poolDelta(c, t, ""); err != nil {
			return err
		}
	}
	return nil
}

// poolDelta emits a deposited/withdrew effect from the exact per-index
// reserve deltas and the share delta of an updated or removed pool change.
// Deposit and withdrawal are distinct effect kinds; amounts are reported
// as magnitudes.
func (ng *Engine) poolDelta(c *Change, t EffectType, source string) error {
	b := c.Before.LiquidityPool
	var after *LiquidityPoolSnapshot
	if c.After != nil {
		after = c.After.LiquidityPool
	} else {
		// A removed pool drained to zero.
		after = &LiquidityPoolSnapshot{
			PoolID:  b.PoolID,
			Assets:  b.Assets,
			Amounts: make([]string, len(b.Amounts)),
			Shares:  "0",
		}
		for i := range after.Amounts {
			after.Amounts[i] = "0"
		}
	}

	if len(b.Amounts) != len(b.Assets) || len(after.Amounts) != len(b.Assets) {
		return fmt.Errorf("%w: pool %s reserves not aligned with its %d assets", ErrUnexpectedChange, b.PoolID, len(b.Assets))
	}

	assets := make([]AssetAmount, len(b.Assets))
	for i := range b.Assets {
		d, err := amount.Delta(b.Amounts[i], after.Amounts[i])
		if err != nil {
			return fmt.Errorf("%w: pool %s reserve %d: %v", ErrUnexpectedChange, b.PoolID, i, err)
		}
		assets[i] = AssetAmount{Asset: b.Assets[i], Amount: amount.Abs(d).String()}
	}
	shares, err := amount.Delta(b.Shares, after.Shares)
	if err != nil {
		return fmt.Errorf("%w: pool %s shares: %v", ErrUnexpectedChange, b.PoolID, err)
	}

	ng.append(Effect{
		Type:   t,
		Source: source,
		Pool:   b.PoolID,
		Assets: assets,
		Shares: amount.Abs(shares).String(),
	})
	return nil
}

// invokeHostFunctionHandler emits contract creation and invocation facts
// for the host function call. The invocation effect is left to the
// diagnostic-event interpreter when one will run, since only the
// diagnostic stream reveals nested calls and return values.
func invokeHostFunctionHandler(ng *Engine) error {
	fn := ng.op.HostFunction
	if fn == nil {
		return fmt.Errorf("%w: invokeHostFunction without host function payload", ErrUnexpectedHostFunction)
	}
	switch fn.Kind {
	case HostFnUploadWasm:
		return nil

	case HostFnCreateContract:
		ng.append(Effect{
			Type:         EffectContractCreated,
			Contract:     fn.Contract,
			ContractKind: "wasm",
			WasmHash:     fn.WasmHash,
		})
		return nil

	case HostFnCreateStellarAsset:
		ng.append(Effect{
			Type:         EffectContractCreated,
			Contract:     fn.Contract,
			ContractKind: "stellarAsset",
			Asset:        fn.Asset,
		})
		if ng.opts.MapSac && ng.opts.Sac != nil && fn.Asset != "" {
			ng.opts.Sac.Put(fn.Asset, fn.Contract)
		}
		return nil

	case HostFnInvokeContract:
		if ng.opts.ProcessSystemEvents && len(ng.diagEvents) > 0 {
			return nil
		}
		ng.append(Effect{
			Type:     EffectContractInvoked,
			Contract: fn.Contract,
			Function: fn.Function,
			Args:     fn.Args,
		})
		return nil
	}
	return fmt.Errorf("%w: kind %q", ErrUnexpectedHostFunction, fn.Kind)
}

// findAccountChange locates the change record for an account address with
// the given action, or nil.
func (ng *Engine) findAccountChange(address string, action ChangeAction) *Change {
	for i := range ng.changes {
		c := &ng.changes[i]
		if c.Kind != EntryAccount || c.Action != action {
			continue
		}
		if c.state().Account.Address == address {
			return c
		}
	}
	return nil
}
