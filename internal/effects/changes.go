package effects

import (
	"fmt"

	"stellareffects/internal/amount"
)

// classifyChange turns one ledger change into its entity-specific effects.
func (ng *Engine) classifyChange(c *Change) error {
	switch c.Kind {
	case EntryAccount:
		return ng.classifyAccount(c)
	case EntryTrustline:
		return ng.classifyTrustline(c)
	case EntryOffer:
		return ng.classifyOffer(c)
	case EntryLiquidityPool:
		return ng.classifyLiquidityPool(c)
	case EntryClaimableBalance:
		return ng.classifyClaimableBalance(c)
	case EntryData:
		return ng.classifyData(c)
	case EntryContract:
		return ng.classifyContract(c)
	case EntryContractData:
		return ng.classifyContractData(c)
	}
	return fmt.Errorf("%w: unknown entry kind %q", ErrUnexpectedChange, c.Kind)
}

// balanceDelta emits the debit or credit implied by a balance moving from
// before to after, reporting the resulting balance.
func (ng *Engine) balanceDelta(before, after, asset, source string) error {
	delta, err := amount.Delta(before, after)
	if err != nil {
		return fmt.Errorf("%w: %s balance: %v", ErrUnexpectedChange, asset, err)
	}
	switch delta.Sign() {
	case 1:
		ng.credit(delta.String(), asset, source, after)
	case -1:
		ng.debit(amount.Abs(delta).String(), asset, source, after)
	}
	return nil
}

func (ng *Engine) classifyAccount(c *Change) error {
	switch c.Action {
	case ActionCreated:
		a := c.After.Account
		ng.append(Effect{
			Type:    EffectAccountCreated,
			Source:  a.Address,
			Account: a.Address,
			Sponsor: c.After.Sponsor,
			Balance: a.Balance,
		})
		if !amount.IsZero(a.Balance) {
			ng.credit(a.Balance, NativeAsset, a.Address, a.Balance)
		}
		return nil

	case ActionUpdated:
		b, a := c.Before.Account, c.After.Account
		if err := ng.balanceDelta(b.Balance, a.Balance, NativeAsset, a.Address); err != nil {
			return err
		}
		// Signer sponsorship transitions are only meaningful for the
		// operations that can move them.
		if ng.op.Type == OpSetOptions || ng.op.Type == OpRevokeSponsorship {
			ng.diffSignerSponsors(a.Address, b.SignerSponsors, a.SignerSponsors)
		}
		for _, e := range ng.opts.SignerDiffer.Diff(b, a) {
			ng.append(e)
		}
		return nil

	case ActionRemoved:
		b := c.Before.Account
		if !amount.IsZero(b.Balance) {
			ng.debit(b.Balance, NativeAsset, b.Address, "0")
		}
		ng.append(Effect{
			Type:    EffectAccountRemoved,
			Source:  b.Address,
			Account: b.Address,
		})
		return nil
	}
	return fmt.Errorf("%w: %s account change", ErrUnexpectedChange, c.Action)
}

// diffSignerSponsors emits created/updated/removed effects for per-signer
// sponsor transitions between two snapshots.
func (ng *Engine) diffSignerSponsors(account string, before, after map[string]string) {
	for key, sponsor := range after {
		prev, had := before[key]
		switch {
		case !had:
			ng.append(Effect{
				Type:    EffectSignerSponsorshipCreated,
				Source:  account,
				Signer:  key,
				Sponsor: sponsor,
			})
		case prev != sponsor:
			ng.append(Effect{
				Type:        EffectSignerSponsorshipUpdated,
				Source:      account,
				Signer:      key,
				Sponsor:     sponsor,
				PrevSponsor: prev,
			})
		}
	}
	for key, prev := range before {
		if _, has := after[key]; !has {
			ng.append(Effect{
				Type:        EffectSignerSponsorshipRemoved,
				Source:      account,
				Signer:      key,
				PrevSponsor: prev,
			})
		}
	}
}

func (ng *Engine) classifyTrustline(c *Change) error {
	switch c.Action {
	case ActionCreated:
		t := c.After.Trustline
		flags := t.Flags
		ng.append(Effect{
			Type:   EffectTrustlineCreated,
			Source: t.Account,
			Asset:  t.Asset,
			Limit:  t.Limit,
			Flags:  &flags,
		})
		return nil

	case ActionUpdated:
		b, a := c.Before.Trustline, c.After.Trustline
		if err := ng.balanceDelta(b.Balance, a.Balance, a.Asset, a.Account); err != nil {
			return err
		}
		// A pure balance move is fully described by the debit/credit.
		if b.Flags == a.Flags && b.Limit == a.Limit {
			return nil
		}
		flags := a.Flags
		ng.append(Effect{
			Type:   EffectTrustlineUpdated,
			Source: a.Account,
			Asset:  a.Asset,
			Limit:  a.Limit,
			Flags:  &flags,
		})
		return nil

	case ActionRemoved:
		t := c.Before.Trustline
		if !amount.IsZero(t.Balance) {
			ng.debit(t.Balance, t.Asset, t.Account, "0")
		}
		ng.append(Effect{
			Type:   EffectTrustlineRemoved,
			Source: t.Account,
			Asset:  t.Asset,
		})
		return nil
	}
	return fmt.Errorf("%w: %s trustline change", ErrUnexpectedChange, c.Action)
}

func (ng *Engine) classifyOffer(c *Change) error {
	switch c.Action {
	case ActionCreated:
		ng.append(offerEffect(EffectOfferCreated, c.After.Offer))
		return nil

	case ActionUpdated:
		b, a := c.Before.Offer, c.After.Offer
		if b.Price == a.Price && b.Selling == a.Selling && b.Buying == a.Buying && b.Amount == a.Amount {
			return nil
		}
		ng.append(offerEffect(EffectOfferUpdated, a))
		return nil

	default:
		o := c.state().Offer
		ng.append(Effect{
			Type:    EffectOfferRemoved,
			Source:  o.Account,
			OfferID: o.ID,
		})
		return nil
	}
}

func offerEffect(t EffectType, o *OfferSnapshot) Effect {
	return Effect{
		Type:    t,
		Source:  o.Account,
		OfferID: o.ID,
		Amount:  o.Amount,
		Price:   o.Price,
		Assets: []AssetAmount{
			{Asset: o.Selling, Amount: o.Amount},
			{Asset: o.Buying},
		},
	}
}

func (ng *Engine) classifyLiquidityPool(c *Change) error {
	switch c.Action {
	case ActionCreated:
		p := c.After.LiquidityPool
		e := Effect{
			Type:     EffectLiquidityPoolCreated,
			Pool:     p.PoolID,
			Assets:   pairAssetAmounts(p.Assets, p.Amounts),
			Shares:   p.Shares,
			Accounts: p.Accounts,
		}
		// Pool creation may be reported after the pool's first use; the
		// creation fact still precedes whatever referenced it.
		if h := ng.list.FindFirst(func(x *Effect) bool { return x.Pool == p.PoolID }); h >= 0 {
			ng.insertBefore(h, e)
		} else {
			ng.append(e)
		}
		return nil

	case ActionUpdated:
		p := c.After.LiquidityPool
		ng.append(Effect{
			Type:     EffectLiquidityPoolUpdated,
			Pool:     p.PoolID,
			Assets:   pairAssetAmounts(p.Assets, p.Amounts),
			Shares:   p.Shares,
			Accounts: p.Accounts,
		})
		return nil

	default:
		ng.append(Effect{
			Type: EffectLiquidityPoolRemoved,
			Pool: c.state().LiquidityPool.PoolID,
		})
		return nil
	}
}

func pairAssetAmounts(assets, amounts []string) []AssetAmount {
	n := len(assets)
	if len(amounts) < n {
		n = len(amounts)
	}
	out := make([]AssetAmount, n)
	for i := 0; i < n; i++ {
		out[i] = AssetAmount{Asset: assets[i], Amount: amounts[i]}
	}
	return out
}

func (ng *Engine) classifyClaimableBalance(c *Change) error {
	switch c.Action {
	case ActionCreated:
		cb := c.After.ClaimableBalance
		ng.append(Effect{
			Type:      EffectClaimableBalanceCreated,
			BalanceID: cb.BalanceID,
			Asset:     cb.Asset,
			Amount:    cb.Amount,
			Claimants: cb.Claimants,
			Sponsor:   c.After.Sponsor,
		})
		return nil

	case ActionRemoved:
		cb := c.Before.ClaimableBalance
		ng.append(Effect{
			Type:      EffectClaimableBalanceRemoved,
			BalanceID: cb.BalanceID,
			Asset:     cb.Asset,
			Amount:    cb.Amount,
			Claimants: cb.Claimants,
		})
		return nil
	}
	// An updated claimable balance (claimant bookkeeping) is not an
	// observable fact.
	return nil
}

func (ng *Engine) classifyData(c *Change) error {
	switch c.Action {
	case ActionCreated:
		d := c.After.Data
		ng.append(Effect{
			Type:   EffectDataEntryCreated,
			Source: d.Account,
			Name:   d.Name,
			Value:  d.Value,
		})
		return nil

	case ActionUpdated:
		b, a := c.Before.Data, c.After.Data
		if b.Value == a.Value {
			return nil
		}
		ng.append(Effect{
			Type:   EffectDataEntryUpdated,
			Source: a.Account,
			Name:   a.Name,
			Value:  a.Value,
		})
		return nil

	case ActionRemoved:
		d := c.Before.Data
		ng.append(Effect{
			Type:   EffectDataEntryRemoved,
			Source: d.Account,
			Name:   d.Name,
		})
		return nil
	}
	return fmt.Errorf("%w: %s data change", ErrUnexpectedChange, c.Action)
}

func (ng *Engine) classifyContract(c *Change) error {
	switch c.Action {
	case ActionCreated:
		k := c.After.Contract
		// The top-level invocation may already have recorded the creation.
		dup := ng.list.FindFirst(func(x *Effect) bool {
			return x.Type == EffectContractCreated && x.Contract == k.ContractID
		})
		if dup >= 0 {
			return nil
		}
		ng.append(Effect{
			Type:         EffectContractCreated,
			Contract:     k.ContractID,
			ContractKind: k.Kind,
			WasmHash:     k.WasmHash,
		})
		return nil

	case ActionUpdated:
		b, a := c.Before.Contract, c.After.Contract
		if b.WasmHash == a.WasmHash {
			return nil
		}
		ng.append(Effect{
			Type:         EffectContractUpdated,
			Contract:     a.ContractID,
			ContractKind: a.Kind,
			WasmHash:     a.WasmHash,
			PrevWasmHash: b.WasmHash,
		})
		return nil
	}
	return nil
}

func (ng *Engine) classifyContractData(c *Change) error {
	emitted := false
	switch c.Action {
	case ActionCreated:
		d := c.After.ContractData
		ng.append(Effect{
			Type:       EffectContractDataCreated,
			Owner:      d.Owner,
			Key:        &d.Key,
			EntryValue: &d.Val,
			Durability: d.Durability,
		})
		emitted = true

	case ActionUpdated:
		b, a := c.Before.ContractData, c.After.ContractData
		if !b.Val.Equal(a.Val) {
			ng.append(Effect{
				Type:       EffectContractDataUpdated,
				Owner:      a.Owner,
				Key:        &a.Key,
				EntryValue: &a.Val,
				PrevEntry:  &b.Val,
				Durability: a.Durability,
			})
			emitted = true
		}

	case ActionRemoved:
		d := c.Before.ContractData
		ng.append(Effect{
			Type:       EffectContractDataRemoved,
			Owner:      d.Owner,
			Key:        &d.Key,
			PrevEntry:  &d.Val,
			Durability: d.Durability,
		})
		emitted = true
	}

	if emitted {
		// Best effort: a token balance write may pin down the resulting
		// balance of an already-derived debit or credit.
		ng.correlateContractBalance(c)
	}
	return nil
}

// insertBefore mirrors append but places the effect before an existing one.
func (ng *Engine) insertBefore(handle int, e Effect) int {
	if e.Source == "" {
		e.Source = ng.op.Source
	}
	return ng.list.InsertBefore(handle, e)
}
