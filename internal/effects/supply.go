package effects

import (
	"math/big"
	"sort"

	"stellareffects/internal/amount"
)

// reconcileAssetSupply emits canonical mint/burn facts for classic-asset
// supply changes exactly once per operation.
//
// Event-derived evidence wins: an asset that already carries a mint or
// burn effect from the token-event interpreter is left alone. For every
// other classic asset, the net of credits minus debits (plus claimable
// balance escrow) equals the total-supply delta, because movements
// between ordinary holders cancel and the issuer side of a supply change
// never produces a balance effect of its own.
func (ng *Engine) reconcileAssetSupply() error {
	net := make(map[string]*big.Int)
	eventDerived := make(map[string]bool)
	firstCredit := make(map[string]int)

	add := func(asset string, amt string, sign int) error {
		v, err := amount.Parse(amt)
		if err != nil {
			return err
		}
		if sign < 0 {
			v = v.Neg(v)
		}
		if acc, ok := net[asset]; ok {
			acc.Add(acc, v)
		} else {
			net[asset] = v
		}
		return nil
	}

	for _, h := range ng.list.order {
		e := ng.list.Get(h)
		asset := e.Asset
		if asset == "" || asset == NativeAsset || isContractAsset(asset) {
			continue
		}
		issuer := assetIssuer(asset)
		if issuer == "" {
			continue
		}

		switch e.Type {
		case EffectAccountCredited:
			if err := add(asset, e.Amount, 1); err != nil {
				return err
			}
			if _, seen := firstCredit[asset]; !seen {
				firstCredit[asset] = h
			}
		case EffectAccountDebited:
			if err := add(asset, e.Amount, -1); err != nil {
				return err
			}
		case EffectAssetMinted, EffectAssetBurned:
			eventDerived[asset] = true
		case EffectClaimableBalanceCreated:
			// Escrowed tokens still exist; the matching trustline debit
			// cancels out, except when the issuer funds the balance.
			if err := add(asset, e.Amount, 1); err != nil {
				return err
			}
		case EffectClaimableBalanceRemoved:
			if err := add(asset, e.Amount, -1); err != nil {
				return err
			}
		}
	}

	assets := make([]string, 0, len(net))
	for asset := range net {
		assets = append(assets, asset)
	}
	sort.Strings(assets)

	for _, asset := range assets {
		delta := net[asset]
		if eventDerived[asset] || delta.Sign() == 0 {
			continue
		}
		if delta.Sign() > 0 {
			ng.mint(asset, delta.String(), firstCredit)
		} else {
			ng.burn(asset, amount.Abs(delta).String())
		}
	}
	return nil
}

// mint appends an asset-minted effect, placed immediately before the
// correlated credit when one exists: the supply grew before it could be
// credited.
func (ng *Engine) mint(asset, amt string, firstCredit map[string]int) {
	e := Effect{Type: EffectAssetMinted, Asset: asset, Amount: amt}
	if h, ok := firstCredit[asset]; ok {
		ng.insertBefore(h, e)
		return
	}
	ng.append(e)
}

// burn appends an asset-burned effect. The burn goes at the end of the
// list: splicing it next to a debit would separate the debit from the
// entity effect it belongs with.
func (ng *Engine) burn(asset, amt string) {
	ng.list.Append(Effect{Type: EffectAssetBurned, Source: ng.op.Source, Asset: asset, Amount: amt})
}
