package effects

import "fmt"

// sponsorshipEffects is the fixed naming table mapping (entry kind, change
// action) to the effect kind recording a sponsorship transition. Liquidity
// pool sponsorship changes are intentionally not surfaced. Any lookup
// outside this table violates the change-record contract.
var sponsorshipEffects = map[EntryKind]map[ChangeAction]EffectType{
	EntryAccount: {
		ActionCreated: EffectAccountSponsorshipCreated,
		ActionUpdated: EffectAccountSponsorshipUpdated,
		ActionRemoved: EffectAccountSponsorshipRemoved,
	},
	EntryTrustline: {
		ActionCreated: EffectTrustlineSponsorshipCreated,
		ActionUpdated: EffectTrustlineSponsorshipUpdated,
		ActionRemoved: EffectTrustlineSponsorshipRemoved,
	},
	EntryOffer: {
		ActionCreated: EffectOfferSponsorshipCreated,
		ActionUpdated: EffectOfferSponsorshipUpdated,
		ActionRemoved: EffectOfferSponsorshipRemoved,
	},
	EntryData: {
		ActionCreated: EffectDataEntrySponsorshipCreated,
		ActionUpdated: EffectDataEntrySponsorshipUpdated,
		ActionRemoved: EffectDataEntrySponsorshipRemoved,
	},
	EntryClaimableBalance: {
		ActionCreated: EffectClaimableBalanceSponsorshipCreated,
		ActionUpdated: EffectClaimableBalanceSponsorshipUpdated,
		ActionRemoved: EffectClaimableBalanceSponsorshipRemoved,
	},
}

// sponsorshipEffectType resolves the effect kind for a sponsorship
// transition on the given entry kind and action.
func sponsorshipEffectType(kind EntryKind, action ChangeAction) (EffectType, error) {
	byAction, ok := sponsorshipEffects[kind]
	if !ok {
		return "", fmt.Errorf("%w: no sponsorship effect for entry kind %q", ErrUnexpectedChange, kind)
	}
	t, ok := byAction[action]
	if !ok {
		return "", fmt.Errorf("%w: no sponsorship effect for %s %s", ErrUnexpectedChange, action, kind)
	}
	return t, nil
}

// applySponsorship emits a sponsorship effect for one change when a sponsor
// relation appeared, changed or disappeared.
func (ng *Engine) applySponsorship(c *Change) error {
	if c.Kind == EntryLiquidityPool {
		return nil
	}

	var sponsor, prevSponsor string
	switch c.Action {
	case ActionCreated:
		sponsor = c.After.Sponsor
		if sponsor == "" {
			return nil
		}
	case ActionUpdated:
		sponsor = c.After.Sponsor
		prevSponsor = c.Before.Sponsor
		if sponsor == prevSponsor {
			return nil
		}
		// A sponsor appearing or disappearing on update is still named as
		// an update of the entry's sponsorship.
	case ActionRemoved:
		prevSponsor = c.Before.Sponsor
		if prevSponsor == "" {
			return nil
		}
	}

	t, err := sponsorshipEffectType(c.Kind, c.Action)
	if err != nil {
		return err
	}

	e := Effect{Type: t, Sponsor: sponsor, PrevSponsor: prevSponsor}
	s := c.state()
	switch c.Kind {
	case EntryAccount:
		e.Account = s.Account.Address
	case EntryTrustline:
		e.Account = s.Trustline.Account
		e.Asset = s.Trustline.Asset
	case EntryOffer:
		e.Account = s.Offer.Account
		e.OfferID = s.Offer.ID
	case EntryData:
		e.Account = s.Data.Account
		e.Name = s.Data.Name
	case EntryClaimableBalance:
		e.BalanceID = s.ClaimableBalance.BalanceID
	}
	ng.append(e)
	return nil
}
