package effects

import "stellareffects/internal/addr"

// FeeCharged builds the transaction-level fee effect from the fee source,
// the bid fee, and the amount actually charged. Fee-bump transactions are
// flagged distinctly from the underlying bid.
func FeeCharged(txSource, feeBid, charged string, feeBump bool) (Effect, error) {
	source, err := addr.Normalize(txSource)
	if err != nil {
		return Effect{}, err
	}
	return Effect{
		Type:    EffectFeeCharged,
		Source:  source,
		Asset:   NativeAsset,
		Bid:     feeBid,
		Charged: charged,
		FeeBump: feeBump,
	}, nil
}
