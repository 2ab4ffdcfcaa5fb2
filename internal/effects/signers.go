package effects

// BasicSignerDiffer is the built-in signer-list differ. Callers with their
// own differ inject it through Options.SignerDiffer.
type BasicSignerDiffer struct{}

// Diff yields signer added/updated/removed effects from before/after
// account snapshots, in after-list order followed by removals.
func (BasicSignerDiffer) Diff(before, after *AccountSnapshot) []Effect {
	prev := make(map[string]uint32, len(before.Signers))
	for _, s := range before.Signers {
		prev[s.Key] = s.Weight
	}

	var out []Effect
	seen := make(map[string]bool, len(after.Signers))
	for _, s := range after.Signers {
		seen[s.Key] = true
		w := s.Weight
		pw, had := prev[s.Key]
		switch {
		case !had:
			out = append(out, Effect{
				Type:   EffectAccountSignerCreated,
				Source: after.Address,
				Signer: s.Key,
				Weight: &w,
			})
		case pw != s.Weight:
			out = append(out, Effect{
				Type:   EffectAccountSignerUpdated,
				Source: after.Address,
				Signer: s.Key,
				Weight: &w,
			})
		}
	}
	for _, s := range before.Signers {
		if !seen[s.Key] {
			out = append(out, Effect{
				Type:   EffectAccountSignerRemoved,
				Source: after.Address,
				Signer: s.Key,
			})
		}
	}
	return out
}
