package effects

// instanceDurability marks effects derived from contract-instance storage.
const instanceDurability = "instance"

// reconcileInstanceStorage re-scans the change list for contract entries
// carrying instance storage and derives data effects from the before/after
// entry lists: unmatched-before entries were removed, unmatched-after
// entries were created, matched entries with a different value were
// updated. Matching is by deep key equality.
func (ng *Engine) reconcileInstanceStorage() error {
	for i := range ng.changes {
		c := &ng.changes[i]
		if c.Kind != EntryContract {
			continue
		}
		var before, after []StorageEntry
		if c.Before != nil && c.Before.Contract != nil {
			before = c.Before.Contract.Storage
		}
		if c.After != nil && c.After.Contract != nil {
			after = c.After.Contract.Storage
		}
		if len(before) == 0 && len(after) == 0 {
			continue
		}
		ng.diffInstanceStorage(c.state().Contract.ContractID, before, after)
	}
	return nil
}

func (ng *Engine) diffInstanceStorage(contract string, before, after []StorageEntry) {
	matched := make([]bool, len(before))

	for ai := range after {
		a := &after[ai]
		found := false
		for bi := range before {
			if matched[bi] || !before[bi].Key.Equal(a.Key) {
				continue
			}
			matched[bi] = true
			found = true
			if !before[bi].Val.Equal(a.Val) {
				ng.append(Effect{
					Type:       EffectContractDataUpdated,
					Owner:      contract,
					Key:        &a.Key,
					EntryValue: &a.Val,
					PrevEntry:  &before[bi].Val,
					Durability: instanceDurability,
				})
			}
			break
		}
		if !found {
			ng.append(Effect{
				Type:       EffectContractDataCreated,
				Owner:      contract,
				Key:        &a.Key,
				EntryValue: &a.Val,
				Durability: instanceDurability,
			})
		}
	}

	for bi := range before {
		if matched[bi] {
			continue
		}
		b := &before[bi]
		ng.append(Effect{
			Type:       EffectContractDataRemoved,
			Owner:      contract,
			Key:        &b.Key,
			PrevEntry:  &b.Val,
			Durability: instanceDurability,
		})
	}
}
