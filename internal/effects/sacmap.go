package effects

import lru "github.com/hashicorp/golang-lru/v2"

// defaultSacMapSize bounds the resolution cache when callers do not size
// it explicitly.
const defaultSacMapSize = 4096

// SacMap is a bounded, thread-safe map between classic assets and their
// Stellar Asset Contract addresses. One map is typically shared by all
// engines of a processing pipeline: deploys observed in one operation
// resolve token events in later ones.
type SacMap struct {
	byAsset    *lru.Cache[string, string]
	byContract *lru.Cache[string, string]
}

// NewSacMap creates a map bounded to size entries per direction.
// A non-positive size selects the default bound.
func NewSacMap(size int) (*SacMap, error) {
	if size <= 0 {
		size = defaultSacMapSize
	}
	byAsset, err := lru.New[string, string](size)
	if err != nil {
		return nil, err
	}
	byContract, err := lru.New[string, string](size)
	if err != nil {
		return nil, err
	}
	return &SacMap{byAsset: byAsset, byContract: byContract}, nil
}

// Put records the asset/contract pairing in both directions.
func (m *SacMap) Put(asset, contract string) {
	m.byAsset.Add(asset, contract)
	m.byContract.Add(contract, asset)
}

// AssetFor resolves a contract address to its classic asset.
func (m *SacMap) AssetFor(contract string) (string, bool) {
	return m.byContract.Get(contract)
}

// ContractFor resolves a classic asset to its contract address.
func (m *SacMap) ContractFor(asset string) (string, bool) {
	return m.byAsset.Get(asset)
}
