package effects

import (
	"strings"

	"stellareffects/internal/addr"
)

// NativeAsset is the asset string denoting the network's native asset.
const NativeAsset = "native"

// isContractAsset reports whether the asset identifier is a contract
// address rather than a ledger-native (classic) asset.
func isContractAsset(asset string) bool {
	return addr.IsContract(asset)
}

// assetIssuer returns the issuer account of a classic credit asset
// ("CODE:ISSUER"), or "" for the native asset and contract assets.
func assetIssuer(asset string) string {
	if asset == NativeAsset || isContractAsset(asset) {
		return ""
	}
	if i := strings.LastIndexByte(asset, ':'); i >= 0 {
		return asset[i+1:]
	}
	return ""
}
