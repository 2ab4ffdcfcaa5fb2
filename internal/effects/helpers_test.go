package effects

import (
	"testing"

	"github.com/stellar/go/strkey"
	"github.com/stretchr/testify/require"
)

// gaddr returns a deterministic canonical account address.
func gaddr(fill byte) string {
	raw := make([]byte, 32)
	for i := range raw {
		raw[i] = fill
	}
	return strkey.MustEncode(strkey.VersionByteAccountID, raw)
}

// caddr returns a deterministic contract address.
func caddr(fill byte) string {
	raw := make([]byte, 32)
	for i := range raw {
		raw[i] = fill
	}
	return strkey.MustEncode(strkey.VersionByteContract, raw)
}

// maddr returns a deterministic multiplexed address whose canonical form is
// gaddr(fill).
func maddr(fill byte, id byte) string {
	raw := make([]byte, 40)
	for i := 0; i < 32; i++ {
		raw[i] = fill
	}
	raw[39] = id
	return strkey.MustEncode(strkey.VersionByteMuxedAccount, raw)
}

func analyze(t *testing.T, op Operation, changes []Change, result *Result, opts Options, events, diag []Event) []Effect {
	t.Helper()
	list, _, err := NewEngine(op, changes, result, opts).Analyze(events, diag)
	require.NoError(t, err)
	return list
}

func effectTypes(list []Effect) []EffectType {
	if len(list) == 0 {
		return nil
	}
	out := make([]EffectType, len(list))
	for i, e := range list {
		out[i] = e.Type
	}
	return out
}

func trustlineChange(account, asset, beforeBalance, afterBalance string) Change {
	return Change{
		Kind:   EntryTrustline,
		Action: ActionUpdated,
		Before: &Snapshot{Trustline: &TrustlineSnapshot{
			Account: account, Asset: asset, Balance: beforeBalance, Limit: "9223372036854775807",
		}},
		After: &Snapshot{Trustline: &TrustlineSnapshot{
			Account: account, Asset: asset, Balance: afterBalance, Limit: "9223372036854775807",
		}},
	}
}

func accountChange(address, beforeBalance, afterBalance string) Change {
	return Change{
		Kind:   EntryAccount,
		Action: ActionUpdated,
		Before: &Snapshot{Account: &AccountSnapshot{Address: address, Balance: beforeBalance}},
		After:  &Snapshot{Account: &AccountSnapshot{Address: address, Balance: afterBalance}},
	}
}
