// Package addr normalizes and classifies Stellar address strings.
//
// Key encoding itself is delegated to the strkey codec; this package only
// implements the multiplexed-address normalizer and the cheap structural
// classification the effects engine needs.
package addr

import (
	"fmt"

	"github.com/stellar/go/strkey"
)

const (
	// encodedLen is the length of every strkey-encoded 32-byte key.
	encodedLen = 56

	// muxedEncodedLen is the length of a multiplexed account address,
	// which carries an extra 8-byte sub-identifier.
	muxedEncodedLen = 69

	accountPrefix  = 'G'
	muxedPrefix    = 'M'
	contractPrefix = 'C'
)

// Normalize returns the canonical account address for a, stripping the
// embedded sub-identifier from a multiplexed address. Canonical addresses
// are returned unchanged, so normalization is idempotent.
func Normalize(a string) (string, error) {
	if len(a) == 0 || a[0] != muxedPrefix {
		return a, nil
	}
	raw, err := strkey.Decode(strkey.VersionByteMuxedAccount, a)
	if err != nil {
		return "", fmt.Errorf("invalid multiplexed address %q: %w", a, err)
	}
	// Payload is the 32-byte ed25519 key followed by the 8-byte id.
	canonical, err := strkey.Encode(strkey.VersionByteAccountID, raw[:32])
	if err != nil {
		return "", fmt.Errorf("re-encoding %q: %w", a, err)
	}
	return canonical, nil
}

// IsMuxed reports whether a is a multiplexed account address.
func IsMuxed(a string) bool {
	return len(a) == muxedEncodedLen && a[0] == muxedPrefix
}

// IsAccount reports whether a has the shape of a canonical account address.
func IsAccount(a string) bool {
	return len(a) == encodedLen && a[0] == accountPrefix
}

// IsContract reports whether a has the shape of a contract address.
func IsContract(a string) bool {
	return len(a) == encodedLen && a[0] == contractPrefix
}
