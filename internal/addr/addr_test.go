package addr

import (
	"testing"

	"github.com/stellar/go/strkey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKey(fill byte) []byte {
	raw := make([]byte, 32)
	for i := range raw {
		raw[i] = fill
	}
	return raw
}

func TestNormalizeMuxed(t *testing.T) {
	key := testKey(0x2a)
	canonical := strkey.MustEncode(strkey.VersionByteAccountID, key)

	payload := append(append([]byte{}, key...), 0, 0, 0, 0, 0, 0, 0, 1)
	muxed := strkey.MustEncode(strkey.VersionByteMuxedAccount, payload)

	got, err := Normalize(muxed)
	require.NoError(t, err)
	assert.Equal(t, canonical, got)

	// Different sub-identifiers collapse to the same canonical address.
	payload2 := append(append([]byte{}, key...), 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff)
	muxed2 := strkey.MustEncode(strkey.VersionByteMuxedAccount, payload2)
	got2, err := Normalize(muxed2)
	require.NoError(t, err)
	assert.Equal(t, canonical, got2)
}

func TestNormalizePassthrough(t *testing.T) {
	canonical := strkey.MustEncode(strkey.VersionByteAccountID, testKey(0x01))

	got, err := Normalize(canonical)
	require.NoError(t, err)
	assert.Equal(t, canonical, got)

	// Idempotent on an already-normalized result.
	again, err := Normalize(got)
	require.NoError(t, err)
	assert.Equal(t, got, again)

	// Empty and non-account strings pass through untouched.
	got, err = Normalize("")
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestNormalizeMalformedMuxed(t *testing.T) {
	_, err := Normalize("MNOTAVALIDMUXEDADDRESS")
	require.Error(t, err)
}

func TestClassification(t *testing.T) {
	account := strkey.MustEncode(strkey.VersionByteAccountID, testKey(0x03))
	contract := strkey.MustEncode(strkey.VersionByteContract, testKey(0x04))
	payload := append(testKey(0x05), 0, 0, 0, 0, 0, 0, 0, 9)
	muxed := strkey.MustEncode(strkey.VersionByteMuxedAccount, payload)

	assert.True(t, IsAccount(account))
	assert.False(t, IsAccount(contract))
	assert.False(t, IsAccount(muxed))

	assert.True(t, IsContract(contract))
	assert.False(t, IsContract(account))

	assert.True(t, IsMuxed(muxed))
	assert.False(t, IsMuxed(account))
	assert.False(t, IsMuxed(""))
}
