package effects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeeCharged(t *testing.T) {
	source := gaddr(0x60)
	e, err := FeeCharged(source, "1000", "150", false)
	require.NoError(t, err)

	assert.Equal(t, EffectFeeCharged, e.Type)
	assert.Equal(t, source, e.Source)
	assert.Equal(t, NativeAsset, e.Asset)
	assert.Equal(t, "1000", e.Bid)
	assert.Equal(t, "150", e.Charged)
	assert.False(t, e.FeeBump)
}

func TestFeeChargedNormalizesMuxedSource(t *testing.T) {
	e, err := FeeCharged(maddr(0x61, 5), "200", "200", true)
	require.NoError(t, err)
	assert.Equal(t, gaddr(0x61), e.Source)
	assert.True(t, e.FeeBump)
}

func TestFeeChargedRejectsMalformedSource(t *testing.T) {
	_, err := FeeCharged("MBOGUS", "100", "100", false)
	require.Error(t, err)
}
