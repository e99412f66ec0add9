package cuckoo

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConfigValidateFillsDefaults(t *testing.T) {
	c := Config{ChunkSize: 64, MaxItem: 16}
	require.NoError(t, c.Validate())
	require.Equal(t, DefaultDisplace, c.Displace)
	require.IsType(t, NoOpMetrics{}, c.Metrics)
	require.IsType(t, NoOpLogger{}, c.Logger)
	require.NotNil(t, c.Clock)
}

func TestConfigValidateKeepsExplicitDisplace(t *testing.T) {
	c := Config{ChunkSize: 64, MaxItem: 16, Displace: 9}
	require.NoError(t, c.Validate())
	require.Equal(t, 9, c.Displace)
}

func TestConfigValidateRejectsZeroMaxItem(t *testing.T) {
	c := Config{ChunkSize: 64}
	err := c.Validate()
	require.True(t, IsInvalidConfig(err))
}

func TestConfigValidateRejectsZeroChunkSize(t *testing.T) {
	c := Config{MaxItem: 16}
	err := c.Validate()
	require.True(t, IsInvalidConfig(err))
}

func TestItemOverheadGrowsWithCAS(t *testing.T) {
	plain := Config{}.ItemOverhead()
	withCAS := Config{CASEnabled: true}.ItemOverhead()
	require.Equal(t, plain+8, withCAS)
}

func TestPolicyString(t *testing.T) {
	require.Equal(t, "RANDOM", Random.String())
	require.Equal(t, "EXPIRE", Expire.String())
	require.Equal(t, "UNKNOWN", Policy(99).String())
}
