package cuckoo

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFakeClockNeverReturnsZero(t *testing.T) {
	c := NewFakeClock(0)
	require.Equal(t, uint32(1), c.Now())

	c.Set(0)
	require.Equal(t, uint32(1), c.Now())
}

func TestFakeClockAdvance(t *testing.T) {
	c := NewFakeClock(100)
	c.Advance(50)
	require.Equal(t, uint32(150), c.Now())
}
