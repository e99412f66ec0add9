package cuckoo

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func setupSlabWithExpires(t *testing.T, expires [D]uint32) (*Slab, [D]uint32) {
	t.Helper()
	slab := newSlab(64, D)
	var off [D]uint32
	for i := uint32(0); i < D; i++ {
		off[i] = i
		slot := slab.slot(i)
		itemSet(slot, []byte{byte(i)}, StrValue([]byte("v")), expires[i], nil, false, 0)
	}
	return slab, off
}

func TestSelectCandidateExpirePicksEarliest(t *testing.T) {
	slab, off := setupSlabWithExpires(t, [D]uint32{500, 100, 300, 200})
	got := selectCandidate(Expire, off, slab, 0, newSeededFastrand(1))
	require.Equal(t, off[1], got, "slot 1 has the smallest expire (100) and should be selected")
}

func TestSelectCandidateExpireTieBreaksToLowestIndex(t *testing.T) {
	slab, off := setupSlabWithExpires(t, [D]uint32{100, 200, 100, 300})
	got := selectCandidate(Expire, off, slab, 0, newSeededFastrand(1))
	require.Equal(t, off[0], got)
}

func TestSelectCandidateRandomStaysWithinCandidates(t *testing.T) {
	slab, off := setupSlabWithExpires(t, [D]uint32{Never, Never, Never, Never})
	r := newSeededFastrand(7)
	for i := 0; i < 50; i++ {
		got := selectCandidate(Random, off, slab, 0, r)
		require.Contains(t, off[:], got)
	}
}

func TestOrderCandidatesExpireIsAscending(t *testing.T) {
	slab, off := setupSlabWithExpires(t, [D]uint32{400, 100, 300, 200})
	ordered := orderCandidates(Expire, off, slab, newSeededFastrand(1))
	require.Equal(t, off[1], ordered[0])
	require.Equal(t, off[3], ordered[1])
	require.Equal(t, off[2], ordered[2])
	require.Equal(t, off[0], ordered[3])
}

func TestOrderCandidatesRandomIsRotation(t *testing.T) {
	slab, off := setupSlabWithExpires(t, [D]uint32{Never, Never, Never, Never})
	ordered := orderCandidates(Random, off, slab, newSeededFastrand(3))
	seen := map[uint32]bool{}
	for _, o := range ordered {
		seen[o] = true
	}
	require.Len(t, seen, D, "rotation must be a permutation with no repeats")
	for _, o := range off {
		require.True(t, seen[o])
	}
}
