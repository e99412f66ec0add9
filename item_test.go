package cuckoo

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestItemSetAndAccessors(t *testing.T) {
	slot := make([]byte, 64)
	itemSet(slot, []byte("hello"), StrValue([]byte("world")), 1234, []byte("fl"), false, 0)

	require.Equal(t, uint16(5), itemKlen(slot))
	require.Equal(t, uint32(5), itemVlen(slot))
	require.Equal(t, TypeStr, itemVtype(slot))
	require.Equal(t, uint32(1234), itemExpire(slot))
	require.Equal(t, []byte("hello"), itemKey(slot, false))
	require.Equal(t, []byte("world"), itemVal(slot, false))
	require.Equal(t, []byte("fl"), itemFlags(slot, false))
	require.Equal(t, uint32(10), itemDataLen(slot))
}

func TestItemSetWithCAS(t *testing.T) {
	slot := make([]byte, 64)
	itemSet(slot, []byte("k"), StrValue([]byte("v")), 1, nil, true, 99)
	require.Equal(t, uint64(99), itemCas(slot, true))
	require.Equal(t, []byte("k"), itemKey(slot, true))
	require.Equal(t, []byte("v"), itemVal(slot, true))
}

func TestItemUpdatePreservesKeyAndFlags(t *testing.T) {
	slot := make([]byte, 64)
	itemSet(slot, []byte("k"), StrValue([]byte("v1")), 10, []byte("f"), true, 1)
	itemUpdate(slot, StrValue([]byte("v2-longer")), 20, true, 2)

	require.Equal(t, []byte("k"), itemKey(slot, true))
	require.Equal(t, []byte("f"), itemFlags(slot, true))
	require.Equal(t, []byte("v2-longer"), itemVal(slot, true))
	require.Equal(t, uint32(20), itemExpire(slot))
	require.Equal(t, uint64(2), itemCas(slot, true))
}

func TestItemDeleteZeroesExpireOnly(t *testing.T) {
	slot := make([]byte, 64)
	itemSet(slot, []byte("k"), StrValue([]byte("v")), 10, nil, false, 0)
	itemDelete(slot)
	require.Equal(t, uint32(0), itemExpire(slot))
	require.False(t, itemValid(slot, 0))
	require.Equal(t, []byte("k"), itemKey(slot, false))
}

func TestItemValidAndExpired(t *testing.T) {
	slot := make([]byte, 64)

	itemSet(slot, []byte("k"), StrValue([]byte("v")), 0, nil, false, 0)
	require.False(t, itemValid(slot, 5))
	require.False(t, itemExpired(slot, 5), "expire == 0 means empty, not expired")

	itemSet(slot, []byte("k"), StrValue([]byte("v")), Never, nil, false, 0)
	require.True(t, itemValid(slot, 1<<30))
	require.False(t, itemExpired(slot, 1<<30))

	itemSet(slot, []byte("k"), StrValue([]byte("v")), 100, nil, false, 0)
	require.True(t, itemValid(slot, 99))
	require.False(t, itemExpired(slot, 99))
	require.False(t, itemValid(slot, 100))
	require.True(t, itemExpired(slot, 100))
}

func TestItemMatched(t *testing.T) {
	slot := make([]byte, 64)
	itemSet(slot, []byte("abcd"), StrValue([]byte("v")), 1, nil, false, 0)
	require.True(t, itemMatched(slot, []byte("abcd"), false))
	require.False(t, itemMatched(slot, []byte("abc"), false))
	require.False(t, itemMatched(slot, []byte("abce"), false))
}

func TestIntValueEncodedLenIsAlways8(t *testing.T) {
	require.Equal(t, uint32(8), IntValue(0).encodedLen())
	require.Equal(t, uint32(8), IntValue(-1).encodedLen())
	require.Equal(t, uint32(8), IntValue(1<<40).encodedLen())
}

func TestIntValueRoundTripsThroughSlot(t *testing.T) {
	slot := make([]byte, 64)
	itemSet(slot, []byte("k"), IntValue(-42), 1, nil, false, 0)
	got := decodeValue(itemVal(slot, false), itemVtype(slot))
	require.Equal(t, int64(-42), got.Int)
}
