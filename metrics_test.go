package cuckoo

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAtomicMetricsCountersAndGauges(t *testing.T) {
	m := &AtomicMetrics{}
	m.IncrGet()
	m.IncrGet()
	m.IncrInsert()
	m.IncrItemEvict()
	m.AddItemCurr(3)
	m.AddItemCurr(-1)

	snap := m.Snapshot()
	require.Equal(t, int64(2), snap.Get)
	require.Equal(t, int64(1), snap.Insert)
	require.Equal(t, int64(1), snap.ItemEvict)
	require.Equal(t, int64(2), snap.ItemCurr)
}

func TestNoOpMetricsDoesNotPanic(t *testing.T) {
	var m Metrics = NoOpMetrics{}
	m.IncrGet()
	m.IncrInsert()
	m.IncrUpdate()
	m.IncrDelete()
	m.IncrDisplace()
	m.IncrInsertEx()
	m.IncrUpdateEx()
	m.IncrItemInsert()
	m.IncrItemDelete()
	m.IncrItemDisplace()
	m.IncrItemEvict()
	m.IncrItemExpire()
	m.AddItemCurr(1)
	m.AddItemKeyCurr(1)
	m.AddItemValCurr(1)
	m.AddItemDataCurr(1)
}

func TestNoOpLoggerDoesNotPanic(t *testing.T) {
	var l Logger = NoOpLogger{}
	l.Debug("x")
	l.Info("x", "k", "v")
	l.Warn("x")
	l.Error("x")
}
