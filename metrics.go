// metrics.go: the engine's metrics sink.
//
// A flat bag of monotonic counters and gauges the engine increments
// as a side effect of its own operations. The sink is opaque to the
// engine beyond this interface - how (or whether) a concrete
// implementation exports these to Prometheus, StatsD or anything else
// is entirely the host's concern.
package cuckoo

import "sync/atomic"

// Metrics is the counter/gauge surface the engine writes to. All
// methods must be safe to call from the single mutator thread only;
// the engine itself has no internal synchronization, so neither does
// this interface.
type Metrics interface {
	// Call-count counters, one per public operation.
	IncrGet()
	IncrInsert()
	IncrUpdate()
	IncrDelete()
	IncrDisplace()

	// Size-check rejection counters.
	IncrInsertEx()
	IncrUpdateEx()

	// Event counters tied to individual items.
	IncrItemInsert()
	IncrItemDelete()
	IncrItemDisplace()
	IncrItemEvict()
	IncrItemExpire()

	// Gauge deltas tied to individual items. For AddItemCurr n is a
	// count of items; for the others it is the byte length contributed
	// by the field named. Callers add on insert/grow and subtract on
	// delete/expire/evict/shrink.
	AddItemCurr(n int64)
	AddItemKeyCurr(n int64)
	AddItemValCurr(n int64)
	AddItemDataCurr(n int64)
}

// NoOpMetrics discards every update. Used as the default when the
// caller doesn't supply a Metrics.
type NoOpMetrics struct{}

func (NoOpMetrics) IncrGet()             {}
func (NoOpMetrics) IncrInsert()          {}
func (NoOpMetrics) IncrUpdate()          {}
func (NoOpMetrics) IncrDelete()          {}
func (NoOpMetrics) IncrDisplace()        {}
func (NoOpMetrics) IncrInsertEx()        {}
func (NoOpMetrics) IncrUpdateEx()        {}
func (NoOpMetrics) IncrItemInsert()      {}
func (NoOpMetrics) IncrItemDelete()      {}
func (NoOpMetrics) IncrItemDisplace()    {}
func (NoOpMetrics) IncrItemEvict()       {}
func (NoOpMetrics) IncrItemExpire()      {}
func (NoOpMetrics) AddItemCurr(int64)    {}
func (NoOpMetrics) AddItemKeyCurr(int64) {}
func (NoOpMetrics) AddItemValCurr(int64) {}
func (NoOpMetrics) AddItemDataCurr(int64) {}

// AtomicMetrics is a ready-to-use Metrics backed by atomic counters.
// It is safe to read concurrently with the single mutator thread
// (e.g. from a periodic sampler goroutine) even though writes are
// only ever issued from that one thread: a lock-free reader atop
// atomic counters.
type AtomicMetrics struct {
	Get, Insert, Update, Delete, Displace int64
	InsertEx, UpdateEx                    int64
	ItemInsert, ItemDelete                int64
	ItemDisplace, ItemEvict, ItemExpire   int64
	ItemCurr, ItemKeyCurr                 int64
	ItemValCurr, ItemDataCurr             int64
}

func (m *AtomicMetrics) IncrGet()          { atomic.AddInt64(&m.Get, 1) }
func (m *AtomicMetrics) IncrInsert()       { atomic.AddInt64(&m.Insert, 1) }
func (m *AtomicMetrics) IncrUpdate()       { atomic.AddInt64(&m.Update, 1) }
func (m *AtomicMetrics) IncrDelete()       { atomic.AddInt64(&m.Delete, 1) }
func (m *AtomicMetrics) IncrDisplace()     { atomic.AddInt64(&m.Displace, 1) }
func (m *AtomicMetrics) IncrInsertEx()     { atomic.AddInt64(&m.InsertEx, 1) }
func (m *AtomicMetrics) IncrUpdateEx()     { atomic.AddInt64(&m.UpdateEx, 1) }
func (m *AtomicMetrics) IncrItemInsert()   { atomic.AddInt64(&m.ItemInsert, 1) }
func (m *AtomicMetrics) IncrItemDelete()   { atomic.AddInt64(&m.ItemDelete, 1) }
func (m *AtomicMetrics) IncrItemDisplace() { atomic.AddInt64(&m.ItemDisplace, 1) }
func (m *AtomicMetrics) IncrItemEvict()    { atomic.AddInt64(&m.ItemEvict, 1) }
func (m *AtomicMetrics) IncrItemExpire()   { atomic.AddInt64(&m.ItemExpire, 1) }

func (m *AtomicMetrics) AddItemCurr(n int64)     { atomic.AddInt64(&m.ItemCurr, n) }
func (m *AtomicMetrics) AddItemKeyCurr(n int64)  { atomic.AddInt64(&m.ItemKeyCurr, n) }
func (m *AtomicMetrics) AddItemValCurr(n int64)  { atomic.AddInt64(&m.ItemValCurr, n) }
func (m *AtomicMetrics) AddItemDataCurr(n int64) { atomic.AddInt64(&m.ItemDataCurr, n) }

// Snapshot returns a point-in-time copy of every counter/gauge,
// suitable for logging or exposing through the host's own metrics
// transport.
func (m *AtomicMetrics) Snapshot() AtomicMetrics {
	return AtomicMetrics{
		Get:           atomic.LoadInt64(&m.Get),
		Insert:        atomic.LoadInt64(&m.Insert),
		Update:        atomic.LoadInt64(&m.Update),
		Delete:        atomic.LoadInt64(&m.Delete),
		Displace:      atomic.LoadInt64(&m.Displace),
		InsertEx:      atomic.LoadInt64(&m.InsertEx),
		UpdateEx:      atomic.LoadInt64(&m.UpdateEx),
		ItemInsert:    atomic.LoadInt64(&m.ItemInsert),
		ItemDelete:    atomic.LoadInt64(&m.ItemDelete),
		ItemDisplace:  atomic.LoadInt64(&m.ItemDisplace),
		ItemEvict:     atomic.LoadInt64(&m.ItemEvict),
		ItemExpire:    atomic.LoadInt64(&m.ItemExpire),
		ItemCurr:      atomic.LoadInt64(&m.ItemCurr),
		ItemKeyCurr:   atomic.LoadInt64(&m.ItemKeyCurr),
		ItemValCurr:   atomic.LoadInt64(&m.ItemValCurr),
		ItemDataCurr:  atomic.LoadInt64(&m.ItemDataCurr),
	}
}
