// engine.go: the table engine.
//
// Implements get/insert/update/delete and the bounded displacement
// walk that makes room for a new key, ported from Pelikan's
// storage/cuckoo/cuckoo.c onto the Slab/item codec in this package:
// a single struct owning its backing store plus a small PRNG, one
// method per operation and a private helper per internal step.
package cuckoo

// Engine is a fixed-size cuckoo hash table. It is not safe for
// concurrent use - the core is designed for a single mutator thread
// and leaves serialization to the surrounding server.
type Engine struct {
	cfg        Config
	slab       *Slab
	rng        *fastrand
	casCounter uint64
	gen        uint64 // bumped on every mutating call; invalidates borrowed SlotRefs
}

// NewEngine returns a zero-value Engine. Call Setup before using it.
func NewEngine() *Engine { return &Engine{} }

func (e *Engine) logger() Logger {
	if e.cfg.Logger != nil {
		return e.cfg.Logger
	}
	return NoOpLogger{}
}

func (e *Engine) metrics() Metrics {
	if e.cfg.Metrics != nil {
		return e.cfg.Metrics
	}
	return NoOpMetrics{}
}

func (e *Engine) clock() Clock {
	if e.cfg.Clock != nil {
		return e.cfg.Clock
	}
	return newRealClock()
}

func (e *Engine) mustInit(op string) {
	if e.slab == nil {
		panic(NewErrNotInitialized(op))
	}
}

// Setup allocates the slab and brings the engine up. Fails with
// ErrCodeAlreadyInitialized if called twice without an intervening
// Teardown, or ErrCodeAllocFailed if the slab allocation panics (Go's
// allocator panics rather than returning an error on OOM; Setup
// recovers and reports it as a structured error instead).
func (e *Engine) Setup(cfg Config) (err error) {
	if e.slab != nil {
		return NewErrAlreadyInitialized()
	}

	if verr := cfg.Validate(); verr != nil {
		return verr
	}

	defer func() {
		if r := recover(); r != nil {
			err = NewErrAllocFailed(uint64(cfg.ChunkSize)*uint64(cfg.MaxItem), nil)
		}
	}()

	slab := newSlab(cfg.ChunkSize, cfg.MaxItem)

	e.slab = slab
	e.cfg = cfg
	e.rng = newFastrand()
	e.casCounter = 0
	e.gen++

	cfg.Logger.Info("cuckoo: set up",
		"chunk_size", cfg.ChunkSize,
		"max_item", cfg.MaxItem,
		"policy", cfg.SelectPolicy.String(),
		"cas", cfg.CASEnabled,
		"displace", cfg.Displace,
	)
	return nil
}

// Teardown releases the slab and clears the metrics/logger/clock
// references. Idempotent: calling it on an engine that was never set
// up only logs a warning.
func (e *Engine) Teardown() {
	if e.slab == nil {
		e.logger().Warn("cuckoo: teardown called on an engine that was never set up")
		return
	}
	e.logger().Info("cuckoo: tear down")
	e.slab = nil
	e.cfg = Config{}
	e.gen++
}

// Reset zeroes the slab in place; every slot becomes invalid.
// Idempotent: calling it before Setup only logs a warning.
func (e *Engine) Reset() {
	if e.slab == nil {
		e.logger().Warn("cuckoo: reset called on an engine that was never set up")
		return
	}
	e.logger().Info("cuckoo: reset")
	e.slab.reset()
	e.gen++
}

// Get scans the key's D candidate slots in order and returns the
// first one that is valid and key-matches. It never mutates the table
// and never marks expired slots; that only happens on the next
// Insert/displacement walk that touches them.
func (e *Engine) Get(key []byte) (SlotRef, bool) {
	e.mustInit("get")
	e.metrics().IncrGet()

	off := offsets(key, e.cfg.MaxItem)
	now := e.clock().Now()

	for _, o := range off {
		slot := e.slab.slot(o)
		if itemHit(slot, key, now, e.cfg.CASEnabled) {
			e.logger().Debug("cuckoo: get hit", "offset", o)
			return SlotRef{eng: e, idx: o, gen: e.gen}, true
		}
	}
	e.logger().Debug("cuckoo: get miss")
	return SlotRef{}, false
}

// Insert writes key/val/expire into one of key's D candidate slots,
// evicting or displacing an occupant if all of them are already
// valid. It does not check for a prior occurrence of key; callers
// that want replace semantics should Get first and route to Update.
func (e *Engine) Insert(key []byte, val Value, expire uint32, flags []byte) error {
	e.mustInit("insert")
	if expire == 0 {
		return NewErrInvalidExpire()
	}
	e.metrics().IncrInsert()

	overhead := e.cfg.ItemOverhead() + uint32(len(flags))
	klen := uint32(len(key))
	vlen := val.encodedLen()
	if klen+vlen+overhead > e.cfg.ChunkSize {
		e.metrics().IncrInsertEx()
		e.logger().Warn("cuckoo: insert oversized", "klen", klen, "vlen", vlen, "chunk_size", e.cfg.ChunkSize)
		return NewErrOversized(klen, vlen, overhead, e.cfg.ChunkSize)
	}

	off := offsets(key, e.cfg.MaxItem)
	now := e.clock().Now()

	target := uint32(0)
	found := false
	for _, o := range off {
		slot := e.slab.slot(o)
		if itemValid(slot, now) {
			continue
		}
		if itemExpired(slot, now) {
			e.metrics().IncrItemExpire()
			e.decrItemMetrics(slot)
		}
		target = o
		found = true
		break
	}

	if !found {
		victim := selectCandidate(e.cfg.SelectPolicy, off, e.slab, now, e.rng)
		e.displace(victim, now)
		target = victim
	}

	slot := e.slab.slot(target)
	var cas uint64
	if e.cfg.CASEnabled {
		e.casCounter++
		cas = e.casCounter
	}
	itemSet(slot, key, val, expire, flags, e.cfg.CASEnabled, cas)
	e.metrics().IncrItemInsert()
	e.incrItemMetrics(slot)
	e.gen++
	return nil
}

// Update rewrites the value and expire of the item ref points to,
// preserving its key and flags. ref must have been returned by the
// most recent Get/displacement-free call on this engine; using a
// stale reference panics, per the borrowed-reference discipline
// documented on SlotRef.
func (e *Engine) Update(ref SlotRef, val Value, expire uint32) error {
	e.mustInit("update")
	ref.checkValid()
	if expire == 0 {
		return NewErrInvalidExpire()
	}
	e.metrics().IncrUpdate()

	slot := e.slab.slot(ref.idx)
	overhead := e.cfg.ItemOverhead() + uint32(itemFlagn(slot))
	klen := uint32(itemKlen(slot))
	vlen := val.encodedLen()
	if klen+vlen+overhead > e.cfg.ChunkSize {
		e.metrics().IncrUpdateEx()
		e.logger().Warn("cuckoo: update oversized", "klen", klen, "vlen", vlen, "chunk_size", e.cfg.ChunkSize)
		return NewErrOversized(klen, vlen, overhead, e.cfg.ChunkSize)
	}

	m := e.metrics()
	m.AddItemValCurr(-int64(itemVlen(slot)))
	m.AddItemDataCurr(-int64(itemDataLen(slot)))

	var cas uint64
	if e.cfg.CASEnabled {
		e.casCounter++
		cas = e.casCounter
	}
	itemUpdate(slot, val, expire, e.cfg.CASEnabled, cas)

	m.AddItemValCurr(int64(itemVlen(slot)))
	m.AddItemDataCurr(int64(itemDataLen(slot)))
	e.gen++
	return nil
}

// Delete removes the item with the given key, if present.
func (e *Engine) Delete(key []byte) bool {
	e.mustInit("delete")
	e.metrics().IncrDelete()

	ref, ok := e.Get(key)
	if !ok {
		e.logger().Debug("cuckoo: delete miss")
		return false
	}

	slot := e.slab.slot(ref.idx)
	e.metrics().IncrItemDelete()
	e.decrItemMetrics(slot)
	itemDelete(slot)
	e.gen++
	e.logger().Debug("cuckoo: delete hit", "offset", ref.idx)
	return true
}

func (e *Engine) incrItemMetrics(slot []byte) {
	m := e.metrics()
	m.AddItemCurr(1)
	m.AddItemKeyCurr(int64(itemKlen(slot)))
	m.AddItemValCurr(int64(itemVlen(slot)))
	m.AddItemDataCurr(int64(itemDataLen(slot)))
}

func (e *Engine) decrItemMetrics(slot []byte) {
	m := e.metrics()
	m.AddItemCurr(-1)
	m.AddItemKeyCurr(-int64(itemKlen(slot)))
	m.AddItemValCurr(-int64(itemVlen(slot)))
	m.AddItemDataCurr(-int64(itemDataLen(slot)))
}

// displace runs the bounded displacement walk starting at start,
// bumping occupants along the way until it finds a free/expired slot
// or exhausts the step budget, then shifts the whole path back by one
// and leaves start empty for the caller to write into.
//
// hops-taken is tracked implicitly as len(path)-1; a path entry is
// appended only when the walk commits to a hop, so the slice itself
// carries the loop-bound bookkeeping the original C keeps in a
// separate `step` variable.
func (e *Engine) displace(start uint32, now uint32) {
	e.metrics().IncrDisplace()

	path := make([]uint32, 1, e.cfg.Displace+1)
	path[0] = start
	ended := false
	evict := true

	for !ended && len(path)-1 < e.cfg.Displace {
		cur := path[len(path)-1]
		curSlot := e.slab.slot(cur)
		key := itemKey(curSlot, e.cfg.CASEnabled)
		off := offsets(key, e.cfg.MaxItem)

		freeIdx := -1
		for i := 0; i < D; i++ {
			if !itemValid(e.slab.slot(off[i]), now) {
				freeIdx = i
				break
			}
		}

		if freeIdx >= 0 {
			freeSlot := e.slab.slot(off[freeIdx])
			if itemExpired(freeSlot, now) {
				e.metrics().IncrItemExpire()
				e.decrItemMetrics(freeSlot)
			}
			path = append(path, off[freeIdx])
			e.metrics().IncrItemDisplace()
			ended = true
			evict = false
			continue
		}

		// No free slot among the current item's candidates: find the
		// next displacement target per the policy's preference order,
		// rejecting anything already visited on this walk so we can't
		// cycle. If every candidate is already on the path (in
		// practice, all D hash values for this item coincide), we
		// surrender: stop advancing and evict at the current tail
		// rather than loop forever.
		ordered := orderCandidates(e.cfg.SelectPolicy, off, e.slab, e.rng)
		chosen := -1
		for j := 0; j < D; j++ {
			if !pathContains(path, ordered[j]) {
				chosen = j
				break
			}
		}
		if chosen < 0 {
			e.logger().Warn("cuckoo: running out of displacement candidates")
			ended = true
			continue
		}

		path = append(path, ordered[chosen])
		e.metrics().IncrItemDisplace()
	}

	tail := path[len(path)-1]
	if evict {
		tailSlot := e.slab.slot(tail)
		e.logger().Debug("cuckoo: evicting item during displacement", "offset", tail)
		e.metrics().IncrItemEvict()
		e.decrItemMetrics(tailSlot)
	}

	for i := len(path) - 1; i > 0; i-- {
		e.slab.copySlot(path[i], path[i-1])
	}
	itemDelete(e.slab.slot(path[0]))
}

func pathContains(path []uint32, v uint32) bool {
	for _, p := range path {
		if p == v {
			return true
		}
	}
	return false
}

// SlotRef is a borrowed reference to a slot, handed out by Get. It is
// valid only until the next mutating call (Insert/Update/Delete/Reset/
// Teardown) on the engine that issued it; using it afterward panics.
type SlotRef struct {
	eng *Engine
	idx uint32
	gen uint64
}

func (r SlotRef) checkValid() {
	if r.eng == nil || r.gen != r.eng.gen {
		panic("cuckoo: stale slot reference used after a mutating call")
	}
}

// Key returns the item's key bytes.
func (r SlotRef) Key() []byte {
	r.checkValid()
	slot := r.eng.slab.slot(r.idx)
	return append([]byte(nil), itemKey(slot, r.eng.cfg.CASEnabled)...)
}

// Value returns the item's decoded value.
func (r SlotRef) Value() Value {
	r.checkValid()
	slot := r.eng.slab.slot(r.idx)
	return decodeValue(itemVal(slot, r.eng.cfg.CASEnabled), itemVtype(slot))
}

// Expire returns the item's absolute expire timestamp.
func (r SlotRef) Expire() uint32 {
	r.checkValid()
	return itemExpire(r.eng.slab.slot(r.idx))
}

// CAS returns the item's CAS token, or 0 if CAS is disabled.
func (r SlotRef) CAS() uint64 {
	r.checkValid()
	slot := r.eng.slab.slot(r.idx)
	return itemCas(slot, r.eng.cfg.CASEnabled)
}
