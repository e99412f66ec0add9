// clock.go: the engine's notion of "now".
//
// Expiry is an absolute timestamp in monotonic seconds, so the Clock
// interface deals in uint32 seconds rather than a time.Time or
// nanosecond count. The real implementation is backed by
// go-timecache's cached wall-clock read, so a Get/Insert hot path
// never pays for a time.Now() syscall.
package cuckoo

import "github.com/agilira/go-timecache"

// Never is the sentinel expire value meaning "does not expire".
const Never uint32 = 0xffffffff

// Clock supplies the current time for expiry comparisons. Swappable
// in tests for deterministic expiry behavior.
type Clock interface {
	// Now returns the current time in whole seconds. Must never
	// return 0 - that value is reserved to mean "empty slot".
	Now() uint32
}

// realClock reads go-timecache's cached nanosecond clock and
// truncates it to seconds.
type realClock struct{}

func newRealClock() Clock { return realClock{} }

func (realClock) Now() uint32 {
	ns := timecache.CachedTimeNano()
	return uint32(ns / 1e9)
}

// FakeClock is a deterministic Clock for tests: Now returns the start
// time given to NewFakeClock as moved by Set and Advance. NewFakeClock
// and Set promote 0 to 1, since Now must not return 0.
type FakeClock struct {
	now uint32
}

// NewFakeClock returns a FakeClock initialized to the given second.
// start must be nonzero; 0 is promoted to 1.
func NewFakeClock(start uint32) *FakeClock {
	if start == 0 {
		start = 1
	}
	return &FakeClock{now: start}
}

func (c *FakeClock) Now() uint32 { return c.now }

// Set pins the clock to t. t must be nonzero.
func (c *FakeClock) Set(t uint32) {
	if t == 0 {
		t = 1
	}
	c.now = t
}

// Advance moves the clock forward by d seconds.
func (c *FakeClock) Advance(d uint32) { c.now += d }
