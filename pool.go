// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package slotpool

import "sync"

// Pool is a bounded, lock-free object pool of reusable T values.
// Acquire and Release never block; every goroutine coordinates purely
// through atomic compare-and-swap on the shared arena. See the
// package doc for the full model.
type Pool[T comparable] struct {
	n int // logical capacity N
	m int // physical capacity M = ceil(N/64)*64

	a       *arena
	avail   *availBitmap
	stale   *staleBitmap
	stack   *freeStack
	slots   *slotTable[T]
	stats   poolStats
	factory Factory[T]

	closeOnce sync.Once
}

// New constructs a Pool per opts. Construction eagerly builds N
// objects via opts.New, so a factory error here aborts construction
// (wrapped as [ErrFactoryFailed]); an arena allocation failure is
// [ErrArenaAlloc] and is always fatal.
func New[T comparable](opts Options[T]) (*Pool[T], error) {
	if opts.Capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	if opts.New == nil {
		return nil, ErrNilFactory
	}

	n := opts.Capacity
	m := ((n + wordBits - 1) / wordBits) * wordBits

	a, err := newArena(n, m)
	if err != nil {
		return nil, err
	}

	slots, err := newSlotTable[T](n, opts.New)
	if err != nil {
		return nil, err
	}

	wb := m / wordBits
	availBase := 0
	staleBase := wb
	nodeBase := 2 * wb
	topOff := nodeBase + n
	freeOff := topOff + 1

	p := &Pool[T]{
		n:       n,
		m:       m,
		a:       a,
		avail:   newAvailBitmap(a, availBase, n, m, opts.ScanStartShard),
		stale:   newStaleBitmap(a, staleBase, m),
		stack:   newFreeStack(a, nodeBase, n, topOff, freeOff),
		slots:   slots,
		factory: opts.New,
	}
	p.stack.initFull()

	return p, nil
}

// Acquire returns a pooled object. It never returns a zero T on
// success: the overflow path always hands back a freshly constructed
// object. The only failure mode is a factory error on overflow,
// returned wrapped in an [OpError] chained to [ErrFactoryFailed].
func (p *Pool[T]) Acquire() (T, error) {
	if slot, ok := p.stack.pop(); ok {
		wi, mask := p.avail.wordOf(slot)
		if p.avail.tryClaim(wi, mask) {
			p.stats.stackHits.Add(1)
			p.stats.totalGets.Add(1)
			p.stale.toggle(wi, mask)
			return p.slots.get(slot), nil
		}
		// Someone else (via scan) already claimed this slot bit
		// between the pop and our claim attempt; fall through to
		// the scan path rather than leaking the popped index.
	}

	if slot, ok := p.avail.scanFree(); ok {
		wi, mask := p.avail.wordOf(slot)
		p.stats.bitTrickHits.Add(1)
		p.stats.totalGets.Add(1)
		p.stale.toggle(wi, mask)
		return p.slots.get(slot), nil
	}

	obj, err := p.factory()
	if err != nil {
		var zero T
		return zero, wrapFactoryError("acquire", err)
	}
	p.stats.totalCreates.Add(1)
	p.stats.totalGets.Add(1)
	return obj, nil
}

// Release returns obj to the pool. It reports true if obj belonged to
// the pool and transitioned BUSY->FREE; false if obj is alien
// (never produced by this pool's construction-time factory calls) or
// its slot was already free (a duplicate release). Both false cases
// count as a drop and are never fatal.
func (p *Pool[T]) Release(obj T) bool {
	slot, ok := p.slots.slotOf(obj)
	if !ok {
		p.stats.totalDrops.Add(1)
		return false
	}

	wi, mask := p.avail.wordOf(slot)
	if !p.avail.releaseBit(wi, mask) {
		p.stats.totalDrops.Add(1)
		return false
	}

	p.stack.push(slot) // best-effort; StackArenaExhaustion is silent
	p.stats.totalReturns.Add(1)
	return true
}

// Stats returns a point-in-time snapshot of the pool's counters. It
// accepts tear: the individual counters and the derived busy/free
// counts are not read under a single lock. This is an observability
// read, not a transactional one.
func (p *Pool[T]) Stats() Stats {
	busy := p.avail.popcountBusy()
	return Stats{
		Capacity:     p.n,
		FreeCount:    p.n - busy,
		BusyCount:    busy,
		TotalGets:    p.stats.totalGets.Load(),
		TotalReturns: p.stats.totalReturns.Load(),
		BitTrickHits: p.stats.bitTrickHits.Load(),
		StackHits:    p.stats.stackHits.Load(),
		TotalCreates: p.stats.totalCreates.Load(),
		TotalDrops:   p.stats.totalDrops.Load(),
	}
}

// StaleSlots returns the slot indices whose staleness bit is
// currently set: a diagnostic "recently touched" readout over the
// staleness bitmap. It carries no correctness meaning.
func (p *Pool[T]) StaleSlots() []int {
	return p.stale.snapshot(p.n)
}

// Close releases the pool's arena. Idempotent; operations on a closed
// Pool are undefined by contract. Close itself is not safe to race
// with in-flight Acquire/Release.
func (p *Pool[T]) Close() {
	p.closeOnce.Do(func() {
		p.a.release()
	})
}
