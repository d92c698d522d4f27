// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package slotpool

import (
	"fmt"
	"sync/atomic"
)

// arena owns a single contiguous region of 64-bit words shared by the
// availability bitmap, the staleness bitmap, the free-index stack's
// node table, and the stack's two tagged top pointers. Word-level
// atomic CAS/load/store on a typed offset is the only access path;
// nothing outside this file touches the backing slice directly.
//
// Go has no off-heap allocator in the standard library, so an
// off-heap byte buffer with raw pointer arithmetic is translated here
// as a type that exclusively owns one contiguous allocation (a
// []atomic.Uint64, which the runtime already lays out word-aligned and
// contiguous) and exposes typed offsets into it. Teardown drops the
// pool's only reference so the arena becomes collectible; there is no
// syscall-level unmap to perform.
type arena struct {
	words []atomic.Uint64
}

// newArena allocates the backing region for capacity n (logical slots)
// rounded up to m (physical slots, a multiple of 64). Layout, in
// words:
//
//	[0, wb)           availability bitmap
//	[wb, 2wb)         staleness bitmap
//	[2wb, 2wb+n)      stack node table, one word per node
//	[2wb+n, 2wb+n+2)  stack top pointers (main, free-node-list)
//
// where wb = m/64.
func newArena(n, m int) (a *arena, err error) {
	if n <= 0 || m < n || m%wordBits != 0 {
		return nil, fmt.Errorf("%w: invalid slot geometry n=%d m=%d", ErrArenaAlloc, n, m)
	}

	defer func() {
		if r := recover(); r != nil {
			a = nil
			err = fmt.Errorf("%w: %v", ErrArenaAlloc, r)
		}
	}()

	wb := m / wordBits
	total := 2*wb + n + 2

	return &arena{words: make([]atomic.Uint64, total)}, nil
}

// at returns a pointer to the atomic word at the given index. Callers
// pass only offsets computed from the layout described on newArena
// (New in pool.go derives them); there is
// no bounds-checked public accessor because every caller is internal
// and already trusted with the layout.
func (a *arena) at(i int) *atomic.Uint64 {
	return &a.words[i]
}

// release drops the arena's only reference. Idempotent: calling it
// twice is harmless; using the arena afterward is undefined by
// contract.
// Teardown is single-threaded and not safe to race with in-flight
// operations.
func (a *arena) release() {
	a.words = nil
}
