// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package slotpool implements a bounded, lock-free object pool for
// very high-throughput acquisition and return of reusable objects
// across many concurrent producers and consumers.
//
// # Overview
//
// A Pool keeps a fixed-capacity ring of pre-constructed objects and
// advertises free/busy status through a densely packed bitmap, which
// allows an acquirer to find a free slot in O(1) using hardware
// bit-scan primitives. A small lock-free stack of recently-freed slot
// indices short-circuits the common case where an object was just
// returned, so most acquires claim their slot's bit directly instead
// of scanning the bitmap.
//
//	p, err := slotpool.New(slotpool.Options[*Task]{
//	    Capacity: 1024,
//	    New:      func() (*Task, error) { return &Task{}, nil },
//	})
//	if err != nil {
//	    // construction failed, the pool could not be built.
//	}
//	defer p.Close()
//
//	obj, err := p.Acquire()
//	// ... use obj exclusively ...
//	p.Release(obj)
//
// # Concurrency
//
// Acquire and Release never block. Any number of goroutines may call
// either concurrently; all coordination is via atomic compare-and-swap
// on the arena's backing words. The pool does not grow or shrink after
// construction, does not order acquisitions fairly, and does not reset
// or destroy payload state between reuses — cleansing an object for
// reuse is the caller's responsibility.
//
// # Error Handling
//
// [ErrArenaAlloc] is raised only at construction and is fatal.
// [ErrFactoryFailed] surfaces an overflow-path factory error verbatim
// and leaves no pool state perturbed. A failed [Pool.Release] is never
// an error: it returns false for an alien or already-free object.
package slotpool
