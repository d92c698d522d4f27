// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package slotpool

import "sync/atomic"

// sentinelNode marks an empty top or chain end. Node indices are
// capacity-bounded well below 2^32, so the low bits of a tagged top
// word never collide with it.
const sentinelNode = 0xFFFFFFFF

// freeStack is a Treiber-style LIFO of currently-known-free slot
// indices. Its nodes live in a fixed array preallocated in the shared
// arena (never heap-allocated per push); a second, internal Treiber
// stack over the same node array recycles node slots between pop and
// the next push. Both top pointers are tagged {counter, head} words,
// CAS'd as a unit, so a pop-push-pop cycle that returns the same head
// index is still detected by its changed tag (ABA protection).
type freeStack struct {
	a        *arena
	nodeBase int // word offset of node[0]
	n        int // node count (== logical capacity)
	topOff   int // word offset of the main stack's tagged top
	freeOff  int // word offset of the node allocator's tagged top
}

func newFreeStack(a *arena, nodeBase, n, topOff, freeOff int) *freeStack {
	return &freeStack{a: a, nodeBase: nodeBase, n: n, topOff: topOff, freeOff: freeOff}
}

func packTop(tag, head uint32) uint64 {
	return uint64(tag)<<32 | uint64(head)
}

func unpackTop(w uint64) (tag, head uint32) {
	return uint32(w >> 32), uint32(w)
}

func packNode(next, slot uint32) uint64 {
	return uint64(next)<<32 | uint64(slot)
}

func unpackNode(w uint64) (next, slot uint32) {
	return uint32(w >> 32), uint32(w)
}

func (s *freeStack) node(i uint32) *atomic.Uint64 {
	return s.a.at(s.nodeBase + int(i))
}

// initFull populates the stack, at construction time only (no
// concurrent callers exist yet), so that all n slot indices are
// pushed and the node allocator is left fully consumed. Equivalent to
// n sequential pushes of 0..n-1 but without the CAS overhead, since
// construction has no contention to protect against.
func (s *freeStack) initFull() {
	for i := 0; i < s.n; i++ {
		next := uint32(sentinelNode)
		if i > 0 {
			next = uint32(i - 1)
		}
		s.node(uint32(i)).Store(packNode(next, uint32(i)))
	}
	s.a.at(s.topOff).Store(packTop(0, uint32(s.n-1)))
	s.a.at(s.freeOff).Store(packTop(0, sentinelNode))
}

// allocNode pops one node index off the internal free-node list.
// Returns (0, false) under StackArenaExhaustion — every node is
// currently linked into the main stack. This is absorbed silently by
// the caller (push returns false; release falls back to the bitmap).
func (s *freeStack) allocNode() (uint32, bool) {
	top := s.a.at(s.freeOff)
	for {
		cur := top.Load()
		tag, head := unpackTop(cur)
		if head == sentinelNode {
			return 0, false
		}
		next, _ := unpackNode(s.node(head).Load())
		if top.CompareAndSwap(cur, packTop(tag+1, next)) {
			return head, true
		}
	}
}

// freeNode returns a node index to the internal free-node list so a
// later push can reuse it.
func (s *freeStack) freeNode(i uint32) {
	top := s.a.at(s.freeOff)
	for {
		cur := top.Load()
		tag, head := unpackTop(cur)
		s.node(i).Store(packNode(head, 0))
		if top.CompareAndSwap(cur, packTop(tag+1, i)) {
			return
		}
	}
}

// push attempts to add slot to the free stack. Returns false if the
// node arena is exhausted (StackArenaExhaustion); the caller tolerates
// this silently and relies on the bitmap alone.
func (s *freeStack) push(slot int) bool {
	node, ok := s.allocNode()
	if !ok {
		return false
	}

	top := s.a.at(s.topOff)
	for {
		cur := top.Load()
		tag, head := unpackTop(cur)
		s.node(node).Store(packNode(head, uint32(slot)))
		if top.CompareAndSwap(cur, packTop(tag+1, node)) {
			return true
		}
	}
}

// pop removes and returns the top slot index, or (0, false) if the
// stack is empty.
func (s *freeStack) pop() (int, bool) {
	top := s.a.at(s.topOff)
	for {
		cur := top.Load()
		tag, head := unpackTop(cur)
		if head == sentinelNode {
			return 0, false
		}
		next, slot := unpackNode(s.node(head).Load())
		if top.CompareAndSwap(cur, packTop(tag+1, next)) {
			s.freeNode(head)
			return int(slot), true
		}
	}
}
