// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package slotpool

import "sync/atomic"

// poolStats holds the pool's monotonic lifetime counters. Every field
// is updated with its own atomic Add and read with its own atomic
// Load; no operation updates or reads several fields as a unit, so
// readers accept tear across counters rather than pay for a lock.
type poolStats struct {
	totalGets    atomic.Int64
	totalReturns atomic.Int64
	bitTrickHits atomic.Int64
	stackHits    atomic.Int64
	totalCreates atomic.Int64
	totalDrops   atomic.Int64
}

// Stats is a point-in-time snapshot of a Pool's counters. freeCount
// and busyCount are derived from the availability bitmap at snapshot
// time, not stored.
type Stats struct {
	Capacity     int
	FreeCount    int
	BusyCount    int
	TotalGets    int64
	TotalReturns int64
	BitTrickHits int64
	StackHits    int64
	TotalCreates int64
	TotalDrops   int64
}
