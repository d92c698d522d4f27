// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !amd64
// +build !amd64

package slotpool

// hasFastBitScan is conservatively false on architectures this
// package has not profiled; the portable bit-scan path is always
// correct, just not guaranteed to compile down to a single
// instruction.
func hasFastBitScan() bool {
	return false
}
