// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build amd64
// +build amd64

package slotpool

import "golang.org/x/sys/cpu"

// hasFastBitScan reports whether the CPU exposes the instructions
// (POPCNT, BMI1's TZCNT) that make a hardware bit-scan worthwhile. A
// build-tagged capability probe that a portable code path falls back
// to when false.
func hasFastBitScan() bool {
	return cpu.X86.HasPOPCNT && cpu.X86.HasBMI1
}
