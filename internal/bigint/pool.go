// This file provides pooled scratch buffers for Karatsuba multiplication to
// reduce GC pressure on large operands.

package bigint

import (
	"math/bits"
	"sync"
)

// ─────────────────────────────────────────────────────────────────────────────
// Coefficient Slice Pools
// ─────────────────────────────────────────────────────────────────────────────

// Karatsuba only ever asks for power-of-two lengths, so every size class is
// a power of two: 16, 32, ..., 2^24 coefficients.
const (
	minPooledShift = 4
	maxPooledShift = 24
)

var coeffPools [maxPooledShift - minPooledShift + 1]sync.Pool

// coeffPoolIndex returns the pool index serving slices of length n, or -1
// when n is too large to pool.
func coeffPoolIndex(n int) int {
	if n <= 1<<minPooledShift {
		return 0
	}
	shift := bits.Len(uint(n - 1))
	if shift > maxPooledShift {
		return -1
	}
	return shift - minPooledShift
}

// acquireCoeffs returns a zeroed []int64 of length n. The slice should be
// handed back with releaseCoeffs once it is no longer referenced.
func acquireCoeffs(n int) []int64 {
	idx := coeffPoolIndex(n)
	if idx < 0 {
		return make([]int64, n)
	}
	if v := coeffPools[idx].Get(); v != nil {
		s := (*v.(*[]int64))[:n]
		clear(s)
		return s
	}
	return make([]int64, n, 1<<(idx+minPooledShift))
}

// releaseCoeffs returns s to its pool. Slices that did not come from
// acquireCoeffs are accepted as long as their capacity is a size class.
func releaseCoeffs(s []int64) {
	c := cap(s)
	idx := coeffPoolIndex(c)
	if idx < 0 || c != 1<<(idx+minPooledShift) {
		return
	}
	s = s[:c]
	coeffPools[idx].Put(&s)
}
