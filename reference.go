// Package blockgrid reference implementations for verification.
package blockgrid

import (
	"math"
)

// Reference contains simple, obviously correct implementations of the
// kernels. Tests compare launch results against these.
type Reference struct{}

// IndexMax computes out[i] = max(vals[i], float32(indices[i])) serially.
func (r Reference) IndexMax(vals []float32, indices []int32, aNumBlock, bNumBlock int) []float32 {
	n := aNumBlock * bNumBlock
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		v := vals[i]
		if c := float32(indices[i]); c > v {
			v = c
		}
		out[i] = v
	}
	return out
}

// SegmentMax computes the per-bucket maximum serially.
func (r Reference) SegmentMax(vals []float32, indices []int32, numSegments int) []float32 {
	out := make([]float32, numSegments)
	for s := range out {
		out[s] = float32(math.Inf(-1))
	}
	for i, v := range vals {
		s := indices[i]
		if v > out[s] {
			out[s] = v
		}
	}
	return out
}

// RowMax reduces rows of an aNumBlock × bNumBlock grid serially.
func (r Reference) RowMax(x []float32, aNumBlock, bNumBlock int) []float32 {
	out := make([]float32, aNumBlock)
	for i := 0; i < aNumBlock; i++ {
		max := x[i*bNumBlock]
		for j := 1; j < bNumBlock; j++ {
			if v := x[i*bNumBlock+j]; v > max {
				max = v
			}
		}
		out[i] = max
	}
	return out
}

// ColMax reduces columns of an aNumBlock × bNumBlock grid serially.
func (r Reference) ColMax(x []float32, aNumBlock, bNumBlock int) []float32 {
	out := make([]float32, bNumBlock)
	for j := 0; j < bNumBlock; j++ {
		max := x[j]
		for i := 1; i < aNumBlock; i++ {
			if v := x[i*bNumBlock+j]; v > max {
				max = v
			}
		}
		out[j] = max
	}
	return out
}
