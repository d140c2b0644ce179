package blockgrid

import (
	"math"
)

// Reductions over block-grid buffers. These back the tests and the bench
// tool around IndexMax; they run single-threaded since the grids involved
// are small compared to the kernels that produce them.

// Max returns the maximum of the first n elements.
func (d DevicePtr) Max(n int) float32 {
	if n == 0 {
		return float32(math.Inf(-1))
	}
	x := d.Float32()[:n]
	max := x[0]
	for _, v := range x[1:] {
		if v > max {
			max = v
		}
	}
	return max
}

// ArgMax returns the index of the maximum of the first n elements, or -1
// when n is zero.
func (d DevicePtr) ArgMax(n int) int {
	if n == 0 {
		return -1
	}
	x := d.Float32()[:n]
	best := 0
	for i, v := range x[1:] {
		if v > x[best] {
			best = i + 1
		}
	}
	return best
}

// RowMax reduces an aNumBlock × bNumBlock grid along its rows, writing
// aNumBlock maxima to out.
func RowMax(x DevicePtr, aNumBlock, bNumBlock int, out DevicePtr) error {
	if aNumBlock <= 0 || bNumBlock <= 0 {
		return ErrInvalidShape
	}

	data := x.Float32()
	o := out.Float32()

	for i := 0; i < aNumBlock; i++ {
		max := data[i*bNumBlock]
		for j := 1; j < bNumBlock; j++ {
			if v := data[i*bNumBlock+j]; v > max {
				max = v
			}
		}
		o[i] = max
	}
	return nil
}

// ColMax reduces an aNumBlock × bNumBlock grid along its columns, writing
// bNumBlock maxima to out.
func ColMax(x DevicePtr, aNumBlock, bNumBlock int, out DevicePtr) error {
	if aNumBlock <= 0 || bNumBlock <= 0 {
		return ErrInvalidShape
	}

	data := x.Float32()
	o := out.Float32()

	for j := 0; j < bNumBlock; j++ {
		max := data[j]
		for i := 1; i < aNumBlock; i++ {
			if v := data[i*bNumBlock+j]; v > max {
				max = v
			}
		}
		o[j] = max
	}
	return nil
}
