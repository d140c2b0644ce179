package blockgrid

import (
	"math"
)

// IndexMax computes the element-wise maximum of a float32 buffer against an
// int32 index buffer, viewed as an aNumBlock × bNumBlock grid. The output
// is a newly allocated buffer of aNumBlock*bNumBlock float32s, owned by the
// caller.
//
// Each thread handles one output element:
//
//	out[i] = max(vals[i], float32(indices[i]))
//
// Inputs are raw device buffers; no dtype, shape, or bounds validation is
// performed beyond the launch tail guard. Both inputs must hold at least
// aNumBlock*bNumBlock elements.
func IndexMax(vals, indices DevicePtr, aNumBlock, bNumBlock int) (DevicePtr, error) {
	return defaultContext.IndexMax(vals, indices, aNumBlock, bNumBlock)
}

// IndexMax is the Context form of the package-level IndexMax.
func (ctx *Context) IndexMax(vals, indices DevicePtr, aNumBlock, bNumBlock int) (DevicePtr, error) {
	n := aNumBlock * bNumBlock

	out, err := ctx.Malloc(n * 4)
	if err != nil {
		return DevicePtr{}, err
	}

	v := vals.Float32()
	idx := indices.Int32()
	o := out.Float32()

	grid, block := flatGrid(n)
	kernel := KernelFunc(func(tid ThreadID, args ...interface{}) {
		i := tid.Global()
		if i >= n {
			return
		}
		val := v[i]
		cast := float32(idx[i])
		if cast > val {
			val = cast
		}
		o[i] = val
	})

	if err := ctx.Launch(kernel, grid, block); err != nil {
		ctx.Free(out)
		return DevicePtr{}, err
	}
	if err := ctx.Synchronize(); err != nil {
		ctx.Free(out)
		return DevicePtr{}, err
	}
	return out, nil
}

// SegmentMax scatters the maximum of vals into buckets selected by indices:
// out[indices[i]] = max(out[indices[i]], vals[i]). Buckets no element maps
// to are left at -Inf. This is the bucketed reduction that IndexMax's grid
// layout feeds in sparse-attention use.
func SegmentMax(vals, indices DevicePtr, n, numSegments int, out DevicePtr) error {
	if n < 0 || numSegments <= 0 {
		return ErrInvalidShape
	}

	v := vals.Float32()[:n]
	idx := indices.Int32()[:n]
	o := out.Float32()[:numSegments]

	negInf := float32(math.Inf(-1))
	for s := 0; s < numSegments; s++ {
		o[s] = negInf
	}

	// Scatter with a data-dependent write target, so this stays sequential
	// rather than going through a launch.
	for i := 0; i < n; i++ {
		s := int(idx[i])
		if s < 0 || s >= numSegments {
			return ErrInvalidIndex
		}
		if v[i] > o[s] {
			o[s] = v[i]
		}
	}
	return nil
}
