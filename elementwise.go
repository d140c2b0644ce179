package blockgrid

// Pairwise element-wise kernels. Like IndexMax these launch one thread per
// element over a flat grid; unlike IndexMax they write into a caller-owned
// output so they compose without allocation.

// MaxInto writes the element-wise maximum of x and y into out.
func MaxInto(x, y, out DevicePtr, n int) error {
	return binaryInto(x, y, out, n, func(a, b float32) float32 {
		if a > b {
			return a
		}
		return b
	})
}

// MinInto writes the element-wise minimum of x and y into out.
func MinInto(x, y, out DevicePtr, n int) error {
	return binaryInto(x, y, out, n, func(a, b float32) float32 {
		if a < b {
			return a
		}
		return b
	})
}

// ScaleInto writes alpha*x into out.
func ScaleInto(x, out DevicePtr, n int, alpha float32) error {
	xs := x.Float32()
	os := out.Float32()

	grid, block := flatGrid(n)
	kernel := KernelFunc(func(tid ThreadID, args ...interface{}) {
		i := tid.Global()
		if i >= n {
			return
		}
		os[i] = alpha * xs[i]
	})

	if err := Launch(kernel, grid, block); err != nil {
		return err
	}
	return Synchronize()
}

func binaryInto(x, y, out DevicePtr, n int, op func(a, b float32) float32) error {
	xs := x.Float32()
	ys := y.Float32()
	os := out.Float32()

	grid, block := flatGrid(n)
	kernel := KernelFunc(func(tid ThreadID, args ...interface{}) {
		i := tid.Global()
		if i >= n {
			return
		}
		os[i] = op(xs[i], ys[i])
	})

	if err := Launch(kernel, grid, block); err != nil {
		return err
	}
	return Synchronize()
}
