// Copyright ©2025 The Blockgrid Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package blockgrid provides CUDA-style block-grid kernels that execute on
// the CPU.
//
// The package grew out of porting sparse-attention CUDA kernels to
// CPU-only infrastructure. It keeps the CUDA execution vocabulary —
// device pointers, grids, blocks, streams — so kernels translate
// line-for-line, while the scheduler maps thread blocks onto goroutines.
//
// The core operation is IndexMax, an element-wise maximum between a
// float32 buffer and an int32 index buffer laid out as an
// aNumBlock × bNumBlock grid. SegmentMax provides the bucketed
// indexed-max reduction built from the same pieces.
//
//	d_vals, _ := blockgrid.Malloc(n * 4)
//	d_idx, _ := blockgrid.Malloc(n * 4)
//	// ... fill buffers ...
//	d_out, err := blockgrid.IndexMax(d_vals, d_idx, aNumBlock, bNumBlock)
//	if err != nil {
//		return err
//	}
//	defer blockgrid.Free(d_out)
package blockgrid
