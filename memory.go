package blockgrid

import (
	"fmt"
	"sync"
	"unsafe"
)

// MemcpyKind tags the direction of a memory transfer. The distinction is
// kept for CUDA source compatibility; every kind is a plain copy here.
type MemcpyKind int

const (
	MemcpyHostToHost MemcpyKind = iota
	MemcpyHostToDevice
	MemcpyDeviceToHost
	MemcpyDeviceToDevice
	MemcpyDefault
)

// MemoryPool hands out aligned device allocations and keeps freed blocks
// on a free list for reuse.
type MemoryPool struct {
	mu         sync.Mutex
	allocated  map[uintptr]*allocation
	freeList   []*allocation
	totalAlloc int64
	peakAlloc  int64
}

type allocation struct {
	buf  []byte // keeps the backing array reachable
	ptr  unsafe.Pointer
	size int
	used bool
}

// NewMemoryPool creates an empty pool.
func NewMemoryPool() *MemoryPool {
	return &MemoryPool{
		allocated: make(map[uintptr]*allocation),
	}
}

// Malloc allocates size bytes of device memory from the context's pool.
func (ctx *Context) Malloc(size int) (DevicePtr, error) {
	return ctx.memory.Allocate(size)
}

// Free returns memory to the context's pool.
func (ctx *Context) Free(ptr DevicePtr) error {
	return ctx.memory.Free(ptr)
}

// Memcpy copies size bytes between any combination of DevicePtr and host
// slices. Zero-size copies and nil operands are no-ops.
func (ctx *Context) Memcpy(dst, src interface{}, size int, kind MemcpyKind) error {
	dstPtr, err := operandPointer("Memcpy", "dst", dst)
	if err != nil {
		return err
	}
	srcPtr, err := operandPointer("Memcpy", "src", src)
	if err != nil {
		return err
	}

	if dstPtr != nil && srcPtr != nil && size > 0 {
		copy(unsafe.Slice((*byte)(dstPtr), size), unsafe.Slice((*byte)(srcPtr), size))
	}
	return nil
}

// operandPointer extracts the base pointer from a Memcpy operand.
func operandPointer(op, which string, v interface{}) (unsafe.Pointer, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil
	case DevicePtr:
		return x.ptr, nil
	case unsafe.Pointer:
		return x, nil
	case []byte:
		if len(x) == 0 {
			return nil, nil
		}
		return unsafe.Pointer(&x[0]), nil
	case []float32:
		if len(x) == 0 {
			return nil, nil
		}
		return unsafe.Pointer(&x[0]), nil
	case []float64:
		if len(x) == 0 {
			return nil, nil
		}
		return unsafe.Pointer(&x[0]), nil
	case []int32:
		if len(x) == 0 {
			return nil, nil
		}
		return unsafe.Pointer(&x[0]), nil
	default:
		return nil, NewInvalidArgError(op, fmt.Sprintf("unsupported %s type: %T", which, v))
	}
}

// Allocate hands out an aligned block, reusing a freed one when it fits.
func (mp *MemoryPool) Allocate(size int) (DevicePtr, error) {
	if size <= 0 {
		return DevicePtr{}, ErrInvalidSize
	}

	mp.mu.Lock()
	defer mp.mu.Unlock()

	alignedSize := (size + MemoryAlignment - 1) &^ (MemoryAlignment - 1)

	for i, alloc := range mp.freeList {
		if alloc.size >= alignedSize {
			mp.freeList = append(mp.freeList[:i], mp.freeList[i+1:]...)
			alloc.used = true

			mp.totalAlloc += int64(alloc.size)
			if mp.totalAlloc > mp.peakAlloc {
				mp.peakAlloc = mp.totalAlloc
			}
			return DevicePtr{ptr: alloc.ptr, size: size}, nil
		}
	}

	buf := make([]byte, alignedSize)
	ptr := unsafe.Pointer(&buf[0])

	alloc := &allocation{
		buf:  buf,
		ptr:  ptr,
		size: alignedSize,
		used: true,
	}
	mp.allocated[uintptr(ptr)] = alloc

	mp.totalAlloc += int64(alignedSize)
	if mp.totalAlloc > mp.peakAlloc {
		mp.peakAlloc = mp.totalAlloc
	}

	return DevicePtr{ptr: ptr, size: size}, nil
}

// Free marks a block reusable. Freeing an unknown pointer or a block that
// is already free is an error.
func (mp *MemoryPool) Free(ptr DevicePtr) error {
	if ptr.ptr == nil {
		return nil
	}

	mp.mu.Lock()
	defer mp.mu.Unlock()

	alloc, ok := mp.allocated[uintptr(ptr.ptr)]
	if !ok {
		return NewMemoryError("Free", "pointer not found in allocation pool", nil)
	}
	if !alloc.used {
		return ErrDoubleFree
	}

	alloc.used = false
	mp.freeList = append(mp.freeList, alloc)
	mp.totalAlloc -= int64(alloc.size)
	return nil
}

// GetStats reports currently allocated and peak bytes.
func (mp *MemoryPool) GetStats() (allocated, peak int64) {
	mp.mu.Lock()
	defer mp.mu.Unlock()
	return mp.totalAlloc, mp.peakAlloc
}

// Float32 returns the buffer as a float32 slice.
func (d DevicePtr) Float32() []float32 {
	if d.ptr == nil {
		return nil
	}
	return unsafe.Slice((*float32)(d.ptr), d.size/4)
}

// Int32 returns the buffer as an int32 slice.
func (d DevicePtr) Int32() []int32 {
	if d.ptr == nil {
		return nil
	}
	return unsafe.Slice((*int32)(d.ptr), d.size/4)
}

// Byte returns the raw bytes of the buffer.
func (d DevicePtr) Byte() []byte {
	if d.ptr == nil {
		return nil
	}
	return unsafe.Slice((*byte)(d.ptr), d.size)
}

// Offset returns a handle shifted by the given number of bytes into the
// same underlying allocation.
func (d DevicePtr) Offset(bytes int) DevicePtr {
	return DevicePtr{
		ptr:    unsafe.Pointer(uintptr(d.ptr) + uintptr(bytes)),
		size:   d.size - bytes,
		offset: d.offset + bytes,
	}
}

// Size returns the size of the region in bytes.
func (d DevicePtr) Size() int {
	return d.size
}

// systemMemory reports total system memory. A fixed figure is good enough
// for capability reporting; nothing allocates against it.
func systemMemory() uint64 {
	return 16 * 1024 * 1024 * 1024
}
