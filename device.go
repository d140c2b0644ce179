package blockgrid

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"unsafe"
)

// Device describes the compute device kernels run on. There is exactly one:
// the host CPU with its cores and memory.
type Device struct {
	ID         int
	Name       string
	TotalMem   uint64 // Total memory in bytes
	NumCores   int
	MaxThreads int // Maximum concurrent kernel threads
}

// Context owns device resources: the memory pool and the set of streams.
// A default context is created at init time; the package-level functions
// operate on it. Most programs never need another one.
type Context struct {
	device        *Device
	mu            sync.Mutex // guards streams
	streams       map[int]*Stream
	streamID      int32
	memory        *MemoryPool
	defaultStream *Stream
}

// Stream is an ordered queue of device operations. Work submitted to one
// stream runs in submission order; separate streams may run concurrently.
type Stream struct {
	id    int
	tasks chan func()
	done  chan struct{}
	wg    sync.WaitGroup
}

// Dim3 mirrors CUDA's dim3 for grid and block extents. Unset dimensions
// should be 1, not 0, when the launch is one-dimensional.
type Dim3 struct {
	X, Y, Z int
}

// Size returns the number of elements covered by the dimensions.
func (d Dim3) Size() int {
	return d.X * d.Y * d.Z
}

// ThreadID locates one kernel thread within the launch hierarchy, carrying
// the same four coordinates CUDA exposes as built-ins.
type ThreadID struct {
	BlockIdx  Dim3
	ThreadIdx Dim3
	BlockDim  Dim3
	GridDim   Dim3
}

// Global returns the flat one-dimensional thread index.
func (tid ThreadID) Global() int {
	return tid.BlockIdx.X*tid.BlockDim.X + tid.ThreadIdx.X
}

// GlobalX returns the global X index.
func (tid ThreadID) GlobalX() int {
	return tid.BlockIdx.X*tid.BlockDim.X + tid.ThreadIdx.X
}

// GlobalY returns the global Y index.
func (tid ThreadID) GlobalY() int {
	return tid.BlockIdx.Y*tid.BlockDim.Y + tid.ThreadIdx.Y
}

// Kernel is a unit of parallel work. Execute is called concurrently from
// many goroutines and must be safe for that.
type Kernel interface {
	Execute(tid ThreadID, args ...interface{})
}

// KernelFunc adapts a plain function into a Kernel.
type KernelFunc func(tid ThreadID, args ...interface{})

func (fn KernelFunc) Execute(tid ThreadID, args ...interface{}) {
	fn(tid, args...)
}

// DevicePtr is a handle to device memory. Typed views (Float32, Int32)
// expose the underlying buffer; Offset derives sub-region handles.
type DevicePtr struct {
	ptr    unsafe.Pointer
	size   int
	offset int
}

var (
	defaultDevice  *Device
	defaultContext *Context
	initOnce       sync.Once
)

func init() {
	initOnce.Do(func() {
		defaultDevice = &Device{
			ID:         0,
			Name:       "CPU",
			TotalMem:   systemMemory(),
			NumCores:   runtime.NumCPU(),
			MaxThreads: runtime.NumCPU() * 2,
		}

		defaultContext = &Context{
			device:  defaultDevice,
			streams: make(map[int]*Stream),
			memory:  NewMemoryPool(),
		}
		defaultContext.defaultStream = defaultContext.CreateStream()
	})
}

// Malloc allocates device memory from the default context.
func Malloc(size int) (DevicePtr, error) {
	return defaultContext.Malloc(size)
}

// Free releases memory allocated with Malloc.
func Free(ptr DevicePtr) error {
	return defaultContext.Free(ptr)
}

// Memcpy copies between host slices and device pointers on the default
// context. The kind tag is kept for CUDA compatibility; all memory is
// host-visible here.
func Memcpy(dst, src interface{}, size int, kind MemcpyKind) error {
	return defaultContext.Memcpy(dst, src, size, kind)
}

// Launch runs a kernel over the given grid on the default stream.
func Launch(kernel Kernel, grid, block Dim3, args ...interface{}) error {
	return defaultContext.Launch(kernel, grid, block, args...)
}

// LaunchFunc runs a kernel function over the given grid on the default stream.
func LaunchFunc(fn KernelFunc, grid, block Dim3, args ...interface{}) error {
	return defaultContext.LaunchFunc(fn, grid, block, args...)
}

// Synchronize blocks until every stream on the default context drains.
func Synchronize() error {
	return defaultContext.Synchronize()
}

// GetDevice returns the device the default context runs on.
func GetDevice() *Device {
	return defaultDevice
}

// GetDeviceCount reports the number of available devices, which is always 1.
func GetDeviceCount() int {
	return 1
}

// GetDeviceProperties returns properties for the given device ID.
func GetDeviceProperties(id int) (*Device, error) {
	if id != 0 {
		return nil, NewInvalidArgError("GetDeviceProperties", fmt.Sprintf("invalid device ID: %d", id))
	}
	return defaultDevice, nil
}

// SetDevice selects the active device. Only device 0 exists.
func SetDevice(id int) error {
	if id != 0 {
		return ErrInvalidDevice
	}
	return nil
}

// CreateStream creates a new stream with its own worker goroutine.
func (ctx *Context) CreateStream() *Stream {
	id := int(atomic.AddInt32(&ctx.streamID, 1))
	stream := &Stream{
		id:    id,
		tasks: make(chan func(), 1000),
		done:  make(chan struct{}),
	}
	go stream.worker()

	ctx.mu.Lock()
	ctx.streams[id] = stream
	ctx.mu.Unlock()
	return stream
}

// Launch runs a kernel on the context's default stream.
func (ctx *Context) Launch(kernel Kernel, grid, block Dim3, args ...interface{}) error {
	return ctx.LaunchStream(kernel, grid, block, ctx.defaultStream, args...)
}

// LaunchFunc runs a kernel function on the context's default stream.
func (ctx *Context) LaunchFunc(fn KernelFunc, grid, block Dim3, args ...interface{}) error {
	return ctx.LaunchStream(fn, grid, block, ctx.defaultStream, args...)
}

// LaunchStream runs a kernel on a specific stream.
func (ctx *Context) LaunchStream(kernel Kernel, grid, block Dim3, stream *Stream, args ...interface{}) error {
	return ctx.launchInternal(kernel.Execute, grid, block, stream, args...)
}

// Synchronize waits for every stream owned by the context.
func (ctx *Context) Synchronize() error {
	ctx.mu.Lock()
	streams := make([]*Stream, 0, len(ctx.streams))
	for _, stream := range ctx.streams {
		streams = append(streams, stream)
	}
	ctx.mu.Unlock()

	for _, stream := range streams {
		stream.Synchronize()
	}
	return nil
}

func (s *Stream) worker() {
	for task := range s.tasks {
		task()
		s.wg.Done()
	}
	close(s.done)
}

// Submit queues a task on the stream.
func (s *Stream) Submit(task func()) {
	s.wg.Add(1)
	s.tasks <- task
}

// Synchronize waits for all queued tasks on the stream to finish.
func (s *Stream) Synchronize() {
	s.wg.Wait()
}
