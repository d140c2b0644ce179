// Package blockgrid tuning constants.
package blockgrid

const (
	// DefaultBlockSize is the threads-per-block used by flat launches.
	DefaultBlockSize = 256

	// MaxThreadsPerBlock matches the CUDA limit for compatibility.
	MaxThreadsPerBlock = 1024

	// MemoryAlignment aligns pool allocations to cache lines.
	MemoryAlignment = 64

	// L1CacheSize is the assumed per-core L1 data cache.
	L1CacheSize = 32 * 1024

	// L2CacheSize is the assumed per-core L2 cache.
	L2CacheSize = 256 * 1024
)
