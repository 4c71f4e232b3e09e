// Package mmap provides anonymous memory mappings for off-heap byte regions.
//
// A Mapping is a fixed-size, zero-initialized, read-write region obtained
// directly from the OS. Storage backends reserve their growth ceiling as a
// single mapping up front and expose a prefix of it, so growing never moves
// the region.
//
// # Platform Support
//
//   - Unix (Linux, macOS, BSD): mmap(2) with MAP_ANON|MAP_PRIVATE
//   - Windows: VirtualAlloc with MEM_RESERVE|MEM_COMMIT
//
// Both are demand-paged: pages are only backed by physical memory when
// first touched, so reserving a large ceiling is cheap.
package mmap
