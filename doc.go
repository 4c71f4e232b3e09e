// Package rawbitmap implements a growable raw bitmap over pluggable storage.
//
// A Bitmap is a logical array of single-bit flags, indexed by non-negative
// positions, with efficient range operations (bulk set, clear, test, scan,
// find-run) and dynamic resizing. It is the substrate for allocators and
// free-space trackers that ask questions like "is every bit in [a, b) set?"
// or "where does a run of k clear bits begin?".
//
// # Usage
//
//	bm := rawbitmap.New()
//	if err := bm.Reset(128); err != nil {
//		// backend could not allocate
//	}
//	_ = bm.Set(2, 100)
//
//	start, err := bm.Find(false, 0, bm.Size(), 5)
//	if err != nil {
//		// no run of 5 clear bits
//	}
//
// # Storage
//
// The bitmap reads and writes bytes through the storage.Storage interface
// and never allocates outside Reset, Grow and Shrink. The default backend
// is a fixed-capacity heap buffer; WithStorage selects a different one,
// such as the page-granular backend with in-place growth:
//
//	st, err := storage.NewPaged(1024)
//	...
//	bm := rawbitmap.New(rawbitmap.WithStorage(st))
//
// # Concurrency
//
// A Bitmap is not safe for concurrent use; callers coordinate externally.
// No operation blocks, suspends or yields.
package rawbitmap
