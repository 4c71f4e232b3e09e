// Package alloc provides a next-fit run allocator over a raw bitmap.
//
// A Pool treats each bit of a rawbitmap.Bitmap as one allocatable block:
// set means allocated, clear means free. Allocate claims the
// lowest-addressed free run at or after a moving search hint, wrapping
// around once; Free verifies and releases a previously claimed run.
//
// Like the bitmap it wraps, a Pool is not safe for concurrent use.
package alloc
