// Package storage provides the byte-region backends a raw bitmap runs over.
//
// A bitmap owns exactly one Storage for its lifetime and reads and writes
// bits directly in the slice returned by Bytes. Two backends are provided:
//
//   - Heap: an ordinary heap buffer with byte granularity. It can be
//     reallocated to any size but never extended in place, making it the
//     fixed-capacity choice.
//   - Paged: a page-granular region carved out of a pre-reserved anonymous
//     memory mapping. It grows in place up to the reservation ceiling.
//
// Backends are not safe for concurrent use; all access goes through the
// owning bitmap, which does no locking of its own.
package storage
