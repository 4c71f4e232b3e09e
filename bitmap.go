package rawbitmap

import (
	"math/bits"

	"github.com/hupe1980/rawbitmap/storage"
)

const bitsPerByte = 8

// Bitmap is a growable array of single-bit flags over a raw byte region.
//
// Bit i lives in byte i/8 at mask 1<<(i%8): the lowest-numbered bit of a
// byte is its least significant bit. Every operation uses this mapping.
//
// Ranges are half-open [bitoff, bitmax). An empty range is valid
// everywhere; a reversed range is an error on mutating operations and
// vacuously "all set" on reads. Read operations clamp the range to Size,
// which also gives GetOne its boundary rule: beyond the end of the bitmap,
// every bit is considered set.
//
// On any failure the bitmap is bitwise unchanged from its pre-call state;
// mutators validate all arguments before the first byte is written.
//
// A Bitmap is not safe for concurrent use.
type Bitmap struct {
	size   uint64
	store  storage.Storage
	logger *Logger
}

// New creates an empty bitmap. Without options it runs over a fixed-capacity
// heap buffer and does not log.
func New(opts ...Option) *Bitmap {
	o := options{
		store:  storage.NewHeap(),
		logger: NoopLogger(),
	}

	for _, opt := range opts {
		opt(&o)
	}

	return &Bitmap{
		store:  o.store,
		logger: o.logger,
	}
}

// Reset discards all contents and resizes the bitmap to size bits, all
// clear.
func (b *Bitmap) Reset(size uint64) error {
	if err := b.store.Allocate(bytesFor(size)); err != nil {
		return translateStorageError(err)
	}

	b.size = size
	data := b.store.Bytes()
	clear(data[:bytesFor(size)])

	b.logger.Debug("bitmap reset", "size", size, "capacity_bytes", len(data))

	return nil
}

// Size returns the current logical bit count.
func (b *Bitmap) Size() uint64 {
	return b.size
}

// GetOne reports whether bit bitoff is set. Bits at or beyond Size read as
// set.
func (b *Bitmap) GetOne(bitoff uint64) bool {
	return b.Get(bitoff, bitoff+1)
}

// Get reports whether every bit in [bitoff, bitmax) is set. An empty or
// reversed range is vacuously true; the portion of the range at or past
// Size is ignored.
func (b *Bitmap) Get(bitoff, bitmax uint64) bool {
	_, allSet := b.GetFirstUnset(bitoff, bitmax)
	return allSet
}

// GetFirstUnset is Get with the position of the first unset bit in the
// range. When every bit is set it returns (min(bitmax, Size()), true).
func (b *Bitmap) GetFirstUnset(bitoff, bitmax uint64) (uint64, bool) {
	p := b.Scan(bitoff, bitmax, true)
	return p, p == min(bitmax, b.size)
}

// SetOne sets bit bitoff. Setting an already-set bit succeeds.
func (b *Bitmap) SetOne(bitoff uint64) error {
	if bitoff >= b.size {
		return ErrInvalidArgs
	}
	b.store.Bytes()[bitoff/bitsPerByte] |= 1 << (bitoff % bitsPerByte)
	return nil
}

// ClearOne clears bit bitoff. Clearing an already-clear bit succeeds.
func (b *Bitmap) ClearOne(bitoff uint64) error {
	if bitoff >= b.size {
		return ErrInvalidArgs
	}
	b.store.Bytes()[bitoff/bitsPerByte] &^= 1 << (bitoff % bitsPerByte)
	return nil
}

// Set sets every bit in [bitoff, bitmax). An empty range is a no-op. The
// interior whole bytes are written with byte stores; the partial bytes at
// the edges are masked so bits outside the range are untouched.
func (b *Bitmap) Set(bitoff, bitmax uint64) error {
	if bitoff > bitmax || bitmax > b.size {
		return ErrInvalidArgs
	}
	if bitoff == bitmax {
		return nil
	}

	data := b.store.Bytes()
	first := bitoff / bitsPerByte
	last := (bitmax - 1) / bitsPerByte
	// fm covers the bits at/above bitoff in the first byte, lm the bits
	// below bitmax in the last byte.
	fm := ^lowMask(bitoff % bitsPerByte)
	lm := lowMask((bitmax-1)%bitsPerByte + 1)

	if first == last {
		data[first] |= fm & lm
		return nil
	}

	data[first] |= fm
	for i := first + 1; i < last; i++ {
		data[i] = 0xFF
	}
	data[last] |= lm

	return nil
}

// Clear clears every bit in [bitoff, bitmax). Same validity rules as Set.
func (b *Bitmap) Clear(bitoff, bitmax uint64) error {
	if bitoff > bitmax || bitmax > b.size {
		return ErrInvalidArgs
	}
	clearRange(b.store.Bytes(), bitoff, bitmax)
	return nil
}

// ClearAll clears every bit. It never fails.
func (b *Bitmap) ClearAll() {
	clear(b.store.Bytes()[:bytesFor(b.size)])
}

// Scan returns the smallest position in [bitoff, bitmax) whose bit differs
// from isSet, or the end of the range if every bit matches. The range is
// clamped to Size before scanning; a clamped-out range returns the clamped
// end.
func (b *Bitmap) Scan(bitoff, bitmax uint64, isSet bool) uint64 {
	bitmax = min(bitmax, b.size)
	if bitoff >= bitmax {
		return bitmax
	}

	data := b.store.Bytes()
	idx := bitoff / bitsPerByte
	last := (bitmax - 1) / bitsPerByte

	// A set bit in w marks a position whose bit differs from isSet.
	w := data[idx]
	if isSet {
		w = ^w
	}
	w &^= lowMask(bitoff % bitsPerByte)

	for w == 0 && idx < last {
		idx++
		w = data[idx]
		if isSet {
			w = ^w
		}
	}

	if w == 0 {
		return bitmax
	}

	p := idx*bitsPerByte + uint64(bits.TrailingZeros8(w))
	return min(p, bitmax)
}

// Find locates the lowest-addressed contiguous run of at least runLen bits
// equal to isSet whose entire extent lies within [bitoff, bitmax) and
// inside the bitmap, and returns its start. A runLen of zero requires no
// run and reports bitoff.
//
// On ErrNoResources the returned position is bitmax, so a higher-level
// search can resume past this range.
func (b *Bitmap) Find(isSet bool, bitoff, bitmax, runLen uint64) (uint64, error) {
	if bitoff >= bitmax {
		return 0, ErrInvalidArgs
	}
	if runLen == 0 {
		return bitoff, nil
	}

	end := min(bitmax, b.size)
	for p := bitoff; p < end; {
		// Start of the next run of isSet bits, then its end.
		q := b.Scan(p, bitmax, !isSet)
		if q >= end {
			break
		}
		r := b.Scan(q, bitmax, isSet)
		if r-q >= runLen {
			return q, nil
		}
		p = r
	}

	return bitmax, ErrNoResources
}

// Grow extends the bitmap to size bits. Newly exposed bits read as clear
// and previously-set bits are preserved. The target must be strictly
// larger than Size; the backend may refuse the extra capacity, in which
// case the bitmap is unchanged.
func (b *Bitmap) Grow(size uint64) error {
	if size <= b.size {
		return ErrNoResources
	}

	newLen := bytesFor(size)
	if newLen > uint64(len(b.store.Bytes())) {
		if err := b.store.Grow(newLen); err != nil {
			return translateStorageError(err)
		}
	}

	old := b.size
	b.size = size
	clearRange(b.store.Bytes(), old, size)

	b.logger.Debug("bitmap grow", "from", old, "to", size)

	return nil
}

// Shrink truncates the bitmap to size bits. The target must be strictly
// smaller than Size. The truncated bits are zeroed so that a later Grow
// exposes clear bits.
func (b *Bitmap) Shrink(size uint64) error {
	if size >= b.size {
		return ErrNoResources
	}

	old := b.size
	b.size = size
	clearRange(b.store.Bytes(), size, old)

	b.logger.Debug("bitmap shrink", "from", old, "to", size)

	return nil
}

// Close releases the storage handle. The bitmap must not be used after
// Close.
func (b *Bitmap) Close() error {
	b.size = 0
	return b.store.Close()
}

// clearRange clears [bitoff, bitmax) in data without validation.
func clearRange(data []byte, bitoff, bitmax uint64) {
	if bitoff >= bitmax {
		return
	}

	first := bitoff / bitsPerByte
	last := (bitmax - 1) / bitsPerByte
	fm := ^lowMask(bitoff % bitsPerByte)
	lm := lowMask((bitmax-1)%bitsPerByte + 1)

	if first == last {
		data[first] &^= fm & lm
		return
	}

	data[first] &^= fm
	clear(data[first+1 : last])
	data[last] &^= lm
}

// bytesFor returns the number of bytes needed to hold n bits.
func bytesFor(n uint64) uint64 {
	return (n + bitsPerByte - 1) / bitsPerByte
}

// lowMask returns a byte with the n low bits set, for n in [0, 8].
func lowMask(n uint64) byte {
	return byte(1)<<n - 1
}
