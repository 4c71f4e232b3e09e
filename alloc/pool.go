package alloc

import (
	"errors"
	"fmt"

	"github.com/hupe1980/rawbitmap"
)

var (
	// ErrNoSpace is returned when no free run of the requested length
	// exists.
	ErrNoSpace = errors.New("alloc: no space")

	// ErrNotAllocated is returned when Free names blocks that are not all
	// allocated.
	ErrNotAllocated = errors.New("alloc: blocks not allocated")

	// ErrInvalidCount is returned when a zero block count is requested.
	ErrInvalidCount = errors.New("alloc: count must be positive")
)

// Pool allocates runs of blocks tracked by a raw bitmap.
type Pool struct {
	bm     *rawbitmap.Bitmap
	hint   uint64
	logger *rawbitmap.Logger
}

// Option configures Pool construction.
type Option func(*Pool)

// WithLogger configures the logger used for allocation events.
//
// If nil is passed, logging is disabled.
func WithLogger(l *rawbitmap.Logger) Option {
	return func(p *Pool) {
		if l != nil {
			p.logger = l
		}
	}
}

// New creates a pool over bm. The caller resets and sizes the bitmap; every
// clear bit is considered a free block.
func New(bm *rawbitmap.Bitmap, opts ...Option) *Pool {
	p := &Pool{
		bm:     bm,
		logger: rawbitmap.NoopLogger(),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Allocate claims count contiguous free blocks and returns the first. The
// search starts at the hint left by the previous allocation and wraps to
// the start of the pool before giving up.
func (p *Pool) Allocate(count uint64) (uint64, error) {
	if count == 0 {
		return 0, ErrInvalidCount
	}

	size := p.bm.Size()
	if count > size {
		return 0, fmt.Errorf("%w: %d blocks", ErrNoSpace, count)
	}

	var start uint64
	err := rawbitmap.ErrNoResources
	if p.hint < size {
		start, err = p.bm.Find(false, p.hint, size, count)
	}
	if err != nil && p.hint > 0 {
		start, err = p.bm.Find(false, 0, size, count)
	}
	if err != nil {
		return 0, fmt.Errorf("%w: %d blocks", ErrNoSpace, count)
	}

	if err := p.bm.Set(start, start+count); err != nil {
		return 0, err
	}
	p.hint = start + count

	p.logger.Debug("blocks allocated", "start", start, "count", count)

	return start, nil
}

// Free releases count blocks starting at start. Every named block must
// currently be allocated; otherwise nothing is released.
func (p *Pool) Free(start, count uint64) error {
	if count == 0 {
		return ErrInvalidCount
	}

	end := start + count
	if end < start || end > p.bm.Size() {
		return rawbitmap.ErrInvalidArgs
	}

	if first, allSet := p.bm.GetFirstUnset(start, end); !allSet {
		return fmt.Errorf("%w: block %d", ErrNotAllocated, first)
	}

	if err := p.bm.Clear(start, end); err != nil {
		return err
	}

	p.logger.Debug("blocks freed", "start", start, "count", count)

	return nil
}

// Available returns the number of free blocks.
func (p *Pool) Available() uint64 {
	var n uint64
	size := p.bm.Size()

	for off := uint64(0); off < size; {
		start := p.bm.Scan(off, size, true) // first free block at/after off
		if start == size {
			break
		}
		end := p.bm.Scan(start, size, false) // end of the free run
		n += end - start
		off = end
	}

	return n
}

// Size returns the total number of blocks in the pool.
func (p *Pool) Size() uint64 {
	return p.bm.Size()
}

// Grow extends the pool by blocks additional free blocks. The bitmap's
// storage backend may refuse the extra capacity.
func (p *Pool) Grow(blocks uint64) error {
	if blocks == 0 {
		return ErrInvalidCount
	}
	return p.bm.Grow(p.bm.Size() + blocks)
}
