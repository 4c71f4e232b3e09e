package storage

import (
	"errors"
	"fmt"
	"os"

	"github.com/hupe1980/rawbitmap/internal/mmap"
)

// ErrClosed is returned when a released backend is resized.
var ErrClosed = errors.New("storage: closed")

// Paged is a page-granular Storage with a fixed reservation ceiling.
//
// The whole ceiling is reserved as a single anonymous mapping when the
// backend is created; Allocate and Grow only move the committed length, so
// the base address of Bytes never changes. Requests beyond the ceiling fail
// with ErrNoSpace.
type Paged struct {
	mapping  *mmap.Mapping
	length   uint64 // committed bytes, multiple of pageSize
	pageSize uint64
	maxPages uint64
}

// NewPaged reserves maxPages OS pages and returns the backend.
func NewPaged(maxPages uint64) (*Paged, error) {
	if maxPages == 0 {
		return nil, fmt.Errorf("storage: maxPages must be positive")
	}

	pageSize := uint64(os.Getpagesize())

	m, err := mmap.MapAnon(int(maxPages * pageSize))
	if err != nil {
		return nil, fmt.Errorf("storage: reserve %d pages: %w", maxPages, err)
	}

	return &Paged{
		mapping:  m,
		pageSize: pageSize,
		maxPages: maxPages,
	}, nil
}

// Allocate discards the current contents and commits at least size bytes.
func (p *Paged) Allocate(size uint64) error {
	rounded, err := p.round(size)
	if err != nil {
		return err
	}
	mem := p.mapping.Bytes()
	if mem == nil && rounded > 0 {
		return ErrClosed
	}
	clear(mem[:max(rounded, p.length)])
	p.length = rounded
	return nil
}

// Grow commits at least size bytes, preserving the current contents.
func (p *Paged) Grow(size uint64) error {
	rounded, err := p.round(size)
	if err != nil {
		return err
	}
	if rounded <= p.length {
		return nil
	}
	mem := p.mapping.Bytes()
	if mem == nil {
		return ErrClosed
	}
	clear(mem[p.length:rounded])
	p.length = rounded
	return nil
}

// Bytes returns the committed prefix of the reservation.
func (p *Paged) Bytes() []byte {
	if p.length == 0 {
		return nil
	}
	return p.mapping.Bytes()[:p.length]
}

// PageSize returns the OS page size.
func (p *Paged) PageSize() uint64 {
	return p.pageSize
}

// MaxPages returns the reservation ceiling in pages.
func (p *Paged) MaxPages() uint64 {
	return p.maxPages
}

// Close releases the reservation.
func (p *Paged) Close() error {
	p.length = 0
	return p.mapping.Close()
}

// round converts a byte count to whole committed pages, enforcing the
// reservation ceiling.
func (p *Paged) round(size uint64) (uint64, error) {
	pages := (size + p.pageSize - 1) / p.pageSize
	if pages > p.maxPages {
		return 0, fmt.Errorf("%w: need %d pages, reserved %d", ErrNoSpace, pages, p.maxPages)
	}
	return pages * p.pageSize, nil
}
