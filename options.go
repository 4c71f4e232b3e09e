package rawbitmap

import "github.com/hupe1980/rawbitmap/storage"

type options struct {
	store  storage.Storage
	logger *Logger
}

// Option configures Bitmap construction.
type Option func(*options)

// WithStorage configures the storage backend the bitmap runs over. The
// bitmap takes ownership of the backend for its lifetime.
//
// If nil is passed, a heap buffer is used.
func WithStorage(s storage.Storage) Option {
	return func(o *options) {
		if s == nil {
			s = storage.NewHeap()
		}
		o.store = s
	}
}

// WithLogger configures the logger used for size transitions.
//
// If nil is passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}
