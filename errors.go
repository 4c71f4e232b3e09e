package rawbitmap

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgs is returned when a caller-side precondition is
	// violated: an out-of-bounds index, a reversed range, or a range
	// extending past the bitmap size on a mutating operation.
	ErrInvalidArgs = errors.New("rawbitmap: invalid arguments")

	// ErrNoResources is returned when the storage backend cannot extend the
	// byte region, when Find locates no qualifying run, or when Grow or
	// Shrink is called with a non-growing or non-shrinking target.
	ErrNoResources = errors.New("rawbitmap: no resources")
)

// translateStorageError maps a backend failure onto ErrNoResources while
// keeping the cause reachable via errors.Is and errors.As.
func translateStorageError(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrNoResources, err)
}
