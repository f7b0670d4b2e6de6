package errors

import (
	"errors"
	"fmt"
	"sync"
)

// Standard errors returned by namespace operations and backends.
var (
	// Taxonomy of recoverable failures
	ErrNotFound         = errors.New("vfs: not found")
	ErrPermissionDenied = errors.New("vfs: permission denied")
	ErrAlreadyExists    = errors.New("vfs: already exists")
	ErrInvalidPath      = errors.New("vfs: invalid path")

	// Store errors
	ErrCapacity = errors.New("vfs: entry capacity exceeded")
	ErrPersist  = errors.New("vfs: failed to persist entries")

	// Argument errors
	ErrInvalidArgument = errors.New("vfs: invalid argument")

	// Backend errors
	ErrBackendUnsupported = errors.New("vfs: backend capability unsupported")
	ErrBackendClosed      = errors.New("vfs: backend closed")

	// ErrUnknownUser matches ErrNotFound as well.
	ErrUnknownUser = fmt.Errorf("%w: unknown user", ErrNotFound)
)

// Errors collects multiple errors, e.g. while closing several backends.
type Errors struct {
	mu     sync.RWMutex
	errors []error
}

func (e *Errors) Add(err error) {
	if err == nil {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.errors = append(e.errors, err)
}

func (e *Errors) Errors() error {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if len(e.errors) == 0 {
		return nil
	}

	return errors.Join(e.errors...)
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

func newError(err error, format string, args ...any) error {
	return fmt.Errorf("%w: %s", err, fmt.Sprintf(format, args...))
}
