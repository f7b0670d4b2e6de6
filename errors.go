package vfs

import "github.com/mwantia/vfsh/data/errors"

// Standard errors returned by namespace operations, use errors.Is to match them.
var (
	ErrNotFound         = errors.ErrNotFound
	ErrPermissionDenied = errors.ErrPermissionDenied
	ErrAlreadyExists    = errors.ErrAlreadyExists
	ErrInvalidPath      = errors.ErrInvalidPath
	ErrUnknownUser      = errors.ErrUnknownUser
	ErrCapacity         = errors.ErrCapacity
	ErrPersist          = errors.ErrPersist
	ErrInvalidArgument  = errors.ErrInvalidArgument
)
