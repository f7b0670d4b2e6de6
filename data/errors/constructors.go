package errors

func EntryNotFound(name, dir string) error {
	return newError(ErrNotFound, "'%s' not found in '%s'", name, dir)
}

func FileNotFound(name, dir string) error {
	return newError(ErrNotFound, "can't find file '%s' in '%s'", name, dir)
}

func UnknownUser(id string) error {
	return newError(ErrUnknownUser, "user '%s' does not exist", id)
}

func PermissionDenied(op, path string) error {
	return newError(ErrPermissionDenied, "%s '%s'", op, path)
}

func DirectoryExists(name, dir string) error {
	return newError(ErrAlreadyExists, "directory '%s' already exists in '%s'", name, dir)
}

func FileExists(name, dir string) error {
	return newError(ErrAlreadyExists, "file '%s' already exists in '%s'", name, dir)
}

func InvalidPath(path string) error {
	return newError(ErrInvalidPath, "invalid directory path '%s'", path)
}

func CapacityExceeded(limit int) error {
	return newError(ErrCapacity, "limit of %d entries reached", limit)
}

func InvalidArgument(format string, args ...any) error {
	return newError(ErrInvalidArgument, format, args...)
}

func PersistFailed(err error, backend string) error {
	return newError(ErrPersist, "backend '%s': %v", backend, err)
}

func BackendUnsupported(name string, capability string) error {
	return newError(ErrBackendUnsupported, "backend '%s' lacks capability '%s'", name, capability)
}
