package data

import (
	"fmt"
	"strconv"
)

// FileMode represents the permission bits of an entry.
// Only the lower 9 bits are meaningful. Permissions are evaluated against
// the owner triplet (bits 6-8) and the other triplet (bits 0-2).
type FileMode uint32

const (
	// Permission bits
	ModePerm FileMode = 0777

	// Default mode for newly created directories
	ModeDirectory FileMode = 0755
)

// Perm returns the Unix permission bits in m (the lower 9 bits).
func (m FileMode) Perm() FileMode {
	return m & ModePerm
}

// OwnerBits returns the owner triplet.
func (m FileMode) OwnerBits() uint32 {
	return uint32(m>>6) & 0x7
}

// OtherBits returns the other triplet.
func (m FileMode) OtherBits() uint32 {
	return uint32(m) & 0x7
}

// Octal returns the mode formatted like chmod expects it, e.g. "755".
func (m FileMode) Octal() string {
	return fmt.Sprintf("%o", uint32(m.Perm()))
}

// String returns the nine permission characters in ls -l format.
// Example: "rwxr-xr-x" for 0755.
func (m FileMode) String() string {
	const rwx = "rwxrwxrwx"
	var buf [9]byte

	for i, c := range rwx {
		if m&(1<<uint(9-1-i)) != 0 {
			buf[i] = byte(c)
		} else {
			buf[i] = '-'
		}
	}

	return string(buf[:])
}

// ParseOctalMode parses a chmod style octal string like "755" or "0700".
func ParseOctalMode(value string) (FileMode, error) {
	v, err := strconv.ParseUint(value, 8, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid octal mode '%s': %w", value, err)
	}

	if FileMode(v) > ModePerm {
		return 0, fmt.Errorf("mode '%s' exceeds %o", value, uint32(ModePerm))
	}

	return FileMode(v), nil
}
