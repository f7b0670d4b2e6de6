package data

import (
	"fmt"
	"time"
)

// EntryKind distinguishes files from directories.
// The value is the character used in the record format.
type EntryKind byte

const (
	KindFile      EntryKind = 'f'
	KindDirectory EntryKind = 'd'
)

func (k EntryKind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindDirectory:
		return "directory"
	default:
		return "unknown"
	}
}

// Valid reports whether k is a known kind.
func (k EntryKind) Valid() bool {
	return k == KindFile || k == KindDirectory
}

const (
	// Nominal size reported for every directory
	DirectorySize int64 = 4096

	// Fixed link count rendered by detailed listings
	LinkCount = 1

	// Layout used for CreatedAt
	TimestampFormat = "2006-01-02"
)

// Entry describes one file or directory in the namespace.
type Entry struct {
	ParentPath string    `json:"parent_path"`
	Kind       EntryKind `json:"kind"`
	Name       string    `json:"name"`
	Size       int64     `json:"size"`
	Mode       FileMode  `json:"mode"`
	Owner      string    `json:"owner"`
	CreatedAt  string    `json:"created_at"`
	Hidden     bool      `json:"hidden"`
	SelfPath   string    `json:"self_path"`
}

// NewDirectory creates a directory entry below parent using the defaults
// applied by mkdir.
func NewDirectory(parent, name, owner string, now time.Time) *Entry {
	return &Entry{
		ParentPath: parent,
		Kind:       KindDirectory,
		Name:       name,
		Size:       DirectorySize,
		Mode:       ModeDirectory,
		Owner:      owner,
		CreatedAt:  now.Format(TimestampFormat),
		SelfPath:   Join(parent, name),
	}
}

func (e *Entry) IsDir() bool {
	return e.Kind == KindDirectory
}

func (e *Entry) IsOwnedBy(id string) bool {
	return e.Owner == id
}

// ModeString renders kind and permission bits, e.g. "drwxr-xr-x".
func (e *Entry) ModeString() string {
	prefix := "-"
	if e.IsDir() {
		prefix = "d"
	}

	return prefix + e.Mode.Perm().String()
}

// Details renders the entry like a single ls -l line.
func (e *Entry) Details() string {
	return fmt.Sprintf("%s %d %s %d %s %s", e.ModeString(), LinkCount, e.Owner, e.Size, e.CreatedAt, e.Name)
}

// Clone returns a copy of the entry.
func (e *Entry) Clone() *Entry {
	if e == nil {
		return nil
	}

	clone := *e
	return &clone
}

// Validate checks the fields required by the store.
func (e *Entry) Validate() error {
	if !e.Kind.Valid() {
		return fmt.Errorf("invalid entry kind '%c'", e.Kind)
	}
	if e.Name == "" {
		return fmt.Errorf("entry name is empty")
	}
	if e.ParentPath == "" || e.SelfPath == "" {
		return fmt.Errorf("entry '%s' has no path", e.Name)
	}

	return nil
}
