package vfs

import (
	"time"

	"github.com/mwantia/vfsh/backend"
	"github.com/mwantia/vfsh/log"
)

type VirtualFileSystemOptions struct {
	Logger   *log.Logger
	Capacity int

	Entries backend.EntryBackend
	Users   backend.UserBackend
	Content backend.ContentBackend

	// Called when the entry set could not be persisted
	FatalHandler func(err error)
	// Source of creation timestamps
	Clock func() time.Time
}

type VirtualFileSystemOption func(*VirtualFileSystemOptions) error

func newDefaultVirtualFileSystemOptions() *VirtualFileSystemOptions {
	return &VirtualFileSystemOptions{
		Logger: log.NewLogger("vfsh", log.Info),
		Clock:  time.Now,
	}
}

func WithLogger(logger *log.Logger) VirtualFileSystemOption {
	return func(opts *VirtualFileSystemOptions) error {
		opts.Logger = logger
		return nil
	}
}

// WithCapacity limits the number of entries the store accepts.
func WithCapacity(capacity int) VirtualFileSystemOption {
	return func(opts *VirtualFileSystemOptions) error {
		opts.Capacity = capacity
		return nil
	}
}

func WithEntryBackend(entries backend.EntryBackend) VirtualFileSystemOption {
	return func(opts *VirtualFileSystemOptions) error {
		opts.Entries = entries
		return nil
	}
}

func WithUserBackend(users backend.UserBackend) VirtualFileSystemOption {
	return func(opts *VirtualFileSystemOptions) error {
		opts.Users = users
		return nil
	}
}

func WithContentBackend(content backend.ContentBackend) VirtualFileSystemOption {
	return func(opts *VirtualFileSystemOptions) error {
		opts.Content = content
		return nil
	}
}

// WithFatalHandler replaces the default handler for persistence failures,
// which logs the error and terminates the process.
func WithFatalHandler(handler func(err error)) VirtualFileSystemOption {
	return func(opts *VirtualFileSystemOptions) error {
		opts.FatalHandler = handler
		return nil
	}
}

func WithClock(clock func() time.Time) VirtualFileSystemOption {
	return func(opts *VirtualFileSystemOptions) error {
		opts.Clock = clock
		return nil
	}
}
