package vfs

import (
	"context"
	"time"

	"github.com/mwantia/vfsh/data"
	"github.com/mwantia/vfsh/data/errors"
	"github.com/mwantia/vfsh/log"
	"github.com/mwantia/vfsh/metrics"
)

// Session is one logged in user working on the shared namespace.
// It owns the current working path; nothing else is session state.
type Session struct {
	id      string
	user    *data.User
	current string

	vfs    *VirtualFileSystem
	logger *log.Logger
}

func (s *Session) ID() string {
	return s.id
}

// User returns a copy of the logged in user.
func (s *Session) User() *data.User {
	return s.user.Clone()
}

func (s *Session) CurrentPath() string {
	s.vfs.mu.Lock()
	defer s.vfs.mu.Unlock()

	return s.current
}

// Navigate changes the current path to token resolved against it.
func (s *Session) Navigate(ctx context.Context, token string) (err error) {
	s.vfs.mu.Lock()
	defer s.vfs.mu.Unlock()

	target := data.Resolve(token, s.current)
	defer s.observe("navigate", target, time.Now(), &err)

	dir := s.vfs.store.FindBySelfPath(target, data.KindDirectory)
	if dir != nil && !s.allowed(dir, data.ActionRead) {
		return errors.PermissionDenied("navigate", target)
	}

	if !s.isDirectory(target, dir) {
		return errors.InvalidPath(target)
	}

	s.current = target
	return nil
}

// isDirectory reports whether path is known as a directory, either through
// its own Directory entry or because a Directory entry lives below it.
func (s *Session) isDirectory(path string, dir *data.Entry) bool {
	return path == data.RootPath || dir != nil || s.vfs.store.HasChildren(path, data.KindDirectory)
}

// List returns the entries directly below the current path in insertion
// order. Hidden entries are skipped unless showHidden is set.
func (s *Session) List(ctx context.Context, showHidden bool) (entries []*data.Entry, err error) {
	s.vfs.mu.Lock()
	defer s.vfs.mu.Unlock()

	defer s.observe("list", s.current, time.Now(), &err)

	if s.current != data.RootPath {
		dir := s.vfs.store.FindBySelfPath(s.current, data.KindDirectory)
		if dir != nil && !s.allowed(dir, data.ActionRead) {
			return nil, errors.PermissionDenied("list", s.current)
		}
	}

	entries = make([]*data.Entry, 0)
	for _, entry := range s.vfs.store.FindByPath(s.current) {
		if entry.Hidden && !showHidden {
			continue
		}

		entries = append(entries, entry)
	}

	return entries, nil
}

// allowed evaluates action on entry for the session user.
func (s *Session) allowed(entry *data.Entry, action data.Action) bool {
	if s.user.IsRoot() {
		return true
	}

	ok := data.Allowed(s.user, entry, action)
	metrics.RecordPermissionCheck(action.String(), ok)

	return ok
}

func (s *Session) observe(operation, path string, start time.Time, err *error) {
	duration := time.Since(start)
	metrics.RecordOperation(operation, *err, duration)

	switch {
	case *err == nil:
		s.logger.Debug("%s '%s' as '%s' in %s", operation, path, s.user.ID, duration)
	case errors.Is(*err, errors.ErrPermissionDenied):
		s.logger.Warn("%s '%s' as '%s' denied: %v", operation, path, s.user.ID, *err)
	default:
		s.logger.Debug("%s '%s' as '%s' failed: %v", operation, path, s.user.ID, *err)
	}
}
