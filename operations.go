package vfs

import (
	"context"
	"time"

	"github.com/mwantia/vfsh/data"
	"github.com/mwantia/vfsh/data/errors"
)

// CreateDirectory creates the directory name below path, which is resolved
// against the current path.
//
// With recursive set, every missing level of path is created first, in
// order. Levels that already exist must grant Execute to the requester,
// otherwise the operation stops without creating any later level.
func (s *Session) CreateDirectory(ctx context.Context, name, path string, recursive bool) (err error) {
	s.vfs.mu.Lock()
	defer s.vfs.mu.Unlock()

	defer s.observe("mkdir", data.Join(data.Resolve(path, s.current), name), time.Now(), &err)

	created := 0
	defer func() {
		// Levels created before a failure are kept and must be persisted
		if created > 0 {
			if perr := s.vfs.persist(ctx); perr != nil && err == nil {
				err = perr
			}
		}
	}()

	parent := data.Resolve(path, s.current)
	if recursive {
		segments := data.Split(path, s.current)
		for _, segment := range segments.Levels {
			existing := s.vfs.store.FindByNameInDir(segment.Name, segment.Parent, data.KindDirectory)
			if existing != nil {
				if !s.allowed(existing, data.ActionExecute) {
					return errors.PermissionDenied("mkdir", existing.SelfPath)
				}
				continue
			}

			if err := s.createDirectory(segment.Name, segment.Parent); err != nil {
				return err
			}
			created++
		}

		parent = segments.Target()
	}

	if err := s.createDirectory(name, parent); err != nil {
		return err
	}
	created++

	return nil
}

// createDirectory inserts a single directory without persisting it.
func (s *Session) createDirectory(name, parent string) error {
	if !data.ValidName(name) {
		return errors.InvalidPath(data.Join(parent, name))
	}

	if s.vfs.store.FindByNameInDir(name, parent, data.KindDirectory) != nil {
		return errors.DirectoryExists(name, parent)
	}

	dir := s.vfs.store.FindBySelfPath(parent, data.KindDirectory)
	if !s.isDirectory(parent, dir) {
		return errors.InvalidPath(parent)
	}

	if dir != nil && !s.allowed(dir, data.ActionExecute) {
		return errors.PermissionDenied("mkdir", parent)
	}

	entry := data.NewDirectory(parent, name, s.user.ID, s.vfs.now())
	if err := s.vfs.store.Insert(entry); err != nil {
		return err
	}

	s.logger.Info("Directory '%s' created by '%s'", entry.SelfPath, s.user.ID)
	return nil
}

// ChangeOwner hands the entry called filename in the current path over to
// owner. The requester needs Execute on the entry.
func (s *Session) ChangeOwner(ctx context.Context, filename, owner string) (err error) {
	s.vfs.mu.Lock()
	defer s.vfs.mu.Unlock()

	defer s.observe("chown", data.Join(s.current, filename), time.Now(), &err)

	entry := s.vfs.store.FindByNameInDir(filename, s.current)
	if entry == nil {
		return errors.EntryNotFound(filename, s.current)
	}

	if !s.allowed(entry, data.ActionExecute) {
		return errors.PermissionDenied("chown", entry.SelfPath)
	}

	if _, ok := s.vfs.usersByID[owner]; !ok {
		return errors.UnknownUser(owner)
	}

	return s.update(ctx, entry, data.OwnerUpdate(owner))
}

// ChangeMode replaces the permission bits of the entry called filename in
// the current path. Only root and the current owner may do this.
func (s *Session) ChangeMode(ctx context.Context, filename string, mode data.FileMode) (err error) {
	s.vfs.mu.Lock()
	defer s.vfs.mu.Unlock()

	defer s.observe("chmod", data.Join(s.current, filename), time.Now(), &err)

	if mode > data.ModePerm {
		return errors.InvalidArgument("mode %o exceeds %o", uint32(mode), uint32(data.ModePerm))
	}

	entry := s.vfs.store.FindByNameInDir(filename, s.current)
	if entry == nil {
		return errors.EntryNotFound(filename, s.current)
	}

	if !s.user.IsRoot() && !entry.IsOwnedBy(s.user.ID) {
		return errors.PermissionDenied("chmod", entry.SelfPath)
	}

	return s.update(ctx, entry, data.ModeUpdate(mode))
}

func (s *Session) update(ctx context.Context, entry *data.Entry, update *data.EntryUpdate) error {
	changed, err := s.vfs.store.Update(entry, update)
	if err != nil {
		return err
	}

	if !changed {
		return nil
	}

	return s.vfs.persist(ctx)
}
