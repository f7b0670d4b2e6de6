package sqlite

import (
	"context"
	"time"

	"github.com/mwantia/vfsh/data"
)

func (sb *SQLiteBackend) LoadEntries(ctx context.Context) ([]*data.Entry, error) {
	sb.mu.RLock()
	defer sb.mu.RUnlock()

	rows, err := sb.db.QueryContext(ctx, `
		SELECT parent_path, kind, name, size, mode, owner, created_at, hidden, self_path
		FROM vfs_entries ORDER BY seq
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]*data.Entry, 0)
	for rows.Next() {
		var entry data.Entry
		var kind string
		var mode uint32

		if err := rows.Scan(&entry.ParentPath, &kind, &entry.Name, &entry.Size, &mode,
			&entry.Owner, &entry.CreatedAt, &entry.Hidden, &entry.SelfPath); err != nil {
			return nil, err
		}

		if len(kind) > 0 {
			entry.Kind = data.EntryKind(kind[0])
		}
		entry.Mode = data.FileMode(mode).Perm()

		entries = append(entries, &entry)
	}

	return entries, rows.Err()
}

func (sb *SQLiteBackend) SaveEntries(ctx context.Context, entries []*data.Entry) error {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	tx, err := sb.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM vfs_entries"); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO vfs_entries (seq, parent_path, kind, name, size, mode, owner, created_at, hidden, self_path)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, entry := range entries {
		if _, err := stmt.ExecContext(ctx, i, entry.ParentPath, string(entry.Kind), entry.Name, entry.Size,
			uint32(entry.Mode), entry.Owner, entry.CreatedAt, entry.Hidden, entry.SelfPath); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (sb *SQLiteBackend) LoadUsers(ctx context.Context) ([]*data.User, error) {
	sb.mu.RLock()
	defer sb.mu.RUnlock()

	rows, err := sb.db.QueryContext(ctx, `
		SELECT id, uid, gid, created_at, home_path FROM vfs_users ORDER BY seq
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]*data.User, 0)
	for rows.Next() {
		var user data.User
		var createdAt int64

		if err := rows.Scan(&user.ID, &user.UID, &user.GID, &createdAt, &user.HomePath); err != nil {
			return nil, err
		}

		user.CreatedAt = time.Unix(createdAt, 0).UTC()
		users = append(users, &user)
	}

	return users, rows.Err()
}

// SaveUsers replaces the stored users. Only used to seed new databases.
func (sb *SQLiteBackend) SaveUsers(ctx context.Context, users []*data.User) error {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	tx, err := sb.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM vfs_users"); err != nil {
		return err
	}

	for i, user := range users {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO vfs_users (seq, id, uid, gid, created_at, home_path) VALUES (?, ?, ?, ?, ?, ?)
		`, i, user.ID, user.UID, user.GID, user.CreatedAt.Unix(), user.HomePath); err != nil {
			return err
		}
	}

	return tx.Commit()
}
