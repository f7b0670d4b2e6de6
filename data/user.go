package data

import "time"

// RootID is the identity that bypasses every permission check.
const RootID = "root"

// User is a read-only account known to the filesystem.
type User struct {
	ID        string    `json:"id"`
	UID       int       `json:"uid"`
	GID       int       `json:"gid"`
	CreatedAt time.Time `json:"created_at"`
	HomePath  string    `json:"home_path"`
}

// NewRootUser returns the root account used to seed empty user lists.
func NewRootUser(now time.Time) *User {
	return &User{
		ID:        RootID,
		CreatedAt: now.UTC().Truncate(time.Second),
		HomePath:  RootPath,
	}
}

func (u *User) IsRoot() bool {
	return u != nil && u.ID == RootID
}

func (u *User) Clone() *User {
	if u == nil {
		return nil
	}

	clone := *u
	return &clone
}
