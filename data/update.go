package data

// EntryUpdateMask controls which fields of an entry should be updated.
// This allows partial updates without rewriting the entire entry.
type EntryUpdateMask int

const (
	EntryUpdateOwner  EntryUpdateMask = 1 << iota // Update Owner
	EntryUpdateMode                               // Update File Mode (permissions)
	EntryUpdateSize                               // Update Size
	EntryUpdateHidden                             // Update Hidden flag

	EntryUpdateAll = ^EntryUpdateMask(0) // Update all fields
)

// EntryUpdate represents a partial update to an entry.
type EntryUpdate struct {
	Mask  EntryUpdateMask `json:"mask"`
	Entry *Entry          `json:"entry"`
}

// Apply applies this update to an existing entry.
// Identity fields (paths, name, kind) are never touched.
func (eu *EntryUpdate) Apply(target *Entry) bool {
	modified := false

	if eu.Mask&EntryUpdateOwner != 0 && target.Owner != eu.Entry.Owner {
		target.Owner = eu.Entry.Owner
		modified = true
	}

	if eu.Mask&EntryUpdateMode != 0 && target.Mode != eu.Entry.Mode.Perm() {
		target.Mode = eu.Entry.Mode.Perm()
		modified = true
	}

	if eu.Mask&EntryUpdateSize != 0 && target.Size != eu.Entry.Size {
		target.Size = eu.Entry.Size
		modified = true
	}

	if eu.Mask&EntryUpdateHidden != 0 && target.Hidden != eu.Entry.Hidden {
		target.Hidden = eu.Entry.Hidden
		modified = true
	}

	return modified
}

func OwnerUpdate(owner string) *EntryUpdate {
	return &EntryUpdate{
		Mask:  EntryUpdateOwner,
		Entry: &Entry{Owner: owner},
	}
}

func ModeUpdate(mode FileMode) *EntryUpdate {
	return &EntryUpdate{
		Mask:  EntryUpdateMode,
		Entry: &Entry{Mode: mode},
	}
}
