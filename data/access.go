package data

// Action represents the kind of access requested on an entry.
// The values match the bit of a permission triplet they test.
type Action uint32

const (
	ActionExecute Action = 1 << iota // x
	ActionWrite                      // w
	ActionRead                       // r
)

func (a Action) String() string {
	switch a {
	case ActionRead:
		return "read"
	case ActionWrite:
		return "write"
	case ActionExecute:
		return "execute"
	default:
		return "unknown"
	}
}

// Evaluate reports whether action is permitted by mode.
// Owners are tested against the owner triplet, everyone else against the
// other triplet. There is no group tier.
func Evaluate(mode FileMode, isOwner bool, action Action) bool {
	bits := mode.OtherBits()
	if isOwner {
		bits = mode.OwnerBits()
	}

	return bits&uint32(action) != 0
}

// Allowed checks action on entry for user.
// The root user bypasses evaluation entirely.
func Allowed(user *User, entry *Entry, action Action) bool {
	if user.IsRoot() {
		return true
	}

	return Evaluate(entry.Mode, entry.IsOwnedBy(user.ID), action)
}
