package data

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mwantia/vfsh/data/errors"
)

const (
	entryRecordFields = 9
	userRecordFields  = 10
)

// MarshalRecord encodes the entry as one space separated record line:
// parentPath kind name size mode owner timestamp hidden selfPath.
// The mode is written as the decimal value of its bits.
func (e *Entry) MarshalRecord() string {
	hidden := 0
	if e.Hidden {
		hidden = 1
	}

	return fmt.Sprintf("%s %c %s %d %d %s %s %d %s",
		e.ParentPath, e.Kind, e.Name, e.Size, uint32(e.Mode), e.Owner, e.CreatedAt, hidden, e.SelfPath)
}

// ParseEntryRecord decodes a line written by MarshalRecord.
func ParseEntryRecord(line string) (*Entry, error) {
	fields := strings.Fields(line)
	if len(fields) != entryRecordFields {
		return nil, errors.InvalidArgument("entry record has %d fields, expected %d", len(fields), entryRecordFields)
	}

	if len(fields[1]) != 1 || !EntryKind(fields[1][0]).Valid() {
		return nil, errors.InvalidArgument("entry record has invalid kind '%s'", fields[1])
	}

	size, err := strconv.ParseInt(fields[3], 10, 64)
	if err != nil {
		return nil, errors.InvalidArgument("entry record has invalid size '%s'", fields[3])
	}

	mode, err := strconv.ParseUint(fields[4], 10, 32)
	if err != nil {
		return nil, errors.InvalidArgument("entry record has invalid mode '%s'", fields[4])
	}

	hidden, err := strconv.Atoi(fields[7])
	if err != nil {
		return nil, errors.InvalidArgument("entry record has invalid hidden flag '%s'", fields[7])
	}

	return &Entry{
		ParentPath: fields[0],
		Kind:       EntryKind(fields[1][0]),
		Name:       fields[2],
		Size:       size,
		Mode:       FileMode(mode).Perm(),
		Owner:      fields[5],
		CreatedAt:  fields[6],
		Hidden:     hidden != 0,
		SelfPath:   fields[8],
	}, nil
}

// MarshalRecord encodes the user as one record line:
// id uid gid year month day hour minute second homePath.
func (u *User) MarshalRecord() string {
	t := u.CreatedAt
	return fmt.Sprintf("%s %d %d %d %d %d %d %d %d %s",
		u.ID, u.UID, u.GID, t.Year(), int(t.Month()), t.Day(), t.Hour(), t.Minute(), t.Second(), u.HomePath)
}

// ParseUserRecord decodes a line written by User.MarshalRecord.
func ParseUserRecord(line string) (*User, error) {
	fields := strings.Fields(line)
	if len(fields) != userRecordFields {
		return nil, errors.InvalidArgument("user record has %d fields, expected %d", len(fields), userRecordFields)
	}

	numbers := make([]int, 8)
	for i := range numbers {
		n, err := strconv.Atoi(fields[i+1])
		if err != nil {
			return nil, errors.InvalidArgument("user record '%s' has invalid number '%s'", fields[0], fields[i+1])
		}
		numbers[i] = n
	}

	return &User{
		ID:        fields[0],
		UID:       numbers[0],
		GID:       numbers[1],
		CreatedAt: time.Date(numbers[2], time.Month(numbers[3]), numbers[4], numbers[5], numbers[6], numbers[7], 0, time.UTC),
		HomePath:  fields[9],
	}, nil
}
