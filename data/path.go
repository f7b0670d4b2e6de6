package data

import "strings"

const (
	RootPath  = "/"
	ParentRef = ".."
)

// Resolve turns token into an absolute path relative to current.
//
// "/" yields the root, ".." strips the last segment of current, any other
// token starting with "/" is used verbatim and everything else is joined
// onto current. An empty token resolves to current.
func Resolve(token, current string) string {
	switch {
	case token == "":
		return current
	case token == RootPath:
		return RootPath
	case token == ParentRef:
		return Parent(current)
	case strings.HasPrefix(token, RootPath):
		return token
	default:
		return Join(current, token)
	}
}

// Parent strips the last "/" delimited segment from path.
// Returns "/" if nothing remains.
func Parent(path string) string {
	idx := strings.LastIndex(path, "/")
	if idx <= 0 {
		return RootPath
	}

	return path[:idx]
}

// Join appends name to dir without doubling the root separator.
func Join(dir, name string) string {
	if dir == RootPath {
		return RootPath + name
	}

	return dir + "/" + name
}

// ValidName reports whether name can be stored as an entry name.
// Names must survive the space separated record format.
func ValidName(name string) bool {
	if name == "" || name == "." || name == ParentRef {
		return false
	}

	return !strings.ContainsAny(name, "/ \t\r\n")
}

// Segment is one directory level of a path.
type Segment struct {
	Parent string
	Name   string
}

// SelfPath returns the absolute path of the segment itself.
func (s Segment) SelfPath() string {
	return Join(s.Parent, s.Name)
}

// PathSegments is the ordered list of levels below a base directory.
type PathSegments struct {
	Base   string
	Levels []Segment
}

// Split breaks path into ordered segments. Absolute paths start at "/",
// relative paths start at current. Empty segments are skipped.
func Split(path, current string) PathSegments {
	base := current
	if strings.HasPrefix(path, RootPath) {
		base = RootPath
	}

	ps := PathSegments{
		Base:   base,
		Levels: make([]Segment, 0),
	}

	for _, part := range strings.Split(path, "/") {
		if part == "" {
			continue
		}

		ps.Levels = append(ps.Levels, Segment{Parent: base, Name: part})
		base = Join(base, part)
	}

	return ps
}

// Target returns the absolute path designated by all segments.
func (ps PathSegments) Target() string {
	if len(ps.Levels) == 0 {
		return ps.Base
	}

	return ps.Levels[len(ps.Levels)-1].SelfPath()
}
