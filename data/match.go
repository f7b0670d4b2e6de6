package data

import "fmt"

// Match is one line selected by a content search.
type Match struct {
	Number int    `json:"number"`
	Line   string `json:"line"`
}

// Format renders the match as grep does, optionally prefixed with
// "<number>:<filename>: ".
func (m *Match) Format(filename string, numbered bool) string {
	if numbered {
		return fmt.Sprintf("%d:%s: %s", m.Number, filename, m.Line)
	}

	return m.Line
}
