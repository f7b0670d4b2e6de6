package tui

import (
	"fmt"
	"path"

	"github.com/mwantia/vfsh/data"
)

// Entry is a directory entry as shown in the sidebar.
type Entry struct {
	*data.Entry
}

func newEntries(entries []*data.Entry) []*Entry {
	result := make([]*Entry, 0, len(entries))
	for _, entry := range entries {
		result = append(result, &Entry{Entry: entry})
	}

	return result
}

// DisplayName returns the name with appropriate indicator
func (e *Entry) DisplayName() string {
	if e.IsDir() {
		return e.Name + "/"
	}
	return e.Name
}

// DisplaySize returns human-readable size
func (e *Entry) DisplaySize() string {
	if e.IsDir() {
		return "<DIR>"
	}

	const unit = 1024
	if e.Size < unit {
		return fmt.Sprintf("%d B", e.Size)
	}

	div, exp := int64(unit), 0
	for n := e.Size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}

	return fmt.Sprintf("%.1f %cB", float64(e.Size)/float64(div), "KMGTPE"[exp])
}

// DisplayMode returns the permission bits as shown by ll
func (e *Entry) DisplayMode() string {
	return e.ModeString()
}

// Icon returns an icon character based on entry kind and extension
func (e *Entry) Icon() string {
	if e.IsDir() {
		return "📁"
	}

	switch path.Ext(e.Name) {
	case ".txt", ".md", ".log", ".conf", ".cfg", ".ini":
		return "📄"
	case ".jpg", ".jpeg", ".png", ".gif", ".bmp", ".svg", ".webp":
		return "🖼️"
	case ".zip", ".tar", ".gz", ".bz2", ".7z", ".rar":
		return "📦"
	case ".go", ".js", ".ts", ".py", ".java", ".c", ".cpp", ".h", ".rs", ".rb", ".php":
		return "💻"
	default:
		return "📄"
	}
}
