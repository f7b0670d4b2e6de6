package vfs

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mwantia/vfsh/data"
	"github.com/mwantia/vfsh/data/errors"
)

// ReadFile writes the content of the file called filename in the current
// path to w.
//
// In plain mode empty lines are dropped and both CR and LF end a line. In
// numbered mode every physical line is prefixed with its 1-based number,
// empty lines included.
func (s *Session) ReadFile(ctx context.Context, filename string, numbered bool, w io.Writer) (err error) {
	s.vfs.mu.Lock()
	defer s.vfs.mu.Unlock()

	defer s.observe("cat", data.Join(s.current, filename), time.Now(), &err)

	entry := s.vfs.store.FindByNameInDir(filename, s.current, data.KindFile)
	if entry == nil {
		return errors.FileNotFound(filename, s.current)
	}

	if !s.allowed(entry, data.ActionRead) {
		return errors.PermissionDenied("cat", entry.SelfPath)
	}

	reader, err := s.openContent(ctx, entry)
	if err != nil {
		return err
	}
	defer reader.Close()

	if numbered {
		return writeNumbered(reader, w)
	}

	return writePlain(reader, w)
}

// Search scans the file called filename in the current path line by line
// and returns the lines containing pattern, in input order. With invert
// set the non matching lines are returned instead.
func (s *Session) Search(ctx context.Context, pattern, filename string, ignoreCase, invert bool) (matches []*data.Match, err error) {
	s.vfs.mu.Lock()
	defer s.vfs.mu.Unlock()

	path := data.Join(s.current, filename)
	defer s.observe("grep", path, time.Now(), &err)

	entry := s.vfs.store.FindBySelfPath(path, data.KindFile)
	if entry == nil || entry.Name != filename {
		return nil, errors.FileNotFound(filename, s.current)
	}

	if !s.allowed(entry, data.ActionRead) {
		return nil, errors.PermissionDenied("grep", entry.SelfPath)
	}

	reader, err := s.openContent(ctx, entry)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	if ignoreCase {
		pattern = strings.ToLower(pattern)
	}

	matches = make([]*data.Match, 0)
	number := 0

	err = scanLines(reader, func(line string) error {
		number++

		subject := line
		if ignoreCase {
			subject = strings.ToLower(line)
		}

		if strings.Contains(subject, pattern) != invert {
			matches = append(matches, &data.Match{Number: number, Line: line})
		}

		return nil
	})

	return matches, err
}

// openContent opens the content of entry, addressed by its bare name.
func (s *Session) openContent(ctx context.Context, entry *data.Entry) (io.ReadCloser, error) {
	reader, err := s.vfs.content.OpenContent(ctx, entry.Name)
	if err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return nil, errors.FileNotFound(entry.Name, entry.ParentPath)
		}
		return nil, err
	}

	return reader, nil
}

func writePlain(r io.Reader, w io.Writer) error {
	reader := bufio.NewReader(r)
	writer := bufio.NewWriter(w)
	empty := true

	for {
		b, err := reader.ReadByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		if b == '\n' || b == '\r' {
			if !empty {
				writer.WriteByte('\n')
				empty = true
			}
			continue
		}

		writer.WriteByte(b)
		empty = false
	}

	if !empty {
		writer.WriteByte('\n')
	}

	return writer.Flush()
}

func writeNumbered(r io.Reader, w io.Writer) error {
	writer := bufio.NewWriter(w)
	number := 0

	err := scanLines(r, func(line string) error {
		number++

		if line == "" {
			_, err := fmt.Fprintf(writer, "%d\n", number)
			return err
		}

		_, err := fmt.Fprintf(writer, "%d\t %s\n", number, line)
		return err
	})
	if err != nil {
		return err
	}

	return writer.Flush()
}

// scanLines calls fn for every line of r without its terminator.
func scanLines(r io.Reader, fn func(line string) error) error {
	reader := bufio.NewReader(r)

	for {
		line, err := reader.ReadString('\n')
		if line != "" {
			line = strings.TrimSuffix(line, "\n")
			line = strings.TrimSuffix(line, "\r")

			if ferr := fn(line); ferr != nil {
				return ferr
			}
		}

		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}
