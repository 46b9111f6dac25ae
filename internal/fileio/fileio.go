// Package fileio reads and writes documents as UTF-8 text.
package fileio

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog/log"

	"github.com/xonecas/folio/internal/constants"
)

// Kind classifies an I/O failure.
type Kind int

const (
	NotFound Kind = iota + 1
	PermissionDenied
	ReadError
	WriteError
)

func (k Kind) String() string {
	switch k {
	case NotFound:
		return "not found"
	case PermissionDenied:
		return "permission denied"
	case ReadError:
		return "read error"
	case WriteError:
		return "write error"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Error is returned by Read and Write.
type Error struct {
	Kind Kind
	Path string
	Err  error
}

func (e *Error) Error() string {
	switch e.Kind {
	case NotFound:
		return "file not found: " + e.Path
	case PermissionDenied:
		return fmt.Sprintf("permission denied: %s: %v", e.Path, e.Err)
	case WriteError:
		return fmt.Sprintf("error writing file %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("error reading file %s: %v", e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the kind of an *Error in err's chain, or 0.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

var errInvalidUTF8 = errors.New("content is not valid UTF-8")

// Read returns the content of path. Files above the mmap threshold are
// memory mapped where the platform supports it.
func Read(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", classify(path, err, ReadError)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", classify(path, err, ReadError)
	}
	if info.IsDir() {
		return "", &Error{Kind: ReadError, Path: path, Err: errors.New("is a directory")}
	}
	size := info.Size()
	if size == 0 {
		return "", nil
	}

	var content string
	if size > constants.MmapThreshold {
		content, err = readMapped(f, int(size))
		if err != nil && !errors.Is(err, errInvalidUTF8) {
			log.Debug().Err(err).Str("path", path).Msg("mmap failed, falling back to read")
			content, err = readAll(f)
		}
	} else {
		content, err = readAll(f)
	}
	if errors.Is(err, errInvalidUTF8) {
		return "", &Error{Kind: ReadError, Path: path, Err: err}
	}
	if err != nil {
		return "", classify(path, err, ReadError)
	}
	return content, nil
}

// Write stores content at path, creating parent directories as needed.
func Write(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return classify(path, err, WriteError)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return classify(path, err, WriteError)
	}
	return nil
}

// IsRich reports whether path holds ANSI-styled rich text.
func IsRich(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".ans")
}

// readAll reads f from the start and rejects invalid UTF-8.
func readAll(f *os.File) (string, error) {
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return "", err
	}
	data, err := io.ReadAll(f)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		return "", errInvalidUTF8
	}
	return string(data), nil
}

func classify(path string, err error, fallback Kind) *Error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return &Error{Kind: NotFound, Path: path, Err: err}
	case errors.Is(err, fs.ErrPermission):
		return &Error{Kind: PermissionDenied, Path: path, Err: err}
	}
	return &Error{Kind: fallback, Path: path, Err: err}
}
