package fileio

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xonecas/folio/internal/constants"
)

func TestWriteThenRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "note.txt")
	if err := Write(path, "héllo\nworld"); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got != "héllo\nworld" {
		t.Errorf("got %q", got)
	}
}

func TestReadEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txt")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := Read(path)
	if err != nil || got != "" {
		t.Fatalf("Read = %q, %v", got, err)
	}
}

func TestReadLargeUsesSameContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "big.txt")
	want := strings.Repeat("0123456789abcdef\n", constants.MmapThreshold/17+10)
	if err := Write(path, want); err != nil {
		t.Fatal(err)
	}
	got, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got != want {
		t.Fatalf("large read mismatch: %d bytes, want %d", len(got), len(want))
	}
}

func TestReadLargeInvalidUTF8(t *testing.T) {
	path := filepath.Join(t.TempDir(), "big.bin")
	data := []byte(strings.Repeat("x", constants.MmapThreshold+1))
	data[len(data)/2] = 0xff
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := Read(path)
	if KindOf(err) != ReadError || !errors.Is(err, errInvalidUTF8) {
		t.Fatalf("Read = %v, want invalid UTF-8 read error", err)
	}
}

func TestReadErrors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.bin")
	if err := os.WriteFile(bad, []byte{0xff, 0xfe, 0x00}, 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
		want Kind
	}{
		{"missing", filepath.Join(dir, "missing.txt"), NotFound},
		{"invalid utf8", bad, ReadError},
		{"directory", dir, ReadError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(tt.path)
			if err == nil {
				t.Fatal("expected error")
			}
			if got := KindOf(err); got != tt.want {
				t.Errorf("KindOf = %v, want %v (%v)", got, tt.want, err)
			}
		})
	}
}

func TestNotFoundMessage(t *testing.T) {
	_, err := Read("/definitely/not/here.txt")
	if err == nil || err.Error() != "file not found: /definitely/not/here.txt" {
		t.Fatalf("err = %v", err)
	}
	var fe *Error
	if !errors.As(err, &fe) || fe.Path != "/definitely/not/here.txt" {
		t.Fatalf("expected *Error, got %T", err)
	}
}

func TestWriteError(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	// A regular file cannot act as a parent directory.
	err := Write(filepath.Join(blocker, "child.txt"), "data")
	if KindOf(err) != WriteError {
		t.Fatalf("KindOf = %v (%v)", KindOf(err), err)
	}
}

func TestIsRich(t *testing.T) {
	for path, want := range map[string]bool{"a.ans": true, "B.ANS": true, "a.txt": false, "ans": false} {
		if got := IsRich(path); got != want {
			t.Errorf("IsRich(%q) = %v", path, got)
		}
	}
}
