package outline

import (
	"context"
	"testing"
)

const source = `package main

import "fmt"

const Version = "1.0"

const (
	A = iota
	B
)

var (
	Debug bool
	_     = fmt.Sprint
)

type Server struct {
	addr string
	Handler
}

type Handler interface {
	Handle(req string) string
}

type ID string

func main() {
	fmt.Println("hello")
}

func (s *Server) Start() error {
	return nil
}
`

func TestParse(t *testing.T) {
	entries, err := Parse(context.Background(), "main.go", source)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	want := []struct {
		name string
		kind Kind
	}{
		{"Version", Const},
		{"A", Const},
		{"B", Const},
		{"Debug", Var},
		{"Server", Struct},
		{"Server.addr", Field},
		{"Server.Handler", Field},
		{"Handler", Interface},
		{"Handler.Handle", Method},
		{"ID", Type},
		{"main", Func},
		{"Server.Start", Method},
	}
	if len(entries) != len(want) {
		t.Fatalf("got %d entries, want %d: %+v", len(entries), len(want), entries)
	}
	for i, w := range want {
		if entries[i].Name != w.name || entries[i].Kind != w.kind {
			t.Errorf("entry %d = %s %v, want %s %v", i, entries[i].Name, entries[i].Kind, w.name, w.kind)
		}
	}
}

func TestParseOffsets(t *testing.T) {
	entries, err := Parse(context.Background(), "main.go", source)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if e.Kind != Method || e.Name != "Server.Start" {
			continue
		}
		if got := source[e.Start:e.End]; got != "Start" {
			t.Errorf("span = %q, want Start", got)
		}
		if e.Line != 32 {
			t.Errorf("line = %d, want 32", e.Line)
		}
		if e.Detail != "func (*Server) Start() error" {
			t.Errorf("detail = %q", e.Detail)
		}
		return
	}
	t.Fatal("method Start not found")
}

func TestSupported(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"a.go", true},
		{"A.GO", true},
		{"a.txt", false},
		{"Makefile", false},
	}
	for _, tt := range tests {
		if got := Supported(tt.path); got != tt.want {
			t.Errorf("Supported(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestParseUnsupported(t *testing.T) {
	entries, err := Parse(context.Background(), "notes.txt", "func main() {}")
	if err != nil || entries != nil {
		t.Fatalf("got %v, %v", entries, err)
	}
}
