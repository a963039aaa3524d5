package terminal

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestReadLine(t *testing.T) {
	s := NewSession(strings.NewReader("first\r\nsecond\nthi\x7frd\n\nlast"), io.Discard)

	want := []string{"first", "second", "thrd", "", "last"}
	for _, w := range want {
		got, err := s.ReadLine()
		if err != nil {
			t.Fatalf("ReadLine failed: %v", err)
		}
		if got != w {
			t.Errorf("Expected %q, got %q", w, got)
		}
	}

	if _, err := s.ReadLine(); !errors.Is(err, io.EOF) {
		t.Errorf("Expected io.EOF, got %v", err)
	}
}

func TestReadLineBackspaceRemovesRune(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"café\x7f\n", "caf"},
		{"café\x7fe\n", "cafe"},
		{"☕\x08\x08x\n", "x"},
		{"a🙂🙂\x7f\n", "a🙂"},
	}
	for _, tt := range tests {
		s := NewSession(strings.NewReader(tt.input), io.Discard)
		got, err := s.ReadLine()
		if err != nil {
			t.Fatalf("ReadLine(%q) failed: %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("ReadLine(%q): expected %q, got %q", tt.input, tt.want, got)
		}
		if !utf8.ValidString(got) {
			t.Errorf("ReadLine(%q) returned invalid UTF-8 %q", tt.input, got)
		}
	}
}

func TestReadLineInterrupted(t *testing.T) {
	s := NewSession(strings.NewReader("abc\x03"), io.Discard)
	if _, err := s.ReadLine(); !errors.Is(err, ErrInterrupted) {
		t.Errorf("Expected ErrInterrupted, got %v", err)
	}
}

func TestReadKey(t *testing.T) {
	s := NewSession(strings.NewReader("1q"), io.Discard)
	for _, want := range []byte("1q") {
		k, err := s.ReadKey()
		if err != nil {
			t.Fatalf("ReadKey failed: %v", err)
		}
		if k != want {
			t.Errorf("Expected %q, got %q", want, k)
		}
	}
	if _, err := s.ReadKey(); !errors.Is(err, io.EOF) {
		t.Errorf("Expected io.EOF, got %v", err)
	}
}

func TestCookedWritePassesThrough(t *testing.T) {
	var out bytes.Buffer
	s := NewSession(strings.NewReader(""), &out)

	if s.Raw() {
		t.Fatal("Scripted session must not be raw")
	}
	s.Printf("a\nb\n")
	if out.String() != "a\nb\n" {
		t.Errorf("Unexpected output %q", out.String())
	}
	if err := s.Close(); err != nil {
		t.Errorf("Close on cooked session failed: %v", err)
	}
}

func TestClear(t *testing.T) {
	var out bytes.Buffer
	s := NewSession(strings.NewReader(""), &out)
	if err := s.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if !strings.Contains(out.String(), "\x1b[2J") {
		t.Errorf("Expected clear sequence, got %q", out.String())
	}
}
