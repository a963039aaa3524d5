package animation

import (
	"errors"
	"reflect"
	"testing"
)

func TestFrameLineEditing(t *testing.T) {
	f := NewFrame("  o  ", " /|\\ ")
	f.AppendLine(" / \\ ")

	if err := f.SetLine(1, " \\|/ "); err != nil {
		t.Fatalf("SetLine failed: %v", err)
	}
	if err := f.DeleteLine(0); err != nil {
		t.Fatalf("DeleteLine failed: %v", err)
	}

	want := []string{" \\|/ ", " / \\ "}
	if !reflect.DeepEqual(f.Lines(), want) {
		t.Errorf("Expected %q, got %q", want, f.Lines())
	}
}

func TestFrameLineBounds(t *testing.T) {
	f := NewFrame("a")
	if err := f.SetLine(1, "b"); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("SetLine: expected ErrIndexOutOfRange, got %v", err)
	}
	if err := f.DeleteLine(-1); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("DeleteLine: expected ErrIndexOutOfRange, got %v", err)
	}
	if f.LineCount() != 1 {
		t.Errorf("Failed edits changed the frame: %q", f.Lines())
	}
}

func TestEmptyFrameIsLegal(t *testing.T) {
	f := NewFrame()
	if f.LineCount() != 0 {
		t.Errorf("Expected no lines, got %d", f.LineCount())
	}
	if f.Lines() == nil {
		t.Error("Lines should be an empty slice, not nil")
	}
	if !f.Equal(NewFrame()) {
		t.Error("Empty frames should be equal")
	}
}
