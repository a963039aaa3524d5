package generate

import (
	"errors"
	"strings"
	"testing"
)

func TestQR(t *testing.T) {
	f, err := QR("https://example.com/walk")
	if err != nil {
		t.Fatalf("QR failed: %v", err)
	}

	lines := f.Lines()
	// Version 1 is 21 modules wide before the quiet zone.
	if len(lines) < 21 {
		t.Fatalf("Expected at least 21 rows, got %d", len(lines))
	}
	for i, line := range lines {
		if len(line) != 2*len(lines) {
			t.Errorf("Row %d is %d chars wide, expected %d", i, len(line), 2*len(lines))
		}
	}
	if !strings.Contains(strings.Join(lines, ""), "##") {
		t.Error("Expected dark modules")
	}
}

func TestQRRejectsEmpty(t *testing.T) {
	for _, text := range []string{"", "   "} {
		if _, err := QR(text); !errors.Is(err, ErrEmptyText) {
			t.Errorf("QR(%q): expected ErrEmptyText, got %v", text, err)
		}
	}
}

func TestQRTooLong(t *testing.T) {
	if _, err := QR(strings.Repeat("x", 4000)); err == nil {
		t.Error("Expected error for content beyond QR capacity")
	}
}
