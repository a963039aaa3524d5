// Package generate builds frames from other content.
package generate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ivlev/asciimator/internal/animation"
	"github.com/skip2/go-qrcode"
)

// ErrEmptyText is returned when there is nothing to encode.
var ErrEmptyText = errors.New("nothing to encode")

const (
	dark  = "##"
	light = "  "
)

// QR renders text as a QR code frame. Each module is two characters wide
// so the code keeps its square shape in a terminal cell grid.
func QR(text string) (animation.Frame, error) {
	if strings.TrimSpace(text) == "" {
		return animation.Frame{}, ErrEmptyText
	}

	q, err := qrcode.New(text, qrcode.Low)
	if err != nil {
		return animation.Frame{}, fmt.Errorf("encode qr: %w", err)
	}

	bitmap := q.Bitmap()
	lines := make([]string, 0, len(bitmap))
	var b strings.Builder
	for _, row := range bitmap {
		b.Reset()
		for _, on := range row {
			if on {
				b.WriteString(dark)
			} else {
				b.WriteString(light)
			}
		}
		lines = append(lines, b.String())
	}

	return animation.NewFrame(lines...), nil
}
