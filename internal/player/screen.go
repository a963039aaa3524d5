package player

import (
	"fmt"
	"io"

	"github.com/ivlev/asciimator/internal/animation"
)

// Screen is a clearable text output.
type Screen interface {
	io.Writer
	Clear() error
}

// ScreenSink draws frames on a Screen.
type ScreenSink struct {
	Screen Screen
}

func (s ScreenSink) ShowFrame(index, total int, frame animation.Frame) error {
	if err := s.Screen.Clear(); err != nil {
		return err
	}
	for _, line := range frame.Lines() {
		if _, err := fmt.Fprintln(s.Screen, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(s.Screen, "\n[frame %d/%d] press any key to stop\n", index+1, total)
	return err
}
