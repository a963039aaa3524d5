package animation

import "fmt"

// Frame is one rendered state of an animation: an ordered list of text rows.
type Frame struct {
	content []string
}

// NewFrame creates a Frame owning a copy of lines.
func NewFrame(lines ...string) Frame {
	return Frame{content: cloneLines(lines)}
}

// Lines returns a copy of the frame rows.
func (f *Frame) Lines() []string {
	return cloneLines(f.content)
}

// LineCount returns the number of rows.
func (f *Frame) LineCount() int {
	return len(f.content)
}

// AppendLine adds a row at the bottom of the frame.
func (f *Frame) AppendLine(text string) {
	f.content = append(f.content, text)
}

// SetLine replaces row i.
func (f *Frame) SetLine(i int, text string) error {
	if err := checkIndex("line", i, len(f.content)); err != nil {
		return err
	}
	f.content[i] = text
	return nil
}

// DeleteLine removes row i, shifting the rows below it up.
func (f *Frame) DeleteLine(i int) error {
	if err := checkIndex("line", i, len(f.content)); err != nil {
		return err
	}
	f.content = append(f.content[:i], f.content[i+1:]...)
	return nil
}

// Equal reports whether both frames hold the same rows in the same order.
func (f Frame) Equal(other Frame) bool {
	if len(f.content) != len(other.content) {
		return false
	}
	for i := range f.content {
		if f.content[i] != other.content[i] {
			return false
		}
	}
	return true
}

func (f Frame) clone() Frame {
	return Frame{content: cloneLines(f.content)}
}

func cloneLines(lines []string) []string {
	if lines == nil {
		return []string{}
	}
	out := make([]string, len(lines))
	copy(out, lines)
	return out
}

// checkIndex validates 0 <= i < n.
func checkIndex(what string, i, n int) error {
	if i < 0 || i >= n {
		return fmt.Errorf("%w: %s %d not in [0, %d)", ErrIndexOutOfRange, what, i, n)
	}
	return nil
}
