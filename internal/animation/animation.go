package animation

import (
	"fmt"
	"time"
)

// DefaultSpeed is the delay between frames of a new animation, in milliseconds.
const DefaultSpeed = 500

// Animation is an ordered, cyclically played sequence of frames.
//
// The cursor designates the frame returned by the next call to NextFrame.
// It follows that frame across InsertFrame, MoveFrame and DeleteFrame, so
// editing never changes what plays next unless the designated frame itself
// is removed.
type Animation struct {
	frames  []Frame
	current int
	speed   int
}

// New creates an empty Animation with DefaultSpeed.
func New() *Animation {
	return &Animation{speed: DefaultSpeed}
}

// Restore builds an Animation from decoded state and rejects it when any
// invariant is violated.
func Restore(frames []Frame, current, speed int) (*Animation, error) {
	a := &Animation{
		frames:  make([]Frame, 0, len(frames)),
		current: current,
		speed:   speed,
	}
	for _, f := range frames {
		a.frames = append(a.frames, f.clone())
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

// Validate checks that the animation is playable: at least one frame,
// an in-range cursor and a positive speed.
func (a *Animation) Validate() error {
	if len(a.frames) == 0 {
		return ErrEmptyAnimation
	}
	if err := checkIndex("cursor", a.current, len(a.frames)); err != nil {
		return err
	}
	if a.speed <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidSpeed, a.speed)
	}
	return nil
}

// Len returns the number of frames.
func (a *Animation) Len() int {
	return len(a.frames)
}

// Cursor returns the index of the frame shown next.
func (a *Animation) Cursor() int {
	return a.current
}

// Speed returns the delay between frames in milliseconds.
func (a *Animation) Speed() int {
	return a.speed
}

// Interval returns the speed as a duration.
func (a *Animation) Interval() time.Duration {
	return time.Duration(a.speed) * time.Millisecond
}

// Frames returns copies of all frames in playback order.
func (a *Animation) Frames() []Frame {
	out := make([]Frame, len(a.frames))
	for i, f := range a.frames {
		out[i] = f.clone()
	}
	return out
}

// FrameAt returns a copy of the frame at index.
func (a *Animation) FrameAt(index int) (Frame, error) {
	if err := checkIndex("frame", index, len(a.frames)); err != nil {
		return Frame{}, err
	}
	return a.frames[index].clone(), nil
}

// EditFrame calls fn with the stored frame at index so its lines can be
// changed in place. The pointer must not be kept after fn returns: any later
// structural edit may move the frame.
func (a *Animation) EditFrame(index int, fn func(*Frame) error) error {
	if err := checkIndex("frame", index, len(a.frames)); err != nil {
		return err
	}
	return fn(&a.frames[index])
}

// Current returns a copy of the frame at the cursor without advancing.
func (a *Animation) Current() (Frame, error) {
	if len(a.frames) == 0 {
		return Frame{}, ErrEmptyAnimation
	}
	return a.frames[a.current].clone(), nil
}

// AddFrame appends a copy of frame. The cursor is unchanged.
func (a *Animation) AddFrame(frame Frame) {
	a.frames = append(a.frames, frame.clone())
}

// InsertFrame places a copy of frame at index, shifting later frames right.
// index may equal Len to append.
func (a *Animation) InsertFrame(index int, frame Frame) error {
	if index < 0 || index > len(a.frames) {
		return fmt.Errorf("%w: insert position %d not in [0, %d]", ErrIndexOutOfRange, index, len(a.frames))
	}
	wasEmpty := len(a.frames) == 0
	a.frames = append(a.frames, Frame{})
	copy(a.frames[index+1:], a.frames[index:])
	a.frames[index] = frame.clone()

	if !wasEmpty && index <= a.current {
		a.current++
	}
	return nil
}

// DeleteFrame removes the frame at index. Removing the last remaining frame
// is a no-op so an animation never becomes empty again.
func (a *Animation) DeleteFrame(index int) error {
	if err := checkIndex("frame", index, len(a.frames)); err != nil {
		return err
	}
	if len(a.frames) == 1 {
		return nil
	}
	a.frames = append(a.frames[:index], a.frames[index+1:]...)

	if index < a.current {
		a.current--
	}
	a.current = min(a.current, len(a.frames)-1)
	return nil
}

// MoveFrame relocates the frame at from to position to, shifting the frames
// in between. It is a remove followed by an insert, not a swap.
func (a *Animation) MoveFrame(from, to int) error {
	if err := checkIndex("move source", from, len(a.frames)); err != nil {
		return err
	}
	if err := checkIndex("move target", to, len(a.frames)); err != nil {
		return err
	}
	if from == to {
		return nil
	}

	moved := a.frames[from]
	if from < to {
		copy(a.frames[from:to], a.frames[from+1:to+1])
	} else {
		copy(a.frames[to+1:from+1], a.frames[to:from])
	}
	a.frames[to] = moved

	switch {
	case a.current == from:
		a.current = to
	case from < a.current && a.current <= to:
		a.current--
	case to <= a.current && a.current < from:
		a.current++
	}
	return nil
}

// NextFrame returns a copy of the frame at the cursor and advances the
// cursor, wrapping to 0 after the last frame.
func (a *Animation) NextFrame() (Frame, error) {
	if len(a.frames) == 0 {
		return Frame{}, ErrEmptyAnimation
	}
	if err := checkIndex("cursor", a.current, len(a.frames)); err != nil {
		return Frame{}, err
	}
	f := a.frames[a.current].clone()
	a.current = (a.current + 1) % len(a.frames)
	return f, nil
}

// SetCursor moves the cursor to index.
func (a *Animation) SetCursor(index int) error {
	if err := checkIndex("cursor", index, len(a.frames)); err != nil {
		return err
	}
	a.current = index
	return nil
}

// SetSpeed replaces the delay between frames. Non-positive values are
// rejected and leave the speed unchanged.
func (a *Animation) SetSpeed(ms int) error {
	if ms <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidSpeed, ms)
	}
	a.speed = ms
	return nil
}
