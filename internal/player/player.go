package player

import (
	"context"
	"time"

	"github.com/ivlev/asciimator/internal/animation"
)

// Sink receives every frame shown during playback.
type Sink interface {
	ShowFrame(index, total int, frame animation.Frame) error
}

// Player shows frames of an animation at its speed.
type Player struct {
	sinks []Sink
	ticks int
}

// New creates a Player that shows at most ticks frames per Play call.
func New(ticks int, sinks ...Sink) *Player {
	return &Player{sinks: sinks, ticks: ticks}
}

// Play advances a with NextFrame, sending each frame to every sink and
// waiting the animation's interval between frames. It stops when a key
// arrives on stop (or stop is closed), when ctx is done, or after the tick
// budget. It returns the number of frames shown.
func (p *Player) Play(ctx context.Context, a *animation.Animation, stop <-chan byte) (int, error) {
	shown := 0
	for shown < p.ticks {
		index := a.Cursor()
		frame, err := a.NextFrame()
		if err != nil {
			return shown, err
		}
		for _, s := range p.sinks {
			if err := s.ShowFrame(index, a.Len(), frame); err != nil {
				return shown, err
			}
		}
		shown++

		// The interval is read every tick so speed changes apply immediately.
		timer := time.NewTimer(a.Interval())
		select {
		case <-ctx.Done():
			timer.Stop()
			return shown, ctx.Err()
		case <-stop:
			timer.Stop()
			return shown, nil
		case <-timer.C:
		}
	}
	return shown, nil
}
