package shell

import "github.com/ivlev/asciimator/internal/animation"

// Demo returns the two-frame stick figure shown when no file is loaded.
func Demo(speedMs int) (*animation.Animation, error) {
	a := animation.New()
	a.AddFrame(animation.NewFrame(
		"  o  ",
		" /|\\ ",
		" / \\ ",
	))
	a.AddFrame(animation.NewFrame(
		"  o  ",
		" /|\\ ",
		" | | ",
	))
	if err := a.SetSpeed(speedMs); err != nil {
		return nil, err
	}
	return a, nil
}
