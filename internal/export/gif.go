package export

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"io"
	"os"
	"path/filepath"
	"time"
	"unicode/utf8"

	"github.com/ivlev/asciimator/internal/animation"
	"github.com/ivlev/asciimator/internal/config"
	"github.com/ivlev/asciimator/internal/system"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/sync/errgroup"
)

var face = basicfont.Face7x13

// Options controls how frames are rasterised.
type Options struct {
	Scale      int
	Foreground color.Color
	Background color.Color
	Workers    int
}

// OptionsFromConfig parses the export section of the configuration.
func OptionsFromConfig(c config.ExportConfig) (Options, error) {
	fg, err := colorful.Hex(c.Foreground)
	if err != nil {
		return Options{}, fmt.Errorf("foreground: %w", err)
	}
	bg, err := colorful.Hex(c.Background)
	if err != nil {
		return Options{}, fmt.Errorf("background: %w", err)
	}
	return Options{Scale: c.Scale, Foreground: fg.Clamped(), Background: bg.Clamped(), Workers: c.Workers}, nil
}

// Result describes a finished export.
type Result struct {
	Path    string
	Frames  int
	Elapsed time.Duration
}

// CellSize returns the pixel size of one character before scaling.
func CellSize() (int, int) {
	return face.Advance, face.Height
}

// Bounds returns the unscaled canvas that fits the widest line and the
// tallest frame of frames.
func Bounds(frames []animation.Frame) image.Rectangle {
	cols, rows := 1, 1
	for _, f := range frames {
		rows = max(rows, f.LineCount())
		for _, line := range f.Lines() {
			cols = max(cols, utf8.RuneCountInString(line))
		}
	}
	w, h := CellSize()
	return image.Rect(0, 0, cols*w, rows*h)
}

// GIF writes a looping animated GIF of a. Frames are rendered in parallel;
// the frame delay follows the animation speed.
func GIF(ctx context.Context, a *animation.Animation, w io.Writer, opts Options) error {
	frames := a.Frames()
	if len(frames) == 0 {
		return animation.ErrEmptyAnimation
	}
	if opts.Scale <= 0 {
		opts.Scale = 1
	}

	base := Bounds(frames)
	scaled := image.Rect(0, 0, base.Dx()*opts.Scale, base.Dy()*opts.Scale)
	palette := color.Palette{opts.Background, opts.Foreground}
	canvases := system.NewCanvasPool(base)

	images := make([]*image.Paletted, len(frames))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, opts.Workers))
	for i, f := range frames {
		i, f := i, f
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			images[i] = renderFrame(f, canvases, scaled, palette, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	// GIF delays are in hundredths of a second.
	delay := max(1, a.Speed()/10)
	delays := make([]int, len(images))
	for i := range delays {
		delays[i] = delay
	}

	return gif.EncodeAll(w, &gif.GIF{Image: images, Delay: delays, LoopCount: 0})
}

func renderFrame(f animation.Frame, canvases *system.CanvasPool, scaled image.Rectangle, palette color.Palette, opts Options) *image.Paletted {
	base := canvases.Bounds()
	canvas := canvases.Get()
	defer canvases.Put(canvas)

	draw.Draw(canvas, base, image.NewUniform(opts.Background), image.Point{}, draw.Src)
	d := &font.Drawer{
		Dst:  canvas,
		Src:  image.NewUniform(opts.Foreground),
		Face: face,
	}
	_, cellH := CellSize()
	for row, line := range f.Lines() {
		d.Dot = fixed.P(0, row*cellH+face.Ascent)
		d.DrawString(line)
	}

	out := image.NewPaletted(scaled, palette)
	draw.NearestNeighbor.Scale(out, scaled, canvas, base, draw.Src, nil)
	return out
}

// DefaultPath creates a timestamped GIF filename in dir.
func DefaultPath(dir string) string {
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	return filepath.Join(dir, fmt.Sprintf("animation_%s.gif", timestamp))
}

// WriteFile exports a to path.
func WriteFile(ctx context.Context, a *animation.Animation, path string, opts Options) (Result, error) {
	start := time.Now()
	f, err := os.Create(path)
	if err != nil {
		return Result{}, err
	}
	if err := GIF(ctx, a, f, opts); err != nil {
		f.Close()
		os.Remove(path)
		return Result{}, err
	}
	if err := f.Close(); err != nil {
		return Result{}, err
	}
	return Result{Path: path, Frames: a.Len(), Elapsed: time.Since(start)}, nil
}
