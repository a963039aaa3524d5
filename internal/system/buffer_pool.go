package system

import (
	"image"
	"sync"
)

// CanvasPool hands out RGBA canvases that all share one size, the unscaled
// glyph canvas of a single export. Canvases come back cleared to transparent.
type CanvasPool struct {
	bounds image.Rectangle
	pool   sync.Pool
}

func NewCanvasPool(bounds image.Rectangle) *CanvasPool {
	p := &CanvasPool{bounds: bounds}
	p.pool.New = func() any {
		return image.NewRGBA(bounds)
	}
	return p
}

// Bounds returns the size of every canvas in the pool.
func (p *CanvasPool) Bounds() image.Rectangle {
	return p.bounds
}

func (p *CanvasPool) Get() *image.RGBA {
	return p.pool.Get().(*image.RGBA)
}

// Put returns c to the pool. Canvases of another size are dropped.
func (p *CanvasPool) Put(c *image.RGBA) {
	if c == nil || c.Rect != p.bounds {
		return
	}
	clear(c.Pix)
	p.pool.Put(c)
}
