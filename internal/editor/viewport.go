package editor

import (
	"github.com/molsketch/molsketch/internal/geom"
)

// Zoom limits.
const (
	MinScale = 0.1
	MaxScale = 5.0
)

// Viewport maps between presentation-space pixels and canvas-space
// coordinates. Translation is the canvas-space offset of the view center
// and Scale the zoom factor.
type Viewport struct {
	Translation geom.Vec
	Scale       float64
}

// NewViewport returns an unzoomed, centered viewport.
func NewViewport() Viewport {
	return Viewport{Scale: 1}
}

// Region returns the canvas-space rectangle visible through a presentation
// surface of the given size.
func (v Viewport) Region(size geom.Size) geom.Rect {
	return geom.Rect{
		X:      -v.Translation.X - size.Width/(2*v.Scale),
		Y:      -v.Translation.Y - size.Height/(2*v.Scale),
		Width:  size.Width / v.Scale,
		Height: size.Height / v.Scale,
	}
}

// Project converts a presentation-space point into canvas space.
func (v Viewport) Project(p geom.Vec, size geom.Size) geom.Vec {
	region := v.Region(size)
	return geom.Vec{
		X: p.X/v.Scale + region.X,
		Y: p.Y/v.Scale + region.Y,
	}
}

// Scroll applies a wheel step. Positive deltas zoom in. The scale moves
// multiplicatively and is clamped, and the translation is adjusted so the
// canvas point under the cursor stays put.
func (v Viewport) Scroll(deltaY float64, cursorFromCenter geom.Vec) Viewport {
	if !(deltaY < 0 && v.Scale > MinScale || deltaY > 0 && v.Scale < MaxScale) {
		return v
	}

	oldScale := v.Scale
	newScale := oldScale * (1 + deltaY/30)
	if newScale < MinScale {
		newScale = MinScale
	}
	if newScale > MaxScale {
		newScale = MaxScale
	}

	factor := (newScale - oldScale) / (oldScale * newScale)
	return Viewport{
		Translation: v.Translation.Sub(cursorFromCenter.Mul(factor)),
		Scale:       newScale,
	}
}
