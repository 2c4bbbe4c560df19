// Package geom contains the 2D math used for layout and hit-testing:
// vectors, affine matrices, axis-aligned rectangles and oriented bounds.
package geom

import "math"

// Vec is a 2D point or displacement. Positions and offsets share the same
// arithmetic, so a single type covers both.
type Vec struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (v Vec) Add(o Vec) Vec      { return Vec{v.X + o.X, v.Y + o.Y} }
func (v Vec) Sub(o Vec) Vec      { return Vec{v.X - o.X, v.Y - o.Y} }
func (v Vec) Mul(s float64) Vec  { return Vec{v.X * s, v.Y * s} }
func (v Vec) Length() float64    { return math.Hypot(v.X, v.Y) }
func (v Vec) Distance(o Vec) float64 { return v.Sub(o).Length() }

// Size is a width/height pair.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}
