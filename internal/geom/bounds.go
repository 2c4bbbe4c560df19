package geom

// Bounds is a rectangular bounding box with arbitrary rotation. The
// rectangle lives in a local frame spanning (0,0)-(Width,Height) and is
// mapped into world space by rotating first, then translating by Offset.
type Bounds struct {
	Offset Vec
	Size   Size
	Angle  float64 // radians
}

// NewBounds builds an oriented bounds from its world-space top-left corner,
// local size and rotation angle.
func NewBounds(topLeft Vec, size Size, angle float64) Bounds {
	return Bounds{Offset: topLeft, Size: size, Angle: angle}
}

// BoundsFromRect wraps an axis-aligned rect as an unrotated bounds.
func BoundsFromRect(r Rect) Bounds {
	return Bounds{
		Offset: Vec{r.X, r.Y},
		Size:   Size{r.Width, r.Height},
	}
}

func (b Bounds) transform() Matrix2D {
	return Translate(b.Offset.X, b.Offset.Y).Multiply(Rotate(b.Angle))
}

// AddPadding grows the bounds by p on every rotated side: the size gains 2p
// in both axes and the offset is pulled back along the rotated padding
// vector so the padded box still encloses the original region.
func (b *Bounds) AddPadding(p float64) {
	b.Offset = b.Offset.Sub(Rotate(b.Angle).TransformVec(Vec{p, p}))
	b.Size = Size{b.Size.Width + 2*p, b.Size.Height + 2*p}
}

// Corners returns the four world-space corners in local winding order.
func (b Bounds) Corners() [4]Vec {
	t := b.transform()
	return [4]Vec{
		t.TransformPoint(Vec{0, 0}),
		t.TransformPoint(Vec{b.Size.Width, 0}),
		t.TransformPoint(Vec{b.Size.Width, b.Size.Height}),
		t.TransformPoint(Vec{0, b.Size.Height}),
	}
}

// Center returns the world-space centroid.
func (b Bounds) Center() Vec {
	return b.transform().TransformPoint(Vec{b.Size.Width / 2, b.Size.Height / 2})
}

// Contains reports whether the world-space point lies inside the bounds.
// A degenerate (non-invertible) transform contains nothing.
func (b Bounds) Contains(p Vec) bool {
	inv, ok := b.transform().Invert()
	if !ok {
		return false
	}
	local := inv.TransformPoint(p)
	return Rect{Width: b.Size.Width, Height: b.Size.Height}.Contains(local)
}

// Union returns the smallest axis-aligned bounds containing both boxes.
// Rotation is intentionally discarded in the result: the union of two
// rotated boxes is approximated by the bounding box of their eight corners.
func (b Bounds) Union(other Bounds) Bounds {
	bc := b.Corners()
	oc := other.Corners()

	minCorner := bc[0]
	maxCorner := bc[0]

	expand := func(p Vec) {
		if p.X < minCorner.X {
			minCorner.X = p.X
		} else if p.Y < minCorner.Y {
			minCorner.Y = p.Y
		}

		if p.X > maxCorner.X {
			maxCorner.X = p.X
		} else if p.Y > maxCorner.Y {
			maxCorner.Y = p.Y
		}
	}

	for _, p := range bc[1:] {
		expand(p)
	}
	for _, p := range oc {
		expand(p)
	}

	return BoundsFromRect(Rect{
		X:      minCorner.X,
		Y:      minCorner.Y,
		Width:  maxCorner.X - minCorner.X,
		Height: maxCorner.Y - minCorner.Y,
	})
}

// Intersects reports whether the bounds overlaps the axis-aligned rect. For
// each of the rect's four boundaries at least one corner must lie strictly
// on its inner side.
func (b Bounds) Intersects(rect Rect) bool {
	corners := b.Corners()

	for _, inside := range [4]func(Vec) bool{
		func(p Vec) bool { return p.X > rect.X },
		func(p Vec) bool { return p.Y > rect.Y },
		func(p Vec) bool { return p.X < rect.X+rect.Width },
		func(p Vec) bool { return p.Y < rect.Y+rect.Height },
	} {
		outside := true
		for _, p := range corners {
			if inside(p) {
				outside = false
			}
		}
		if outside {
			return false
		}
	}

	return true
}

// IsContained reports whether the bounds lies entirely within the
// axis-aligned rect: no corner may fall outside any boundary.
func (b Bounds) IsContained(rect Rect) bool {
	corners := b.Corners()

	for _, outside := range [4]func(Vec) bool{
		func(p Vec) bool { return p.X < rect.X },
		func(p Vec) bool { return p.Y < rect.Y },
		func(p Vec) bool { return p.X > rect.X+rect.Width },
		func(p Vec) bool { return p.Y > rect.Y+rect.Height },
	} {
		for _, p := range corners {
			if outside(p) {
				return false
			}
		}
	}

	return true
}

// Translate returns the bounds shifted by the given world-space displacement.
func (b Bounds) Translate(v Vec) Bounds {
	return Bounds{Offset: b.Offset.Add(v), Size: b.Size, Angle: b.Angle}
}
