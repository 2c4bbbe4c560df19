package molecule

import "github.com/molsketch/molsketch/internal/geom"

// Layout constants shared by bounds computation and the default renderer.
const (
	MoleculePadding = 3.0
	AtomPadding     = 3.0
	BondPadding     = 3.0

	BondLength = 30.0
	BondWidth  = 1.0
	// BondGap is the spacing between the parallel strokes of a
	// higher-order bond.
	BondGap = 2.0

	WedgeStartWidth = 1.0
	WedgeEndWidth   = 4.0
	DashStartWidth  = 1.0
	DashEndWidth    = 4.0
	DashSpacing     = 4.0
	HydrogenWidth   = 3.0
	HydrogenSpacing = 4.0
)

// Atom is a labelled point entity owned by exactly one molecule. Its
// position is relative to the owning molecule's origin.
type Atom struct {
	label    Label
	position geom.Vec
}

// NewAtom creates an atom at a molecule-local position.
func NewAtom(label string, position geom.Vec) *Atom {
	return &Atom{
		label:    newLabel(label, DirectionRight),
		position: position,
	}
}

func (a *Atom) Label() *Label             { return &a.label }
func (a *Atom) LabelDirection() Direction { return a.label.direction }
func (a *Atom) Position() geom.Vec        { return a.position }

// LabelPlacements exposes the token layout for rendering.
func (a *Atom) LabelPlacements() []PlacedToken { return a.label.Placements() }

// Rename replaces the label text, keeping the current direction.
func (a *Atom) Rename(text string) {
	a.label = newLabel(text, a.label.direction)
}

func (a *Atom) translate(v geom.Vec) {
	a.position = a.position.Add(v)
}

// Bounds returns the molecule-local hit box: the label bounds expanded by
// the atom padding and translated to the atom position. An empty label
// degenerates to the padded point.
func (a *Atom) Bounds() geom.Bounds {
	return geom.BoundsFromRect(a.label.Bounds().Expand(AtomPadding).Translate(a.position))
}

// BondStart returns the point a bond towards the given molecule-local
// position should start from: the atom position for unlabelled atoms,
// otherwise the exit point of the direction ray through the label bounds.
func (a *Atom) BondStart(toward geom.Vec) geom.Vec {
	if a.label.IsEmpty() {
		return a.position
	}

	direction := toward.Sub(a.position)
	bounds := a.label.Bounds()

	// distance along direction until the bounds are reached on the x axis
	var tx float64
	switch {
	case direction.X > 0:
		tx = (bounds.X + bounds.Width) / direction.X
	case direction.X < 0:
		tx = bounds.X / direction.X
	}

	// distance along direction until the bounds are reached on the y axis
	var ty float64
	switch {
	case direction.Y > 0:
		ty = (bounds.Y + bounds.Height) / direction.Y
	case direction.Y < 0:
		ty = bounds.Y / direction.Y
	}

	return a.position.Add(direction.Mul(min(tx, ty)))
}
