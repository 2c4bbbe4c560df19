package molecule

import (
	"fmt"
	"math"

	"github.com/molsketch/molsketch/internal/geom"
	"github.com/molsketch/molsketch/internal/ident"
)

// BondKind discriminates the bond styles.
type BondKind uint8

const (
	BondNormal BondKind = iota
	BondWedge
	BondDash
	BondHydrogen
)

func (k BondKind) String() string {
	switch k {
	case BondNormal:
		return "normal"
	case BondWedge:
		return "wedge"
	case BondDash:
		return "dash"
	case BondHydrogen:
		return "hydrogen"
	default:
		return "unknown"
	}
}

// BondType is a bond style plus, for normal bonds, its order. Values are
// comparable; two types are the same style iff they are equal.
type BondType struct {
	Kind  BondKind `json:"kind"`
	Order uint8    `json:"order,omitempty"`
}

// Normal returns a plain bond of the given order (1 = single, 2 = double…).
func Normal(order uint8) BondType { return BondType{Kind: BondNormal, Order: order} }

var (
	Wedge    = BondType{Kind: BondWedge}
	Dash     = BondType{Kind: BondDash}
	Hydrogen = BondType{Kind: BondHydrogen}
)

// width returns the full stroke width of the bond, used for its hit box.
func (t BondType) width() float64 {
	switch t.Kind {
	case BondWedge:
		return WedgeEndWidth
	case BondDash:
		return DashEndWidth
	case BondHydrogen:
		return HydrogenWidth
	default:
		return (float64(t.Order)-1)*BondGap + BondWidth
	}
}

// Bond connects two atoms of the same molecule. Start and end are ordered:
// for wedge and dash bonds the order encodes the stereo direction.
type Bond struct {
	start    ident.AtomID
	end      ident.AtomID
	bondType BondType
}

// NewBond creates a bond between two atom ids.
func NewBond(start, end ident.AtomID, bondType BondType) *Bond {
	return &Bond{start: start, end: end, bondType: bondType}
}

func (b *Bond) Start() ident.AtomID { return b.start }
func (b *Bond) End() ident.AtomID   { return b.end }
func (b *Bond) Type() BondType      { return b.bondType }

// AtomIDs returns both endpoint ids.
func (b *Bond) AtomIDs() [2]ident.AtomID { return [2]ident.AtomID{b.start, b.end} }

func (b *Bond) changeType(bondType BondType) { b.bondType = bondType }

// flip swaps start and end, reversing the stereo direction of wedge and
// dash bonds.
func (b *Bond) flip() { b.start, b.end = b.end, b.start }

// Line returns the molecule-local segment the bond occupies, with both
// ends pulled back to the edges of the endpoint labels.
func (b *Bond) Line(atoms map[ident.AtomID]*Atom) (geom.Vec, geom.Vec, error) {
	startAtom, ok := atoms[b.start]
	if !ok {
		return geom.Vec{}, geom.Vec{}, AtomMissingError{ID: b.start}
	}
	endAtom, ok := atoms[b.end]
	if !ok {
		return geom.Vec{}, geom.Vec{}, AtomMissingError{ID: b.end}
	}

	start := startAtom.BondStart(endAtom.Position())
	end := endAtom.BondStart(startAtom.Position())
	return start, end, nil
}

// Bounds returns the molecule-local hit box: an oriented rectangle along
// the trimmed bond line, as wide as the bond's stroke, padded.
func (b *Bond) Bounds(atoms map[ident.AtomID]*Atom) (geom.Bounds, error) {
	start, end, err := b.Line(atoms)
	if err != nil {
		return geom.Bounds{}, fmt.Errorf("bond bounds: %w", err)
	}

	direction := end.Sub(start)
	length := direction.Length()
	if length == 0 {
		return geom.Bounds{}, fmt.Errorf("bond bounds: %w", ErrInvalidGeometry)
	}

	unitNormal := geom.Vec{X: direction.Y, Y: -direction.X}.Mul(1 / length)
	width := b.bondType.width()
	offset := start.Add(unitNormal.Mul(width / 2))

	angle := math.Atan(direction.Y / direction.X)
	if direction.X < 0 {
		angle += math.Pi
	}

	bounds := geom.NewBounds(offset, geom.Size{Width: length, Height: width}, angle)
	bounds.AddPadding(BondPadding)
	return bounds, nil
}

// Center returns the midpoint of the trimmed bond line in molecule-local
// coordinates.
func (b *Bond) Center(atoms map[ident.AtomID]*Atom) (geom.Vec, error) {
	start, end, err := b.Line(atoms)
	if err != nil {
		return geom.Vec{}, fmt.Errorf("bond center: %w", err)
	}
	return start.Add(end.Sub(start).Mul(0.5)), nil
}

// FixedLength returns the point at the given distance from start along
// direction. A near-zero direction falls back to the horizontal so drawing
// a bond in place still produces a bond of the standard length.
func FixedLength(start, direction geom.Vec, length float64) geom.Vec {
	magnitude := direction.Length()
	if magnitude > 1e-4 {
		return start.Add(direction.Mul(length / magnitude))
	}
	return start.Add(geom.Vec{X: length})
}
