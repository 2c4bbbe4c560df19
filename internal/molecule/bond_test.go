package molecule

import (
	"errors"
	"math"
	"testing"

	"github.com/molsketch/molsketch/internal/geom"
	"github.com/molsketch/molsketch/internal/ident"
)

func TestBondWidths(t *testing.T) {
	tests := []struct {
		name     string
		bondType BondType
		want     float64
	}{
		{"single", Normal(1), BondWidth},
		{"double", Normal(2), BondGap + BondWidth},
		{"triple", Normal(3), 2*BondGap + BondWidth},
		{"wedge", Wedge, WedgeEndWidth},
		{"dash", Dash, DashEndWidth},
		{"hydrogen", Hydrogen, HydrogenWidth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.bondType.width(); got != tt.want {
				t.Errorf("width = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestFixedLength(t *testing.T) {
	start := geom.Vec{X: 10, Y: 10}

	got := FixedLength(start, geom.Vec{X: 3, Y: 0}, 30)
	if got != (geom.Vec{X: 40, Y: 10}) {
		t.Errorf("FixedLength horizontal = %v, want (40, 10)", got)
	}

	got = FixedLength(start, geom.Vec{X: 0, Y: -2}, 30)
	if got != (geom.Vec{X: 10, Y: -20}) {
		t.Errorf("FixedLength vertical = %v, want (10, -20)", got)
	}

	// direction too short to normalize: fall back to horizontal
	got = FixedLength(start, geom.Vec{}, 30)
	if got != (geom.Vec{X: 40, Y: 10}) {
		t.Errorf("FixedLength degenerate = %v, want (40, 10)", got)
	}

	diag := FixedLength(start, geom.Vec{X: 1, Y: 1}, 30)
	if !almostEqual(start.Distance(diag), 30) {
		t.Errorf("FixedLength diagonal distance = %f, want 30", start.Distance(diag))
	}
}

func TestBondLineTrimsAtLabels(t *testing.T) {
	a := ident.NewAtomID()
	b := ident.NewAtomID()
	atoms := map[ident.AtomID]*Atom{
		a: NewAtom("C", geom.Vec{}),
		b: NewAtom("C", geom.Vec{X: 30, Y: 21}),
	}
	bond := NewBond(a, b, Normal(1))

	start, end, err := bond.Line(atoms)
	if err != nil {
		t.Fatalf("Line: %v", err)
	}

	// both ends pull back from the atom centers to the label edges
	if start.X <= 0 || start.X >= 15 {
		t.Errorf("trimmed start x = %f, want between the atom and the midpoint", start.X)
	}
	if end.X >= 30 || end.X <= 15 {
		t.Errorf("trimmed end x = %f, want between the midpoint and the atom", end.X)
	}

	// the trimmed points stay on the segment
	if !almostEqual(start.Y/start.X, 21.0/30.0) || !almostEqual((21-end.Y)/(30-end.X), 21.0/30.0) {
		t.Errorf("trimmed line left the bond axis: %v %v", start, end)
	}
}

func TestBondLineAxisAlignedKeepsAtomCenters(t *testing.T) {
	// with a zero direction component the label exit degenerates to the
	// atom position, so a perfectly horizontal bond spans center to center
	a := ident.NewAtomID()
	b := ident.NewAtomID()
	atoms := map[ident.AtomID]*Atom{
		a: NewAtom("C", geom.Vec{}),
		b: NewAtom("C", geom.Vec{X: BondLength}),
	}
	bond := NewBond(a, b, Normal(1))

	start, end, err := bond.Line(atoms)
	if err != nil {
		t.Fatalf("Line: %v", err)
	}
	if start != (geom.Vec{}) || end != (geom.Vec{X: BondLength}) {
		t.Errorf("axis-aligned bond line = %v..%v, want atom centers", start, end)
	}
}

func TestBondLineUnlabeledAtomsSpanFully(t *testing.T) {
	a := ident.NewAtomID()
	b := ident.NewAtomID()
	atoms := map[ident.AtomID]*Atom{
		a: NewAtom("", geom.Vec{X: 5, Y: 5}),
		b: NewAtom("", geom.Vec{X: 35, Y: 5}),
	}
	bond := NewBond(a, b, Normal(1))

	start, end, err := bond.Line(atoms)
	if err != nil {
		t.Fatalf("Line: %v", err)
	}
	if start != (geom.Vec{X: 5, Y: 5}) || end != (geom.Vec{X: 35, Y: 5}) {
		t.Errorf("unlabeled bond line = %v..%v, want atom centers", start, end)
	}
}

func TestBondBoundsContainsMidpoint(t *testing.T) {
	a := ident.NewAtomID()
	b := ident.NewAtomID()

	// a slanted bond gets an oriented hit box
	atoms := map[ident.AtomID]*Atom{
		a: NewAtom("", geom.Vec{}),
		b: NewAtom("", geom.Vec{X: 20, Y: 20}),
	}
	bond := NewBond(a, b, Normal(1))

	bounds, err := bond.Bounds(atoms)
	if err != nil {
		t.Fatalf("Bounds: %v", err)
	}
	if !bounds.Contains(geom.Vec{X: 10, Y: 10}) {
		t.Errorf("bond bounds miss the midpoint")
	}
	if bounds.Contains(geom.Vec{X: 20, Y: 0}) {
		t.Errorf("bond bounds cover the far corner of the span")
	}
	if almostEqual(bounds.Angle, 0) {
		t.Errorf("slanted bond bounds not rotated")
	}
}

func TestBondBoundsZeroLength(t *testing.T) {
	a := ident.NewAtomID()
	b := ident.NewAtomID()
	atoms := map[ident.AtomID]*Atom{
		a: NewAtom("", geom.Vec{X: 5, Y: 5}),
		b: NewAtom("", geom.Vec{X: 5, Y: 5}),
	}
	bond := NewBond(a, b, Normal(1))

	_, err := bond.Bounds(atoms)
	if !errors.Is(err, ErrInvalidGeometry) {
		t.Errorf("zero-length bond bounds error = %v, want ErrInvalidGeometry", err)
	}
}

func TestBondBoundsMissingAtom(t *testing.T) {
	a := ident.NewAtomID()
	b := ident.NewAtomID()
	atoms := map[ident.AtomID]*Atom{a: NewAtom("C", geom.Vec{})}
	bond := NewBond(a, b, Normal(1))

	_, err := bond.Bounds(atoms)
	var missing AtomMissingError
	if !errors.As(err, &missing) {
		t.Fatalf("error = %v, want AtomMissingError", err)
	}
	if missing.ID != b {
		t.Errorf("missing id = %s, want %s", missing.ID, b)
	}
}

func TestBondCenter(t *testing.T) {
	a := ident.NewAtomID()
	b := ident.NewAtomID()
	atoms := map[ident.AtomID]*Atom{
		a: NewAtom("", geom.Vec{X: 0, Y: 10}),
		b: NewAtom("", geom.Vec{X: 30, Y: 10}),
	}
	bond := NewBond(a, b, Normal(1))

	center, err := bond.Center(atoms)
	if err != nil {
		t.Fatalf("Center: %v", err)
	}
	if !almostEqual(center.X, 15) || !almostEqual(center.Y, 10) {
		t.Errorf("center = %v, want (15, 10)", center)
	}
}

func TestBondAngleFollowsDirection(t *testing.T) {
	a := ident.NewAtomID()
	b := ident.NewAtomID()

	// pointing left: the angle flips by pi so the box tracks the segment
	atoms := map[ident.AtomID]*Atom{
		a: NewAtom("", geom.Vec{X: 30, Y: 0}),
		b: NewAtom("", geom.Vec{X: 0, Y: 0}),
	}
	bond := NewBond(a, b, Normal(1))

	bounds, err := bond.Bounds(atoms)
	if err != nil {
		t.Fatalf("Bounds: %v", err)
	}
	if !almostEqual(math.Mod(bounds.Angle, math.Pi), 0) || almostEqual(bounds.Angle, 0) {
		t.Errorf("leftward bond angle = %f, want pi", bounds.Angle)
	}
	if !bounds.Contains(geom.Vec{X: 15, Y: 0}) {
		t.Errorf("leftward bond bounds miss the midpoint")
	}
}
