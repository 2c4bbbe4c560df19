package molecule

import (
	"errors"
	"testing"

	"github.com/molsketch/molsketch/internal/geom"
	"github.com/molsketch/molsketch/internal/ident"
)

// chain builds a molecule of n atoms in a horizontal row, bonded in
// sequence, and returns it with the atom and bond ids in order.
func chain(t *testing.T, n int) (*Molecule, []ident.AtomID, []ident.BondID) {
	t.Helper()

	atomIDs := make([]ident.AtomID, n)
	for i := range atomIDs {
		atomIDs[i] = ident.NewAtomID()
	}

	m := New(geom.Vec{X: 100, Y: 100}, atomIDs[0], "C")
	for i := 1; i < n; i++ {
		pos := geom.Vec{X: 100 + float64(i)*BondLength, Y: 100}
		if err := m.AddAtom(atomIDs[i], "C", pos); err != nil {
			t.Fatalf("AddAtom(%d): %v", i, err)
		}
	}

	bondIDs := make([]ident.BondID, 0, n-1)
	for i := 1; i < n; i++ {
		id, err := m.AddBond(atomIDs[i-1], atomIDs[i], Normal(1))
		if err != nil {
			t.Fatalf("AddBond(%d): %v", i, err)
		}
		bondIDs = append(bondIDs, id)
	}

	return m, atomIDs, bondIDs
}

func TestNewMoleculeSingleAtom(t *testing.T) {
	id := ident.NewAtomID()
	m := New(geom.Vec{X: 50, Y: 60}, id, "O")

	if got := len(m.Atoms()); got != 1 {
		t.Fatalf("atom count = %d, want 1", got)
	}
	pos, err := m.AtomPosition(id)
	if err != nil {
		t.Fatalf("AtomPosition: %v", err)
	}
	if pos != (geom.Vec{X: 50, Y: 60}) {
		t.Errorf("atom canvas position = %v, want (50, 60)", pos)
	}
	if !m.Bounds().Contains(pos) {
		t.Errorf("molecule bounds should contain its only atom")
	}
}

func TestAddAtomCollision(t *testing.T) {
	id := ident.NewAtomID()
	m := New(geom.Vec{}, id, "C")

	err := m.AddAtom(id, "N", geom.Vec{X: 30})
	var collision AtomCollisionError
	if !errors.As(err, &collision) {
		t.Fatalf("AddAtom with duplicate id: error = %v, want AtomCollisionError", err)
	}
	if collision.ID != id {
		t.Errorf("collision id = %s, want %s", collision.ID, id)
	}
}

func TestDeleteBondSplitsBridge(t *testing.T) {
	m, atomIDs, bondIDs := chain(t, 4)

	// cutting the middle bond of a 4-chain leaves two 2-atom fragments
	detached, err := m.DeleteBond(bondIDs[1])
	if err != nil {
		t.Fatalf("DeleteBond: %v", err)
	}
	if len(detached) != 1 {
		t.Fatalf("detached fragments = %d, want 1", len(detached))
	}

	fragment := detached[0]
	if got := len(m.Atoms()) + len(fragment.Atoms()); got != 4 {
		t.Errorf("total atoms after split = %d, want 4", got)
	}
	if got := len(m.Bonds()) + len(fragment.Bonds()); got != 2 {
		t.Errorf("total bonds after split = %d, want 2", got)
	}
	if fragment.Position() != m.Position() {
		t.Errorf("fragment position = %v, want %v", fragment.Position(), m.Position())
	}

	// the home molecule keeps the first endpoint's component
	if _, err := m.Atom(atomIDs[1]); err != nil {
		t.Errorf("home molecule lost its seed atom: %v", err)
	}
	if _, err := fragment.Atom(atomIDs[2]); err != nil {
		t.Errorf("fragment missing its seed atom: %v", err)
	}

	// canvas positions of all four atoms are unchanged by the split
	for i, atomID := range atomIDs {
		want := geom.Vec{X: 100 + float64(i)*BondLength, Y: 100}
		holder := m
		if i >= 2 {
			holder = fragment
		}
		got, err := holder.AtomPosition(atomID)
		if err != nil {
			t.Fatalf("AtomPosition(%d): %v", i, err)
		}
		if got != want {
			t.Errorf("atom %d canvas position = %v, want %v", i, got, want)
		}
	}
}

func TestDeleteBondInCycleKeepsOneMolecule(t *testing.T) {
	a := ident.NewAtomID()
	b := ident.NewAtomID()
	c := ident.NewAtomID()

	m := New(geom.Vec{}, a, "C")
	if err := m.AddAtom(b, "C", geom.Vec{X: BondLength}); err != nil {
		t.Fatalf("AddAtom: %v", err)
	}
	if err := m.AddAtom(c, "C", geom.Vec{X: BondLength / 2, Y: BondLength}); err != nil {
		t.Fatalf("AddAtom: %v", err)
	}
	ab, err := m.AddBond(a, b, Normal(1))
	if err != nil {
		t.Fatalf("AddBond: %v", err)
	}
	if _, err := m.AddBond(b, c, Normal(1)); err != nil {
		t.Fatalf("AddBond: %v", err)
	}
	if _, err := m.AddBond(c, a, Normal(1)); err != nil {
		t.Fatalf("AddBond: %v", err)
	}

	detached, err := m.DeleteBond(ab)
	if err != nil {
		t.Fatalf("DeleteBond: %v", err)
	}
	if len(detached) != 0 {
		t.Fatalf("deleting a ring bond split the molecule into %d fragments", len(detached))
	}
	if got := len(m.Atoms()); got != 3 {
		t.Errorf("atom count = %d, want 3", got)
	}
	if got := len(m.Bonds()); got != 2 {
		t.Errorf("bond count = %d, want 2", got)
	}
}

func TestDeleteAtomDetachesNeighbors(t *testing.T) {
	// star: center bonded to three arms; deleting the center yields three
	// single-atom fragments, two of them detached
	center := ident.NewAtomID()
	arms := []ident.AtomID{ident.NewAtomID(), ident.NewAtomID(), ident.NewAtomID()}
	positions := []geom.Vec{{X: BondLength}, {X: -BondLength}, {Y: BondLength}}

	m := New(geom.Vec{X: 200, Y: 200}, center, "N")
	for i, arm := range arms {
		if err := m.AddAtom(arm, "H", positions[i].Add(geom.Vec{X: 200, Y: 200})); err != nil {
			t.Fatalf("AddAtom: %v", err)
		}
		if _, err := m.AddBond(center, arm, Normal(1)); err != nil {
			t.Fatalf("AddBond: %v", err)
		}
	}

	detached, err := m.DeleteAtom(center)
	if err != nil {
		t.Fatalf("DeleteAtom: %v", err)
	}
	if len(detached) != 2 {
		t.Fatalf("detached fragments = %d, want 2", len(detached))
	}
	if got := len(m.Atoms()); got != 1 {
		t.Errorf("home molecule atoms = %d, want 1", got)
	}
	if got := len(m.Bonds()); got != 0 {
		t.Errorf("home molecule bonds = %d, want 0", got)
	}
	for i, fragment := range detached {
		if got := len(fragment.Atoms()); got != 1 {
			t.Errorf("fragment %d atoms = %d, want 1", i, got)
		}
	}
}

func TestDeleteAtomMissing(t *testing.T) {
	m, _, _ := chain(t, 2)

	_, err := m.DeleteAtom(ident.AtomID("atom_0000000000000000000000000"))
	var missing AtomMissingError
	if !errors.As(err, &missing) {
		t.Fatalf("DeleteAtom(absent): error = %v, want AtomMissingError", err)
	}
}

func TestExtendThenCutRestoresFragments(t *testing.T) {
	left := ident.NewAtomID()
	right := ident.NewAtomID()

	a := New(geom.Vec{X: 10, Y: 10}, left, "C")
	b := New(geom.Vec{X: 70, Y: 10}, right, "O")

	leftPos, _ := a.AtomPosition(left)
	rightPos, _ := b.AtomPosition(right)

	a.Extend(b)
	if !b.IsEmpty() {
		t.Fatalf("extend source should be drained")
	}
	bridge, err := a.AddBond(left, right, Normal(1))
	if err != nil {
		t.Fatalf("AddBond: %v", err)
	}

	// positions survive the merge
	if got, _ := a.AtomPosition(right); got != rightPos {
		t.Errorf("merged atom canvas position = %v, want %v", got, rightPos)
	}

	detached, err := a.DeleteBond(bridge)
	if err != nil {
		t.Fatalf("DeleteBond: %v", err)
	}
	if len(detached) != 1 {
		t.Fatalf("detached fragments = %d, want 1", len(detached))
	}
	if got, _ := a.AtomPosition(left); got != leftPos {
		t.Errorf("home atom canvas position = %v, want %v", got, leftPos)
	}
	if got, _ := detached[0].AtomPosition(right); got != rightPos {
		t.Errorf("fragment atom canvas position = %v, want %v", got, rightPos)
	}
}

func TestMoveAtomUpdatesBoundsAndNeighborLabels(t *testing.T) {
	m, atomIDs, _ := chain(t, 2)

	// neighbor sits to the right, so both labels point away from the bond
	if a, _ := m.Atom(atomIDs[0]); a.LabelDirection() != DirectionLeft {
		t.Errorf("left atom label direction = %v, want left", a.LabelDirection())
	}
	if a, _ := m.Atom(atomIDs[1]); a.LabelDirection() != DirectionRight {
		t.Errorf("right atom label direction = %v, want right", a.LabelDirection())
	}

	// swing the second atom below the first; right becomes free again
	if err := m.MoveAtom(atomIDs[1], geom.Vec{X: -BondLength, Y: BondLength}); err != nil {
		t.Fatalf("MoveAtom: %v", err)
	}
	if a, _ := m.Atom(atomIDs[0]); a.LabelDirection() != DirectionRight {
		t.Errorf("after move, first label direction = %v, want right", a.LabelDirection())
	}
	if a, _ := m.Atom(atomIDs[1]); a.LabelDirection() != DirectionRight {
		t.Errorf("after move, second label direction = %v, want right", a.LabelDirection())
	}

	pos, _ := m.AtomPosition(atomIDs[1])
	if !m.Bounds().Contains(pos) {
		t.Errorf("bounds do not cover moved atom at %v", pos)
	}
}

func TestMoveBondTranslatesBothEndpoints(t *testing.T) {
	m, atomIDs, bondIDs := chain(t, 3)

	before0, _ := m.AtomPosition(atomIDs[0])
	before1, _ := m.AtomPosition(atomIDs[1])
	before2, _ := m.AtomPosition(atomIDs[2])

	delta := geom.Vec{X: 5, Y: -7}
	if err := m.MoveBond(bondIDs[0], delta); err != nil {
		t.Fatalf("MoveBond: %v", err)
	}

	if got, _ := m.AtomPosition(atomIDs[0]); got != before0.Add(delta) {
		t.Errorf("endpoint 0 = %v, want %v", got, before0.Add(delta))
	}
	if got, _ := m.AtomPosition(atomIDs[1]); got != before1.Add(delta) {
		t.Errorf("endpoint 1 = %v, want %v", got, before1.Add(delta))
	}
	if got, _ := m.AtomPosition(atomIDs[2]); got != before2 {
		t.Errorf("unrelated atom moved to %v", got)
	}
}

func TestTranslateMoleculeShiftsEverything(t *testing.T) {
	m, atomIDs, _ := chain(t, 2)

	before, _ := m.AtomPosition(atomIDs[0])
	boundsBefore := m.Bounds()

	m.Translate(geom.Vec{X: -30, Y: 12})

	if got, _ := m.AtomPosition(atomIDs[0]); got != before.Add(geom.Vec{X: -30, Y: 12}) {
		t.Errorf("atom position = %v after translate", got)
	}
	want := boundsBefore.Translate(geom.Vec{X: -30, Y: 12})
	if got := m.Bounds(); got != want {
		t.Errorf("bounds = %+v, want %+v", got, want)
	}
}

func TestChangeBondTypeAndFlip(t *testing.T) {
	m, atomIDs, bondIDs := chain(t, 2)

	m.ChangeBondType(bondIDs[0], Normal(2))
	bond, err := m.Bond(bondIDs[0])
	if err != nil {
		t.Fatalf("Bond: %v", err)
	}
	if bond.Type() != Normal(2) {
		t.Errorf("bond type = %+v, want double", bond.Type())
	}

	m.FlipBond(bondIDs[0])
	if bond.Start() != atomIDs[1] || bond.End() != atomIDs[0] {
		t.Errorf("flip did not reverse endpoints")
	}

	// absent ids are ignored without error
	m.ChangeBondType(ident.BondID("bond_0000000000000000000000000"), Wedge)
	m.FlipBond(ident.BondID("bond_0000000000000000000000000"))
}

func TestRenameAtomGrowsBounds(t *testing.T) {
	id := ident.NewAtomID()
	m := New(geom.Vec{}, id, "C")
	before := m.Bounds()

	if err := m.RenameAtom(id, "COOH"); err != nil {
		t.Fatalf("RenameAtom: %v", err)
	}
	after := m.Bounds()
	if after.Size.Width <= before.Size.Width {
		t.Errorf("bounds width %f did not grow from %f after longer label", after.Size.Width, before.Size.Width)
	}

	atom, _ := m.Atom(id)
	if atom.Label().Input() != "COOH" {
		t.Errorf("label = %q, want COOH", atom.Label().Input())
	}
}

func TestLabelDirectionFallsBackThroughBlockedSides(t *testing.T) {
	tests := []struct {
		name      string
		neighbors []geom.Vec // relative to the probed atom
		want      Direction
	}{
		{"no neighbors", nil, DirectionRight},
		{"right blocked", []geom.Vec{{X: BondLength}}, DirectionLeft},
		{"right and left blocked", []geom.Vec{{X: BondLength}, {X: -BondLength}}, DirectionUp},
		{
			"only down free",
			[]geom.Vec{{X: BondLength}, {X: -BondLength}, {Y: -BondLength}},
			DirectionDown,
		},
		{
			"all blocked defaults right",
			[]geom.Vec{{X: BondLength}, {X: -BondLength}, {Y: -BondLength}, {Y: BondLength}},
			DirectionRight,
		},
		{
			"diagonal blocks both axes",
			[]geom.Vec{{X: BondLength, Y: BondLength}},
			DirectionLeft,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			center := ident.NewAtomID()
			m := New(geom.Vec{}, center, "N")
			for _, offset := range tt.neighbors {
				neighbor := ident.NewAtomID()
				if err := m.AddAtom(neighbor, "C", offset); err != nil {
					t.Fatalf("AddAtom: %v", err)
				}
				if _, err := m.AddBond(center, neighbor, Normal(1)); err != nil {
					t.Fatalf("AddBond: %v", err)
				}
			}

			atom, _ := m.Atom(center)
			if got := atom.LabelDirection(); got != tt.want {
				t.Errorf("label direction = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAtomsAtAndBondsAt(t *testing.T) {
	m, atomIDs, bondIDs := chain(t, 2)

	pos, _ := m.AtomPosition(atomIDs[0])
	hits := m.AtomsAt(pos)
	if len(hits) != 1 || hits[0].ID != atomIDs[0] {
		t.Fatalf("AtomsAt(%v) = %v, want the first atom", pos, hits)
	}

	mid, _ := m.BondPosition(bondIDs[0])
	bondHits, err := m.BondsAt(mid)
	if err != nil {
		t.Fatalf("BondsAt: %v", err)
	}
	if len(bondHits) != 1 || bondHits[0].ID != bondIDs[0] {
		t.Fatalf("BondsAt(%v) = %v, want the only bond", mid, bondHits)
	}

	far := geom.Vec{X: -1000, Y: -1000}
	if hits := m.AtomsAt(far); len(hits) != 0 {
		t.Errorf("AtomsAt(far) = %v, want none", hits)
	}
}

func TestBondsAtSkipsZeroLengthBond(t *testing.T) {
	m, atomIDs, bondIDs := chain(t, 2)

	// collapse the bond by moving one endpoint onto the other
	if err := m.MoveAtom(atomIDs[1], geom.Vec{X: -BondLength, Y: 0}); err != nil {
		t.Fatalf("MoveAtom: %v", err)
	}

	pos, _ := m.AtomPosition(atomIDs[0])
	hits, err := m.BondsAt(pos)
	if err != nil {
		t.Fatalf("BondsAt over a collapsed bond: %v", err)
	}
	if len(hits) != 0 {
		t.Errorf("BondsAt = %v, want the collapsed bond unhittable", hits)
	}

	// direct geometry queries still report the degenerate bond
	if _, err := m.BondBounds(bondIDs[0]); !errors.Is(err, ErrInvalidGeometry) {
		t.Errorf("BondBounds error = %v, want ErrInvalidGeometry", err)
	}
}

func TestNearestAtom(t *testing.T) {
	m, atomIDs, _ := chain(t, 3)

	pos, _ := m.AtomPosition(atomIDs[2])
	got, ok := m.NearestAtom(pos.Add(geom.Vec{X: 2, Y: 2}))
	if !ok || got != atomIDs[2] {
		t.Errorf("NearestAtom = %v ok=%v, want %v", got, ok, atomIDs[2])
	}
}
