package molecule

import (
	"errors"
	"fmt"
	"math"

	"github.com/molsketch/molsketch/internal/geom"
	"github.com/molsketch/molsketch/internal/ident"
)

// Molecule owns a connected graph of atoms and bonds. Atoms hold positions
// relative to the molecule's canvas position; the padded local bounds are
// cached and recomputed after every mutation that can change geometry.
type Molecule struct {
	atoms       map[ident.AtomID]*Atom
	bonds       map[ident.BondID]*Bond
	localBounds geom.Bounds
	position    geom.Vec
}

// New creates a molecule at the given canvas position containing a single
// atom at its origin.
func New(canvasPosition geom.Vec, atomID ident.AtomID, label string) *Molecule {
	m := &Molecule{
		atoms:    map[ident.AtomID]*Atom{atomID: NewAtom(label, geom.Vec{})},
		bonds:    map[ident.BondID]*Bond{},
		position: canvasPosition,
	}
	m.computeBounds()
	return m
}

// Atoms returns the atom map. Callers must not mutate it.
func (m *Molecule) Atoms() map[ident.AtomID]*Atom { return m.atoms }

// Bonds returns the bond map. Callers must not mutate it.
func (m *Molecule) Bonds() map[ident.BondID]*Bond { return m.bonds }

// IsEmpty reports whether the molecule has no atoms left. An empty molecule
// is invalid and must be removed from the document immediately.
func (m *Molecule) IsEmpty() bool { return len(m.atoms) == 0 }

// Position returns the molecule's canvas position offset.
func (m *Molecule) Position() geom.Vec { return m.position }

// Bounds returns the cached local bounds translated into canvas space.
func (m *Molecule) Bounds() geom.Bounds { return m.localBounds.Translate(m.position) }

func (m *Molecule) computeBounds() {
	var bounds geom.Bounds
	first := true
	for _, atom := range m.atoms {
		if first {
			bounds = atom.Bounds()
			first = false
			continue
		}
		bounds = bounds.Union(atom.Bounds())
	}

	m.localBounds = bounds
	m.localBounds.AddPadding(MoleculePadding)
}

// Atom looks up an atom by id.
func (m *Molecule) Atom(id ident.AtomID) (*Atom, error) {
	atom, ok := m.atoms[id]
	if !ok {
		return nil, AtomMissingError{ID: id}
	}
	return atom, nil
}

// Bond looks up a bond by id.
func (m *Molecule) Bond(id ident.BondID) (*Bond, error) {
	bond, ok := m.bonds[id]
	if !ok {
		return nil, BondMissingError{ID: id}
	}
	return bond, nil
}

// AtomPosition returns an atom's canvas-space position.
func (m *Molecule) AtomPosition(id ident.AtomID) (geom.Vec, error) {
	atom, err := m.Atom(id)
	if err != nil {
		return geom.Vec{}, fmt.Errorf("atom position: %w", err)
	}
	return atom.Position().Add(m.position), nil
}

// BondPosition returns a bond's canvas-space center.
func (m *Molecule) BondPosition(id ident.BondID) (geom.Vec, error) {
	bond, err := m.Bond(id)
	if err != nil {
		return geom.Vec{}, fmt.Errorf("bond position: %w", err)
	}
	center, err := bond.Center(m.atoms)
	if err != nil {
		return geom.Vec{}, fmt.Errorf("bond position: %w", err)
	}
	return center.Add(m.position), nil
}

// AtomBounds returns an atom's hit box in canvas space.
func (m *Molecule) AtomBounds(id ident.AtomID) (geom.Bounds, error) {
	atom, err := m.Atom(id)
	if err != nil {
		return geom.Bounds{}, fmt.Errorf("atom bounds: %w", err)
	}
	return atom.Bounds().Translate(m.position), nil
}

// BondBounds returns a bond's hit box in canvas space.
func (m *Molecule) BondBounds(id ident.BondID) (geom.Bounds, error) {
	bond, err := m.Bond(id)
	if err != nil {
		return geom.Bounds{}, fmt.Errorf("bond bounds: %w", err)
	}
	bounds, err := bond.Bounds(m.atoms)
	if err != nil {
		return geom.Bounds{}, err
	}
	return bounds.Translate(m.position), nil
}

// AddAtom inserts a new atom at a canvas-space position.
func (m *Molecule) AddAtom(id ident.AtomID, label string, canvasPosition geom.Vec) error {
	if _, exists := m.atoms[id]; exists {
		return fmt.Errorf("add atom: %w", AtomCollisionError{ID: id})
	}

	m.atoms[id] = NewAtom(label, canvasPosition.Sub(m.position))
	m.computeBounds()
	return nil
}

// AddBond connects two atoms with a freshly-allocated bond id and returns
// it. The endpoint labels get their directions recomputed.
func (m *Molecule) AddBond(start, end ident.AtomID, bondType BondType) (ident.BondID, error) {
	id := ident.NewBondID()
	if _, exists := m.bonds[id]; exists {
		return "", fmt.Errorf("add bond: %w", BondCollisionError{ID: id})
	}
	m.bonds[id] = NewBond(start, end, bondType)

	if err := m.updateLabelDirection(start); err != nil {
		return "", fmt.Errorf("add bond: %w", err)
	}
	if err := m.updateLabelDirection(end); err != nil {
		return "", fmt.Errorf("add bond: %w", err)
	}
	m.computeBounds()
	return id, nil
}

// RenameAtom replaces an atom's label text and refreshes the bounds.
func (m *Molecule) RenameAtom(id ident.AtomID, text string) error {
	atom, err := m.Atom(id)
	if err != nil {
		return fmt.Errorf("rename atom: %w", err)
	}
	atom.Rename(text)
	m.computeBounds()
	return nil
}

// ChangeBondType retypes a bond; an absent id is ignored.
func (m *Molecule) ChangeBondType(id ident.BondID, bondType BondType) {
	bond, ok := m.bonds[id]
	if !ok {
		return
	}
	bond.changeType(bondType)
}

// FlipBond reverses a bond's direction; an absent id is ignored.
func (m *Molecule) FlipBond(id ident.BondID) {
	bond, ok := m.bonds[id]
	if !ok {
		return
	}
	bond.flip()
}

// Translate moves the whole molecule by shifting its position offset; the
// atoms are untouched in local space.
func (m *Molecule) Translate(v geom.Vec) {
	m.position = m.position.Add(v)
}

// MoveAtom translates a single atom, refreshing the label directions of the
// atom and its direct neighbours.
func (m *Molecule) MoveAtom(id ident.AtomID, translation geom.Vec) error {
	atom, err := m.Atom(id)
	if err != nil {
		return fmt.Errorf("move atom: %w", err)
	}
	atom.translate(translation)

	if err := m.updateLabelDirection(id); err != nil {
		return fmt.Errorf("move atom: %w", err)
	}
	for _, neighbor := range m.neighbors(id) {
		if err := m.updateLabelDirection(neighbor); err != nil {
			return fmt.Errorf("move atom: %w", err)
		}
	}

	m.computeBounds()
	return nil
}

// MoveBond translates both endpoint atoms, refreshing label directions for
// the endpoints and everything bonded to them.
func (m *Molecule) MoveBond(id ident.BondID, translation geom.Vec) error {
	bond, err := m.Bond(id)
	if err != nil {
		return fmt.Errorf("move bond: %w", err)
	}

	affected := map[ident.AtomID]struct{}{}
	for _, atomID := range bond.AtomIDs() {
		atom, err := m.Atom(atomID)
		if err != nil {
			return fmt.Errorf("move bond: %w", err)
		}
		atom.translate(translation)

		affected[atomID] = struct{}{}
		for _, neighbor := range m.neighbors(atomID) {
			affected[neighbor] = struct{}{}
		}
	}

	for atomID := range affected {
		if err := m.updateLabelDirection(atomID); err != nil {
			return fmt.Errorf("move bond: %w", err)
		}
	}

	m.computeBounds()
	return nil
}

// Extend merges another molecule into this one: its atoms and bonds are
// drained across, translated by the position delta, and the bounds unioned.
// The other molecule must be discarded afterwards.
func (m *Molecule) Extend(other *Molecule) {
	offset := other.position.Sub(m.position)
	for id, atom := range other.atoms {
		atom.translate(offset)
		m.atoms[id] = atom
		delete(other.atoms, id)
	}
	for id, bond := range other.bonds {
		m.bonds[id] = bond
		delete(other.bonds, id)
	}

	m.localBounds = m.localBounds.Union(other.localBounds.Translate(offset))
}

// DeleteAtom removes an atom and every bond attached to it, then splits off
// any fragments that became disconnected, returning them as new molecules.
func (m *Molecule) DeleteAtom(id ident.AtomID) ([]*Molecule, error) {
	if _, ok := m.atoms[id]; !ok {
		return nil, fmt.Errorf("delete atom: %w", AtomMissingError{ID: id})
	}
	delete(m.atoms, id)

	var attached []ident.BondID
	neighborSeen := map[ident.AtomID]struct{}{}
	var neighbors []ident.AtomID
	for bondID, bond := range m.bonds {
		if bond.start != id && bond.end != id {
			continue
		}
		attached = append(attached, bondID)
		for _, atomID := range bond.AtomIDs() {
			if atomID == id {
				continue
			}
			if _, ok := neighborSeen[atomID]; !ok {
				neighborSeen[atomID] = struct{}{}
				neighbors = append(neighbors, atomID)
			}
		}
	}

	for _, bondID := range attached {
		delete(m.bonds, bondID)
	}

	for _, atomID := range neighbors {
		if err := m.updateLabelDirection(atomID); err != nil {
			return nil, fmt.Errorf("delete atom: %w", err)
		}
	}

	detached, err := m.splitFragments(neighbors)
	if err != nil {
		return nil, fmt.Errorf("delete atom: %w", err)
	}
	return detached, nil
}

// DeleteBond removes a bond and splits off any fragment that became
// disconnected, returning the detached molecules.
func (m *Molecule) DeleteBond(id ident.BondID) ([]*Molecule, error) {
	bond, ok := m.bonds[id]
	if !ok {
		return nil, fmt.Errorf("delete bond: %w", BondMissingError{ID: id})
	}
	delete(m.bonds, id)

	endpoints := bond.AtomIDs()
	for _, atomID := range endpoints {
		if err := m.updateLabelDirection(atomID); err != nil {
			return nil, fmt.Errorf("delete bond: %w", err)
		}
	}

	detached, err := m.splitFragments(endpoints[:])
	if err != nil {
		return nil, fmt.Errorf("delete bond: %w", err)
	}
	return detached, nil
}

// splitFragments partitions the remaining atoms into connected components
// seeded from the atoms touched by a removal. The first unique component
// stays in this molecule; every other one is moved out into a fresh
// molecule sharing this molecule's position.
func (m *Molecule) splitFragments(seeds []ident.AtomID) ([]*Molecule, error) {
	var uniqueSets [][]ident.AtomID
	seen := map[ident.AtomID]struct{}{}

outer:
	for _, seed := range seeds {
		var atoms []ident.AtomID
		for _, atomID := range m.connectedComponent(seed) {
			atoms = append(atoms, atomID)
			if _, dup := seen[atomID]; dup {
				// same fragment as an earlier seed
				continue outer
			}
			seen[atomID] = struct{}{}
		}
		if len(atoms) > 0 {
			uniqueSets = append(uniqueSets, atoms)
		}
	}

	if len(uniqueSets) < 2 {
		m.computeBounds()
		return nil, nil
	}

	var detached []*Molecule
	// the first unique atom set is the molecule itself
	for _, atomSet := range uniqueSets[1:] {
		atoms := map[ident.AtomID]*Atom{}
		for _, atomID := range atomSet {
			atom, ok := m.atoms[atomID]
			if !ok {
				return nil, fmt.Errorf("split fragments: %w", AtomMissingError{ID: atomID})
			}
			delete(m.atoms, atomID)
			atoms[atomID] = atom
		}

		bonds := map[ident.BondID]*Bond{}
		for bondID, bond := range m.bonds {
			_, onStart := atoms[bond.start]
			_, onEnd := atoms[bond.end]
			if onStart || onEnd {
				bonds[bondID] = bond
				delete(m.bonds, bondID)
			}
		}

		fragment := &Molecule{
			atoms:    atoms,
			bonds:    bonds,
			position: m.position,
		}
		fragment.computeBounds()
		detached = append(detached, fragment)
	}

	m.computeBounds()
	return detached, nil
}

// connectedComponent walks the bond adjacency breadth-first from a starting
// atom and returns every reachable atom id, the start included.
func (m *Molecule) connectedComponent(start ident.AtomID) []ident.AtomID {
	visited := map[ident.AtomID]struct{}{start: {}}
	component := []ident.AtomID{start}
	queue := []ident.AtomID{start}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, next := range m.neighbors(current) {
			if _, ok := visited[next]; ok {
				continue
			}
			visited[next] = struct{}{}
			component = append(component, next)
			queue = append(queue, next)
		}
	}

	return component
}

// neighbors returns the atoms directly bonded to the given atom.
func (m *Molecule) neighbors(id ident.AtomID) []ident.AtomID {
	var neighbors []ident.AtomID
	for _, bond := range m.bonds {
		switch id {
		case bond.start:
			neighbors = append(neighbors, bond.end)
		case bond.end:
			neighbors = append(neighbors, bond.start)
		}
	}
	return neighbors
}

// updateLabelDirection picks the label side for an atom: the first of
// Right, Left, Up, Down whose half-axis is not blocked by a bond direction
// component above the 0.1 threshold, falling back to Right.
func (m *Molecule) updateLabelDirection(id ident.AtomID) error {
	atom, err := m.Atom(id)
	if err != nil {
		return fmt.Errorf("update label direction: %w", err)
	}

	blocked := map[Direction]struct{}{}
	for _, neighborID := range m.neighbors(id) {
		neighbor, err := m.Atom(neighborID)
		if err != nil {
			return fmt.Errorf("update label direction: %w", err)
		}

		direction := neighbor.Position().Sub(atom.Position())
		magnitude := direction.Length()
		if magnitude == 0 {
			continue
		}
		unit := direction.Mul(1 / magnitude)

		if unit.X > 0.1 {
			blocked[DirectionRight] = struct{}{}
		} else if unit.X < -0.1 {
			blocked[DirectionLeft] = struct{}{}
		}
		// canvas y grows downwards
		if unit.Y > 0.1 {
			blocked[DirectionDown] = struct{}{}
		} else if unit.Y < -0.1 {
			blocked[DirectionUp] = struct{}{}
		}
	}

	direction := DirectionRight
	for _, candidate := range []Direction{DirectionRight, DirectionLeft, DirectionUp, DirectionDown} {
		if _, ok := blocked[candidate]; !ok {
			direction = candidate
			break
		}
	}

	atom.label.updateDirection(direction)
	return nil
}

// AtomHit is an atom whose hit box contains a probed point.
type AtomHit struct {
	ID     ident.AtomID
	Atom   *Atom
	Bounds geom.Bounds
}

// AtomsAt returns every atom whose canvas-space hit box contains the point.
func (m *Molecule) AtomsAt(canvasPosition geom.Vec) []AtomHit {
	var hits []AtomHit
	for id, atom := range m.atoms {
		bounds := atom.Bounds().Translate(m.position)
		if bounds.Contains(canvasPosition) {
			hits = append(hits, AtomHit{ID: id, Atom: atom, Bounds: bounds})
		}
	}
	return hits
}

// BondHit is a bond whose hit box contains a probed point.
type BondHit struct {
	ID     ident.BondID
	Bond   *Bond
	Bounds geom.Bounds
}

// BondsAt returns every bond whose canvas-space hit box contains the point.
// A bond collapsed to zero length has no hit box and is skipped rather than
// failing the probe.
func (m *Molecule) BondsAt(canvasPosition geom.Vec) ([]BondHit, error) {
	var hits []BondHit
	for id, bond := range m.bonds {
		bounds, err := bond.Bounds(m.atoms)
		if errors.Is(err, ErrInvalidGeometry) {
			continue
		}
		if err != nil {
			return nil, err
		}
		bounds = bounds.Translate(m.position)
		if bounds.Contains(canvasPosition) {
			hits = append(hits, BondHit{ID: id, Bond: bond, Bounds: bounds})
		}
	}
	return hits, nil
}

// NearestAtom returns the atom closest to a canvas position; used by tests
// and scripted sessions to address atoms without holding ids.
func (m *Molecule) NearestAtom(canvasPosition geom.Vec) (ident.AtomID, bool) {
	best := math.MaxFloat64
	var bestID ident.AtomID
	found := false
	for id, atom := range m.atoms {
		d := atom.Position().Add(m.position).Distance(canvasPosition)
		if d < best {
			best = d
			bestID = id
			found = true
		}
	}
	return bestID, found
}
