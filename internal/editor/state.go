package editor

import (
	"fmt"

	"github.com/molsketch/molsketch/internal/geom"
	"github.com/molsketch/molsketch/internal/ident"
	"github.com/molsketch/molsketch/internal/molecule"
)

// State is the authoritative document state: every molecule on the canvas
// plus the current selection.
type State struct {
	molecules map[ident.MoleculeID]*molecule.Molecule
	selection Selection
}

// NewState creates an empty document.
func NewState() *State {
	return &State{
		molecules: map[ident.MoleculeID]*molecule.Molecule{},
		selection: NewSelection(),
	}
}

// Molecules returns the molecule map. Callers must not mutate it.
func (s *State) Molecules() map[ident.MoleculeID]*molecule.Molecule { return s.molecules }

// Selection returns the current selection set. Callers must not mutate it.
func (s *State) Selection() Selection { return s.selection }

// SetSelection replaces the selection.
func (s *State) SetSelection(selection Selection) {
	if selection == nil {
		selection = NewSelection()
	}
	s.selection = selection
}

// Molecule looks up a molecule by id.
func (s *State) Molecule(id ident.MoleculeID) (*molecule.Molecule, error) {
	m, ok := s.molecules[id]
	if !ok {
		return nil, molecule.MoleculeMissingError{ID: id}
	}
	return m, nil
}

// AddMoleculeWithAtom creates a fresh single-atom molecule at a canvas
// position.
func (s *State) AddMoleculeWithAtom(molID ident.MoleculeID, atomID ident.AtomID, label string, position geom.Vec) error {
	if _, exists := s.molecules[molID]; exists {
		return fmt.Errorf("add molecule: %w", molecule.MoleculeCollisionError{ID: molID})
	}
	s.molecules[molID] = molecule.New(position, atomID, label)
	return nil
}

// RemoveMolecule deletes a molecule outright and clears the selection.
func (s *State) RemoveMolecule(id ident.MoleculeID) error {
	if _, ok := s.molecules[id]; !ok {
		return fmt.Errorf("remove molecule: %w", molecule.MoleculeMissingError{ID: id})
	}
	delete(s.molecules, id)
	s.selection = NewSelection()
	return nil
}

// DeleteAtom removes an atom from its molecule. Fragments disconnected by
// the removal are adopted as new molecules under fresh ids, and a molecule
// left with no atoms is dropped. The selection is cleared since items in it
// may no longer exist.
func (s *State) DeleteAtom(molID ident.MoleculeID, atomID ident.AtomID) error {
	m, err := s.Molecule(molID)
	if err != nil {
		return fmt.Errorf("delete atom: %w", err)
	}

	detached, err := m.DeleteAtom(atomID)
	if err != nil {
		return fmt.Errorf("delete atom: %w", err)
	}

	s.selection = NewSelection()
	if m.IsEmpty() {
		delete(s.molecules, molID)
	}
	for _, fragment := range detached {
		s.molecules[ident.NewMoleculeID()] = fragment
	}
	return nil
}

// DeleteBond removes a bond from its molecule, adopting any fragment that
// split off. The selection is cleared.
func (s *State) DeleteBond(molID ident.MoleculeID, bondID ident.BondID) error {
	m, err := s.Molecule(molID)
	if err != nil {
		return fmt.Errorf("delete bond: %w", err)
	}

	detached, err := m.DeleteBond(bondID)
	if err != nil {
		return fmt.Errorf("delete bond: %w", err)
	}

	s.selection = NewSelection()
	for _, fragment := range detached {
		s.molecules[ident.NewMoleculeID()] = fragment
	}
	return nil
}

// MoveSelection translates every selected item by the given canvas-space
// delta. Whole molecules move by their position offset; atoms and bonds
// move within their molecule.
func (s *State) MoveSelection(delta geom.Vec) error {
	for item := range s.selection {
		m, err := s.Molecule(item.Molecule)
		if err != nil {
			return fmt.Errorf("move selection: %w", err)
		}

		switch item.Kind {
		case ItemMolecule:
			m.Translate(delta)
		case ItemAtom:
			if err := m.MoveAtom(item.Atom, delta); err != nil {
				return fmt.Errorf("move selection: %w", err)
			}
		case ItemBond:
			if err := m.MoveBond(item.Bond, delta); err != nil {
				return fmt.Errorf("move selection: %w", err)
			}
		}
	}
	return nil
}

// HoveredAt finds the item under a canvas-space point. Candidates are rated
// by the distance from the point to their hit-box center; atoms and bonds
// always beat the molecule that contains them, and the closest candidate
// wins.
func (s *State) HoveredAt(p geom.Vec) (Hover, error) {
	hover := Hover{}
	best := 0.0
	found := false

	for molID, m := range s.molecules {
		bounds := m.Bounds()
		if !bounds.Contains(p) {
			continue
		}
		molRating := p.Distance(bounds.Center())

		for _, hit := range m.AtomsAt(p) {
			rating := p.Distance(hit.Bounds.Center())
			if !found || rating < best {
				pos, err := m.AtomPosition(hit.ID)
				if err != nil {
					return Hover{}, fmt.Errorf("hovered at: %w", err)
				}
				hover = Hover{Item: AtomItem(molID, hit.ID), Offset: pos.Sub(p)}
				best = rating
				found = true
			}
		}

		bondHits, err := m.BondsAt(p)
		if err != nil {
			return Hover{}, fmt.Errorf("hovered at: %w", err)
		}
		for _, hit := range bondHits {
			rating := p.Distance(hit.Bounds.Center())
			if !found || rating < best {
				pos, err := m.BondPosition(hit.ID)
				if err != nil {
					return Hover{}, fmt.Errorf("hovered at: %w", err)
				}
				hover = Hover{Item: BondItem(molID, hit.ID), Offset: pos.Sub(p)}
				best = rating
				found = true
			}
		}

		// the molecule itself only competes against other molecules
		if (!found || molRating < best) && (hover.Item.IsNone() || hover.Item.Kind == ItemMolecule) {
			hover = Hover{Item: MoleculeItem(molID), Offset: m.Position().Sub(p)}
			best = molRating
			found = true
		}
	}

	return hover, nil
}

// SelectionIn collects the items inside a canvas-space rectangle. A fully
// enclosed molecule is selected whole; a molecule that merely intersects
// the rectangle contributes its enclosed atoms individually. Bonds are
// never rubber-band selected.
func (s *State) SelectionIn(rect geom.Rect) Selection {
	selection := NewSelection()

	for molID, m := range s.molecules {
		bounds := m.Bounds()
		if bounds.IsContained(rect) {
			selection.Add(MoleculeItem(molID))
			continue
		}
		if !bounds.Intersects(rect) {
			continue
		}
		for atomID, atom := range m.Atoms() {
			atomBounds := atom.Bounds().Translate(m.Position())
			if atomBounds.IsContained(rect) {
				selection.Add(AtomItem(molID, atomID))
			}
		}
	}

	return selection
}
