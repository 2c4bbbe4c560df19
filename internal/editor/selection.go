package editor

import (
	"github.com/molsketch/molsketch/internal/geom"
	"github.com/molsketch/molsketch/internal/ident"
)

// ItemKind discriminates what a selection item refers to.
type ItemKind uint8

const (
	ItemNone ItemKind = iota
	ItemMolecule
	ItemAtom
	ItemBond
)

func (k ItemKind) String() string {
	switch k {
	case ItemMolecule:
		return "molecule"
	case ItemAtom:
		return "atom"
	case ItemBond:
		return "bond"
	default:
		return "none"
	}
}

// Item addresses a selectable element of the document. Atom and bond items
// carry the owning molecule id; its zero value means "nothing".
type Item struct {
	Kind     ItemKind
	Molecule ident.MoleculeID
	Atom     ident.AtomID
	Bond     ident.BondID
}

func MoleculeItem(id ident.MoleculeID) Item {
	return Item{Kind: ItemMolecule, Molecule: id}
}

func AtomItem(mol ident.MoleculeID, atom ident.AtomID) Item {
	return Item{Kind: ItemAtom, Molecule: mol, Atom: atom}
}

func BondItem(mol ident.MoleculeID, bond ident.BondID) Item {
	return Item{Kind: ItemBond, Molecule: mol, Bond: bond}
}

func (i Item) IsNone() bool { return i.Kind == ItemNone }

// Hover is the outcome of a hit test: the item under the cursor plus the
// offset from the probe point to the item's anchor, kept so drags can hold
// the grab point steady.
type Hover struct {
	Item   Item
	Offset geom.Vec
}

// Selection is a set of selected items.
type Selection map[Item]struct{}

func NewSelection(items ...Item) Selection {
	s := make(Selection, len(items))
	for _, item := range items {
		s[item] = struct{}{}
	}
	return s
}

func (s Selection) IsEmpty() bool { return len(s) == 0 }

func (s Selection) Add(item Item) { s[item] = struct{}{} }

// Contains reports whether the hovered item is covered by the selection.
// An atom or bond counts as selected when either it or its whole molecule
// is in the set; hovering nothing never matches.
func (s Selection) Contains(hover Item) bool {
	if hover.IsNone() {
		return false
	}
	if _, ok := s[hover]; ok {
		return true
	}
	if hover.Kind == ItemAtom || hover.Kind == ItemBond {
		_, ok := s[MoleculeItem(hover.Molecule)]
		return ok
	}
	return false
}
