package editor

import (
	"github.com/molsketch/molsketch/internal/geom"
	"github.com/molsketch/molsketch/internal/ident"
	"github.com/molsketch/molsketch/internal/molecule"
)

// Action is what the editor is in the middle of doing across pointer
// events. Exactly one variant is active at a time.
type Action interface {
	isAction()
}

// ActionNone is the idle action.
type ActionNone struct{}

// ActionPanning drags the viewport. Translation is the viewport translation
// at the start of the pan and Start the presentation-space press position.
type ActionPanning struct {
	Translation geom.Vec
	Start       geom.Vec
}

// ActionMovingSelection drags the selected items. Last is the canvas-space
// position of the previous drag event.
type ActionMovingSelection struct {
	Last geom.Vec
}

// ActionDrawingSelection sweeps a rubber-band rectangle from Start.
type ActionDrawingSelection struct {
	Start geom.Vec
}

// ActionErasing deletes whatever the cursor passes over.
type ActionErasing struct{}

// ActionDrawingBond rubber-bands a new bond from an atom.
type ActionDrawingBond struct {
	Molecule ident.MoleculeID
	Atom     ident.AtomID
	Start    geom.Vec
	BondType molecule.BondType
}

func (ActionNone) isAction()             {}
func (ActionPanning) isAction()          {}
func (ActionMovingSelection) isAction()  {}
func (ActionDrawingSelection) isAction() {}
func (ActionErasing) isAction()          {}
func (ActionDrawingBond) isAction()      {}

// Message is a single edit derived from an input gesture. Messages are the
// only way the editor mutates its state, which keeps scripted replays and
// interactive use on the same code path.
type Message interface {
	isMessage()
}

// ActionChangedMsg switches the in-progress action.
type ActionChangedMsg struct {
	Action Action
}

// SelectMsg replaces the selection.
type SelectMsg struct {
	Selection Selection
}

// TranslatedMsg sets the viewport translation.
type TranslatedMsg struct {
	Translation geom.Vec
}

// MoveSelectionMsg drags the selection to a canvas position.
type MoveSelectionMsg struct {
	Position geom.Vec
}

// AddMoleculeMsg creates a new single-atom molecule.
type AddMoleculeMsg struct {
	Molecule ident.MoleculeID
	Atom     ident.AtomID
	Label    string
	Position geom.Vec
}

// NewBondMsg bonds two existing atoms of one molecule.
type NewBondMsg struct {
	Molecule ident.MoleculeID
	Start    ident.AtomID
	End      ident.AtomID
	BondType molecule.BondType
}

// FinishBondMsg ends a bond draw on empty canvas: a fresh unlabeled atom is
// added at Position and bonded to Start.
type FinishBondMsg struct {
	Molecule ident.MoleculeID
	Start    ident.AtomID
	Atom     ident.AtomID
	Position geom.Vec
	BondType molecule.BondType
}

// ConnectMoleculesMsg merges the second molecule into the first and bonds
// one atom of each.
type ConnectMoleculesMsg struct {
	Molecule      ident.MoleculeID
	Atom          ident.AtomID
	OtherMolecule ident.MoleculeID
	OtherAtom     ident.AtomID
	BondType      molecule.BondType
}

// ChangeBondTypeMsg retypes an existing bond.
type ChangeBondTypeMsg struct {
	Molecule ident.MoleculeID
	Bond     ident.BondID
	BondType molecule.BondType
}

// FlipBondMsg reverses an existing bond.
type FlipBondMsg struct {
	Molecule ident.MoleculeID
	Bond     ident.BondID
}

// DeleteAtomMsg removes an atom and its bonds.
type DeleteAtomMsg struct {
	Molecule ident.MoleculeID
	Atom     ident.AtomID
}

// DeleteBondMsg removes a bond.
type DeleteBondMsg struct {
	Molecule ident.MoleculeID
	Bond     ident.BondID
}

// DeleteMoleculeMsg removes a whole molecule.
type DeleteMoleculeMsg struct {
	Molecule ident.MoleculeID
}

// RelabelAtomMsg replaces an atom's label text.
type RelabelAtomMsg struct {
	Molecule ident.MoleculeID
	Atom     ident.AtomID
	Label    string
}

func (ActionChangedMsg) isMessage()    {}
func (SelectMsg) isMessage()           {}
func (TranslatedMsg) isMessage()       {}
func (MoveSelectionMsg) isMessage()    {}
func (AddMoleculeMsg) isMessage()      {}
func (NewBondMsg) isMessage()          {}
func (FinishBondMsg) isMessage()       {}
func (ConnectMoleculesMsg) isMessage() {}
func (ChangeBondTypeMsg) isMessage()   {}
func (FlipBondMsg) isMessage()         {}
func (DeleteAtomMsg) isMessage()       {}
func (DeleteBondMsg) isMessage()       {}
func (DeleteMoleculeMsg) isMessage()   {}
func (RelabelAtomMsg) isMessage()      {}
