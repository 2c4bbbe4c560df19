package editor

import (
	"fmt"

	"github.com/molsketch/molsketch/internal/ident"
)

// RenameSession identifies an open inline label edit and the text it
// started with. Initial seeds the host's text field and is restored on
// cancel.
type RenameSession struct {
	Molecule ident.MoleculeID
	Atom     ident.AtomID
	Initial  string
}

// Renaming reports whether a label edit is open, and on what.
func (e *Editor) Renaming() (RenameSession, bool) {
	if e.rename == nil {
		return RenameSession{}, false
	}
	return *e.rename, true
}

// BeginRename opens a label edit on an atom, committing any edit already
// open, and returns the current label text to seed the host's text field.
func (e *Editor) BeginRename(molID ident.MoleculeID, atomID ident.AtomID) (string, error) {
	if err := e.CommitRename(); err != nil {
		return "", fmt.Errorf("begin rename: %w", err)
	}

	mol, err := e.state.Molecule(molID)
	if err != nil {
		return "", fmt.Errorf("begin rename: %w", err)
	}
	atom, err := mol.Atom(atomID)
	if err != nil {
		return "", fmt.Errorf("begin rename: %w", err)
	}

	initial := atom.Label().Input()
	e.rename = &RenameSession{
		Molecule: molID,
		Atom:     atomID,
		Initial:  initial,
	}
	e.invalidate()
	return initial, nil
}

// UpdateRename applies the edited text live, so the label reflows while
// the user types.
func (e *Editor) UpdateRename(text string) error {
	if e.rename == nil {
		return nil
	}
	return e.apply(RelabelAtomMsg{
		Molecule: e.rename.Molecule,
		Atom:     e.rename.Atom,
		Label:    text,
	})
}

// CommitRename closes the open label edit, keeping the current text.
func (e *Editor) CommitRename() error {
	if e.rename == nil {
		return nil
	}
	e.rename = nil
	e.invalidate()
	return nil
}

// CancelRename closes the open label edit and restores the label the edit
// started with.
func (e *Editor) CancelRename() {
	if e.rename == nil {
		return
	}
	session := e.rename
	e.rename = nil

	// the atom may have been deleted while the edit was open
	if mol, err := e.state.Molecule(session.Molecule); err == nil {
		_ = mol.RenameAtom(session.Atom, session.Initial)
	}
	e.invalidate()
}
