package molecule

import (
	"errors"
	"fmt"

	"github.com/molsketch/molsketch/internal/ident"
)

// ErrInvalidGeometry reports a degenerate geometric configuration, such as
// a zero-length bond direction or a non-invertible transform.
var ErrInvalidGeometry = errors.New("invalid geometry")

// AtomMissingError reports a reference to an atom id the molecule does not
// contain. It indicates a caller/state desync, not a recoverable condition.
type AtomMissingError struct{ ID ident.AtomID }

func (e AtomMissingError) Error() string { return fmt.Sprintf("atom %s not found", e.ID) }

// BondMissingError reports a reference to an absent bond id.
type BondMissingError struct{ ID ident.BondID }

func (e BondMissingError) Error() string { return fmt.Sprintf("bond %s not found", e.ID) }

// MoleculeMissingError reports a reference to an absent molecule id.
type MoleculeMissingError struct{ ID ident.MoleculeID }

func (e MoleculeMissingError) Error() string { return fmt.Sprintf("molecule %s not found", e.ID) }

// AtomCollisionError reports an atom id already in use. With 128-bit random
// ids this should be unreachable.
type AtomCollisionError struct{ ID ident.AtomID }

func (e AtomCollisionError) Error() string { return fmt.Sprintf("atom id collision: %s", e.ID) }

// BondCollisionError reports a bond id already in use.
type BondCollisionError struct{ ID ident.BondID }

func (e BondCollisionError) Error() string { return fmt.Sprintf("bond id collision: %s", e.ID) }

// MoleculeCollisionError reports a molecule id already in use.
type MoleculeCollisionError struct{ ID ident.MoleculeID }

func (e MoleculeCollisionError) Error() string { return fmt.Sprintf("molecule id collision: %s", e.ID) }
