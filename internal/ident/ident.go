// Package ident provides the opaque identifiers used for atoms, bonds and
// molecules. Ids are drawn from a 128-bit space so collisions are negligible
// and no central registry is needed; equality is their only semantics.
package ident

import (
	"fmt"

	"go.jetify.com/typeid/v2"
)

const (
	PrefixAtom     = "atom"
	PrefixBond     = "bond"
	PrefixMolecule = "mol"
)

// AtomID identifies an atom within its owning molecule.
type AtomID string

// BondID identifies a bond within its owning molecule.
type BondID string

// MoleculeID identifies a molecule within the document.
type MoleculeID string

func NewAtomID() AtomID         { return AtomID(typeid.MustGenerate(PrefixAtom).String()) }
func NewBondID() BondID         { return BondID(typeid.MustGenerate(PrefixBond).String()) }
func NewMoleculeID() MoleculeID { return MoleculeID(typeid.MustGenerate(PrefixMolecule).String()) }

// Validate checks that an id parses and carries the expected prefix. Useful
// for ids crossing the wasm boundary.
func Validate(id, expectedPrefix string) error {
	parsed, err := typeid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid id %q: %w", id, err)
	}
	if parsed.Prefix() != expectedPrefix {
		return fmt.Errorf("expected prefix %q but got %q in id %q", expectedPrefix, parsed.Prefix(), id)
	}
	return nil
}
