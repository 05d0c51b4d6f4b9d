/*
Package rotamer builds conformation libraries for side-chain packing: for
each position of a fixed backbone that is open for (re)design, it enumerates
candidate side-chain conformations (rotamers) for every allowed residue
type, realizing each χ-angle vector as cartesian coordinates against the
local backbone frame.

Rotamers are immutable once built and are referred to by (position, local
index) pairs for the rest of a packing run.
*/
package rotamer

import (
	"errors"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/TimothyStiles/repack/geom"
	"github.com/TimothyStiles/repack/residue"
)

var (
	// ErrInvalidResidueType marks an allowed residue type with no known
	// rotamer model or side-chain template.
	ErrInvalidResidueType = errors.New("invalid residue type")

	// ErrDegenerateBackbone marks a position whose φ/ψ torsion context
	// cannot be computed, typically a chain terminus.
	ErrDegenerateBackbone = errors.New("degenerate backbone context")

	// ErrEmptyLibrary marks a designable position with zero candidate
	// rotamers.
	ErrEmptyLibrary = errors.New("empty rotamer library")
)

// Position describes one backbone position subject to packing. Positions
// not named in a design are pinned to their native residue type with a
// single rotamer.
type Position struct {
	// Index into the backbone sequence.
	Index int
	// Fixed positions keep their native rotamer; the optimizer never
	// substitutes them.
	Fixed bool
	// Native three letter residue type from the backbone.
	Native string
	// Allowed residue types for designable positions. Ignored when Fixed.
	Allowed []string
}

// Atom is a named side-chain atom with its cartesian coordinate.
type Atom struct {
	Name  string
	Coord r3.Vec
}

// Rotamer is one candidate side-chain conformation at one position. It is
// created by the library build and never mutated afterwards.
type Rotamer struct {
	// Pos is the backbone position index this rotamer belongs to.
	Pos int
	// Index is the rotamer's local index within its position's candidate
	// list; stable for the lifetime of the library.
	Index int
	// Type is the three letter residue type label.
	Type string
	// Chi holds the side-chain torsion angles, in radians.
	Chi []float64
	// Atoms holds the derived side-chain geometry, computed once at build
	// time from Chi and the backbone frame.
	Atoms []Atom
}

// buildAtoms realizes a χ-angle vector as cartesian coordinates by walking
// the residue type's torsion chain outward from CB. CB itself is placed off
// the N-C-CA frame with a fixed improper torsion; each subsequent atom is
// placed by one χ angle.
func buildAtoms(bb *Backbone, pos int, typ string, chi []float64) []Atom {
	chain, ok := residue.SideChain(typ)
	if !ok || len(chain) == 0 {
		return nil
	}

	const cbImproper = -2.1380 // ≈ -122.5°, standard L-amino acid branch

	atoms := make([]Atom, 0, len(chain))
	cb := geom.PlaceAtom(bb.C(pos), bb.N(pos), bb.CA(pos),
		residue.BondLength(chain[0]), residue.BondAngle, cbImproper)
	atoms = append(atoms, Atom{Name: chain[0], Coord: cb})

	// χ1 is N-CA-CB-CG, χ2 is CA-CB-CG-CD, and so on down the chain.
	prev2, prev1, cur := bb.N(pos), bb.CA(pos), cb
	for k, name := range chain[1:] {
		next := geom.PlaceAtom(prev2, prev1, cur,
			residue.BondLength(name), residue.BondAngle, chi[k])
		atoms = append(atoms, Atom{Name: name, Coord: next})
		prev2, prev1, cur = prev1, cur, next
	}
	return atoms
}
