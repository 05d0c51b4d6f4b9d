package rotamer

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/TimothyStiles/repack/geom"
)

// Backbone is the fixed main-chain geometry of the structure being packed:
// per position, the N, CA and C atom coordinates and the native residue
// type. It is read-only for the lifetime of every library and optimization
// run built on top of it.
type Backbone struct {
	types []string
	n     []r3.Vec
	ca    []r3.Vec
	c     []r3.Vec
}

// NewBackbone creates a backbone from parallel per-position slices of native
// three letter residue types and N/CA/C coordinates. The slices must all
// have the same nonzero length.
func NewBackbone(types []string, n, ca, c []r3.Vec) (*Backbone, error) {
	if len(types) == 0 {
		return nil, fmt.Errorf("backbone must have at least one position")
	}
	if len(n) != len(types) || len(ca) != len(types) || len(c) != len(types) {
		return nil, fmt.Errorf(
			"backbone slices disagree on length: %d types, %d N, %d CA, %d C",
			len(types), len(n), len(ca), len(c))
	}
	return &Backbone{types: types, n: n, ca: ca, c: c}, nil
}

// Len returns the number of positions on the backbone.
func (b *Backbone) Len() int { return len(b.types) }

// Type returns the native residue type at position i.
func (b *Backbone) Type(i int) string { return b.types[i] }

// N returns the backbone nitrogen coordinate at position i.
func (b *Backbone) N(i int) r3.Vec { return b.n[i] }

// CA returns the alpha carbon coordinate at position i.
func (b *Backbone) CA(i int) r3.Vec { return b.ca[i] }

// C returns the carbonyl carbon coordinate at position i.
func (b *Backbone) C(i int) r3.Vec { return b.c[i] }

// Representative returns the representative atom used for inter-position
// distance checks: the alpha carbon.
func (b *Backbone) Representative(i int) r3.Vec { return b.ca[i] }

// Context is the local backbone torsion context of one position: the φ and
// ψ dihedrals, in radians. Rotamer models use it to pick which discretized
// χ-angle bins apply.
type Context struct {
	Phi float64
	Psi float64
}

// Context computes the φ/ψ torsion context of position i. Both angles need
// a flanking residue, so the first and last backbone positions have no
// context and fail with ErrDegenerateBackbone; callers packing termini must
// supply terminus-aware context themselves.
func (b *Backbone) Context(i int) (Context, error) {
	if i <= 0 || i >= b.Len()-1 {
		return Context{}, fmt.Errorf(
			"position %d: %w: φ/ψ need both flanking residues", i, ErrDegenerateBackbone)
	}
	phi := geom.Dihedral(b.c[i-1], b.n[i], b.ca[i], b.c[i])
	psi := geom.Dihedral(b.n[i], b.ca[i], b.c[i], b.n[i+1])
	return Context{Phi: phi, Psi: psi}, nil
}

// contextOrDefault returns the position's context, falling back to an
// extended-strand context at termini. Only used for pinned positions, whose
// single native rotamer must exist even where φ/ψ are undefined.
func (b *Backbone) contextOrDefault(i int) Context {
	ctx, err := b.Context(i)
	if err != nil {
		return Context{Phi: -2.36, Psi: 2.36} // ≈ (-135°, 135°)
	}
	return ctx
}
