package rotamer

import (
	"encoding/binary"
	"fmt"
	"math"

	"golang.org/x/exp/slices"
	"lukechampine.com/blake3"
)

// Library owns every candidate rotamer of a packing run: one ordered
// candidate list per backbone position. Pinned positions hold exactly one
// rotamer (the native type in its first-preference conformation);
// designable positions hold one rotamer per (allowed type, χ candidate)
// pair. The ordering is arbitrary but stable, and the library is immutable
// and safe for concurrent reads once built.
type Library struct {
	backbone   *Backbone
	positions  []Position
	candidates [][]Rotamer
}

// NewLibrary builds the conformation library for a backbone. design names
// the designable positions; every other backbone position is pinned to its
// native type. models resolves residue types to rotamer models and is
// consulted once per position at build time.
//
// The build is deterministic: identical backbone, design and models produce
// an identical library, and rotamer (position, index) pairs are stable for
// the library's lifetime.
func NewLibrary(backbone *Backbone, design []Position, models ModelSet) (*Library, error) {
	if backbone == nil {
		return nil, fmt.Errorf("nil backbone")
	}

	positions := make([]Position, backbone.Len())
	for i := range positions {
		positions[i] = Position{Index: i, Fixed: true, Native: backbone.Type(i)}
	}
	for _, p := range design {
		if p.Index < 0 || p.Index >= backbone.Len() {
			return nil, fmt.Errorf("design position %d outside backbone [0,%d)", p.Index, backbone.Len())
		}
		spot := Position{
			Index:   p.Index,
			Fixed:   p.Fixed,
			Native:  backbone.Type(p.Index),
			Allowed: slices.Clone(p.Allowed),
		}
		if !spot.Fixed && len(spot.Allowed) == 0 {
			// Repack-only position: native type, full rotamer sweep.
			spot.Allowed = []string{spot.Native}
		}
		positions[p.Index] = spot
	}

	lib := &Library{
		backbone:   backbone,
		positions:  positions,
		candidates: make([][]Rotamer, backbone.Len()),
	}
	for i, pos := range positions {
		if pos.Fixed {
			lib.candidates[i] = buildPinned(backbone, i, pos.Native, models)
			continue
		}
		ctx, err := backbone.Context(i)
		if err != nil {
			return nil, fmt.Errorf("building position %d: %w", i, err)
		}
		cands, err := buildCandidates(backbone, i, pos.Allowed, ctx, models)
		if err != nil {
			return nil, fmt.Errorf("building position %d: %w", i, err)
		}
		if len(cands) == 0 {
			return nil, fmt.Errorf("position %d: %w", i, ErrEmptyLibrary)
		}
		lib.candidates[i] = cands
	}
	return lib, nil
}

// buildCandidates enumerates rotamers for one designable position in
// allowed-type order, then model order.
func buildCandidates(bb *Backbone, pos int, allowed []string, ctx Context, models ModelSet) ([]Rotamer, error) {
	var out []Rotamer
	for _, typ := range allowed {
		model, ok := models[typ]
		if !ok {
			return nil, fmt.Errorf("type %q: %w: no rotamer model", typ, ErrInvalidResidueType)
		}
		chiSets := model.Chi(ctx)
		if chiSets == nil {
			return nil, fmt.Errorf("type %q: %w", typ, ErrInvalidResidueType)
		}
		for _, chi := range chiSets {
			out = append(out, Rotamer{
				Pos:   pos,
				Index: len(out),
				Type:  typ,
				Chi:   chi,
				Atoms: buildAtoms(bb, pos, typ, chi),
			})
		}
	}
	return out, nil
}

// buildPinned makes the single native rotamer of a pinned position. Types
// without a model (ligands, nonstandard residues) still get a bare rotamer
// so the position participates in pairwise scoring through its label.
func buildPinned(bb *Backbone, pos int, native string, models ModelSet) []Rotamer {
	r := Rotamer{Pos: pos, Index: 0, Type: native}
	if model, ok := models[native]; ok {
		ctx := bb.contextOrDefault(pos)
		if chiSets := model.Chi(ctx); len(chiSets) > 0 {
			r.Chi = chiSets[0]
			r.Atoms = buildAtoms(bb, pos, native, r.Chi)
		}
	}
	return []Rotamer{r}
}

// Backbone returns the read-only backbone the library was built from.
func (l *Library) Backbone() *Backbone { return l.backbone }

// Len returns the number of backbone positions covered by the library.
func (l *Library) Len() int { return len(l.positions) }

// Position returns the position descriptor at backbone index i.
func (l *Library) Position(i int) Position { return l.positions[i] }

// Candidates returns the number of candidate rotamers at position i.
func (l *Library) Candidates(i int) int { return len(l.candidates[i]) }

// Rotamer returns the rotamer at (position, local index). The returned
// value is owned by the library and must not be modified.
func (l *Library) Rotamer(pos, index int) *Rotamer {
	return &l.candidates[pos][index]
}

// Designable returns the backbone indices open for substitution, in
// ascending order.
func (l *Library) Designable() []int {
	var out []int
	for i, p := range l.positions {
		if !p.Fixed {
			out = append(out, i)
		}
	}
	return out
}

// Fingerprint returns a BLAKE3 digest of the library's full contents:
// position descriptors, types, torsions and derived geometry. Two libraries
// with equal fingerprints are interchangeable, so a precomputed energy
// cache can be checked against the library it was built for.
func (l *Library) Fingerprint() [32]byte {
	h := blake3.New(32, nil)
	var buf [8]byte
	writeFloat := func(f float64) {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(f))
		h.Write(buf[:])
	}
	for i, pos := range l.positions {
		fmt.Fprintf(h, "%d/%s/%v|", pos.Index, pos.Native, pos.Fixed)
		for _, r := range l.candidates[i] {
			h.Write([]byte(r.Type))
			for _, chi := range r.Chi {
				writeFloat(chi)
			}
			for _, a := range r.Atoms {
				h.Write([]byte(a.Name))
				writeFloat(a.Coord.X)
				writeFloat(a.Coord.Y)
				writeFloat(a.Coord.Z)
			}
		}
	}
	var sum [32]byte
	copy(sum[:], h.Sum(nil))
	return sum
}
