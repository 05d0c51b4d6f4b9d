package rotamer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/TimothyStiles/repack/geom"
	"github.com/TimothyStiles/repack/rotamer"
)

// testBackbone builds a synthetic zig-zag backbone of n all-alanine
// positions with roughly 3.8 Å CA spacing.
func testBackbone(t *testing.T, n int) *rotamer.Backbone {
	t.Helper()
	types := make([]string, n)
	ns := make([]r3.Vec, n)
	cas := make([]r3.Vec, n)
	cs := make([]r3.Vec, n)
	for i := 0; i < n; i++ {
		x := 3.8 * float64(i)
		types[i] = "ALA"
		ns[i] = r3.Vec{X: x, Y: 0.3, Z: 0}
		cas[i] = r3.Vec{X: x + 1.2, Y: 1.2, Z: 0.4}
		cs[i] = r3.Vec{X: x + 2.5, Y: 0.4, Z: -0.3}
	}
	bb, err := rotamer.NewBackbone(types, ns, cas, cs)
	assert.NoError(t, err)
	return bb
}

func TestNewBackboneValidation(t *testing.T) {
	_, err := rotamer.NewBackbone(nil, nil, nil, nil)
	assert.Error(t, err)

	_, err = rotamer.NewBackbone([]string{"ALA"}, []r3.Vec{{}}, []r3.Vec{{}}, nil)
	assert.Error(t, err)
}

func TestContextAtTerminus(t *testing.T) {
	bb := testBackbone(t, 4)

	_, err := bb.Context(0)
	assert.ErrorIs(t, err, rotamer.ErrDegenerateBackbone)
	_, err = bb.Context(3)
	assert.ErrorIs(t, err, rotamer.ErrDegenerateBackbone)

	ctx, err := bb.Context(1)
	assert.NoError(t, err)
	assert.NotZero(t, ctx.Phi)
	assert.NotZero(t, ctx.Psi)
}

func TestLibraryCandidateCounts(t *testing.T) {
	bb := testBackbone(t, 5)
	lib, err := rotamer.NewLibrary(bb, []rotamer.Position{
		{Index: 1, Allowed: []string{"SER"}},
		{Index: 2, Allowed: []string{"SER", "VAL"}},
		{Index: 3, Allowed: []string{"ALA"}},
	}, rotamer.DefaultModels())
	assert.NoError(t, err)

	// One χ with three staggered bins per allowed type.
	assert.Equal(t, 3, lib.Candidates(1))
	assert.Equal(t, 6, lib.Candidates(2))
	// Alanine has no χ: a single candidate.
	assert.Equal(t, 1, lib.Candidates(3))
	// Pinned positions always hold exactly the native rotamer.
	assert.Equal(t, 1, lib.Candidates(0))
	assert.Equal(t, 1, lib.Candidates(4))

	assert.Equal(t, []int{1, 2, 3}, lib.Designable())

	// Rotamers know their own (position, index) identity.
	for idx := 0; idx < lib.Candidates(2); idx++ {
		r := lib.Rotamer(2, idx)
		assert.Equal(t, 2, r.Pos)
		assert.Equal(t, idx, r.Index)
	}
}

func TestLibraryUnknownType(t *testing.T) {
	bb := testBackbone(t, 4)
	_, err := rotamer.NewLibrary(bb, []rotamer.Position{
		{Index: 1, Allowed: []string{"XYZ"}},
	}, rotamer.DefaultModels())
	assert.ErrorIs(t, err, rotamer.ErrInvalidResidueType)
}

func TestLibraryTerminusDesignable(t *testing.T) {
	bb := testBackbone(t, 4)
	_, err := rotamer.NewLibrary(bb, []rotamer.Position{
		{Index: 0, Allowed: []string{"SER"}},
	}, rotamer.DefaultModels())
	assert.ErrorIs(t, err, rotamer.ErrDegenerateBackbone)
}

func TestLibraryOutOfRange(t *testing.T) {
	bb := testBackbone(t, 4)
	_, err := rotamer.NewLibrary(bb, []rotamer.Position{
		{Index: 9, Allowed: []string{"SER"}},
	}, rotamer.DefaultModels())
	assert.Error(t, err)
}

// The built cartesian geometry must realize the rotamer's χ angles: reading
// the torsion back off the atoms gives the bin value.
func TestRotamerGeometryRealizesChi(t *testing.T) {
	bb := testBackbone(t, 4)
	lib, err := rotamer.NewLibrary(bb, []rotamer.Position{
		{Index: 1, Allowed: []string{"SER"}},
	}, rotamer.DefaultModels())
	assert.NoError(t, err)

	for idx := 0; idx < lib.Candidates(1); idx++ {
		r := lib.Rotamer(1, idx)
		assert.Len(t, r.Chi, 1)
		assert.Len(t, r.Atoms, 2) // CB, OG

		chi1 := geom.Dihedral(bb.N(1), bb.CA(1), r.Atoms[0].Coord, r.Atoms[1].Coord)
		assert.InDelta(t, r.Chi[0], chi1, 1e-9)
	}
}

func TestLibraryDeterministic(t *testing.T) {
	design := []rotamer.Position{
		{Index: 1, Allowed: []string{"SER", "LEU"}},
		{Index: 2, Allowed: []string{"LYS"}},
	}
	libA, err := rotamer.NewLibrary(testBackbone(t, 5), design, rotamer.DefaultModels())
	assert.NoError(t, err)
	libB, err := rotamer.NewLibrary(testBackbone(t, 5), design, rotamer.DefaultModels())
	assert.NoError(t, err)

	assert.Equal(t, libA.Fingerprint(), libB.Fingerprint())
}

func TestFingerprintDistinguishesDesigns(t *testing.T) {
	bb := testBackbone(t, 5)
	libA, err := rotamer.NewLibrary(bb, []rotamer.Position{
		{Index: 1, Allowed: []string{"SER"}},
	}, rotamer.DefaultModels())
	assert.NoError(t, err)
	libB, err := rotamer.NewLibrary(bb, []rotamer.Position{
		{Index: 1, Allowed: []string{"VAL"}},
	}, rotamer.DefaultModels())
	assert.NoError(t, err)

	assert.NotEqual(t, libA.Fingerprint(), libB.Fingerprint())
}

// Helix and strand backbone contexts reorder the bin preference, so the
// first candidate's χ1 differs between regions.
func TestRotamericBackboneDependence(t *testing.T) {
	m := rotamer.Rotameric{Residue: "SER"}

	helix := m.Chi(rotamer.Context{Phi: -1.1, Psi: -0.7})
	sheet := m.Chi(rotamer.Context{Phi: -2.4, Psi: 2.4})
	assert.Len(t, helix, 3)
	assert.Len(t, sheet, 3)
	assert.NotEqual(t, helix[0][0], sheet[0][0])

	// Same region, same ordering: the enumeration is deterministic.
	again := m.Chi(rotamer.Context{Phi: -1.1, Psi: -0.7})
	assert.Equal(t, helix, again)
}

func TestRotamericChiCountCrossProduct(t *testing.T) {
	ctx := rotamer.Context{Phi: -1.1, Psi: -0.7}

	lys := rotamer.Rotameric{Residue: "LYS"}.Chi(ctx)
	assert.Len(t, lys, 81) // 3^4
	for _, chi := range lys {
		assert.Len(t, chi, 4)
	}

	gly := rotamer.Rotameric{Residue: "GLY"}.Chi(ctx)
	assert.Equal(t, [][]float64{{}}, gly)

	assert.Nil(t, rotamer.Rotameric{Residue: "???"}.Chi(ctx))
}
