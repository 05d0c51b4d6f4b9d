package energy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/TimothyStiles/repack/energy"
	"github.com/TimothyStiles/repack/rotamer"
)

func TestFuncDefaultsToZero(t *testing.T) {
	eval := energy.Func{CutoffDistance: 6.0}
	r := &rotamer.Rotamer{}
	assert.Zero(t, eval.OneBody(r))
	assert.Zero(t, eval.TwoBody(r, r))
	assert.Equal(t, 6.0, eval.Cutoff())
}

func TestTableSymmetric(t *testing.T) {
	tbl := energy.NewTable(6.0)
	tbl.SetTwoBody(3, 1, 1, 0, -4.0)
	tbl.SetOneBody(1, 0, 2.0)

	a := &rotamer.Rotamer{Pos: 1, Index: 0}
	b := &rotamer.Rotamer{Pos: 3, Index: 1}

	assert.Equal(t, -4.0, tbl.TwoBody(a, b))
	assert.Equal(t, -4.0, tbl.TwoBody(b, a))
	assert.Equal(t, 2.0, tbl.OneBody(a))
	// Unset entries are zero.
	assert.Zero(t, tbl.OneBody(b))
	assert.Zero(t, tbl.TwoBody(a, &rotamer.Rotamer{Pos: 2}))
}

func TestWeightedSumsTerms(t *testing.T) {
	one := energy.Func{
		One: func(r *rotamer.Rotamer) float64 { return 1.0 },
		Two: func(a, b *rotamer.Rotamer) float64 { return 2.0 },
	}
	ten := energy.Func{
		One: func(r *rotamer.Rotamer) float64 { return 10.0 },
		Two: func(a, b *rotamer.Rotamer) float64 { return 20.0 },
	}

	w := energy.NewWeighted(6.0,
		energy.Term{Name: "unit", Weight: 1.0, Eval: one},
		energy.Term{Name: "tens", Weight: 0.5, Eval: ten},
	)
	r := &rotamer.Rotamer{}
	// 1*1 + 0.5*10 and 1*2 + 0.5*20.
	assert.Equal(t, 6.0, w.OneBody(r))
	assert.Equal(t, 12.0, w.TwoBody(r, r))
	assert.Equal(t, 6.0, w.Cutoff())
	assert.Len(t, w.Terms(), 2)
}

func TestStericClash(t *testing.T) {
	s := energy.Steric{Contact: 3.0, Scale: 10.0, CutoffDistance: 6.0}

	apart := &rotamer.Rotamer{Atoms: []rotamer.Atom{{Name: "CB", Coord: r3.Vec{X: 10}}}}
	near := &rotamer.Rotamer{Atoms: []rotamer.Atom{{Name: "CB", Coord: r3.Vec{X: 1}}}}
	origin := &rotamer.Rotamer{Atoms: []rotamer.Atom{{Name: "CB"}}}

	assert.Zero(t, s.TwoBody(origin, apart))
	// Overlap of 2 Å at scale 10: 10 * 2².
	assert.InDelta(t, 40.0, s.TwoBody(origin, near), 1e-12)
	assert.Zero(t, s.OneBody(origin))
	assert.Equal(t, 6.0, s.Cutoff())
}
