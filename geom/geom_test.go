package geom_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/TimothyStiles/repack/geom"
)

func TestDistance(t *testing.T) {
	a := r3.Vec{X: 1, Y: 2, Z: 3}
	b := r3.Vec{X: 4, Y: 6, Z: 3}
	assert.InDelta(t, 5.0, geom.Distance(a, b), 1e-12)
	assert.Zero(t, geom.Distance(a, a))
}

func TestAngle(t *testing.T) {
	a := r3.Vec{X: 1, Y: 0, Z: 0}
	b := r3.Vec{}
	c := r3.Vec{X: 0, Y: 1, Z: 0}
	assert.InDelta(t, math.Pi/2, geom.Angle(a, b, c), 1e-12)
}

func TestDihedral(t *testing.T) {
	a := r3.Vec{X: 0, Y: 1, Z: 0}
	b := r3.Vec{}
	c := r3.Vec{X: 1, Y: 0, Z: 0}

	// d above the abc plane: +90°.
	d := r3.Vec{X: 1, Y: 0, Z: 1}
	assert.InDelta(t, math.Pi/2, geom.Dihedral(a, b, c, d), 1e-12)

	// Trans (anti-periplanar) arrangement: 180°.
	d = r3.Vec{X: 1, Y: -1, Z: 0}
	assert.InDelta(t, math.Pi, math.Abs(geom.Dihedral(a, b, c, d)), 1e-12)

	// Cis arrangement: 0.
	d = r3.Vec{X: 1, Y: 1, Z: 0}
	assert.InDelta(t, 0, geom.Dihedral(a, b, c, d), 1e-12)
}

// Placing an atom with a given torsion and reading the torsion back must
// agree, for torsions across the full circle.
func TestPlaceAtomRoundTrip(t *testing.T) {
	a := r3.Vec{X: -1.2, Y: 0.8, Z: 0.3}
	b := r3.Vec{X: 0.1, Y: -0.2, Z: 0}
	c := r3.Vec{X: 1.4, Y: 0.5, Z: -0.4}

	const length, angle = 1.52, 1.9373
	for _, torsion := range []float64{-2.5, -1.0472, 0, 0.7, 1.0472, 3.0} {
		d := geom.PlaceAtom(a, b, c, length, angle, torsion)
		assert.InDelta(t, length, geom.Distance(c, d), 1e-9)
		assert.InDelta(t, angle, geom.Angle(b, c, d), 1e-9)
		assert.InDelta(t, torsion, geom.Dihedral(a, b, c, d), 1e-9)
	}
}
