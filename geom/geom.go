/*
Package geom provides the small amount of 3D geometry needed to build and
compare side-chain conformations: distances, torsion (dihedral) angles, and
torsion-driven atom placement.

Coordinates are gonum r3 vectors in ångströms; angles are in radians.
*/
package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Distance returns the Euclidean distance between two points.
func Distance(a, b r3.Vec) float64 {
	return r3.Norm(r3.Sub(a, b))
}

// Angle returns the bond angle a-b-c at the central point b.
func Angle(a, b, c r3.Vec) float64 {
	ba := r3.Unit(r3.Sub(a, b))
	bc := r3.Unit(r3.Sub(c, b))
	// Clamp against rounding so Acos never sees |x| > 1.
	cos := math.Max(-1, math.Min(1, r3.Dot(ba, bc)))
	return math.Acos(cos)
}

// Dihedral returns the torsion angle defined by the four points a-b-c-d:
// the signed angle between the plane containing a,b,c and the plane
// containing b,c,d, in (-π, π].
func Dihedral(a, b, c, d r3.Vec) float64 {
	b1 := r3.Sub(b, a)
	b2 := r3.Sub(c, b)
	b3 := r3.Sub(d, c)

	n1 := r3.Cross(b1, b2)
	n2 := r3.Cross(b2, b3)

	x := r3.Dot(n1, n2)
	y := r3.Dot(r3.Cross(n1, n2), r3.Unit(b2))
	return math.Atan2(y, x)
}

// PlaceAtom returns the position of a new atom bonded to c, given the three
// preceding atoms a, b, c of the chain, the c-new bond length, the b-c-new
// bond angle and the a-b-c-new torsion angle. This is the natural extension
// reference frame construction used to turn a torsion-angle vector into
// cartesian side-chain coordinates one atom at a time.
func PlaceAtom(a, b, c r3.Vec, length, angle, torsion float64) r3.Vec {
	bc := r3.Unit(r3.Sub(c, b))
	n := r3.Unit(r3.Cross(r3.Sub(b, a), bc))
	m := r3.Cross(n, bc)

	d := r3.Vec{
		X: -length * math.Cos(angle),
		Y: length * math.Sin(angle) * math.Cos(torsion),
		Z: length * math.Sin(angle) * math.Sin(torsion),
	}
	out := c
	out = r3.Add(out, r3.Scale(d.X, bc))
	out = r3.Add(out, r3.Scale(d.Y, m))
	out = r3.Add(out, r3.Scale(d.Z, n))
	return out
}
