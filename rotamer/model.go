package rotamer

import "github.com/TimothyStiles/repack/residue"

// Model enumerates candidate χ-angle vectors for a single residue type
// given the local backbone torsion context. Implementations must be
// deterministic: identical context yields an identical, identically ordered
// candidate list within one run.
type Model interface {
	// Type returns the three letter residue type this model covers.
	Type() string
	// Chi returns the candidate χ-angle vectors, one per rotamer, in a
	// stable order.
	Chi(ctx Context) [][]float64
}

// ModelSet resolves residue types to their rotamer models. It is passed
// explicitly to the library build; there is no process-wide registry.
type ModelSet map[string]Model

// Rotameric is a simple backbone-dependent rotamer model: every χ angle is
// discretized into the three staggered bins (gauche-, gauche+, trans) and
// the candidate list is their cross product. The backbone context picks the
// bin preference order, so the first candidates enumerate the bins favored
// in that φ/ψ region.
type Rotameric struct {
	// Residue is the three letter type this model enumerates.
	Residue string
}

// Staggered χ bins in radians: -60°, +60°, 180°.
var (
	binsHelix = []float64{-1.0472, 3.1416, 1.0472}
	binsSheet = []float64{3.1416, -1.0472, 1.0472}
	binsOther = []float64{-1.0472, 1.0472, 3.1416}
)

// Type implements Model.
func (m Rotameric) Type() string { return m.Residue }

// Chi implements Model. A zero-χ type (glycine, alanine) has exactly one
// candidate, the empty torsion vector.
func (m Rotameric) Chi(ctx Context) [][]float64 {
	nchi, ok := residue.ChiCount(m.Residue)
	if !ok {
		return nil
	}
	if nchi == 0 {
		return [][]float64{{}}
	}

	bins := binsOther
	switch {
	case ctx.Phi < 0 && ctx.Psi > -2.0944 && ctx.Psi < 0.7854:
		bins = binsHelix // α region: φ<0, ψ in (-120°, 45°)
	case ctx.Phi < 0:
		bins = binsSheet
	}

	// Cross product of the bins over nchi angles, first angle varying
	// slowest so preferred χ1 bins lead the ordering.
	total := 1
	for i := 0; i < nchi; i++ {
		total *= len(bins)
	}
	out := make([][]float64, 0, total)
	idx := make([]int, nchi)
	for {
		chi := make([]float64, nchi)
		for i, b := range idx {
			chi[i] = bins[b]
		}
		out = append(out, chi)

		k := nchi - 1
		for k >= 0 {
			idx[k]++
			if idx[k] < len(bins) {
				break
			}
			idx[k] = 0
			k--
		}
		if k < 0 {
			return out
		}
	}
}

// DefaultModels returns a ModelSet with a Rotameric model for every
// standard amino acid.
func DefaultModels() ModelSet {
	set := make(ModelSet, len(residue.ThreeToOne))
	for name := range residue.ThreeToOne {
		set[name] = Rotameric{Residue: name}
	}
	return set
}
