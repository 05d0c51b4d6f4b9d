package energy

import "github.com/TimothyStiles/repack/rotamer"

// Table is an evaluator over fixed constants keyed by (position, local
// index) pairs. Entries default to zero, so only the interesting couplings
// need to be set. Pair entries are stored symmetrically.
//
// Tables are the natural way to drive the optimizer in tests and in small
// synthetic problems where the energies are known up front.
type Table struct {
	CutoffDistance float64

	one map[[2]int]float64
	two map[[4]int]float64
}

// NewTable creates an empty table with the given interaction cutoff.
func NewTable(cutoff float64) *Table {
	return &Table{
		CutoffDistance: cutoff,
		one:            make(map[[2]int]float64),
		two:            make(map[[4]int]float64),
	}
}

// SetOneBody sets the one-body energy of the rotamer at (pos, index).
func (t *Table) SetOneBody(pos, index int, e float64) {
	t.one[[2]int{pos, index}] = e
}

// SetTwoBody sets the pair energy between (posA, indexA) and (posB,
// indexB). The symmetric entry is implied.
func (t *Table) SetTwoBody(posA, indexA, posB, indexB int, e float64) {
	t.two[pairEntry(posA, indexA, posB, indexB)] = e
}

func pairEntry(pa, ia, pb, ib int) [4]int {
	if pb < pa || (pb == pa && ib < ia) {
		pa, ia, pb, ib = pb, ib, pa, ia
	}
	return [4]int{pa, ia, pb, ib}
}

// OneBody implements Evaluator.
func (t *Table) OneBody(r *rotamer.Rotamer) float64 {
	return t.one[[2]int{r.Pos, r.Index}]
}

// TwoBody implements Evaluator.
func (t *Table) TwoBody(a, b *rotamer.Rotamer) float64 {
	return t.two[pairEntry(a.Pos, a.Index, b.Pos, b.Index)]
}

// Cutoff implements Evaluator.
func (t *Table) Cutoff() float64 { return t.CutoffDistance }
