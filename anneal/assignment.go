package anneal

import (
	"fmt"

	"golang.org/x/exp/slices"

	"github.com/TimothyStiles/repack/graph"
)

// Assignment is a complete choice of one rotamer per position, together
// with its decomposed total energy. It is created and mutated only by the
// annealing driver; every mutation is a single position-local substitution
// applied together with its energy delta.
type Assignment struct {
	choice []int
	energy float64
}

// Selected returns the chosen local rotamer index at a position.
func (a *Assignment) Selected(pos int) int { return a.choice[pos] }

// Selections returns a copy of the full per-position choice vector.
func (a *Assignment) Selections() []int { return slices.Clone(a.choice) }

// Energy returns the running total energy of the assignment: the sum of
// the one-body energies of every selected rotamer plus the two-body
// energies of every selected pair within the cutoff, and nothing else.
func (a *Assignment) Energy() float64 { return a.energy }

func (a *Assignment) clone() *Assignment {
	return &Assignment{choice: slices.Clone(a.choice), energy: a.energy}
}

// substitute applies one accepted trial: the index change at pos and its
// energy delta, as a single step.
func (a *Assignment) substitute(pos, index int, delta float64) {
	a.choice[pos] = index
	a.energy += delta
}

// Total recomputes an assignment's energy from scratch against the graph:
// all selected one-body terms plus all selected two-body terms between
// neighboring positions. It is the independent check that the running
// total maintained by delta updates never drifts from the decomposition.
func Total(g *graph.Graph, selections []int) (float64, error) {
	lib := g.Library()
	if len(selections) != lib.Len() {
		return 0, fmt.Errorf("selection vector has %d entries for %d positions",
			len(selections), lib.Len())
	}
	var sum float64
	for i, sel := range selections {
		sum += g.OneBody(i, sel)
		for _, j := range g.Neighbors(i) {
			if j < i {
				continue
			}
			e, err := g.TwoBody(i, sel, j, selections[j])
			if err != nil {
				return 0, err
			}
			sum += e
		}
	}
	return sum, nil
}
