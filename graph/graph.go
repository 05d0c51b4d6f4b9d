/*
Package graph caches the decomposed energies of a packing problem: one-body
energies per rotamer and two-body energies per interacting rotamer pair,
both scored by a caller-supplied evaluator.

Rotamer geometry never changes after the library is built, so every energy
is a constant of the run. The graph exploits this by evaluating each
two-body key at most once and serving every later lookup from the memo
table, which is what keeps millions of stochastic trial substitutions
affordable. Position pairs farther apart than the evaluator's cutoff are
never materialized at all.
*/
package graph

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/exp/slices"

	"github.com/TimothyStiles/repack/checks"
	"github.com/TimothyStiles/repack/energy"
	"github.com/TimothyStiles/repack/geom"
	"github.com/TimothyStiles/repack/rotamer"
)

var (
	// ErrCutoffViolation marks a two-body query for a position pair
	// beyond the interaction cutoff. Callers are expected to consult
	// Neighbors first; asking anyway is a bug worth surfacing, not a
	// silent zero.
	ErrCutoffViolation = errors.New("position pair beyond interaction cutoff")

	// ErrNonFinite marks an evaluator returning NaN or ±Inf. The run
	// cannot continue: substituting a default would silently bias the
	// search.
	ErrNonFinite = errors.New("non-finite energy from evaluator")
)

// pairKey identifies one two-body entry. Keys are normalized so the lower
// position comes first; the cache never stores both orientations.
type pairKey struct {
	posA, idxA, posB, idxB int
}

func newPairKey(pa, ia, pb, ib int) pairKey {
	if pb < pa {
		pa, ia, pb, ib = pb, ib, pa, ia
	}
	return pairKey{posA: pa, idxA: ia, posB: pb, idxB: ib}
}

// Graph is the pairwise energy cache of one packing problem. One-body
// energies are computed for every rotamer at construction; two-body
// energies are computed on first access and memoized. After Precompute, or
// in any case once no more writes occur, the graph is safe for concurrent
// readers sharing it across independent annealing runs.
type Graph struct {
	lib    *rotamer.Library
	eval   energy.Evaluator
	cutoff float64

	oneBody   [][]float64
	neighbors [][]int

	mu   sync.Mutex
	pair map[pairKey]float64
}

// New builds the interaction graph for a library against an evaluator.
// Neighbor sets are fixed here from representative-atom distances on the
// backbone, and every one-body energy is evaluated up front. A non-finite
// one-body energy fails the build with ErrNonFinite.
func New(lib *rotamer.Library, eval energy.Evaluator) (*Graph, error) {
	cutoff := eval.Cutoff()
	if !(cutoff > 0) || !checks.IsFinite(cutoff) {
		return nil, fmt.Errorf("evaluator cutoff %v is not a positive finite distance", cutoff)
	}

	g := &Graph{
		lib:       lib,
		eval:      eval,
		cutoff:    cutoff,
		oneBody:   make([][]float64, lib.Len()),
		neighbors: make([][]int, lib.Len()),
		pair:      make(map[pairKey]float64),
	}

	bb := lib.Backbone()
	for i := 0; i < lib.Len(); i++ {
		for j := i + 1; j < lib.Len(); j++ {
			if geom.Distance(bb.Representative(i), bb.Representative(j)) <= cutoff {
				g.neighbors[i] = append(g.neighbors[i], j)
				g.neighbors[j] = append(g.neighbors[j], i)
			}
		}
	}
	for i := range g.neighbors {
		slices.Sort(g.neighbors[i])
	}

	for i := 0; i < lib.Len(); i++ {
		g.oneBody[i] = make([]float64, lib.Candidates(i))
		for k := range g.oneBody[i] {
			e := eval.OneBody(lib.Rotamer(i, k))
			if !checks.IsFinite(e) {
				return nil, fmt.Errorf("one-body energy of rotamer (%d,%d): %w", i, k, ErrNonFinite)
			}
			g.oneBody[i][k] = e
		}
	}
	return g, nil
}

// Library returns the conformation library the graph was built over.
func (g *Graph) Library() *rotamer.Library { return g.lib }

// Cutoff returns the interaction cutoff distance in effect.
func (g *Graph) Cutoff() float64 { return g.cutoff }

// Fingerprint returns the BLAKE3 fingerprint of the underlying library, so
// a cache can be matched to the library it was computed for.
func (g *Graph) Fingerprint() [32]byte { return g.lib.Fingerprint() }

// OneBody returns the one-body energy of the rotamer at (pos, index).
func (g *Graph) OneBody(pos, index int) float64 {
	return g.oneBody[pos][index]
}

// Neighbors returns the positions within the interaction cutoff of pos, in
// ascending order. The returned slice is owned by the graph and must not
// be modified.
func (g *Graph) Neighbors(pos int) []int {
	return g.neighbors[pos]
}

// TwoBody returns the pair energy between the rotamers (posA, indexA) and
// (posB, indexB). The value is evaluated on first access and served from
// the memo table afterwards; interaction(A,i,B,j) and interaction(B,j,A,i)
// are the same entry.
//
// Querying a pair of positions beyond the cutoff fails with
// ErrCutoffViolation, and an evaluator returning a non-finite value fails
// with ErrNonFinite.
func (g *Graph) TwoBody(posA, indexA, posB, indexB int) (float64, error) {
	if posA == posB {
		return 0, fmt.Errorf("two-body energy within position %d is undefined", posA)
	}
	if !slices.Contains(g.neighbors[posA], posB) {
		return 0, fmt.Errorf("positions %d and %d: %w", posA, posB, ErrCutoffViolation)
	}
	key := newPairKey(posA, indexA, posB, indexB)

	g.mu.Lock()
	defer g.mu.Unlock()
	if e, ok := g.pair[key]; ok {
		return e, nil
	}
	e := g.eval.TwoBody(g.lib.Rotamer(key.posA, key.idxA), g.lib.Rotamer(key.posB, key.idxB))
	if !checks.IsFinite(e) {
		return 0, fmt.Errorf("two-body energy of (%d,%d)x(%d,%d): %w",
			posA, indexA, posB, indexB, ErrNonFinite)
	}
	g.pair[key] = e
	return e, nil
}

// Precompute eagerly evaluates every two-body entry of every neighboring
// position pair. Afterwards the graph serves reads without taking its
// lock's write path, which is the cheap way to share it across parallel
// runs.
func (g *Graph) Precompute() error {
	for i := 0; i < g.lib.Len(); i++ {
		for _, j := range g.neighbors[i] {
			if j < i {
				continue
			}
			for a := 0; a < g.lib.Candidates(i); a++ {
				for b := 0; b < g.lib.Candidates(j); b++ {
					if _, err := g.TwoBody(i, a, j, b); err != nil {
						return err
					}
				}
			}
		}
	}
	return nil
}

// Materialized returns how many two-body entries have been evaluated so
// far. Diagnostic only.
func (g *Graph) Materialized() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.pair)
}
