/*
Package energy defines the evaluator capability a caller plugs into the
packer, plus small adapters for composing one: a weighted combination of
named terms, a plain-function adapter, a fixed-constant table, and a simple
steric clash term.

The packer itself is unit-agnostic; whatever units an evaluator scores in
are the units the optimizer minimizes.
*/
package energy

import (
	"github.com/TimothyStiles/repack/geom"
	"github.com/TimothyStiles/repack/rotamer"
)

// Evaluator scores rotamers. OneBody scores a single rotamer against the
// static environment (backbone and anything else fixed); TwoBody scores a
// pair of rotamers at two different positions. Cutoff is the distance, in
// the same length units as the rotamer geometry, beyond which TwoBody is
// treated as zero and never called.
//
// Evaluators must be pure functions of the rotamer geometry: no side
// effects, no dependence on call order. They are called from the packing
// loop, possibly many millions of times via the memoizing cache.
type Evaluator interface {
	OneBody(r *rotamer.Rotamer) float64
	TwoBody(a, b *rotamer.Rotamer) float64
	Cutoff() float64
}

// Func adapts plain functions to the Evaluator interface. Nil functions
// score zero.
type Func struct {
	One            func(r *rotamer.Rotamer) float64
	Two            func(a, b *rotamer.Rotamer) float64
	CutoffDistance float64
}

// OneBody implements Evaluator.
func (f Func) OneBody(r *rotamer.Rotamer) float64 {
	if f.One == nil {
		return 0
	}
	return f.One(r)
}

// TwoBody implements Evaluator.
func (f Func) TwoBody(a, b *rotamer.Rotamer) float64 {
	if f.Two == nil {
		return 0
	}
	return f.Two(a, b)
}

// Cutoff implements Evaluator.
func (f Func) Cutoff() float64 { return f.CutoffDistance }

// Term is one named scoring component of a weighted evaluator.
type Term struct {
	Name   string
	Weight float64
	Eval   Evaluator
}

// Weighted combines named terms into a single evaluator; every score is the
// weight-scaled sum over the active terms. The term list is fixed at
// construction, replacing any notion of a mutable global score registry.
type Weighted struct {
	cutoff float64
	terms  []Term
}

// NewWeighted creates a weighted evaluator with the given interaction
// cutoff and terms.
func NewWeighted(cutoff float64, terms ...Term) *Weighted {
	return &Weighted{cutoff: cutoff, terms: terms}
}

// Terms returns the active terms in evaluation order.
func (w *Weighted) Terms() []Term { return w.terms }

// OneBody implements Evaluator.
func (w *Weighted) OneBody(r *rotamer.Rotamer) float64 {
	var sum float64
	for _, t := range w.terms {
		sum += t.Weight * t.Eval.OneBody(r)
	}
	return sum
}

// TwoBody implements Evaluator.
func (w *Weighted) TwoBody(a, b *rotamer.Rotamer) float64 {
	var sum float64
	for _, t := range w.terms {
		sum += t.Weight * t.Eval.TwoBody(a, b)
	}
	return sum
}

// Cutoff implements Evaluator.
func (w *Weighted) Cutoff() float64 { return w.cutoff }

// Steric is a soft clash term: atom pairs closer than the contact distance
// are penalized quadratically, everything else scores zero. It has no
// one-body component. The parameters are the caller's to choose; nothing
// here is fit to a particular force field.
type Steric struct {
	// Contact is the atom-atom distance below which a pair is counted as
	// clashing.
	Contact float64
	// Scale multiplies the squared overlap.
	Scale float64
	// CutoffDistance is the interaction cutoff reported to the cache.
	CutoffDistance float64
}

// OneBody implements Evaluator.
func (s Steric) OneBody(r *rotamer.Rotamer) float64 { return 0 }

// TwoBody implements Evaluator.
func (s Steric) TwoBody(a, b *rotamer.Rotamer) float64 {
	var sum float64
	for _, ai := range a.Atoms {
		for _, bj := range b.Atoms {
			d := geom.Distance(ai.Coord, bj.Coord)
			if d < s.Contact {
				over := s.Contact - d
				sum += s.Scale * over * over
			}
		}
	}
	return sum
}

// Cutoff implements Evaluator.
func (s Steric) Cutoff() float64 { return s.CutoffDistance }
