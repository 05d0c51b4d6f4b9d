/*
Package anneal searches rotamer assignment space by simulated annealing:
repeated position-local substitutions accepted by the Metropolis criterion
under a decreasing temperature schedule, with all energies served by the
memoizing interaction graph.

The driver is sequential; each trial depends on the accept/reject outcome
of the one before it. Parallelism belongs across independent runs, which
may share a single graph.
*/
package anneal

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/lunny/log"
	"github.com/mroth/weightedrand"

	"github.com/TimothyStiles/repack/graph"
	"github.com/TimothyStiles/repack/rotamer"
)

// defaultTrialFactor scales the default per-temperature trial count with
// the number of candidate rotamers at substitutable positions. Anything
// monotone in library size is reasonable here; 30 visits per candidate per
// temperature converges well on the problem sizes this library targets.
const defaultTrialFactor = 30

// Config drives one annealing run.
type Config struct {
	// Schedule is the temperature schedule; validated before the run.
	Schedule Schedule

	// TrialsPerTemp is the number of trial substitutions at each
	// temperature. Zero selects a default that scales with the total
	// candidate count.
	TrialsPerTemp int

	// Seed seeds the run's private generator. Ignored when Rand is set.
	Seed int64

	// Rand, when non-nil, is used as the run's generator. Each run must
	// own its generator; *rand.Rand is not safe for concurrent use.
	Rand *rand.Rand

	// RandomStart starts from a uniformly random valid rotamer at every
	// designable position instead of each position's first candidate.
	RandomStart bool

	// Verbose logs a per-temperature progress line.
	Verbose bool

	// Comment is a free-form note carried into the result's report.
	Comment string
}

// TemperatureTrace records what happened at one temperature: how many
// trials ran, how many were accepted, and the accepted energy deltas in
// order. Rejections are the expected common case and are counted, not
// itemized.
type TemperatureTrace struct {
	Temperature   float64
	Trials        int
	Accepted      int
	AcceptedDelta []float64
}

// Result is the outcome of a run. On success Assignment is the final
// assignment at schedule exhaustion; on a fatal error Pack returns the
// best assignment found before the failure alongside the error, never a
// half-updated one.
type Result struct {
	Assignment *Assignment
	Energy     float64
	Trace      []TemperatureTrace
	Comment    string
}

// Pack runs simulated annealing over the graph's library and returns the
// resulting assignment and its total energy.
//
// Setup failures (invalid schedule, a designable position with no
// candidates) are detected before the loop and returned immediately.
// During the loop, ctx is checked between trials so callers can bound
// wall-clock time; on cancellation, and on any fatal evaluation error, the
// best assignment found so far is returned together with the error.
func Pack(ctx context.Context, g *graph.Graph, cfg Config) (Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := cfg.Schedule.Validate(); err != nil {
		return Result{}, err
	}

	lib := g.Library()
	designable := lib.Designable()
	for _, p := range designable {
		if lib.Candidates(p) == 0 {
			return Result{}, fmt.Errorf("position %d: %w", p, rotamer.ErrEmptyLibrary)
		}
	}

	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(cfg.Seed))
	}

	cur := &Assignment{choice: make([]int, lib.Len())}
	if cfg.RandomStart {
		for _, p := range designable {
			cur.choice[p] = rng.Intn(lib.Candidates(p))
		}
	}
	initial, err := Total(g, cur.choice)
	if err != nil {
		return Result{Assignment: cur.clone(), Comment: cfg.Comment}, err
	}
	cur.energy = initial
	best := cur.clone()

	// Positions with a single candidate can never change; skipping them
	// saves the wasted no-op trials. Trial frequency is proportional to
	// each position's candidate count, so positions with more rotamers
	// get proportionally more visits.
	var substitutable []int
	total := 0
	for _, p := range designable {
		if n := lib.Candidates(p); n > 1 {
			substitutable = append(substitutable, p)
			total += n
		}
	}

	result := func(a *Assignment, trace []TemperatureTrace) Result {
		return Result{Assignment: a, Energy: a.energy, Trace: trace, Comment: cfg.Comment}
	}

	if len(substitutable) == 0 {
		return result(cur, nil), nil
	}

	choices := make([]weightedrand.Choice, len(substitutable))
	for i, p := range substitutable {
		choices[i] = weightedrand.Choice{Item: p, Weight: uint(lib.Candidates(p))}
	}
	chooser, err := weightedrand.NewChooser(choices...)
	if err != nil {
		return Result{}, fmt.Errorf("building position sampler: %w", err)
	}

	trials := cfg.TrialsPerTemp
	if trials <= 0 {
		trials = defaultTrialFactor * total
	}

	var trace []TemperatureTrace
	for _, temp := range cfg.Schedule {
		tt := TemperatureTrace{Temperature: temp}
		for trial := 0; trial < trials; trial++ {
			if err := ctx.Err(); err != nil {
				return result(best, trace), err
			}

			p := chooser.PickSource(rng).(int)
			cand := rng.Intn(lib.Candidates(p) - 1)
			if cand >= cur.choice[p] {
				cand++
			}

			delta, err := trialDelta(g, cur.choice, p, cand)
			if err != nil {
				return result(best, trace), err
			}

			tt.Trials++
			if delta <= 0 || rng.Float64() < math.Exp(-delta/temp) {
				cur.substitute(p, cand, delta)
				tt.Accepted++
				tt.AcceptedDelta = append(tt.AcceptedDelta, delta)
				if cur.energy < best.energy {
					best = cur.clone()
				}
			}
		}
		trace = append(trace, tt)
		if cfg.Verbose {
			log.Infof("anneal: T=%.4g accepted %d/%d trials, energy %.4f",
				temp, tt.Accepted, tt.Trials, cur.energy)
		}
	}
	return result(cur, trace), nil
}

// trialDelta computes the energy change of substituting cand for the
// current rotamer at p. Only p's one-body term and its interactions with
// the current choices at neighboring positions contribute, so the cost of
// a trial is bounded by the neighbor count, not the assignment size.
func trialDelta(g *graph.Graph, choice []int, p, cand int) (float64, error) {
	cur := choice[p]
	delta := g.OneBody(p, cand) - g.OneBody(p, cur)
	for _, q := range g.Neighbors(p) {
		eNew, err := g.TwoBody(p, cand, q, choice[q])
		if err != nil {
			return 0, err
		}
		eCur, err := g.TwoBody(p, cur, q, choice[q])
		if err != nil {
			return 0, err
		}
		delta += eNew - eCur
	}
	return delta, nil
}

// IsSetupError reports whether err is one of the failures detected before
// the annealing loop starts.
func IsSetupError(err error) bool {
	return errors.Is(err, ErrScheduleInvalid) ||
		errors.Is(err, rotamer.ErrEmptyLibrary) ||
		errors.Is(err, rotamer.ErrInvalidResidueType) ||
		errors.Is(err, rotamer.ErrDegenerateBackbone)
}
