package anneal

import (
	"fmt"
	"strings"

	"github.com/mitchellh/go-wordwrap"
	"gonum.org/v1/gonum/stat"
)

// MeanAcceptedDelta returns the mean of the accepted energy deltas at this
// temperature, or zero if nothing was accepted.
func (t TemperatureTrace) MeanAcceptedDelta() float64 {
	if len(t.AcceptedDelta) == 0 {
		return 0
	}
	return stat.Mean(t.AcceptedDelta, nil)
}

// AcceptanceRate returns the fraction of trials accepted at this
// temperature.
func (t TemperatureTrace) AcceptanceRate() float64 {
	if t.Trials == 0 {
		return 0
	}
	return float64(t.Accepted) / float64(t.Trials)
}

// Report renders a human-readable summary of the run: one line per
// temperature with acceptance statistics, the final energy, and the
// design comment wrapped to 78 columns.
func (r Result) Report() string {
	var b strings.Builder
	fmt.Fprintf(&b, "packed %d temperatures, final energy %.4f\n", len(r.Trace), r.Energy)
	for _, tt := range r.Trace {
		fmt.Fprintf(&b, "  T=%-10.4g accepted %d/%d (%.1f%%), mean ΔE %.4f\n",
			tt.Temperature, tt.Accepted, tt.Trials,
			100*tt.AcceptanceRate(), tt.MeanAcceptedDelta())
	}
	if r.Comment != "" {
		b.WriteString(wordwrap.WrapString(r.Comment, 78))
		b.WriteByte('\n')
	}
	return b.String()
}
