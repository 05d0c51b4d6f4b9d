/*
Package design loads packing design specifications from YAML: which
backbone positions are open, which residue types each may become, and the
annealing parameters of the run. A design file is configuration for the
packer, not a structure format; backbone geometry always arrives through
code.

A design file looks like:

	comment: repack the binding pocket around the new ligand
	seed: 42
	schedule:
	  initial: 10.0
	  final: 0.01
	  alpha: 0.9
	sites:
	  - index: 12
	    types: [SER, THR, VAL]
	  - index: 14
*/
package design

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/TimothyStiles/repack/anneal"
	"github.com/TimothyStiles/repack/residue"
	"github.com/TimothyStiles/repack/rotamer"
)

// Site is one designable position in a design file. An empty type list
// means repack-only: the native type keeps its full rotamer sweep.
type Site struct {
	Index int      `yaml:"index"`
	Types []string `yaml:"types"`
}

// ScheduleSpec holds the geometric cooling parameters of a design.
type ScheduleSpec struct {
	Initial float64 `yaml:"initial"`
	Final   float64 `yaml:"final"`
	Alpha   float64 `yaml:"alpha"`
	Trials  int     `yaml:"trials"`
}

// Design is a parsed design specification.
type Design struct {
	Comment  string       `yaml:"comment"`
	Seed     int64        `yaml:"seed"`
	Schedule ScheduleSpec `yaml:"schedule"`
	Sites    []Site       `yaml:"sites"`
}

// Load reads and validates a design file.
func Load(path string) (*Design, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var d Design
	if err := yaml.Unmarshal(content, &d); err != nil {
		return nil, fmt.Errorf("parsing design %s: %w", path, err)
	}
	if err := d.validate(); err != nil {
		return nil, fmt.Errorf("design %s: %w", path, err)
	}
	return &d, nil
}

func (d *Design) validate() error {
	if len(d.Sites) == 0 {
		return fmt.Errorf("no sites given")
	}
	seen := make(map[int]bool, len(d.Sites))
	for _, s := range d.Sites {
		if s.Index < 0 {
			return fmt.Errorf("site index %d is negative", s.Index)
		}
		if seen[s.Index] {
			return fmt.Errorf("site %d listed twice", s.Index)
		}
		seen[s.Index] = true
		for _, t := range s.Types {
			if !residue.Known(t) {
				return fmt.Errorf("site %d allows type %q: %w",
					s.Index, t, rotamer.ErrInvalidResidueType)
			}
		}
	}
	return nil
}

// Positions converts the design's sites into library position
// descriptors.
func (d *Design) Positions() []rotamer.Position {
	out := make([]rotamer.Position, len(d.Sites))
	for i, s := range d.Sites {
		out[i] = rotamer.Position{Index: s.Index, Allowed: s.Types}
	}
	return out
}

// Anneal converts the design's schedule, seed and comment into an
// annealing configuration.
func (d *Design) Anneal() (anneal.Config, error) {
	schedule, err := anneal.Geometric(d.Schedule.Initial, d.Schedule.Final, d.Schedule.Alpha)
	if err != nil {
		return anneal.Config{}, err
	}
	return anneal.Config{
		Schedule:      schedule,
		TrialsPerTemp: d.Schedule.Trials,
		Seed:          d.Seed,
		Comment:       d.Comment,
	}, nil
}
