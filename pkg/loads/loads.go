// Package loads builds the nodal load cases the solver runs: the service
// hypotheses applied at module tops and the structure's own weight.
package loads

import (
	"github.com/trusspole/trusspole/pkg/errors"
	"github.com/trusspole/trusspole/pkg/truss"
)

const (
	// WeightFactor inflates the bare bar weight to cover connections,
	// gussets, and galvanizing.
	WeightFactor = 1.30

	// InitialModuleWeight is the flat self weight estimate applied at each
	// module top node before any profile has been assigned, kgf.
	InitialModuleWeight = 41.0

	// InitialBarArea seeds the first analysis before sizing, cm².
	InitialBarArea = 4.30
)

// Hypothesis is one service load condition: a horizontal force per module,
// top-down, applied at the module top in kgf. Positive pulls toward +x.
type Hypothesis struct {
	Name       string
	Horizontal []float64
}

// Validate checks the hypothesis against the module count.
func (h Hypothesis) Validate(modules int) error {
	if h.Name == "" {
		return errors.New(errors.ErrCodeInvalidInput, "hypothesis has no name")
	}
	if len(h.Horizontal) != modules {
		return errors.New(errors.ErrCodeInvalidInput,
			"hypothesis %q has %d forces for %d modules", h.Name, len(h.Horizontal), modules)
	}
	return nil
}

// Case is one solver run: a named hypothesis combined with self weight.
type Case struct {
	Name  string
	Loads truss.NodalLoads
}

// Service returns the hypothesis forces as nodal loads. Each module's force
// is split evenly between its two top boundary nodes.
func Service(t *truss.Topology, h Hypothesis) (truss.NodalLoads, error) {
	if err := h.Validate(len(t.Modules)); err != nil {
		return nil, err
	}
	out := truss.NodalLoads{}
	for m, fh := range h.Horizontal {
		for _, id := range t.Modules[m].TopNodes {
			out.Add(id, fh/2, 0)
		}
	}
	return out, nil
}

// SelfWeight distributes the structure weight as downward nodal loads.
// Each of a module's two top nodes carries half the module's leg weight
// plus its full bracing weight, scaled by WeightFactor. The legs split
// between the two faces; the bracing load is counted whole on both.
func SelfWeight(t *truss.Topology, unitWeight func(truss.Bar) float64) truss.NodalLoads {
	out := truss.NodalLoads{}
	for _, m := range t.Modules {
		var legs, braces float64
		for _, b := range t.BarsInModule(m.Index) {
			w := t.Length(b) / 100 * unitWeight(b)
			if b.Class.IsLeg() {
				legs += w
			} else {
				braces += w
			}
		}
		perNode := (legs/2 + braces) * WeightFactor
		for _, id := range m.TopNodes {
			out.Add(id, 0, -perNode)
		}
	}
	return out
}

// InitialSelfWeight applies the flat per-module estimate at each top node,
// for the first iteration when no profiles are assigned yet.
func InitialSelfWeight(t *truss.Topology) truss.NodalLoads {
	out := truss.NodalLoads{}
	for _, m := range t.Modules {
		for _, id := range m.TopNodes {
			out.Add(id, 0, -InitialModuleWeight)
		}
	}
	return out
}

// Weight returns the bare structure weight in kg, without the WeightFactor
// allowance.
func Weight(t *truss.Topology, unitWeight func(truss.Bar) float64) float64 {
	var w float64
	for _, b := range t.Bars {
		w += t.Length(b) / 100 * unitWeight(b)
	}
	return w
}

// Build combines every hypothesis with the given self weight into the load
// cases for one analysis round.
func Build(t *truss.Topology, hyps []Hypothesis, self truss.NodalLoads) ([]Case, error) {
	if len(hyps) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no load hypotheses")
	}
	out := make([]Case, 0, len(hyps))
	for _, h := range hyps {
		service, err := Service(t, h)
		if err != nil {
			return nil, err
		}
		service.Merge(self)
		out = append(out, Case{Name: h.Name, Loads: service})
	}
	return out, nil
}
