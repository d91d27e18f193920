package optimize

import (
	"context"
	"math"

	"github.com/trusspole/trusspole/pkg/errors"
	"github.com/trusspole/trusspole/pkg/loads"
	"github.com/trusspole/trusspole/pkg/observability"
	"github.com/trusspole/trusspole/pkg/profile"
	"github.com/trusspole/trusspole/pkg/sizing"
	"github.com/trusspole/trusspole/pkg/truss"
)

// AssignKey addresses one profile slot: all members of a class group within
// a module share the same section.
type AssignKey struct {
	Module int
	Group  truss.ClassGroup
}

// Assignment maps profile slots to catalog profile names.
type Assignment map[AssignKey]string

// Clone returns a copy of the assignment.
func (a Assignment) Clone() Assignment {
	out := make(Assignment, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// Configuration is one candidate in the search: a diagonal count vector plus
// everything its evaluation produced.
type Configuration struct {
	Index     int
	Diagonals []int

	Status     Status
	Assignment Assignment
	Topology   *truss.Topology
	Report     *sizing.Report

	Weight          float64 // bare structure weight, kg
	Iterations      int
	Solves          int
	MaxDisplacement float64 // cm, last analysis round

	Err error
}

// TotalDiagonals sums the diagonal counts over all modules.
func (c *Configuration) TotalDiagonals() int {
	total := 0
	for _, d := range c.Diagonals {
		total += d
	}
	return total
}

// Bars returns the member count, or 0 before generation.
func (c *Configuration) Bars() int {
	if c.Topology == nil {
		return 0
	}
	return len(c.Topology.Bars)
}

func (c *Configuration) fail(err error) {
	c.Status = StatusInvalid
	c.Err = err
}

// evaluator runs the self weight convergence loop on candidates. It is
// stateless across candidates and safe for concurrent use.
type evaluator struct {
	geo    truss.Geometry
	hyps   []loads.Hypothesis
	engine *sizing.Engine
	solver truss.Solver

	maxIterations   int
	tolerance       float64 // kg
	maxDisplacement float64 // cm
}

// run evaluates one candidate in place. Candidate failures land in the
// Configuration; only context errors are returned.
func (e *evaluator) run(ctx context.Context, cfg *Configuration) error {
	top, err := truss.Generate(e.geo, cfg.Diagonals)
	if err != nil {
		cfg.fail(err)
		return nil
	}
	cfg.Topology = top

	// Start every slot at the weakest admissible section. Resizing only
	// ever moves up the catalog, so assignments grow monotonically.
	assign := Assignment{}
	for _, b := range top.Bars {
		key := AssignKey{Module: b.Module, Group: b.Class.Group()}
		if _, ok := assign[key]; ok {
			continue
		}
		p, ok := e.engine.Weakest(key.Group)
		if !ok {
			cfg.fail(errors.New(errors.ErrCodeUnresizableMember,
				"no admissible profile for %s members", key.Group))
			return nil
		}
		assign[key] = p.Name
	}
	cfg.Assignment = assign

	pick := func(b truss.Bar) profile.Profile {
		p, _ := e.engine.Catalog().ByName(assign[AssignKey{Module: b.Module, Group: b.Class.Group()}])
		return p
	}
	unit := func(b truss.Bar) float64 { return pick(b).UnitWeight }

	hooks := observability.Solver()
	prev := math.NaN()
	// The first round runs on the flat estimate; afterwards the self
	// weight follows the assigned sections.
	self := loads.InitialSelfWeight(top)

	for iter := 1; iter <= e.maxIterations; iter++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		cfg.Status = StatusSolving
		weight := loads.Weight(top, unit)
		cases, err := loads.Build(top, e.hyps, self)
		if err != nil {
			cfg.fail(err)
			return nil
		}

		areas := make(map[truss.BarID]float64, len(top.Bars))
		for _, b := range top.Bars {
			areas[b.ID] = pick(b).Area
		}
		sols := make([]sizing.CaseSolution, 0, len(cases))
		maxDisp := 0.0
		for _, lc := range cases {
			sol, err := e.solver.Solve(ctx, top, areas, lc.Loads)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				cfg.fail(err)
				return nil
			}
			cfg.Solves++
			if d := sol.MaxDisplacement(); d > maxDisp {
				maxDisp = d
			}
			sols = append(sols, sizing.CaseSolution{Case: lc.Name, Solution: sol})
		}
		cfg.MaxDisplacement = maxDisp
		if maxDisp > e.maxDisplacement {
			cfg.fail(errors.New(errors.ErrCodeDisplacementLimit,
				"displacement %.1f cm exceeds the %.0f cm cap", maxDisp, e.maxDisplacement))
			return nil
		}

		cfg.Status = StatusChecking
		report, err := e.engine.Check(top, pick, sols)
		if err != nil {
			cfg.fail(err)
			return nil
		}
		cfg.Report = report
		cfg.Weight = weight
		cfg.Iterations = iter

		failing := report.Failing()
		hooks.OnIteration(ctx, cfg.Index, iter, weight, len(failing))

		if len(failing) == 0 && math.Abs(weight-prev) < e.tolerance {
			cfg.Status = StatusConverged
			return nil
		}
		if len(failing) > 0 {
			cfg.Status = StatusResizing
			if !e.resize(ctx, cfg, top, failing, assign) {
				return nil
			}
		}
		prev = weight
		self = loads.SelfWeight(top, unit)
	}

	cfg.Status = StatusNonConvergent
	return nil
}

// resize upsizes every slot owning a failing bar by one catalog step.
// Returns false when a slot has exhausted the catalog, which invalidates the
// candidate.
func (e *evaluator) resize(ctx context.Context, cfg *Configuration, top *truss.Topology, failing []truss.BarID, assign Assignment) bool {
	bars := make(map[truss.BarID]truss.Bar, len(top.Bars))
	for _, b := range top.Bars {
		bars[b.ID] = b
	}
	bumped := make(map[AssignKey]bool)
	for _, id := range failing {
		b := bars[id]
		key := AssignKey{Module: b.Module, Group: b.Class.Group()}
		if bumped[key] {
			continue
		}
		bumped[key] = true

		current := assign[key]
		next, ok := e.engine.Stronger(current, key.Group)
		if !ok {
			cfg.fail(errors.New(errors.ErrCodeUnresizableMember,
				"module %d %s members exhausted the catalog at %s",
				key.Module+1, key.Group, current))
			return false
		}
		observability.Solver().OnResize(ctx, cfg.Index, key.Module, key.Group.String(), current, next.Name)
		assign[key] = next.Name
	}
	return true
}
