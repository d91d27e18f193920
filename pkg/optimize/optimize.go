// Package optimize searches the diagonal count space for the lightest
// code-compliant tower. Every candidate configuration is generated, solved,
// and sized through its own self weight convergence loop; candidates are
// evaluated in parallel and the best one is selected deterministically.
package optimize

import (
	"context"
	"runtime"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/trusspole/trusspole/pkg/errors"
	"github.com/trusspole/trusspole/pkg/loads"
	"github.com/trusspole/trusspole/pkg/observability"
	"github.com/trusspole/trusspole/pkg/profile"
	"github.com/trusspole/trusspole/pkg/sizing"
	"github.com/trusspole/trusspole/pkg/truss"
)

// Default convergence parameters.
const (
	DefaultMaxIterations   = 10
	DefaultWeightTolerance = 1.0   // kg
	DefaultMaxDisplacement = 100.0 // cm
)

// Options configures a search run. Zero values pick sensible defaults.
type Options struct {
	// Geometry is the tower outline. Required.
	Geometry truss.Geometry

	// Hypotheses are the service load conditions. At least one is
	// required.
	Hypotheses []loads.Hypothesis

	// Catalog is the section table. Defaults to the builtin catalog.
	Catalog *profile.Catalog

	// Sizing configures bolts and check options.
	Sizing sizing.Options

	// Solver performs the linear analysis. Defaults to the direct
	// stiffness solver.
	Solver truss.Solver

	// Workers bounds parallel candidate evaluation. Defaults to
	// GOMAXPROCS.
	Workers int

	// MaxIterations caps the self weight convergence loop per candidate.
	MaxIterations int

	// WeightTolerance is the |ΔW| below which the loop converges, kg.
	WeightTolerance float64

	// MaxDisplacement invalidates candidates whose nodes move further, cm.
	MaxDisplacement float64
}

// ValidateAndSetDefaults checks the options and fills unset fields.
func (o *Options) ValidateAndSetDefaults() error {
	if err := o.Geometry.Validate(); err != nil {
		return err
	}
	if len(o.Hypotheses) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "no load hypotheses")
	}
	for _, h := range o.Hypotheses {
		if err := h.Validate(len(o.Geometry.ModuleHeights)); err != nil {
			return err
		}
	}
	if o.Catalog == nil {
		o.Catalog = profile.Builtin()
	}
	if o.Solver == nil {
		o.Solver = truss.NewDirectStiffness()
	}
	if o.Workers <= 0 {
		o.Workers = runtime.GOMAXPROCS(0)
	}
	if o.MaxIterations <= 0 {
		o.MaxIterations = DefaultMaxIterations
	}
	if o.WeightTolerance <= 0 {
		o.WeightTolerance = DefaultWeightTolerance
	}
	if o.MaxDisplacement <= 0 {
		o.MaxDisplacement = DefaultMaxDisplacement
	}
	return nil
}

// Stats summarizes a search run.
type Stats struct {
	Candidates    int
	Converged     int
	NonConvergent int
	Invalid       int
	Iterations    int // summed over candidates
	Solves        int // linear analyses performed
	Workers       int
	Elapsed       time.Duration
}

// Result is the outcome of a search run. Candidates holds every evaluated
// configuration in enumeration order, including failed ones, for
// diagnostics.
type Result struct {
	RunID      string
	Best       *Configuration
	Candidates []*Configuration
	Stats      Stats
}

// Run enumerates, evaluates, and selects. When no candidate converges the
// Result still carries all candidates alongside a NO_FEASIBLE_CONFIGURATION
// error.
func Run(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	vectors, err := Enumerate(opts.Geometry)
	if err != nil {
		return nil, err
	}
	if len(vectors) == 0 {
		return nil, errors.New(errors.ErrCodeNoValidConfiguration,
			"the outline admits no bracing configuration")
	}
	engine, err := sizing.NewEngine(opts.Catalog, opts.Sizing)
	if err != nil {
		return nil, err
	}

	ev := &evaluator{
		geo:             opts.Geometry,
		hyps:            opts.Hypotheses,
		engine:          engine,
		solver:          opts.Solver,
		maxIterations:   opts.MaxIterations,
		tolerance:       opts.WeightTolerance,
		maxDisplacement: opts.MaxDisplacement,
	}

	hooks := observability.Search()
	start := time.Now()
	hooks.OnSearchStart(ctx, len(vectors))

	candidates := make([]*Configuration, len(vectors))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for i, d := range vectors {
		cfg := &Configuration{Index: i, Diagonals: d, Status: StatusInit}
		candidates[i] = cfg
		g.Go(func() error {
			hooks.OnConfigurationStart(gctx, cfg.Index, cfg.Diagonals)
			t0 := time.Now()
			err := ev.run(gctx, cfg)
			hooks.OnConfigurationComplete(gctx, cfg.Index, cfg.Status.String(), cfg.Weight, time.Since(t0), cfg.Err)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &Result{
		RunID:      uuid.NewString(),
		Candidates: candidates,
		Stats:      Stats{Candidates: len(candidates), Workers: opts.Workers},
	}
	var best *Configuration
	for _, cfg := range candidates {
		res.Stats.Iterations += cfg.Iterations
		res.Stats.Solves += cfg.Solves
		switch cfg.Status {
		case StatusConverged:
			res.Stats.Converged++
			if better(cfg, best) {
				best = cfg
				hooks.OnBestImproved(ctx, cfg.Index, cfg.Weight)
			}
		case StatusNonConvergent:
			res.Stats.NonConvergent++
		default:
			res.Stats.Invalid++
		}
	}
	res.Stats.Elapsed = time.Since(start)
	hooks.OnSearchComplete(ctx, res.Stats.Converged, res.Stats.NonConvergent, res.Stats.Invalid, res.Stats.Elapsed)

	if best == nil {
		return res, errors.New(errors.ErrCodeNoFeasibleConfiguration,
			"none of %d configurations converged", len(candidates))
	}
	res.Best = best
	return res, nil
}

// better orders converged candidates: lightest first, then fewer members,
// then fewer diagonals, then lowest enumeration index. Candidates are
// visited in enumeration order, so the strict comparisons keep selection
// deterministic.
func better(c, best *Configuration) bool {
	if best == nil {
		return true
	}
	if c.Weight != best.Weight {
		return c.Weight < best.Weight
	}
	if c.Bars() != best.Bars() {
		return c.Bars() < best.Bars()
	}
	if c.TotalDiagonals() != best.TotalDiagonals() {
		return c.TotalDiagonals() < best.TotalDiagonals()
	}
	return c.Index < best.Index
}
