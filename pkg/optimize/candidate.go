package optimize

import (
	"context"

	"github.com/trusspole/trusspole/pkg/sizing"
)

// EvaluateOne runs the self weight convergence loop on a single diagonal
// count vector, bypassing enumeration and selection. It backs configuration
// checks where the bracing layout is already fixed.
func EvaluateOne(ctx context.Context, opts Options, diagonals []int) (*Configuration, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
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
	cfg := &Configuration{Diagonals: diagonals, Status: StatusInit}
	if err := ev.run(ctx, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
