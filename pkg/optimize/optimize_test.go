package optimize

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trusspole/trusspole/pkg/errors"
	"github.com/trusspole/trusspole/pkg/loads"
	"github.com/trusspole/trusspole/pkg/profile"
	"github.com/trusspole/trusspole/pkg/sizing"
	"github.com/trusspole/trusspole/pkg/truss"
)

func searchOptions(force float64) Options {
	return Options{
		Geometry: truss.Geometry{ModuleHeights: []float64{300}, BaseWidth: 100},
		Hypotheses: []loads.Hypothesis{
			{Name: "Fh(+)", Horizontal: []float64{force}},
			{Name: "Fh(-)", Horizontal: []float64{-force}},
		},
		Workers: 2,
	}
}

func TestValidateAndSetDefaults(t *testing.T) {
	opts := searchOptions(445)
	require.NoError(t, opts.ValidateAndSetDefaults())
	assert.NotNil(t, opts.Catalog)
	assert.NotNil(t, opts.Solver)
	assert.Equal(t, DefaultMaxIterations, opts.MaxIterations)
	assert.Equal(t, DefaultWeightTolerance, opts.WeightTolerance)
	assert.Equal(t, DefaultMaxDisplacement, opts.MaxDisplacement)
	assert.Greater(t, opts.Workers, 0)

	bad := searchOptions(445)
	bad.Hypotheses = nil
	assert.True(t, errors.Is(bad.ValidateAndSetDefaults(), errors.ErrCodeInvalidInput))

	mismatched := searchOptions(445)
	mismatched.Hypotheses[0].Horizontal = []float64{445, 883}
	assert.True(t, errors.Is(mismatched.ValidateAndSetDefaults(), errors.ErrCodeInvalidInput))
}

func TestRunFindsLightestTower(t *testing.T) {
	res, err := Run(context.Background(), searchOptions(445))
	require.NoError(t, err)
	require.NotNil(t, res.Best)

	assert.NotEmpty(t, res.RunID)
	assert.Equal(t, StatusConverged, res.Best.Status)
	assert.Greater(t, res.Best.Weight, 0.0)
	assert.True(t, res.Best.Report.OK())
	assert.LessOrEqual(t, res.Best.MaxDisplacement, DefaultMaxDisplacement)

	// A 300 cm module admits 2..6 diagonals.
	assert.Len(t, res.Candidates, 5)
	for i, cfg := range res.Candidates {
		assert.Equal(t, i, cfg.Index)
		assert.True(t, cfg.Status.Terminal(), "candidate %d status = %s", i, cfg.Status)
	}
	sum := res.Stats.Converged + res.Stats.NonConvergent + res.Stats.Invalid
	assert.Equal(t, res.Stats.Candidates, sum)
	assert.Greater(t, res.Stats.Solves, 0)

	// No converged candidate is lighter than the selected one.
	for _, cfg := range res.Candidates {
		if cfg.Status == StatusConverged {
			assert.GreaterOrEqual(t, cfg.Weight, res.Best.Weight)
		}
	}
}

func TestRunIsDeterministic(t *testing.T) {
	a, err := Run(context.Background(), searchOptions(445))
	require.NoError(t, err)
	b, err := Run(context.Background(), searchOptions(445))
	require.NoError(t, err)

	assert.Equal(t, a.Best.Index, b.Best.Index)
	assert.Equal(t, a.Best.Weight, b.Best.Weight)
	assert.Equal(t, a.Best.Assignment, b.Best.Assignment)
}

func TestRunNoFeasibleConfiguration(t *testing.T) {
	// A load no catalog section can carry leaves every candidate failed.
	res, err := Run(context.Background(), searchOptions(1e7))
	assert.True(t, errors.Is(err, errors.ErrCodeNoFeasibleConfiguration))

	// The candidates are still returned for diagnostics.
	require.NotNil(t, res)
	assert.Nil(t, res.Best)
	assert.Len(t, res.Candidates, 5)
	assert.Equal(t, 0, res.Stats.Converged)
	for _, cfg := range res.Candidates {
		assert.NotEqual(t, StatusConverged, cfg.Status)
		if cfg.Status == StatusInvalid {
			assert.Error(t, cfg.Err)
		}
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, searchOptions(445))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBetterOrdering(t *testing.T) {
	mk := func(weight float64, bars, diagonals, index int) *Configuration {
		return &Configuration{
			Index:     index,
			Diagonals: []int{diagonals},
			Weight:    weight,
			Topology:  &truss.Topology{Bars: make([]truss.Bar, bars)},
		}
	}

	assert.True(t, better(mk(100, 8, 3, 1), nil))
	assert.True(t, better(mk(100, 8, 3, 1), mk(110, 8, 3, 0)))
	assert.False(t, better(mk(110, 8, 3, 0), mk(100, 8, 3, 1)))
	// Equal weight: fewer members win.
	assert.True(t, better(mk(100, 7, 3, 1), mk(100, 8, 3, 0)))
	// Equal members: fewer diagonals win.
	assert.True(t, better(mk(100, 8, 2, 1), mk(100, 8, 3, 0)))
	// Full tie: the earlier enumeration index wins.
	assert.False(t, better(mk(100, 8, 3, 1), mk(100, 8, 3, 0)))
}

func TestAssignmentMonotonicUpsizing(t *testing.T) {
	// Every slot of the best candidate resolves in the catalog and sits at
	// or above the weakest section admissible for its group.
	opts := searchOptions(445)
	require.NoError(t, opts.ValidateAndSetDefaults())
	engine, err := sizing.NewEngine(opts.Catalog, opts.Sizing)
	require.NoError(t, err)

	res, err := Run(context.Background(), opts)
	require.NoError(t, err)

	for key, name := range res.Best.Assignment {
		p, ok := opts.Catalog.ByName(name)
		require.True(t, ok, "slot %v resolves", key)
		weakest, ok := engine.Weakest(key.Group)
		require.True(t, ok)
		assert.GreaterOrEqual(t, p.Rank, weakest.Rank, "slot %v", key)
	}
}

func TestWeightRoundTrip(t *testing.T) {
	res, err := Run(context.Background(), searchOptions(445))
	require.NoError(t, err)
	best := res.Best

	cat := profile.Builtin()
	recomputed := 0.0
	for _, b := range best.Topology.Bars {
		name := best.Assignment[AssignKey{Module: b.Module, Group: b.Class.Group()}]
		p, ok := cat.ByName(name)
		require.True(t, ok)
		recomputed += best.Topology.Length(b) / 100.0 * p.UnitWeight
	}
	assert.InDelta(t, recomputed, best.Weight, 1e-6)
}

func TestEvaluateOne(t *testing.T) {
	cfg, err := EvaluateOne(context.Background(), searchOptions(445), []int{3})
	require.NoError(t, err)
	assert.Equal(t, StatusConverged, cfg.Status)
	assert.Equal(t, []int{3}, cfg.Diagonals)
	assert.True(t, cfg.Report.OK())

	// An out-of-range diagonal count fails the candidate, not the call.
	bad, err := EvaluateOne(context.Background(), searchOptions(445), []int{50})
	require.NoError(t, err)
	assert.Equal(t, StatusInvalid, bad.Status)
	assert.True(t, errors.Is(bad.Err, errors.ErrCodeInvalidGeometry))
}
