package sizing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trusspole/trusspole/pkg/errors"
	"github.com/trusspole/trusspole/pkg/profile"
	"github.com/trusspole/trusspole/pkg/truss"
)

// testCatalog holds a single strong section with generous bolt shear so the
// individual checks can be driven into failure one at a time.
func testCatalog(t *testing.T) *profile.Catalog {
	t.Helper()
	cat, err := profile.NewCatalog([]profile.Profile{
		{Name: "T1", Area: 5.0, RadiusX: 1.5, RadiusZ: 1.0, SectionModulus: 3.0,
			LegWidth: 6.0, Thickness: 0.8, FilletRadius: 0.8, UnitWeight: 4.0,
			MaxBoltDiameter: 1.91, NetHoleCount: 1, MinBolts: 4, LegOK: true},
	}, []profile.Material{
		{Name: "A572-50", Fy: 3515, Fu: 4570},
	}, 5000)
	require.NoError(t, err)
	return cat
}

func testEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := NewEngine(testCatalog(t), Options{BoltDiameters: map[truss.ClassGroup]float64{
		truss.GroupLeg:        1.91,
		truss.GroupDiagonal:   1.91,
		truss.GroupHorizontal: 1.91,
	}})
	require.NoError(t, err)
	return e
}

// checkTopology is one horizontal diagonal and one vertical leg sharing the
// origin node.
func checkTopology() *truss.Topology {
	return &truss.Topology{
		Nodes: []truss.Node{
			{ID: 0, X: 0, Y: 0},
			{ID: 1, X: 100, Y: 0},
			{ID: 2, X: 0, Y: 100},
		},
		Bars: []truss.Bar{
			{ID: 0, I: 0, J: 1, Class: truss.Diagonal, Module: 0},
			{ID: 1, I: 0, J: 2, Class: truss.LegRight, Module: 0},
		},
		Modules: []truss.Module{{Index: 0, LegUnbraced: 150}},
	}
}

func checkWith(t *testing.T, e *Engine, top *truss.Topology, forces map[truss.BarID]float64) *Report {
	t.Helper()
	p, _ := e.Catalog().ByName("T1")
	report, err := e.Check(top, func(truss.Bar) profile.Profile { return p }, []CaseSolution{
		{Case: "Fh(+)", Solution: &truss.Solution{AxialForces: forces}},
	})
	require.NoError(t, err)
	return report
}

func TestCheckBraceReserveGoverns(t *testing.T) {
	e := testEngine(t)
	top := checkTopology()
	p, _ := e.Catalog().ByName("T1")

	// A tension sitting at 95% of capacity passes on the leg but breaks
	// the bracing work rate cap.
	ae := NetEffectiveArea(p.Area, p.Thickness, p.NetHoleCount, 1.91, CtBrace)
	demand := 0.95 * TensionCapacity(3515, ae)
	report := checkWith(t, e, top, map[truss.BarID]float64{0: demand, 1: demand})

	brace := report.Bars[0]
	assert.False(t, brace.OK)
	assert.Equal(t, CheckTension, brace.Governing)
	assert.InDelta(t, 0.95/BraceReserve, brace.GoverningRatio, 1e-6)

	leg := report.Bars[1]
	assert.True(t, leg.OK)

	assert.False(t, report.OK())
	assert.Equal(t, []truss.BarID{0}, report.Failing())
}

func TestCheckEnvelope(t *testing.T) {
	e := testEngine(t)
	top := checkTopology()
	p, _ := e.Catalog().ByName("T1")

	report, err := e.Check(top, func(truss.Bar) profile.Profile { return p }, []CaseSolution{
		{Case: "Fh(+)", Solution: &truss.Solution{AxialForces: map[truss.BarID]float64{0: 2000, 1: -1500}}},
		{Case: "Fh(-)", Solution: &truss.Solution{AxialForces: map[truss.BarID]float64{0: -800, 1: 3000}}},
	})
	require.NoError(t, err)

	brace := report.Bars[0]
	assert.Equal(t, 2000.0, brace.MaxTension)
	assert.Equal(t, "Fh(+)", brace.TensionCase)
	assert.Equal(t, -800.0, brace.MaxCompression)
	assert.Equal(t, "Fh(-)", brace.CompressionCase)
	// Both directions present, so both axial checks ran.
	assert.Contains(t, brace.Utilization, CheckTension)
	assert.Contains(t, brace.Utilization, CheckCompression)
}

func TestCheckSlendernessFailure(t *testing.T) {
	e := testEngine(t)
	// A 250 cm bracing bar on rz = 1.0 sits over the compression cap.
	top := checkTopology()
	top.Nodes[1].X = 250

	report := checkWith(t, e, top, map[truss.BarID]float64{0: -1000, 1: -1000})
	brace := report.Bars[0]
	assert.False(t, brace.OK)
	assert.Equal(t, CheckSlenderness, brace.Governing)
	// Capacity is not evaluated past the slenderness cap.
	assert.NotContains(t, brace.Utilization, CheckCompression)
}

func TestCheckTensionOnlySlenderness(t *testing.T) {
	e := testEngine(t)
	top := checkTopology()
	top.Nodes[1].X = 250

	// The same bar in pure tension is fine under the 375 cap.
	report := checkWith(t, e, top, map[truss.BarID]float64{0: 1000, 1: 1000})
	brace := report.Bars[0]
	assert.True(t, brace.OK)
	assert.Equal(t, 250.0, brace.Slenderness)
	assert.Equal(t, MaxSlendernessTension, brace.SlendernessLimit)
}

func TestCheckConnectionGrows(t *testing.T) {
	e := testEngine(t)
	top := checkTopology()

	// A demand past one bolt's bearing capacity forces the second bolt.
	spec := BoltSpec{Diameter: 1.91, Shear: 5000}
	oneBoltBearing := Phi * spec.Diameter * 0.8 * bearingFactors[1] * 4570
	report := checkWith(t, e, top, map[truss.BarID]float64{0: oneBoltBearing * 1.1, 1: 0})

	assert.Equal(t, 2, report.Bars[0].Connection.Bolts)
	assert.True(t, report.Bars[0].Connection.OK)
}

func TestGoverningCheckStableOnTies(t *testing.T) {
	// Equal normalized ratios resolve in a fixed check order, not map order.
	for range 50 {
		r := BarResult{
			Class: truss.LegLeft,
			Utilization: map[CheckKind]float64{
				CheckSlenderness: 0.75,
				CheckBending:     0.75,
				CheckConnection:  0.75,
			},
		}
		r.resolve()
		assert.Equal(t, CheckSlenderness, r.Governing)
		assert.InDelta(t, 0.75, r.GoverningRatio, 1e-12)
		assert.True(t, r.OK)
	}
}

func TestCheckBendingOnHorizontalBrace(t *testing.T) {
	e := testEngine(t)
	top := checkTopology()
	report := checkWith(t, e, top, map[truss.BarID]float64{0: 100, 1: 100})

	// Bar 0 lies flat, bar 1 is vertical.
	assert.Contains(t, report.Bars[0].Utilization, CheckBending)
	assert.NotContains(t, report.Bars[1].Utilization, CheckBending)
}

func TestEngineProfileStepping(t *testing.T) {
	cat := profile.Builtin()
	e, err := NewEngine(cat, Options{})
	require.NoError(t, err)

	// The default 1.59 cm leg bolts skip the small sections.
	weakest, ok := e.Weakest(truss.GroupLeg)
	require.True(t, ok)
	assert.Equal(t, "L 60x60x5", weakest.Name)

	weakest, ok = e.Weakest(truss.GroupDiagonal)
	require.True(t, ok)
	assert.Equal(t, "L 40x40x3", weakest.Name)

	next, ok := e.Stronger("L 60x60x5", truss.GroupLeg)
	require.True(t, ok)
	assert.Equal(t, "L 65x65x6", next.Name)

	last := cat.Profiles()[cat.Len()-1]
	_, ok = e.Stronger(last.Name, truss.GroupLeg)
	assert.False(t, ok)
}

func TestNewEngineValidation(t *testing.T) {
	cat := testCatalog(t)

	_, err := NewEngine(nil, Options{})
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))

	_, err = NewEngine(cat, Options{BoltDiameters: map[truss.ClassGroup]float64{
		truss.GroupLeg: 1.59,
	}})
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))

	// Bolts too large for every profile leave a group unservable.
	_, err = NewEngine(cat, Options{BoltDiameters: map[truss.ClassGroup]float64{
		truss.GroupLeg:        2.5,
		truss.GroupDiagonal:   2.5,
		truss.GroupHorizontal: 2.5,
	}})
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidCatalog))
}
