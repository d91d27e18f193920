package sizing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trusspole/trusspole/pkg/truss"
)

func TestEffectiveSlenderness(t *testing.T) {
	assert.Equal(t, 100.0, EffectiveSlenderness(truss.LegLeft, 100))
	assert.Equal(t, 110.0, EffectiveSlenderness(truss.Diagonal, 100))
	assert.Equal(t, 120.0, EffectiveSlenderness(truss.Diagonal, 120))
	// Beyond 120 the correction no longer applies.
	assert.Equal(t, 150.0, EffectiveSlenderness(truss.Diagonal, 150))
}

func TestSlendernessLimit(t *testing.T) {
	assert.Equal(t, MaxSlendernessLeg, SlendernessLimit(truss.LegRight, false))
	assert.Equal(t, MaxSlendernessBrace, SlendernessLimit(truss.Diagonal, false))
	assert.Equal(t, MaxSlendernessTension, SlendernessLimit(truss.Diagonal, true))
}

func TestReducedYield(t *testing.T) {
	const fy = 3515.0
	fyMPa := fy / kgfToMPa
	lim1 := 209.6 / math.Sqrt(fyMPa)
	lim2 := 377.28 / math.Sqrt(fyMPa)

	// Compact flange keeps full yield.
	fcr, ok := ReducedYield(fy, lim1-1)
	assert.True(t, ok)
	assert.Equal(t, fy, fcr)

	// Mid range reduces linearly.
	wt := (lim1 + lim2) / 2
	fcr, ok = ReducedYield(fy, wt)
	assert.True(t, ok)
	assert.InDelta(t, (1.677-0.677*wt/lim1)*fy, fcr, 1e-9)
	assert.Less(t, fcr, fy)

	// Slender flange drops to the elastic expression.
	wt = lim2 + 2
	fcr, ok = ReducedYield(fy, wt)
	assert.True(t, ok)
	assert.InDelta(t, 0.0332*math.Pi*math.Pi*truss.Elastic/(wt*wt), fcr, 1e-9)

	// Beyond the ceiling the section is unusable.
	_, ok = ReducedYield(fy, MaxFlatWidthRatio+0.1)
	assert.False(t, ok)
}

func TestCompressionCapacity(t *testing.T) {
	const fy, area = 3515.0, 5.0

	// Zero slenderness yields the full squash capacity.
	assert.InDelta(t, Phi*fy*area, CompressionCapacity(fy, 0, area), 1e-9)

	// At the transition slenderness both branches agree at half yield.
	cc := math.Pi * math.Sqrt(2*truss.Elastic/fy)
	assert.InDelta(t, Phi*0.5*fy*area, CompressionCapacity(fy, cc, area), 1e-6)

	// Past it the capacity is elastic buckling.
	lambda := cc + 40
	want := Phi * math.Pi * math.Pi * truss.Elastic / (lambda * lambda) * area
	assert.InDelta(t, want, CompressionCapacity(fy, lambda, area), 1e-6)
}

func TestNetEffectiveArea(t *testing.T) {
	// One 1.27 cm bolt through a 0.5 cm flange.
	got := NetEffectiveArea(5.0, 0.5, 1, 1.27, CtBrace)
	want := (5.0 - (1.27+HoleClearance)*0.5) * 0.9
	assert.InDelta(t, want, got, 1e-9)

	// The net area never goes negative.
	assert.Equal(t, 0.0, NetEffectiveArea(0.5, 1.0, 2, 1.91, CtLeg))
}

func TestBending(t *testing.T) {
	assert.Equal(t, 100.0*120/4, BendingMoment(120))
	assert.Equal(t, Phi*3.05*3515, BendingCapacity(3515, 3.05))
}

func TestNeedsBendingCheck(t *testing.T) {
	tests := []struct {
		class truss.MemberClass
		angle float64
		want  bool
	}{
		{truss.Horizontal, 0, true},
		{truss.Diagonal, 30, true},
		{truss.Diagonal, 45, true},
		{truss.Diagonal, 60, false},
		{truss.Diagonal, 90, false},
		{truss.Diagonal, 180, true},
		{truss.Diagonal, 300, false},
		{truss.Diagonal, 350, true},
		{truss.LegLeft, 0, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NeedsBendingCheck(tt.class, tt.angle),
			"class %s angle %.0f", tt.class, tt.angle)
	}
}
