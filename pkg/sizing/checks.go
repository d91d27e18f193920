package sizing

import (
	"math"

	"github.com/trusspole/trusspole/pkg/errors"
	"github.com/trusspole/trusspole/pkg/profile"
	"github.com/trusspole/trusspole/pkg/truss"
)

// CheckKind names one compliance check.
type CheckKind string

const (
	CheckTension       CheckKind = "tension"
	CheckCompression   CheckKind = "compression"
	CheckSlenderness   CheckKind = "slenderness"
	CheckLocalBuckling CheckKind = "local-buckling"
	CheckBending       CheckKind = "bending"
	CheckConnection    CheckKind = "connection"
)

// Options configures an Engine. BoltDiameters is keyed by member group, cm.
type Options struct {
	BoltDiameters map[truss.ClassGroup]float64
	MinLegBolts   int
}

// DefaultBoltDiameters is the bolt layout used when none is configured:
// 5/8 in on legs, 1/2 in on bracing.
func DefaultBoltDiameters() map[truss.ClassGroup]float64 {
	return map[truss.ClassGroup]float64{
		truss.GroupLeg:        1.59,
		truss.GroupDiagonal:   1.27,
		truss.GroupHorizontal: 1.27,
	}
}

// Engine runs the member checks against one catalog and bolt layout.
type Engine struct {
	cat         *profile.Catalog
	bolts       map[truss.ClassGroup]BoltSpec
	minLegBolts int
}

// NewEngine validates the bolt layout against the catalog and builds an
// Engine.
func NewEngine(cat *profile.Catalog, opts Options) (*Engine, error) {
	if cat == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no catalog")
	}
	diameters := opts.BoltDiameters
	if diameters == nil {
		diameters = DefaultBoltDiameters()
	}
	bolts := make(map[truss.ClassGroup]BoltSpec, 3)
	for _, g := range []truss.ClassGroup{truss.GroupLeg, truss.GroupDiagonal, truss.GroupHorizontal} {
		d, ok := diameters[g]
		if !ok || d <= 0 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "no bolt diameter for %s members", g)
		}
		bolts[g] = BoltSpec{Diameter: d, Shear: cat.BoltShear}
	}
	minBolts := opts.MinLegBolts
	if minBolts == 0 {
		minBolts = DefaultMinLegBolts
	}
	e := &Engine{cat: cat, bolts: bolts, minLegBolts: minBolts}

	// Every group needs at least one admissible profile to start from.
	for g := range bolts {
		if _, ok := e.Weakest(g); !ok {
			return nil, errors.New(errors.ErrCodeInvalidCatalog,
				"no profile admits %.2f cm bolts for %s members", bolts[g].Diameter, g)
		}
	}
	return e, nil
}

// Use maps a member group onto its catalog admissibility class.
func (e *Engine) Use(g truss.ClassGroup) profile.Use {
	if g == truss.GroupLeg {
		return profile.UseLeg
	}
	return profile.UseBrace
}

// BoltDiameter returns the configured bolt diameter of the group, cm.
func (e *Engine) BoltDiameter(g truss.ClassGroup) float64 {
	return e.bolts[g].Diameter
}

// Weakest returns the lightest admissible profile for the group.
func (e *Engine) Weakest(g truss.ClassGroup) (profile.Profile, bool) {
	return e.cat.First(e.Use(g), e.bolts[g].Diameter)
}

// Stronger returns the next admissible profile above name for the group.
// The second return is false when the catalog is exhausted.
func (e *Engine) Stronger(name string, g truss.ClassGroup) (profile.Profile, bool) {
	return e.cat.NextStronger(name, e.Use(g), e.bolts[g].Diameter)
}

// Catalog returns the engine's catalog.
func (e *Engine) Catalog() *profile.Catalog { return e.cat }

// BarResult is the outcome of all checks on one bar. Utilization ratios are
// demand over design capacity, before the bracing reserve is applied.
type BarResult struct {
	Bar     truss.BarID
	Class   truss.MemberClass
	Profile string

	// Force envelope over all load cases, compression negative.
	MaxTension      float64
	TensionCase     string
	MaxCompression  float64
	CompressionCase string

	Slenderness      float64
	SlendernessLimit float64

	Utilization map[CheckKind]float64
	Connection  Connection

	Governing      CheckKind
	GoverningRatio float64
	OK             bool
}

// limit returns the admissible utilization for a check on this bar's class.
func (r *BarResult) limit(kind CheckKind) float64 {
	if (kind == CheckTension || kind == CheckCompression) && !r.Class.IsLeg() {
		return BraceReserve
	}
	return 1.0
}

// Report collects the results of one full check pass.
type Report struct {
	Bars []BarResult
}

// OK reports whether every bar passed every check.
func (r *Report) OK() bool {
	for i := range r.Bars {
		if !r.Bars[i].OK {
			return false
		}
	}
	return true
}

// Failing returns the ids of bars with at least one failed check.
func (r *Report) Failing() []truss.BarID {
	var out []truss.BarID
	for i := range r.Bars {
		if !r.Bars[i].OK {
			out = append(out, r.Bars[i].Bar)
		}
	}
	return out
}

// CaseSolution pairs a load case name with its solved state.
type CaseSolution struct {
	Case     string
	Solution *truss.Solution
}

// Check runs every compliance check on every bar, with forces taken as the
// envelope over the given solved cases. pick resolves the assigned profile
// of a bar.
func (e *Engine) Check(t *truss.Topology, pick func(truss.Bar) profile.Profile, cases []CaseSolution) (*Report, error) {
	if len(cases) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no solved cases to check")
	}
	report := &Report{Bars: make([]BarResult, 0, len(t.Bars))}
	for _, b := range t.Bars {
		report.Bars = append(report.Bars, e.checkBar(t, b, pick(b), cases))
	}
	return report, nil
}

func (e *Engine) checkBar(t *truss.Topology, b truss.Bar, p profile.Profile, cases []CaseSolution) BarResult {
	r := BarResult{
		Bar:         b.ID,
		Class:       b.Class,
		Profile:     p.Name,
		Utilization: make(map[CheckKind]float64),
	}
	for _, cs := range cases {
		n := cs.Solution.AxialForces[b.ID]
		if n > r.MaxTension {
			r.MaxTension = n
			r.TensionCase = cs.Case
		}
		if n < r.MaxCompression {
			r.MaxCompression = n
			r.CompressionCase = cs.Case
		}
	}

	group := b.Class.Group()
	fy := e.cat.Fy(p)
	fu := e.cat.Fu(p)
	boltD := e.bolts[group].Diameter
	tensionOnly := r.MaxCompression >= 0

	lr := t.UnbracedLength(b) / p.Radius(e.Use(group))
	r.SlendernessLimit = SlendernessLimit(b.Class, tensionOnly)
	if tensionOnly {
		r.Slenderness = lr
	} else {
		r.Slenderness = EffectiveSlenderness(b.Class, lr)
	}
	r.Utilization[CheckSlenderness] = r.Slenderness / r.SlendernessLimit

	if !tensionOnly {
		fcr, ok := ReducedYield(fy, p.FlatWidthRatio())
		if !ok {
			r.Utilization[CheckLocalBuckling] = p.FlatWidthRatio() / MaxFlatWidthRatio
		} else if r.Slenderness <= r.SlendernessLimit {
			cap := CompressionCapacity(fcr, r.Slenderness, p.Area)
			r.Utilization[CheckCompression] = -r.MaxCompression / cap
		}
	}

	if r.MaxTension > 0 {
		ct := CtBrace
		if b.Class.IsLeg() {
			ct = CtLeg
		}
		ae := NetEffectiveArea(p.Area, p.Thickness, p.NetHoleCount, boltD, ct)
		if ae > 0 {
			r.Utilization[CheckTension] = r.MaxTension / TensionCapacity(fy, ae)
		} else {
			r.Utilization[CheckTension] = math.Inf(1)
		}
	}

	if NeedsBendingCheck(b.Class, t.Angle(b)) {
		m := BendingMoment(t.Length(b))
		r.Utilization[CheckBending] = m / BendingCapacity(fy, p.SectionModulus)
	}

	demand := math.Max(r.MaxTension, -r.MaxCompression)
	if demand > 0 {
		minBolts := e.minLegBolts
		if p.MinBolts > minBolts {
			minBolts = p.MinBolts
		}
		r.Connection = SizeConnection(demand, e.bolts[group], p.Thickness, fu, b.Class.IsLeg(), minBolts)
		r.Utilization[CheckConnection] = r.Connection.Ratio
	}

	r.resolve()
	return r
}

// checkOrder fixes the tie-break between checks with equal normalized
// ratios, so the governing check is stable across runs.
var checkOrder = [...]CheckKind{
	CheckTension, CheckCompression, CheckSlenderness,
	CheckLocalBuckling, CheckBending, CheckConnection,
}

// resolve derives OK and the governing check from the utilization map.
func (r *BarResult) resolve() {
	r.OK = true
	for _, kind := range checkOrder {
		ratio, ok := r.Utilization[kind]
		if !ok {
			continue
		}
		norm := ratio / r.limit(kind)
		if norm > r.GoverningRatio {
			r.GoverningRatio = norm
			r.Governing = kind
		}
		if norm > 1 {
			r.OK = false
		}
	}
}
