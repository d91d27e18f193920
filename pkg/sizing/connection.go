package sizing

import (
	"math"
)

// Bolt group size limits.
const (
	DefaultMinLegBolts = 4
	MaxLegBolts        = 20
	MaxBraceBolts      = 2
)

// Bearing factors on Fu, in the order they are tried for every bolt group.
// The first factor assumes the tighter end distance; when bearing fails at
// it the larger end distance is detailed instead.
var bearingFactors = [...]float64{1.3 / 1.2, 1.25}

// BoltSpec describes the bolts of one connection family.
type BoltSpec struct {
	Diameter float64 // cm
	Shear    float64 // allowable shear stress Fv, kgf/cm²
}

// Area returns the bolt shank area, cm².
func (b BoltSpec) Area() float64 {
	return math.Pi * b.Diameter * b.Diameter / 4
}

// Connection is a sized bolt group.
type Connection struct {
	Bolts           int
	ShearCapacity   float64 // kgf
	BearingCapacity float64 // kgf
	Ratio           float64 // demand over governing capacity
	OK              bool
}

// Capacity returns the governing group capacity.
func (c Connection) Capacity() float64 {
	return math.Min(c.ShearCapacity, c.BearingCapacity)
}

// SizeConnection picks the smallest bolt group that carries the demand.
// Leg splices grow in pairs from the profile minimum up to MaxLegBolts;
// bracing connections use one or two bolts. Each group is tried with every
// bearing factor in order before moving to the next group size. When even
// the largest group falls short, the returned Connection carries that group
// with OK false.
func SizeConnection(demand float64, spec BoltSpec, thickness, fu float64, leg bool, minLegBolts int) Connection {
	demand = math.Abs(demand)

	start, step, max := 1, 1, MaxBraceBolts
	if leg {
		if minLegBolts < DefaultMinLegBolts {
			minLegBolts = DefaultMinLegBolts
		}
		if minLegBolts%2 == 1 {
			minLegBolts++
		}
		start, step, max = minLegBolts, 2, MaxLegBolts
	}

	var c Connection
	for n := start; n <= max; n += step {
		shear := Phi * float64(n) * spec.Area() * spec.Shear
		for _, factor := range bearingFactors {
			c = Connection{
				Bolts:           n,
				ShearCapacity:   shear,
				BearingCapacity: Phi * float64(n) * spec.Diameter * thickness * factor * fu,
			}
			if cap := c.Capacity(); cap > 0 {
				c.Ratio = demand / cap
			}
			if c.OK = c.Ratio <= 1; c.OK {
				return c
			}
		}
	}
	return c
}
