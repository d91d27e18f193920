// Package sizing runs the code compliance checks on solved members and
// grows profiles until every check passes. Formulas follow ASCE 10-15 for
// hot-rolled equal leg angles; stresses are kgf/cm².
package sizing

import (
	"math"

	"github.com/trusspole/trusspole/pkg/truss"
)

const (
	// Phi is the resistance factor applied to every capacity.
	Phi = 0.90

	// Slenderness caps: legs, bracing in compression, tension-only members.
	MaxSlendernessLeg     = 150.0
	MaxSlendernessBrace   = 200.0
	MaxSlendernessTension = 375.0

	// MaxFlatWidthRatio is the absolute w/t ceiling; beyond it the section
	// is not usable in compression at all.
	MaxFlatWidthRatio = 25.0

	// HoleClearance is added to the bolt diameter for net section holes,
	// cm (1/8 in).
	HoleClearance = 0.3175

	// BraceReserve caps the axial utilization of bracing members, keeping
	// secondary members below full work rate.
	BraceReserve = 0.90

	// kgfToMPa converts kgf/cm² stresses for the w/t limit expressions,
	// which are written in MPa.
	kgfToMPa = 10.1972
)

// Net section efficiency factors for angles bolted through one leg.
const (
	CtLeg   = 1.0
	CtBrace = 0.9
)

// EffectiveSlenderness returns the code slenderness for a member with
// geometric slenderness lr. Bracing members connected by bolted gussets get
// the partial restraint correction for short struts; legs use lr directly.
func EffectiveSlenderness(class truss.MemberClass, lr float64) float64 {
	if class.IsLeg() {
		return lr
	}
	if lr <= 120 {
		return 60 + 0.5*lr
	}
	return lr
}

// SlendernessLimit returns the cap for the member class. tensionOnly applies
// when the member never sees compression in any load case.
func SlendernessLimit(class truss.MemberClass, tensionOnly bool) float64 {
	if tensionOnly {
		return MaxSlendernessTension
	}
	if class.IsLeg() {
		return MaxSlendernessLeg
	}
	return MaxSlendernessBrace
}

// ReducedYield returns the critical stress Fcr accounting for local flange
// buckling of the outstanding leg, given the yield stress and the flat
// width ratio w/t. ok is false when w/t exceeds the absolute ceiling.
func ReducedYield(fy, wt float64) (fcr float64, ok bool) {
	if wt > MaxFlatWidthRatio {
		return 0, false
	}
	fyMPa := fy / kgfToMPa
	lim1 := 209.6 / math.Sqrt(fyMPa)
	lim2 := 377.28 / math.Sqrt(fyMPa)
	switch {
	case wt <= lim1:
		return fy, true
	case wt <= lim2:
		return (1.677 - 0.677*wt/lim1) * fy, true
	default:
		return 0.0332 * math.Pi * math.Pi * truss.Elastic / (wt * wt), true
	}
}

// CompressionCapacity returns the design axial compression strength
// φ·Fa·Ag for the given critical stress, effective slenderness, and gross
// area.
func CompressionCapacity(fcr, lambda, area float64) float64 {
	cc := math.Pi * math.Sqrt(2*truss.Elastic/fcr)
	var fa float64
	if lambda <= cc {
		r := lambda / cc
		fa = (1 - 0.5*r*r) * fcr
	} else {
		fa = math.Pi * math.Pi * truss.Elastic / (lambda * lambda)
	}
	return Phi * fa * area
}

// NetEffectiveArea returns Ae for tension: the gross area minus the bolt
// holes, times the shear lag factor ct.
func NetEffectiveArea(area, thickness float64, holes int, boltDiameter, ct float64) float64 {
	an := area - float64(holes)*(boltDiameter+HoleClearance)*thickness
	if an < 0 {
		an = 0
	}
	return an * ct
}

// TensionCapacity returns the design axial tension strength φ·Fy·Ae.
func TensionCapacity(fy, ae float64) float64 {
	return Phi * fy * ae
}

// Erection moment on near-horizontal bracing: a 100 kgf man load at
// midspan.
const erectionLoad = 100.0

// BendingMoment returns the erection check moment for a member of the given
// length, kgf·cm.
func BendingMoment(length float64) float64 {
	return erectionLoad * length / 4
}

// BendingCapacity returns the design moment strength φ·Wx·Fy.
func BendingCapacity(fy, wx float64) float64 {
	return Phi * wx * fy
}

// NeedsBendingCheck reports whether a bar's inclination puts it in the
// near-horizontal bands that must carry the erection load. Legs are exempt.
func NeedsBendingCheck(class truss.MemberClass, angleDeg float64) bool {
	if class.IsLeg() {
		return false
	}
	switch {
	case angleDeg <= 45:
		return true
	case angleDeg >= 135 && angleDeg <= 225:
		return true
	case angleDeg >= 315:
		return true
	}
	return false
}
