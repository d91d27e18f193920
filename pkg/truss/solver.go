package truss

import (
	"context"
	"math"
)

// NodalLoads maps nodes to applied forces {Fx, Fy} in kgf.
type NodalLoads map[NodeID][2]float64

// Add accumulates a force onto a node.
func (l NodalLoads) Add(id NodeID, fx, fy float64) {
	f := l[id]
	f[0] += fx
	f[1] += fy
	l[id] = f
}

// Merge accumulates all forces from other.
func (l NodalLoads) Merge(other NodalLoads) {
	for id, f := range other {
		l.Add(id, f[0], f[1])
	}
}

// Solution holds the linear analysis results for one load case.
type Solution struct {
	// Displacements maps free nodes to {dx, dy} in cm. Supports are absent.
	Displacements map[NodeID][2]float64
	// AxialForces maps bars to axial force in kgf, tension positive.
	AxialForces map[BarID]float64
}

// MaxDisplacement returns the largest nodal displacement magnitude in cm.
func (s *Solution) MaxDisplacement() float64 {
	max := 0.0
	for _, d := range s.Displacements {
		if v := math.Hypot(d[0], d[1]); v > max {
			max = v
		}
	}
	return max
}

// Solver computes the axial force distribution of a topology under nodal
// loads, given per-bar cross-section areas in cm². Implementations must be
// safe for concurrent use.
type Solver interface {
	Solve(ctx context.Context, t *Topology, areas map[BarID]float64, loads NodalLoads) (*Solution, error)
}
