// Package truss models the planar lattice pole: its nodes, bars, and module
// stacking, plus the linear solver that turns nodal loads into axial forces.
//
// Conventions: lengths in centimeters, forces in kgf, the y axis points up
// with the base at y = 0, and modules are numbered top-down starting at 0.
package truss

import (
	"math"
)

// Elastic is the modulus of elasticity of structural steel, kgf/cm².
const Elastic = 2038894.0

// NodeID indexes a node within a Topology.
type NodeID int

// BarID indexes a bar within a Topology.
type BarID int

// ClassGroup partitions member classes for profile assignment and connection
// sizing. Both legs share one group so a module's legs always carry the same
// section.
type ClassGroup int

const (
	GroupLeg ClassGroup = iota
	GroupDiagonal
	GroupHorizontal
)

func (g ClassGroup) String() string {
	switch g {
	case GroupLeg:
		return "leg"
	case GroupDiagonal:
		return "diagonal"
	case GroupHorizontal:
		return "horizontal"
	}
	return "unknown"
}

// MemberClass identifies the structural role of a bar.
type MemberClass int

const (
	LegLeft MemberClass = iota
	LegRight
	Diagonal
	Horizontal
)

func (c MemberClass) String() string {
	switch c {
	case LegLeft:
		return "leg-left"
	case LegRight:
		return "leg-right"
	case Diagonal:
		return "diagonal"
	case Horizontal:
		return "horizontal"
	}
	return "unknown"
}

// Group returns the assignment group of the class.
func (c MemberClass) Group() ClassGroup {
	switch c {
	case LegLeft, LegRight:
		return GroupLeg
	case Diagonal:
		return GroupDiagonal
	default:
		return GroupHorizontal
	}
}

// IsLeg reports whether the class is a main leg.
func (c MemberClass) IsLeg() bool { return c == LegLeft || c == LegRight }

// Node is a joint of the truss. Fixed nodes are pinned supports.
type Node struct {
	ID    NodeID
	X, Y  float64
	Fixed bool
}

// Bar is a two-node axial member.
type Bar struct {
	ID     BarID
	I, J   NodeID
	Class  MemberClass
	Module int
}

// Module records the per-module facts the sizing checks need.
type Module struct {
	Index     int
	Height    float64
	Diagonals int
	TopY      float64
	BottomY   float64

	// LegUnbraced is the longest leg segment in the module without an
	// intermediate brace point. It governs leg buckling.
	LegUnbraced float64

	// TopNodes are the two boundary nodes at the module top, where the
	// module's share of the self weight is applied.
	TopNodes [2]NodeID
}

// Topology is an immutable generated truss.
type Topology struct {
	Nodes   []Node
	Bars    []Bar
	Modules []Module

	Height    float64
	BaseWidth float64
	TopWidth  float64
}

// Node returns the node with the given id.
func (t *Topology) Node(id NodeID) Node { return t.Nodes[id] }

// Length returns the bar length in cm.
func (t *Topology) Length(b Bar) float64 {
	ni, nj := t.Nodes[b.I], t.Nodes[b.J]
	return math.Hypot(nj.X-ni.X, nj.Y-ni.Y)
}

// Angle returns the bar inclination in degrees within [0, 360), measured
// counterclockwise from the positive x axis.
func (t *Topology) Angle(b Bar) float64 {
	ni, nj := t.Nodes[b.I], t.Nodes[b.J]
	deg := math.Atan2(nj.Y-ni.Y, nj.X-ni.X) * 180 / math.Pi
	if deg < 0 {
		deg += 360
	}
	return deg
}

// UnbracedLength returns the buckling length of the bar: legs use the
// module's longest unbraced segment, braces their own length.
func (t *Topology) UnbracedLength(b Bar) float64 {
	if b.Class.IsLeg() {
		return t.Modules[b.Module].LegUnbraced
	}
	return t.Length(b)
}

// TopNodes returns the two nodes at the tower top, where the service loads
// are applied.
func (t *Topology) TopNodes() [2]NodeID { return t.Modules[0].TopNodes }

// Supports returns the ids of the pinned base nodes.
func (t *Topology) Supports() []NodeID {
	var out []NodeID
	for _, n := range t.Nodes {
		if n.Fixed {
			out = append(out, n.ID)
		}
	}
	return out
}

// BarsInModule returns the bars assigned to module m.
func (t *Topology) BarsInModule(m int) []Bar {
	var out []Bar
	for _, b := range t.Bars {
		if b.Module == m {
			out = append(out, b)
		}
	}
	return out
}
