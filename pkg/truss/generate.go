package truss

import (
	"math"

	"github.com/trusspole/trusspole/pkg/errors"
)

// Diagonal count bounds per module. The lower bound keeps every module
// braced on both faces; the panel height floor and the upper cap bound the
// search space.
const (
	MinDiagonals   = 2
	MaxDiagonals   = 30
	MinPanelHeight = 50.0 // cm
)

// DiagonalRange returns the admissible diagonal counts for a module of the
// given height. ok is false when the module is too short to hold the minimum
// bracing.
func DiagonalRange(height float64) (lo, hi int, ok bool) {
	hi = int(math.Floor(height / MinPanelHeight))
	if hi > MaxDiagonals {
		hi = MaxDiagonals
	}
	if hi < MinDiagonals {
		return 0, 0, false
	}
	return MinDiagonals, hi, true
}

// Geometry is the tower outline the generator works from. Module heights run
// top-down. A zero TopWidth means a straight (untapered) pole.
type Geometry struct {
	ModuleHeights []float64
	BaseWidth     float64
	TopWidth      float64
}

// Validate checks the outline for generation.
func (g Geometry) Validate() error {
	if len(g.ModuleHeights) == 0 {
		return errors.New(errors.ErrCodeInvalidGeometry, "no modules")
	}
	for i, h := range g.ModuleHeights {
		if h <= 0 {
			return errors.New(errors.ErrCodeInvalidGeometry, "module %d has height %.1f cm", i+1, h)
		}
	}
	if g.BaseWidth <= 0 {
		return errors.New(errors.ErrCodeInvalidGeometry, "base width %.1f cm", g.BaseWidth)
	}
	if g.TopWidth < 0 || g.TopWidth > g.BaseWidth {
		return errors.New(errors.ErrCodeInvalidGeometry,
			"top width %.1f cm must be within (0, base width]", g.TopWidth)
	}
	return nil
}

// TotalHeight returns the tower height in cm.
func (g Geometry) TotalHeight() float64 {
	var h float64
	for _, m := range g.ModuleHeights {
		h += m
	}
	return h
}

func (g Geometry) widthAt(y float64) float64 {
	top := g.TopWidth
	if top == 0 {
		top = g.BaseWidth
	}
	h := g.TotalHeight()
	return g.BaseWidth + (top-g.BaseWidth)*y/h
}

// Generate builds the truss for the given outline and per-module diagonal
// counts. Each module carries a zig-zag ladder of diagonals starting on the
// right face at the module top, leg chains broken at every brace point, and
// a horizontal at the module top. The two base nodes are pinned.
func Generate(g Geometry, diagonals []int) (*Topology, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	if len(diagonals) != len(g.ModuleHeights) {
		return nil, errors.New(errors.ErrCodeInvalidGeometry,
			"%d diagonal counts for %d modules", len(diagonals), len(g.ModuleHeights))
	}
	for i, d := range diagonals {
		lo, hi, _ := DiagonalRange(g.ModuleHeights[i])
		if d < lo || d > hi {
			return nil, errors.New(errors.ErrCodeInvalidGeometry,
				"module %d: %d diagonals outside [%d, %d]", i+1, d, lo, hi)
		}
	}

	t := &Topology{
		Height:    g.TotalHeight(),
		BaseWidth: g.BaseWidth,
		TopWidth:  g.TopWidth,
	}
	if t.TopWidth == 0 {
		t.TopWidth = g.BaseWidth
	}

	addNode := func(side int, y float64) NodeID {
		id := NodeID(len(t.Nodes))
		t.Nodes = append(t.Nodes, Node{ID: id, X: float64(side) * g.widthAt(y) / 2, Y: y})
		return id
	}
	addBar := func(i, j NodeID, class MemberClass, module int) {
		t.Bars = append(t.Bars, Bar{ID: BarID(len(t.Bars)), I: i, J: j, Class: class, Module: module})
	}

	const (
		left  = -1
		right = 1
	)
	sideIdx := func(side int) int {
		if side == left {
			return 0
		}
		return 1
	}
	legClass := func(side int) MemberClass {
		if side == left {
			return LegLeft
		}
		return LegRight
	}

	// lastLeg tracks the lowest node so far on each face so leg chains can
	// be extended as brace points appear.
	var lastLeg [2]NodeID

	yTop := t.Height
	for m, h := range g.ModuleHeights {
		d := diagonals[m]
		panel := h / float64(d)

		// levels[j] holds the node on each face at level j, or -1.
		levels := make([][2]NodeID, d+1)
		for j := range levels {
			levels[j] = [2]NodeID{-1, -1}
		}

		// Module top boundary: both faces. Reuse the previous module's
		// bottom boundary except at the tower top.
		if m == 0 {
			levels[0][0] = addNode(left, yTop)
			levels[0][1] = addNode(right, yTop)
			lastLeg[0], lastLeg[1] = levels[0][0], levels[0][1]
		} else {
			levels[0][0], levels[0][1] = lastLeg[0], lastLeg[1]
		}

		// Interior brace points alternate faces, starting right.
		for j := 1; j < d; j++ {
			side := right
			if j%2 == 1 {
				side = left
			}
			y := yTop - float64(j)*panel
			id := addNode(side, y)
			levels[j][sideIdx(side)] = id
			addBar(lastLeg[sideIdx(side)], id, legClass(side), m)
			lastLeg[sideIdx(side)] = id
		}

		// Module bottom boundary: both faces.
		yBot := yTop - h
		for _, side := range []int{left, right} {
			id := addNode(side, yBot)
			levels[d][sideIdx(side)] = id
			addBar(lastLeg[sideIdx(side)], id, legClass(side), m)
			lastLeg[sideIdx(side)] = id
		}

		// Zig-zag diagonals down the module.
		for j := 0; j < d; j++ {
			from := right
			if j%2 == 1 {
				from = left
			}
			addBar(levels[j][sideIdx(from)], levels[j+1][sideIdx(-from)], Diagonal, m)
		}

		// Horizontal closing the module top.
		addBar(levels[0][0], levels[0][1], Horizontal, m)

		t.Modules = append(t.Modules, Module{
			Index:     m,
			Height:    h,
			Diagonals: d,
			TopY:      yTop,
			BottomY:   yBot,
			TopNodes:  levels[0],
		})
		yTop = yBot
	}

	// Pin the base.
	for _, id := range lastLeg {
		t.Nodes[id].Fixed = true
	}

	// Leg buckling lengths come from the built chains.
	for i := range t.Modules {
		max := 0.0
		for _, b := range t.Bars {
			if b.Module == i && b.Class.IsLeg() {
				if l := t.Length(b); l > max {
					max = l
				}
			}
		}
		t.Modules[i].LegUnbraced = max
	}

	return t, nil
}
