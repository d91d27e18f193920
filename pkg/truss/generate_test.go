package truss

import (
	"math"
	"testing"

	"github.com/trusspole/trusspole/pkg/errors"
)

func TestDiagonalRange(t *testing.T) {
	tests := []struct {
		height float64
		lo, hi int
		ok     bool
	}{
		{300, 2, 6, true},
		{100, 2, 2, true},
		{99, 0, 0, false},
		{2000, 2, 30, true},
	}
	for _, tt := range tests {
		lo, hi, ok := DiagonalRange(tt.height)
		if lo != tt.lo || hi != tt.hi || ok != tt.ok {
			t.Errorf("DiagonalRange(%.0f) = %d, %d, %v; want %d, %d, %v",
				tt.height, lo, hi, ok, tt.lo, tt.hi, tt.ok)
		}
	}
}

func TestGenerateSingleModule(t *testing.T) {
	top, err := Generate(Geometry{ModuleHeights: []float64{300}, BaseWidth: 100}, []int{3})
	if err != nil {
		t.Fatal(err)
	}
	if got := len(top.Nodes); got != 6 {
		t.Errorf("nodes = %d, want 6", got)
	}
	// 4 leg bars, 3 diagonals, 1 horizontal.
	if got := len(top.Bars); got != 8 {
		t.Errorf("bars = %d, want 8", got)
	}
	if got := len(top.Supports()); got != 2 {
		t.Errorf("supports = %d, want 2", got)
	}
	count := map[MemberClass]int{}
	for _, b := range top.Bars {
		count[b.Class]++
	}
	if count[Diagonal] != 3 || count[Horizontal] != 1 {
		t.Errorf("class counts = %v", count)
	}
	if count[LegLeft]+count[LegRight] != 4 {
		t.Errorf("leg bars = %d, want 4", count[LegLeft]+count[LegRight])
	}
}

func TestGenerateSharedBoundaries(t *testing.T) {
	top, err := Generate(Geometry{ModuleHeights: []float64{300, 300}, BaseWidth: 100}, []int{2, 2})
	if err != nil {
		t.Fatal(err)
	}
	// Per module: 1 interior node + 2 bottom boundary nodes, plus the two
	// tower top nodes.
	if got := len(top.Nodes); got != 8 {
		t.Errorf("nodes = %d, want 8", got)
	}
	if top.Modules[0].BottomY != top.Modules[1].TopY {
		t.Error("module boundaries do not meet")
	}
	// The lower module's top nodes are the upper module's bottom boundary.
	for _, id := range top.Modules[1].TopNodes {
		if top.Node(id).Y != 300 {
			t.Errorf("module 2 top node at y = %.1f, want 300", top.Node(id).Y)
		}
	}
}

func TestGenerateTaper(t *testing.T) {
	top, err := Generate(Geometry{ModuleHeights: []float64{300, 300}, BaseWidth: 200, TopWidth: 100}, []int{2, 2})
	if err != nil {
		t.Fatal(err)
	}
	for _, id := range top.TopNodes() {
		if w := math.Abs(top.Node(id).X); w != 50 {
			t.Errorf("top node |x| = %.1f, want 50", w)
		}
	}
	for _, id := range top.Supports() {
		if w := math.Abs(top.Node(id).X); w != 100 {
			t.Errorf("base node |x| = %.1f, want 100", w)
		}
	}
}

func TestGenerateLegUnbraced(t *testing.T) {
	// With 2 diagonals over 300 cm the single interior brace point sits on
	// the left face, so the right leg runs the whole module unbraced.
	top, err := Generate(Geometry{ModuleHeights: []float64{300}, BaseWidth: 100}, []int{2})
	if err != nil {
		t.Fatal(err)
	}
	if got := top.Modules[0].LegUnbraced; got != 300 {
		t.Errorf("LegUnbraced = %.1f, want 300", got)
	}

	// With 4 diagonals each face is braced every other panel.
	top, err = Generate(Geometry{ModuleHeights: []float64{300}, BaseWidth: 100}, []int{4})
	if err != nil {
		t.Fatal(err)
	}
	if got := top.Modules[0].LegUnbraced; got != 150 {
		t.Errorf("LegUnbraced = %.1f, want 150", got)
	}
}

func TestGenerateRejectsBadInput(t *testing.T) {
	tests := []struct {
		name      string
		geo       Geometry
		diagonals []int
	}{
		{"no modules", Geometry{BaseWidth: 100}, nil},
		{"short module", Geometry{ModuleHeights: []float64{80}, BaseWidth: 100}, []int{2}},
		{"zero width", Geometry{ModuleHeights: []float64{300}}, []int{2}},
		{"top wider than base", Geometry{ModuleHeights: []float64{300}, BaseWidth: 100, TopWidth: 150}, []int{2}},
		{"count mismatch", Geometry{ModuleHeights: []float64{300}, BaseWidth: 100}, []int{2, 2}},
		{"too many diagonals", Geometry{ModuleHeights: []float64{300}, BaseWidth: 100}, []int{7}},
		{"too few diagonals", Geometry{ModuleHeights: []float64{300}, BaseWidth: 100}, []int{1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Generate(tt.geo, tt.diagonals); !errors.Is(err, errors.ErrCodeInvalidGeometry) {
				t.Errorf("error = %v, want INVALID_GEOMETRY", err)
			}
		})
	}
}

func TestAngle(t *testing.T) {
	top := &Topology{
		Nodes: []Node{{ID: 0}, {ID: 1, X: 100}, {ID: 2, Y: 100}},
	}
	horizontal := Bar{I: 0, J: 1}
	if got := top.Angle(horizontal); got != 0 {
		t.Errorf("horizontal angle = %.1f", got)
	}
	vertical := Bar{I: 0, J: 2}
	if got := top.Angle(vertical); got != 90 {
		t.Errorf("vertical angle = %.1f", got)
	}
	down := Bar{I: 2, J: 0}
	if got := top.Angle(down); got != 270 {
		t.Errorf("downward angle = %.1f", got)
	}
}
