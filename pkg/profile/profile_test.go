package profile

import (
	"testing"

	"github.com/trusspole/trusspole/pkg/errors"
)

func TestBuiltinOrdering(t *testing.T) {
	cat := Builtin()
	if cat.Len() == 0 {
		t.Fatal("builtin catalog is empty")
	}
	prev := 0.0
	for i, p := range cat.Profiles() {
		if p.Rank != i {
			t.Errorf("profile %q has rank %d, want %d", p.Name, p.Rank, i)
		}
		if p.UnitWeight < prev {
			t.Errorf("profile %q breaks the weight ordering: %.2f < %.2f", p.Name, p.UnitWeight, prev)
		}
		prev = p.UnitWeight
	}
}

func TestForUseLegExcludesFlagged(t *testing.T) {
	cat := Builtin()
	for _, p := range cat.ForUse(UseLeg, 1.27) {
		if !p.LegOK {
			t.Errorf("ForUse(UseLeg) returned %q, flagged unusable as a leg", p.Name)
		}
	}
	// The flagged section must still be admissible as a brace.
	found := false
	for _, p := range cat.ForUse(UseBrace, 1.27) {
		if p.Name == "L 50x50x3" {
			found = true
		}
	}
	if !found {
		t.Error("ForUse(UseBrace) dropped L 50x50x3")
	}
}

func TestForUseBoltFilter(t *testing.T) {
	cat := Builtin()
	for _, p := range cat.ForUse(UseBrace, 1.91) {
		if p.MaxBoltDiameter < 1.91 {
			t.Errorf("profile %q admits at most %.2f cm bolts, got it for 1.91", p.Name, p.MaxBoltDiameter)
		}
	}
}

func TestNextStronger(t *testing.T) {
	cat := Builtin()

	next, ok := cat.NextStronger("L 45x45x3", UseLeg, 1.27)
	if !ok {
		t.Fatal("NextStronger returned no profile")
	}
	// L 50x50x3 is flagged for legs, so the step lands on L 50x50x5.
	if next.Name != "L 50x50x5" {
		t.Errorf("NextStronger = %q, want L 50x50x5", next.Name)
	}

	strongest := cat.Profiles()[cat.Len()-1]
	if _, ok := cat.NextStronger(strongest.Name, UseBrace, 1.27); ok {
		t.Error("NextStronger past the strongest profile should report exhaustion")
	}
	if _, ok := cat.NextStronger("no such profile", UseBrace, 1.27); ok {
		t.Error("NextStronger with an unknown name should report exhaustion")
	}
}

func TestFirst(t *testing.T) {
	cat := Builtin()
	p, ok := cat.First(UseBrace, 1.27)
	if !ok || p.Name != "L 40x40x3" {
		t.Errorf("First(UseBrace) = %q, %v; want L 40x40x3, true", p.Name, ok)
	}
}

func TestFlatWidthRatio(t *testing.T) {
	p := Profile{LegWidth: 5.0, Thickness: 0.5, FilletRadius: 0.7}
	got := p.FlatWidthRatio()
	want := (5.0 - 0.5 - 0.7) / 0.5
	if got != want {
		t.Errorf("FlatWidthRatio = %.3f, want %.3f", got, want)
	}
}

func TestMaterialLookup(t *testing.T) {
	cat := Builtin()
	p, _ := cat.ByName("L 60x60x5")
	if fy := cat.Fy(p); fy != 3515 {
		t.Errorf("Fy = %.0f, want 3515", fy)
	}
	if fu := cat.Fu(p); fu != 4570 {
		t.Errorf("Fu = %.0f, want 4570", fu)
	}
}

func TestNewCatalogValidation(t *testing.T) {
	mats := []Material{{Name: DefaultSteel, Fy: 3515, Fu: 4570}}
	valid := Profile{Name: "L 40x40x3", Area: 2.35, RadiusX: 1.23, RadiusZ: 0.79,
		SectionModulus: 1.26, LegWidth: 4, Thickness: 0.3, UnitWeight: 1.84, LegOK: true}

	tests := []struct {
		name     string
		profiles []Profile
	}{
		{"empty", nil},
		{"zero area", []Profile{func() Profile { p := valid; p.Area = 0; return p }()}},
		{"zero modulus", []Profile{func() Profile { p := valid; p.SectionModulus = 0; return p }()}},
		{"zero radius", []Profile{func() Profile { p := valid; p.RadiusZ = 0; return p }()}},
		{"duplicate name", []Profile{valid, valid}},
		{"unknown steel", []Profile{func() Profile { p := valid; p.Steel = "X99"; return p }()}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCatalog(tt.profiles, mats, 1900)
			if !errors.Is(err, errors.ErrCodeInvalidCatalog) {
				t.Errorf("NewCatalog error = %v, want INVALID_CATALOG", err)
			}
		})
	}
}

func TestParseProfileRows(t *testing.T) {
	rows := [][]string{
		{"Perfil", "A", "rx", "rz", "Wx", "b", "t", "raio", "Peso", "D max", "Furos", "Np min", "Notas", "Aço"},
		{"L 50x50x3", "2,96", "1.55", "0.99", "1.97", "5.0", "0.3", "0.7", "2.33", "1.27", "1", "4",
			"Não usar em montante (Flambagem Local)", "A572-50"},
		{"", "", ""},
		{"L 60x60x5", "5.82", "1.82", "1.17", "4.45", "6.0", "0.5", "0.8", "4.57", "1.59", "1", "4", "", ""},
	}
	profiles, err := parseProfileRows(rows)
	if err != nil {
		t.Fatalf("parseProfileRows: %v", err)
	}
	if len(profiles) != 2 {
		t.Fatalf("parsed %d profiles, want 2", len(profiles))
	}
	if profiles[0].LegOK {
		t.Error("local buckling note should clear LegOK")
	}
	if profiles[0].Area != 2.96 {
		t.Errorf("comma decimal not parsed: Area = %v", profiles[0].Area)
	}
	if !profiles[1].LegOK {
		t.Error("unflagged profile should keep LegOK")
	}
}

func TestParseProfileRowsBadNumber(t *testing.T) {
	rows := [][]string{
		{"Perfil", "A", "rx", "rz", "Wx", "b", "t", "raio", "Peso", "D max", "Furos", "Np min", "Notas"},
		{"L 40x40x3", "abc", "1.23", "0.79", "1.26", "4.0", "0.3", "0.6", "1.84", "1.27", "1", "4", ""},
	}
	if _, err := parseProfileRows(rows); !errors.Is(err, errors.ErrCodeInvalidCatalog) {
		t.Errorf("error = %v, want INVALID_CATALOG", err)
	}
}

func TestParseMaterialRows(t *testing.T) {
	rows := [][]string{
		{"Material", "fy", "fu", "fc"},
		{"A572-50", "3515", "4570", ""},
		{"A394", "", "", "1900"},
	}
	mats, shear, err := parseMaterialRows(rows)
	if err != nil {
		t.Fatalf("parseMaterialRows: %v", err)
	}
	if len(mats) != 1 || mats[0].Fy != 3515 {
		t.Errorf("materials = %+v, want one A572-50 row", mats)
	}
	if shear != 1900 {
		t.Errorf("bolt shear = %v, want 1900", shear)
	}
}

func TestParseMaterialRowsMissingBoltSteel(t *testing.T) {
	rows := [][]string{
		{"Material", "fy", "fu", "fc"},
		{"A572-50", "3515", "4570", ""},
	}
	if _, _, err := parseMaterialRows(rows); !errors.Is(err, errors.ErrCodeInvalidCatalog) {
		t.Errorf("error = %v, want INVALID_CATALOG", err)
	}
}
