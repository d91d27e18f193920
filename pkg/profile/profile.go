// Package profile defines the structural section catalog used for member
// assignment and upsizing.
//
// A Catalog is an ordered table of cross-section properties. The order is the
// strength order: resizing a failing member means moving to the next entry
// that is admissible for the member's use. Catalogs are read-only once built;
// the sizing and optimization packages only ever consult them.
package profile

import (
	"sort"

	"github.com/trusspole/trusspole/pkg/errors"
)

// Use distinguishes the two admissibility classes a section can serve.
// Leg members buckle about the geometric axis (rx) and must not carry a
// local-buckling restriction; bracing members use the minimum axis (rz).
type Use int

const (
	// UseLeg marks main leg (chord) members.
	UseLeg Use = iota
	// UseBrace marks diagonal and horizontal bracing members.
	UseBrace
)

// Profile is a single cross-section record. All lengths are centimeters,
// areas cm², section moduli cm³, unit weight kg/m.
type Profile struct {
	Name           string
	Steel          string  // material name, e.g. "A572-50"
	Area           float64 // gross area Ag
	RadiusX        float64 // radius of gyration about the geometric axis
	RadiusZ        float64 // minimum radius of gyration
	SectionModulus float64 // elastic section modulus Wx
	LegWidth       float64 // flange leg width b
	Thickness      float64 // flange thickness t
	FilletRadius   float64 // rolling fillet radius
	UnitWeight     float64 // self weight per meter

	MaxBoltDiameter float64 // largest bolt the leg accommodates; 0 = unrestricted
	NetHoleCount    int     // hole diameters deducted for net section
	MinBolts        int     // minimum bolts in a leg splice
	LegOK           bool    // false when flagged unusable as a leg (local buckling)

	Rank int // position in the catalog strength order
}

// Radius returns the governing radius of gyration for the given use.
func (p Profile) Radius(use Use) float64 {
	if use == UseLeg {
		return p.RadiusX
	}
	return p.RadiusZ
}

// FlatWidthRatio returns w/t where w = b - t - fillet, the flat width of the
// flange used by the local buckling checks.
func (p Profile) FlatWidthRatio() float64 {
	if p.Thickness == 0 {
		return 0
	}
	return (p.LegWidth - p.Thickness - p.FilletRadius) / p.Thickness
}

// FitsBolt reports whether the profile accommodates a bolt of diameter d (cm).
// Profiles without a recorded maximum are treated as unrestricted.
func (p Profile) FitsBolt(d float64) bool {
	return p.MaxBoltDiameter == 0 || p.MaxBoltDiameter >= d
}

// Admissible reports whether the profile may serve the given use with the
// given bolt diameter.
func (p Profile) Admissible(use Use, boltDiameter float64) bool {
	if use == UseLeg && !p.LegOK {
		return false
	}
	return p.FitsBolt(boltDiameter)
}

// Material holds the strength properties of a steel grade, kgf/cm².
type Material struct {
	Name string
	Fy   float64 // yield stress
	Fu   float64 // ultimate stress
}

// DefaultSteel is assumed when a profile row does not name its grade.
const DefaultSteel = "A572-50"

// Catalog is an ordered, validated set of profiles plus the material table.
type Catalog struct {
	profiles  []Profile
	byName    map[string]int
	materials map[string]Material

	// BoltShear is the allowable shear stress of the bolt steel (kgf/cm²).
	BoltShear float64
}

// NewCatalog validates and orders the given profiles into a Catalog.
// Profiles are sorted into strength order (ascending unit weight, area as the
// tie-break) and assigned their Rank. A profile with zero area, section
// modulus, or thickness cannot be sized and is rejected with INVALID_CATALOG.
func NewCatalog(profiles []Profile, materials []Material, boltShear float64) (*Catalog, error) {
	if len(profiles) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidCatalog, "catalog has no profiles")
	}
	ordered := make([]Profile, len(profiles))
	copy(ordered, profiles)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].UnitWeight != ordered[j].UnitWeight {
			return ordered[i].UnitWeight < ordered[j].UnitWeight
		}
		return ordered[i].Area < ordered[j].Area
	})

	byName := make(map[string]int, len(ordered))
	for i := range ordered {
		p := &ordered[i]
		if p.Name == "" {
			return nil, errors.New(errors.ErrCodeInvalidCatalog, "profile %d has no name", i)
		}
		if p.Area <= 0 || p.SectionModulus <= 0 || p.Thickness <= 0 {
			return nil, errors.New(errors.ErrCodeInvalidCatalog,
				"profile %q has a zero section property", p.Name)
		}
		if p.RadiusX <= 0 || p.RadiusZ <= 0 || p.UnitWeight <= 0 {
			return nil, errors.New(errors.ErrCodeInvalidCatalog,
				"profile %q has a zero stiffness or weight property", p.Name)
		}
		if _, dup := byName[p.Name]; dup {
			return nil, errors.New(errors.ErrCodeInvalidCatalog, "duplicate profile %q", p.Name)
		}
		if p.Steel == "" {
			p.Steel = DefaultSteel
		}
		p.Rank = i
		byName[p.Name] = i
	}

	mats := make(map[string]Material, len(materials))
	for _, m := range materials {
		mats[m.Name] = m
	}
	if _, ok := mats[DefaultSteel]; !ok {
		return nil, errors.New(errors.ErrCodeInvalidCatalog, "material table is missing %s", DefaultSteel)
	}
	for i := range ordered {
		if _, ok := mats[ordered[i].Steel]; !ok {
			return nil, errors.New(errors.ErrCodeInvalidCatalog,
				"profile %q references unknown steel %q", ordered[i].Name, ordered[i].Steel)
		}
	}

	return &Catalog{
		profiles:  ordered,
		byName:    byName,
		materials: mats,
		BoltShear: boltShear,
	}, nil
}

// Len returns the number of profiles in the catalog.
func (c *Catalog) Len() int { return len(c.profiles) }

// Profiles returns the profiles in strength order. The slice is shared;
// callers must not modify it.
func (c *Catalog) Profiles() []Profile { return c.profiles }

// ByName looks up a profile by its name.
func (c *Catalog) ByName(name string) (Profile, bool) {
	i, ok := c.byName[name]
	if !ok {
		return Profile{}, false
	}
	return c.profiles[i], true
}

// ForUse returns the admissible profiles for the given use and bolt
// diameter, in strength order.
func (c *Catalog) ForUse(use Use, boltDiameter float64) []Profile {
	var out []Profile
	for _, p := range c.profiles {
		if p.Admissible(use, boltDiameter) {
			out = append(out, p)
		}
	}
	return out
}

// First returns the weakest admissible profile for the given use.
func (c *Catalog) First(use Use, boltDiameter float64) (Profile, bool) {
	for _, p := range c.profiles {
		if p.Admissible(use, boltDiameter) {
			return p, true
		}
	}
	return Profile{}, false
}

// NextStronger returns the next admissible profile after the named one in
// strength order. The second return is false when the catalog is exhausted,
// which marks the owning member unresizable.
func (c *Catalog) NextStronger(name string, use Use, boltDiameter float64) (Profile, bool) {
	i, ok := c.byName[name]
	if !ok {
		return Profile{}, false
	}
	for j := i + 1; j < len(c.profiles); j++ {
		if c.profiles[j].Admissible(use, boltDiameter) {
			return c.profiles[j], true
		}
	}
	return Profile{}, false
}

// Stronger reports whether profile a ranks above profile b in strength order.
func (c *Catalog) Stronger(a, b string) bool {
	ia, oka := c.byName[a]
	ib, okb := c.byName[b]
	return oka && okb && ia > ib
}

// Material returns the material record for the given profile.
func (c *Catalog) Material(p Profile) Material {
	return c.materials[p.Steel]
}

// Fy returns the yield stress of the profile's steel, kgf/cm².
func (c *Catalog) Fy(p Profile) float64 { return c.materials[p.Steel].Fy }

// Fu returns the ultimate stress of the profile's steel, kgf/cm².
func (c *Catalog) Fu(p Profile) float64 { return c.materials[p.Steel].Fu }
