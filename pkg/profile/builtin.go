package profile

// Builtin returns a small equal-leg angle catalog with the A572-50 material
// table and A394 bolt shear. It backs the examples and lets the optimizer run
// without a workbook on disk.
func Builtin() *Catalog {
	profiles := []Profile{
		{Name: "L 40x40x3", Area: 2.35, RadiusX: 1.23, RadiusZ: 0.79, SectionModulus: 1.26,
			LegWidth: 4.0, Thickness: 0.3, FilletRadius: 0.6, UnitWeight: 1.84,
			MaxBoltDiameter: 1.27, NetHoleCount: 1, MinBolts: 4, LegOK: true},
		{Name: "L 45x45x3", Area: 2.66, RadiusX: 1.39, RadiusZ: 0.89, SectionModulus: 1.58,
			LegWidth: 4.5, Thickness: 0.3, FilletRadius: 0.7, UnitWeight: 2.09,
			MaxBoltDiameter: 1.27, NetHoleCount: 1, MinBolts: 4, LegOK: true},
		{Name: "L 50x50x3", Area: 2.96, RadiusX: 1.55, RadiusZ: 0.99, SectionModulus: 1.97,
			LegWidth: 5.0, Thickness: 0.3, FilletRadius: 0.7, UnitWeight: 2.33,
			MaxBoltDiameter: 1.27, NetHoleCount: 1, MinBolts: 4, LegOK: false},
		{Name: "L 50x50x5", Area: 4.80, RadiusX: 1.51, RadiusZ: 0.97, SectionModulus: 3.05,
			LegWidth: 5.0, Thickness: 0.5, FilletRadius: 0.7, UnitWeight: 3.77,
			MaxBoltDiameter: 1.27, NetHoleCount: 1, MinBolts: 4, LegOK: true},
		{Name: "L 60x60x5", Area: 5.82, RadiusX: 1.82, RadiusZ: 1.17, SectionModulus: 4.45,
			LegWidth: 6.0, Thickness: 0.5, FilletRadius: 0.8, UnitWeight: 4.57,
			MaxBoltDiameter: 1.59, NetHoleCount: 1, MinBolts: 4, LegOK: true},
		{Name: "L 65x65x6", Area: 7.53, RadiusX: 1.97, RadiusZ: 1.27, SectionModulus: 6.10,
			LegWidth: 6.5, Thickness: 0.6, FilletRadius: 0.85, UnitWeight: 5.91,
			MaxBoltDiameter: 1.59, NetHoleCount: 1, MinBolts: 4, LegOK: true},
		{Name: "L 75x75x6", Area: 8.73, RadiusX: 2.30, RadiusZ: 1.48, SectionModulus: 8.35,
			LegWidth: 7.5, Thickness: 0.6, FilletRadius: 0.9, UnitWeight: 6.85,
			MaxBoltDiameter: 1.59, NetHoleCount: 2, MinBolts: 4, LegOK: true},
		{Name: "L 75x75x8", Area: 11.40, RadiusX: 2.27, RadiusZ: 1.46, SectionModulus: 11.0,
			LegWidth: 7.5, Thickness: 0.8, FilletRadius: 0.9, UnitWeight: 8.99,
			MaxBoltDiameter: 1.91, NetHoleCount: 2, MinBolts: 4, LegOK: true},
		{Name: "L 90x90x8", Area: 13.90, RadiusX: 2.74, RadiusZ: 1.76, SectionModulus: 15.8,
			LegWidth: 9.0, Thickness: 0.8, FilletRadius: 1.0, UnitWeight: 10.90,
			MaxBoltDiameter: 1.91, NetHoleCount: 2, MinBolts: 6, LegOK: true},
		{Name: "L 100x100x10", Area: 19.20, RadiusX: 3.04, RadiusZ: 1.95, SectionModulus: 24.6,
			LegWidth: 10.0, Thickness: 1.0, FilletRadius: 1.2, UnitWeight: 15.00,
			MaxBoltDiameter: 1.91, NetHoleCount: 2, MinBolts: 6, LegOK: true},
	}
	materials := []Material{
		{Name: "A572-50", Fy: 3515, Fu: 4570},
		{Name: "A36", Fy: 2531, Fu: 4077},
	}
	cat, err := NewCatalog(profiles, materials, 1900)
	if err != nil {
		// The builtin table is validated by its own tests.
		panic(err)
	}
	return cat
}
