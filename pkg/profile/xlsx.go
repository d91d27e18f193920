package profile

import (
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/trusspole/trusspole/pkg/errors"
)

// Workbook sheet names expected by LoadCatalog.
const (
	SheetProfiles  = "Perfis"
	SheetMaterials = "Materiais"
)

// BoltSteel is the material row whose shear stress feeds the connection
// checks.
const BoltSteel = "A394"

// LoadCatalog reads a catalog workbook from disk. The workbook carries a
// profile sheet and a material sheet; see ParseWorkbook for the layout.
func LoadCatalog(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "catalog workbook %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidCatalog, err, "open catalog workbook %s", path)
	}
	defer f.Close()
	return ParseWorkbook(f)
}

// ParseWorkbook reads a catalog from an xlsx stream. The profile sheet has a
// header row followed by one row per section; the material sheet has one row
// per steel grade with yield, ultimate, and bolt shear columns. Trailing
// blank rows are ignored.
func ParseWorkbook(r io.Reader) (*Catalog, error) {
	wb, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read xlsx workbook")
	}
	defer wb.Close()

	profRows, err := wb.GetRows(SheetProfiles)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidCatalog, err, "sheet %q", SheetProfiles)
	}
	profiles, err := parseProfileRows(profRows)
	if err != nil {
		return nil, err
	}

	matRows, err := wb.GetRows(SheetMaterials)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidCatalog, err, "sheet %q", SheetMaterials)
	}
	materials, boltShear, err := parseMaterialRows(matRows)
	if err != nil {
		return nil, err
	}

	return NewCatalog(profiles, materials, boltShear)
}

// Profile sheet column order. Kept stable so existing catalog workbooks load
// without edits.
const (
	colName = iota
	colArea
	colRadiusX
	colRadiusZ
	colSectionModulus
	colLegWidth
	colThickness
	colFillet
	colUnitWeight
	colMaxBolt
	colHoleCount
	colMinBolts
	colNotes
	colSteel
	profileColumns = colSteel + 1
)

// legUnfitNote marks sections excluded from leg use in the workbook notes
// column.
const legUnfitNote = "flambagem local"

func parseProfileRows(rows [][]string) ([]Profile, error) {
	if len(rows) < 2 {
		return nil, errors.New(errors.ErrCodeInvalidCatalog, "profile sheet has no data rows")
	}
	var out []Profile
	for i, row := range rows[1:] {
		if blankRow(row) {
			continue
		}
		rowNum := i + 2
		if len(row) < colNotes {
			return nil, errors.New(errors.ErrCodeInvalidCatalog,
				"profile row %d has %d columns, want at least %d", rowNum, len(row), colNotes)
		}
		p := Profile{Name: strings.TrimSpace(cell(row, colName))}

		var err error
		for _, f := range []struct {
			col int
			dst *float64
		}{
			{colArea, &p.Area},
			{colRadiusX, &p.RadiusX},
			{colRadiusZ, &p.RadiusZ},
			{colSectionModulus, &p.SectionModulus},
			{colLegWidth, &p.LegWidth},
			{colThickness, &p.Thickness},
			{colFillet, &p.FilletRadius},
			{colUnitWeight, &p.UnitWeight},
			{colMaxBolt, &p.MaxBoltDiameter},
		} {
			*f.dst, err = numericCell(row, f.col, rowNum)
			if err != nil {
				return nil, err
			}
		}

		holes, err := numericCell(row, colHoleCount, rowNum)
		if err != nil {
			return nil, err
		}
		p.NetHoleCount = int(holes)
		bolts, err := numericCell(row, colMinBolts, rowNum)
		if err != nil {
			return nil, err
		}
		p.MinBolts = int(bolts)

		notes := strings.ToLower(cell(row, colNotes))
		p.LegOK = !strings.Contains(notes, legUnfitNote)
		p.Steel = strings.TrimSpace(cell(row, colSteel))

		out = append(out, p)
	}
	return out, nil
}

// Material sheet column order.
const (
	matColName = iota
	matColFy
	matColFu
	matColShear
)

func parseMaterialRows(rows [][]string) ([]Material, float64, error) {
	if len(rows) < 2 {
		return nil, 0, errors.New(errors.ErrCodeInvalidCatalog, "material sheet has no data rows")
	}
	var (
		out       []Material
		boltShear float64
	)
	for i, row := range rows[1:] {
		if blankRow(row) {
			continue
		}
		rowNum := i + 2
		name := strings.TrimSpace(cell(row, matColName))
		if name == "" {
			return nil, 0, errors.New(errors.ErrCodeInvalidCatalog, "material row %d has no name", rowNum)
		}
		fy, err := numericCell(row, matColFy, rowNum)
		if err != nil {
			return nil, 0, err
		}
		fu, err := numericCell(row, matColFu, rowNum)
		if err != nil {
			return nil, 0, err
		}
		if name == BoltSteel {
			boltShear, err = numericCell(row, matColShear, rowNum)
			if err != nil {
				return nil, 0, err
			}
			continue
		}
		out = append(out, Material{Name: name, Fy: fy, Fu: fu})
	}
	if boltShear == 0 {
		return nil, 0, errors.New(errors.ErrCodeInvalidCatalog,
			"material sheet has no %s row with a shear stress", BoltSteel)
	}
	return out, boltShear, nil
}

func cell(row []string, col int) string {
	if col >= len(row) {
		return ""
	}
	return row[col]
}

func numericCell(row []string, col, rowNum int) (float64, error) {
	raw := strings.TrimSpace(cell(row, col))
	if raw == "" {
		return 0, nil
	}
	// Workbooks saved with a comma decimal separator are common for this
	// catalog format.
	raw = strings.ReplaceAll(raw, ",", ".")
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidCatalog,
			"row %d column %d: %q is not a number", rowNum, col+1, raw)
	}
	return v, nil
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
