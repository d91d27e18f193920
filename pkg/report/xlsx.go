package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/trusspole/trusspole/pkg/errors"
	"github.com/trusspole/trusspole/pkg/optimize"
)

// Workbook sheet names.
const (
	sheetSummary    = "Resumo"
	sheetMembers    = "Barras"
	sheetCandidates = "Candidatos"
)

// WriteXLSX writes the full result workbook: a summary sheet, the member
// sizing table of the best configuration, and one row per candidate.
func WriteXLSX(res *optimize.Result, path string) error {
	wb := excelize.NewFile()
	defer wb.Close()

	if err := writeSummarySheet(wb, res); err != nil {
		return err
	}
	if res.Best != nil {
		if err := writeMemberSheet(wb, res.Best); err != nil {
			return err
		}
	}
	if err := writeCandidateSheet(wb, res); err != nil {
		return err
	}
	// Drop the default sheet excelize creates.
	wb.DeleteSheet("Sheet1")

	if err := wb.SaveAs(path); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write workbook %s", path)
	}
	return nil
}

func writeSummarySheet(wb *excelize.File, res *optimize.Result) error {
	if _, err := wb.NewSheet(sheetSummary); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "sheet %s", sheetSummary)
	}
	rows := [][]any{
		{"Run", res.RunID},
		{"Candidates", res.Stats.Candidates},
		{"Converged", res.Stats.Converged},
		{"Non-convergent", res.Stats.NonConvergent},
		{"Invalid", res.Stats.Invalid},
		{"Solves", res.Stats.Solves},
		{"Workers", res.Stats.Workers},
		{"Elapsed", res.Stats.Elapsed.String()},
	}
	if res.Best != nil {
		rows = append(rows,
			[]any{"Best", res.Best.Index},
			[]any{"Diagonals", fmt.Sprint(res.Best.Diagonals)},
			[]any{"Weight (kg)", res.Best.Weight},
			[]any{"Iterations", res.Best.Iterations},
			[]any{"Max displacement (cm)", res.Best.MaxDisplacement},
		)
	}
	return writeRows(wb, sheetSummary, rows)
}

func writeMemberSheet(wb *excelize.File, cfg *optimize.Configuration) error {
	if _, err := wb.NewSheet(sheetMembers); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "sheet %s", sheetMembers)
	}
	rows := [][]any{{
		"Barra", "Classe", "Módulo", "Perfil", "L (cm)",
		"T (kgf)", "C (kgf)", "Caso", "λ", "λ lim", "Parafusos",
		"Verificação", "Taxa", "Situação",
	}}
	for i := range cfg.Report.Bars {
		r := &cfg.Report.Bars[i]
		bar := cfg.Topology.Bars[r.Bar]
		rows = append(rows, []any{
			int(r.Bar), r.Class.String(), bar.Module + 1, r.Profile,
			cfg.Topology.Length(bar), r.MaxTension, -r.MaxCompression,
			governingCase(r), r.Slenderness, r.SlendernessLimit,
			r.Connection.Bolts, string(r.Governing), r.GoverningRatio, okMark(r.OK),
		})
	}
	return writeRows(wb, sheetMembers, rows)
}

func writeCandidateSheet(wb *excelize.File, res *optimize.Result) error {
	if _, err := wb.NewSheet(sheetCandidates); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "sheet %s", sheetCandidates)
	}
	rows := [][]any{{
		"#", "Diagonais", "Situação", "Peso (kg)", "Iterações", "Desloc. máx (cm)", "Observação",
	}}
	for _, cfg := range res.Candidates {
		note := ""
		if cfg.Err != nil {
			note = cfg.Err.Error()
		}
		rows = append(rows, []any{
			cfg.Index, fmt.Sprint(cfg.Diagonals), cfg.Status.String(),
			cfg.Weight, cfg.Iterations, cfg.MaxDisplacement, note,
		})
	}
	return writeRows(wb, sheetCandidates, rows)
}

func writeRows(wb *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "cell coordinates")
		}
		if err := wb.SetSheetRow(sheet, cell, &row); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "sheet %s row %d", sheet, i+1)
		}
	}
	return nil
}
