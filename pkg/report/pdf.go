package report

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/phpdave11/gofpdf"

	"github.com/trusspole/trusspole/pkg/errors"
	"github.com/trusspole/trusspole/pkg/optimize"
)

// WritePDF writes the result report to disk.
func WritePDF(res *optimize.Result, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create %s", path)
	}
	defer f.Close()
	return RenderPDF(res, f)
}

// RenderPDF streams the result report: the search summary, the selected
// configuration, and its member sizing table.
func RenderPDF(res *optimize.Result, w io.Writer) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Trusspole Optimization Report")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Run: %s", res.RunID))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", time.Now().Format("2006-01-02")))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Candidates: %d (%d converged, %d non-convergent, %d invalid)",
		res.Stats.Candidates, res.Stats.Converged, res.Stats.NonConvergent, res.Stats.Invalid))
	pdf.Ln(10)

	if res.Best == nil {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, "No feasible configuration found.")
	} else {
		writeBestSection(pdf, res.Best)
	}

	if err := pdf.Output(w); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "render pdf")
	}
	return nil
}

func writeBestSection(pdf *gofpdf.Fpdf, cfg *optimize.Configuration) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Selected configuration #%d", cfg.Index))
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Diagonals per module: %v", cfg.Diagonals))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Weight: %.1f kg after %d iterations", cfg.Weight, cfg.Iterations))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Max displacement: %.2f cm", cfg.MaxDisplacement))
	pdf.Ln(10)

	// Member table.
	headers := []string{"Bar", "Class", "Profile", "T (kgf)", "C (kgf)", "Gov.", "Ratio"}
	widths := []float64{12, 25, 32, 25, 25, 40, 18}

	pdf.SetFont("Helvetica", "B", 9)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 6, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for i := range cfg.Report.Bars {
		r := &cfg.Report.Bars[i]
		cells := []string{
			fmt.Sprintf("%d", r.Bar),
			r.Class.String(),
			r.Profile,
			fmt.Sprintf("%.0f", r.MaxTension),
			fmt.Sprintf("%.0f", -r.MaxCompression),
			string(r.Governing),
			fmt.Sprintf("%.3f", r.GoverningRatio),
		}
		for j, c := range cells {
			pdf.CellFormat(widths[j], 5, c, "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
	}
}
