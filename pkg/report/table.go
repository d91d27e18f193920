// Package report turns search results into human and file outputs: text
// tables, workbook and PDF reports, and structural diagrams.
package report

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/trusspole/trusspole/pkg/optimize"
	"github.com/trusspole/trusspole/pkg/sizing"
	"github.com/trusspole/trusspole/pkg/truss"
)

// groupOrder fixes the display order of member groups.
var groupOrder = []truss.ClassGroup{truss.GroupLeg, truss.GroupDiagonal, truss.GroupHorizontal}

// Summary returns a condensed text block for a finished search.
func Summary(res *optimize.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "run %s\n", res.RunID)
	fmt.Fprintf(&b, "candidates: %d (%d converged, %d non-convergent, %d invalid)\n",
		res.Stats.Candidates, res.Stats.Converged, res.Stats.NonConvergent, res.Stats.Invalid)
	fmt.Fprintf(&b, "analyses: %d solves over %d iterations, %d workers, %s\n",
		res.Stats.Solves, res.Stats.Iterations, res.Stats.Workers, res.Stats.Elapsed.Round(1e6))
	if res.Best == nil {
		b.WriteString("no feasible configuration\n")
		return b.String()
	}
	fmt.Fprintf(&b, "best: #%d diagonals %v\n", res.Best.Index, res.Best.Diagonals)
	fmt.Fprintf(&b, "weight: %.1f kg in %d iterations, max displacement %.2f cm\n",
		res.Best.Weight, res.Best.Iterations, res.Best.MaxDisplacement)
	return b.String()
}

// CandidateTable lists every candidate with its outcome, in enumeration
// order.
func CandidateTable(res *optimize.Result) string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 2, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tDIAGONALS\tSTATUS\tWEIGHT (kg)\tITER\tNOTE")
	for _, cfg := range res.Candidates {
		note := ""
		if cfg.Err != nil {
			note = cfg.Err.Error()
		}
		weight := "-"
		if cfg.Weight > 0 {
			weight = fmt.Sprintf("%.1f", cfg.Weight)
		}
		fmt.Fprintf(w, "%d\t%v\t%s\t%s\t%d\t%s\n",
			cfg.Index, cfg.Diagonals, cfg.Status, weight, cfg.Iterations, note)
	}
	w.Flush()
	return b.String()
}

// MemberTable returns the full per-member sizing table of a configuration.
func MemberTable(cfg *optimize.Configuration) string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 2, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BAR\tCLASS\tMOD\tPROFILE\tL (cm)\tT (kgf)\tC (kgf)\tλ\tBOLTS\tGOVERNING\tRATIO\tOK")
	if cfg.Report == nil || cfg.Topology == nil {
		w.Flush()
		return b.String()
	}
	for i := range cfg.Report.Bars {
		r := &cfg.Report.Bars[i]
		bar := cfg.Topology.Bars[r.Bar]
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%.1f\t%.0f\t%.0f\t%.1f\t%d\t%s\t%.3f\t%s\n",
			r.Bar, r.Class, bar.Module+1, r.Profile, cfg.Topology.Length(bar),
			r.MaxTension, -r.MaxCompression, r.Slenderness,
			r.Connection.Bolts, r.Governing, r.GoverningRatio, okMark(r.OK))
	}
	w.Flush()
	return b.String()
}

// AssignmentTable lists the selected profile per module and member group.
func AssignmentTable(cfg *optimize.Configuration) string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 2, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MODULE\tGROUP\tPROFILE")
	for m := range cfg.Diagonals {
		for _, g := range groupOrder {
			if name, ok := cfg.Assignment[optimize.AssignKey{Module: m, Group: g}]; ok {
				fmt.Fprintf(w, "%d\t%s\t%s\n", m+1, g, name)
			}
		}
	}
	w.Flush()
	return b.String()
}

func okMark(ok bool) string {
	if ok {
		return "pass"
	}
	return "FAIL"
}

func governingCase(r *sizing.BarResult) string {
	switch {
	case r.Governing == sizing.CheckTension:
		return r.TensionCase
	case r.Governing == sizing.CheckCompression:
		return r.CompressionCase
	}
	return ""
}
