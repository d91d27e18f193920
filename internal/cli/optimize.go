package cli

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/spf13/cobra"

	"github.com/trusspole/trusspole/pkg/errors"
	"github.com/trusspole/trusspole/pkg/observability"
	"github.com/trusspole/trusspole/pkg/optimize"
	"github.com/trusspole/trusspole/pkg/report"
)

// optimizeOpts holds the command-line flags for the optimize command.
type optimizeOpts struct {
	config      string // run configuration path
	workers     int    // parallel evaluation override
	iterations  int    // convergence cap override
	xlsxOut     string // workbook output path
	pdfOut      string // pdf report output path
	full        bool   // print the full member table
	interactive bool   // browse candidates in a TUI
}

// newOptimizeCmd creates the optimize command: enumerate every bracing
// configuration, converge each under its own weight, and select the
// lightest compliant tower.
func newOptimizeCmd() *cobra.Command {
	var opts optimizeOpts

	cmd := &cobra.Command{
		Use:   "optimize",
		Short: "Search every bracing configuration for the lightest tower",
		Long: `Optimize enumerates all admissible per-module diagonal counts, runs the
self weight convergence loop on each candidate in parallel, and selects the
lightest configuration whose members all pass the code checks.

Examples:
  trusspole optimize -c tower.toml
  trusspole optimize -c tower.toml --xlsx result.xlsx --pdf report.pdf
  trusspole optimize -c tower.toml --interactive`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOptimize(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.config, "config", "c", "", "run configuration file (required)")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "parallel workers (default: GOMAXPROCS)")
	cmd.Flags().IntVar(&opts.iterations, "max-iterations", 0, "convergence iteration cap")
	cmd.Flags().StringVar(&opts.xlsxOut, "xlsx", "", "write the result workbook to this path")
	cmd.Flags().StringVar(&opts.pdfOut, "pdf", "", "write the PDF report to this path")
	cmd.Flags().BoolVar(&opts.full, "full", false, "print the full member table")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "browse candidates interactively")
	_ = cmd.MarkFlagRequired("config")

	return cmd
}

func runOptimize(ctx context.Context, o *optimizeOpts) error {
	logger := loggerFromContext(ctx)

	cfg, err := LoadConfig(o.config)
	if err != nil {
		return err
	}
	sopts, err := cfg.Options()
	if err != nil {
		return err
	}
	if o.workers > 0 {
		sopts.Workers = o.workers
	}
	if o.iterations > 0 {
		sopts.MaxIterations = o.iterations
	}

	total, err := optimize.SearchSpace(sopts.Geometry)
	if err != nil {
		return err
	}
	logger.Debugf("search space: %d candidates", total)

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Evaluating 0/%d configurations", total))
	observability.SetSearchHooks(&spinnerHooks{spinner: spinner, total: total})
	defer observability.Reset()
	spinner.Start()

	p := newProgress(logger)
	res, err := optimize.Run(ctx, sopts)
	spinner.Stop()
	if err != nil {
		if errors.Is(err, errors.ErrCodeNoFeasibleConfiguration) && res != nil {
			printError("No feasible configuration")
			printNewline()
			fmt.Print(report.CandidateTable(res))
		}
		return err
	}
	p.done(fmt.Sprintf("Evaluated %d configurations", res.Stats.Candidates))

	best := res.Best
	printSuccess("Best configuration #%d, diagonals %v", best.Index, best.Diagonals)
	printKeyValue("weight", fmt.Sprintf("%.1f kg", best.Weight))
	printKeyValue("iterations", fmt.Sprintf("%d", best.Iterations))
	printKeyValue("displacement", fmt.Sprintf("%.2f cm", best.MaxDisplacement))
	printSearchStats(res.Stats)
	printNewline()

	fmt.Print(report.AssignmentTable(best))
	if o.full {
		printNewline()
		fmt.Print(report.MemberTable(best))
	}

	if o.xlsxOut != "" {
		if err := report.WriteXLSX(res, o.xlsxOut); err != nil {
			return err
		}
		printFile(o.xlsxOut)
	}
	if o.pdfOut != "" {
		if err := report.WritePDF(res, o.pdfOut); err != nil {
			return err
		}
		printFile(o.pdfOut)
	}

	if o.interactive {
		return browseCandidates(res)
	}
	return nil
}

// spinnerHooks feeds candidate completion counts into the spinner line.
type spinnerHooks struct {
	observability.NoopSearchHooks

	spinner *Spinner
	total   int
	done    atomic.Int64
}

func (h *spinnerHooks) OnConfigurationComplete(_ context.Context, _ int, _ string, _ float64, _ time.Duration, _ error) {
	n := h.done.Add(1)
	h.spinner.SetMessage(fmt.Sprintf("Evaluating %d/%d configurations", n, h.total))
}
