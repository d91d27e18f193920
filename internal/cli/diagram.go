package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/trusspole/trusspole/pkg/errors"
	"github.com/trusspole/trusspole/pkg/optimize"
	"github.com/trusspole/trusspole/pkg/report"
)

// diagramOpts holds the command-line flags for the diagram command.
type diagramOpts struct {
	config string // run configuration path
	out    string // output path, stdout when empty
	format string // dot or svg
}

// newDiagramCmd creates the diagram command: render the bar topology of one
// bracing configuration as Graphviz DOT or SVG.
func newDiagramCmd() *cobra.Command {
	var opts diagramOpts

	cmd := &cobra.Command{
		Use:   "diagram <diagonals>...",
		Short: "Render a bracing configuration as DOT or SVG",
		Long: `Diagram generates the truss topology for one configuration, given as the
diagonal count of each module, top module first, and renders it with true
node coordinates.

Examples:
  trusspole diagram -c tower.toml 4 5 6
  trusspole diagram -c tower.toml --format svg -o tower.svg 3 3`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			diagonals := make([]int, len(args))
			for i, a := range args {
				n, err := strconv.Atoi(a)
				if err != nil {
					return errors.New(errors.ErrCodeInvalidInput, "invalid diagonal count %q", a)
				}
				diagonals[i] = n
			}
			return runDiagram(cmd.Context(), &opts, diagonals)
		},
	}

	cmd.Flags().StringVarP(&opts.config, "config", "c", "", "run configuration file (required)")
	cmd.Flags().StringVarP(&opts.out, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVar(&opts.format, "format", "dot", "output format: dot or svg")
	_ = cmd.MarkFlagRequired("config")

	return cmd
}

func runDiagram(ctx context.Context, o *diagramOpts, diagonals []int) error {
	format := strings.ToLower(o.format)
	if format != "dot" && format != "svg" {
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q (want dot or svg)", o.format)
	}

	cfg, err := LoadConfig(o.config)
	if err != nil {
		return err
	}
	sopts, err := cfg.Options()
	if err != nil {
		return err
	}
	if len(diagonals) != len(sopts.Geometry.ModuleHeights) {
		return errors.New(errors.ErrCodeInvalidInput,
			"expected %d diagonal counts, got %d", len(sopts.Geometry.ModuleHeights), len(diagonals))
	}

	c, err := optimize.EvaluateOne(ctx, sopts, diagonals)
	if err != nil {
		return err
	}

	dot := report.ToDOT(c)
	var out []byte
	switch format {
	case "dot":
		out = []byte(dot)
	case "svg":
		out, err = report.RenderSVG(dot)
		if err != nil {
			return err
		}
	}

	if o.out == "" {
		fmt.Print(string(out))
		return nil
	}
	if err := os.WriteFile(o.out, out, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "writing %s", o.out)
	}
	printFile(o.out)
	return nil
}
