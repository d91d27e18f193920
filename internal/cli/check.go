package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/trusspole/trusspole/pkg/errors"
	"github.com/trusspole/trusspole/pkg/optimize"
	"github.com/trusspole/trusspole/pkg/report"
)

// checkOpts holds the command-line flags for the check command.
type checkOpts struct {
	config string // run configuration path
}

// newCheckCmd creates the check command: converge and verify one fixed
// bracing configuration instead of searching the whole space.
func newCheckCmd() *cobra.Command {
	var opts checkOpts

	cmd := &cobra.Command{
		Use:   "check <diagonals>...",
		Short: "Size and verify a single bracing configuration",
		Long: `Check runs the self weight convergence loop on one configuration given as
the diagonal count of each module, top module first, and prints the sized
members with their governing checks.

Examples:
  trusspole check -c tower.toml 4 5 6
  trusspole check -c tower.toml 3 3`,
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
			return runCheck(cmd.Context(), &opts, diagonals)
		},
	}

	cmd.Flags().StringVarP(&opts.config, "config", "c", "", "run configuration file (required)")
	_ = cmd.MarkFlagRequired("config")

	return cmd
}

func runCheck(ctx context.Context, o *checkOpts, diagonals []int) error {
	logger := loggerFromContext(ctx)

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

	logger.Debugf("checking configuration %v", diagonals)
	c, err := optimize.EvaluateOne(ctx, sopts, diagonals)
	if err != nil {
		return err
	}

	style := statusStyle(c.Status)
	printKeyValue("status", style.Render(c.Status.String()))
	printKeyValue("weight", fmt.Sprintf("%.1f kg", c.Weight))
	printKeyValue("iterations", fmt.Sprintf("%d", c.Iterations))
	printKeyValue("displacement", fmt.Sprintf("%.2f cm", c.MaxDisplacement))
	printNewline()

	fmt.Print(report.AssignmentTable(c))
	printNewline()
	fmt.Print(report.MemberTable(c))

	if c.Status != optimize.StatusConverged {
		if c.Err != nil {
			return c.Err
		}
		return errors.New(errors.ErrCodeNoValidConfiguration,
			"configuration %v did not converge", diagonals)
	}
	return nil
}
