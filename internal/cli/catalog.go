package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/trusspole/trusspole/pkg/profile"
)

// catalogOpts holds the command-line flags for the catalog command.
type catalogOpts struct {
	path     string // profile workbook path, builtin catalog when empty
	legsOnly bool   // show only profiles admissible for legs
}

// newCatalogCmd creates the catalog command: list the profile catalog in
// strength order, the order the convergence loop upsizes through.
func newCatalogCmd() *cobra.Command {
	var opts catalogOpts

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List the profile catalog in strength order",
		Long: `Catalog prints the available angle profiles sorted by unit weight, the
order in which members are upsized during sizing. Without --path the
built-in catalog is shown.

Examples:
  trusspole catalog
  trusspole catalog --path perfis.xlsx --legs`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCatalog(&opts)
		},
	}

	cmd.Flags().StringVar(&opts.path, "path", "", "profile workbook (.xlsx)")
	cmd.Flags().BoolVar(&opts.legsOnly, "legs", false, "show only profiles admissible for legs")

	return cmd
}

func runCatalog(o *catalogOpts) error {
	cat := profile.Builtin()
	if o.path != "" {
		loaded, err := profile.LoadCatalog(o.path)
		if err != nil {
			return err
		}
		cat = loaded
	}

	rows := make([][]string, 0, cat.Len())
	for _, p := range cat.Profiles() {
		if o.legsOnly && !p.LegOK {
			continue
		}
		legs := "yes"
		if !p.LegOK {
			legs = "no"
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", p.Rank),
			p.Name,
			p.Steel,
			fmt.Sprintf("%.2f", p.Area),
			fmt.Sprintf("%.2f", p.RadiusX),
			fmt.Sprintf("%.2f", p.RadiusZ),
			fmt.Sprintf("%.3f", p.UnitWeight),
			fmt.Sprintf("%.2f", p.MaxBoltDiameter),
			legs,
		})
	}

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(colorCyan).Padding(0, 1)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "Profile", "Steel", "Area", "rx", "rz", "kg/cm", "Bolt", "Legs").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
	fmt.Println(t.Render())
	printDetail("%d profiles", len(rows))
	return nil
}
