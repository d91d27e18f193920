package report

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/trusspole/trusspole/pkg/errors"
	"github.com/trusspole/trusspole/pkg/optimize"
	"github.com/trusspole/trusspole/pkg/truss"
)

// dotScale converts cm coordinates to Graphviz points.
const dotScale = 72.0 / 100.0

// edge colors per member class.
func classColor(c truss.MemberClass) string {
	switch c {
	case truss.Diagonal:
		return "steelblue"
	case truss.Horizontal:
		return "darkseagreen"
	default:
		return "black"
	}
}

// ToDOT renders a configuration's truss as Graphviz DOT with every node
// pinned at its true coordinates, so the diagram shows the actual geometry.
func ToDOT(cfg *optimize.Configuration) string {
	t := cfg.Topology
	var buf bytes.Buffer
	buf.WriteString("graph trusspole {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=point, width=0.06, color=black];\n")
	buf.WriteString("\n")

	for _, n := range t.Nodes {
		attrs := fmt.Sprintf("pos=\"%.2f,%.2f!\"", n.X*dotScale, n.Y*dotScale)
		if n.Fixed {
			attrs += ", shape=triangle, width=0.12, label=\"\""
		}
		fmt.Fprintf(&buf, "  n%d [%s];\n", n.ID, attrs)
	}

	buf.WriteString("\n")
	for _, b := range t.Bars {
		width := 1.0
		if b.Class.IsLeg() {
			width = 2.0
		}
		fmt.Fprintf(&buf, "  n%d -- n%d [color=%s, penwidth=%.1f];\n",
			b.I, b.J, classColor(b.Class), width)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders a DOT diagram to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render svg")
	}
	return buf.Bytes(), nil
}
