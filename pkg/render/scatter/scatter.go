// Package scatter renders a computed layout as a quick SVG preview.
//
// Positions are passed to Graphviz as fixed coordinates (neato -n), so
// the preview shows exactly the geometry the layout engine produced.
// This is a debugging aid, not the product canvas.
package scatter

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/jpmoo/thoughtlands-sub000/pkg/canvas"
)

// Options configures the preview.
type Options struct {
	// Scale divides canvas coordinates down to Graphviz points.
	// Zero means the default of 4.
	Scale float64

	// ShowCards includes card anchors in the preview.
	ShowCards bool
}

// ToDOT converts a layout to Graphviz DOT with pinned node positions.
// The resulting DOT string is rendered with [RenderSVG].
func ToDOT(l canvas.Layout, opts Options) string {
	scale := opts.Scale
	if scale == 0 {
		scale = 4
	}

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=12, fixedsize=true, width=0.8];\n")
	buf.WriteString("\n")

	// Stable output: sort ids so identical layouts produce identical DOT.
	ids := make([]string, 0, len(l.Positions))
	for id := range l.Positions {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	for _, id := range ids {
		p := l.Positions[id]
		fmt.Fprintf(&buf, "  %q [pos=\"%.2f,%.2f!\"];\n", id, p.X/scale, p.Y/scale)
	}

	if opts.ShowCards {
		buf.WriteString("\n")
		for _, c := range l.Cards {
			label := c.Kind
			if c.Text != "" {
				label = c.Text
			}
			fmt.Fprintf(&buf, "  %q [pos=\"%.2f,%.2f!\", shape=note, fillcolor=lightyellow, label=%q];\n",
				c.ID, c.Anchor.X/scale, c.Anchor.Y/scale, truncate(label, 40))
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders a DOT graph to SVG using Graphviz with the neato
// engine, which honors the pinned positions.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

// Preview is a convenience wrapper: layout in, SVG out.
func Preview(ctx context.Context, l canvas.Layout, opts Options) ([]byte, error) {
	return RenderSVG(ctx, ToDOT(l, opts))
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="(-?[0-9.]+)\s+(-?[0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the svg tag so the preview scales to its
// container instead of using Graphviz's absolute size.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return strings.TrimSpace(s[:n]) + "..."
}
