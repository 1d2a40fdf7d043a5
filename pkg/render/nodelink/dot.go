package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/rdftree/pkg/errors"
	"github.com/matzehuels/rdftree/pkg/names"
	"github.com/matzehuels/rdftree/pkg/tree"
)

// ListLabel is the label of the synthetic root of a list tree.
const ListLabel = "List"

// maxLiteral bounds literal labels; longer values are cut with an ellipsis.
const maxLiteral = 40

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds the rdf:type and the full IRI to resource labels.
	// When false, only the short name is shown.
	Detailed bool
}

// ToDOT converts a tree to Graphviz DOT format for node-link visualization.
// The resulting DOT string can be rendered using [RenderSVG], [RenderPDF], or [RenderPNG].
//
// Nodes are numbered in canonical depth-first order. Literals are drawn as
// plain grey boxes and inverse edges are dashed and point back at their
// parent, mirroring the direction of the underlying statement.
func ToDOT(t *tree.Tree, opts Options) string {
	t.Canonicalize()

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [fontsize=18];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")

	if !t.IsEmpty() {
		w := &dotWriter{r: t.Resolver(), opts: opts}
		w.node(t.Root())
		buf.WriteString("\n")
		buf.WriteString(w.nodes.String())
		buf.WriteString("\n")
		buf.WriteString(w.edges.String())
	}

	buf.WriteString("}\n")
	return buf.String()
}

type dotWriter struct {
	r            *names.Resolver
	opts         Options
	next         int
	nodes, edges strings.Builder
}

// node writes b and its subtree and returns the DOT id of b.
func (w *dotWriter) node(b tree.Branch) string {
	id := "n" + strconv.Itoa(w.next)
	w.next++

	attrs := []string{fmt.Sprintf("label=%q", w.label(b))}
	switch {
	case b.IsList():
		attrs = append(attrs, "shape=folder")
	case b.IsLiteral():
		attrs = append(attrs, "style=filled", "fillcolor=\"#eeeeee\"", "fontcolor=\"#333333\"")
	case b.Node().IsBlank():
		attrs = append(attrs, "style=\"rounded,filled,dotted\"")
	}
	fmt.Fprintf(&w.nodes, "  %s [%s];\n", id, strings.Join(attrs, ", "))

	for _, c := range b.Children() {
		child := w.node(c)
		switch {
		case b.IsList():
			fmt.Fprintf(&w.edges, "  %s -> %s;\n", id, child)
		case c.Inverse():
			fmt.Fprintf(&w.edges, "  %s -> %s [label=%q, style=dashed, dir=back];\n", id, child, w.r.Name(c.Predicate()))
		default:
			fmt.Fprintf(&w.edges, "  %s -> %s [label=%q];\n", id, child, w.r.Name(c.Predicate()))
		}
	}
	return id
}

func (w *dotWriter) label(b tree.Branch) string {
	n := b.Node()
	switch {
	case b.IsList():
		return ListLabel
	case n.IsLiteral():
		return truncate(n.Value)
	}

	label := w.r.Name(n)
	if !w.opts.Detailed {
		return label
	}
	var parts []string
	if typ := b.Type(); !typ.IsZero() {
		parts = append(parts, "type: "+w.r.Name(typ))
	}
	if n.IsIRI() && label != n.Value {
		parts = append(parts, n.Value)
	}
	if len(parts) == 0 {
		return label
	}
	return label + "\n" + strings.Join(parts, "\n")
}

func truncate(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if r := []rune(s); len(r) > maxLiteral {
		return string(r[:maxLiteral-1]) + "…"
	}
	return s
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with render.ToPDF or render.ToPNG.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
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
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the Graphviz <svg> tag, whose width and height
// are in points, with one sized in pixels from the viewBox.
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

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
