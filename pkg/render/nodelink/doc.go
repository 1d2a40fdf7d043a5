// Package nodelink renders trees as node-link diagrams.
//
// # Overview
//
// Every branch of a canonical tree becomes a box and every edge an arrow
// labelled with the short name of its predicate. It complements the JSON and
// XML encodings when a tree has to be inspected by eye, for example to see
// which statements were suppressed by the traversal rules.
//
// # Usage
//
// Convert a tree to DOT format, then render to SVG:
//
//	dot := nodelink.ToDOT(t, nodelink.Options{Detailed: false})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PDF or PNG output, convert the SVG with the parent render package:
//
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
//
// # Styling
//
//   - resources: rounded white boxes labelled with their short name
//   - blank nodes: dotted outline, labelled "@blank"
//   - literals: grey boxes with the (shortened) lexical value
//   - inverse edges: dashed, arrow pointing at the statement's object
//   - list roots: a folder labelled "List" with unlabelled item edges
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
