// Package render turns built trees into output documents.
//
// # Overview
//
// Each subpackage renders a canonical [tree.Tree] into one encoding:
//
//   - [jsonld]: compact JSON-LD with a generated @context
//   - [xml]: indented XML and a browsable HTML page
//   - [nodelink]: Graphviz node-link diagrams (DOT and SVG)
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert a diagram SVG to other formats
// using the external rsvg-convert tool (from librsvg).
//
//	dot := nodelink.ToDOT(t, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
//
// [tree.Tree]: github.com/matzehuels/rdftree/pkg/tree.Tree
// [jsonld]: github.com/matzehuels/rdftree/pkg/render/jsonld
// [xml]: github.com/matzehuels/rdftree/pkg/render/xml
// [nodelink]: github.com/matzehuels/rdftree/pkg/render/nodelink
package render
