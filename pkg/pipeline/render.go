package pipeline

import (
	"context"

	"github.com/matzehuels/rdftree/pkg/errors"
	"github.com/matzehuels/rdftree/pkg/render"
	"github.com/matzehuels/rdftree/pkg/render/jsonld"
	"github.com/matzehuels/rdftree/pkg/render/nodelink"
	"github.com/matzehuels/rdftree/pkg/render/xml"
	"github.com/matzehuels/rdftree/pkg/tree"
)

// RenderTree generates output artifacts in the requested formats.
// The DOT graph and its SVG are computed at most once per call.
func RenderTree(ctx context.Context, t *tree.Tree, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	d := diagram{tree: t, opts: nodelink.Options{Detailed: opts.Detailed}}
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var (
			data []byte
			err  error
		)
		switch format {
		case FormatJSON:
			data, err = jsonld.Marshal(t, jsonld.Options{CURIEKeys: opts.CURIEKeys})
		case FormatXML:
			data = []byte(xml.Marshal(t))
		case FormatHTML:
			data = []byte(xml.MarshalHTML(t, opts.HTMLBase))
		case FormatDOT:
			data = []byte(d.dot())
		case FormatSVG:
			data, err = d.svg(ctx)
		case FormatPDF:
			if data, err = d.svg(ctx); err == nil {
				data, err = render.ToPDF(ctx, data)
			}
		case FormatPNG:
			if data, err = d.svg(ctx); err == nil {
				data, err = render.ToPNG(ctx, data, opts.PNGScale)
			}
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", format)
		}
		if err != nil {
			if errors.GetCode(err) != "" {
				return nil, err
			}
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "render %s", format)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// diagram memoizes the DOT and SVG encodings of one tree.
type diagram struct {
	tree *tree.Tree
	opts nodelink.Options

	dotSrc string
	svgOut []byte
}

func (d *diagram) dot() string {
	if d.dotSrc == "" {
		d.dotSrc = nodelink.ToDOT(d.tree, d.opts)
	}
	return d.dotSrc
}

func (d *diagram) svg(ctx context.Context) ([]byte, error) {
	if d.svgOut != nil {
		return d.svgOut, nil
	}
	out, err := nodelink.RenderSVG(ctx, d.dot())
	if err != nil {
		return nil, err
	}
	d.svgOut = out
	return out, nil
}
