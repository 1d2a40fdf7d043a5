package io

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/piprate/json-gold/ld"

	"github.com/matzehuels/rdftree/pkg/errors"
	"github.com/matzehuels/rdftree/pkg/rdf"
)

// Format is an input serialization.
type Format string

const (
	FormatNQuads Format = "nquads"
	FormatJSONLD Format = "jsonld"
)

// defaultGraph is the key json-gold uses for the default graph.
const defaultGraph = "@default"

// Options configures graph loading.
type Options struct {
	// Format of the input. Empty means detect from the file extension.
	Format Format

	// Base resolves relative IRIs in JSON-LD documents.
	Base string

	// Prefixes maps prefix to namespace and is registered after the
	// prefixes found in the document.
	Prefixes map[string]string
}

// ParseFormat maps a user supplied format name to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "nquads", "nq", "ntriples", "nt":
		return FormatNQuads, nil
	case "jsonld", "json-ld", "json":
		return FormatJSONLD, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unknown input format %q (want nquads or jsonld)", s)
}

// FormatFromPath detects the input format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".nq", ".nt", ".nquads", ".ntriples":
		return FormatNQuads, nil
	case ".jsonld", ".json":
		return FormatJSONLD, nil
	}
	return "", errors.WithHint(
		errors.New(errors.ErrCodeInvalidFormat, "cannot detect the format of %s", path),
		"use a .nq, .nt or .jsonld extension, or pass --input-format")
}

// Import reads the graph stored at path.
func Import(ctx context.Context, path string, opts Options) (*rdf.MemGraph, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	if opts.Format == "" {
		f, err := FormatFromPath(path)
		if err != nil {
			return nil, err
		}
		opts.Format = f
	}

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "graph file %s does not exist", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()
	return Read(ctx, f, opts)
}

// Read decodes a graph from r in opts.Format. Read does not close r.
func Read(ctx context.Context, r io.Reader, opts Options) (*rdf.MemGraph, error) {
	var (
		g   *rdf.MemGraph
		err error
	)
	switch opts.Format {
	case FormatNQuads:
		g, err = ReadNQuads(r)
	case FormatJSONLD:
		g, err = ReadJSONLD(ctx, r, opts.Base)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported input format %q", opts.Format)
	}
	if err != nil {
		return nil, err
	}
	for prefix, ns := range opts.Prefixes {
		g.SetPrefix(prefix, ns)
	}
	return g, nil
}

var prefixDirective = regexp.MustCompile(`^#\s*@prefix\s+([A-Za-z_][\w.-]*)?:\s*<([^>]*)>\s*\.?\s*$`)

// ReadNQuads parses an N-Quads (or N-Triples) document.
func ReadNQuads(r io.Reader) (*rdf.MemGraph, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read N-Quads")
	}

	serializer := &ld.NQuadRDFSerializer{}
	dataset, err := serializer.Parse(string(data))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse N-Quads")
	}
	g, err := fromDataset(dataset)
	if err != nil {
		return nil, err
	}

	sc := bufio.NewScanner(strings.NewReader(string(data)))
	sc.Buffer(make([]byte, 0, 64*1024), len(data)+1)
	for sc.Scan() {
		if m := prefixDirective.FindStringSubmatch(strings.TrimSpace(sc.Text())); m != nil {
			g.SetPrefix(m[1], m[2])
		}
	}
	return g, nil
}

// ReadJSONLD converts a JSON-LD document to RDF. Remote contexts are
// fetched with the json-gold default document loader.
func ReadJSONLD(ctx context.Context, r io.Reader, base string) (*rdf.MemGraph, error) {
	var doc any
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode JSON-LD")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	proc := ld.NewJsonLdProcessor()
	opts := ld.NewJsonLdOptions(base)
	out, err := proc.ToRDF(doc, opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "convert JSON-LD to RDF")
	}
	dataset, ok := out.(*ld.RDFDataset)
	if !ok {
		return nil, errors.New(errors.ErrCodeInternal, "unexpected ToRDF result %T", out)
	}
	g, err := fromDataset(dataset)
	if err != nil {
		return nil, err
	}
	for prefix, ns := range contextPrefixes(doc) {
		g.SetPrefix(prefix, ns)
	}
	return g, nil
}

// contextPrefixes collects prefix definitions from the top-level @context.
func contextPrefixes(doc any) map[string]string {
	top, ok := doc.(map[string]any)
	if !ok {
		return nil
	}
	var contexts []any
	switch c := top["@context"].(type) {
	case map[string]any:
		contexts = append(contexts, c)
	case []any:
		contexts = c
	}

	out := make(map[string]string)
	for _, c := range contexts {
		m, ok := c.(map[string]any)
		if !ok {
			continue
		}
		for term, v := range m {
			if strings.HasPrefix(term, "@") || strings.Contains(term, ":") {
				continue
			}
			var iri string
			switch v := v.(type) {
			case string:
				iri = v
			case map[string]any:
				iri, _ = v["@id"].(string)
			}
			if strings.HasSuffix(iri, "/") || strings.HasSuffix(iri, "#") {
				out[term] = iri
			}
		}
	}
	return out
}

// fromDataset copies every quad of dataset into a new graph.
func fromDataset(dataset *ld.RDFDataset) (*rdf.MemGraph, error) {
	g := rdf.NewMemGraph()
	names := make([]string, 0, len(dataset.Graphs))
	for name := range dataset.Graphs {
		if name != defaultGraph {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	names = append([]string{defaultGraph}, names...)

	for _, name := range names {
		for _, q := range dataset.Graphs[name] {
			if q == nil {
				continue
			}
			s, err := fromLD(q.Subject)
			if err != nil {
				return nil, err
			}
			p, err := fromLD(q.Predicate)
			if err != nil {
				return nil, err
			}
			o, err := fromLD(q.Object)
			if err != nil {
				return nil, err
			}
			st := rdf.Statement{Subject: s, Predicate: p, Object: o}
			if err := g.Add(st); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "statement %s", st)
			}
		}
	}
	return g, nil
}

func fromLD(n ld.Node) (rdf.Node, error) {
	switch v := n.(type) {
	case *ld.IRI:
		return rdf.IRI(v.Value), nil
	case *ld.BlankNode:
		return rdf.Blank(v.Attribute), nil
	case *ld.Literal:
		if v.Language != "" {
			return rdf.LangLiteral(v.Value, v.Language), nil
		}
		return rdf.TypedLiteral(v.Value, v.Datatype), nil
	}
	switch {
	case n == nil:
		return rdf.Node{}, errors.New(errors.ErrCodeInvalidInput, "quad with a missing term")
	case ld.IsIRI(n):
		return rdf.IRI(n.GetValue()), nil
	case ld.IsBlankNode(n):
		return rdf.Blank(n.GetValue()), nil
	}
	return rdf.Node{}, errors.New(errors.ErrCodeInvalidInput, "unsupported term %T", n)
}
