package io

import (
	"fmt"
	"io"
	"maps"
	"os"
	"slices"

	"github.com/piprate/json-gold/ld"

	"github.com/matzehuels/rdftree/pkg/errors"
	"github.com/matzehuels/rdftree/pkg/rdf"
)

// prefixLister is implemented by graphs that can enumerate their prefixes,
// such as [rdf.MemGraph].
type prefixLister interface {
	Prefixes() map[string]string
}

// WriteNQuads encodes every statement of g as N-Quads and writes it to w.
// Prefixes are written first as comment directives understood by
// [ReadNQuads].
func WriteNQuads(g rdf.Graph, w io.Writer) error {
	data, err := MarshalNQuads(g)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write N-Quads")
	}
	return nil
}

// MarshalNQuads returns the N-Quads encoding written by [WriteNQuads].
func MarshalNQuads(g rdf.Graph) ([]byte, error) {
	dataset := ld.NewRDFDataset()
	stmts := g.Statements(rdf.Pattern{})
	quads := make([]*ld.Quad, 0, len(stmts))
	for _, s := range stmts {
		quads = append(quads, ld.NewQuad(toLD(s.Subject), toLD(s.Predicate), toLD(s.Object), defaultGraph))
	}
	dataset.Graphs[defaultGraph] = quads

	serializer := &ld.NQuadRDFSerializer{}
	out, err := serializer.Serialize(dataset)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "serialize N-Quads")
	}
	body, ok := out.(string)
	if !ok {
		return nil, errors.New(errors.ErrCodeInternal, "unexpected N-Quads result %T", out)
	}

	var head []byte
	if pl, ok := g.(prefixLister); ok {
		prefixes := pl.Prefixes()
		for _, p := range slices.Sorted(maps.Keys(prefixes)) {
			head = fmt.Appendf(head, "# @prefix %s: <%s> .\n", p, prefixes[p])
		}
	}
	return append(head, body...), nil
}

// ExportNQuads writes g to an N-Quads file at path.
func ExportNQuads(g rdf.Graph, path string) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", path)
	}
	defer f.Close()
	return WriteNQuads(g, f)
}

func toLD(n rdf.Node) ld.Node {
	switch n.Kind {
	case rdf.KindIRI:
		return ld.NewIRI(n.Value)
	case rdf.KindBlank:
		return ld.NewBlankNode("_:" + n.Value)
	default:
		return ld.NewLiteral(n.Value, n.Datatype, n.Lang)
	}
}
