// Package pkg provides the core libraries of rdftree.
//
// # Overview
//
// rdftree turns an RDF graph that marks its roots with the result
// vocabulary into a canonical tree and encodes that tree as JSON-LD, XML,
// HTML or a Graphviz diagram. The pkg directory is organized into four
// main areas:
//
//  1. Graph model - [rdf] statements and graphs, read and written by [io]
//  2. Domain logic - [result], [names], [tree] and [listsort]
//  3. Rendering - [render] and its jsonld, xml and nodelink subpackages
//  4. Infrastructure - [pipeline], [cache], [config], [store/mongo] and [observability]
//
// # Architecture
//
// The typical data flow through rdftree:
//
//	N-Quads / JSON-LD / MongoDB snapshot
//	         ↓
//	    [io] package (parse into an rdf.MemGraph)
//	         ↓
//	    [result] package (find the roots and their list)
//	         ↓
//	    [names] package (collision-free short names)
//	         ↓
//	    [tree] package (build and canonicalize the tree)
//	         ↓
//	    JSON-LD / XML / HTML / DOT / SVG / PDF / PNG
//
// # Quick Start
//
//	import (
//	    "context"
//	    "github.com/matzehuels/rdftree/pkg/io"
//	    "github.com/matzehuels/rdftree/pkg/names"
//	    "github.com/matzehuels/rdftree/pkg/result"
//	    "github.com/matzehuels/rdftree/pkg/tree"
//	    "github.com/matzehuels/rdftree/pkg/render/jsonld"
//	)
//
//	g, _ := io.Import(context.Background(), "results.nq", io.Options{})
//	vocab := result.NewVocabulary("")
//	sel, _ := result.Select(g, vocab)
//	r, _ := names.New(g, names.Options{IgnoreNamespace: vocab.Namespace})
//	t := tree.FromSelection(g, r, sel, tree.Options{IgnoreNamespace: vocab.Namespace})
//	t.Canonicalize()
//	out, _ := jsonld.Marshal(t, jsonld.Options{})
//
// The [pipeline] package wraps these steps with caching, validation and
// observability hooks and is what the CLI and the HTTP server use.
//
// [rdf]: https://pkg.go.dev/github.com/matzehuels/rdftree/pkg/rdf
// [io]: https://pkg.go.dev/github.com/matzehuels/rdftree/pkg/io
// [result]: https://pkg.go.dev/github.com/matzehuels/rdftree/pkg/result
// [names]: https://pkg.go.dev/github.com/matzehuels/rdftree/pkg/names
// [tree]: https://pkg.go.dev/github.com/matzehuels/rdftree/pkg/tree
// [listsort]: https://pkg.go.dev/github.com/matzehuels/rdftree/pkg/listsort
// [render]: https://pkg.go.dev/github.com/matzehuels/rdftree/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/rdftree/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/rdftree/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/rdftree/pkg/config
// [store/mongo]: https://pkg.go.dev/github.com/matzehuels/rdftree/pkg/store/mongo
// [observability]: https://pkg.go.dev/github.com/matzehuels/rdftree/pkg/observability
package pkg
