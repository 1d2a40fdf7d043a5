// Package rdf provides the triple graph model consumed by the tree builder.
//
// # Overview
//
// A graph is a set of statements (subject, predicate, object) over three kinds
// of nodes: IRIs, blank nodes and literals. The rest of rdftree only ever reads
// a graph through the [Graph] interface, which supports two queries:
//
//   - [Graph.Statements] returns the statements matching a [Pattern], where a
//     zero [Node] in any position matches everything
//   - [Graph.NamespacePrefix] maps a namespace IRI to the prefix registered
//     for it, if any
//
// [MemGraph] is the in-memory implementation. It keeps statements in insertion
// order, ignores duplicates and indexes statements by subject and object:
//
//	g := rdf.NewMemGraph()
//	g.SetPrefix("ex", "http://example.org/")
//	g.Add(rdf.Statement{
//	    Subject:   rdf.IRI("http://example.org/a"),
//	    Predicate: rdf.IRI("http://example.org/name"),
//	    Object:    rdf.Literal("A"),
//	})
//
// # Nodes
//
// [Node] is a small comparable value, so nodes can be used directly as map
// keys and compared with ==. The zero value has [KindNone] and acts as the
// wildcard inside a [Pattern].
//
// # Namespaces
//
// [SplitIRI] divides an IRI into namespace and local name using the XML name
// rules: the local name is the longest trailing run of name characters that
// begins with a name start character.
package rdf
