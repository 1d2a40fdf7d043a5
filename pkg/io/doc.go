// Package io loads graphs from N-Quads and JSON-LD documents and writes them
// back as N-Quads.
//
// # Overview
//
// Parsing is delegated to [github.com/piprate/json-gold]. Every quad of
// every graph in the document is added to one [rdf.MemGraph]: the default
// graph first, then named graphs in lexical order. Graph names are dropped.
//
// # Prefixes
//
// Short names depend on the prefixes registered on the graph. N-Quads has
// no prefix syntax, so comment directives are recognised instead:
//
//	# @prefix ex: <http://example.org/> .
//	<http://example.org/a> <http://example.org/knows> <http://example.org/b> .
//
// For JSON-LD, every term of the top-level @context whose value is an IRI
// ending in '/' or '#' is registered as a prefix. [Options.Prefixes] is
// applied last and wins over both.
//
// # Export
//
// [WriteNQuads] writes the statements in the sorted order produced by
// json-gold, preceded by one directive per prefix. The output is stable for
// a given graph and is what [github.com/matzehuels/rdftree/pkg/cache]
// hashes to key cached results.
package io
