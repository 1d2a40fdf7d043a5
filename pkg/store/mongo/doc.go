// Package mongo stores graph snapshots in MongoDB.
//
// Each statement is one document of the statements collection, tagged with
// the snapshot name and its position so that a loaded graph keeps the
// statement order it was saved with:
//
//	{"graph": "people", "gen": "5f0c...", "seq": 0,
//	 "s": {"k": "iri", "v": "http://example.org/a"},
//	 "p": "http://example.org/knows",
//	 "o": {"k": "literal", "v": "42", "dt": "http://www.w3.org/2001/XMLSchema#integer"}}
//
// Prefixes live in a sibling collection named <collection>_prefixes. A
// third collection, <collection>_graphs, holds one document per snapshot
// naming the generation its statements and prefixes are tagged with:
//
//	{"_id": "people", "gen": "5f0c...", "statements": 42, "saved_at": ...}
//
// Saving writes a new generation before switching that document to it, so
// readers never see a half-written snapshot.
package mongo
