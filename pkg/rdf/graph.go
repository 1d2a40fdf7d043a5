package rdf

import (
	"errors"
	"maps"
	"slices"
)

var (
	// ErrInvalidSubject is returned by [MemGraph.Add] when the subject is not
	// an IRI or blank node.
	ErrInvalidSubject = errors.New("statement subject must be a resource")

	// ErrInvalidPredicate is returned by [MemGraph.Add] when the predicate is
	// not an IRI.
	ErrInvalidPredicate = errors.New("statement predicate must be an IRI")

	// ErrMissingObject is returned by [MemGraph.Add] when the object is the
	// zero Node.
	ErrMissingObject = errors.New("statement object must be set")
)

// Statement is an immutable (subject, predicate, object) triple.
type Statement struct {
	Subject   Node
	Predicate Node
	Object    Node
}

// String renders the statement as an N-Triples line without the final dot.
func (s Statement) String() string {
	return s.Subject.String() + " " + s.Predicate.String() + " " + s.Object.String()
}

// Pattern selects statements. A zero Node in any position is a wildcard.
type Pattern struct {
	Subject   Node
	Predicate Node
	Object    Node
}

// Matches reports whether s satisfies the pattern.
func (p Pattern) Matches(s Statement) bool {
	return (p.Subject.IsZero() || p.Subject == s.Subject) &&
		(p.Predicate.IsZero() || p.Predicate == s.Predicate) &&
		(p.Object.IsZero() || p.Object == s.Object)
}

// Graph is the read-only view of a triple store used by the tree builder.
type Graph interface {
	// Statements returns the statements matching p in a stable order. The
	// returned slice belongs to the caller.
	Statements(p Pattern) []Statement

	// NamespacePrefix returns the prefix registered for namespace.
	NamespacePrefix(namespace string) (string, bool)
}

// MemGraph is an insertion-ordered in-memory [Graph].
//
// The zero value is not usable; create graphs with [NewMemGraph].
// A MemGraph is not safe for concurrent mutation.
type MemGraph struct {
	statements []Statement
	seen       map[Statement]struct{}
	bySubject  map[Node][]int
	byObject   map[Node][]int
	prefixes   map[string]string // namespace -> prefix
}

// NewMemGraph creates an empty graph.
func NewMemGraph() *MemGraph {
	return &MemGraph{
		seen:      make(map[Statement]struct{}),
		bySubject: make(map[Node][]int),
		byObject:  make(map[Node][]int),
		prefixes:  make(map[string]string),
	}
}

// Add inserts s. Adding a statement that is already present is a no-op.
func (g *MemGraph) Add(s Statement) error {
	if !s.Subject.IsResource() {
		return ErrInvalidSubject
	}
	if !s.Predicate.IsIRI() {
		return ErrInvalidPredicate
	}
	if s.Object.IsZero() {
		return ErrMissingObject
	}
	if _, ok := g.seen[s]; ok {
		return nil
	}
	idx := len(g.statements)
	g.statements = append(g.statements, s)
	g.seen[s] = struct{}{}
	g.bySubject[s.Subject] = append(g.bySubject[s.Subject], idx)
	g.byObject[s.Object] = append(g.byObject[s.Object], idx)
	return nil
}

// MustAdd is like [MemGraph.Add] but panics on invalid statements.
// It is intended for tests and static fixtures.
func (g *MemGraph) MustAdd(subject, predicate, object Node) *MemGraph {
	if err := g.Add(Statement{Subject: subject, Predicate: predicate, Object: object}); err != nil {
		panic(err)
	}
	return g
}

// Len returns the number of distinct statements.
func (g *MemGraph) Len() int { return len(g.statements) }

// Statements implements [Graph].
func (g *MemGraph) Statements(p Pattern) []Statement {
	var candidates []int
	switch {
	case !p.Subject.IsZero():
		candidates = g.bySubject[p.Subject]
	case !p.Object.IsZero():
		candidates = g.byObject[p.Object]
	default:
		out := make([]Statement, 0, len(g.statements))
		for _, s := range g.statements {
			if p.Matches(s) {
				out = append(out, s)
			}
		}
		return out
	}

	var out []Statement
	for _, i := range candidates {
		if s := g.statements[i]; p.Matches(s) {
			out = append(out, s)
		}
	}
	return out
}

// SetPrefix registers prefix for namespace, replacing any previous prefix.
func (g *MemGraph) SetPrefix(prefix, namespace string) {
	g.prefixes[namespace] = prefix
}

// NamespacePrefix implements [Graph].
func (g *MemGraph) NamespacePrefix(namespace string) (string, bool) {
	p, ok := g.prefixes[namespace]
	return p, ok
}

// Prefixes returns a copy of the prefix table keyed by prefix.
func (g *MemGraph) Prefixes() map[string]string {
	out := make(map[string]string, len(g.prefixes))
	for ns, p := range g.prefixes {
		out[p] = ns
	}
	return out
}

// Namespaces returns the registered namespaces in sorted order.
func (g *MemGraph) Namespaces() []string {
	return slices.Sorted(maps.Keys(g.prefixes))
}
