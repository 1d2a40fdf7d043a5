package rdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemGraphAddAndQuery(t *testing.T) {
	a, b, c := IRI("uri:a"), IRI("uri:b"), IRI("uri:c")
	g := NewMemGraph()
	g.MustAdd(a, b, c)
	g.MustAdd(a, b, Literal("x"))
	g.MustAdd(c, b, a)
	g.MustAdd(a, b, c) // duplicate

	assert.Equal(t, 3, g.Len())

	bySubject := g.Statements(Pattern{Subject: a})
	require.Len(t, bySubject, 2)
	assert.Equal(t, c, bySubject[0].Object)
	assert.Equal(t, Literal("x"), bySubject[1].Object)

	byObject := g.Statements(Pattern{Object: a})
	require.Len(t, byObject, 1)
	assert.Equal(t, c, byObject[0].Subject)

	assert.Len(t, g.Statements(Pattern{}), 3)
	assert.Len(t, g.Statements(Pattern{Predicate: b, Object: c}), 1)
	assert.Empty(t, g.Statements(Pattern{Subject: b}))
}

func TestMemGraphRejectsInvalidStatements(t *testing.T) {
	g := NewMemGraph()
	tests := []struct {
		name string
		stmt Statement
		want error
	}{
		{"literal subject", Statement{Literal("x"), IRI("uri:p"), IRI("uri:o")}, ErrInvalidSubject},
		{"blank predicate", Statement{IRI("uri:s"), Blank("p"), IRI("uri:o")}, ErrInvalidPredicate},
		{"missing object", Statement{IRI("uri:s"), IRI("uri:p"), Node{}}, ErrMissingObject},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, g.Add(tt.stmt), tt.want)
		})
	}
	assert.Zero(t, g.Len())
}

func TestMemGraphPrefixes(t *testing.T) {
	g := NewMemGraph()
	g.SetPrefix("ex", "http://example.org/")

	p, ok := g.NamespacePrefix("http://example.org/")
	assert.True(t, ok)
	assert.Equal(t, "ex", p)

	_, ok = g.NamespacePrefix("http://other.org/")
	assert.False(t, ok)

	assert.Equal(t, map[string]string{"ex": "http://example.org/"}, g.Prefixes())
	assert.Equal(t, []string{"http://example.org/"}, g.Namespaces())
}

func TestSplitIRI(t *testing.T) {
	tests := []struct {
		iri, ns, local string
	}{
		{"uri:a", "uri:", "a"},
		{"http://example.org/ns#prop", "http://example.org/ns#", "prop"},
		{"http://example.org/people/alice", "http://example.org/people/", "alice"},
		{"http://example.org/123abc", "http://example.org/123", "abc"},
		{"http://example.org/123", "http://example.org/123", ""},
		{"urn:x-local:first_name", "urn:x-local:", "first_name"},
	}
	for _, tt := range tests {
		t.Run(tt.iri, func(t *testing.T) {
			ns, local := SplitIRI(tt.iri)
			assert.Equal(t, tt.ns, ns)
			assert.Equal(t, tt.local, local)
		})
	}
}

func TestNodeString(t *testing.T) {
	assert.Equal(t, "<uri:a>", IRI("uri:a").String())
	assert.Equal(t, "_:b0", Blank("_:b0").String())
	assert.Equal(t, `"x"`, Literal("x").String())
	assert.Equal(t, `"x"@en`, LangLiteral("x", "en").String())
	assert.Equal(t, `"1"^^<`+XSDInteger+`>`, TypedLiteral("1", XSDInteger).String())
	assert.Equal(t, Literal("x"), TypedLiteral("x", ""))
}
