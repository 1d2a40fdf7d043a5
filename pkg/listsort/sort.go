// Package listsort orders the members of a result:listItem set by the
// values they carry in the graph.
package listsort

import (
	"slices"
	"strings"

	"github.com/matzehuels/rdftree/pkg/rdf"
)

// Sort returns items ordered by their values for orderBy. When orderBy is
// the zero Node the values of every predicate are used. Items that cannot
// be told apart keep their input order. The result is reversed when
// descending is set; items is not modified.
func Sort(g rdf.Graph, items []rdf.Node, orderBy rdf.Node, descending bool) []rdf.Node {
	values := make(map[rdf.Node][]rdf.Node, len(items))
	for _, item := range items {
		if _, ok := values[item]; ok {
			continue
		}
		values[item] = valuesOf(g, item, orderBy)
	}

	out := slices.Clone(items)
	slices.SortStableFunc(out, func(a, b rdf.Node) int {
		return CompareValueSets(values[a], values[b])
	})
	if descending {
		slices.Reverse(out)
	}
	return out
}

func valuesOf(g rdf.Graph, subject, predicate rdf.Node) []rdf.Node {
	stmts := g.Statements(rdf.Pattern{Subject: subject, Predicate: predicate})
	out := make([]rdf.Node, len(stmts))
	for i, s := range stmts {
		out[i] = s.Object
	}
	return out
}

// CompareValueSets compares the value sets of two items. The union of both
// sets is walked in [CompareValues] order and the first value held by only
// one of them decides: that set sorts first.
func CompareValueSets(a, b []rdf.Node) int {
	union := make([]rdf.Node, 0, len(a)+len(b))
	union = append(union, a...)
	union = append(union, b...)
	slices.SortStableFunc(union, CompareValues)
	union = slices.CompactFunc(union, func(x, y rdf.Node) bool { return CompareValues(x, y) == 0 })

	for _, v := range union {
		inA, inB := slices.Contains(a, v), slices.Contains(b, v)
		switch {
		case inA && !inB:
			return -1
		case !inA && inB:
			return 1
		}
	}
	return 0
}

// CompareValues orders two object values: literals before resources,
// string literals before other literals, then [CompareLiterals] or the
// resource identifier.
func CompareValues(a, b rdf.Node) int {
	switch {
	case a.IsLiteral() && !b.IsLiteral():
		return -1
	case !a.IsLiteral() && b.IsLiteral():
		return 1
	case a.IsLiteral():
		sa, sb := rdf.IsStringType(a.Datatype), rdf.IsStringType(b.Datatype)
		switch {
		case sa && !sb:
			return -1
		case !sa && sb:
			return 1
		}
		return CompareLiterals(a, b)
	}
	if c := strings.Compare(a.Value, b.Value); c != 0 {
		return c
	}
	return int(a.Kind) - int(b.Kind)
}
