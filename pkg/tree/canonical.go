package tree

import (
	"slices"
	"strings"

	"github.com/matzehuels/rdftree/pkg/listsort"
)

// Canonicalize sorts the children of every branch with [Compare], depth
// first. The items of a list keep their order. Calling it again has no
// effect.
func (t *Tree) Canonicalize() {
	t.canonicalize(0)
}

func (t *Tree) canonicalize(id int) {
	for _, c := range t.branches[id].children {
		t.canonicalize(c)
	}
	if t.list && id == 0 {
		return
	}
	slices.SortStableFunc(t.branches[id].children, func(a, b int) int {
		return Compare(Branch{t: t, id: a}, Branch{t: t, id: b})
	})
}

// Compare orders two sibling branches:
//
//   - rdf:type edges first
//   - outgoing edges before inverse edges
//   - literals before resources
//   - childless resources before resources with children
//   - siblings sharing a predicate by value
//   - everything else by predicate name
func Compare(a, b Branch) int {
	if c := compareFlags(a.IsTypeEdge(), b.IsTypeEdge()); c != 0 {
		return c
	}
	if a.IsTypeEdge() {
		return 0
	}
	if c := compareFlags(!a.Inverse(), !b.Inverse()); c != 0 {
		return c
	}
	if c := compareFlags(a.IsLiteral(), b.IsLiteral()); c != 0 {
		return c
	}
	if c := compareFlags(a.IsChildless(), b.IsChildless()); c != 0 {
		return c
	}

	if a.Predicate() == b.Predicate() {
		an, bn := a.Node(), b.Node()
		if an.IsLiteral() && bn.IsLiteral() {
			return listsort.CompareLiterals(an, bn)
		}
		return strings.Compare(an.Value, bn.Value)
	}
	return a.t.resolver.CompareNames(a.Predicate(), b.Predicate())
}

// compareFlags sorts the branch holding the flag first.
func compareFlags(a, b bool) int {
	switch {
	case a && !b:
		return -1
	case !a && b:
		return 1
	}
	return 0
}
