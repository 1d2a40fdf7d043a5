// Package tree expands an RDF graph into a finite, canonically ordered tree.
//
// # Overview
//
// A graph has no natural root and usually contains cycles. The builder
// starts from one root (an item tree) or from a sequence of roots (a list
// tree) and follows statements in both directions: a statement whose
// subject is the current node yields an outgoing child, a statement whose
// object is the current node yields an inverse child. Expansion runs to a
// fixed point, one generation per pass, so that nodes close to a root claim
// their place in the tree before deeper nodes can reach them.
//
// # Traversal Rules
//
// A statement is turned into a child of the current branch unless one of
// these rules suppresses it:
//
//  1. It is an inverse rdf:type edge. Commonly typed resources would
//     otherwise pull half the graph into every tree.
//  2. The candidate already appears on the path from the root.
//  3. The current node is a list item reached from another item. Such a
//     reference is rendered, but not expanded a second time.
//  4. The edge turns back along the predicate that reached the current
//     node and leads to a list item.
//  5. The edge is inverse, starts below a root, and the candidate was
//     already recorded at a depth no deeper than the child would have.
//
// Rule 2 bounds the depth of the tree by the number of nodes in the graph,
// so building always terminates.
//
// # Canonical Order
//
// [Tree.Canonicalize] sorts the children of every branch with [Compare]:
// type edges, then outgoing before inverse edges, literals before
// resources, childless resources before resources with children, and
// finally by predicate name. Children sharing a predicate are ordered by
// value. List items keep their order.
//
//	t := tree.BuildItem(g, resolver, root, tree.Options{IgnoreNamespace: result.DefaultNamespace})
//	t.Canonicalize()
//	for _, child := range t.Root().Children() {
//	    fmt.Println(resolver.Name(child.Predicate()), child.Node())
//	}
package tree
