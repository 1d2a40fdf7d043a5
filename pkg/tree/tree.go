package tree

import (
	"github.com/matzehuels/rdftree/pkg/names"
	"github.com/matzehuels/rdftree/pkg/rdf"
)

const noParent = -1

// branch is one position in the tree. Parent links are indices into the
// owning Tree and are only read while the tree is being built.
type branch struct {
	node        rdf.Node
	predicate   rdf.Node
	inverse     bool
	typ         rdf.Node
	parent      int
	children    []int
	constructed bool
}

// Tree is a rooted tree over the nodes of a graph. Index 0 is the root: the
// item root of an item tree, or a synthetic node without a value whose
// children are the items of a list tree.
//
// A Tree is not safe for concurrent modification. Once built and
// canonicalized it is only read.
type Tree struct {
	branches []branch
	resolver *names.Resolver
	list     bool
	empty    bool
	items    map[rdf.Node]bool
	depths   map[rdf.Node]int

	// TotalResults is the size of the full result set a list was taken
	// from, or -1 when unknown.
	TotalResults int
}

// Empty returns the tree produced for an empty graph.
func Empty(r *names.Resolver) *Tree {
	return &Tree{
		branches:     []branch{{parent: noParent, constructed: true}},
		resolver:     r,
		list:         true,
		empty:        true,
		depths:       map[rdf.Node]int{},
		TotalResults: -1,
	}
}

// IsEmpty reports whether the tree was produced for an empty graph.
func (t *Tree) IsEmpty() bool { return t.empty }

// IsList reports whether the root is a list of items.
func (t *Tree) IsList() bool { return t.list }

// Resolver returns the names used to order and render the tree.
func (t *Tree) Resolver() *names.Resolver { return t.resolver }

// Root returns the root branch.
func (t *Tree) Root() Branch { return Branch{t: t, id: 0} }

// Len returns the number of branches, the root included.
func (t *Tree) Len() int { return len(t.branches) }

// DepthOf reports how far below the root the resource uri was first
// attached. The root node of an item tree is at depth 0, its children at 1
// and its grandchildren at 2. In a list tree the children of the items are
// at 0. It returns -1 when uri is not in the tree.
func (t *Tree) DepthOf(uri string) int {
	return t.depthOf(rdf.IRI(uri))
}

func (t *Tree) depthOf(n rdf.Node) int {
	if !t.list && t.branches[0].node == n {
		return 0
	}
	if d, ok := t.depths[n]; ok {
		return d
	}
	return -1
}

// depth is 1 for the root of an item tree and for the list root, 0 for the
// items of a list, and one more than the parent for everything else.
func (t *Tree) depth(id int) int {
	p := t.branches[id].parent
	switch {
	case p == noParent:
		return 1
	case t.list && p == 0:
		return 0
	}
	return t.depth(p) + 1
}

func (t *Tree) add(parent int, b branch) int {
	b.parent = parent
	t.branches = append(t.branches, b)
	id := len(t.branches) - 1
	t.branches[parent].children = append(t.branches[parent].children, id)
	return id
}

// Branch is a read-only view of one position in a [Tree].
type Branch struct {
	t  *Tree
	id int
}

// Node returns the graph node at this position. It is the zero Node for the
// root of a list.
func (b Branch) Node() rdf.Node { return b.t.branches[b.id].node }

// Predicate returns the predicate that connects this branch to its parent.
// It is the zero Node for roots and list items.
func (b Branch) Predicate() rdf.Node { return b.t.branches[b.id].predicate }

// Inverse reports whether the parent is the object, not the subject, of the
// statement that produced this branch.
func (b Branch) Inverse() bool { return b.t.branches[b.id].inverse }

// Type returns the single rdf:type of the node, or the zero Node when the
// node has no type or more than one.
func (b Branch) Type() rdf.Node { return b.t.branches[b.id].typ }

// Children returns the child branches in their current order.
func (b Branch) Children() []Branch {
	ids := b.t.branches[b.id].children
	out := make([]Branch, len(ids))
	for i, id := range ids {
		out[i] = Branch{t: b.t, id: id}
	}
	return out
}

// IsList reports whether b is the synthetic root of a list tree.
func (b Branch) IsList() bool { return b.id == 0 && b.t.list }

// IsLiteral reports whether the node is a literal.
func (b Branch) IsLiteral() bool { return b.Node().IsLiteral() }

// IsTypeEdge reports whether b was reached over an outgoing rdf:type edge.
func (b Branch) IsTypeEdge() bool {
	br := b.t.branches[b.id]
	return br.predicate == rdf.RDFType && !br.inverse
}

// IsChildless reports whether b is a resource without children.
func (b Branch) IsChildless() bool {
	br := b.t.branches[b.id]
	return br.node.IsResource() && len(br.children) == 0
}

// HasChildren reports whether b has at least one child.
func (b Branch) HasChildren() bool { return len(b.t.branches[b.id].children) > 0 }
