package tree

import (
	"slices"

	"github.com/matzehuels/rdftree/pkg/names"
	"github.com/matzehuels/rdftree/pkg/rdf"
	"github.com/matzehuels/rdftree/pkg/result"
)

// Options configures tree building.
type Options struct {
	// IgnoreNamespace holds predicates that never become children, usually
	// the result vocabulary that selected the roots.
	IgnoreNamespace string
}

type builder struct {
	t    *Tree
	g    rdf.Graph
	opts Options
}

// BuildItem expands the graph from a single root and canonicalizes the
// result.
func BuildItem(g rdf.Graph, r *names.Resolver, root rdf.Node, opts Options) *Tree {
	t := &Tree{
		branches:     []branch{{node: root, parent: noParent}},
		resolver:     r,
		items:        map[rdf.Node]bool{},
		depths:       map[rdf.Node]int{},
		TotalResults: -1,
	}
	b := &builder{t: t, g: g, opts: opts}
	for !b.fullyConstructed(0) {
		b.expand(0)
	}
	t.Canonicalize()
	return t
}

// BuildList expands the graph from every item in order and canonicalizes
// the result. The items keep their order.
func BuildList(g rdf.Graph, r *names.Resolver, items []rdf.Node, opts Options) *Tree {
	t := &Tree{
		branches:     []branch{{parent: noParent, constructed: true}},
		resolver:     r,
		list:         true,
		items:        make(map[rdf.Node]bool, len(items)),
		depths:       map[rdf.Node]int{},
		TotalResults: -1,
	}
	for _, item := range items {
		t.add(0, branch{node: item})
		t.items[item] = true
	}
	b := &builder{t: t, g: g, opts: opts}
	for !b.fullyConstructed(0) {
		for _, id := range slices.Clone(t.branches[0].children) {
			b.expand(id)
		}
	}
	t.Canonicalize()
	return t
}

// fullyConstructed reports whether id and all of its descendants have been
// expanded.
func (b *builder) fullyConstructed(id int) bool {
	br := &b.t.branches[id]
	if len(br.children) == 0 {
		return br.constructed
	}
	done := true
	for _, c := range br.children {
		if !b.fullyConstructed(c) {
			done = false
		}
	}
	return done
}

// expand turns the statements around an unexpanded branch into children,
// or passes the call on to the children of an expanded one. One call
// therefore adds at most one generation.
func (b *builder) expand(id int) {
	if b.t.branches[id].constructed {
		for _, c := range slices.Clone(b.t.branches[id].children) {
			b.expand(c)
		}
		return
	}

	node := b.t.branches[id].node
	if node.IsResource() {
		outgoing := b.g.Statements(rdf.Pattern{Subject: node})
		incoming := slices.DeleteFunc(b.g.Statements(rdf.Pattern{Object: node}), func(s rdf.Statement) bool {
			return slices.Contains(outgoing, s)
		})

		types := b.g.Statements(rdf.Pattern{Subject: node, Predicate: rdf.RDFType})
		if len(types) == 1 && types[0].Object.IsResource() {
			b.t.branches[id].typ = types[0].Object
		}

		b.addAll(id, outgoing)
		b.addAll(id, incoming)
	}
	b.t.branches[id].constructed = true
}

func (b *builder) addAll(id int, stmts []rdf.Statement) {
	for _, s := range stmts {
		if b.opts.IgnoreNamespace != "" && s.Predicate.Namespace() == b.opts.IgnoreNamespace {
			continue
		}
		b.addChild(id, s)
	}
}

func (b *builder) addChild(id int, s rdf.Statement) {
	t := b.t
	current := t.branches[id]

	child, inverse := s.Subject, true
	if s.Subject == current.node {
		child, inverse = s.Object, false
	}

	// Rule 1: never follow rdf:type backwards.
	if inverse && s.Predicate == rdf.RDFType {
		return
	}

	// Rule 2: the candidate is already on the path from the root.
	if b.hasAncestor(id, child) {
		return
	}

	// Rule 3: a list item reached from another item is not expanded.
	if p := current.parent; p != noParent && !t.branches[p].node.IsZero() && t.items[current.node] {
		return
	}

	hasIncoming := current.parent != noParent && !current.predicate.IsZero()

	// Rule 4: do not turn back along the edge just followed into a list item.
	if current.inverse != inverse && hasIncoming && current.predicate == s.Predicate && t.items[child] {
		return
	}

	// Rule 5: do not follow inverse edges towards nodes already placed at
	// the same depth or closer to the root.
	if inverse && hasIncoming && t.depth(id)+1 >= t.depthOf(child) {
		return
	}

	t.add(id, branch{node: child, predicate: s.Predicate, inverse: inverse})
	if _, ok := t.depths[child]; !ok {
		t.depths[child] = t.depth(id)
	}
}

func (b *builder) hasAncestor(id int, n rdf.Node) bool {
	for p := b.t.branches[id].parent; p != noParent; p = b.t.branches[p].parent {
		node := b.t.branches[p].node
		if node.IsZero() {
			return false
		}
		if node == n {
			return true
		}
	}
	return false
}

// FromSelection builds the tree described by a result selection.
func FromSelection(g rdf.Graph, r *names.Resolver, sel *result.Selection, opts Options) *Tree {
	var t *Tree
	switch sel.Shape {
	case result.ShapeItem:
		t = BuildItem(g, r, sel.Root, opts)
	case result.ShapeLinkedList, result.ShapeOrderedList:
		t = BuildList(g, r, sel.Items, opts)
	default:
		t = Empty(r)
	}
	if t.list {
		t.TotalResults = sel.TotalResults
	}
	return t
}
