package xml

import (
	"net/url"
	"strconv"

	"github.com/matzehuels/rdftree/pkg/names"
	"github.com/matzehuels/rdftree/pkg/tree"
)

// Untyped is the element name of items without a single rdf:type.
const Untyped = "Thing"

// Marshal renders t as XML without a declaration. An empty tree renders as
// <List/>.
func Marshal(t *tree.Tree) string {
	if t.IsEmpty() {
		return "<List/>"
	}
	t.Canonicalize()
	r := t.Resolver()

	if !t.IsList() {
		root := newElement(typeName(r, t.Root()))
		fillItem(r, t.Root(), root)
		return root.String()
	}

	list := newElement("List")
	if t.TotalResults >= 0 {
		list.attr("totalResults", strconv.Itoa(t.TotalResults))
	}
	for _, item := range t.Root().Children() {
		fillItem(r, item, list.add(typeName(r, item)))
	}
	return list.String()
}

func typeName(r *names.Resolver, b tree.Branch) string {
	if typ := b.Type(); !typ.IsZero() {
		return r.Name(typ)
	}
	return Untyped
}

func fillItem(r *names.Resolver, b tree.Branch, el *element) {
	el.attr("id", r.Name(b.Node()))
	for _, child := range b.Children() {
		if child.IsTypeEdge() {
			continue
		}
		edge := el.add(r.Name(child.Predicate()))
		if child.Inverse() {
			edge.attr("inverse", "true")
		}
		switch {
		case child.IsChildless():
			edge.attr("id", r.Name(child.Node()))
		case child.Node().IsResource():
			fillItem(r, child, edge.add(typeName(r, child)))
		default:
			edge.setText(child.Node().Value)
		}
	}
}

// BlankLabel is the link text of blank nodes in HTML output.
const BlankLabel = "Result"

// MarshalHTML renders t as a page of nested lists. Resource and predicate
// links point at base followed by the query-escaped IRI.
func MarshalHTML(t *tree.Tree, base string) string {
	if t.IsEmpty() {
		return "<html><body>No data</body></html>"
	}
	t.Canonicalize()
	r := t.Resolver()

	html := newElement("html")
	body := html.add("body")
	if t.IsList() {
		ol := body.add("ol")
		for _, item := range t.Root().Children() {
			fillHTML(r, item, ol.add("li"), base)
		}
	} else {
		fillHTML(r, t.Root(), body, base)
	}
	return html.String()
}

func fillHTML(r *names.Resolver, b tree.Branch, parent *element, base string) {
	link := parent.add("a")
	if n := b.Node(); n.IsIRI() {
		link.attr("href", base+url.QueryEscape(n.Value)).attr("title", n.Value)
		link.setText(r.Name(n))
	} else {
		link.setText(BlankLabel)
	}

	if !b.HasChildren() {
		return
	}
	ul := parent.add("ul")
	for _, child := range b.Children() {
		li := ul.add("li")
		pred := child.Predicate()
		label := r.Name(pred)
		style := "font-weight: bold;"
		if child.Inverse() {
			label += " (inverse)"
			style += " font-style: italic"
		}
		li.add("a").
			attr("href", base+url.QueryEscape(pred.Value)).
			attr("title", pred.Value).
			attr("style", style).
			setText(label + ":")

		value := li.add("span")
		if child.Node().IsResource() {
			fillHTML(r, child, value, base)
		} else {
			value.setText(child.Node().Value)
		}
	}
}
