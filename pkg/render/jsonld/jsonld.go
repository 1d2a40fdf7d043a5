// Package jsonld renders a tree as a compact JSON-LD document.
//
// An item tree becomes one object: "@id" first, then one field per
// predicate in canonical child order, inverse edges under "@reverse", and a
// "@context" mapping every short name back to its IRI. A list tree becomes
// {"results": [...]} with the context attached at the top.
//
//	out, err := jsonld.Marshal(t, jsonld.Options{})
package jsonld

import (
	"bytes"
	"encoding/json"
	"maps"
	"slices"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/matzehuels/rdftree/pkg/names"
	"github.com/matzehuels/rdftree/pkg/rdf"
	"github.com/matzehuels/rdftree/pkg/tree"
)

// Object is a JSON object that keeps its fields in insertion order.
type Object = orderedmap.OrderedMap[string, any]

// Options configures JSON rendering.
type Options struct {
	// CURIEKeys names fields and values prefix:local instead of using the
	// short collision-free names.
	CURIEKeys bool
}

// Marshal renders t as indented JSON. An empty tree renders as {}.
func Marshal(t *tree.Tree, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(Document(t, opts)); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Document builds the JSON value of t. Objects are [*Object], arrays
// []any, numbers [json.Number] and everything else string.
func Document(t *tree.Tree, opts Options) *Object {
	t.Canonicalize()
	e := &encoder{r: t.Resolver(), curie: opts.CURIEKeys}

	switch {
	case t.IsEmpty():
		return orderedmap.New[string, any]()
	case t.IsList():
		return e.list(t.Root())
	default:
		return e.object(t.Root(), true)
	}
}

type encoder struct {
	r     *names.Resolver
	curie bool
}

func (e *encoder) list(root tree.Branch) *Object {
	doc := orderedmap.New[string, any]()
	results := make([]any, 0, len(root.Children()))
	for _, item := range root.Children() {
		results = append(results, e.object(item, false))
	}
	doc.Set("results", results)

	if ctx := e.context(); len(ctx) > 0 {
		graph := orderedmap.New[string, any]()
		graph.Set("@id", "@graph")
		ctx["results"] = graph
		doc.Set("@context", sortedObject(ctx))
	}
	return doc
}

func (e *encoder) object(b tree.Branch, root bool) *Object {
	obj := orderedmap.New[string, any]()
	if n := b.Node(); n.IsIRI() {
		obj.Set("@id", n.Value)
	}

	var reverse *Object
	for _, group := range groupChildren(b.Children()) {
		first := group[0]
		key := e.key(first.Predicate())
		value := e.groupValue(group)
		if !first.Inverse() {
			obj.Set(key, value)
			continue
		}
		if reverse == nil {
			reverse = orderedmap.New[string, any]()
			obj.Set("@reverse", reverse)
		}
		reverse.Set(key, value)
	}

	if root {
		if ctx := e.context(); len(ctx) > 0 {
			obj.Set("@context", sortedObject(ctx))
		}
	}
	return obj
}

// groupValue renders the children sharing one predicate and direction.
// rdf:type is always an array; other single values are bare unless they
// are objects.
func (e *encoder) groupValue(group []tree.Branch) any {
	if len(group) == 1 {
		child := group[0]
		switch {
		case child.IsChildless() && child.Predicate() == rdf.RDFType:
			return []any{e.name(child.Node())}
		case child.IsChildless():
			return e.name(child.Node())
		case child.Node().IsResource():
			return []any{e.object(child, false)}
		default:
			return literal(child.Node())
		}
	}

	values := make([]any, 0, len(group))
	for _, child := range group {
		switch {
		case child.IsChildless():
			values = append(values, e.name(child.Node()))
		case child.Node().IsResource():
			values = append(values, e.object(child, false))
		default:
			values = append(values, literal(child.Node()))
		}
	}
	return values
}

func (e *encoder) key(predicate rdf.Node) string {
	if predicate == rdf.RDFType {
		return "@type"
	}
	if e.curie {
		return e.r.PrefixedName(predicate)
	}
	return e.r.Key(predicate)
}

func (e *encoder) name(n rdf.Node) string {
	switch {
	case e.curie:
		return e.r.PrefixedName(n)
	case n == rdf.RDFType:
		return names.TypeName
	}
	return e.r.Key(n)
}

// context maps the name of every registered resource to its IRI and, for
// predicates, to the kind of value they hold.
func (e *encoder) context() map[string]any {
	ctx := make(map[string]any)
	for _, entry := range e.r.Entries() {
		def := orderedmap.New[string, any]()
		def.Set("@id", entry.Resource.Value)
		switch entry.Type {
		case names.ResourceVocab:
			def.Set("@type", "@vocab")
		case names.ResourceID:
			def.Set("@type", "@id")
		}
		ctx[e.name(entry.Resource)] = def
	}
	return ctx
}

func sortedObject(m map[string]any) *Object {
	obj := orderedmap.New[string, any]()
	for _, k := range slices.Sorted(maps.Keys(m)) {
		obj.Set(k, m[k])
	}
	return obj
}

// groupChildren splits children into runs sharing predicate and direction,
// in order of first appearance.
func groupChildren(children []tree.Branch) [][]tree.Branch {
	type groupKey struct {
		predicate rdf.Node
		inverse   bool
	}
	index := make(map[groupKey]int)
	var groups [][]tree.Branch
	for _, c := range children {
		k := groupKey{c.Predicate(), c.Inverse()}
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, nil)
		}
		groups[i] = append(groups[i], c)
	}
	return groups
}

// literal renders numeric literals as JSON numbers, keeping their lexical
// form, and everything else as a string.
func literal(n rdf.Node) any {
	if rdf.IsNumericType(n.Datatype) {
		s := strings.TrimSpace(n.Value)
		if isNumber(s) {
			return json.Number(s)
		}
	}
	return n.Value
}

func isNumber(s string) bool {
	if s == "" || !(s[0] == '-' || (s[0] >= '0' && s[0] <= '9')) {
		return false
	}
	return json.Valid([]byte(s))
}
