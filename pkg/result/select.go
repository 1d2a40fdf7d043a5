// Package result reads the result vocabulary of a graph and decides which
// tree shape to build and from which roots.
//
// The vocabulary lives in one namespace (by default
// http://purl.org/ontology/rdf-result/) and every directive is a statement
// whose subject is result:this:
//
//	result:this result:item <a> .              # a single item tree
//	result:this result:next <a> .              # a linked list following result:next
//	result:this result:listItem <a>, <b> .     # an unordered set of items
//	result:this result:orderByPredicate <p> .  # sort key for listItem sets
//	result:this result:sortOrder result:DescendingOrder .
//
// Malformed directives are reported as format errors from pkg/errors.
package result

import (
	"strconv"
	"strings"

	"github.com/matzehuels/rdftree/pkg/errors"
	"github.com/matzehuels/rdftree/pkg/listsort"
	"github.com/matzehuels/rdftree/pkg/rdf"
)

// DefaultNamespace is the namespace of the result vocabulary.
const DefaultNamespace = "http://purl.org/ontology/rdf-result/"

// Vocabulary holds the IRIs of the result vocabulary for one namespace.
type Vocabulary struct {
	Namespace        string
	This             rdf.Node
	Item             rdf.Node
	Next             rdf.Node
	ListItem         rdf.Node
	OrderByPredicate rdf.Node
	SortOrder        rdf.Node
	AscendingOrder   rdf.Node
	DescendingOrder  rdf.Node
	Meta             rdf.Node
	TotalResults     rdf.Node
}

// NewVocabulary returns the vocabulary rooted at namespace, or at
// [DefaultNamespace] when namespace is empty.
func NewVocabulary(namespace string) Vocabulary {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	term := func(local string) rdf.Node { return rdf.IRI(namespace + local) }
	return Vocabulary{
		Namespace:        namespace,
		This:             term("this"),
		Item:             term("item"),
		Next:             term("next"),
		ListItem:         term("listItem"),
		OrderByPredicate: term("orderByPredicate"),
		SortOrder:        term("sortOrder"),
		AscendingOrder:   term("AscendingOrder"),
		DescendingOrder:  term("DescendingOrder"),
		Meta:             term("meta"),
		TotalResults:     term("totalResults"),
	}
}

// Shape is the kind of tree described by the result vocabulary.
type Shape int

const (
	// ShapeEmpty is produced for an empty graph.
	ShapeEmpty Shape = iota
	// ShapeItem is a single tree rooted at Selection.Root.
	ShapeItem
	// ShapeLinkedList is a list whose order follows result:next.
	ShapeLinkedList
	// ShapeOrderedList is a set of result:listItem members, sorted.
	ShapeOrderedList
)

// String returns the name used in logs and error messages.
func (s Shape) String() string {
	switch s {
	case ShapeItem:
		return "ITEM"
	case ShapeLinkedList:
		return "LIST"
	case ShapeOrderedList:
		return "LIST_WITH_ORDER_BY_PREDICATE"
	case ShapeEmpty:
		return "EMPTY"
	default:
		return "UNKNOWN"
	}
}

// Selection is the outcome of [Select].
type Selection struct {
	Shape Shape

	// Root is set for ShapeItem.
	Root rdf.Node

	// Items are the list members in output order for both list shapes.
	Items []rdf.Node

	// OrderBy is the ordering predicate of a ShapeOrderedList, if any.
	OrderBy rdf.Node

	// Descending is set when result:sortOrder is result:DescendingOrder.
	Descending bool

	// TotalResults is read from result:meta result:totalResults; -1 when absent.
	TotalResults int
}

const shapeUnknown Shape = -1

// Select inspects the result:this statements of g.
func Select(g rdf.Graph, vocab Vocabulary) (*Selection, error) {
	if len(g.Statements(rdf.Pattern{})) == 0 {
		return &Selection{Shape: ShapeEmpty, TotalResults: -1}, nil
	}

	results := g.Statements(rdf.Pattern{Subject: vocab.This})
	if len(results) == 0 {
		return nil, errors.WithHintf(
			errors.New(errors.ErrCodeNoRoot, "result:this is not present as the subject of a statement, so an RDF tree cannot be generated"),
			"add a statement such as <%s> <%s> <your-resource>", vocab.This.Value, vocab.Item.Value)
	}

	shape := shapeUnknown
	var items []rdf.Node
	for _, s := range results {
		if !s.Object.IsResource() {
			return nil, errors.New(errors.ErrCodeNonResourceRoot, "result:this statement contained a non-resource object: %s", s.Object)
		}
		switch s.Predicate {
		case vocab.Item:
			if len(results) != 1 {
				return nil, errors.New(errors.ErrCodeAmbiguousRoot, "more than one result:this subject was found for a single item result")
			}
			if shape != shapeUnknown {
				return nil, conflicting(shape, "result:item")
			}
			shape = ShapeItem
		case vocab.Next:
			if len(results) != 1 {
				return nil, errors.New(errors.ErrCodeAmbiguousRoot, "more than one starting point was found for a list described by result:next")
			}
			if shape != shapeUnknown {
				return nil, conflicting(shape, "result:next")
			}
			shape = ShapeLinkedList
		case vocab.ListItem:
			if shape != shapeUnknown && shape != ShapeOrderedList {
				return nil, conflicting(shape, "result:listItem")
			}
			shape = ShapeOrderedList
			items = append(items, s.Object)
		}
	}

	sel := &Selection{Shape: shape, TotalResults: totalResults(g, vocab)}
	seenSortOrder := false
	for _, s := range results {
		switch s.Predicate {
		case vocab.OrderByPredicate:
			if !sel.OrderBy.IsZero() {
				return nil, errors.New(errors.ErrCodeMultipleOrderingPredicates, "more than one ordering predicate was supplied")
			}
			if shape != ShapeOrderedList {
				return nil, errors.New(errors.ErrCodeMisplacedOrdering, "an ordering predicate was supplied for tree type %s", shape)
			}
			sel.OrderBy = s.Object
		case vocab.SortOrder:
			if shape != ShapeOrderedList {
				return nil, errors.New(errors.ErrCodeMisplacedOrdering, "a sort order was supplied for tree type %s", shape)
			}
			if seenSortOrder {
				return nil, errors.New(errors.ErrCodeInvalidSortOrder, "more than one sort order was supplied")
			}
			seenSortOrder = true
			switch s.Object {
			case vocab.AscendingOrder:
				sel.Descending = false
			case vocab.DescendingOrder:
				sel.Descending = true
			default:
				return nil, errors.New(errors.ErrCodeInvalidSortOrder, "unknown sort order: %s", s.Object.Value)
			}
		}
	}

	root := results[0].Object
	switch shape {
	case ShapeItem:
		sel.Root = root
	case ShapeLinkedList:
		chain, err := followChain(g, vocab, root)
		if err != nil {
			return nil, err
		}
		sel.Items = chain
	case ShapeOrderedList:
		sel.Items = listsort.Sort(g, items, sel.OrderBy, sel.Descending)
	default:
		return nil, errors.New(errors.ErrCodeNoRoot, "the tree type could not be identified, the necessary result:this statements were not present")
	}
	return sel, nil
}

// followChain walks result:next from first until an item has no successor.
func followChain(g rdf.Graph, vocab Vocabulary, first rdf.Node) ([]rdf.Node, error) {
	chain := []rdf.Node{first}
	seen := map[rdf.Node]bool{first: true}
	for current := first; ; {
		next := g.Statements(rdf.Pattern{Subject: current, Predicate: vocab.Next})
		switch {
		case len(next) == 0:
			return chain, nil
		case len(next) > 1:
			return nil, errors.New(errors.ErrCodeMalformedChain, "too many result:next predicates assigned to %s", current)
		}
		target := next[0].Object
		if !target.IsIRI() {
			return nil, errors.New(errors.ErrCodeMalformedChain, "result:next cannot be a literal or blank node")
		}
		if seen[target] {
			return nil, errors.New(errors.ErrCodeMalformedChain, "result:next chain loops back to %s", target)
		}
		seen[target] = true
		chain = append(chain, target)
		current = target
	}
}

// totalResults reads the optional list size from result:meta.
func totalResults(g rdf.Graph, vocab Vocabulary) int {
	for _, s := range g.Statements(rdf.Pattern{Subject: vocab.Meta, Predicate: vocab.TotalResults}) {
		if !s.Object.IsLiteral() {
			continue
		}
		if n, err := strconv.Atoi(strings.TrimSpace(s.Object.Value)); err == nil {
			return n
		}
	}
	return -1
}

func conflicting(shape Shape, predicate string) error {
	return errors.New(errors.ErrCodeConflictingShape, "tree type %s was identified alongside conflicting predicate %s", shape, predicate)
}
