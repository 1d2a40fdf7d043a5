package rdf

import (
	"strconv"
	"strings"
)

// Kind identifies the variant held by a [Node].
type Kind uint8

const (
	// KindNone marks the zero Node. It matches anything inside a Pattern.
	KindNone Kind = iota
	// KindIRI is a named resource.
	KindIRI
	// KindBlank is an anonymous resource identified by a graph-local label.
	KindBlank
	// KindLiteral is a lexical value with a datatype and optional language.
	KindLiteral
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindIRI:
		return "iri"
	case KindBlank:
		return "blank"
	case KindLiteral:
		return "literal"
	default:
		return "none"
	}
}

// Node is an RDF term. Nodes are comparable and can be used as map keys.
type Node struct {
	Kind     Kind
	Value    string // IRI, blank label or lexical form
	Datatype string // datatype IRI, literals only
	Lang     string // language tag, literals only
}

// IRI returns a named resource node.
func IRI(iri string) Node {
	return Node{Kind: KindIRI, Value: iri}
}

// Blank returns a blank node with the given label. A leading "_:" is removed.
func Blank(label string) Node {
	return Node{Kind: KindBlank, Value: strings.TrimPrefix(label, "_:")}
}

// Literal returns a plain string literal typed as xsd:string.
func Literal(value string) Node {
	return Node{Kind: KindLiteral, Value: value, Datatype: XSDString}
}

// TypedLiteral returns a literal with an explicit datatype. An empty
// datatype means xsd:string.
func TypedLiteral(value, datatype string) Node {
	if datatype == "" {
		datatype = XSDString
	}
	return Node{Kind: KindLiteral, Value: value, Datatype: datatype}
}

// LangLiteral returns a language-tagged string literal.
func LangLiteral(value, lang string) Node {
	return Node{Kind: KindLiteral, Value: value, Datatype: RDFLangString, Lang: lang}
}

// IsZero reports whether n is the zero Node.
func (n Node) IsZero() bool { return n.Kind == KindNone }

// IsIRI reports whether n is a named resource.
func (n Node) IsIRI() bool { return n.Kind == KindIRI }

// IsBlank reports whether n is a blank node.
func (n Node) IsBlank() bool { return n.Kind == KindBlank }

// IsLiteral reports whether n is a literal.
func (n Node) IsLiteral() bool { return n.Kind == KindLiteral }

// IsResource reports whether n is an IRI or a blank node.
func (n Node) IsResource() bool { return n.Kind == KindIRI || n.Kind == KindBlank }

// Namespace returns the namespace part of an IRI node and "" otherwise.
func (n Node) Namespace() string {
	if n.Kind != KindIRI {
		return ""
	}
	ns, _ := SplitIRI(n.Value)
	return ns
}

// LocalName returns the local part of an IRI node and "" otherwise.
func (n Node) LocalName() string {
	if n.Kind != KindIRI {
		return ""
	}
	_, local := SplitIRI(n.Value)
	return local
}

// String renders n in N-Triples notation.
func (n Node) String() string {
	switch n.Kind {
	case KindIRI:
		return "<" + n.Value + ">"
	case KindBlank:
		return "_:" + n.Value
	case KindLiteral:
		s := strconv.Quote(n.Value)
		switch {
		case n.Lang != "":
			return s + "@" + n.Lang
		case n.Datatype != "" && n.Datatype != XSDString:
			return s + "^^<" + n.Datatype + ">"
		}
		return s
	default:
		return "*"
	}
}
