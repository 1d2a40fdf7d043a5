package mongo

import (
	"time"

	"github.com/matzehuels/rdftree/pkg/errors"
	"github.com/matzehuels/rdftree/pkg/rdf"
)

// snapshotDoc names the generation that holds the current statements of
// a snapshot. It exists for every saved snapshot, including empty ones.
type snapshotDoc struct {
	Name       string    `bson:"_id"`
	Generation string    `bson:"gen"`
	Statements int       `bson:"statements"`
	SavedAt    time.Time `bson:"saved_at"`
}

type statementDoc struct {
	Graph      string  `bson:"graph"`
	Generation string  `bson:"gen"`
	Seq        int     `bson:"seq"`
	Subject    termDoc `bson:"s"`
	Predicate  string  `bson:"p"`
	Object     termDoc `bson:"o"`
}

type termDoc struct {
	Kind     string `bson:"k"`
	Value    string `bson:"v"`
	Datatype string `bson:"dt,omitempty"`
	Lang     string `bson:"lang,omitempty"`
}

type prefixDoc struct {
	Graph      string `bson:"graph"`
	Generation string `bson:"gen"`
	Prefix     string `bson:"prefix"`
	Namespace  string `bson:"namespace"`
}

func newStatementDoc(graph, gen string, seq int, s rdf.Statement) statementDoc {
	return statementDoc{
		Graph:      graph,
		Generation: gen,
		Seq:        seq,
		Subject:    newTermDoc(s.Subject),
		Predicate:  s.Predicate.Value,
		Object:     newTermDoc(s.Object),
	}
}

func newTermDoc(n rdf.Node) termDoc {
	d := termDoc{Kind: n.Kind.String(), Value: n.Value}
	if n.IsLiteral() {
		d.Lang = n.Lang
		if n.Datatype != rdf.XSDString && n.Lang == "" {
			d.Datatype = n.Datatype
		}
	}
	return d
}

func (d statementDoc) statement() (rdf.Statement, error) {
	s, err := d.Subject.node()
	if err != nil {
		return rdf.Statement{}, err
	}
	o, err := d.Object.node()
	if err != nil {
		return rdf.Statement{}, err
	}
	return rdf.Statement{Subject: s, Predicate: rdf.IRI(d.Predicate), Object: o}, nil
}

func (d termDoc) node() (rdf.Node, error) {
	switch d.Kind {
	case rdf.KindIRI.String():
		return rdf.IRI(d.Value), nil
	case rdf.KindBlank.String():
		return rdf.Blank(d.Value), nil
	case rdf.KindLiteral.String():
		if d.Lang != "" {
			return rdf.LangLiteral(d.Value, d.Lang), nil
		}
		return rdf.TypedLiteral(d.Value, d.Datatype), nil
	}
	return rdf.Node{}, errors.New(errors.ErrCodeInvalidInput, "unknown term kind %q", d.Kind)
}
