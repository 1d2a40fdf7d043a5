package tree

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/rdftree/pkg/names"
	"github.com/matzehuels/rdftree/pkg/rdf"
)

const resultNS = "http://purl.org/ontology/rdf-result/"

func iri(s string) rdf.Node { return rdf.IRI(s) }

func resolverFor(t *testing.T, g rdf.Graph) *names.Resolver {
	t.Helper()
	r, err := names.New(g, names.Options{IgnoreNamespace: resultNS})
	require.NoError(t, err)
	return r
}

func buildItem(t *testing.T, g rdf.Graph, root rdf.Node) *Tree {
	t.Helper()
	return BuildItem(g, resolverFor(t, g), root, Options{IgnoreNamespace: resultNS})
}

func buildList(t *testing.T, g rdf.Graph, items ...rdf.Node) *Tree {
	t.Helper()
	return BuildList(g, resolverFor(t, g), items, Options{IgnoreNamespace: resultNS})
}

// outline prints one branch per line: predicate name, "~" for inverse
// edges, and the node in N-Triples form.
func outline(t *Tree) string {
	var sb strings.Builder
	var walk func(b Branch, depth int)
	walk = func(b Branch, depth int) {
		sb.WriteString(strings.Repeat("  ", depth))
		switch {
		case b.IsList():
			sb.WriteString("(list)")
		case b.Predicate().IsZero():
			sb.WriteString(b.Node().String())
		default:
			if b.Inverse() {
				sb.WriteString("~")
			}
			sb.WriteString(t.Resolver().Name(b.Predicate()) + " " + b.Node().String())
		}
		sb.WriteString("\n")
		for _, c := range b.Children() {
			walk(c, depth+1)
		}
	}
	walk(t.Root(), 0)
	return sb.String()
}

func TestResourceChild(t *testing.T) {
	g := rdf.NewMemGraph().MustAdd(iri("uri:a"), iri("uri:b"), iri("uri:c"))
	tr := buildItem(t, g, iri("uri:a"))

	assert.Equal(t, "<uri:a>\n  uri:b <uri:c>\n", outline(tr))
	assert.False(t, tr.IsList())
	assert.False(t, tr.IsEmpty())
	assert.True(t, tr.Root().Children()[0].IsChildless())
}

func TestSelfLoopYieldsOneChildlessChild(t *testing.T) {
	g := rdf.NewMemGraph().MustAdd(iri("uri:a"), iri("uri:b"), iri("uri:a"))
	tr := buildItem(t, g, iri("uri:a"))

	assert.Equal(t, "<uri:a>\n  uri:b <uri:a>\n", outline(tr))
}

func TestTypeIsNotFollowedInversely(t *testing.T) {
	thingy := iri("uri:Thingy")
	g := rdf.NewMemGraph().
		MustAdd(iri("uri:a"), rdf.RDFType, thingy).
		MustAdd(iri("uri:b"), rdf.RDFType, thingy)
	tr := buildItem(t, g, iri("uri:a"))

	assert.Equal(t, "<uri:a>\n  type <uri:Thingy>\n", outline(tr))
	assert.Equal(t, thingy, tr.Root().Type())
	assert.True(t, tr.Root().Children()[0].IsTypeEdge())
}

func TestTypeRequiresSingleValue(t *testing.T) {
	g := rdf.NewMemGraph().
		MustAdd(iri("uri:a"), rdf.RDFType, iri("uri:T1")).
		MustAdd(iri("uri:a"), rdf.RDFType, iri("uri:T2"))
	tr := buildItem(t, g, iri("uri:a"))

	assert.True(t, tr.Root().Type().IsZero())
	assert.Len(t, tr.Root().Children(), 2)
}

func TestOrphanedStatementsAreExcluded(t *testing.T) {
	g := rdf.NewMemGraph().
		MustAdd(iri("uri:a"), iri("uri:b"), iri("uri:c")).
		MustAdd(iri("uri:orphanA"), iri("uri:orphanB"), iri("uri:orphanC"))
	tr := buildItem(t, g, iri("uri:a"))

	assert.Equal(t, "<uri:a>\n  uri:b <uri:c>\n", outline(tr))
	assert.Equal(t, -1, tr.DepthOf("uri:orphanC"))
}

func TestInverseChild(t *testing.T) {
	g := rdf.NewMemGraph().MustAdd(iri("uri:a"), iri("uri:b"), iri("uri:c"))
	tr := buildItem(t, g, iri("uri:c"))

	assert.Equal(t, "<uri:c>\n  ~uri:b <uri:a>\n", outline(tr))
	assert.True(t, tr.Root().Children()[0].Inverse())
}

func TestResultVocabularyIsIgnored(t *testing.T) {
	g := rdf.NewMemGraph().
		MustAdd(iri(resultNS+"this"), iri(resultNS+"item"), iri("uri:a")).
		MustAdd(iri("uri:a"), iri("uri:b"), iri("uri:c"))
	tr := buildItem(t, g, iri("uri:a"))

	assert.Equal(t, "<uri:a>\n  uri:b <uri:c>\n", outline(tr))
}

func TestDepthOf(t *testing.T) {
	g := rdf.NewMemGraph().
		MustAdd(iri("uri:a"), iri("uri:b"), rdf.Literal("Val1")).
		MustAdd(iri("uri:a"), iri("uri:b"), iri("uri:c")).
		MustAdd(iri("uri:c"), iri("uri:b"), iri("uri:d"))
	tr := buildItem(t, g, iri("uri:a"))

	assert.Equal(t, 0, tr.DepthOf("uri:a"))
	assert.Equal(t, 1, tr.DepthOf("uri:c"))
	assert.Equal(t, 2, tr.DepthOf("uri:d"))
	assert.Equal(t, -1, tr.DepthOf("uri:unknown"))
}

func TestInverseEdgeTowardsShallowerNodeIsNotFollowed(t *testing.T) {
	g := rdf.NewMemGraph().
		MustAdd(iri("uri:r"), iri("uri:p"), iri("uri:x")).
		MustAdd(iri("uri:r"), iri("uri:q"), iri("uri:y")).
		MustAdd(iri("uri:y"), iri("uri:s"), iri("uri:x"))
	tr := buildItem(t, g, iri("uri:r"))

	assert.Equal(t,
		"<uri:r>\n"+
			"  uri:p <uri:x>\n"+
			"  uri:q <uri:y>\n"+
			"    uri:s <uri:x>\n",
		outline(tr))
}

func TestLiteralsSharingAPredicateAreOrderedByValue(t *testing.T) {
	b, p := iri("uri:b"), iri("uri:p")
	g := rdf.NewMemGraph().
		MustAdd(b, p, rdf.Literal("zzz")).
		MustAdd(b, p, iri("a:a")).
		MustAdd(b, p, rdf.Literal("bbb")).
		MustAdd(b, p, rdf.TypedLiteral("2", rdf.XSDInteger))
	tr := buildItem(t, g, b)

	assert.Equal(t,
		"<uri:b>\n"+
			"  uri:p \"2\"^^<http://www.w3.org/2001/XMLSchema#integer>\n"+
			"  uri:p \"bbb\"\n"+
			"  uri:p \"zzz\"\n"+
			"  uri:p <a:a>\n",
		outline(tr))
}

func TestCanonicalOrder(t *testing.T) {
	const ns = "http://purl.org/ns/"
	a := iri("uri:a")
	g := rdf.NewMemGraph()
	g.SetPrefix("ns", ns)
	g.MustAdd(a, iri(ns+"bbLiteralGroup"), rdf.Literal("valA")).
		MustAdd(a, iri(ns+"aFirst"), rdf.Literal("val")).
		MustAdd(iri("uri:z"), iri(ns+"aaaInverse"), a).
		MustAdd(a, iri(ns+"aaResourceGroup"), iri("uri:c")).
		MustAdd(a, rdf.RDFType, iri(ns+"Thing")).
		MustAdd(a, iri(ns+"bSecond"), rdf.Literal("val")).
		MustAdd(a, iri(ns+"bbLiteralGroup"), rdf.Literal("valB"))
	tr := buildItem(t, g, a)

	assert.Equal(t,
		"<uri:a>\n"+
			"  type <http://purl.org/ns/Thing>\n"+
			"  aFirst \"val\"\n"+
			"  bSecond \"val\"\n"+
			"  bbLiteralGroup \"valA\"\n"+
			"  bbLiteralGroup \"valB\"\n"+
			"  aaResourceGroup <uri:c>\n"+
			"  ~aaaInverse <uri:z>\n",
		outline(tr))
}

func TestChildlessResourcesBeforeResourcesWithChildren(t *testing.T) {
	g := rdf.NewMemGraph().
		MustAdd(iri("uri:a"), iri("uri:a1"), iri("uri:deep")).
		MustAdd(iri("uri:deep"), iri("uri:p"), rdf.Literal("x")).
		MustAdd(iri("uri:a"), iri("uri:z9"), iri("uri:leaf"))
	tr := buildItem(t, g, iri("uri:a"))

	children := tr.Root().Children()
	require.Len(t, children, 2)
	assert.Equal(t, iri("uri:leaf"), children[0].Node())
	assert.Equal(t, iri("uri:deep"), children[1].Node())
	assert.True(t, children[1].HasChildren())
}

func TestCanonicalizeIsIdempotent(t *testing.T) {
	g := rdf.NewMemGraph().
		MustAdd(iri("uri:a"), iri("uri:p"), rdf.Literal("2")).
		MustAdd(iri("uri:a"), iri("uri:p"), rdf.Literal("1")).
		MustAdd(iri("uri:a"), iri("uri:q"), iri("uri:b")).
		MustAdd(iri("uri:b"), iri("uri:r"), iri("uri:c")).
		MustAdd(iri("uri:d"), iri("uri:s"), iri("uri:a"))
	tr := buildItem(t, g, iri("uri:a"))

	before := outline(tr)
	tr.Canonicalize()
	assert.Equal(t, before, outline(tr))
}

func TestListItemsAreExpandedInOrder(t *testing.T) {
	g := rdf.NewMemGraph().
		MustAdd(iri("uri:a"), iri("uri:p"), rdf.Literal("value1")).
		MustAdd(iri("uri:b"), iri("uri:p"), rdf.Literal("value2"))
	tr := buildList(t, g, iri("uri:b"), iri("uri:a"))

	assert.True(t, tr.IsList())
	assert.True(t, tr.Root().IsList())
	assert.Equal(t,
		"(list)\n"+
			"  <uri:b>\n"+
			"    uri:p \"value2\"\n"+
			"  <uri:a>\n"+
			"    uri:p \"value1\"\n",
		outline(tr))
}

func TestReferencesToListItemsStopNesting(t *testing.T) {
	g := rdf.NewMemGraph().
		MustAdd(iri("uri:a"), iri("uri:p"), iri("uri:b")).
		MustAdd(iri("uri:a"), iri("uri:v"), rdf.Literal("value1")).
		MustAdd(iri("uri:b"), iri("uri:v"), rdf.Literal("value2"))
	tr := buildList(t, g, iri("uri:a"), iri("uri:b"))

	assert.Equal(t,
		"(list)\n"+
			"  <uri:a>\n"+
			"    uri:v \"value1\"\n"+
			"    uri:p <uri:b>\n"+
			"  <uri:b>\n"+
			"    uri:v \"value2\"\n"+
			"    ~uri:p <uri:a>\n",
		outline(tr))
}

func TestReferencesToHigherNodesStopNesting(t *testing.T) {
	g := rdf.NewMemGraph().
		MustAdd(iri("uri:a"), iri("uri:p"), iri("uri:ref")).
		MustAdd(iri("uri:b"), iri("uri:p"), iri("uri:bb")).
		MustAdd(iri("uri:bb"), iri("uri:pp"), iri("uri:ref"))

	tests := []struct {
		name  string
		items []rdf.Node
		want  string
	}{
		{
			name:  "list order a, b",
			items: []rdf.Node{iri("uri:a"), iri("uri:b")},
			want: "(list)\n" +
				"  <uri:a>\n" +
				"    uri:p <uri:ref>\n" +
				"  <uri:b>\n" +
				"    uri:p <uri:bb>\n" +
				"      uri:pp <uri:ref>\n",
		},
		{
			name:  "list order b, a",
			items: []rdf.Node{iri("uri:b"), iri("uri:a")},
			want: "(list)\n" +
				"  <uri:b>\n" +
				"    uri:p <uri:bb>\n" +
				"      uri:pp <uri:ref>\n" +
				"  <uri:a>\n" +
				"    uri:p <uri:ref>\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, outline(buildList(t, g, tt.items...)))
		})
	}
}

func TestListDepths(t *testing.T) {
	g := rdf.NewMemGraph().
		MustAdd(iri("uri:a"), iri("uri:p"), iri("uri:c")).
		MustAdd(iri("uri:c"), iri("uri:p"), iri("uri:d"))
	tr := buildList(t, g, iri("uri:a"))

	assert.Equal(t, 0, tr.DepthOf("uri:c"))
	assert.Equal(t, 1, tr.DepthOf("uri:d"))
	assert.Equal(t, -1, tr.DepthOf("uri:a"))
}

func TestEmpty(t *testing.T) {
	g := rdf.NewMemGraph()
	tr := Empty(resolverFor(t, g))

	assert.True(t, tr.IsEmpty())
	assert.True(t, tr.IsList())
	assert.Empty(t, tr.Root().Children())
	assert.Equal(t, 1, tr.Len())
	assert.Equal(t, -1, tr.TotalResults)
}

func TestBlankRoot(t *testing.T) {
	blank := rdf.Blank("b0")
	g := rdf.NewMemGraph().MustAdd(blank, rdf.RDFType, iri("urn:a"))
	tr := buildItem(t, g, blank)

	assert.Equal(t, "_:b0\n  type <urn:a>\n", outline(tr))
	assert.Equal(t, iri("urn:a"), tr.Root().Type())
}
