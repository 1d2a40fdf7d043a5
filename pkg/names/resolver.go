package names

import (
	"maps"
	"slices"
	"strings"

	"github.com/matzehuels/rdftree/pkg/errors"
	"github.com/matzehuels/rdftree/pkg/rdf"
)

// BlankName is the display name of every blank node.
const BlankName = "@blank"

// TypeName is the display name of rdf:type.
const TypeName = "type"

// ResourceType records how a resource was used in the graph.
type ResourceType int

const (
	// ResourceNone is a subject, a plain object or a predicate of literals.
	ResourceNone ResourceType = iota
	// ResourceVocab is a predicate whose objects live in a prefixed namespace.
	ResourceVocab
	// ResourceID is a predicate whose objects are unprefixed resources.
	ResourceID
)

// String returns the lowercase name of the type.
func (t ResourceType) String() string {
	switch t {
	case ResourceVocab:
		return "vocab"
	case ResourceID:
		return "id"
	default:
		return "none"
	}
}

// Entry is one registered display name.
type Entry struct {
	Key      string
	Resource rdf.Node
	Type     ResourceType
}

// Options configures a [Resolver].
type Options struct {
	// Namespaces are tried, in order, after rdf and owl when two resources
	// share a local name.
	Namespaces []string

	// Overrides maps resource IRIs to fixed names. It must be injective.
	Overrides map[string]string

	// IgnoreNamespace is never registered. Usually the result vocabulary.
	IgnoreNamespace string
}

// Resolver assigns short collision-free names to the resources of a graph.
// It is read-only after [New] returns and safe for concurrent use.
type Resolver struct {
	graph     rdf.Graph
	priority  []string
	overrides map[string]string // iri -> name
	reserved  map[string]string // name -> iri
	ignore    string
	mapped    map[string]Entry
}

// New scans every statement of g and registers its subjects, resource
// objects and predicates.
//
// New fails with an [errors.ErrCodeInvalidOverrides] error before reading
// the graph when two IRIs share an override name.
func New(g rdf.Graph, opts Options) (*Resolver, error) {
	if err := ValidateOverrides(opts.Overrides); err != nil {
		return nil, err
	}

	r := &Resolver{
		graph:     g,
		priority:  append([]string{rdf.RDFNamespace, rdf.OWLNamespace}, opts.Namespaces...),
		overrides: make(map[string]string, len(opts.Overrides)),
		reserved:  make(map[string]string, len(opts.Overrides)),
		ignore:    opts.IgnoreNamespace,
		mapped:    make(map[string]Entry),
	}
	for iri, name := range opts.Overrides {
		r.overrides[iri] = name
		r.reserved[name] = iri
	}

	for _, s := range g.Statements(rdf.Pattern{}) {
		r.register(s.Subject, ResourceNone)

		typ := ResourceNone
		if s.Object.IsResource() {
			typ = ResourceID
			if ns := s.Object.Namespace(); ns != "" {
				if _, ok := g.NamespacePrefix(ns); ok {
					typ = ResourceVocab
				}
			}
			r.register(s.Object, ResourceNone)
		}
		r.register(s.Predicate, typ)
	}
	return r, nil
}

// ValidateOverrides checks that no two IRIs share an override name.
func ValidateOverrides(overrides map[string]string) error {
	byName := make(map[string][]string)
	for iri, name := range overrides {
		byName[name] = append(byName[name], iri)
	}
	var conflicts []string
	for _, name := range slices.Sorted(maps.Keys(byName)) {
		iris := byName[name]
		if len(iris) > 1 {
			slices.Sort(iris)
			conflicts = append(conflicts, name+" <- ["+strings.Join(iris, ", ")+"]")
		}
	}
	if len(conflicts) > 0 {
		return errors.New(errors.ErrCodeInvalidOverrides,
			"a name override cannot map to multiple URIs: %s", strings.Join(conflicts, "; "))
	}
	return nil
}

func (r *Resolver) register(res rdf.Node, typ ResourceType) {
	if !res.IsIRI() {
		return
	}
	ns, local := rdf.SplitIRI(res.Value)
	if ns == "" || local == "" || ns == r.ignore {
		return
	}
	prefix, ok := r.graph.NamespacePrefix(ns)
	if !ok {
		return
	}

	entry := Entry{Key: local, Resource: res, Type: typ}
	existing, taken := r.mapped[local]
	switch {
	case !taken:
		if owner, ok := r.reserved[local]; ok && owner != res.Value {
			entry.Key = prefix + "_" + local
		}
		r.mapped[entry.Key] = entry
	case existing.Resource == res:
		// already registered; the first usage decides the type
	case r.keepsName(existing.Resource, res):
		entry.Key = prefix + "_" + local
		r.mapped[entry.Key] = entry
	default:
		existingPrefix, _ := r.graph.NamespacePrefix(existing.Resource.Namespace())
		existing.Key = existingPrefix + "_" + local
		r.mapped[existing.Key] = existing
		r.mapped[local] = entry
	}
}

// keepsName reports whether existing keeps the bare local name it holds
// when candidate, which shares the local name, is registered.
func (r *Resolver) keepsName(existing, candidate rdf.Node) bool {
	if owner, ok := r.reserved[candidate.LocalName()]; ok {
		if owner == existing.Value {
			return true
		}
		if owner == candidate.Value {
			return false
		}
	}

	existingNS, candidateNS := existing.Namespace(), candidate.Namespace()
	ei := slices.Index(r.priority, existingNS)
	ci := slices.Index(r.priority, candidateNS)
	switch {
	case ei == -1 && ci == -1:
		return existingNS < candidateNS
	case ei == -1:
		return false
	case ci == -1:
		return true
	default:
		return ei < ci
	}
}

// Name returns the short display name of res.
//
// Blank nodes are "@blank" and rdf:type is "type". A resource registered
// under its own local name gets that local name. Otherwise the name is
// prefix_local when a prefix is known and the full IRI when it is not.
func (r *Resolver) Name(res rdf.Node) string {
	if res.IsBlank() {
		return BlankName
	}
	if res == rdf.RDFType {
		return TypeName
	}
	local := res.LocalName()
	if e, ok := r.mapped[local]; ok && e.Resource == res {
		return local
	}
	if prefix, ok := r.PrefixForURI(res); ok && local != "" {
		return prefix + "_" + local
	}
	return res.Value
}

// PrefixedName returns res as a CURIE (prefix:local). Overrides win over
// the CURIE form and the full IRI is used when no prefix is known.
func (r *Resolver) PrefixedName(res rdf.Node) string {
	if res.IsBlank() {
		return BlankName
	}
	if res == rdf.RDFType {
		return TypeName
	}
	if name, ok := r.overrides[res.Value]; ok {
		return name
	}
	local := res.LocalName()
	if prefix, ok := r.PrefixForURI(res); ok && local != "" {
		return prefix + ":" + local
	}
	return res.Value
}

// Key returns the field name used for res in JSON output: "@type" for
// rdf:type, the override when one is set, otherwise [Resolver.Name].
func (r *Resolver) Key(res rdf.Node) string {
	if res == rdf.RDFType {
		return "@type"
	}
	if name, ok := r.overrides[res.Value]; ok {
		return name
	}
	return r.Name(res)
}

// PrefixForURI returns the short prefix for the namespace of res.
// rdf and owl always resolve; overridden IRIs never do.
func (r *Resolver) PrefixForURI(res rdf.Node) (string, bool) {
	if !res.IsIRI() {
		return "", false
	}
	ns := res.Namespace()
	switch ns {
	case rdf.RDFNamespace:
		return "rdf", true
	case rdf.OWLNamespace:
		return "owl", true
	}
	if _, ok := r.overrides[res.Value]; ok {
		return "", false
	}
	if ns == "" {
		return "", false
	}
	return r.graph.NamespacePrefix(ns)
}

// CompareNames orders two predicates. Resources without a registered local
// name sort before registered ones; ties fall back to [Resolver.Name].
func (r *Resolver) CompareNames(a, b rdf.Node) int {
	_, aMapped := r.mapped[a.LocalName()]
	_, bMapped := r.mapped[b.LocalName()]
	switch {
	case !aMapped && bMapped:
		return -1
	case aMapped && !bMapped:
		return 1
	}
	return strings.Compare(r.Name(a), r.Name(b))
}

// Lookup returns the entry registered under key.
func (r *Resolver) Lookup(key string) (Entry, bool) {
	e, ok := r.mapped[key]
	return e, ok
}

// Entries returns every registered entry ordered by key.
func (r *Resolver) Entries() []Entry {
	out := make([]Entry, 0, len(r.mapped))
	for _, k := range slices.Sorted(maps.Keys(r.mapped)) {
		out = append(out, r.mapped[k])
	}
	return out
}

// Len returns the number of registered entries.
func (r *Resolver) Len() int { return len(r.mapped) }
