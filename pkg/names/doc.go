// Package names assigns short display names to the resources of a graph.
//
// A [Resolver] is built once per graph. Every IRI that appears as a subject,
// predicate or resource object, and whose namespace has a registered prefix,
// is registered under its local name. When two resources share a local name
// the one from the higher priority namespace keeps the bare name and the
// other is registered as prefix_local. Priority is the position in the list
// rdf, owl, followed by [Options.Namespaces]; namespaces outside the list
// rank last and are ordered lexicographically among themselves.
//
// Overrides pin a resource to a fixed name. A bare local name reserved by an
// override is never given to another resource.
//
//	r, err := names.New(g, names.Options{
//	    Namespaces: []string{"http://example.org/core/"},
//	    Overrides:  map[string]string{"http://example.org/core/label": "title"},
//	})
//	if err != nil {
//	    return err // errors.ErrCodeInvalidOverrides
//	}
//	fmt.Println(r.Name(rdf.IRI("http://example.org/core/name")))
package names
