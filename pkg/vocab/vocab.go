// Package vocab defines the ontology namespaces and terms the labeller reads
// and writes.
//
// References:
//   - LD4L bibliographic ontology: http://bib.ld4l.org/ontology/
//   - FOAF: http://xmlns.com/foaf/spec/
//   - MADS/RDF: https://www.loc.gov/standards/mads/rdf/
//   - PROV-O: https://www.w3.org/TR/prov-o/
//   - SKOS: https://www.w3.org/TR/skos-reference/
package vocab

import (
	"github.com/coolbeans/addlabels/pkg/store"
)

// Namespace URIs.
const (
	NamespaceFOAF    = "http://xmlns.com/foaf/0.1/"
	NamespaceLD4L    = "http://bib.ld4l.org/ontology/"
	NamespaceLingvo  = "http://www.lingvoj.org/ontology#"
	NamespaceMADSRDF = "http://www.loc.gov/mads/rdf/v1#"
	NamespacePROV    = "http://www.w3.org/ns/prov#"
	NamespaceSKOS    = "http://www.w3.org/2004/02/skos/core#"
)

// Term is a vocabulary term: a local name within a namespace.
type Term struct {
	Namespace string
	LocalName string
}

// IRI returns the full IRI of the term.
func (t Term) IRI() string {
	return t.Namespace + t.LocalName
}

// Resource returns the term as a store IRI.
func (t Term) Resource() store.Term {
	return store.NewIRI(t.IRI())
}

// Classes with a dedicated labelling rule.
var (
	Work         = Term{NamespaceLD4L, "Work"}
	Instance     = Term{NamespaceLD4L, "Instance"}
	Person       = Term{NamespaceFOAF, "Person"}
	Organization = Term{NamespaceFOAF, "Organization"}
	Agent        = Term{NamespaceFOAF, "Agent"}
	Authority    = Term{NamespaceMADSRDF, "Authority"}
	Topic        = Term{NamespaceLD4L, "Topic"}
	Location     = Term{NamespacePROV, "Location"}
	Language     = Term{NamespaceLingvo, "Lingvo"}
)

// Properties read when building labels.
var (
	// HasTitle links a Work or Instance to its Title resource.
	HasTitle = Term{NamespaceLD4L, "hasTitle"}

	// Name is the plain-text name of a person, organization, agent or place.
	Name = Term{NamespaceFOAF, "name"}

	// AuthoritativeLabel is the heading of an authority record.
	AuthoritativeLabel = Term{NamespaceMADSRDF, "authoritativeLabel"}

	// PrefLabel is the preferred label of a concept.
	PrefLabel = Term{NamespaceSKOS, "prefLabel"}
)

// Prefixes returns the prefix mappings used when writing Turtle.
func Prefixes() []store.PrefixMapping {
	return []store.PrefixMapping{
		{Prefix: "foaf", Namespace: NamespaceFOAF},
		{Prefix: "ld4l", Namespace: NamespaceLD4L},
		{Prefix: "lingvo", Namespace: NamespaceLingvo},
		{Prefix: "madsrdf", Namespace: NamespaceMADSRDF},
		{Prefix: "prov", Namespace: NamespacePROV},
		{Prefix: "skos", Namespace: NamespaceSKOS},
	}
}
