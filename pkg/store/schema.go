// Package store provides an in-memory RDF triple store together with the
// loaders and serializers used to move graphs on and off disk.
package store

// Namespace URIs for the core RDF vocabularies.
const (
	// NamespaceRDF is the standard RDF namespace.
	NamespaceRDF = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"

	// NamespaceRDFS is the RDF Schema namespace.
	NamespaceRDFS = "http://www.w3.org/2000/01/rdf-schema#"

	// NamespaceXSD is the XML Schema namespace for datatypes.
	NamespaceXSD = "http://www.w3.org/2001/XMLSchema#"
)

// Datatype IRIs with special handling in literals.
const (
	// XSDString is the implicit datatype of a plain literal.
	XSDString = NamespaceXSD + "string"

	// RDFLangString is the datatype of a language-tagged literal.
	RDFLangString = NamespaceRDF + "langString"
)

// RDF standard predicates.
var (
	// RDFType indicates the class of a resource.
	RDFType = NewIRI(NamespaceRDF + "type")

	// RDFValue holds the principal value of a structured resource.
	RDFValue = NewIRI(NamespaceRDF + "value")

	// RDFSLabel provides a human-readable label.
	RDFSLabel = NewIRI(NamespaceRDFS + "label")
)
