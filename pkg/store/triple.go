package store

// Triple represents an RDF Subject-Predicate-Object statement.
//   - Subject: an IRI or blank node
//   - Predicate: an IRI (e.g. rdfs:label, rdf:type)
//   - Object: an IRI, blank node or literal
type Triple struct {
	Subject   Term
	Predicate Term
	Object    Term
}

// NewTriple creates a new triple with the given components.
func NewTriple(subject, predicate, object Term) Triple {
	return Triple{
		Subject:   subject,
		Predicate: predicate,
		Object:    object,
	}
}

// String returns a human-readable representation of the triple.
func (t Triple) String() string {
	return t.Subject.NTriples() + " " + t.Predicate.NTriples() + " " + t.Object.NTriples()
}

// NTriples returns the triple as a single N-Triples line (without newline).
func (t Triple) NTriples() string {
	return t.String() + " ."
}

// IsValid returns true if all components are set and each sits in a
// position its kind is allowed in.
func (t Triple) IsValid() bool {
	return t.Subject.IsResource() && t.Predicate.IsIRI() && !t.Object.IsZero()
}
