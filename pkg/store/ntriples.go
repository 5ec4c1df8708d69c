package store

import (
	"sort"
	"strings"
)

// Serializer renders a whole store in one RDF syntax.
type Serializer interface {
	Serialize(store *TripleStore) string

	// Extension is the file extension, including the dot, for this syntax.
	Extension() string
}

// NTriplesSerializer writes one statement per line in canonical N-Triples.
// Lines are sorted so the same graph always produces the same bytes.
type NTriplesSerializer struct{}

// NewNTriplesSerializer creates an N-Triples serializer.
func NewNTriplesSerializer() *NTriplesSerializer {
	return &NTriplesSerializer{}
}

// Serialize converts all triples in the store to N-Triples.
func (serializer *NTriplesSerializer) Serialize(store *TripleStore) string {
	triples := store.All()
	lines := make([]string, 0, len(triples))
	for _, triple := range triples {
		lines = append(lines, triple.NTriples())
	}
	sort.Strings(lines)

	var builder strings.Builder
	for _, line := range lines {
		builder.WriteString(line)
		builder.WriteString("\n")
	}
	return builder.String()
}

// Extension returns ".nt".
func (serializer *NTriplesSerializer) Extension() string {
	return ".nt"
}
