package store

import (
	"fmt"
	"sort"
	"strings"
)

// PrefixMapping associates a short prefix label with its full namespace URI.
type PrefixMapping struct {
	Prefix    string
	Namespace string
}

// TurtleSerializer converts a TripleStore into W3C-compliant Turtle (TTL) format.
type TurtleSerializer struct {
	prefixMappings []PrefixMapping
	prefixIndex    map[string]string // prefix -> namespace
	namespaceIndex map[string]string // namespace -> prefix
}

// TurtleOption is a functional option for configuring the TurtleSerializer.
type TurtleOption func(*TurtleSerializer)

// NewTurtleSerializer creates a TurtleSerializer with standard prefix declarations.
func NewTurtleSerializer(options ...TurtleOption) *TurtleSerializer {
	serializer := &TurtleSerializer{
		prefixMappings: defaultPrefixMappings(),
	}

	for _, option := range options {
		option(serializer)
	}

	serializer.rebuildIndexes()

	return serializer
}

// WithPrefix adds or overrides a prefix mapping.
func WithPrefix(prefix, namespace string) TurtleOption {
	return func(serializer *TurtleSerializer) {
		serializer.prefixMappings = append(serializer.prefixMappings, PrefixMapping{
			Prefix:    prefix,
			Namespace: namespace,
		})
	}
}

// WithPrefixes adds several prefix mappings at once.
func WithPrefixes(mappings []PrefixMapping) TurtleOption {
	return func(serializer *TurtleSerializer) {
		serializer.prefixMappings = append(serializer.prefixMappings, mappings...)
	}
}

// WithoutDefaultPrefixes clears default prefixes so only custom ones are used.
func WithoutDefaultPrefixes() TurtleOption {
	return func(serializer *TurtleSerializer) {
		serializer.prefixMappings = nil
	}
}

func defaultPrefixMappings() []PrefixMapping {
	return []PrefixMapping{
		{Prefix: "rdf", Namespace: NamespaceRDF},
		{Prefix: "rdfs", Namespace: NamespaceRDFS},
		{Prefix: "xsd", Namespace: NamespaceXSD},
	}
}

// rebuildIndexes lets later mappings override earlier ones for the same prefix.
func (serializer *TurtleSerializer) rebuildIndexes() {
	serializer.prefixIndex = make(map[string]string, len(serializer.prefixMappings))
	for _, mapping := range serializer.prefixMappings {
		serializer.prefixIndex[mapping.Prefix] = mapping.Namespace
	}

	serializer.namespaceIndex = make(map[string]string, len(serializer.prefixIndex))
	for prefix, namespace := range serializer.prefixIndex {
		serializer.namespaceIndex[namespace] = prefix
	}
}

// Extension returns ".ttl".
func (serializer *TurtleSerializer) Extension() string {
	return ".ttl"
}

// Serialize converts all triples in the store to Turtle format.
func (serializer *TurtleSerializer) Serialize(store *TripleStore) string {
	var builder strings.Builder

	serializer.writePrefixDeclarations(&builder)

	subjects := store.Subjects()
	sort.Slice(subjects, func(i, j int) bool {
		return subjects[i].NTriples() < subjects[j].NTriples()
	})

	for subjectIndex, subject := range subjects {
		if subjectIndex > 0 {
			builder.WriteString("\n")
		}
		serializer.writeSubjectGroup(&builder, store, subject)
	}

	return builder.String()
}

func (serializer *TurtleSerializer) writePrefixDeclarations(builder *strings.Builder) {
	prefixes := sortedKeys(serializer.prefixIndex)

	for _, prefix := range prefixes {
		fmt.Fprintf(builder, "@prefix %s: <%s> .\n", prefix, serializer.prefixIndex[prefix])
	}

	if len(prefixes) > 0 {
		builder.WriteString("\n")
	}
}

func (serializer *TurtleSerializer) writeSubjectGroup(builder *strings.Builder, store *TripleStore, subject Term) {
	builder.WriteString(serializer.formatTerm(subject))

	sortedPredicates := serializer.sortPredicatesTypeFirst(store.Predicates(subject))

	for predicateIndex, predicate := range sortedPredicates {
		objects := store.Objects(subject, predicate)
		sort.Slice(objects, func(i, j int) bool {
			return objects[i].NTriples() < objects[j].NTriples()
		})

		if predicateIndex == 0 {
			builder.WriteString(" ")
		} else {
			builder.WriteString(" ;\n    ")
		}

		builder.WriteString(serializer.formatPredicate(predicate))

		for objectIndex, object := range objects {
			if objectIndex > 0 {
				builder.WriteString(" ,\n        ")
			} else {
				builder.WriteString(" ")
			}
			builder.WriteString(serializer.formatTerm(object))
		}
	}

	builder.WriteString(" .\n")
}

// formatPredicate formats a predicate, using "a" shorthand for rdf:type.
func (serializer *TurtleSerializer) formatPredicate(predicate Term) string {
	if predicate == RDFType {
		return "a"
	}
	return serializer.formatTerm(predicate)
}

// formatTerm formats any term, compacting IRIs and datatypes where a prefix applies.
func (serializer *TurtleSerializer) formatTerm(term Term) string {
	switch term.Kind {
	case KindIRI:
		if compacted, ok := serializer.compactURI(term.Value); ok {
			return compacted
		}
		return term.NTriples()
	case KindLiteral:
		literal := `"` + escapeLiteralString(term.Value) + `"`
		if term.Language != "" {
			return literal + "@" + term.Language
		}
		if term.Datatype != "" {
			return literal + "^^" + serializer.formatTerm(NewIRI(term.Datatype))
		}
		return literal
	default:
		return term.NTriples()
	}
}

// compactURI replaces a full namespace URI with its prefix form.
func (serializer *TurtleSerializer) compactURI(fullURI string) (string, bool) {
	// Try longest namespace match first for correctness
	bestPrefix := ""
	bestNamespace := ""
	for namespace, prefix := range serializer.namespaceIndex {
		if strings.HasPrefix(fullURI, namespace) && len(namespace) > len(bestNamespace) {
			localName := fullURI[len(namespace):]
			if isValidLocalName(localName) {
				bestPrefix = prefix
				bestNamespace = namespace
			}
		}
	}

	if bestNamespace != "" {
		return bestPrefix + ":" + fullURI[len(bestNamespace):], true
	}
	return "", false
}

// sortPredicatesTypeFirst sorts predicates with rdf:type first, then by IRI.
func (serializer *TurtleSerializer) sortPredicatesTypeFirst(predicates []Term) []Term {
	sorted := make([]Term, 0, len(predicates))
	hasRDFType := false

	for _, predicate := range predicates {
		if predicate == RDFType {
			hasRDFType = true
			continue
		}
		sorted = append(sorted, predicate)
	}

	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Value < sorted[j].Value
	})

	if hasRDFType {
		sorted = append([]Term{RDFType}, sorted...)
	}

	return sorted
}

// isValidLocalName checks if a string is a valid Turtle local name.
func isValidLocalName(localName string) bool {
	if localName == "" {
		return false
	}
	if strings.HasSuffix(localName, ".") {
		return false
	}
	return !strings.ContainsAny(localName, " \t\n\r<>\"{}|^`\\/#?:()[],;'=&%@!$*+~")
}

// sortedKeys returns the keys of a map sorted alphabetically.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
