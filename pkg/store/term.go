package store

import (
	"strings"
)

// TermKind distinguishes the three kinds of RDF term.
type TermKind uint8

const (
	// KindIRI is a resource named by an IRI.
	KindIRI TermKind = iota + 1

	// KindBlank is a blank node, scoped to the graph it was read from.
	KindBlank

	// KindLiteral is a lexical value with an optional language tag or datatype.
	KindLiteral
)

// String returns the kind name.
func (k TermKind) String() string {
	switch k {
	case KindIRI:
		return "iri"
	case KindBlank:
		return "blank"
	case KindLiteral:
		return "literal"
	default:
		return "unknown"
	}
}

// Term is a single RDF term. Terms are comparable and are used directly as
// index keys by the TripleStore.
//
// Plain literals carry an empty Datatype; language-tagged literals carry the
// tag in Language and an empty Datatype.
type Term struct {
	Kind     TermKind
	Value    string
	Language string
	Datatype string
}

// NewIRI creates an IRI term.
func NewIRI(iri string) Term {
	return Term{Kind: KindIRI, Value: iri}
}

// NewBlank creates a blank node term from its label (without the "_:" prefix).
func NewBlank(label string) Term {
	return Term{Kind: KindBlank, Value: strings.TrimPrefix(label, "_:")}
}

// NewLiteral creates a plain string literal.
func NewLiteral(value string) Term {
	return Term{Kind: KindLiteral, Value: value}
}

// NewLangLiteral creates a language-tagged literal.
func NewLangLiteral(value, language string) Term {
	return Term{Kind: KindLiteral, Value: value, Language: strings.ToLower(language)}
}

// NewTypedLiteral creates a literal with an explicit datatype. The xsd:string
// and rdf:langString datatypes collapse to a plain literal.
func NewTypedLiteral(value, datatype string) Term {
	if datatype == XSDString || datatype == RDFLangString {
		datatype = ""
	}
	return Term{Kind: KindLiteral, Value: value, Datatype: datatype}
}

// IsZero reports whether the term is the zero value.
func (t Term) IsZero() bool {
	return t.Kind == 0
}

// IsIRI reports whether the term is an IRI.
func (t Term) IsIRI() bool {
	return t.Kind == KindIRI
}

// IsBlank reports whether the term is a blank node.
func (t Term) IsBlank() bool {
	return t.Kind == KindBlank
}

// IsLiteral reports whether the term is a literal.
func (t Term) IsLiteral() bool {
	return t.Kind == KindLiteral
}

// IsResource reports whether the term can be used as a subject.
func (t Term) IsResource() bool {
	return t.Kind == KindIRI || t.Kind == KindBlank
}

// WithValue returns a copy of a literal with a different lexical value,
// keeping its language tag and datatype.
func (t Term) WithValue(value string) Term {
	t.Value = value
	return t
}

// LocalName returns the part of an IRI after the last '#', '/' or ':'.
// Non-IRI terms return their value unchanged.
func (t Term) LocalName() string {
	if t.Kind != KindIRI {
		return t.Value
	}
	if index := strings.LastIndexAny(t.Value, "#/:"); index >= 0 {
		return t.Value[index+1:]
	}
	return t.Value
}

// String returns the N-Triples form of the term.
func (t Term) String() string {
	return t.NTriples()
}

// NTriples returns the term in N-Triples syntax.
func (t Term) NTriples() string {
	switch t.Kind {
	case KindIRI:
		return "<" + escapeIRI(t.Value) + ">"
	case KindBlank:
		return "_:" + t.Value
	case KindLiteral:
		literal := `"` + escapeLiteralString(t.Value) + `"`
		if t.Language != "" {
			return literal + "@" + t.Language
		}
		if t.Datatype != "" {
			return literal + "^^<" + escapeIRI(t.Datatype) + ">"
		}
		return literal
	default:
		return ""
	}
}

// escapeLiteralString escapes special characters per the N-Triples and
// Turtle string grammars.
func escapeLiteralString(value string) string {
	var builder strings.Builder
	builder.Grow(len(value) + len(value)/8)

	for _, char := range value {
		switch char {
		case '\\':
			builder.WriteString(`\\`)
		case '"':
			builder.WriteString(`\"`)
		case '\n':
			builder.WriteString(`\n`)
		case '\r':
			builder.WriteString(`\r`)
		case '\t':
			builder.WriteString(`\t`)
		default:
			builder.WriteRune(char)
		}
	}

	return builder.String()
}

// escapeIRI escapes characters not allowed in IRIs within angle brackets.
func escapeIRI(iri string) string {
	var builder strings.Builder
	builder.Grow(len(iri))

	for _, char := range iri {
		switch char {
		case '<':
			builder.WriteString(`\u003C`)
		case '>':
			builder.WriteString(`\u003E`)
		case '"':
			builder.WriteString(`\u0022`)
		case ' ':
			builder.WriteString(`\u0020`)
		case '{':
			builder.WriteString(`\u007B`)
		case '}':
			builder.WriteString(`\u007D`)
		default:
			builder.WriteRune(char)
		}
	}

	return builder.String()
}
