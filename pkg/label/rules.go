// Package label decides which rdfs:label each resource of a graph should
// carry and turns those decisions into a change set.
package label

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/coolbeans/addlabels/pkg/store"
	"github.com/coolbeans/addlabels/pkg/vocab"
)

var (
	// ErrNoValue means the data a rule needs is absent. It is the normal
	// "no label" outcome, not a failure.
	ErrNoValue = errors.New("no value")

	// ErrUnexpectedTerm means a property held an IRI or blank node where a
	// literal was required, or the reverse.
	ErrUnexpectedTerm = errors.New("unexpected term")

	// ErrDispatch means a rule could not be invoked.
	ErrDispatch = errors.New("rule dispatch failed")
)

// Graph is the read-only view of a store that rules and the builder use.
type Graph interface {
	Subjects() []store.Term
	Objects(subject, predicate store.Term) []store.Term
}

// Rule derives a label for subject from the graph. It returns ErrNoValue
// (possibly wrapped) when the graph holds nothing to build a label from.
type Rule func(g Graph, subject store.Term) (string, error)

// PropertyRule returns a rule that reads the first literal value of property.
func PropertyRule(property vocab.Term) Rule {
	predicate := property.Resource()
	return func(g Graph, subject store.Term) (string, error) {
		return literalValue(g, subject, predicate)
	}
}

// TitleRule follows ld4l:hasTitle to the title resource and returns that
// resource's own rdfs:label.
func TitleRule(g Graph, subject store.Term) (string, error) {
	titles := g.Objects(subject, vocab.HasTitle.Resource())
	if len(titles) == 0 {
		return "", fmt.Errorf("%w: %s", ErrNoValue, vocab.HasTitle.LocalName)
	}

	title := titles[0]
	if !title.IsResource() {
		return "", fmt.Errorf("%w: %s is a literal, want a title resource", ErrUnexpectedTerm, vocab.HasTitle.LocalName)
	}

	return literalValue(g, title, store.RDFSLabel)
}

// NoRule never produces a label. It backs table entries whose match only
// stops classification and leaves the label to the fallback.
func NoRule(Graph, store.Term) (string, error) {
	return "", ErrNoValue
}

// Fallback builds "value (Type Name)" from rdf:value and the first rdf:type.
// A resource without either gets no label.
func Fallback(g Graph, subject store.Term) (string, error) {
	value, err := literalValue(g, subject, store.RDFValue)
	if err != nil {
		return "", err
	}

	types := g.Objects(subject, store.RDFType)
	if len(types) == 0 {
		return "", fmt.Errorf("%w: no type to annotate rdf:value", ErrNoValue)
	}

	return value + " (" + SplitCamelCase(types[0].LocalName()) + ")", nil
}

// SplitCamelCase inserts a space at every lowercase-to-uppercase transition:
// "SomeThing" becomes "Some Thing".
func SplitCamelCase(name string) string {
	var builder strings.Builder
	builder.Grow(len(name) + 4)

	previous := rune(0)
	for _, char := range name {
		if unicode.IsLower(previous) && unicode.IsUpper(char) {
			builder.WriteRune(' ')
		}
		builder.WriteRune(char)
		previous = char
	}

	return builder.String()
}

// literalValue returns the lexical value of the first object of predicate.
// Empty strings count as no value.
func literalValue(g Graph, subject, predicate store.Term) (string, error) {
	objects := g.Objects(subject, predicate)
	if len(objects) == 0 {
		return "", fmt.Errorf("%w: %s", ErrNoValue, predicate.LocalName())
	}

	object := objects[0]
	if !object.IsLiteral() {
		return "", fmt.Errorf("%w: %s is %s %s, want literal",
			ErrUnexpectedTerm, predicate.LocalName(), object.Kind, object.NTriples())
	}
	if object.Value == "" {
		return "", fmt.Errorf("%w: %s is empty", ErrNoValue, predicate.LocalName())
	}

	return object.Value, nil
}
