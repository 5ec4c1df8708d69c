package label

import (
	"errors"
	"fmt"

	"github.com/coolbeans/addlabels/pkg/store"
)

// MutableGraph is a Graph that a change set can be applied to.
type MutableGraph interface {
	Graph
	AddTriple(triple store.Triple) error
	RemoveTriple(triple store.Triple) bool
}

// Stats counts what one pass did. Every subject lands in exactly one of
// NewLabels, ModifiedLabels, RetainedLabels and NoLabelMade.
type Stats struct {
	Subjects       int `json:"subjects"`
	NewLabels      int `json:"new_labels"`
	ModifiedLabels int `json:"modified_labels"`
	RetainedLabels int `json:"retained_labels"`
	NoLabelMade    int `json:"no_label_made"`
}

// Outcomes returns the sum of the four per-subject counters.
func (s Stats) Outcomes() int {
	return s.NewLabels + s.ModifiedLabels + s.RetainedLabels + s.NoLabelMade
}

// Add accumulates other into s.
func (s *Stats) Add(other Stats) {
	s.Subjects += other.Subjects
	s.NewLabels += other.NewLabels
	s.ModifiedLabels += other.ModifiedLabels
	s.RetainedLabels += other.RetainedLabels
	s.NoLabelMade += other.NoLabelMade
}

// ChangeSet is the patch computed by one pass over one graph.
type ChangeSet struct {
	Assertions  []store.Triple
	Retractions []store.Triple
	Stats       Stats
	Diagnostics []Diagnostic
}

// Empty reports whether applying the change set would be a no-op.
func (cs *ChangeSet) Empty() bool {
	return len(cs.Assertions) == 0 && len(cs.Retractions) == 0
}

// Apply removes every retraction from g, then adds every assertion.
func (cs *ChangeSet) Apply(g MutableGraph) error {
	for _, triple := range cs.Retractions {
		g.RemoveTriple(triple)
	}

	var errs []error
	for _, triple := range cs.Assertions {
		if err := g.AddTriple(triple); err != nil {
			errs = append(errs, fmt.Errorf("failed to assert %s: %w", triple, err))
		}
	}
	return errors.Join(errs...)
}

// Builder computes change sets.
type Builder struct {
	rules     []TypeRule
	strategy  Strategy
	normalize func(string) string
}

// Option configures a Builder.
type Option func(*Builder)

// WithStrategy selects the classification strategy.
func WithStrategy(strategy Strategy) Option {
	return func(b *Builder) {
		b.strategy = strategy
	}
}

// WithRules replaces the type rule table.
func WithRules(rules []TypeRule) Option {
	return func(b *Builder) {
		b.rules = rules
	}
}

// NewBuilder creates a builder with the default rule table and the
// statement-order strategy.
func NewBuilder(options ...Option) *Builder {
	builder := &Builder{
		rules:     DefaultRules(),
		strategy:  StrategyStatementOrder,
		normalize: Normalize,
	}

	for _, option := range options {
		option(builder)
	}

	return builder
}

// Build makes one read-only pass over g and returns the change set. The
// graph is not modified.
//
// Synthesized labels go through Normalize like existing ones, so an agent
// whose foaf:name is "Author" is labelled "Author Contribution".
func (b *Builder) Build(g Graph) *ChangeSet {
	synthesizer := NewSynthesizer(NewClassifier(b.rules, b.strategy))
	changes := &ChangeSet{}

	for _, subject := range g.Subjects() {
		changes.Stats.Subjects++

		labels := g.Objects(subject, store.RDFSLabel)
		if len(labels) == 0 {
			b.synthesize(g, synthesizer, subject, changes)
			continue
		}
		b.normalizeExisting(subject, labels, changes)
	}

	return changes
}

func (b *Builder) synthesize(g Graph, synthesizer *Synthesizer, subject store.Term, changes *ChangeSet) {
	result := synthesizer.Synthesize(g, subject)
	changes.Diagnostics = append(changes.Diagnostics, result.Diagnostics...)

	if !result.OK {
		changes.Stats.NoLabelMade++
		return
	}

	// New labels are written in canonical form so a second pass has nothing
	// left to normalize.
	label := store.NewLiteral(b.normalize(result.Label))
	changes.Assertions = append(changes.Assertions, store.NewTriple(subject, store.RDFSLabel, label))
	changes.Stats.NewLabels++
}

func (b *Builder) normalizeExisting(subject store.Term, labels []store.Term, changes *ChangeSet) {
	modified := false

	for _, original := range labels {
		if !original.IsLiteral() {
			continue
		}
		normalized := b.normalize(original.Value)
		if normalized == original.Value {
			continue
		}

		changes.Retractions = append(changes.Retractions, store.NewTriple(subject, store.RDFSLabel, original))
		changes.Assertions = append(changes.Assertions,
			store.NewTriple(subject, store.RDFSLabel, original.WithValue(normalized)))
		modified = true
	}

	if modified {
		changes.Stats.ModifiedLabels++
	} else {
		changes.Stats.RetainedLabels++
	}
}
