package label

import (
	"fmt"

	"github.com/coolbeans/addlabels/pkg/store"
	"github.com/coolbeans/addlabels/pkg/vocab"
)

// TypeRule binds a class to the rule that labels its instances.
type TypeRule struct {
	Type store.Term
	Name string
	Rule Rule

	// ReportMissing asks for a diagnostic when the rule finds no value.
	ReportMissing bool
}

// DefaultRules returns the type rule table. Order is significant: it is the
// priority order, and within one rdf:type statement the first match wins.
func DefaultRules() []TypeRule {
	return []TypeRule{
		{Type: vocab.Work.Resource(), Name: "work", Rule: TitleRule},
		{Type: vocab.Instance.Resource(), Name: "instance", Rule: TitleRule},
		{Type: vocab.Person.Resource(), Name: "person", Rule: PropertyRule(vocab.Name)},
		{Type: vocab.Organization.Resource(), Name: "organization", Rule: PropertyRule(vocab.Name)},
		{Type: vocab.Agent.Resource(), Name: "agent", Rule: PropertyRule(vocab.Name)},
		{Type: vocab.Authority.Resource(), Name: "authority", Rule: PropertyRule(vocab.AuthoritativeLabel)},
		{Type: vocab.Topic.Resource(), Name: "topic", Rule: PropertyRule(vocab.PrefLabel), ReportMissing: true},
		{Type: vocab.Location.Resource(), Name: "location", Rule: PropertyRule(vocab.Name)},
		{Type: vocab.Language.Resource(), Name: "language", Rule: NoRule},
	}
}

// Strategy selects how a resource with several known types is classified.
type Strategy string

const (
	// StrategyStatementOrder walks the resource's rdf:type statements in
	// store order and stops at the first one that matches the table. A
	// later statement never overrides an earlier match, even when its type
	// ranks higher in the table.
	StrategyStatementOrder Strategy = "statement-order"

	// StrategyPriority picks the highest-ranked table entry among all of the
	// resource's types.
	StrategyPriority Strategy = "priority"
)

// ParseStrategy validates a strategy name. The empty string selects
// StrategyStatementOrder.
func ParseStrategy(name string) (Strategy, error) {
	switch Strategy(name) {
	case "", StrategyStatementOrder:
		return StrategyStatementOrder, nil
	case StrategyPriority:
		return StrategyPriority, nil
	default:
		return "", fmt.Errorf("unknown classification strategy %q (want %s or %s)",
			name, StrategyStatementOrder, StrategyPriority)
	}
}

// Classifier picks the type rule governing a resource.
type Classifier struct {
	rules    []TypeRule
	byType   map[store.Term]int
	strategy Strategy
}

// NewClassifier creates a classifier over rules. If a type appears more than
// once, its first entry wins.
func NewClassifier(rules []TypeRule, strategy Strategy) *Classifier {
	byType := make(map[store.Term]int, len(rules))
	for i, rule := range rules {
		if _, exists := byType[rule.Type]; !exists {
			byType[rule.Type] = i
		}
	}

	return &Classifier{
		rules:    rules,
		byType:   byType,
		strategy: strategy,
	}
}

// Classify returns the rule for subject, or false if none of its types is in
// the table.
func (c *Classifier) Classify(g Graph, subject store.Term) (TypeRule, bool) {
	types := g.Objects(subject, store.RDFType)

	if c.strategy == StrategyPriority {
		best := -1
		for _, typ := range types {
			if i, ok := c.byType[typ]; ok && (best < 0 || i < best) {
				best = i
			}
		}
		if best < 0 {
			return TypeRule{}, false
		}
		return c.rules[best], true
	}

	for _, typ := range types {
		if i, ok := c.byType[typ]; ok {
			return c.rules[i], true
		}
	}
	return TypeRule{}, false
}
