package label

import (
	"errors"
	"fmt"

	"github.com/coolbeans/addlabels/pkg/store"
)

// FallbackRuleName names the type-agnostic rdf:value rule in results.
const FallbackRuleName = "fallback"

// DiagnosticKind classifies a diagnostic.
type DiagnosticKind string

const (
	// DiagnosticMissingValue reports a rule that found nothing to build from.
	DiagnosticMissingValue DiagnosticKind = "missing_value"

	// DiagnosticDispatchFailure reports a rule that failed or returned
	// something unusable. The resource is treated as if the rule found no
	// value.
	DiagnosticDispatchFailure DiagnosticKind = "dispatch_failure"
)

// Diagnostic is a note about one resource, for the caller to log.
type Diagnostic struct {
	Kind    DiagnosticKind
	Subject store.Term
	Rule    string
	Err     error
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s rule for %s: %v", d.Kind, d.Rule, d.Subject.NTriples(), d.Err)
}

// Synthesis is the outcome of labelling one resource.
type Synthesis struct {
	Label string
	OK    bool

	// Classified names the type rule the classifier selected, if any.
	Classified string

	// Rule names the rule that produced Label: a type rule name or
	// FallbackRuleName.
	Rule string

	Diagnostics []Diagnostic
}

// Synthesizer builds labels for unlabelled resources.
type Synthesizer struct {
	classifier *Classifier
}

// NewSynthesizer creates a synthesizer that dispatches through classifier.
func NewSynthesizer(classifier *Classifier) *Synthesizer {
	return &Synthesizer{classifier: classifier}
}

// Synthesize classifies subject and runs its rule, falling back to the
// rdf:value rule when there is no rule or the rule yields no label.
func (s *Synthesizer) Synthesize(g Graph, subject store.Term) Synthesis {
	var result Synthesis

	if typeRule, ok := s.classifier.Classify(g, subject); ok {
		result.Classified = typeRule.Name

		label, err := invoke(typeRule.Name, typeRule.Rule, g, subject)
		switch {
		case err == nil:
			result.Label, result.OK, result.Rule = label, true, typeRule.Name
			return result
		case errors.Is(err, ErrNoValue):
			if typeRule.ReportMissing {
				result.Diagnostics = append(result.Diagnostics, Diagnostic{
					Kind: DiagnosticMissingValue, Subject: subject, Rule: typeRule.Name, Err: err,
				})
			}
		default:
			result.Diagnostics = append(result.Diagnostics, Diagnostic{
				Kind: DiagnosticDispatchFailure, Subject: subject, Rule: typeRule.Name, Err: err,
			})
		}
	}

	label, err := invoke(FallbackRuleName, Fallback, g, subject)
	switch {
	case err == nil:
		result.Label, result.OK, result.Rule = label, true, FallbackRuleName
	case !errors.Is(err, ErrNoValue):
		result.Diagnostics = append(result.Diagnostics, Diagnostic{
			Kind: DiagnosticDispatchFailure, Subject: subject, Rule: FallbackRuleName, Err: err,
		})
	}

	return result
}

// invoke runs rule, turning a nil rule or a panic into an ErrDispatch error.
func invoke(name string, rule Rule, g Graph, subject store.Term) (label string, err error) {
	if rule == nil {
		return "", fmt.Errorf("%w: %s has no rule function", ErrDispatch, name)
	}

	defer func() {
		if r := recover(); r != nil {
			label = ""
			err = fmt.Errorf("%w: %s panicked: %v", ErrDispatch, name, r)
		}
	}()

	return rule(g, subject)
}
