package vocab

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/coolbeans/addlabels/pkg/store"
)

func TestTerm_IRI(t *testing.T) {
	assert.Equal(t, "http://bib.ld4l.org/ontology/Work", Work.IRI())
	assert.Equal(t, "http://www.loc.gov/mads/rdf/v1#authoritativeLabel", AuthoritativeLabel.IRI())
	assert.Equal(t, store.NewIRI("http://xmlns.com/foaf/0.1/name"), Name.Resource())
}

func TestTerm_LocalNameRoundTrip(t *testing.T) {
	for _, term := range []Term{Work, Instance, Person, Organization, Agent, Authority, Topic, Location, Language} {
		assert.Equal(t, term.LocalName, term.Resource().LocalName())
	}
}

func TestPrefixes_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for _, mapping := range Prefixes() {
		assert.False(t, seen[mapping.Prefix], "duplicate prefix %s", mapping.Prefix)
		seen[mapping.Prefix] = true
	}
}
