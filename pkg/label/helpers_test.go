package label

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/coolbeans/addlabels/pkg/store"
	"github.com/coolbeans/addlabels/pkg/vocab"
)

const exampleNS = "http://example.org/"

func iri(local string) store.Term {
	return store.NewIRI(exampleNS + local)
}

func lit(value string) store.Term {
	return store.NewLiteral(value)
}

// graphOf builds a store from (subject, predicate, object) triples, in order.
func graphOf(t *testing.T, triples ...store.Triple) *store.TripleStore {
	t.Helper()
	ts := store.NewTripleStore()
	for _, triple := range triples {
		require.NoError(t, ts.AddTriple(triple))
	}
	return ts
}

func typed(subject store.Term, class vocab.Term) store.Triple {
	return store.NewTriple(subject, store.RDFType, class.Resource())
}

func prop(subject store.Term, property vocab.Term, object store.Term) store.Triple {
	return store.NewTriple(subject, property.Resource(), object)
}

func labelled(subject store.Term, value string) store.Triple {
	return store.NewTriple(subject, store.RDFSLabel, lit(value))
}

func valued(subject store.Term, value string) store.Triple {
	return store.NewTriple(subject, store.RDFValue, lit(value))
}
