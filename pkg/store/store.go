package store

import (
	"fmt"
)

// IndexStats contains summary statistics about the triple store.
type IndexStats struct {
	TotalTriples     int            `json:"total_triples"`
	UniqueSubjects   int            `json:"unique_subjects"`
	UniquePredicates int            `json:"unique_predicates"`
	PredicateCounts  map[string]int `json:"predicate_counts"`
}

// TripleStore is an in-memory RDF triple store indexed
// Subject -> Predicate -> Object.
//
// Every index level remembers insertion order, so subjects, predicates and
// objects are always enumerated in the order they were first added. For a
// store filled by Load that is the order of the source file.
//
// A TripleStore is owned by a single goroutine and is not safe for
// concurrent use.
type TripleStore struct {
	subjects orderedSet[Term]

	// SPO index: Subject -> Predicate -> ordered objects
	spo map[Term]*predicateIndex

	count int

	predicateCounts map[Term]int
}

type predicateIndex struct {
	predicates orderedSet[Term]
	objects    map[Term]*orderedSet[Term]
}

// NewTripleStore creates a new in-memory triple store with all indexes initialized.
func NewTripleStore() *TripleStore {
	return &TripleStore{
		subjects:        newOrderedSet[Term](),
		spo:             make(map[Term]*predicateIndex),
		predicateCounts: make(map[Term]int),
	}
}

// Add inserts a triple into the store. Returns nil if successful or if the
// triple already exists (idempotent operation).
func (ts *TripleStore) Add(subject, predicate, object Term) error {
	triple := NewTriple(subject, predicate, object)
	if !triple.IsValid() {
		return fmt.Errorf("invalid triple %s", triple)
	}

	if ts.Exists(subject, predicate, object) {
		return nil
	}

	ts.subjects.Add(subject)
	pIndex, ok := ts.spo[subject]
	if !ok {
		pIndex = &predicateIndex{
			predicates: newOrderedSet[Term](),
			objects:    make(map[Term]*orderedSet[Term]),
		}
		ts.spo[subject] = pIndex
	}
	pIndex.predicates.Add(predicate)
	objects, ok := pIndex.objects[predicate]
	if !ok {
		set := newOrderedSet[Term]()
		objects = &set
		pIndex.objects[predicate] = objects
	}
	objects.Add(object)

	ts.predicateCounts[predicate]++
	ts.count++

	return nil
}

// AddTriple inserts a Triple struct into the store.
func (ts *TripleStore) AddTriple(triple Triple) error {
	return ts.Add(triple.Subject, triple.Predicate, triple.Object)
}

// Exists checks if a specific triple exists in the store.
func (ts *TripleStore) Exists(subject, predicate, object Term) bool {
	if pIndex, ok := ts.spo[subject]; ok {
		if objects, ok := pIndex.objects[predicate]; ok {
			return objects.Contains(object)
		}
	}
	return false
}

// Objects returns the objects of every (subject, predicate, ?) statement in
// insertion order.
func (ts *TripleStore) Objects(subject, predicate Term) []Term {
	if pIndex, ok := ts.spo[subject]; ok {
		if objects, ok := pIndex.objects[predicate]; ok {
			return objects.Items()
		}
	}
	return nil
}

// Remove deletes a specific triple. Returns true if it was present.
func (ts *TripleStore) Remove(subject, predicate, object Term) bool {
	if !ts.Exists(subject, predicate, object) {
		return false
	}

	pIndex := ts.spo[subject]
	objects := pIndex.objects[predicate]
	objects.Remove(object)
	if objects.Len() == 0 {
		delete(pIndex.objects, predicate)
		pIndex.predicates.Remove(predicate)
	}
	if pIndex.predicates.Len() == 0 {
		delete(ts.spo, subject)
		ts.subjects.Remove(subject)
	}

	ts.predicateCounts[predicate]--
	if ts.predicateCounts[predicate] <= 0 {
		delete(ts.predicateCounts, predicate)
	}
	ts.count--

	return true
}

// RemoveTriple removes a specific triple.
func (ts *TripleStore) RemoveTriple(triple Triple) bool {
	return ts.Remove(triple.Subject, triple.Predicate, triple.Object)
}

// Count returns the total number of triples in the store.
func (ts *TripleStore) Count() int {
	return ts.count
}

// Subjects returns all distinct subjects in insertion order.
func (ts *TripleStore) Subjects() []Term {
	return ts.subjects.Items()
}

// Predicates returns the distinct predicates of a subject in insertion order.
func (ts *TripleStore) Predicates(subject Term) []Term {
	if pIndex, ok := ts.spo[subject]; ok {
		return pIndex.predicates.Items()
	}
	return nil
}

// Stats returns summary statistics about the store.
func (ts *TripleStore) Stats() IndexStats {
	predicateCounts := make(map[string]int, len(ts.predicateCounts))
	for predicate, count := range ts.predicateCounts {
		predicateCounts[predicate.Value] = count
	}

	return IndexStats{
		TotalTriples:     ts.count,
		UniqueSubjects:   ts.subjects.Len(),
		UniquePredicates: len(ts.predicateCounts),
		PredicateCounts:  predicateCounts,
	}
}

// String returns a string representation of the store statistics.
func (ts *TripleStore) String() string {
	return fmt.Sprintf("TripleStore{triples: %d, subjects: %d, predicates: %d}",
		ts.count, ts.subjects.Len(), len(ts.predicateCounts))
}

// All returns all triples in the store, grouped by subject in insertion order.
func (ts *TripleStore) All() []Triple {
	results := make([]Triple, 0, ts.count)
	for _, s := range ts.subjects.Items() {
		pIndex := ts.spo[s]
		for _, p := range pIndex.predicates.Items() {
			for _, o := range pIndex.objects[p].Items() {
				results = append(results, Triple{Subject: s, Predicate: p, Object: o})
			}
		}
	}
	return results
}
