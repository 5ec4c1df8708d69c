package store

// orderedSet is a set that remembers insertion order.
type orderedSet[T comparable] struct {
	items []T
	index map[T]int
}

func newOrderedSet[T comparable]() orderedSet[T] {
	return orderedSet[T]{index: make(map[T]int)}
}

// Add appends item if it is not already present.
func (s *orderedSet[T]) Add(item T) bool {
	if _, ok := s.index[item]; ok {
		return false
	}
	s.index[item] = len(s.items)
	s.items = append(s.items, item)
	return true
}

// Remove deletes item, keeping the relative order of the rest.
func (s *orderedSet[T]) Remove(item T) bool {
	position, ok := s.index[item]
	if !ok {
		return false
	}
	delete(s.index, item)
	s.items = append(s.items[:position], s.items[position+1:]...)
	for i := position; i < len(s.items); i++ {
		s.index[s.items[i]] = i
	}
	return true
}

func (s *orderedSet[T]) Contains(item T) bool {
	_, ok := s.index[item]
	return ok
}

func (s *orderedSet[T]) Len() int {
	return len(s.items)
}

// Items returns a copy of the items in insertion order.
func (s *orderedSet[T]) Items() []T {
	items := make([]T, len(s.items))
	copy(items, s.items)
	return items
}
