package workout

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateID = errors.New("workout id already present")
	ErrNotFound    = errors.New("workout not found")
)

// Store is an ordered collection of workout records, insertion order =
// creation order. It is owned exclusively by one session controller,
// which serializes all access; the store itself is not goroutine-safe.
type Store struct {
	records []Workout
	index   map[string]int
}

func NewStore() *Store {
	return &Store{index: map[string]int{}}
}

func (s *Store) Append(w Workout) error {
	if _, ok := s.index[w.ID]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateID, w.ID)
	}
	s.index[w.ID] = len(s.records)
	s.records = append(s.records, w)
	return nil
}

func (s *Store) FindByID(id string) (Workout, error) {
	i, ok := s.index[id]
	if !ok {
		return Workout{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return s.records[i], nil
}

// All returns a copy of the records in insertion order.
func (s *Store) All() []Workout {
	out := make([]Workout, len(s.records))
	copy(out, s.records)
	return out
}

// ReplaceAll atomically swaps the collection, used once per session
// during rehydration. The previous contents are discarded only if the
// replacement is valid.
func (s *Store) ReplaceAll(records []Workout) error {
	index := make(map[string]int, len(records))
	for i, w := range records {
		if _, ok := index[w.ID]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateID, w.ID)
		}
		index[w.ID] = i
	}
	s.records = append([]Workout(nil), records...)
	s.index = index
	return nil
}

func (s *Store) Reset() {
	s.records = nil
	s.index = map[string]int{}
}

func (s *Store) Len() int {
	return len(s.records)
}
