// Package uncomparable contains a set of values of type [any] that uses the
// given hasher and comparer instead of Go equality, so 1 and 1.0 count as the
// same member.
package uncomparable

import (
	"github.com/vinicius-lino-figueiredo/qsfilter/domain"
)

// Set is an insertion ordered set whose members do not need to be
// [comparable].
type Set struct {
	buckets  [][]any
	members  []any
	hasher   domain.Hasher
	comparer domain.Comparer
}

// New returns a new instance of [Set] with the given [domain.Hasher] and
// [domain.Comparer].
func New(hasher domain.Hasher, comparer domain.Comparer) *Set {
	return &Set{
		buckets:  make([][]any, 8),
		hasher:   hasher,
		comparer: comparer,
	}
}

// Add inserts v and reports whether it was not a member yet. Values the
// comparer cannot compare are never considered equal. Only hashing errors are
// returned.
func (s *Set) Add(v any) (bool, error) {
	h, err := s.hasher.Hash(v)
	if err != nil {
		return false, err
	}
	bucketIndex := h % uint64(len(s.buckets))

	for _, member := range s.buckets[bucketIndex] {
		c, err := s.comparer.Compare(v, member)
		if err == nil && c == 0 {
			return false, nil
		}
	}

	s.buckets[bucketIndex] = append(s.buckets[bucketIndex], v)
	s.members = append(s.members, v)
	return true, nil
}

// Len returns the number of members.
func (s *Set) Len() int {
	return len(s.members)
}

// Members returns the members in the order they were first added.
func (s *Set) Members() []any {
	return s.members
}

// Dedup returns values without repeated members, keeping the first occurrence
// of each, and whether anything was removed.
func Dedup(hasher domain.Hasher, comparer domain.Comparer, values []any) ([]any, bool, error) {
	set := New(hasher, comparer)
	for _, v := range values {
		if _, err := set.Add(v); err != nil {
			return nil, false, err
		}
	}
	return set.Members(), set.Len() < len(values), nil
}
