// Package data contains the ordered document type used for template files and
// the JSON parser that produces it.
package data

import (
	"iter"
	"slices"
)

// O implements domain.Document as a list of members. Keys keep the order they
// were first set in; setting an existing key replaces its value in place.
type O []Member

// Member is a single key-value pair of an [O].
type Member struct {
	Key   string
	Value any
}

func (o O) index(key string) int {
	return slices.IndexFunc(o, func(m Member) bool { return m.Key == key })
}

// Get implements domain.Document.
func (o O) Get(key string) any {
	if n := o.index(key); n >= 0 {
		return o[n].Value
	}
	return nil
}

// Has implements domain.Document.
func (o O) Has(key string) bool {
	return o.index(key) >= 0
}

// Set sets the value under the given key.
func (o *O) Set(key string, value any) {
	if n := o.index(key); n >= 0 {
		(*o)[n].Value = value
		return
	}
	*o = append(*o, Member{Key: key, Value: value})
}

// Iter implements domain.Document.
func (o O) Iter() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for _, m := range o {
			if !yield(m.Key, m.Value) {
				return
			}
		}
	}
}

// Keys implements domain.Document.
func (o O) Keys() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, m := range o {
			if !yield(m.Key) {
				return
			}
		}
	}
}

// Len implements domain.Document.
func (o O) Len() int {
	return len(o)
}

// Map returns the members as a map, which is what decoders expect. Nested
// documents are kept as they are.
func (o O) Map() map[string]any {
	m := make(map[string]any, len(o))
	for _, member := range o {
		m[member.Key] = member.Value
	}
	return m
}
