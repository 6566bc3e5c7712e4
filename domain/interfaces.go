// Package domain contains domain-specific interfaces, entities and option types
// for qsfilter.
//
// This package defines the interfaces that must be implemented by adapters,
// the values exchanged between the parsing stages, and functional options for
// configuring a [Parser].
package domain

import (
	"iter"
	"net/url"
)

// Parser turns query-string values into a [Result].
type Parser interface {
	// Parse compiles values into a filter and optional pagination. Only
	// collaborator failures are returned as errors; rejected input is
	// reported in [Result.Messages].
	Parse(values url.Values) (*Result, error)
}

// Resolver looks up the [Variable] describing a field.
type Resolver interface {
	// Resolve returns the variable for name, or nil if the field is not
	// known. Errors are treated as fatal by the parser.
	Resolve(name string, cfg *Config) (*Variable, error)
}

// ResolverFunc adapts a function to [Resolver].
type ResolverFunc func(name string, cfg *Config) (*Variable, error)

// Resolve implements Resolver.
func (f ResolverFunc) Resolve(name string, cfg *Config) (*Variable, error) {
	return f(name, cfg)
}

// NameTransformer normalizes field names before they are resolved.
type NameTransformer interface {
	// TransformName returns the normalized name.
	TransformName(name string, cfg *Config) string
}

// NameTransformerFunc adapts a function to [NameTransformer].
type NameTransformerFunc func(name string, cfg *Config) string

// TransformName implements NameTransformer.
func (f NameTransformerFunc) TransformName(name string, cfg *Config) string {
	return f(name, cfg)
}

// Tokenizer splits a raw query-string key and value into a [Token].
type Tokenizer interface {
	// Tokenize returns the field name, operator and raw value encoded by
	// key and value. Value is a string or a []string.
	Tokenize(key string, value any) Token
}

// Comparer provides ordering and comparison operations for different data types.
type Comparer interface {
	// Compare returns -1, 0, or 1 based on the comparison of two values.
	Compare(any, any) (int, error)
	// Comparable returns true if two values can be compared.
	Comparable(any, any) bool
}

// Hasher generates hash values for data deduplication.
type Hasher interface {
	// Hash generates a hash value for the given data.
	Hash(any) (uint64, error)
}

// Decoder converts between different data representations.
type Decoder interface {
	// Decode converts from one data format to another.
	Decode(any, any) error
}

// Document is an object whose keys keep the order they were declared in. It is
// how templates loaded from files carry object defaults, since the order of a
// sort default is meaningful.
type Document interface {
	// Get returns the value under the given key, or nil if unset.
	Get(string) any
	// Has reports whether a value is set under the given key.
	Has(string) bool
	// Iter returns the key-value pairs in declaration order.
	Iter() iter.Seq2[string, any]
	// Keys returns the keys in declaration order.
	Keys() iter.Seq[string]
	// Len returns the number of keys in the document.
	Len() int
}
