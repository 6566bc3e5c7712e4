// Package qsfilter compiles query-string parameters into filter conditions and
// pagination.
//
// Each key of a query string names a field and, through a trailing or infix
// marker, an operator:
//
//	name=abc        eq
//	tag!=x          ne
//	price<>10|20    bt
//	price>10        gt
//	price>=10       gte
//	price<=10       lte
//	price<10        lt
//	name$=^a        regex
//
// The reserved keys sort, page_no and page_size become the [Pagination] of the
// [Result]. Fields can be checked against a [Template] or a [Resolver], which
// also supply transforms and default values.
//
// Rejected input never fails a parse: it is skipped and described in
// [Result.Messages]. Errors are only returned when a collaborator, such as the
// resolver or the comparer, fails.
package qsfilter

import (
	"context"
	"io"
	"net/url"
	"os"

	"go.uber.org/zap"

	"github.com/vinicius-lino-figueiredo/qsfilter/domain"
	"github.com/vinicius-lino-figueiredo/qsfilter/internal/adapter/loader"
	"github.com/vinicius-lino-figueiredo/qsfilter/internal/adapter/parser"
)

// Operators, in the order they are reported.
const (
	OpEq    = domain.OpEq
	OpNe    = domain.OpNe
	OpBt    = domain.OpBt
	OpGt    = domain.OpGt
	OpGte   = domain.OpGte
	OpLte   = domain.OpLte
	OpLt    = domain.OpLt
	OpRegex = domain.OpRegex
)

// Reserved pagination keys.
const (
	KeySort     = domain.KeySort
	KeyPageNo   = domain.KeyPageNo
	KeyPageSize = domain.KeyPageSize
)

// Template formats accepted by [LoadTemplate].
const (
	FormatJSON = loader.FormatJSON
	FormatYAML = loader.FormatYAML
)

var (
	// ErrTargetNil is returned by [Decoder.Decode] when the target is nil.
	ErrTargetNil = domain.ErrTargetNil
	// ErrNonPointer is returned by [Decoder.Decode] when the target is not
	// a pointer.
	ErrNonPointer = domain.ErrNonPointer
	// ErrPageFallback is returned by [NewParser] when [WithPageFallback]
	// is given a negative value.
	ErrPageFallback = domain.ErrPageFallback
)

// ErrCannotCompare is returned when two bounds of the same field cannot be
// ordered by the current [Comparer].
type ErrCannotCompare = domain.ErrCannotCompare

// ErrDecode is returned by [Decoder.Decode] to wrap third party decoding
// errors.
type ErrDecode = domain.ErrDecode

// ErrTemplateFormat is returned by [LoadTemplate] for malformed templates.
type ErrTemplateFormat = domain.ErrTemplateFormat

// ErrResolve wraps an error returned by a [Resolver].
type ErrResolve = domain.ErrResolve

// Parser turns query-string values into a [Result].
type Parser = domain.Parser

// Operator is a comparison kind attached to a field condition.
type Operator = domain.Operator

// Result is the output of a parse.
type Result = domain.Result

// Query maps field names to their conditions.
type Query = domain.Query

// Condition maps each operator used on a field to its value. List operators
// hold a []any, the others a single value.
type Condition = domain.Condition

// Pagination is the paging and ordering part of a [Result].
type Pagination = domain.Pagination

// Sort represents an ordered list of fields which should be used, respectively,
// to sort the results of a query.
type Sort = domain.Sort

// SortName represents a single field and the order which should be used to sort
// it, a positive value meaning ascending order and a negative value meaning
// descending order.
type SortName = domain.SortName

// Config is passed through to every [Result] and consulted for defaults.
type Config = domain.Config

// PaginationConfig holds pagination defaults in parsed form.
type PaginationConfig = domain.PaginationConfig

// Variable describes how a field may be used.
type Variable = domain.Variable

// Template is a static set of variables keyed by field name.
type Template = domain.Template

// TransformFunc coerces one raw value.
type TransformFunc = domain.TransformFunc

// Resolver looks up the [Variable] describing a field.
type Resolver = domain.Resolver

// ResolverFunc adapts a function to [Resolver].
type ResolverFunc = domain.ResolverFunc

// NameTransformer normalizes field names before they are resolved.
type NameTransformer = domain.NameTransformer

// NameTransformerFunc adapts a function to [NameTransformer].
type NameTransformerFunc = domain.NameTransformerFunc

// Tokenizer splits a raw key into field name, operator and value.
type Tokenizer = domain.Tokenizer

// Comparer orders values when keeping the tightest bound.
type Comparer = domain.Comparer

// Hasher generates hash values for deduplication.
type Hasher = domain.Hasher

// Decoder converts template documents into variables.
type Decoder = domain.Decoder

// Document is an object whose keys keep their declaration order.
type Document = domain.Document

// Option configures a [Parser].
type Option = domain.ParserOption

// LoaderOption configures [LoadTemplate].
type LoaderOption = domain.LoaderOption

// NewParser creates a [Parser] with the provided options:
//
// - [WithConfig]: sets the configuration passed through to results.
//
// - [WithTemplate]: sets the variables and defaults of known fields.
//
// - [WithResolver]: sets a dynamic variable lookup, replacing the template for
// validation.
//
// - [WithNameTransformer]: sets the normalization of field names.
//
// - [WithTokenizer]: sets how raw keys are split.
//
// - [WithComparer]: sets how bounds and duplicates are compared.
//
// - [WithHasher]: sets the hasher used to find duplicates.
//
// - [WithLogger]: sets the logger diagnostics are written to.
//
// - [WithPageFallback]: sets the value of a missing page value.
func NewParser(options ...Option) (Parser, error) {
	return parser.NewParser(options...)
}

// Parse is a shortcut for creating a [Parser] and parsing values once.
func Parse(values url.Values, options ...Option) (*Result, error) {
	p, err := NewParser(options...)
	if err != nil {
		return nil, err
	}
	return p.Parse(values)
}

// ParseQuery parses a raw query string such as "price>10&tag!=x".
func ParseQuery(query string, options ...Option) (*Result, error) {
	values, err := url.ParseQuery(query)
	if err != nil {
		return nil, err
	}
	return Parse(values, options...)
}

// LoadTemplate reads a JSON or YAML template from r. Each field maps to an
// object with the optional keys default, default_op, read_only and transform.
// Transforms are named; the built-in ones are number, string, trim, lower,
// upper and bool, and more can be added with [WithTransform].
func LoadTemplate(ctx context.Context, r io.Reader, format string, options ...LoaderOption) (Template, error) {
	return loader.NewLoader(options...).Load(ctx, r, format)
}

// LoadTemplateFile reads a template from a file, choosing the format from its
// extension.
func LoadTemplateFile(ctx context.Context, path string, options ...LoaderOption) (Template, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadTemplate(ctx, f, loader.FormatOf(path), options...)
}

// WithConfig sets the configuration passed through to every [Result] and
// consulted for defaults.
func WithConfig(c *Config) Option {
	return domain.WithParserConfig(c)
}

// WithTemplate sets the static variable template.
func WithTemplate(t Template) Option {
	return domain.WithParserTemplate(t)
}

// WithResolver sets the resolver used to validate field names.
func WithResolver(r Resolver) Option {
	return domain.WithParserResolver(r)
}

// WithNameTransformer sets the normalization applied to field names.
func WithNameTransformer(n NameTransformer) Option {
	return domain.WithParserNameTransformer(n)
}

// WithTokenizer sets the implementation that splits raw keys.
func WithTokenizer(t Tokenizer) Option {
	return domain.WithParserTokenizer(t)
}

// WithComparer sets the comparer used for bounds and duplicates.
func WithComparer(c Comparer) Option {
	return domain.WithParserComparer(c)
}

// WithHasher sets the hasher used to find duplicated values.
func WithHasher(h Hasher) Option {
	return domain.WithParserHasher(h)
}

// WithLogger sets the logger diagnostics are written to at debug level.
func WithLogger(l *zap.Logger) Option {
	return domain.WithParserLogger(l)
}

// WithPageFallback sets the value reported for a missing page_no or page_size
// when the other one is present.
func WithPageFallback(n int) Option {
	return domain.WithParserPageFallback(n)
}

// WithDecoder sets the decoder used by [LoadTemplate].
func WithDecoder(d Decoder) LoaderOption {
	return domain.WithLoaderDecoder(d)
}

// WithTransform registers a named transform for [LoadTemplate].
func WithTransform(name string, fn TransformFunc) LoaderOption {
	return domain.WithLoaderTransform(name, fn)
}
