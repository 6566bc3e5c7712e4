package domain

import "go.uber.org/zap"

// WithParserConfig sets the configuration passed through to every [Result]
// and consulted for defaults.
func WithParserConfig(c *Config) ParserOption {
	return func(po *ParserOptions) {
		po.Config = c
	}
}

// WithParserTemplate sets the static variable template. It is used as the
// [Resolver] when none is given, and is the source of injected defaults.
func WithParserTemplate(t Template) ParserOption {
	return func(po *ParserOptions) {
		po.Template = t
	}
}

// WithParserResolver sets the resolver used to validate field names. Without
// a resolver or template every field is accepted.
func WithParserResolver(r Resolver) ParserOption {
	return func(po *ParserOptions) {
		po.Resolver = r
	}
}

// WithParserNameTransformer sets the function applied to field names before
// they are resolved, including sort field names.
func WithParserNameTransformer(n NameTransformer) ParserOption {
	return func(po *ParserOptions) {
		po.NameTransformer = n
	}
}

// WithParserTokenizer sets the implementation that splits raw keys.
func WithParserTokenizer(t Tokenizer) ParserOption {
	return func(po *ParserOptions) {
		po.Tokenizer = t
	}
}

// WithParserComparer sets the comparer used for bounds and duplicates.
func WithParserComparer(c Comparer) ParserOption {
	return func(po *ParserOptions) {
		po.Comparer = c
	}
}

// WithParserHasher sets the hasher used to find duplicated values.
func WithParserHasher(h Hasher) ParserOption {
	return func(po *ParserOptions) {
		po.Hasher = h
	}
}

// WithParserLogger sets the logger every diagnostic is written to at debug
// level.
func WithParserLogger(l *zap.Logger) ParserOption {
	return func(po *ParserOptions) {
		po.Logger = l
	}
}

// WithParserPageFallback sets the value reported for a missing page_no or
// page_size when the other one is present and the config has no default.
// Zero, the default, leaves the missing value out.
func WithParserPageFallback(n int) ParserOption {
	return func(po *ParserOptions) {
		po.PageFallback = n
	}
}

// ParserOption configures parser behavior through the functional options
// pattern.
type ParserOption func(*ParserOptions)

// ParserOptions contains parameters for customizing parser behavior.
type ParserOptions struct {
	// Config is passed through to the result.
	Config *Config
	// Template provides variables and defaults.
	Template Template
	// Resolver validates field names. Falls back to Template.
	Resolver Resolver
	// NameTransformer normalizes field names.
	NameTransformer NameTransformer
	// Tokenizer splits raw keys.
	Tokenizer Tokenizer
	// Comparer orders values.
	Comparer Comparer
	// Hasher buckets values for deduplication.
	Hasher Hasher
	// Logger receives diagnostics.
	Logger *zap.Logger
	// PageFallback is used for a missing page value. Zero disables it.
	PageFallback int
}

// WithLoaderDecoder sets the decoder used to build variables from template
// documents.
func WithLoaderDecoder(d Decoder) LoaderOption {
	return func(lo *LoaderOptions) {
		lo.Decoder = d
	}
}

// WithLoaderTransform registers a named transform that template documents can
// refer to with the "transform" key. It overrides built-in transforms with the
// same name.
func WithLoaderTransform(name string, fn TransformFunc) LoaderOption {
	return func(lo *LoaderOptions) {
		if lo.Transforms == nil {
			lo.Transforms = make(map[string]TransformFunc)
		}
		lo.Transforms[name] = fn
	}
}

// LoaderOption configures template loading through the functional options
// pattern.
type LoaderOption func(*LoaderOptions)

// LoaderOptions contains parameters for customizing template loading.
type LoaderOptions struct {
	// Decoder converts template documents into variables.
	Decoder Decoder
	// Transforms are the named transforms available to templates.
	Transforms map[string]TransformFunc
}
