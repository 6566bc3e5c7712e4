// Package parser contains the default [domain.Parser] implementation.
package parser

import (
	"net/url"
	"slices"

	"go.uber.org/zap"

	"github.com/vinicius-lino-figueiredo/qsfilter/domain"
	"github.com/vinicius-lino-figueiredo/qsfilter/internal/adapter/comparer"
	"github.com/vinicius-lino-figueiredo/qsfilter/internal/adapter/composer"
	"github.com/vinicius-lino-figueiredo/qsfilter/internal/adapter/defaults"
	"github.com/vinicius-lino-figueiredo/qsfilter/internal/adapter/hasher"
	"github.com/vinicius-lino-figueiredo/qsfilter/internal/adapter/matrix"
	"github.com/vinicius-lino-figueiredo/qsfilter/internal/adapter/reporter"
	"github.com/vinicius-lino-figueiredo/qsfilter/internal/adapter/resolver"
	"github.com/vinicius-lino-figueiredo/qsfilter/internal/adapter/sorter"
	"github.com/vinicius-lino-figueiredo/qsfilter/internal/adapter/tokenizer"
	"github.com/vinicius-lino-figueiredo/qsfilter/internal/adapter/transformer"
)

// Parser implements domain.Parser. It holds no per-call state and can be used
// concurrently.
type Parser struct {
	config          *domain.Config
	nameTransformer domain.NameTransformer
	tokenizer       domain.Tokenizer
	logger          *zap.Logger
	validator       *resolver.Validator
	transformer     *transformer.Transformer
	injector        *defaults.Injector
	builder         *matrix.Builder
	composer        *composer.Composer
}

// NewParser returns a new implementation of domain.Parser.
func NewParser(options ...domain.ParserOption) (domain.Parser, error) {
	opts := domain.ParserOptions{
		Tokenizer: tokenizer.NewTokenizer(),
		Comparer:  comparer.NewComparer(),
		Hasher:    hasher.NewHasher(),
		Logger:    zap.NewNop(),
	}
	for _, option := range options {
		option(&opts)
	}

	if opts.PageFallback < 0 {
		return nil, domain.ErrPageFallback
	}
	if opts.Resolver == nil && opts.Template != nil {
		opts.Resolver = opts.Template
	}
	if opts.Tokenizer == nil {
		opts.Tokenizer = tokenizer.NewTokenizer()
	}
	if opts.Comparer == nil {
		opts.Comparer = comparer.NewComparer()
	}
	if opts.Hasher == nil {
		opts.Hasher = hasher.NewHasher()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	return &Parser{
		config:          opts.Config,
		nameTransformer: opts.NameTransformer,
		tokenizer:       opts.Tokenizer,
		logger:          opts.Logger,
		validator:       resolver.NewValidator(opts.Resolver),
		transformer:     transformer.NewTransformer(opts.Comparer),
		injector:        defaults.NewInjector(opts.Template),
		builder: matrix.NewBuilder(
			opts.Hasher,
			opts.Comparer,
			sorter.NewSorter(opts.Resolver, opts.NameTransformer),
		),
		composer: composer.NewComposer(opts.PageFallback),
	}, nil
}

// Parse implements domain.Parser. Keys are read in sorted order so that the
// result and its messages do not depend on map iteration.
func (p *Parser) Parse(values url.Values) (*domain.Result, error) {
	rep := reporter.New(p.logger)
	m := make(domain.Matrix)

	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	for _, key := range keys {
		tok := p.tokenizer.Tokenize(key, raw(values[key]))
		name := tok.Name
		if p.nameTransformer != nil {
			name = p.nameTransformer.TransformName(name, p.config)
		}
		variable, err := p.validator.Validate(name, tok.Op, p.config, rep)
		if err != nil {
			return nil, err
		}
		if variable == nil {
			continue
		}
		if err := p.transformer.Transform(variable, name, tok.Value, tok.Op, m); err != nil {
			return nil, err
		}
	}

	injected := p.injector.Inject(p.config, m, rep)
	sort, err := p.builder.Build(m, p.config, rep)
	if err != nil {
		return nil, err
	}

	res := &domain.Result{
		Config:     p.config,
		Query:      p.composer.Query(m),
		Pagination: p.composer.Pagination(m, sort, injected[domain.KeySort], p.config, rep),
		Messages:   rep.Messages(),
	}
	p.logger.Debug("query parsed",
		zap.Int("fields", len(res.Query)),
		zap.Bool("paginated", res.Pagination != nil),
		zap.Int("messages", len(res.Messages)),
	)
	return res, nil
}

// raw turns the values of one key into what a tokenizer expects: an empty
// string when there is none, the string itself when there is one and the whole
// list otherwise.
func raw(v []string) any {
	switch len(v) {
	case 0:
		return ""
	case 1:
		return v[0]
	}
	return v
}
