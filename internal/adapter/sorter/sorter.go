// Package sorter reads the alternating field/direction tokens of the sort
// field into a [domain.Sort].
package sorter

import (
	"fmt"

	"github.com/vinicius-lino-figueiredo/qsfilter/domain"
	"github.com/vinicius-lino-figueiredo/qsfilter/internal/adapter/reporter"
	"github.com/vinicius-lino-figueiredo/qsfilter/pkg/structure"
)

// Sorter parses sort tokens.
type Sorter struct {
	resolver        domain.Resolver
	nameTransformer domain.NameTransformer
}

// NewSorter returns a [Sorter]. Field tokens are checked against r only when
// both r and nt are set; otherwise every field is accepted.
func NewSorter(r domain.Resolver, nt domain.NameTransformer) *Sorter {
	return &Sorter{resolver: r, nameTransformer: nt}
}

// Parse reads tokens as field names, each optionally followed by a direction
// of 1 or -1. A field without direction sorts ascending. A field repeated
// later keeps its first position and takes the last direction.
func (s *Sorter) Parse(tokens []any, cfg *domain.Config, rep *reporter.Reporter) (domain.Sort, error) {
	var (
		sort    domain.Sort
		pending = -1
	)
	for _, tok := range tokens {
		if n, numeric := direction(tok); numeric {
			if (n == 1 || n == -1) && pending >= 0 {
				sort[pending].Order = n
				pending = -1
				continue
			}
			rep.Reportf(domain.KeySort, "skipped, unexpected %v", display(tok))
			continue
		}

		name := fmt.Sprint(tok)
		if s.resolver != nil && s.nameTransformer != nil {
			full := s.nameTransformer.TransformName(name, cfg)
			v, err := s.resolver.Resolve(full, cfg)
			if err != nil {
				return nil, domain.ErrResolve{Name: full, Err: err}
			}
			if v == nil {
				rep.Report(domain.KeySort, "skipped, sort by field not allowed: "+name)
				continue
			}
			name = full
		}
		sort, pending = set(sort, name)
	}
	if len(sort) == 0 {
		rep.Report(domain.KeySort, "skipped, due no value for sort")
		return nil, nil
	}
	return sort, nil
}

// set adds key with ascending order, or resets the order of an existing key,
// and returns the index of the entry.
func set(sort domain.Sort, key string) (domain.Sort, int) {
	for n := range sort {
		if sort[n].Key == key {
			sort[n].Order = 1
			return sort, n
		}
	}
	return append(sort, domain.SortName{Key: key, Order: 1}), len(sort)
}

// direction reports whether tok reads as a number, and its value when it is
// integral. Empty strings and nil count as numbers that are never a valid
// direction.
func direction(tok any) (int64, bool) {
	switch t := tok.(type) {
	case nil, bool:
		return 0, true
	case string:
		if t == "" {
			return 0, true
		}
		n, ok := structure.ParseNumber(t)
		if !ok {
			return 0, false
		}
		tok = n
	}
	if !structure.IsNumber(tok) {
		return 0, false
	}
	if i, ok := structure.AsInteger(tok); ok {
		return int64(i), true
	}
	return 0, true
}

func display(tok any) any {
	if tok == nil {
		return "null"
	}
	return tok
}
