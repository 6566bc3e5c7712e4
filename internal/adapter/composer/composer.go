// Package composer splits a resolved matrix into the filter query and the
// pagination of a result.
package composer

import (
	"slices"

	"github.com/vinicius-lino-figueiredo/qsfilter/domain"
	"github.com/vinicius-lino-figueiredo/qsfilter/internal/adapter/reporter"
	"github.com/vinicius-lino-figueiredo/qsfilter/pkg/structure"
)

// Composer builds the query and pagination of a result.
type Composer struct {
	pageFallback int
}

// NewComposer returns a [Composer]. A non-zero pageFallback is reported for a
// page value that is missing while the other one is present.
func NewComposer(pageFallback int) *Composer {
	return &Composer{pageFallback: pageFallback}
}

// Query returns the conditions of every field of m except the pagination
// keys. It is never nil.
func (c *Composer) Query(m domain.Matrix) domain.Query {
	q := make(domain.Query, len(m))
	for name, acc := range m {
		if domain.IsPaginationKey(name) {
			continue
		}
		if cond := acc.Condition(); len(cond) > 0 {
			q[name] = cond
		}
	}
	return q
}

// Pagination returns the paging of a request, or nil when it has neither a
// page value nor a sort. sort is the parsed sort field, and sortDefault tells
// whether it was injected rather than requested. Without one the sort of cfg
// is used, which also counts as a default.
func (c *Composer) Pagination(m domain.Matrix, sort domain.Sort, sortDefault bool, cfg *domain.Config, rep *reporter.Reporter) *domain.Pagination {
	pc := configured(cfg)

	pageNo, hasNo := c.page(m, domain.KeyPageNo, rep)
	pageSize, hasSize := c.page(m, domain.KeyPageSize, rep)
	hasPage := hasNo || hasSize

	if len(sort) == 0 && len(pc.Sort) > 0 {
		sort = slices.Clone(pc.Sort)
		sortDefault = true
	}
	if !hasPage && len(sort) == 0 {
		return nil
	}

	return &domain.Pagination{
		PageNo:      c.pick(pageNo, pc.PageNo, hasPage),
		PageSize:    c.pick(pageSize, pc.PageSize, hasPage),
		Sort:        sort,
		SortDefault: len(sort) > 0 && sortDefault,
	}
}

// page returns the last eq value of key, and whether key had one at all.
func (c *Composer) page(m domain.Matrix, key string, rep *reporter.Reporter) (*int, bool) {
	acc, ok := m[key]
	if !ok || len(acc.Eq) == 0 {
		return nil, false
	}
	last := acc.Eq[len(acc.Eq)-1]
	n, ok := structure.AsInteger(last)
	if !ok {
		rep.Reportf(key, "skipped, invalid %s %v", key, last)
		return nil, true
	}
	return &n, true
}

func (c *Composer) pick(value, configured *int, hasPage bool) *int {
	switch {
	case value != nil:
		return value
	case configured != nil:
		n := *configured
		return &n
	case hasPage && c.pageFallback != 0:
		n := c.pageFallback
		return &n
	}
	return nil
}

// configured returns the pagination defaults of cfg. Parsed values in
// cfg.Pagination win over the ones in cfg.Defaults.
func configured(cfg *domain.Config) domain.PaginationConfig {
	var pc domain.PaginationConfig
	if cfg == nil {
		return pc
	}
	if cfg.Pagination != nil {
		pc = *cfg.Pagination
	}
	if pc.PageNo == nil {
		pc.PageNo = configPage(cfg.Defaults[domain.KeyPageNo])
	}
	if pc.PageSize == nil {
		pc.PageSize = configPage(cfg.Defaults[domain.KeyPageSize])
	}
	if len(pc.Sort) == 0 {
		pc.Sort, _ = cfg.Defaults[domain.KeySort].(domain.Sort)
	}
	return pc
}

func configPage(v any) *int {
	if n, ok := structure.AsInteger(v); ok {
		return &n
	}
	return nil
}
