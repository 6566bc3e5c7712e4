// Package resolver checks field names and operators against the configured
// [domain.Resolver] before any value is collected for them.
package resolver

import (
	"github.com/vinicius-lino-figueiredo/qsfilter/domain"
	"github.com/vinicius-lino-figueiredo/qsfilter/internal/adapter/reporter"
	"github.com/vinicius-lino-figueiredo/qsfilter/internal/adapter/transformer"
)

// Validator accepts or rejects a field before its values are collected.
type Validator struct {
	resolver domain.Resolver
}

// NewValidator returns a [Validator] backed by r. With a nil resolver every
// non-empty name is accepted.
func NewValidator(r domain.Resolver) *Validator {
	return &Validator{resolver: r}
}

// Validate returns the variable describing name, or nil if the field must be
// skipped, in which case the reason is reported. Only resolver failures are
// returned as errors.
func (v *Validator) Validate(name string, op domain.Operator, cfg *domain.Config, rep *reporter.Reporter) (*domain.Variable, error) {
	if name == "" {
		rep.Report(name, "invalid empty name")
		return nil, nil
	}
	if v.resolver == nil {
		return &domain.Variable{}, nil
	}

	variable, err := v.resolver.Resolve(name, cfg)
	if err != nil {
		return nil, domain.ErrResolve{Name: name, Err: err}
	}
	if variable == nil {
		switch name {
		case domain.KeySort:
			return &domain.Variable{}, nil
		case domain.KeyPageNo, domain.KeyPageSize:
			return &domain.Variable{Transform: transformer.Number}, nil
		}
		rep.Report(name, "skipped, variable not found "+name)
		return nil, nil
	}

	if variable.ReadOnly {
		rep.Report(name, "skipped, readonly for "+name)
		return nil, nil
	}
	if domain.IsPaginationKey(name) && op != domain.OpEq {
		rep.Report(name, "pagination key takes = operator only")
		return nil, nil
	}
	return variable, nil
}
