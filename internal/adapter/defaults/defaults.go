// Package defaults fills in the values of fields that a request leaves out
// but whose variable declares a default.
package defaults

import (
	"github.com/vinicius-lino-figueiredo/qsfilter/domain"
	"github.com/vinicius-lino-figueiredo/qsfilter/internal/adapter/reporter"
	"github.com/vinicius-lino-figueiredo/qsfilter/pkg/structure"
)

// Injector writes template defaults into a matrix.
type Injector struct {
	template domain.Template
}

// NewInjector returns an [Injector] for the defaults declared in t.
func NewInjector(t domain.Template) *Injector {
	return &Injector{template: t}
}

// Inject adds the default of every template field that m does not hold yet,
// in sorted name order, and returns the names it added values for. Defaults
// are stored as declared, without going through any transform.
func (i *Injector) Inject(cfg *domain.Config, m domain.Matrix, rep *reporter.Reporter) map[string]bool {
	injected := make(map[string]bool)
	for _, name := range i.template.Names() {
		if _, ok := m[name]; ok {
			continue
		}
		variable := i.template[name]
		if variable.Default == nil {
			continue
		}
		if domain.IsPaginationKey(name) && inConfig(name, cfg) {
			continue
		}
		if override, ok := lookup(name, cfg); ok {
			if override.Default == nil {
				continue
			}
			variable = override
		}
		if i.inject(m, name, variable, rep) {
			injected[name] = true
		}
	}
	return injected
}

// inConfig reports whether cfg already holds a parsed value for the
// pagination key name.
func inConfig(name string, cfg *domain.Config) bool {
	if cfg == nil {
		return false
	}
	if _, ok := cfg.Defaults[name]; ok {
		return true
	}
	p := cfg.Pagination
	if p == nil {
		return false
	}
	switch name {
	case domain.KeyPageNo:
		return p.PageNo != nil
	case domain.KeyPageSize:
		return p.PageSize != nil
	default:
		return len(p.Sort) > 0
	}
}

// lookup returns the variable cfg defines for name, if any.
func lookup(name string, cfg *domain.Config) (domain.Variable, bool) {
	if cfg == nil {
		return domain.Variable{}, false
	}
	v, ok := cfg.Defaults[name]
	if !ok || v == nil {
		return domain.Variable{}, false
	}
	switch t := v.(type) {
	case domain.Variable:
		return t, true
	case *domain.Variable:
		return *t, true
	}
	return domain.Variable{Default: v}, true
}

func (i *Injector) inject(m domain.Matrix, name string, v domain.Variable, rep *reporter.Reporter) bool {
	op, ok := domain.OpEq, true
	if v.DefaultOp != "" {
		op, ok = domain.ParseOperator(v.DefaultOp)
	}
	if domain.IsPaginationKey(name) && (!ok || op != domain.OpEq) {
		rep.Report(name, "wrong default in variable(1), pagination key takes eq operator only")
		return false
	}
	if !ok {
		rep.Report(name, "not supported op: "+v.DefaultOp)
		return false
	}

	if op.Scalar() {
		return i.scalar(m, name, op, v.Default, rep)
	}
	return i.list(m, name, op, v.Default, rep)
}

func (i *Injector) scalar(m domain.Matrix, name string, op domain.Operator, def any, rep *reporter.Reporter) bool {
	if !structure.IsList(def) {
		m.Get(name).SetBound(op, def)
		return true
	}
	values, err := structure.ToList(def)
	if err != nil {
		return false
	}
	rep.Report(name, "use default[0] only for "+name)
	acc := m.Get(name)
	if len(values) > 0 {
		acc.SetBound(op, values[0])
	}
	return true
}

func (i *Injector) list(m domain.Matrix, name string, op domain.Operator, def any, rep *reporter.Reporter) bool {
	var values []any
	switch {
	case structure.IsList(def):
		list, err := structure.ToList(def)
		if err != nil {
			return false
		}
		for _, v := range list {
			if structure.IsObject(v) || structure.IsList(v) {
				rep.Report(name, "wrong default in variable(2), object type not allowed")
				return false
			}
		}
		values = list
	case structure.IsObject(def):
		if name != domain.KeySort || op != domain.OpEq {
			rep.Report(name, "wrong default in variable(3), object type not allowed")
			return false
		}
		pairs, err := flatten(def)
		if err != nil {
			rep.Report(name, "wrong default in variable(3), object type not allowed")
			return false
		}
		values = pairs
	default:
		values = []any{def}
	}
	m.Get(name).SetList(op, values)
	return true
}

// flatten turns a sort object such as {price: -1, name: 1} into the token
// list price, -1, name, 1, keeping the object's own key order.
func flatten(obj any) ([]any, error) {
	seq, l, err := structure.Seq2(obj)
	if err != nil {
		return nil, err
	}
	pairs := make([]any, 0, 2*l)
	for k, v := range seq {
		pairs = append(pairs, k, v)
	}
	return pairs, nil
}
