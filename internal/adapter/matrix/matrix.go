// Package matrix resolves the values collected for each field: it removes
// duplicates, settles overlapping bounds and hands the sort tokens to the
// sort parser.
package matrix

import (
	"fmt"
	"slices"

	"github.com/vinicius-lino-figueiredo/qsfilter/domain"
	"github.com/vinicius-lino-figueiredo/qsfilter/internal/adapter/reporter"
	"github.com/vinicius-lino-figueiredo/qsfilter/internal/adapter/sorter"
	"github.com/vinicius-lino-figueiredo/qsfilter/pkg/uncomparable"
)

// Builder resolves a [domain.Matrix] in place.
type Builder struct {
	hasher   domain.Hasher
	comparer domain.Comparer
	sorter   *sorter.Sorter
}

// NewBuilder returns a [Builder].
func NewBuilder(h domain.Hasher, c domain.Comparer, s *sorter.Sorter) *Builder {
	return &Builder{hasher: h, comparer: c, sorter: s}
}

// Build resolves every field of m in sorted name order. Fields left without
// values are removed. The eq tokens of the sort field are parsed and returned
// instead of being kept in m.
func (b *Builder) Build(m domain.Matrix, cfg *domain.Config, rep *reporter.Reporter) (domain.Sort, error) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	slices.Sort(names)

	var sort domain.Sort
	for _, name := range names {
		acc := m[name]
		if name == domain.KeySort && len(acc.Eq) > 0 {
			parsed, err := b.sorter.Parse(acc.Eq, cfg, rep)
			if err != nil {
				return nil, err
			}
			sort = parsed
			delete(m, name)
			continue
		}
		if err := b.resolve(name, acc, rep); err != nil {
			return nil, err
		}
		if acc.Empty() {
			rep.Report(name, "skipped, due no value for "+name)
			delete(m, name)
		}
	}
	return sort, nil
}

func (b *Builder) resolve(name string, acc *domain.Accumulator, rep *reporter.Reporter) error {
	for _, op := range []domain.Operator{domain.OpEq, domain.OpNe} {
		values, removed, err := uncomparable.Dedup(b.hasher, b.comparer, acc.List(op))
		if err != nil {
			return fmt.Errorf("removing duplicates of %q: %w", name, err)
		}
		if removed {
			acc.SetList(op, values)
			rep.Report(name, "one or more value item removed due to duplicated for "+name)
		}
	}

	// gt <= gte: gte is the tighter bound
	drop, err := b.notAbove(acc.Gt, acc.Gte)
	if err != nil {
		return fmt.Errorf("comparing bounds of %q: %w", name, err)
	}
	if drop {
		acc.Clear(domain.OpGt)
		rep.Report(name, "both > and >= exist, keep the max one for "+name)
	}

	// lte <= lt clears lt, which keeps lte even when lt is the tighter one
	drop, err = b.notAbove(acc.Lte, acc.Lt)
	if err != nil {
		return fmt.Errorf("comparing bounds of %q: %w", name, err)
	}
	if drop {
		acc.Clear(domain.OpLt)
		rep.Report(name, "both < and <= exist, keep the min one for "+name)
	}
	return nil
}

// notAbove reports whether both bounds are set and a <= b.
func (b *Builder) notAbove(x, y domain.Bound) (bool, error) {
	if !x.Valid || !y.Valid {
		return false, nil
	}
	c, err := b.comparer.Compare(x.Value, y.Value)
	if err != nil {
		return false, err
	}
	return c <= 0, nil
}
