// Package transformer coerces raw query values and collects them into the
// accumulator of their field.
package transformer

import (
	"fmt"
	"strings"

	"github.com/vinicius-lino-figueiredo/qsfilter/domain"
	"github.com/vinicius-lino-figueiredo/qsfilter/pkg/structure"
)

// Separator splits a single raw value into several.
const Separator = "|"

// Default is the coercion used when a variable has no transform: numeric
// strings become numbers, other strings are trimmed and anything else is kept.
func Default(v any) any {
	s, ok := v.(string)
	if !ok {
		return v
	}
	if n, ok := structure.ParseNumber(s); ok {
		return n
	}
	return strings.TrimSpace(s)
}

// Number is the coercion of page_no and page_size when no variable describes
// them. It behaves like [Default].
func Number(v any) any {
	return Default(v)
}

// Transformer implements the value stage of the parser.
type Transformer struct {
	comparer domain.Comparer
}

// NewTransformer returns a [Transformer] ordering bounds with c.
func NewTransformer(c domain.Comparer) *Transformer {
	return &Transformer{comparer: c}
}

// Values splits and coerces a raw value. Every string of a list is split on
// [Separator]; a single string is split too unless op is regex, since "|" is
// meaningful in a pattern.
func Values(fn domain.TransformFunc, raw any, op domain.Operator) []any {
	if fn == nil {
		fn = Default
	}
	switch v := raw.(type) {
	case []string:
		values := make([]any, 0, len(v))
		for _, part := range v {
			if !strings.Contains(part, Separator) {
				values = append(values, fn(part))
				continue
			}
			for _, sub := range strings.Split(part, Separator) {
				values = append(values, fn(sub))
			}
		}
		return values
	case string:
		if op != domain.OpRegex && strings.Contains(v, Separator) {
			parts := strings.Split(v, Separator)
			values := make([]any, len(parts))
			for n, part := range parts {
				values[n] = fn(strings.TrimSpace(part))
			}
			return values
		}
		return []any{fn(strings.TrimSpace(v))}
	}
	return []any{fn(raw)}
}

// Transform coerces raw with the variable transform and adds the result to the
// accumulator of name. List operators keep every value, gt and gte keep the
// largest and lte and lt the smallest value seen for the field.
func (t *Transformer) Transform(variable *domain.Variable, name string, raw any, op domain.Operator, matrix domain.Matrix) error {
	values := Values(variable.Transform, raw, op)
	if len(values) == 0 {
		return nil
	}
	if !op.Valid() {
		return nil
	}

	acc := matrix.Get(name)
	if !op.Scalar() {
		acc.Append(op, values...)
		return nil
	}

	if b := acc.Bound(op); b.Valid {
		values = append([]any{b.Value}, values...)
	}
	bound, err := t.extreme(op, values)
	if err != nil {
		return fmt.Errorf("collecting %s for %q: %w", op, name, err)
	}
	acc.SetBound(op, bound)
	return nil
}

// extreme returns the max of values for lower bounds and the min for upper
// bounds.
func (t *Transformer) extreme(op domain.Operator, values []any) (any, error) {
	want := 1
	if op == domain.OpLte || op == domain.OpLt {
		want = -1
	}
	res := values[0]
	for _, v := range values[1:] {
		c, err := t.comparer.Compare(v, res)
		if err != nil {
			return nil, err
		}
		if c == want {
			res = v
		}
	}
	return res, nil
}
