package domain

import "slices"

// Reserved field names. They never reach [Result.Query]; their values are
// reported in [Result.Pagination] instead.
const (
	KeySort     = "sort"
	KeyPageNo   = "page_no"
	KeyPageSize = "page_size"
)

// PaginationKeys lists the reserved field names in the order they are
// processed.
var PaginationKeys = []string{KeySort, KeyPageNo, KeyPageSize}

// IsPaginationKey reports whether name is one of the reserved pagination
// field names.
func IsPaginationKey(name string) bool {
	return slices.Contains(PaginationKeys, name)
}

// Token is a single query-string key split into field name, operator and raw
// value. Value is nil, a string or a []string.
type Token struct {
	Name  string
	Op    Operator
	Value any
}

// Bound is the content of a scalar operator slot. Valid is false when the slot
// was never set, which keeps zero values distinguishable from missing ones.
type Bound struct {
	Value any
	Valid bool
}

// Accumulator holds every value collected for one field during a single parse,
// one slot per operator. List slots grow with each occurrence; scalar slots
// keep the running bound.
type Accumulator struct {
	Eq    []any
	Ne    []any
	Bt    []any
	Gt    Bound
	Gte   Bound
	Lte   Bound
	Lt    Bound
	Regex []any
}

func (a *Accumulator) list(op Operator) *[]any {
	switch op {
	case OpEq:
		return &a.Eq
	case OpNe:
		return &a.Ne
	case OpBt:
		return &a.Bt
	case OpRegex:
		return &a.Regex
	}
	return nil
}

func (a *Accumulator) bound(op Operator) *Bound {
	switch op {
	case OpGt:
		return &a.Gt
	case OpGte:
		return &a.Gte
	case OpLte:
		return &a.Lte
	case OpLt:
		return &a.Lt
	}
	return nil
}

// List returns the values of a list slot, or nil for scalar operators.
func (a *Accumulator) List(op Operator) []any {
	if l := a.list(op); l != nil {
		return *l
	}
	return nil
}

// SetList replaces the values of a list slot. It is a no-op for scalar
// operators.
func (a *Accumulator) SetList(op Operator, values []any) {
	if l := a.list(op); l != nil {
		*l = values
	}
}

// Append adds values to a list slot. It is a no-op for scalar operators.
func (a *Accumulator) Append(op Operator, values ...any) {
	if l := a.list(op); l != nil {
		*l = append(*l, values...)
	}
}

// Bound returns the content of a scalar slot.
func (a *Accumulator) Bound(op Operator) Bound {
	if b := a.bound(op); b != nil {
		return *b
	}
	return Bound{}
}

// SetBound sets a scalar slot. It is a no-op for list operators.
func (a *Accumulator) SetBound(op Operator, value any) {
	if b := a.bound(op); b != nil {
		*b = Bound{Value: value, Valid: true}
	}
}

// Clear empties the slot of op.
func (a *Accumulator) Clear(op Operator) {
	if l := a.list(op); l != nil {
		*l = nil
	}
	if b := a.bound(op); b != nil {
		*b = Bound{}
	}
}

// Has reports whether the slot of op holds anything.
func (a *Accumulator) Has(op Operator) bool {
	if op.Scalar() {
		return a.Bound(op).Valid
	}
	return len(a.List(op)) > 0
}

// Empty reports whether no slot holds anything.
func (a *Accumulator) Empty() bool {
	for _, op := range Operators() {
		if a.Has(op) {
			return false
		}
	}
	return true
}

// Condition returns the non-empty slots as an operator keyed mapping. List
// slots map to []any, scalar slots to the bound value.
func (a *Accumulator) Condition() Condition {
	c := make(Condition)
	for _, op := range Operators() {
		if !a.Has(op) {
			continue
		}
		if op.Scalar() {
			c[op] = a.Bound(op).Value
		} else {
			c[op] = slices.Clone(a.List(op))
		}
	}
	return c
}

// Condition maps each operator used on a field to its value.
type Condition map[Operator]any

// Query maps field names to their conditions.
type Query map[string]Condition

// Matrix maps field names to the values collected for them during one parse.
type Matrix map[string]*Accumulator

// Get returns the accumulator for name, creating it if needed.
func (m Matrix) Get(name string) *Accumulator {
	acc, ok := m[name]
	if !ok {
		acc = &Accumulator{}
		m[name] = acc
	}
	return acc
}

// TransformFunc coerces one raw value into the value stored in the query.
type TransformFunc func(any) any

// Variable describes how a field may be used. A nil Default means the field
// has no default value.
type Variable struct {
	// Transform replaces the default coercion of raw values.
	Transform TransformFunc
	// Default is injected when the request does not mention the field. It
	// may be a scalar, a list, or for sort only, an object mapping field
	// names to directions.
	Default any
	// DefaultOp is the operator Default is injected under. Empty means eq.
	DefaultOp string
	// ReadOnly fields are rejected when present in the request.
	ReadOnly bool
}

// Template is a static set of variables keyed by field name. It implements
// [Resolver].
type Template map[string]Variable

// Resolve implements Resolver.
func (t Template) Resolve(name string, _ *Config) (*Variable, error) {
	v, ok := t[name]
	if !ok {
		return nil, nil
	}
	return &v, nil
}

// Names returns the field names of the template in sorted order.
func (t Template) Names() []string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Config is the caller configuration. It is passed through verbatim to
// [Result.Config] and consulted for defaults.
type Config struct {
	// Pagination holds the already parsed pagination defaults.
	Pagination *PaginationConfig
	// Defaults overrides template defaults per field. A [Variable] or
	// *[Variable] replaces the template entry, any other value is used as
	// its default. Values under the pagination keys are taken as parsed:
	// page_no and page_size as integers, sort as a [Sort].
	Defaults map[string]any
	// Extra carries arbitrary caller data.
	Extra map[string]any
}

// PaginationConfig holds pagination defaults in parsed form.
type PaginationConfig struct {
	PageNo   *int
	PageSize *int
	Sort     Sort
}

// Sort represents an ordered list of fields which should be used to sort query
// results, applied in sequence.
type Sort = []SortName

// SortName represents a single field and the order which should be used to sort
// it. A positive Order value means ascending order and a negative value means
// descending order.
type SortName struct {
	Key   string `json:"key" yaml:"key"`
	Order int64  `json:"order" yaml:"order"`
}

// Pagination is the paging and ordering part of a parsed request.
type Pagination struct {
	PageNo   *int `json:"page_no,omitempty"`
	PageSize *int `json:"page_size,omitempty"`
	Sort     Sort `json:"sort,omitempty"`
	// SortDefault is true when Sort did not come from the request itself.
	SortDefault bool `json:"sort_default,omitempty"`
}

// Result is the output of a parse.
type Result struct {
	Config     *Config     `json:"-"`
	Query      Query       `json:"query"`
	Pagination *Pagination `json:"pagination,omitempty"`
	// Messages lists, in order, every rejected or auto-resolved input.
	Messages []string `json:"messages,omitempty"`
}
