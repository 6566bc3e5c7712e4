package domain

import "fmt"

// Operator is a comparison kind attached to a field condition. The order of
// the constants is part of the contract: it is the order in which conditions
// are reported and in which range conflicts are resolved.
type Operator uint8

const (
	// OpEq matches any of the listed values.
	OpEq Operator = iota
	// OpNe matches none of the listed values.
	OpNe
	// OpBt matches values between the listed bounds.
	OpBt
	// OpGt matches values strictly greater than the bound.
	OpGt
	// OpGte matches values greater than or equal to the bound.
	OpGte
	// OpLte matches values less than or equal to the bound.
	OpLte
	// OpLt matches values strictly less than the bound.
	OpLt
	// OpRegex matches values against any of the listed patterns.
	OpRegex

	numOperators
)

var operatorNames = [numOperators]string{
	"eq", "ne", "bt", "gt", "gte", "lte", "lt", "regex",
}

var operatorAliases = map[string]Operator{
	"=":  OpEq,
	"!=": OpNe,
	"<>": OpBt,
	">":  OpGt,
	">=": OpGte,
	"<=": OpLte,
	"<":  OpLt,
	"$":  OpRegex,
}

// Operators returns every operator in contract order.
func Operators() []Operator {
	ops := make([]Operator, numOperators)
	for n := range ops {
		ops[n] = Operator(n)
	}
	return ops
}

// ParseOperator returns the operator named s. Both the operator names ("gte")
// and their query-string symbols (">=") are accepted.
func ParseOperator(s string) (Operator, bool) {
	for n, name := range operatorNames {
		if name == s {
			return Operator(n), true
		}
	}
	op, ok := operatorAliases[s]
	return op, ok
}

// String implements fmt.Stringer.
func (o Operator) String() string {
	if o >= numOperators {
		return fmt.Sprintf("Operator(%d)", uint8(o))
	}
	return operatorNames[o]
}

// Scalar reports whether the operator holds a single bound (gt, gte, lte, lt)
// instead of a list of values.
func (o Operator) Scalar() bool {
	return o >= OpGt && o <= OpLt
}

// Valid reports whether o is one of the known operators.
func (o Operator) Valid() bool {
	return o < numOperators
}

// MarshalText implements encoding.TextMarshaler so conditions encode as
// {"gte": 10} instead of {"4": 10}.
func (o Operator) MarshalText() ([]byte, error) {
	if !o.Valid() {
		return nil, fmt.Errorf("invalid operator %d", uint8(o))
	}
	return []byte(operatorNames[o]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Operator) UnmarshalText(b []byte) error {
	op, ok := ParseOperator(string(b))
	if !ok {
		return fmt.Errorf("unknown operator %q", string(b))
	}
	*o = op
	return nil
}
