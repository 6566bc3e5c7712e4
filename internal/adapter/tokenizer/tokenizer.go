// Package tokenizer contains the default [domain.Tokenizer] implementation.
//
// A query-string key carries its operator in one of two ways. When the key has
// a value, the operator is its last character:
//
//	price!=10   ne
//	price<=10   lte
//	price>=10   gte
//	name$=^a    regex
//
// When the key has no value, the whole condition is in the key:
//
//	price<>10|20   bt
//	price>10       gt
//	price<10       lt
package tokenizer

import (
	"strings"

	"github.com/vinicius-lino-figueiredo/qsfilter/domain"
)

var suffixes = []struct {
	marker byte
	op     domain.Operator
}{
	{marker: '!', op: domain.OpNe},
	{marker: '<', op: domain.OpLte},
	{marker: '>', op: domain.OpGte},
	{marker: '$', op: domain.OpRegex},
}

var infixes = []struct {
	marker string
	op     domain.Operator
}{
	{marker: "<>", op: domain.OpBt},
	{marker: ">", op: domain.OpGt},
	{marker: "<", op: domain.OpLt},
}

// Tokenizer implements domain.Tokenizer.
type Tokenizer struct{}

// NewTokenizer returns a new implementation of domain.Tokenizer.
func NewTokenizer() domain.Tokenizer {
	return &Tokenizer{}
}

// Tokenize implements domain.Tokenizer.
func (t *Tokenizer) Tokenize(key string, value any) domain.Token {
	tok := domain.Token{Name: key, Op: domain.OpEq, Value: value}

	if isEmpty(value) {
		for _, in := range infixes {
			if !strings.Contains(key, in.marker) {
				continue
			}
			// only name<op>value is accepted, anything else is taken
			// as a plain name
			if parts := strings.Split(key, in.marker); len(parts) == 2 {
				tok.Name = parts[0]
				tok.Op = in.op
				tok.Value = strings.TrimSpace(parts[1])
			}
			break
		}
	} else if key != "" {
		last := key[len(key)-1]
		for _, suf := range suffixes {
			if last == suf.marker {
				tok.Name = key[:len(key)-1]
				tok.Op = suf.op
				break
			}
		}
	}

	if s, ok := tok.Value.(string); ok && (s == "null" || s == "NULL") {
		tok.Value = nil
	}
	return tok
}

func isEmpty(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case []string:
		return len(v) == 0
	}
	return false
}
