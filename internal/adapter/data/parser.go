package data

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"unicode"
	"unicode/utf16"
	"unicode/utf8"
)

// Errors returned by [Parse]. They are wrapped in [ErrSyntax], which carries
// the byte offset of the failure.
var (
	ErrTrailingData       = errors.New("trailing data after JSON")
	ErrExpectedColon      = errors.New("expected ':'")
	ErrExpectedComma      = errors.New("expected ','")
	ErrExpectedString     = errors.New("expected string")
	ErrUnterminatedString = errors.New("unterminated string")
	ErrInvalidNumber      = errors.New("invalid number")
	ErrInvalidLiteral     = errors.New("invalid literal")
	ErrInvalidControlChar = errors.New("invalid control char")
	ErrInvalidEscape      = errors.New("invalid escape sequence")
)

// ErrSyntax reports where a JSON document stopped making sense.
type ErrSyntax struct {
	Offset int
	Err    error
}

func (e ErrSyntax) Error() string {
	return fmt.Sprintf("offset %d: %s", e.Offset, e.Err)
}

func (e ErrSyntax) Unwrap() error { return e.Err }

// Parse decodes a JSON document. Objects become [O], keeping the order their
// keys were written in, arrays become []any, integral numbers int64 and other
// numbers float64.
func Parse(data []byte) (any, error) {
	p := &parser{data: data, n: len(data)}
	return p.parse()
}

type parser struct {
	data []byte
	i    int
	n    int
}

func (p *parser) fail(err error) error {
	return ErrSyntax{Offset: p.i, Err: err}
}

func (p *parser) parse() (any, error) {
	p.skip()
	val, err := p.value()
	if err != nil {
		return nil, err
	}
	p.skip()
	if p.i != p.n {
		return nil, p.fail(ErrTrailingData)
	}
	return val, nil
}

func (p *parser) skip() {
	for p.i < p.n {
		switch p.data[p.i] {
		case ' ', '\t', '\n', '\r':
			p.i++
		default:
			return
		}
	}
}

func (p *parser) value() (any, error) {
	if p.i >= p.n {
		return nil, p.fail(io.ErrUnexpectedEOF)
	}
	switch p.data[p.i] {
	case '{':
		return p.obj()
	case '[':
		return p.arr()
	case '"':
		return p.str()
	case 't':
		return p.expect("true", true)
	case 'f':
		return p.expect("false", false)
	case 'n':
		return p.expect("null", nil)
	default:
		return p.num()
	}
}

// next skips white space and reports the byte under the cursor.
func (p *parser) next() (byte, error) {
	p.skip()
	if p.i >= p.n {
		return 0, p.fail(io.ErrUnexpectedEOF)
	}
	return p.data[p.i], nil
}

func (p *parser) obj() (O, error) {
	p.i++ // skip '{'
	o := O{}
	if c, err := p.next(); err != nil {
		return nil, err
	} else if c == '}' {
		p.i++
		return o, nil
	}
	for {
		if _, err := p.next(); err != nil {
			return nil, err
		}
		key, err := p.str()
		if err != nil {
			return nil, err
		}
		if c, err := p.next(); err != nil {
			return nil, err
		} else if c != ':' {
			return nil, p.fail(ErrExpectedColon)
		}
		p.i++
		p.skip()
		val, err := p.value()
		if err != nil {
			return nil, err
		}
		o.Set(key, val)

		c, err := p.next()
		if err != nil {
			return nil, err
		}
		p.i++
		if c == '}' {
			return o, nil
		}
		if c != ',' {
			p.i--
			return nil, p.fail(ErrExpectedComma)
		}
	}
}

func (p *parser) arr() ([]any, error) {
	p.i++ // skip '['
	out := []any{}
	if c, err := p.next(); err != nil {
		return nil, err
	} else if c == ']' {
		p.i++
		return out, nil
	}
	for {
		p.skip()
		val, err := p.value()
		if err != nil {
			return nil, err
		}
		out = append(out, val)

		c, err := p.next()
		if err != nil {
			return nil, err
		}
		p.i++
		if c == ']' {
			return out, nil
		}
		if c != ',' {
			p.i--
			return nil, p.fail(ErrExpectedComma)
		}
	}
}

func (p *parser) str() (string, error) {
	if p.data[p.i] != '"' {
		return "", p.fail(ErrExpectedString)
	}
	for i := p.i + 1; i < p.n; i++ {
		switch p.data[i] {
		case '\\':
			i++
		case '"':
			s, err := p.unquote(p.data[p.i+1 : i])
			if err != nil {
				return "", err
			}
			p.i = i + 1
			return s, nil
		}
	}
	return "", p.fail(ErrUnterminatedString)
}

func (p *parser) unquote(b []byte) (string, error) {
	out := make([]byte, 0, len(b))
	for i := 0; i < len(b); {
		c := b[i]
		switch {
		case c == '\\':
			if i+1 >= len(b) {
				return "", p.fail(ErrInvalidEscape)
			}
			switch b[i+1] {
			case '"', '\\', '/':
				out = append(out, b[i+1])
			case 'b':
				out = append(out, '\b')
			case 'f':
				out = append(out, '\f')
			case 'n':
				out = append(out, '\n')
			case 'r':
				out = append(out, '\r')
			case 't':
				out = append(out, '\t')
			case 'u':
				r, size := p.slashU(b[i:])
				if size == 0 {
					return "", p.fail(ErrInvalidEscape)
				}
				out = utf8.AppendRune(out, r)
				i += size
				continue
			default:
				return "", p.fail(ErrInvalidEscape)
			}
			i += 2

		case c < ' ':
			return "", p.fail(ErrInvalidControlChar)

		case c < utf8.RuneSelf:
			out = append(out, c)
			i++

		default:
			r, size := utf8.DecodeRune(b[i:])
			out = utf8.AppendRune(out, r)
			i += size
		}
	}
	return string(out), nil
}

// slashU decodes a \uXXXX escape, joining surrogate pairs. It returns the
// rune and the number of bytes consumed, zero if the escape is malformed.
func (p *parser) slashU(b []byte) (rune, int) {
	r := p.getUTF(b)
	if r < 0 {
		return 0, 0
	}
	if utf16.IsSurrogate(r) {
		if r2 := p.getUTF(b[6:]); r2 >= 0 {
			if dec := utf16.DecodeRune(r, r2); dec != unicode.ReplacementChar {
				return dec, 12
			}
		}
		return unicode.ReplacementChar, 6
	}
	return r, 6
}

func (p *parser) getUTF(b []byte) rune {
	if len(b) < 6 || b[0] != '\\' || b[1] != 'u' {
		return -1
	}
	r, err := strconv.ParseUint(string(b[2:6]), 16, 16)
	if err != nil {
		return -1
	}
	return rune(r)
}

func (p *parser) num() (any, error) {
	start := p.i
	integral := true
	for p.i < p.n {
		c := p.data[p.i]
		if (c >= '0' && c <= '9') || c == '-' || c == '+' {
			p.i++
		} else if c == '.' || c == 'e' || c == 'E' {
			integral = false
			p.i++
		} else {
			break
		}
	}
	s := string(p.data[start:p.i])
	if s == "" {
		return nil, p.fail(ErrInvalidNumber)
	}
	if integral {
		if v, err := strconv.ParseInt(s, 10, 64); err == nil {
			return v, nil
		}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		p.i = start
		return nil, p.fail(ErrInvalidNumber)
	}
	return v, nil
}

func (p *parser) expect(lit string, val any) (any, error) {
	end := p.i + len(lit)
	if end > p.n || string(p.data[p.i:end]) != lit {
		return nil, p.fail(ErrInvalidLiteral)
	}
	p.i = end
	return val, nil
}
