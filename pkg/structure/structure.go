// Package structure contains type-related operations, such as iterating over a
// value of type any and converting numbers.
package structure

import (
	"errors"
	"iter"
	"math"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-reflect"
	"github.com/vinicius-lino-figueiredo/qsfilter/domain"
)

var (
	// ErrNilObj may be returned by [Seq] or [Seq2] when a nil value is
	// passed as argument.
	ErrNilObj = errors.New("nil object")
)

var docReflectType = reflect.TypeOf((*domain.Document)(nil)).Elem()

// ErrorNonObject is returned by [Seq2] when a value that is neither a struct,
// map nor a [domain.Document] is passed as argument.
type ErrorNonObject struct {
	Type reflect.Type
}

func (e ErrorNonObject) Error() string {
	return "expected object, got " + typeName(e.Type)
}

// ErrorNonList is returned by [Seq] when a value that is neither a slice
// nor a array is passed as argument.
type ErrorNonList struct {
	Type reflect.Type
}

func (e ErrorNonList) Error() string {
	return "expected list, got " + typeName(e.Type)
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "nil"
	}
	return t.String()
}

// IsObject reports whether v holds keyed members: a map, a struct other than
// [time.Time], a [domain.Document] or a [domain.Sort].
func IsObject(v any) bool {
	if v == nil {
		return false
	}
	switch v.(type) {
	case domain.Document, domain.Sort:
		return true
	case time.Time, *regexp.Regexp:
		return false
	}
	r, ok := deref(v)
	if !ok {
		return false
	}
	if r.Type().Implements(docReflectType) {
		return true
	}
	switch r.Kind() {
	case reflect.Map, reflect.Struct:
		return true
	}
	return false
}

// IsList reports whether v is a slice or array. Byte slices, documents and
// [domain.Sort] are not lists.
func IsList(v any) bool {
	if v == nil {
		return false
	}
	switch v.(type) {
	case []byte, domain.Sort, domain.Document:
		return false
	}
	r, ok := deref(v)
	if !ok {
		return false
	}
	switch r.Kind() {
	case reflect.Slice, reflect.Array:
		return true
	}
	return false
}

func deref(v any) (reflect.Value, bool) {
	r := reflect.ValueNoEscapeOf(v)
	for r.Kind() == reflect.Ptr || r.Kind() == reflect.Interface {
		if r.IsNil() {
			return r, false
		}
		r = r.Elem()
	}
	return r, true
}

// Seq2 returns an iterator over the members of an object. Documents and sorts
// keep their order, struct fields follow declaration order and map keys are
// sorted so the iteration is deterministic.
func Seq2(obj any) (iter.Seq2[string, any], int, error) {
	if obj == nil {
		return nil, 0, ErrNilObj
	}
	switch t := obj.(type) {
	case domain.Document:
		return t.Iter(), t.Len(), nil
	case domain.Sort:
		return iterSort(t), len(t), nil
	case map[string]any:
		return iterMap(t), len(t), nil
	case map[string]int:
		return iterMap(t), len(t), nil
	case map[string]int64:
		return iterMap(t), len(t), nil
	case map[string]float64:
		return iterMap(t), len(t), nil
	case map[string]string:
		return iterMap(t), len(t), nil
	}
	return iterReflect(obj)
}

func iterReflect(obj any) (iter.Seq2[string, any], int, error) {
	v, ok := deref(obj)
	if !ok {
		return nil, 0, ErrNilObj
	}

	if v.Type().Implements(docReflectType) {
		doc := v.Interface().(domain.Document)
		return doc.Iter(), doc.Len(), nil
	}

	switch v.Kind() {
	case reflect.Map:
		if v.Type().Key().Kind() == reflect.String {
			i, l := iterReflectMap(v)
			return i, l, nil
		}
	case reflect.Struct:
		if _, isTime := obj.(time.Time); !isTime {
			i, l := iterReflectStruct(v)
			return i, l, nil
		}
	}
	return nil, 0, ErrorNonObject{Type: v.Type()}
}

type member struct {
	Key   string
	Value any
}

func iterMembers(members []member) iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for _, m := range members {
			if !yield(m.Key, m.Value) {
				return
			}
		}
	}
}

func iterReflectMap(v reflect.Value) (iter.Seq2[string, any], int) {
	members := make([]member, 0, v.Len())
	for _, k := range v.MapKeys() {
		members = append(members, member{Key: k.String(), Value: v.MapIndex(k).Interface()})
	}
	slices.SortFunc(members, func(a, b member) int {
		return strings.Compare(a.Key, b.Key)
	})
	return iterMembers(members), len(members)
}

func iterReflectStruct(v reflect.Value) (iter.Seq2[string, any], int) {
	members := make([]member, 0, v.NumField())
	typ := v.Type()
	for n := range typ.NumField() {
		field := typ.Field(n)
		if field.PkgPath != "" {
			continue
		}
		name := field.Name
		if tag, ok := field.Tag.Lookup("qs"); ok {
			tag, _, _ = strings.Cut(tag, ",")
			if tag == "-" {
				continue
			}
			if tag != "" {
				name = tag
			}
		}
		members = append(members, member{Key: name, Value: v.Field(n).Interface()})
	}
	return iterMembers(members), len(members)
}

func iterMap[T any](m map[string]T) iter.Seq2[string, any] {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return func(yield func(string, any) bool) {
		for _, k := range keys {
			if !yield(k, m[k]) {
				return
			}
		}
	}
}

func iterSort(s domain.Sort) iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for _, name := range s {
			if !yield(name.Key, name.Order) {
				return
			}
		}
	}
}

// Seq returns an iterator over a slice or array of any type.
func Seq(obj any) (iter.Seq[any], int, error) {
	if obj == nil {
		return nil, 0, ErrNilObj
	}
	switch t := obj.(type) {
	case []any:
		return iterSlice(t), len(t), nil
	case []string:
		return iterSlice(t), len(t), nil
	case []int:
		return iterSlice(t), len(t), nil
	case []int64:
		return iterSlice(t), len(t), nil
	case []float64:
		return iterSlice(t), len(t), nil
	}
	if !IsList(obj) {
		return nil, 0, ErrorNonList{Type: reflect.TypeOf(obj)}
	}
	v, _ := deref(obj)
	return func(yield func(any) bool) {
		for n := range v.Len() {
			if !yield(v.Index(n).Interface()) {
				return
			}
		}
	}, v.Len(), nil
}

func iterSlice[T any](m []T) iter.Seq[any] {
	return func(yield func(any) bool) {
		for _, v := range m {
			if !yield(v) {
				return
			}
		}
	}
}

// ToList collects the members of a slice or array into a []any.
func ToList(obj any) ([]any, error) {
	seq, l, err := Seq(obj)
	if err != nil {
		return nil, err
	}
	res := make([]any, 0, l)
	for v := range seq {
		res = append(res, v)
	}
	return res, nil
}

// AsInteger converts any built-in number to int and returns a flag that informs
// if the argument is a valid integer. Numeric strings are accepted too.
func AsInteger(v any) (int, bool) {
	switch t := v.(type) {
	case int:
		return t, true
	case int8:
		return int(t), true
	case int16:
		return int(t), true
	case int32:
		return int(t), true
	case int64:
		return int(t), true
	case uint:
		return int(t), true
	case uint8:
		return int(t), true
	case uint16:
		return int(t), true
	case uint32:
		return int(t), true
	case uint64:
		return int(t), true
	case float32:
		if trunc := math.Trunc(float64(t)); trunc == float64(t) {
			return int(trunc), true
		}
		return 0, false
	case float64:
		if trunc := math.Trunc(t); trunc == t {
			return int(trunc), true
		}
		return 0, false
	case string:
		if n, ok := ParseNumber(t); ok {
			return AsInteger(n)
		}
		return 0, false
	default:
		return 0, false
	}
}

// IsNumber reports whether v is a built-in number type.
func IsNumber(v any) bool {
	switch v.(type) {
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return true
	}
	return false
}

// ParseNumber parses a decimal number surrounded by optional white space.
// Integers become int64, everything else float64. Infinities, NaN and hex
// forms are rejected.
func ParseNumber(s string) (any, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, false
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i, true
	}
	for _, c := range s {
		if (c < '0' || c > '9') && c != '.' && c != '-' && c != '+' && c != 'e' && c != 'E' {
			return nil, false
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, false
	}
	return f, true
}
