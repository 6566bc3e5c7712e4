// Package decoder contains the default [domain.Decoder] implementation.
package decoder

import (
	"github.com/goccy/go-reflect"
	"github.com/mitchellh/mapstructure"
	"github.com/vinicius-lino-figueiredo/qsfilter/domain"
)

// TagName is the struct tag read when decoding.
const TagName = "qs"

// Decoder implements domain.Decoder.
type Decoder struct{}

// NewDecoder returns a new implementation of domain.Decoder.
func NewDecoder() domain.Decoder {
	return &Decoder{}
}

// Decode implements domain.Decoder. A [domain.Document] source is decoded as a
// map; documents nested in it are kept as they are, so fields of type any
// receive them with their key order intact. Keys that match no field are an
// error.
func (d *Decoder) Decode(source any, target any) error {
	if target == nil {
		return domain.ErrTargetNil
	}
	if reflect.ValueNoEscapeOf(target).Kind() != reflect.Ptr {
		return domain.ErrNonPointer
	}

	if doc, ok := source.(domain.Document); ok {
		m := make(map[string]any, doc.Len())
		for k, v := range doc.Iter() {
			m[k] = v
		}
		source = m
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          TagName,
		Result:           target,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(source); err != nil {
		return domain.ErrDecode{Source: source, Target: target, Err: err}
	}
	return nil
}
