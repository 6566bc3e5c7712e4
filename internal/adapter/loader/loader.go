// Package loader reads variable templates from JSON or YAML documents.
//
// A template maps field names to their variable:
//
//	price:
//	  default: 100
//	  default_op: ">="
//	  transform: number
//	sort:
//	  default: {price: -1, name: 1}
//	id:
//	  read_only: true
package loader

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dolmen-go/contextio"
	"gopkg.in/yaml.v3"

	"github.com/vinicius-lino-figueiredo/qsfilter/domain"
	"github.com/vinicius-lino-figueiredo/qsfilter/internal/adapter/data"
	"github.com/vinicius-lino-figueiredo/qsfilter/internal/adapter/decoder"
	"github.com/vinicius-lino-figueiredo/qsfilter/internal/adapter/transformer"
)

// Supported template formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// variable is the document form of a [domain.Variable].
type variable struct {
	Default   any    `qs:"default"`
	DefaultOp string `qs:"default_op"`
	ReadOnly  bool   `qs:"read_only"`
	Transform string `qs:"transform"`
}

// Loader builds templates from documents.
type Loader struct {
	decoder    domain.Decoder
	transforms map[string]domain.TransformFunc
}

// NewLoader returns a [Loader] knowing the built-in transforms plus the ones
// given as options.
func NewLoader(options ...domain.LoaderOption) *Loader {
	opts := domain.LoaderOptions{
		Decoder:    decoder.NewDecoder(),
		Transforms: Transforms(),
	}
	for _, option := range options {
		option(&opts)
	}
	if opts.Decoder == nil {
		opts.Decoder = decoder.NewDecoder()
	}
	return &Loader{decoder: opts.Decoder, transforms: opts.Transforms}
}

// Transforms returns the built-in named transforms.
func Transforms() map[string]domain.TransformFunc {
	return map[string]domain.TransformFunc{
		"number": transformer.Number,
		"string": toString,
		"trim":   mapString(strings.TrimSpace),
		"lower":  mapString(strings.ToLower),
		"upper":  mapString(strings.ToUpper),
		"bool":   toBool,
	}
}

// FormatOf returns the template format implied by the extension of filename,
// defaulting to JSON.
func FormatOf(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

// Load reads a whole template from r. Reading stops when ctx is done.
func (l *Loader) Load(ctx context.Context, r io.Reader, format string) (domain.Template, error) {
	b, err := io.ReadAll(contextio.NewReader(ctx, r))
	if err != nil {
		return nil, fmt.Errorf("reading template: %w", err)
	}

	var doc any
	switch strings.ToLower(format) {
	case FormatJSON:
		doc, err = data.Parse(b)
	case FormatYAML, "yml":
		doc, err = parseYAML(b)
	default:
		return nil, domain.ErrTemplateFormat{Format: format, Reason: "unsupported format"}
	}
	if err != nil {
		return nil, fmt.Errorf("parsing %s template: %w", format, err)
	}
	return l.template(format, doc)
}

func (l *Loader) template(format string, doc any) (domain.Template, error) {
	if doc == nil {
		return domain.Template{}, nil
	}
	fields, ok := doc.(domain.Document)
	if !ok {
		return nil, domain.ErrTemplateFormat{
			Format: format,
			Reason: fmt.Sprintf("expected object, got %T", doc),
		}
	}

	t := make(domain.Template, fields.Len())
	for name, value := range fields.Iter() {
		v, err := l.variable(format, name, value)
		if err != nil {
			return nil, err
		}
		t[name] = v
	}
	return t, nil
}

func (l *Loader) variable(format string, name string, value any) (domain.Variable, error) {
	if value == nil {
		return domain.Variable{}, nil
	}
	if _, ok := value.(domain.Document); !ok {
		return domain.Variable{}, domain.ErrTemplateFormat{
			Format: format,
			Reason: fmt.Sprintf("field %q: expected object, got %T", name, value),
		}
	}

	var doc variable
	if err := l.decoder.Decode(value, &doc); err != nil {
		return domain.Variable{}, fmt.Errorf("field %q: %w", name, err)
	}

	v := domain.Variable{
		Default:   doc.Default,
		DefaultOp: doc.DefaultOp,
		ReadOnly:  doc.ReadOnly,
	}
	if doc.DefaultOp != "" {
		if _, ok := domain.ParseOperator(doc.DefaultOp); !ok {
			return domain.Variable{}, domain.ErrTemplateFormat{
				Format: format,
				Reason: fmt.Sprintf("field %q: unknown operator %q", name, doc.DefaultOp),
			}
		}
	}
	if doc.Transform != "" {
		fn, ok := l.transforms[doc.Transform]
		if !ok {
			return domain.Variable{}, domain.ErrTemplateFormat{
				Format: format,
				Reason: fmt.Sprintf("field %q: unknown transform %q", name, doc.Transform),
			}
		}
		v.Transform = fn
	}
	return v, nil
}

func parseYAML(b []byte) (any, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(b, &node); err != nil {
		return nil, err
	}
	return fromNode(&node)
}

// fromNode converts a YAML node into the values data.Parse produces for the
// same JSON document, so mappings keep their key order.
func fromNode(node *yaml.Node) (any, error) {
	switch node.Kind {
	case 0:
		return nil, nil
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil, nil
		}
		return fromNode(node.Content[0])
	case yaml.AliasNode:
		return fromNode(node.Alias)
	case yaml.MappingNode:
		o := make(data.O, 0, len(node.Content)/2)
		for n := 0; n+1 < len(node.Content); n += 2 {
			val, err := fromNode(node.Content[n+1])
			if err != nil {
				return nil, err
			}
			o.Set(node.Content[n].Value, val)
		}
		return o, nil
	case yaml.SequenceNode:
		list := make([]any, 0, len(node.Content))
		for _, item := range node.Content {
			val, err := fromNode(item)
			if err != nil {
				return nil, err
			}
			list = append(list, val)
		}
		return list, nil
	}

	var v any
	if err := node.Decode(&v); err != nil {
		return nil, err
	}
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case uint64:
		return float64(n), nil
	}
	return v, nil
}

func toString(v any) any {
	switch t := v.(type) {
	case nil:
		return nil
	case string:
		return strings.TrimSpace(t)
	}
	return fmt.Sprint(v)
}

func mapString(fn func(string) string) domain.TransformFunc {
	return func(v any) any {
		if s, ok := v.(string); ok {
			return fn(s)
		}
		return v
	}
}

func toBool(v any) any {
	s, ok := v.(string)
	if !ok {
		return v
	}
	if b, err := strconv.ParseBool(strings.TrimSpace(s)); err == nil {
		return b
	}
	return s
}
