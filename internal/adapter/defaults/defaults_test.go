package defaults

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/vinicius-lino-figueiredo/qsfilter/domain"
	"github.com/vinicius-lino-figueiredo/qsfilter/internal/adapter/data"
	"github.com/vinicius-lino-figueiredo/qsfilter/internal/adapter/reporter"
)

type DefaultsTestSuite struct {
	suite.Suite
	rep *reporter.Reporter
	m   domain.Matrix
}

func (s *DefaultsTestSuite) SetupTest() {
	s.rep = reporter.New(nil)
	s.m = make(domain.Matrix)
}

func (s *DefaultsTestSuite) inject(t domain.Template, cfg *domain.Config) map[string]bool {
	return NewInjector(t).Inject(cfg, s.m, s.rep)
}

func (s *DefaultsTestSuite) TestScalarEq() {
	injected := s.inject(domain.Template{"x": {Default: "abc"}, "y": {}}, nil)
	s.Equal(map[string]bool{"x": true}, injected)
	s.Equal([]any{"abc"}, s.m["x"].Eq)
	s.NotContains(s.m, "y")
}

func (s *DefaultsTestSuite) TestLiveValueWins() {
	s.m.Get("x").Append(domain.OpEq, "live")
	injected := s.inject(domain.Template{"x": {Default: "abc"}}, nil)
	s.Empty(injected)
	s.Equal([]any{"live"}, s.m["x"].Eq)
}

func (s *DefaultsTestSuite) TestScalarOperator() {
	s.inject(domain.Template{
		"a": {Default: 100, DefaultOp: ">"},
		"b": {Default: []int{5, 6}, DefaultOp: "lte"},
	}, nil)
	s.Equal(domain.Bound{Value: 100, Valid: true}, s.m["a"].Gt)
	s.Equal(domain.Bound{Value: 5, Valid: true}, s.m["b"].Lte)
	s.Equal([]string{"use default[0] only for b"}, s.rep.Messages())
}

func (s *DefaultsTestSuite) TestListOperator() {
	s.inject(domain.Template{
		"a": {Default: []any{"x", "y"}, DefaultOp: "eq"},
		"b": {Default: []int{1, 100}, DefaultOp: "bt"},
		"c": {Default: "^a", DefaultOp: "regex"},
	}, nil)
	s.Equal([]any{"x", "y"}, s.m["a"].Eq)
	s.Equal([]any{1, 100}, s.m["b"].Bt)
	s.Equal([]any{"^a"}, s.m["c"].Regex)
	s.Empty(s.rep.Messages())
}

func (s *DefaultsTestSuite) TestUnsupportedOperator() {
	s.inject(domain.Template{"a": {Default: 1, DefaultOp: "like"}}, nil)
	s.NotContains(s.m, "a")
	s.Equal([]string{"not supported op: like"}, s.rep.Messages())
}

func (s *DefaultsTestSuite) TestPaginationOperator() {
	s.inject(domain.Template{
		"page_size": {Default: 10, DefaultOp: "gt"},
		"page_no":   {Default: 1, DefaultOp: "="},
	}, nil)
	s.NotContains(s.m, "page_size")
	s.Equal([]any{1}, s.m["page_no"].Eq)
	s.Equal([]string{"wrong default in variable(1), pagination key takes eq operator only"}, s.rep.Messages())
}

func (s *DefaultsTestSuite) TestObjectElements() {
	s.inject(domain.Template{"a": {Default: []any{"x", map[string]any{"y": 1}}}}, nil)
	s.NotContains(s.m, "a")
	s.Equal([]string{"wrong default in variable(2), object type not allowed"}, s.rep.Messages())
}

func (s *DefaultsTestSuite) TestObjectDefault() {
	s.inject(domain.Template{
		"a":    {Default: map[string]any{"y": 1}},
		"sort": {Default: map[string]any{"y": 1}, DefaultOp: "ne"},
	}, nil)
	s.NotContains(s.m, "a")
	s.NotContains(s.m, "sort")
	s.Equal([]string{
		"wrong default in variable(3), object type not allowed",
		"wrong default in variable(1), pagination key takes eq operator only",
	}, s.rep.Messages())
}

func (s *DefaultsTestSuite) TestSortObject() {
	doc := data.O{{Key: "price", Value: int64(-1)}, {Key: "name", Value: int64(1)}}
	injected := s.inject(domain.Template{"sort": {Default: doc}}, nil)
	s.True(injected["sort"])
	s.Equal([]any{"price", int64(-1), "name", int64(1)}, s.m["sort"].Eq)
}

func (s *DefaultsTestSuite) TestSortList() {
	s.inject(domain.Template{"sort": {Default: []any{"s", 1}}}, nil)
	s.Equal([]any{"s", 1}, s.m["sort"].Eq)
}

func (s *DefaultsTestSuite) TestConfigScalarOverride() {
	cfg := &domain.Config{Defaults: map[string]any{"x": "from-config"}}
	s.inject(domain.Template{"x": {Default: "abc"}}, cfg)
	s.Equal([]any{"from-config"}, s.m["x"].Eq)
}

func (s *DefaultsTestSuite) TestConfigVariableOverride() {
	cfg := &domain.Config{Defaults: map[string]any{
		"x": domain.Variable{Default: 5, DefaultOp: "gte"},
		"y": &domain.Variable{Default: "b"},
		"z": &domain.Variable{},
	}}
	s.inject(domain.Template{
		"x": {Default: "abc"},
		"y": {Default: "a"},
		"z": {Default: "a"},
	}, cfg)
	s.Equal(domain.Bound{Value: 5, Valid: true}, s.m["x"].Gte)
	s.Empty(s.m["x"].Eq)
	s.Equal([]any{"b"}, s.m["y"].Eq)
	s.NotContains(s.m, "z")
}

func (s *DefaultsTestSuite) TestConfigOnlyFieldsAreIgnored() {
	cfg := &domain.Config{Defaults: map[string]any{"w": 1}}
	s.inject(domain.Template{}, cfg)
	s.Empty(s.m)
}

func (s *DefaultsTestSuite) TestPaginationInConfig() {
	size := 2
	cfg := &domain.Config{
		Pagination: &domain.PaginationConfig{PageSize: &size, Sort: domain.Sort{{Key: "s", Order: 1}}},
		Defaults:   map[string]any{"page_no": 3},
	}
	injected := s.inject(domain.Template{
		"page_no":   {Default: 1},
		"page_size": {Default: 10},
		"sort":      {Default: []any{"t", -1}},
	}, cfg)
	s.Empty(injected)
	s.Empty(s.m)
}

func TestDefaultsTestSuite(t *testing.T) {
	suite.Run(t, new(DefaultsTestSuite))
}
