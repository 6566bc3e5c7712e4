package matrix

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/vinicius-lino-figueiredo/qsfilter/domain"
	"github.com/vinicius-lino-figueiredo/qsfilter/internal/adapter/comparer"
	"github.com/vinicius-lino-figueiredo/qsfilter/internal/adapter/hasher"
	"github.com/vinicius-lino-figueiredo/qsfilter/internal/adapter/reporter"
	"github.com/vinicius-lino-figueiredo/qsfilter/internal/adapter/sorter"
)

type hasherMock struct{ mock.Mock }

// Hash implements domain.Hasher.
func (h *hasherMock) Hash(v any) (uint64, error) {
	call := h.Called(v)
	return uint64(call.Int(0)), call.Error(1)
}

type MatrixTestSuite struct {
	suite.Suite
	rep *reporter.Reporter
	b   *Builder
}

func (s *MatrixTestSuite) SetupTest() {
	s.rep = reporter.New(nil)
	s.b = NewBuilder(hasher.NewHasher(), comparer.NewComparer(), sorter.NewSorter(nil, nil))
}

func (s *MatrixTestSuite) build(m domain.Matrix) domain.Sort {
	sort, err := s.b.Build(m, nil, s.rep)
	s.Require().NoError(err)
	return sort
}

func (s *MatrixTestSuite) TestDedup() {
	m := domain.Matrix{
		"x": {Eq: []any{int64(1), "a", 1.0, "a"}, Ne: []any{"b", "b"}},
		"y": {Eq: []any{int64(1), int64(2)}},
	}
	s.build(m)
	s.Equal([]any{int64(1), "a"}, m["x"].Eq)
	s.Equal([]any{"b"}, m["x"].Ne)
	s.Equal([]any{int64(1), int64(2)}, m["y"].Eq)
	s.Equal([]string{
		"one or more value item removed due to duplicated for x",
		"one or more value item removed due to duplicated for x",
	}, s.rep.Messages())
}

func (s *MatrixTestSuite) TestBetweenIsNotDeduplicated() {
	m := domain.Matrix{"x": {Bt: []any{int64(1), int64(1)}}}
	s.build(m)
	s.Equal([]any{int64(1), int64(1)}, m["x"].Bt)
	s.Empty(s.rep.Messages())
}

func (s *MatrixTestSuite) TestLowerBounds() {
	m := domain.Matrix{
		"a": {Gt: bound(int64(5)), Gte: bound(int64(5))},
		"b": {Gt: bound(int64(6)), Gte: bound(int64(5))},
		"c": {Gt: bound(int64(0)), Gte: bound(int64(3))},
	}
	s.build(m)
	s.False(m["a"].Gt.Valid)
	s.True(m["a"].Gte.Valid)
	s.True(m["b"].Gt.Valid)
	s.True(m["b"].Gte.Valid)
	s.False(m["c"].Gt.Valid)
	s.Equal([]string{
		"both > and >= exist, keep the max one for a",
		"both > and >= exist, keep the max one for c",
	}, s.rep.Messages())
}

// lte <= lt drops lt, so the wider lte bound is the one kept.
func (s *MatrixTestSuite) TestUpperBoundsKeepLiteralComparison() {
	m := domain.Matrix{
		"a": {Lte: bound(int64(3)), Lt: bound(int64(5))},
		"b": {Lte: bound(int64(5)), Lt: bound(int64(3))},
	}
	s.build(m)
	s.False(m["a"].Lt.Valid)
	s.Equal(int64(3), m["a"].Lte.Value)
	s.True(m["b"].Lt.Valid)
	s.True(m["b"].Lte.Valid)
	s.Equal([]string{"both < and <= exist, keep the min one for a"}, s.rep.Messages())
}

func (s *MatrixTestSuite) TestIncomparableBounds() {
	m := domain.Matrix{"a": {Gt: bound(struct{}{}), Gte: bound(struct{}{})}}
	_, err := s.b.Build(m, nil, s.rep)
	s.ErrorAs(err, &domain.ErrCannotCompare{})
}

func (s *MatrixTestSuite) TestEmptyFieldIsDropped() {
	m := domain.Matrix{"a": {}, "b": {Eq: []any{"x"}}}
	s.build(m)
	s.NotContains(m, "a")
	s.Contains(m, "b")
	s.Equal([]string{"skipped, due no value for a"}, s.rep.Messages())
}

func (s *MatrixTestSuite) TestSort() {
	m := domain.Matrix{
		"sort": {Eq: []any{"price", int64(-1)}},
		"x":    {Eq: []any{"a"}},
	}
	sort := s.build(m)
	s.Equal(domain.Sort{{Key: "price", Order: -1}}, sort)
	s.NotContains(m, "sort")
}

func (s *MatrixTestSuite) TestSortWithoutValue() {
	m := domain.Matrix{"sort": {Eq: []any{int64(-1)}}}
	sort := s.build(m)
	s.Nil(sort)
	s.NotContains(m, "sort")
	s.Equal([]string{"skipped, unexpected -1", "skipped, due no value for sort"}, s.rep.Messages())
}

func (s *MatrixTestSuite) TestHashError() {
	errHash := errors.New("hash error")
	h := new(hasherMock)
	h.On("Hash", mock.Anything).Return(0, errHash)
	b := NewBuilder(h, comparer.NewComparer(), sorter.NewSorter(nil, nil))
	_, err := b.Build(domain.Matrix{"x": {Eq: []any{1}}}, nil, s.rep)
	s.ErrorIs(err, errHash)
}

func bound(v any) domain.Bound {
	return domain.Bound{Value: v, Valid: true}
}

func TestMatrixTestSuite(t *testing.T) {
	suite.Run(t, new(MatrixTestSuite))
}
