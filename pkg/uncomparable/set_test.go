package uncomparable

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/vinicius-lino-figueiredo/qsfilter/internal/adapter/comparer"
	"github.com/vinicius-lino-figueiredo/qsfilter/internal/adapter/hasher"
)

type hasherMock struct{ mock.Mock }

// Hash implements domain.Hasher.
func (h *hasherMock) Hash(v any) (uint64, error) {
	call := h.Called(v)
	return call.Get(0).(uint64), call.Error(1)
}

type SetTestSuite struct {
	suite.Suite
	s *Set
}

func (s *SetTestSuite) SetupTest() {
	s.s = New(hasher.NewHasher(), comparer.NewComparer())
}

func (s *SetTestSuite) TestAdd() {
	added, err := s.s.Add("a")
	s.NoError(err)
	s.True(added)

	added, err = s.s.Add(int64(1))
	s.NoError(err)
	s.True(added)

	added, err = s.s.Add(1.0)
	s.NoError(err)
	s.False(added)

	added, err = s.s.Add("a")
	s.NoError(err)
	s.False(added)

	s.Equal(2, s.s.Len())
	s.Equal([]any{"a", int64(1)}, s.s.Members())
}

func (s *SetTestSuite) TestIncomparableMembersAreKept() {
	type opaque struct{}
	_, err := s.s.Add(opaque{})
	s.NoError(err)
	_, err = s.s.Add(opaque{})
	s.NoError(err)
	s.Equal(2, s.s.Len())
}

// colliding hashes must still be told apart by the comparer
func (s *SetTestSuite) TestCollision() {
	h := new(hasherMock)
	h.On("Hash", mock.Anything).Return(uint64(7), nil)
	set := New(h, comparer.NewComparer())
	for _, v := range []any{"x", "y", "x"} {
		_, err := set.Add(v)
		s.NoError(err)
	}
	s.Equal([]any{"x", "y"}, set.Members())
}

func (s *SetTestSuite) TestHashError() {
	errHash := errors.New("hash error")
	h := new(hasherMock)
	h.On("Hash", mock.Anything).Return(uint64(0), errHash)
	_, _, err := Dedup(h, comparer.NewComparer(), []any{1})
	s.ErrorIs(err, errHash)
}

func (s *SetTestSuite) TestDedup() {
	h, c := hasher.NewHasher(), comparer.NewComparer()

	res, removed, err := Dedup(h, c, []any{"b", "a", "b", 3, int64(3), nil, nil})
	s.NoError(err)
	s.True(removed)
	s.Equal([]any{"b", "a", 3, nil}, res)

	res, removed, err = Dedup(h, c, []any{"a", "b"})
	s.NoError(err)
	s.False(removed)
	s.Equal([]any{"a", "b"}, res)
}

func TestSetTestSuite(t *testing.T) {
	suite.Run(t, new(SetTestSuite))
}
