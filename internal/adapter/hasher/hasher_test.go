package hasher

import (
	"math"
	"testing"

	"github.com/stretchr/testify/suite"
)

type HasherTestSuite struct {
	suite.Suite
	h *Hasher
}

func (s *HasherTestSuite) SetupTest() {
	s.h = NewHasher().(*Hasher)
}

func (s *HasherTestSuite) hash(v any) uint64 {
	h, err := s.h.Hash(v)
	s.NoError(err)
	return h
}

func (s *HasherTestSuite) TestEqualNumbersShareHash() {
	s.Equal(s.hash(int64(12)), s.hash(12.0))
	s.Equal(s.hash(uint8(3)), s.hash(int32(3)))
	s.NotEqual(s.hash(12), s.hash("12"))
}

func (s *HasherTestSuite) TestStrings() {
	s.Equal(s.hash("abc"), s.hash("abc"))
	s.NotEqual(s.hash("abc"), s.hash("abd"))
}

func (s *HasherTestSuite) TestNil() {
	s.Equal(s.hash(nil), s.hash(nil))
	s.NotEqual(s.hash(nil), s.hash(0))
}

func (s *HasherTestSuite) TestUnmarshalableValues() {
	s.Equal(s.hash(math.NaN()), s.hash(math.NaN()))
	s.NotEqual(s.hash(math.Inf(1)), s.hash(math.Inf(-1)))
}

func TestHasherTestSuite(t *testing.T) {
	suite.Run(t, new(HasherTestSuite))
}
