package tokenizer

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/vinicius-lino-figueiredo/qsfilter/domain"
)

type TokenizerTestSuite struct {
	suite.Suite
	t *Tokenizer
}

func (s *TokenizerTestSuite) SetupTest() {
	s.t = NewTokenizer().(*Tokenizer)
}

func (s *TokenizerTestSuite) TestOperatorInKey() {
	testCases := []struct {
		key string
		tok domain.Token
	}{
		{key: "x<>100|200", tok: domain.Token{Name: "x", Op: domain.OpBt, Value: "100|200"}},
		{key: "x>100", tok: domain.Token{Name: "x", Op: domain.OpGt, Value: "100"}},
		{key: "x<100", tok: domain.Token{Name: "x", Op: domain.OpLt, Value: "100"}},
		{key: "x> 5 ", tok: domain.Token{Name: "x", Op: domain.OpGt, Value: "5"}},
		{key: "x>null", tok: domain.Token{Name: "x", Op: domain.OpGt, Value: nil}},
		{key: "x", tok: domain.Token{Name: "x", Op: domain.OpEq, Value: ""}},
		// more than one marker is not an operator
		{key: "a>b>c", tok: domain.Token{Name: "a>b>c", Op: domain.OpEq, Value: ""}},
		{key: "a<>b<>c", tok: domain.Token{Name: "a<>b<>c", Op: domain.OpEq, Value: ""}},
	}
	for _, tc := range testCases {
		s.Equal(tc.tok, s.t.Tokenize(tc.key, ""), tc.key)
	}
}

func (s *TokenizerTestSuite) TestEmptyValues() {
	s.Equal(domain.Token{Name: "x", Op: domain.OpGt, Value: "1"}, s.t.Tokenize("x>1", nil))
	s.Equal(domain.Token{Name: "x", Op: domain.OpGt, Value: "1"}, s.t.Tokenize("x>1", []string{}))
}

func (s *TokenizerTestSuite) TestOperatorSuffix() {
	testCases := []struct {
		key string
		tok domain.Token
	}{
		{key: "x!", tok: domain.Token{Name: "x", Op: domain.OpNe, Value: "100"}},
		{key: "x<", tok: domain.Token{Name: "x", Op: domain.OpLte, Value: "100"}},
		{key: "x>", tok: domain.Token{Name: "x", Op: domain.OpGte, Value: "100"}},
		{key: "x$", tok: domain.Token{Name: "x", Op: domain.OpRegex, Value: "100"}},
		{key: "x", tok: domain.Token{Name: "x", Op: domain.OpEq, Value: "100"}},
		{key: "!", tok: domain.Token{Name: "", Op: domain.OpNe, Value: "100"}},
	}
	for _, tc := range testCases {
		s.Equal(tc.tok, s.t.Tokenize(tc.key, "100"), tc.key)
	}
}

func (s *TokenizerTestSuite) TestListValue() {
	tok := s.t.Tokenize("x>", []string{"1", "2"})
	s.Equal(domain.Token{Name: "x", Op: domain.OpGte, Value: []string{"1", "2"}}, tok)

	// lists are never null
	tok = s.t.Tokenize("x", []string{"null"})
	s.Equal([]string{"null"}, tok.Value)
}

func (s *TokenizerTestSuite) TestNull() {
	s.Nil(s.t.Tokenize("x", "null").Value)
	s.Nil(s.t.Tokenize("x!", "NULL").Value)
	s.Equal("Null", s.t.Tokenize("x", "Null").Value)
}

func (s *TokenizerTestSuite) TestEmptyKey() {
	s.Equal(domain.Token{Name: "", Op: domain.OpEq, Value: "1"}, s.t.Tokenize("", "1"))
}

func TestTokenizerTestSuite(t *testing.T) {
	suite.Run(t, new(TokenizerTestSuite))
}
