package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/suite"
)

type CLITestSuite struct {
	suite.Suite
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

func (s *CLITestSuite) SetupTest() {
	s.stdout = new(bytes.Buffer)
	s.stderr = new(bytes.Buffer)
}

func (s *CLITestSuite) execute(args ...string) error {
	cmd := NewRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(s.stdout)
	cmd.SetErr(s.stderr)
	return cmd.Execute()
}

func (s *CLITestSuite) TestCompact() {
	s.Require().NoError(s.execute("--compact", "price>100&sort=price|-1"))
	s.Equal(`{"query":{"price":{"gt":100}},"pagination":{"sort":[{"key":"price","order":-1}]}}`+"\n", s.stdout.String())
	s.Empty(s.stderr.String())
}

func (s *CLITestSuite) TestIndented() {
	s.Require().NoError(s.execute("tag!=a|b"))
	var out Output
	s.Require().NoError(json.Unmarshal(s.stdout.Bytes(), &out))
	s.Equal(map[string]map[string]any{"tag": {"ne": []any{"a", "b"}}}, out.Query)
	s.Contains(s.stdout.String(), "\n  ")
}

func (s *CLITestSuite) TestPageFlags() {
	s.Require().NoError(s.execute("--compact", "--page-size", "25", "--page-fallback", "1", "page_no=3"))
	s.Equal(`{"query":{},"pagination":{"page_no":3,"page_size":25}}`+"\n", s.stdout.String())
}

func (s *CLITestSuite) TestTemplate() {
	path := filepath.Join(s.T().TempDir(), "vars.json")
	doc := `{"name": {"transform": "upper"}, "status": {"default": "active"}}`
	s.Require().NoError(os.WriteFile(path, []byte(doc), 0o644))

	s.Require().NoError(s.execute("--compact", "-v", "-t", path, "name=bob&other=1"))
	s.Equal(
		`{"query":{"name":{"eq":["BOB"]},"status":{"eq":["active"]}},"messages":["skipped, variable not found other"]}`+"\n",
		s.stdout.String(),
	)
	s.Contains(s.stderr.String(), "skipped, variable not found other")
	s.Contains(s.stderr.String(), "template loaded")
}

func (s *CLITestSuite) TestErrors() {
	s.Error(s.execute())
	s.Error(s.execute("a=%zz"))
	s.Error(s.execute("-t", filepath.Join(s.T().TempDir(), "missing.yaml"), "a=1"))
	s.Error(s.execute("--page-fallback", "-1", "a=1"))
	s.Empty(s.stdout.String())
}

func TestCLITestSuite(t *testing.T) {
	suite.Run(t, new(CLITestSuite))
}
