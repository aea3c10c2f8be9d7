package output_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/rpg-compendium/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-compendium/internal/errors"
	"github.com/KirkDiggler/rpg-compendium/internal/output"
)

type OutputTestSuite struct {
	suite.Suite
	dir string
}

func TestOutputSuite(t *testing.T) {
	suite.Run(t, new(OutputTestSuite))
}

func (s *OutputTestSuite) SetupTest() {
	s.dir = s.T().TempDir()
}

func (s *OutputTestSuite) TestEncodeJSONFormatting() {
	spell := dnd5e.NewSpell("Sleet <Storm> & Co")

	data, err := output.EncodeJSON([]*dnd5e.Spell{spell})
	s.Require().NoError(err)

	text := string(data)
	s.Assert().Contains(text, "[\n  {\n    \"name\": \"Sleet <Storm> & Co\",")
	s.Assert().Contains(text, "\"level\": null,")
	s.Assert().Contains(text, "\"tags\": []")
	s.Assert().NotContains(text, `\u003c`)
	s.Assert().Equal(byte('\n'), data[len(data)-1])
}

func (s *OutputTestSuite) TestWriteJSONCreatesParentsAndIsDeterministic() {
	path := filepath.Join(s.dir, "nested", "deeper", "monsters.json")
	records := []*dnd5e.Monster{dnd5e.NewMonster()}

	s.Require().NoError(output.WriteJSON(path, records))
	first, err := os.ReadFile(path)
	s.Require().NoError(err)

	s.Require().NoError(output.WriteJSON(path, records))
	second, err := os.ReadFile(path)
	s.Require().NoError(err)

	s.Assert().Equal(first, second)
}

func (s *OutputTestSuite) TestWriteJSONRequiresPath() {
	err := output.WriteJSON("", []string{})
	s.Assert().True(errors.IsInvalidArgument(err))
}

func (s *OutputTestSuite) TestWriteJSONUnwritable() {
	blocker := filepath.Join(s.dir, "file")
	s.Require().NoError(os.WriteFile(blocker, []byte("x"), 0o644))

	err := output.WriteJSON(filepath.Join(blocker, "out.json"), []string{})
	s.Require().Error(err)
	s.Assert().Equal(errors.CodeDataLoss, errors.GetCode(err))
}

func (s *OutputTestSuite) TestWriteReport() {
	started := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	path := filepath.Join(s.dir, "reports", "monsters.yaml")

	s.Require().NoError(output.WriteReport(path, &output.Report{
		RunID:      "run-1",
		Kind:       "monsters",
		Input:      "monsters.txt",
		Output:     "monsters.json",
		StartedAt:  started,
		FinishedAt: started.Add(time.Second),
		Found:      3,
		Parsed:     2,
		Failures: []output.Failure{
			{Index: 1, Code: errors.CodeUnrecognizedHeader, Message: "no header", Snippet: "Str 18 +4 +4"},
		},
	}))

	data, err := os.ReadFile(path)
	s.Require().NoError(err)

	var got output.Report
	s.Require().NoError(yaml.Unmarshal(data, &got))
	s.Assert().Equal("run-1", got.RunID)
	s.Assert().Equal(2, got.Parsed)
	s.Assert().True(started.Equal(got.StartedAt))
	s.Require().Len(got.Failures, 1)
	s.Assert().Equal(errors.CodeUnrecognizedHeader, got.Failures[0].Code)
	s.Assert().Contains(string(data), "code: UNRECOGNIZED_HEADER")
}

func (s *OutputTestSuite) TestWriteReportRequiresReport() {
	err := output.WriteReport(filepath.Join(s.dir, "r.yaml"), nil)
	s.Assert().True(errors.IsInvalidArgument(err))
}
