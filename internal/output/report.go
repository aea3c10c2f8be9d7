package output

import (
	"bytes"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/rpg-compendium/internal/errors"
)

// Report summarizes one extraction run for manual review of the entities
// that could not be parsed.
type Report struct {
	RunID      string    `yaml:"run_id"`
	Kind       string    `yaml:"kind"`
	Input      string    `yaml:"input"`
	Output     string    `yaml:"output"`
	StartedAt  time.Time `yaml:"started_at"`
	FinishedAt time.Time `yaml:"finished_at"`
	Found      int       `yaml:"found"`
	Parsed     int       `yaml:"parsed"`
	Failures   []Failure `yaml:"failures"`
}

// Failure is one entity that was dropped
type Failure struct {
	Index   int         `yaml:"index"`
	Code    errors.Code `yaml:"code"`
	Message string      `yaml:"message"`
	Snippet string      `yaml:"snippet"`
}

// WriteReport writes r as YAML to path, creating parent directories.
func WriteReport(path string, r *Report) error {
	if r == nil {
		return errors.InvalidArgument("report is required")
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return errors.Wrap(err, "failed to encode report")
	}
	if err := enc.Close(); err != nil {
		return errors.Wrap(err, "failed to flush report")
	}

	return writeFile(path, buf.Bytes())
}
