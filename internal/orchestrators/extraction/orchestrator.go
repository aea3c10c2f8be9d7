// Package extraction drives a compendium run: read the corpus, parse every
// entity in isolation, write the JSON artifact and report what happened.
package extraction

//go:generate mockgen -destination=mock/mock_service.go -package=extractionmock github.com/KirkDiggler/rpg-compendium/internal/orchestrators/extraction Service

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/samber/lo"

	"github.com/KirkDiggler/rpg-compendium/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-compendium/internal/errors"
	"github.com/KirkDiggler/rpg-compendium/internal/output"
	"github.com/KirkDiggler/rpg-compendium/internal/parsers/monster"
	"github.com/KirkDiggler/rpg-compendium/internal/parsers/spell"
	"github.com/KirkDiggler/rpg-compendium/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-compendium/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-compendium/internal/repositories/catalog"
	"github.com/KirkDiggler/rpg-compendium/internal/textscan"
)

const (
	// SnippetLength bounds the first-line excerpt kept for a failure
	SnippetLength = 100

	kindMonsters = "monsters"
	kindSpells   = "spells"
)

// Service defines the extraction operations
type Service interface {
	ExtractMonsters(ctx context.Context, input *ExtractInput) (*ExtractMonstersOutput, error)
	ExtractSpells(ctx context.Context, input *ExtractInput) (*ExtractSpellsOutput, error)
}

// Config holds the dependencies for the extraction orchestrator
type Config struct {
	Clock       clock.Clock
	IDGenerator idgen.Generator
	// Catalog receives every parsed record after the JSON file is written.
	// Nil disables publishing.
	Catalog catalog.Repository
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}

	vb := errors.NewValidationBuilder()
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	return vb.Build()
}

type orchestrator struct {
	clock   clock.Clock
	idGen   idgen.Generator
	catalog catalog.Repository
}

// NewOrchestrator creates a new extraction orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		clock:   cfg.Clock,
		idGen:   cfg.IDGenerator,
		catalog: cfg.Catalog,
	}, nil
}

// run is the state shared by both record kinds
type run struct {
	id       string
	kind     string
	input    *ExtractInput
	started  time.Time
	failures []Failure
}

func (o *orchestrator) begin(ctx context.Context, kind string, input *ExtractInput) (*run, string, error) {
	if input == nil {
		return nil, "", errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("InputPath", input.InputPath, vb)
	errors.ValidateRequired("OutputPath", input.OutputPath, vb)
	if err := vb.Build(); err != nil {
		return nil, "", err
	}

	r := &run{
		id:      o.idGen.Generate(),
		kind:    kind,
		input:   input,
		started: o.clock.Now(),
	}

	text, err := readCorpus(input.InputPath)
	if err != nil {
		return nil, "", err
	}

	slog.DebugContext(ctx, "Corpus loaded",
		"run_id", r.id,
		"kind", kind,
		"path", input.InputPath,
		"bytes", len(text))

	return r, text, nil
}

func readCorpus(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", errors.NotFoundf("input file %s not found", path)
		}
		return "", errors.WrapWithCodef(err, errors.CodeDataLoss, "failed to read %s", path)
	}
	return textscan.Normalize(string(data)), nil
}

// record notes a dropped entity and logs it
func (r *run) record(index int, firstLine string, err error) {
	f := Failure{
		Index:   index,
		Code:    errors.GetCode(err),
		Message: errors.GetMessage(err),
		Snippet: textscan.Truncate(firstLine, SnippetLength),
	}
	r.failures = append(r.failures, f)

	slog.Warn("Entity skipped",
		"run_id", r.id,
		"kind", r.kind,
		"index", f.Index,
		"code", f.Code,
		"first_line", f.Snippet,
		"error", err)
}

// finish writes the optional failure report
func (o *orchestrator) finish(r *run, found, parsed int) error {
	if r.input.ReportPath == "" {
		return nil
	}

	report := &output.Report{
		RunID:      r.id,
		Kind:       r.kind,
		Input:      r.input.InputPath,
		Output:     r.input.OutputPath,
		StartedAt:  r.started.UTC(),
		FinishedAt: o.clock.Now().UTC(),
		Found:      found,
		Parsed:     parsed,
		Failures: lo.Map(r.failures, func(f Failure, _ int) output.Failure {
			return output.Failure{Index: f.Index, Code: f.Code, Message: f.Message, Snippet: f.Snippet}
		}),
	}

	return output.WriteReport(r.input.ReportPath, report)
}

// guard runs fn and converts a panic into a PANIC error so one malformed
// entity cannot abort the run.
func guard[T any](index int, fn func() (T, error)) (result T, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = errors.Panicf("recovered while parsing entity %d: %v", index, p)
		}
	}()
	return fn()
}

// ExtractMonsters parses every stat block in the corpus
func (o *orchestrator) ExtractMonsters(ctx context.Context, input *ExtractInput) (*ExtractMonstersOutput, error) {
	r, text, err := o.begin(ctx, kindMonsters, input)
	if err != nil {
		return nil, err
	}

	blocks := textscan.Segment(text, nil)
	monsters := make([]*dnd5e.Monster, 0, len(blocks))

	for i, block := range blocks {
		m, err := guard(i, func() (*dnd5e.Monster, error) {
			return monster.Parse(block)
		})
		if err != nil {
			if errors.GetCode(err).Fatal() {
				return nil, errors.Wrapf(err, "failed to parse entity %d", i)
			}
			r.record(i, block.FirstLine(), err)
			continue
		}
		monsters = append(monsters, m)
	}

	if err := output.WriteJSON(input.OutputPath, monsters); err != nil {
		return nil, err
	}

	summary := MonsterSummary{
		Found:      len(blocks),
		Parsed:     len(monsters),
		Categories: lo.CountValuesBy(monsters, func(m *dnd5e.Monster) string { return m.Category }),
		Legendary:  lo.CountBy(monsters, func(m *dnd5e.Monster) bool { return m.LegendaryActions != nil }),
	}

	slog.Info("Monsters extracted",
		"run_id", r.id,
		"found", summary.Found,
		"parsed", summary.Parsed,
		"failures", len(r.failures),
		"categories", summary.Categories,
		"legendary", summary.Legendary,
		"output", input.OutputPath)

	published, err := o.publish(ctx, func() (*catalog.PutOutput, error) {
		return o.catalog.PutMonsters(ctx, &catalog.PutMonstersInput{Monsters: monsters})
	})
	if err != nil {
		return nil, err
	}

	if err := o.finish(r, summary.Found, summary.Parsed); err != nil {
		return nil, err
	}

	return &ExtractMonstersOutput{
		RunID:     r.id,
		Monsters:  monsters,
		Failures:  r.failures,
		Summary:   summary,
		Published: published,
	}, nil
}

// ExtractSpells scans the corpus and finalizes every spell entry
func (o *orchestrator) ExtractSpells(ctx context.Context, input *ExtractInput) (*ExtractSpellsOutput, error) {
	r, text, err := o.begin(ctx, kindSpells, input)
	if err != nil {
		return nil, err
	}

	entries := spell.Scan(text)
	spells := make([]*dnd5e.Spell, 0, len(entries))
	incomplete := 0

	for _, entry := range entries {
		s, err := guard(entry.Index, func() (*dnd5e.Spell, error) {
			return spell.Finalize(entry)
		})
		if err != nil {
			if errors.GetCode(err).Fatal() {
				return nil, errors.Wrapf(err, "failed to finalize entry %d", entry.Index)
			}
			r.record(entry.Index, entry.Header, err)
			continue
		}
		if s == nil {
			incomplete++
			slog.Debug("Spell without description dropped",
				"run_id", r.id,
				"index", entry.Index,
				"header", textscan.Truncate(entry.Header, SnippetLength))
			continue
		}
		spells = append(spells, s)
	}

	if err := output.WriteJSON(input.OutputPath, spells); err != nil {
		return nil, err
	}

	summary := SpellSummary{
		Found:      len(entries),
		Parsed:     len(spells),
		Schools:    spellSchools(spells),
		Cantrips:   lo.CountBy(spells, func(s *dnd5e.Spell) bool { return s.IsCantrip }),
		Leveled:    lo.CountBy(spells, func(s *dnd5e.Spell) bool { return s.Level != nil && *s.Level > 0 }),
		Summons:    lo.CountBy(spells, func(s *dnd5e.Spell) bool { return s.SummonedCreature != nil }),
		Incomplete: incomplete,
	}

	slog.Info("Spells extracted",
		"run_id", r.id,
		"found", summary.Found,
		"parsed", summary.Parsed,
		"failures", len(r.failures),
		"incomplete", summary.Incomplete,
		"schools", summary.Schools,
		"cantrips", summary.Cantrips,
		"leveled", summary.Leveled,
		"summons", summary.Summons,
		"output", input.OutputPath)

	published, err := o.publish(ctx, func() (*catalog.PutOutput, error) {
		return o.catalog.PutSpells(ctx, &catalog.PutSpellsInput{Spells: spells})
	})
	if err != nil {
		return nil, err
	}

	if err := o.finish(r, summary.Found, summary.Parsed); err != nil {
		return nil, err
	}

	return &ExtractSpellsOutput{
		RunID:     r.id,
		Spells:    spells,
		Failures:  r.failures,
		Summary:   summary,
		Published: published,
	}, nil
}

func (o *orchestrator) publish(ctx context.Context, put func() (*catalog.PutOutput, error)) (int, error) {
	if o.catalog == nil {
		return 0, nil
	}

	out, err := put()
	if err != nil {
		return 0, errors.Wrap(err, "failed to publish to catalog")
	}

	slog.InfoContext(ctx, "Catalog updated", "stored", out.Stored)
	return out.Stored, nil
}

// spellSchools counts spells per school. Spells whose header carried no
// school are counted under "unknown".
func spellSchools(spells []*dnd5e.Spell) map[string]int {
	return lo.CountValuesBy(spells, func(s *dnd5e.Spell) string {
		if s.School == nil {
			return "unknown"
		}
		return *s.School
	})
}
