package extraction

import (
	"github.com/KirkDiggler/rpg-compendium/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-compendium/internal/errors"
)

// ExtractInput names the files for one run
type ExtractInput struct {
	// InputPath is the plain-text corpus
	InputPath string
	// OutputPath receives the JSON array of records
	OutputPath string
	// ReportPath receives a YAML failure report. Empty skips the report.
	ReportPath string
}

// Failure is an entity that was dropped from the output
type Failure struct {
	Index   int
	Code    errors.Code
	Message string
	// Snippet is the start of the entity's first line
	Snippet string
}

// ExtractMonstersOutput contains the result of a monster run
type ExtractMonstersOutput struct {
	RunID    string
	Monsters []*dnd5e.Monster
	Failures []Failure
	Summary  MonsterSummary
	// Published is the number of records sent to the catalog
	Published int
}

// MonsterSummary is logged at the end of a monster run
type MonsterSummary struct {
	Found      int
	Parsed     int
	Categories map[string]int
	Legendary  int
}

// ExtractSpellsOutput contains the result of a spell run
type ExtractSpellsOutput struct {
	RunID     string
	Spells    []*dnd5e.Spell
	Failures  []Failure
	Summary   SpellSummary
	Published int
}

// SpellSummary is logged at the end of a spell run
type SpellSummary struct {
	Found    int
	Parsed   int
	Schools  map[string]int
	Cantrips int
	Leveled  int
	Summons  int
	// Incomplete counts entries dropped for having no description
	Incomplete int
}
