package spell

import (
	"regexp"
	"strings"

	"github.com/samber/lo"

	"github.com/KirkDiggler/rpg-compendium/internal/entities/dnd5e"
)

const (
	castingTimeMarker = "Casting Time:"
	rangeMarker       = "Range:"
	componentsMarker  = "Components:"
	durationMarker    = "Duration:"
	ritualMarker      = "or Ritual"
)

var (
	castingTimePattern = regexp.MustCompile(`Casting Time:\s*(.+?)(?:\s+or\s+Ritual)?\s+Range:`)
	rangePattern       = regexp.MustCompile(`Range:\s*(.+?)\s+Components:`)
	componentsPattern  = regexp.MustCompile(`Components:\s*(.+?)\s+Duration:`)
	durationPattern    = regexp.MustCompile(`Duration:\s*(.+)$`)

	materialPattern = regexp.MustCompile(`M\s*\(([^)]+)\)`)
	parenthetical   = regexp.MustCompile(`\([^)]*\)`)
	verbalPattern   = regexp.MustCompile(`\bV\b`)
	somaticPattern  = regexp.MustCompile(`\bS\b`)
	materialFlag    = regexp.MustCompile(`\bM\b`)
)

// hasAllDetails reports whether a line carries the whole details clause
func hasAllDetails(line string) bool {
	return strings.Contains(line, castingTimeMarker) &&
		strings.Contains(line, rangeMarker) &&
		strings.Contains(line, componentsMarker) &&
		strings.Contains(line, durationMarker)
}

// applyDetails reads the four delimited fields of the details clause. Each
// field is extracted independently and left null when its delimiters are
// missing.
func applyDetails(s *dnd5e.Spell, details string) {
	if m := castingTimePattern.FindStringSubmatch(details); m != nil {
		s.CastingTime.Time = lo.ToPtr(strings.TrimSpace(m[1]))
		s.CastingTime.IsRitual = strings.Contains(details, ritualMarker)
		s.Ritual = s.CastingTime.IsRitual
	}

	if m := rangePattern.FindStringSubmatch(details); m != nil {
		s.Range = lo.ToPtr(strings.TrimSpace(m[1]))
	}

	if m := componentsPattern.FindStringSubmatch(details); m != nil {
		s.Components = parseComponents(strings.TrimSpace(m[1]))
	}

	if m := durationPattern.FindStringSubmatch(details); m != nil {
		s.Duration = parseDuration(strings.TrimSpace(m[1]))
	}
}

// parseComponents flags V, S and M outside the material parenthetical so a
// description such as "(a Medium stone)" does not set flags of its own.
func parseComponents(text string) dnd5e.Components {
	outside := parenthetical.ReplaceAllString(text, "")

	c := dnd5e.Components{
		Verbal:   verbalPattern.MatchString(outside),
		Somatic:  somaticPattern.MatchString(outside),
		Material: materialFlag.MatchString(outside),
	}
	if m := materialPattern.FindStringSubmatch(text); m != nil {
		c.MaterialDescription = lo.ToPtr(strings.TrimSpace(m[1]))
	}
	return c
}

// parseDuration classifies by ordered substring tests. The concentration
// flag is independent of the classification.
func parseDuration(text string) dnd5e.Duration {
	d := dnd5e.Duration{
		Concentration: strings.Contains(text, "Concentration"),
	}

	switch {
	case strings.Contains(text, "Instantaneous"):
		d.DurationType = lo.ToPtr(dnd5e.DurationInstantaneous)
	case strings.Contains(text, "Concentration"):
		d.DurationType = lo.ToPtr(dnd5e.DurationConcentration)
		d.Duration = lo.ToPtr(strings.Replace(text, "Concentration, ", "", 1))
	case strings.Contains(text, "Until Dispelled"):
		d.DurationType = lo.ToPtr(dnd5e.DurationUntilDispelled)
	default:
		d.DurationType = lo.ToPtr(dnd5e.DurationTimed)
		d.Duration = lo.ToPtr(text)
	}

	return d
}
