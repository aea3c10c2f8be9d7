// Package monster parses one segmented stat block into a dnd5e.Monster.
//
// A block is the header line followed by keyword-anchored stat lines and
// then the free-text sections (Traits, Actions, Bonus Actions, Reactions,
// Legendary Actions). Stat fields are read with independent extraction
// rules; a rule that does not match leaves the field at its default.
package monster

import (
	"strings"

	"github.com/samber/lo"

	"github.com/KirkDiggler/rpg-compendium/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-compendium/internal/errors"
	"github.com/KirkDiggler/rpg-compendium/internal/textscan"
)

// Parse assembles one monster. Blocks with fewer than two lines or whose
// first line is not a stat block header are rejected with an
// UNRECOGNIZED_HEADER error; nothing else in a block is fatal.
func Parse(block dnd5e.RawEntityBlock) (*dnd5e.Monster, error) {
	lines := lo.FilterMap(block.Lines, func(l string, _ int) (string, bool) {
		l = strings.TrimSpace(l)
		return l, l != ""
	})
	if len(lines) < 2 {
		return nil, errors.UnrecognizedHeaderf("block has %d lines", len(lines)).
			WithMeta("first_line", block.FirstLine())
	}

	h := parseHeader(lines[0])
	if h == nil {
		return nil, errors.UnrecognizedHeaderf("not a stat block header").
			WithMeta("first_line", lines[0])
	}

	m := dnd5e.NewMonster()
	m.Name = h.name
	m.Size = h.size
	m.Type = h.kind
	m.Subtype = h.subtype
	m.Alignment = h.alignment
	m.Category = block.Category

	sections := textscan.Sections(lines, dnd5e.MonsterSections...)
	stats := sections[textscan.Preamble][1:]

	applyStats(m, stats)

	m.Traits = segmentFeatures(sections[dnd5e.SectionTraits])
	m.Actions = segmentFeatures(sections[dnd5e.SectionActions])
	m.BonusActions = segmentFeatures(sections[dnd5e.SectionBonusActions])
	m.Reactions = segmentFeatures(sections[dnd5e.SectionReactions])
	if legendary, ok := sections[dnd5e.SectionLegendaryActions]; ok {
		m.LegendaryActions = parseLegendaryActions(legendary)
	}

	return m, nil
}

// applyStats runs every field extractor over the stat lines between the
// header and the first section.
func applyStats(m *dnd5e.Monster, stats []string) {
	acLine, hasACLine := findLine(stats, "AC", "HP")
	if hasACLine {
		if ac, ok := parseArmorClass(acLine); ok {
			m.ArmorClass = ac
		}
		if hp := parseHitPoints(acLine); hp != nil {
			m.HitPoints = *hp
		}
	}

	if line, ok := findLine(stats, "Initiative"); ok {
		m.Initiative = parseInitiative(line)
	}

	if line, ok := findLineMatching(stats, movementRules[0].pattern); ok {
		m.Speed = parseSpeed(line)
	} else if hasACLine {
		m.Speed = parseSpeed(acLine)
	}

	m.AbilityScores = parseAbilityScores(stats)
	m.Skills = parseSkills(strings.Join(stats, "\n"))

	if line, ok := findLine(stats, "Senses"); ok {
		m.Senses = parseSenses(line)
	}
	if line, ok := findLine(stats, "Languages"); ok {
		m.Languages = parseLanguages(line)
	}
	if line, ok := findLineMatching(stats, challengePattern); ok {
		if cr := parseChallengeRating(line); cr != nil {
			m.ChallengeRating = *cr
		}
	}

	m.DamageVulnerabilities = vulnerabilitiesField.parse(stats)
	m.DamageResistances = resistancesField.parse(stats)
	m.DamageImmunities, m.ConditionImmunities = parseImmunities(stats)
	m.Gear = gearField.parse(stats)
}
