package spell

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/KirkDiggler/rpg-compendium/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-compendium/internal/textscan"
)

var (
	summonPattern      = regexp.MustCompile(`\$\$\$([^$\n\r]+)`)
	summonMarker       = regexp.MustCompile(`\$\$\$[^$\n\r]*`)
	higherLevelPattern = regexp.MustCompile(`(?s)Using a Higher-Level Spell Slot\.(.*?)(?:\.|$)`)
	higherLevelTail    = regexp.MustCompile(`(?s)Using a Higher-Level Spell Slot\..*`)
	cantripPattern     = regexp.MustCompile(`(?s)Cantrip Upgrade\.(.*?)(?:\.|$)`)
	cantripTail        = regexp.MustCompile(`(?s)Cantrip Upgrade\..*`)

	damagePattern = regexp.MustCompile(`(?i)(\d+d\d+(?:\s*[+\-]\s*\d+)?)\s+(\w+)\s+damage`)
	dicePattern   = regexp.MustCompile(`^(\d+)d(\d+)(?:([+\-])(\d+))?$`)
	savePattern   = regexp.MustCompile(`(?i)(\w+)\s+saving\s+throw`)
)

// Finalize builds the spell for one entry. An entry that collected no
// description is incomplete input and yields nil with no error.
func Finalize(e Entry) (*dnd5e.Spell, error) {
	if len(e.Description) == 0 {
		return nil, nil
	}

	h := parseHeader(e.Header)

	s := dnd5e.NewSpell(h.name)
	s.Level = h.level
	s.School = h.school
	s.IsCantrip = h.isCantrip
	s.Classes = h.classes

	if e.Details != "" {
		applyDetails(s, e.Details)
	}

	// Lines are joined with newlines first so a summon marker cannot run
	// past the end of its own line.
	joined := strings.Join(e.Description, "\n")
	original := textscan.CollapseSpace(joined)

	if m := summonPattern.FindStringSubmatch(joined); m != nil {
		s.SummonedCreature = lo.ToPtr(strings.TrimSpace(m[1]))
	}
	description := textscan.CollapseSpace(summonMarker.ReplaceAllString(joined, ""))

	description, s.HigherLevels = extractTrailer(description, higherLevelPattern, higherLevelTail)
	description, s.CantripUpgrade = extractTrailer(description, cantripPattern, cantripTail)
	s.Description = description

	s.Damage = parseDamage(s.Description)
	s.AttackType, s.SavingThrow = classifyAttack(original)

	return s, nil
}

// extractTrailer captures the first sentence after a marker like
// "Cantrip Upgrade." and removes everything from the marker onward.
func extractTrailer(description string, sentence, tail *regexp.Regexp) (string, *string) {
	m := sentence.FindStringSubmatch(description)
	if m == nil {
		return description, nil
	}
	return strings.TrimSpace(tail.ReplaceAllString(description, "")), lo.ToPtr(strings.TrimSpace(m[1]))
}

// parseDamage finds every "<dice> <Type> damage" phrase. The average is
// count*(size+1)/2 plus the flat bonus and may be a half-integer.
func parseDamage(description string) []dnd5e.SpellDamage {
	var damage []dnd5e.SpellDamage

	for _, m := range damagePattern.FindAllStringSubmatch(description, -1) {
		formula := strings.Join(strings.Fields(m[1]), "")
		average, ok := diceAverage(formula)
		if !ok {
			continue
		}
		damage = append(damage, dnd5e.SpellDamage{
			Formula:    formula,
			DamageType: textscan.TitleCase(m[2]),
			Average:    average,
		})
	}

	return damage
}

func diceAverage(formula string) (float64, bool) {
	m := dicePattern.FindStringSubmatch(formula)
	if m == nil {
		return 0, false
	}

	count, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	size, err := strconv.Atoi(m[2])
	if err != nil {
		return 0, false
	}

	bonus := 0
	if m[3] != "" {
		bonus, _ = strconv.Atoi(m[4])
		if m[3] == "-" {
			bonus = -bonus
		}
	}

	return float64(count*(size+1))/2 + float64(bonus), true
}

// classifyAttack inspects the description as written, before any markers
// or trailers are removed.
func classifyAttack(original string) (dnd5e.AttackType, *dnd5e.SpellSavingThrow) {
	if strings.Contains(original, "spell attack") {
		return dnd5e.AttackTypeSpellAttack, nil
	}
	if !strings.Contains(original, "saving throw") {
		return dnd5e.AttackTypeNone, nil
	}

	var save *dnd5e.SpellSavingThrow
	if m := savePattern.FindStringSubmatch(original); m != nil {
		save = &dnd5e.SpellSavingThrow{
			Ability: textscan.TitleCase(m[1]),
			Success: dnd5e.SaveSuccessNegates,
		}
	}
	return dnd5e.AttackTypeSavingThrow, save
}
