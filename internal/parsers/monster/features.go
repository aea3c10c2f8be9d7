package monster

import (
	"regexp"
	"strings"

	"github.com/samber/lo"

	"github.com/KirkDiggler/rpg-compendium/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-compendium/internal/textscan"
)

var (
	attackRollPattern  = regexp.MustCompile(`(Melee|Ranged)\s+Attack\s+Roll:\s*([+\-−]?\d+)`)
	savingThrowPattern = regexp.MustCompile(`([A-Za-z]+)\s+Saving\s+Throw:\s*DC\s*(\d+)`)
	damagePattern      = regexp.MustCompile(`(\d+)\s*\(([^)]+)\)\s*([A-Za-z]+)\s*damage`)
	healingPattern     = regexp.MustCompile(`(?i)regains?\s+(\d+)\s*\(([^)]+)\)\s*Hit\s+Points`)

	grappledPattern  = regexp.MustCompile(`(?i)Grappled\s+condition\s*\(escape\s+DC\s+(\d+)\)`)
	conditionPattern = regexp.MustCompile(`([A-Za-z]+)\s+(?i:condition)[^(]*\([^)]*DC\s+(\d+)[^)]*\)`)

	rechargePattern   = regexp.MustCompile(`\(Recharge\s+([\d\-–]+)\)`)
	usesPerDayPattern = regexp.MustCompile(`\((\d+)/Day\)`)

	spellLevelPattern = regexp.MustCompile(`(Cantrips?\s*\([^)]+\)|\d+(?:st|nd|rd|th)\s+level\s*\([^)]+\)):\s*([^.]+)`)
	atWillPattern     = regexp.MustCompile(`(?i)At\s+Will:\s*(.+?)(?:\s+\d+/Day|$)`)
	atWillHeader      = regexp.MustCompile(`(?i)At\s+Will:`)
	perDayEachHeader  = regexp.MustCompile(`(?i)(\d+)/Day\s+Each:`)
	perDayHeader      = regexp.MustCompile(`(?i)(\d+)/Day:`)
	perDayBoundary    = regexp.MustCompile(`\d+/Day`)
)

// simpleConditions are recorded when named with no DC, e.g. "has the Prone condition"
var simpleConditions = lo.Map([]string{
	"Poisoned", "Charmed", "Frightened", "Prone", "Blinded",
	"Restrained", "Stunned", "Paralyzed", "Petrified",
}, func(name string, _ int) simpleCondition {
	return simpleCondition{name: name, pattern: regexp.MustCompile(`(?i)\b` + name + `\s+condition\b`)}
})

type simpleCondition struct {
	name    string
	pattern *regexp.Regexp
}

// segmentFeatures groups section lines into features. A line matching the
// feature boundary grammar opens a new feature and anything else continues
// the current description. Boundary lines whose name looks like an ability
// row or is a single character are skipped.
func segmentFeatures(lines []string) []dnd5e.Feature {
	features := []dnd5e.Feature{}

	var name, description string
	open := false

	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if n, rest, ok := textscan.FeatureStart(line); ok {
			if textscan.LooksLikeAbilityLine(n) || len([]rune(n)) < 2 {
				continue
			}
			if open {
				features = append(features, deriveFeature(name, description))
			}
			name, description, open = n, rest, true
			continue
		}

		if !open {
			continue
		}
		if description == "" {
			description = line
		} else {
			description += " " + line
		}
	}

	if open {
		features = append(features, deriveFeature(name, description))
	}
	return features
}

// deriveFeature extracts structured combat data from a feature's prose.
// Every rule is independent and a miss just leaves its field empty.
func deriveFeature(name, description string) dnd5e.Feature {
	f := dnd5e.Feature{
		Name:        name,
		Description: description,
		Type:        dnd5e.FeatureTypeSpecial,
	}

	if name == "Multiattack" {
		f.Type = dnd5e.FeatureTypeMultiattack
	}

	// An attack roll is more specific than the name and wins.
	if m := attackRollPattern.FindStringSubmatch(description); m != nil {
		if bonus, ok := textscan.Atoi(m[2]); ok {
			kind := dnd5e.FeatureType(strings.ToLower(m[1]))
			f.AttackRoll = &dnd5e.AttackRoll{Type: kind, Bonus: bonus}
			f.Type = kind
		}
	}

	if m := savingThrowPattern.FindStringSubmatch(description); m != nil {
		if dc, ok := textscan.Atoi(m[2]); ok {
			f.SavingThrow = &dnd5e.SaveDC{Ability: m[1], DC: dc}
		}
	}

	for _, m := range damagePattern.FindAllStringSubmatch(description, -1) {
		if avg, ok := textscan.Atoi(m[1]); ok {
			f.Damage = append(f.Damage, dnd5e.DamageRoll{
				Average: avg,
				Formula: strings.TrimSpace(m[2]),
				Type:    m[3],
			})
		}
	}

	if m := healingPattern.FindStringSubmatch(description); m != nil {
		if avg, ok := textscan.Atoi(m[1]); ok {
			f.Healing = &dnd5e.Healing{Average: avg, Formula: strings.TrimSpace(m[2])}
		}
	}

	f.Conditions = parseConditions(description)

	// Recharge and daily uses are often printed in the name, e.g.
	// "Fire Breath (Recharge 5–6)".
	both := name + " " + description
	if m := rechargePattern.FindStringSubmatch(both); m != nil {
		f.Recharge = strings.ReplaceAll(m[1], "–", "-")
	}
	if m := usesPerDayPattern.FindStringSubmatch(both); m != nil {
		f.UsesPerDay, _ = textscan.Atoi(m[1])
	}

	if strings.Contains(strings.ToLower(name), "spellcasting") {
		f.Spells = parseSpellLevels(description)
		f.Spellcasting = parseSpellcasting(description)
	}

	return f
}

// parseConditions collects imposed conditions. The Grappled escape DC form
// runs first, then the generic DC form, then bare condition names. A name
// already recorded, compared case-insensitively, is never added twice.
func parseConditions(description string) []dnd5e.Condition {
	var conditions []dnd5e.Condition
	seen := map[string]struct{}{}

	add := func(name string, dc *int) {
		key := strings.ToLower(name)
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		conditions = append(conditions, dnd5e.Condition{Name: name, DC: dc})
	}

	if m := grappledPattern.FindStringSubmatch(description); m != nil {
		if dc, ok := textscan.Atoi(m[1]); ok {
			add("Grappled", lo.ToPtr(dc))
		}
	}

	for _, m := range conditionPattern.FindAllStringSubmatch(description, -1) {
		if dc, ok := textscan.Atoi(m[2]); ok {
			add(m[1], lo.ToPtr(dc))
		}
	}

	for _, c := range simpleConditions {
		if c.pattern.MatchString(description) {
			add(c.name, nil)
		}
	}

	return conditions
}

// parseSpellLevels reads "Cantrips (at will): ..." and "1st level (4 slots): ..." lists
func parseSpellLevels(text string) []dnd5e.SpellLevel {
	return lo.Map(spellLevelPattern.FindAllStringSubmatch(text, -1), func(m []string, _ int) dnd5e.SpellLevel {
		return dnd5e.SpellLevel{
			Level:  strings.TrimSpace(m[1]),
			Spells: textscan.SplitList(m[2], ","),
		}
	})
}

// parseSpellcasting summarizes a spellcasting trait. When both "N/Day Each:"
// and "N/Day:" appear, whichever comes first in the text is used.
func parseSpellcasting(text string) *dnd5e.Spellcasting {
	sc := &dnd5e.Spellcasting{Description: strings.TrimSpace(text)}

	headers := lo.Compact([]int{
		firstIndex(atWillHeader, text),
		firstIndex(perDayEachHeader, text),
		firstIndex(perDayHeader, text),
	})
	if len(headers) > 0 {
		sc.Description = strings.TrimSpace(text[:lo.Min(headers)-1])
	}

	if m := atWillPattern.FindStringSubmatch(text); m != nil {
		sc.AtWill = spellList(m[1])
	}

	each := perDayEachHeader.FindStringSubmatchIndex(text)
	plain := perDayHeader.FindStringSubmatchIndex(text)
	loc := each
	if loc == nil || (plain != nil && plain[0] < each[0]) {
		loc = plain
	}
	if loc != nil {
		uses, _ := textscan.Atoi(text[loc[2]:loc[3]])
		rest := text[loc[1]:]
		if next := perDayBoundary.FindStringIndex(rest); next != nil {
			rest = rest[:next[0]]
		}
		sc.PerDay = &dnd5e.PerDaySpells{Uses: uses, Spells: spellList(rest)}
	}

	return sc
}

// firstIndex returns the 1-based offset of the first match, or 0 for none,
// so that lo.Compact drops misses.
func firstIndex(pattern *regexp.Regexp, text string) int {
	loc := pattern.FindStringIndex(text)
	if loc == nil {
		return 0
	}
	return loc[0] + 1
}

func spellList(s string) []string {
	return textscan.SplitList(strings.TrimSuffix(strings.TrimSpace(s), "."), ",")
}
