package monster

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/samber/lo"

	"github.com/KirkDiggler/rpg-compendium/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-compendium/internal/textscan"
)

const signedInt = `([+\-−]?\d+)`

var (
	armorClassPattern = regexp.MustCompile(`\bAC\s+(\d+)`)
	hitPointsPattern  = regexp.MustCompile(`\bHP\s+(\d+)\s*\(([^)]+)\)`)
	initiativePattern = regexp.MustCompile(`Initiative\s*([+\-−]\d+)\s*\((\d+)\)`)

	challengePattern = regexp.MustCompile(
		`\bCR\s+([\d/]+)\s*\(XP\s+([\d,]+)(?:,\s*or\s+([\d,]+)\s+in\s+(?i:lair))?;\s*PB\s*([+\-−]\d+)\)`)

	skillsStop   = regexp.MustCompile(`Senses|Resistances|Immunities|Vulnerabilities|Gear|Languages|\bCR\b`)
	skillPattern = regexp.MustCompile(`([A-Za-z\s]+?)\s*([+\-−]\d+)`)

	languagesPattern = regexp.MustCompile(`Languages\s+([^;]+?)(?:\s+CR\s|\s*;|$)`)
	telepathyPattern = regexp.MustCompile(`(?i)telepathy\s+(\d+)\s*ft`)
	hoverPattern     = regexp.MustCompile(`(?i)\bhover\b`)
)

type abilityRule struct {
	pattern *regexp.Regexp
	target  func(*dnd5e.AbilityScores) *dnd5e.AbilityScore
}

func abilityPattern(abbrev string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\b` + abbrev + `\s+(\d+)\s+` + signedInt + `\s+` + signedInt)
}

var (
	physicalAbilities = []abilityRule{
		{abilityPattern("str"), func(a *dnd5e.AbilityScores) *dnd5e.AbilityScore { return &a.Strength }},
		{abilityPattern("dex"), func(a *dnd5e.AbilityScores) *dnd5e.AbilityScore { return &a.Dexterity }},
		{abilityPattern("con"), func(a *dnd5e.AbilityScores) *dnd5e.AbilityScore { return &a.Constitution }},
	}
	mentalAbilities = []abilityRule{
		{abilityPattern("int"), func(a *dnd5e.AbilityScores) *dnd5e.AbilityScore { return &a.Intelligence }},
		{abilityPattern("wis"), func(a *dnd5e.AbilityScores) *dnd5e.AbilityScore { return &a.Wisdom }},
		{abilityPattern("cha"), func(a *dnd5e.AbilityScores) *dnd5e.AbilityScore { return &a.Charisma }},
	}
)

// movementRule is one speed mode. Rules run in walk, swim, fly, burrow,
// climb order and each contributes at most one entry.
type movementRule struct {
	pattern *regexp.Regexp
	format  string
	hover   bool
}

var movementRules = []movementRule{
	{pattern: regexp.MustCompile(`(?i)\bspeed\s+(\d+)\s*ft`), format: "%s ft."},
	{pattern: regexp.MustCompile(`(?i)\bswim\s+(\d+)\s*ft`), format: "swim %s ft."},
	{pattern: regexp.MustCompile(`(?i)\bfly\s+(\d+)\s*ft`), format: "fly %s ft.", hover: true},
	{pattern: regexp.MustCompile(`(?i)\bburrow\s+(\d+)\s*ft`), format: "burrow %s ft."},
	{pattern: regexp.MustCompile(`(?i)\bclimb\s+(\d+)\s*ft`), format: "climb %s ft."},
}

type senseRule struct {
	pattern *regexp.Regexp
	format  string
}

var senseRules = []senseRule{
	{regexp.MustCompile(`Darkvision\s+(\d+)\s*ft`), "Darkvision %s ft."},
	{regexp.MustCompile(`Blindsight\s+(\d+)\s*ft`), "Blindsight %s ft."},
	{regexp.MustCompile(`Truesight\s+(\d+)\s*ft`), "Truesight %s ft."},
	{regexp.MustCompile(`Tremorsense\s+(\d+)\s*ft`), "Tremorsense %s ft."},
	{regexp.MustCompile(`Passive\s+Perception\s+(\d+)`), "Passive Perception %s"},
}

// listField is a keyword-introduced comma list such as "Resistances Cold, Fire"
type listField struct {
	pattern *regexp.Regexp
}

func newListField(keyword string) listField {
	return listField{regexp.MustCompile(
		`\b` + keyword + `\s+(.+?)(?:\s+(?:Resistances|Immunities|Vulnerabilities|Gear|Senses|Languages|CR)\b|$)`)}
}

var (
	vulnerabilitiesField = newListField("Vulnerabilities")
	resistancesField     = newListField("Resistances")
	immunitiesField      = newListField("Immunities")
	gearField            = newListField("Gear")
)

// conditionNames are the game conditions a creature can be immune to
var conditionNames = map[string]struct{}{
	"blinded": {}, "charmed": {}, "deafened": {}, "exhaustion": {}, "frightened": {},
	"grappled": {}, "incapacitated": {}, "invisible": {}, "paralyzed": {}, "petrified": {},
	"poisoned": {}, "prone": {}, "restrained": {}, "stunned": {}, "unconscious": {},
}

// findLine returns the first line containing every token
func findLine(lines []string, tokens ...string) (string, bool) {
	return lo.Find(lines, func(line string) bool {
		for _, t := range tokens {
			if !strings.Contains(line, t) {
				return false
			}
		}
		return true
	})
}

func findLineMatching(lines []string, pattern *regexp.Regexp) (string, bool) {
	return lo.Find(lines, pattern.MatchString)
}

func parseAbilityLine(line string, rules []abilityRule, scores *dnd5e.AbilityScores) {
	for _, rule := range rules {
		m := rule.pattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		score, ok1 := textscan.Atoi(m[1])
		modifier, ok2 := textscan.Atoi(m[2])
		save, ok3 := textscan.Atoi(m[3])
		if ok1 && ok2 && ok3 {
			*rule.target(scores) = dnd5e.AbilityScore{Score: score, Modifier: modifier, Save: save}
		}
	}
}

// parseAbilityScores reads STR/DEX/CON from the first line carrying all
// three and INT/WIS/CHA from the first line carrying those. Anything the
// lines do not print keeps the 10/+0/+0 default.
func parseAbilityScores(lines []string) dnd5e.AbilityScores {
	scores := dnd5e.NewMonster().AbilityScores

	if line, ok := findAbilityRow(lines, physicalAbilities); ok {
		parseAbilityLine(line, physicalAbilities, &scores)
	}
	if line, ok := findAbilityRow(lines, mentalAbilities); ok {
		parseAbilityLine(line, mentalAbilities, &scores)
	}

	return scores
}

func findAbilityRow(lines []string, rules []abilityRule) (string, bool) {
	return lo.Find(lines, func(line string) bool {
		return lo.SomeBy(rules, func(r abilityRule) bool { return r.pattern.MatchString(line) })
	})
}

func parseArmorClass(line string) (int, bool) {
	m := armorClassPattern.FindStringSubmatch(line)
	if m == nil {
		return 0, false
	}
	return textscan.Atoi(m[1])
}

func parseHitPoints(line string) *dnd5e.HitPoints {
	m := hitPointsPattern.FindStringSubmatch(line)
	if m == nil {
		return nil
	}
	avg, ok := textscan.Atoi(m[1])
	if !ok {
		return nil
	}
	return &dnd5e.HitPoints{Average: avg, Formula: strings.TrimSpace(m[2])}
}

func parseInitiative(line string) *dnd5e.Initiative {
	m := initiativePattern.FindStringSubmatch(line)
	if m == nil {
		return nil
	}
	modifier, ok1 := textscan.Atoi(m[1])
	total, ok2 := textscan.Atoi(m[2])
	if !ok1 || !ok2 {
		return nil
	}
	return &dnd5e.Initiative{Modifier: modifier, Total: total}
}

func parseSpeed(line string) []string {
	speed := []string{}
	for _, rule := range movementRules {
		m := rule.pattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		entry := fmt.Sprintf(rule.format, m[1])
		if rule.hover && hoverPattern.MatchString(line) {
			entry += " (hover)"
		}
		speed = append(speed, entry)
	}
	return speed
}

func parseChallengeRating(line string) *dnd5e.ChallengeRating {
	m := challengePattern.FindStringSubmatch(line)
	if m == nil {
		return nil
	}
	xp, ok1 := textscan.Atoi(m[2])
	pb, ok2 := textscan.Atoi(m[4])
	if !ok1 || !ok2 {
		return nil
	}

	cr := &dnd5e.ChallengeRating{
		Rating:           m[1],
		ExperiencePoints: xp,
		ProficiencyBonus: pb,
	}
	if lair, ok := textscan.Atoi(m[3]); ok {
		cr.ExperiencePointsInLair = lo.ToPtr(lair)
	}
	return cr
}

func parseSenses(line string) []string {
	senses := []string{}
	for _, rule := range senseRules {
		if m := rule.pattern.FindStringSubmatch(line); m != nil {
			senses = append(senses, fmt.Sprintf(rule.format, m[1]))
		}
	}
	return senses
}

// parseSkills scans the text between "Skills" and the next stat keyword for
// "<Skill name> <signed bonus>" pairs.
func parseSkills(text string) []string {
	skills := []string{}

	_, after, found := strings.Cut(text, "Skills")
	if !found {
		return skills
	}
	if loc := skillsStop.FindStringIndex(after); loc != nil {
		after = after[:loc[0]]
	}

	for _, m := range skillPattern.FindAllStringSubmatch(after, -1) {
		name := textscan.CollapseSpace(m[1])
		if name == "" {
			continue
		}
		skills = append(skills, name+" "+strings.ReplaceAll(m[2], textscan.MinusSign, "-"))
	}
	return skills
}

// parseLanguages drops "None" and folds any telepathy mention into a single
// synthesized "telepathy N ft." entry at the end.
func parseLanguages(line string) []string {
	languages := []string{}
	if !strings.Contains(line, "Languages") {
		return languages
	}

	if m := languagesPattern.FindStringSubmatch(line); m != nil {
		languages = lo.Filter(textscan.SplitList(m[1], ","), func(l string, _ int) bool {
			return l != "None" && !telepathyPattern.MatchString(l)
		})
	}

	if m := telepathyPattern.FindStringSubmatch(line); m != nil {
		languages = append(languages, fmt.Sprintf("telepathy %s ft.", m[1]))
	}
	return languages
}

func (f listField) parse(lines []string) []string {
	for _, line := range lines {
		if m := f.pattern.FindStringSubmatch(line); m != nil {
			return textscan.SplitList(strings.TrimSuffix(m[1], "."), ",")
		}
	}
	return []string{}
}

// parseImmunities splits "Immunities Fire, Poison; Charmed, Poisoned" into
// damage and condition immunities. Without a semicolon each entry is
// classified by name.
func parseImmunities(lines []string) (damage, conditions []string) {
	damage, conditions = []string{}, []string{}

	for _, line := range lines {
		m := immunitiesField.pattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		text := strings.TrimSuffix(m[1], ".")
		if before, after, ok := strings.Cut(text, ";"); ok {
			return textscan.SplitList(before, ","), textscan.SplitList(after, ",")
		}

		for _, entry := range textscan.SplitList(text, ",") {
			if _, ok := conditionNames[strings.ToLower(entry)]; ok {
				conditions = append(conditions, entry)
			} else {
				damage = append(damage, entry)
			}
		}
		return damage, conditions
	}

	return damage, conditions
}
