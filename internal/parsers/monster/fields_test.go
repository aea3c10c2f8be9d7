package monster

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-compendium/internal/entities/dnd5e"
)

type FieldsTestSuite struct {
	suite.Suite
}

func TestFieldsSuite(t *testing.T) {
	suite.Run(t, new(FieldsTestSuite))
}

func (s *FieldsTestSuite) TestCombatLine() {
	line := "AC 17 HP 135 (18d10+36) Initiative +5 (15)"

	ac, ok := parseArmorClass(line)
	s.Require().True(ok)
	s.Assert().Equal(17, ac)
	s.Assert().Equal(&dnd5e.HitPoints{Average: 135, Formula: "18d10+36"}, parseHitPoints(line))
	s.Assert().Equal(&dnd5e.Initiative{Modifier: 5, Total: 15}, parseInitiative(line))
}

func (s *FieldsTestSuite) TestCombatLineMisses() {
	_, ok := parseArmorClass("HP 4 (1d8)")
	s.Assert().False(ok)
	s.Assert().Nil(parseHitPoints("AC 12"))
	s.Assert().Nil(parseInitiative("AC 12 HP 4 (1d8)"))
}

func (s *FieldsTestSuite) TestNegativeInitiative() {
	s.Assert().Equal(&dnd5e.Initiative{Modifier: -1, Total: 9}, parseInitiative("Initiative −1 (9)"))
}

func (s *FieldsTestSuite) TestAbilityScores() {
	scores := parseAbilityScores([]string{
		"AC 10 HP 9 (2d8)",
		"Str 18 +4 +4 Dex 8 −1 −1 Con 14 +2 +2",
		"Int 3 -4 -4 WIS 12 +1 +3 Cha 6 −2 −2",
	})

	s.Assert().Equal(dnd5e.AbilityScore{Score: 18, Modifier: 4, Save: 4}, scores.Strength)
	s.Assert().Equal(dnd5e.AbilityScore{Score: 8, Modifier: -1, Save: -1}, scores.Dexterity)
	s.Assert().Equal(dnd5e.AbilityScore{Score: 14, Modifier: 2, Save: 2}, scores.Constitution)
	s.Assert().Equal(dnd5e.AbilityScore{Score: 3, Modifier: -4, Save: -4}, scores.Intelligence)
	s.Assert().Equal(dnd5e.AbilityScore{Score: 12, Modifier: 1, Save: 3}, scores.Wisdom)
	s.Assert().Equal(dnd5e.AbilityScore{Score: 6, Modifier: -2, Save: -2}, scores.Charisma)
}

func (s *FieldsTestSuite) TestUnicodeMinusMatchesASCII() {
	unicode := parseAbilityScores([]string{"Str 10 +0 +0 Dex 8 −1 −1 Con 10 +0 +0"})
	ascii := parseAbilityScores([]string{"Str 10 +0 +0 Dex 8 -1 -1 Con 10 +0 +0"})

	s.Assert().Equal(ascii, unicode)
	s.Assert().Equal(-1, unicode.Dexterity.Modifier)
	s.Assert().Equal(-1, unicode.Dexterity.Save)
}

func (s *FieldsTestSuite) TestAbilityScoresDefaultWhenMissing() {
	scores := parseAbilityScores([]string{"Str 18 +4 +4 Dex 8 −1 −1 Con 14 +2 +2"})

	s.Assert().Equal(18, scores.Strength.Score)
	s.Assert().Equal(dnd5e.DefaultAbilityScore, scores.Intelligence)
	s.Assert().Equal(dnd5e.DefaultAbilityScore, scores.Wisdom)
	s.Assert().Equal(dnd5e.DefaultAbilityScore, scores.Charisma)
}

func (s *FieldsTestSuite) TestSpeed() {
	testCases := []struct {
		name     string
		line     string
		expected []string
	}{
		{"walk only", "Speed 30 ft.", []string{"30 ft."}},
		{"fixed order", "Speed 40 ft., Climb 40 ft., Fly 80 ft.", []string{"40 ft.", "fly 80 ft.", "climb 40 ft."}},
		{"hover goes on fly", "Speed 0 ft., Fly 30 ft. (hover), Swim 20 ft.", []string{"0 ft.", "swim 20 ft.", "fly 30 ft. (hover)"}},
		{"lowercase modes", "Speed 20 ft., burrow 10 ft.", []string{"20 ft.", "burrow 10 ft."}},
		{"nothing", "AC 12", []string{}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.Assert().Equal(tc.expected, parseSpeed(tc.line))
		})
	}
}

func (s *FieldsTestSuite) TestChallengeRating() {
	cr := parseChallengeRating("CR 1/4 (XP 50; PB +2)")
	s.Require().NotNil(cr)
	s.Assert().Equal("1/4", cr.Rating)
	s.Assert().Equal(50, cr.ExperiencePoints)
	s.Assert().Nil(cr.ExperiencePointsInLair)
	s.Assert().Equal(2, cr.ProficiencyBonus)

	lair := parseChallengeRating("CR 24 (XP 62,000, or 75,000 in lair; PB +7)")
	s.Require().NotNil(lair)
	s.Assert().Equal("24", lair.Rating)
	s.Assert().Equal(62000, lair.ExperiencePoints)
	s.Require().NotNil(lair.ExperiencePointsInLair)
	s.Assert().Equal(75000, *lair.ExperiencePointsInLair)
	s.Assert().Equal(7, lair.ProficiencyBonus)

	s.Assert().Nil(parseChallengeRating("CR unknown"))
}

func (s *FieldsTestSuite) TestSenses() {
	senses := parseSenses("Senses Blindsight 60 ft., Darkvision 120 ft.; Passive Perception 26")
	s.Assert().Equal([]string{"Darkvision 120 ft.", "Blindsight 60 ft.", "Passive Perception 26"}, senses)
	s.Assert().Equal([]string{}, parseSenses("Senses none"))
}

func (s *FieldsTestSuite) TestSkills() {
	s.Assert().Equal(
		[]string{"History +12", "Perception +10"},
		parseSkills("Skills History +12, Perception +10\nSenses Darkvision 60 ft."),
	)
	s.Assert().Equal(
		[]string{"Sleight of Hand +6"},
		parseSkills("Skills Sleight of Hand +6 Languages Common"),
	)
	s.Assert().Equal([]string{}, parseSkills("Senses Passive Perception 10"))
}

func (s *FieldsTestSuite) TestLanguages() {
	testCases := []struct {
		name     string
		line     string
		expected []string
	}{
		{"plain list", "Languages Common, Draconic", []string{"Common", "Draconic"}},
		{"none dropped", "Languages None", []string{}},
		{"telepathy after semicolon", "Languages None; telepathy 60 ft.", []string{"telepathy 60 ft."}},
		{"telepathy in list is not doubled", "Languages Deep Speech, telepathy 120 ft.", []string{"Deep Speech", "telepathy 120 ft."}},
		{"stops at CR", "Languages Abyssal CR 5 (XP 1,800; PB +3)", []string{"Abyssal"}},
		{"no keyword", "Senses Passive Perception 10", []string{}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.Assert().Equal(tc.expected, parseLanguages(tc.line))
		})
	}
}

func (s *FieldsTestSuite) TestDefenses() {
	stats := []string{
		"Vulnerabilities Bludgeoning",
		"Resistances Cold, Fire",
		"Immunities Poison; Exhaustion, Poisoned",
		"Gear Greataxe, Javelins (4)",
	}

	s.Assert().Equal([]string{"Bludgeoning"}, vulnerabilitiesField.parse(stats))
	s.Assert().Equal([]string{"Cold", "Fire"}, resistancesField.parse(stats))
	s.Assert().Equal([]string{"Greataxe", "Javelins (4)"}, gearField.parse(stats))

	damage, conditions := parseImmunities(stats)
	s.Assert().Equal([]string{"Poison"}, damage)
	s.Assert().Equal([]string{"Exhaustion", "Poisoned"}, conditions)
}

func (s *FieldsTestSuite) TestImmunitiesWithoutSemicolon() {
	damage, conditions := parseImmunities([]string{"Immunities Necrotic, Charmed, Frightened"})
	s.Assert().Equal([]string{"Necrotic"}, damage)
	s.Assert().Equal([]string{"Charmed", "Frightened"}, conditions)

	damage, conditions = parseImmunities(nil)
	s.Assert().Equal([]string{}, damage)
	s.Assert().Equal([]string{}, conditions)
}

func (s *FieldsTestSuite) TestHeader() {
	h := parseHeader("Ancient Red Dragon Gargantuan Dragon (Chromatic), Chaotic Evil")
	s.Require().NotNil(h)
	s.Assert().Equal("Ancient Red Dragon", h.name)
	s.Assert().Equal("Gargantuan", h.size)
	s.Assert().Equal("Dragon", h.kind)
	s.Require().NotNil(h.subtype)
	s.Assert().Equal("Chromatic", *h.subtype)
	s.Assert().Equal("Chaotic Evil", h.alignment)

	h = parseHeader("Bandit Medium or Small Humanoid, Neutral")
	s.Require().NotNil(h)
	s.Assert().Equal("Medium or Small", h.size)
	s.Assert().Equal("Humanoid", h.kind)
	s.Assert().Nil(h.subtype)

	h = parseHeader("Swarm of Bats Large Swarm of Tiny Beasts, Unaligned")
	s.Require().NotNil(h)
	s.Assert().Equal("Swarm of Bats", h.name)
	s.Assert().Equal("Swarm of Tiny Beasts", h.kind)
}

func (s *FieldsTestSuite) TestHeaderRejections() {
	testCases := []struct {
		name string
		line string
	}{
		{"ability row", "Str 18 +4 +4"},
		{"ability row shaped like a header", "Str 18 +4 +4 Medium Humanoid, Neutral"},
		{"attack roll", "Melee Attack Roll Medium Humanoid, Neutral"},
		{"damage", "Fire damage Large Elemental, Neutral"},
		{"plus sign", "Hit +5 Small Beast, Unaligned"},
		{"leading digit", "12 Goblins Small Fey, Neutral"},
		{"short name", "Ox Large Beast, Unaligned"},
		{"no size", "Goblin Boss Fey, Chaotic Neutral"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.Assert().Nil(parseHeader(tc.line))
		})
	}
}
