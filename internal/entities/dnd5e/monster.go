package dnd5e

// Section header lines that introduce free-text feature lists
const (
	SectionTraits           = "Traits"
	SectionActions          = "Actions"
	SectionBonusActions     = "Bonus Actions"
	SectionReactions        = "Reactions"
	SectionLegendaryActions = "Legendary Actions"
)

// MonsterSections lists the section headers in precedence order
var MonsterSections = []string{
	SectionTraits,
	SectionActions,
	SectionBonusActions,
	SectionReactions,
	SectionLegendaryActions,
}

// Monster is one parsed stat block. Every field is always present in the
// serialized form; fields the source omits keep their defaults.
type Monster struct {
	Name      string  `json:"name"`
	Size      string  `json:"size"`
	Type      string  `json:"type"`
	Subtype   *string `json:"subtype"`
	Alignment string  `json:"alignment"`
	Category  string  `json:"category"`

	ArmorClass      int             `json:"armorClass"`
	HitPoints       HitPoints       `json:"hitPoints"`
	Initiative      *Initiative     `json:"initiative"`
	Speed           []string        `json:"speed"`
	ChallengeRating ChallengeRating `json:"challengeRating"`
	AbilityScores   AbilityScores   `json:"abilityScores"`

	Skills                []string `json:"skills"`
	Senses                []string `json:"senses"`
	Languages             []string `json:"languages"`
	DamageVulnerabilities []string `json:"damageVulnerabilities"`
	DamageResistances     []string `json:"damageResistances"`
	DamageImmunities      []string `json:"damageImmunities"`
	ConditionImmunities   []string `json:"conditionImmunities"`
	Gear                  []string `json:"gear"`

	Traits           []Feature         `json:"traits"`
	Actions          []Feature         `json:"actions"`
	BonusActions     []Feature         `json:"bonusActions"`
	Reactions        []Feature         `json:"reactions"`
	LegendaryActions *LegendaryActions `json:"legendaryActions"`
}

// HitPoints holds the printed average and the dice formula it came from
type HitPoints struct {
	Average int    `json:"average"`
	Formula string `json:"formula"`
}

// Initiative holds the modifier and the passive total in parentheses
type Initiative struct {
	Modifier int `json:"modifier"`
	Total    int `json:"total"`
}

// ChallengeRating keeps the rating as text since it may be a fraction ("1/8")
type ChallengeRating struct {
	Rating                 string `json:"rating"`
	ExperiencePoints       int    `json:"experiencePoints"`
	ExperiencePointsInLair *int   `json:"experiencePointsInLair"`
	ProficiencyBonus       int    `json:"proficiencyBonus"`
}

// AbilityScore is one row entry of the ability table
type AbilityScore struct {
	Score    int `json:"score"`
	Modifier int `json:"modifier"`
	Save     int `json:"save"`
}

// AbilityScores always carries all six abilities
type AbilityScores struct {
	Strength     AbilityScore `json:"strength"`
	Dexterity    AbilityScore `json:"dexterity"`
	Constitution AbilityScore `json:"constitution"`
	Intelligence AbilityScore `json:"intelligence"`
	Wisdom       AbilityScore `json:"wisdom"`
	Charisma     AbilityScore `json:"charisma"`
}

// LegendaryActions is the parsed "Legendary Actions" section
type LegendaryActions struct {
	Uses             *int      `json:"uses"`
	UsesInLair       *int      `json:"usesInLair"`
	UsageDescription string    `json:"usageDescription"`
	Actions          []Feature `json:"actions"`
}

// DefaultAbilityScore is used for any ability the source does not print
var DefaultAbilityScore = AbilityScore{Score: 10, Modifier: 0, Save: 0}

// NewMonster returns a monster with every field at its default so that a
// partially parsed stat block still serializes with the full shape.
func NewMonster() *Monster {
	return &Monster{
		ArmorClass: 10,
		HitPoints:  HitPoints{Average: 1, Formula: "1d4"},
		Speed:      []string{},
		ChallengeRating: ChallengeRating{
			Rating:           "0",
			ExperiencePoints: 0,
			ProficiencyBonus: 2,
		},
		AbilityScores: AbilityScores{
			Strength:     DefaultAbilityScore,
			Dexterity:    DefaultAbilityScore,
			Constitution: DefaultAbilityScore,
			Intelligence: DefaultAbilityScore,
			Wisdom:       DefaultAbilityScore,
			Charisma:     DefaultAbilityScore,
		},
		Skills:                []string{},
		Senses:                []string{},
		Languages:             []string{},
		DamageVulnerabilities: []string{},
		DamageResistances:     []string{},
		DamageImmunities:      []string{},
		ConditionImmunities:   []string{},
		Gear:                  []string{},
		Traits:                []Feature{},
		Actions:               []Feature{},
		BonusActions:          []Feature{},
		Reactions:             []Feature{},
	}
}
