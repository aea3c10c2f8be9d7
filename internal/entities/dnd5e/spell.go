package dnd5e

// AttackType is how a spell resolves against its target
type AttackType string

// Attack types
const (
	AttackTypeNone        AttackType = "none"
	AttackTypeSpellAttack AttackType = "spell_attack"
	AttackTypeSavingThrow AttackType = "saving_throw"
)

// DurationType classifies a spell's duration text
type DurationType string

// Duration types, tested in this order
const (
	DurationInstantaneous  DurationType = "Instantaneous"
	DurationConcentration  DurationType = "Concentration"
	DurationUntilDispelled DurationType = "Until Dispelled"
	DurationTimed          DurationType = "Timed"
)

// SaveSuccessNegates is the default outcome recorded for a successful save
const SaveSuccessNegates = "negates"

// Spell is one parsed spell entry. Optional values serialize as null rather
// than being dropped so consumers can rely on the full shape.
type Spell struct {
	Name             string            `json:"name"`
	Level            *int              `json:"level"`
	School           *string           `json:"school"`
	IsCantrip        bool              `json:"isCantrip"`
	Classes          []string          `json:"classes"`
	CastingTime      CastingTime       `json:"castingTime"`
	Range            *string           `json:"range"`
	Components       Components        `json:"components"`
	Duration         Duration          `json:"duration"`
	Description      string            `json:"description"`
	AttackType       AttackType        `json:"attackType"`
	SavingThrow      *SpellSavingThrow `json:"savingThrow"`
	Damage           []SpellDamage     `json:"damage"`
	SummonedCreature *string           `json:"summonedCreature"`
	HigherLevels     *string           `json:"higherLevels"`
	CantripUpgrade   *string           `json:"cantripUpgrade"`
	Ritual           bool              `json:"ritual"`
	Tags             []string          `json:"tags"`
}

// CastingTime is the "Casting Time:" field
type CastingTime struct {
	Time     *string `json:"time"`
	IsRitual bool    `json:"isRitual"`
}

// Components is the "Components:" field
type Components struct {
	Verbal              bool    `json:"verbal"`
	Somatic             bool    `json:"somatic"`
	Material            bool    `json:"material"`
	MaterialDescription *string `json:"materialDescription"`
}

// Duration is the "Duration:" field
type Duration struct {
	DurationType  *DurationType `json:"durationType"`
	Concentration bool          `json:"concentration"`
	Duration      *string       `json:"duration"`
}

// SpellSavingThrow is the save a target makes against the spell
type SpellSavingThrow struct {
	Ability string `json:"ability"`
	Success string `json:"success"`
}

// SpellDamage is one "<dice> <Type> damage" occurrence. Average may be a
// half-integer and is never rounded.
type SpellDamage struct {
	Formula    string  `json:"formula"`
	DamageType string  `json:"damageType"`
	Average    float64 `json:"average"`
}

// NewSpell returns a spell with every field at its default
func NewSpell(name string) *Spell {
	return &Spell{
		Name:       name,
		Classes:    []string{},
		AttackType: AttackTypeNone,
		Tags:       []string{},
	}
}
