package dnd5e

// FeatureType classifies a trait or action
type FeatureType string

// Feature types
const (
	FeatureTypeMelee       FeatureType = "melee"
	FeatureTypeRanged      FeatureType = "ranged"
	FeatureTypeMultiattack FeatureType = "multiattack"
	FeatureTypeSpecial     FeatureType = "special"
)

// Feature is a named trait, action, bonus action, reaction or legendary
// action. Derived fields are omitted from JSON when the prose has no match.
type Feature struct {
	Name         string        `json:"name"`
	Description  string        `json:"description"`
	Type         FeatureType   `json:"type"`
	AttackRoll   *AttackRoll   `json:"attackRoll,omitempty"`
	SavingThrow  *SaveDC       `json:"savingThrow,omitempty"`
	Damage       []DamageRoll  `json:"damage,omitempty"`
	Healing      *Healing      `json:"healing,omitempty"`
	Conditions   []Condition   `json:"conditions,omitempty"`
	Recharge     string        `json:"recharge,omitempty"`
	UsesPerDay   int           `json:"usesPerDay,omitempty"`
	Spells       []SpellLevel  `json:"spells,omitempty"`
	Spellcasting *Spellcasting `json:"spellcasting,omitempty"`
}

// AttackRoll is "Melee Attack Roll: +N" or "Ranged Attack Roll: +N"
type AttackRoll struct {
	Type  FeatureType `json:"type"`
	Bonus int         `json:"bonus"`
}

// SaveDC is "<Ability> Saving Throw: DC N"
type SaveDC struct {
	Ability string `json:"ability"`
	DC      int    `json:"dc"`
}

// DamageRoll is "<avg> (<formula>) <Type> damage"
type DamageRoll struct {
	Average int    `json:"average"`
	Formula string `json:"formula"`
	Type    string `json:"type"`
}

// Healing is "regains <avg> (<formula>) Hit Points"
type Healing struct {
	Average int    `json:"average"`
	Formula string `json:"formula"`
}

// Condition is an imposed condition, with an escape or save DC when printed
type Condition struct {
	Name string `json:"name"`
	DC   *int   `json:"dc,omitempty"`
}

// SpellLevel is one "Cantrips (at will): ..." or "3rd level (3 slots): ..." list
type SpellLevel struct {
	Level  string   `json:"level"`
	Spells []string `json:"spells"`
}

// Spellcasting summarizes a spellcasting trait
type Spellcasting struct {
	Description string        `json:"description"`
	AtWill      []string      `json:"atWill,omitempty"`
	PerDay      *PerDaySpells `json:"perDay,omitempty"`
}

// PerDaySpells is the "N/Day Each:" or "N/Day:" list
type PerDaySpells struct {
	Uses   int      `json:"uses"`
	Spells []string `json:"spells"`
}
