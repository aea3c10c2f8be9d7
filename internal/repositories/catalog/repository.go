// Package catalog publishes extracted compendium records to a store other
// services can read from.
package catalog

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"

	"github.com/samber/lo"

	"github.com/KirkDiggler/rpg-compendium/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-compendium/internal/errors"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=catalogmock github.com/KirkDiggler/rpg-compendium/internal/repositories/catalog Repository

// Kind identifies a record family in the catalog
type Kind string

// Record kinds
const (
	KindMonster Kind = "monster"
	KindSpell   Kind = "spell"
)

// Error messages
const (
	errKindInvalid = "kind must be monster or spell"
	errNameEmpty   = "name cannot be empty"
)

// PutMonstersInput contains the monsters to publish
type PutMonstersInput struct {
	Monsters []*dnd5e.Monster
}

// PutSpellsInput contains the spells to publish
type PutSpellsInput struct {
	Spells []*dnd5e.Spell
}

// PutOutput reports how many records were written. Records sharing a slug
// overwrite each other, last one wins.
type PutOutput struct {
	Stored int
}

// ListNamesInput selects the record family to list
type ListNamesInput struct {
	Kind Kind
}

// ListNamesOutput holds record names in ascending order
type ListNamesOutput struct {
	Names []string
}

// GetInput identifies one record
type GetInput struct {
	Kind Kind
	Name string
}

// GetOutput holds the stored JSON for one record
type GetOutput struct {
	Data json.RawMessage
}

// Repository defines catalog storage operations. Writes are upserts keyed
// by the record's slug, so republishing the same file is a no-op.
type Repository interface {
	PutMonsters(ctx context.Context, input *PutMonstersInput) (*PutOutput, error)
	PutSpells(ctx context.Context, input *PutSpellsInput) (*PutOutput, error)
	ListNames(ctx context.Context, input *ListNamesInput) (*ListNamesOutput, error)
	Get(ctx context.Context, input *GetInput) (*GetOutput, error)
}

// record is the storage-neutral form shared by the implementations
type record struct {
	kind Kind
	slug string
	name string
	data []byte
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// Slug lowercases name and joins its alphanumeric runs with dashes:
// "Ancient Red Dragon" becomes "ancient-red-dragon".
func Slug(name string) string {
	return strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(name), "-"), "-")
}

func validateKind(kind Kind) error {
	if kind != KindMonster && kind != KindSpell {
		return errors.InvalidArgument(errKindInvalid).WithMeta("kind", string(kind))
	}
	return nil
}

func monsterRecords(monsters []*dnd5e.Monster) ([]record, error) {
	return toRecords(KindMonster, lo.Compact(monsters), func(m *dnd5e.Monster) string { return m.Name })
}

func spellRecords(spells []*dnd5e.Spell) ([]record, error) {
	return toRecords(KindSpell, lo.Compact(spells), func(s *dnd5e.Spell) string { return s.Name })
}

func toRecords[T any](kind Kind, items []T, name func(T) string) ([]record, error) {
	records := make([]record, 0, len(items))
	for _, item := range items {
		n := name(item)
		slug := Slug(n)
		if slug == "" {
			return nil, errors.InvalidArgument(errNameEmpty).WithMeta("name", n)
		}

		data, err := json.Marshal(item)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to marshal %s %q", kind, n)
		}

		records = append(records, record{kind: kind, slug: slug, name: n, data: data})
	}
	return records, nil
}
