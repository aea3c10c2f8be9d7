package catalog

import (
	"context"
	"database/sql"
	"path/filepath"
	"strings"

	// registers the "sqlite" driver
	_ "modernc.org/sqlite"

	"github.com/KirkDiggler/rpg-compendium/internal/errors"
	"github.com/KirkDiggler/rpg-compendium/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-compendium/internal/repositories/catalog/migrations"
	"github.com/KirkDiggler/rpg-compendium/internal/storage/sqlitemigrate"
)

const sqliteDSNParams = "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"

// SQLiteConfig holds the configuration for the SQLite repository
type SQLiteConfig struct {
	Path  string
	Clock clock.Clock
}

// Validate ensures all required settings are provided
func (c *SQLiteConfig) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("path", c.Path, vb)
	if c.Clock == nil {
		vb.RequiredField("clock")
	}
	return vb.Build()
}

// SQLiteRepository is a catalog stored in a single SQLite file
type SQLiteRepository struct {
	db    *sql.DB
	clock clock.Clock
}

// NewSQLiteRepository opens the database at cfg.Path and applies the
// embedded migrations.
func NewSQLiteRepository(ctx context.Context, cfg *SQLiteConfig) (*SQLiteRepository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	db, err := sql.Open("sqlite", filepath.Clean(strings.TrimSpace(cfg.Path))+sqliteDSNParams)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to open sqlite db")
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to ping sqlite db")
	}
	if err := sqlitemigrate.Apply(ctx, db, migrations.FS, ".", cfg.Clock); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "failed to run migrations")
	}

	return &SQLiteRepository{db: db, clock: cfg.Clock}, nil
}

// Ensure SQLiteRepository implements Repository
var _ Repository = (*SQLiteRepository)(nil)

// Close closes the database handle
func (r *SQLiteRepository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

// PutMonsters upserts monsters by slug
func (r *SQLiteRepository) PutMonsters(ctx context.Context, input *PutMonstersInput) (*PutOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	records, err := monsterRecords(input.Monsters)
	if err != nil {
		return nil, err
	}
	return r.put(ctx, records)
}

// PutSpells upserts spells by slug
func (r *SQLiteRepository) PutSpells(ctx context.Context, input *PutSpellsInput) (*PutOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	records, err := spellRecords(input.Spells)
	if err != nil {
		return nil, err
	}
	return r.put(ctx, records)
}

func (r *SQLiteRepository) put(ctx context.Context, records []record) (*PutOutput, error) {
	if len(records) == 0 {
		return &PutOutput{}, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to begin transaction")
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO catalog_records (kind, slug, name, data, updated_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT (kind, slug) DO UPDATE SET
    name = excluded.name,
    data = excluded.data,
    updated_at = excluded.updated_at`)
	if err != nil {
		_ = tx.Rollback()
		return nil, errors.Wrap(err, "failed to prepare upsert")
	}
	defer func() { _ = stmt.Close() }()

	now := r.clock.Now().UTC().UnixMilli()
	for _, rec := range records {
		if _, err := stmt.ExecContext(ctx, string(rec.kind), rec.slug, rec.name, string(rec.data), now); err != nil {
			_ = tx.Rollback()
			return nil, errors.Wrapf(err, "failed to upsert %s %q", rec.kind, rec.name)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, errors.Wrap(err, "failed to commit records")
	}

	return &PutOutput{Stored: len(records)}, nil
}

// ListNames returns the names of every record of a kind
func (r *SQLiteRepository) ListNames(ctx context.Context, input *ListNamesInput) (*ListNamesOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateKind(input.Kind); err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT name FROM catalog_records WHERE kind = ? ORDER BY name", string(input.Kind))
	if err != nil {
		return nil, errors.Wrap(err, "failed to list names")
	}
	defer func() { _ = rows.Close() }()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, errors.Wrap(err, "failed to scan name")
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate names")
	}

	return &ListNamesOutput{Names: names}, nil
}

// Get returns the stored JSON for one record
func (r *SQLiteRepository) Get(ctx context.Context, input *GetInput) (*GetOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateKind(input.Kind); err != nil {
		return nil, err
	}
	slug := Slug(input.Name)
	if slug == "" {
		return nil, errors.InvalidArgument(errNameEmpty)
	}

	var data string
	err := r.db.QueryRowContext(ctx,
		"SELECT data FROM catalog_records WHERE kind = ? AND slug = ?", string(input.Kind), slug,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.NotFoundf("%s %q not found", input.Kind, input.Name)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to get record")
	}

	return &GetOutput{Data: []byte(data)}, nil
}
