package catalog

import (
	"context"
	"sort"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/rpg-compendium/internal/errors"
	redisclient "github.com/KirkDiggler/rpg-compendium/internal/redis"
)

const (
	// Key pattern: compendium:{kind}:{slug}
	recordKeyPrefix = "compendium:"
)

// RedisConfig holds the configuration for the Redis repository
type RedisConfig struct {
	Client redisclient.Client
}

// Validate ensures all required dependencies are provided
func (c *RedisConfig) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}
	if c.Client == nil {
		return errors.InvalidArgument("redis client is required")
	}
	return nil
}

type redisRepository struct {
	client redisclient.Client
}

// NewRedisRepository creates a catalog backed by Redis. Each record is a
// JSON string under compendium:<kind>:<slug> and the names of a kind are
// kept in the set compendium:<kind>s.
func NewRedisRepository(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &redisRepository{client: cfg.Client}, nil
}

// Ensure redisRepository implements Repository
var _ Repository = (*redisRepository)(nil)

func (r *redisRepository) PutMonsters(ctx context.Context, input *PutMonstersInput) (*PutOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	records, err := monsterRecords(input.Monsters)
	if err != nil {
		return nil, err
	}
	return r.put(ctx, KindMonster, records)
}

func (r *redisRepository) PutSpells(ctx context.Context, input *PutSpellsInput) (*PutOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	records, err := spellRecords(input.Spells)
	if err != nil {
		return nil, err
	}
	return r.put(ctx, KindSpell, records)
}

func (r *redisRepository) put(ctx context.Context, kind Kind, records []record) (*PutOutput, error) {
	if len(records) == 0 {
		return &PutOutput{}, nil
	}

	pipe := r.client.TxPipeline()
	for _, rec := range records {
		pipe.Set(ctx, r.recordKey(kind, rec.slug), rec.data, 0)
		pipe.SAdd(ctx, r.indexKey(kind), rec.name)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeUnavailable, "failed to publish %ss to Redis", kind)
	}

	return &PutOutput{Stored: len(records)}, nil
}

func (r *redisRepository) ListNames(ctx context.Context, input *ListNamesInput) (*ListNamesOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateKind(input.Kind); err != nil {
		return nil, err
	}

	names, err := r.client.SMembers(ctx, r.indexKey(input.Kind)).Result()
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to list names from Redis")
	}
	sort.Strings(names)

	return &ListNamesOutput{Names: names}, nil
}

func (r *redisRepository) Get(ctx context.Context, input *GetInput) (*GetOutput, error) {
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

	data, err := r.client.Get(ctx, r.recordKey(input.Kind, slug)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("%s %q not found", input.Kind, input.Name)
		}
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to get record from Redis")
	}

	return &GetOutput{Data: data}, nil
}

func (r *redisRepository) recordKey(kind Kind, slug string) string {
	return recordKeyPrefix + string(kind) + ":" + slug
}

func (r *redisRepository) indexKey(kind Kind) string {
	return recordKeyPrefix + string(kind) + "s"
}
