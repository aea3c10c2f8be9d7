package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-compendium/internal/config"
	"github.com/KirkDiggler/rpg-compendium/internal/errors"
	"github.com/KirkDiggler/rpg-compendium/internal/orchestrators/extraction"
	"github.com/KirkDiggler/rpg-compendium/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-compendium/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-compendium/internal/redis"
	"github.com/KirkDiggler/rpg-compendium/internal/repositories/catalog"
)

var monstersCmd = &cobra.Command{
	Use:   "monsters",
	Short: "Extract monster stat blocks",
	Long: `Segment a monster corpus on "!Category!" and "###" markers, parse every
stat block and write them as a JSON array.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runExtraction(cmd, func(c *config.Config) (string, string) {
			return c.MonstersInput, c.MonstersOutput
		}, func(ctx context.Context, svc extraction.Service, in *extraction.ExtractInput) error {
			_, err := svc.ExtractMonsters(ctx, in)
			return err
		})
	},
}

var spellsCmd = &cobra.Command{
	Use:   "spells",
	Short: "Extract spell entries",
	Long: `Scan a spell corpus entry by entry, finalize every spell that has a
description and write them as a JSON array.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runExtraction(cmd, func(c *config.Config) (string, string) {
			return c.SpellsInput, c.SpellsOutput
		}, func(ctx context.Context, svc extraction.Service, in *extraction.ExtractInput) error {
			_, err := svc.ExtractSpells(ctx, in)
			return err
		})
	},
}

func init() {
	for _, cmd := range []*cobra.Command{monstersCmd, spellsCmd} {
		cmd.Flags().String("input", "", "plain-text corpus to read")
		cmd.Flags().String("output", "", "JSON file to write")
	}
}

type pathsFunc func(*config.Config) (input, output string)

type extractFunc func(context.Context, extraction.Service, *extraction.ExtractInput) error

func runExtraction(cmd *cobra.Command, paths pathsFunc, extract extractFunc) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	input, output := paths(cfg)
	if cmd.Flags().Changed("input") {
		input, _ = cmd.Flags().GetString("input")
	}
	if cmd.Flags().Changed("output") {
		output, _ = cmd.Flags().GetString("output")
	}

	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, "invalid config")
	}

	repo, closeRepo, err := openCatalog(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeRepo()

	svc, err := extraction.NewOrchestrator(&extraction.Config{
		Clock:       clock.New(),
		IDGenerator: idgen.NewUUID(""),
		Catalog:     repo,
	})
	if err != nil {
		return err
	}

	return extract(ctx, svc, &extraction.ExtractInput{
		InputPath:  input,
		OutputPath: output,
		ReportPath: cfg.Report,
	})
}

// openCatalog returns the configured catalog store, or nil when publishing
// is disabled. The returned func releases the store.
func openCatalog(ctx context.Context, c *config.Config) (catalog.Repository, func(), error) {
	switch {
	case c.RedisAddr != "":
		client, err := redis.NewClient(c.RedisAddr, &redis.Options{UseTLS: c.RedisTLS})
		if err != nil {
			return nil, nil, err
		}
		if err := redis.Ping(ctx, client); err != nil {
			_ = client.Close()
			return nil, nil, err
		}
		repo, err := catalog.NewRedisRepository(&catalog.RedisConfig{Client: client})
		if err != nil {
			_ = client.Close()
			return nil, nil, err
		}
		return repo, func() { _ = client.Close() }, nil

	case c.SQLitePath != "":
		repo, err := catalog.NewSQLiteRepository(ctx, &catalog.SQLiteConfig{
			Path:  c.SQLitePath,
			Clock: clock.New(),
		})
		if err != nil {
			return nil, nil, err
		}
		return repo, func() { _ = repo.Close() }, nil

	default:
		return nil, func() {}, nil
	}
}
