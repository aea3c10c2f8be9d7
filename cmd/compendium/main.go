// Package main is the entry point for the compendium extractor
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-compendium/internal/config"
	"github.com/KirkDiggler/rpg-compendium/internal/errors"
)

var (
	envFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "compendium",
	Short: "Extract D&D 5e monsters and spells from plain-text corpora",
	Long: `compendium turns plain-text monster stat blocks and spell entries into
structured JSON for the campaign UI, and can publish the records to a
Redis or SQLite catalog.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(errors.ExitCode(err))
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&envFile, "env-file", config.DefaultEnvFile, "dotenv file read before the environment")
	flags.String("report", "", "write a YAML failure report to this path")
	flags.String("redis-addr", "", "publish records to the Redis catalog at host:port")
	flags.String("sqlite", "", "publish records to the SQLite catalog at this path")
	flags.String("log-level", "", "debug, info, warn or error")

	rootCmd.AddCommand(monstersCmd)
	rootCmd.AddCommand(spellsCmd)
}

// loadConfig builds cfg from the environment and applies any flags the
// user set explicitly, then installs the logger.
func loadConfig(cmd *cobra.Command, _ []string) error {
	loaded, err := config.Load(envFile)
	if err != nil {
		return err
	}

	overrides := map[string]*string{
		"report":     &loaded.Report,
		"redis-addr": &loaded.RedisAddr,
		"sqlite":     &loaded.SQLitePath,
		"log-level":  &loaded.LogLevel,
	}
	for name, target := range overrides {
		if cmd.Flags().Changed(name) {
			value, err := cmd.Flags().GetString(name)
			if err != nil {
				return errors.WrapWithCodef(err, errors.CodeInvalidArgument, "failed to read --%s", name)
			}
			*target = value
		}
	}

	cfg = loaded
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})))

	return nil
}
