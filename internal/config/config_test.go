package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-compendium/internal/config"
	"github.com/KirkDiggler/rpg-compendium/internal/errors"
)

type ConfigTestSuite struct {
	suite.Suite
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (s *ConfigTestSuite) TestDefaults() {
	cfg, err := config.Load("")
	s.Require().NoError(err)

	s.Assert().Equal("data/monsters.txt", cfg.MonstersInput)
	s.Assert().Equal("data/monsters-legendary.json", cfg.MonstersOutput)
	s.Assert().Equal("data/spells.txt", cfg.SpellsInput)
	s.Assert().Equal("data/spells.json", cfg.SpellsOutput)
	s.Assert().Empty(cfg.RedisAddr)
	s.Assert().Equal("info", cfg.LogLevel)
	s.Assert().NoError(cfg.Validate())
}

func (s *ConfigTestSuite) TestEnvironment() {
	s.T().Setenv("COMPENDIUM_SPELLS_OUTPUT", "out/spells.json")
	s.T().Setenv("COMPENDIUM_REDIS_ADDR", "localhost:6379")
	s.T().Setenv("COMPENDIUM_LOG_LEVEL", "debug")
	s.T().Setenv("COMPENDIUM_REDIS_TLS", "true")

	cfg, err := config.Load("")
	s.Require().NoError(err)

	s.Assert().Equal("out/spells.json", cfg.SpellsOutput)
	s.Assert().Equal("localhost:6379", cfg.RedisAddr)
	s.Assert().True(cfg.RedisTLS)
	s.Assert().Equal(slog.LevelDebug, cfg.SlogLevel())
}

func (s *ConfigTestSuite) TestEnvFile() {
	path := filepath.Join(s.T().TempDir(), "test.env")
	s.Require().NoError(os.WriteFile(path, []byte("COMPENDIUM_SQLITE_PATH=catalog.db\n"), 0o600))
	s.T().Cleanup(func() { _ = os.Unsetenv("COMPENDIUM_SQLITE_PATH") })

	cfg, err := config.Load(path)
	s.Require().NoError(err)
	s.Assert().Equal("catalog.db", cfg.SQLitePath)
}

func (s *ConfigTestSuite) TestMissingEnvFileIsIgnored() {
	_, err := config.Load(filepath.Join(s.T().TempDir(), "absent.env"))
	s.Assert().NoError(err)
}

func (s *ConfigTestSuite) TestValidate() {
	testCases := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(*config.Config) {}},
		{name: "upper case level", mutate: func(c *config.Config) { c.LogLevel = "WARN" }},
		{name: "unknown level", mutate: func(c *config.Config) { c.LogLevel = "loud" }, wantErr: true},
		{name: "missing output", mutate: func(c *config.Config) { c.MonstersOutput = " " }, wantErr: true},
		{name: "one catalog store", mutate: func(c *config.Config) { c.SQLitePath = "catalog.db" }},
		{
			name: "two catalog stores",
			mutate: func(c *config.Config) {
				c.SQLitePath = "catalog.db"
				c.RedisAddr = "localhost:6379"
			},
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			cfg := &config.Config{
				MonstersInput:  "m.txt",
				MonstersOutput: "m.json",
				SpellsInput:    "s.txt",
				SpellsOutput:   "s.json",
				LogLevel:       "info",
			}
			tc.mutate(cfg)

			err := cfg.Validate()
			if tc.wantErr {
				s.Require().Error(err)
				s.Assert().True(errors.IsInvalidArgument(err))
				return
			}
			s.Assert().NoError(err)
		})
	}
}
