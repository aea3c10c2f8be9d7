package catalog_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-compendium/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-compendium/internal/errors"
	"github.com/KirkDiggler/rpg-compendium/internal/repositories/catalog"
	"github.com/KirkDiggler/rpg-compendium/internal/testutils"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	mr      *miniredis.Miniredis
	cleanup func()
	repo    catalog.Repository
	ctx     context.Context
}

func TestRedisRepositorySuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	client, mr, cleanup := testutils.CreateTestRedisServer(s.T())
	s.mr = mr
	s.cleanup = cleanup
	s.ctx = context.Background()

	repo, err := catalog.NewRedisRepository(&catalog.RedisConfig{Client: client})
	s.Require().NoError(err)
	s.repo = repo
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.cleanup()
}

func (s *RedisRepositoryTestSuite) TestNewRequiresClient() {
	_, err := catalog.NewRedisRepository(&catalog.RedisConfig{})
	s.Require().Error(err)
	s.Assert().True(errors.IsInvalidArgument(err))
}

func (s *RedisRepositoryTestSuite) TestPutMonsters() {
	dragon := dnd5e.NewMonster()
	dragon.Name = "Ancient Red Dragon"
	goblin := dnd5e.NewMonster()
	goblin.Name = "Goblin"

	out, err := s.repo.PutMonsters(s.ctx, &catalog.PutMonstersInput{
		Monsters: []*dnd5e.Monster{dragon, nil, goblin},
	})
	s.Require().NoError(err)
	s.Assert().Equal(2, out.Stored)

	s.Assert().True(s.mr.Exists("compendium:monster:ancient-red-dragon"))
	members, err := s.mr.Members("compendium:monsters")
	s.Require().NoError(err)
	s.Assert().ElementsMatch([]string{"Ancient Red Dragon", "Goblin"}, members)

	got, err := s.repo.Get(s.ctx, &catalog.GetInput{Kind: catalog.KindMonster, Name: "ancient red dragon"})
	s.Require().NoError(err)

	var decoded dnd5e.Monster
	s.Require().NoError(json.Unmarshal(got.Data, &decoded))
	s.Assert().Equal("Ancient Red Dragon", decoded.Name)
}

func (s *RedisRepositoryTestSuite) TestPutIsIdempotent() {
	spell := dnd5e.NewSpell("Fire Bolt")
	input := &catalog.PutSpellsInput{Spells: []*dnd5e.Spell{spell}}

	_, err := s.repo.PutSpells(s.ctx, input)
	s.Require().NoError(err)
	_, err = s.repo.PutSpells(s.ctx, input)
	s.Require().NoError(err)

	out, err := s.repo.ListNames(s.ctx, &catalog.ListNamesInput{Kind: catalog.KindSpell})
	s.Require().NoError(err)
	s.Assert().Equal([]string{"Fire Bolt"}, out.Names)
}

func (s *RedisRepositoryTestSuite) TestListNamesSorted() {
	_, err := s.repo.PutSpells(s.ctx, &catalog.PutSpellsInput{Spells: []*dnd5e.Spell{
		dnd5e.NewSpell("Shield"), dnd5e.NewSpell("Acid Splash"), dnd5e.NewSpell("Bless"),
	}})
	s.Require().NoError(err)

	out, err := s.repo.ListNames(s.ctx, &catalog.ListNamesInput{Kind: catalog.KindSpell})
	s.Require().NoError(err)
	s.Assert().Equal([]string{"Acid Splash", "Bless", "Shield"}, out.Names)

	out, err = s.repo.ListNames(s.ctx, &catalog.ListNamesInput{Kind: catalog.KindMonster})
	s.Require().NoError(err)
	s.Assert().Empty(out.Names)
}

func (s *RedisRepositoryTestSuite) TestValidation() {
	testCases := []struct {
		name string
		call func() error
	}{
		{
			name: "unknown kind",
			call: func() error {
				_, err := s.repo.ListNames(s.ctx, &catalog.ListNamesInput{Kind: "item"})
				return err
			},
		},
		{
			name: "nameless record",
			call: func() error {
				_, err := s.repo.PutSpells(s.ctx, &catalog.PutSpellsInput{Spells: []*dnd5e.Spell{dnd5e.NewSpell("  ")}})
				return err
			},
		},
		{
			name: "nil input",
			call: func() error {
				_, err := s.repo.PutMonsters(s.ctx, nil)
				return err
			},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.Assert().True(errors.IsInvalidArgument(tc.call()))
		})
	}
}

func (s *RedisRepositoryTestSuite) TestGetNotFound() {
	_, err := s.repo.Get(s.ctx, &catalog.GetInput{Kind: catalog.KindSpell, Name: "Wish"})
	s.Assert().True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestServerDown() {
	s.mr.Close()

	_, err := s.repo.PutSpells(s.ctx, &catalog.PutSpellsInput{Spells: []*dnd5e.Spell{dnd5e.NewSpell("Shield")}})
	s.Require().Error(err)
	s.Assert().True(errors.IsUnavailable(err))
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "ancient-red-dragon", catalog.Slug("Ancient Red Dragon"))
	assert.Equal(t, "swarm-of-bats", catalog.Slug("  Swarm of Bats! "))
	assert.Equal(t, "tasha-s-hideous-laughter", catalog.Slug("Tasha’s Hideous Laughter"))
	assert.Equal(t, "", catalog.Slug("---"))
}
