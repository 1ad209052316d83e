package game_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/dice"
	mockdice "github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/dice/mock"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/domain/character"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/domain/game"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/domain/shared"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/testutils"
)

type GameTestSuite struct {
	suite.Suite
	roller  *mockdice.ManualMockRoller
	players []*character.Player
	game    *game.Game
}

func (s *GameTestSuite) SetupTest() {
	s.roller = mockdice.NewManualMockRoller()
	s.players = testutils.CreateTestPlayers(s.T(),
		character.ClassBarbarian,
		character.ClassFighter,
		character.ClassPaladin,
		character.ClassPalemaster,
	)

	g, err := game.New(s.roller, s.players, nil)
	s.Require().NoError(err)
	s.Require().NoError(g.Setup())
	s.game = g
}

func (s *GameTestSuite) TestSetupPlacesPlayersInCorners() {
	for i, p := range s.players {
		s.Equal(game.StartPositions[i], p.Coordinates())
		s.Equal(p, s.game.PlayerAt(game.StartPositions[i]))
	}
	s.ErrorIs(s.game.Setup(), game.ErrAlreadySetUp)
}

func (s *GameTestSuite) TestNextPlayerSkipsDead() {
	s.players[1].ModifyHealth(-1000)
	s.players[3].ModifyHealth(-1000)

	var seq []int
	for i := 0; i < 6; i++ {
		s.Require().NoError(s.game.NextPlayer())
		seq = append(seq, s.game.CurrentPlayer().Index())
	}

	s.Equal([]int{0, 2, 0, 2, 0, 2}, seq)
}

func (s *GameTestSuite) TestNextPlayerNoLivingPlayers() {
	s.Require().NoError(s.game.NextPlayer())
	for _, p := range s.players {
		p.ModifyHealth(-1000)
	}
	s.ErrorIs(s.game.NextPlayer(), game.ErrNoLivingPlayers)
	s.Equal(0, s.game.AlivePlayers())
}

func (s *GameTestSuite) TestAttackRoundWithAdvantage() {
	// Barbarian prefers Fighter: 22 + 10 + 5 = 37 against AC 24
	s.roller.SetRolls([]int{7, 10})

	margin, err := s.game.AttackRound(s.players[0], s.players[1])
	s.Require().NoError(err)

	s.Equal(13, margin)
	s.Equal(260-13, s.players[1].Health())
}

func (s *GameTestSuite) TestAttackRoundIsDirectional() {
	// Fighter does not prefer Barbarian: 20 + 1 = 21 against AC 21
	s.roller.SetRolls([]int{7, 1})

	margin, err := s.game.AttackRound(s.players[1], s.players[0])
	s.Require().NoError(err)

	s.Equal(0, margin)
	s.Equal(300, s.players[0].Health(), "a zero margin is a miss")
}

func (s *GameTestSuite) TestAttackRoundMissReturnsNegative() {
	// Paladin prefers Palemaster: 18 + 1 + 5 = 24 against AC 35
	s.roller.SetRolls([]int{3, 1})

	margin, err := s.game.AttackRound(s.players[2], s.players[3])
	s.Require().NoError(err)

	s.Equal(-11, margin)
	s.Equal(200, s.players[3].Health())
}

func (s *GameTestSuite) TestAttackRoundCritical() {
	// (22 + 20) * 2 + 5 = 89 against AC 24
	s.roller.SetRolls([]int{20})

	margin, err := s.game.AttackRound(s.players[0], s.players[1])
	s.Require().NoError(err)

	s.Equal(65, margin)
}

func (s *GameTestSuite) TestAttackRoundRollerError() {
	_, err := s.game.AttackRound(s.players[0], s.players[1])
	s.Error(err)
	s.Equal(260, s.players[1].Health())
}

func (s *GameTestSuite) TestRestCurrentPlayer() {
	s.False(s.game.RestCurrentPlayer(), "nobody is current before start")

	s.Require().NoError(s.game.NextPlayer())
	p := s.game.CurrentPlayer()

	s.False(s.game.RestCurrentPlayer())
	s.Equal(p.HealthLimit(), p.Health())

	p.ModifyHealth(-1)
	s.True(s.game.RestCurrentPlayer())
	s.Equal(p.HealthLimit(), p.Health(), "rest clamps at the limit")

	p.ModifyHealth(-100)
	s.True(s.game.RestCurrentPlayer())
	s.Equal(p.HealthLimit()-100+p.RestAmount(), p.Health())
}

func (s *GameTestSuite) TestMoveCurrentPlayer() {
	s.ErrorIs(s.game.MoveCurrentPlayer(shared.Pt(2, 2)), game.ErrNotStarted)

	s.Require().NoError(s.game.NextPlayer())
	s.Require().NoError(s.game.MoveCurrentPlayer(shared.Pt(2, 2)))

	s.Nil(s.game.OccupantAt(shared.Pt(1, 1)))
	s.Equal(s.players[0], s.game.PlayerAt(shared.Pt(2, 2)))

	s.Require().NoError(s.game.MovePlayer(0, shared.Pt(-5, 3)))
	s.Equal(shared.OffMap, s.players[0].Coordinates())

	s.ErrorIs(s.game.MovePlayer(7, shared.Pt(2, 2)), game.ErrPlayerNotFound)
}

func (s *GameTestSuite) TestSnapshot() {
	s.Require().NoError(s.game.NextPlayer())
	snap := s.game.Snapshot()

	s.Equal(0, snap.Current)
	s.Require().Len(snap.Players, 4)
	s.Equal("Merlin", snap.Players[3].Name)
	s.Equal(character.ClassPalemaster, snap.Players[3].Class)
	s.Equal(game.StartPositions[3], snap.Players[3].Position)
	s.Empty(snap.Monsters)
}

func TestGameTestSuite(t *testing.T) {
	suite.Run(t, new(GameTestSuite))
}

func TestNew_Validation(t *testing.T) {
	roller := dice.NewSeededRoller(1)
	players := testutils.CreateTestPlayers(t, character.ClassBarbarian, character.ClassFighter, character.ClassPaladin, character.ClassSorcerer)

	_, err := game.New(roller, players[:3], nil)
	assert.ErrorIs(t, err, game.ErrInvalidRoster)

	swapped := []*character.Player{players[1], players[0], players[2], players[3]}
	_, err = game.New(roller, swapped, nil)
	assert.ErrorIs(t, err, game.ErrInvalidRoster)

	monsters := make([]*character.Monster, game.MaxMonsters+1)
	for i := range monsters {
		monsters[i] = character.NewMonster("")
	}
	_, err = game.New(roller, players, monsters)
	assert.ErrorIs(t, err, game.ErrTooManyMonsters)

	g, err := game.New(roller, players, monsters[:game.MaxMonsters])
	require.NoError(t, err)
	require.NoError(t, g.Setup(), "a full arena still seeds")
}

func TestPlayerDuelsTerminate(t *testing.T) {
	classes := character.PlayableClasses

	for _, a := range classes {
		for _, b := range classes {
			t.Run(a.String()+"_vs_"+b.String(), func(t *testing.T) {
				players := testutils.CreateTestPlayers(t, a, b, character.ClassPaladin, character.ClassSorcerer)
				g, err := game.New(dice.NewSeededRoller(int64(a)*10+int64(b)), players, nil)
				require.NoError(t, err)

				off, def := players[0], players[1]
				for i := 0; i < 100000 && !off.IsDead() && !def.IsDead(); i++ {
					_, err := g.AttackRound(off, def)
					require.NoError(t, err)
					off, def = def, off
				}

				assert.True(t, players[0].IsDead() != players[1].IsDead(), "exactly one side dies")
			})
		}
	}
}
