package actors_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/actors"
	mockdice "github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/dice/mock"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/domain/character"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/domain/game"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/domain/shared"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/errors"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/presentation"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/services/arena"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/services/round"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/testutils"
)

// newController builds a match with monsters seeded from the leading rolls.
// Music picks come from a separate roller that alternates 1 and 2.
func newController(t *testing.T, sink presentation.Sink, monsters int, rolls ...int) *arena.Controller {
	t.Helper()

	roller := mockdice.NewManualMockRoller()
	roller.SetRolls(rolls)
	ms := make([]*character.Monster, monsters)
	for i := range ms {
		ms[i] = character.NewMonster("")
	}
	g, err := game.New(roller, testutils.CreateTestRoster(t), ms)
	require.NoError(t, err)

	music := mockdice.NewManualMockRoller()
	for i := 0; i < 20; i++ {
		music.SetNextRoll(i%2 + 1)
	}

	ctrl, err := arena.NewController(&arena.Config{
		MatchID:     "match-1",
		Game:        g,
		Sink:        sink,
		Pacer:       round.NoPacer{},
		MusicRoller: music,
		Logger:      zap.NewNop(),
	})
	require.NoError(t, err)
	return ctrl
}

func newRuntime(t *testing.T) *actors.Runtime {
	t.Helper()
	rt := actors.NewRuntime(time.Second, zap.NewNop())
	t.Cleanup(rt.Shutdown)
	return rt
}

func TestRuntime_MoveAndSnapshot(t *testing.T) {
	ctx := context.Background()
	rt := newRuntime(t)
	sink := presentation.NewRecorder()

	require.NoError(t, rt.StartMatch(ctx, "match-1", newController(t, sink, 0), nil))

	board, err := rt.Snapshot(ctx, "match-1")
	require.NoError(t, err)
	assert.Equal(t, 0, board.Current)
	assert.Equal(t, "waiting", board.State)

	out, err := rt.Click(ctx, "match-1", shared.Pt(2, 2))
	require.NoError(t, err)
	assert.Equal(t, arena.OutcomeMoved, out)

	out, err = rt.Rest(ctx, "match-1")
	require.NoError(t, err)
	assert.Equal(t, arena.OutcomeRestRejected, out)

	board, err = rt.Snapshot(ctx, "match-1")
	require.NoError(t, err)
	assert.Equal(t, 1, board.Current)
	cell, ok := board.Cell(2, 2)
	require.True(t, ok)
	assert.Equal(t, presentation.IconPlayer1, cell.Icon)
}

func TestRuntime_ExchangeResultIsApplied(t *testing.T) {
	ctx := context.Background()
	rt := newRuntime(t)
	sink := presentation.NewRecorder()

	// monster at (2,1); Conan takes 19 and crits twice
	ctrl := newController(t, sink, 1, 2, 1, 16, 20, 20)
	require.NoError(t, rt.StartMatch(ctx, "match-1", ctrl, nil))

	out, err := rt.Click(ctx, "match-1", shared.Pt(2, 1))
	require.NoError(t, err)
	assert.Equal(t, arena.OutcomeExchangeStarted, out)

	assert.Eventually(t, func() bool {
		board, err := rt.Snapshot(ctx, "match-1")
		return err == nil && board.Current == 1 && board.State == "waiting"
	}, 5*time.Second, 10*time.Millisecond)

	board, err := rt.Snapshot(ctx, "match-1")
	require.NoError(t, err)
	assert.Equal(t, 281, board.Players[0].Health)
	assert.Equal(t, 2, board.Players[0].X)
	assert.Equal(t, 1, board.Players[0].Y)
}

func TestRuntime_UnknownAndDuplicateMatches(t *testing.T) {
	ctx := context.Background()
	rt := newRuntime(t)

	_, err := rt.Click(ctx, "missing", shared.Pt(1, 1))
	assert.True(t, errors.IsNotFound(err))
	_, err = rt.Snapshot(ctx, "missing")
	assert.True(t, errors.IsNotFound(err))

	sink := presentation.NewRecorder()
	require.NoError(t, rt.StartMatch(ctx, "match-1", newController(t, sink, 0), nil))
	err = rt.StartMatch(ctx, "match-1", newController(t, sink, 0), nil)
	assert.True(t, errors.Is(err, errors.CodeAlreadyExists))

	require.NoError(t, rt.StopMatch(ctx, "match-1"))
	_, err = rt.Rest(ctx, "match-1")
	assert.True(t, errors.IsNotFound(err))
	assert.True(t, errors.IsNotFound(rt.StopMatch(ctx, "match-1")))
}

func TestRuntime_FatalErrorsReachHandler(t *testing.T) {
	ctx := context.Background()
	rt := newRuntime(t)
	sink := presentation.NewRecorder()
	sink.MusicErr = assert.AnError

	var (
		mu     sync.Mutex
		called []string
	)
	onFatal := func(matchID string, err error) {
		mu.Lock()
		defer mu.Unlock()
		called = append(called, matchID)
	}

	err := rt.StartMatch(ctx, "match-1", newController(t, sink, 0), onFatal)
	require.Error(t, err)
	assert.Equal(t, errors.ExitSetupMusic, errors.ExitCode(err))

	mu.Lock()
	assert.Equal(t, []string{"match-1"}, called)
	mu.Unlock()

	// the aborted match is forgotten and its id can be reused
	_, err = rt.Snapshot(ctx, "match-1")
	assert.True(t, errors.IsNotFound(err))
	require.NoError(t, rt.StartMatch(ctx, "match-1", newController(t, presentation.NewRecorder(), 0), nil))
}

func TestRuntime_AbortedMatchIsRetired(t *testing.T) {
	ctx := context.Background()
	rt := newRuntime(t)
	sink := presentation.NewRecorder()

	// monster at (2,1); the battle cue fails when Conan walks into it
	require.NoError(t, rt.StartMatch(ctx, "match-1", newController(t, sink, 1, 2, 1), nil))
	sink.MusicErr = assert.AnError

	out, err := rt.Click(ctx, "match-1", shared.Pt(2, 1))
	require.Error(t, err)
	assert.Equal(t, arena.OutcomeAborted, out)
	assert.Equal(t, errors.ExitMonsterBattleMusic, errors.ExitCode(err))

	_, err = rt.Snapshot(ctx, "match-1")
	assert.True(t, errors.IsNotFound(err))
	_, err = rt.Rest(ctx, "match-1")
	assert.True(t, errors.IsNotFound(err))
	assert.True(t, errors.IsNotFound(rt.StopMatch(ctx, "match-1")))
}
