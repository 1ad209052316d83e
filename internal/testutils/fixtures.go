package testutils

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/domain/character"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/domain/shared"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/presentation"
)

// PlayerNames are the default names handed out by CreateTestPlayers
var PlayerNames = []string{"Conan", "Xena", "Arthur", "Merlin"}

// CreateTestPlayers creates one player per class, indexed in order
func CreateTestPlayers(t testing.TB, classes ...character.ClassType) []*character.Player {
	t.Helper()
	require.LessOrEqual(t, len(classes), character.MaxPlayers)

	players := make([]*character.Player, len(classes))
	for i, c := range classes {
		p, err := character.NewPlayer(c, PlayerNames[i], i)
		require.NoError(t, err)
		players[i] = p
	}
	return players
}

// CreateTestRoster creates the usual four players
func CreateTestRoster(t testing.TB) []*character.Player {
	t.Helper()
	return CreateTestPlayers(t,
		character.ClassBarbarian,
		character.ClassFighter,
		character.ClassPaladin,
		character.ClassSorcerer,
	)
}

// CreateTestBoard builds a start-of-match board: players in the corners,
// one monster at (5,1) and the first player's surroundings highlighted.
func CreateTestBoard() presentation.BoardView {
	board := presentation.BoardView{
		MatchID: "match-1",
		Width:   shared.GridWidth,
		Height:  shared.GridHeight,
		Cells:   make([][]presentation.CellView, shared.GridWidth),
		Current: 0,
		State:   "waiting",
	}
	for x := 1; x <= shared.GridWidth; x++ {
		board.Cells[x-1] = make([]presentation.CellView, shared.GridHeight)
		for y := 1; y <= shared.GridHeight; y++ {
			board.Cells[x-1][y-1] = presentation.CellView{X: x, Y: y, Icon: presentation.IconEmpty}
		}
	}

	corners := []shared.Point{shared.Pt(1, 1), shared.Pt(14, 1), shared.Pt(1, 11), shared.Pt(14, 11)}
	classes := []character.ClassType{character.ClassBarbarian, character.ClassFighter, character.ClassPaladin, character.ClassSorcerer}
	for i, p := range corners {
		cell := &board.Cells[p.X-1][p.Y-1]
		cell.Icon = presentation.PlayerIcon(i)
		cell.HasPlayer = true

		stats := classes[i].Stats()
		board.Players = append(board.Players, presentation.CombatantView{
			Name:        PlayerNames[i],
			Class:       classes[i].String(),
			Index:       i,
			Player:      true,
			Health:      stats.HealthLimit,
			HealthLimit: stats.HealthLimit,
			AC:          stats.AC,
			AB:          stats.AB,
			X:           p.X,
			Y:           p.Y,
		})
	}

	board.Cells[4][0].HasMonster = true
	board.Monsters = append(board.Monsters, presentation.CombatantView{
		Name: character.DefaultMonsterName, Class: character.ClassMonster.String(),
		Index: character.MonsterIndex, Health: 100, HealthLimit: 100, AC: 25, AB: 20, X: 5, Y: 1,
	})

	board.Cells[1][0].Highlight = presentation.HighlightFree
	board.Cells[0][1].Highlight = presentation.HighlightFree
	board.Cells[1][1].Highlight = presentation.HighlightFree
	return board
}
