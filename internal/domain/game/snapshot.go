package game

import (
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/domain/character"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/domain/shared"
)

// CombatantState is a copy of a combatant's visible state
type CombatantState struct {
	Name        string
	Class       character.ClassType
	Index       int
	Player      bool
	Health      int
	HealthLimit int
	AC          int
	AB          int
	Position    shared.Point
	Dead        bool
}

// Snapshot is a consistent copy of the whole game
type Snapshot struct {
	Players  []CombatantState
	Monsters []CombatantState
	// Current is the index of the player whose turn it is, -1 before start
	Current int
}

func stateOf(c character.Combatant) CombatantState {
	return CombatantState{
		Name:        c.Name(),
		Class:       c.Class(),
		Index:       c.Index(),
		Player:      c.IsPlayer(),
		Health:      c.Health(),
		HealthLimit: c.HealthLimit(),
		AC:          c.AC(),
		AB:          c.AB(),
		Position:    c.Coordinates(),
		Dead:        c.IsDead(),
	}
}

// Snapshot copies the game under a read lock
func (g *Game) Snapshot() Snapshot {
	g.mu.RLock()
	defer g.mu.RUnlock()

	s := Snapshot{
		Players:  make([]CombatantState, 0, len(g.players)),
		Monsters: make([]CombatantState, 0, len(g.monsters)),
		Current:  g.current,
	}
	for _, p := range g.players {
		s.Players = append(s.Players, stateOf(p))
	}
	for _, m := range g.monsters {
		s.Monsters = append(s.Monsters, stateOf(m))
	}
	return s
}
