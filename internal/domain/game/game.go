// Package game holds the authoritative match state: roster, grid and turn cursor.
package game

import (
	"fmt"
	"sync"

	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/dice"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/domain/character"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/domain/shared"
)

// AdvantageBonus is added to an attack against a preferred class
const AdvantageBonus = 5

// MaxMonsters is the number of cells outside the safe zone once the four
// players stand in the corners.
const MaxMonsters = 87

// StartPositions are the corners players start in, by roster index
var StartPositions = [character.MaxPlayers]shared.Point{
	{X: 1, Y: 1},
	{X: shared.GridWidth, Y: 1},
	{X: 1, Y: shared.GridHeight},
	{X: shared.GridWidth, Y: shared.GridHeight},
}

// Game owns the roster, the grid and whose turn it is. All mutation goes
// through its methods, which take the lock.
type Game struct {
	mu       sync.RWMutex
	players  []*character.Player
	monsters []*character.Monster
	grid     *Grid
	roller   dice.Roller
	current  int
	setUp    bool
}

// New validates the roster and returns a game that has not been set up yet
func New(roller dice.Roller, players []*character.Player, monsters []*character.Monster) (*Game, error) {
	if roller == nil {
		return nil, fmt.Errorf("%w: roller is required", ErrInvalidRoster)
	}
	if len(players) != character.MaxPlayers {
		return nil, fmt.Errorf("%w: need %d players, got %d", ErrInvalidRoster, character.MaxPlayers, len(players))
	}
	for i, p := range players {
		if p == nil || p.Index() != i {
			return nil, fmt.Errorf("%w: player at position %d has the wrong index", ErrInvalidRoster, i)
		}
	}
	if len(monsters) > MaxMonsters {
		return nil, fmt.Errorf("%w: %d (max %d)", ErrTooManyMonsters, len(monsters), MaxMonsters)
	}

	return &Game{
		players:  append([]*character.Player(nil), players...),
		monsters: append([]*character.Monster(nil), monsters...),
		grid:     NewGrid(),
		roller:   roller,
		current:  -1,
	}, nil
}

// Setup puts the players in their corners and seeds the monsters
func (g *Game) Setup() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.setUp {
		return ErrAlreadySetUp
	}

	for i, p := range g.players {
		if _, err := g.grid.Place(p, StartPositions[i]); err != nil {
			return fmt.Errorf("failed to place %s: %w", p.Name(), err)
		}
	}
	if err := g.grid.SeedMonsters(g.monsters, g.roller); err != nil {
		return err
	}

	g.setUp = true
	return nil
}

// MovePlayer places the indexed player on p (OffMap when out of range)
func (g *Game) MovePlayer(index int, p shared.Point) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	player := g.player(index)
	if player == nil {
		return fmt.Errorf("%w: %d", ErrPlayerNotFound, index)
	}
	_, err := g.grid.Place(player, p)
	return err
}

// MoveCurrentPlayer places the current player on p
func (g *Game) MoveCurrentPlayer(p shared.Point) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.current < 0 {
		return ErrNotStarted
	}
	_, err := g.grid.Place(g.players[g.current], p)
	return err
}

// RemoveMonster takes a monster off the grid
func (g *Game) RemoveMonster(m *character.Monster) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.grid.Remove(m)
}

// NextPlayer advances the cursor to the next living player. The first call
// selects player 0.
func (g *Game) NextPlayer() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.current < 0 {
		g.current = 0
		return nil
	}
	if g.alivePlayers() == 0 {
		return ErrNoLivingPlayers
	}

	for {
		g.current = (g.current + 1) % len(g.players)
		if !g.players[g.current].IsDead() {
			return nil
		}
	}
}

// RestCurrentPlayer heals the current player by their class rest amount. It
// does nothing and returns false when they are already at full health.
func (g *Game) RestCurrentPlayer() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.current < 0 {
		return false
	}
	p := g.players[g.current]
	if p.Health() == p.HealthLimit() {
		return false
	}
	p.ModifyHealth(p.RestAmount())
	return true
}

// AttackRound rolls one attack of offender against defender. The roll gets
// AdvantageBonus when the defender's class is one the offender prefers.
// Damage is applied only when the roll beats the defender's AC, but the
// margin is returned either way.
func (g *Game) AttackRound(offender, defender character.Combatant) (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	roll, err := offender.AttackRoll(g.roller)
	if err != nil {
		return 0, fmt.Errorf("failed to roll attack for %s: %w", offender.Name(), err)
	}
	if offender.Class().Prefers(defender.Class()) {
		roll += AdvantageBonus
	}

	margin := roll - defender.AC()
	if margin > 0 {
		defender.ModifyHealth(-margin)
	}
	return margin, nil
}

// AlivePlayers counts players that are not dead
func (g *Game) AlivePlayers() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.alivePlayers()
}

func (g *Game) alivePlayers() int {
	n := 0
	for _, p := range g.players {
		if !p.IsDead() {
			n++
		}
	}
	return n
}

// CurrentPlayer returns whose turn it is, or nil before the first NextPlayer
func (g *Game) CurrentPlayer() *character.Player {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if g.current < 0 {
		return nil
	}
	return g.players[g.current]
}

// Player returns the player with the given index, or nil when out of range
func (g *Game) Player(index int) *character.Player {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.player(index)
}

func (g *Game) player(index int) *character.Player {
	if index < 0 || index >= len(g.players) {
		return nil
	}
	return g.players[index]
}

// Players returns the roster in index order
func (g *Game) Players() []*character.Player {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return append([]*character.Player(nil), g.players...)
}

// Monsters returns every monster, slain or not
func (g *Game) Monsters() []*character.Monster {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return append([]*character.Monster(nil), g.monsters...)
}

// OccupantAt returns whoever stands on p
func (g *Game) OccupantAt(p shared.Point) character.Combatant {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.grid.OccupantAt(p)
}

// PlayerAt returns the player on p, or nil
func (g *Game) PlayerAt(p shared.Point) *character.Player {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.grid.PlayerAt(p)
}

// MonsterAt returns the monster on p, or nil
func (g *Game) MonsterAt(p shared.Point) *character.Monster {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.grid.MonsterAt(p)
}

// State reads a combatant under the lock
func (g *Game) State(c character.Combatant) CombatantState {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return stateOf(c)
}

// IsDead reads the dead flag under the lock
func (g *Game) IsDead(c character.Combatant) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return c.IsDead()
}
