package character

import (
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/dice"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/domain/shared"
)

// MonsterIndex is the index every monster carries
const MonsterIndex = -1

// Combatant is anything that can stand on the grid and fight
type Combatant interface {
	Name() string
	Class() ClassType
	Index() int
	Health() int
	HealthLimit() int
	AC() int
	AB() int
	AttackRounds() int
	RestAmount() int
	Preferred() [2]ClassType
	Coordinates() shared.Point
	SetCoordinates(p shared.Point)
	IsDead() bool
	IsPlayer() bool
	ModifyHealth(delta int) int

	// AttackRoll rolls this combatant's attack before any class advantage
	AttackRoll(r dice.Roller) (int, error)
}

// Character is the record shared by players and monsters. It is not safe for
// concurrent use; the owning game serialises access.
type Character struct {
	class       ClassType
	index       int
	name        string
	health      int
	stats       Stats
	coordinates shared.Point
	dead        bool
}

func newCharacter(class ClassType, name string, index int) Character {
	stats := class.Stats()
	return Character{
		class:       class,
		index:       index,
		name:        name,
		health:      stats.HealthLimit,
		stats:       stats,
		coordinates: shared.OffMap,
	}
}

func (c *Character) Name() string              { return c.name }
func (c *Character) Class() ClassType          { return c.class }
func (c *Character) Index() int                { return c.index }
func (c *Character) Health() int               { return c.health }
func (c *Character) HealthLimit() int          { return c.stats.HealthLimit }
func (c *Character) AC() int                   { return c.stats.AC }
func (c *Character) AB() int                   { return c.stats.AB }
func (c *Character) AttackRounds() int         { return c.stats.AttackRounds }
func (c *Character) RestAmount() int           { return c.stats.RestAmount }
func (c *Character) Preferred() [2]ClassType   { return c.stats.Preferred }
func (c *Character) Coordinates() shared.Point { return c.coordinates }
func (c *Character) IsDead() bool              { return c.dead }

// SetCoordinates records where the grid placed the character
func (c *Character) SetCoordinates(p shared.Point) {
	c.coordinates = p.Normalize()
}

// ModifyHealth adds delta to health, clamped to [0, HealthLimit]. Reaching
// zero marks the character dead for good; the dead are never healed.
func (c *Character) ModifyHealth(delta int) int {
	if c.dead {
		return 0
	}

	c.health += delta
	if c.health > c.stats.HealthLimit {
		c.health = c.stats.HealthLimit
	}
	if c.health <= 0 {
		c.health = 0
		c.dead = true
	}
	return c.health
}

// Prefers reports whether this character holds a class advantage over other
func (c *Character) Prefers(other Combatant) bool {
	return c.class.Prefers(other.Class())
}
