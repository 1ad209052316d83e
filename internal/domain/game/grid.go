package game

import (
	"fmt"

	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/dice"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/domain/character"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/domain/shared"
)

// Grid tracks which combatant stands on which cell. The reverse lookup is the
// combatant's own coordinates, which Place keeps in step.
type Grid struct {
	cells  [shared.GridWidth][shared.GridHeight]character.Combatant
	seeded bool
}

// NewGrid returns an empty grid
func NewGrid() *Grid {
	return &Grid{}
}

func (g *Grid) at(p shared.Point) character.Combatant {
	if !p.InBounds() {
		return nil
	}
	return g.cells[p.X-1][p.Y-1]
}

func (g *Grid) set(p shared.Point, c character.Combatant) {
	g.cells[p.X-1][p.Y-1] = c
}

// Place moves c to p. Out of range points become OffMap. Placing onto a cell
// held by someone else fails and leaves everything untouched.
func (g *Grid) Place(c character.Combatant, p shared.Point) (shared.Point, error) {
	p = p.Normalize()

	if occupant := g.at(p); occupant != nil && occupant != c {
		return c.Coordinates(), fmt.Errorf("%w: %s at %s", ErrCellOccupied, occupant.Name(), p)
	}

	g.Remove(c)
	if p.InBounds() {
		g.set(p, c)
	}
	c.SetCoordinates(p)
	return p, nil
}

// Remove takes c off the grid
func (g *Grid) Remove(c character.Combatant) {
	prev := c.Coordinates()
	if g.at(prev) == c {
		g.set(prev, nil)
	}
	c.SetCoordinates(shared.OffMap)
}

// OccupantAt returns whoever stands on p, or nil. OffMap is never occupied.
func (g *Grid) OccupantAt(p shared.Point) character.Combatant {
	return g.at(p.Normalize())
}

// PlayerAt narrows OccupantAt to players
func (g *Grid) PlayerAt(p shared.Point) *character.Player {
	player, _ := g.OccupantAt(p).(*character.Player)
	return player
}

// MonsterAt narrows OccupantAt to monsters
func (g *Grid) MonsterAt(p shared.Point) *character.Monster {
	monster, _ := g.OccupantAt(p).(*character.Monster)
	return monster
}

// FreeSeedCells counts the unoccupied cells outside the safe zone
func (g *Grid) FreeSeedCells() int {
	n := 0
	for x := 1; x <= shared.GridWidth; x++ {
		for y := 1; y <= shared.GridHeight; y++ {
			p := shared.Pt(x, y)
			if !p.InSafeZone() && g.at(p) == nil {
				n++
			}
		}
	}
	return n
}

// SeedMonsters drops each monster on a random free cell outside the safe zone
// by rejection sampling. It may run once per grid, before anyone moves.
func (g *Grid) SeedMonsters(monsters []*character.Monster, roller dice.Roller) error {
	if g.seeded {
		return ErrAlreadySeeded
	}
	if free := g.FreeSeedCells(); len(monsters) > free {
		return fmt.Errorf("%w: %d monsters, %d cells", ErrNotEnoughCells, len(monsters), free)
	}

	for _, m := range monsters {
		for {
			x, err := roller.Roll(1, shared.GridWidth, 0)
			if err != nil {
				return fmt.Errorf("failed to roll monster column: %w", err)
			}
			y, err := roller.Roll(1, shared.GridHeight, 0)
			if err != nil {
				return fmt.Errorf("failed to roll monster row: %w", err)
			}

			p := shared.Pt(x.Total, y.Total)
			if p.InSafeZone() || g.at(p) != nil {
				continue
			}
			if _, err := g.Place(m, p); err != nil {
				return err
			}
			break
		}
	}

	g.seeded = true
	return nil
}
