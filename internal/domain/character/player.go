package character

import (
	"strings"

	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/dice"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/errors"
)

// MaxPlayers is the fixed roster size
const MaxPlayers = 4

// Player is a user controlled combatant
type Player struct {
	Character
}

// NewPlayer creates a player at full health with the given roster index
func NewPlayer(class ClassType, name string, index int) (*Player, error) {
	if class == ClassMonster || !class.Valid() {
		return nil, errors.InvalidArgumentf("class %s is not playable", class)
	}
	if index < 0 || index >= MaxPlayers {
		return nil, errors.InvalidArgumentf("player index %d out of range", index)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.InvalidArgumentf("player %d needs a name", index+1)
	}

	return &Player{Character: newCharacter(class, name, index)}, nil
}

// IsPlayer implements Combatant
func (p *Player) IsPlayer() bool { return true }

// AttackRoll rolls a d20. A natural 20 doubles AB+20; anything else is
// AB plus a fresh 1..19.
func (p *Player) AttackRoll(r dice.Roller) (int, error) {
	d20, err := r.Roll(1, 20, 0)
	if err != nil {
		return 0, err
	}
	if d20.IsCrit {
		return (p.AB() + 20) * 2, nil
	}

	roll, err := r.Roll(1, 19, p.AB())
	if err != nil {
		return 0, err
	}
	return roll.Total, nil
}
