package character

import (
	"strings"

	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/dice"
)

// DefaultMonsterName is used when no flavour name is supplied
const DefaultMonsterName = "Monster"

// Monster is a passive occupant that only fights when a player walks into it
type Monster struct {
	Character
}

// NewMonster creates a monster. An empty name falls back to DefaultMonsterName.
func NewMonster(name string) *Monster {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultMonsterName
	}
	return &Monster{Character: newCharacter(ClassMonster, name, MonsterIndex)}
}

// IsPlayer implements Combatant
func (m *Monster) IsPlayer() bool { return false }

// AttackRoll is AB plus a flat 5..20 with no critical
func (m *Monster) AttackRoll(r dice.Roller) (int, error) {
	roll, err := r.Roll(1, 16, m.AB()+4)
	if err != nil {
		return 0, err
	}
	return roll.Total, nil
}
