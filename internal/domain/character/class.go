package character

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/errors"
)

// ClassType is a combatant class. The integer order is the setup selection index.
type ClassType int

const (
	ClassBarbarian ClassType = iota
	ClassFighter
	ClassPaladin
	ClassPalemaster
	ClassSorcerer
	ClassMonster
)

// PlayableClasses lists the classes a player may pick, in selection order
var PlayableClasses = []ClassType{
	ClassBarbarian,
	ClassFighter,
	ClassPaladin,
	ClassPalemaster,
	ClassSorcerer,
}

// Stats is the fixed stat tuple of a class
type Stats struct {
	HealthLimit  int
	AC           int
	AB           int
	AttackRounds int
	RestAmount   int
	Preferred    [2]ClassType
}

var classStats = map[ClassType]Stats{
	ClassBarbarian:  {HealthLimit: 300, AC: 21, AB: 22, AttackRounds: 2, RestAmount: 50, Preferred: [2]ClassType{ClassFighter, ClassPalemaster}},
	ClassFighter:    {HealthLimit: 260, AC: 24, AB: 20, AttackRounds: 2, RestAmount: 20, Preferred: [2]ClassType{ClassPaladin, ClassSorcerer}},
	ClassPaladin:    {HealthLimit: 220, AC: 25, AB: 18, AttackRounds: 3, RestAmount: 35, Preferred: [2]ClassType{ClassBarbarian, ClassPalemaster}},
	ClassPalemaster: {HealthLimit: 200, AC: 35, AB: 17, AttackRounds: 1, RestAmount: 40, Preferred: [2]ClassType{ClassPaladin, ClassSorcerer}},
	ClassSorcerer:   {HealthLimit: 175, AC: 30, AB: 25, AttackRounds: 1, RestAmount: 60, Preferred: [2]ClassType{ClassFighter, ClassBarbarian}},
	ClassMonster:    {HealthLimit: 100, AC: 25, AB: 20, AttackRounds: 1, RestAmount: 10, Preferred: [2]ClassType{ClassMonster, ClassMonster}},
}

var classNames = map[ClassType]string{
	ClassBarbarian:  "Barbarian",
	ClassFighter:    "Fighter",
	ClassPaladin:    "Paladin",
	ClassPalemaster: "Palemaster",
	ClassSorcerer:   "Sorcerer",
	ClassMonster:    "Monster",
}

// String returns the display name of the class
func (c ClassType) String() string {
	if name, ok := classNames[c]; ok {
		return name
	}
	return fmt.Sprintf("ClassType(%d)", int(c))
}

// Valid reports whether c is a known class
func (c ClassType) Valid() bool {
	_, ok := classStats[c]
	return ok
}

// Stats returns the stat tuple for the class
func (c ClassType) Stats() Stats {
	return classStats[c]
}

// Prefers reports whether c is advantaged against other
func (c ClassType) Prefers(other ClassType) bool {
	p := classStats[c].Preferred
	return p[0] == other || p[1] == other
}

// ClassTypeFromIndex converts a setup selection index into a playable class
func ClassTypeFromIndex(index int) (ClassType, error) {
	if index < 0 || index >= len(PlayableClasses) {
		return 0, errors.InvalidArgumentf("class index %d out of range [0, %d)", index, len(PlayableClasses))
	}
	return PlayableClasses[index], nil
}

// ParseClassType accepts a class name (case-insensitive) or a selection index
func ParseClassType(s string) (ClassType, error) {
	s = strings.TrimSpace(s)
	if index, err := strconv.Atoi(s); err == nil {
		return ClassTypeFromIndex(index)
	}

	for _, c := range PlayableClasses {
		if strings.EqualFold(c.String(), s) {
			return c, nil
		}
	}
	// Pale master is spelled both ways
	if strings.EqualFold(strings.ReplaceAll(s, " ", ""), "palemaster") {
		return ClassPalemaster, nil
	}

	return 0, errors.InvalidArgumentf("unknown class %q", s)
}
