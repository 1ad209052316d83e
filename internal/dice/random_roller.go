package dice

import (
	"errors"
	"math/rand"
	"sync"
	"time"
)

// randomRoller implements Roller on top of a math/rand source
type randomRoller struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomRoller creates a new random dice roller seeded from the clock
func NewRandomRoller() Roller {
	return NewSeededRoller(time.Now().UnixNano())
}

// NewSeededRoller creates a roller whose sequence is fixed by seed
func NewSeededRoller(seed int64) Roller {
	return &randomRoller{rng: rand.New(rand.NewSource(seed))}
}

// Roll implements Roller.Roll
func (r *randomRoller) Roll(count, sides, bonus int) (*RollResult, error) {
	if count < 1 {
		return nil, errors.New("invalid dice count")
	}
	if sides < 1 {
		return nil, errors.New("invalid dice size")
	}

	r.mu.Lock()
	rolls := make([]int, count)
	rawTotal := 0
	for i := range rolls {
		rolls[i] = r.rng.Intn(sides) + 1
		rawTotal += rolls[i]
	}
	r.mu.Unlock()

	result := &RollResult{
		Total:    rawTotal + bonus,
		Rolls:    rolls,
		Bonus:    bonus,
		Count:    count,
		Sides:    sides,
		RawTotal: rawTotal,
	}

	// Check for crit/fumble on d20
	if count == 1 && sides == 20 {
		result.IsCrit = rolls[0] == 20
		result.IsFumble = rolls[0] == 1
	}

	return result, nil
}
