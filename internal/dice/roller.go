package dice

//go:generate mockgen -destination=mock/mock_roller.go -package=mockdice -source=roller.go

// RollResult contains the outcome of a single roll
type RollResult struct {
	Total    int   // Sum of all dice plus bonus
	Rolls    []int // Individual die results
	Bonus    int
	Count    int
	Sides    int
	RawTotal int // Sum of dice without bonus
	IsCrit   bool
	IsFumble bool
}

// Roller provides an interface for rolling dice
// This allows us to inject different implementations for testing
type Roller interface {
	// Roll rolls a number of dice with the given sides and adds a bonus
	Roll(count, sides, bonus int) (*RollResult, error)
}
