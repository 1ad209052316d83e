package game

// GameError is a sentinel error raised by the game model
type GameError string

func (e GameError) Error() string {
	return string(e)
}

const (
	ErrCellOccupied     GameError = "cell occupied by another combatant"
	ErrAlreadySeeded    GameError = "monsters already seeded"
	ErrNotEnoughCells   GameError = "not enough free cells for monsters"
	ErrNoLivingPlayers  GameError = "no living players"
	ErrNotStarted       GameError = "game not started"
	ErrInvalidRoster    GameError = "invalid roster"
	ErrPlayerNotFound   GameError = "player not found"
	ErrAlreadySetUp     GameError = "game already set up"
	ErrTooManyMonsters  GameError = "too many monsters"
	ErrUnknownCombatant GameError = "combatant does not belong to this game"
)
