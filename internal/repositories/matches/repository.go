package matches

//go:generate mockgen -destination=mock/mock_repository.go -package=mockmatchrepo -source=repository.go

import (
	"context"
	"time"

	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/presentation"
)

// Status is where a match is in its life
type Status string

const (
	StatusActive  Status = "active"
	StatusOver    Status = "over"
	StatusAborted Status = "aborted"
)

// Match is the registry record of a running or finished match
type Match struct {
	ID string
	// ChannelID is the surface the match is played on
	ChannelID string
	Status    Status
	Winner    string
	Reason    string
	CreatedAt time.Time
	UpdatedAt time.Time

	// Board is the last board the match published
	Board *presentation.BoardView
}

// IsActive reports whether the match still takes input
func (m *Match) IsActive() bool {
	return m.Status == StatusActive
}

// Repository defines the interface for match storage operations
type Repository interface {
	// Create stores a new match
	Create(ctx context.Context, match *Match) error

	// Get retrieves a match by ID
	Get(ctx context.Context, id string) (*Match, error)

	// Update modifies an existing match
	Update(ctx context.Context, match *Match) error

	// Delete removes a match
	Delete(ctx context.Context, id string) error

	// GetActiveByChannel retrieves the active match for a channel, nil when
	// there is none
	GetActiveByChannel(ctx context.Context, channelID string) (*Match, error)

	// List returns every match, newest first
	List(ctx context.Context) ([]*Match, error)
}
