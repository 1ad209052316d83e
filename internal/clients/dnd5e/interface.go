package dnd5e

//go:generate mockgen -destination=mock/mock_client.go -package=mockdnd5e -source=interface.go

import "context"

// Client looks up flavour data for the arena
type Client interface {
	// MonsterNames returns count monster names of the given challenge rating
	MonsterNames(ctx context.Context, challengeRating float64, count int) ([]string, error)
}
