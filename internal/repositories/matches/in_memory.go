package matches

import (
	"context"
	"sort"
	"sync"

	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/errors"
)

type inMemoryRepository struct {
	mu        sync.RWMutex
	matches   map[string]*Match
	byChannel map[string][]string // channelID -> match IDs
}

// NewInMemoryRepository creates a new in-memory match repository
func NewInMemoryRepository() Repository {
	return &inMemoryRepository{
		matches:   make(map[string]*Match),
		byChannel: make(map[string][]string),
	}
}

// Create stores a new match
func (r *inMemoryRepository) Create(ctx context.Context, match *Match) error {
	if match == nil || match.ID == "" {
		return errors.InvalidArgument("match ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.matches[match.ID]; exists {
		return errors.AlreadyExistsf("match with ID %s already exists", match.ID)
	}

	r.matches[match.ID] = clone(match)
	r.byChannel[match.ChannelID] = append(r.byChannel[match.ChannelID], match.ID)
	return nil
}

// Get retrieves a match by ID
func (r *inMemoryRepository) Get(ctx context.Context, id string) (*Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	match, exists := r.matches[id]
	if !exists {
		return nil, errors.NotFoundf("match not found: %s", id)
	}
	return clone(match), nil
}

// Update modifies an existing match
func (r *inMemoryRepository) Update(ctx context.Context, match *Match) error {
	if match == nil {
		return errors.InvalidArgument("match is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	old, exists := r.matches[match.ID]
	if !exists {
		return errors.NotFoundf("match not found: %s", match.ID)
	}
	if old.ChannelID != match.ChannelID {
		return errors.InvalidArgumentf("match %s cannot change channel", match.ID)
	}

	r.matches[match.ID] = clone(match)
	return nil
}

// Delete removes a match
func (r *inMemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	match, exists := r.matches[id]
	if !exists {
		return errors.NotFoundf("match not found: %s", id)
	}
	delete(r.matches, id)

	ids := r.byChannel[match.ChannelID]
	for i, mid := range ids {
		if mid == id {
			r.byChannel[match.ChannelID] = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	if len(r.byChannel[match.ChannelID]) == 0 {
		delete(r.byChannel, match.ChannelID)
	}
	return nil
}

// GetActiveByChannel retrieves the active match for a channel
func (r *inMemoryRepository) GetActiveByChannel(ctx context.Context, channelID string) (*Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.byChannel[channelID] {
		if match, exists := r.matches[id]; exists && match.IsActive() {
			return clone(match), nil
		}
	}
	return nil, nil
}

// List returns every match, newest first
func (r *inMemoryRepository) List(ctx context.Context) ([]*Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Match, 0, len(r.matches))
	for _, match := range r.matches {
		out = append(out, clone(match))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// clone copies the record; boards are never mutated once published
func clone(m *Match) *Match {
	c := *m
	return &c
}
