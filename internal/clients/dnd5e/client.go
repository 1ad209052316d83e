package dnd5e

import (
	"context"
	"fmt"
	"net/http"

	"github.com/fadedpez/dnd5e-api/clients/dnd5e"
	"golang.org/x/sync/errgroup"

	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/dice"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/errors"
)

// maxLookups bounds concurrent monster detail requests
const maxLookups = 4

type client struct {
	client dnd5e.Interface
	roller dice.Roller
}

type Config struct {
	HttpClient *http.Client
	// Roller picks which monsters to name; nil uses a random roller
	Roller dice.Roller
}

func New(cfg *Config) (Client, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("cfg is required")
	}

	dndClient, err := dnd5e.NewDND5eAPI(&dnd5e.DND5eAPIConfig{
		Client: cfg.HttpClient,
	})
	if err != nil {
		return nil, err
	}

	roller := cfg.Roller
	if roller == nil {
		roller = dice.NewRandomRoller()
	}

	return &client{
		client: dndClient,
		roller: roller,
	}, nil
}

// MonsterNames lists monsters of one challenge rating and fetches the names
// of a random pick of them. The same monster may be picked more than once.
func (c *client) MonsterNames(ctx context.Context, challengeRating float64, count int) ([]string, error) {
	if count <= 0 {
		return nil, nil
	}

	// The API filters by exact CR only
	cr := challengeRating
	refs, err := c.client.ListMonstersWithFilter(&dnd5e.ListMonstersInput{
		ChallengeRating: &cr,
	})
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to list monsters")
	}

	keys := make([]string, 0, len(refs))
	for _, ref := range refs {
		if ref.Key != "" {
			keys = append(keys, ref.Key)
		}
	}
	if len(keys) == 0 {
		return nil, errors.NotFoundf("no monsters with challenge rating %g", challengeRating)
	}

	picked, err := pickKeys(keys, count, c.roller)
	if err != nil {
		return nil, err
	}

	names := make([]string, len(picked))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxLookups)
	for i, key := range picked {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			monster, err := c.client.GetMonster(key)
			if err != nil {
				return fmt.Errorf("failed to get monster %s: %w", key, err)
			}
			if monster == nil || monster.Name == "" {
				return fmt.Errorf("monster %s has no name", key)
			}
			names[i] = monster.Name
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to look up monster names")
	}
	return names, nil
}

func pickKeys(keys []string, count int, roller dice.Roller) ([]string, error) {
	picked := make([]string, 0, count)
	for len(picked) < count {
		roll, err := roller.Roll(1, len(keys), 0)
		if err != nil {
			return nil, fmt.Errorf("failed to pick monster: %w", err)
		}
		picked = append(picked, keys[roll.Total-1])
	}
	return picked, nil
}
