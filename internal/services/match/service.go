package match

//go:generate mockgen -destination=mock/mock_service.go -package=mockmatch -source=service.go

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/actors"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/clients/dnd5e"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/dice"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/domain/character"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/domain/game"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/domain/shared"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/errors"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/events"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/logging"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/presentation"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/repositories/matches"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/services/arena"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/services/round"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/uuid"
)

// DefaultMonsterCR is the challenge rating monster names are drawn from
const DefaultMonsterCR = 1.0

// Service defines the match service interface
type Service interface {
	// CreateMatch validates the setup and starts a match
	CreateMatch(ctx context.Context, input *CreateMatchInput) (*matches.Match, error)

	// GetMatch retrieves a match by ID
	GetMatch(ctx context.Context, matchID string) (*matches.Match, error)

	// GetActiveMatch retrieves the running match of a channel
	GetActiveMatch(ctx context.Context, channelID string) (*matches.Match, error)

	// ListMatches lists every match, newest first
	ListMatches(ctx context.Context) ([]*matches.Match, error)

	// Click activates a cell for the current player
	Click(ctx context.Context, matchID string, p shared.Point) (arena.Outcome, error)

	// Rest rests the current player
	Rest(ctx context.Context, matchID string) (arena.Outcome, error)

	// Board returns the live board, or the last published one once the
	// match has stopped
	Board(ctx context.Context, matchID string) (presentation.BoardView, error)

	// EndMatch stops a match and frees its channel
	EndMatch(ctx context.Context, matchID string) error
}

// PlayerInput is one roster entry. Class is a class name or a selection
// index.
type PlayerInput struct {
	Name  string
	Class string
}

// CreateMatchInput contains data for creating a match
type CreateMatchInput struct {
	ChannelID string
	Monsters  int
	Players   []PlayerInput
	// Sink receives the match's visible effects
	Sink presentation.Sink
	// Seed fixes the dice when non-zero
	Seed int64
	// OnFatal is called when the match aborts. Optional.
	OnFatal actors.FatalHandler
}

type service struct {
	repository     matches.Repository
	runtime        *actors.Runtime
	bus            *events.Bus
	uuidGenerator  uuid.Generator
	monsterNames   dnd5e.Client
	monsterCR      float64
	pacer          round.Pacer
	revealMonsters bool
	now            func() time.Time
	logger         *zap.Logger
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Repository matches.Repository // Required
	Runtime    *actors.Runtime    // Required
	Bus        *events.Bus        // Required

	UUIDGenerator  uuid.Generator // Optional, will use default if nil
	MonsterNames   dnd5e.Client   // Optional, monsters keep the default name if nil
	MonsterCR      float64        // Optional, DefaultMonsterCR if zero
	Pacer          round.Pacer    // Optional, round.DefaultPace if nil
	RevealMonsters bool
	Now            func() time.Time // Optional
	Logger         *zap.Logger      // Optional
}

// NewService creates a new match service and registers it on the bus to
// keep match records current.
func NewService(cfg *ServiceConfig) Service {
	if cfg.Repository == nil {
		panic("repository is required")
	}
	if cfg.Runtime == nil {
		panic("runtime is required")
	}
	if cfg.Bus == nil {
		panic("bus is required")
	}

	svc := &service{
		repository:     cfg.Repository,
		runtime:        cfg.Runtime,
		bus:            cfg.Bus,
		uuidGenerator:  cfg.UUIDGenerator,
		monsterNames:   cfg.MonsterNames,
		monsterCR:      cfg.MonsterCR,
		pacer:          cfg.Pacer,
		revealMonsters: cfg.RevealMonsters,
		now:            cfg.Now,
		logger:         cfg.Logger,
	}
	if svc.uuidGenerator == nil {
		svc.uuidGenerator = uuid.NewGoogleUUIDGenerator()
	}
	if svc.monsterCR == 0 {
		svc.monsterCR = DefaultMonsterCR
	}
	if svc.now == nil {
		svc.now = time.Now
	}
	if svc.logger == nil {
		svc.logger = logging.L()
	}
	svc.logger = svc.logger.Named("match")

	svc.bus.SubscribeAll(events.NewListener("match-registry", events.PriorityState, svc.handleEvent))
	return svc
}

// CreateMatch validates the setup and starts a match
func (s *service) CreateMatch(ctx context.Context, input *CreateMatchInput) (*matches.Match, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input cannot be nil")
	}
	if input.Sink == nil {
		return nil, errors.InvalidArgument("sink is required")
	}
	if strings.TrimSpace(input.ChannelID) == "" {
		return nil, errors.InvalidArgument("channel ID is required")
	}
	if input.Monsters < 0 || input.Monsters > game.MaxMonsters {
		return nil, errors.Validationf("monster count must be between 0 and %d, got %d", game.MaxMonsters, input.Monsters)
	}

	existing, err := s.repository.GetActiveByChannel(ctx, input.ChannelID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to check for a running match")
	}
	if existing != nil {
		return nil, errors.AlreadyExistsf("a match is already running in this channel").
			WithMeta("match_id", existing.ID)
	}

	players, err := buildPlayers(input.Players)
	if err != nil {
		return nil, err
	}

	roller := dice.NewRandomRoller()
	if input.Seed != 0 {
		roller = dice.NewSeededRoller(input.Seed)
	}

	g, err := game.New(roller, players, s.buildMonsters(ctx, input.Monsters))
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeValidation, "invalid match setup")
	}

	matchID := s.uuidGenerator.New()
	now := s.now()
	record := &matches.Match{
		ID:        matchID,
		ChannelID: input.ChannelID,
		Status:    matches.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repository.Create(ctx, record); err != nil {
		return nil, errors.Wrap(err, "failed to create match").
			WithMeta("match_id", matchID)
	}

	ctrl, err := arena.NewController(&arena.Config{
		MatchID:        matchID,
		Game:           g,
		Sink:           input.Sink,
		Events:         s.bus,
		Pacer:          s.pacer,
		MusicRoller:    roller,
		RevealMonsters: s.revealMonsters,
		Logger:         s.logger,
	})
	if err != nil {
		s.markAborted(ctx, matchID, err)
		return nil, err
	}

	if err := s.runtime.StartMatch(ctx, matchID, ctrl, input.OnFatal); err != nil {
		s.markAborted(ctx, matchID, err)
		if stopErr := s.runtime.StopMatch(ctx, matchID); stopErr != nil && !errors.IsNotFound(stopErr) {
			s.logger.Warn("failed to stop match actor", zap.String("match_id", matchID), zap.Error(stopErr))
		}
		return nil, errors.Wrap(err, "failed to start match").
			WithMeta("match_id", matchID)
	}

	s.logger.Info("match started",
		zap.String("match_id", matchID),
		zap.String("channel_id", input.ChannelID),
		zap.Int("monsters", input.Monsters))

	return s.repository.Get(ctx, matchID)
}

func buildPlayers(inputs []PlayerInput) ([]*character.Player, error) {
	if len(inputs) != character.MaxPlayers {
		return nil, errors.Validationf("exactly %d players are required, got %d", character.MaxPlayers, len(inputs))
	}

	players := make([]*character.Player, len(inputs))
	for i, in := range inputs {
		class, err := character.ParseClassType(in.Class)
		if err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "invalid class").
				WithMeta("player", i+1)
		}
		p, err := character.NewPlayer(class, in.Name, i)
		if err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "invalid player").
				WithMeta("player", i+1)
		}
		players[i] = p
	}
	return players, nil
}

// buildMonsters names monsters from the flavour client when there is one.
// Lookup failures fall back to the default name.
func (s *service) buildMonsters(ctx context.Context, n int) []*character.Monster {
	var names []string
	if s.monsterNames != nil && n > 0 {
		var err error
		names, err = s.monsterNames.MonsterNames(ctx, s.monsterCR, n)
		if err != nil {
			s.logger.Warn("monster names unavailable, using defaults", zap.Error(err))
			names = nil
		}
	}

	monsters := make([]*character.Monster, n)
	for i := range monsters {
		name := ""
		if i < len(names) {
			name = names[i]
		}
		monsters[i] = character.NewMonster(name)
	}
	return monsters
}

// GetMatch retrieves a match by ID
func (s *service) GetMatch(ctx context.Context, matchID string) (*matches.Match, error) {
	if strings.TrimSpace(matchID) == "" {
		return nil, errors.InvalidArgument("match ID is required")
	}

	m, err := s.repository.Get(ctx, matchID)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get match '%s'", matchID).
			WithMeta("match_id", matchID)
	}
	return m, nil
}

// GetActiveMatch retrieves the running match of a channel
func (s *service) GetActiveMatch(ctx context.Context, channelID string) (*matches.Match, error) {
	m, err := s.repository.GetActiveByChannel(ctx, channelID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get active match")
	}
	if m == nil {
		return nil, errors.NotFoundf("no match is running in this channel").
			WithMeta("channel_id", channelID)
	}
	return m, nil
}

// ListMatches lists every match, newest first
func (s *service) ListMatches(ctx context.Context) ([]*matches.Match, error) {
	return s.repository.List(ctx)
}

// Click activates a cell for the current player
func (s *service) Click(ctx context.Context, matchID string, p shared.Point) (arena.Outcome, error) {
	return s.runtime.Click(ctx, matchID, p)
}

// Rest rests the current player
func (s *service) Rest(ctx context.Context, matchID string) (arena.Outcome, error) {
	return s.runtime.Rest(ctx, matchID)
}

// Board returns the live board, or the last published one
func (s *service) Board(ctx context.Context, matchID string) (presentation.BoardView, error) {
	board, err := s.runtime.Snapshot(ctx, matchID)
	if err == nil {
		return board, nil
	}
	if !errors.IsNotFound(err) {
		return presentation.BoardView{}, err
	}

	m, getErr := s.GetMatch(ctx, matchID)
	if getErr != nil {
		return presentation.BoardView{}, getErr
	}
	if m.Board == nil {
		return presentation.BoardView{}, errors.NotFoundf("match %s has no board", matchID)
	}
	return *m.Board, nil
}

// EndMatch stops a match and frees its channel
func (s *service) EndMatch(ctx context.Context, matchID string) error {
	m, err := s.GetMatch(ctx, matchID)
	if err != nil {
		return err
	}

	if board, err := s.runtime.Snapshot(ctx, matchID); err == nil {
		m.Board = &board
	}
	if err := s.runtime.StopMatch(ctx, matchID); err != nil && !errors.IsNotFound(err) {
		return errors.Wrap(err, "failed to stop match")
	}

	if m.IsActive() {
		m.Status = matches.StatusAborted
		m.Reason = "ended"
	}
	m.UpdatedAt = s.now()
	if err := s.repository.Update(ctx, m); err != nil {
		return errors.Wrap(err, "failed to update match")
	}

	s.logger.Info("match ended", zap.String("match_id", matchID))
	return nil
}

// handleEvent keeps the match record in step with the controller. It runs
// on the match actor.
func (s *service) handleEvent(e *events.Event) error {
	ctx := context.Background()

	m, err := s.repository.Get(ctx, e.MatchID)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil
		}
		return err
	}

	if e.Board != nil {
		m.Board = e.Board
	}
	switch e.Type {
	case events.EventTypeMatchOver:
		m.Status = matches.StatusOver
		m.Winner = e.Winner
	case events.EventTypeMatchAborted:
		m.Status = matches.StatusAborted
		m.Reason = e.Reason
	}
	m.UpdatedAt = s.now()

	return s.repository.Update(ctx, m)
}

func (s *service) markAborted(ctx context.Context, matchID string, cause error) {
	m, err := s.repository.Get(ctx, matchID)
	if err != nil {
		return
	}
	if m.Status != matches.StatusActive {
		return
	}
	m.Status = matches.StatusAborted
	m.Reason = cause.Error()
	m.UpdatedAt = s.now()
	if err := s.repository.Update(ctx, m); err != nil {
		s.logger.Warn("failed to mark match aborted", zap.String("match_id", matchID), zap.Error(err))
	}
}
