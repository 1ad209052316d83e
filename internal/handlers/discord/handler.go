// Package discord runs arena matches in Discord channels
package discord

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/config"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/domain/game"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/domain/shared"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/errors"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/events"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/logging"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/services/arena"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/services/match"
)

const commandName = "arena"

// Messenger is the part of *discordgo.Session the handler talks to
type Messenger interface {
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
	InteractionResponseEdit(interaction *discordgo.Interaction, newresp *discordgo.WebhookEdit, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Handler handles all Discord interactions
type Handler struct {
	messenger Messenger
	matches   match.Service
	arena     config.ArenaConfig
	logger    *zap.Logger

	// sinks holds the sink of the match running in each channel
	mu    sync.Mutex
	sinks map[string]*ChannelSink
}

// HandlerConfig holds configuration for the Discord handler
type HandlerConfig struct {
	Messenger    Messenger     // Required
	MatchService match.Service // Required
	Bus          *events.Bus   // Required
	// Arena supplies defaults for /arena start
	Arena  config.ArenaConfig
	Logger *zap.Logger
}

// NewHandler creates a new Discord handler and subscribes it to the events
// that end a turn.
func NewHandler(cfg *HandlerConfig) *Handler {
	if cfg.Messenger == nil {
		panic("messenger is required")
	}
	if cfg.MatchService == nil {
		panic("match service is required")
	}
	if cfg.Bus == nil {
		panic("bus is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.L()
	}

	h := &Handler{
		messenger: cfg.Messenger,
		matches:   cfg.MatchService,
		arena:     cfg.Arena,
		logger:    logger.Named("discord"),
		sinks:     make(map[string]*ChannelSink),
	}

	poster := events.NewListener("discord-board", events.PrioritySurface, h.handleEvent)
	for _, t := range []events.EventType{
		events.EventTypeTurnStarted,
		events.EventTypeMatchOver,
		events.EventTypeMatchAborted,
	} {
		cfg.Bus.Subscribe(t, poster)
	}
	return h
}

// Commands returns the slash commands the handler serves
func Commands() []*discordgo.ApplicationCommand {
	minMonsters := float64(0)
	minCoord := float64(1)

	return []*discordgo.ApplicationCommand{
		{
			Name:        commandName,
			Description: "Epic Arena PvP matches",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "start",
					Description: "Start a match in this channel",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "monsters",
							Description: "Hidden monsters (default from config)",
							MinValue:    &minMonsters,
							MaxValue:    game.MaxMonsters,
						},
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "players",
							Description: "Four name:class entries, comma separated",
						},
					},
				},
				{
					Name:        "move",
					Description: "Move to or attack a cell",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "x",
							Description: "Column",
							Required:    true,
							MinValue:    &minCoord,
							MaxValue:    shared.GridWidth,
						},
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "y",
							Description: "Row",
							Required:    true,
							MinValue:    &minCoord,
							MaxValue:    shared.GridHeight,
						},
					},
				},
				{
					Name:        "rest",
					Description: "Rest instead of moving",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
				},
				{
					Name:        "board",
					Description: "Show the board",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
				},
				{
					Name:        "end",
					Description: "End the match in this channel",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
				},
			},
		},
	}
}

// RegisterCommands registers all slash commands with Discord
func (h *Handler) RegisterCommands(s *discordgo.Session, appID, guildID string) error {
	for _, cmd := range Commands() {
		if _, err := s.ApplicationCommandCreate(appID, guildID, cmd); err != nil {
			return fmt.Errorf("failed to create command %s: %w", cmd.Name, err)
		}
		h.logger.Info("registered command", zap.String("command", cmd.Name), zap.String("guild_id", guildID))
	}
	return nil
}

// HandleInteraction is the discordgo interaction callback
func (h *Handler) HandleInteraction(_ *discordgo.Session, i *discordgo.InteractionCreate) {
	h.Handle(context.Background(), i)
}

// Handle routes an interaction
func (h *Handler) Handle(ctx context.Context, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		h.handleCommand(ctx, i)
	case discordgo.InteractionMessageComponent:
		h.handleComponent(ctx, i)
	}
}

func (h *Handler) handleCommand(ctx context.Context, i *discordgo.InteractionCreate) {
	data := i.ApplicationCommandData()
	if data.Name != commandName || len(data.Options) == 0 {
		return
	}

	sub := data.Options[0]
	var err error
	switch sub.Name {
	case "start":
		err = h.handleStart(ctx, i, sub.Options)
	case "move":
		err = h.handleMove(ctx, i, sub.Options)
	case "rest":
		err = h.handleRest(ctx, i)
	case "board":
		err = h.handleBoard(ctx, i)
	case "end":
		err = h.handleEnd(ctx, i)
	default:
		return
	}
	if err != nil {
		h.logger.Error("failed to handle command",
			zap.String("subcommand", sub.Name),
			zap.String("channel_id", i.ChannelID),
			zap.Error(err))
	}
}

func (h *Handler) handleComponent(ctx context.Context, i *discordgo.InteractionCreate) {
	action, ok := parseCustomID(i.MessageComponentData().CustomID)
	if !ok {
		return
	}

	m, err := h.matches.GetActiveMatch(ctx, i.ChannelID)
	if err != nil {
		h.logIfFailed(h.replyEphemeral(i, errorText(err)))
		return
	}

	var outcome arena.Outcome
	if action.Action == actionRest {
		outcome, err = h.matches.Rest(ctx, m.ID)
	} else {
		outcome, err = h.matches.Click(ctx, m.ID, action.Point)
	}
	if err != nil {
		h.logIfFailed(h.replyEphemeral(i, errorText(err)))
		return
	}

	if text := outcomeText(outcome); text != "" {
		h.logIfFailed(h.replyEphemeral(i, text))
		return
	}
	// The board post for the next turn is the visible answer
	h.logIfFailed(h.messenger.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredMessageUpdate,
	}))
}

// claimChannel reserves the channel's sink for a new match
func (h *Handler) claimChannel(ctx context.Context, channelID string) (*ChannelSink, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, busy := h.sinks[channelID]; busy {
		if _, err := h.matches.GetActiveMatch(ctx, channelID); err == nil {
			return nil, errors.AlreadyExistsf("a match is already running in this channel")
		}
	}

	sink := NewChannelSink()
	h.sinks[channelID] = sink
	return sink, nil
}

// releaseChannel drops the sink if it is still the one registered
func (h *Handler) releaseChannel(channelID string, sink *ChannelSink) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if current, ok := h.sinks[channelID]; ok && (sink == nil || current == sink) {
		delete(h.sinks, channelID)
	}
}

func (h *Handler) sink(channelID string) *ChannelSink {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.sinks[channelID]
}

func (h *Handler) replyEphemeral(i *discordgo.InteractionCreate, content string) error {
	return h.messenger.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}

func (h *Handler) reply(i *discordgo.InteractionCreate, content string) error {
	return h.messenger.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Content: content},
	})
}

func (h *Handler) logIfFailed(err error) {
	if err != nil {
		h.logger.Warn("failed to respond to interaction", zap.Error(err))
	}
}

func outcomeText(o arena.Outcome) string {
	switch o {
	case arena.OutcomeIgnored:
		return "❌ That cell can't be used right now."
	case arena.OutcomeRestRejected:
		return "❌ " + arena.RestRejected
	case arena.OutcomeExchangeStarted:
		return "⚔️ Battle!"
	default:
		return ""
	}
}

func errorText(err error) string {
	switch {
	case errors.IsNotFound(err):
		return "❌ No match is running in this channel. Use `/arena start`."
	case errors.Is(err, errors.CodeAlreadyExists):
		return "❌ A match is already running in this channel."
	case errors.IsValidation(err), errors.IsInvalidArgument(err):
		return "❌ " + err.Error()
	default:
		return "❌ Something went wrong: " + err.Error()
	}
}

func optionInt(opts []*discordgo.ApplicationCommandInteractionDataOption, name string) (int, bool) {
	for _, opt := range opts {
		if opt.Name == name && opt.Type == discordgo.ApplicationCommandOptionInteger {
			return int(opt.IntValue()), true
		}
	}
	return 0, false
}

func optionString(opts []*discordgo.ApplicationCommandInteractionDataOption, name string) string {
	for _, opt := range opts {
		if opt.Name == name && opt.Type == discordgo.ApplicationCommandOptionString {
			return strings.TrimSpace(opt.StringValue())
		}
	}
	return ""
}
