package discord

import (
	"context"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/events"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/render"
)

// handleEvent posts the board when a turn starts or the match ends. It runs
// on the match actor, so it must not call back into the match runtime.
// Failures are logged and never stop the bus.
func (h *Handler) handleEvent(e *events.Event) error {
	m, err := h.matches.GetMatch(context.Background(), e.MatchID)
	if err != nil {
		h.logger.Warn("board post skipped, match unknown", zap.String("match_id", e.MatchID), zap.Error(err))
		return nil
	}

	sink := h.sink(m.ChannelID)
	var post Post
	if sink != nil {
		post = sink.Flush()
	}

	var msg *discordgo.MessageSend
	switch e.Type {
	case events.EventTypeTurnStarted, events.EventTypeMatchOver:
		if e.Board == nil {
			return nil
		}
		png, err := render.BoardPNG(e.Board, nil)
		if err != nil {
			h.logger.Warn("failed to render board", zap.String("match_id", e.MatchID), zap.Error(err))
			return nil
		}
		msg = boardMessage(e.Board, post, png, e.Type == events.EventTypeTurnStarted)
	case events.EventTypeMatchAborted:
		msg = abortedMessage(e.Reason, post)
	default:
		return nil
	}

	if e.Type != events.EventTypeTurnStarted {
		h.releaseChannel(m.ChannelID, sink)
	}

	if _, err := h.messenger.ChannelMessageSendComplex(m.ChannelID, msg); err != nil {
		h.logger.Warn("failed to post board",
			zap.String("match_id", e.MatchID),
			zap.String("channel_id", m.ChannelID),
			zap.Error(err))
	}
	return nil
}
