package discord

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/config"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/domain/shared"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/errors"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/presentation"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/render"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/services/arena"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/services/match"
)

func (h *Handler) handleStart(ctx context.Context, i *discordgo.InteractionCreate, opts []*discordgo.ApplicationCommandInteractionDataOption) error {
	// Monster names may come from a remote API, so answer later
	err := h.messenger.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})
	if err != nil {
		return fmt.Errorf("failed to acknowledge interaction: %w", err)
	}

	monsters := h.arena.Monsters
	if n, ok := optionInt(opts, "monsters"); ok {
		monsters = n
	}

	players := h.arena.Players
	if raw := optionString(opts, "players"); raw != "" {
		parsed, err := config.ParsePlayers(strings.Split(raw, ","))
		if err != nil {
			return h.editReply(i, "❌ "+err.Error())
		}
		players = parsed
	}

	sink, err := h.claimChannel(ctx, i.ChannelID)
	if err != nil {
		return h.editReply(i, errorText(err))
	}

	inputs := make([]match.PlayerInput, len(players))
	for idx, p := range players {
		inputs[idx] = match.PlayerInput{Name: p.Name, Class: p.Class}
	}

	m, err := h.matches.CreateMatch(ctx, &match.CreateMatchInput{
		ChannelID: i.ChannelID,
		Monsters:  monsters,
		Players:   inputs,
		Sink:      sink,
		Seed:      h.arena.Seed,
		OnFatal:   h.onFatal,
	})
	if err != nil {
		h.releaseChannel(i.ChannelID, sink)
		return h.editReply(i, errorText(err))
	}

	h.logger.Info("match created from discord",
		zap.String("match_id", m.ID),
		zap.String("channel_id", i.ChannelID))

	return h.editReply(i, fmt.Sprintf("⚔️ Match `%s` started with %d hidden monsters. Good luck!", m.ID, monsters))
}

func (h *Handler) handleMove(ctx context.Context, i *discordgo.InteractionCreate, opts []*discordgo.ApplicationCommandInteractionDataOption) error {
	x, _ := optionInt(opts, "x")
	y, _ := optionInt(opts, "y")

	m, err := h.matches.GetActiveMatch(ctx, i.ChannelID)
	if err != nil {
		return h.replyEphemeral(i, errorText(err))
	}

	outcome, err := h.matches.Click(ctx, m.ID, shared.Pt(x, y))
	if err != nil {
		return h.replyEphemeral(i, errorText(err))
	}
	return h.replyEphemeral(i, commandText(outcome))
}

func (h *Handler) handleRest(ctx context.Context, i *discordgo.InteractionCreate) error {
	m, err := h.matches.GetActiveMatch(ctx, i.ChannelID)
	if err != nil {
		return h.replyEphemeral(i, errorText(err))
	}

	outcome, err := h.matches.Rest(ctx, m.ID)
	if err != nil {
		return h.replyEphemeral(i, errorText(err))
	}
	return h.replyEphemeral(i, commandText(outcome))
}

func (h *Handler) handleBoard(ctx context.Context, i *discordgo.InteractionCreate) error {
	m, err := h.matches.GetActiveMatch(ctx, i.ChannelID)
	if err != nil {
		return h.replyEphemeral(i, errorText(err))
	}

	board, err := h.matches.Board(ctx, m.ID)
	if err != nil {
		return h.replyEphemeral(i, errorText(err))
	}

	png, err := render.BoardPNG(&board, nil)
	if err != nil {
		return h.replyEphemeral(i, errorText(err))
	}

	msg := boardMessage(&board, Post{Stats: statsFromBoard(&board)}, png, board.State == arena.StateWaiting.String())
	return h.messenger.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds:     msg.Embeds,
			Files:      msg.Files,
			Components: msg.Components,
		},
	})
}

func (h *Handler) handleEnd(ctx context.Context, i *discordgo.InteractionCreate) error {
	m, err := h.matches.GetActiveMatch(ctx, i.ChannelID)
	if err != nil {
		return h.replyEphemeral(i, errorText(err))
	}

	if err := h.matches.EndMatch(ctx, m.ID); err != nil {
		return h.replyEphemeral(i, errorText(err))
	}
	h.releaseChannel(i.ChannelID, nil)

	return h.reply(i, fmt.Sprintf("🏁 Match `%s` ended.", m.ID))
}

func (h *Handler) editReply(i *discordgo.InteractionCreate, content string) error {
	_, err := h.messenger.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Content: &content,
	})
	return err
}

// onFatal keeps the bot running; the abort event tells the channel
func (h *Handler) onFatal(matchID string, err error) {
	h.logger.Error("match aborted",
		zap.String("match_id", matchID),
		zap.Int("exit_code", errors.ExitCode(err)),
		zap.Error(err))
}

func commandText(o arena.Outcome) string {
	if text := outcomeText(o); text != "" {
		return text
	}
	switch o {
	case arena.OutcomeMoved:
		return "✅ Moved."
	case arena.OutcomeRested:
		return "✅ Rested."
	case arena.OutcomeGameOver:
		return "🏆 Game over!"
	default:
		return "✅ Done."
	}
}

func statsFromBoard(board *presentation.BoardView) map[presentation.Stat]string {
	cur, ok := board.CurrentPlayer()
	if !ok {
		return nil
	}
	return map[presentation.Stat]string{
		presentation.StatName:   cur.Name,
		presentation.StatClass:  cur.Class,
		presentation.StatAC:     fmt.Sprint(cur.AC),
		presentation.StatHP:     fmt.Sprint(cur.Health),
		presentation.StatAttack: fmt.Sprint(cur.AB),
	}
}
