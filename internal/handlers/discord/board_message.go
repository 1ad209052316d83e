package discord

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/domain/shared"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/presentation"
)

const (
	boardFileName     = "board.png"
	maxDescription    = 4000
	buttonsPerRow     = 5
	colorTurn         = 0x01bf00
	colorGameOver     = 0xd4a017
	colorAborted      = 0xc80a0a
	embedTitle        = "⚔️ Epic Arena"
	gameOverTitle     = "🏆 Epic Arena"
	abortedEmbedTitle = "❌ Epic Arena"
)

var statOrder = []presentation.Stat{
	presentation.StatName,
	presentation.StatClass,
	presentation.StatAC,
	presentation.StatHP,
	presentation.StatAttack,
}

// boardMessage builds the post shown after a turn. Buttons are only added
// while the match is waiting for input.
func boardMessage(board *presentation.BoardView, post Post, png []byte, withButtons bool) *discordgo.MessageSend {
	embed := &discordgo.MessageEmbed{
		Title:       embedTitle,
		Color:       colorTurn,
		Description: logDescription(post.Lines),
		Image:       &discordgo.MessageEmbedImage{URL: "attachment://" + boardFileName},
	}

	if board.Winner != "" {
		embed.Title = gameOverTitle
		embed.Color = colorGameOver
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Winner",
			Value: board.Winner,
		})
	} else {
		for _, stat := range statOrder {
			value, ok := post.Stats[stat]
			if !ok || value == "" {
				continue
			}
			embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
				Name:   stat.String(),
				Value:  value,
				Inline: true,
			})
		}
	}

	if post.Track != "" {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: "♪ " + post.Track}
	}

	msg := &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{embed},
		Files: []*discordgo.File{{
			Name:        boardFileName,
			ContentType: "image/png",
			Reader:      bytes.NewReader(png),
		}},
	}
	if withButtons {
		msg.Components = turnButtons(board)
	}
	return msg
}

func abortedMessage(reason string, post Post) *discordgo.MessageSend {
	if reason == "" {
		reason = "unknown"
	}

	var sb strings.Builder
	sb.WriteString(logDescription(post.Lines))
	for _, m := range post.Messages {
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(fmt.Sprintf("**%s**: %s", m.Title, m.Text))
	}

	embed := &discordgo.MessageEmbed{
		Title:       abortedEmbedTitle,
		Color:       colorAborted,
		Description: sb.String(),
		Fields: []*discordgo.MessageEmbedField{{
			Name:  "Reason",
			Value: reason,
		}},
	}
	return &discordgo.MessageSend{Embeds: []*discordgo.MessageEmbed{embed}}
}

// logDescription keeps the newest lines that fit in an embed
func logDescription(lines []string) string {
	total := 0
	start := len(lines)
	for start > 0 {
		n := len(lines[start-1]) + 1
		if total+n > maxDescription {
			break
		}
		total += n
		start--
	}
	return strings.Join(lines[start:], "\n")
}

// turnButtons offers every highlighted neighbour of the current player plus
// rest.
func turnButtons(board *presentation.BoardView) []discordgo.MessageComponent {
	cur, ok := board.CurrentPlayer()
	if !ok {
		return nil
	}

	var buttons []discordgo.MessageComponent
	for _, p := range shared.Pt(cur.X, cur.Y).Surrounding() {
		cell, ok := board.Cell(p.X, p.Y)
		if !ok {
			continue
		}
		switch cell.Highlight {
		case presentation.HighlightFree:
			buttons = append(buttons, discordgo.Button{
				Label:    p.String(),
				Style:    discordgo.SuccessButton,
				CustomID: CellCustomID(p),
			})
		case presentation.HighlightAttackable:
			buttons = append(buttons, discordgo.Button{
				Label:    "Attack " + p.String(),
				Style:    discordgo.DangerButton,
				CustomID: CellCustomID(p),
			})
		}
	}
	buttons = append(buttons, discordgo.Button{
		Label:    "Rest",
		Style:    discordgo.SecondaryButton,
		CustomID: RestCustomID(),
	})

	var rows []discordgo.MessageComponent
	for len(buttons) > 0 {
		n := min(buttonsPerRow, len(buttons))
		rows = append(rows, discordgo.ActionsRow{Components: buttons[:n]})
		buttons = buttons[n:]
	}
	return rows
}
