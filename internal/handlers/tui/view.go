package tui

import (
	"fmt"
	"strings"

	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/domain/shared"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/presentation"
)

var statOrder = []presentation.Stat{
	presentation.StatName,
	presentation.StatClass,
	presentation.StatAC,
	presentation.StatHP,
	presentation.StatAttack,
}

const help = "arrows move · enter select · r rest · q quit"

func (m Model) View() string {
	if m.quitting {
		return "Farewell\n"
	}

	var sb strings.Builder
	sb.WriteString("-- Epic Arena --\n")
	if m.matchID == "" {
		sb.WriteString(m.spinner.View() + " Entering the arena...\n")
		return sb.String()
	}

	for y := 1; y <= shared.GridHeight; y++ {
		for x := 1; x <= shared.GridWidth; x++ {
			sb.WriteString(m.renderCell(shared.Pt(x, y)))
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	var stats []string
	for _, stat := range statOrder {
		if v, ok := m.stats[stat]; ok {
			stats = append(stats, fmt.Sprintf("%s: %s", stat, v))
		}
	}
	sb.WriteString(strings.Join(stats, "  ") + "\n")
	if m.track != "" {
		sb.WriteString("♪ " + m.track + "\n")
	}
	sb.WriteString("\n")

	for _, line := range m.log {
		sb.WriteString(line + "\n")
	}

	switch {
	case m.winner != "":
		sb.WriteString(fmt.Sprintf("\n🏆 %s is the champion! Press q to leave.\n", m.winner))
	case m.aborted != "":
		sb.WriteString(fmt.Sprintf("\nMatch aborted: %s\n", m.aborted))
	case m.busy:
		sb.WriteString("\n" + m.spinner.View() + " Battle in progress...\n")
	}

	if m.message != nil {
		sb.WriteString(fmt.Sprintf("\n%s: %s\n", m.message.Title, m.message.Text))
	}
	if m.notice != "" {
		sb.WriteString("\n" + m.notice + "\n")
	}

	sb.WriteString("\n" + help + "\n")
	return sb.String()
}

// renderCell draws three characters: the highlight (or cursor) brackets
// around the icon.
func (m Model) renderCell(p shared.Point) string {
	c := m.cells[p.X-1][p.Y-1]

	left, right := " ", " "
	switch c.highlight {
	case presentation.HighlightFree:
		left, right = "(", ")"
	case presentation.HighlightAttackable:
		left, right = "!", "!"
	}
	if p == m.cursor {
		left, right = "[", "]"
	}

	mid := c.icon.String()
	if mid == "" {
		mid = "·"
	}
	return left + mid + right
}
