package arena

import (
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/domain/shared"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/presentation"
)

// Cell is the interaction state of one grid cell
type Cell struct {
	Highlight  presentation.Highlight
	Icon       presentation.Icon
	HasPlayer  bool
	HasMonster bool
}

// Board holds the per-cell state surfaces draw from. Highlight and icon
// writes are mirrored to the sink.
type Board struct {
	cells [shared.GridWidth][shared.GridHeight]Cell
	sink  presentation.Sink
}

// NewBoard returns a neutral, empty board
func NewBoard(sink presentation.Sink) *Board {
	b := &Board{sink: sink}
	for x := range b.cells {
		for y := range b.cells[x] {
			b.cells[x][y].Icon = presentation.IconEmpty
		}
	}
	return b
}

func (b *Board) cell(p shared.Point) *Cell {
	if !p.InBounds() {
		return nil
	}
	return &b.cells[p.X-1][p.Y-1]
}

// Cell returns the state of p; off-map points read as an empty neutral cell
func (b *Board) Cell(p shared.Point) Cell {
	if c := b.cell(p); c != nil {
		return *c
	}
	return Cell{Icon: presentation.IconEmpty}
}

// SetHighlight changes a cell's highlight
func (b *Board) SetHighlight(p shared.Point, h presentation.Highlight) {
	if c := b.cell(p); c != nil {
		c.Highlight = h
		b.sink.SetCellHighlight(p, h)
	}
}

// SetIcon changes a cell's icon
func (b *Board) SetIcon(p shared.Point, icon presentation.Icon) {
	if c := b.cell(p); c != nil {
		c.Icon = icon
		b.sink.SetCellIcon(p, icon)
	}
}

// SetHasPlayer flags a cell as holding a player
func (b *Board) SetHasPlayer(p shared.Point, v bool) {
	if c := b.cell(p); c != nil {
		c.HasPlayer = v
	}
}

// SetHasMonster flags a cell as holding a monster
func (b *Board) SetHasMonster(p shared.Point, v bool) {
	if c := b.cell(p); c != nil {
		c.HasMonster = v
	}
}

// SetSurround highlights the block around center: attackable where a player
// stands and free elsewhere, or neutral everywhere when clear is set. The
// centre itself is always neutral.
func (b *Board) SetSurround(center shared.Point, clear bool) {
	if !center.InBounds() {
		return
	}

	for _, p := range center.Surrounding() {
		switch {
		case clear:
			b.SetHighlight(p, presentation.HighlightNeutral)
		case b.Cell(p).HasPlayer:
			b.SetHighlight(p, presentation.HighlightAttackable)
		default:
			b.SetHighlight(p, presentation.HighlightFree)
		}
	}
	b.SetHighlight(center, presentation.HighlightNeutral)
}

// View copies the board. Hidden monsters are left out of the cell flags.
func (b *Board) View(revealMonsters bool) [][]presentation.CellView {
	out := make([][]presentation.CellView, shared.GridWidth)
	for x := range b.cells {
		out[x] = make([]presentation.CellView, shared.GridHeight)
		for y, c := range b.cells[x] {
			out[x][y] = presentation.CellView{
				X:          x + 1,
				Y:          y + 1,
				Highlight:  c.Highlight,
				Icon:       c.Icon,
				HasPlayer:  c.HasPlayer,
				HasMonster: c.HasMonster && revealMonsters,
			}
		}
	}
	return out
}
