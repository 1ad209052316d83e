// Package render draws a match board as a PNG
package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"

	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/presentation"
)

const (
	CellSize  = 40
	Margin    = 8
	StatusBar = 28
)

var (
	BgColor         = ParseHexColor("#1e1e1e")
	FreeColor       = ParseHexColor("#01bf00")
	AttackableColor = ParseHexColor("#c80a0a")
	NeutralColor    = ParseHexColor("#383838")
	BorderColor     = ParseHexColor("#7d4005")
	TextColor       = ParseHexColor("#f0e6d2")
	MonsterColor    = ParseHexColor("#6b1f7a")

	// PlayerColors by roster index
	PlayerColors = []color.RGBA{
		ParseHexColor("#d4a017"),
		ParseHexColor("#2e86de"),
		ParseHexColor("#e8e8e8"),
		ParseHexColor("#8e44ad"),
	}
)

// Options tune the output image
type Options struct {
	// Scale resizes the finished image; 0 or 1 keeps it as drawn
	Scale float64
}

// Size returns the unscaled image size for a board
func Size(board *presentation.BoardView) (int, int) {
	return board.Width*CellSize + 2*Margin, board.Height*CellSize + 2*Margin + StatusBar
}

// CellOrigin returns the top left pixel of cell x, y
func CellOrigin(x, y int) (int, int) {
	return Margin + (x-1)*CellSize, Margin + (y-1)*CellSize
}

// Board draws the grid, the icons and a status line
func Board(board *presentation.BoardView, opts *Options) image.Image {
	w, h := Size(board)
	dc := gg.NewContext(w, h)
	dc.SetColor(BgColor)
	dc.Clear()
	dc.SetFontFace(basicfont.Face7x13)

	for _, column := range board.Cells {
		for _, cell := range column {
			drawCell(dc, cell)
		}
	}

	dc.SetColor(TextColor)
	dc.DrawStringAnchored(statusLine(board), Margin, float64(h-StatusBar/2), 0, 0.5)

	img := dc.Image()
	if opts != nil && opts.Scale > 0 && opts.Scale != 1 {
		img = imaging.Resize(img, int(float64(w)*opts.Scale), 0, imaging.NearestNeighbor)
	}
	return img
}

// BoardPNG encodes Board as PNG
func BoardPNG(board *presentation.BoardView, opts *Options) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := imaging.Encode(buf, Board(board, opts), imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode board: %w", err)
	}
	return buf.Bytes(), nil
}

func drawCell(dc *gg.Context, cell presentation.CellView) {
	x, y := CellOrigin(cell.X, cell.Y)
	fx, fy, size := float64(x), float64(y), float64(CellSize)

	dc.SetColor(highlightColor(cell.Highlight))
	dc.DrawRectangle(fx, fy, size, size)
	dc.Fill()

	dc.SetColor(BorderColor)
	dc.SetLineWidth(2)
	dc.DrawRectangle(fx, fy, size, size)
	dc.Stroke()

	label := cell.Icon.String()
	if label == "" {
		return
	}

	cx, cy := fx+size/2, fy+size/2
	dc.SetColor(iconColor(cell.Icon))
	dc.DrawCircle(cx, cy, size*0.35)
	dc.Fill()

	dc.SetColor(color.Black)
	dc.DrawStringAnchored(label, cx, cy, 0.5, 0.5)
}

func highlightColor(h presentation.Highlight) color.Color {
	switch h {
	case presentation.HighlightFree:
		return FreeColor
	case presentation.HighlightAttackable:
		return AttackableColor
	default:
		return NeutralColor
	}
}

func iconColor(icon presentation.Icon) color.Color {
	if icon == presentation.IconMonster {
		return MonsterColor
	}
	if i := int(icon); i >= 0 && i < len(PlayerColors) {
		return PlayerColors[i]
	}
	return TextColor
}

func statusLine(board *presentation.BoardView) string {
	if board.Winner != "" {
		return board.Winner + " won the Epic Arena!"
	}
	p, ok := board.CurrentPlayer()
	if !ok {
		return board.State
	}
	return fmt.Sprintf("Turn: %s (%s)  HP %d/%d  AC %d  AB %d", p.Name, p.Class, p.Health, p.HealthLimit, p.AC, p.AB)
}

// ParseHexColor converts hex string to color.RGBA
func ParseHexColor(s string) color.RGBA {
	c := color.RGBA{0, 0, 0, 255}
	switch len(s) {
	case 7:
		fmt.Sscanf(s, "#%02x%02x%02x", &c.R, &c.G, &c.B)
	case 9:
		fmt.Sscanf(s, "#%02x%02x%02x%02x", &c.R, &c.G, &c.B, &c.A)
	}
	return c
}
