package http

import (
	nethttp "net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/errors"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/render"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/repositories/matches"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/services/match"
)

const maxBoardScale = 4

// MatchHandler serves match records and board images
type MatchHandler struct {
	matches match.Service
}

// Register mounts the match routes on g
func (h *MatchHandler) Register(g *gin.RouterGroup) {
	g.GET("/matches", h.ListMatches)
	g.GET("/matches/:id", h.GetMatch)
	g.GET("/matches/:id/board.png", h.BoardImage)
}

type matchResponse struct {
	ID        string    `json:"id"`
	ChannelID string    `json:"channel_id"`
	Status    string    `json:"status"`
	Winner    string    `json:"winner,omitempty"`
	Reason    string    `json:"reason,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Board     any       `json:"board,omitempty"`
}

func toResponse(m *matches.Match, withBoard bool) matchResponse {
	out := matchResponse{
		ID:        m.ID,
		ChannelID: m.ChannelID,
		Status:    string(m.Status),
		Winner:    m.Winner,
		Reason:    m.Reason,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	if withBoard && m.Board != nil {
		out.Board = m.Board
	}
	return out
}

// ListMatches returns every match, newest first, without boards
func (h *MatchHandler) ListMatches(c *gin.Context) {
	list, err := h.matches.ListMatches(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]matchResponse, 0, len(list))
	for _, m := range list {
		out = append(out, toResponse(m, false))
	}
	c.JSON(nethttp.StatusOK, out)
}

// GetMatch returns one match with its last published board
func (h *MatchHandler) GetMatch(c *gin.Context) {
	m, err := h.matches.GetMatch(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(nethttp.StatusOK, toResponse(m, true))
}

// BoardImage renders the board as a PNG. ?scale=N enlarges it.
func (h *MatchHandler) BoardImage(c *gin.Context) {
	scale := 1
	if s := c.Query("scale"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 && n <= maxBoardScale {
			scale = n
		}
	}

	board, err := h.matches.Board(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	buf, err := render.BoardPNG(&board, &render.Options{Scale: float64(scale)})
	if err != nil {
		writeError(c, err)
		return
	}
	c.Data(nethttp.StatusOK, "image/png", buf)
}

func writeError(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{
		"error": err.Error(),
		"code":  string(errors.GetCode(err)),
	})
}

func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.CodeNotFound:
		return nethttp.StatusNotFound
	case errors.CodeInvalidArgument, errors.CodeValidation:
		return nethttp.StatusBadRequest
	case errors.CodeAlreadyExists, errors.CodeFailedPrecondition:
		return nethttp.StatusConflict
	case errors.CodeUnavailable:
		return nethttp.StatusServiceUnavailable
	default:
		return nethttp.StatusInternalServerError
	}
}
