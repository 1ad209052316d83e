package http_test

import (
	"bytes"
	"encoding/json"
	nethttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/disintegration/imaging"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/errors"
	handler "github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/handlers/http"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/presentation"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/render"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/repositories/matches"
	mockmatch "github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/services/match/mock"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/testutils"
)

func newServer(t *testing.T) (*handler.Server, *mockmatch.MockService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctrl := gomock.NewController(t)
	svc := mockmatch.NewMockService(ctrl)
	s := handler.NewServer(&handler.ServerConfig{
		Addr:         ":0",
		MatchService: svc,
		Logger:       zap.NewNop(),
	})
	return s, svc
}

func get(s *handler.Server, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(nethttp.MethodGet, path, nil)
	s.Handler().ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	s, _ := newServer(t)

	w := get(s, "/health")

	assert.Equal(t, nethttp.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestListMatches(t *testing.T) {
	s, svc := newServer(t)
	board := testutils.CreateTestBoard()
	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	svc.EXPECT().ListMatches(gomock.Any()).Return([]*matches.Match{
		{ID: "m2", ChannelID: "c2", Status: matches.StatusActive, CreatedAt: created, UpdatedAt: created, Board: &board},
		{ID: "m1", ChannelID: "c1", Status: matches.StatusOver, Winner: "Merlin", CreatedAt: created, UpdatedAt: created},
	}, nil)

	w := get(s, "/matches")
	require.Equal(t, nethttp.StatusOK, w.Code)

	var out []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.Len(t, out, 2)
	assert.Equal(t, "m2", out[0]["id"])
	assert.NotContains(t, out[0], "board")
	assert.Equal(t, "over", out[1]["status"])
	assert.Equal(t, "Merlin", out[1]["winner"])
}

func TestGetMatch(t *testing.T) {
	s, svc := newServer(t)
	board := testutils.CreateTestBoard()

	svc.EXPECT().GetMatch(gomock.Any(), "m1").Return(&matches.Match{
		ID: "m1", ChannelID: "c1", Status: matches.StatusActive, Board: &board,
	}, nil)

	w := get(s, "/matches/m1")
	require.Equal(t, nethttp.StatusOK, w.Code)

	var out struct {
		ID    string                  `json:"id"`
		Board *presentation.BoardView `json:"board"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, "m1", out.ID)
	require.NotNil(t, out.Board)
	assert.Len(t, out.Board.Players, 4)
}

func TestErrorStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "not found", err: errors.NotFoundf("match %s not found", "nope"), want: nethttp.StatusNotFound},
		{name: "invalid", err: errors.InvalidArgument("match ID is required"), want: nethttp.StatusBadRequest},
		{name: "unavailable", err: errors.New(errors.CodeUnavailable, "actor timed out"), want: nethttp.StatusServiceUnavailable},
		{name: "internal", err: errors.Internalf("boom"), want: nethttp.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, svc := newServer(t)
			svc.EXPECT().GetMatch(gomock.Any(), "nope").Return(nil, tt.err)

			w := get(s, "/matches/nope")

			assert.Equal(t, tt.want, w.Code)
			var out map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
			assert.Equal(t, string(errors.GetCode(tt.err)), out["code"])
		})
	}
}

func TestBoardImage(t *testing.T) {
	s, svc := newServer(t)
	board := testutils.CreateTestBoard()
	width, height := render.Size(&board)

	svc.EXPECT().Board(gomock.Any(), "m1").Return(board, nil).Times(2)

	w := get(s, "/matches/m1/board.png")
	require.Equal(t, nethttp.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))

	img, err := imaging.Decode(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, width, img.Bounds().Dx())
	assert.Equal(t, height, img.Bounds().Dy())

	w = get(s, "/matches/m1/board.png?scale=2")
	require.Equal(t, nethttp.StatusOK, w.Code)
	img, err = imaging.Decode(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 2*width, img.Bounds().Dx())
}

func TestBoardImage_NotFound(t *testing.T) {
	s, svc := newServer(t)
	svc.EXPECT().Board(gomock.Any(), "gone").Return(presentation.BoardView{}, errors.NotFoundf("match gone not found"))

	w := get(s, "/matches/gone/board.png")

	assert.Equal(t, nethttp.StatusNotFound, w.Code)
}
