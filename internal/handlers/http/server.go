// Package http serves the read-only spectator API.
package http

import (
	"context"
	nethttp "net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/logging"
	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/services/match"
)

// Server is the spectator API listener
type Server struct {
	engine *gin.Engine
	srv    *nethttp.Server
	logger *zap.Logger
}

// ServerConfig holds configuration for the server
type ServerConfig struct {
	Addr         string
	MatchService match.Service // Required
	Logger       *zap.Logger   // Optional
}

// NewServer builds the router and the listener
func NewServer(cfg *ServerConfig) *Server {
	if cfg.MatchService == nil {
		panic("match service is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.L()
	}
	logger = logger.Named("http")

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(accessLog(logger))

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(nethttp.StatusOK, gin.H{"status": "ok"})
	})

	h := &MatchHandler{matches: cfg.MatchService}
	h.Register(engine.Group(""))

	return &Server{
		engine: engine,
		logger: logger,
		srv: &nethttp.Server{
			Addr:              cfg.Addr,
			Handler:           engine,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
	}
}

// Start serves until Shutdown. It returns nethttp.ErrServerClosed after a
// clean shutdown.
func (s *Server) Start() error {
	s.logger.Info("spectator API listening", zap.String("addr", s.srv.Addr))
	return s.srv.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func (s *Server) Handler() nethttp.Handler {
	return s.engine
}

func accessLog(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}

		c.Next()

		logger.Debug("request",
			zap.String("method", c.Request.Method),
			zap.String("route", route),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("took", time.Since(start)))
	}
}
