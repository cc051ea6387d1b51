// Package api exposes the HTTP surface: chat-driven generation, chat and
// indicator CRUD, reference matching, and API key validation.
package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"

	"github.com/pinegen/internal/config"
	"github.com/pinegen/internal/generation"
	"github.com/pinegen/internal/reference"
	"github.com/pinegen/internal/store"
)

// Server represents the API server
type Server struct {
	echo    *echo.Echo
	port    int
	cfg     *config.Config
	svc     *generation.Service
	store   *store.Store
	library *reference.Library
}

// NewServer creates a new API server. The store may be nil, in which case
// persistence endpoints report 503 and generation results are not saved.
func NewServer(cfg *config.Config, svc *generation.Service, st *store.Store) *Server {
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	server := &Server{
		echo:    e,
		port:    cfg.Server.Port,
		cfg:     cfg,
		svc:     svc,
		store:   st,
		library: reference.DefaultLibrary(),
	}

	server.setupRoutes()

	return server
}

// setupRoutes configures all API endpoints
func (s *Server) setupRoutes() {
	s.echo.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status": "healthy",
		})
	})

	v1 := s.echo.Group("/api/v1")

	v1.POST("/chat", s.postChat)
	v1.GET("/chats", s.listChats)
	v1.GET("/chats/:id", s.getChat)
	v1.PATCH("/chats/:id", s.renameChat)
	v1.DELETE("/chats/:id", s.deleteChat)

	v1.GET("/indicators", s.listIndicators)
	v1.GET("/indicators/:id", s.getIndicator)
	v1.DELETE("/indicators/:id", s.deleteIndicator)

	v1.POST("/match", s.postMatch)
	v1.POST("/validate-key", s.postValidateKey)
}

// Start begins the API server and blocks until an interrupt arrives, then
// shuts down gracefully.
func (s *Server) Start() error {
	go func() {
		if err := s.echo.Start(fmt.Sprintf(":%d", s.port)); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("shutting down the server")
		}
	}()

	log.Info().Int("port", s.port).Msg("API server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return s.echo.Shutdown(ctx)
}

func (s *Server) requireStore(c echo.Context) error {
	if s.store == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "database not configured")
	}
	return nil
}
