package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gamestore/pkg/accounts"
	"gamestore/pkg/catalog"
	"gamestore/pkg/config"
	"gamestore/pkg/linkcheck"
	"gamestore/pkg/log"
	"gamestore/pkg/session"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const shutdownTimeout = 10

// Server wires the catalog and accounts stores to the HTTP surface.
type Server struct {
	cfg      *config.Config
	echo     *echo.Echo
	version  string
	catalog  *catalog.Store
	accounts *accounts.Store
	sessions *session.Manager
	checker  *linkcheck.Checker
}

// New creates the store server. The link checker may be nil, in which
// case download URLs are admitted without a reachability check.
func New(cfg *config.Config, version string, catalogStore *catalog.Store, accountStore *accounts.Store, sessions *session.Manager, checker *linkcheck.Checker) *Server {
	return &Server{
		cfg:      cfg,
		echo:     echo.New(),
		version:  version,
		catalog:  catalogStore,
		accounts: accountStore,
		sessions: sessions,
		checker:  checker,
	}
}

// Start runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully.
func (s *Server) Start(addr string) error {
	s.setupRoutes()

	// Start server in a goroutine
	go func() {
		log.Info().
			Str("addr", addr).
			Str("store_name", s.cfg.StoreName).
			Str("version", s.version).
			Msg("Starting game store server")

		if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server startup failed")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	return s.Shutdown()
}

// Shutdown stops the HTTP server gracefully.
func (s *Server) Shutdown() error {
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout*time.Second)
	defer cancel()

	if err := s.echo.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server shutdown failed")
		return err
	}

	log.Info().Msg("Server gracefully stopped")
	return nil
}

func (s *Server) setupRoutes() {
	// Echo configuration
	s.echo.HideBanner = true
	s.echo.HidePort = true
	s.echo.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} ${status} ${method} ${uri} (${latency_human})\n",
	}))
	s.echo.Use(middleware.Recover())

	// Public catalog surface
	s.echo.GET("/", s.frontPage)
	s.echo.GET("/games", s.listGames)
	s.echo.GET("/games/:name", s.getGame)
	s.echo.GET("/games/:name/download", s.downloadGame)
	s.echo.GET("/search/:term", s.searchGames)
	s.echo.GET("/tags", s.listTags)

	// Login lives at a configurable path; logout requires a session
	s.echo.POST("/"+s.cfg.LoginPath, s.login)
	s.echo.POST("/logout", s.logout, s.sessions.Middleware())

	// Authenticated maintenance surface
	admin := s.echo.Group("/admin", s.sessions.Middleware())
	admin.POST("/games", s.addGame)
	admin.POST("/games/remove", s.removeGames)
	admin.DELETE("/games/:name", s.removeGameByName)
	admin.GET("/search/:term", s.searchInternal)
	admin.GET("/algorithms", s.listAlgorithms)
	admin.POST("/accounts", s.addAccount)
	admin.PUT("/accounts/:username", s.editAccount)
	admin.DELETE("/accounts/:username", s.removeAccount)
}

// frontPage greets end users with the store name.
func (s *Server) frontPage(ctx echo.Context) error {
	return ctx.String(http.StatusOK,
		"This is the "+s.cfg.StoreName+" API. This page is here to greet end users.\n"+
			"We strongly advise that you use the official client to interact with this API.\n")
}
