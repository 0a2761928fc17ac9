package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pageza/mealfinder/config"
	"github.com/pageza/mealfinder/internal/api"
	"github.com/pageza/mealfinder/internal/router"
	"github.com/pageza/mealfinder/internal/service"
	"github.com/pageza/mealfinder/internal/webui"
)

// Server represents the HTTP server
type Server struct {
	cfg      *config.Config
	router   *gin.Engine
	http     *http.Server
	sessions *webui.SessionRegistry
	logger   *log.Logger

	sweepCtx    context.Context
	stopSweeper context.CancelFunc
}

// New creates a new server instance wired against the catalog named in cfg
func New(cfg *config.Config) (*Server, error) {
	logger := log.New(log.Writer(), "[server] ", log.LstdFlags)
	gin.SetMode(cfg.Environment.GinMode())

	catalog := service.NewCatalogClient(
		service.WithBaseURL(cfg.CatalogBaseURL),
		service.WithTimeout(cfg.CatalogTimeout),
	)
	loader := service.NewRecipeLoader(catalog)

	templates, err := webui.NewTemplateManager()
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	uiLogger := log.New(log.Writer(), "[webui] ", log.LstdFlags)
	sessions := webui.NewSessionRegistry(cfg.SessionTTL, func() *webui.Controller {
		return webui.NewController(catalog, loader, templates, uiLogger)
	}, uiLogger)

	apiLogger := log.New(log.Writer(), "[api] ", log.LstdFlags)
	r := router.SetupRouter(
		api.NewPageHandler(sessions, apiLogger),
		api.NewRecipeHandler(catalog, loader, apiLogger),
		cfg.CORSAllowedOrigins,
		logger,
	)

	sweepCtx, stopSweeper := context.WithCancel(context.Background())
	return &Server{
		cfg:    cfg,
		router: r,
		http: &http.Server{
			Addr:              cfg.Addr(),
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
		},
		sessions:    sessions,
		logger:      logger,
		sweepCtx:    sweepCtx,
		stopSweeper: stopSweeper,
	}, nil
}

// Handler exposes the configured router
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the server and blocks until it stops
func (s *Server) Start() error {
	go s.sessions.Run(s.sweepCtx, 0)

	s.logger.Printf("Listening on %s (catalog %s)", s.cfg.Addr(), s.cfg.CatalogBaseURL)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server and the session sweeper
func (s *Server) Shutdown(ctx context.Context) error {
	s.stopSweeper()
	return s.http.Shutdown(ctx)
}
