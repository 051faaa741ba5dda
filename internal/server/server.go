// Package server serves lens badges and cell data over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/san-kum/gravlens/internal/config"
	"github.com/san-kum/gravlens/internal/source"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	source source.Source
	cfg    *config.Config
	logger *zap.Logger
	engine *gin.Engine
}

// New builds the router. cfg supplies the lens settings requests start from.
func New(src source.Source, cfg *config.Config, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	s := &Server{source: src, cfg: cfg, logger: logger}
	s.engine = s.setupRouter()
	return s
}

func (s *Server) Handler() http.Handler { return s.engine }

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.engine, ReadHeaderTimeout: 10 * time.Second}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("addr", addr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) setupRouter() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), Logger(s.logger), CORS())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "gravlens is running",
		})
	})

	api := r.Group("/api/v1")
	{
		api.GET("/demo/lens.svg", s.demoBadge)

		users := api.Group("/users/:user")
		{
			users.GET("/lens.svg", s.userBadge)
			users.GET("/cells", s.userCells)
		}
	}
	return r
}
