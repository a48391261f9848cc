package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/minesweeper-board/internal/config"
	"github.com/vancomm/minesweeper-board/internal/middleware"
	"github.com/vancomm/minesweeper-board/internal/session"
)

const shutdownTimeout = 30 * time.Second

type App struct {
	log      *logrus.Logger
	config   *config.Config
	router   *http.ServeMux
	registry *session.Registry
	ws       *config.WebSocket
}

func New(log *logrus.Logger, cfg *config.Config) *App {
	app := &App{
		log:    log,
		config: cfg,
		router: http.NewServeMux(),
		registry: session.NewRegistry(log, createRand(), session.Limits{
			MaxCells:      cfg.Game.MaxCells,
			IdleTimeout:   cfg.Sessions.IdleTimeout.Duration,
			SweepInterval: cfg.Sessions.SweepInterval.Duration,
		}),
		ws: config.NewWebSocket(),
	}

	app.loadRoutes()

	return app
}

// Handler is the router with the middleware chain applied.
func (a *App) Handler() http.Handler {
	return middleware.Wrap(
		a.router,
		middleware.Recover(a.log),
		middleware.Cors(),
		middleware.Logging(a.log),
		middleware.BasePath(a.config.BasePath),
	)
}

// Start serves until ctx is done or the listener fails. Live games are
// dropped on return.
func (a *App) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:    a.config.Addr,
		Handler: a.Handler(),
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return a.registry.Run(gCtx)
	})
	g.Go(func() error {
		err := server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		<-gCtx.Done()
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(ctx)
	})

	a.log.WithField("addr", a.config.Addr).Info("server listening")

	return g.Wait()
}
