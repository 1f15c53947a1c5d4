package app

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vancomm/minefield/internal/config"
	"github.com/vancomm/minefield/internal/middleware"
	"github.com/vancomm/minefield/internal/mines"
	"github.com/vancomm/minefield/internal/session"
)

type App struct {
	logger *slog.Logger
	config *config.Config
	router *http.ServeMux
	store  *session.Store
	ws     *config.WebSocket
}

func New(logger *slog.Logger, cfg *config.Config) *App {
	router := http.NewServeMux()

	app := &App{
		logger: logger,
		config: cfg,
		router: router,
		store:  session.NewStore(cfg.Geometry, mines.NewRand),
		ws:     config.NewWebSocket(),
	}

	app.loadRoutes()

	return app
}

func (a *App) Handler() http.Handler {
	return middleware.Wrap(
		a.router,
		middleware.Recover(a.logger),
		middleware.Logging(a.logger),
		middleware.Cors(a.config.AllowedOrigins),
	)
}

// Start serves until ctx is done, then shuts the server down.
func (a *App) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:    a.config.Addr,
		Handler: a.Handler(),
		BaseContext: func(l net.Listener) context.Context {
			return ctx
		},
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("server listening", slog.String("addr", a.config.Addr))
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		sCtx, cancel := context.WithTimeout(context.Background(), time.Second*15)
		defer cancel()
		return server.Shutdown(sCtx)
	})
	g.Go(func() error {
		return a.store.RunSweeper(
			gCtx, a.config.SweepInterval, a.config.SessionTTL,
			func(n int) {
				a.logger.Debug("swept idle sessions", slog.Int("count", n))
			},
		)
	})

	return g.Wait()
}
