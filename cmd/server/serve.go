package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mmuslimabdulj/city-pulse/internal/config"
	"github.com/mmuslimabdulj/city-pulse/internal/dashboard"
	httpHandler "github.com/mmuslimabdulj/city-pulse/internal/delivery/http"
	"github.com/mmuslimabdulj/city-pulse/internal/delivery/ws"
	"github.com/mmuslimabdulj/city-pulse/internal/logging"
	"github.com/mmuslimabdulj/city-pulse/internal/middleware"
	"github.com/mmuslimabdulj/city-pulse/internal/session"
	"github.com/mmuslimabdulj/city-pulse/internal/usecase"
)

const shutdownTimeout = 30 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server (default)",
	RunE:  runServe,
}

// app is the wired server and everything that must be stopped with it
type app struct {
	handler   http.Handler
	hub       *ws.Hub
	sessions  *session.Store
	submitter *usecase.Submitter
	limiters  *middleware.Limiters
	watcher   *dashboard.Watcher
	logger    *zap.Logger
}

// newApp builds every component from cfg and starts the hub
func newApp(cfg *config.Config, logger *zap.Logger) (*app, error) {
	board, err := dashboard.NewProvider(cfg.DashboardFixture, logger.Named("dashboard"))
	if err != nil {
		return nil, err
	}
	proxies, err := middleware.ParseTrustedProxies(cfg.TrustedProxies)
	if err != nil {
		return nil, err
	}

	shapes := usecase.NewShapeGenerator()
	var backgrounds usecase.BackgroundProvider
	if cfg.BackgroundStable {
		stable, err := usecase.NewStableBackground(shapes, cfg.Background)
		if err != nil {
			return nil, err
		}
		backgrounds = stable
	} else {
		backgrounds = usecase.NewFreshBackground(shapes, cfg.Background)
	}

	hub := ws.NewHub(logger.Named("hub"))
	go hub.Run()

	sessions := session.NewStore(cfg.SessionTTL)
	sessions.OnExpire(hub.Forget)

	submitter := usecase.NewSubmitter(
		usecase.SimulatedAuthenticator{Delay: cfg.SubmitDelay},
		hub,
		logger.Named("submit"),
	)
	limiters := middleware.NewLimiters(cfg.RateLimitAPI, cfg.RateLimitAuth, cfg.RateLimitWS, proxies)

	handler := httpHandler.NewHandler(httpHandler.Deps{
		Config:      cfg,
		Sessions:    sessions,
		Submitter:   submitter,
		Hub:         hub,
		Shapes:      shapes,
		Backgrounds: backgrounds,
		Dashboard:   board,
		Logger:      logger.Named("http"),
	})
	mux := handler.Routes(limiters)

	return &app{
		handler:   middleware.SecurityHeaders(middleware.RequestLogger(logger.Named("access"), proxies)(mux)),
		hub:       hub,
		sessions:  sessions,
		submitter: submitter,
		limiters:  limiters,
		watcher:   dashboard.NewWatcher(board),
		logger:    logger,
	}, nil
}

// close waits for in-flight submissions, then stops the background workers
func (a *app) close() {
	a.submitter.Wait()
	a.hub.Stop()
	a.sessions.Close()
	a.limiters.Close()
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := config.AppConfig
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	a, err := newApp(cfg, logger)
	if err != nil {
		return err
	}
	defer a.close()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Create server with timeouts
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      a.handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("CityPulse running", zap.String("url", "http://localhost:"+cfg.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return a.watcher.Run(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server stopped with error", zap.Error(err))
		return err
	}
	logger.Info("Server exited gracefully")
	return nil
}
