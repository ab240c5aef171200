package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/molpadia/molpaclip/internal/app"
	"github.com/molpadia/molpaclip/internal/auth"
	"github.com/molpadia/molpaclip/internal/config"
	"github.com/molpadia/molpaclip/internal/infrastructure/persistence"
	"github.com/molpadia/molpaclip/internal/logger"
	"golang.org/x/sync/errgroup"
)

var configPath = flag.String("config", "", "path of the YAML config file")

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	l, err := logger.New(cfg.Server.Mode)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer l.Sync()

	if err := run(cfg, l); err != nil {
		l.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, l logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := openStorage(ctx, cfg, l)
	if err != nil {
		return err
	}
	defer store.close()

	authenticator := auth.NewJWTAuthenticator(cfg.Auth.Secret)
	resolver := persistence.NewCachedUserResolver(store.users, store.cache, cfg.Redis.TTL, l)
	videos := app.NewVideoService(authenticator, store.videos, resolver, l, cfg.Auth.VerifyTimeout, cfg.Storage.Timeout)

	r := mux.NewRouter()
	app.SetupRoutes(r, videos, l)

	srv := &http.Server{
		Handler:      r,
		Addr:         cfg.Server.Addr,
		WriteTimeout: cfg.Server.WriteTimeout,
		ReadTimeout:  cfg.Server.ReadTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		l.Info("the server started", "addr", cfg.Server.Addr, "backend", cfg.Storage.Backend)
		var err error
		if cfg.Server.Cert != "" && cfg.Server.Key != "" {
			err = srv.ListenAndServeTLS(cfg.Server.Cert, cfg.Server.Key)
		} else {
			err = srv.ListenAndServe()
		}
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen: %w", err)
	})
	g.Go(func() error {
		<-gctx.Done()
		l.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
