package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/klauspost/compress/gzhttp"
	"github.com/urfave/cli/v3"

	"github.com/mediadex/mediadex/pkg/api"
	"github.com/mediadex/mediadex/pkg/catalog"
	"github.com/mediadex/mediadex/pkg/config"
	"github.com/mediadex/mediadex/pkg/log"
	"github.com/mediadex/mediadex/pkg/search"
)

// ServeCommand creates the serve command
func ServeCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the search HTTP server",
		Action: func(ctx context.Context, c *cli.Command) error {
			return serve(ctx, c.String("config"), c.Bool("debug"))
		},
	}
}

func serve(ctx context.Context, configPath string, debug bool) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if debug || cfg.Debug {
		log.SetGlobalDebug(true)
	}
	logger := log.ForService("serve")

	store, err := catalog.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("opening catalog: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warnf("failed to close catalog: %v", err)
		}
	}()

	// The index must be ready before the first request; a failure here
	// means the process does not start. Substring mode queries the items
	// table directly and needs no index.
	if cfg.MatchMode == catalog.MatchFTS {
		if err := store.EnsureIndex(ctx); err != nil {
			return fmt.Errorf("preparing full-text index: %w", err)
		}
	}

	service := search.NewService(store, cfg.MatchMode)
	server := api.NewServer(service)

	mux := http.NewServeMux()
	server.RegisterRoutes(mux)

	if cfg.StaticDir != "" {
		fs := http.FileServer(http.Dir(cfg.StaticDir))
		mux.Handle("GET /", fs)
		mux.Handle("GET /static/", http.StripPrefix("/static/", fs))
	}

	handler := api.RequestLogMiddleware(api.CorsMiddleware(gzhttp.GzipHandler(mux)))
	httpServer := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: handler,
	}

	watchConfig(ctx, configPath, logger)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()
	logger.Infof("listening on %s (match mode %s)", cfg.ListenAddr, cfg.MatchMode)

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case sig := <-sigCh:
		logger.Infof("received %v, shutting down", sig)
	case <-ctx.Done():
		logger.Infof("context cancelled, shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down http server: %w", err)
	}
	return nil
}

// watchConfig watches the config file and live-toggles debug logging on
// change. Everything else (database path, listen address, match mode) needs
// a restart, which is logged instead of applied.
func watchConfig(ctx context.Context, configPath string, logger *log.Logger) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		logger.Warnf("failed to create config file watcher: %v", err)
		return
	}
	if err := watcher.Add(configPath); err != nil {
		logger.Warnf("failed to watch config file %s: %v", configPath, err)
		if err := watcher.Close(); err != nil {
			logger.Warnf("failed to close config file watcher: %v", err)
		}
		return
	}
	logger.Infof("watching config file for changes: %s", configPath)

	go func() {
		defer func() {
			if err := watcher.Close(); err != nil {
				logger.Warnf("failed to close config file watcher: %v", err)
			}
		}()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				cfg, err := config.LoadConfig(configPath)
				if err != nil {
					logger.Warnf("config changed but failed to reload: %v", err)
					continue
				}
				log.SetGlobalDebug(cfg.Debug)
				logger.Infof("config reloaded: debug=%v (other changes require a restart)", cfg.Debug)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warnf("config watcher error: %v", err)
			}
		}
	}()
}
