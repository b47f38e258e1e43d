package app

import (
	"context"
	"fmt"
	"time"

	"github.com/MrSnakeDoc/extlink/internal/config"
	"github.com/MrSnakeDoc/extlink/internal/httpserver"
	"github.com/MrSnakeDoc/extlink/internal/httpserver/deps"
	"github.com/MrSnakeDoc/extlink/internal/logger"
	"github.com/MrSnakeDoc/extlink/internal/metrics"
	"github.com/MrSnakeDoc/extlink/internal/scheduler"
	"github.com/MrSnakeDoc/extlink/internal/seed"
	"github.com/MrSnakeDoc/extlink/internal/version"
)

type App struct {
	cfg      *config.Config
	logger   logger.Logger
	backend  *Backend
	core     *Core
	server   *httpserver.Server
	reloader *scheduler.SeedReloader
}

// New opens the store and builds the HTTP server. Nothing listens until Run.
func New(cfg *config.Config, loggerClient logger.Logger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	backend, err := OpenBackend(cfg, loggerClient)
	if err != nil {
		return nil, err
	}

	rec := metrics.New()
	core := NewCore(backend.KV, loggerClient, rec)

	// Seed reloader only exists when a seed file is configured.
	var (
		reloader      *scheduler.SeedReloader
		reloadTrigger chan struct{}
	)
	if cfg.SeedFile != "" {
		loggerClient.Info("seed file configured",
			logger.String("file", cfg.SeedFile),
			logger.Duration("interval", cfg.SeedReloadInterval))
		reloadTrigger = make(chan struct{}, 1)
		importer := seed.NewImporter(seed.NewLoader(cfg.SeedFile), core.Store, loggerClient)
		reloader = scheduler.NewSeedReloader(importer, loggerClient, cfg.SeedReloadInterval, reloadTrigger)
	}

	d := deps.Deps{
		Logger:        loggerClient,
		StartTime:     time.Now(),
		Version:       version.Version,
		Commit:        version.Commit,
		BuildDate:     version.BuildDate,
		GoVersion:     version.GoVersion,
		StoreKind:     backend.Kind,
		AllowedHosts:  cfg.AllowedHosts,
		AllowedCIDRS:  cfg.AllowedCIDRS,
		TrustProxy:    cfg.TrustProxy,
		CORSOrigins:   cfg.CORSOrigins,
		Store:         core.Store,
		Resolver:      core.Resolver,
		History:       core.History,
		Settings:      core.Settings,
		Metrics:       rec,
		Ping:          backend.Ping,
		ReloadTrigger: reloadTrigger,
	}

	return &App{
		cfg:      cfg,
		logger:   loggerClient,
		backend:  backend,
		core:     core,
		server:   httpserver.New(cfg.ListenPort, d),
		reloader: reloader,
	}, nil
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	a.logger.Info("starting extlink",
		logger.String("version", version.Version),
		logger.String("commit", version.Commit),
		logger.String("built", version.BuildDate),
		logger.String("go", version.GoVersion),
		logger.String("listen", a.cfg.ListenPort),
		logger.String("store", a.backend.Kind))

	defer a.backend.Close()

	if a.reloader != nil {
		if err := a.reloader.Start(ctx); err != nil {
			return fmt.Errorf("failed to start seed reloader: %w", err)
		}
		defer a.reloader.Stop()
	}

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutting down gracefully")
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	a.logger.Info("extlink stopped cleanly")
	return nil
}
