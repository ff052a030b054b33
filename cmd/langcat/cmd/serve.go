package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"langcat/internal/api"
	"langcat/internal/render"
	"langcat/pkg/browser"
	"langcat/pkg/catalog"
	"langcat/pkg/config"
	"langcat/pkg/logging"
	"langcat/pkg/probe"
	"langcat/pkg/request"
	"langcat/pkg/source"
	"langcat/pkg/tracker"
	"langcat/pkg/version"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Load the catalog and serve the search page",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context(), configPath)
	},
}

// newController builds the catalog source from cfg and a controller around it.
// The catalog is not loaded yet.
func newController(cfg *config.Config, tr *tracker.Tracker) (*browser.Controller, error) {
	client := request.New(tr, time.Duration(cfg.Catalog.Timeout))
	src, err := source.New(cfg.Catalog.Source, cfg.Catalog.Location, client)
	if err != nil {
		return nil, fmt.Errorf("failed to create catalog source: %w", err)
	}
	policy, err := catalog.ParsePolicy(cfg.Catalog.MissingFields)
	if err != nil {
		return nil, err
	}
	return browser.New(src, policy, tr), nil
}

func run(ctx context.Context, configPath string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	cleanupLogs, err := logging.Init(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer cleanupLogs()

	slog.Info("langcat Started", "version", version.Version, "source", cfg.Catalog.Source, "location", cfg.Catalog.Location)

	tr := tracker.New()
	ctrl, err := newController(cfg, tr)
	if err != nil {
		return err
	}

	renderer, err := render.New(cfg.Server.Title)
	if err != nil {
		return fmt.Errorf("failed to parse templates: %w", err)
	}

	// A failed load is not fatal: the page shows the load failure message, so
	// only the listen address is a critical check.
	_, loadErr := ctrl.Start(ctx)

	results := probe.Run(ctx, startupProbes(cfg, loadErr))
	if err := probe.AnalyzeResults(results); err != nil {
		return fmt.Errorf("startup checks failed: %w", err)
	}

	return runServer(ctx, cfg, ctrl, renderer, tr)
}

func startupProbes(cfg *config.Config, loadErr error) []probe.Probe {
	probes := []probe.Probe{
		{
			Name:     "Server Address",
			Check:    probe.Listenable(cfg.Server.Address),
			Critical: true,
		},
		{
			Name:  "Catalog",
			Check: func(context.Context) error { return loadErr },
		},
	}
	if cfg.Catalog.Source != source.KindHTTP {
		probes = append(probes, probe.Probe{
			Name:  "Catalog File",
			Check: probe.FileExists(cfg.Catalog.Location),
		})
	}
	return probes
}

func runServer(ctx context.Context, cfg *config.Config, ctrl *browser.Controller, renderer *render.Renderer, tr *tracker.Tracker) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)
	shutdownFunc := func() { quit <- syscall.SIGTERM }

	liveH := api.NewLiveHandler(ctrl, renderer)
	srv := api.NewServer(cfg.Server.Address,
		api.NewCatalogHandler(ctrl, renderer),
		liveH,
		api.NewStatsHandler(tr, ctrl, liveH),
		shutdownFunc,
	)
	return runServerLifecycle(ctx, srv, quit)
}

func runServerLifecycle(ctx context.Context, srv *http.Server, quit chan os.Signal) error {
	slog.Info("Starting server", "addr", srv.Addr)
	serverErrors := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()
	select {
	case <-quit:
		slog.Info("Shutting down server...")
	case <-ctx.Done():
		slog.Info("Context cancelled, shutting down...")
	case err := <-serverErrors:
		return fmt.Errorf("server failed: %w", err)
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
