package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/KrX3D/TizenTube2/internal/di"
	"github.com/KrX3D/TizenTube2/internal/infrastructure/browser/rod"
	"github.com/KrX3D/TizenTube2/internal/infrastructure/env"
)

const defaultAppURL = "https://www.youtube.com/tv"

// browseCommand runs the TV app in a browser with the filter installed.
type browseCommand struct {
	global *globalFlags

	url         string
	headless    bool
	metricsAddr string
	watch       bool
	navTimeout  time.Duration
}

func addBrowseCommand(app *kingpin.Application, g *globalFlags, envService *env.EnvService) {
	cmd := &browseCommand{global: g}
	c := app.Command("browse", "Open the TV app in a browser and filter its responses until interrupted.").
		Action(func(*kingpin.ParseContext) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			if err := cmd.run(ctx); err != nil {
				exitWithErr(err)
			}
			return nil
		})
	c.Flag("url", "TV app URL.").
		Default(envService.GetDefault(env.KeyAppURL, defaultAppURL)).StringVar(&cmd.url)
	c.Flag("headless", "Run the browser without a window.").
		Default(fmt.Sprint(envService.GetBool(env.KeyHeadless, false))).BoolVar(&cmd.headless)
	c.Flag("metrics-addr", "Address serving /metrics; empty disables it.").
		Default(envService.GetDefault(env.KeyMetricsAddr, ":9464")).StringVar(&cmd.metricsAddr)
	c.Flag("watch-settings", "Reload the settings file when it changes.").
		Default("true").BoolVar(&cmd.watch)
	c.Flag("nav-timeout", "Timeout for browser operations.").
		Default(envService.GetDuration(env.KeyNavTimeout, 30*time.Second).String()).DurationVar(&cmd.navTimeout)
}

func (cmd *browseCommand) run(ctx context.Context) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	browserCfg := rod.DefaultConfig()
	browserCfg.Headless = cmd.headless
	browserCfg.Timeout = cmd.navTimeout

	container, err := di.NewContainer(ctx, di.Config{
		Logger:        cmd.global.loggerConfig(),
		SettingsPath:  cmd.global.settings,
		WatchSettings: cmd.watch && cmd.global.settings != "",
		Browser:       &browserCfg,
		Registerer:    reg,
		Report:        os.Stderr,
	})
	if err != nil {
		return err
	}
	defer container.Close()

	var srv *http.Server
	if cmd.metricsAddr != "" {
		srv = serveMetrics(cmd.metricsAddr, reg, container)
	}

	if err := container.Browser.Navigate(ctx, cmd.url); err != nil {
		return err
	}
	container.Logger.Info("Filtering responses, press Ctrl+C to stop", "url", cmd.url)

	<-ctx.Done()

	if srv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			container.Logger.Warn("Metrics server shutdown failed", "error", err)
		}
	}

	container.Reporter.ShowSummary(context.Background(), container.Summary())
	return nil
}

func serveMetrics(addr string, reg *prometheus.Registry, container *di.Container) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			container.Logger.Error("Metrics server failed", "addr", addr, "error", err)
		}
	}()
	container.Logger.Info("Serving metrics", "addr", addr)
	return srv
}
