package di

import (
	"context"
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/KrX3D/TizenTube2/internal/application/port/output"
	"github.com/KrX3D/TizenTube2/internal/application/service"
	"github.com/KrX3D/TizenTube2/internal/domain/entity"
	"github.com/KrX3D/TizenTube2/internal/infrastructure/browser/rod"
	"github.com/KrX3D/TizenTube2/internal/infrastructure/codec"
	"github.com/KrX3D/TizenTube2/internal/infrastructure/logger"
	"github.com/KrX3D/TizenTube2/internal/infrastructure/metrics"
	"github.com/KrX3D/TizenTube2/internal/infrastructure/navigation"
	"github.com/KrX3D/TizenTube2/internal/infrastructure/settings"
	"github.com/KrX3D/TizenTube2/internal/infrastructure/userinteraction"
	"github.com/KrX3D/TizenTube2/internal/usecase/batch"
	"github.com/KrX3D/TizenTube2/internal/usecase/intercept"
	"github.com/KrX3D/TizenTube2/internal/usecase/scanner"
	"github.com/KrX3D/TizenTube2/internal/usecase/state"
)

// Decoder names registered in the container.
const (
	DecoderJSON   = "json"
	DecoderHijack = "hijack"
)

type Container struct {
	Logger      output.LoggerPort
	Settings    *settings.Store
	State       *state.Store
	Tally       *metrics.Tally
	Metrics     output.MetricsPort
	Decoders    *service.DecoderRegistry
	Interceptor *intercept.Interceptor
	Navigation  output.NavigationPort
	Browser     output.BrowserPort
	Reporter    output.ReportPort
}

type Config struct {
	Logger       logger.Config
	SettingsPath string
	// WatchSettings reloads the settings file when it changes on disk.
	WatchSettings bool
	// Navigation is used when no browser is started. Defaults to an empty
	// static state.
	Navigation output.NavigationPort
	// Browser starts a browser host when non-nil.
	Browser *rod.BrowserConfig
	// Registerer receives Prometheus collectors when non-nil.
	Registerer prometheus.Registerer
	Report     io.Writer
}

func NewContainer(ctx context.Context, cfg Config) (*Container, error) {
	log, err := logger.NewLoggerAdapter(cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	c := &Container{
		Logger:   log,
		Tally:    metrics.NewTally(),
		Decoders: service.NewDecoderRegistry(),
		Reporter: userinteraction.NewConsoleReporter(cfg.Report),
	}

	c.Settings, err = settings.NewStore(cfg.SettingsPath, log)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	if cfg.WatchSettings {
		if err := c.Settings.Watch(ctx); err != nil {
			c.Close()
			return nil, fmt.Errorf("failed to watch settings: %w", err)
		}
	}

	c.Metrics = c.Tally
	if cfg.Registerer != nil {
		c.Metrics = metrics.Multi{c.Tally, metrics.NewPrometheus(cfg.Registerer)}
	}

	c.Navigation = cfg.Navigation
	if cfg.Browser != nil {
		browser, err := rod.NewBrowserAdapter(ctx, *cfg.Browser, log)
		if err != nil {
			c.Close()
			return nil, fmt.Errorf("failed to create browser: %w", err)
		}
		c.Browser = browser
		c.Navigation = browser
	}
	if c.Navigation == nil {
		c.Navigation = navigation.NewStatic(entity.NavState{})
	}

	c.State = state.New(0)
	filter := batch.New(c.State, log.WithField("component", "batch"), c.Metrics)
	sc := scanner.New(filter, c.State, log.WithField("component", "scanner"), c.Metrics)
	c.Interceptor = intercept.New(c.Navigation, c.Settings, c.State, sc, log, c.Metrics)
	c.Interceptor.WatchSettings(c.Settings)

	c.Decoders.Register(DecoderJSON, codec.Decode)
	if c.Browser != nil {
		c.Decoders.Register(DecoderHijack, codec.Decode)
	}
	c.Interceptor.Install(c.Decoders)

	if c.Browser != nil {
		decode, _ := c.Decoders.Get(DecoderHijack)
		if err := c.Browser.InstallFilter(decode); err != nil {
			c.Close()
			return nil, fmt.Errorf("failed to install filter: %w", err)
		}
	}

	return c, nil
}

// Decode runs raw through the installed JSON decoder.
func (c *Container) Decode(raw []byte) (any, error) {
	decode, ok := c.Decoders.Get(DecoderJSON)
	if !ok {
		return nil, fmt.Errorf("decoder %q not registered", DecoderJSON)
	}
	return decode(raw)
}

// Summary reports what has been filtered so far.
func (c *Container) Summary() output.FilterSummary {
	page := ""
	if c.State != nil {
		page = c.State.LastPage().String()
	}
	return c.Tally.Summary(page)
}

func (c *Container) Close() {
	if c.Interceptor != nil {
		c.Interceptor.Close()
	}
	if c.Browser != nil {
		c.Browser.Close()
	}
	if c.Settings != nil {
		_ = c.Settings.Close()
	}
	if c.Logger != nil {
		_ = c.Logger.Close()
	}
}
