package rod

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/tidwall/gjson"
	"github.com/ysmood/gson"

	"github.com/KrX3D/TizenTube2/internal/application/port/input"
	"github.com/KrX3D/TizenTube2/internal/application/port/output"
	"github.com/KrX3D/TizenTube2/internal/domain/entity"
	"github.com/KrX3D/TizenTube2/internal/infrastructure/browser/rodwrapper"
	"github.com/KrX3D/TizenTube2/internal/infrastructure/codec"
)

var _ output.BrowserPort = (*BrowserAdapter)(nil)

const (
	defaultTimeout       = 10 * time.Second
	defaultHijackPattern = "*/youtubei/v1/*"
)

type BrowserAdapter struct {
	mu sync.Mutex

	browser *rodwrapper.Browser
	page    *rodwrapper.Page
	router  *rod.HijackRouter
	client  *http.Client
	logger  output.LoggerPort

	timeout time.Duration
	pattern string

	lastNav entity.NavState
	closed  bool
}

type BrowserConfig struct {
	Headless   bool
	NoSandbox  bool
	Trace      bool
	SlowMotion time.Duration
	Timeout    time.Duration
	// HijackPattern selects the requests whose JSON bodies are filtered.
	HijackPattern string
}

func DefaultConfig() BrowserConfig {
	return BrowserConfig{
		Headless:      false,
		NoSandbox:     true,
		Timeout:       defaultTimeout,
		HijackPattern: defaultHijackPattern,
	}
}

func NewBrowserAdapter(ctx context.Context, cfg BrowserConfig, logger output.LoggerPort) (*BrowserAdapter, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.HijackPattern == "" {
		cfg.HijackPattern = defaultHijackPattern
	}

	browser, err := rodwrapper.NewBrowser(ctx, rodwrapper.Config{
		Headless:   cfg.Headless,
		NoSandbox:  cfg.NoSandbox,
		Trace:      cfg.Trace,
		SlowMotion: cfg.SlowMotion,
	})
	if err != nil {
		return nil, err
	}

	page, err := browser.Page(cfg.Timeout)
	if err != nil {
		browser.Close()
		return nil, err
	}

	return &BrowserAdapter{
		browser: browser,
		page:    page,
		client:  &http.Client{Timeout: cfg.Timeout * 3},
		logger:  logger.WithField("component", "browser"),
		timeout: cfg.Timeout,
		pattern: cfg.HijackPattern,
	}, nil
}

func (b *BrowserAdapter) Navigate(ctx context.Context, url string) error {
	if err := b.page.Context(ctx).Navigate(url); err != nil {
		return fmt.Errorf("navigate to %s: %w", url, err)
	}
	if err := b.page.Timeout(b.timeout).WaitLoad(); err != nil {
		return fmt.Errorf("wait for load: %w", err)
	}
	b.logger.Info("Navigated", "url", url)
	return nil
}

// NavigationState reads the page location. When the page cannot be
// evaluated the last known state is returned.
func (b *BrowserAdapter) NavigationState() entity.NavState {
	loc, err := b.page.Location()

	b.mu.Lock()
	defer b.mu.Unlock()
	if err != nil {
		b.logger.Debug("Location unavailable, using last known state", "error", err)
		return b.lastNav
	}
	b.lastNav = navStateFromJSON(loc)
	return b.lastNav
}

func navStateFromJSON(v gson.JSON) entity.NavState {
	return entity.NavState{
		Hash:   v.Get("hash").Str(),
		Path:   v.Get("pathname").Str(),
		Search: v.Get("search").Str(),
		Href:   v.Get("href").Str(),
	}
}

// InstallFilter routes every matching JSON response body through decode and
// hands the re-encoded tree to the page. Installing again replaces the
// previous filter.
func (b *BrowserAdapter) InstallFilter(decode input.DecodeFunc) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return fmt.Errorf("install filter: browser closed")
	}
	if b.router != nil {
		if err := b.router.Stop(); err != nil {
			b.logger.Warn("Failed to stop previous hijack router", "error", err)
		}
	}

	router := b.page.HijackRequests()
	if err := router.Add(b.pattern, "", func(h *rod.Hijack) {
		b.filterResponse(h, decode)
	}); err != nil {
		return fmt.Errorf("add hijack route %s: %w", b.pattern, err)
	}
	go router.Run()

	b.router = router
	b.logger.Info("Response filter installed", "pattern", b.pattern)
	return nil
}

func (b *BrowserAdapter) filterResponse(h *rod.Hijack, decode input.DecodeFunc) {
	if err := h.LoadResponse(b.client, true); err != nil {
		b.logger.Warn("Failed to load response", "url", h.Request.URL().String(), "error", err)
		h.Response.Fail(proto.NetworkErrorReasonFailed)
		return
	}

	body := h.Response.Body()
	if !gjson.Valid(body) {
		return
	}

	tree, err := decode([]byte(body))
	if err != nil {
		b.logger.Warn("Failed to decode response", "url", h.Request.URL().String(), "error", err)
		return
	}

	out, err := codec.Encode(tree)
	if err != nil {
		b.logger.Error("Failed to encode filtered response", "url", h.Request.URL().String(), "error", err)
		return
	}
	h.Response.SetBody(out)
}

func (b *BrowserAdapter) CurrentURL() string {
	info, err := b.page.Info()
	if err != nil {
		return ""
	}
	return info.URL
}

// Page exposes the underlying page for callers that need direct access.
func (b *BrowserAdapter) Page() *rodwrapper.Page {
	return b.page
}

func (b *BrowserAdapter) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	if b.router != nil {
		_ = b.router.Stop()
	}
	b.browser.Close()
}
