package rodwrapper

import (
	"context"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/ysmood/gson"
)

// TizenUserAgent makes the TV web app serve its living-room UI.
const TizenUserAgent = "Mozilla/5.0 (SMART-TV; LINUX; Tizen 6.5) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) 85.0.4183.93/6.5 TV Safari/537.36"

type Config struct {
	Headless   bool
	NoSandbox  bool
	Trace      bool
	SlowMotion time.Duration
	// Bin overrides the browser binary; empty lets the launcher find or fetch one.
	Bin string
}

// Browser owns the rod browser and the launcher process behind it.
type Browser struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
}

// NewBrowser launches a browser and connects to it.
func NewBrowser(ctx context.Context, cfg Config) (*Browser, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	l := launcher.New().
		Context(ctx).
		Headless(cfg.Headless).
		NoSandbox(cfg.NoSandbox).
		Delete("use-mock-keychain").
		Set("autoplay-policy", "no-user-gesture-required")
	if cfg.Bin != "" {
		l = l.Bin(cfg.Bin)
	}

	url, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	browser := rod.New().
		ControlURL(url).
		Trace(cfg.Trace).
		SlowMotion(cfg.SlowMotion)
	if err := browser.Connect(); err != nil {
		l.Kill()
		l.Cleanup()
		return nil, fmt.Errorf("connect browser: %w", err)
	}

	return &Browser{
		browser:  browser,
		launcher: l,
	}, nil
}

// Page opens about:blank with the TV user agent applied.
func (b *Browser) Page(timeout time.Duration) (*Page, error) {
	rodPage, err := b.browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return nil, fmt.Errorf("open page: %w", err)
	}
	if err := rodPage.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: TizenUserAgent}); err != nil {
		return nil, fmt.Errorf("set user agent: %w", err)
	}
	return NewPage(rodPage, timeout), nil
}

// Close closes the browser and kills its process.
func (b *Browser) Close() {
	if b.browser != nil {
		_ = b.browser.Close()
	}
	if b.launcher != nil {
		b.launcher.Kill()
		b.launcher.Cleanup()
	}
}

type Page struct {
	*rod.Page
	defaultTimeout time.Duration
}

func NewPage(rodPage *rod.Page, timeout time.Duration) *Page {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Page{
		Page:           rodPage,
		defaultTimeout: timeout,
	}
}

func (p *Page) DefaultTimeout() time.Duration {
	return p.defaultTimeout
}

// Location evaluates window.location into a JSON object with hash,
// pathname, search and href.
func (p *Page) Location() (gson.JSON, error) {
	res, err := p.Page.Timeout(p.defaultTimeout).Eval(`() => ({
		hash: location.hash,
		pathname: location.pathname,
		search: location.search,
		href: location.href,
	})`)
	if err != nil {
		return gson.JSON{}, fmt.Errorf("read location: %w", err)
	}
	return res.Value, nil
}
