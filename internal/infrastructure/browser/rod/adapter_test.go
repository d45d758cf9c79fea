package rod

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-rod/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ysmood/gson"

	"github.com/KrX3D/TizenTube2/internal/infrastructure/codec"
	"github.com/KrX3D/TizenTube2/internal/infrastructure/logger"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.False(t, cfg.Headless)
	assert.True(t, cfg.NoSandbox)
	assert.Equal(t, defaultTimeout, cfg.Timeout)
	assert.Equal(t, defaultHijackPattern, cfg.HijackPattern)
}

func TestNavStateFromJSON(t *testing.T) {
	state := navStateFromJSON(gson.New(map[string]any{
		"hash":     "#/browse?c=FElibrary",
		"pathname": "/tv",
		"search":   "?env=prod",
		"href":     "https://www.youtube.com/tv?env=prod#/browse?c=FElibrary",
	}))

	assert.Equal(t, "#/browse?c=FElibrary", state.Hash)
	assert.Equal(t, "/tv", state.Path)
	assert.Equal(t, "?env=prod", state.Search)
	assert.Contains(t, state.Href, "youtube.com")
}

func TestNavStateFromJSON_Missing(t *testing.T) {
	state := navStateFromJSON(gson.New(nil))
	assert.Empty(t, state.Hash)
	assert.Empty(t, state.Href)
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/tv", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(fetchHTML))
	})
	mux.HandleFunc("/youtubei/v1/browse", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(browseJSON))
	})
	mux.HandleFunc("/youtubei/v1/raw", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("plain text"))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestAdapter(t *testing.T) *BrowserAdapter {
	t.Helper()
	if testing.Short() {
		t.Skip("browser tests are skipped in short mode")
	}
	cfg := DefaultConfig()
	cfg.Headless = true

	adapter, err := NewBrowserAdapter(context.Background(), cfg, logger.NewNopLogger())
	if err != nil {
		t.Skipf("browser unavailable: %v", err)
	}
	t.Cleanup(adapter.Close)
	return adapter
}

func waitResult(t *testing.T, a *BrowserAdapter) gson.JSON {
	t.Helper()
	require.NoError(t, a.Page().Timeout(10*time.Second).Wait(rod.Eval(`() => window.done === true`)))
	res, err := a.Page().Eval(`() => window.result`)
	require.NoError(t, err)
	return res.Value
}

func TestBrowserAdapter_FiltersJSONResponses(t *testing.T) {
	srv := newTestServer(t)
	a := newTestAdapter(t)

	var calls atomic.Int32
	require.NoError(t, a.InstallFilter(func(raw []byte) (any, error) {
		calls.Add(1)
		tree, err := codec.Decode(raw)
		if err != nil {
			return nil, err
		}
		delete(tree.(map[string]any)["contents"].(map[string]any), "drop")
		return tree, nil
	}))

	require.NoError(t, a.Navigate(context.Background(), srv.URL+"/tv?api=/youtubei/v1/browse"))
	result := waitResult(t, a)

	assert.EqualValues(t, 1, calls.Load())
	assert.True(t, result.Get("contents.drop").Nil())
	assert.Len(t, result.Get("contents.keep").Arr(), 2)
}

func TestBrowserAdapter_NonJSONPassesThrough(t *testing.T) {
	srv := newTestServer(t)
	a := newTestAdapter(t)

	var calls atomic.Int32
	require.NoError(t, a.InstallFilter(func(raw []byte) (any, error) {
		calls.Add(1)
		return codec.Decode(raw)
	}))

	require.NoError(t, a.Navigate(context.Background(), srv.URL+"/tv?api=/youtubei/v1/raw"))

	assert.Equal(t, "plain text", waitResult(t, a).Str())
	assert.EqualValues(t, 0, calls.Load())
}

func TestBrowserAdapter_NavigationState(t *testing.T) {
	srv := newTestServer(t)
	a := newTestAdapter(t)

	require.NoError(t, a.Navigate(context.Background(), srv.URL+"/tv?api=/none#/browse?c=FEsubscriptions"))

	state := a.NavigationState()
	assert.Equal(t, "#/browse?c=FEsubscriptions", state.Hash)
	assert.Equal(t, "/tv", state.Path)
	assert.Equal(t, srv.URL+"/tv?api=/none#/browse?c=FEsubscriptions", a.CurrentURL())
}

func TestBrowserAdapter_InstallAfterClose(t *testing.T) {
	a := newTestAdapter(t)
	a.Close()

	assert.Error(t, a.InstallFilter(codec.Decode))
	assert.NotPanics(t, a.Close)
}
