// Package intercept is the single entry point through which every decoded
// response passes before the host application sees it.
package intercept

import (
	"fmt"
	"sync"

	"github.com/KrX3D/TizenTube2/internal/application/port/input"
	"github.com/KrX3D/TizenTube2/internal/application/port/output"
	"github.com/KrX3D/TizenTube2/internal/application/service"
	"github.com/KrX3D/TizenTube2/internal/domain/entity"
	"github.com/KrX3D/TizenTube2/internal/usecase/classifier"
	"github.com/KrX3D/TizenTube2/internal/usecase/scanner"
	"github.com/KrX3D/TizenTube2/internal/usecase/state"
)

var _ input.ResponseFilter = (*Interceptor)(nil)

// ProcessedMarker is set on every root object that has been filtered.
const ProcessedMarker = "__tvfilterProcessed"

const (
	ShapeFallback     = "fallback"
	ShapeUnrecognized = "unrecognized"
)

type Interceptor struct {
	mu sync.Mutex

	nav      output.NavigationPort
	settings output.SettingsReader
	state    *state.Store
	scanner  *scanner.Scanner
	logger   output.LoggerPort
	metrics  output.MetricsPort

	cancelSettings func()
}

func New(
	nav output.NavigationPort,
	settings output.SettingsReader,
	st *state.Store,
	sc *scanner.Scanner,
	logger output.LoggerPort,
	metrics output.MetricsPort,
) *Interceptor {
	if st == nil {
		st = &state.Store{}
	}
	st.Resize(LoadPolicy(settings).ShortsMemorySize)
	return &Interceptor{
		nav:      nav,
		settings: settings,
		state:    st,
		scanner:  sc,
		logger:   logger.WithField("component", "intercept"),
		metrics:  metrics,
	}
}

// Install wraps every decoder registered in registry. Decoders that are
// already wrapped are left alone, so Install may be called repeatedly as the
// host exposes new aliases.
func (i *Interceptor) Install(registry *service.DecoderRegistry) int {
	n := registry.WrapAll(i.Wrap)
	if n > 0 {
		i.logger.Info("Installed response filter", "decoders", n, "aliases", registry.Names())
	}
	return n
}

// Wrap returns a decode function that filters every successfully decoded tree.
// If filtering fails the raw payload is decoded again and returned untouched.
func (i *Interceptor) Wrap(decode input.DecodeFunc) input.DecodeFunc {
	return func(raw []byte) (any, error) {
		tree, err := decode(raw)
		if err != nil {
			return tree, err
		}

		out, perr := i.process(tree)
		if perr == nil {
			return out, nil
		}

		fresh, derr := decode(raw)
		if derr != nil {
			return tree, nil
		}
		return fresh, nil
	}
}

// Process filters tree in place and returns it. It never panics; on failure
// the tree is returned as it stands.
func (i *Interceptor) Process(tree any) any {
	out, err := i.process(tree)
	if err != nil {
		return tree
	}
	return out
}

func (i *Interceptor) process(tree any) (out any, err error) {
	root, ok := tree.(map[string]any)
	if !ok {
		return tree, nil
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	if processed, _ := root[ProcessedMarker].(bool); processed {
		return tree, nil
	}

	snap := i.state.Snapshot()
	defer func() {
		if r := recover(); r != nil {
			i.state.Restore(snap)
			err = fmt.Errorf("filter response: %v", r)
			i.metrics.ItemError()
			i.logger.Error("Response filtering failed, returning unfiltered tree", "error", err)
		}
	}()

	nav := i.navigation()
	page := i.state.ResolvePage(classifier.Classify(nav))
	policy := LoadPolicy(i.settings)

	// The final-batch flag only holds for the response that carried it.
	i.state.SetLastBatch(false)

	i.dispatch(root, page, policy)

	root[ProcessedMarker] = true
	return root, nil
}

func (i *Interceptor) navigation() entity.NavState {
	if i.nav == nil {
		return entity.NavState{}
	}
	return i.nav.NavigationState()
}

func (i *Interceptor) dispatch(root map[string]any, page entity.PageContext, policy entity.FilterPolicy) {
	if policy.AdBlock {
		if stripped := stripAdPayload(root); len(stripped) > 0 {
			i.metrics.ResponseSeen(shapeAds)
			i.logger.Debug("Stripped ad payload", "keys", stripped)
		}
	}

	matched := false
	for _, sh := range shapes {
		if !sh.match(root) {
			continue
		}
		matched = true
		i.metrics.ResponseSeen(sh.name)
		i.logger.Debug("Filtering response", "shape", sh.name, "page", page)
		sh.apply(i, root, page, policy)
	}

	if entity.FallbackScanPages[page] {
		i.metrics.ResponseSeen(ShapeFallback)
		i.logger.Debug("Scanning whole response", "page", page)
		i.scanner.Scan(root, page, policy)
		return
	}
	if !matched {
		i.metrics.ResponseSeen(ShapeUnrecognized)
	}
}

// WatchSettings reacts to setting changes that affect cross-request state.
func (i *Interceptor) WatchSettings(settings output.SettingsPort) {
	if i.cancelSettings != nil {
		i.cancelSettings()
	}
	i.cancelSettings = settings.Subscribe(i.onSettingChange)
}

func (i *Interceptor) onSettingChange(change output.SettingChange) {
	i.mu.Lock()
	defer i.mu.Unlock()

	switch change.Key {
	case entity.SettingEnableShorts:
		i.state.ResetShortMemory()
		i.logger.Info("Short-form setting changed, memory cleared", "value", change.Value)
	case entity.SettingShortsMemorySize:
		if n, ok := entity.Number(change.Value); ok && n > 0 {
			i.state.Resize(int(n))
			i.logger.Info("Short-form memory resized", "size", int(n))
		}
	}
}

func (i *Interceptor) Close() {
	if i.cancelSettings != nil {
		i.cancelSettings()
		i.cancelSettings = nil
	}
}

// State exposes the cross-request store for reporting.
func (i *Interceptor) State() *state.Store {
	return i.state
}
