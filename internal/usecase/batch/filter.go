package batch

import (
	"fmt"

	"github.com/KrX3D/TizenTube2/internal/application/port/output"
	"github.com/KrX3D/TizenTube2/internal/domain/entity"
	"github.com/KrX3D/TizenTube2/internal/usecase/predicate"
	"github.com/KrX3D/TizenTube2/internal/usecase/state"
)

const (
	ReasonAd          = "ad"
	ReasonWatched     = "watched"
	ReasonShortMemory = "shorts_memory"
)

// Filter applies the per-item predicates to one flat array of items.
type Filter struct {
	state   *state.Store
	logger  output.LoggerPort
	metrics output.MetricsPort
}

func New(st *state.Store, logger output.LoggerPort, metrics output.MetricsPort) *Filter {
	if st == nil {
		st = &state.Store{}
	}
	return &Filter{
		state:   st,
		logger:  logger,
		metrics: metrics,
	}
}

// FilterBatch returns the items that survive filtering on page. A non-final
// playlist batch is never returned empty: the last identifiable item is kept
// as a helper so the host keeps requesting the next page.
func (f *Filter) FilterBatch(items []any, page entity.PageContext, policy entity.FilterPolicy) []any {
	if len(items) == 0 {
		return items
	}
	kept := f.Keep(items, page, policy)
	out := make([]any, 0, len(kept))
	for _, idx := range kept {
		out = append(out, items[idx])
	}
	return out
}

// Keep is FilterBatch reporting the indexes of the surviving items, in order.
func (f *Filter) Keep(items []any, page entity.PageContext, policy entity.FilterPolicy) []int {
	if len(items) == 0 {
		return nil
	}

	rules := predicate.RulesFromPolicy(policy)
	lastBatch := f.state.LastBatch()
	kept := make([]int, 0, len(items))
	for idx, node := range items {
		if page.IsPlaylist() && !lastBatch && f.isHelper(node) {
			kept = append(kept, idx)
			continue
		}
		if f.keep(idx, node, page, policy, rules) {
			kept = append(kept, idx)
		}
	}

	if page.IsPlaylist() && len(kept) == 0 && !lastBatch {
		idx, id := lastIdentifiable(items)
		f.state.RegisterHelper(id, items[idx])
		f.metrics.HelperKept()
		f.logger.Debug("Kept helper item to preserve pagination",
			"page", page,
			"video_id", id,
			"batch_size", len(items),
		)
		return []int{idx}
	}

	if page.IsPlaylist() && lastBatch {
		f.state.ClearHelpers()
	}

	if removed := len(items) - len(kept); removed > 0 {
		f.logger.Debug("Batch filtered",
			"page", page,
			"before", len(items),
			"after", len(kept),
		)
	}
	return kept
}

// isHelper reports whether node is a helper item kept by an earlier pass.
func (f *Filter) isHelper(node any) bool {
	if id := entity.ParseItem(node).ID(); id != "" && f.state.IsHelper(id) {
		return true
	}
	return f.state.IsHelperNode(node)
}

// keep evaluates one item. Any panic keeps the item.
func (f *Filter) keep(idx int, node any, page entity.PageContext, policy entity.FilterPolicy, rules predicate.ShortRules) (keep bool) {
	if node == nil {
		return true
	}

	defer func() {
		if r := recover(); r != nil {
			keep = true
			f.metrics.ItemError()
			f.logger.Error("Item evaluation failed, keeping item",
				"page", page,
				"index", idx,
				"error", fmt.Sprint(r),
			)
		}
	}()

	reason := f.dropReason(entity.ParseItem(node), page, policy, rules)
	if reason == "" {
		return true
	}
	f.metrics.ItemRemoved(reason)
	return false
}

func (f *Filter) dropReason(item entity.VideoItem, page entity.PageContext, policy entity.FilterPolicy, rules predicate.ShortRules) string {
	if item.Kind == entity.KindAd {
		if policy.AdBlock {
			return ReasonAd
		}
		return ""
	}

	if policy.ShortsActive(page) {
		if r := predicate.ShortFormReason(item, page, rules); r != predicate.ReasonNone {
			return "shorts_" + string(r)
		}
		if f.state.IsKnownShort(item) {
			return ReasonShortMemory
		}
	}

	// Items without a progress overlay are never treated as watched, which
	// matters most on playlist pages where they must stay visible.
	if policy.WatchedActive(page) && predicate.IsWatchedBeyondThreshold(item, policy.WatchedThreshold) {
		return ReasonWatched
	}

	return ""
}

// lastIdentifiable returns the index of the last item with a resolvable video
// id, or of the literal last item with an empty id.
func lastIdentifiable(items []any) (int, string) {
	for i := len(items) - 1; i >= 0; i-- {
		if id := entity.ParseItem(items[i]).ID(); id != "" {
			return i, id
		}
	}
	return len(items) - 1, ""
}
