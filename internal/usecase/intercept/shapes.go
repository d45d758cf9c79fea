package intercept

import "github.com/KrX3D/TizenTube2/internal/domain/entity"

const shapeAds = "ads"

// adPayloadKeys are top-level fields that only carry ad placements.
var adPayloadKeys = []string{"adPlacements", "playerAds", "adSlots"}

func stripAdPayload(root map[string]any) []string {
	var stripped []string
	for _, k := range adPayloadKeys {
		if _, ok := root[k]; ok {
			delete(root, k)
			stripped = append(stripped, k)
		}
	}
	return stripped
}

// shape is one known response layout and the subtree it routes to the scanner.
type shape struct {
	name  string
	match func(root map[string]any) bool
	apply func(i *Interceptor, root map[string]any, page entity.PageContext, policy entity.FilterPolicy)
}

// scanAt scans the object at path and stores the result back into its parent.
func (i *Interceptor) scanAt(root map[string]any, page entity.PageContext, policy entity.FilterPolicy, path ...string) {
	parent := root
	if len(path) > 1 {
		parent = entity.DigMap(root, path[:len(path)-1]...)
	}
	if parent == nil {
		return
	}
	key := path[len(path)-1]
	parent[key] = i.scanner.Scan(parent[key], page, policy)
}

func pathShape(name string, path ...string) shape {
	return shape{
		name:  name,
		match: func(root map[string]any) bool { return entity.Dig(root, path...) != nil },
		apply: func(i *Interceptor, root map[string]any, page entity.PageContext, policy entity.FilterPolicy) {
			i.scanAt(root, page, policy, path...)
		},
	}
}

var (
	browsePath         = []string{"contents", "tvBrowseRenderer", "content", "tvSurfaceContentRenderer", "content"}
	secondaryNavPath   = []string{"contents", "tvBrowseRenderer", "content", "tvSecondaryNavRenderer", "sections"}
	sectionListPath    = []string{"contents", "sectionListRenderer", "contents"}
	singleColumnPath   = []string{"contents", "singleColumnBrowseResultsRenderer"}
	watchNextPivotPath = []string{"contents", "singleColumnWatchNextResults", "pivot", "sectionListRenderer"}

	sectionListContinuationPath = []string{"continuationContents", "sectionListContinuation"}
	playlistContinuationPath    = []string{"continuationContents", "playlistVideoListContinuation"}
	horizontalContinuationPath  = []string{"continuationContents", "horizontalListContinuation"}
	gridContinuationPath        = []string{"continuationContents", "gridContinuation"}
)

// shapes is the dispatch table. Every matching entry is applied.
var shapes = []shape{
	{
		name:  "browse",
		match: func(root map[string]any) bool { return entity.Dig(root, browsePath...) != nil },
		apply: applyBrowse,
	},
	pathShape("secondary_nav", secondaryNavPath...),
	pathShape("section_list", sectionListPath...),
	pathShape("section_list_continuation", sectionListContinuationPath...),
	{
		name:  "playlist_continuation",
		match: func(root map[string]any) bool { return entity.Dig(root, playlistContinuationPath...) != nil },
		apply: applyPlaylistContinuation,
	},
	{
		name:  "appended_items",
		match: func(root map[string]any) bool { return len(appendedItemLists(root)) > 0 },
		apply: applyAppendedItems,
	},
	pathShape("horizontal_list_continuation", horizontalContinuationPath...),
	pathShape("grid_continuation", gridContinuationPath...),
	{
		name:  "single_column_browse",
		match: func(root map[string]any) bool { return entity.Dig(root, singleColumnPath...) != nil },
		apply: applySingleColumn,
	},
	pathShape("watch_next_pivot", watchNextPivotPath...),
}

// applyBrowse handles a freshly loaded page.
func applyBrowse(i *Interceptor, root map[string]any, page entity.PageContext, policy entity.FilterPolicy) {
	i.beginListing(root, page, browsePath)
	i.scanAt(root, page, policy, browsePath...)
}

func applySingleColumn(i *Interceptor, root map[string]any, page entity.PageContext, policy entity.FilterPolicy) {
	i.beginListing(root, page, singleColumnPath)
	i.scanAt(root, page, policy, singleColumnPath...)
}

// beginListing restarts pagination bookkeeping for a fresh listing. On
// playlist pages the listing is final when path holds no continuation.
func (i *Interceptor) beginListing(root map[string]any, page entity.PageContext, path []string) {
	i.state.BeginNavigation()
	if page.IsPlaylist() {
		i.state.SetLastBatch(!hasContinuation(entity.Dig(root, path...)))
	}
}

func applyPlaylistContinuation(i *Interceptor, root map[string]any, page entity.PageContext, policy entity.FilterPolicy) {
	cont := entity.DigMap(root, playlistContinuationPath...)
	last := len(entity.AsSlice(cont["continuations"])) == 0
	i.state.SetLastBatch(last)
	i.logger.Debug("Playlist continuation", "page", page, "last_batch", last)
	i.scanAt(root, page, policy, playlistContinuationPath...)
}

// itemList points at one appended continuationItems array.
type itemList struct {
	parent map[string]any
	key    string
}

var appendedActionKeys = []string{"appendContinuationItemsAction", "reloadContinuationItemsCommand"}

func appendedItemLists(root map[string]any) []itemList {
	var lists []itemList
	for _, top := range []string{"onResponseReceivedActions", "onResponseReceivedEndpoints"} {
		for _, action := range entity.AsSlice(root[top]) {
			for _, k := range appendedActionKeys {
				body := entity.DigMap(action, k)
				if body == nil {
					continue
				}
				if _, ok := body["continuationItems"].([]any); ok {
					lists = append(lists, itemList{parent: body, key: "continuationItems"})
				}
			}
		}
	}
	return lists
}

// applyAppendedItems scans each appended list on its own. On playlist pages
// a list without a trailing continuation marks the final batch.
func applyAppendedItems(i *Interceptor, root map[string]any, page entity.PageContext, policy entity.FilterPolicy) {
	for _, l := range appendedItemLists(root) {
		if page.IsPlaylist() {
			i.state.SetLastBatch(!hasContinuation(l.parent[l.key]))
		}
		l.parent[l.key] = i.scanner.Scan(l.parent[l.key], page, policy)
	}
}

// hasContinuation reports whether node contains a continuation token or a
// continuation item anywhere below it.
func hasContinuation(node any) bool {
	switch v := node.(type) {
	case map[string]any:
		if len(entity.AsSlice(v["continuations"])) > 0 {
			return true
		}
		if v["continuationItemRenderer"] != nil {
			return true
		}
		for _, child := range v {
			if hasContinuation(child) {
				return true
			}
		}
	case []any:
		for _, child := range v {
			if hasContinuation(child) {
				return true
			}
		}
	}
	return false
}
