// Package testutil builds response-tree fragments for tests.
package testutil

import (
	"testing"

	jsoniter "github.com/json-iterator/go"
)

type Option func(renderer map[string]any)

func overlaysOf(r map[string]any) []any {
	header, _ := r["header"].(map[string]any)
	if header == nil {
		header = map[string]any{}
		r["header"] = header
	}
	thr, _ := header["tileHeaderRenderer"].(map[string]any)
	if thr == nil {
		thr = map[string]any{}
		header["tileHeaderRenderer"] = thr
	}
	overlays, _ := thr["thumbnailOverlays"].([]any)
	return overlays
}

func appendTileOverlay(r map[string]any, overlay map[string]any) {
	overlays := overlaysOf(r)
	r["header"].(map[string]any)["tileHeaderRenderer"].(map[string]any)["thumbnailOverlays"] = append(overlays, overlay)
}

// Tile returns a TV tileRenderer item with a landscape thumbnail.
func Tile(id, title string, opts ...Option) map[string]any {
	r := map[string]any{
		"metadata": map[string]any{
			"tileMetadataRenderer": map[string]any{
				"title": map[string]any{"simpleText": title},
			},
		},
		"header": map[string]any{
			"tileHeaderRenderer": map[string]any{
				"thumbnail": map[string]any{
					"thumbnails": []any{
						map[string]any{"url": "https://i.ytimg.com/vi/x/default.jpg", "width": float64(320), "height": float64(180)},
					},
				},
			},
		},
	}
	if id != "" {
		r["contentId"] = id
		r["onSelectCommand"] = map[string]any{
			"watchEndpoint": map[string]any{"videoId": id},
		}
	}
	for _, opt := range opts {
		opt(r)
	}
	return map[string]any{"tileRenderer": r}
}

// PlaylistVideo returns a playlistVideoRenderer item.
func PlaylistVideo(id, title string, opts ...Option) map[string]any {
	r := map[string]any{
		"title":      map[string]any{"runs": []any{map[string]any{"text": title}}},
		"lengthText": map[string]any{"simpleText": "12:34"},
	}
	if id != "" {
		r["videoId"] = id
	}
	for _, opt := range opts {
		opt(r)
	}
	return map[string]any{"playlistVideoRenderer": r}
}

// Video returns a web videoRenderer item.
func Video(id, title string, opts ...Option) map[string]any {
	r := map[string]any{
		"videoId":    id,
		"title":      map[string]any{"runs": []any{map[string]any{"text": title}}},
		"lengthText": map[string]any{"simpleText": "1:02:03"},
	}
	for _, opt := range opts {
		opt(r)
	}
	return map[string]any{"videoRenderer": r}
}

// WithDuration adds a time-status overlay to a tile.
func WithDuration(text string) Option {
	return func(r map[string]any) {
		appendTileOverlay(r, map[string]any{
			"thumbnailOverlayTimeStatusRenderer": map[string]any{
				"text":  map[string]any{"simpleText": text},
				"style": "DEFAULT",
			},
		})
	}
}

// WithLength sets lengthText on non-tile renderers.
func WithLength(text string) Option {
	return func(r map[string]any) {
		r["lengthText"] = map[string]any{"simpleText": text}
	}
}

// WithProgress adds a resume-playback overlay.
func WithProgress(pct float64) Option {
	return func(r map[string]any) {
		overlay := map[string]any{
			"thumbnailOverlayResumePlaybackRenderer": map[string]any{
				"percentDurationWatched": pct,
			},
		}
		if _, isTile := r["metadata"]; isTile {
			appendTileOverlay(r, overlay)
			return
		}
		existing, _ := r["thumbnailOverlays"].([]any)
		r["thumbnailOverlays"] = append(existing, overlay)
	}
}

func WithShortsBadge() Option {
	return func(r map[string]any) {
		appendTileOverlay(r, map[string]any{
			"thumbnailOverlayTimeStatusRenderer": map[string]any{
				"text":  map[string]any{"runs": []any{map[string]any{"text": "SHORTS"}}},
				"style": "SHORTS",
			},
		})
	}
}

func WithShortsType() Option {
	return func(r map[string]any) {
		r["tvhtml5ShelfRendererType"] = "TVHTML5_TILE_RENDERER_TYPE_SHORTS"
	}
}

func WithReelEndpoint() Option {
	return func(r map[string]any) {
		r["onSelectCommand"] = map[string]any{
			"reelWatchEndpoint": map[string]any{"videoId": r["contentId"]},
		}
	}
}

func WithPortraitThumbnail() Option {
	return func(r map[string]any) {
		thumb := map[string]any{
			"thumbnails": []any{
				map[string]any{"width": float64(405), "height": float64(720)},
			},
		}
		if _, isTile := r["metadata"]; isTile {
			r["header"].(map[string]any)["tileHeaderRenderer"].(map[string]any)["thumbnail"] = thumb
			return
		}
		r["thumbnail"] = thumb
	}
}

// Shelf returns a shelfRenderer with a horizontal list.
func Shelf(title string, items ...any) map[string]any {
	return map[string]any{
		"shelfRenderer": map[string]any{
			"title": map[string]any{"runs": []any{map[string]any{"text": title}}},
			"content": map[string]any{
				"horizontalListRenderer": map[string]any{
					"items": append([]any{}, items...),
				},
			},
		},
	}
}

// ShelfItems returns the horizontal list of a shelf built by Shelf.
func ShelfItems(shelf any) []any {
	m, _ := shelf.(map[string]any)
	sr, _ := m["shelfRenderer"].(map[string]any)
	content, _ := sr["content"].(map[string]any)
	hl, _ := content["horizontalListRenderer"].(map[string]any)
	items, _ := hl["items"].([]any)
	return items
}

func Items(nodes ...map[string]any) []any {
	out := make([]any, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n)
	}
	return out
}

// Decode parses a JSON document into a generic tree.
func Decode(t testing.TB, raw string) any {
	t.Helper()
	var v any
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal([]byte(raw), &v); err != nil {
		t.Fatalf("decode fixture: %v", err)
	}
	return v
}

// IDs returns the contentId/videoId of every recognisable item.
func IDs(items []any) []string {
	var ids []string
	for _, it := range items {
		m, _ := it.(map[string]any)
		for _, key := range []string{"tileRenderer", "playlistVideoRenderer", "videoRenderer"} {
			r, _ := m[key].(map[string]any)
			if r == nil {
				continue
			}
			if id, ok := r["contentId"].(string); ok {
				ids = append(ids, id)
			} else if id, ok := r["videoId"].(string); ok {
				ids = append(ids, id)
			}
		}
	}
	return ids
}
