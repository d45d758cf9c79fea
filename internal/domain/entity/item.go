package entity

import (
	"strconv"
	"strings"
)

type ItemKind string

const (
	KindUnknown       ItemKind = "unknown"
	KindTile          ItemKind = "tile"
	KindVideo         ItemKind = "video"
	KindGrid          ItemKind = "grid"
	KindCompact       ItemKind = "compact"
	KindPlaylistVideo ItemKind = "playlist_video"
	KindRichVideo     ItemKind = "rich_video"
	KindReel          ItemKind = "reel"
	KindAd            ItemKind = "ad"
)

const (
	TileTypeShorts        = "TVHTML5_TILE_RENDERER_TYPE_SHORTS"
	TileContentTypeShorts = "TILE_CONTENT_TYPE_SHORTS"
	ShelfTypeShorts       = "TVHTML5_SHELF_RENDERER_TYPE_SHORTS"
	OverlayStyleShorts    = "SHORTS"
	WebPageTypeShorts     = "WEB_PAGE_TYPE_SHORTS"
)

// VideoItem is one entry of a video array, resolved to its renderer kind.
// An unrecognised node gets KindUnknown and every accessor returns zero values.
type VideoItem struct {
	Kind     ItemKind
	node     map[string]any
	renderer map[string]any
}

func ParseItem(v any) VideoItem {
	node := AsMap(v)
	if node == nil {
		return VideoItem{Kind: KindUnknown}
	}

	direct := []struct {
		key  string
		kind ItemKind
	}{
		{"tileRenderer", KindTile},
		{"playlistVideoRenderer", KindPlaylistVideo},
		{"compactVideoRenderer", KindCompact},
		{"gridVideoRenderer", KindGrid},
		{"videoRenderer", KindVideo},
		{"reelItemRenderer", KindReel},
		{"shortsLockupViewModel", KindReel},
	}
	for _, d := range direct {
		if r := AsMap(node[d.key]); r != nil {
			return VideoItem{Kind: d.kind, node: node, renderer: r}
		}
	}

	if content := DigMap(node, "richItemRenderer", "content"); content != nil {
		if r := AsMap(content["videoRenderer"]); r != nil {
			return VideoItem{Kind: KindRichVideo, node: node, renderer: r}
		}
		if r := AsMap(content["reelItemRenderer"]); r != nil {
			return VideoItem{Kind: KindReel, node: node, renderer: r}
		}
		if r := AsMap(content["shortsLockupViewModel"]); r != nil {
			return VideoItem{Kind: KindReel, node: node, renderer: r}
		}
		if r := AsMap(content["adSlotRenderer"]); r != nil {
			return VideoItem{Kind: KindAd, node: node, renderer: r}
		}
	}

	for _, key := range []string{"adSlotRenderer", "tvMastheadRenderer"} {
		if r := AsMap(node[key]); r != nil {
			return VideoItem{Kind: KindAd, node: node, renderer: r}
		}
	}

	return VideoItem{Kind: KindUnknown, node: node}
}

// IsVideo reports whether the item is one of the video tile kinds.
func (i VideoItem) IsVideo() bool {
	return i.Kind != KindUnknown && i.Kind != KindAd
}

func (i VideoItem) Node() map[string]any {
	return i.node
}

func (i VideoItem) ID() string {
	if i.renderer == nil {
		return ""
	}
	if i.Kind == KindTile {
		if id := DigString(i.renderer, "contentId"); id != "" {
			return id
		}
		return DigString(i.renderer, "onSelectCommand", "watchEndpoint", "videoId")
	}
	if id := DigString(i.renderer, "videoId"); id != "" {
		return id
	}
	if id := DigString(i.renderer, "entityId"); id != "" {
		return id
	}
	return DigString(i.renderer, "navigationEndpoint", "watchEndpoint", "videoId")
}

func (i VideoItem) Title() string {
	if i.renderer == nil {
		return ""
	}
	switch i.Kind {
	case KindTile:
		return Text(Dig(i.renderer, "metadata", "tileMetadataRenderer", "title"))
	case KindReel:
		if t := Text(i.renderer["headline"]); t != "" {
			return t
		}
		return Text(Dig(i.renderer, "overlayMetadata", "primaryText"))
	}
	return Text(i.renderer["title"])
}

// Overlays collects thumbnail overlay objects from every location the
// different client generations use.
func (i VideoItem) Overlays() []map[string]any {
	if i.renderer == nil {
		return nil
	}
	sources := []any{
		i.renderer["thumbnailOverlays"],
		Dig(i.renderer, "header", "tileHeaderRenderer", "thumbnailOverlays"),
		Dig(i.renderer, "thumbnail", "thumbnailOverlays"),
		i.renderer["thumbnailOverlayRenderer"],
		i.renderer["overlay"],
		i.renderer["overlays"],
	}

	var out []map[string]any
	for _, src := range sources {
		switch s := src.(type) {
		case []any:
			for _, o := range s {
				if m := AsMap(o); m != nil {
					out = append(out, m)
				}
			}
		case map[string]any:
			out = append(out, s)
		}
	}
	return out
}

func (i VideoItem) DurationText() string {
	if i.renderer == nil {
		return ""
	}
	for _, o := range i.Overlays() {
		if ts := AsMap(o["thumbnailOverlayTimeStatusRenderer"]); ts != nil {
			if t := strings.TrimSpace(Text(ts["text"])); t != "" {
				return t
			}
		}
	}
	if t := strings.TrimSpace(Text(i.renderer["lengthText"])); t != "" {
		return t
	}
	if i.Kind == KindTile {
		for _, li := range DigSlice(i.renderer, "metadata", "tileMetadataRenderer", "lines") {
			for _, it := range DigSlice(li, "lineRenderer", "items") {
				lir := DigMap(it, "lineItemRenderer")
				if lir == nil {
					continue
				}
				if t := strings.TrimSpace(Text(lir["text"])); t != "" && isClock(t) {
					return t
				}
			}
		}
	}
	return ""
}

// DurationSeconds parses an MM:SS duration. Longer H:MM:SS forms are not reported.
func (i VideoItem) DurationSeconds() (int, bool) {
	return ParseClock(i.DurationText())
}

// ParseClock parses "M:SS" / "MM:SS" into seconds.
func ParseClock(s string) (int, bool) {
	if !isClock(s) {
		return 0, false
	}
	parts := strings.SplitN(s, ":", 2)
	m, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, false
	}
	sec, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, false
	}
	return m*60 + sec, true
}

func isClock(s string) bool {
	idx := strings.IndexByte(s, ':')
	if idx <= 0 || idx == len(s)-1 || strings.Count(s, ":") != 1 {
		return false
	}
	for _, r := range s {
		if r != ':' && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}

// Progress returns the watched percentage from a resume-playback overlay.
// ok is false when no such overlay exists.
func (i VideoItem) Progress() (float64, bool) {
	for _, o := range i.Overlays() {
		rp, present := o["thumbnailOverlayResumePlaybackRenderer"]
		if !present || rp == nil {
			continue
		}
		pct, _ := Number(Dig(rp, "percentDurationWatched"))
		return pct, true
	}
	return 0, false
}

func (i VideoItem) IsExplicitlyShortForm() bool {
	if i.Kind == KindReel {
		return true
	}
	if i.renderer == nil {
		return false
	}
	if DigString(i.renderer, "tvhtml5ShelfRendererType") == TileTypeShorts {
		return true
	}
	return DigString(i.renderer, "contentType") == TileContentTypeShorts
}

func (i VideoItem) HasShortsBadge() bool {
	for _, o := range i.Overlays() {
		ts := AsMap(o["thumbnailOverlayTimeStatusRenderer"])
		if ts == nil {
			continue
		}
		if strings.EqualFold(DigString(ts, "style"), OverlayStyleShorts) {
			return true
		}
		if strings.EqualFold(strings.TrimSpace(Text(ts["text"])), OverlayStyleShorts) {
			return true
		}
	}
	return false
}

// Commands returns the selection/navigation command objects of the item.
func (i VideoItem) Commands() []map[string]any {
	if i.renderer == nil {
		return nil
	}
	var out []map[string]any
	for _, key := range []string{"onSelectCommand", "navigationEndpoint", "onTap"} {
		if m := AsMap(i.renderer[key]); m != nil {
			out = append(out, m)
		}
	}
	return out
}

func (i VideoItem) NavigatesToShort() bool {
	for _, cmd := range i.Commands() {
		if Has(cmd, "reelWatchEndpoint") {
			return true
		}
		meta := DigMap(cmd, "commandMetadata", "webCommandMetadata")
		if strings.Contains(DigString(meta, "url"), "/shorts/") {
			return true
		}
		if DigString(meta, "webPageType") == WebPageTypeShorts {
			return true
		}
	}
	return false
}

// IsPortrait reports whether the largest thumbnail is taller than wide.
func (i VideoItem) IsPortrait() bool {
	if i.renderer == nil {
		return false
	}
	thumbs := DigSlice(i.renderer, "thumbnail", "thumbnails")
	if len(thumbs) == 0 {
		thumbs = DigSlice(i.renderer, "header", "tileHeaderRenderer", "thumbnail", "thumbnails")
	}
	if len(thumbs) == 0 {
		return false
	}
	last := thumbs[len(thumbs)-1]
	w, okW := Number(Dig(last, "width"))
	h, okH := Number(Dig(last, "height"))
	return okW && okH && w > 0 && h > w
}
