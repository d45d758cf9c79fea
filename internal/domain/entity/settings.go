package entity

// Setting keys understood by the filter.
const (
	SettingEnableShorts            = "enableShorts"
	SettingHideWatched             = "enableHideWatchedVideos"
	SettingHideWatchedThreshold    = "hideWatchedVideosThreshold"
	SettingHideWatchedPages        = "hideWatchedVideosPages"
	SettingEnableAdBlock           = "enableAdBlock"
	SettingShortsDurationLimit     = "shortsDurationThreshold"
	SettingShortsPortraitHeuristic = "enableShortsPortraitHeuristic"
	SettingShortsMemorySize        = "shortsMemorySize"
)

const (
	DefaultShortsDurationLimit = 180
	DefaultShortsMemorySize    = 200
	DefaultWatchedThreshold    = 10
)

// DefaultSettings returns a fresh copy of the built-in defaults.
func DefaultSettings() map[string]any {
	return map[string]any{
		SettingEnableShorts:         false,
		SettingHideWatched:          true,
		SettingHideWatchedThreshold: DefaultWatchedThreshold,
		SettingHideWatchedPages: []any{
			"home",
			"music",
			"gaming",
			"subscriptions",
			"channel",
			"library",
			"playlist",
			"history",
			"more",
			"watch",
		},
		SettingEnableAdBlock:           true,
		SettingShortsDurationLimit:     DefaultShortsDurationLimit,
		SettingShortsPortraitHeuristic: true,
		SettingShortsMemorySize:        DefaultShortsMemorySize,
	}
}

// FilterPolicy is the settings snapshot applied to one response.
type FilterPolicy struct {
	ShortsEnabled       bool
	HideWatched         bool
	WatchedThreshold    float64
	WatchedPages        map[PageContext]bool
	AdBlock             bool
	ShortsDurationLimit int
	PortraitHeuristic   bool
	ShortsMemorySize    int
}

// ShortsActive reports whether short-form items are filtered on page.
// Playlists never lose short-form items.
func (p FilterPolicy) ShortsActive(page PageContext) bool {
	return !p.ShortsEnabled && !page.IsPlaylist()
}

func (p FilterPolicy) WatchedActive(page PageContext) bool {
	return p.HideWatched && p.WatchedPages[page]
}
