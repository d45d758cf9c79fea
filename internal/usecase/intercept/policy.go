package intercept

import (
	"github.com/KrX3D/TizenTube2/internal/application/port/output"
	"github.com/KrX3D/TizenTube2/internal/domain/entity"
)

// LoadPolicy snapshots the filter settings. Missing or mistyped values fall
// back to the built-in defaults.
func LoadPolicy(settings output.SettingsReader) entity.FilterPolicy {
	defaults := entity.DefaultSettings()
	read := func(key string) any {
		if settings != nil {
			if v := settings.Read(key); v != nil {
				return v
			}
		}
		return defaults[key]
	}

	return entity.FilterPolicy{
		ShortsEnabled:       asBool(read(entity.SettingEnableShorts), false),
		HideWatched:         asBool(read(entity.SettingHideWatched), true),
		WatchedThreshold:    asFloat(read(entity.SettingHideWatchedThreshold), entity.DefaultWatchedThreshold),
		WatchedPages:        asPages(read(entity.SettingHideWatchedPages), defaults[entity.SettingHideWatchedPages]),
		AdBlock:             asBool(read(entity.SettingEnableAdBlock), true),
		ShortsDurationLimit: int(asFloat(read(entity.SettingShortsDurationLimit), entity.DefaultShortsDurationLimit)),
		PortraitHeuristic:   asBool(read(entity.SettingShortsPortraitHeuristic), true),
		ShortsMemorySize:    int(asFloat(read(entity.SettingShortsMemorySize), entity.DefaultShortsMemorySize)),
	}
}

func asBool(v any, def bool) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		switch b {
		case "true", "1", "yes", "on":
			return true
		case "false", "0", "no", "off":
			return false
		}
	}
	return def
}

func asFloat(v any, def float64) float64 {
	if n, ok := entity.Number(v); ok {
		return n
	}
	return def
}

func asPages(v, def any) map[entity.PageContext]bool {
	pages := make(map[entity.PageContext]bool)
	add := func(name string) {
		if name != "" {
			pages[entity.PageContext(name)] = true
		}
	}

	switch list := v.(type) {
	case []any:
		for _, p := range list {
			if s, ok := p.(string); ok {
				add(s)
			}
		}
		return pages
	case []string:
		for _, s := range list {
			add(s)
		}
		return pages
	}
	if v != nil {
		return asPages(def, nil)
	}
	return pages
}
