package predicate

import "github.com/KrX3D/TizenTube2/internal/domain/entity"

// IsWatchedBeyondThreshold reports whether item carries a resume-playback
// overlay with a watched percentage at or above thresholdPercent. Items
// without an overlay are never considered watched.
func IsWatchedBeyondThreshold(item entity.VideoItem, thresholdPercent float64) bool {
	pct, ok := item.Progress()
	if !ok {
		return false
	}
	return pct >= thresholdPercent
}
