package predicate

import (
	"strings"

	"github.com/grafana/regexp"
	jsoniter "github.com/json-iterator/go"

	"github.com/KrX3D/TizenTube2/internal/domain/entity"
)

type Reason string

const (
	ReasonNone         Reason = ""
	ReasonExplicitTag  Reason = "explicit_tag"
	ReasonBadge        Reason = "badge"
	ReasonEndpoint     Reason = "endpoint"
	ReasonCommand      Reason = "command"
	ReasonTitleHashtag Reason = "title_hashtag"
	ReasonDuration     Reason = "duration"
	ReasonPortrait     Reason = "portrait"
)

// ShortRules tunes the heuristic checks of ShortFormReason.
type ShortRules struct {
	// MaxDurationSeconds is the inclusive MM:SS duration limit. Zero disables the check.
	MaxDurationSeconds int
	// PortraitHeuristic enables the weak portrait-thumbnail signal.
	PortraitHeuristic bool
}

func DefaultShortRules() ShortRules {
	return ShortRules{
		MaxDurationSeconds: entity.DefaultShortsDurationLimit,
		PortraitHeuristic:  true,
	}
}

func RulesFromPolicy(p entity.FilterPolicy) ShortRules {
	return ShortRules{
		MaxDurationSeconds: p.ShortsDurationLimit,
		PortraitHeuristic:  p.PortraitHeuristic,
	}
}

var (
	shortHashtagRe = regexp.MustCompile(`(?i)#shorts?\b`)
	commandMarkers = []string{"reelWatchEndpoint", "/shorts/", entity.WebPageTypeShorts}
	commandJSON    = jsoniter.ConfigCompatibleWithStandardLibrary
)

// ShortFormReason returns the first short-form signal found on item, or
// ReasonNone. Checks run strongest first. The duration heuristic also flags
// regular videos under the limit; in playlist contexts it is skipped.
func ShortFormReason(item entity.VideoItem, page entity.PageContext, rules ShortRules) Reason {
	if !item.IsVideo() {
		return ReasonNone
	}
	if item.IsExplicitlyShortForm() {
		return ReasonExplicitTag
	}
	if item.HasShortsBadge() {
		return ReasonBadge
	}
	if item.NavigatesToShort() {
		return ReasonEndpoint
	}
	if commandMentionsShort(item) {
		return ReasonCommand
	}
	if shortHashtagRe.MatchString(item.Title()) {
		return ReasonTitleHashtag
	}
	if rules.MaxDurationSeconds > 0 && !page.IsPlaylist() {
		if secs, ok := item.DurationSeconds(); ok && secs <= rules.MaxDurationSeconds {
			return ReasonDuration
		}
	}
	if rules.PortraitHeuristic && item.IsPortrait() {
		return ReasonPortrait
	}
	return ReasonNone
}

func IsShortFormItem(item entity.VideoItem, page entity.PageContext, rules ShortRules) bool {
	return ShortFormReason(item, page, rules) != ReasonNone
}

func commandMentionsShort(item entity.VideoItem) bool {
	for _, cmd := range item.Commands() {
		raw, err := commandJSON.Marshal(cmd)
		if err != nil {
			continue
		}
		s := string(raw)
		for _, marker := range commandMarkers {
			if strings.Contains(s, marker) {
				return true
			}
		}
	}
	return false
}
