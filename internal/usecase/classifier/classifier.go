package classifier

import (
	"strings"

	"github.com/grafana/regexp"

	"github.com/KrX3D/TizenTube2/internal/domain/entity"
)

var (
	browseParamRe = regexp.MustCompile(`(?i)[?&]c=([^&]+)`)
	browseIDRe    = regexp.MustCompile(`(?i)/browse/([^?&#]+)`)
)

var browseCodes = map[string]entity.PageContext{
	"felibrary":              entity.PageLibrary,
	"fehistory":              entity.PageHistory,
	"femy_youtube":           entity.PagePlaylist,
	"feplaylist_aggregation": entity.PagePlaylists,
}

// Classify derives the page context from the navigation state.
// It is a pure function of its input.
func Classify(nav entity.NavState) entity.PageContext {
	hash := strings.TrimPrefix(nav.Hash, "#")
	cleanHash, _, _ := strings.Cut(hash, "?additionalDataUrl")

	param := BrowseParam(hash)

	if page, ok := classifyBrowseParam(param); ok {
		return page
	}

	combined := strings.ToLower(strings.Join([]string{cleanHash, nav.Path, nav.Search, nav.Href, param}, " "))

	switch {
	case strings.Contains(cleanHash, "/playlist") || strings.Contains(combined, "list="):
		return entity.PagePlaylist
	case strings.Contains(cleanHash, "/results") || strings.Contains(cleanHash, "/search"):
		return entity.PageSearch
	case strings.Contains(cleanHash, "/watch"):
		return entity.PageWatch
	case strings.Contains(cleanHash, "/@") || strings.Contains(cleanHash, "/channel/"):
		return entity.PageChannel
	case strings.Contains(cleanHash, "/browse") && param == "":
		return entity.PageHome
	case cleanHash == "" || cleanHash == "/":
		return entity.PageHome
	}
	return entity.PageOther
}

// BrowseParam extracts the lowercased browse id from a c= query parameter
// or a /browse/<id> path segment.
func BrowseParam(hash string) string {
	if m := browseParamRe.FindStringSubmatch(hash); m != nil {
		return strings.ToLower(m[1])
	}
	if m := browseIDRe.FindStringSubmatch(hash); m != nil {
		return strings.ToLower(m[1])
	}
	return ""
}

func classifyBrowseParam(param string) (entity.PageContext, bool) {
	if param == "" {
		return "", false
	}
	if strings.Contains(param, "fesubscription") {
		return entity.PageSubscriptions, true
	}
	if page, ok := browseCodes[param]; ok {
		return page, true
	}
	switch {
	case strings.HasPrefix(param, "vl"):
		return entity.PagePlaylist, true
	case strings.Contains(param, "music"):
		return entity.PageMusic, true
	case strings.Contains(param, "gaming"):
		return entity.PageGaming, true
	case strings.Contains(param, "fetopics"):
		return entity.PageHome, true
	case strings.HasPrefix(param, "uc") && len(param) > 10:
		return entity.PageChannel, true
	}
	return "", false
}
