package entity

// NavState is the ambient navigation state of the host application.
// All fields default to the empty string.
type NavState struct {
	Hash   string
	Path   string
	Search string
	Href   string
}

type PageContext string

const (
	PageHome          PageContext = "home"
	PageMusic         PageContext = "music"
	PageGaming        PageContext = "gaming"
	PageSubscriptions PageContext = "subscriptions"
	PageLibrary       PageContext = "library"
	PageHistory       PageContext = "history"
	PagePlaylist      PageContext = "playlist"
	PagePlaylists     PageContext = "playlists"
	PageChannel       PageContext = "channel"
	PageSearch        PageContext = "search"
	PageWatch         PageContext = "watch"
	PageOther         PageContext = "other"
)

func (p PageContext) IsPlaylist() bool {
	return p == PagePlaylist || p == PagePlaylists
}

func (p PageContext) String() string {
	return string(p)
}

// FallbackScanPages are the contexts where the whole response is scanned
// after the known response shapes have been handled.
var FallbackScanPages = map[PageContext]bool{
	PageSubscriptions: true,
	PageLibrary:       true,
	PageHistory:       true,
	PagePlaylist:      true,
	PageChannel:       true,
	PageWatch:         true,
}
