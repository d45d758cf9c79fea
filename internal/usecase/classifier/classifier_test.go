package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KrX3D/TizenTube2/internal/domain/entity"
)

func TestClassify_BrowseCodes(t *testing.T) {
	cases := map[string]entity.PageContext{
		"/browse/FEsubscriptions":             entity.PageSubscriptions,
		"/browse?c=FEsubscriptions":           entity.PageSubscriptions,
		"/browse?c=FElibrary":                 entity.PageLibrary,
		"/browse?c=FEhistory":                 entity.PageHistory,
		"/browse?c=FEmy_youtube":              entity.PagePlaylist,
		"/browse?c=FEplaylist_aggregation":    entity.PagePlaylists,
		"/browse?c=VLWL":                      entity.PagePlaylist,
		"/browse?c=VLPLabcdef123":             entity.PagePlaylist,
		"/browse?c=FEtopics_music":            entity.PageMusic,
		"/browse?c=FEtopics_gaming":           entity.PageGaming,
		"/browse?c=FEtopics":                  entity.PageHome,
		"/browse?c=UCabcdefghijklmnop":        entity.PageChannel,
		"#/browse?c=FEsubscriptions&resume=1": entity.PageSubscriptions,
	}
	for hash, want := range cases {
		assert.Equal(t, want, Classify(entity.NavState{Hash: hash}), hash)
	}
}

func TestClassify_LiteralPatterns(t *testing.T) {
	cases := map[string]entity.PageContext{
		"/playlist?x=1":         entity.PagePlaylist,
		"/watch?v=abc&list=PL1": entity.PagePlaylist,
		"/results?q=cats":       entity.PageSearch,
		"/search":               entity.PageSearch,
		"/watch?v=abc":          entity.PageWatch,
		"/@somebody":            entity.PageChannel,
		"/channel/UC123":        entity.PageChannel,
		"/browse":               entity.PageHome,
		"":                      entity.PageHome,
		"/":                     entity.PageHome,
		"/settings":             entity.PageOther,
	}
	for hash, want := range cases {
		assert.Equal(t, want, Classify(entity.NavState{Hash: hash}), hash)
	}
}

func TestClassify_UnknownBrowseCodeIsOther(t *testing.T) {
	assert.Equal(t, entity.PageOther, Classify(entity.NavState{Hash: "/browse?c=FEsomething_new"}))
}

func TestClassify_ShortChannelCodeIsNotChannel(t *testing.T) {
	assert.Equal(t, entity.PageOther, Classify(entity.NavState{Hash: "/browse?c=UCshort"}))
}

func TestClassify_ListParamInSearch(t *testing.T) {
	nav := entity.NavState{Hash: "/settings", Search: "?list=PL123"}
	assert.Equal(t, entity.PagePlaylist, Classify(nav))
}

func TestClassify_AdditionalDataURLIgnored(t *testing.T) {
	nav := entity.NavState{Hash: "/settings?additionalDataUrl=/watch"}
	assert.Equal(t, entity.PageOther, Classify(nav))
}

func TestClassify_Deterministic(t *testing.T) {
	nav := entity.NavState{Hash: "/browse?c=FEhistory", Path: "/tv", Href: "https://www.youtube.com/tv#/browse?c=FEhistory"}
	first := Classify(nav)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Classify(nav))
	}
}

func TestBrowseParam(t *testing.T) {
	assert.Equal(t, "fesubscriptions", BrowseParam("/browse/FEsubscriptions"))
	assert.Equal(t, "vlwl", BrowseParam("/browse?c=VLWL&x=1"))
	assert.Equal(t, "", BrowseParam("/watch?v=1"))
}
