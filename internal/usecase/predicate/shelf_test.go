package predicate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KrX3D/TizenTube2/internal/domain/entity"
	"github.com/KrX3D/TizenTube2/internal/testutil"
)

func TestIsShortFormShelf_Title(t *testing.T) {
	assert.True(t, IsShortFormShelf(entity.ParseShelf(testutil.Shelf("Shorts"))))
	assert.True(t, IsShortFormShelf(entity.ParseShelf(testutil.Shelf("Trending SHORTS for you"))))
	assert.False(t, IsShortFormShelf(entity.ParseShelf(testutil.Shelf("Recommended"))))
}

func TestIsShortFormShelf_ExplicitType(t *testing.T) {
	shelf := testutil.Shelf("Untitled")
	shelf["shelfRenderer"].(map[string]any)["tvhtml5ShelfRendererType"] = entity.ShelfTypeShorts

	assert.True(t, IsShortFormShelf(entity.ParseShelf(shelf)))
}

func TestIsShortFormShelf_Unknown(t *testing.T) {
	assert.False(t, IsShortFormShelf(entity.ParseShelf(nil)))
	assert.False(t, IsShortFormShelf(entity.ParseShelf(map[string]any{"foo": 1})))
}
