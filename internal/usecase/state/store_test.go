package state

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KrX3D/TizenTube2/internal/domain/entity"
	"github.com/KrX3D/TizenTube2/internal/testutil"
)

func TestStore_ZeroValueUsable(t *testing.T) {
	var s Store

	assert.False(t, s.IsKnownShort(entity.ParseItem(testutil.Tile("a", "x"))))
	assert.False(t, s.IsHelper("a"))
	assert.Equal(t, 0, s.HelperCount())
	assert.False(t, s.LastBatch())
	assert.NotPanics(t, s.ClearHelpers)
}

func TestStore_RememberShortItems(t *testing.T) {
	s := New(10)
	items := testutil.Items(
		testutil.Tile("s1", "one"),
		testutil.Tile("s2", "two"),
		testutil.Tile("", "  Title   Only "),
	)

	assert.Equal(t, 3, s.RememberShortItems(items))
	assert.ElementsMatch(t, []string{"s1", "s2"}, s.KnownShortIDs())
	assert.Equal(t, []string{"title only"}, s.KnownShortTitles())

	assert.True(t, s.IsKnownShort(entity.ParseItem(testutil.Video("s1", "renamed"))))
	assert.True(t, s.IsKnownShort(entity.ParseItem(testutil.Tile("", "TITLE ONLY"))))
	assert.False(t, s.IsKnownShort(entity.ParseItem(testutil.Tile("other", "other"))))
}

func TestStore_MemoryIsBounded(t *testing.T) {
	s := New(2)
	s.RememberShortItems(testutil.Items(testutil.Tile("a", ""), testutil.Tile("b", ""), testutil.Tile("c", "")))

	assert.Len(t, s.KnownShortIDs(), 2)
	assert.False(t, s.IsKnownShort(entity.ParseItem(testutil.Tile("a", ""))))
	assert.True(t, s.IsKnownShort(entity.ParseItem(testutil.Tile("c", ""))))
}

func TestStore_Resize(t *testing.T) {
	s := New(5)
	s.RememberShortItems(testutil.Items(testutil.Tile("a", ""), testutil.Tile("b", ""), testutil.Tile("c", "")))

	s.Resize(1)
	assert.Equal(t, []string{"c"}, s.KnownShortIDs())
}

func TestStore_ResetShortMemory(t *testing.T) {
	s := New(5)
	s.RememberShortItems(testutil.Items(testutil.Tile("a", "")))
	s.ResetShortMemory()

	assert.Empty(t, s.KnownShortIDs())
}

func TestStore_Helpers(t *testing.T) {
	s := New(0)
	first := testutil.Tile("h1", "")
	s.RegisterHelper("h1", first)
	s.RegisterHelper("h2", testutil.Tile("h2", ""))

	assert.False(t, s.IsHelper("h1"))
	assert.True(t, s.IsHelper("h2"))
	assert.Len(t, s.HelperItems(), 1)

	s.ClearHelpers()
	assert.Equal(t, 0, s.HelperCount())
	assert.Nil(t, s.HelperItems())
}

func TestStore_ResolvePage(t *testing.T) {
	var s Store

	assert.Equal(t, entity.PageOther, s.ResolvePage(entity.PageOther))
	assert.Equal(t, entity.PagePlaylist, s.ResolvePage(entity.PagePlaylist))
	assert.Equal(t, entity.PagePlaylist, s.ResolvePage(entity.PageOther))
	assert.Equal(t, entity.PageHome, s.ResolvePage(entity.PageHome))
}

func TestStore_BeginNavigation(t *testing.T) {
	s := New(0)
	s.SetLastBatch(true)
	s.RegisterHelper("h", nil)

	s.BeginNavigation()

	assert.False(t, s.LastBatch())
	assert.Equal(t, 0, s.HelperCount())
}

func TestStore_HelperWithoutIDMatchesByIdentity(t *testing.T) {
	s := New(0)
	helper := testutil.PlaylistVideo("", "anonymous")
	s.RegisterHelper("", helper)

	assert.Equal(t, 1, s.HelperCount())
	assert.False(t, s.IsHelper(""))
	assert.True(t, s.IsHelperNode(helper))
	assert.False(t, s.IsHelperNode(testutil.PlaylistVideo("", "anonymous")))
	assert.False(t, s.IsHelperNode(nil))
}

func TestStore_SnapshotRestore(t *testing.T) {
	s := New(0)
	s.ResolvePage(entity.PagePlaylist)
	s.RegisterHelper("h1", testutil.Tile("h1", ""))
	snap := s.Snapshot()

	s.BeginNavigation()
	s.SetLastBatch(true)
	s.ResolvePage(entity.PageHome)
	s.RegisterHelper("h2", testutil.Tile("h2", ""))
	s.Restore(snap)

	assert.False(t, s.LastBatch())
	assert.True(t, s.IsHelper("h1"))
	assert.False(t, s.IsHelper("h2"))
	assert.Equal(t, 1, s.HelperCount())
	assert.Equal(t, entity.PagePlaylist, s.LastPage())
}
