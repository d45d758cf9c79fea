package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KrX3D/TizenTube2/internal/domain/entity"
	"github.com/KrX3D/TizenTube2/internal/infrastructure/codec"
	"github.com/KrX3D/TizenTube2/internal/infrastructure/env"
)

const homeResponse = `{
  "contents": {"tvBrowseRenderer": {"content": {"tvSurfaceContentRenderer": {"content": {
    "sectionListRenderer": {"contents": [
      {"shelfRenderer": {
        "title": {"simpleText": "Recommended"},
        "content": {"horizontalListRenderer": {"items": [
          {"tileRenderer": {"contentId": "long", "header": {"tileHeaderRenderer": {"thumbnailOverlays": [
            {"thumbnailOverlayTimeStatusRenderer": {"text": {"simpleText": "12:00"}}}
          ]}}}},
          {"tileRenderer": {"contentId": "short", "header": {"tileHeaderRenderer": {"thumbnailOverlays": [
            {"thumbnailOverlayTimeStatusRenderer": {"text": {"simpleText": "0:30"}}}
          ]}}}}
        ]}}
      }}
    ]}
  }}}}
}`

func testGlobals(t *testing.T) *globalFlags {
	t.Helper()
	return &globalFlags{logLevel: "error", logDir: t.TempDir()}
}

func itemIDs(t *testing.T, out []byte) []string {
	t.Helper()
	tree, err := codec.Decode(out)
	require.NoError(t, err)
	shelves := entity.DigSlice(tree, "contents", "tvBrowseRenderer", "content", "tvSurfaceContentRenderer",
		"content", "sectionListRenderer", "contents")
	require.Len(t, shelves, 1)
	items, _ := entity.ParseShelf(shelves[0]).Items()
	var ids []string
	for _, it := range items {
		ids = append(ids, entity.ParseItem(it).ID())
	}
	return ids
}

func TestFilterCommand_Stdin(t *testing.T) {
	color.NoColor = true
	cmd := &filterCommand{global: testGlobals(t), nav: entity.NavState{Hash: "#/"}}
	stdout, report := &bytes.Buffer{}, &bytes.Buffer{}

	err := cmd.run(context.Background(), strings.NewReader(homeResponse), stdout, report)

	require.NoError(t, err)
	assert.Equal(t, []string{"long"}, itemIDs(t, stdout.Bytes()))
	assert.NotContains(t, stdout.String(), "__tvfilterProcessed")
	assert.Contains(t, report.String(), "Filter summary (home)")
	assert.Contains(t, report.String(), "shorts_duration")
}

func TestFilterCommand_FileAndSettings(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "home.json")
	require.NoError(t, os.WriteFile(input, []byte(homeResponse), 0644))
	settingsPath := filepath.Join(dir, "settings.yaml")
	require.NoError(t, os.WriteFile(settingsPath, []byte("enableShorts: true\n"), 0644))

	g := testGlobals(t)
	g.settings = settingsPath
	cmd := &filterCommand{global: g, file: input, href: "https://www.youtube.com/tv#/", pretty: true}
	stdout := &bytes.Buffer{}

	require.NoError(t, cmd.run(context.Background(), nil, stdout, &bytes.Buffer{}))

	assert.Equal(t, []string{"long", "short"}, itemIDs(t, stdout.Bytes()))
	assert.Contains(t, stdout.String(), "\n  ")
}

func TestFilterCommand_InvalidInput(t *testing.T) {
	cmd := &filterCommand{global: testGlobals(t)}
	report := &bytes.Buffer{}

	err := cmd.run(context.Background(), strings.NewReader("<html>"), &bytes.Buffer{}, report)

	assert.ErrorIs(t, err, codec.ErrNotJSON)
	assert.Contains(t, report.String(), "Error")
}

func TestFilterCommand_MissingFile(t *testing.T) {
	cmd := &filterCommand{global: testGlobals(t), file: filepath.Join(t.TempDir(), "missing.json")}

	err := cmd.run(context.Background(), nil, &bytes.Buffer{}, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestFilterCommand_NavStateOverrides(t *testing.T) {
	cmd := &filterCommand{
		href: "https://www.youtube.com/tv?env=1#/browse?c=FElibrary",
		nav:  entity.NavState{Hash: "#/browse?c=FEhistory"},
	}

	state, err := cmd.navState()
	require.NoError(t, err)
	assert.Equal(t, "#/browse?c=FEhistory", state.Hash)
	assert.Equal(t, "/tv", state.Path)
	assert.Equal(t, "?env=1", state.Search)
}

func TestNewApp_RegistersCommands(t *testing.T) {
	t.Setenv(env.KeyLogLevel, "warn")
	app, _ := newApp(env.NewEnvService(t.TempDir()))

	assert.NotNil(t, app.GetCommand("filter"))
	assert.NotNil(t, app.GetCommand("browse"))
	assert.Nil(t, app.GetCommand("unknown"))
	require.NotNil(t, app.GetFlag("log-level"))
	assert.Equal(t, []string{"warn"}, app.GetFlag("log-level").Model().Default)
}
