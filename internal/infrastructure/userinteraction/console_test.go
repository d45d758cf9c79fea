package userinteraction

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"github.com/KrX3D/TizenTube2/internal/application/port/output"
)

func newReporter(t *testing.T) (*ConsoleReporter, *bytes.Buffer) {
	t.Helper()
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	buf := &bytes.Buffer{}
	return NewConsoleReporter(buf), buf
}

func TestConsoleReporter_ShowSummary(t *testing.T) {
	r, buf := newReporter(t)

	r.ShowSummary(context.Background(), output.FilterSummary{
		Page:           "home",
		Responses:      map[string]int{"browse": 1},
		ItemsRemoved:   map[string]int{"watched": 2, "shorts_duration": 1},
		ShelvesRemoved: map[string]int{"shorts": 1},
		HelpersKept:    1,
	})

	out := buf.String()
	assert.Contains(t, out, "Filter summary (home)")
	assert.Contains(t, out, "browse")
	assert.Less(t, strings.Index(out, "shorts_duration"), strings.Index(out, "watched"))
	assert.Contains(t, out, "helper items kept for pagination: 1")
	assert.Contains(t, out, "removed 3 items, 1 shelves")
}

func TestConsoleReporter_ShowSummaryWithErrors(t *testing.T) {
	r, buf := newReporter(t)

	r.ShowSummary(context.Background(), output.FilterSummary{ItemErrors: 2})

	out := buf.String()
	assert.Contains(t, out, "unknown page")
	assert.Contains(t, out, "No responses filtered")
	assert.Contains(t, out, "evaluation errors (items kept): 2")
	assert.NotContains(t, out, "removed")
}

func TestConsoleReporter_ShowError(t *testing.T) {
	r, buf := newReporter(t)

	r.ShowError(context.Background(), errors.New(strings.Repeat("x", 400)))
	r.ShowError(context.Background(), nil)

	out := buf.String()
	assert.Contains(t, out, "Error: ")
	assert.Contains(t, out, strings.Repeat("x", 300)+"...")
	assert.Equal(t, 1, strings.Count(out, "Error"))
}
