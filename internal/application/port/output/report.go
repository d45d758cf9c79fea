package output

import "context"

// FilterSummary is a tally of what one filtering run removed.
type FilterSummary struct {
	Page           string
	Responses      map[string]int
	ItemsRemoved   map[string]int
	ShelvesRemoved map[string]int
	HelpersKept    int
	ItemErrors     int
}

type ReportPort interface {
	ShowSummary(ctx context.Context, summary FilterSummary)
	ShowError(ctx context.Context, err error)
}
