package output

import (
	"context"

	"github.com/KrX3D/TizenTube2/internal/application/port/input"
)

// BrowserPort hosts the TV application and routes its data responses
// through a decode function.
type BrowserPort interface {
	NavigationPort

	Navigate(ctx context.Context, url string) error
	InstallFilter(decode input.DecodeFunc) error

	CurrentURL() string
	Close()
}
