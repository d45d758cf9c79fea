package output

import "github.com/KrX3D/TizenTube2/internal/domain/entity"

// NavigationPort exposes the host's current location. It is read
// synchronously on every response and must always return a value.
type NavigationPort interface {
	NavigationState() entity.NavState
}
