package predicate

import (
	"strings"

	"github.com/KrX3D/TizenTube2/internal/domain/entity"
)

// IsShortFormShelf reports whether a shelf is dedicated to short-form videos,
// by its explicit renderer type or a title mentioning shorts.
func IsShortFormShelf(shelf entity.Shelf) bool {
	if shelf.IsExplicitlyShortForm() {
		return true
	}
	return strings.Contains(strings.ToLower(shelf.Title()), "short")
}
