// Package scanner walks decoded response trees and applies the batch filter
// to every video-item array and shelf list it finds.
package scanner

import (
	"sort"

	"github.com/KrX3D/TizenTube2/internal/application/port/output"
	"github.com/KrX3D/TizenTube2/internal/domain/entity"
	"github.com/KrX3D/TizenTube2/internal/usecase/batch"
	"github.com/KrX3D/TizenTube2/internal/usecase/predicate"
	"github.com/KrX3D/TizenTube2/internal/usecase/state"
)

const (
	ShelfReasonShorts = "shorts"
	ShelfReasonEmpty  = "empty"
	ShelfReasonAd     = "ad"
)

type Scanner struct {
	batch   *batch.Filter
	state   *state.Store
	logger  output.LoggerPort
	metrics output.MetricsPort
}

func New(filter *batch.Filter, st *state.Store, logger output.LoggerPort, metrics output.MetricsPort) *Scanner {
	return &Scanner{
		batch:   filter,
		state:   st,
		logger:  logger,
		metrics: metrics,
	}
}

// Scan filters node in place where it can and returns the node to store back
// into the parent. Callers must always use the returned value.
func (s *Scanner) Scan(node any, page entity.PageContext, policy entity.FilterPolicy) any {
	switch v := node.(type) {
	case []any:
		return s.scanArray(v, page, policy)
	case map[string]any:
		s.scanObject(v, page, policy)
		return v
	default:
		return node
	}
}

// FilterShelves applies the shelf rules to a list of shelf containers. Video
// items mixed into the list are filtered together as one batch.
func (s *Scanner) FilterShelves(shelves []any, page entity.PageContext, policy entity.FilterPolicy) []any {
	keep := make([]bool, len(shelves))
	var itemIdx []int
	for i, node := range shelves {
		if node == nil {
			continue
		}
		if policy.AdBlock && entity.ParseItem(node).Kind == entity.KindAd {
			s.metrics.ShelfRemoved(ShelfReasonAd)
			continue
		}

		if !entity.IsShelfNode(node) {
			if entity.ParseItem(node).Kind != entity.KindUnknown {
				itemIdx = append(itemIdx, i)
				continue
			}
			shelves[i] = s.Scan(node, page, policy)
			keep[i] = true
			continue
		}

		keep[i] = s.keepShelf(entity.ParseShelf(node), page, policy)
	}

	if len(itemIdx) > 0 {
		items := make([]any, len(itemIdx))
		for j, i := range itemIdx {
			items[j] = shelves[i]
		}
		for _, j := range s.batch.Keep(items, page, policy) {
			keep[itemIdx[j]] = true
		}
	}

	out := make([]any, 0, len(shelves))
	for i, node := range shelves {
		if keep[i] {
			out = append(out, node)
		}
	}
	return out
}

// keepShelf filters one shelf in place and reports whether it stays.
func (s *Scanner) keepShelf(shelf entity.Shelf, page entity.PageContext, policy entity.FilterPolicy) bool {
	if policy.ShortsActive(page) && predicate.IsShortFormShelf(shelf) {
		items, _ := shelf.Items()
		remembered := s.state.RememberShortItems(items)
		s.metrics.ShelfRemoved(ShelfReasonShorts)
		s.logger.Debug("Removed short-form shelf",
			"page", page,
			"title", shelf.Title(),
			"remembered", remembered,
		)
		return false
	}

	s.scanObject(shelf.Node(), page, policy)

	if items, ok := shelf.Items(); ok && len(items) == 0 {
		s.metrics.ShelfRemoved(ShelfReasonEmpty)
		s.logger.Debug("Removed empty shelf", "page", page, "title", shelf.Title())
		return false
	}
	return true
}

func (s *Scanner) scanArray(arr []any, page entity.PageContext, policy entity.FilterPolicy) []any {
	shelves := isShelfArray(arr)
	switch {
	case isItemArray(arr) && !shelves:
		return s.batch.FilterBatch(arr, page, policy)
	case shelves:
		return s.FilterShelves(arr, page, policy)
	}
	for i, child := range arr {
		arr[i] = s.Scan(child, page, policy)
	}
	return arr
}

func (s *Scanner) scanObject(obj map[string]any, page entity.PageContext, policy entity.FilterPolicy) {
	keys := make([]string, 0, len(obj))
	for k, v := range obj {
		switch v.(type) {
		case []any, map[string]any:
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	for _, k := range keys {
		obj[k] = s.Scan(obj[k], page, policy)
	}
}

func isShelfArray(arr []any) bool {
	for _, v := range arr {
		if entity.IsShelfNode(v) {
			return true
		}
	}
	return false
}

// isItemArray reports whether arr holds video items or ad slots.
func isItemArray(arr []any) bool {
	for _, v := range arr {
		if v == nil {
			continue
		}
		if entity.ParseItem(v).Kind != entity.KindUnknown {
			return true
		}
	}
	return false
}
