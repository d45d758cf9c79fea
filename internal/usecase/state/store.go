package state

import (
	"reflect"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/KrX3D/TizenTube2/internal/domain/entity"
)

// Store is the process-wide state shared by consecutive responses.
// The zero value is ready to use. It is not safe for concurrent use; the
// interceptor serialises access.
type Store struct {
	memorySize  int
	shortIDs    *lru.Cache[string, struct{}]
	shortTitles *lru.Cache[string, struct{}]

	lastBatch   bool
	helpers     map[string]struct{}
	helperItems []any

	lastPage entity.PageContext
}

func New(memorySize int) *Store {
	s := &Store{memorySize: memorySize}
	s.ensure()
	return s
}

func (s *Store) ensure() {
	if s.memorySize <= 0 {
		s.memorySize = entity.DefaultShortsMemorySize
	}
	if s.shortIDs == nil {
		s.shortIDs, _ = lru.New[string, struct{}](s.memorySize)
	}
	if s.shortTitles == nil {
		s.shortTitles, _ = lru.New[string, struct{}](s.memorySize)
	}
	if s.helpers == nil {
		s.helpers = make(map[string]struct{})
	}
}

// Resize rebuilds the short-form memory with a new capacity, keeping the
// most recent entries.
func (s *Store) Resize(size int) {
	s.ensure()
	if size <= 0 || size == s.memorySize {
		return
	}
	s.memorySize = size
	s.shortIDs.Resize(size)
	s.shortTitles.Resize(size)
}

func normalizeTitle(title string) string {
	return strings.ToLower(strings.Join(strings.Fields(title), " "))
}

// RememberShortItems fingerprints items of a removed short-form shelf so the
// same videos can be recognised later without shelf context. It returns the
// number of fingerprints recorded.
func (s *Store) RememberShortItems(items []any) int {
	s.ensure()
	n := 0
	for _, node := range items {
		item := entity.ParseItem(node)
		if id := item.ID(); id != "" {
			s.shortIDs.Add(id, struct{}{})
			n++
			continue
		}
		if title := normalizeTitle(item.Title()); title != "" {
			s.shortTitles.Add(title, struct{}{})
			n++
		}
	}
	return n
}

// IsKnownShort is the weak memory-based short-form check.
func (s *Store) IsKnownShort(item entity.VideoItem) bool {
	s.ensure()
	if id := item.ID(); id != "" && s.shortIDs.Contains(id) {
		return true
	}
	title := normalizeTitle(item.Title())
	return title != "" && s.shortTitles.Contains(title)
}

func (s *Store) KnownShortIDs() []string {
	s.ensure()
	return s.shortIDs.Keys()
}

func (s *Store) KnownShortTitles() []string {
	s.ensure()
	return s.shortTitles.Keys()
}

func (s *Store) ResetShortMemory() {
	s.ensure()
	s.shortIDs.Purge()
	s.shortTitles.Purge()
}

// SetLastBatch records whether the latest playlist response was the final one.
func (s *Store) SetLastBatch(last bool) {
	s.lastBatch = last
}

func (s *Store) LastBatch() bool {
	return s.lastBatch
}

// RegisterHelper replaces the helper bookkeeping with item, kept only to keep
// pagination alive. An empty id records the item by identity alone.
func (s *Store) RegisterHelper(id string, item any) {
	s.ensure()
	clear(s.helpers)
	if id != "" {
		s.helpers[id] = struct{}{}
	}
	s.helperItems = []any{item}
}

func (s *Store) IsHelper(id string) bool {
	s.ensure()
	_, ok := s.helpers[id]
	return ok
}

// IsHelperNode reports whether node is the very object recorded as helper.
func (s *Store) IsHelperNode(node any) bool {
	m, ok := node.(map[string]any)
	if !ok {
		return false
	}
	p := reflect.ValueOf(m).UnsafePointer()
	for _, h := range s.helperItems {
		if hm, ok := h.(map[string]any); ok && reflect.ValueOf(hm).UnsafePointer() == p {
			return true
		}
	}
	return false
}

// HelperCount is the number of helper items currently recorded.
func (s *Store) HelperCount() int {
	return len(s.helperItems)
}

func (s *Store) HelperItems() []any {
	return s.helperItems
}

func (s *Store) ClearHelpers() {
	s.ensure()
	clear(s.helpers)
	s.helperItems = nil
}

// Snapshot captures the pagination bookkeeping and last page. Short-form
// memory is not part of it.
type Snapshot struct {
	lastBatch   bool
	helpers     []string
	helperItems []any
	lastPage    entity.PageContext
}

func (s *Store) Snapshot() Snapshot {
	s.ensure()
	snap := Snapshot{
		lastBatch:   s.lastBatch,
		helperItems: append([]any(nil), s.helperItems...),
		lastPage:    s.lastPage,
	}
	for id := range s.helpers {
		snap.helpers = append(snap.helpers, id)
	}
	return snap
}

// Restore puts back the state captured by Snapshot.
func (s *Store) Restore(snap Snapshot) {
	s.ensure()
	s.lastBatch = snap.lastBatch
	clear(s.helpers)
	for _, id := range snap.helpers {
		s.helpers[id] = struct{}{}
	}
	s.helperItems = snap.helperItems
	s.lastPage = snap.lastPage
}

// ResolvePage returns detected unless it is "other", in which case the last
// concrete page is used. Concrete pages are remembered.
func (s *Store) ResolvePage(detected entity.PageContext) entity.PageContext {
	if detected != entity.PageOther && detected != "" {
		s.lastPage = detected
		return detected
	}
	if s.lastPage != "" {
		return s.lastPage
	}
	return entity.PageOther
}

func (s *Store) LastPage() entity.PageContext {
	return s.lastPage
}

// BeginNavigation resets per-listing state when a fresh page is loaded.
func (s *Store) BeginNavigation() {
	s.lastBatch = false
	s.ClearHelpers()
}
