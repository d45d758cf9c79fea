// Package navigation provides navigation state sources that do not need a
// live browser.
package navigation

import (
	"fmt"
	"net/url"
	"sync"

	"github.com/KrX3D/TizenTube2/internal/application/port/output"
	"github.com/KrX3D/TizenTube2/internal/domain/entity"
)

var _ output.NavigationPort = (*Static)(nil)

// Static returns a fixed navigation state until Set is called.
type Static struct {
	mu    sync.RWMutex
	state entity.NavState
}

func NewStatic(state entity.NavState) *Static {
	return &Static{state: state}
}

func (s *Static) NavigationState() entity.NavState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Static) Set(state entity.NavState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
}

// FromURL splits a full location into navigation state fields.
func FromURL(raw string) (entity.NavState, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return entity.NavState{}, fmt.Errorf("parse location %q: %w", raw, err)
	}
	state := entity.NavState{
		Path: u.EscapedPath(),
		Href: raw,
	}
	if u.RawQuery != "" {
		state.Search = "?" + u.RawQuery
	}
	if u.Fragment != "" {
		state.Hash = "#" + u.Fragment
	}
	return state, nil
}
