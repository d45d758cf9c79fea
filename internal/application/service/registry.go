package service

import (
	"sort"
	"sync"

	"github.com/KrX3D/TizenTube2/internal/application/port/input"
)

type decoderEntry struct {
	decode  input.DecodeFunc
	wrapped bool
}

// DecoderRegistry holds every alias under which the host exposes its decode
// function. The host keeps several live references, so each one has to be
// wrapped.
type DecoderRegistry struct {
	mu       sync.RWMutex
	decoders map[string]*decoderEntry
}

func NewDecoderRegistry() *DecoderRegistry {
	return &DecoderRegistry{
		decoders: make(map[string]*decoderEntry),
	}
}

// Register adds or replaces an alias. A replaced alias loses its wrapping.
func (r *DecoderRegistry) Register(name string, decode input.DecodeFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.decoders[name] = &decoderEntry{decode: decode}
}

func (r *DecoderRegistry) Get(name string) (input.DecodeFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.decoders[name]
	if !ok {
		return nil, false
	}
	return entry.decode, true
}

func (r *DecoderRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]string, 0, len(r.decoders))
	for name := range r.decoders {
		result = append(result, name)
	}
	sort.Strings(result)
	return result
}

// WrapAll applies wrap to every alias that has not been wrapped yet and
// returns how many aliases were wrapped by this call.
func (r *DecoderRegistry) WrapAll(wrap func(input.DecodeFunc) input.DecodeFunc) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, entry := range r.decoders {
		if entry.wrapped {
			continue
		}
		entry.decode = wrap(entry.decode)
		entry.wrapped = true
		count++
	}
	return count
}

func (r *DecoderRegistry) IsWrapped(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.decoders[name]
	return ok && entry.wrapped
}
