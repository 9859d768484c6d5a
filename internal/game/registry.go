package game

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Registry maps game-type identifiers to the engine handling them.
// Registration happens once at startup; lookups are safe under concurrent
// access from in-flight move pipelines.
type Registry struct {
	mu      sync.RWMutex
	engines map[string]Engine
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{engines: make(map[string]Engine)}
}

// Register adds an engine keyed by its metadata type.
func (r *Registry) Register(e Engine) error {
	if e == nil {
		return fmt.Errorf("engine is required")
	}
	meta := e.Metadata()
	gameType := strings.TrimSpace(meta.Type)
	if gameType == "" {
		return fmt.Errorf("engine metadata has no game type")
	}
	if meta.MinPlayers < 1 || meta.MaxPlayers < meta.MinPlayers {
		return fmt.Errorf("engine %q has invalid player bounds [%d,%d]", gameType, meta.MinPlayers, meta.MaxPlayers)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.engines[gameType]; exists {
		return fmt.Errorf("game type %q is already registered", gameType)
	}
	r.engines[gameType] = e
	return nil
}

// Get returns the engine for a game type.
func (r *Registry) Get(gameType string) (Engine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.engines[gameType]
	if !ok {
		return nil, ErrUnknownGameType
	}
	return e, nil
}

// List returns metadata for all registered engines, ordered by game type.
func (r *Registry) List() []Metadata {
	r.mu.RLock()
	defer r.mu.RUnlock()
	metas := make([]Metadata, 0, len(r.engines))
	for _, e := range r.engines {
		metas = append(metas, e.Metadata())
	}
	sort.Slice(metas, func(i, j int) bool { return metas[i].Type < metas[j].Type })
	return metas
}
