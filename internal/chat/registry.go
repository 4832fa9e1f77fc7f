package chat

import (
	"sort"
	"sync"
)

// Registry tracks every room by name. Rooms are created lazily on first join
// and live for the rest of the process; empty rooms stay listed.
type Registry struct {
	historyLimit int

	mu    sync.RWMutex
	rooms map[string]*Room
}

func NewRegistry(historyLimit int) *Registry {
	return &Registry{historyLimit: historyLimit, rooms: map[string]*Room{}}
}

// GetOrCreate returns the room for name, creating it if needed. The mutex
// makes creation exactly-once: concurrent callers get the same *Room.
func (g *Registry) GetOrCreate(name string) *Room {
	g.mu.Lock()
	defer g.mu.Unlock()
	rm := g.rooms[name]
	if rm == nil {
		rm = newRoom(name, g.historyLimit)
		g.rooms[name] = rm
	}
	return rm
}

// Lookup returns the room for name or nil.
func (g *Registry) Lookup(name string) *Room {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.rooms[name]
}

// List returns all room names, sorted, including empty rooms.
func (g *Registry) List() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	names := make([]string, 0, len(g.rooms))
	for name := range g.rooms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of rooms ever created.
func (g *Registry) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.rooms)
}
