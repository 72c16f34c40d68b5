package session

import "sync"

// Store keeps games by id.
type Store interface {
	Get(id string) (*Game, bool)
	Save(g *Game)
	Delete(id string)
	Len() int
}

type MemoryStore struct {
	mu    sync.RWMutex
	games map[string]*Game
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		games: map[string]*Game{},
	}
}

func (m *MemoryStore) Get(id string) (*Game, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.games[id]
	return g, ok
}

func (m *MemoryStore) Save(g *Game) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games[g.ID] = g
}

func (m *MemoryStore) Delete(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.games, id)
}

func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.games)
}
