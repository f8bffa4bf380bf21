package room

import (
	"context"
	"sync"
	"time"
)

// Store is the process-wide room registry. Entries are created on room
// creation and removed on explicit deletion or idle expiry; all room state
// access goes through the per-room lock, never through the store.
type Store struct {
	mu    sync.Mutex
	rooms map[string]*Room // keyed by join code
}

// NewStore returns an empty in-memory registry.
func NewStore() *Store {
	return &Store{
		rooms: make(map[string]*Room),
	}
}

// CreateRoom allocates a room under a fresh unique join code and registers it.
func (s *Store) CreateRoom(cfg Config, content ContentSource) *Room {
	s.mu.Lock()
	defer s.mu.Unlock()

	code := NewCode()
	for s.rooms[code] != nil {
		code = NewCode()
	}
	r := New(code, cfg, content)
	s.rooms[code] = r
	return r
}

// GetRoom retrieves a room by join code.
func (s *Store) GetRoom(code string) (*Room, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rooms[code]
	return r, ok
}

// DeleteRoom removes a room from the registry.
func (s *Store) DeleteRoom(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rooms, code)
}

// Rooms returns the registered rooms, typically for the admin listing.
func (s *Store) Rooms() []*Room {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Room, 0, len(s.rooms))
	for _, r := range s.rooms {
		out = append(out, r)
	}
	return out
}

// StartSweeper expires rooms idle longer than maxIdle, checking every
// interval until ctx is done. A maxIdle of zero disables expiry.
func (s *Store) StartSweeper(ctx context.Context, interval, maxIdle time.Duration) {
	if maxIdle <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				s.sweep(now, maxIdle)
			}
		}
	}()
}

func (s *Store) sweep(now time.Time, maxIdle time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for code, r := range s.rooms {
		r.Mu.Lock()
		idle := now.Sub(r.LastActive) > maxIdle
		r.Mu.Unlock()
		if idle {
			delete(s.rooms, code)
		}
	}
}
