// internal/handlers/hub.go
package handlers

import (
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/dfranco/incognito/internal/models"
)

// wsSession is a single player's live WebSocket presence in a room.
type wsSession struct {
	PlayerID uuid.UUID
	Cancel   func()
	OutChan  chan models.RoomEvent

	mu     sync.Mutex
	closed bool
}

// write pushes an event onto the session's OutChan non-blockingly. Events to
// a slow or dead connection are dropped; the client recovers current state
// through the snapshot reads on reconnect. The closed check and the send
// share the session mutex so a concurrent close can never race a send onto
// the closed channel.
func (s *wsSession) write(ev models.RoomEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	select {
	case s.OutChan <- ev:
	default:
		log.Printf("wsSession write WARNING: OutChan for player %s full. Dropped event type '%s'.", s.PlayerID, ev.Type)
	}
}

// close shuts the session down exactly once: marks it closed, closes OutChan
// so the write pump drains out, and cancels the connection context.
func (s *wsSession) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	close(s.OutChan)
	if s.Cancel != nil {
		s.Cancel()
	}
}

// hub tracks the live sessions of every room. It owns no game state; it only
// fans events out where the room core directs them.
type hub struct {
	mu     sync.Mutex
	byRoom map[uuid.UUID]map[uuid.UUID]*wsSession
}

func newHub() *hub {
	return &hub{
		byRoom: make(map[uuid.UUID]map[uuid.UUID]*wsSession),
	}
}

// add registers a session, replacing (and closing) any previous connection of
// the same player.
func (h *hub) add(roomID uuid.UUID, sess *wsSession) {
	h.mu.Lock()
	defer h.mu.Unlock()

	sessions, ok := h.byRoom[roomID]
	if !ok {
		sessions = make(map[uuid.UUID]*wsSession)
		h.byRoom[roomID] = sessions
	}
	if old, ok := sessions[sess.PlayerID]; ok && old != sess {
		old.close()
	}
	sessions[sess.PlayerID] = sess
}

// remove drops a session if it is still the registered one for its player.
func (h *hub) remove(roomID uuid.UUID, sess *wsSession) {
	h.mu.Lock()
	defer h.mu.Unlock()

	sessions, ok := h.byRoom[roomID]
	if !ok {
		return
	}
	if current, ok := sessions[sess.PlayerID]; !ok || current != sess {
		return
	}
	delete(sessions, sess.PlayerID)
	sess.close()
	if len(sessions) == 0 {
		delete(h.byRoom, roomID)
	}
}

// broadcast delivers an event to every session of a room.
func (h *hub) broadcast(roomID uuid.UUID, ev models.RoomEvent) {
	h.mu.Lock()
	sessions := make([]*wsSession, 0, len(h.byRoom[roomID]))
	for _, s := range h.byRoom[roomID] {
		sessions = append(sessions, s)
	}
	h.mu.Unlock()

	for _, s := range sessions {
		s.write(ev)
	}
}

// sendTo delivers an event to one player's session, if connected.
func (h *hub) sendTo(roomID, playerID uuid.UUID, ev models.RoomEvent) {
	h.mu.Lock()
	s, ok := h.byRoom[roomID][playerID]
	h.mu.Unlock()
	if ok {
		s.write(ev)
	}
}
