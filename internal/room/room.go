package room

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dfranco/incognito/internal/models"
)

// GameMode selects which rule set a room plays.
type GameMode string

const (
	ModeGuessWho GameMode = "GUESS_WHO"
	ModeImpostor GameMode = "IMPOSTOR"
)

// Phase is the room lifecycle state.
type Phase string

const (
	PhaseWaiting    Phase = "WAITING"
	PhaseInProgress Phase = "IN_PROGRESS"
	PhaseFinished   Phase = "FINISHED"
)

// DefaultVoteTimeout bounds how long a PendingVote may stall before it
// force-resolves negatively. Zero disables the guard.
const DefaultVoteTimeout = 2 * time.Minute

// ContentSource supplies pack entries to the room core. The backing store is
// external; the core only draws from it and treats reads as eventually
// reflecting prior writes.
type ContentSource interface {
	CategoryItems(ctx context.Context, pack string) ([]models.CategoryItem, error)
	// ImpostorWords returns the word pool for a category. An empty or "RANDOM"
	// category returns the full pool.
	ImpostorWords(ctx context.Context, category string) ([]models.ImpostorWord, error)
}

// Config carries the mode-specific settings chosen at room creation.
type Config struct {
	Mode             GameMode
	Pack             string // Guess-Who content pack
	ImpostorCount    int
	ImpostorHints    bool
	ImpostorCategory string // concrete category or "RANDOM"
	VoteTimeout      time.Duration
}

// Room holds the entire authoritative state of one game session. All mutating
// operations run under Mu; two rooms never contend. Broadcast functions are
// injected by the transport layer and must not block.
type Room struct {
	ID   uuid.UUID
	Code string
	Mode GameMode

	Phase   Phase
	Players []*models.Player // insertion order = join order

	Pack             string
	ImpostorCount    int
	ImpostorHints    bool
	ImpostorCategory string
	CurrentWord      string
	CurrentCategory  string

	Content ContentSource

	VoteTimeout time.Duration
	pending     *PendingVote
	voteTimer   *time.Timer

	LastActive time.Time

	Mu sync.Mutex

	// BroadcastFn sends an event to every room member. If nil, no broadcast
	// is done.
	BroadcastFn func(ev models.RoomEvent)

	// BroadcastToPlayerFn sends an event to a single member; used for
	// target-hidden events.
	BroadcastToPlayerFn func(playerID uuid.UUID, ev models.RoomEvent)
}

// New builds an empty WAITING room with the given join code.
func New(code string, cfg Config, content ContentSource) *Room {
	id, _ := uuid.NewRandom()
	r := &Room{
		ID:               id,
		Code:             code,
		Mode:             cfg.Mode,
		Phase:            PhaseWaiting,
		Pack:             cfg.Pack,
		ImpostorCount:    cfg.ImpostorCount,
		ImpostorHints:    cfg.ImpostorHints,
		ImpostorCategory: cfg.ImpostorCategory,
		Content:          content,
		VoteTimeout:      cfg.VoteTimeout,
		LastActive:       time.Now(),
	}
	if r.Mode == "" {
		r.Mode = ModeGuessWho
	}
	if r.Mode == ModeImpostor && r.ImpostorCount < 1 {
		r.ImpostorCount = 1
	}
	return r
}

// NewCode derives a short human-typeable join code.
func NewCode() string {
	return strings.ToUpper(uuid.NewString()[:4])
}

// Join adds a player while the room is WAITING. The first player to join
// becomes the host. Display names are unique per room, case-insensitively.
func (r *Room) Join(name string) (*models.Player, error) {
	r.Mu.Lock()
	defer r.Mu.Unlock()

	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}
	if r.Phase != PhaseWaiting {
		return nil, ErrRoomNotJoinable
	}
	for _, p := range r.Players {
		if strings.EqualFold(p.Name, name) {
			return nil, ErrNameTaken
		}
	}

	id, _ := uuid.NewRandom()
	p := &models.Player{
		ID:   id,
		Name: name,
		Host: len(r.Players) == 0,
	}
	r.Players = append(r.Players, p)
	r.touch()

	r.broadcast(models.RoomEvent{
		Type:     models.EventPlayerJoined,
		PlayerID: p.ID,
		Name:     p.Name,
	})
	return p, nil
}

// Start transitions WAITING -> IN_PROGRESS and performs the mode's secret
// assignment. Host-only; requires at least two players.
func (r *Room) Start(requesterID uuid.UUID) error {
	r.Mu.Lock()
	defer r.Mu.Unlock()

	requester := r.playerByID(requesterID)
	if requester == nil {
		return ErrUnknownPlayer
	}
	if !requester.Host {
		return ErrNotHost
	}
	if r.Phase != PhaseWaiting {
		return ErrGameAlreadyStarted
	}
	if len(r.Players) < 2 {
		return ErrInsufficientPlayers
	}

	var err error
	if r.Mode == ModeImpostor {
		err = r.assignImpostor()
	} else {
		err = r.assignGuessWho()
	}
	if err != nil {
		return err
	}

	r.Phase = PhaseInProgress
	r.touch()
	r.broadcast(models.RoomEvent{Type: models.EventGameStarted})
	return nil
}

// Reset returns the room to WAITING from any phase, clearing all per-player
// secret state and any pending vote. Nothing is reassigned until the next
// Start. Host-only.
func (r *Room) Reset(requesterID uuid.UUID) error {
	r.Mu.Lock()
	defer r.Mu.Unlock()

	requester := r.playerByID(requesterID)
	if requester == nil {
		return ErrUnknownPlayer
	}
	if !requester.Host {
		return ErrNotHost
	}

	r.clearVote()
	for _, p := range r.Players {
		p.AssignedCharacter = ""
		p.Guessed = false
		p.GuessOrder = 0
		p.PendingGuess = ""
		p.Impostor = false
		p.Eliminated = false
		p.PendingHint = ""
		p.PendingCategory = ""
		p.VisualOrder = 0
	}
	r.CurrentWord = ""
	r.CurrentCategory = ""
	r.Phase = PhaseWaiting
	r.touch()

	r.broadcast(models.RoomEvent{Type: models.EventGameReset})
	return nil
}

// UpdateNotes stores a player's two free-text note fields. Note content is
// private; the broadcast carries only the player id.
func (r *Room) UpdateNotes(playerID uuid.UUID, valid, ruledOut string) error {
	r.Mu.Lock()
	defer r.Mu.Unlock()

	p := r.playerByID(playerID)
	if p == nil {
		return ErrUnknownPlayer
	}
	p.Notes = valid
	p.RuledOutNotes = ruledOut
	r.touch()

	r.broadcast(models.RoomEvent{Type: models.EventNotesUpdated, PlayerID: p.ID})
	return nil
}

// HasPlayer reports whether the given id belongs to this room.
func (r *Room) HasPlayer(id uuid.UUID) bool {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	return r.playerByID(id) != nil
}

// HasPendingVote reports whether a vote session is currently open.
func (r *Room) HasPendingVote() bool {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	return r.pending != nil
}

// playerByID returns the member with the given id, or nil. Assumes the room
// lock is held.
func (r *Room) playerByID(id uuid.UUID) *models.Player {
	for _, p := range r.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// touch refreshes the idle-expiry clock. Assumes the room lock is held.
func (r *Room) touch() {
	r.LastActive = time.Now()
}

// broadcast fans an event out to every member. Assumes the room lock is held;
// the injected functions are non-blocking.
func (r *Room) broadcast(ev models.RoomEvent) {
	if r.BroadcastFn != nil {
		r.BroadcastFn(ev)
	}
}

// broadcastExcept delivers an event to every member but one. This is how
// target-hidden events (change proposals) stay invisible to their subject:
// the core decides whom to exclude, the transport only fans out.
func (r *Room) broadcastExcept(excluded uuid.UUID, ev models.RoomEvent) {
	if r.BroadcastToPlayerFn == nil {
		return
	}
	for _, p := range r.Players {
		if p.ID != excluded {
			r.BroadcastToPlayerFn(p.ID, ev)
		}
	}
}
