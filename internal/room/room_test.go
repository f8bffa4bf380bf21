// internal/room/room_test.go
package room

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dfranco/incognito/internal/models"
)

// mockBroadcaster collects events instead of sending them over WS.
type mockBroadcaster struct {
	mu           sync.Mutex
	allEvents    []models.RoomEvent               // Events sent to everyone
	playerEvents map[uuid.UUID][]models.RoomEvent // Events sent to specific players
}

func newMockBroadcaster() *mockBroadcaster {
	return &mockBroadcaster{
		playerEvents: make(map[uuid.UUID][]models.RoomEvent),
	}
}

func (mb *mockBroadcaster) broadcastFn(ev models.RoomEvent) {
	mb.mu.Lock()
	defer mb.mu.Unlock()
	mb.allEvents = append(mb.allEvents, ev)
}

func (mb *mockBroadcaster) broadcastToPlayerFn(playerID uuid.UUID, ev models.RoomEvent) {
	mb.mu.Lock()
	defer mb.mu.Unlock()
	mb.playerEvents[playerID] = append(mb.playerEvents[playerID], ev)
}

func (mb *mockBroadcaster) clear() {
	mb.mu.Lock()
	defer mb.mu.Unlock()
	mb.allEvents = nil
	mb.playerEvents = make(map[uuid.UUID][]models.RoomEvent)
}

func (mb *mockBroadcaster) getLastEvent() *models.RoomEvent {
	mb.mu.Lock()
	defer mb.mu.Unlock()
	if len(mb.allEvents) == 0 {
		return nil
	}
	return &mb.allEvents[len(mb.allEvents)-1]
}

// eventsOfType returns every broadcast event with the given type.
func (mb *mockBroadcaster) eventsOfType(t models.RoomEventType) []models.RoomEvent {
	mb.mu.Lock()
	defer mb.mu.Unlock()
	var out []models.RoomEvent
	for _, ev := range mb.allEvents {
		if ev.Type == t {
			out = append(out, ev)
		}
	}
	return out
}

// playerEventsOfType returns the per-player events of one type delivered to
// one recipient.
func (mb *mockBroadcaster) playerEventsOfType(playerID uuid.UUID, t models.RoomEventType) []models.RoomEvent {
	mb.mu.Lock()
	defer mb.mu.Unlock()
	var out []models.RoomEvent
	for _, ev := range mb.playerEvents[playerID] {
		if ev.Type == t {
			out = append(out, ev)
		}
	}
	return out
}

// stubContent is an in-memory ContentSource for tests.
type stubContent struct {
	items []models.CategoryItem
	words []models.ImpostorWord
	err   error
}

func (s stubContent) CategoryItems(ctx context.Context, pack string) ([]models.CategoryItem, error) {
	return s.items, s.err
}

func (s stubContent) ImpostorWords(ctx context.Context, category string) ([]models.ImpostorWord, error) {
	return s.words, s.err
}

func testContent(numItems int) stubContent {
	items := make([]models.CategoryItem, numItems)
	for i := range items {
		items[i] = models.CategoryItem{
			ID:   uuid.New(),
			Name: fmt.Sprintf("Character %d", i+1),
			Pack: "FOOTBALL",
		}
	}
	return stubContent{
		items: items,
		words: []models.ImpostorWord{
			{ID: uuid.New(), Category: "Places", Word: "Lighthouse", Hint: "Buildings"},
		},
	}
}

// setupRoom builds a room with joined players and mock broadcasters, without
// starting the game.
func setupRoom(t *testing.T, cfg Config, content ContentSource, numPlayers int) (*Room, []*models.Player, *mockBroadcaster) {
	t.Helper()

	r := New(NewCode(), cfg, content)
	mb := newMockBroadcaster()
	r.BroadcastFn = mb.broadcastFn
	r.BroadcastToPlayerFn = mb.broadcastToPlayerFn

	players := make([]*models.Player, numPlayers)
	for i := 0; i < numPlayers; i++ {
		p, err := r.Join(fmt.Sprintf("player%d", i+1))
		require.NoError(t, err)
		players[i] = p
	}
	return r, players, mb
}

// startedRoom is setupRoom plus a successful Start, with setup events cleared.
func startedRoom(t *testing.T, cfg Config, content ContentSource, numPlayers int) (*Room, []*models.Player, *mockBroadcaster) {
	t.Helper()
	r, players, mb := setupRoom(t, cfg, content, numPlayers)
	require.NoError(t, r.Start(players[0].ID))
	mb.clear()
	return r, players, mb
}

func TestJoinAssignsHostToFirstPlayer(t *testing.T) {
	r, players, mb := setupRoom(t, Config{Mode: ModeGuessWho, Pack: "FOOTBALL"}, testContent(8), 3)

	assert.True(t, players[0].Host)
	assert.False(t, players[1].Host)
	assert.False(t, players[2].Host)
	assert.Equal(t, PhaseWaiting, r.Phase)

	joins := mb.eventsOfType(models.EventPlayerJoined)
	require.Len(t, joins, 3)
	assert.Equal(t, players[2].ID, joins[2].PlayerID)
	assert.Equal(t, "player3", joins[2].Name)
}

func TestJoinRejectsDuplicateAndEmptyNames(t *testing.T) {
	r, _, _ := setupRoom(t, Config{Mode: ModeGuessWho, Pack: "FOOTBALL"}, testContent(8), 2)

	_, err := r.Join("PLAYER1")
	assert.ErrorIs(t, err, ErrNameTaken)

	_, err = r.Join("   ")
	assert.ErrorIs(t, err, ErrEmptyName)
}

func TestJoinRejectedOnceInProgress(t *testing.T) {
	r, players, _ := setupRoom(t, Config{Mode: ModeGuessWho, Pack: "FOOTBALL"}, testContent(8), 2)
	require.NoError(t, r.Start(players[0].ID))

	_, err := r.Join("latecomer")
	assert.ErrorIs(t, err, ErrRoomNotJoinable)
}

func TestStartRequiresHost(t *testing.T) {
	r, players, _ := setupRoom(t, Config{Mode: ModeGuessWho, Pack: "FOOTBALL"}, testContent(8), 2)

	err := r.Start(players[1].ID)
	assert.ErrorIs(t, err, ErrNotHost)

	err = r.Start(uuid.New())
	assert.ErrorIs(t, err, ErrUnknownPlayer)
}

func TestStartRequiresTwoPlayers(t *testing.T) {
	r, players, _ := setupRoom(t, Config{Mode: ModeGuessWho, Pack: "FOOTBALL"}, testContent(8), 1)

	err := r.Start(players[0].ID)
	assert.ErrorIs(t, err, ErrInsufficientPlayers)
}

func TestStartIsNotRepeatable(t *testing.T) {
	r, players, mb := setupRoom(t, Config{Mode: ModeGuessWho, Pack: "FOOTBALL"}, testContent(8), 2)
	require.NoError(t, r.Start(players[0].ID))
	require.Equal(t, PhaseInProgress, r.Phase)
	assert.Len(t, mb.eventsOfType(models.EventGameStarted), 1)

	err := r.Start(players[0].ID)
	assert.ErrorIs(t, err, ErrGameAlreadyStarted)
}

func TestResetReturnsToWaitingAndClearsSecrets(t *testing.T) {
	r, players, mb := startedRoom(t, Config{Mode: ModeGuessWho, Pack: "FOOTBALL"}, testContent(8), 3)

	require.NoError(t, r.SubmitGuess(players[1].ID, "Character 1"))
	require.True(t, r.HasPendingVote())

	err := r.Reset(players[1].ID)
	assert.ErrorIs(t, err, ErrNotHost)

	require.NoError(t, r.Reset(players[0].ID))
	assert.Equal(t, PhaseWaiting, r.Phase)
	assert.False(t, r.HasPendingVote())
	for _, p := range players {
		assert.Empty(t, p.AssignedCharacter)
		assert.Empty(t, p.PendingGuess)
		assert.False(t, p.Guessed)
		assert.Zero(t, p.GuessOrder)
	}
	assert.Len(t, mb.eventsOfType(models.EventGameReset), 1)

	// A reset room can start a fresh round.
	require.NoError(t, r.Start(players[0].ID))
	assert.Equal(t, PhaseInProgress, r.Phase)
}

func TestUpdateNotesBroadcastsOnlyPlayerID(t *testing.T) {
	r, players, mb := startedRoom(t, Config{Mode: ModeGuessWho, Pack: "FOOTBALL"}, testContent(8), 2)

	require.NoError(t, r.UpdateNotes(players[1].ID, "wears glasses", "no hat"))
	assert.Equal(t, "wears glasses", players[1].Notes)
	assert.Equal(t, "no hat", players[1].RuledOutNotes)

	evs := mb.eventsOfType(models.EventNotesUpdated)
	require.Len(t, evs, 1)
	assert.Equal(t, players[1].ID, evs[0].PlayerID)
	assert.Empty(t, evs[0].Text, "note content must never be broadcast")

	err := r.UpdateNotes(uuid.New(), "x", "y")
	assert.ErrorIs(t, err, ErrUnknownPlayer)
}

func TestNewCodeShape(t *testing.T) {
	for i := 0; i < 20; i++ {
		code := NewCode()
		assert.Len(t, code, 4)
		assert.Equal(t, strings.ToUpper(code), code)
	}
}

func TestRoomTouchOnActivity(t *testing.T) {
	r, players, _ := setupRoom(t, Config{Mode: ModeGuessWho, Pack: "FOOTBALL"}, testContent(8), 2)

	r.Mu.Lock()
	r.LastActive = time.Now().Add(-time.Hour)
	r.Mu.Unlock()

	require.NoError(t, r.Start(players[0].ID))
	r.Mu.Lock()
	idle := time.Since(r.LastActive)
	r.Mu.Unlock()
	assert.Less(t, idle, time.Minute)
}
