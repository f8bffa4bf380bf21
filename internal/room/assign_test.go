// internal/room/assign_test.go
package room

import (
	"errors"
	"sort"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dfranco/incognito/internal/models"
)

func TestGuessWhoAssignmentIsDistinct(t *testing.T) {
	r, players, _ := setupRoom(t, Config{Mode: ModeGuessWho, Pack: "FOOTBALL"}, testContent(10), 5)
	require.NoError(t, r.Start(players[0].ID))

	seen := make(map[string]bool)
	for _, p := range players {
		require.NotEmpty(t, p.AssignedCharacter)
		assert.False(t, seen[p.AssignedCharacter], "identity %q assigned twice", p.AssignedCharacter)
		seen[p.AssignedCharacter] = true
	}
}

func TestGuessWhoRequiresEnoughContent(t *testing.T) {
	r, players, _ := setupRoom(t, Config{Mode: ModeGuessWho, Pack: "FOOTBALL"}, testContent(2), 3)

	err := r.Start(players[0].ID)
	assert.ErrorIs(t, err, ErrInsufficientContent)
	assert.Equal(t, PhaseWaiting, r.Phase, "failed assignment must not advance the phase")
}

func TestGuessWhoContentErrorPropagates(t *testing.T) {
	boom := errors.New("store unavailable")
	r, players, _ := setupRoom(t, Config{Mode: ModeGuessWho, Pack: "FOOTBALL"}, stubContent{err: boom}, 3)

	err := r.Start(players[0].ID)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, PhaseWaiting, r.Phase)
}

func TestImpostorAssignmentCounts(t *testing.T) {
	r, players, _ := setupRoom(t, Config{Mode: ModeImpostor, ImpostorCount: 2}, testContent(0), 5)
	require.NoError(t, r.Start(players[0].ID))

	impostors := 0
	for _, p := range players {
		if p.Impostor {
			impostors++
		}
		assert.False(t, p.Eliminated)
	}
	assert.Equal(t, 2, impostors)
	assert.NotEmpty(t, r.CurrentWord)
	assert.NotEmpty(t, r.CurrentCategory)
}

func TestImpostorCountMustLeaveInnocents(t *testing.T) {
	r, players, _ := setupRoom(t, Config{Mode: ModeImpostor, ImpostorCount: 3}, testContent(0), 3)

	err := r.Start(players[0].ID)
	assert.ErrorIs(t, err, ErrInvalidImpostorCount)
}

func TestImpostorVisualOrderIsPermutation(t *testing.T) {
	r, players, _ := setupRoom(t, Config{Mode: ModeImpostor, ImpostorCount: 1}, testContent(0), 5)
	require.NoError(t, r.Start(players[0].ID))

	orders := make([]int, 0, len(players))
	for _, p := range players {
		orders = append(orders, p.VisualOrder)
	}
	sort.Ints(orders)
	for i, v := range orders {
		assert.Equal(t, i, v, "visual order must be a permutation of 0..n-1")
	}
}

func TestImpostorHintsOnlyForImpostors(t *testing.T) {
	content := stubContent{
		words: []models.ImpostorWord{
			{ID: uuid.New(), Category: "Places", Word: "Lighthouse", Hint: "Buildings"},
		},
	}
	r, players, _ := setupRoom(t, Config{Mode: ModeImpostor, ImpostorCount: 1, ImpostorHints: true}, content, 4)
	require.NoError(t, r.Start(players[0].ID))

	for _, p := range players {
		if p.Impostor {
			assert.Equal(t, "Buildings", p.PendingHint)
			assert.Equal(t, "Places", p.PendingCategory)
		} else {
			assert.Empty(t, p.PendingHint)
			assert.Empty(t, p.PendingCategory)
		}
	}
}

func TestImpostorHintsDisabled(t *testing.T) {
	r, players, _ := setupRoom(t, Config{Mode: ModeImpostor, ImpostorCount: 1, ImpostorHints: false}, testContent(0), 4)
	require.NoError(t, r.Start(players[0].ID))

	for _, p := range players {
		assert.Empty(t, p.PendingHint)
		assert.Empty(t, p.PendingCategory)
	}
}

func TestImpostorRequiresWordPool(t *testing.T) {
	r, players, _ := setupRoom(t, Config{Mode: ModeImpostor, ImpostorCount: 1}, stubContent{}, 3)

	err := r.Start(players[0].ID)
	assert.ErrorIs(t, err, ErrInsufficientContent)
}
