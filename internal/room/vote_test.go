// internal/room/vote_test.go
package room

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dfranco/incognito/internal/models"
)

func TestSingleActiveVotePerRoom(t *testing.T) {
	r, players, _ := startedRoom(t, Config{Mode: ModeGuessWho, Pack: "FOOTBALL"}, testContent(8), 4)

	require.NoError(t, r.SubmitGuess(players[0].ID, "Character 1"))
	require.True(t, r.HasPendingVote())

	err := r.SubmitGuess(players[1].ID, "Character 2")
	assert.ErrorIs(t, err, ErrVoteAlreadyActive)

	err = r.RequestChange(players[1].ID, players[2].ID)
	assert.ErrorIs(t, err, ErrVoteAlreadyActive)
}

func TestDuplicateBallotRejected(t *testing.T) {
	r, players, _ := startedRoom(t, Config{Mode: ModeGuessWho, Pack: "FOOTBALL"}, testContent(8), 4)

	require.NoError(t, r.SubmitGuess(players[0].ID, "Character 1"))
	require.NoError(t, r.CastGuessVote(players[1].ID, true))

	err := r.CastGuessVote(players[1].ID, false)
	assert.ErrorIs(t, err, ErrDuplicateVote)
}

func TestSubjectCannotVoteOnOwnGuess(t *testing.T) {
	r, players, _ := startedRoom(t, Config{Mode: ModeGuessWho, Pack: "FOOTBALL"}, testContent(8), 3)

	require.NoError(t, r.SubmitGuess(players[0].ID, "Character 1"))

	err := r.CastGuessVote(players[0].ID, true)
	assert.ErrorIs(t, err, ErrNotEligible)
}

func TestBallotWithoutActiveVote(t *testing.T) {
	r, players, _ := startedRoom(t, Config{Mode: ModeGuessWho, Pack: "FOOTBALL"}, testContent(8), 3)

	err := r.CastGuessVote(players[1].ID, true)
	assert.ErrorIs(t, err, ErrNoActiveVote)
}

func TestBallotOfWrongKindRejected(t *testing.T) {
	r, players, _ := startedRoom(t, Config{Mode: ModeGuessWho, Pack: "FOOTBALL"}, testContent(8), 3)

	require.NoError(t, r.SubmitGuess(players[0].ID, "Character 1"))

	// A change ballot cannot land on a guess vote.
	err := r.CastChangeVote(players[1].ID, true)
	assert.ErrorIs(t, err, ErrNoActiveVote)
}

func TestEarlyMajorityClosesVote(t *testing.T) {
	// 5 players, guesser excluded: 4 eligible. Two yes ballots are not yet a
	// majority; the third closes the vote without waiting for the fourth.
	r, players, mb := startedRoom(t, Config{Mode: ModeGuessWho, Pack: "FOOTBALL"}, testContent(8), 5)

	require.NoError(t, r.SubmitGuess(players[0].ID, "Character 1"))
	mb.clear()

	require.NoError(t, r.CastGuessVote(players[1].ID, true))
	require.NoError(t, r.CastGuessVote(players[2].ID, true))
	require.True(t, r.HasPendingVote())

	progress := mb.eventsOfType(models.EventVoteProgress)
	require.Len(t, progress, 2)
	assert.Equal(t, 2, progress[1].Count)
	assert.Equal(t, 4, progress[1].Total)

	require.NoError(t, r.CastGuessVote(players[3].ID, true))
	assert.False(t, r.HasPendingVote())
	assert.Len(t, mb.eventsOfType(models.EventGuessCorrect), 1)

	err := r.CastGuessVote(players[4].ID, true)
	assert.ErrorIs(t, err, ErrNoActiveVote)
}

func TestEarlyNegativeMajorityClosesVote(t *testing.T) {
	// 4 eligible voters: two no ballots already make a positive majority
	// impossible, so the vote resolves negative immediately.
	r, players, mb := startedRoom(t, Config{Mode: ModeGuessWho, Pack: "FOOTBALL"}, testContent(8), 5)

	require.NoError(t, r.SubmitGuess(players[0].ID, "Character 1"))
	mb.clear()

	require.NoError(t, r.CastGuessVote(players[1].ID, false))
	require.NoError(t, r.CastGuessVote(players[2].ID, false))

	assert.False(t, r.HasPendingVote())
	assert.Len(t, mb.eventsOfType(models.EventGuessIncorrect), 1)
	assert.Empty(t, mb.eventsOfType(models.EventGuessCorrect))
}

func TestTieResolvesNegative(t *testing.T) {
	// 3 players, guesser excluded: 2 eligible. One yes, one no is a tie.
	r, players, mb := startedRoom(t, Config{Mode: ModeGuessWho, Pack: "FOOTBALL"}, testContent(8), 3)

	require.NoError(t, r.SubmitGuess(players[0].ID, "Character 1"))
	mb.clear()

	require.NoError(t, r.CastGuessVote(players[1].ID, true))
	require.NoError(t, r.CastGuessVote(players[2].ID, false))

	assert.False(t, r.HasPendingVote())
	assert.Len(t, mb.eventsOfType(models.EventGuessIncorrect), 1)
	assert.False(t, players[0].Guessed)
}

func TestVoteTimeoutForcesNegativeResolution(t *testing.T) {
	cfg := Config{Mode: ModeGuessWho, Pack: "FOOTBALL", VoteTimeout: 50 * time.Millisecond}
	r, players, mb := startedRoom(t, cfg, testContent(8), 3)

	require.NoError(t, r.SubmitGuess(players[0].ID, "Character 1"))
	require.True(t, r.HasPendingVote())

	require.Eventually(t, func() bool {
		return !r.HasPendingVote()
	}, time.Second, 10*time.Millisecond)

	assert.Len(t, mb.eventsOfType(models.EventGuessIncorrect), 1)
	assert.False(t, players[0].Guessed)

	// The room accepts a fresh vote after the expiry.
	require.NoError(t, r.SubmitGuess(players[0].ID, "Character 2"))
}

func TestStaleTimerDoesNotExpireNewerVote(t *testing.T) {
	cfg := Config{Mode: ModeGuessWho, Pack: "FOOTBALL", VoteTimeout: 60 * time.Millisecond}
	r, players, mb := startedRoom(t, cfg, testContent(8), 3)

	// Resolve the first vote well before its timer fires.
	require.NoError(t, r.SubmitGuess(players[0].ID, "Character 1"))
	require.NoError(t, r.CastGuessVote(players[1].ID, true))
	require.NoError(t, r.CastGuessVote(players[2].ID, true))
	require.False(t, r.HasPendingVote())

	// Open a second vote and let the first timer's deadline pass.
	require.NoError(t, r.SubmitGuess(players[1].ID, "Character 2"))
	time.Sleep(30 * time.Millisecond)
	assert.True(t, r.HasPendingVote(), "newer vote must outlive the stale timer")

	require.Eventually(t, func() bool {
		return !r.HasPendingVote()
	}, time.Second, 10*time.Millisecond)
	assert.Len(t, mb.eventsOfType(models.EventGuessIncorrect), 1)
}

func TestEligibleVotersExcludesEliminated(t *testing.T) {
	r, players, _ := startedRoom(t, Config{Mode: ModeImpostor, ImpostorCount: 1}, testContent(0), 5)

	r.Mu.Lock()
	players[3].Eliminated = true
	eligible := r.eligibleVoters(players[0].ID)
	r.Mu.Unlock()

	assert.Len(t, eligible, 3)
	assert.False(t, eligible[players[0].ID])
	assert.False(t, eligible[players[3].ID])
}

func TestOpenVoteRequiresEligibleVoters(t *testing.T) {
	r, players, _ := setupRoom(t, Config{Mode: ModeGuessWho, Pack: "FOOTBALL"}, testContent(8), 2)
	require.NoError(t, r.Start(players[0].ID))

	r.Mu.Lock()
	_, err := r.openVote(VoteGuess, players[0].ID, players[0].ID, map[uuid.UUID]bool{})
	r.Mu.Unlock()
	assert.ErrorIs(t, err, ErrNoEligibleVoters)
}
