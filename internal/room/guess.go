package room

import (
	"github.com/google/uuid"

	"github.com/dfranco/incognito/internal/models"
)

// SubmitGuess opens a guess-validation vote for the player's candidate
// identity. Every other player validates it; the guesser never votes on their
// own guess.
func (r *Room) SubmitGuess(playerID uuid.UUID, candidate string) error {
	r.Mu.Lock()
	defer r.Mu.Unlock()

	if r.Phase != PhaseInProgress {
		return ErrGameNotInProgress
	}
	p := r.playerByID(playerID)
	if p == nil {
		return ErrUnknownPlayer
	}
	if p.Guessed {
		return ErrAlreadySolved
	}
	if p.Eliminated {
		return ErrPlayerEliminated
	}

	if _, err := r.openVote(VoteGuess, p.ID, p.ID, r.eligibleVoters(p.ID)); err != nil {
		return err
	}
	p.PendingGuess = candidate
	r.touch()

	r.broadcast(models.RoomEvent{
		Type:     models.EventGuessSubmitted,
		PlayerID: p.ID,
		Name:     p.Name,
		Text:     candidate,
	})
	return nil
}

// CastGuessVote records one correct/incorrect ballot for the pending guess
// vote.
func (r *Room) CastGuessVote(voterID uuid.UUID, correct bool) error {
	return r.castVote(VoteGuess, voterID, correct)
}

// resolveGuess applies a closed guess vote. A validated guess marks the
// player solved and assigns the next solve rank atomically with resolution; a
// rejected guess leaves the player free to try again. Assumes the room lock
// is held.
func (r *Room) resolveGuess(pv *PendingVote, correct bool) {
	p := r.playerByID(pv.Subject)
	if p == nil {
		return
	}
	p.PendingGuess = ""

	if !correct {
		r.broadcast(models.RoomEvent{
			Type:     models.EventGuessIncorrect,
			PlayerID: p.ID,
			Name:     p.Name,
		})
		return
	}

	rank := 1
	for _, other := range r.Players {
		if other.GuessOrder > 0 {
			rank++
		}
	}
	p.Guessed = true
	p.GuessOrder = rank

	r.broadcast(models.RoomEvent{
		Type:     models.EventGuessCorrect,
		PlayerID: p.ID,
		Name:     p.Name,
	})
}
