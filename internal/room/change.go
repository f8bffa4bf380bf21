package room

import (
	"context"
	"math/rand"

	"github.com/google/uuid"

	"github.com/dfranco/incognito/internal/models"
)

// RequestChange opens a change-suggestion vote to reshuffle the target's
// assigned identity. Everyone except the target votes; the proposal event is
// suppressed for the target so they never learn a vote about them is running.
func (r *Room) RequestChange(requesterID, targetID uuid.UUID) error {
	r.Mu.Lock()
	defer r.Mu.Unlock()

	if r.Phase != PhaseInProgress {
		return ErrGameNotInProgress
	}
	requester := r.playerByID(requesterID)
	if requester == nil {
		return ErrUnknownPlayer
	}
	target := r.playerByID(targetID)
	if target == nil {
		return ErrInvalidTarget
	}

	if _, err := r.openVote(VoteChange, target.ID, requester.ID, r.eligibleVoters(target.ID)); err != nil {
		return err
	}
	r.touch()

	r.broadcastExcept(target.ID, models.RoomEvent{
		Type:          models.EventChangeProposed,
		PlayerID:      target.ID,
		Name:          target.Name,
		RequesterName: requester.Name,
	})
	return nil
}

// CastChangeVote records one yes/no ballot for the pending change vote.
func (r *Room) CastChangeVote(voterID uuid.UUID, approve bool) error {
	return r.castVote(VoteChange, voterID, approve)
}

// resolveChange applies a closed change vote. Approval redraws the target's
// identity from the unused pool (falling back to the full pool minus their
// current identity when exhausted) and resets their solved state. Assumes the
// room lock is held.
func (r *Room) resolveChange(pv *PendingVote, approved bool) {
	target := r.playerByID(pv.Subject)
	if target == nil {
		return
	}

	if !approved {
		r.broadcast(models.RoomEvent{
			Type:     models.EventChangeRejected,
			PlayerID: target.ID,
			Name:     target.Name,
		})
		return
	}

	replacement, ok := r.drawReplacement(target.AssignedCharacter)
	if !ok {
		// Nothing left to draw from; surface as a rejection rather than
		// corrupting the target's assignment.
		r.broadcast(models.RoomEvent{
			Type:     models.EventChangeRejected,
			PlayerID: target.ID,
			Name:     target.Name,
		})
		return
	}

	target.AssignedCharacter = replacement
	target.Guessed = false
	target.GuessOrder = 0
	target.PendingGuess = ""

	r.broadcast(models.RoomEvent{
		Type:     models.EventChangeExecuted,
		PlayerID: target.ID,
		Name:     target.Name,
	})
}

// drawReplacement picks a random pack entry not currently assigned in the
// room, or, when the pool is exhausted, any entry other than current. Assumes
// the room lock is held.
func (r *Room) drawReplacement(current string) (string, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), contentFetchTimeout)
	defer cancel()

	items, err := r.Content.CategoryItems(ctx, r.Pack)
	if err != nil {
		return "", false
	}

	assigned := make(map[string]bool, len(r.Players))
	for _, p := range r.Players {
		if p.AssignedCharacter != "" {
			assigned[p.AssignedCharacter] = true
		}
	}

	var unused []string
	for _, item := range items {
		if !assigned[item.Name] {
			unused = append(unused, item.Name)
		}
	}
	if len(unused) == 0 {
		for _, item := range items {
			if item.Name != current {
				unused = append(unused, item.Name)
			}
		}
	}
	if len(unused) == 0 {
		return "", false
	}
	return unused[rand.Intn(len(unused))], true
}
