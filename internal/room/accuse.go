package room

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/dfranco/incognito/internal/models"
)

// Accuse opens an accusation vote against the target (Impostor mode only).
// Eligible voters are the non-eliminated players other than accuser and
// target: the accuser's intent counts as implicit approval and is never
// double-counted as a ballot.
func (r *Room) Accuse(accuserID, targetID uuid.UUID) error {
	r.Mu.Lock()
	defer r.Mu.Unlock()

	if r.Mode != ModeImpostor {
		return ErrWrongMode
	}
	if r.Phase != PhaseInProgress {
		return ErrGameNotInProgress
	}
	accuser := r.playerByID(accuserID)
	if accuser == nil {
		return ErrUnknownPlayer
	}
	target := r.playerByID(targetID)
	if target == nil || target.ID == accuser.ID {
		return ErrInvalidTarget
	}
	if accuser.Eliminated || target.Eliminated {
		return ErrPlayerEliminated
	}

	pv, err := r.openVote(VoteAccuse, target.ID, accuser.ID, r.eligibleVoters(accuser.ID, target.ID))
	if err != nil {
		return err
	}
	r.touch()

	r.broadcast(models.RoomEvent{
		Type:     models.EventAccuseProgress,
		PlayerID: target.ID,
		Name:     target.Name,
		Count:    0,
		Total:    len(pv.Eligible),
	})
	return nil
}

// CastAccuseVote records one yes/no ballot for the pending accusation vote.
func (r *Room) CastAccuseVote(voterID uuid.UUID, approve bool) error {
	return r.castVote(VoteAccuse, voterID, approve)
}

// resolveAccuse applies a closed accusation vote: elimination on approval,
// then the terminal checks. Catching the last impostor ends the game for the
// innocents, and impostor parity ends it for the impostors. Assumes the room
// lock is held.
func (r *Room) resolveAccuse(pv *PendingVote, approved bool) {
	target := r.playerByID(pv.Subject)
	if target == nil {
		return
	}

	if !approved {
		r.broadcast(models.RoomEvent{
			Type:     models.EventAccuseResult,
			PlayerID: target.ID,
			Name:     target.Name,
			Kind:     models.ResultTie,
			Message:  fmt.Sprintf("The vote against %s did not pass", target.Name),
		})
		return
	}

	target.Eliminated = true

	if target.Impostor {
		impostorsLeft, _ := r.survivors()
		if impostorsLeft == 0 {
			r.Phase = PhaseFinished
			r.broadcast(models.RoomEvent{
				Type:     models.EventAccuseResult,
				PlayerID: target.ID,
				Name:     target.Name,
				Kind:     models.ResultImpostorCaught,
				Message:  fmt.Sprintf("%s was the impostor!", target.Name),
			})
			r.broadcast(models.RoomEvent{
				Type:    models.EventGameOver,
				Kind:    models.ResultInnocentsWin,
				Message: fmt.Sprintf("The innocents win: %s", strings.Join(r.innocentNames(), ", ")),
			})
			return
		}
		r.broadcast(models.RoomEvent{
			Type:     models.EventAccuseResult,
			PlayerID: target.ID,
			Name:     target.Name,
			Kind:     models.ResultImpostorCaught,
			Message:  fmt.Sprintf("%s was an impostor, but others remain", target.Name),
		})
	} else {
		r.broadcast(models.RoomEvent{
			Type:     models.EventAccuseResult,
			PlayerID: target.ID,
			Name:     target.Name,
			Kind:     models.ResultInnocentEjected,
			Message:  fmt.Sprintf("%s was not an impostor", target.Name),
		})
	}

	r.checkImpostorParity()
}

// checkImpostorParity ends the game for the impostors once they reach parity
// with the surviving innocents. Recomputed from current player state on every
// call, never cached. Assumes the room lock is held.
func (r *Room) checkImpostorParity() {
	impostors, innocents := r.survivors()
	if impostors == 0 || impostors < innocents {
		return
	}
	r.Phase = PhaseFinished
	r.broadcast(models.RoomEvent{
		Type:    models.EventGameOver,
		Kind:    models.ResultImpostorWins,
		Message: "The impostors have reached parity and win",
	})
}

// survivors counts non-eliminated impostors and innocents. Assumes the room
// lock is held.
func (r *Room) survivors() (impostors, innocents int) {
	for _, p := range r.Players {
		if p.Eliminated {
			continue
		}
		if p.Impostor {
			impostors++
		} else {
			innocents++
		}
	}
	return impostors, innocents
}

func (r *Room) innocentNames() []string {
	var names []string
	for _, p := range r.Players {
		if !p.Impostor {
			names = append(names, p.Name)
		}
	}
	return names
}
