package room

import (
	"time"

	"github.com/google/uuid"

	"github.com/dfranco/incognito/internal/models"
)

// VoteKind discriminates the three voting protocols sharing the tally engine.
type VoteKind string

const (
	VoteGuess  VoteKind = "guess"
	VoteChange VoteKind = "change"
	VoteAccuse VoteKind = "accuse"
)

// PendingVote is the single in-flight vote session of a room. The eligible
// set is frozen at open time; ballots are one per voter and immutable once
// cast. At most one PendingVote exists per room at any instant.
type PendingVote struct {
	Kind      VoteKind
	Subject   uuid.UUID // guesser for guess votes, target otherwise
	Requester uuid.UUID
	Eligible  map[uuid.UUID]bool
	Ballots   map[uuid.UUID]bool // voter -> choice
	OpenedAt  time.Time
}

func (pv *PendingVote) tally() (yes, no int) {
	for _, choice := range pv.Ballots {
		if choice {
			yes++
		} else {
			no++
		}
	}
	return yes, no
}

// resolution reports whether the vote can close now and, if so, its outcome.
// The vote closes once every eligible voter has cast a ballot, or earlier as
// soon as one side is mathematically guaranteed a majority. A tie resolves
// negative.
func (pv *PendingVote) resolution() (outcome, done bool) {
	yes, no := pv.tally()
	total := len(pv.Eligible)
	switch {
	case yes*2 > total:
		return true, true
	case no*2 >= total:
		return false, true
	case len(pv.Ballots) == total:
		return yes > no, true
	}
	return false, false
}

// openVote installs a new PendingVote. Assumes the room lock is held.
func (r *Room) openVote(kind VoteKind, subject, requester uuid.UUID, eligible map[uuid.UUID]bool) (*PendingVote, error) {
	if r.pending != nil {
		return nil, ErrVoteAlreadyActive
	}
	if len(eligible) == 0 {
		return nil, ErrNoEligibleVoters
	}
	pv := &PendingVote{
		Kind:      kind,
		Subject:   subject,
		Requester: requester,
		Eligible:  eligible,
		Ballots:   make(map[uuid.UUID]bool),
		OpenedAt:  time.Now(),
	}
	r.pending = pv
	r.armVoteTimer(pv)
	return pv, nil
}

// armVoteTimer schedules the stall guard for pv. A vote that outlives the
// configured timeout force-resolves along its negative path. Assumes the room
// lock is held.
func (r *Room) armVoteTimer(pv *PendingVote) {
	if r.VoteTimeout <= 0 {
		return
	}
	r.voteTimer = time.AfterFunc(r.VoteTimeout, func() {
		r.Mu.Lock()
		defer r.Mu.Unlock()
		// A newer vote may have opened since; only expire the one we armed for.
		if r.pending != pv {
			return
		}
		r.clearVote()
		r.finishVote(pv, false)
	})
}

// clearVote destroys the pending vote state. Assumes the room lock is held.
func (r *Room) clearVote() {
	if r.voteTimer != nil {
		r.voteTimer.Stop()
		r.voteTimer = nil
	}
	r.pending = nil
}

// castVote records one ballot for the room's pending vote of the given kind.
// The ballot write, the resolution check, and any resulting protocol side
// effects execute as one atomic step under the room lock, so concurrent casts
// from separate connections can never interleave mid-tally.
func (r *Room) castVote(kind VoteKind, voterID uuid.UUID, choice bool) error {
	r.Mu.Lock()
	defer r.Mu.Unlock()

	pv := r.pending
	if pv == nil || pv.Kind != kind {
		return ErrNoActiveVote
	}
	if !pv.Eligible[voterID] {
		return ErrNotEligible
	}
	if _, dup := pv.Ballots[voterID]; dup {
		return ErrDuplicateVote
	}

	pv.Ballots[voterID] = choice
	r.touch()

	if outcome, done := pv.resolution(); done {
		r.clearVote()
		r.finishVote(pv, outcome)
		return nil
	}

	progress := models.EventVoteProgress
	if kind == VoteAccuse {
		progress = models.EventAccuseProgress
	}
	r.broadcast(models.RoomEvent{
		Type:  progress,
		Count: len(pv.Ballots),
		Total: len(pv.Eligible),
	})
	return nil
}

// finishVote dispatches a closed vote to its protocol. Assumes the room lock
// is held and the PendingVote has already been cleared.
func (r *Room) finishVote(pv *PendingVote, outcome bool) {
	switch pv.Kind {
	case VoteGuess:
		r.resolveGuess(pv, outcome)
	case VoteChange:
		r.resolveChange(pv, outcome)
	case VoteAccuse:
		r.resolveAccuse(pv, outcome)
	}
}

// eligibleVoters builds the frozen voter set for a new vote: every
// non-eliminated player except the listed exclusions. Assumes the room lock is
// held.
func (r *Room) eligibleVoters(excluded ...uuid.UUID) map[uuid.UUID]bool {
	skip := make(map[uuid.UUID]bool, len(excluded))
	for _, id := range excluded {
		skip[id] = true
	}
	eligible := make(map[uuid.UUID]bool, len(r.Players))
	for _, p := range r.Players {
		if p.Eliminated || skip[p.ID] {
			continue
		}
		eligible[p.ID] = true
	}
	return eligible
}
