package room

import (
	"github.com/google/uuid"

	"github.com/dfranco/incognito/internal/models"
)

// Snapshot is the idempotent read clients poll to (re)build their view, e.g.
// after a reconnect. Secrets are filtered server-side for the viewer before
// anything leaves the core.
type Snapshot struct {
	Code          string          `json:"code"`
	Mode          GameMode        `json:"mode"`
	Phase         Phase           `json:"phase"`
	Pack          string          `json:"pack,omitempty"`
	ImpostorCount int             `json:"impostorCount,omitempty"`
	ImpostorHints bool            `json:"impostorHints,omitempty"`
	Category      string          `json:"category,omitempty"`
	Word          string          `json:"word,omitempty"`
	Players       []models.Player `json:"players"`
}

// SnapshotFor builds the room view authorized for the given viewer:
//   - Guess-Who: the viewer's own assigned identity is masked (everyone
//     else's is visible; that is the game).
//   - Impostor: the secret word and category are included only for
//     non-impostor viewers while the game runs; impostors see only their
//     consolation hint fields. Once FINISHED everything is revealed.
func (r *Room) SnapshotFor(viewerID uuid.UUID) Snapshot {
	r.Mu.Lock()
	defer r.Mu.Unlock()

	snap := Snapshot{
		Code:          r.Code,
		Mode:          r.Mode,
		Phase:         r.Phase,
		Pack:          r.Pack,
		ImpostorCount: r.ImpostorCount,
		ImpostorHints: r.ImpostorHints,
		Players:       r.playersFor(viewerID),
	}

	viewer := r.playerByID(viewerID)
	revealWord := r.Phase == PhaseFinished ||
		(r.Mode == ModeImpostor && viewer != nil && !viewer.Impostor)
	if revealWord {
		snap.Word = r.CurrentWord
		snap.Category = r.CurrentCategory
	}
	return snap
}

// PlayersFor returns per-player public state plus the viewer's self-visible
// fields, with the same masking rules as SnapshotFor.
func (r *Room) PlayersFor(viewerID uuid.UUID) []models.Player {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	return r.playersFor(viewerID)
}

// playersFor copies and masks player state for a viewer. Assumes the room
// lock is held.
func (r *Room) playersFor(viewerID uuid.UUID) []models.Player {
	finished := r.Phase == PhaseFinished
	out := make([]models.Player, 0, len(r.Players))
	for _, p := range r.Players {
		cp := *p
		self := p.ID == viewerID

		if !self {
			// Notes and pending consolation info are private.
			cp.Notes = ""
			cp.RuledOutNotes = ""
			cp.PendingHint = ""
			cp.PendingCategory = ""
		}
		if r.Mode == ModeGuessWho && self && !cp.Guessed && !finished {
			cp.AssignedCharacter = ""
		}
		if r.Mode == ModeImpostor && !self && !finished {
			cp.Impostor = false
		}
		out = append(out, cp)
	}
	return out
}
