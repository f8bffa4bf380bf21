package models

import (
	"github.com/google/uuid"
)

// Player is a member of a single room. The ID is stable for the room's
// lifetime and unique within it.
type Player struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Host bool      `json:"host"`

	// Guess-Who state.
	AssignedCharacter string `json:"assignedCharacter,omitempty"`
	Guessed           bool   `json:"guessed"`
	GuessOrder        int    `json:"guessOrder,omitempty"` // 1-based solve rank, 0 until solved
	PendingGuess      string `json:"pendingGuess,omitempty"`
	Notes             string `json:"notes,omitempty"`         // valid clues
	RuledOutNotes     string `json:"ruledOutNotes,omitempty"` // ruled-out clues

	// Impostor state.
	Impostor        bool   `json:"impostor,omitempty"`
	Eliminated      bool   `json:"eliminated"`
	PendingHint     string `json:"pendingHint,omitempty"`     // consolation hint, impostors only
	PendingCategory string `json:"pendingCategory,omitempty"` // consolation category, impostors only
	VisualOrder     int    `json:"visualOrder"`               // frozen turn-circle position (Impostor mode)
}
