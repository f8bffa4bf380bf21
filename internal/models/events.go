package models

import "github.com/google/uuid"

// RoomEventType is an enum-like type for broadcasting room state changes.
type RoomEventType string

const (
	EventPlayerJoined   RoomEventType = "player_joined"
	EventGameStarted    RoomEventType = "game_started"
	EventGameReset      RoomEventType = "game_reset"
	EventGuessSubmitted RoomEventType = "guess_submitted"
	EventGuessCorrect   RoomEventType = "guess_validated_correct"
	EventGuessIncorrect RoomEventType = "guess_validated_incorrect"
	EventChangeProposed RoomEventType = "change_proposed"
	EventChangeExecuted RoomEventType = "change_executed"
	EventChangeRejected RoomEventType = "change_rejected"
	EventVoteProgress   RoomEventType = "vote_progress"
	EventAccuseProgress RoomEventType = "accuse_progress"
	EventAccuseResult   RoomEventType = "accuse_result"
	EventGameOver       RoomEventType = "game_over"
	EventNotesUpdated   RoomEventType = "notes_updated"
)

// Accusation result and game-over kinds carried in the Kind field.
const (
	ResultImpostorCaught  = "IMPOSTOR_CAUGHT"
	ResultInnocentEjected = "INNOCENT_EJECTED"
	ResultTie             = "TIE"
	ResultImpostorWins    = "IMPOSTOR_WINS"
	ResultInnocentsWin    = "INNOCENTS_WIN"
)

// RoomEvent is the single structured broadcast message type. Each event type
// fills only the fields it needs; everything else stays zero and is omitted
// from the wire encoding.
type RoomEvent struct {
	Type RoomEventType `json:"type"`

	// PlayerID and Name identify the acting or affected player.
	PlayerID uuid.UUID `json:"playerId,omitempty"`
	Name     string    `json:"name,omitempty"`

	// Text carries a guess candidate for guess_submitted.
	Text string `json:"text,omitempty"`

	// RequesterName identifies who proposed a change suggestion.
	RequesterName string `json:"requesterName,omitempty"`

	// Count/Total report live tally progress without revealing ballots.
	Count int `json:"count,omitempty"`
	Total int `json:"total,omitempty"`

	// Kind and Message qualify accuse_result and game_over events.
	Kind    string `json:"kind,omitempty"`
	Message string `json:"message,omitempty"`
}
