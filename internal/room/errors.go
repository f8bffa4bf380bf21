package room

import "errors"

// Sentinel errors returned by room operations. Handlers classify them with
// Classify to pick an HTTP status; the core never wraps one error kind in
// another.
var (
	ErrRoomNotFound  = errors.New("room not found")
	ErrUnknownPlayer = errors.New("player not found in room")

	ErrNotHost             = errors.New("only the host may perform this action")
	ErrNotEligible         = errors.New("voter is not eligible for this vote")
	ErrPlayerEliminated    = errors.New("player has been eliminated")
	ErrInsufficientPlayers = errors.New("not enough players")

	ErrRoomNotJoinable    = errors.New("room is not accepting joins")
	ErrGameNotInProgress  = errors.New("game is not in progress")
	ErrGameAlreadyStarted = errors.New("game already started")
	ErrAlreadySolved      = errors.New("player already solved their identity")
	ErrVoteAlreadyActive  = errors.New("a vote is already in progress")
	ErrNoActiveVote       = errors.New("no matching vote is in progress")
	ErrDuplicateVote      = errors.New("voter has already cast a ballot")

	ErrNameTaken            = errors.New("name already in use in this room")
	ErrEmptyName            = errors.New("player name must not be empty")
	ErrWrongMode            = errors.New("operation not available in this game mode")
	ErrInvalidTarget        = errors.New("invalid target player")
	ErrInvalidImpostorCount = errors.New("impostor count must be at least 1 and below the player count")
	ErrNoEligibleVoters     = errors.New("no eligible voters for this vote")

	ErrInsufficientContent = errors.New("not enough content entries for the player count")
)

// ErrorKind groups the sentinel errors into the coarse classes the transport
// layer cares about.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindNotFound
	KindValidation
	KindAuthorization
	KindConflict
	KindContentExhaustion
)

// Classify maps a room error to its kind. Unrecognized errors report
// KindUnknown and should be treated as internal failures.
func Classify(err error) ErrorKind {
	switch {
	case errors.Is(err, ErrRoomNotFound), errors.Is(err, ErrUnknownPlayer):
		return KindNotFound
	case errors.Is(err, ErrNotHost), errors.Is(err, ErrNotEligible),
		errors.Is(err, ErrPlayerEliminated):
		return KindAuthorization
	case errors.Is(err, ErrRoomNotJoinable), errors.Is(err, ErrGameNotInProgress),
		errors.Is(err, ErrGameAlreadyStarted),
		errors.Is(err, ErrAlreadySolved), errors.Is(err, ErrVoteAlreadyActive),
		errors.Is(err, ErrNoActiveVote), errors.Is(err, ErrDuplicateVote):
		return KindConflict
	case errors.Is(err, ErrNameTaken), errors.Is(err, ErrEmptyName),
		errors.Is(err, ErrWrongMode), errors.Is(err, ErrInvalidTarget),
		errors.Is(err, ErrInvalidImpostorCount), errors.Is(err, ErrNoEligibleVoters),
		errors.Is(err, ErrInsufficientPlayers):
		return KindValidation
	case errors.Is(err, ErrInsufficientContent):
		return KindContentExhaustion
	}
	return KindUnknown
}
