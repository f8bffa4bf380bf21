package handlers

import "errors"

// Transport-level authentication errors, distinct from the room core's
// taxonomy: they concern the session cookie, not game state.
var (
	errMissingToken   = errors.New("missing player token")
	errInvalidToken   = errors.New("invalid player token")
	errWrongRoomToken = errors.New("player token was issued for a different room")
)
