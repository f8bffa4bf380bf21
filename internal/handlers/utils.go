package handlers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/dfranco/incognito/internal/auth"
	"github.com/dfranco/incognito/internal/room"
)

const playerCookieName = "player_token"

// extractCookieToken extracts a named cookie value from "Cookie" header, or returns empty if not found.
func extractCookieToken(cookieHeader, cookieName string) string {
	parts := strings.Split(cookieHeader, cookieName+"=")
	if len(parts) < 2 {
		return ""
	}
	token := parts[1]
	if idx := strings.Index(token, ";"); idx != -1 {
		token = token[:idx]
	}
	return token
}

// playerFromRequest authenticates the caller's player token and checks it was
// issued for the given room code. Returns the player id.
func playerFromRequest(r *http.Request, code string) (uuid.UUID, error) {
	cookieHeader := r.Header.Get("Cookie")
	if !strings.Contains(cookieHeader, playerCookieName+"=") {
		return uuid.Nil, errMissingToken
	}
	token := extractCookieToken(cookieHeader, playerCookieName)

	playerIDStr, roomCode, err := auth.AuthenticatePlayerToken(token)
	if err != nil {
		return uuid.Nil, errInvalidToken
	}
	if !strings.EqualFold(roomCode, code) {
		return uuid.Nil, errWrongRoomToken
	}
	playerID, err := uuid.Parse(playerIDStr)
	if err != nil {
		return uuid.Nil, errInvalidToken
	}
	return playerID, nil
}

// setPlayerCookie issues the HttpOnly session cookie binding a player to a room.
func setPlayerCookie(w http.ResponseWriter, playerID uuid.UUID, code string) error {
	token, err := auth.CreatePlayerToken(playerID.String(), code)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     playerCookieName,
		Value:    token,
		HttpOnly: true,
		Path:     "/",
		MaxAge:   auth.TOKEN_EXPIRE_TIME_SEC,
	})
	return nil
}

// writeRoomError maps a room error onto an HTTP status. Errors are local to
// the triggering request; nothing is broadcast.
func writeRoomError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch room.Classify(err) {
	case room.KindNotFound:
		status = http.StatusNotFound
	case room.KindValidation:
		status = http.StatusBadRequest
	case room.KindAuthorization:
		status = http.StatusForbidden
	case room.KindConflict:
		status = http.StatusConflict
	case room.KindContentExhaustion:
		status = http.StatusUnprocessableEntity
	}
	http.Error(w, err.Error(), status)
}
