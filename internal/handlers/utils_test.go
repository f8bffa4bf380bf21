// internal/handlers/utils_test.go
package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dfranco/incognito/internal/auth"
	"github.com/dfranco/incognito/internal/room"
)

func TestExtractCookieToken(t *testing.T) {
	header := "other=abc; player_token=tok123; trailing=xyz"
	assert.Equal(t, "tok123", extractCookieToken(header, playerCookieName))
	assert.Equal(t, "", extractCookieToken("other=abc", playerCookieName))
	assert.Equal(t, "tok123", extractCookieToken("player_token=tok123", playerCookieName))
}

func TestPlayerCookieRoundTrip(t *testing.T) {
	auth.Init()
	playerID := uuid.New()

	rec := httptest.NewRecorder()
	require.NoError(t, setPlayerCookie(rec, playerID, "AB12"))

	req := httptest.NewRequest(http.MethodGet, "/rooms/AB12", nil)
	req.Header.Set("Cookie", rec.Header().Get("Set-Cookie"))

	got, err := playerFromRequest(req, "AB12")
	require.NoError(t, err)
	assert.Equal(t, playerID, got)

	// The token is bound to its room.
	_, err = playerFromRequest(req, "CD34")
	assert.ErrorIs(t, err, errWrongRoomToken)
}

func TestPlayerFromRequestWithoutCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/rooms/AB12", nil)
	_, err := playerFromRequest(req, "AB12")
	assert.ErrorIs(t, err, errMissingToken)
}

func TestWriteRoomErrorStatusMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{room.ErrRoomNotFound, http.StatusNotFound},
		{room.ErrEmptyName, http.StatusBadRequest},
		{room.ErrNotHost, http.StatusForbidden},
		{room.ErrVoteAlreadyActive, http.StatusConflict},
		{room.ErrNameTaken, http.StatusBadRequest},
		{room.ErrInsufficientContent, http.StatusUnprocessableEntity},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		writeRoomError(rec, tc.err)
		assert.Equal(t, tc.status, rec.Code, "wrong status for %v", tc.err)
	}
}
