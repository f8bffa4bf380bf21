// internal/handlers/game.go
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/dfranco/incognito/internal/room"
)

type guessRequest struct {
	Candidate string `json:"candidate"`
}

type ballotRequest struct {
	Approve bool `json:"approve"`
}

type targetRequest struct {
	TargetID string `json:"targetId"`
}

type notesRequest struct {
	Notes    string `json:"notes"`
	RuledOut string `json:"ruledOut"`
}

// GameActionHandler dispatches the in-game operations of a room. Every action
// is a POST authenticated by the caller's player token; the room core enforces
// the game rules and fans results out over the event hub.
func GameActionHandler(rs *RoomServer, rm *room.Room, action string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		playerID, err := playerFromRequest(r, rm.Code)
		if err != nil {
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}

		switch action {
		case "start":
			err = rm.Start(playerID)
		case "reset":
			err = rm.Reset(playerID)
		case "guess":
			var req guessRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				http.Error(w, "bad guess payload", http.StatusBadRequest)
				return
			}
			err = rm.SubmitGuess(playerID, req.Candidate)
		case "validate":
			var req ballotRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				http.Error(w, "bad ballot payload", http.StatusBadRequest)
				return
			}
			err = rm.CastGuessVote(playerID, req.Approve)
		case "request-change":
			targetID, perr := parseTarget(r)
			if perr != nil {
				http.Error(w, perr.Error(), http.StatusBadRequest)
				return
			}
			err = rm.RequestChange(playerID, targetID)
		case "change-vote":
			var req ballotRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				http.Error(w, "bad ballot payload", http.StatusBadRequest)
				return
			}
			err = rm.CastChangeVote(playerID, req.Approve)
		case "accuse":
			targetID, perr := parseTarget(r)
			if perr != nil {
				http.Error(w, perr.Error(), http.StatusBadRequest)
				return
			}
			err = rm.Accuse(playerID, targetID)
		case "accuse-vote":
			var req ballotRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				http.Error(w, "bad ballot payload", http.StatusBadRequest)
				return
			}
			err = rm.CastAccuseVote(playerID, req.Approve)
		case "notes":
			var req notesRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				http.Error(w, "bad notes payload", http.StatusBadRequest)
				return
			}
			err = rm.UpdateNotes(playerID, req.Notes, req.RuledOut)
		default:
			http.Error(w, "unknown room action", http.StatusNotFound)
			return
		}

		if err != nil {
			rs.Logger.WithError(err).Debugf("Room %s: action %s rejected", rm.Code, action)
			writeRoomError(w, err)
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}

func parseTarget(r *http.Request) (uuid.UUID, error) {
	var req targetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return uuid.Nil, err
	}
	return uuid.Parse(req.TargetID)
}
