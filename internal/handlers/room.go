// internal/handlers/room.go
package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/dfranco/incognito/internal/room"
)

var validModes = map[room.GameMode]bool{
	room.ModeGuessWho: true,
	room.ModeImpostor: true,
}

type createRoomRequest struct {
	PlayerName       string `json:"playerName"`
	Mode             string `json:"mode"`
	Pack             string `json:"pack"`
	ImpostorCount    int    `json:"impostorCount"`
	ImpostorHints    bool   `json:"impostorHints"`
	ImpostorCategory string `json:"impostorCategory"`
}

type joinRoomRequest struct {
	Code       string `json:"code"`
	PlayerName string `json:"playerName"`
}

type roomCreatedResponse struct {
	Code     string `json:"code"`
	PlayerID string `json:"playerId"`
	Host     bool   `json:"host"`
}

// CreateRoomHandler allocates a room, joins the creator as host, and issues
// their session cookie.
func CreateRoomHandler(rs *RoomServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req createRoomRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad create request payload", http.StatusBadRequest)
			return
		}

		mode := room.GameMode(strings.ToUpper(req.Mode))
		if mode == "" {
			mode = room.ModeGuessWho
		}
		if !validModes[mode] {
			http.Error(w, "invalid game mode", http.StatusBadRequest)
			return
		}

		cfg := room.Config{
			Mode:             mode,
			Pack:             strings.ToUpper(req.Pack),
			ImpostorCount:    req.ImpostorCount,
			ImpostorHints:    req.ImpostorHints,
			ImpostorCategory: req.ImpostorCategory,
			VoteTimeout:      voteTimeout,
		}
		if cfg.Mode == room.ModeGuessWho && cfg.Pack == "" {
			cfg.Pack = "FOOTBALL"
		}

		newRoom := rs.CreateRoom(cfg)
		host, err := newRoom.Join(req.PlayerName)
		if err != nil {
			rs.Rooms.DeleteRoom(newRoom.Code)
			writeRoomError(w, err)
			return
		}
		if err := setPlayerCookie(w, host.ID, newRoom.Code); err != nil {
			rs.Rooms.DeleteRoom(newRoom.Code)
			http.Error(w, "failed to issue session token", http.StatusInternalServerError)
			return
		}

		rs.Logger.Infof("Room %s created by %s (mode %s)", newRoom.Code, host.Name, cfg.Mode)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(roomCreatedResponse{
			Code:     newRoom.Code,
			PlayerID: host.ID.String(),
			Host:     true,
		})
	}
}

// JoinRoomHandler adds a player to a WAITING room and issues their session
// cookie.
func JoinRoomHandler(rs *RoomServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req joinRoomRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad join request payload", http.StatusBadRequest)
			return
		}

		code := strings.ToUpper(strings.TrimSpace(req.Code))
		rm, ok := rs.Rooms.GetRoom(code)
		if !ok {
			writeRoomError(w, room.ErrRoomNotFound)
			return
		}
		p, err := rm.Join(req.PlayerName)
		if err != nil {
			writeRoomError(w, err)
			return
		}
		if err := setPlayerCookie(w, p.ID, rm.Code); err != nil {
			http.Error(w, "failed to issue session token", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(roomCreatedResponse{
			Code:     rm.Code,
			PlayerID: p.ID.String(),
			Host:     p.Host,
		})
	}
}

// RoomRouter dispatches /rooms/{code} and /rooms/{code}/{action} requests.
func RoomRouter(rs *RoomServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		parts := strings.Split(strings.TrimPrefix(r.URL.Path, "/rooms/"), "/")
		if len(parts) < 1 || parts[0] == "" {
			http.Error(w, "missing room code", http.StatusBadRequest)
			return
		}
		code := strings.ToUpper(parts[0])
		rm, ok := rs.Rooms.GetRoom(code)
		if !ok {
			writeRoomError(w, room.ErrRoomNotFound)
			return
		}

		if len(parts) == 1 {
			if r.Method != http.MethodGet {
				http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
				return
			}
			RoomDetailHandler(rs, rm)(w, r)
			return
		}

		switch parts[1] {
		case "players":
			RoomPlayersHandler(rs, rm)(w, r)
		case "qr":
			RoomQRHandler(rs, rm)(w, r)
		default:
			GameActionHandler(rs, rm, parts[1])(w, r)
		}
	}
}

// RoomDetailHandler returns the viewer-authorized room snapshot. An
// unauthenticated caller gets the fully masked view.
func RoomDetailHandler(rs *RoomServer, rm *room.Room) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewerID, _ := playerFromRequest(r, rm.Code)
		snap := rm.SnapshotFor(viewerID)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(snap)
	}
}

// RoomPlayersHandler returns the viewer-authorized player list.
func RoomPlayersHandler(rs *RoomServer, rm *room.Room) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		viewerID, _ := playerFromRequest(r, rm.Code)
		players := rm.PlayersFor(viewerID)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(players)
	}
}
