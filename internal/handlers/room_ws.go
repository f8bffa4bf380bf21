// internal/handlers/room_ws.go
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/coder/websocket"

	"github.com/dfranco/incognito/internal/middleware"
	"github.com/dfranco/incognito/internal/models"
	"github.com/dfranco/incognito/internal/room"
)

const outChanSize = 32

// RoomWSHandler upgrades /rooms/ws/{code} to the event stream for one player.
// The stream is push-only: all game actions arrive over HTTP, and the socket
// exists so every member sees the room's events as they happen.
func RoomWSHandler(rs *RoomServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := strings.ToUpper(strings.TrimPrefix(r.URL.Path, "/rooms/ws/"))

		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			Subprotocols: []string{"room"},
		})
		if err != nil {
			rs.Logger.WithError(err).Warn("Failed to accept WebSocket connection")
			return
		}
		if conn.Subprotocol() != "room" {
			conn.Close(websocket.StatusCode(BadSubprotocolError), "client must speak the room subprotocol")
			return
		}

		playerID, err := playerFromRequest(r, code)
		if err != nil {
			conn.Close(websocket.StatusCode(InvalidAuthTokenError), "invalid or missing player token")
			return
		}
		rm, ok := rs.Rooms.GetRoom(code)
		if !ok {
			conn.Close(websocket.StatusCode(InvalidRoomCodeError), "room not found")
			return
		}
		if !rm.HasPlayer(playerID) {
			conn.Close(websocket.StatusCode(NotRoomMemberError), "player does not belong to this room")
			return
		}

		middleware.LogWebSocketConnect(rs.Logger, r.RemoteAddr, r.URL.Path)

		ctx, cancel := context.WithCancel(r.Context())
		sess := &wsSession{
			PlayerID: playerID,
			Cancel:   cancel,
			OutChan:  make(chan models.RoomEvent, outChanSize),
		}
		rs.hub.add(rm.ID, sess)

		go rs.writePump(ctx, conn, rm, sess)
		rs.readPump(ctx, conn, rm, sess, r)
	}
}

// writePump forwards the session's events to the socket and pings on an
// interval to keep intermediaries from dropping the idle connection.
func (rs *RoomServer) writePump(ctx context.Context, conn *websocket.Conn, rm *room.Room, sess *wsSession) {
	pingTicker := time.NewTicker(30 * time.Second)
	defer pingTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-sess.OutChan:
			if !ok {
				// Replaced by a newer connection of the same player.
				conn.Close(websocket.StatusNormalClosure, "session replaced")
				return
			}
			payload, err := json.Marshal(ev)
			if err != nil {
				rs.Logger.WithError(err).Errorf("Failed to marshal event %s for room %s", ev.Type, rm.Code)
				continue
			}
			writeCtx, cancelWrite := context.WithTimeout(ctx, 5*time.Second)
			err = conn.Write(writeCtx, websocket.MessageText, payload)
			cancelWrite()
			if err != nil {
				sess.Cancel()
				return
			}
		case <-pingTicker.C:
			pingCtx, cancelPing := context.WithTimeout(ctx, 5*time.Second)
			err := conn.Ping(pingCtx)
			cancelPing()
			if err != nil {
				sess.Cancel()
				return
			}
		}
	}
}

// readPump drains inbound frames until the client disconnects. Clients send
// nothing meaningful over the socket; the read loop exists to observe closure.
func (rs *RoomServer) readPump(ctx context.Context, conn *websocket.Conn, rm *room.Room, sess *wsSession, r *http.Request) {
	defer func() {
		sess.Cancel()
		rs.hub.remove(rm.ID, sess)
		conn.Close(websocket.StatusNormalClosure, "closing connection")
	}()

	for {
		_, _, err := conn.Read(ctx)
		if err != nil {
			middleware.LogWebSocketDisconnect(rs.Logger, r.RemoteAddr, r.URL.Path, err)
			return
		}
	}
}
