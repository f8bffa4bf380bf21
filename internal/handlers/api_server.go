// internal/handlers/api_server.go
package handlers

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/dfranco/incognito/internal/cache"
	"github.com/dfranco/incognito/internal/models"
	"github.com/dfranco/incognito/internal/room"
)

// RoomServer bundles the room registry, the content source, and the WebSocket
// session hub that fans broadcast events out to connected clients.
type RoomServer struct {
	Rooms   *room.Store
	Content room.ContentSource
	Logger  *logrus.Logger

	hub *hub
}

func NewRoomServer(content room.ContentSource, logger *logrus.Logger) *RoomServer {
	return &RoomServer{
		Rooms:   room.NewStore(),
		Content: content,
		Logger:  logger,
		hub:     newHub(),
	}
}

// CreateRoom registers a new room and wires its broadcast functions into the
// hub and the event journal. This is the only place rooms are constructed.
func (rs *RoomServer) CreateRoom(cfg room.Config) *room.Room {
	r := rs.Rooms.CreateRoom(cfg, rs.Content)
	rs.attachBroadcast(r)
	return r
}

// attachBroadcast points the room core's broadcast functions at the hub. The
// core decides whom to exclude from an event; the hub only delivers. Every
// room-wide event is additionally journaled to Redis, fire-and-forget.
func (rs *RoomServer) attachBroadcast(r *room.Room) {
	roomID := r.ID
	code := r.Code

	r.BroadcastFn = func(ev models.RoomEvent) {
		rs.hub.broadcast(roomID, ev)
		go rs.journal(roomID, code, ev)
	}
	r.BroadcastToPlayerFn = func(playerID uuid.UUID, ev models.RoomEvent) {
		rs.hub.sendTo(roomID, playerID, ev)
	}
}

func (rs *RoomServer) journal(roomID uuid.UUID, code string, ev models.RoomEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	record := cache.RoomEventRecord{
		RoomID:    roomID,
		RoomCode:  code,
		Event:     ev,
		Timestamp: time.Now().Unix(),
	}
	if err := cache.PublishRoomEvent(ctx, record); err != nil {
		rs.Logger.Warnf("failed to journal event %s for room %s: %v", ev.Type, code, err)
	}
}
