// internal/handlers/qr.go
package handlers

import (
	"net/http"
	"os"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/dfranco/incognito/internal/room"
)

// RoomQRHandler renders a PNG QR code encoding the room's join URL, for
// pointing phones at a shared screen. JOIN_BASE_URL sets the public origin.
func RoomQRHandler(rs *RoomServer, rm *room.Room) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		base := os.Getenv("JOIN_BASE_URL")
		if base == "" {
			base = "http://localhost:8080"
		}
		joinURL := base + "/join?code=" + rm.Code

		png, err := qrcode.Encode(joinURL, qrcode.Medium, 256)
		if err != nil {
			rs.Logger.WithError(err).Errorf("Failed to render QR code for room %s", rm.Code)
			http.Error(w, "failed to render QR code", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Write(png)
	}
}
