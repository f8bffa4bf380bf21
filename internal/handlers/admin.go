// internal/handlers/admin.go
package handlers

import (
	"encoding/json"
	"net/http"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/dfranco/incognito/internal/auth"
	"github.com/dfranco/incognito/internal/database"
)

const adminCookieName = "admin_token"

type adminLoginRequest struct {
	Password string `json:"password"`
}

type adminRoomSummary struct {
	Code    string `json:"code"`
	Mode    string `json:"mode"`
	Phase   string `json:"phase"`
	Players int    `json:"players"`
}

// AdminLoginHandler checks the submitted password against the configured
// argon2 hash (ADMIN_PASSWORD_HASH) and issues the admin cookie.
func AdminLoginHandler(rs *RoomServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		hash := os.Getenv("ADMIN_PASSWORD_HASH")
		if hash == "" {
			http.Error(w, "admin surface is not configured", http.StatusServiceUnavailable)
			return
		}

		var req adminLoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad login payload", http.StatusBadRequest)
			return
		}
		match, err := auth.ComparePasswordAndHash(req.Password, hash)
		if err != nil || !match {
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
			return
		}

		token, err := auth.CreateAdminToken()
		if err != nil {
			rs.Logger.WithError(err).Error("Failed to create admin token")
			http.Error(w, "failed to issue admin token", http.StatusInternalServerError)
			return
		}
		http.SetCookie(w, &http.Cookie{
			Name:     adminCookieName,
			Value:    token,
			HttpOnly: true,
			Path:     "/",
			MaxAge:   auth.TOKEN_EXPIRE_TIME_SEC,
		})
		w.WriteHeader(http.StatusOK)
	}
}

// requireAdmin verifies the admin cookie; writes the error response itself and
// reports whether the caller may proceed.
func requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	cookieHeader := r.Header.Get("Cookie")
	if !strings.Contains(cookieHeader, adminCookieName+"=") {
		http.Error(w, "missing admin token", http.StatusUnauthorized)
		return false
	}
	token := extractCookieToken(cookieHeader, adminCookieName)
	if err := auth.AuthenticateAdminToken(token); err != nil {
		http.Error(w, "invalid admin token", http.StatusUnauthorized)
		return false
	}
	return true
}

// AdminRoomsHandler lists the live rooms (GET) or force-deletes one
// (DELETE /admin/rooms/{code}).
func AdminRoomsHandler(rs *RoomServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireAdmin(w, r) {
			return
		}
		switch r.Method {
		case http.MethodGet:
			rooms := rs.Rooms.Rooms()
			out := make([]adminRoomSummary, 0, len(rooms))
			for _, rm := range rooms {
				rm.Mu.Lock()
				out = append(out, adminRoomSummary{
					Code:    rm.Code,
					Mode:    string(rm.Mode),
					Phase:   string(rm.Phase),
					Players: len(rm.Players),
				})
				rm.Mu.Unlock()
			}
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(out)
		case http.MethodDelete:
			code := strings.ToUpper(strings.TrimPrefix(r.URL.Path, "/admin/rooms/"))
			if code == "" || strings.Contains(code, "/") {
				http.Error(w, "missing room code", http.StatusBadRequest)
				return
			}
			rs.Rooms.DeleteRoom(code)
			rs.Logger.Infof("Admin deleted room %s", code)
			w.WriteHeader(http.StatusNoContent)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

// AdminCategoryItemHandler updates (PUT) or deletes (DELETE) one pack entry at
// /admin/categories/{id}.
func AdminCategoryItemHandler(rs *RoomServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireAdmin(w, r) {
			return
		}
		id, err := uuid.Parse(strings.TrimPrefix(r.URL.Path, "/admin/categories/"))
		if err != nil {
			http.Error(w, "bad item id", http.StatusBadRequest)
			return
		}
		switch r.Method {
		case http.MethodPut:
			var req struct {
				Name string `json:"name"`
				Pack string `json:"pack"`
			}
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
				http.Error(w, "bad category item payload", http.StatusBadRequest)
				return
			}
			if err := database.UpdateCategoryItem(r.Context(), id, req.Name, req.Pack); err != nil {
				rs.Logger.WithError(err).Error("Failed to update category item")
				http.Error(w, "failed to update category item", http.StatusInternalServerError)
				return
			}
			w.WriteHeader(http.StatusOK)
		case http.MethodDelete:
			if err := database.DeleteCategoryItem(r.Context(), id); err != nil {
				rs.Logger.WithError(err).Error("Failed to delete category item")
				http.Error(w, "failed to delete category item", http.StatusInternalServerError)
				return
			}
			w.WriteHeader(http.StatusNoContent)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

// AdminImpostorWordHandler deletes one word+hint pair at
// /admin/impostor-words/{id}.
func AdminImpostorWordHandler(rs *RoomServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireAdmin(w, r) {
			return
		}
		if r.Method != http.MethodDelete {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		id, err := uuid.Parse(strings.TrimPrefix(r.URL.Path, "/admin/impostor-words/"))
		if err != nil {
			http.Error(w, "bad word id", http.StatusBadRequest)
			return
		}
		if err := database.DeleteImpostorWord(r.Context(), id); err != nil {
			rs.Logger.WithError(err).Error("Failed to delete impostor word")
			http.Error(w, "failed to delete impostor word", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
