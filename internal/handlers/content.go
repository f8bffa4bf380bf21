// internal/handlers/content.go
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/dfranco/incognito/internal/database"
	"github.com/dfranco/incognito/internal/models"
)

// PacksHandler lists the Guess-Who pack names available to new rooms.
func PacksHandler(rs *RoomServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		packs, err := database.ListPacks(r.Context())
		if err != nil {
			rs.Logger.WithError(err).Error("Failed to list packs")
			http.Error(w, "failed to list packs", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(packs)
	}
}

// CategoryItemsHandler lists a pack's entries (GET ?pack=) or appends a new
// one (POST). Appends take effect for rooms on their next draw.
func CategoryItemsHandler(rs *RoomServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			pack := r.URL.Query().Get("pack")
			var (
				items []models.CategoryItem
				err   error
			)
			if pack == "" {
				items, err = database.ListAllCategoryItems(r.Context())
			} else {
				items, err = database.ListCategoryItems(r.Context(), pack)
			}
			if err != nil {
				rs.Logger.WithError(err).Error("Failed to list category items")
				http.Error(w, "failed to list category items", http.StatusInternalServerError)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(items)
		case http.MethodPost:
			var item models.CategoryItem
			if err := json.NewDecoder(r.Body).Decode(&item); err != nil || item.Name == "" {
				http.Error(w, "bad category item payload", http.StatusBadRequest)
				return
			}
			if err := database.InsertCategoryItem(r.Context(), &item); err != nil {
				rs.Logger.WithError(err).Error("Failed to insert category item")
				http.Error(w, "failed to insert category item", http.StatusInternalServerError)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(item)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

// ImpostorCategoriesHandler lists the distinct impostor word categories.
func ImpostorCategoriesHandler(rs *RoomServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		categories, err := database.ListImpostorCategories(r.Context())
		if err != nil {
			rs.Logger.WithError(err).Error("Failed to list impostor categories")
			http.Error(w, "failed to list impostor categories", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(categories)
	}
}

// ImpostorWordsHandler lists the word pool (GET ?category=) or appends a new
// word+hint pair (POST).
func ImpostorWordsHandler(rs *RoomServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			words, err := database.ListImpostorWords(r.Context(), r.URL.Query().Get("category"))
			if err != nil {
				rs.Logger.WithError(err).Error("Failed to list impostor words")
				http.Error(w, "failed to list impostor words", http.StatusInternalServerError)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(words)
		case http.MethodPost:
			var word models.ImpostorWord
			if err := json.NewDecoder(r.Body).Decode(&word); err != nil || word.Word == "" || word.Category == "" {
				http.Error(w, "bad impostor word payload", http.StatusBadRequest)
				return
			}
			if err := database.InsertImpostorWord(r.Context(), &word); err != nil {
				rs.Logger.WithError(err).Error("Failed to insert impostor word")
				http.Error(w, "failed to insert impostor word", http.StatusInternalServerError)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(word)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	}
}
