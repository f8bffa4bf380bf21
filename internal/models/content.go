package models

import "github.com/google/uuid"

// CategoryItem is a single guessable entry belonging to a named pack
// (e.g. "FOOTBALL", "MOVIES").
type CategoryItem struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Pack string    `json:"pack"`
}

// ImpostorWord is a secret word plus its consolation hint, grouped by category.
type ImpostorWord struct {
	ID       uuid.UUID `json:"id"`
	Category string    `json:"category"`
	Word     string    `json:"word"`
	Hint     string    `json:"hint"`
}
