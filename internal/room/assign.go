package room

import (
	"context"
	"math/rand"
	"time"
)

// contentFetchTimeout bounds calls into the external content store during
// assignment and redraws.
const contentFetchTimeout = 5 * time.Second

// assignGuessWho draws one distinct pack entry per player using a uniformly
// random permutation. No two players in a room share an identity. Assumes the
// room lock is held.
func (r *Room) assignGuessWho() error {
	ctx, cancel := context.WithTimeout(context.Background(), contentFetchTimeout)
	defer cancel()

	items, err := r.Content.CategoryItems(ctx, r.Pack)
	if err != nil {
		return err
	}
	if len(items) < len(r.Players) {
		return ErrInsufficientContent
	}

	rand.Shuffle(len(items), func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})

	for i, p := range r.Players {
		p.AssignedCharacter = items[i].Name
		p.Guessed = false
		p.GuessOrder = 0
		p.PendingGuess = ""
	}
	return nil
}

// assignImpostor picks the secret word, selects the configured number of
// impostors uniformly at random, and freezes the visual turn order for the
// round. Assumes the room lock is held.
func (r *Room) assignImpostor() error {
	if r.ImpostorCount < 1 || r.ImpostorCount >= len(r.Players) {
		return ErrInvalidImpostorCount
	}

	ctx, cancel := context.WithTimeout(context.Background(), contentFetchTimeout)
	defer cancel()

	words, err := r.Content.ImpostorWords(ctx, r.ImpostorCategory)
	if err != nil {
		return err
	}
	if len(words) == 0 {
		return ErrInsufficientContent
	}
	selected := words[rand.Intn(len(words))]
	r.CurrentWord = selected.Word
	r.CurrentCategory = selected.Category

	// One permutation decides who the impostors are, a second freezes the
	// turn-circle order. They must be independent draws.
	impostorPerm := rand.Perm(len(r.Players))
	visualPerm := rand.Perm(len(r.Players))

	impostor := make(map[int]bool, r.ImpostorCount)
	for _, idx := range impostorPerm[:r.ImpostorCount] {
		impostor[idx] = true
	}

	for i, p := range r.Players {
		p.Impostor = impostor[i]
		p.Eliminated = false
		p.VisualOrder = visualPerm[i]
		p.PendingHint = ""
		p.PendingCategory = ""
		if p.Impostor && r.ImpostorHints {
			p.PendingHint = selected.Hint
			p.PendingCategory = selected.Category
		}
	}
	return nil
}
