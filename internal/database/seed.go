package database

import (
	"context"
	"log"

	"github.com/dfranco/incognito/internal/models"
)

// SeedContent populates the content tables on first run so a fresh install
// can host games immediately. Existing rows are left untouched.
func SeedContent(ctx context.Context) error {
	var itemCount int
	if err := DB.QueryRow(ctx, `SELECT COUNT(*) FROM category_items`).Scan(&itemCount); err != nil {
		return err
	}
	if itemCount == 0 {
		for _, item := range defaultCategoryItems() {
			item := item
			if err := InsertCategoryItem(ctx, &item); err != nil {
				return err
			}
		}
		log.Printf("Seeded %d category items", len(defaultCategoryItems()))
	}

	var wordCount int
	if err := DB.QueryRow(ctx, `SELECT COUNT(*) FROM impostor_words`).Scan(&wordCount); err != nil {
		return err
	}
	if wordCount == 0 {
		for _, w := range defaultImpostorWords() {
			w := w
			if err := InsertImpostorWord(ctx, &w); err != nil {
				return err
			}
		}
		log.Printf("Seeded %d impostor words", len(defaultImpostorWords()))
	}
	return nil
}

func defaultCategoryItems() []models.CategoryItem {
	football := []string{
		"World Cup and Copa América winners",
		"Players with three Champions League titles at different clubs",
		"Top scorers in four of Europe's top leagues",
		"Goalkeepers with an official open-play goal",
		"Players who played for both Real Madrid and Barcelona",
		"African Ballon d'Or winners",
		"Players with 100+ international goals",
		"Champions as both player and manager",
		"Winners of both the Libertadores and the Champions League",
		"Number 10s for Brazil",
		"Transfers above 100 million euros",
		"Players never shown a red card",
	}
	movies := []string{
		"Best Director Oscar winners",
		"Marvel films with a billion-dollar box office",
		"Actors who played the Joker",
		"Classic slasher horror films",
		"Best Animated Feature Oscar winners",
		"Famous science-fiction trilogies",
		"Iconic Disney villains",
		"Mexican directors with an Oscar",
		"Films starring Tom Hanks",
	}

	var items []models.CategoryItem
	for _, name := range football {
		items = append(items, models.CategoryItem{Name: name, Pack: "FOOTBALL"})
	}
	for _, name := range movies {
		items = append(items, models.CategoryItem{Name: name, Pack: "MOVIES"})
	}
	return items
}

func defaultImpostorWords() []models.ImpostorWord {
	return []models.ImpostorWord{
		{Category: "Animals", Word: "Lion", Hint: "King of the jungle"},
		{Category: "Animals", Word: "Elephant", Hint: "Never forgets, has a trunk"},
		{Category: "Food", Word: "Pizza", Hint: "Round and Italian"},
		{Category: "Countries", Word: "Mexico", Hint: "Tacos, mariachis and spice"},
		{Category: "Sports", Word: "Football", Hint: "Eleven against eleven"},
		{Category: "Professions", Word: "Doctor", Hint: "Heals the sick"},
		{Category: "Transport", Word: "Airplane", Hint: "Travels through the air"},
	}
}
