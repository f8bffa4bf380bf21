package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dfranco/incognito/internal/models"
)

// ContentStore exposes the Postgres-backed content packs through the
// room.ContentSource interface.
type ContentStore struct{}

func (ContentStore) CategoryItems(ctx context.Context, pack string) ([]models.CategoryItem, error) {
	return ListCategoryItems(ctx, pack)
}

func (ContentStore) ImpostorWords(ctx context.Context, category string) ([]models.ImpostorWord, error) {
	return ListImpostorWords(ctx, category)
}

// ListCategoryItems returns the entries of one pack, in insertion order.
func ListCategoryItems(ctx context.Context, pack string) ([]models.CategoryItem, error) {
	q := `SELECT id, name, pack FROM category_items WHERE pack=$1 ORDER BY created_at`
	rows, err := DB.Query(ctx, q, normalizePack(pack))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.CategoryItem
	for rows.Next() {
		var item models.CategoryItem
		if err := rows.Scan(&item.ID, &item.Name, &item.Pack); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// ListAllCategoryItems returns every entry across packs (admin listing).
func ListAllCategoryItems(ctx context.Context) ([]models.CategoryItem, error) {
	q := `SELECT id, name, pack FROM category_items ORDER BY pack, created_at`
	rows, err := DB.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.CategoryItem
	for rows.Next() {
		var item models.CategoryItem
		if err := rows.Scan(&item.ID, &item.Name, &item.Pack); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// ListPacks returns the distinct pack names currently present.
func ListPacks(ctx context.Context) ([]string, error) {
	q := `SELECT DISTINCT pack FROM category_items ORDER BY pack`
	rows, err := DB.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var packs []string
	for rows.Next() {
		var pack string
		if err := rows.Scan(&pack); err != nil {
			return nil, err
		}
		packs = append(packs, pack)
	}
	return packs, rows.Err()
}

// InsertCategoryItem appends a new entry to a pack. Appends are visible to
// all rooms drawing from that pack.
func InsertCategoryItem(ctx context.Context, item *models.CategoryItem) error {
	if item.ID == uuid.Nil {
		id, err := uuid.NewRandom()
		if err != nil {
			return fmt.Errorf("failed to generate item id: %w", err)
		}
		item.ID = id
	}
	item.Pack = normalizePack(item.Pack)

	q := `INSERT INTO category_items (id, name, pack) VALUES ($1, $2, $3)`
	err := pgx.BeginTxFunc(ctx, DB, pgx.TxOptions{}, func(tx pgx.Tx) error {
		_, execErr := tx.Exec(ctx, q, item.ID, item.Name, item.Pack)
		return execErr
	})
	if err != nil {
		return fmt.Errorf("failed to insert category item: %w", err)
	}
	return nil
}

// UpdateCategoryItem renames or re-packs an existing entry.
func UpdateCategoryItem(ctx context.Context, id uuid.UUID, name, pack string) error {
	q := `UPDATE category_items SET name=$1, pack=$2 WHERE id=$3`
	return pgx.BeginTxFunc(ctx, DB, pgx.TxOptions{}, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, q, name, normalizePack(pack), id)
		return err
	})
}

// DeleteCategoryItem removes an entry.
func DeleteCategoryItem(ctx context.Context, id uuid.UUID) error {
	q := `DELETE FROM category_items WHERE id=$1`
	return pgx.BeginTxFunc(ctx, DB, pgx.TxOptions{}, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, q, id)
		return err
	})
}

// ListImpostorWords returns the word pool for one category, or the full pool
// when category is empty or "RANDOM".
func ListImpostorWords(ctx context.Context, category string) ([]models.ImpostorWord, error) {
	q := `SELECT id, category, word, hint FROM impostor_words`
	args := []interface{}{}
	if category != "" && !strings.EqualFold(category, "RANDOM") {
		q += ` WHERE category=$1`
		args = append(args, category)
	}

	rows, err := DB.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var words []models.ImpostorWord
	for rows.Next() {
		var w models.ImpostorWord
		if err := rows.Scan(&w.ID, &w.Category, &w.Word, &w.Hint); err != nil {
			return nil, err
		}
		words = append(words, w)
	}
	return words, rows.Err()
}

// ListImpostorCategories returns the distinct impostor word categories.
func ListImpostorCategories(ctx context.Context) ([]string, error) {
	q := `SELECT DISTINCT category FROM impostor_words ORDER BY category`
	rows, err := DB.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// InsertImpostorWord appends a new word+hint pair.
func InsertImpostorWord(ctx context.Context, w *models.ImpostorWord) error {
	if w.ID == uuid.Nil {
		id, err := uuid.NewRandom()
		if err != nil {
			return fmt.Errorf("failed to generate word id: %w", err)
		}
		w.ID = id
	}

	q := `INSERT INTO impostor_words (id, category, word, hint) VALUES ($1, $2, $3, $4)`
	err := pgx.BeginTxFunc(ctx, DB, pgx.TxOptions{}, func(tx pgx.Tx) error {
		_, execErr := tx.Exec(ctx, q, w.ID, w.Category, w.Word, w.Hint)
		return execErr
	})
	if err != nil {
		return fmt.Errorf("failed to insert impostor word: %w", err)
	}
	return nil
}

// DeleteImpostorWord removes a word+hint pair.
func DeleteImpostorWord(ctx context.Context, id uuid.UUID) error {
	q := `DELETE FROM impostor_words WHERE id=$1`
	return pgx.BeginTxFunc(ctx, DB, pgx.TxOptions{}, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, q, id)
		return err
	})
}

func normalizePack(pack string) string {
	pack = strings.ToUpper(strings.TrimSpace(pack))
	if pack == "" {
		pack = "FOOTBALL"
	}
	return pack
}
