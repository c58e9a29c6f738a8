// Package genres provides database operations for genre management and the
// book-genre link table.
package genres

import (
	"strings"

	"gorm.io/gorm"

	"bookshelf/internal/database"
	"bookshelf/internal/entities"
)

// Repository handles all genre database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new genres repository. db may be a base connection
// or an open transaction.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindOrCreate resolves a genre id by case-insensitive, trimmed name match,
// inserting a new row when no match exists.
func (r *Repository) FindOrCreate(name string) (uint, error) {
	n := strings.TrimSpace(name)

	id, found, err := database.Scalar[int64](r.db, `
		SELECT id FROM genres
		WHERE UPPER(TRIM(name)) = UPPER(@name)
		LIMIT 1`,
		database.Param("name", n))
	if err != nil {
		return 0, err
	}
	if found {
		return uint(id), nil
	}

	genre := &entities.Genre{Name: n}
	if err := r.db.Create(genre).Error; err != nil {
		return 0, err
	}
	return genre.ID, nil
}

// ReplaceForBook rewrites a book's genre links from scratch: all existing
// links are dropped, then one link is inserted per distinct
// (case-insensitive, trimmed) non-blank name, resolving each genre via
// FindOrCreate. There is no incremental diffing.
func (r *Repository) ReplaceForBook(bookID uint, names []string) error {
	if _, err := database.NonQuery(r.db,
		"DELETE FROM book_genres WHERE book_id = @id",
		database.Param("id", bookID)); err != nil {
		return err
	}

	seen := make(map[string]struct{})
	for _, raw := range names {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		genreID, err := r.FindOrCreate(name)
		if err != nil {
			return err
		}
		if _, err := database.NonQuery(r.db,
			"INSERT INTO book_genres (book_id, genre_id) VALUES (@bid, @gid)",
			database.Param("bid", bookID), database.Param("gid", genreID)); err != nil {
			return err
		}
	}
	return nil
}

// ListForBook retrieves a book's genres ordered by name.
func (r *Repository) ListForBook(bookID uint) ([]entities.Genre, error) {
	var genres []entities.Genre
	err := r.db.Raw(`
		SELECT g.* FROM genres g
		JOIN book_genres bg ON bg.genre_id = g.id
		WHERE bg.book_id = @id
		ORDER BY g.name ASC`,
		database.Param("id", bookID)).Scan(&genres).Error
	return genres, err
}

// List retrieves all genres ordered by name.
func (r *Repository) List() ([]entities.Genre, error) {
	var genres []entities.Genre
	err := r.db.Order("name ASC").Find(&genres).Error
	return genres, err
}

// DeleteOrphans removes all genres with zero link rows.
func (r *Repository) DeleteOrphans() (int64, error) {
	return database.NonQuery(r.db, `
		DELETE FROM genres
		WHERE NOT EXISTS (
			SELECT 1 FROM book_genres WHERE book_genres.genre_id = genres.id
		)`)
}
