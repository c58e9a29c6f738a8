// Package publishers provides database operations for publisher management.
package publishers

import (
	"strings"

	"gorm.io/gorm"

	"bookshelf/internal/database"
	"bookshelf/internal/entities"
)

// Repository handles all publisher database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new publishers repository. db may be a base
// connection or an open transaction.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindOrCreate resolves a publisher id by case-insensitive, trimmed
// (name, city) match, inserting a new row when no match exists. First match
// wins when duplicates exist.
func (r *Repository) FindOrCreate(name, city string) (uint, error) {
	n := strings.TrimSpace(name)
	c := strings.TrimSpace(city)

	id, found, err := database.Scalar[int64](r.db, `
		SELECT id FROM publishers
		WHERE UPPER(TRIM(name)) = UPPER(@name)
		  AND UPPER(TRIM(COALESCE(city, ''))) = UPPER(@city)
		LIMIT 1`,
		database.Param("name", n), database.Param("city", c))
	if err != nil {
		return 0, err
	}
	if found {
		return uint(id), nil
	}

	publisher := &entities.Publisher{Name: n, City: c}
	if err := r.db.Create(publisher).Error; err != nil {
		return 0, err
	}
	return publisher.ID, nil
}

// Update rewrites a publisher's fields in place, keeping its identity and
// every book that references it.
func (r *Repository) Update(id uint, name, city string) error {
	_, err := database.NonQuery(r.db,
		"UPDATE publishers SET name = @name, city = @city WHERE id = @id",
		database.Param("name", strings.TrimSpace(name)),
		database.Param("city", strings.TrimSpace(city)),
		database.Param("id", id))
	return err
}

// Get retrieves a publisher by id.
func (r *Repository) Get(id uint) (*entities.Publisher, error) {
	var publisher entities.Publisher
	if err := r.db.First(&publisher, id).Error; err != nil {
		return nil, err
	}
	return &publisher, nil
}

// List retrieves all publishers ordered by name, city.
func (r *Repository) List() ([]entities.Publisher, error) {
	var publishers []entities.Publisher
	err := r.db.Order("name ASC, city ASC").Find(&publishers).Error
	return publishers, err
}

// DetachAndDelete clears the publisher link on every book that references
// the publisher, then deletes the publisher row. Books are kept.
func (r *Repository) DetachAndDelete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if _, err := database.NonQuery(tx,
			"UPDATE books SET publisher_id = NULL WHERE publisher_id = @id",
			database.Param("id", id)); err != nil {
			return err
		}
		_, err := database.NonQuery(tx,
			"DELETE FROM publishers WHERE id = @id", database.Param("id", id))
		return err
	})
}

// DeleteIfOrphan removes the publisher when no book references it. Returns
// whether a row was deleted.
func (r *Repository) DeleteIfOrphan(id uint) (bool, error) {
	count, _, err := database.Scalar[int64](r.db,
		"SELECT COUNT(*) FROM books WHERE publisher_id = @id",
		database.Param("id", id))
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}
	affected, err := database.NonQuery(r.db,
		"DELETE FROM publishers WHERE id = @id", database.Param("id", id))
	return affected > 0, err
}

// DeleteOrphans removes all publishers referenced by zero books.
func (r *Repository) DeleteOrphans() (int64, error) {
	return database.NonQuery(r.db, `
		DELETE FROM publishers
		WHERE NOT EXISTS (
			SELECT 1 FROM books WHERE books.publisher_id = publishers.id
		)`)
}
