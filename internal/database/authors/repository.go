// Package authors provides database operations for author management.
//
// # Usage
//
//	repo := authors.NewRepository(db)
//	id, err := repo.FindOrCreate("Herbert", "Frank")
//
// Methods participate in a larger transaction when the repository is
// constructed over the transaction handle.
package authors

import (
	"strings"

	"gorm.io/gorm"

	"bookshelf/internal/database"
	"bookshelf/internal/entities"
)

// Repository handles all author database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new authors repository. db may be a base
// connection or an open transaction.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindOrCreate resolves an author id by case-insensitive, whitespace-trimmed
// (surname, given name) match, inserting a new row when no match exists.
// If several rows match, the first one wins; uniqueness is a convention of
// the data, not a schema constraint.
func (r *Repository) FindOrCreate(surname, givenName string) (uint, error) {
	sr := strings.TrimSpace(surname)
	gn := strings.TrimSpace(givenName)

	id, found, err := database.Scalar[int64](r.db, `
		SELECT id FROM authors
		WHERE UPPER(TRIM(surname)) = UPPER(@surname)
		  AND UPPER(TRIM(given_name)) = UPPER(@given)
		LIMIT 1`,
		database.Param("surname", sr), database.Param("given", gn))
	if err != nil {
		return 0, err
	}
	if found {
		return uint(id), nil
	}

	author := &entities.Author{Surname: sr, GivenName: gn}
	if err := r.db.Create(author).Error; err != nil {
		return 0, err
	}
	return author.ID, nil
}

// Update rewrites an author's name fields in place, keeping its identity and
// every book that references it.
func (r *Repository) Update(id uint, surname, givenName string) error {
	_, err := database.NonQuery(r.db,
		"UPDATE authors SET surname = @surname, given_name = @given WHERE id = @id",
		database.Param("surname", strings.TrimSpace(surname)),
		database.Param("given", strings.TrimSpace(givenName)),
		database.Param("id", id))
	return err
}

// Get retrieves an author by id.
func (r *Repository) Get(id uint) (*entities.Author, error) {
	var author entities.Author
	if err := r.db.First(&author, id).Error; err != nil {
		return nil, err
	}
	return &author, nil
}

// List retrieves all authors ordered by surname, given name.
func (r *Repository) List() ([]entities.Author, error) {
	var authors []entities.Author
	err := r.db.Order("surname ASC, given_name ASC").Find(&authors).Error
	return authors, err
}

// Delete removes an author row unconditionally.
func (r *Repository) Delete(id uint) error {
	return r.db.Delete(&entities.Author{}, id).Error
}

// DeleteIfOrphan removes the author when no book references it. Returns
// whether a row was deleted.
func (r *Repository) DeleteIfOrphan(id uint) (bool, error) {
	count, _, err := database.Scalar[int64](r.db,
		"SELECT COUNT(*) FROM books WHERE author_id = @id",
		database.Param("id", id))
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}
	affected, err := database.NonQuery(r.db,
		"DELETE FROM authors WHERE id = @id", database.Param("id", id))
	return affected > 0, err
}

// DeleteOrphans removes all authors referenced by zero books.
func (r *Repository) DeleteOrphans() (int64, error) {
	return database.NonQuery(r.db, `
		DELETE FROM authors
		WHERE NOT EXISTS (
			SELECT 1 FROM books WHERE books.author_id = authors.id
		)`)
}
