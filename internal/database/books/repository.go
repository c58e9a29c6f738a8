// Package books provides database operations for book rows, their 1:1
// detail records and the joined listing views.
//
// Multi-table workflows (save, cascade delete) are orchestrated by
// internal/catalog; this package supplies the per-statement pieces and is
// normally constructed over the workflow's transaction handle.
package books

import (
	"database/sql"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"bookshelf/internal/database"
	"bookshelf/internal/entities"
)

// Row is one line of the catalog listing: book scalars plus display strings
// for the joined author and publisher.
type Row struct {
	ID        uint   `json:"id"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	Publisher string `json:"publisher"`
	Year      *int   `json:"year,omitempty"`
	PageCount *int   `json:"page_count,omitempty"`
}

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository. db may be a base connection
// or an open transaction.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Insert creates a new book row and returns its generated id.
func (r *Repository) Insert(title string, year, pageCount *int, authorID uint, publisherID *uint) (uint, error) {
	book := &entities.Book{
		Title:       title,
		Year:        year,
		PageCount:   pageCount,
		AuthorID:    authorID,
		PublisherID: publisherID,
	}
	if err := r.db.Omit(clause.Associations).Create(book).Error; err != nil {
		return 0, err
	}
	return book.ID, nil
}

// UpdateScalars rewrites a book's own fields, leaving its author and
// publisher links untouched. Nil year/page count are stored as NULL.
func (r *Repository) UpdateScalars(id uint, title string, year, pageCount *int) error {
	_, err := database.NonQuery(r.db, `
		UPDATE books SET title = @title, year = @year, page_count = @pages
		WHERE id = @id`,
		database.Param("title", title),
		database.Param("year", year),
		database.Param("pages", pageCount),
		database.Param("id", id))
	return err
}

// AuthorID returns the book's author link. found is false when the book
// does not exist.
func (r *Repository) AuthorID(bookID uint) (uint, bool, error) {
	id, found, err := database.Scalar[int64](r.db,
		"SELECT author_id FROM books WHERE id = @id", database.Param("id", bookID))
	return uint(id), found, err
}

// PublisherID returns the book's publisher link. found is false when the
// book does not exist or has no publisher.
func (r *Repository) PublisherID(bookID uint) (uint, bool, error) {
	id, found, err := database.Scalar[int64](r.db,
		"SELECT publisher_id FROM books WHERE id = @id", database.Param("id", bookID))
	return uint(id), found, err
}

// SetPublisher links the book to a publisher.
func (r *Repository) SetPublisher(bookID, publisherID uint) error {
	_, err := database.NonQuery(r.db,
		"UPDATE books SET publisher_id = @pid WHERE id = @id",
		database.Param("pid", publisherID), database.Param("id", bookID))
	return err
}

// ClearPublisher detaches the book from its publisher without touching the
// publisher row.
func (r *Repository) ClearPublisher(bookID uint) error {
	_, err := database.NonQuery(r.db,
		"UPDATE books SET publisher_id = NULL WHERE id = @id",
		database.Param("id", bookID))
	return err
}

// UpsertDetail writes the book's detail row: an update first, an insert when
// no row was affected. Exactly one detail row exists per book id.
func (r *Repository) UpsertDetail(bookID uint, description, coverPath string) error {
	affected, err := database.NonQuery(r.db, `
		UPDATE book_details SET description = @descr, cover_path = @cover
		WHERE book_id = @id`,
		database.Param("descr", description),
		database.Param("cover", coverPath),
		database.Param("id", bookID))
	if err != nil {
		return err
	}
	if affected == 0 {
		_, err = database.NonQuery(r.db, `
			INSERT INTO book_details (book_id, description, cover_path)
			VALUES (@id, @descr, @cover)`,
			database.Param("id", bookID),
			database.Param("descr", description),
			database.Param("cover", coverPath))
	}
	return err
}

// DetailCoverPath returns the relative cover path from the book's detail
// row. found is false when there is no detail row or the path is empty.
func (r *Repository) DetailCoverPath(bookID uint) (string, bool, error) {
	path, found, err := database.Scalar[string](r.db,
		"SELECT cover_path FROM book_details WHERE book_id = @id",
		database.Param("id", bookID))
	if err != nil || !found {
		return "", false, err
	}
	return path, path != "", nil
}

// CoverPaths returns every non-empty cover path recorded in the catalog.
func (r *Repository) CoverPaths() ([]string, error) {
	rows, err := database.Rows(r.db,
		"SELECT cover_path FROM book_details WHERE cover_path IS NOT NULL AND cover_path <> ''")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}
	return paths, rows.Err()
}

// IDsByAuthor returns the ids of all books linked to an author.
func (r *Repository) IDsByAuthor(authorID uint) ([]uint, error) {
	rows, err := database.Rows(r.db,
		"SELECT id FROM books WHERE author_id = @aid ORDER BY id",
		database.Param("aid", authorID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uint
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, uint(id))
	}
	return ids, rows.Err()
}

// DeleteGenreLinks removes all of the book's genre link rows.
func (r *Repository) DeleteGenreLinks(bookID uint) error {
	_, err := database.NonQuery(r.db,
		"DELETE FROM book_genres WHERE book_id = @id", database.Param("id", bookID))
	return err
}

// DeleteDetail removes the book's detail row.
func (r *Repository) DeleteDetail(bookID uint) error {
	_, err := database.NonQuery(r.db,
		"DELETE FROM book_details WHERE book_id = @id", database.Param("id", bookID))
	return err
}

// Delete removes the book row itself.
func (r *Repository) Delete(bookID uint) error {
	_, err := database.NonQuery(r.db,
		"DELETE FROM books WHERE id = @id", database.Param("id", bookID))
	return err
}

// Get retrieves a book with its author, publisher, detail and genres.
// Returns gorm.ErrRecordNotFound when the book does not exist.
func (r *Repository) Get(id uint) (*entities.Book, error) {
	var book entities.Book
	err := r.db.
		Preload("Author").
		Preload("Publisher").
		Preload("Detail").
		Preload("Genres", func(db *gorm.DB) *gorm.DB {
			return db.Order("genres.name ASC")
		}).
		First(&book, id).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// List returns the catalog grid: all books with author (surname first) and
// publisher display strings, ordered by id.
func (r *Repository) List() ([]Row, error) {
	rows, err := database.Rows(r.db, `
		SELECT
		  b.id,
		  b.title,
		  TRIM(COALESCE(a.surname, '') || ' ' || COALESCE(a.given_name, '')) AS author,
		  COALESCE(p.name, '') AS publisher,
		  b.year,
		  b.page_count
		FROM books b
		LEFT JOIN authors a ON b.author_id = a.id
		LEFT JOIN publishers p ON b.publisher_id = p.id
		ORDER BY b.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var (
			row   Row
			year  sql.NullInt64
			pages sql.NullInt64
		)
		if err := rows.Scan(&row.ID, &row.Title, &row.Author, &row.Publisher, &year, &pages); err != nil {
			return nil, err
		}
		if year.Valid {
			y := int(year.Int64)
			row.Year = &y
		}
		if pages.Valid {
			p := int(pages.Int64)
			row.PageCount = &p
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
