// Package catalog implements the book persistence service: the transactional
// save and cascade-delete workflows for the book aggregate (book row, author,
// publisher, genre links, detail record and cover file), plus the orphan
// sweep that keeps unreferenced authors, publishers and genres out of the
// catalog.
package catalog

import (
	"fmt"
	"log"
	"strings"

	"gorm.io/gorm"

	"bookshelf/internal/covers"
	"bookshelf/internal/database"
	"bookshelf/internal/database/authors"
	"bookshelf/internal/database/books"
	"bookshelf/internal/database/genres"
	"bookshelf/internal/database/publishers"
)

// MaintenanceQueue enqueues deferred cleanup work. Enqueue failures are
// non-fatal: a missed sweep only postpones orphan removal to the next pass.
type MaintenanceQueue interface {
	EnqueueOrphanSweep() error
}

// BookDetails is the joined detail view of one book, with the author and
// publisher rendered as display strings.
type BookDetails struct {
	ID          uint     `json:"id"`
	Title       string   `json:"title"`
	Year        *int     `json:"year,omitempty"`
	PageCount   *int     `json:"page_count,omitempty"`
	Author      string   `json:"author"`
	Publisher   string   `json:"publisher"`
	Description string   `json:"description,omitempty"`
	CoverPath   string   `json:"cover_path,omitempty"`
	Genres      []string `json:"genres,omitempty"`
}

// SweepResult reports how many orphan rows one sweep removed.
type SweepResult struct {
	Authors    int64
	Publishers int64
	Genres     int64
}

func (r SweepResult) Total() int64 {
	return r.Authors + r.Publishers + r.Genres
}

// Service is the single entry point for catalog mutations. Each operation
// opens its own transaction; the cover directory is updated only around
// commit boundaries (copies before, deletes after).
type Service struct {
	db     *database.Database
	covers *covers.Store
	queue  MaintenanceQueue
}

// NewService creates the persistence service. queue may be nil, in which
// case no follow-up sweeps are scheduled.
func NewService(db *database.Database, store *covers.Store, queue MaintenanceQueue) *Service {
	return &Service{db: db, covers: store, queue: queue}
}

// SaveBook creates (bookID nil) or updates (bookID set) a book from one full
// set of field values, inside a single transaction:
//
//   - create: author resolved via find-or-create (mandatory); publisher
//     resolved only when a publisher field is non-blank.
//   - update: book scalars rewritten; the linked author row is mutated in
//     place, never swapped for a different author record. A blank publisher
//     input detaches the book from its publisher (keeping the row); an
//     existing link is updated in place; a missing link is resolved and set.
//   - a new cover file, when supplied, is copied into the managed directory
//     before commit; the superseded file is deleted only after commit.
//   - the detail row is upserted and the genre links fully replaced.
//
// Returns the book id. A *ValidationError means nothing was persisted; any
// other error means the transaction rolled back.
func (s *Service) SaveBook(bookID *uint, in BookInput) (uint, error) {
	if err := in.Validate(); err != nil {
		return 0, err
	}

	title := strings.TrimSpace(in.Title)
	givenName := strings.TrimSpace(in.AuthorGivenName)
	surname := strings.TrimSpace(in.AuthorSurname)
	pubName := strings.TrimSpace(in.PublisherName)
	pubCity := strings.TrimSpace(in.PublisherCity)

	var (
		savedID     uint
		oldCoverRel string
	)

	err := s.db.DB.Transaction(func(tx *gorm.DB) error {
		authorsRepo := authors.NewRepository(tx)
		publishersRepo := publishers.NewRepository(tx)
		genresRepo := genres.NewRepository(tx)
		booksRepo := books.NewRepository(tx)

		if bookID == nil {
			authorID, err := authorsRepo.FindOrCreate(surname, givenName)
			if err != nil {
				return fmt.Errorf("resolve author: %w", err)
			}

			var publisherID *uint
			if pubName != "" || pubCity != "" {
				id, err := publishersRepo.FindOrCreate(pubName, pubCity)
				if err != nil {
					return fmt.Errorf("resolve publisher: %w", err)
				}
				publisherID = &id
			}

			id, err := booksRepo.Insert(title, in.Year, in.PageCount, authorID, publisherID)
			if err != nil {
				return fmt.Errorf("insert book: %w", err)
			}
			savedID = id
		} else {
			savedID = *bookID

			currentAuthorID, found, err := booksRepo.AuthorID(savedID)
			if err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("book %d: %w", savedID, gorm.ErrRecordNotFound)
			}

			if err := booksRepo.UpdateScalars(savedID, title, in.Year, in.PageCount); err != nil {
				return fmt.Errorf("update book: %w", err)
			}

			// Edits rename this book's author; they never relink the book to
			// a different author record.
			if err := authorsRepo.Update(currentAuthorID, surname, givenName); err != nil {
				return fmt.Errorf("update author: %w", err)
			}

			switch currentPubID, linked, err := booksRepo.PublisherID(savedID); {
			case err != nil:
				return err
			case pubName == "" && pubCity == "":
				// Cleared input detaches the book; the publisher row stays
				// until the orphan sweep decides its fate.
				if err := booksRepo.ClearPublisher(savedID); err != nil {
					return fmt.Errorf("clear publisher: %w", err)
				}
			case linked:
				if err := publishersRepo.Update(currentPubID, pubName, pubCity); err != nil {
					return fmt.Errorf("update publisher: %w", err)
				}
			default:
				id, err := publishersRepo.FindOrCreate(pubName, pubCity)
				if err != nil {
					return fmt.Errorf("resolve publisher: %w", err)
				}
				if err := booksRepo.SetPublisher(savedID, id); err != nil {
					return fmt.Errorf("link publisher: %w", err)
				}
			}
		}

		currentRel, hasCover, err := booksRepo.DetailCoverPath(savedID)
		if err != nil {
			return err
		}

		coverRel := currentRel
		if strings.TrimSpace(in.NewCoverPath) != "" {
			stored, err := s.covers.Add(in.NewCoverPath, savedID)
			if err != nil {
				return fmt.Errorf("store cover: %w", err)
			}
			coverRel = stored
			// Defer removing the superseded file until the transaction is
			// durable; a rollback must leave it untouched.
			if hasCover && !strings.EqualFold(currentRel, stored) {
				oldCoverRel = currentRel
			}
		}

		if err := booksRepo.UpsertDetail(savedID, strings.TrimSpace(in.Description), coverRel); err != nil {
			return fmt.Errorf("upsert details: %w", err)
		}
		if err := genresRepo.ReplaceForBook(savedID, in.Genres); err != nil {
			return fmt.Errorf("set genres: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	if oldCoverRel != "" {
		s.covers.Remove(oldCoverRel)
	}
	s.scheduleSweep()

	return savedID, nil
}

// DeleteBook removes a book and everything that exists only to describe it:
// genre links, the detail row, the book row, and (after commit) the cover
// file. Orphaned author/publisher rows are then removed in separate
// transactions; if that second phase fails, the book deletion has already
// durably succeeded and the orphans wait for a later sweep.
func (s *Service) DeleteBook(bookID uint) error {
	var (
		authorID     uint
		publisherID  uint
		hasPublisher bool
		coverRel     string
	)

	err := s.db.DB.Transaction(func(tx *gorm.DB) error {
		booksRepo := books.NewRepository(tx)

		var found bool
		var err error
		authorID, found, err = booksRepo.AuthorID(bookID)
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("book %d: %w", bookID, gorm.ErrRecordNotFound)
		}
		publisherID, hasPublisher, err = booksRepo.PublisherID(bookID)
		if err != nil {
			return err
		}
		coverRel, _, err = booksRepo.DetailCoverPath(bookID)
		if err != nil {
			return err
		}

		if err := booksRepo.DeleteGenreLinks(bookID); err != nil {
			return err
		}
		if err := booksRepo.DeleteDetail(bookID); err != nil {
			return err
		}
		return booksRepo.Delete(bookID)
	})
	if err != nil {
		return err
	}

	// The file goes only after the commit is durable.
	if coverRel != "" {
		s.covers.Remove(coverRel)
	}

	if _, err := authors.NewRepository(s.db.DB).DeleteIfOrphan(authorID); err != nil {
		log.Printf("Orphan check for author %d failed: %v", authorID, err)
	}
	if hasPublisher {
		if _, err := publishers.NewRepository(s.db.DB).DeleteIfOrphan(publisherID); err != nil {
			log.Printf("Orphan check for publisher %d failed: %v", publisherID, err)
		}
	}
	s.scheduleSweep()

	return nil
}

// SweepOrphans removes, in one transaction, every author and publisher with
// zero referencing books and every genre with zero link rows. Running it
// again without intervening changes removes nothing.
func (s *Service) SweepOrphans() (SweepResult, error) {
	var result SweepResult
	err := s.db.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		if result.Authors, err = authors.NewRepository(tx).DeleteOrphans(); err != nil {
			return fmt.Errorf("sweep authors: %w", err)
		}
		if result.Publishers, err = publishers.NewRepository(tx).DeleteOrphans(); err != nil {
			return fmt.Errorf("sweep publishers: %w", err)
		}
		if result.Genres, err = genres.NewRepository(tx).DeleteOrphans(); err != nil {
			return fmt.Errorf("sweep genres: %w", err)
		}
		return nil
	})
	return result, err
}

// ReapCovers removes cover files in the managed directory that no detail row
// references.
func (s *Service) ReapCovers() (int, error) {
	referenced, err := books.NewRepository(s.db.DB).CoverPaths()
	if err != nil {
		return 0, err
	}
	return s.covers.Reap(referenced)
}

// GetBook returns the joined detail view of one book, or
// gorm.ErrRecordNotFound.
func (s *Service) GetBook(bookID uint) (*BookDetails, error) {
	book, err := books.NewRepository(s.db.DB).Get(bookID)
	if err != nil {
		return nil, err
	}

	details := &BookDetails{
		ID:        book.ID,
		Title:     book.Title,
		Year:      book.Year,
		PageCount: book.PageCount,
		Author:    authorDisplay(book.Author.Surname, book.Author.GivenName),
	}
	if book.Publisher != nil {
		details.Publisher = publisherDisplay(book.Publisher.Name, book.Publisher.City)
	}
	if book.Detail != nil {
		details.Description = book.Detail.Description
		details.CoverPath = book.Detail.CoverPath
	}
	for _, g := range book.Genres {
		details.Genres = append(details.Genres, g.Name)
	}
	return details, nil
}

// ListBooks returns the catalog grid rows ordered by id.
func (s *Service) ListBooks() ([]books.Row, error) {
	return books.NewRepository(s.db.DB).List()
}

// ListAuthors returns all authors for the author listing and suggestions.
func (s *Service) ListAuthors() ([]string, error) {
	all, err := authors.NewRepository(s.db.DB).List()
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(all))
	for _, a := range all {
		out = append(out, authorDisplay(a.Surname, a.GivenName))
	}
	return out, nil
}

// ListPublishers returns "Name, City" display strings for all publishers.
func (s *Service) ListPublishers() ([]string, error) {
	all, err := publishers.NewRepository(s.db.DB).List()
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(all))
	for _, p := range all {
		out = append(out, publisherDisplay(p.Name, p.City))
	}
	return out, nil
}

// ListGenres returns all genre names.
func (s *Service) ListGenres() ([]string, error) {
	all, err := genres.NewRepository(s.db.DB).List()
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(all))
	for _, g := range all {
		out = append(out, g.Name)
	}
	return out, nil
}

// CoverAbsPath resolves a stored relative cover path for display.
func (s *Service) CoverAbsPath(rel string) string {
	return s.covers.Abs(rel)
}

// UpdateAuthor renames an author in place across every book referencing it.
func (s *Service) UpdateAuthor(id uint, surname, givenName string) error {
	return authors.NewRepository(s.db.DB).Update(id, surname, givenName)
}

// UpdatePublisher rewrites a publisher in place across every book
// referencing it.
func (s *Service) UpdatePublisher(id uint, name, city string) error {
	return publishers.NewRepository(s.db.DB).Update(id, name, city)
}

// DeleteAuthorWithBooks deletes every book by the author through the cascade
// workflow, then removes the author row itself (which the per-book orphan
// checks may already have done).
func (s *Service) DeleteAuthorWithBooks(authorID uint) error {
	ids, err := books.NewRepository(s.db.DB).IDsByAuthor(authorID)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if err := s.DeleteBook(id); err != nil {
			return fmt.Errorf("delete book %d: %w", id, err)
		}
	}
	return authors.NewRepository(s.db.DB).Delete(authorID)
}

// DeletePublisherDetachBooks removes a publisher while keeping its books,
// clearing their publisher links.
func (s *Service) DeletePublisherDetachBooks(publisherID uint) error {
	return publishers.NewRepository(s.db.DB).DetachAndDelete(publisherID)
}

func (s *Service) scheduleSweep() {
	if s.queue == nil {
		return
	}
	if err := s.queue.EnqueueOrphanSweep(); err != nil {
		log.Printf("Failed to enqueue orphan sweep: %v", err)
	}
}

// authorDisplay renders an author surname first ("Herbert Frank"), omitting
// a blank given name.
func authorDisplay(surname, givenName string) string {
	return strings.TrimSpace(strings.TrimSpace(surname) + " " + strings.TrimSpace(givenName))
}

// publisherDisplay renders a publisher as "Name, City", omitting whichever
// part is blank.
func publisherDisplay(name, city string) string {
	name = strings.TrimSpace(name)
	city = strings.TrimSpace(city)
	switch {
	case name != "" && city != "":
		return name + ", " + city
	case name != "":
		return name
	default:
		return city
	}
}
