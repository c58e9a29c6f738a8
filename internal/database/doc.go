// Package database provides the data access layer for the catalog.
//
// # Architecture
//
// The layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup and migrations
//	├── gateway.go       # Parameterized SQL helpers (NonQuery, Scalar, Rows)
//	├── books/           # Book rows, detail upsert, joined reads, cascade delete
//	├── authors/         # Author find-or-create, updates, orphan cleanup
//	├── publishers/      # Publisher find-or-create, detach, orphan cleanup
//	└── genres/          # Genre find-or-create and book link replacement
//
// # Using Sub-packages
//
// Each sub-package provides a Repository type over the shared *gorm.DB:
//
//	db, err := database.New("./bookshelf.db")
//
//	booksRepo := books.NewRepository(db.DB)
//	authorsRepo := authors.NewRepository(db.DB)
//
//	id, err := authorsRepo.FindOrCreate("Herbert", "Frank")
//
// Multi-table workflows (book save, cascade delete) run inside a single
// db.DB.Transaction closure; repositories constructed over the transaction
// handle participate in it.
package database
