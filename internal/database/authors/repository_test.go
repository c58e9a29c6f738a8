package authors

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"bookshelf/internal/entities"
)

func setupTestDB(t *testing.T) (*gorm.DB, *Repository, func()) {
	dbPath := "./test_authors_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&entities.Author{},
		&entities.Publisher{},
		&entities.Genre{},
		&entities.Book{},
		&entities.BookDetail{},
	)
	require.NoError(t, err)

	repo := NewRepository(db)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return db, repo, cleanup
}

func TestRepository_FindOrCreate_CreatesNew(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()

	id, err := repo.FindOrCreate("Herbert", "Frank")

	require.NoError(t, err)
	assert.NotZero(t, id)
}

func TestRepository_FindOrCreate_ReusesExisting(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()

	first, err := repo.FindOrCreate("Herbert", "Frank")
	require.NoError(t, err)

	second, err := repo.FindOrCreate("Herbert", "Frank")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRepository_FindOrCreate_CaseAndWhitespaceInsensitive(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()

	first, err := repo.FindOrCreate("Herbert", "Frank")
	require.NoError(t, err)

	second, err := repo.FindOrCreate("  herbert  ", "FRANK")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRepository_FindOrCreate_DistinctGivenNames(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()

	frank, err := repo.FindOrCreate("Herbert", "Frank")
	require.NoError(t, err)

	brian, err := repo.FindOrCreate("Herbert", "Brian")
	require.NoError(t, err)

	assert.NotEqual(t, frank, brian)
}

func TestRepository_FindOrCreate_StoresTrimmed(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()

	id, err := repo.FindOrCreate("  Herbert ", " Frank  ")
	require.NoError(t, err)

	author, err := repo.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "Herbert", author.Surname)
	assert.Equal(t, "Frank", author.GivenName)
}

func TestRepository_Update_InPlace(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()

	id, err := repo.FindOrCreate("Herbrt", "Frank")
	require.NoError(t, err)

	err = repo.Update(id, "Herbert", "Frank")
	require.NoError(t, err)

	author, err := repo.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "Herbert", author.Surname)
}

func TestRepository_List_Ordered(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := repo.FindOrCreate("Melville", "Herman")
	require.NoError(t, err)
	_, err = repo.FindOrCreate("Austen", "Jane")
	require.NoError(t, err)

	authors, err := repo.List()

	require.NoError(t, err)
	require.Len(t, authors, 2)
	assert.Equal(t, "Austen", authors[0].Surname)
	assert.Equal(t, "Melville", authors[1].Surname)
}

func TestRepository_DeleteIfOrphan_NoBooks(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()

	id, err := repo.FindOrCreate("Austen", "Jane")
	require.NoError(t, err)

	deleted, err := repo.DeleteIfOrphan(id)

	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = repo.Get(id)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepository_DeleteIfOrphan_Referenced(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	id, err := repo.FindOrCreate("Austen", "Jane")
	require.NoError(t, err)

	err = db.Exec("INSERT INTO books (title, author_id) VALUES ('Emma', ?)", id).Error
	require.NoError(t, err)

	deleted, err := repo.DeleteIfOrphan(id)

	require.NoError(t, err)
	assert.False(t, deleted)

	_, err = repo.Get(id)
	assert.NoError(t, err)
}

func TestRepository_DeleteOrphans(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	kept, err := repo.FindOrCreate("Austen", "Jane")
	require.NoError(t, err)
	_, err = repo.FindOrCreate("Orphan", "First")
	require.NoError(t, err)
	_, err = repo.FindOrCreate("Orphan", "Second")
	require.NoError(t, err)

	err = db.Exec("INSERT INTO books (title, author_id) VALUES ('Emma', ?)", kept).Error
	require.NoError(t, err)

	removed, err := repo.DeleteOrphans()

	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)

	authors, err := repo.List()
	require.NoError(t, err)
	require.Len(t, authors, 1)
	assert.Equal(t, "Austen", authors[0].Surname)
}

func TestRepository_DeleteOrphans_Idempotent(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := repo.FindOrCreate("Orphan", "Only")
	require.NoError(t, err)

	removed, err := repo.DeleteOrphans()
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	removed, err = repo.DeleteOrphans()
	require.NoError(t, err)
	assert.Equal(t, int64(0), removed)
}
