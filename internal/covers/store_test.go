package covers

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupStore(t *testing.T) *Store {
	store, err := NewStore(filepath.Join(t.TempDir(), "covers"))
	require.NoError(t, err)
	return store
}

func writeSourceFile(t *testing.T, name, content string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestNewStore_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "covers")

	store, err := NewStore(dir)
	require.NoError(t, err)

	info, err := os.Stat(store.Dir())
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestStore_Add_NamesByBookID(t *testing.T) {
	store := setupStore(t)
	src := writeSourceFile(t, "dune.jpg", "image-bytes")

	rel, err := store.Add(src, 7)

	require.NoError(t, err)
	assert.Equal(t, "dune7.jpg", rel)

	data, err := os.ReadFile(store.Abs(rel))
	require.NoError(t, err)
	assert.Equal(t, "image-bytes", string(data))
}

func TestStore_Add_CollisionProbing(t *testing.T) {
	store := setupStore(t)
	src := writeSourceFile(t, "dune.jpg", "image-bytes")

	first, err := store.Add(src, 7)
	require.NoError(t, err)
	assert.Equal(t, "dune7.jpg", first)

	second, err := store.Add(src, 7)
	require.NoError(t, err)
	assert.Equal(t, "dune__7_2.jpg", second)

	third, err := store.Add(src, 7)
	require.NoError(t, err)
	assert.Equal(t, "dune__7_3.jpg", third)
}

func TestStore_Add_SanitizesName(t *testing.T) {
	store := setupStore(t)
	src := writeSourceFile(t, "my cover?.PNG", "image-bytes")

	rel, err := store.Add(src, 3)

	require.NoError(t, err)
	assert.Equal(t, "my cover_3.png", rel, "invalid chars replaced, extension lowercased")
}

func TestStore_Add_DefaultsExtension(t *testing.T) {
	store := setupStore(t)
	src := writeSourceFile(t, "coverfile", "image-bytes")

	rel, err := store.Add(src, 3)

	require.NoError(t, err)
	assert.Equal(t, "coverfile3.jpg", rel)
}

func TestStore_Add_MissingSource(t *testing.T) {
	store := setupStore(t)

	_, err := store.Add(filepath.Join(t.TempDir(), "nope.jpg"), 1)

	assert.Error(t, err)
}

func TestStore_Abs(t *testing.T) {
	store := setupStore(t)

	assert.Empty(t, store.Abs(""))
	assert.Empty(t, store.Abs("   "))
	assert.Equal(t, filepath.Join(store.Dir(), "dune7.jpg"), store.Abs("dune7.jpg"))

	abs := filepath.Join(t.TempDir(), "elsewhere.jpg")
	assert.Equal(t, abs, store.Abs(abs))
}

func TestStore_Remove_BestEffort(t *testing.T) {
	store := setupStore(t)
	src := writeSourceFile(t, "dune.jpg", "image-bytes")

	rel, err := store.Add(src, 7)
	require.NoError(t, err)

	store.Remove(rel)
	_, err = os.Stat(store.Abs(rel))
	assert.True(t, os.IsNotExist(err))

	// Removing a missing or blank path must not panic.
	store.Remove(rel)
	store.Remove("")
}

func TestStore_Reap(t *testing.T) {
	store := setupStore(t)
	src := writeSourceFile(t, "dune.jpg", "image-bytes")

	kept, err := store.Add(src, 1)
	require.NoError(t, err)
	orphanOne, err := store.Add(src, 2)
	require.NoError(t, err)
	orphanTwo, err := store.Add(src, 3)
	require.NoError(t, err)

	removed, err := store.Reap([]string{kept})

	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	_, err = os.Stat(store.Abs(kept))
	assert.NoError(t, err)
	_, err = os.Stat(store.Abs(orphanOne))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(store.Abs(orphanTwo))
	assert.True(t, os.IsNotExist(err))
}

func TestStore_Reap_EmptyDir(t *testing.T) {
	store := setupStore(t)

	removed, err := store.Reap(nil)

	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "a_b_c", sanitizeFilename(`a<b>c`))
	assert.Equal(t, "one two", sanitizeFilename("one\t\ntwo"))
	assert.Equal(t, "cover", sanitizeFilename("   "))
}

func TestSplitName(t *testing.T) {
	base, ext := splitName("Dune Cover.JPG")
	assert.Equal(t, "Dune Cover", base)
	assert.Equal(t, ".jpg", ext)

	base, ext = splitName("noext")
	assert.Equal(t, "noext", base)
	assert.Equal(t, ".jpg", ext)

	base, ext = splitName(".png")
	assert.Equal(t, "cover", base)
	assert.Equal(t, ".png", ext)
}
