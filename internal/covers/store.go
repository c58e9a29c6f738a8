// Package covers manages the on-disk cover image directory. The database
// stores paths relative to the managed directory; this package owns naming,
// copying and cleanup of the files themselves.
package covers

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	// Characters invalid in filenames on most filesystems
	invalidFilenameChars = regexp.MustCompile(`[<>:"/\\|?*]`)
	// Whitespace characters to normalize
	whitespaceChars = regexp.MustCompile(`[\r\n\t]`)
	// Multiple spaces to collapse
	multipleSpaces = regexp.MustCompile(`\s+`)
)

// Store handles cover files inside a single managed directory.
type Store struct {
	dir string
}

// NewStore creates a cover store at the specified directory, creating it if
// needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create covers dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Add copies the file at srcPath into the managed directory under a
// collision-safe name derived from the original filename and the book id,
// and returns the stored file's path relative to the directory.
//
// The target name is probed before writing; concurrent writers may still
// race for the same name, which the naming scheme only mitigates.
func (s *Store) Add(srcPath string, bookID uint) (string, error) {
	src, err := os.Open(srcPath)
	if err != nil {
		return "", fmt.Errorf("open cover source: %w", err)
	}
	defer src.Close()

	base, ext := splitName(filepath.Base(srcPath))

	name := fmt.Sprintf("%s%d%s", base, bookID, ext)
	if _, err := os.Stat(filepath.Join(s.dir, name)); err == nil {
		for i := 2; ; i++ {
			name = fmt.Sprintf("%s__%d_%d%s", base, bookID, i, ext)
			if _, err := os.Stat(filepath.Join(s.dir, name)); os.IsNotExist(err) {
				break
			}
		}
	}

	if err := s.write(src, filepath.Join(s.dir, name)); err != nil {
		return "", err
	}
	return name, nil
}

// Abs resolves a stored relative path to an absolute filesystem path.
// Already-absolute paths are returned unchanged; empty input yields "".
func (s *Store) Abs(rel string) string {
	if strings.TrimSpace(rel) == "" {
		return ""
	}
	if filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(s.dir, rel)
}

// Remove deletes a stored cover file, best-effort. The catalog rows are the
// source of truth; a file that outlives its row is picked up by Reap later.
func (s *Store) Remove(rel string) {
	abs := s.Abs(rel)
	if abs == "" {
		return
	}
	_ = os.Remove(abs)
}

// Reap removes managed files whose names are not in the referenced set and
// returns how many were deleted.
func (s *Store) Reap(referenced []string) (int, error) {
	keep := make(map[string]struct{}, len(referenced))
	for _, rel := range referenced {
		keep[filepath.Base(rel)] = struct{}{}
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, fmt.Errorf("read covers dir: %w", err)
	}

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if _, ok := keep[entry.Name()]; ok {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, entry.Name())); err == nil {
			removed++
		}
	}
	return removed, nil
}

// Dir returns the managed directory path.
func (s *Store) Dir() string {
	return s.dir
}

// write copies src into an adjacent temp file and renames it into place so
// a partially written cover is never visible under its final name.
func (s *Store) write(src io.Reader, dst string) error {
	tmp, err := os.CreateTemp(s.dir, "cover_tmp_")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	defer func() {
		tmp.Close()
		os.Remove(tmpPath) // no-op after a successful rename
	}()

	if _, err := io.Copy(tmp, src); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpPath, dst)
}

// splitName sanitizes an original filename and splits it into a base name
// and a lowercased extension, defaulting to ".jpg" when none is present.
func splitName(original string) (base, ext string) {
	safe := sanitizeFilename(original)
	ext = strings.ToLower(filepath.Ext(safe))
	base = strings.TrimSuffix(safe, filepath.Ext(safe))
	if strings.TrimSpace(ext) == "" {
		ext = ".jpg"
	}
	if strings.TrimSpace(base) == "" {
		base = "cover"
	}
	return base, ext
}

// sanitizeFilename strips characters that are invalid in filenames and
// normalizes whitespace.
func sanitizeFilename(filename string) string {
	filename = invalidFilenameChars.ReplaceAllString(filename, "_")
	filename = whitespaceChars.ReplaceAllString(filename, " ")
	filename = multipleSpaces.ReplaceAllString(filename, " ")
	filename = strings.TrimSpace(filename)

	if len(filename) > 200 {
		filename = strings.TrimSpace(filename[:200])
	}
	if filename == "" {
		filename = "cover"
	}
	return filename
}
