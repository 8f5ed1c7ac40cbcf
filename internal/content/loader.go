package content

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Entry is one validated document.
type Entry struct {
	ID         string
	Collection string
	Path       string
	Data       map[string]any
	Body       []byte
}

// LoadDir reads every document of c below root and validates it. All
// per-file problems are returned together; valid entries are still returned.
func LoadDir(root string, c *Collection) ([]Entry, error) {
	base := filepath.Join(root, filepath.FromSlash(c.Base))
	if _, err := os.Stat(base); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}

	var (
		entries []Entry
		errs    []error
	)
	walkErr := filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), c.Ext) {
			return nil
		}
		entry, err := loadFile(base, path, c)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", path, err))
			return nil
		}
		entries = append(entries, entry)
		return nil
	})
	if walkErr != nil {
		errs = append(errs, walkErr)
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
	return entries, errors.Join(errs...)
}

func loadFile(base, path string, c *Collection) (Entry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Entry{}, err
	}
	fm, body, err := ParseFrontmatter(raw)
	if err != nil {
		return Entry{}, err
	}
	data, err := c.Validate(fm)
	if err != nil {
		return Entry{}, err
	}

	rel, err := filepath.Rel(base, path)
	if err != nil {
		return Entry{}, err
	}
	id := strings.TrimSuffix(filepath.ToSlash(rel), filepath.Ext(rel))
	return Entry{
		ID:         id,
		Collection: c.Name,
		Path:       path,
		Data:       data,
		Body:       body,
	}, nil
}
