// Package entries persists the list of paths the tool manages below a root.
package entries

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/gclient-go/gclient/internal/manifest"
	"github.com/gclient-go/gclient/internal/scm"
)

// Store reads and writes the entries record at Path.
type Store struct {
	Path string
	Host scm.Host
}

// NewStore returns a store for the record at path.
func NewStore(path string, host scm.Host) *Store {
	return &Store{Path: path, Host: host}
}

// Exists reports whether a record has been written before.
func (s *Store) Exists() bool {
	return s.Host.Exists(s.Path)
}

// Load reads the record. A missing record yields an empty list.
func (s *Store) Load() ([]string, error) {
	data, err := s.Host.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading entries %s: %w", s.Path, err)
	}

	paths, err := manifest.ParseEntries(string(data))
	if err != nil {
		return nil, fmt.Errorf("parsing entries %s: %w", s.Path, err)
	}
	if errs := Validate(paths); len(errs) > 0 {
		return nil, &ValidationError{Path: s.Path, Errors: errs}
	}
	return paths, nil
}

// Save writes the record atomically using a temp file and rename.
func (s *Store) Save(paths []string) error {
	if errs := Validate(paths); len(errs) > 0 {
		return &ValidationError{Path: s.Path, Errors: errs}
	}

	tmp := s.Path + ".tmp"
	if err := s.Host.WriteFile(tmp, []byte(manifest.FormatEntries(paths)), 0o644); err != nil {
		return fmt.Errorf("writing temp entries %s: %w", tmp, err)
	}
	if err := s.Host.Rename(tmp, s.Path); err != nil {
		_ = s.Host.RemoveAll(tmp)
		return fmt.Errorf("renaming temp entries to %s: %w", s.Path, err)
	}
	return nil
}

// ValidationError holds every problem found in a record.
type ValidationError struct {
	Path   string
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("entries %s invalid:\n  - %s", e.Path, strings.Join(e.Errors, "\n  - "))
}

// Validate checks that paths are non-empty and unique.
func Validate(paths []string) []string {
	var errs []string
	seen := make(map[string]bool, len(paths))
	for i, p := range paths {
		switch {
		case p == "":
			errs = append(errs, fmt.Sprintf("entry %d: empty path", i))
		case seen[p]:
			errs = append(errs, fmt.Sprintf("entry %d: duplicate path '%s'", i, p))
		}
		seen[p] = true
	}
	return errs
}
