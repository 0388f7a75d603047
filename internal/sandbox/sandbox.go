// Package sandbox keeps dependency checkouts inside the root directory.
package sandbox

import (
	"fmt"
	"path/filepath"
	"strings"
)

// EscapeError reports a dependency path that resolves outside the root.
type EscapeError struct {
	Path     string
	Resolved string
	Root     string
}

func (e *EscapeError) Error() string {
	return fmt.Sprintf("dependency path '%s' resolves to '%s' which is outside the root '%s'", e.Path, e.Resolved, e.Root)
}

// Sandbox validates relative paths against a fixed root.
type Sandbox struct {
	root string
}

// New resolves root to its real absolute location.
func New(root string) (*Sandbox, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving root: %w", err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, fmt.Errorf("resolving root symlinks: %w", err)
	}
	return &Sandbox{root: resolved}, nil
}

// Root returns the resolved root directory.
func (s *Sandbox) Root() string {
	return s.root
}

// Check verifies that rel stays inside the root once symlinks in its
// existing prefix are followed. It returns the resolved absolute path.
func (s *Sandbox) Check(rel string) (string, error) {
	if rel == "" || filepath.IsAbs(rel) {
		return "", &EscapeError{Path: rel, Resolved: rel, Root: s.root}
	}

	candidate := filepath.Clean(filepath.Join(s.root, rel))
	resolved, err := resolveExisting(candidate)
	if err != nil {
		return "", fmt.Errorf("resolving dependency path: %w", err)
	}

	if resolved == s.root || !strings.HasPrefix(resolved, s.root+string(filepath.Separator)) {
		return "", &EscapeError{Path: rel, Resolved: resolved, Root: s.root}
	}
	return resolved, nil
}

// resolveExisting follows symlinks for the longest existing prefix of path
// and appends the remainder unchanged.
func resolveExisting(path string) (string, error) {
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		return resolved, nil
	}
	dir, base := filepath.Split(path)
	dir = filepath.Clean(dir)
	if dir == path {
		return path, nil
	}
	parent, err := resolveExisting(dir)
	if err != nil {
		return "", err
	}
	return filepath.Join(parent, base), nil
}
