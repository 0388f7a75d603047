package config

import (
	"path/filepath"
)

// FindRoot walks up from dir looking for a file named filename and returns
// the directory containing it.
func FindRoot(dir, filename string, exists func(string) bool) (string, bool) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		abs = dir
	}
	for {
		if exists(filepath.Join(abs, filename)) {
			return abs, true
		}
		parent := filepath.Dir(abs)
		if parent == abs {
			return "", false
		}
		abs = parent
	}
}
