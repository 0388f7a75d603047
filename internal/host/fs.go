// Package host provides the production filesystem and subprocess
// capabilities consumed by the driver and resolver.
package host

import (
	"os"
)

// OSHost implements scm.Host using the real operating system filesystem.
type OSHost struct{}

func (OSHost) ReadFile(path string) ([]byte, error) { return os.ReadFile(path) }
func (OSHost) WriteFile(path string, data []byte, perm os.FileMode) error {
	return os.WriteFile(path, data, perm)
}
func (OSHost) Rename(oldpath, newpath string) error { return os.Rename(oldpath, newpath) }
func (OSHost) RemoveAll(path string) error          { return os.RemoveAll(path) }

func (OSHost) Exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

func (OSHost) IsDir(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}
