// Package scm drives a single checkout path through the version-control
// state machine: checkout, update, relocate, revert, status, diff and
// cleanup. The version-control tool and the filesystem are reached through
// the VCS and Host interfaces so that tests can replace both.
package scm

import (
	"context"
	"os"
)

// Info is the decoded result of an info query against a working copy or a
// remote location. Optional fields are nil when the tool did not report them.
type Info struct {
	URL            string
	UUID           *string
	RepositoryRoot string
	Revision       int
	NodeKind       string
	Schedule       string
	CopiedFromURL  *string
	CopiedFromRev  *string
	Path           string
}

// StatusEntry is one line of a working-copy status query. Code is always
// seven characters wide.
type StatusEntry struct {
	Code string
	Path string
}

// Modified reports whether the entry is anything other than unversioned.
func (s StatusEntry) Modified() bool {
	return len(s.Code) > 0 && s.Code[0] != '?'
}

// VCS is the narrow adapter over the version-control tool.
type VCS interface {
	// Info queries a working-copy path or a remote URL.
	Info(ctx context.Context, target, dir string) (*Info, error)

	// Status lists changed and unversioned items below dir.
	Status(ctx context.Context, dir string) ([]StatusEntry, error)

	// Run executes a subcommand, echoing its output.
	Run(ctx context.Context, args []string, dir string) error

	// RunAndGetFileList executes a subcommand and returns the paths it
	// reported touching.
	RunAndGetFileList(ctx context.Context, args []string, dir string) ([]string, error)
}

// Host abstracts the filesystem primitives the driver and resolver need.
type Host interface {
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte, perm os.FileMode) error
	Rename(oldpath, newpath string) error
	Exists(path string) bool
	IsDir(path string) bool
	RemoveAll(path string) error
}

// Options carries the per-invocation switches that influence a path.
type Options struct {
	Verbose bool
	Force   bool

	// ManuallyGrabSVNRev resolves HEAD up front and passes it explicitly,
	// because a null update is slow without a revision.
	ManuallyGrabSVNRev bool

	// Revision pins the path. Empty means the URL's own @rev, if any, or HEAD.
	Revision string
}
