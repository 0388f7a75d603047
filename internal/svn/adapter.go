// Package svn adapts the Subversion command-line client to scm.VCS.
package svn

import (
	"context"
	"fmt"
	"regexp"

	"github.com/gclient-go/gclient/internal/host"
	"github.com/gclient-go/gclient/internal/scm"
)

var (
	// Three status columns, two spaces, then the path.
	updatePattern = regexp.MustCompile(`^...  (.*)$`)
	// Six status columns, one space, then the path.
	statusPattern = regexp.MustCompile(`^...... (.*)$`)
)

// Adapter runs the svn binary through a host.Runner.
type Adapter struct {
	Runner host.Runner
	Binary string
}

// New returns an adapter using the "svn" binary on PATH.
func New(r host.Runner) *Adapter {
	return &Adapter{Runner: r, Binary: "svn"}
}

func (a *Adapter) Info(ctx context.Context, target, dir string) (*scm.Info, error) {
	args := a.command("info", "--xml", target)
	out, err := a.Runner.Capture(ctx, args, dir)
	if err != nil {
		return nil, &scm.AdapterError{Args: args, Dir: dir, Err: err}
	}
	info, err := DecodeInfo(out)
	if err != nil {
		return nil, &scm.AdapterError{Args: args, Dir: dir, Err: err}
	}
	return info, nil
}

func (a *Adapter) Status(ctx context.Context, dir string) ([]scm.StatusEntry, error) {
	args := a.command("status", "--xml")
	out, err := a.Runner.Capture(ctx, args, dir)
	if err != nil {
		return nil, &scm.AdapterError{Args: args, Dir: dir, Err: err}
	}
	entries, err := DecodeStatus(out)
	if err != nil {
		return nil, &scm.AdapterError{Args: args, Dir: dir, Err: err}
	}
	return entries, nil
}

func (a *Adapter) Run(ctx context.Context, args []string, dir string) error {
	full := a.command(args...)
	if _, err := a.Runner.Stream(ctx, host.Command{Args: full, Dir: dir}); err != nil {
		return &scm.AdapterError{Args: full, Dir: dir, Err: err}
	}
	return nil
}

// RunAndGetFileList runs checkout, update or status and returns the paths the
// tool printed.
func (a *Adapter) RunAndGetFileList(ctx context.Context, args []string, dir string) ([]string, error) {
	full := a.command(args...)
	pattern, err := fileListPattern(args)
	if err != nil {
		return nil, &scm.AdapterError{Args: full, Dir: dir, Err: err}
	}
	res, err := a.Runner.Stream(ctx, host.Command{Args: full, Dir: dir, Pattern: pattern})
	if err != nil {
		return nil, &scm.AdapterError{Args: full, Dir: dir, Err: err}
	}
	return res.Captured, nil
}

func (a *Adapter) command(args ...string) []string {
	bin := a.Binary
	if bin == "" {
		bin = "svn"
	}
	return append([]string{bin}, args...)
}

func fileListPattern(args []string) (*regexp.Regexp, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("no subcommand")
	}
	switch args[0] {
	case "checkout", "update":
		return updatePattern, nil
	case "status":
		return statusPattern, nil
	}
	return nil, fmt.Errorf("no file list pattern for %q", args[0])
}
