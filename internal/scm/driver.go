package scm

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gclient-go/gclient/internal/logging"
)

// maxRevertLength bounds the summed path length of one revert invocation.
const maxRevertLength = 3072

// foreignMarker is the sentinel that marks a path owned by another tool.
const foreignMarker = ".git"

// Driver synchronizes a single checkout path rooted at RootDir/RelPath.
type Driver struct {
	URL     string
	RootDir string
	RelPath string

	VCS  VCS
	Host Host
	Out  io.Writer
}

// NewDriver returns a driver for relPath below rootDir tracking url.
func NewDriver(url, rootDir, relPath string, vcs VCS, host Host, out io.Writer) *Driver {
	return &Driver{URL: url, RootDir: rootDir, RelPath: relPath, VCS: vcs, Host: host, Out: out}
}

// CheckoutPath is the absolute location of the working copy.
func (d *Driver) CheckoutPath() string {
	return filepath.Join(d.RootDir, d.RelPath)
}

// Foreign reports whether another version-control tool owns the path.
func (d *Driver) Foreign() bool {
	return d.Host.Exists(filepath.Join(d.CheckoutPath(), foreignMarker))
}

// Run applies verb to the path and returns the files the tool reported
// touching. Positional args are forwarded for status, diff and cleanup.
func (d *Driver) Run(ctx context.Context, verb Verb, opts Options, args []string) ([]string, error) {
	logger := logging.GetLogger("scm")
	logger.Debug().Str("path", d.RelPath).Str("verb", verb.String()).Str("url", d.URL).Msg("driving path")

	if d.Foreign() {
		if verb == VerbUpdate {
			d.printf("________ found %s directory; skipping %s\n", foreignMarker, d.RelPath)
		}
		return nil, nil
	}

	switch verb {
	case VerbUpdate:
		return d.update(ctx, opts, args)
	case VerbRevert:
		return d.revert(ctx, opts)
	case VerbStatus:
		return d.status(ctx, args)
	case VerbDiff, VerbCleanup:
		return nil, d.passThrough(ctx, verb, args)
	case VerbRunHooks, VerbRevInfo:
		return nil, nil
	}
	return nil, &UnsupportedCommandError{Command: verb.String()}
}

// FullURLForRelativeURL anchors a repository-relative URL at the ancestor of
// this path's own URL that corresponds to the checkout root.
func (d *Driver) FullURLForRelativeURL(rel string) string {
	base, _ := SplitURLRevision(d.URL)
	return AnchorURL(base, Depth(d.RelPath)+1, rel)
}

func (d *Driver) update(ctx context.Context, opts Options, args []string) ([]string, error) {
	if len(args) > 0 {
		return nil, &UnsupportedArgumentError{Args: args}
	}

	checkoutPath := d.CheckoutPath()
	base, revision := SplitURLRevision(d.URL)
	url := d.URL
	forced := revision != ""
	if opts.Revision != "" {
		revision = opts.Revision
		url = base + "@" + revision
		forced = true
	}

	if !d.Host.Exists(checkoutPath) {
		return d.checkout(ctx, url, revision)
	}

	from, err := d.VCS.Info(ctx, filepath.Join(checkoutPath, "."), d.RootDir)
	if err != nil || from == nil {
		return nil, &CheckoutError{
			Path: checkoutPath,
			Msg:  "can't update/checkout if an unversioned directory is present; delete the directory and try again",
			Err:  err,
		}
	}

	if opts.ManuallyGrabSVNRev && revision == "" {
		live, err := d.VCS.Info(ctx, from.URL, d.RootDir)
		if err != nil {
			return nil, err
		}
		revision = strconv.Itoa(live.Revision)
	}

	if from.URL != base {
		to, err := d.VCS.Info(ctx, url, d.RootDir)
		if err != nil {
			return nil, err
		}
		if from.RepositoryRoot != to.RepositoryRoot && sameUUID(from.UUID, to.UUID) {
			d.printf("\n_____ relocating %s to a new checkout\n", d.RelPath)
			cmd := []string{"switch", "--relocate", from.RepositoryRoot, to.RepositoryRoot, d.RelPath}
			if err := d.VCS.Run(ctx, cmd, d.RootDir); err != nil {
				return nil, err
			}
		} else {
			local, err := d.VCS.Status(ctx, checkoutPath)
			if err != nil {
				return nil, err
			}
			if len(local) > 0 {
				return nil, &CheckoutError{
					Path: checkoutPath,
					Msg:  fmt.Sprintf("can't switch the checkout to %s; UUIDs don't match and there are local changes; delete the directory and try again", url),
				}
			}
			d.printf("\n_____ switching %s to a new checkout\n", d.RelPath)
			if err := d.Host.RemoveAll(checkoutPath); err != nil {
				return nil, fmt.Errorf("removing %s: %w", checkoutPath, err)
			}
			return d.checkout(ctx, url, revision)
		}
	}

	if !opts.Force && revision != "" && strconv.Itoa(from.Revision) == revision {
		if opts.Verbose || !forced {
			d.printf("\n_____ %s at %s\n", d.RelPath, revision)
		}
		return nil, nil
	}

	cmd := []string{"update", checkoutPath}
	if revision != "" {
		cmd = append(cmd, "--revision", revision)
	}
	return d.VCS.RunAndGetFileList(ctx, cmd, d.RootDir)
}

func (d *Driver) checkout(ctx context.Context, url, revision string) ([]string, error) {
	cmd := []string{"checkout", url, d.CheckoutPath()}
	if revision != "" {
		cmd = append(cmd, "--revision", revision)
	}
	return d.VCS.RunAndGetFileList(ctx, cmd, d.RootDir)
}

func (d *Driver) revert(ctx context.Context, opts Options) ([]string, error) {
	path := d.CheckoutPath()
	if !d.Host.IsDir(path) {
		d.printf("\n_____ %s is missing, synching instead\n", d.RelPath)
		return d.update(ctx, opts, nil)
	}

	entries, err := d.VCS.Status(ctx, path)
	if err != nil {
		return nil, err
	}

	var files, toRevert []string
	for _, e := range entries {
		if e.Code == "" {
			continue
		}
		full := filepath.Join(path, e.Path)
		d.printf("%s\n", full)
		switch e.Code[0] {
		case '?', '~':
			// The tool will not touch these, so they are removed here.
			files = append(files, full)
			if err := d.Host.RemoveAll(full); err != nil {
				return nil, fmt.Errorf("removing %s: %w", full, err)
			}
		}
		if e.Code[0] != '?' {
			files = append(files, full)
			toRevert = append(toRevert, e.Path)
		}
	}

	for _, batch := range batchPaths(toRevert, maxRevertLength) {
		if err := d.VCS.Run(ctx, append([]string{"revert"}, batch...), path); err != nil {
			return nil, err
		}
	}
	return files, nil
}

func (d *Driver) status(ctx context.Context, args []string) ([]string, error) {
	path := d.CheckoutPath()
	cmd := append([]string{"status"}, args...)
	if !d.Host.IsDir(path) {
		d.missing(cmd, path)
		return nil, nil
	}
	return d.VCS.RunAndGetFileList(ctx, cmd, path)
}

func (d *Driver) passThrough(ctx context.Context, verb Verb, args []string) error {
	path := d.CheckoutPath()
	cmd := append([]string{verb.String()}, args...)
	if !d.Host.IsDir(path) {
		d.missing(cmd, path)
		return nil
	}
	return d.VCS.Run(ctx, cmd, path)
}

func (d *Driver) missing(cmd []string, path string) {
	d.printf("\n________ couldn't run '%s' in '%s':\nThe directory does not exist.\n", strings.Join(cmd, " "), path)
}

func (d *Driver) printf(format string, args ...any) {
	if d.Out == nil {
		return
	}
	fmt.Fprintf(d.Out, format, args...)
}

// batchPaths groups paths so that each group's summed length stays within
// limit. A single path longer than limit forms its own group.
func batchPaths(paths []string, limit int) [][]string {
	var batches [][]string
	var cur []string
	n := 0
	for _, p := range paths {
		if len(cur) > 0 && n+len(p) > limit {
			batches = append(batches, cur)
			cur, n = nil, 0
		}
		cur = append(cur, p)
		n += len(p)
	}
	if len(cur) > 0 {
		batches = append(batches, cur)
	}
	return batches
}

func sameUUID(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
