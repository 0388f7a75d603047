package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gclient-go/gclient/internal/config"
	"github.com/gclient-go/gclient/internal/host"
	"github.com/gclient-go/gclient/internal/scm"
)

type fakeVCS struct {
	infos    map[string]*scm.Info
	statuses map[string][]scm.StatusEntry
	files    map[string][]string
	calls    []string
}

func newFakeVCS() *fakeVCS {
	return &fakeVCS{
		infos:    map[string]*scm.Info{},
		statuses: map[string][]scm.StatusEntry{},
		files:    map[string][]string{},
	}
}

func (f *fakeVCS) Info(_ context.Context, target, _ string) (*scm.Info, error) {
	f.calls = append(f.calls, "info "+target)
	info, ok := f.infos[target]
	if !ok {
		return nil, fmt.Errorf("no info for %s", target)
	}
	cp := *info
	return &cp, nil
}

func (f *fakeVCS) Status(_ context.Context, dir string) ([]scm.StatusEntry, error) {
	f.calls = append(f.calls, "status "+dir)
	return f.statuses[dir], nil
}

func (f *fakeVCS) Run(_ context.Context, args []string, dir string) error {
	f.calls = append(f.calls, strings.Join(args, " "))
	return nil
}

func (f *fakeVCS) RunAndGetFileList(_ context.Context, args []string, _ string) ([]string, error) {
	f.calls = append(f.calls, strings.Join(args, " "))
	var target string
	switch args[0] {
	case "checkout":
		target = args[2]
	case "update":
		target = args[1]
	}
	return f.files[target], nil
}

type fakeHost struct {
	files    map[string]string
	dirs     map[string]bool
	readErrs map[string]error
	removed  []string
}

func newFakeHost() *fakeHost {
	return &fakeHost{files: map[string]string{}, dirs: map[string]bool{}, readErrs: map[string]error{}}
}

func (h *fakeHost) ReadFile(path string) ([]byte, error) {
	if err, ok := h.readErrs[path]; ok {
		return nil, err
	}
	data, ok := h.files[path]
	if !ok {
		return nil, &os.PathError{Op: "open", Path: path, Err: os.ErrNotExist}
	}
	return []byte(data), nil
}

func (h *fakeHost) WriteFile(path string, data []byte, _ os.FileMode) error {
	h.files[path] = string(data)
	return nil
}

func (h *fakeHost) Rename(oldpath, newpath string) error {
	h.files[newpath] = h.files[oldpath]
	delete(h.files, oldpath)
	return nil
}

func (h *fakeHost) Exists(path string) bool {
	_, ok := h.files[path]
	return ok || h.dirs[path]
}

func (h *fakeHost) IsDir(path string) bool { return h.dirs[path] }

func (h *fakeHost) RemoveAll(path string) error {
	h.removed = append(h.removed, path)
	delete(h.dirs, path)
	return nil
}

type fakeRunner struct {
	streamed []host.Command
}

func (f *fakeRunner) Capture(context.Context, []string, string) ([]byte, error) {
	return nil, nil
}

func (f *fakeRunner) Stream(_ context.Context, cmd host.Command) (*host.Result, error) {
	f.streamed = append(f.streamed, cmd)
	return &host.Result{}, nil
}

type fakeSafesync struct {
	rev  string
	urls []string
}

func (f *fakeSafesync) Revision(_ context.Context, url string) (string, error) {
	f.urls = append(f.urls, url)
	return f.rev, nil
}

type fixture struct {
	root     string
	vcs      *fakeVCS
	host     *fakeHost
	runner   *fakeRunner
	safesync *fakeSafesync
	out      *strings.Builder
	opts     config.Options
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	opts := config.FromEnv(func(string) string { return "" })
	opts.Platform = "linux"
	opts.ManuallyGrabSVNRev = false
	return &fixture{
		root:     t.TempDir(),
		vcs:      newFakeVCS(),
		host:     newFakeHost(),
		runner:   &fakeRunner{},
		safesync: &fakeSafesync{},
		out:      &strings.Builder{},
		opts:     opts,
	}
}

func (f *fixture) env() Env {
	return Env{Host: f.host, VCS: f.vcs, Runner: f.runner, Safesync: f.safesync, Out: f.out}
}

func (f *fixture) client(t *testing.T, cfg string) *Client {
	t.Helper()
	c := New(f.root, f.opts, f.env())
	if err := c.SetConfig(cfg); err != nil {
		t.Fatalf("SetConfig: %v", err)
	}
	return c
}

func (f *fixture) path(rel string) string {
	return filepath.Join(f.root, filepath.FromSlash(rel))
}

func (f *fixture) deps(solution, text string) {
	f.host.files[f.path(solution+"/DEPS")] = text
}

func (f *fixture) checkouts() []string {
	var out []string
	for _, c := range f.vcs.calls {
		if strings.HasPrefix(c, "checkout ") {
			out = append(out, c)
		}
	}
	return out
}
