package scm

import (
	"context"
	"fmt"
	"os"
	"strings"
)

type call struct {
	Op   string
	Args []string
	Dir  string
}

type fakeVCS struct {
	infos    map[string]*Info
	statuses map[string][]StatusEntry
	files    []string
	calls    []call
}

func newFakeVCS() *fakeVCS {
	return &fakeVCS{infos: map[string]*Info{}, statuses: map[string][]StatusEntry{}}
}

func (f *fakeVCS) Info(_ context.Context, target, dir string) (*Info, error) {
	f.calls = append(f.calls, call{Op: "info", Args: []string{target}, Dir: dir})
	info, ok := f.infos[target]
	if !ok {
		return nil, fmt.Errorf("no info for %s", target)
	}
	cp := *info
	return &cp, nil
}

func (f *fakeVCS) Status(_ context.Context, dir string) ([]StatusEntry, error) {
	f.calls = append(f.calls, call{Op: "status", Dir: dir})
	return f.statuses[dir], nil
}

func (f *fakeVCS) Run(_ context.Context, args []string, dir string) error {
	f.calls = append(f.calls, call{Op: "run", Args: args, Dir: dir})
	return nil
}

func (f *fakeVCS) RunAndGetFileList(_ context.Context, args []string, dir string) ([]string, error) {
	f.calls = append(f.calls, call{Op: "list", Args: args, Dir: dir})
	return f.files, nil
}

func (f *fakeVCS) ops() []string {
	out := make([]string, len(f.calls))
	for i, c := range f.calls {
		out[i] = c.Op + " " + strings.Join(c.Args, " ")
	}
	return out
}

type fakeHost struct {
	files   map[string][]byte
	dirs    map[string]bool
	removed []string
}

func newFakeHost(dirs ...string) *fakeHost {
	h := &fakeHost{files: map[string][]byte{}, dirs: map[string]bool{}}
	for _, d := range dirs {
		h.dirs[d] = true
	}
	return h
}

func (h *fakeHost) ReadFile(path string) ([]byte, error) {
	data, ok := h.files[path]
	if !ok {
		return nil, &os.PathError{Op: "open", Path: path, Err: os.ErrNotExist}
	}
	return data, nil
}

func (h *fakeHost) WriteFile(path string, data []byte, _ os.FileMode) error {
	h.files[path] = data
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
	delete(h.files, path)
	delete(h.dirs, path)
	return nil
}
