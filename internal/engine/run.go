package engine

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"strings"

	"github.com/gclient-go/gclient/internal/config"
	"github.com/gclient-go/gclient/internal/entries"
	"github.com/gclient-go/gclient/internal/logging"
	"github.com/gclient-go/gclient/internal/manifest"
	"github.com/gclient-go/gclient/internal/sandbox"
	"github.com/gclient-go/gclient/internal/scm"
)

// Entry is one resolved checkout.
type Entry struct {
	Path     string
	URL      string
	Revision string
}

// resetter is implemented by adapters that memoize lookups across calls.
type resetter interface {
	Reset()
}

// resolution is the state of one RunOnDeps invocation.
type resolution struct {
	verb    scm.Verb
	args    []string
	pins    map[string]string
	osNames []string
	box     *sandbox.Sandbox

	entries []Entry
	index   map[string]int
	files   []string
	hooks   []manifest.Hook
}

func (r *resolution) add(e Entry) {
	if _, ok := r.index[e.Path]; ok {
		return
	}
	r.index[e.Path] = len(r.entries)
	r.entries = append(r.entries, e)
}

func (r *resolution) lookup(p string) (Entry, bool) {
	i, ok := r.index[p]
	if !ok {
		return Entry{}, false
	}
	return r.entries[i], true
}

// RunOnDeps runs command over every solution and dependency and records the
// resulting paths.
func (c *Client) RunOnDeps(ctx context.Context, command string, args []string) ([]Entry, error) {
	logger := logging.GetLogger("engine")

	verb, err := scm.ParseVerb(command)
	if err != nil {
		return nil, err
	}
	if len(c.solutions) == 0 {
		return nil, NoSolutionsError{}
	}
	pins, err := parsePins(c.Options.Revisions, c.solutions)
	if err != nil {
		return nil, err
	}
	osNames, err := config.DepsOSNames(c.Options.Platform, c.Options.DepsOS)
	if err != nil {
		return nil, &config.ConfigError{Msg: "invalid deps os", Err: err}
	}
	box, err := sandbox.New(c.RootDir)
	if err != nil {
		return nil, &config.ConfigError{Path: c.RootDir, Msg: "invalid root", Err: err}
	}

	if cache, ok := c.env.VCS.(resetter); ok {
		cache.Reset()
	}

	store := entries.NewStore(c.EntriesPath(), c.env.Host)
	firstRun := !store.Exists()

	r := &resolution{
		verb:    verb,
		args:    args,
		pins:    pins,
		osNames: osNames,
		box:     box,
		index:   make(map[string]int),
	}
	if root, err := manifest.DecodeManifest(c.doc); err == nil {
		r.hooks = append(r.hooks, root.Hooks...)
	} else {
		return nil, &config.ConfigError{Path: c.ConfigPath(), Msg: "invalid hooks", Err: err}
	}

	logger.Info().Str("verb", command).Int("solutions", len(c.solutions)).Bool("firstRun", firstRun).Msg("resolving")
	for _, sol := range c.solutions {
		if err := c.runSolution(ctx, r, sol); err != nil {
			return nil, err
		}
	}

	// Only a syncing verb may create the record; its absence marks the first sync.
	if verb.Syncs() || !firstRun {
		recorded, err := c.handleOrphans(ctx, r, store)
		if err != nil {
			return nil, err
		}
		if err := store.Save(recorded); err != nil {
			return nil, err
		}
	}

	if err := c.runHooks(ctx, r, firstRun); err != nil {
		return nil, err
	}
	return r.entries, nil
}

func (c *Client) runSolution(ctx context.Context, r *resolution, sol manifest.Solution) error {
	if sol.URL == "" {
		return nil
	}
	if _, err := r.box.Check(sol.Name); err != nil {
		return &config.ConfigError{Path: c.ConfigPath(), Msg: "invalid solution name", Err: err}
	}

	pin := r.pins[sol.Name]
	if pin == "" && sol.SafesyncURL != "" && !c.Options.Head && r.verb == scm.VerbUpdate && c.env.Safesync != nil {
		rev, err := c.env.Safesync.Revision(ctx, sol.SafesyncURL)
		if err != nil {
			return err
		}
		pin = rev
	}

	solDriver := c.driver(sol.URL, sol.Name)
	if err := c.sync(ctx, r, solDriver, pin); err != nil {
		return err
	}
	r.add(Entry{Path: sol.Name, URL: scm.WithRevision(sol.URL, pin), Revision: pin})

	depsPath := filepath.Join(c.RootDir, sol.Name, c.Options.DepsFile)
	data, err := c.env.Host.ReadFile(depsPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading %s: %w", depsPath, err)
	}

	m, err := manifest.ParseManifest(string(data), sol.CustomVars)
	if err != nil {
		return fmt.Errorf("%s: %w", depsPath, err)
	}
	r.hooks = append(r.hooks, m.Hooks...)

	for _, dep := range mergeDeps(m, sol, r.osNames) {
		depPath := dep.path
		if m.UseRelativePaths {
			depPath = path.Join(sol.Name, depPath)
		}
		if _, err := r.box.Check(depPath); err != nil {
			return &config.ConfigError{Path: depsPath, Msg: "invalid dependency path", Err: err}
		}

		url := dep.url
		if prev, ok := r.lookup(depPath); ok {
			url = prev.URL
		} else if scm.IsRelativeURL(url) {
			url = solDriver.FullURLForRelativeURL(url)
		}

		rev := r.pins[depPath]
		if err := c.sync(ctx, r, c.driver(url, depPath), rev); err != nil {
			return err
		}
		r.add(Entry{Path: depPath, URL: url, Revision: rev})
	}
	return nil
}

func (c *Client) sync(ctx context.Context, r *resolution, d *scm.Driver, rev string) error {
	files, err := d.Run(ctx, r.verb, c.scmOptions(rev), r.args)
	if err != nil {
		return err
	}
	for _, f := range files {
		r.files = append(r.files, relativize(c.RootDir, f))
	}
	return nil
}

type resolvedDep struct {
	path string
	url  string
}

// mergeDeps overlays the selected deps_os mappings and then custom_deps on
// the manifest's deps, dropping excluded paths.
func mergeDeps(m *manifest.Manifest, sol manifest.Solution, osNames []string) []resolvedDep {
	merged := m.Deps.Clone()
	for _, name := range osNames {
		if osDeps, ok := m.DepsOS[name]; ok {
			merged.Overlay(osDeps)
		}
	}
	merged.Overlay(sol.CustomDeps)

	var out []resolvedDep
	for _, p := range merged.Paths() {
		dep, _ := merged.Get(p)
		if dep.Absent {
			continue
		}
		out = append(out, resolvedDep{path: p, url: dep.URL})
	}
	return out
}

// parsePins maps "path@rev" pins to a path-to-revision table. A bare revision
// pins the first solution.
func parsePins(revisions []string, sols []manifest.Solution) (map[string]string, error) {
	pins := make(map[string]string, len(revisions))
	for _, r := range revisions {
		p, rev := sols[0].Name, r
		if i := strings.LastIndex(r, "@"); i >= 0 {
			p, rev = r[:i], r[i+1:]
		}
		if prev, ok := pins[p]; ok && prev != rev {
			return nil, &ConflictingRevisionError{Path: p, Revisions: []string{prev, rev}}
		}
		pins[p] = rev
	}
	return pins, nil
}

// handleOrphans returns the paths to record: every resolved entry plus the
// previously recorded paths that still exist and were kept.
func (c *Client) handleOrphans(ctx context.Context, r *resolution, store *entries.Store) ([]string, error) {
	recorded := make([]string, 0, len(r.entries))
	for _, e := range r.entries {
		recorded = append(recorded, e.Path)
	}

	prev, err := store.Load()
	if err != nil {
		logger := logging.GetLogger("engine")
		logger.Warn().Err(err).Msg("ignoring unreadable entries record")
		return recorded, nil
	}

	for _, p := range prev {
		if _, ok := r.index[p]; ok {
			continue
		}
		dir := filepath.Join(c.RootDir, filepath.FromSlash(p))
		if !c.env.Host.Exists(dir) {
			continue
		}
		if r.verb != scm.VerbUpdate {
			recorded = append(recorded, p)
			continue
		}

		keep := !c.Options.DeleteUnversionedTrees
		if !keep && !c.Options.Force {
			modified, err := c.modified(ctx, dir)
			if err != nil {
				return nil, err
			}
			keep = modified
		}
		if keep {
			recorded = append(recorded, p)
			c.printf("\nWARNING: \"%s\" is no longer part of this client.  It is recommended that you manually remove it.\n", p)
			continue
		}
		c.printf("\n________ deleting '%s' in '%s'\n", p, c.RootDir)
		if err := c.env.Host.RemoveAll(dir); err != nil {
			return nil, fmt.Errorf("removing %s: %w", dir, err)
		}
	}
	return recorded, nil
}

func (c *Client) modified(ctx context.Context, dir string) (bool, error) {
	if c.env.Host.Exists(filepath.Join(dir, ".git")) {
		return true, nil
	}
	st, err := c.env.VCS.Status(ctx, dir)
	if err != nil {
		return false, err
	}
	for _, e := range st {
		if e.Modified() {
			return true, nil
		}
	}
	return false, nil
}

// relativize strips root from an absolute file path reported by the tool.
func relativize(root, file string) string {
	if !filepath.IsAbs(file) {
		return filepath.ToSlash(file)
	}
	rel, err := filepath.Rel(root, file)
	if err != nil || strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(file)
	}
	return filepath.ToSlash(rel)
}
