// Package gclient provides the public Go library API for gclient.
//
// gclient manages a client directory made of several independently
// versioned checkouts. A root configuration names the top-level solutions;
// each solution's DEPS manifest names further checkouts to place alongside
// it. This package exposes a Client that drives those checkouts.
//
// # Basic Usage
//
//	err := gclient.Configure(gclient.Options{Dir: "/work/chrome"},
//	    "svn://svn.example.org/trunk/src", "")
//
//	client, err := gclient.New(gclient.Options{Dir: "/work/chrome"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Check out or update every solution and dependency
//	entries, err := client.Update(ctx)
//
//	// Report what every checkout is synced to
//	infos, err := client.RevInfo(ctx)
package gclient

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gclient-go/gclient/internal/config"
	"github.com/gclient-go/gclient/internal/engine"
	"github.com/gclient-go/gclient/internal/host"
	"github.com/gclient-go/gclient/internal/safesync"
	"github.com/gclient-go/gclient/internal/scm"
	"github.com/gclient-go/gclient/internal/svn"
)

// Options configures a gclient client.
type Options struct {
	// Dir is where the lookup for the root configuration starts. The nearest
	// ancestor holding one becomes the client root. Default: the working
	// directory.
	Dir string

	// Settings are the switches of the invocation. Zero-valued names and
	// durations are filled from Defaults.
	Settings Settings

	// Out receives the operator-facing output of checkouts and hooks.
	// Default: os.Stdout.
	Out io.Writer
}

// Client is the main entry point for the gclient library.
type Client struct {
	eng *engine.Client
}

// Defaults returns the built-in settings overlaid with GCLIENT_* environment
// variables and any .env file in the working directory.
func Defaults() Settings {
	return config.Defaults()
}

// New locates the root configuration above opts.Dir and returns a client for
// it. It fails with a NotConfiguredError when there is none.
func New(opts Options) (*Client, error) {
	opts, err := normalize(opts)
	if err != nil {
		return nil, err
	}
	env, err := newEnv(opts.Settings, opts.Out)
	if err != nil {
		return nil, err
	}
	return open(opts, env)
}

func open(opts Options, env engine.Env) (*Client, error) {
	eng, err := engine.LoadCurrentConfig(opts.Settings, opts.Dir, env)
	if err != nil {
		return nil, err
	}
	if eng == nil {
		return nil, config.NotConfiguredError{}
	}
	return &Client{eng: eng}, nil
}

// Configure writes a root configuration into opts.Dir. Settings.Spec, when
// set, is written verbatim after it evaluates cleanly; otherwise a single
// solution named after the last segment of url is generated. An existing
// configuration is never overwritten.
func Configure(opts Options, url, safesyncURL string) error {
	opts, err := normalize(opts)
	if err != nil {
		return err
	}
	s := opts.Settings
	if s.Spec == "" && url == "" {
		return fmt.Errorf("required argument missing; see 'gclient help config'")
	}

	fs := host.OSHost{}
	c := engine.New(opts.Dir, s, engine.Env{Host: fs, Out: opts.Out})
	if fs.Exists(c.ConfigPath()) {
		return fmt.Errorf("%s file already exists in the current directory", s.ConfigFilename)
	}

	if s.Spec != "" {
		err = c.SetConfig(s.Spec)
	} else {
		err = c.SetDefaultConfig(config.SolutionNameFromURL(url), url, safesyncURL)
	}
	if err != nil {
		return err
	}
	return c.SaveConfig()
}

// Root returns the client root directory.
func (c *Client) Root() string {
	return c.eng.RootDir
}

// Solutions returns the names of the configured solutions in order.
func (c *Client) Solutions() []string {
	sols := c.eng.Solutions()
	names := make([]string, len(sols))
	for i, s := range sols {
		names[i] = s.Name
	}
	return names
}

// Update checks out or updates every solution and dependency.
func (c *Client) Update(ctx context.Context) ([]Entry, error) {
	return c.eng.RunOnDeps(ctx, "update", nil)
}

// Status reports local modifications of every checkout.
func (c *Client) Status(ctx context.Context, args ...string) ([]Entry, error) {
	return c.eng.RunOnDeps(ctx, "status", args)
}

// Diff prints local differences of every checkout.
func (c *Client) Diff(ctx context.Context, args ...string) ([]Entry, error) {
	return c.eng.RunOnDeps(ctx, "diff", args)
}

// Revert discards local modifications of every checkout.
func (c *Client) Revert(ctx context.Context) ([]Entry, error) {
	return c.eng.RunOnDeps(ctx, "revert", nil)
}

// Cleanup releases stale working-copy locks of every checkout.
func (c *Client) Cleanup(ctx context.Context, args ...string) ([]Entry, error) {
	return c.eng.RunOnDeps(ctx, "cleanup", args)
}

// RunHooks runs every hook regardless of which files changed.
func (c *Client) RunHooks(ctx context.Context) ([]Entry, error) {
	prev := c.eng.Options.Force
	c.eng.Options.Force = true
	defer func() { c.eng.Options.Force = prev }()
	return c.eng.RunOnDeps(ctx, "runhooks", nil)
}

// RevInfo reports the URL and revision every present checkout is synced to.
func (c *Client) RevInfo(ctx context.Context) ([]RevInfo, error) {
	return c.eng.RevInfo(ctx)
}

// WriteRevInfo renders a RevInfo report as text or YAML.
func WriteRevInfo(w io.Writer, infos []RevInfo, asYAML bool) error {
	return engine.WriteRevInfo(w, infos, asYAML)
}

func normalize(opts Options) (Options, error) {
	if opts.Dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return opts, fmt.Errorf("resolving working directory: %w", err)
		}
		opts.Dir = wd
	}
	abs, err := filepath.Abs(opts.Dir)
	if err != nil {
		return opts, fmt.Errorf("resolving %s: %w", opts.Dir, err)
	}
	opts.Dir = abs

	if opts.Out == nil {
		opts.Out = os.Stdout
	}

	s := &opts.Settings
	d := Defaults()
	if s.ConfigFilename == "" {
		s.ConfigFilename = d.ConfigFilename
	}
	if s.EntriesFilename == "" {
		s.EntriesFilename = d.EntriesFilename
	}
	if s.DepsFile == "" {
		s.DepsFile = d.DepsFile
	}
	if s.SCM == "" {
		s.SCM = d.SCM
	}
	if s.Platform == "" {
		s.Platform = d.Platform
	}
	if s.SafesyncTimeout == 0 {
		s.SafesyncTimeout = d.SafesyncTimeout
	}

	if errs := config.Validate(s); len(errs) > 0 {
		return opts, &config.ValidationError{Errors: errs}
	}
	return opts, nil
}

// newEnv wires the production adapters: the svn command-line tool behind a
// remote info cache, the local filesystem, and an HTTP safesync fetcher.
func newEnv(s Settings, out io.Writer) (engine.Env, error) {
	runner := host.NewExecRunner(out)

	cached, err := scm.NewCachedVCS(svn.New(runner))
	if err != nil {
		return engine.Env{}, fmt.Errorf("initializing info cache: %w", err)
	}
	reg := scm.NewRegistry()
	reg.Register("svn", cached)

	vcs, err := reg.Get(s.SCM)
	if err != nil {
		return engine.Env{}, err
	}

	return engine.Env{
		Host:     host.OSHost{},
		VCS:      vcs,
		Runner:   runner,
		Safesync: &safesync.Fetcher{Timeout: s.SafesyncTimeout},
		Out:      out,
	}, nil
}
