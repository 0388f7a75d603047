// Package engine resolves the solutions of a root configuration and their
// dependency manifests into one flat set of checkouts, and drives every
// checkout through the scm state machine.
package engine

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/gclient-go/gclient/internal/config"
	"github.com/gclient-go/gclient/internal/host"
	"github.com/gclient-go/gclient/internal/manifest"
	"github.com/gclient-go/gclient/internal/scm"
)

// RevisionSource yields the safesync revision published at a URL.
type RevisionSource interface {
	Revision(ctx context.Context, url string) (string, error)
}

// Env bundles the capabilities the resolver consumes.
type Env struct {
	Host     scm.Host
	VCS      scm.VCS
	Runner   host.Runner
	Safesync RevisionSource
	Out      io.Writer
}

// Client is a root directory together with its root configuration.
type Client struct {
	RootDir string
	Options config.Options

	env        Env
	configText string
	doc        *manifest.Document
	solutions  []manifest.Solution
}

// New returns a client rooted at rootDir with no configuration loaded.
func New(rootDir string, opts config.Options, env Env) *Client {
	if env.Out == nil {
		env.Out = io.Discard
	}
	return &Client{RootDir: rootDir, Options: opts, env: env}
}

// LoadCurrentConfig walks up from fromDir to the nearest root configuration
// and returns a client for it. It returns nil and no error when none exists.
func LoadCurrentConfig(opts config.Options, fromDir string, env Env) (*Client, error) {
	root, ok := config.FindRoot(fromDir, opts.ConfigFilename, env.Host.Exists)
	if !ok {
		return nil, nil
	}
	c := New(root, opts, env)
	data, err := env.Host.ReadFile(c.ConfigPath())
	if err != nil {
		return nil, &config.ConfigError{Path: c.ConfigPath(), Msg: "reading configuration", Err: err}
	}
	if err := c.SetConfig(string(data)); err != nil {
		return nil, err
	}
	return c, nil
}

// ConfigPath is the location of the root configuration file.
func (c *Client) ConfigPath() string {
	return filepath.Join(c.RootDir, c.Options.ConfigFilename)
}

// EntriesPath is the location of the entries record.
func (c *Client) EntriesPath() string {
	return filepath.Join(c.RootDir, c.Options.EntriesFilename)
}

// SetConfig evaluates text as the root configuration.
func (c *Client) SetConfig(text string) error {
	sols, doc, err := manifest.ParseSolutions(text)
	if err != nil {
		return &config.ConfigError{Path: c.ConfigPath(), Msg: "invalid configuration", Err: err}
	}
	c.configText = text
	c.doc = doc
	c.solutions = sols
	return nil
}

// SetDefaultConfig installs the single-solution template configuration.
func (c *Client) SetDefaultConfig(name, url, safesyncURL string) error {
	text, err := config.RenderDefaultConfig(name, url, safesyncURL)
	if err != nil {
		return err
	}
	return c.SetConfig(text)
}

// ConfigContent returns the configuration text last set.
func (c *Client) ConfigContent() string {
	return c.configText
}

// Solutions returns the solutions in declared order.
func (c *Client) Solutions() []manifest.Solution {
	return c.solutions
}

// GetVar returns a top-level binding of the root configuration.
func (c *Client) GetVar(name string) (manifest.Value, bool) {
	if c.doc == nil {
		return nil, false
	}
	return c.doc.Get(name)
}

// SaveConfig writes the configuration text to the root directory.
func (c *Client) SaveConfig() error {
	if err := c.env.Host.WriteFile(c.ConfigPath(), []byte(c.configText), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", c.ConfigPath(), err)
	}
	return nil
}

func (c *Client) printf(format string, args ...any) {
	fmt.Fprintf(c.env.Out, format, args...)
}

func (c *Client) driver(url, relPath string) *scm.Driver {
	return scm.NewDriver(url, c.RootDir, relPath, c.env.VCS, c.env.Host, c.env.Out)
}

func (c *Client) scmOptions(revision string) scm.Options {
	return scm.Options{
		Verbose:            c.Options.Verbose > 0,
		Force:              c.Options.Force,
		ManuallyGrabSVNRev: c.Options.ManuallyGrabSVNRev,
		Revision:           revision,
	}
}
