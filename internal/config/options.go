// Package config holds the invocation options and the root configuration
// helpers shared by the CLI and the library API.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultConfigFilename  = ".gclient"
	DefaultEntriesFilename = ".gclient_entries"
	DefaultDepsFile        = "DEPS"
	DefaultSCM             = "svn"
	DefaultSafesyncTimeout = 30 * time.Second
)

// Options are the switches of one invocation.
type Options struct {
	ConfigFilename  string
	EntriesFilename string
	DepsFile        string
	SCM             string

	Verbose int
	Force   bool
	Head    bool
	NoHooks bool

	// DeleteUnversionedTrees removes clean checkouts that are no longer part
	// of the client instead of only warning about them.
	DeleteUnversionedTrees bool

	// ManuallyGrabSVNRev resolves the live head revision before updating an
	// unpinned checkout.
	ManuallyGrabSVNRev bool

	// Revisions are "path@rev" or bare "rev" pins.
	Revisions []string

	// DepsOS is a comma-separated list of deps_os keys overriding the host
	// classification. "all" selects every known key.
	DepsOS string

	// Spec is literal root configuration text for the config verb.
	Spec string

	Platform        string
	SafesyncTimeout time.Duration
}

// Defaults returns the built-in options overlaid with environment settings.
// A .env file in the working directory is loaded first if present; it never
// overrides variables already set.
func Defaults() Options {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds options from the built-in defaults and getenv lookups.
func FromEnv(getenv func(string) string) Options {
	get := func(key string) string { return strings.TrimSpace(getenv(key)) }

	opts := Options{
		ConfigFilename:     firstNonEmpty(get("GCLIENT_CONFIG"), DefaultConfigFilename),
		EntriesFilename:    firstNonEmpty(get("GCLIENT_ENTRIES"), DefaultEntriesFilename),
		DepsFile:           firstNonEmpty(get("GCLIENT_DEPS_FILE"), DefaultDepsFile),
		SCM:                firstNonEmpty(get("GCLIENT_SCM"), DefaultSCM),
		DepsOS:             get("GCLIENT_DEPS_OS"),
		ManuallyGrabSVNRev: true,
		Platform:           runtime.GOOS,
		SafesyncTimeout:    DefaultSafesyncTimeout,
	}
	if v := get("GCLIENT_MANUALLY_GRAB_SVN_REV"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			opts.ManuallyGrabSVNRev = b
		}
	}
	if v := get("GCLIENT_SAFESYNC_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			opts.SafesyncTimeout = d
		}
	}
	return opts
}

// ValidationError holds multiple validation failures.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid options:\n  - %s", strings.Join(e.Errors, "\n  - "))
}

// Validate checks options for semantic correctness.
// Returns a list of validation error messages (empty if valid).
func Validate(opts *Options) []string {
	var errs []string

	for _, f := range []struct{ name, value string }{
		{"config file", opts.ConfigFilename},
		{"entries file", opts.EntriesFilename},
		{"deps file", opts.DepsFile},
	} {
		switch {
		case f.value == "":
			errs = append(errs, fmt.Sprintf("%s name is required", f.name))
		case filepath.Base(f.value) != f.value:
			errs = append(errs, fmt.Sprintf("%s '%s' must be a bare file name", f.name, f.value))
		}
	}

	if opts.SCM == "" {
		errs = append(errs, "scm is required")
	}

	for _, r := range opts.Revisions {
		if r == "" || strings.HasSuffix(r, "@") || strings.HasPrefix(r, "@") {
			errs = append(errs, fmt.Sprintf("revision '%s' must be 'path@rev' or 'rev'", r))
		}
	}

	if _, err := DepsOSNames(opts.Platform, opts.DepsOS); err != nil {
		errs = append(errs, err.Error())
	}

	if opts.SafesyncTimeout < 0 {
		errs = append(errs, "safesync timeout must not be negative")
	}
	return errs
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
