package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gclient-go/gclient/internal/logging"
	"github.com/gclient-go/gclient/pkg/gclient"
)

// workDir is where the root configuration lookup starts. Empty means the
// process working directory.
var workDir string

// settings builds the invocation settings from the environment defaults and
// the global flags.
func settings() gclient.Settings {
	s := gclient.Defaults()
	s.Verbose = verbosity
	s.Force = force
	s.Head = head
	s.NoHooks = noHooks
	s.DeleteUnversionedTrees = deleteUnversioned
	s.Revisions = revisions
	if depsOS != "" {
		s.DepsOS = depsOS
	}
	if configFile != "" {
		s.ConfigFilename = configFile
	}
	if depsFile != "" {
		s.DepsFile = depsFile
	}
	if rootCmd.PersistentFlags().Changed("manually-grab-svn-rev") {
		s.ManuallyGrabSVNRev = manuallyGrabRev
	}
	return s
}

// loadClient locates the root configuration and opens a client for it.
func loadClient(cmd *cobra.Command) (*gclient.Client, error) {
	return gclient.New(gclient.Options{
		Dir:      workDir,
		Settings: settings(),
		Out:      cmd.OutOrStdout(),
	})
}

// runVerb opens the client and applies fn, logging the outcome.
func runVerb(cmd *cobra.Command, name string, fn func(*gclient.Client) ([]gclient.Entry, error)) error {
	client, err := loadClient(cmd)
	if err != nil {
		return err
	}
	logger := logging.GetLogger("cmd")
	entries, err := fn(client)
	if err != nil {
		var conflict *gclient.ConflictingRevisionError
		if errors.As(err, &conflict) {
			logger.Info().Str("detail", conflict.Detail()).Msg("conflicting pins")
		}
		return err
	}
	logger.Info().Str("verb", name).Int("entries", len(entries)).Str("root", client.Root()).Msg("done")
	return nil
}

// info prints a line to stdout.
func info(format string, args ...any) {
	fmt.Printf(format+"\n", args...)
}
