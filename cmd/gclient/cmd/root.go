package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gclient-go/gclient/internal/logging"
)

// Build-time variables set via -ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Global flags.
var (
	verbosity         int
	force             bool
	head              bool
	noHooks           bool
	deleteUnversioned bool
	manuallyGrabRev   bool
	noColor           bool
	revisions         []string
	depsOS            string
	configFile        string
	depsFile          string
)

var rootCmd = &cobra.Command{
	Use:   "gclient",
	Short: "Meta checkout manager for multi-repository clients",
	Long: `gclient manages a client directory made of several independently versioned
checkouts. The root configuration (.gclient) names the top-level solutions;
each solution's DEPS manifest names further checkouts to place alongside it.

Every verb walks up from the current directory to the nearest .gclient and
applies itself to all solutions and their dependencies.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(verbosity, noColor)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("gclient %s\n", version)
		fmt.Printf("  commit:  %s\n", commit)
		fmt.Printf("  built:   %s\n", date)
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.CountVarP(&verbosity, "verbose", "v", "increase output verbosity (-v, -vv, -vvv)")
	pf.BoolVar(&force, "force", false, "update even when a checkout is already at the requested revision, and run every hook")
	pf.BoolVarP(&head, "head", "H", false, "ignore safesync_url and sync to the tip of every solution")
	pf.StringArrayVarP(&revisions, "revision", "r", nil, "pin a path to a revision as path@rev, or the first solution as rev (repeatable)")
	pf.StringVar(&depsOS, "deps", "", "comma-separated deps_os keys to merge instead of the host's (e.g. win,mac, or all)")
	pf.BoolVar(&noHooks, "nohooks", false, "do not run hooks after updating")
	pf.BoolVar(&deleteUnversioned, "delete_unversioned_trees", false, "delete clean checkouts that are no longer part of the client")
	pf.BoolVar(&manuallyGrabRev, "manually-grab-svn-rev", true, "resolve the live head revision before updating unpinned checkouts")
	pf.StringVar(&configFile, "config-file", "", "name of the root configuration file (default .gclient)")
	pf.StringVar(&depsFile, "deps-file", "", "name of the per-solution manifest file (default DEPS)")
	pf.BoolVar(&noColor, "no-color", false, "disable colored diagnostics")

	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	return nil
}
