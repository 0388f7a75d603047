package cmd

import (
	"github.com/spf13/cobra"

	"github.com/gclient-go/gclient/pkg/gclient"
)

var configSpec string

var configCmd = &cobra.Command{
	Use:   "config URL [SAFESYNC_URL]",
	Short: "Create a .gclient file in the current directory",
	Long: `Creates a root configuration with a single solution named after the last
path segment of URL. SAFESYNC_URL, when given, is polled on update for the
revision the solution should be synced to.

With --spec the given text is written verbatim instead, after checking that
it evaluates to a valid configuration. An existing file is never overwritten.`,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s := settings()
		s.Spec = configSpec

		var url, safesyncURL string
		if len(args) > 0 {
			url = args[0]
		}
		if len(args) > 1 {
			safesyncURL = args[1]
		}

		return gclient.Configure(gclient.Options{Dir: workDir, Settings: s, Out: cmd.OutOrStdout()}, url, safesyncURL)
	},
}

func init() {
	configCmd.Flags().StringVar(&configSpec, "spec", "", "literal root configuration text to write")
	rootCmd.AddCommand(configCmd)
}
