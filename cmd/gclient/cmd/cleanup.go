package cmd

import (
	"github.com/spf13/cobra"

	"github.com/gclient-go/gclient/pkg/gclient"
)

var cleanupCmd = &cobra.Command{
	Use:   "cleanup [-- svn-args...]",
	Short: "Release stale working-copy locks of every checkout",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runVerb(cmd, "cleanup", func(c *gclient.Client) ([]gclient.Entry, error) {
			return c.Cleanup(cmd.Context(), args...)
		})
	},
}

func init() {
	rootCmd.AddCommand(cleanupCmd)
}
