package cmd

import (
	"github.com/spf13/cobra"

	"github.com/gclient-go/gclient/pkg/gclient"
)

var diffCmd = &cobra.Command{
	Use:   "diff [-- svn-args...]",
	Short: "Show local differences of every checkout",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runVerb(cmd, "diff", func(c *gclient.Client) ([]gclient.Entry, error) {
			return c.Diff(cmd.Context(), args...)
		})
	},
}

func init() {
	rootCmd.AddCommand(diffCmd)
}
