package cmd

import (
	"github.com/spf13/cobra"

	"github.com/gclient-go/gclient/pkg/gclient"
)

var statusCmd = &cobra.Command{
	Use:   "status [-- svn-args...]",
	Short: "Show local modifications of every checkout",
	Long: `Runs the status command of the version-control tool in every checkout.
Arguments after -- are passed through unchanged.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runVerb(cmd, "status", func(c *gclient.Client) ([]gclient.Entry, error) {
			return c.Status(cmd.Context(), args...)
		})
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
