package cmd

import (
	"github.com/spf13/cobra"

	"github.com/gclient-go/gclient/pkg/gclient"
)

var revertCmd = &cobra.Command{
	Use:   "revert",
	Short: "Discard local modifications of every checkout",
	Long: `Reverts every modified file and deletes unversioned files in every
checkout. Missing checkouts are synced instead. Hooks matching the reverted
files run afterwards unless --nohooks is given.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runVerb(cmd, "revert", func(c *gclient.Client) ([]gclient.Entry, error) {
			return c.Revert(cmd.Context())
		})
	},
}

func init() {
	rootCmd.AddCommand(revertCmd)
}
