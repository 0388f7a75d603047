package cmd

import (
	"github.com/spf13/cobra"

	"github.com/gclient-go/gclient/pkg/gclient"
)

var updateCmd = &cobra.Command{
	Use:     "update",
	Aliases: []string{"sync"},
	Short:   "Check out or update every solution and dependency",
	Long: `Brings every solution to its pinned revision (or the tip), reads each
solution's DEPS, and checks out or updates every dependency for the current
platform. Checkouts dropped from the client are reported, or deleted with
--delete_unversioned_trees when they have no local changes. Hooks run
afterwards unless --nohooks is given.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runVerb(cmd, "update", func(c *gclient.Client) ([]gclient.Entry, error) {
			return c.Update(cmd.Context())
		})
	},
}

func init() {
	rootCmd.AddCommand(updateCmd)
}
