package cmd

import (
	"github.com/spf13/cobra"

	"github.com/gclient-go/gclient/pkg/gclient"
)

var runhooksCmd = &cobra.Command{
	Use:   "runhooks",
	Short: "Run every hook without syncing",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runVerb(cmd, "runhooks", func(c *gclient.Client) ([]gclient.Entry, error) {
			return c.RunHooks(cmd.Context())
		})
	},
}

func init() {
	rootCmd.AddCommand(runhooksCmd)
}
