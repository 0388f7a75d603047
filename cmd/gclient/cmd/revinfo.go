package cmd

import (
	"github.com/spf13/cobra"

	"github.com/gclient-go/gclient/pkg/gclient"
)

var revinfoYAML bool

var revinfoCmd = &cobra.Command{
	Use:   "revinfo",
	Short: "Print the URL and revision of every checkout",
	Long: `Resolves the dependency set without touching the working tree and prints
"path: url@revision" for every checkout present on disk, sorted by path.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := loadClient(cmd)
		if err != nil {
			return err
		}
		infos, err := client.RevInfo(cmd.Context())
		if err != nil {
			return err
		}
		if len(infos) == 0 {
			info("No checkouts present.")
			return nil
		}
		return gclient.WriteRevInfo(cmd.OutOrStdout(), infos, revinfoYAML)
	},
}

func init() {
	revinfoCmd.Flags().BoolVar(&revinfoYAML, "yaml", false, "print the report as YAML")
	rootCmd.AddCommand(revinfoCmd)
}
