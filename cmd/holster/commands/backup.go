package commands

import "github.com/spf13/cobra"

func init() {
	rootCmd.AddCommand(backupCmd)
}

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Manage snapshots of the managed config file",
	Long: `Manage point-in-time snapshots of the managed config file.

Holster takes a snapshot automatically before the first mutation of each
session, so a bad batch of changes can always be rolled back. Snapshots
live in a ` + "`.holster-backups`" + ` directory next to the managed file and old
ones are pruned automatically.`,
	Example: `  # Take a snapshot now
  holster backup create

  # See what can be restored
  holster backup list

  # Roll back to the newest snapshot
  holster backup restore

  # Roll back to a specific snapshot
  holster backup restore 20260830T142501`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}
