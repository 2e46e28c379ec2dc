package commands

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/holster/internal/backup"
)

func init() {
	backupCmd.AddCommand(backupListCmd)
}

var backupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List snapshots of the managed config file",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return runBackupList(os.Stdout)
	},
}

func runBackupList(w io.Writer) error {
	snaps, err := backup.NewManager().List(resolveStorePath())
	if err != nil {
		return err
	}

	if len(snaps) == 0 {
		fmt.Fprintln(w, "No snapshots")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%sID%s\t%sCREATED%s\t%sSIZE%s\n",
		colorBold, colorReset,
		colorBold, colorReset,
		colorBold, colorReset)
	for _, snap := range snaps {
		fmt.Fprintf(tw, "%s%s%s\t%s\t%d\n",
			colorGreen, snap.ID, colorReset,
			snap.CreatedAt.Format("2006-01-02 15:04:05"),
			snap.Size)
	}
	return tw.Flush()
}
