package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/holster/internal/backup"
	"github.com/thoreinstein/holster/internal/errors"
)

func init() {
	backupCmd.AddCommand(backupRestoreCmd)
}

var backupRestoreCmd = &cobra.Command{
	Use:   "restore [id]",
	Short: "Restore the managed config file from a snapshot",
	Long: `Overwrite the managed config file with a snapshot's contents.

With no ID, the newest snapshot is restored. Snapshot integrity is
verified before anything is written.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		id := ""
		if len(args) > 0 {
			id = args[0]
		}
		return runBackupRestore(id, os.Stdout)
	},
}

func runBackupRestore(id string, w io.Writer) error {
	snap, err := backup.NewManager().Restore(resolveStorePath(), id)
	if err != nil {
		if errors.Is(err, backup.ErrNoSnapshots) {
			return errors.NewUserError(err, "run 'holster backup list' to see available snapshots")
		}
		return err
	}

	fmt.Fprintf(w, "Restored snapshot %s%s%s from %s\n",
		colorGreen, snap.ID, colorReset, snap.CreatedAt.Format("2006-01-02 15:04:05"))
	return nil
}
