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
	backupCmd.AddCommand(backupCreateCmd)
}

var backupCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Take a snapshot of the managed config file",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return runBackupCreate(os.Stdout)
	},
}

func runBackupCreate(w io.Writer) error {
	path := resolveStorePath()
	if _, err := os.Stat(path); err != nil {
		return errors.NewUserError(err, "nothing to snapshot; the managed file does not exist yet")
	}

	snap, err := backup.NewManager().Snapshot(path)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Snapshot %s%s%s (%d bytes)\n", colorGreen, snap.ID, colorReset, snap.Size)
	return nil
}
