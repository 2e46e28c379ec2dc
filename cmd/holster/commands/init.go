package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/holster/internal/config"
	"github.com/thoreinstein/holster/internal/errors"
	"github.com/thoreinstein/holster/internal/paths"
	"github.com/thoreinstein/holster/internal/store"
	"github.com/thoreinstein/holster/pkg/fileutil"
)

var initForce bool

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite existing configuration")
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize holster configuration",
	Long: `Write a starter holster config file and create the managed store.

Creates ~/.config/holster/config.yaml with default values (store path,
scan depth, scan timeout) and ensures the managed config file exists with
empty server buckets. An existing managed config file is never touched.`,
	Example: `  # Initialize with defaults
  holster init

  # Overwrite an existing holster config
  holster init --force`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runInit(os.Stdout)
	},
}

func runInit(w io.Writer) error {
	configPath := filepath.Join(paths.AppConfigDir(), "config.yaml")

	if _, err := os.Stat(configPath); err == nil && !initForce {
		fmt.Fprintf(w, "Configuration already exists at %s\n", configPath)
		fmt.Fprintln(w, "Use --force to overwrite")
		return nil
	}

	if err := paths.EnsureDir(paths.AppConfigDir(), 0o755); err != nil {
		return errors.NewSystemError(err, "check permissions on the config directory")
	}

	defaults := config.DefaultConfig()
	if storePath != "" {
		// A --store override belongs in the generated config too, so later
		// runs without the flag keep using the same store.
		defaults.StorePath = storePath
	}
	if err := fileutil.AtomicWriteYAML(configPath, defaults); err != nil {
		return errors.NewSystemError(err, "check permissions on the config directory")
	}
	fmt.Fprintf(w, "Wrote %s%s%s\n", colorGreen, configPath, colorReset)

	// Opening the store creates it with empty buckets if missing and
	// leaves an existing file alone.
	st := store.New(defaults.StorePath)
	if err := st.Open(); err != nil {
		return err
	}
	fmt.Fprintf(w, "Store ready at %s\n", st.Path())

	return nil
}
