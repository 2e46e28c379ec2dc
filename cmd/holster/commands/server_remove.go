package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/holster/internal/errors"
)

var serverRemoveForce bool

func init() {
	serverRemoveCmd.Flags().BoolVarP(&serverRemoveForce, "force", "f", false,
		"skip the confirmation prompt")
	serverCmd.AddCommand(serverRemoveCmd)
}

var serverRemoveCmd = &cobra.Command{
	Use:     "remove <name>...",
	Aliases: []string{"rm"},
	Short:   "Delete servers from both buckets",
	Long: `Delete one or more servers permanently, whichever bucket holds them.

Every named server must exist; if any name is unknown, nothing is deleted.
To park a server without losing its configuration, use
'holster server disable' instead.

Examples:
  holster server remove weather
  holster server remove weather github --force`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServerRemove(cmd, args, cmd.InOrStdin(), os.Stdout)
	},
}

func runServerRemove(cmd *cobra.Command, names []string, in io.Reader, w io.Writer) error {
	if !serverRemoveForce {
		fmt.Fprintf(w, "Delete %s? [y/N] ", strings.Join(names, ", "))
		line, _ := bufio.NewReader(in).ReadString('\n')
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
		default:
			fmt.Fprintln(w, "Aborted")
			return nil
		}
	}

	reg, err := openRegistryForWrite(commandLogger(cmd.Context()))
	if err != nil {
		return err
	}

	if err := reg.Delete(names); err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return errors.NewUserError(err, "run 'holster server list' to see registered names")
		}
		return err
	}

	for _, name := range names {
		fmt.Fprintf(w, "Removed %s\n", name)
	}
	return nil
}
