package commands

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/holster/internal/errors"
	"github.com/thoreinstein/holster/internal/registry"
	"github.com/thoreinstein/holster/internal/server"
)

func init() {
	serverCmd.AddCommand(serverEnableCmd)
	serverCmd.AddCommand(serverDisableCmd)
}

var serverEnableCmd = &cobra.Command{
	Use:   "enable [name...]",
	Short: "Move servers to the active bucket",
	Long: `Move one or more inactive servers back to the active bucket.

Every named server must currently be inactive; if any name is unknown or
already active, nothing is changed. With no names, a fuzzy picker over the
inactive servers opens.

Examples:
  # Restore a parked server
  holster server enable weather

  # Restore several at once (all or nothing)
  holster server enable weather github

  # Pick interactively
  holster server enable`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServerSetStatus(cmd, args, true, os.Stdout)
	},
}

var serverDisableCmd = &cobra.Command{
	Use:   "disable [name...]",
	Short: "Park servers in the inactive bucket",
	Long: `Move one or more active servers to the inactive bucket.

The servers keep their full configuration and can be restored with
'holster server enable'. Every named server must currently be active; if
any name is unknown or already inactive, nothing is changed. With no
names, a fuzzy picker over the active servers opens.

Examples:
  # Park a server without losing its config
  holster server disable weather

  # Pick interactively
  holster server disable`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServerSetStatus(cmd, args, false, os.Stdout)
	},
}

func runServerSetStatus(cmd *cobra.Command, names []string, active bool, w io.Writer) error {
	reg, err := openRegistryForWrite(commandLogger(cmd.Context()))
	if err != nil {
		return err
	}

	if len(names) == 0 {
		names, err = pickServers(reg, active)
		if err != nil {
			return err
		}
		if len(names) == 0 {
			fmt.Fprintln(w, "Nothing selected")
			return nil
		}
	}

	if err := reg.SetStatus(names, active); err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return errors.NewUserError(err, "run 'holster server list' to see both buckets")
		}
		return err
	}

	verb := "Enabled"
	if !active {
		verb = "Disabled"
	}
	for _, name := range names {
		fmt.Fprintf(w, "%s %s%s%s\n", verb, colorGreen, name, colorReset)
	}
	return nil
}

// pickServers opens a fuzzy multi-select over the bucket the move draws from.
func pickServers(reg *registry.Registry, enabling bool) ([]string, error) {
	activeSet, inactiveSet, err := reg.List()
	if err != nil {
		return nil, err
	}

	pool := activeSet
	if enabling {
		pool = inactiveSet
	}
	if len(pool) == 0 {
		return nil, errors.NewUserError(nil, "no servers available to move")
	}

	candidates := make([]*server.Server, 0, len(pool))
	for _, s := range pool {
		candidates = append(candidates, s)
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].Name < candidates[j].Name
	})

	picked, err := fuzzyfinder.FindMulti(
		candidates,
		func(i int) string {
			return candidates[i].Name
		},
		fuzzyfinder.WithPreviewWindow(func(i, width, height int) string {
			if i == -1 {
				return ""
			}
			s := candidates[i]
			return fmt.Sprintf("Name: %s\nCommand: %s\nArgs: %v", s.Name, s.Command, s.Args)
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return nil, nil
		}
		return nil, err
	}

	names := make([]string, len(picked))
	for i, idx := range picked {
		names[i] = candidates[idx].Name
	}
	return names, nil
}
