package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/holster/internal/server"
)

var serverListJSON bool

func init() {
	serverListCmd.Flags().BoolVar(&serverListJSON, "json", false, "Output in JSON format")
	serverCmd.AddCommand(serverListCmd)
}

var serverListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered MCP servers",
	Long: `List the servers in both buckets of the managed config file.

Active servers are under mcpServers and get loaded by the MCP client.
Inactive servers are under unusedMcpServers and are ignored by the client
but keep their configuration.

Examples:
  # Tabular output
  holster server list

  # Machine-readable output
  holster server list --json`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runServerList(cmd, os.Stdout)
	},
}

// serverInfoJSON represents one server in JSON output.
type serverInfoJSON struct {
	Name    string   `json:"name"`
	Command string   `json:"command"`
	Args    []string `json:"args"`
	Active  bool     `json:"active"`
}

func runServerList(cmd *cobra.Command, w io.Writer) error {
	reg, err := openRegistry(commandLogger(cmd.Context()))
	if err != nil {
		return err
	}

	active, inactive, err := reg.List()
	if err != nil {
		return err
	}

	if serverListJSON {
		return outputServersJSON(w, active, inactive)
	}
	return outputServersTabular(w, active, inactive)
}

func outputServersJSON(w io.Writer, active, inactive map[string]*server.Server) error {
	infos := make([]serverInfoJSON, 0, len(active)+len(inactive))
	for _, name := range sortedNames(active) {
		infos = append(infos, newServerInfo(active[name], true))
	}
	for _, name := range sortedNames(inactive) {
		infos = append(infos, newServerInfo(inactive[name], false))
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(infos)
}

func newServerInfo(s *server.Server, active bool) serverInfoJSON {
	args := s.Args
	if args == nil {
		args = []string{}
	}
	return serverInfoJSON{
		Name:    s.Name,
		Command: s.Command,
		Args:    args,
		Active:  active,
	}
}

func outputServersTabular(w io.Writer, active, inactive map[string]*server.Server) error {
	if len(active) == 0 && len(inactive) == 0 {
		fmt.Fprintln(w, "No servers registered")
		return nil
	}

	printBucket(w, "Active", active, colorGreen)
	if len(active) > 0 && len(inactive) > 0 {
		fmt.Fprintln(w)
	}
	printBucket(w, "Inactive", inactive, colorGray)
	return nil
}

func printBucket(w io.Writer, label string, servers map[string]*server.Server, nameColor string) {
	if len(servers) == 0 {
		return
	}

	fmt.Fprintf(w, "%s%s%s (%d)\n", colorCyan+colorBold, label, colorReset, len(servers))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "  %sNAME%s\t%sCOMMAND%s\t%sARGS%s\n",
		colorBold, colorReset,
		colorBold, colorReset,
		colorBold, colorReset)

	for _, name := range sortedNames(servers) {
		s := servers[name]
		fmt.Fprintf(tw, "  %s%s%s\t%s\t%s\n",
			nameColor, s.Name, colorReset,
			s.Command,
			truncate(strings.Join(s.Args, " "), 60))
	}
	tw.Flush()
}

// sortedNames returns the map keys in lexical order for stable output.
func sortedNames(servers map[string]*server.Server) []string {
	names := make([]string, 0, len(servers))
	for name := range servers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
