package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/holster/internal/doctor"
	"github.com/thoreinstein/holster/internal/errors"
)

// Package-level flag variables for the doctor command.
var (
	doctorJSON    bool
	doctorVerbose bool
)

func init() {
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false, "output results as JSON")
	doctorCmd.Flags().BoolVar(&doctorVerbose, "verbose-checks", false,
		"show all checks including passed ones")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose holster configuration issues",
	Long: `Run diagnostic checks on the holster installation.

Validates the holster config file, the managed config file and its bucket
partition, file permissions, discovery locations, and the snapshot safety
net.

Exit codes:
  0 - No errors
  2 - Errors present`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runDoctor(os.Stdout)
	},
}

func runDoctor(w io.Writer) error {
	report := doctor.NewRunner(resolveStorePath(), configLoadErr).Run()

	if doctorJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return err
		}
	} else {
		outputDoctorText(w, report)
	}

	if !report.Healthy() {
		return errors.NewExitError(nil, errors.ExitSystem)
	}
	return nil
}

func outputDoctorText(w io.Writer, report *doctor.Report) {
	for _, result := range report.Results {
		if !doctorVerbose && result.Status == doctor.SeverityPass {
			continue
		}

		marker := colorGreen + "ok" + colorReset
		switch result.Status {
		case doctor.SeverityInfo:
			marker = colorCyan + "info" + colorReset
		case doctor.SeverityWarning:
			marker = colorBold + "warn" + colorReset
		case doctor.SeverityError:
			marker = colorBold + "FAIL" + colorReset
		}

		fmt.Fprintf(w, "[%s] %s: %s\n", marker, result.Name, result.Message)
		if result.FixHint != "" {
			fmt.Fprintf(w, "       %s%s%s\n", colorGray, result.FixHint, colorReset)
		}
	}

	fmt.Fprintf(w, "%d passed, %d info, %d warning(s), %d error(s)\n",
		report.Summary.Passed, report.Summary.Info,
		report.Summary.Warnings, report.Summary.Errors)
}
