// Package cli implements the cobra-based command line for the unit converter.
//
// The root command performs a conversion:
//
//	convert length kilometer meter 1
//	convert --json temperature celsius fahrenheit 100
//
// The units subcommand lists the units of one or all categories.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/couchcryptid/unit-converter-service/internal/converter"
	"github.com/couchcryptid/unit-converter-service/internal/domain"
	"github.com/couchcryptid/unit-converter-service/internal/observability"
)

// Exit codes returned by Execute.
const (
	ExitOK           = 0
	ExitGeneralError = 1
	ExitUsageError   = 2
)

// Version, Commit and Date are injected from main via ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// rootFlags holds the global flags. A fresh set is bound on every
// NewRootCommand call so tests never share state.
type rootFlags struct {
	json bool
}

// NewRootCommand creates the root command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	flags := &rootFlags{}
	svc := newService()

	rootCmd := &cobra.Command{
		Use:   "convert <category> <from_unit> <to_unit> <value>",
		Short: "Convert a value between length, weight or temperature units",
		Long: `convert converts a numeric value between units of one category.

Categories: length, weight, temperature. Run "convert units" to list the
units of every category.

Examples:
  convert length kilometer meter 1
  convert temperature celsius fahrenheit 100
  convert --json weight pound ounce 2`,
		Args:          cobra.ExactArgs(4),
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd.Context(), cmd.OutOrStdout(), svc, flags, args)
		},
	}

	rootCmd.PersistentFlags().BoolVar(&flags.json, "json", false, "Output in JSON format")
	rootCmd.AddCommand(newUnitsCommand(svc, flags))

	return rootCmd
}

// newService builds an uncached, unpublished converter for a single
// invocation. Its metrics live in a private registry and logs go to stderr.
func newService() *converter.Service {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	metrics := observability.NewMetricsWithRegisterer(prometheus.NewRegistry())
	return converter.New(logger, metrics)
}

// Execute runs the root command and exits with the matching code on failure.
func Execute(rootCmd *cobra.Command) {
	if err := rootCmd.Execute(); err != nil {
		jsonOutput, _ := rootCmd.PersistentFlags().GetBool("json")
		printError(os.Stderr, jsonOutput, err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps conversion errors to usage errors; anything else is general.
func exitCode(err error) int {
	var ce *domain.ConversionError
	if errors.As(err, &ce) {
		return ExitUsageError
	}
	return ExitGeneralError
}

func printError(w io.Writer, jsonOutput bool, err error) {
	message := err.Error()
	var ce *domain.ConversionError
	if errors.As(err, &ce) {
		message = ce.Message()
	}

	if jsonOutput {
		errObj := map[string]any{"error": message}
		if ce != nil {
			errObj["kind"] = ce.Kind
		}
		data, _ := json.MarshalIndent(errObj, "", "  ")
		fmt.Fprintln(w, string(data))
		return
	}
	fmt.Fprintf(w, "Error: %s\n", message)
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
