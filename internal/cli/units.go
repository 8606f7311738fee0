package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/unit-converter-service/internal/converter"
	"github.com/couchcryptid/unit-converter-service/internal/domain"
)

func newUnitsCommand(svc *converter.Service, flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "units [category]",
		Short: "List the units of one or all categories",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUnits(cmd.OutOrStdout(), svc, flags, args)
		},
	}
}

func runUnits(w io.Writer, svc *converter.Service, flags *rootFlags, args []string) error {
	categories := domain.Categories()
	if len(args) == 1 {
		c, err := domain.ParseCategory(args[0])
		if err != nil {
			return err
		}
		categories = []domain.Category{c}
	}

	listing := make(map[domain.Category][]string, len(categories))
	for _, c := range categories {
		units, err := svc.Units(c)
		if err != nil {
			return err
		}
		listing[c] = units
	}

	if flags.json {
		return writeJSON(w, listing)
	}
	for _, c := range categories {
		if _, err := fmt.Fprintf(w, "%s: %s\n", c, strings.Join(listing[c], ", ")); err != nil {
			return err
		}
	}
	return nil
}
