package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/couchcryptid/unit-converter-service/internal/converter"
	"github.com/couchcryptid/unit-converter-service/internal/domain"
)

type convertOutput struct {
	Result    string          `json:"result"`
	Category  domain.Category `json:"category"`
	FromUnit  string          `json:"from_unit"`
	ToUnit    string          `json:"to_unit"`
	Value     float64         `json:"value"`
	Converted float64         `json:"converted"`
	Formatted string          `json:"formatted"`
}

// runConvert converts args (category, from, to, value) and prints the result.
func runConvert(ctx context.Context, w io.Writer, svc *converter.Service, flags *rootFlags, args []string) error {
	result, err := svc.Convert(ctx, domain.Request{
		Category: domain.Category(args[0]),
		FromUnit: args[1],
		ToUnit:   args[2],
		RawValue: args[3],
	})
	if err != nil {
		return err
	}

	if flags.json {
		return writeJSON(w, convertOutput{
			Result:    result.Text,
			Category:  result.Category,
			FromUnit:  result.FromUnit,
			ToUnit:    result.ToUnit,
			Value:     result.Value,
			Converted: result.Converted,
			Formatted: result.Formatted,
		})
	}
	_, err = fmt.Fprintln(w, result.Text)
	return err
}
