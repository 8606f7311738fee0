package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Request is a single conversion request as submitted by a user. RawValue is
// kept as text so blank and non-numeric input can be reported precisely.
type Request struct {
	Category Category
	FromUnit string
	ToUnit   string
	RawValue string
}

// Normalize trims all fields and lowercases the category and unit names.
func (r Request) Normalize() Request {
	return Request{
		Category: normalizeCategory(r.Category),
		FromUnit: NormalizeUnit(r.FromUnit),
		ToUnit:   NormalizeUnit(r.ToUnit),
		RawValue: strings.TrimSpace(r.RawValue),
	}
}

// Result is a successful conversion.
type Result struct {
	Category  Category
	FromUnit  string
	ToUnit    string
	Value     float64
	Converted float64
	Formatted string // SmartFormat(Converted)
	Text      string // "<value> <from> = <formatted> <to>"
}

func (r Result) String() string {
	return r.Text
}

// NormalizeUnit trims and lowercases a unit name.
func NormalizeUnit(unit string) string {
	return strings.ToLower(strings.TrimSpace(unit))
}

// Convert validates req and converts its value between units.
//
// Validation order: blank value, unparseable value, unknown category, unknown
// unit. A result that overflows float64 is rejected as out of range. The
// returned error is always a *ConversionError.
func Convert(req Request) (Result, error) {
	req = req.Normalize()

	value, err := parseValue(req.RawValue)
	if err != nil {
		return Result{}, err
	}
	if !req.Category.IsValid() {
		return Result{}, &ConversionError{Kind: KindUnknownCategory, Input: string(req.Category)}
	}

	converted, err := convertValue(req.Category, req.FromUnit, req.ToUnit, value)
	if err != nil {
		return Result{}, err
	}
	if math.IsNaN(converted) || math.IsInf(converted, 0) {
		return Result{}, &ConversionError{Kind: KindOutOfRange, Input: req.RawValue}
	}

	formatted := SmartFormat(converted)
	return Result{
		Category:  req.Category,
		FromUnit:  req.FromUnit,
		ToUnit:    req.ToUnit,
		Value:     value,
		Converted: converted,
		Formatted: formatted,
		Text:      fmt.Sprintf("%s %s = %s %s", formatValue(value), req.FromUnit, formatted, req.ToUnit),
	}, nil
}

// parseValue accepts any finite decimal real number. NaN, infinities and
// hexadecimal floats are rejected along with everything strconv cannot parse.
func parseValue(raw string) (float64, error) {
	if raw == "" {
		return 0, &ConversionError{Kind: KindEmptyInput}
	}
	if isHexLiteral(raw) {
		return 0, &ConversionError{Kind: KindInvalidNumber, Input: raw}
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &ConversionError{Kind: KindInvalidNumber, Input: raw}
	}
	return v, nil
}

// isHexLiteral reports a "0x" prefix after an optional sign.
func isHexLiteral(raw string) bool {
	s := strings.TrimLeft(raw, "+-")
	return len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}

func convertValue(category Category, from, to string, value float64) (float64, error) {
	if category == Temperature {
		return convertTemperature(value, from, to)
	}

	table := linearTables[category]
	fromFactor, ok := table.Factor(from)
	if !ok {
		return 0, &ConversionError{Kind: KindUnknownUnit, Input: from}
	}
	toFactor, ok := table.Factor(to)
	if !ok {
		return 0, &ConversionError{Kind: KindUnknownUnit, Input: to}
	}
	return value * (fromFactor / toFactor), nil
}
