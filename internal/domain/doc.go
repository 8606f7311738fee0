// Package domain implements the unit conversion engine.
//
// # Categories
//
// Three categories are supported: length, weight and temperature. Length and
// weight are linear: every unit carries a factor relative to a base unit
// (meter and gram), and a conversion normalizes through the base:
//
//	result = value * (factor[from] / factor[to])
//
// The linear tables live in units.yaml, embedded at build time and loaded
// once. They are never mutated after load.
//
// Temperature has no shared base. Each (from, to) pair over celsius,
// fahrenheit and kelvin maps to its own formula; identity pairs return the
// value unchanged.
//
// # Validation
//
// Input is checked in a fixed order: a blank value fails with
// [ErrEmptyInput], a value that is not a finite real number fails with
// [ErrInvalidNumber], and only then are the category and units resolved
// ([ErrUnknownCategory], [ErrUnknownUnit]). A result that overflows float64
// fails with [ErrOutOfRange]. Unit and category names are matched
// case-insensitively after trimming.
//
// # Formatting
//
// Results are rendered by [SmartFormat]: the shortest decimal form of the
// value is rounded to 4 significant digits (round-half-to-even), written in
// fixed-point notation, and stripped of trailing fractional zeros:
//
//	1000        → "1000"
//	0.30000004  → "0.3"
//	12345       → "12340"
//	1.0015      → "1.002"
//	0.000012345 → "0.00001234"
//
// A successful conversion reads "<value> <from> = <result> <to>", e.g.
// "1 kilometer = 1000 meter".
package domain
