package domain

import "strings"

// Category identifies a family of convertible units.
type Category string

const (
	Length      Category = "length"
	Weight      Category = "weight"
	Temperature Category = "temperature"
)

// categories lists the supported categories in display order.
var categories = []Category{Length, Weight, Temperature}

// Categories returns the supported categories in display order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

func (c Category) String() string {
	return string(c)
}

// IsValid reports whether c is one of the supported categories.
func (c Category) IsValid() bool {
	switch c {
	case Length, Weight, Temperature:
		return true
	default:
		return false
	}
}

// Title returns the capitalized category name for page headings.
func (c Category) Title() string {
	if c == "" {
		return ""
	}
	return strings.ToUpper(string(c[:1])) + string(c[1:])
}

// ParseCategory converts free text (a route parameter or CLI argument) into a
// Category, matching case-insensitively.
func ParseCategory(s string) (Category, error) {
	c := normalizeCategory(Category(s))
	if !c.IsValid() {
		return c, &ConversionError{Kind: KindUnknownCategory, Input: strings.TrimSpace(s)}
	}
	return c, nil
}

func normalizeCategory(c Category) Category {
	return Category(strings.ToLower(strings.TrimSpace(string(c))))
}
