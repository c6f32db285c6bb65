package workbook

import "strings"

// ParseShelfLifeText converts the free-text "Minimum Shelf-life" cell into a
// number of months. Customer POs phrase the requirement loosely ("12 months",
// "1 year", "not less than 12 months"); anything ambiguous or blank falls
// back to the default.
func ParseShelfLifeText(text string, defaultMonths int) int {
	s := strings.ToLower(strings.TrimSpace(text))
	if s == "" {
		return defaultMonths
	}
	switch {
	case strings.Contains(s, "12 months"), strings.Contains(s, "1 year"):
		return 12
	case strings.Contains(s, "6 months"):
		return 6
	case strings.Contains(s, "3 months"):
		return 3
	}
	return defaultMonths
}
