package normalize

import "strings"

// DefaultLocationAliases returns the built-in alias table mapping common
// shorthand location spellings to their canonical lowercase form.
func DefaultLocationAliases() map[string]string {
	return map[string]string{
		"sf":            "san francisco",
		"san fran":      "san francisco",
		"bay area":      "san francisco",
		"nyc":           "new york",
		"new york city": "new york",
		"la":            "los angeles",
	}
}

// NormalizeLocation lowercases and trims a cleaned location string and maps
// it through the alias table. Unmapped values pass through unchanged; an
// empty input stays empty (the profile has no location).
func NormalizeLocation(location string, aliases map[string]string) string {
	normalized := strings.ToLower(strings.TrimSpace(location))
	if normalized == "" {
		return ""
	}
	if canonical, ok := aliases[normalized]; ok {
		return canonical
	}
	return normalized
}
