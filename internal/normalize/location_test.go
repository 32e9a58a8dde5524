package normalize

import "testing"

func TestNormalizeLocation(t *testing.T) {
	aliases := DefaultLocationAliases()
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"sf alias", "SF ", "san francisco"},
		{"bay area alias", "Bay Area", "san francisco"},
		{"nyc alias", "NYC", "new york"},
		{"new york city alias", "New York City", "new york"},
		{"unmapped passes through", "Tokyo", "tokyo"},
		{"already canonical", "san francisco", "san francisco"},
		{"empty stays empty", "", ""},
		{"whitespace only stays empty", "   ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeLocation(tt.input, aliases)
			if got != tt.expected {
				t.Errorf("NormalizeLocation(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNormalizeLocation_AliasesAgree(t *testing.T) {
	// The two shorthand forms of the same city normalize identically.
	aliases := DefaultLocationAliases()
	if NormalizeLocation("SF ", aliases) != NormalizeLocation("Bay Area", aliases) {
		t.Error("SF and Bay Area should normalize to the same value")
	}
}
