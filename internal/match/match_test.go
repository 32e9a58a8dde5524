package match

import (
	"reflect"
	"strings"
	"testing"
)

func TestTerms(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"simple", "Founder Blockchain", []string{"founder", "blockchain"}},
		{"extra whitespace", "  ai   web3 ", []string{"ai", "web3"}},
		{"empty", "", nil},
		{"only whitespace", "   \t ", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Terms(tt.query)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Terms(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

func TestTermMatches(t *testing.T) {
	opts := DefaultFuzzyOptions()
	text := "kenji tanaka tokyo senior blockchain developer solana"
	words := strings.Fields(text)

	tests := []struct {
		name string
		term string
		want bool
	}{
		{"literal substring", "blockchain", true},
		{"substring across word boundary", "ji tan", true},
		{"fuzzy one edit", "develper", true},
		{"fuzzy typo in tokyo", "tokio", true},
		{"no match", "paris", false},
		{"short term never fuzzy", "tky", false},
		{"short term exact still matches", "ken", true},
		{"far from everything", "zzzzzz", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TermMatches(tt.term, text, words, opts)
			if got != tt.want {
				t.Errorf("TermMatches(%q) = %v, want %v", tt.term, got, tt.want)
			}
		})
	}
}

func TestTermMatches_ThresholdIsStrict(t *testing.T) {
	opts := DefaultFuzzyOptions()
	// similarity("aaaaaaaaaa", "aaaaaaabbb") = (10-3)/10 = 0.7 exactly,
	// which must not pass a strict > 0.7 check.
	text := "aaaaaaabbb"
	if TermMatches("aaaaaaaaaa", text, strings.Fields(text), opts) {
		t.Error("similarity exactly at threshold should not match")
	}
	// one edit closer crosses the threshold
	text = "aaaaaaaabb"
	if !TermMatches("aaaaaaaaaa", text, strings.Fields(text), opts) {
		t.Error("similarity 0.8 should match")
	}
}

func TestTermMatches_ThreeRuneWordsAreCandidates(t *testing.T) {
	opts := DefaultFuzzyOptions()
	// similarity("cats", "cat") = (4-1)/4 = 0.75, just over the threshold.
	text := "cat ml"
	if !TermMatches("cats", text, strings.Fields(text), opts) {
		t.Error("three-rune word at similarity 0.75 should match")
	}
}

func TestAllTermsMatch(t *testing.T) {
	opts := DefaultFuzzyOptions()
	text := "kenji tanaka tokyo blockchain developer"
	words := strings.Fields(text)

	tests := []struct {
		name  string
		terms []string
		want  bool
	}{
		{"no terms", nil, true},
		{"all present", []string{"kenji", "tokyo"}, true},
		{"one missing fails all", []string{"kenji", "paris"}, false},
		{"fuzzy counts", []string{"blockchian", "developer"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AllTermsMatch(tt.terms, text, words, opts)
			if got != tt.want {
				t.Errorf("AllTermsMatch(%v) = %v, want %v", tt.terms, got, tt.want)
			}
		})
	}
}
