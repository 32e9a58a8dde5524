package match

import (
	"strings"
	"unicode/utf8"
)

// FuzzyOptions bounds approximate term matching.
type FuzzyOptions struct {
	// MinTermLength is the minimum rune length a term needs before fuzzy
	// matching applies to it at all.
	MinTermLength int
	// MinWordLength is the minimum rune length of a candidate word.
	MinWordLength int
	// Threshold is the similarity a word must strictly exceed to count.
	Threshold float64
}

// DefaultFuzzyOptions returns the tuned defaults: terms of 4+ runes may
// fuzzy-match words of 3+ runes at similarity above 0.7.
func DefaultFuzzyOptions() FuzzyOptions {
	return FuzzyOptions{MinTermLength: 4, MinWordLength: 3, Threshold: 0.7}
}

// Terms splits a query into lowercase whitespace-delimited terms.
func Terms(query string) []string {
	return strings.Fields(strings.ToLower(query))
}

// TermMatches reports whether a single lowercase term hits text: either as a
// literal substring, or fuzzily against one of words. The caller supplies
// words as the whitespace split of text so repeated calls don't re-split it.
func TermMatches(term, text string, words []string, opts FuzzyOptions) bool {
	if strings.Contains(text, term) {
		return true
	}
	if utf8.RuneCountInString(term) < opts.MinTermLength {
		return false
	}
	for _, word := range words {
		if utf8.RuneCountInString(word) < opts.MinWordLength {
			continue
		}
		if Similarity(term, word) > opts.Threshold {
			return true
		}
	}
	return false
}

// AllTermsMatch reports whether every term hits text. An empty term list
// matches.
func AllTermsMatch(terms []string, text string, words []string, opts FuzzyOptions) bool {
	for _, term := range terms {
		if !TermMatches(term, text, words, opts) {
			return false
		}
	}
	return true
}
