package directory

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/hyperjump/meibo/internal/models"
)

// SortCriterion names a result ordering.
type SortCriterion string

const (
	// SortByName orders by display name, locale-aware and case-insensitive.
	SortByName SortCriterion = "name"
	// SortByRecent orders by post date, newest first. Profiles without a
	// post date carry epoch zero and sink to the end.
	SortByRecent SortCriterion = "recent"
)

// SortResults returns a reordered copy of results; the input slice is never
// mutated, so a session can re-sort the same result set repeatedly. An
// unrecognized criterion falls back to name order. Both orderings are stable.
func SortResults(results []models.ScoredResult, criterion SortCriterion) []models.ScoredResult {
	sorted := append([]models.ScoredResult(nil), results...)
	switch criterion {
	case SortByRecent:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Profile.PostDate > sorted[j].Profile.PostDate
		})
	default:
		c := collate.New(language.Und, collate.Loose)
		sort.SliceStable(sorted, func(i, j int) bool {
			return c.CompareString(sorted[i].Profile.Name, sorted[j].Profile.Name) < 0
		})
	}
	return sorted
}
