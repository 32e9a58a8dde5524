// Package cli renders query results for the meibo command line.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/hyperjump/meibo/internal/models"
	"github.com/hyperjump/meibo/pkg/utils"
)

// OutputFormat selects how results are rendered.
type OutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText OutputFormat = "text"
	// OutputCompact is one tab-separated line per row, for piping.
	OutputCompact OutputFormat = "compact"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON OutputFormat = "json"
)

const divider = "─────────────────────────────────────────────────────────"

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// WriteResults writes a search response to w in the given format.
func WriteResults(w io.Writer, response *models.SearchResponse, format OutputFormat) error {
	switch format {
	case OutputJSON:
		return writeJSON(w, response)
	case OutputCompact:
		for _, r := range response.Results {
			fmt.Fprintf(w, "%s\t%s\t%s\n", r.Profile.Username, r.Profile.Name, r.Profile.Location)
		}
		return nil
	default:
		fmt.Fprintf(w, "\nFound %d members in %dms\n\n", response.Total, response.QueryTime)
		for _, r := range response.Results {
			writeProfileText(w, r.Profile, r.Relevance)
		}
		return nil
	}
}

func writeProfileText(w io.Writer, p *models.NormalizedProfile, relevance float64) {
	fmt.Fprintln(w, divider)
	header := fmt.Sprintf("%s (@%s)", p.Name, p.Username)
	if p.Location != "" {
		header += " | " + p.Location
	}
	if relevance > 0 {
		header += fmt.Sprintf(" | Relevance: %.1f", relevance)
	}
	fmt.Fprintln(w, header)
	if p.ProfessionalSummary != "" {
		fmt.Fprintln(w, utils.Truncate(p.ProfessionalSummary, 160))
	}
	if p.PersonalSummary != "" {
		fmt.Fprintln(w, utils.TruncateWords(p.PersonalSummary, 20))
	}
	if len(p.Tags) > 0 {
		fmt.Fprintf(w, "Tags: %s\n", strings.Join(p.Tags, ", "))
	}
	fmt.Fprintln(w)
}

// WriteSimilar writes the members ranked as similar to username.
func WriteSimilar(w io.Writer, username string, results []models.SimilarResult, format OutputFormat) error {
	switch format {
	case OutputJSON:
		return writeJSON(w, map[string]interface{}{"username": username, "results": results})
	case OutputCompact:
		for _, r := range results {
			fmt.Fprintf(w, "%s\t%s\t%.3f\n", r.Profile.Username, r.Profile.Name, r.Similarity)
		}
		return nil
	default:
		fmt.Fprintf(w, "\nMembers similar to @%s\n\n", username)
		for _, r := range results {
			fmt.Fprintln(w, divider)
			fmt.Fprintf(w, "%s (@%s) | Similarity: %.3f\n", r.Profile.Name, r.Profile.Username, r.Similarity)
			if len(r.Profile.Tags) > 0 {
				fmt.Fprintf(w, "Tags: %s\n", strings.Join(r.Profile.Tags, ", "))
			}
			fmt.Fprintln(w)
		}
		return nil
	}
}

// WriteTrending writes the tag frequency table.
func WriteTrending(w io.Writer, tags []models.TagCount, format OutputFormat) error {
	switch format {
	case OutputJSON:
		return writeJSON(w, map[string]interface{}{"tags": tags})
	case OutputCompact:
		for _, tc := range tags {
			fmt.Fprintf(w, "%s\t%d\n", tc.Tag, tc.Count)
		}
		return nil
	default:
		fmt.Fprintf(w, "\nTrending tags\n\n")
		for i, tc := range tags {
			fmt.Fprintf(w, "%2d. %-24s %d\n", i+1, tc.Tag, tc.Count)
		}
		return nil
	}
}

// WriteSuggestions writes autocomplete candidates for a partial query.
func WriteSuggestions(w io.Writer, partial string, suggestions []models.Suggestion, format OutputFormat) error {
	switch format {
	case OutputJSON:
		return writeJSON(w, map[string]interface{}{"query": partial, "suggestions": suggestions})
	case OutputCompact:
		for _, sg := range suggestions {
			fmt.Fprintf(w, "%s\t%s\n", sg.Kind, sg.Value)
		}
		return nil
	default:
		if len(suggestions) == 0 {
			fmt.Fprintf(w, "No suggestions for %q\n", partial)
			return nil
		}
		fmt.Fprintf(w, "\nSuggestions for %q\n\n", partial)
		for _, sg := range suggestions {
			fmt.Fprintf(w, "  [%s] %s\n", sg.Kind, sg.Value)
		}
		return nil
	}
}

// WriteStats writes collection counts.
func WriteStats(w io.Writer, stats models.Stats, format OutputFormat) error {
	switch format {
	case OutputJSON:
		return writeJSON(w, stats)
	case OutputCompact:
		fmt.Fprintf(w, "members\t%d\nlocations\t%d\ntags\t%d\n", stats.Members, stats.Locations, stats.Tags)
		return nil
	default:
		fmt.Fprintf(w, "\nDirectory stats\n\n")
		fmt.Fprintf(w, "%-26s %d\n", "Members:", stats.Members)
		fmt.Fprintf(w, "%-26s %d\n", "With location:", stats.WithLocation)
		fmt.Fprintf(w, "%-26s %d\n", "With professional bio:", stats.WithProfessionalSummary)
		fmt.Fprintf(w, "%-26s %d\n", "With personal bio:", stats.WithPersonalSummary)
		fmt.Fprintf(w, "%-26s %d\n", "With social links:", stats.WithSocialLinks)
		fmt.Fprintf(w, "%-26s %d\n", "Distinct locations:", stats.Locations)
		fmt.Fprintf(w, "%-26s %d\n", "Distinct tags:", stats.Tags)
		return nil
	}
}
