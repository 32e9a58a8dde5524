package directory

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/hyperjump/meibo/internal/models"
)

// buildAggregates precomputes the distinct-value views and collection stats
// for the immutable snapshot.
func (e *Engine) buildAggregates() {
	locationSet := make(map[string]bool)
	tagSet := make(map[string]bool)
	stats := models.Stats{Members: len(e.profiles)}
	for i := range e.profiles {
		p := &e.profiles[i]
		if p.HasLocation {
			stats.WithLocation++
			locationSet[p.LocationNormalized] = true
		}
		if p.HasProfessionalSummary {
			stats.WithProfessionalSummary++
		}
		if p.HasPersonalSummary {
			stats.WithPersonalSummary++
		}
		if p.HasSocialLinks {
			stats.WithSocialLinks++
		}
		for _, tag := range p.Tags {
			tagSet[tag] = true
		}
	}
	e.locations = sortedKeys(locationSet)
	e.tagValues = sortedKeys(tagSet)
	stats.Locations = len(e.locations)
	stats.Tags = len(e.tagValues)
	e.stats = stats
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// TrendingTags counts tag occurrences across the collection, case-sensitive
// as stored, and returns the most frequent first. Equal counts break by tag
// name so the order is deterministic. A non-positive limit returns every tag.
func (e *Engine) TrendingTags(limit int) []models.TagCount {
	counts := make(map[string]int)
	for i := range e.profiles {
		for _, tag := range e.profiles[i].Tags {
			counts[tag]++
		}
	}
	trending := make([]models.TagCount, 0, len(counts))
	for tag, count := range counts {
		trending = append(trending, models.TagCount{Tag: tag, Count: count})
	}
	sort.Slice(trending, func(i, j int) bool {
		if trending[i].Count != trending[j].Count {
			return trending[i].Count > trending[j].Count
		}
		return trending[i].Tag < trending[j].Tag
	})
	if limit > 0 && len(trending) > limit {
		trending = trending[:limit]
	}
	return trending
}

// Suggestions proposes filter values containing the partial input,
// case-insensitively: known locations first, then tags, capped at the
// configured limit. Inputs shorter than the minimum yield nothing.
func (e *Engine) Suggestions(partial string) []models.Suggestion {
	trimmed := strings.TrimSpace(partial)
	if utf8.RuneCountInString(trimmed) < e.opts.MinSuggestionInput {
		return nil
	}
	needle := strings.ToLower(trimmed)

	var suggestions []models.Suggestion
	for _, loc := range e.locations {
		if strings.Contains(loc, needle) {
			suggestions = append(suggestions, models.Suggestion{Kind: models.SuggestionLocation, Value: loc})
			if len(suggestions) >= e.opts.SuggestionLimit {
				return suggestions
			}
		}
	}
	for _, tag := range e.tagValues {
		if strings.Contains(strings.ToLower(tag), needle) {
			suggestions = append(suggestions, models.Suggestion{Kind: models.SuggestionTag, Value: tag})
			if len(suggestions) >= e.opts.SuggestionLimit {
				return suggestions
			}
		}
	}
	return suggestions
}

// FilterOptions enumerates the values the location and tag filters can take,
// each list distinct and sorted. The caller gets copies it may keep.
func (e *Engine) FilterOptions() models.FilterOptions {
	return models.FilterOptions{
		Locations: append([]string(nil), e.locations...),
		Tags:      append([]string(nil), e.tagValues...),
	}
}

// Stats returns counts describing the loaded collection.
func (e *Engine) Stats() models.Stats {
	return e.stats
}
