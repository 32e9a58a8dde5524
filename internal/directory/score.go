package directory

import (
	"strings"

	"github.com/hyperjump/meibo/internal/models"
)

// ScoreWeights control the relevance signal a text query attaches to each
// result. Every term earns the listed weight per field it appears in; the
// total is the raw sum across terms, not normalized to any range.
type ScoreWeights struct {
	Name         float64
	Professional float64
	Tag          float64
	Personal     float64
	Location     float64
}

// DefaultScoreWeights favor name hits, then professional text and tags.
func DefaultScoreWeights() ScoreWeights {
	return ScoreWeights{
		Name:         10,
		Professional: 5,
		Tag:          5,
		Personal:     2,
		Location:     3,
	}
}

// relevanceScore sums the per-term field weights for a profile that already
// passed the text filter. Matching is plain substring against the lowercased
// field; the location signal uses the display location, not the normalized
// one, so neighborhood names still count.
func relevanceScore(p *models.NormalizedProfile, terms []string, w ScoreWeights) float64 {
	name := strings.ToLower(p.Name)
	professional := strings.ToLower(p.ProfessionalSummary)
	personal := strings.ToLower(p.PersonalSummary)
	location := strings.ToLower(p.Location)

	var score float64
	for _, term := range terms {
		if strings.Contains(name, term) {
			score += w.Name
		}
		if strings.Contains(professional, term) {
			score += w.Professional
		}
		if tagContains(p.Tags, term) {
			score += w.Tag
		}
		if strings.Contains(personal, term) {
			score += w.Personal
		}
		if strings.Contains(location, term) {
			score += w.Location
		}
	}
	return score
}

func tagContains(tags []string, term string) bool {
	for _, tag := range tags {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}
	return false
}
