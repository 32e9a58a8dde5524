package directory

import (
	"sort"
	"strings"

	"github.com/hyperjump/meibo/internal/models"
)

// SimilarityWeights control the fixed-scale similarity score between two
// profiles: a flat bonus for sharing a normalized location plus tag and
// keyword overlap scaled by their weights.
type SimilarityWeights struct {
	Location float64
	Tag      float64
	Keyword  float64
}

// DefaultSimilarityWeights put most of the signal on shared tags.
func DefaultSimilarityWeights() SimilarityWeights {
	return SimilarityWeights{
		Location: 0.3,
		Tag:      0.4,
		Keyword:  0.1,
	}
}

// FindSimilar ranks every other member of the snapshot by similarity to
// target, highest first, truncated to count. The target itself is excluded
// by username. A nil target or non-positive count yields nil.
func (e *Engine) FindSimilar(target *models.NormalizedProfile, count int) []models.SimilarResult {
	if target == nil || count <= 0 {
		return nil
	}
	scored := make([]models.SimilarResult, 0, len(e.profiles))
	for i := range e.profiles {
		p := &e.profiles[i]
		if p.Username == target.Username {
			continue
		}
		scored = append(scored, models.SimilarResult{
			Profile:    p,
			Similarity: similarityScore(target, p, e.opts.Similarity),
		})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Similarity > scored[j].Similarity
	})
	if len(scored) > count {
		scored = scored[:count]
	}
	return scored
}

// FindSimilarByUsername resolves the username and delegates to FindSimilar.
// It returns ErrMemberNotFound for an unknown username.
func (e *Engine) FindSimilarByUsername(username string, count int) ([]models.SimilarResult, error) {
	target, ok := e.Lookup(username)
	if !ok {
		return nil, ErrMemberNotFound
	}
	return e.FindSimilar(target, count), nil
}

// similarityScore combines three signals: shared normalized location (only
// when both profiles actually have one), tag overlap, and professional
// keyword overlap. Overlap is intersection size over the larger set, so a
// profile with no tags contributes zero rather than dividing by zero.
func similarityScore(a, b *models.NormalizedProfile, w SimilarityWeights) float64 {
	var score float64
	if a.HasLocation && b.HasLocation && a.LocationNormalized == b.LocationNormalized {
		score += w.Location
	}
	score += w.Tag * overlapRatio(a.Tags, b.Tags)
	score += w.Keyword * overlapRatio(a.ProfessionalKeywords, b.ProfessionalKeywords)
	return score
}

// overlapRatio is |a ∩ b| / max(|a|, |b|) over the case-folded sets of the
// two lists, 0 when either list is empty.
func overlapRatio(a, b []string) float64 {
	setA := foldedSet(a)
	setB := foldedSet(b)
	larger := len(setA)
	if len(setB) > larger {
		larger = len(setB)
	}
	if larger == 0 {
		return 0
	}
	shared := 0
	for v := range setA {
		if setB[v] {
			shared++
		}
	}
	return float64(shared) / float64(larger)
}

func foldedSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[strings.ToLower(v)] = true
	}
	return set
}
