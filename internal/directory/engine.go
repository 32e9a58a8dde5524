// Package directory implements the in-memory member directory: a pure query
// engine over an immutable snapshot of normalized profiles, plus a stateful
// session wrapper for interactive filtering.
package directory

import (
	"errors"
	"strings"

	"github.com/hyperjump/meibo/internal/match"
	"github.com/hyperjump/meibo/internal/models"
)

var (
	// ErrSemanticSearchUnsupported marks the deliberately absent semantic
	// search capability; callers must be able to tell it apart from a query
	// that simply matched nothing.
	ErrSemanticSearchUnsupported = errors.New("semantic search is not supported")

	// ErrMemberNotFound is returned when no profile has the given username.
	ErrMemberNotFound = errors.New("member not found")
)

// Options tunes the engine. The zero value takes every default.
type Options struct {
	Fuzzy              match.FuzzyOptions
	Score              ScoreWeights
	Similarity         SimilarityWeights
	SuggestionLimit    int
	MinSuggestionInput int
}

// ApplyDefaults fills any zero field with its default.
func (o *Options) ApplyDefaults() {
	if o.Fuzzy == (match.FuzzyOptions{}) {
		o.Fuzzy = match.DefaultFuzzyOptions()
	}
	if o.Score == (ScoreWeights{}) {
		o.Score = DefaultScoreWeights()
	}
	if o.Similarity == (SimilarityWeights{}) {
		o.Similarity = DefaultSimilarityWeights()
	}
	if o.SuggestionLimit == 0 {
		o.SuggestionLimit = 8
	}
	if o.MinSuggestionInput == 0 {
		o.MinSuggestionInput = 2
	}
}

// Engine answers queries over an immutable snapshot of the normalized
// collection. Construction copies the input and precomputes per-profile word
// splits and aggregate views; methods never write engine state, so a single
// Engine is safe for any number of concurrent readers. Reloading data means
// building a new Engine and swapping the reference.
type Engine struct {
	profiles []models.NormalizedProfile
	// words is the whitespace split of each profile's searchable text,
	// precomputed so fuzzy matching doesn't re-split per query term.
	words  [][]string
	byUser map[string]int

	locations []string // distinct normalized locations, sorted
	tagValues []string // distinct tags as stored, sorted
	stats     models.Stats

	opts Options
}

// NewEngine builds an engine over a snapshot of profiles. A nil opts takes
// the defaults.
func NewEngine(profiles []models.NormalizedProfile, opts *Options) *Engine {
	var o Options
	if opts != nil {
		o = *opts
	}
	o.ApplyDefaults()

	e := &Engine{
		profiles: append([]models.NormalizedProfile(nil), profiles...),
		opts:     o,
	}
	e.words = make([][]string, len(e.profiles))
	e.byUser = make(map[string]int, len(e.profiles))
	for i := range e.profiles {
		e.words[i] = strings.Fields(e.profiles[i].SearchableText)
		e.byUser[e.profiles[i].Username] = i
	}
	e.buildAggregates()
	return e
}

// Len returns the number of profiles in the snapshot.
func (e *Engine) Len() int {
	return len(e.profiles)
}

// Lookup returns the profile with the given username.
func (e *Engine) Lookup(username string) (*models.NormalizedProfile, bool) {
	i, ok := e.byUser[username]
	if !ok {
		return nil, false
	}
	return &e.profiles[i], true
}

// Search runs the filter pipeline over the whole snapshot and returns the
// survivors in original collection order. Every populated constraint narrows
// the result: free text (each term a substring of the searchable text or a
// fuzzy word match), exact normalized location, profession substring, and
// OR-matched tags. Survivors of a text query carry a relevance score; an
// empty spec returns the full collection. Search never errors: with no data
// loaded it returns an empty list.
func (e *Engine) Search(spec models.FilterSpec) []models.ScoredResult {
	terms := match.Terms(spec.Search)
	profession := strings.ToLower(spec.Profession)

	results := make([]models.ScoredResult, 0, len(e.profiles))
	for i := range e.profiles {
		p := &e.profiles[i]
		if len(terms) > 0 && !match.AllTermsMatch(terms, p.SearchableText, e.words[i], e.opts.Fuzzy) {
			continue
		}
		if spec.Location != "" && p.LocationNormalized != spec.Location {
			continue
		}
		if profession != "" && !strings.Contains(strings.ToLower(p.ProfessionalSummary), profession) {
			continue
		}
		if len(spec.Tags) > 0 && !anyTagMatches(p.Tags, spec.Tags) {
			continue
		}
		result := models.ScoredResult{Profile: p}
		if len(terms) > 0 {
			result.Relevance = relevanceScore(p, terms, e.opts.Score)
		}
		results = append(results, result)
	}
	return results
}

// anyTagMatches reports whether any profile tag contains any filter tag,
// case-insensitively. One hit is enough.
func anyTagMatches(profileTags, filterTags []string) bool {
	for _, filterTag := range filterTags {
		needle := strings.ToLower(filterTag)
		for _, tag := range profileTags {
			if strings.Contains(strings.ToLower(tag), needle) {
				return true
			}
		}
	}
	return false
}

// SemanticSearch is deliberately unimplemented. It always returns
// ErrSemanticSearchUnsupported rather than an empty result, so callers can
// tell the missing capability apart from "no matches".
func (e *Engine) SemanticSearch(query string) ([]models.ScoredResult, error) {
	return nil, ErrSemanticSearchUnsupported
}
