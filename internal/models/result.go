package models

// ScoredResult pairs a profile with the relevance computed for a text query.
// Relevance is the raw additive per-term signal and is only populated when
// the query carried search text; it is a ranking signal, not a percentage.
type ScoredResult struct {
	Profile   *NormalizedProfile `json:"profile"`
	Relevance float64            `json:"relevance,omitempty"`
}

// SimilarResult pairs a candidate profile with its similarity to a target
// profile. Similarity is a weighted sum bounded to [0,1].
type SimilarResult struct {
	Profile    *NormalizedProfile `json:"profile"`
	Similarity float64            `json:"similarity"`
}

// TagCount is a tag with its occurrence count across the collection.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// SuggestionKind distinguishes what a search suggestion refers to.
type SuggestionKind string

const (
	SuggestionLocation SuggestionKind = "location"
	SuggestionTag      SuggestionKind = "tag"
)

// Suggestion is a typed autocomplete candidate for a partial query.
type Suggestion struct {
	Kind  SuggestionKind `json:"kind"`
	Value string         `json:"value"`
}

// FilterOptions enumerates the distinct values the location and tag filters
// can take, for populating filter controls. Profiles without a location
// contribute nothing to Locations.
type FilterOptions struct {
	Locations []string `json:"locations"`
	Tags      []string `json:"tags"`
}

// Stats summarizes the loaded collection.
type Stats struct {
	Members                 int `json:"members"`
	Locations               int `json:"locations"`
	Tags                    int `json:"tags"`
	WithLocation            int `json:"with_location"`
	WithProfessionalSummary int `json:"with_professional_summary"`
	WithPersonalSummary     int `json:"with_personal_summary"`
	WithSocialLinks         int `json:"with_social_links"`
}

// SearchResponse is the response for a search request.
type SearchResponse struct {
	Results []ScoredResult `json:"results"`
	Total   int            `json:"total"`
	// QueryTime is the server-side processing time in milliseconds.
	QueryTime int64 `json:"query_time_ms"`
	// Filters echoes the merged filter state the results were produced under.
	Filters FilterSpec `json:"filters"`
	Sort    string     `json:"sort,omitempty"`
}
