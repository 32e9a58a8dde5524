package models

// FilterSpec is the merged set of active search constraints. Zero value
// means no filtering: an empty spec matches the whole collection.
type FilterSpec struct {
	Search     string   `json:"search,omitempty"`
	Location   string   `json:"location,omitempty"`
	Profession string   `json:"profession,omitempty"`
	Tags       []string `json:"tags,omitempty"`
}

// IsEmpty reports whether no constraint is set.
func (f FilterSpec) IsEmpty() bool {
	return f.Search == "" && f.Location == "" && f.Profession == "" && len(f.Tags) == 0
}

// Active returns only the non-empty fields, keyed by field name, for display.
func (f FilterSpec) Active() map[string]interface{} {
	active := make(map[string]interface{})
	if f.Search != "" {
		active["search"] = f.Search
	}
	if f.Location != "" {
		active["location"] = f.Location
	}
	if f.Profession != "" {
		active["profession"] = f.Profession
	}
	if len(f.Tags) > 0 {
		active["tags"] = append([]string(nil), f.Tags...)
	}
	return active
}

// FilterPatch is a partial filter update. Nil fields leave the corresponding
// FilterSpec field unchanged; set fields overwrite it. Tags replace the held
// set outright, they never union with it.
type FilterPatch struct {
	Search     *string   `json:"search,omitempty"`
	Location   *string   `json:"location,omitempty"`
	Profession *string   `json:"profession,omitempty"`
	Tags       *[]string `json:"tags,omitempty"`
}

// Apply merges the patch into spec last-write-wins and returns the result.
// The input spec is not modified.
func (p FilterPatch) Apply(spec FilterSpec) FilterSpec {
	if p.Search != nil {
		spec.Search = *p.Search
	}
	if p.Location != nil {
		spec.Location = *p.Location
	}
	if p.Profession != nil {
		spec.Profession = *p.Profession
	}
	if p.Tags != nil {
		spec.Tags = append([]string(nil), (*p.Tags)...)
	}
	return spec
}

// SearchRequest is a search call as received from a client: the filters to
// apply plus presentation knobs.
type SearchRequest struct {
	Filters FilterSpec `json:"filters"`
	Sort    string     `json:"sort,omitempty"`
	Limit   int        `json:"limit,omitempty"`
}

// Normalize clamps presentation knobs in place. A zero or negative limit
// means no truncation.
func (r *SearchRequest) Normalize() {
	if r.Limit < 0 {
		r.Limit = 0
	}
}
