package models

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFilterPatch_Apply(t *testing.T) {
	str := func(s string) *string { return &s }
	tags := func(ss ...string) *[]string { return &ss }

	base := FilterSpec{Search: "go", Location: "tokyo", Tags: []string{"ai"}}

	tests := []struct {
		name  string
		patch FilterPatch
		want  FilterSpec
	}{
		{
			name:  "empty patch leaves spec unchanged",
			patch: FilterPatch{},
			want:  base,
		},
		{
			name:  "search overwrites",
			patch: FilterPatch{Search: str("rust")},
			want:  FilterSpec{Search: "rust", Location: "tokyo", Tags: []string{"ai"}},
		},
		{
			name:  "explicit empty string clears field",
			patch: FilterPatch{Location: str("")},
			want:  FilterSpec{Search: "go", Tags: []string{"ai"}},
		},
		{
			name:  "tags replace rather than union",
			patch: FilterPatch{Tags: tags("web3", "defi")},
			want:  FilterSpec{Search: "go", Location: "tokyo", Tags: []string{"web3", "defi"}},
		},
		{
			name:  "tags clear with empty list",
			patch: FilterPatch{Tags: tags()},
			want:  FilterSpec{Search: "go", Location: "tokyo"},
		},
		{
			name:  "profession set on empty field",
			patch: FilterPatch{Profession: str("engineer")},
			want:  FilterSpec{Search: "go", Location: "tokyo", Profession: "engineer", Tags: []string{"ai"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.patch.Apply(base)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Apply() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFilterPatch_ApplyDoesNotAliasTags(t *testing.T) {
	src := []string{"ai"}
	patch := FilterPatch{Tags: &src}
	got := patch.Apply(FilterSpec{})
	src[0] = "changed"
	if got.Tags[0] != "ai" {
		t.Error("applied spec shares backing array with patch input")
	}
}

func TestFilterSpec_IsEmpty(t *testing.T) {
	if !(FilterSpec{}).IsEmpty() {
		t.Error("zero spec should be empty")
	}
	if (FilterSpec{Search: "x"}).IsEmpty() {
		t.Error("spec with search should not be empty")
	}
	if (FilterSpec{Tags: []string{"a"}}).IsEmpty() {
		t.Error("spec with tags should not be empty")
	}
}

func TestFilterSpec_Active(t *testing.T) {
	spec := FilterSpec{Search: "go", Tags: []string{"ai"}}
	active := spec.Active()
	if len(active) != 2 {
		t.Fatalf("Active() has %d entries, want 2", len(active))
	}
	if active["search"] != "go" {
		t.Errorf("active search = %v", active["search"])
	}
	if _, ok := active["location"]; ok {
		t.Error("empty location should be omitted")
	}
	if _, ok := active["profession"]; ok {
		t.Error("empty profession should be omitted")
	}
}

func TestSearchRequest_Normalize(t *testing.T) {
	r := SearchRequest{Limit: -5}
	r.Normalize()
	if r.Limit != 0 {
		t.Errorf("Limit = %d, want 0", r.Limit)
	}
}
