package directory

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/hyperjump/meibo/internal/models"
)

func similarUsernames(results []models.SimilarResult) []string {
	names := make([]string, 0, len(results))
	for _, r := range results {
		names = append(names, r.Profile.Username)
	}
	return names
}

func TestFindSimilar_Ranking(t *testing.T) {
	engine := newTestEngine(t)
	target, ok := engine.Lookup("kenji")
	if !ok {
		t.Fatal("fixture missing kenji")
	}

	got := engine.FindSimilar(target, 10)

	// hana shares tokyo (0.3); mei shares 2 of 3 tags (0.4*2/3); sofia
	// shares 1 of 3 (0.4/3); ravi shares nothing.
	wantOrder := []string{"hana", "mei", "sofia", "ravi"}
	if diff := cmp.Diff(wantOrder, similarUsernames(got)); diff != "" {
		t.Fatalf("FindSimilar order mismatch (-want +got):\n%s", diff)
	}

	wantScores := []float64{0.3, 0.4 * 2.0 / 3.0, 0.4 * 1.0 / 3.0, 0}
	for i, want := range wantScores {
		if math.Abs(got[i].Similarity-want) > 1e-9 {
			t.Errorf("similarity[%d] (%s) = %v, want %v", i, got[i].Profile.Username, got[i].Similarity, want)
		}
	}
}

func TestFindSimilar_ExcludesTarget(t *testing.T) {
	engine := newTestEngine(t)
	target, _ := engine.Lookup("kenji")

	for _, r := range engine.FindSimilar(target, 10) {
		if r.Profile.Username == "kenji" {
			t.Error("FindSimilar returned the target itself")
		}
	}
}

func TestFindSimilar_TruncatesToCount(t *testing.T) {
	engine := newTestEngine(t)
	target, _ := engine.Lookup("kenji")

	got := engine.FindSimilar(target, 2)
	want := []string{"hana", "mei"}
	if diff := cmp.Diff(want, similarUsernames(got)); diff != "" {
		t.Errorf("FindSimilar(2) mismatch (-want +got):\n%s", diff)
	}
}

func TestFindSimilar_MissingLocationContributesNothing(t *testing.T) {
	engine := newTestEngine(t)
	target, _ := engine.Lookup("ravi")

	// ravi has no location, so no candidate earns the location weight even
	// though both sides normalize to the empty string.
	for _, r := range engine.FindSimilar(target, 10) {
		if r.Profile.Username == "hana" && r.Similarity != 0 {
			t.Errorf("similarity(ravi, hana) = %v, want 0", r.Similarity)
		}
	}
}

func TestFindSimilar_KeywordOverlap(t *testing.T) {
	profiles := []models.NormalizedProfile{
		{Username: "a", Name: "A", ProfessionalKeywords: []string{"solana", "rust", "founder"}},
		{Username: "b", Name: "B", ProfessionalKeywords: []string{"rust", "founder"}},
		{Username: "c", Name: "C"},
	}
	engine := NewEngine(profiles, nil)
	target, _ := engine.Lookup("a")

	got := engine.FindSimilar(target, 10)
	if got[0].Profile.Username != "b" {
		t.Fatalf("top similar = %q, want b", got[0].Profile.Username)
	}
	want := 0.1 * 2.0 / 3.0
	if math.Abs(got[0].Similarity-want) > 1e-9 {
		t.Errorf("similarity = %v, want %v", got[0].Similarity, want)
	}
	// c has no keywords at all; overlap is zero, not a division error.
	if got[1].Similarity != 0 {
		t.Errorf("similarity with empty keywords = %v, want 0", got[1].Similarity)
	}
}

func TestFindSimilar_TagOverlapIsCaseInsensitive(t *testing.T) {
	profiles := []models.NormalizedProfile{
		{Username: "a", Name: "A", Tags: []string{"Web3", "DeFi"}},
		{Username: "b", Name: "B", Tags: []string{"web3", "defi"}},
	}
	engine := NewEngine(profiles, nil)
	target, _ := engine.Lookup("a")

	got := engine.FindSimilar(target, 1)
	if math.Abs(got[0].Similarity-0.4) > 1e-9 {
		t.Errorf("similarity = %v, want 0.4 for full case-folded overlap", got[0].Similarity)
	}
}

func TestFindSimilar_NilTargetAndCount(t *testing.T) {
	engine := newTestEngine(t)
	if got := engine.FindSimilar(nil, 5); got != nil {
		t.Errorf("FindSimilar(nil) = %v, want nil", got)
	}
	target, _ := engine.Lookup("kenji")
	if got := engine.FindSimilar(target, 0); got != nil {
		t.Errorf("FindSimilar(count=0) = %v, want nil", got)
	}
}

func TestFindSimilarByUsername(t *testing.T) {
	engine := newTestEngine(t)

	got, err := engine.FindSimilarByUsername("kenji", 2)
	if err != nil {
		t.Fatalf("FindSimilarByUsername(kenji) error = %v", err)
	}
	if len(got) != 2 {
		t.Errorf("got %d results, want 2", len(got))
	}

	_, err = engine.FindSimilarByUsername("nobody", 2)
	if !errors.Is(err, ErrMemberNotFound) {
		t.Errorf("error = %v, want ErrMemberNotFound", err)
	}
}
