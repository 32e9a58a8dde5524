package directory

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/hyperjump/meibo/internal/models"
)

func TestSortResults_ByName(t *testing.T) {
	engine := newTestEngine(t)
	results := engine.Search(models.FilterSpec{})

	got := usernames(SortResults(results, SortByName))
	want := []string{"hana", "kenji", "mei", "ravi", "sofia"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("SortResults(name) mismatch (-want +got):\n%s", diff)
	}
}

func TestSortResults_NameIsLocaleAware(t *testing.T) {
	results := []models.ScoredResult{
		{Profile: &models.NormalizedProfile{Username: "z", Name: "Zoe"}},
		{Profile: &models.NormalizedProfile{Username: "e", Name: "émile zola"}},
		{Profile: &models.NormalizedProfile{Username: "a", Name: "adam"}},
	}

	got := usernames(SortResults(results, SortByName))
	// Byte order would put "Zoe" first; collation folds case and accents.
	want := []string{"a", "e", "z"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("SortResults(name) mismatch (-want +got):\n%s", diff)
	}
}

func TestSortResults_ByRecent(t *testing.T) {
	engine := newTestEngine(t)
	results := engine.Search(models.FilterSpec{})

	got := usernames(SortResults(results, SortByRecent))
	// sofia has no post date and sinks to the end.
	want := []string{"mei", "hana", "kenji", "ravi", "sofia"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("SortResults(recent) mismatch (-want +got):\n%s", diff)
	}
}

func TestSortResults_UnknownCriterionFallsBackToName(t *testing.T) {
	engine := newTestEngine(t)
	results := engine.Search(models.FilterSpec{})

	got := usernames(SortResults(results, SortCriterion("velocity")))
	want := usernames(SortResults(results, SortByName))
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("SortResults(velocity) mismatch (-want +got):\n%s", diff)
	}
}

func TestSortResults_DoesNotMutateInput(t *testing.T) {
	engine := newTestEngine(t)
	results := engine.Search(models.FilterSpec{})
	before := usernames(results)

	SortResults(results, SortByRecent)

	if diff := cmp.Diff(before, usernames(results)); diff != "" {
		t.Errorf("input mutated by SortResults (-want +got):\n%s", diff)
	}
}

func TestSortResults_EmptyInput(t *testing.T) {
	if got := SortResults(nil, SortByName); len(got) != 0 {
		t.Errorf("SortResults(nil) = %v, want empty", got)
	}
}
