package e2e

import (
	"encoding/json"
	"testing"

	"github.com/hyperjump/meibo/internal/models"
)

func TestBuildCorpus_Shape(t *testing.T) {
	corpus := BuildCorpus()

	if corpus.TotalMembers != corpusSize {
		t.Fatalf("expected %d members, got %d", corpusSize, corpus.TotalMembers)
	}
	if corpus.TotalQueries == 0 {
		t.Fatal("corpus has no query test cases")
	}

	seen := make(map[string]bool, len(corpus.Profiles))
	for _, p := range corpus.Profiles {
		if p.Username == "" {
			t.Fatal("generated profile without username")
		}
		if seen[p.Username] {
			t.Fatalf("duplicate username %q", p.Username)
		}
		seen[p.Username] = true
	}

	perArchetype := corpusSize / len(archetypes())
	for _, a := range archetypes() {
		if got := len(membersOf(corpus.Profiles, a.slug)); got != perArchetype {
			t.Errorf("archetype %s has %d members, want %d", a.slug, got, perArchetype)
		}
	}

	for _, tc := range corpus.TestCases {
		if len(tc.ExpectedUsernames) == 0 {
			t.Errorf("test case %q expects no usernames", tc.Description)
		}
	}
}

func TestFeedJSON_RoundTrip(t *testing.T) {
	corpus := BuildCorpus()
	data, err := FeedJSON(corpus.Profiles)
	if err != nil {
		t.Fatal(err)
	}

	var raw []models.RawProfile
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("feed does not parse as raw profiles: %v", err)
	}
	if len(raw) != corpus.TotalMembers {
		t.Fatalf("expected %d raw profiles, got %d", corpus.TotalMembers, len(raw))
	}

	first := raw[0]
	if string(first.Username) != "solana-dev-00" {
		t.Errorf("first username = %q, want solana-dev-00", first.Username)
	}
	if int64(first.PostDate) != basePostDate {
		t.Errorf("first post date = %d, want %d", first.PostDate, basePostDate)
	}
	if len(first.Tags) == 0 {
		t.Error("first profile lost its tags in the round trip")
	}
}

func TestMessyFeedJSON_Parses(t *testing.T) {
	var raw []models.RawProfile
	if err := json.Unmarshal(MessyFeedJSON(), &raw); err != nil {
		t.Fatalf("messy feed does not parse: %v", err)
	}
	if len(raw) != 3 {
		t.Fatalf("expected 3 records, got %d", len(raw))
	}

	bot := raw[0]
	if string(bot.Name) != "42" {
		t.Errorf("numeric name = %q, want 42", bot.Name)
	}
	if len(bot.Tags) != 1 || bot.Tags[0] != "automation" {
		t.Errorf("bare string tags = %v, want [automation]", bot.Tags)
	}
	if int64(bot.PostDate) == 0 {
		t.Error("date string should parse to a non-zero post date")
	}

	clock := raw[2]
	if int64(clock.PostDate) != 1700000000000 {
		t.Errorf("epoch seconds = %d, want scaled to millis 1700000000000", clock.PostDate)
	}
	if len(clock.Tags) != 2 {
		t.Errorf("tags with junk elements = %v, want the 2 string entries kept", clock.Tags)
	}
}
