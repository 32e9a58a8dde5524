// Package e2e exercises the whole pipeline, feed bytes through loader and
// engine, against a generated member corpus with known query answers.
package e2e

import (
	"fmt"

	"github.com/hyperjump/meibo/internal/models"
)

// corpusSize is the number of generated members. Archetypes cycle, so each
// archetype owns corpusSize / len(archetypes) members.
const corpusSize = 100

// basePostDate anchors the generated post_date sequence (epoch millis).
const basePostDate = int64(1700000000000)

// FeedProfile is one raw feed record the corpus emits. Field names mirror the
// upstream feed schema.
type FeedProfile struct {
	Username            string   `json:"username"`
	Name                string   `json:"name"`
	Location            string   `json:"location,omitempty"`
	ProfessionalSummary string   `json:"professional_summary,omitempty"`
	PersonalSummary     string   `json:"personal_summary,omitempty"`
	Tags                []string `json:"tags,omitempty"`
	XURL                string   `json:"x_url,omitempty"`
	PostDate            int64    `json:"post_date,omitempty"`
}

// QueryTestCase is a directory query and the usernames that must appear in
// its results.
type QueryTestCase struct {
	Description       string
	Filters           models.FilterSpec
	ExpectedUsernames []string
	// Exact marks cases whose result set must equal ExpectedUsernames, not
	// just contain them. Fuzzy text cases stay inexact because a typo can
	// legitimately brush against unrelated words.
	Exact bool
}

// Corpus holds generated members and query test cases.
type Corpus struct {
	Profiles     []FeedProfile
	TestCases    []QueryTestCase
	TotalMembers int
	TotalQueries int
}

// archetype is a member template. Summaries carry a signature term that no
// other archetype uses, so text queries have a known answer set.
type archetype struct {
	slug         string
	displayName  string
	location     string
	tags         []string
	professional string
	personal     string
}

func archetypes() []archetype {
	return []archetype{
		{
			slug:         "solana-dev",
			displayName:  "Solana Dev",
			location:     "Tokyo",
			tags:         []string{"Web3", "Solana", "Rust"},
			professional: "Solana smart contract developer building validator tooling.",
			personal:     "Collects mechanical keyboards.",
		},
		{
			slug:         "defi-founder",
			displayName:  "DeFi Founder",
			location:     "San Francisco",
			tags:         []string{"DeFi", "Web3"},
			professional: "Founder of a lending protocol for onchain credit markets.",
			personal:     "Runs trail ultramarathons.",
		},
		{
			slug:         "nft-artist",
			displayName:  "NFT Artist",
			location:     "New York",
			tags:         []string{"NFT", "Art"},
			professional: "Digital artist releasing generative collections.",
			personal:     "Paints watercolors on weekends.",
		},
		{
			slug:         "rust-systems",
			displayName:  "Rust Systems",
			location:     "",
			tags:         []string{"Rust", "Systems"},
			professional: "Systems engineer focused on consensus runtimes.",
			personal:     "Restores vintage synthesizers.",
		},
		{
			slug:         "react-frontend",
			displayName:  "React Frontend",
			location:     "Berlin",
			tags:         []string{"React", "TypeScript"},
			professional: "Frontend developer shipping wallet interfaces.",
			personal:     "Brews specialty coffee.",
		},
		{
			slug:         "dao-steward",
			displayName:  "DAO Steward",
			location:     "Lisbon",
			tags:         []string{"DAO", "Governance"},
			professional: "Governance researcher coordinating treasury programs.",
			personal:     "Hosts a weekly book club.",
		},
		{
			slug:         "bitcoin-og",
			displayName:  "Bitcoin OG",
			location:     "Austin",
			tags:         []string{"Bitcoin"},
			professional: "Early bitcoin investor operating full nodes.",
			personal:     "Keeps bees.",
		},
		{
			slug:         "ml-researcher",
			displayName:  "ML Researcher",
			location:     "London",
			tags:         []string{"AI", "Python"},
			professional: "Machine learning researcher training recommendation models.",
			personal:     "Plays competitive chess.",
		},
		{
			slug:         "product-designer",
			displayName:  "Product Designer",
			location:     "Tokyo",
			tags:         []string{"Design", "UX"},
			professional: "Product designer sketching onboarding flows.",
			personal:     "Practices calligraphy.",
		},
		{
			slug:         "indie-hacker",
			displayName:  "Indie Hacker",
			location:     "Bali",
			tags:         []string{"Indie", "Bootstrapping"},
			professional: "Indie entrepreneur bootstrapping small internet tools.",
			personal:     "Surfs at sunrise.",
		},
	}
}

// BuildCorpus generates corpusSize members by cycling the archetypes, plus
// query test cases whose expected answers are computed from the same data.
func BuildCorpus() *Corpus {
	profiles := buildProfiles(corpusSize)
	cases := buildQueryTestCases(profiles)
	return &Corpus{
		Profiles:     profiles,
		TestCases:    cases,
		TotalMembers: len(profiles),
		TotalQueries: len(cases),
	}
}

func buildProfiles(n int) []FeedProfile {
	arch := archetypes()
	profiles := make([]FeedProfile, 0, n)
	for i := 0; i < n; i++ {
		a := arch[i%len(arch)]
		seq := i / len(arch)
		profiles = append(profiles, FeedProfile{
			Username:            fmt.Sprintf("%s-%02d", a.slug, seq),
			Name:                fmt.Sprintf("%s %02d", a.displayName, seq),
			Location:            a.location,
			ProfessionalSummary: a.professional,
			PersonalSummary:     a.personal,
			Tags:                append([]string(nil), a.tags...),
			XURL:                fmt.Sprintf("https://x.com/%s-%02d", a.slug, seq),
			PostDate:            basePostDate + int64(i)*60000,
		})
	}
	return profiles
}

// membersOf returns the usernames of every generated member of one archetype.
func membersOf(profiles []FeedProfile, slug string) []string {
	var out []string
	for _, p := range profiles {
		if hasPrefixSlug(p.Username, slug) {
			out = append(out, p.Username)
		}
	}
	return out
}

func hasPrefixSlug(username, slug string) bool {
	return len(username) > len(slug) && username[:len(slug)] == slug && username[len(slug)] == '-'
}

func buildQueryTestCases(profiles []FeedProfile) []QueryTestCase {
	solana := membersOf(profiles, "solana-dev")
	defi := membersOf(profiles, "defi-founder")
	nft := membersOf(profiles, "nft-artist")
	rust := membersOf(profiles, "rust-systems")
	react := membersOf(profiles, "react-frontend")
	dao := membersOf(profiles, "dao-steward")
	ml := membersOf(profiles, "ml-researcher")
	designer := membersOf(profiles, "product-designer")

	return []QueryTestCase{
		{
			Description:       "signature term finds its archetype",
			Filters:           models.FilterSpec{Search: "validator"},
			ExpectedUsernames: solana,
			Exact:             true,
		},
		{
			Description:       "multi term query requires every term",
			Filters:           models.FilterSpec{Search: "lending protocol"},
			ExpectedUsernames: defi,
			Exact:             true,
		},
		{
			Description:       "query matching is case insensitive",
			Filters:           models.FilterSpec{Search: "VALIDATOR"},
			ExpectedUsernames: solana,
			Exact:             true,
		},
		{
			Description:       "location filter returns every member there",
			Filters:           models.FilterSpec{Location: "tokyo"},
			ExpectedUsernames: union(solana, designer),
			Exact:             true,
		},
		{
			Description:       "tag filter matches across archetypes",
			Filters:           models.FilterSpec{Tags: []string{"rust"}},
			ExpectedUsernames: union(solana, rust),
			Exact:             true,
		},
		{
			Description:       "multiple tags widen the match",
			Filters:           models.FilterSpec{Tags: []string{"nft", "governance"}},
			ExpectedUsernames: union(nft, dao),
			Exact:             true,
		},
		{
			Description:       "profession filter scans the professional summary",
			Filters:           models.FilterSpec{Profession: "researcher"},
			ExpectedUsernames: union(dao, ml),
			Exact:             true,
		},
		{
			Description:       "text and location combine",
			Filters:           models.FilterSpec{Search: "wallet", Location: "berlin"},
			ExpectedUsernames: react,
			Exact:             true,
		},
		{
			Description:       "misspelled term still matches fuzzily",
			Filters:           models.FilterSpec{Search: "validater"},
			ExpectedUsernames: solana,
		},
		{
			Description:       "no filters returns the whole collection",
			Filters:           models.FilterSpec{},
			ExpectedUsernames: allUsernames(profiles),
			Exact:             true,
		},
	}
}

func union(groups ...[]string) []string {
	var out []string
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

func allUsernames(profiles []FeedProfile) []string {
	out := make([]string, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, p.Username)
	}
	return out
}
