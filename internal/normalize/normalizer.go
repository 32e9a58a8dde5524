// Package normalize derives enriched member profiles from raw records:
// cleaned text, canonical locations, extracted keywords, social links, and
// the searchable-text substrate that directory queries run against.
package normalize

import (
	"strings"

	"github.com/hyperjump/meibo/internal/models"
)

// Normalizer turns raw profile records into their normalized form. The zero
// option set uses the built-in keyword and alias tables.
type Normalizer struct {
	keywords []KeywordPattern
	aliases  map[string]string
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithKeywordPatterns appends extra extraction patterns to the built-in table.
func WithKeywordPatterns(extra ...KeywordPattern) Option {
	return func(n *Normalizer) {
		n.keywords = append(n.keywords, extra...)
	}
}

// WithLocationAliases adds or overrides location alias entries.
func WithLocationAliases(extra map[string]string) Option {
	return func(n *Normalizer) {
		for alias, canonical := range extra {
			key := strings.ToLower(strings.TrimSpace(alias))
			if key == "" {
				continue
			}
			n.aliases[key] = strings.ToLower(strings.TrimSpace(canonical))
		}
	}
}

// New creates a Normalizer with the built-in tables plus any options.
func New(opts ...Option) *Normalizer {
	n := &Normalizer{
		keywords: DefaultKeywordTable(),
		aliases:  DefaultLocationAliases(),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalize derives the enriched form of every record, preserving input
// order. It is total: missing or malformed fields degrade to empty values,
// never an error.
func (n *Normalizer) Normalize(raw []models.RawProfile) []models.NormalizedProfile {
	out := make([]models.NormalizedProfile, 0, len(raw))
	for _, r := range raw {
		out = append(out, n.NormalizeRecord(r))
	}
	return out
}

// NormalizeRecord derives the enriched form of a single record.
func (n *Normalizer) NormalizeRecord(raw models.RawProfile) models.NormalizedProfile {
	p := models.NormalizedProfile{
		Username:             strings.TrimSpace(string(raw.Username)),
		Name:                 CleanText(string(raw.Name)),
		Location:             CleanText(string(raw.Location)),
		ProfileImage:         CleanText(string(raw.ProfileImage)),
		ProfessionalSummary:  CleanText(string(raw.ProfessionalSummary)),
		PersonalSummary:      CleanText(string(raw.PersonalSummary)),
		PhilosophicalSummary: CleanText(string(raw.PhilosophicalSummary)),
		PostDate:             raw.PostDate,
	}

	p.LocationNormalized = NormalizeLocation(p.Location, n.aliases)
	p.HasLocation = p.LocationNormalized != ""
	p.Tags = cleanTags(raw.Tags)
	p.ProfessionalKeywords = n.keywordsFor(raw.ProfessionalKeywords, p.ProfessionalSummary)
	p.SocialLinks = socialLinks(raw)
	p.HasProfessionalSummary = p.ProfessionalSummary != ""
	p.HasPersonalSummary = p.PersonalSummary != ""
	p.HasSocialLinks = len(p.SocialLinks) > 0
	p.SearchableText = searchableText(p)
	return p
}

// keywordsFor unions the upstream-supplied keyword list (cleaned, lowercased)
// with pattern-table extraction over the professional summary, deduplicated
// in first-seen order.
func (n *Normalizer) keywordsFor(supplied models.StringList, professionalSummary string) []string {
	var keywords []string
	seen := make(map[string]bool)
	for _, kw := range supplied {
		cleaned := strings.ToLower(CleanText(kw))
		if cleaned == "" || seen[cleaned] {
			continue
		}
		keywords = append(keywords, cleaned)
		seen[cleaned] = true
	}
	for _, kw := range ExtractKeywords(professionalSummary, n.keywords) {
		if seen[kw] {
			continue
		}
		keywords = append(keywords, kw)
		seen[kw] = true
	}
	return keywords
}

func cleanTags(tags models.StringList) []string {
	var out []string
	for _, tag := range tags {
		if cleaned := CleanText(tag); cleaned != "" {
			out = append(out, cleaned)
		}
	}
	return out
}

// socialLinks assembles the platform map from whichever raw link fields are
// present and non-empty after cleaning.
func socialLinks(raw models.RawProfile) map[string]string {
	links := make(map[string]string, 3)
	if v := CleanText(string(raw.XURL)); v != "" {
		links[models.PlatformTwitter] = v
	}
	if v := CleanText(string(raw.LinkedinURL)); v != "" {
		links[models.PlatformLinkedin] = v
	}
	if v := CleanText(string(raw.DiscordHandle)); v != "" {
		links[models.PlatformDiscord] = v
	}
	if len(links) == 0 {
		return nil
	}
	return links
}

// searchableText builds the lowercase match substrate from the cleaned
// display fields and tags. Fixed at construction; never recomputed.
func searchableText(p models.NormalizedProfile) string {
	parts := make([]string, 0, 6+len(p.Tags))
	for _, part := range []string{
		p.Name, p.Username, p.Location,
		p.ProfessionalSummary, p.PersonalSummary, p.PhilosophicalSummary,
	} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	parts = append(parts, p.Tags...)
	return strings.ToLower(strings.Join(parts, " "))
}
