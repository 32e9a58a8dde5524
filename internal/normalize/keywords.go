package normalize

import "strings"

// KeywordCategory classifies entries of the keyword pattern table.
type KeywordCategory string

const (
	CategoryRole       KeywordCategory = "role"
	CategoryTechnology KeywordCategory = "technology"
	CategoryExperience KeywordCategory = "experience"
)

// KeywordPattern is one extraction table entry: a lowercase pattern looked up
// as a substring of the professional summary, and the category it belongs to.
// A hit contributes the pattern itself as a keyword.
type KeywordPattern struct {
	Pattern  string
	Category KeywordCategory
}

// DefaultKeywordTable returns the built-in extraction patterns. Matching
// logic never changes when the table grows; extend it via configuration.
func DefaultKeywordTable() []KeywordPattern {
	return []KeywordPattern{
		// Role and domain words
		{"developer", CategoryRole},
		{"engineer", CategoryRole},
		{"founder", CategoryRole},
		{"designer", CategoryRole},
		{"investor", CategoryRole},
		{"advisor", CategoryRole},
		{"researcher", CategoryRole},
		{"entrepreneur", CategoryRole},
		{"blockchain", CategoryRole},
		{"crypto", CategoryRole},
		{"web3", CategoryRole},
		{"defi", CategoryRole},
		{"dao", CategoryRole},

		// Technology terms
		{"react", CategoryTechnology},
		{"solana", CategoryTechnology},
		{"ethereum", CategoryTechnology},
		{"bitcoin", CategoryTechnology},
		{"rust", CategoryTechnology},
		{"typescript", CategoryTechnology},
		{"javascript", CategoryTechnology},
		{"python", CategoryTechnology},
		{"smart contract", CategoryTechnology},

		// Experience phrase markers
		{"years of experience", CategoryExperience},
		{"year of experience", CategoryExperience},
	}
}

// ExtractKeywords scans the lowercased professional summary against the
// pattern table and returns the patterns found, in table order, deduplicated.
func ExtractKeywords(professionalSummary string, table []KeywordPattern) []string {
	if professionalSummary == "" {
		return nil
	}
	lower := strings.ToLower(professionalSummary)
	var found []string
	seen := make(map[string]bool)
	for _, entry := range table {
		if seen[entry.Pattern] {
			continue
		}
		if strings.Contains(lower, entry.Pattern) {
			found = append(found, entry.Pattern)
			seen[entry.Pattern] = true
		}
	}
	return found
}
