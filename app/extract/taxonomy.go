package extract

import "strings"

// taxonomyEntry associates a category tag with its trigger keywords.
// Matching is a plain lowercase substring check; iteration order is the
// declaration order below and downstream ranking depends on it, so entries
// must not be reordered.
type taxonomyEntry struct {
	Tag      string
	Keywords []string
}

var keywordTaxonomy = []taxonomyEntry{
	{Tag: "tech", Keywords: []string{"technology", "tech", " ai ", "software", "programming", "developer", "gadget"}},
	{Tag: "business", Keywords: []string{"business", "entrepreneur", "leadership", "management", "corporate"}},
	{Tag: "finance", Keywords: []string{"finance", "investing", "stocks", "crypto", "economy", "banking"}},
	{Tag: "startup", Keywords: []string{"startup", "founder", "venture capital", "fundraising", "accelerator"}},
	{Tag: "news", Keywords: []string{"news", "politics", "world", "breaking", "current events"}},
	{Tag: "data", Keywords: []string{"data", "analytics", "statistics", "research", "insights"}},
}

// MatchTags returns every taxonomy tag whose keywords appear in the text,
// in taxonomy declaration order. Input is lowercased before matching.
func MatchTags(lowerText string) []string {
	tags := []string{}
	for _, entry := range keywordTaxonomy {
		for _, keyword := range entry.Keywords {
			if containsKeyword(lowerText, keyword) {
				tags = append(tags, entry.Tag)
				break
			}
		}
	}
	return tags
}

// GuessCategory returns the first taxonomy tag matching the text, or "" when
// nothing matches. Ties break by declaration order.
func GuessCategory(lowerText string) string {
	tags := MatchTags(lowerText)
	if len(tags) == 0 {
		return ""
	}
	return tags[0]
}

func containsKeyword(lowerText, keyword string) bool {
	if len(keyword) > 0 && keyword[0] == ' ' {
		// Padded keywords match whole words only; pad the text so matches at
		// the boundaries are not lost.
		return strings.Contains(" "+lowerText+" ", keyword)
	}
	return strings.Contains(lowerText, keyword)
}
