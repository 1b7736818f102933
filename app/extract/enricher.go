package extract

import (
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const readingWordsPerMinute = 200

// Enricher derives document-level metadata from the segmented sections:
// title, search text, word count, taxonomy tags and the extraction
// confidence score.
type Enricher struct{}

func NewEnricher() *Enricher {
	return &Enricher{}
}

func (e *Enricher) Run(doc *goquery.Document, sections []Section, source SourceInfo, brand BrandColors) (Metadata, string, int, []string, float64) {
	title := e.resolveTitle(doc, source)

	var parts []string
	parts = append(parts, title)
	wordCount := 0
	hasImage := false
	hasLink := false

	for _, section := range sections {
		if section.Title != "" {
			parts = append(parts, section.Title)
		}
		if section.Content != "" {
			parts = append(parts, section.Content)
			wordCount += len(strings.Fields(section.Content))
		}
		if len(section.Images) > 0 {
			hasImage = true
		}
		if len(section.Links) > 0 {
			hasLink = true
		}
	}

	searchText := strings.ToLower(strings.Join(parts, " "))
	tags := MatchTags(searchText)
	confidence := e.score(title, len(sections), hasImage, hasLink)

	now := time.Now().UTC()
	metadata := Metadata{
		Title:         title,
		PublishDate:   now, // source HTML is not scanned for a publish date
		ReadTime:      readTime(wordCount),
		BrandColors:   brand,
		Source:        source.Name,
		SourceLogo:    source.Logo,
		SourceWebsite: source.Website,
		ExtractedAt:   now,
	}

	return metadata, searchText, wordCount, tags, confidence
}

// resolveTitle picks the first non-empty candidate: document title, first
// h1, an element whose class/id mentions "subject", then "title", then a
// synthesized "<source> Newsletter".
func (e *Enricher) resolveTitle(doc *goquery.Document, source SourceInfo) string {
	candidates := []func() string{
		func() string { return doc.Find("title").First().Text() },
		func() string { return doc.Find("h1").First().Text() },
		func() string {
			return doc.Find(`[class*="subject"], [id*="subject"]`).First().Text()
		},
		func() string {
			return doc.Find(`[class*="title"], [id*="title"]`).First().Text()
		},
	}

	for _, candidate := range candidates {
		if title := cleanText(candidate()); title != "" {
			return title
		}
	}
	return fmt.Sprintf("%s Newsletter", source.Name)
}

// score starts at 0.5 and adds a fixed bump per positive signal, capped at
// 1.0. Adding a signal to an otherwise-fixed input never lowers the score.
func (e *Enricher) score(title string, sectionCount int, hasImage, hasLink bool) float64 {
	confidence := 0.5
	if len(title) > 10 {
		confidence += 0.2
	}
	if sectionCount >= 3 {
		confidence += 0.1
	}
	if hasImage {
		confidence += 0.1
	}
	if hasLink {
		confidence += 0.1
	}
	if confidence > 1.0 {
		confidence = 1.0
	}
	return confidence
}

func readTime(wordCount int) string {
	minutes := wordCount / readingWordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return fmt.Sprintf("%d min read", minutes)
}
