package extract

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
)

const fallbackTextLimit = 1000

// Extractor orchestrates the extraction pipeline: sanitize, brand colors,
// segmentation, enrichment. It never propagates an error or panic to the
// caller; arbitrary untrusted email HTML failing extraction is a normal
// outcome and yields a degraded single-section result instead.
type Extractor struct {
	sanitizer *Sanitizer
	brand     *BrandExtractor
	segmenter *Segmenter
	enricher  *Enricher
}

func NewExtractor() *Extractor {
	return &Extractor{
		sanitizer: NewSanitizer(),
		brand:     NewBrandExtractor(),
		segmenter: NewSegmenter(),
		enricher:  NewEnricher(),
	}
}

func (e *Extractor) Run(html string, source SourceInfo) Result {
	result, err := e.run(html, source)
	if err != nil {
		slog.Warn("Content extraction failed, using fallback",
			"source", source.Name,
			"error", err)
		return e.fallback(html, source, err)
	}
	return result
}

func (e *Extractor) run(html string, source SourceInfo) (result Result, err error) {
	defer func() {
		// DOM traversal over adversarial HTML must not take the process down.
		if r := recover(); r != nil {
			err = fmt.Errorf("extraction panicked: %v", r)
		}
	}()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return Result{}, fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc = e.sanitizer.Run(doc)
	brand := e.brand.Run(doc, html)
	sections := e.segmenter.Run(doc)
	metadata, searchText, wordCount, tags, confidence := e.enricher.Run(doc, sections, source, brand)

	return Result{
		Success:              true,
		Metadata:             metadata,
		Sections:             sections,
		SearchText:           searchText,
		WordCount:            wordCount,
		Tags:                 tags,
		ExtractionConfidence: confidence,
	}, nil
}

// fallback packages the first chunk of visible text as a single article
// block so the message still reaches the user's queue instead of vanishing.
func (e *Extractor) fallback(html string, source SourceInfo, cause error) Result {
	text := truncate(visibleText(html), fallbackTextLimit)

	sections := []Section{}
	wordCount := 0
	if text != "" {
		sections = append(sections, Section{
			ID:      "section-1",
			Order:   1,
			Type:    SectionArticleBlock,
			Title:   source.Name,
			Content: text,
			Links:   []Link{},
			Images:  []Image{},
		})
		wordCount = len(strings.Fields(text))
	}

	now := time.Now().UTC()
	return Result{
		Success: false,
		Error:   cause.Error(),
		Metadata: Metadata{
			Title:         fmt.Sprintf("%s Newsletter", source.Name),
			PublishDate:   now,
			ReadTime:      readTime(wordCount),
			BrandColors:   BrandColors{Primary: DefaultPrimaryColor, Accent: DefaultAccentColor},
			Source:        source.Name,
			SourceLogo:    source.Logo,
			SourceWebsite: source.Website,
			ExtractedAt:   now,
		},
		Sections:             sections,
		SearchText:           strings.ToLower(text),
		WordCount:            wordCount,
		Tags:                 []string{},
		ExtractionConfidence: 0.3,
	}
}

// visibleText pulls readable text out of raw HTML, preferring readability's
// article extraction and degrading to a bare tag strip.
func visibleText(html string) string {
	article, err := readability.FromReader(strings.NewReader(html), nil)
	if err == nil && strings.TrimSpace(article.TextContent) != "" {
		return cleanText(article.TextContent)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	doc.Find("script, style").Remove()
	return cleanText(doc.Text())
}
