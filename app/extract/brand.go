package extract

import (
	"regexp"

	"github.com/PuerkitoBio/goquery"
)

const (
	DefaultPrimaryColor = "#6C7BFF"
	DefaultAccentColor  = "#1E1E1E"
)

var (
	cssColorDeclRe = regexp.MustCompile(`(?i)(?:background-color|color)\s*:\s*(#(?:[0-9a-f]{6}|[0-9a-f]{3}))`)
	hexColorRe     = regexp.MustCompile(`(?i)#(?:[0-9a-f]{6}|[0-9a-f]{3})`)
	inlineColorRe  = regexp.MustCompile(`(?i)color|background`)
)

type BrandExtractor struct{}

func NewBrandExtractor() *BrandExtractor {
	return &BrandExtractor{}
}

// Run scans the raw HTML for CSS color declarations and the document for
// inline-styled elements. The first raw declaration supplies primary and the
// second accent; when an inline-styled element carries a color it wins the
// primary slot. Never fails: anything unparseable falls back to the defaults.
func (b *BrandExtractor) Run(doc *goquery.Document, rawHTML string) BrandColors {
	colors := BrandColors{
		Primary: DefaultPrimaryColor,
		Accent:  DefaultAccentColor,
	}

	matches := cssColorDeclRe.FindAllStringSubmatch(rawHTML, -1)
	if len(matches) > 0 {
		colors.Primary = matches[0][1]
	}
	if len(matches) > 1 {
		colors.Accent = matches[1][1]
	}

	if doc == nil {
		return colors
	}

	doc.Find("[style]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		style, _ := sel.Attr("style")
		if !inlineColorRe.MatchString(style) {
			return true
		}
		if hex := hexColorRe.FindString(style); hex != "" {
			colors.Primary = hex
			return false
		}
		return true
	})

	return colors
}
