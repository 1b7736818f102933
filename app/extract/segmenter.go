package extract

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

const candidateSelector = "h1, h2, h3, h4, h5, h6, p, div, table, img, ul, ol"

// Block-level candidates. A div containing any of these is a layout wrapper,
// not a content unit, and is descended into instead of emitted.
const blockSelector = "h1, h2, h3, h4, h5, h6, p, div, table"

const headingSelector = "h1, h2, h3, h4, h5, h6"

var dataHighlightRe = regexp.MustCompile(`[$€£]\s?\d|[%📊📈📉]`)

// Segmenter walks a sanitized document and emits typed sections in document
// order with contiguous 1-based ordering.
type Segmenter struct{}

func NewSegmenter() *Segmenter {
	return &Segmenter{}
}

func (s *Segmenter) Run(doc *goquery.Document) []Section {
	sections := []Section{}
	order := 0
	var emitted []*goquery.Selection

	doc.Find(candidateSelector).Each(func(_ int, sel *goquery.Selection) {
		if isInsideAny(sel, emitted) {
			return
		}

		name := goquery.NodeName(sel)
		if name == "div" && sel.Find(blockSelector).Length() > 0 {
			return
		}

		text := cleanText(sel.Text())
		hasImage := name == "img" || sel.Find("img").Length() > 0

		if text == "" && !hasImage {
			return
		}
		if len(text) < 10 && !isHeadingTag(name) && !hasImage {
			return
		}
		// Sanitization usually removes boilerplate, but it does not always
		// cascade into every nested node.
		if containsBoilerplate(text) {
			return
		}

		order++
		section := s.buildSection(sel, name, text, order)
		sections = append(sections, section)
		emitted = append(emitted, sel)
	})

	return s.merge(sections)
}

// merge is the extension point for combining adjacent related sections.
// Sections currently pass through unchanged.
func (s *Segmenter) merge(sections []Section) []Section {
	return sections
}

func (s *Segmenter) buildSection(sel *goquery.Selection, name, text string, order int) Section {
	section := Section{
		ID:     fmt.Sprintf("section-%d", order),
		Order:  order,
		Links:  extractLinks(sel),
		Images: extractImages(sel),
	}

	hasImage := name == "img" || sel.Find("img").Length() > 0

	switch {
	case isHeadingTag(name):
		section.Type = SectionHeading
		section.Level = int(name[1] - '0')
		section.Title = text
		section.Content = text

	case name == "img":
		section.Type = SectionImage
		alt, _ := sel.Attr("alt")
		section.Title = firstNonEmpty(cleanText(alt), "Image")

	case name == "table":
		section.Type = SectionDataTable
		section.Title = "Data Table"
		section.Content = text
		section.TableData = extractTableData(sel)

	case hasImage && len(text) < 50:
		section.Type = SectionImageWithCaption
		section.Title = firstNonEmpty(text, "Image")
		section.Content = text

	case hasImage:
		section.Type = SectionArticleWithImages
		section.Title = s.contextTitle(sel, text)
		section.Content = text

	case sel.Find("a").Length() > 3:
		section.Type = SectionLinkCollection
		section.Title = s.contextTitle(sel, text)
		section.Content = text

	case dataHighlightRe.MatchString(text):
		section.Type = SectionDataHighlight
		section.Title = s.contextTitle(sel, text)
		section.Content = text

	case len(text) > 500:
		section.Type = SectionArticleBlock
		section.Title = s.contextTitle(sel, text)
		section.Content = text

	case sel.Find("ul, ol").Length() > 0 || name == "ul" || name == "ol":
		section.Type = SectionListContent
		section.Title = s.contextTitle(sel, text)
		section.Content = text

	default:
		section.Type = SectionTextBlock
		section.Title = s.contextTitle(sel, text)
		section.Content = text
	}

	return section
}

// contextTitle resolves a title for body sections: the nearest preceding
// heading (walking previous siblings, then up the ancestor chain), falling
// back to the element's own first sentence when that is short enough.
func (s *Segmenter) contextTitle(sel *goquery.Selection, text string) string {
	for cur := sel; cur.Length() > 0; cur = cur.Parent() {
		for prev := cur.Prev(); prev.Length() > 0; prev = prev.Prev() {
			var heading *goquery.Selection
			if isHeadingTag(goquery.NodeName(prev)) {
				heading = prev
			} else if found := prev.Find(headingSelector); found.Length() > 0 {
				heading = found.Last()
			}
			if heading != nil {
				title := truncate(cleanText(heading.Text()), 100)
				if title != "" {
					return title
				}
			}
		}
		if goquery.NodeName(cur) == "body" {
			break
		}
	}

	if idx := strings.Index(text, "."); idx >= 0 && idx <= 100 {
		return text[:idx]
	}
	return ""
}

func extractTableData(table *goquery.Selection) [][]string {
	data := [][]string{}
	table.Find("tr").Each(func(_ int, row *goquery.Selection) {
		cells := []string{}
		row.Find("td, th").Each(func(_ int, cell *goquery.Selection) {
			cells = append(cells, cleanText(cell.Text()))
		})
		if len(cells) > 0 {
			data = append(data, cells)
		}
	})
	return data
}

// isInsideAny reports whether sel sits inside the subtree of any previously
// emitted element, comparing against the underlying parse-tree nodes.
func isInsideAny(sel *goquery.Selection, emitted []*goquery.Selection) bool {
	if len(sel.Nodes) == 0 {
		return false
	}
	for node := sel.Nodes[0].Parent; node != nil; node = node.Parent {
		for _, parent := range emitted {
			for _, parentNode := range parent.Nodes {
				if node == parentNode {
					return true
				}
			}
		}
	}
	return false
}

func isHeadingTag(name string) bool {
	return len(name) == 2 && name[0] == 'h' && name[1] >= '1' && name[1] <= '6'
}

func cleanText(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// truncate shortens s to at most limit bytes without splitting a rune.
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	for limit > 0 && !utf8.RuneStart(s[limit]) {
		limit--
	}
	return s[:limit]
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
