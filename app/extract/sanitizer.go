package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Phrases that mark navigation/footer boilerplate in newsletter emails.
// Shared with the segmenter, which re-applies the check per element because
// sanitization does not always cascade into every nested node.
var boilerplatePhrases = []string{
	"unsubscribe",
	"privacy policy",
	"manage preferences",
	"view in browser",
}

var boilerplateAttrRe = regexp.MustCompile(`(?i)unsubscribe|footer|header`)

// Elements that can hold boilerplate text on their own. Matching is done on
// the smallest containing element so a phrase in a footer cell does not take
// the whole message body with it.
const phraseCandidates = "p, div, td, span, li, a, footer"

type Sanitizer struct{}

func NewSanitizer() *Sanitizer {
	return &Sanitizer{}
}

// Run strips non-content markup from the document in place and returns it.
// An empty document passes through unchanged; there are no failure modes.
func (s *Sanitizer) Run(doc *goquery.Document) *goquery.Document {
	doc.Find("script, style, meta, link").Remove()

	doc.Find("*").Each(func(_ int, sel *goquery.Selection) {
		class, _ := sel.Attr("class")
		id, _ := sel.Attr("id")
		if boilerplateAttrRe.MatchString(class) || boilerplateAttrRe.MatchString(id) {
			sel.Remove()
		}
	})

	// Content-based pass runs after the structural one, so text that only
	// became reachable once wrappers were removed is still caught.
	s.removeBoilerplateText(doc)
	s.removeEmptyElements(doc)

	return doc
}

// removeBoilerplateText drops the smallest elements whose text contains a
// boilerplate phrase. Picking the minimal container keeps the removal from
// cascading up to the document body.
func (s *Sanitizer) removeBoilerplateText(doc *goquery.Document) {
	var doomed []*goquery.Selection

	doc.Find(phraseCandidates).Each(func(_ int, sel *goquery.Selection) {
		if !containsBoilerplate(sel.Text()) {
			return
		}
		childMatches := false
		sel.Find(phraseCandidates).EachWithBreak(func(_ int, child *goquery.Selection) bool {
			if containsBoilerplate(child.Text()) {
				childMatches = true
				return false
			}
			return true
		})
		if !childMatches {
			doomed = append(doomed, sel)
		}
	})

	for _, sel := range doomed {
		sel.Remove()
	}
}

// removeEmptyElements drops elements that carry neither text nor images.
// Document scaffolding (html, head, body) is left alone.
func (s *Sanitizer) removeEmptyElements(doc *goquery.Document) {
	var doomed []*goquery.Selection

	doc.Find("body *").Each(func(_ int, sel *goquery.Selection) {
		if goquery.NodeName(sel) == "img" {
			return
		}
		if strings.TrimSpace(sel.Text()) == "" && sel.Find("img").Length() == 0 {
			doomed = append(doomed, sel)
		}
	})

	for _, sel := range doomed {
		sel.Remove()
	}
}

func containsBoilerplate(text string) bool {
	lower := strings.ToLower(text)
	for _, phrase := range boilerplatePhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}
