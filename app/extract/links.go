package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var videoDomains = []string{"youtube.com", "youtu.be"}

var socialDomains = []string{"twitter.com", "x.com", "linkedin.com"}

var articleTextHints = []string{"read more", "continue reading", "full article"}

// extractLinks collects every usable anchor inside the element's subtree.
// Unsubscribe/privacy links are skipped and relative hrefs are dropped, so
// every returned href is absolute.
func extractLinks(sel *goquery.Selection) []Link {
	links := []Link{}

	sel.Find("a").Each(func(_ int, a *goquery.Selection) {
		href, ok := a.Attr("href")
		href = strings.TrimSpace(href)
		if !ok || href == "" {
			return
		}

		text := strings.TrimSpace(a.Text())
		lowerText := strings.ToLower(text)
		lowerHref := strings.ToLower(href)

		if strings.Contains(lowerText, "unsubscribe") || strings.Contains(lowerHref, "unsubscribe") {
			return
		}
		if strings.Contains(lowerText, "privacy") {
			return
		}

		href = normalizeURL(href)
		if href == "" {
			return
		}

		if len(text) < 2 {
			if title, ok := a.Attr("title"); ok && strings.TrimSpace(title) != "" {
				text = strings.TrimSpace(title)
			} else {
				text = "Link"
			}
		}
		text = truncate(text, 200)

		links = append(links, Link{
			Text:   text,
			Href:   href,
			Target: "_blank",
			Type:   classifyLink(href, strings.ToLower(text)),
		})
	})

	return links
}

// normalizeURL passes absolute http(s) URLs through, upgrades
// protocol-relative ones, and drops everything else. Normalization is
// idempotent: an already-upgraded URL is returned unchanged.
func normalizeURL(raw string) string {
	switch {
	case strings.HasPrefix(raw, "http://"), strings.HasPrefix(raw, "https://"):
		return raw
	case strings.HasPrefix(raw, "//"):
		return "https:" + raw
	default:
		return ""
	}
}

func classifyLink(href, lowerText string) LinkType {
	lowerHref := strings.ToLower(href)

	for _, domain := range videoDomains {
		if strings.Contains(lowerHref, domain) {
			return LinkVideo
		}
	}
	for _, domain := range socialDomains {
		if strings.Contains(lowerHref, domain) {
			return LinkSocial
		}
	}
	for _, hint := range articleTextHints {
		if strings.Contains(lowerText, hint) {
			return LinkArticle
		}
	}
	if strings.Contains(lowerText, "download") || strings.HasSuffix(lowerHref, ".pdf") {
		return LinkDownload
	}
	return LinkExternal
}
