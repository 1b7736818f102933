package inbound

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/lettercomb/lettercomb/app/database"
	"github.com/lettercomb/lettercomb/app/extract"
)

var (
	digitsRe  = regexp.MustCompile(`\d+`)
	monthsRe  = regexp.MustCompile(`(?i)\b(january|february|march|april|may|june|july|august|september|october|november|december)\b`)
	weekdayRe = regexp.MustCompile(`(?i)\b(monday|tuesday|wednesday|thursday|friday|saturday|sunday)\b`)
	urlRe     = regexp.MustCompile(`https?://[^\s"'<>)]+`)
)

var titleCaser = cases.Title(language.English)

// SourceResolver matches an inbound sender against the newsletter source
// catalog, or synthesizes a new source when detection finds enough signal.
// Matching is intentionally approximate; near-duplicate sources are an
// accepted tradeoff and nothing here deletes or merges existing rows.
type SourceResolver struct {
	sourceRepo database.SourceRepository
}

func NewSourceResolver(sourceRepo database.SourceRepository) *SourceResolver {
	return &SourceResolver{sourceRepo: sourceRepo}
}

// ResolveOrCreate returns the source for a sender, creating one when
// detection succeeds. A nil source with nil error means the heuristics found
// nothing usable, which is not an error.
func (r *SourceResolver) ResolveOrCreate(fromEmail, subject, bodyHTML string) (*database.NewsletterSource, error) {
	email := strings.ToLower(strings.TrimSpace(fromEmail))
	domain := SenderDomain(email)
	pattern := NormalizeSubjectPattern(subject)

	source, err := r.sourceRepo.FindBySenderIdentity(email, domain, pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to match source: %w", err)
	}

	if source != nil {
		// Partial matches recur; fold the newly observed identity values in
		// so the next message from this sender matches directly.
		if err := r.sourceRepo.MergeSenderIdentity(source.ID, email, domain, pattern); err != nil {
			slog.Warn("Failed to merge sender identity", "source", source.Name, "error", err)
		}
		return source, nil
	}

	if domain == "" {
		return nil, nil
	}

	name := DeriveSourceName(domain, subject)
	if name == "" {
		return nil, nil
	}

	bodyText := htmlText(bodyHTML)
	category := extract.GuessCategory(strings.ToLower(subject + " " + bodyText))
	website := firstURL(bodyText)

	created := database.NewsletterSource{
		Name:             name,
		Website:          website,
		Category:         category,
		SubscriptionType: "shared",
		SenderEmails:     []string{email},
		SenderDomains:    []string{domain},
		SubjectPatterns:  []string{pattern},
	}

	id, err := r.sourceRepo.UpsertSource(created)
	if err != nil {
		return nil, fmt.Errorf("failed to create source: %w", err)
	}
	created.ID = id

	slog.Info("Created newsletter source",
		"name", name,
		"domain", domain,
		"category", category)

	return &created, nil
}

// SenderDomain returns the part after '@', lowercased, or "" when the
// address has no domain.
func SenderDomain(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return ""
	}
	return strings.ToLower(email[at+1:])
}

// NormalizeSubjectPattern collapses recurring-issue subject lines into a
// stable key: digit runs become X, month names MONTH, weekday names DAY,
// then everything lowercases ("Issue #42 - March Update" becomes
// "issue #x - month update").
func NormalizeSubjectPattern(subject string) string {
	pattern := digitsRe.ReplaceAllString(subject, "X")
	pattern = monthsRe.ReplaceAllString(pattern, "MONTH")
	pattern = weekdayRe.ReplaceAllString(pattern, "DAY")
	return strings.ToLower(strings.TrimSpace(pattern))
}

// DeriveSourceName guesses a display name: Substack subdomains become the
// capitalized publication name, otherwise the first subject word, otherwise
// the domain itself.
func DeriveSourceName(domain, subject string) string {
	if sub, ok := strings.CutSuffix(domain, ".substack.com"); ok && sub != "" {
		return titleCaser.String(strings.ReplaceAll(sub, "-", " "))
	}

	if words := strings.Fields(subject); len(words) > 0 {
		word := strings.Trim(words[0], `"'[](){}:;,.!?`)
		if len(word) > 2 {
			return word
		}
	}

	return domain
}

func firstURL(text string) string {
	return urlRe.FindString(text)
}

func htmlText(html string) string {
	if html == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	doc.Find("script, style").Remove()
	return strings.Join(strings.Fields(doc.Text()), " ")
}
