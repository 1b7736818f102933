package database

import (
	"time"

	"github.com/lettercomb/lettercomb/app/extract"
)

type User struct {
	ID           string
	Email        string
	InboxAddress string
	CreatedAt    time.Time
}

// Block rule kinds. Subject rules match as a case-insensitive substring;
// email and domain rules match exactly.
const (
	BlockKindEmail   = "email"
	BlockKindDomain  = "domain"
	BlockKindSubject = "subject"
)

type BlockRule struct {
	ID     string
	UserID string
	Kind   string
	Value  string
	Active bool
}

// NewsletterSource is a publisher identity, independent of any one message.
// The sender arrays accumulate as partial matches recur; sources are never
// deleted or merged.
type NewsletterSource struct {
	ID               string
	Name             string
	Website          string
	Category         string
	SubscriptionType string
	SenderEmails     []string
	SenderDomains    []string
	SubjectPatterns  []string
	Tags             []string
	LogoURL          string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Extraction status values persisted on a content item.
const (
	ExtractionSuccess = "success"
	ExtractionFailed  = "failed"
)

// ContentItem is one extracted newsletter issue in a user's feed. RawHTML is
// retained so failed extractions can be reprocessed later.
type ContentItem struct {
	ID                     string
	UserID                 string
	SourceID               *string
	Title                  string
	OriginalSubject        string
	OriginalFrom           string
	SenderDomain           string
	DetectedNewsletterName string
	DetectedCategory       string
	ApprovalStatus         string
	Sections               []extract.Section
	SearchText             string
	WordCount              int
	Tags                   []string
	ExtractionConfidence   float64
	BrandPrimary           string
	BrandAccent            string
	ExtractionStatus       string
	ExtractionError        string
	RawHTML                string
	ReceivedAt             time.Time
	ProcessedAt            time.Time
	CreatedAt              time.Time
}

// ContentStats aggregates feed-wide counters for the stats endpoint.
type ContentStats struct {
	Total        int
	Pending      int
	Approved     int
	AutoApproved int
	Failed       int
}
