package database

import (
	"github.com/lettercomb/lettercomb/app/extract"
)

type UserRepository interface {
	GetUserByInboxAddress(address string) (*User, error)
	GetUserCount() (int, error)

	GetActiveBlockRules(userID string) ([]BlockRule, error)

	HasApprovedSender(userID, senderEmail string) (bool, error)
	RecordApprovedSender(userID, senderEmail string) error

	HasAutoApproveSubscription(userID, sourceID string) (bool, error)
}

type SourceRepository interface {
	GetSource(id string) (*NewsletterSource, error)
	ListSources() ([]NewsletterSource, error)
	GetSourceCount() (int, error)

	// FindBySenderIdentity matches a source whose recorded sender emails,
	// sender domains, or subject patterns overlap the derived values.
	FindBySenderIdentity(senderEmail, senderDomain, subjectPattern string) (*NewsletterSource, error)

	// UpsertSource inserts a source keyed by its normalized name, merging
	// sender identity arrays on conflict. Concurrent creates of the same
	// source collapse onto one row via the uniqueness constraint.
	UpsertSource(source NewsletterSource) (string, error)

	// MergeSenderIdentity appends newly observed sender values to an
	// existing source so future messages match directly.
	MergeSenderIdentity(id, senderEmail, senderDomain, subjectPattern string) error
}

type ContentRepository interface {
	InsertContent(item ContentItem) (string, error)
	GetContent(id string) (*ContentItem, error)
	ListContent(userID, approvalStatus string, limit int) ([]ContentItem, error)
	GetContentStats() (ContentStats, error)

	UpdateApprovalStatus(id, status string) error

	GetFailedExtractions(limit int) ([]ContentItem, error)
	UpdateExtractionResult(id string, result extract.Result, status, errorMsg string) error
}
