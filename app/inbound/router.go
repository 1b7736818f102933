package inbound

import (
	"fmt"
	"html"
	"log/slog"
	"strings"
	"time"

	"github.com/lettercomb/lettercomb/app/database"
	"github.com/lettercomb/lettercomb/app/extract"
)

// Router drives one inbound message through triage: destination lookup,
// block check, source resolution, disposition, extraction and persistence.
// Messages are processed one at a time with no shared state between calls;
// concurrent source creation races are settled by the catalog's uniqueness
// constraint.
type Router struct {
	userRepo    database.UserRepository
	contentRepo database.ContentRepository
	resolver    *SourceResolver
	extractor   *extract.Extractor
	inboxDomain string
}

// NewRouter wires the triage pipeline. A non-empty inboxDomain rejects
// messages addressed outside the service's inbox domain before any lookup.
func NewRouter(userRepo database.UserRepository, contentRepo database.ContentRepository,
	resolver *SourceResolver, extractor *extract.Extractor, inboxDomain string) *Router {
	return &Router{
		userRepo:    userRepo,
		contentRepo: contentRepo,
		resolver:    resolver,
		extractor:   extractor,
		inboxDomain: strings.ToLower(inboxDomain),
	}
}

// Route processes a single message end to end. An unroutable destination is
// a per-message failure reported in the result; repository errors surface as
// errors and leave retry to the webhook caller.
func (r *Router) Route(msg RawMessage) (RouteResult, error) {
	if r.inboxDomain != "" && SenderDomain(strings.ToLower(msg.To)) != r.inboxDomain {
		slog.Warn("Message addressed outside inbox domain", "to", msg.To, "inbox_domain", r.inboxDomain)
		return RouteResult{
			Success: false,
			Message: fmt.Sprintf("address %s is outside inbox domain %s", msg.To, r.inboxDomain),
		}, nil
	}

	user, err := r.userRepo.GetUserByInboxAddress(msg.To)
	if err != nil {
		return RouteResult{}, fmt.Errorf("failed to resolve destination user: %w", err)
	}
	if user == nil {
		slog.Warn("Message to unknown inbox address", "to", msg.To, "from", msg.From)
		return RouteResult{
			Success: false,
			Message: fmt.Sprintf("no user owns inbox address %s", msg.To),
		}, nil
	}

	blocked, err := r.isBlocked(user.ID, msg)
	if err != nil {
		return RouteResult{}, fmt.Errorf("failed to check block rules: %w", err)
	}
	if blocked {
		slog.Info("Message blocked", "user", user.ID, "from", msg.From)
		return RouteResult{
			Success: true,
			Blocked: true,
			Message: "sender blocked by user rule",
		}, nil
	}

	source, err := r.resolver.ResolveOrCreate(msg.From, msg.Subject, msg.HTML)
	if err != nil {
		return RouteResult{}, fmt.Errorf("failed to resolve source: %w", err)
	}

	disposition, err := r.disposition(user.ID, msg.From, source)
	if err != nil {
		return RouteResult{}, fmt.Errorf("failed to determine disposition: %w", err)
	}

	senderDomain := SenderDomain(strings.ToLower(msg.From))
	sourceInfo := extract.SourceInfo{
		Name: DeriveSourceName(senderDomain, msg.Subject),
	}
	if source != nil {
		sourceInfo = extract.SourceInfo{
			Name:    source.Name,
			Logo:    source.LogoURL,
			Website: source.Website,
		}
	}

	body := msg.HTML
	if body == "" && msg.Text != "" {
		body = "<p>" + html.EscapeString(msg.Text) + "</p>"
	}

	result := r.extractor.Run(body, sourceInfo)

	item := database.ContentItem{
		UserID:                 user.ID,
		Title:                  result.Metadata.Title,
		OriginalSubject:        msg.Subject,
		OriginalFrom:           msg.From,
		SenderDomain:           senderDomain,
		DetectedNewsletterName: sourceInfo.Name,
		ApprovalStatus:         disposition,
		Sections:               result.Sections,
		SearchText:             result.SearchText,
		WordCount:              result.WordCount,
		Tags:                   result.Tags,
		ExtractionConfidence:   result.ExtractionConfidence,
		BrandPrimary:           result.Metadata.BrandColors.Primary,
		BrandAccent:            result.Metadata.BrandColors.Accent,
		ExtractionStatus:       database.ExtractionSuccess,
		RawHTML:                body,
		ReceivedAt:             msg.ReceivedAt.UTC(),
		ProcessedAt:            time.Now().UTC(),
	}
	if source != nil {
		item.SourceID = &source.ID
		item.DetectedCategory = source.Category
	}
	if !result.Success {
		// Degraded fallback still reaches the queue; the reprocess task can
		// try again later from the stored raw body.
		item.ExtractionStatus = database.ExtractionFailed
		item.ExtractionError = result.Error
	}

	contentID, err := r.contentRepo.InsertContent(item)
	if err != nil {
		return RouteResult{}, fmt.Errorf("failed to persist content: %w", err)
	}

	slog.Info("Message routed",
		"user", user.ID,
		"source", sourceInfo.Name,
		"status", disposition,
		"sections", len(result.Sections),
		"confidence", result.ExtractionConfidence,
		"extraction", item.ExtractionStatus)

	return RouteResult{
		Success:        true,
		ContentID:      contentID,
		ApprovalStatus: disposition,
		Message:        "content queued",
	}, nil
}

// isBlocked applies the user's active block rules before anything else is
// processed or persisted.
func (r *Router) isBlocked(userID string, msg RawMessage) (bool, error) {
	rules, err := r.userRepo.GetActiveBlockRules(userID)
	if err != nil {
		return false, err
	}

	from := strings.ToLower(strings.TrimSpace(msg.From))
	domain := SenderDomain(from)
	subject := strings.ToLower(msg.Subject)

	for _, rule := range rules {
		value := strings.ToLower(rule.Value)
		switch rule.Kind {
		case database.BlockKindEmail:
			if from == value {
				return true, nil
			}
		case database.BlockKindDomain:
			if domain == value {
				return true, nil
			}
		case database.BlockKindSubject:
			if value != "" && strings.Contains(subject, value) {
				return true, nil
			}
		}
	}

	return false, nil
}

// disposition picks approved for an active auto-approve subscription on the
// resolved source, auto_approved when the user previously approved this
// exact sender, and pending otherwise.
func (r *Router) disposition(userID, fromEmail string, source *database.NewsletterSource) (string, error) {
	if source != nil {
		autoApprove, err := r.userRepo.HasAutoApproveSubscription(userID, source.ID)
		if err != nil {
			return "", err
		}
		if autoApprove {
			return DispositionApproved, nil
		}
	}

	approved, err := r.userRepo.HasApprovedSender(userID, strings.ToLower(fromEmail))
	if err != nil {
		return "", err
	}
	if approved {
		return DispositionAutoApproved, nil
	}

	return DispositionPending, nil
}
