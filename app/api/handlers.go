package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/lettercomb/lettercomb/app/database"
	"github.com/lettercomb/lettercomb/app/inbound"
)

func NewHandler(router *inbound.Router, userRepo database.UserRepository,
	sourceRepo database.SourceRepository, contentRepo database.ContentRepository) *Handler {
	return &Handler{
		router:      router,
		userRepo:    userRepo,
		sourceRepo:  sourceRepo,
		contentRepo: contentRepo,
	}
}

// PostInbound receives one forwarded message and routes it synchronously.
// Routing failures for a single message answer 200 with success=false so
// transport providers do not retry a permanently unroutable address.
func (h *Handler) PostInbound(c *gin.Context) {
	var req InboundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload", "message": err.Error()})
		return
	}

	receivedAt := req.ReceivedAt
	if receivedAt.IsZero() {
		receivedAt = time.Now().UTC()
	}

	msg := inbound.RawMessage{
		ID:         uuid.NewString(),
		To:         req.To,
		From:       req.From,
		Subject:    req.Subject,
		HTML:       req.HTML,
		Text:       req.Text,
		ReceivedAt: receivedAt,
	}

	result, err := h.router.Route(msg)
	if err != nil {
		slog.Error("Message routing failed", "message_id", msg.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "routing failed"})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
	}

	if userCount, err := h.userRepo.GetUserCount(); err == nil {
		health["users"] = userCount
	}
	if sourceCount, err := h.sourceRepo.GetSourceCount(); err == nil {
		health["sources"] = sourceCount
	}

	c.JSON(http.StatusOK, health)
}

func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.contentRepo.GetContentStats()
	if err != nil {
		slog.Error("Database error", "operation", "get_stats", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"content": gin.H{
			"total":             stats.Total,
			"pending":           stats.Pending,
			"approved":          stats.Approved,
			"auto_approved":     stats.AutoApproved,
			"failed_extraction": stats.Failed,
		},
	})
}

func (h *Handler) APIListContent(c *gin.Context) {
	userID := c.Query("user")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing user parameter"})
		return
	}

	status := c.Query("status")
	switch status {
	case "", inbound.DispositionPending, inbound.DispositionApproved,
		inbound.DispositionAutoApproved, inbound.DispositionRejected:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status parameter"})
		return
	}

	limit := 50
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 500 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit parameter"})
			return
		}
		limit = parsed
	}

	items, err := h.contentRepo.ListContent(userID, status, limit)
	if err != nil {
		slog.Error("Database error", "operation", "list_content", "user", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	summaries := make([]map[string]interface{}, 0, len(items))
	for _, item := range items {
		summaries = append(summaries, map[string]interface{}{
			"id":              item.ID,
			"title":           item.Title,
			"source":          item.DetectedNewsletterName,
			"category":        item.DetectedCategory,
			"approval_status": item.ApprovalStatus,
			"word_count":      item.WordCount,
			"tags":            item.Tags,
			"confidence":      item.ExtractionConfidence,
			"sections":        len(item.Sections),
			"received_at":     item.ReceivedAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"content": summaries,
		"total":   len(summaries),
	})
}

func (h *Handler) APIGetContent(c *gin.Context) {
	item, ok := h.findContent(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":              item.ID,
		"user_id":         item.UserID,
		"source_id":       item.SourceID,
		"title":           item.Title,
		"approval_status": item.ApprovalStatus,
		"metadata": gin.H{
			"source":         item.DetectedNewsletterName,
			"category":       item.DetectedCategory,
			"original_from":  item.OriginalFrom,
			"sender_domain":  item.SenderDomain,
			"brand_primary":  item.BrandPrimary,
			"brand_accent":   item.BrandAccent,
			"received_at":    item.ReceivedAt,
			"processed_at":   item.ProcessedAt,
		},
		"sections":              item.Sections,
		"search_text":           item.SearchText,
		"word_count":            item.WordCount,
		"tags":                  item.Tags,
		"extraction_confidence": item.ExtractionConfidence,
		"extraction_status":     item.ExtractionStatus,
		"extraction_error":      item.ExtractionError,
	})
}

// APIApproveContent marks an item approved and remembers its sender, so the
// next message from the same address lands as auto_approved.
func (h *Handler) APIApproveContent(c *gin.Context) {
	item, ok := h.findContent(c)
	if !ok {
		return
	}

	if err := h.contentRepo.UpdateApprovalStatus(item.ID, inbound.DispositionApproved); err != nil {
		slog.Error("Database error", "operation", "approve_content", "content_id", item.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	sender := strings.ToLower(strings.TrimSpace(item.OriginalFrom))
	if sender != "" {
		if err := h.userRepo.RecordApprovedSender(item.UserID, sender); err != nil {
			slog.Warn("Failed to record approved sender", "user", item.UserID, "sender", sender, "error", err)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"id":              item.ID,
		"approval_status": inbound.DispositionApproved,
	})
}

func (h *Handler) APIRejectContent(c *gin.Context) {
	item, ok := h.findContent(c)
	if !ok {
		return
	}

	if err := h.contentRepo.UpdateApprovalStatus(item.ID, inbound.DispositionRejected); err != nil {
		slog.Error("Database error", "operation", "reject_content", "content_id", item.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":              item.ID,
		"approval_status": inbound.DispositionRejected,
	})
}

func (h *Handler) APIListSources(c *gin.Context) {
	sources, err := h.sourceRepo.ListSources()
	if err != nil {
		slog.Error("Database error", "operation", "list_sources", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	out := make([]map[string]interface{}, 0, len(sources))
	for _, source := range sources {
		out = append(out, map[string]interface{}{
			"id":                source.ID,
			"name":              source.Name,
			"website":           source.Website,
			"category":          source.Category,
			"subscription_type": source.SubscriptionType,
			"sender_domains":    source.SenderDomains,
			"tags":              source.Tags,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"sources": out,
		"total":   len(out),
	})
}

func (h *Handler) findContent(c *gin.Context) (*database.ContentItem, bool) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing content id"})
		return nil, false
	}

	item, err := h.contentRepo.GetContent(id)
	if err != nil {
		slog.Error("Database error", "operation", "get_content", "content_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return nil, false
	}
	if item == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Content not found"})
		return nil, false
	}

	return item, true
}
