package tasks

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lettercomb/lettercomb/app/database"
	"github.com/lettercomb/lettercomb/app/extract"
)

// ReprocessContentTask retries structural extraction for content items that
// were persisted with the degraded fallback. A later success replaces the
// fallback sections in place; another failure leaves the item as it is.
type ReprocessContentTask struct {
	Task
	extractor   *extract.Extractor
	contentRepo database.ContentRepository
	limit       int
}

func NewReprocessContentTask(extractor *extract.Extractor, contentRepo database.ContentRepository, limit int) *ReprocessContentTask {
	return &ReprocessContentTask{
		Task:        NewTask(TaskTypeReprocessContent),
		extractor:   extractor,
		contentRepo: contentRepo,
		limit:       limit,
	}
}

func (t *ReprocessContentTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	items, err := t.contentRepo.GetFailedExtractions(t.limit)
	if err != nil {
		return fmt.Errorf("failed to get failed extractions: %w", err)
	}

	if len(items) == 0 {
		slog.Debug("No content needs reprocessing")
		return nil
	}

	successCount := 0
	for _, item := range items {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		result := t.extractor.Run(item.RawHTML, extract.SourceInfo{
			Name: item.DetectedNewsletterName,
		})
		if !result.Success {
			continue
		}

		err := t.contentRepo.UpdateExtractionResult(item.ID, result, database.ExtractionSuccess, "")
		if err != nil {
			slog.Error("Failed to store reprocessed content", "content_id", item.ID, "error", err)
			continue
		}
		successCount++
	}

	slog.Info("Task completed",
		"type", t.GetType(),
		"duration", t.GetDuration(),
		"candidates", len(items),
		"recovered", successCount)

	return nil
}
