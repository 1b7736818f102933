package tasks

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lettercomb/lettercomb/app/catalog"
	"github.com/lettercomb/lettercomb/app/database"
)

// SyncCatalogTask upserts the known-source catalog files into the database
// so resolver matching sees catalog edits without a restart.
type SyncCatalogTask struct {
	Task
	loader     *catalog.Loader
	sourceRepo database.SourceRepository
}

func NewSyncCatalogTask(loader *catalog.Loader, sourceRepo database.SourceRepository) *SyncCatalogTask {
	return &SyncCatalogTask{
		Task:       NewTask(TaskTypeSyncCatalog),
		loader:     loader,
		sourceRepo: sourceRepo,
	}
}

func (t *SyncCatalogTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	configs, err := t.loader.LoadAll()
	if err != nil {
		return fmt.Errorf("failed to load source catalog: %w", err)
	}

	synced := 0
	for _, config := range configs {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		source := database.NewsletterSource{
			Name:             config.Name,
			Website:          config.Website,
			Category:         config.Category,
			SubscriptionType: config.SubscriptionType,
			SenderEmails:     config.SenderEmails,
			SenderDomains:    config.SenderDomains,
			SubjectPatterns:  config.SubjectPatterns,
			Tags:             config.Tags,
			LogoURL:          config.Logo,
		}

		if _, err := t.sourceRepo.UpsertSource(source); err != nil {
			slog.Warn("Failed to sync catalog source", "name", config.Name, "error", err)
			continue
		}
		synced++
	}

	slog.Info("Task completed",
		"type", t.GetType(),
		"duration", t.GetDuration(),
		"sources", len(configs),
		"synced", synced)

	return nil
}
