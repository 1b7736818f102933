package tasks

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/lettercomb/lettercomb/app/catalog"
	"github.com/lettercomb/lettercomb/app/database"
	"github.com/lettercomb/lettercomb/app/extract"
)

type fakeSourceRepo struct {
	upserted []database.NewsletterSource
}

func (f *fakeSourceRepo) GetSource(string) (*database.NewsletterSource, error) { return nil, nil }
func (f *fakeSourceRepo) ListSources() ([]database.NewsletterSource, error)    { return nil, nil }
func (f *fakeSourceRepo) GetSourceCount() (int, error)                         { return 0, nil }

func (f *fakeSourceRepo) FindBySenderIdentity(string, string, string) (*database.NewsletterSource, error) {
	return nil, nil
}

func (f *fakeSourceRepo) UpsertSource(source database.NewsletterSource) (string, error) {
	f.upserted = append(f.upserted, source)
	return "src-1", nil
}

func (f *fakeSourceRepo) MergeSenderIdentity(string, string, string, string) error { return nil }

type fakeContentRepo struct {
	failed  []database.ContentItem
	updated []string
}

func (f *fakeContentRepo) InsertContent(database.ContentItem) (string, error) { return "", nil }
func (f *fakeContentRepo) GetContent(string) (*database.ContentItem, error)   { return nil, nil }

func (f *fakeContentRepo) ListContent(string, string, int) ([]database.ContentItem, error) {
	return nil, nil
}

func (f *fakeContentRepo) GetContentStats() (database.ContentStats, error) {
	return database.ContentStats{}, nil
}

func (f *fakeContentRepo) UpdateApprovalStatus(string, string) error { return nil }

func (f *fakeContentRepo) GetFailedExtractions(limit int) ([]database.ContentItem, error) {
	if limit < len(f.failed) {
		return f.failed[:limit], nil
	}
	return f.failed, nil
}

func (f *fakeContentRepo) UpdateExtractionResult(id string, _ extract.Result, _, _ string) error {
	f.updated = append(f.updated, id)
	return nil
}

func TestTaskRetryBookkeeping(t *testing.T) {
	task := NewTask(TaskTypeSyncCatalog)

	if task.ID == "" {
		t.Error("task should get a generated id")
	}
	if task.GetType() != TaskTypeSyncCatalog {
		t.Errorf("unexpected type: %s", task.GetType())
	}
	if !task.CanRetry() {
		t.Error("fresh task should be retryable")
	}

	for i := 0; i < DefaultMaxRetries; i++ {
		task.IncrementRetryCount()
	}
	if task.CanRetry() {
		t.Error("task at max retries must not retry again")
	}
	if task.GetRetryCount() != DefaultMaxRetries {
		t.Errorf("unexpected retry count: %d", task.GetRetryCount())
	}
}

func TestSyncCatalogTask(t *testing.T) {
	dir := t.TempDir()
	content := `
name: Morning Cup
category: news
sender_domains:
  - morningcup.example
`
	if err := os.WriteFile(filepath.Join(dir, "morning-cup.yml"), []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write catalog file: %v", err)
	}

	repo := &fakeSourceRepo{}
	task := NewSyncCatalogTask(catalog.NewLoader(dir), repo)

	if err := task.Execute(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.upserted) != 1 {
		t.Fatalf("expected 1 upserted source, got %d", len(repo.upserted))
	}
	if repo.upserted[0].Name != "Morning Cup" {
		t.Errorf("unexpected source name: %q", repo.upserted[0].Name)
	}
	if repo.upserted[0].SubscriptionType != "shared" {
		t.Errorf("expected defaulted subscription type, got %q", repo.upserted[0].SubscriptionType)
	}
}

func TestSyncCatalogTask_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	task := NewSyncCatalogTask(catalog.NewLoader(t.TempDir()), &fakeSourceRepo{})
	if err := task.Execute(ctx); err == nil {
		t.Error("expected context error")
	}
}

func TestReprocessContentTask_RecoversFailedItems(t *testing.T) {
	repo := &fakeContentRepo{
		failed: []database.ContentItem{
			{
				ID:                     "item-1",
				DetectedNewsletterName: "Morning Cup",
				RawHTML:                "<html><body><h1>Recovered Issue</h1><p>Now the body parses cleanly again.</p></body></html>",
			},
		},
	}

	task := NewReprocessContentTask(extract.NewExtractor(), repo, 10)
	if err := task.Execute(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.updated) != 1 || repo.updated[0] != "item-1" {
		t.Errorf("expected item-1 updated, got %v", repo.updated)
	}
}

func TestReprocessContentTask_RespectsLimit(t *testing.T) {
	repo := &fakeContentRepo{
		failed: []database.ContentItem{
			{ID: "item-1", RawHTML: "<p>First recovered body text goes here.</p>"},
			{ID: "item-2", RawHTML: "<p>Second recovered body text goes here.</p>"},
		},
	}

	task := NewReprocessContentTask(extract.NewExtractor(), repo, 1)
	if err := task.Execute(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.updated) != 1 {
		t.Errorf("expected only 1 item reprocessed, got %d", len(repo.updated))
	}
}
