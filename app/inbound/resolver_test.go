package inbound

import (
	"testing"

	"github.com/lettercomb/lettercomb/app/database"
)

type fakeSourceRepo struct {
	found    *database.NewsletterSource
	findErr  error
	merges   []string
	upserted []database.NewsletterSource
}

func (f *fakeSourceRepo) GetSource(string) (*database.NewsletterSource, error) { return nil, nil }
func (f *fakeSourceRepo) ListSources() ([]database.NewsletterSource, error)    { return nil, nil }
func (f *fakeSourceRepo) GetSourceCount() (int, error)                         { return 0, nil }

func (f *fakeSourceRepo) FindBySenderIdentity(string, string, string) (*database.NewsletterSource, error) {
	return f.found, f.findErr
}

func (f *fakeSourceRepo) UpsertSource(source database.NewsletterSource) (string, error) {
	f.upserted = append(f.upserted, source)
	return "src-1", nil
}

func (f *fakeSourceRepo) MergeSenderIdentity(id, _, _, _ string) error {
	f.merges = append(f.merges, id)
	return nil
}

func TestNormalizeSubjectPattern(t *testing.T) {
	tests := []struct {
		subject string
		want    string
	}{
		{"Issue #42 - March Update", "issue #x - month update"},
		{"Your Monday Briefing 7/14", "your day briefing x/x"},
		{"  Plain subject  ", "plain subject"},
		{"December 2025 in review", "month x in review"},
	}

	for _, tt := range tests {
		if got := NormalizeSubjectPattern(tt.subject); got != tt.want {
			t.Errorf("NormalizeSubjectPattern(%q) = %q, want %q", tt.subject, got, tt.want)
		}
	}
}

func TestSenderDomain(t *testing.T) {
	tests := []struct {
		email string
		want  string
	}{
		{"news@Sub.Example.COM", "sub.example.com"},
		{"no-at-sign", ""},
		{"trailing@", ""},
		{`"odd@quoted"@example.org`, "example.org"},
	}

	for _, tt := range tests {
		if got := SenderDomain(tt.email); got != tt.want {
			t.Errorf("SenderDomain(%q) = %q, want %q", tt.email, got, tt.want)
		}
	}
}

func TestDeriveSourceName(t *testing.T) {
	tests := []struct {
		domain  string
		subject string
		want    string
	}{
		{"the-daily-brew.substack.com", "whatever", "The Daily Brew"},
		{"example.com", `"Pulse" weekly edition`, "Pulse"},
		{"example.com", "An update", "example.com"},
		{"example.com", "", "example.com"},
	}

	for _, tt := range tests {
		if got := DeriveSourceName(tt.domain, tt.subject); got != tt.want {
			t.Errorf("DeriveSourceName(%q, %q) = %q, want %q", tt.domain, tt.subject, got, tt.want)
		}
	}
}

func TestResolveOrCreate_ExistingSourceMergesIdentity(t *testing.T) {
	repo := &fakeSourceRepo{found: &database.NewsletterSource{ID: "src-9", Name: "Morning Cup"}}
	resolver := NewSourceResolver(repo)

	source, err := resolver.ResolveOrCreate("hello@morningcup.io", "Morning Cup #18", "<p>hi</p>")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if source == nil || source.ID != "src-9" {
		t.Fatalf("expected the matched source, got %+v", source)
	}
	if len(repo.merges) != 1 || repo.merges[0] != "src-9" {
		t.Errorf("expected identity merge on src-9, got %v", repo.merges)
	}
	if len(repo.upserted) != 0 {
		t.Errorf("matched sender must not create a source")
	}
}

func TestResolveOrCreate_CreatesDetectedSource(t *testing.T) {
	repo := &fakeSourceRepo{}
	resolver := NewSourceResolver(repo)

	body := "<p>Your weekly technology roundup. Visit https://techweekly.example for more.</p>"
	source, err := resolver.ResolveOrCreate("News@Tech-Weekly.example", "Tech Weekly #12", body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if source == nil {
		t.Fatal("expected a created source")
	}
	if source.ID != "src-1" {
		t.Errorf("created source should carry the repo id, got %q", source.ID)
	}
	if source.Name != "Tech" {
		t.Errorf("expected first subject word as name, got %q", source.Name)
	}
	if source.Category != "tech" {
		t.Errorf("expected tech category, got %q", source.Category)
	}
	if source.Website != "https://techweekly.example" {
		t.Errorf("expected website from body, got %q", source.Website)
	}

	if len(repo.upserted) != 1 {
		t.Fatalf("expected one upsert, got %d", len(repo.upserted))
	}
	created := repo.upserted[0]
	if created.SenderEmails[0] != "news@tech-weekly.example" {
		t.Errorf("sender email not lowercased: %v", created.SenderEmails)
	}
	if created.SenderDomains[0] != "tech-weekly.example" {
		t.Errorf("unexpected sender domain: %v", created.SenderDomains)
	}
	if created.SubjectPatterns[0] != "tech weekly #x" {
		t.Errorf("unexpected subject pattern: %v", created.SubjectPatterns)
	}
	if created.SubscriptionType != "shared" {
		t.Errorf("detected sources default to shared, got %q", created.SubscriptionType)
	}
}

func TestResolveOrCreate_NoDomainNoSource(t *testing.T) {
	repo := &fakeSourceRepo{}
	resolver := NewSourceResolver(repo)

	source, err := resolver.ResolveOrCreate("not-an-address", "Subject line", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if source != nil {
		t.Errorf("expected no source without a sender domain, got %+v", source)
	}
	if len(repo.upserted) != 0 {
		t.Errorf("nothing should be created, got %d upserts", len(repo.upserted))
	}
}
