package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

func writeSourceFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write source file: %v", err)
	}
}

func TestLoadAll_ReadsYmlAndYamlFiles(t *testing.T) {
	dir := t.TempDir()
	writeSourceFile(t, dir, "morning-cup.yml", `
name: Morning Cup
website: https://morningcup.example
category: news
sender_domains:
  - morningcup.example
subject_patterns:
  - "morning cup #x"
tags:
  - news
popular: true
`)
	writeSourceFile(t, dir, "tech-weekly.yaml", `
name: Tech Weekly
subscription_type: individual
sender_emails:
  - digest@techweekly.example
`)

	configs, err := NewLoader(dir).LoadAll()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(configs) != 2 {
		t.Fatalf("expected 2 configs, got %d", len(configs))
	}

	first := configs[0]
	if first.Name != "Morning Cup" {
		t.Errorf("unexpected name: %q", first.Name)
	}
	if first.SubscriptionType != "shared" {
		t.Errorf("subscription type should default to shared, got %q", first.SubscriptionType)
	}
	if !first.Popular {
		t.Error("popular flag not parsed")
	}
	if len(first.SenderDomains) != 1 || first.SenderDomains[0] != "morningcup.example" {
		t.Errorf("unexpected sender domains: %v", first.SenderDomains)
	}

	second := configs[1]
	if second.SubscriptionType != "individual" {
		t.Errorf("explicit subscription type lost, got %q", second.SubscriptionType)
	}
}

func TestLoadAll_MissingDirectoryIsEmptyCatalog(t *testing.T) {
	configs, err := NewLoader(filepath.Join(t.TempDir(), "does-not-exist")).LoadAll()
	if err != nil {
		t.Fatalf("missing directory should not error: %v", err)
	}
	if len(configs) != 0 {
		t.Errorf("expected empty catalog, got %d configs", len(configs))
	}
}

func TestLoadAll_IgnoresOtherExtensions(t *testing.T) {
	dir := t.TempDir()
	writeSourceFile(t, dir, "notes.txt", "not a source")
	writeSourceFile(t, dir, "valid.yml", `
name: Valid
sender_domains:
  - valid.example
`)

	configs, err := NewLoader(dir).LoadAll()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(configs) != 1 {
		t.Errorf("expected 1 config, got %d", len(configs))
	}
}

func TestLoadAll_ValidationFailures(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing name", "sender_domains:\n  - example.com\n"},
		{"bad subscription type", "name: X\nsubscription_type: hourly\nsender_domains:\n  - example.com\n"},
		{"no sender identity", "name: X\n"},
		{"malformed email", "name: X\nsender_emails:\n  - not-an-email\n"},
	}

	for _, tt := range tests {
		dir := t.TempDir()
		writeSourceFile(t, dir, "source.yml", tt.content)

		if _, err := NewLoader(dir).LoadAll(); err == nil {
			t.Errorf("%s: expected a validation error", tt.name)
		}
	}
}

func TestLoadAll_MalformedYAML(t *testing.T) {
	dir := t.TempDir()
	writeSourceFile(t, dir, "broken.yml", "name: [unclosed\n")

	if _, err := NewLoader(dir).LoadAll(); err == nil {
		t.Error("expected a parse error for malformed YAML")
	}
}
