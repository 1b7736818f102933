package catalog

// SourceConfig is one known-publisher entry from the sources directory.
// Entries are seeded into the newsletter source catalog at startup and on
// every scheduler pass, so edits to the files land without a restart.
type SourceConfig struct {
	Name             string   `yaml:"name"`
	Website          string   `yaml:"website"`
	Category         string   `yaml:"category"`
	SubscriptionType string   `yaml:"subscription_type"`
	Logo             string   `yaml:"logo"`
	SenderEmails     []string `yaml:"sender_emails"`
	SenderDomains    []string `yaml:"sender_domains"`
	SubjectPatterns  []string `yaml:"subject_patterns"`
	Tags             []string `yaml:"tags"`
	Popular          bool     `yaml:"popular"`
}
