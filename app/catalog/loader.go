package catalog

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Loader reads known-source catalog files from a directory. One YAML file
// per publisher; a missing directory is an empty catalog, not an error.
type Loader struct {
	sourcesDir string
}

func NewLoader(sourcesDir string) *Loader {
	return &Loader{sourcesDir: sourcesDir}
}

func (l *Loader) LoadAll() ([]SourceConfig, error) {
	var configs []SourceConfig

	if _, err := os.Stat(l.sourcesDir); os.IsNotExist(err) {
		return configs, nil
	}

	files, err := filepath.Glob(filepath.Join(l.sourcesDir, "*.yml"))
	if err != nil {
		return nil, fmt.Errorf("failed to find YML files: %w", err)
	}
	yamlFiles, err := filepath.Glob(filepath.Join(l.sourcesDir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("failed to find YAML files: %w", err)
	}
	files = append(files, yamlFiles...)

	for _, file := range files {
		config, err := l.loadFile(file)
		if err != nil {
			return nil, fmt.Errorf("error loading %s: %w", file, err)
		}

		if err := l.validate(config); err != nil {
			return nil, fmt.Errorf("invalid source config %s: %w", file, err)
		}

		configs = append(configs, *config)
		slog.Debug("Source config loaded", "file", filepath.Base(file), "name", config.Name)
	}

	return configs, nil
}

func (l *Loader) loadFile(path string) (*SourceConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var config SourceConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if config.SubscriptionType == "" {
		config.SubscriptionType = "shared"
	}

	return &config, nil
}

func (l *Loader) validate(config *SourceConfig) error {
	if strings.TrimSpace(config.Name) == "" {
		return fmt.Errorf("source name is required")
	}

	switch config.SubscriptionType {
	case "shared", "individual":
	default:
		return fmt.Errorf("invalid subscription_type: %s", config.SubscriptionType)
	}

	if len(config.SenderEmails) == 0 && len(config.SenderDomains) == 0 {
		return fmt.Errorf("at least one sender email or domain is required")
	}

	for _, email := range config.SenderEmails {
		if !strings.Contains(email, "@") {
			return fmt.Errorf("invalid sender email: %s", email)
		}
	}

	return nil
}
