package database

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"
)

var _ SourceRepository = (*SourceRepositoryImpl)(nil)

type SourceRepositoryImpl struct {
	db *DB
}

func NewSourceRepository(db *DB) *SourceRepositoryImpl {
	return &SourceRepositoryImpl{db: db}
}

const sourceColumns = `id, name, website, category, subscription_type,
	sender_emails, sender_domains, subject_patterns, tags, logo_url,
	created_at, updated_at`

func (r *SourceRepositoryImpl) GetSource(id string) (*NewsletterSource, error) {
	row := r.db.QueryRow(`SELECT `+sourceColumns+` FROM newsletter_sources WHERE id = $1`, id)
	source, err := scanSource(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get source: %w", err)
	}
	return source, nil
}

func (r *SourceRepositoryImpl) ListSources() ([]NewsletterSource, error) {
	rows, err := r.db.Query(`SELECT ` + sourceColumns + ` FROM newsletter_sources ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list sources: %w", err)
	}
	defer rows.Close()

	var sources []NewsletterSource
	for rows.Next() {
		source, err := scanSource(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan source: %w", err)
		}
		sources = append(sources, *source)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sources: %w", err)
	}

	return sources, nil
}

func (r *SourceRepositoryImpl) GetSourceCount() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM newsletter_sources").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get source count: %w", err)
	}
	return count, nil
}

func (r *SourceRepositoryImpl) FindBySenderIdentity(senderEmail, senderDomain, subjectPattern string) (*NewsletterSource, error) {
	row := r.db.QueryRow(`
		SELECT `+sourceColumns+`
		FROM newsletter_sources
		WHERE LOWER($1) = ANY(sender_emails)
		   OR LOWER($2) = ANY(sender_domains)
		   OR $3 = ANY(subject_patterns)
		ORDER BY
			CASE WHEN LOWER($1) = ANY(sender_emails) THEN 0
			     WHEN LOWER($2) = ANY(sender_domains) THEN 1
			     ELSE 2 END
		LIMIT 1
	`, senderEmail, senderDomain, subjectPattern)

	source, err := scanSource(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find source by sender identity: %w", err)
	}
	return source, nil
}

func (r *SourceRepositoryImpl) UpsertSource(source NewsletterSource) (string, error) {
	var id string
	err := r.db.QueryRow(`
		INSERT INTO newsletter_sources
			(name, website, category, subscription_type,
			 sender_emails, sender_domains, subject_patterns, tags, logo_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (LOWER(name)) DO UPDATE SET
			website = CASE WHEN EXCLUDED.website <> '' THEN EXCLUDED.website ELSE newsletter_sources.website END,
			category = CASE WHEN EXCLUDED.category <> '' THEN EXCLUDED.category ELSE newsletter_sources.category END,
			sender_emails = ARRAY(SELECT DISTINCT unnest(newsletter_sources.sender_emails || EXCLUDED.sender_emails)),
			sender_domains = ARRAY(SELECT DISTINCT unnest(newsletter_sources.sender_domains || EXCLUDED.sender_domains)),
			subject_patterns = ARRAY(SELECT DISTINCT unnest(newsletter_sources.subject_patterns || EXCLUDED.subject_patterns)),
			tags = ARRAY(SELECT DISTINCT unnest(newsletter_sources.tags || EXCLUDED.tags)),
			updated_at = NOW()
		RETURNING id
	`, source.Name, source.Website, source.Category, source.SubscriptionType,
		pq.Array(lowerAll(source.SenderEmails)), pq.Array(lowerAll(source.SenderDomains)),
		pq.Array(source.SubjectPatterns), pq.Array(source.Tags), source.LogoURL).Scan(&id)

	if err != nil {
		return "", fmt.Errorf("failed to upsert source: %w", err)
	}

	return id, nil
}

func (r *SourceRepositoryImpl) MergeSenderIdentity(id, senderEmail, senderDomain, subjectPattern string) error {
	_, err := r.db.Exec(`
		UPDATE newsletter_sources SET
			sender_emails = ARRAY(SELECT DISTINCT unnest(sender_emails || ARRAY[LOWER($2)])),
			sender_domains = ARRAY(SELECT DISTINCT unnest(sender_domains || ARRAY[LOWER($3)])),
			subject_patterns = ARRAY(SELECT DISTINCT unnest(subject_patterns || ARRAY[$4])),
			updated_at = NOW()
		WHERE id = $1
	`, id, senderEmail, senderDomain, subjectPattern)

	if err != nil {
		return fmt.Errorf("failed to merge sender identity: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSource(row rowScanner) (*NewsletterSource, error) {
	var source NewsletterSource
	err := row.Scan(
		&source.ID, &source.Name, &source.Website, &source.Category,
		&source.SubscriptionType, pq.Array(&source.SenderEmails),
		pq.Array(&source.SenderDomains), pq.Array(&source.SubjectPatterns),
		pq.Array(&source.Tags), &source.LogoURL,
		&source.CreatedAt, &source.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &source, nil
}

func lowerAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.ToLower(v)
	}
	return out
}
