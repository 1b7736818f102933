package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/lettercomb/lettercomb/app/extract"
)

var _ ContentRepository = (*ContentRepositoryImpl)(nil)

type ContentRepositoryImpl struct {
	db *DB
}

func NewContentRepository(db *DB) *ContentRepositoryImpl {
	return &ContentRepositoryImpl{db: db}
}

const contentColumns = `id, user_id, source_id, title, original_subject,
	original_from, sender_domain, detected_newsletter_name, detected_category,
	approval_status, sections, search_text, word_count, tags,
	extraction_confidence, brand_primary, brand_accent,
	extraction_status, extraction_error, raw_html,
	received_at, processed_at, created_at`

func (r *ContentRepositoryImpl) InsertContent(item ContentItem) (string, error) {
	sections, err := json.Marshal(item.Sections)
	if err != nil {
		return "", fmt.Errorf("failed to marshal sections: %w", err)
	}

	var id string
	err = r.db.QueryRow(`
		INSERT INTO content_items
			(user_id, source_id, title, original_subject, original_from,
			 sender_domain, detected_newsletter_name, detected_category,
			 approval_status, sections, search_text, word_count, tags,
			 extraction_confidence, brand_primary, brand_accent,
			 extraction_status, extraction_error, raw_html, received_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		ON CONFLICT (user_id, original_subject, received_at) DO UPDATE SET
			processed_at = NOW()
		RETURNING id
	`, item.UserID, item.SourceID, item.Title, item.OriginalSubject,
		item.OriginalFrom, item.SenderDomain, item.DetectedNewsletterName,
		item.DetectedCategory, item.ApprovalStatus, sections, item.SearchText,
		item.WordCount, pq.Array(item.Tags), item.ExtractionConfidence,
		item.BrandPrimary, item.BrandAccent, item.ExtractionStatus,
		item.ExtractionError, item.RawHTML, item.ReceivedAt).Scan(&id)

	if err != nil {
		return "", fmt.Errorf("failed to insert content item: %w", err)
	}

	return id, nil
}

func (r *ContentRepositoryImpl) GetContent(id string) (*ContentItem, error) {
	row := r.db.QueryRow(`SELECT `+contentColumns+` FROM content_items WHERE id = $1`, id)
	item, err := scanContent(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get content item: %w", err)
	}
	return item, nil
}

func (r *ContentRepositoryImpl) ListContent(userID, approvalStatus string, limit int) ([]ContentItem, error) {
	query := `SELECT ` + contentColumns + ` FROM content_items WHERE user_id = $1`
	args := []interface{}{userID}

	if approvalStatus != "" {
		query += ` AND approval_status = $2`
		args = append(args, approvalStatus)
	}
	query += fmt.Sprintf(` ORDER BY received_at DESC LIMIT %d`, limit)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list content items: %w", err)
	}
	defer rows.Close()

	var items []ContentItem
	for rows.Next() {
		item, err := scanContent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan content item: %w", err)
		}
		items = append(items, *item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating content items: %w", err)
	}

	return items, nil
}

func (r *ContentRepositoryImpl) GetContentStats() (ContentStats, error) {
	var stats ContentStats
	err := r.db.QueryRow(`
		SELECT
			COUNT(*),
			SUM(CASE WHEN approval_status = 'pending' THEN 1 ELSE 0 END),
			SUM(CASE WHEN approval_status = 'approved' THEN 1 ELSE 0 END),
			SUM(CASE WHEN approval_status = 'auto_approved' THEN 1 ELSE 0 END),
			SUM(CASE WHEN extraction_status = 'failed' THEN 1 ELSE 0 END)
		FROM content_items
	`).Scan(&stats.Total, &stats.Pending, &stats.Approved, &stats.AutoApproved, &stats.Failed)

	if err != nil {
		return ContentStats{}, fmt.Errorf("failed to get content stats: %w", err)
	}
	return stats, nil
}

func (r *ContentRepositoryImpl) UpdateApprovalStatus(id, status string) error {
	result, err := r.db.Exec(`
		UPDATE content_items SET approval_status = $2 WHERE id = $1
	`, id, status)
	if err != nil {
		return fmt.Errorf("failed to update approval status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("content item not found: %s", id)
	}

	return nil
}

func (r *ContentRepositoryImpl) GetFailedExtractions(limit int) ([]ContentItem, error) {
	rows, err := r.db.Query(`
		SELECT `+contentColumns+`
		FROM content_items
		WHERE extraction_status = 'failed' AND raw_html <> ''
		ORDER BY received_at
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get failed extractions: %w", err)
	}
	defer rows.Close()

	var items []ContentItem
	for rows.Next() {
		item, err := scanContent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan content item: %w", err)
		}
		items = append(items, *item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating failed extractions: %w", err)
	}

	return items, nil
}

func (r *ContentRepositoryImpl) UpdateExtractionResult(id string, result extract.Result, status, errorMsg string) error {
	sections, err := json.Marshal(result.Sections)
	if err != nil {
		return fmt.Errorf("failed to marshal sections: %w", err)
	}

	_, err = r.db.Exec(`
		UPDATE content_items SET
			title = $2,
			sections = $3,
			search_text = $4,
			word_count = $5,
			tags = $6,
			extraction_confidence = $7,
			brand_primary = $8,
			brand_accent = $9,
			extraction_status = $10,
			extraction_error = $11,
			processed_at = $12
		WHERE id = $1
	`, id, result.Metadata.Title, sections, result.SearchText, result.WordCount,
		pq.Array(result.Tags), result.ExtractionConfidence,
		result.Metadata.BrandColors.Primary, result.Metadata.BrandColors.Accent,
		status, errorMsg, time.Now().UTC())

	if err != nil {
		return fmt.Errorf("failed to update extraction result: %w", err)
	}
	return nil
}

func scanContent(row rowScanner) (*ContentItem, error) {
	var item ContentItem
	var sections []byte

	err := row.Scan(
		&item.ID, &item.UserID, &item.SourceID, &item.Title,
		&item.OriginalSubject, &item.OriginalFrom, &item.SenderDomain,
		&item.DetectedNewsletterName, &item.DetectedCategory,
		&item.ApprovalStatus, &sections, &item.SearchText, &item.WordCount,
		pq.Array(&item.Tags), &item.ExtractionConfidence,
		&item.BrandPrimary, &item.BrandAccent,
		&item.ExtractionStatus, &item.ExtractionError, &item.RawHTML,
		&item.ReceivedAt, &item.ProcessedAt, &item.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(sections, &item.Sections); err != nil {
		return nil, fmt.Errorf("failed to unmarshal sections: %w", err)
	}

	return &item, nil
}
