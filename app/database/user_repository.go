package database

import (
	"database/sql"
	"fmt"
)

var _ UserRepository = (*UserRepositoryImpl)(nil)

type UserRepositoryImpl struct {
	db *DB
}

func NewUserRepository(db *DB) *UserRepositoryImpl {
	return &UserRepositoryImpl{db: db}
}

func (r *UserRepositoryImpl) GetUserByInboxAddress(address string) (*User, error) {
	var user User
	err := r.db.QueryRow(`
		SELECT id, email, inbox_address, created_at
		FROM users
		WHERE LOWER(inbox_address) = LOWER($1)
	`, address).Scan(&user.ID, &user.Email, &user.InboxAddress, &user.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by inbox address: %w", err)
	}

	return &user, nil
}

func (r *UserRepositoryImpl) GetUserCount() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get user count: %w", err)
	}
	return count, nil
}

func (r *UserRepositoryImpl) GetActiveBlockRules(userID string) ([]BlockRule, error) {
	rows, err := r.db.Query(`
		SELECT id, user_id, kind, value, active
		FROM blocked_senders
		WHERE user_id = $1 AND active = TRUE
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get block rules: %w", err)
	}
	defer rows.Close()

	var rules []BlockRule
	for rows.Next() {
		var rule BlockRule
		if err := rows.Scan(&rule.ID, &rule.UserID, &rule.Kind, &rule.Value, &rule.Active); err != nil {
			return nil, fmt.Errorf("failed to scan block rule: %w", err)
		}
		rules = append(rules, rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating block rules: %w", err)
	}

	return rules, nil
}

func (r *UserRepositoryImpl) HasApprovedSender(userID, senderEmail string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(`
		SELECT EXISTS (
			SELECT 1 FROM approved_senders
			WHERE user_id = $1 AND LOWER(sender_email) = LOWER($2)
		)
	`, userID, senderEmail).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check approved sender: %w", err)
	}
	return exists, nil
}

func (r *UserRepositoryImpl) RecordApprovedSender(userID, senderEmail string) error {
	_, err := r.db.Exec(`
		INSERT INTO approved_senders (user_id, sender_email)
		VALUES ($1, LOWER($2))
		ON CONFLICT (user_id, sender_email) DO NOTHING
	`, userID, senderEmail)
	if err != nil {
		return fmt.Errorf("failed to record approved sender: %w", err)
	}
	return nil
}

func (r *UserRepositoryImpl) HasAutoApproveSubscription(userID, sourceID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(`
		SELECT EXISTS (
			SELECT 1 FROM subscriptions
			WHERE user_id = $1 AND source_id = $2 AND auto_approve = TRUE AND active = TRUE
		)
	`, userID, sourceID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check auto-approve subscription: %w", err)
	}
	return exists, nil
}
