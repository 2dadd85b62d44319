package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/vaultpass/passmate/internal/model"
)

var ErrNoDatabase = errors.New("audit repository has no database")

const createEventsTable = `
	CREATE TABLE IF NOT EXISTS generation_events (
		id         BIGINT AUTO_INCREMENT PRIMARY KEY,
		subject    VARCHAR(255) NOT NULL DEFAULT '',
		length     INT          NOT NULL,
		classes    VARCHAR(64)  NOT NULL,
		score      INT          NOT NULL,
		label      VARCHAR(16)  NOT NULL,
		created_at TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP,
		INDEX idx_generation_events_created_at (created_at)
	)`

// AuditRepository persists generation events. Passwords are never stored.
type AuditRepository struct {
	db *sql.DB
}

// NewAuditRepository creates a new AuditRepository.
func NewAuditRepository(db *sql.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// EnsureSchema creates the events table if it does not exist.
func (r *AuditRepository) EnsureSchema(ctx context.Context) error {
	if r.db == nil {
		return ErrNoDatabase
	}
	_, err := r.db.ExecContext(ctx, createEventsTable)
	return err
}

// Record inserts an event and sets its generated ID.
func (r *AuditRepository) Record(ctx context.Context, event *model.GenerationEvent) error {
	if r.db == nil {
		return ErrNoDatabase
	}

	query := `INSERT INTO generation_events (subject, length, classes, score, label) VALUES (?, ?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, query, event.Subject, event.Length, event.Classes, event.Score, event.Label)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	event.ID = id
	return nil
}

// Recent returns the latest events, newest first.
func (r *AuditRepository) Recent(ctx context.Context, limit int) ([]model.GenerationEvent, error) {
	if r.db == nil {
		return nil, ErrNoDatabase
	}
	if limit <= 0 {
		limit = 50
	}

	query := `SELECT id, subject, length, classes, score, label, created_at
		FROM generation_events ORDER BY created_at DESC, id DESC LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []model.GenerationEvent
	for rows.Next() {
		var e model.GenerationEvent
		if err := rows.Scan(&e.ID, &e.Subject, &e.Length, &e.Classes, &e.Score, &e.Label, &e.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
