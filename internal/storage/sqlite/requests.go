package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tudorv/payme/internal/apperr"
	"github.com/tudorv/payme/internal/models"
)

// CreateRequest persists a new request. ID and CreatedAt are generated if
// not set; TotalCollected always starts at 0.
func (s *SQLiteStore) CreateRequest(ctx context.Context, req *models.Request) error {
	if req.ID == "" {
		req.ID = uuid.New().String()
	}
	if req.CreatedAt.IsZero() {
		req.CreatedAt = time.Now().UTC()
	}
	// The amount floor holds at the data layer too: a negative ask is
	// stored as a zero ask, keeping total_collected non-decreasing.
	if req.Amount < 0 {
		req.Amount = 0
	}
	req.TotalCollected = 0

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO requests (id, amount, reason, created_at, created_by, total_collected)
		 VALUES (?, ?, ?, ?, ?, 0)`,
		req.ID, req.Amount, req.Reason, formatTime(req.CreatedAt), req.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert request: %w", err)
	}

	return nil
}

// GetRequest retrieves a request by ID.
func (s *SQLiteStore) GetRequest(ctx context.Context, id string) (*models.Request, error) {
	req := &models.Request{}
	var createdAt string

	err := s.db.QueryRowContext(ctx,
		`SELECT id, amount, reason, created_at, created_by, total_collected
		 FROM requests WHERE id = ?`,
		id,
	).Scan(&req.ID, &req.Amount, &req.Reason, &createdAt, &req.CreatedBy, &req.TotalCollected)
	if err == sql.ErrNoRows {
		return nil, apperr.ErrRequestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get request: %w", err)
	}

	req.CreatedAt = parseTime(createdAt)
	return req, nil
}

// ListRequestsByCreator returns requests created by username, newest first.
func (s *SQLiteStore) ListRequestsByCreator(ctx context.Context, username string) ([]*models.Request, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, amount, reason, created_at, created_by, total_collected
		 FROM requests WHERE created_by = ? ORDER BY created_at DESC`,
		username,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}
	defer rows.Close()

	requests := []*models.Request{}
	for rows.Next() {
		req := &models.Request{}
		var createdAt string
		if err := rows.Scan(&req.ID, &req.Amount, &req.Reason, &createdAt, &req.CreatedBy, &req.TotalCollected); err != nil {
			return nil, fmt.Errorf("failed to scan request: %w", err)
		}
		req.CreatedAt = parseTime(createdAt)
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate requests: %w", err)
	}

	return requests, nil
}
