package service

import (
	"context"
	"log/slog"

	"github.com/tudorv/payme/internal/models"
	"github.com/tudorv/payme/internal/storage"
)

// RequestService handles creation and retrieval of payment requests.
type RequestService struct {
	store  storage.Store
	logger *slog.Logger
}

// NewRequestService creates a new RequestService with the given storage backend.
func NewRequestService(store storage.Store, logger *slog.Logger) *RequestService {
	return &RequestService{store: store, logger: logger}
}

// Create persists a new request. The amount is expected to be normalized
// already (parse-or-zero); a request for 0 is valid by design. Share-link
// rendering is the HTTP layer's concern and happens after this returns, so
// a rendering failure never rolls back the request.
func (s *RequestService) Create(ctx context.Context, amount float64, reason, createdBy string) (*models.Request, error) {
	req := &models.Request{
		Amount:    amount,
		Reason:    reason,
		CreatedBy: createdBy,
	}

	if err := s.store.CreateRequest(ctx, req); err != nil {
		s.logger.Error("failed to create request", "created_by", createdBy, "error", err)
		return nil, err
	}

	s.logger.Info("request created", "request_id", req.ID, "created_by", createdBy, "amount", amount)
	return req, nil
}

// Get returns the request with the given ID.
func (s *RequestService) Get(ctx context.Context, id string) (*models.Request, error) {
	return s.store.GetRequest(ctx, id)
}

// ListByCreator returns all requests created by username, newest first. An
// unknown username yields an empty list, not an error.
func (s *RequestService) ListByCreator(ctx context.Context, username string) ([]*models.Request, error) {
	requests, err := s.store.ListRequestsByCreator(ctx, username)
	if err != nil {
		s.logger.Error("failed to list requests", "username", username, "error", err)
		return nil, err
	}
	return requests, nil
}
