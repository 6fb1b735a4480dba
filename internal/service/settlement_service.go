package service

import (
	"context"
	"log/slog"

	"github.com/tudorv/payme/internal/apperr"
	"github.com/tudorv/payme/internal/models"
	"github.com/tudorv/payme/internal/storage"
)

// SettlementService is the engine behind responding to a request. Declines
// go straight to the response log; acceptances run the store's atomic
// settlement (conditional debit, creator credit, total_collected increment,
// response row — all or nothing).
type SettlementService struct {
	store  storage.Store
	logger *slog.Logger
}

// NewSettlementService creates a new SettlementService with the given storage backend.
func NewSettlementService(store storage.Store, logger *slog.Logger) *SettlementService {
	return &SettlementService{store: store, logger: logger}
}

// Respond records username's response to a request. The status must be
// exactly "accepted" or "declined"; anything else fails with
// apperr.ErrInvalidStatus before touching any store.
//
// A decline is appended without checking that the request exists. That is a
// known inconsistency inherited from the original behavior, kept on purpose.
func (s *SettlementService) Respond(ctx context.Context, requestID, username, status string) error {
	if !models.ValidStatus(status) {
		s.logger.Warn("rejected response with unknown status",
			"request_id", requestID,
			"username", username,
			"status", status,
		)
		return apperr.ErrInvalidStatus
	}

	if status == models.StatusDeclined {
		if err := s.store.AppendResponse(ctx, requestID, username, models.StatusDeclined); err != nil {
			s.logger.Error("failed to record decline", "request_id", requestID, "username", username, "error", err)
			return err
		}
		s.logger.Info("request declined", "request_id", requestID, "username", username)
		return nil
	}

	if err := s.store.Settle(ctx, requestID, username); err != nil {
		switch {
		case apperr.IsNotFound(err):
			s.logger.Warn("acceptance of unknown request", "request_id", requestID, "username", username)
		case apperr.IsInsufficientFunds(err):
			s.logger.Warn("acceptance with insufficient funds", "request_id", requestID, "username", username)
		default:
			s.logger.Error("settlement failed", "request_id", requestID, "username", username, "error", err)
		}
		return err
	}

	s.logger.Info("request settled", "request_id", requestID, "payer", username)
	return nil
}
