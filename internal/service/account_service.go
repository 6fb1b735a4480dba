package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/tudorv/payme/internal/apperr"
	"github.com/tudorv/payme/internal/models"
	"github.com/tudorv/payme/internal/storage"
)

// AccountService handles signup, login, and funding.
type AccountService struct {
	store  storage.Store
	logger *slog.Logger
}

// NewAccountService creates a new AccountService with the given storage backend.
func NewAccountService(store storage.Store, logger *slog.Logger) *AccountService {
	return &AccountService{store: store, logger: logger}
}

// Signup creates a new account with balance 0. A second signup with the
// same username fails with apperr.ErrUsernameTaken and leaves the original
// account untouched.
func (s *AccountService) Signup(ctx context.Context, username string) (*models.Account, error) {
	if strings.TrimSpace(username) == "" {
		return nil, apperr.ErrInvalidUsername
	}

	account, err := s.store.CreateAccount(ctx, username)
	if err != nil {
		if apperr.IsConflict(err) {
			s.logger.Warn("signup with taken username", "username", username)
			return nil, err
		}
		s.logger.Error("failed to create account", "username", username, "error", err)
		return nil, err
	}

	s.logger.Info("account created", "username", username)
	return account, nil
}

// Login looks the account up by username. There is no credential check
// beyond existence.
func (s *AccountService) Login(ctx context.Context, username string) (*models.Account, error) {
	return s.Get(ctx, username)
}

// Get returns the account snapshot for username.
func (s *AccountService) Get(ctx context.Context, username string) (*models.Account, error) {
	account, err := s.store.GetAccount(ctx, username)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, err
		}
		s.logger.Error("failed to get account", "username", username, "error", err)
		return nil, err
	}
	return account, nil
}

// Fund adds amount to the account's balance. The amount has already been
// normalized parse-or-zero at the boundary, so anything non-positive fails
// with apperr.ErrInvalidAmount, including non-numeric input that coerced
// to 0.
func (s *AccountService) Fund(ctx context.Context, username string, amount float64) error {
	if amount <= 0 {
		s.logger.Warn("invalid funding amount", "username", username, "amount", amount)
		return apperr.ErrInvalidAmount
	}

	if err := s.store.Credit(ctx, username, amount); err != nil {
		if apperr.IsNotFound(err) {
			s.logger.Warn("funding for unknown account", "username", username)
			return err
		}
		s.logger.Error("failed to credit account", "username", username, "amount", amount, "error", err)
		return err
	}

	s.logger.Info("account funded", "username", username, "amount", amount)
	return nil
}
