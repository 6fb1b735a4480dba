// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/tudorv/payme/internal/models"
)

// Store defines the interface for the payment-request ledger. This
// abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
//
// Concurrency is the store's responsibility: balance and total_collected
// increments are atomic, and Settle groups its four effects into a single
// transaction so concurrent acceptances never observe a partial settlement.
type Store interface {
	// CreateAccount inserts a new account with balance 0.
	// Returns apperr.ErrUsernameTaken if the username exists.
	CreateAccount(ctx context.Context, username string) (*models.Account, error)

	// GetAccount retrieves an account snapshot by username.
	// Returns apperr.ErrAccountNotFound if absent.
	GetAccount(ctx context.Context, username string) (*models.Account, error)

	// Credit atomically increases an account's balance by amount.
	// Returns apperr.ErrAccountNotFound if no row was updated. Callers
	// validate amount > 0; the store applies whatever it is given.
	Credit(ctx context.Context, username string, amount float64) error

	// CreateRequest persists a new request, filling ID, CreatedAt, and
	// TotalCollected if unset.
	CreateRequest(ctx context.Context, req *models.Request) error

	// GetRequest retrieves a request by ID.
	// Returns apperr.ErrRequestNotFound if absent.
	GetRequest(ctx context.Context, id string) (*models.Request, error)

	// ListRequestsByCreator returns requests created by username, newest
	// first. Absence of rows is an empty slice, never an error.
	ListRequestsByCreator(ctx context.Context, username string) ([]*models.Request, error)

	// AppendResponse inserts one immutable response row. It does not check
	// that the request or the username exist.
	AppendResponse(ctx context.Context, requestID, username, status string) error

	// Settle performs the atomic accept path for (requestID, payer):
	// conditional debit of the payer, credit of the creator, increment of
	// the request's total_collected, and an accepted response row, as one
	// unit. Returns apperr.ErrRequestNotFound or apperr.ErrInsufficientFunds
	// with no mutation applied.
	Settle(ctx context.Context, requestID, payer string) error

	// Close releases any resources held by the store.
	Close() error
}
