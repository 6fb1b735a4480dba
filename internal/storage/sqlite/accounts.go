package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tudorv/payme/internal/apperr"
	"github.com/tudorv/payme/internal/models"
)

// CreateAccount inserts a new account with balance 0.
func (s *SQLiteStore) CreateAccount(ctx context.Context, username string) (*models.Account, error) {
	account := &models.Account{
		Username:  username,
		Balance:   0,
		CreatedAt: time.Now().UTC(),
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO accounts (username, balance, created_at) VALUES (?, 0, ?)",
		account.Username, formatTime(account.CreatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperr.ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	return account, nil
}

// GetAccount retrieves an account snapshot by username.
func (s *SQLiteStore) GetAccount(ctx context.Context, username string) (*models.Account, error) {
	account := &models.Account{}
	var createdAt string

	err := s.db.QueryRowContext(ctx,
		"SELECT username, balance, created_at FROM accounts WHERE username = ?",
		username,
	).Scan(&account.Username, &account.Balance, &createdAt)
	if err == sql.ErrNoRows {
		return nil, apperr.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	account.CreatedAt = parseTime(createdAt)
	return account, nil
}

// Credit atomically increases an account's balance by amount. The increment
// happens in a single UPDATE so concurrent credits never lose an update.
func (s *SQLiteStore) Credit(ctx context.Context, username string, amount float64) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE accounts SET balance = balance + ? WHERE username = ?",
		amount, username,
	)
	if err != nil {
		return fmt.Errorf("failed to credit account: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after credit: %w", err)
	}
	if rows == 0 {
		return apperr.ErrAccountNotFound
	}

	return nil
}
