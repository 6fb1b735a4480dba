package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tudorv/payme/internal/apperr"
	"github.com/tudorv/payme/internal/models"
)

// Settle performs the atomic accept path for (requestID, payer) in a single
// transaction:
//
//  1. read the request (absent -> ErrRequestNotFound)
//  2. conditional debit of the payer: the balance floor check and the debit
//     are one UPDATE, so no funding or settlement for the same payer can
//     interleave between check and mutation
//  3. credit the request's creator
//  4. increment the request's total_collected
//  5. append an accepted response row
//
// Any failure rolls the whole unit back; a concurrent acceptance of the same
// request serializes on the transaction, so total_collected never loses an
// update.
func (s *SQLiteStore) Settle(ctx context.Context, requestID, payer string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return apperr.NewSettlementError("begin", err)
	}
	defer tx.Rollback()

	req := &models.Request{}
	err = tx.QueryRowContext(ctx,
		"SELECT id, amount, created_by FROM requests WHERE id = ?",
		requestID,
	).Scan(&req.ID, &req.Amount, &req.CreatedBy)
	if err == sql.ErrNoRows {
		return apperr.ErrRequestNotFound
	}
	if err != nil {
		return apperr.NewSettlementError("get request", err)
	}

	sum := req.Amount

	// A zero-amount request settles without touching the payer; in
	// particular a payer with no account (balance defined as 0) may accept
	// it, matching the source behavior.
	if sum > 0 {
		result, err := tx.ExecContext(ctx,
			"UPDATE accounts SET balance = balance - ? WHERE username = ? AND balance >= ?",
			sum, payer, sum,
		)
		if err != nil {
			return apperr.NewSettlementError("debit payer", err)
		}
		rows, err := result.RowsAffected()
		if err != nil {
			return apperr.NewSettlementError("debit payer", err)
		}
		if rows == 0 {
			// Either the balance is short or the payer has no account,
			// which counts as balance 0.
			return apperr.ErrInsufficientFunds
		}
	}

	// The creator row may be absent (weak reference); the unchecked update
	// mirrors the source.
	if _, err := tx.ExecContext(ctx,
		"UPDATE accounts SET balance = balance + ? WHERE username = ?",
		sum, req.CreatedBy,
	); err != nil {
		return apperr.NewSettlementError("credit creator", err)
	}

	if _, err := tx.ExecContext(ctx,
		"UPDATE requests SET total_collected = total_collected + ? WHERE id = ?",
		sum, requestID,
	); err != nil {
		return apperr.NewSettlementError("increment total_collected", err)
	}

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO responses (request_id, username, status) VALUES (?, ?, ?)",
		requestID, payer, models.StatusAccepted,
	); err != nil {
		return apperr.NewSettlementError("append response", err)
	}

	if err := tx.Commit(); err != nil {
		return apperr.NewSettlementError("commit", err)
	}

	return nil
}

// CountResponses returns the number of response rows for a request with the
// given status. Used by tests and diagnostics, not by the settlement path.
func (s *SQLiteStore) CountResponses(ctx context.Context, requestID, status string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM responses WHERE request_id = ? AND status = ?",
		requestID, status,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count responses: %w", err)
	}
	return n, nil
}
