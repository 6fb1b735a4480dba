package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/tudorv/payme/internal/apperr"
	"github.com/tudorv/payme/internal/models"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "payme-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func TestAccounts(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("CreateAccount starts with zero balance", func(t *testing.T) {
		account, err := store.CreateAccount(ctx, "alice")
		if err != nil {
			t.Fatalf("CreateAccount failed: %v", err)
		}
		if account.Balance != 0 {
			t.Errorf("Expected balance 0, got %f", account.Balance)
		}
		if account.CreatedAt.IsZero() {
			t.Error("Expected CreatedAt to be set")
		}
	})

	t.Run("duplicate username fails with conflict and keeps original", func(t *testing.T) {
		if _, err := store.CreateAccount(ctx, "bob"); err != nil {
			t.Fatalf("CreateAccount failed: %v", err)
		}
		if err := store.Credit(ctx, "bob", 10); err != nil {
			t.Fatalf("Credit failed: %v", err)
		}

		_, err := store.CreateAccount(ctx, "bob")
		if !errors.Is(err, apperr.ErrUsernameTaken) {
			t.Fatalf("Expected ErrUsernameTaken, got %v", err)
		}

		account, err := store.GetAccount(ctx, "bob")
		if err != nil {
			t.Fatalf("GetAccount failed: %v", err)
		}
		if account.Balance != 10 {
			t.Errorf("Original account changed: balance %f, want 10", account.Balance)
		}
	})

	t.Run("GetAccount of unknown user fails with not found", func(t *testing.T) {
		_, err := store.GetAccount(ctx, "nobody")
		if !errors.Is(err, apperr.ErrAccountNotFound) {
			t.Errorf("Expected ErrAccountNotFound, got %v", err)
		}
	})

	t.Run("Credit of unknown user fails with not found", func(t *testing.T) {
		err := store.Credit(ctx, "nobody", 5)
		if !errors.Is(err, apperr.ErrAccountNotFound) {
			t.Errorf("Expected ErrAccountNotFound, got %v", err)
		}
	})

	t.Run("concurrent credits all apply", func(t *testing.T) {
		if _, err := store.CreateAccount(ctx, "carol"); err != nil {
			t.Fatalf("CreateAccount failed: %v", err)
		}

		const n = 20
		done := make(chan error, n)
		for i := 0; i < n; i++ {
			go func() {
				done <- store.Credit(ctx, "carol", 1)
			}()
		}
		for i := 0; i < n; i++ {
			if err := <-done; err != nil {
				t.Fatalf("Credit failed: %v", err)
			}
		}

		account, err := store.GetAccount(ctx, "carol")
		if err != nil {
			t.Fatalf("GetAccount failed: %v", err)
		}
		if account.Balance != n {
			t.Errorf("Lost update: balance %f, want %d", account.Balance, n)
		}
	})
}

func TestRequests(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("CreateRequest generates ID and zeroes total_collected", func(t *testing.T) {
		req := &models.Request{Amount: 20, Reason: "lunch", CreatedBy: "alice", TotalCollected: 99}
		if err := store.CreateRequest(ctx, req); err != nil {
			t.Fatalf("CreateRequest failed: %v", err)
		}
		if req.ID == "" {
			t.Error("Expected request ID to be generated")
		}
		if req.TotalCollected != 0 {
			t.Errorf("Expected total_collected 0, got %f", req.TotalCollected)
		}

		retrieved, err := store.GetRequest(ctx, req.ID)
		if err != nil {
			t.Fatalf("GetRequest failed: %v", err)
		}
		if retrieved.Amount != 20 || retrieved.Reason != "lunch" || retrieved.CreatedBy != "alice" {
			t.Errorf("Round trip mismatch: %+v", retrieved)
		}
	})

	t.Run("negative amount is stored as zero", func(t *testing.T) {
		req := &models.Request{Amount: -5, Reason: "refund me", CreatedBy: "alice"}
		if err := store.CreateRequest(ctx, req); err != nil {
			t.Fatalf("CreateRequest failed: %v", err)
		}

		retrieved, err := store.GetRequest(ctx, req.ID)
		if err != nil {
			t.Fatalf("GetRequest failed: %v", err)
		}
		if retrieved.Amount != 0 {
			t.Errorf("Amount %f, want 0", retrieved.Amount)
		}
	})

	t.Run("GetRequest of unknown id fails with not found", func(t *testing.T) {
		_, err := store.GetRequest(ctx, "nonexistent-id")
		if !errors.Is(err, apperr.ErrRequestNotFound) {
			t.Errorf("Expected ErrRequestNotFound, got %v", err)
		}
	})

	t.Run("ListRequestsByCreator orders newest first", func(t *testing.T) {
		base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
		for i, reason := range []string{"oldest", "middle", "newest"} {
			req := &models.Request{
				Amount:    float64(i),
				Reason:    reason,
				CreatedBy: "dana",
				CreatedAt: base.Add(time.Duration(i) * time.Minute),
			}
			if err := store.CreateRequest(ctx, req); err != nil {
				t.Fatalf("CreateRequest failed: %v", err)
			}
		}

		requests, err := store.ListRequestsByCreator(ctx, "dana")
		if err != nil {
			t.Fatalf("ListRequestsByCreator failed: %v", err)
		}
		if len(requests) != 3 {
			t.Fatalf("Expected 3 requests, got %d", len(requests))
		}
		if requests[0].Reason != "newest" || requests[2].Reason != "oldest" {
			t.Errorf("Wrong order: %s, %s, %s", requests[0].Reason, requests[1].Reason, requests[2].Reason)
		}
	})

	t.Run("ListRequestsByCreator with no rows returns empty slice", func(t *testing.T) {
		requests, err := store.ListRequestsByCreator(ctx, "nobody")
		if err != nil {
			t.Fatalf("ListRequestsByCreator failed: %v", err)
		}
		if len(requests) != 0 {
			t.Errorf("Expected empty result, got %d rows", len(requests))
		}
	})
}

func TestAppendResponse(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	// No existence checks: neither the request nor the user is validated.
	if err := store.AppendResponse(ctx, "no-such-request", "nobody", models.StatusDeclined); err != nil {
		t.Fatalf("AppendResponse failed: %v", err)
	}

	n, err := store.CountResponses(ctx, "no-such-request", models.StatusDeclined)
	if err != nil {
		t.Fatalf("CountResponses failed: %v", err)
	}
	if n != 1 {
		t.Errorf("Expected 1 declined response, got %d", n)
	}
}

func TestSettle(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*SQLiteStore, *models.Request) {
		store := newTestStore(t)
		if _, err := store.CreateAccount(ctx, "alice"); err != nil {
			t.Fatalf("CreateAccount failed: %v", err)
		}
		if _, err := store.CreateAccount(ctx, "bob"); err != nil {
			t.Fatalf("CreateAccount failed: %v", err)
		}
		req := &models.Request{Amount: 20, Reason: "lunch", CreatedBy: "alice"}
		if err := store.CreateRequest(ctx, req); err != nil {
			t.Fatalf("CreateRequest failed: %v", err)
		}
		return store, req
	}

	balance := func(t *testing.T, store *SQLiteStore, username string) float64 {
		t.Helper()
		account, err := store.GetAccount(ctx, username)
		if err != nil {
			t.Fatalf("GetAccount(%s) failed: %v", username, err)
		}
		return account.Balance
	}

	t.Run("acceptance moves funds and updates total_collected", func(t *testing.T) {
		store, req := setup(t)
		if err := store.Credit(ctx, "bob", 50); err != nil {
			t.Fatalf("Credit failed: %v", err)
		}

		if err := store.Settle(ctx, req.ID, "bob"); err != nil {
			t.Fatalf("Settle failed: %v", err)
		}

		if got := balance(t, store, "bob"); got != 30 {
			t.Errorf("Payer balance %f, want 30", got)
		}
		if got := balance(t, store, "alice"); got != 20 {
			t.Errorf("Creditor balance %f, want 20", got)
		}

		settled, err := store.GetRequest(ctx, req.ID)
		if err != nil {
			t.Fatalf("GetRequest failed: %v", err)
		}
		if settled.TotalCollected != 20 {
			t.Errorf("total_collected %f, want 20", settled.TotalCollected)
		}

		n, err := store.CountResponses(ctx, req.ID, models.StatusAccepted)
		if err != nil {
			t.Fatalf("CountResponses failed: %v", err)
		}
		if n != 1 {
			t.Errorf("Expected 1 accepted response, got %d", n)
		}
	})

	t.Run("unknown request leaves everything unchanged", func(t *testing.T) {
		store, _ := setup(t)
		if err := store.Credit(ctx, "bob", 50); err != nil {
			t.Fatalf("Credit failed: %v", err)
		}

		err := store.Settle(ctx, "no-such-request", "bob")
		if !errors.Is(err, apperr.ErrRequestNotFound) {
			t.Fatalf("Expected ErrRequestNotFound, got %v", err)
		}
		if got := balance(t, store, "bob"); got != 50 {
			t.Errorf("Payer balance changed: %f", got)
		}
	})

	t.Run("insufficient funds leaves everything unchanged", func(t *testing.T) {
		store, req := setup(t)
		if err := store.Credit(ctx, "bob", 5); err != nil {
			t.Fatalf("Credit failed: %v", err)
		}

		err := store.Settle(ctx, req.ID, "bob")
		if !errors.Is(err, apperr.ErrInsufficientFunds) {
			t.Fatalf("Expected ErrInsufficientFunds, got %v", err)
		}

		if got := balance(t, store, "bob"); got != 5 {
			t.Errorf("Payer balance changed: %f", got)
		}
		if got := balance(t, store, "alice"); got != 0 {
			t.Errorf("Creditor balance changed: %f", got)
		}
		settled, _ := store.GetRequest(ctx, req.ID)
		if settled.TotalCollected != 0 {
			t.Errorf("total_collected changed: %f", settled.TotalCollected)
		}
		n, _ := store.CountResponses(ctx, req.ID, models.StatusAccepted)
		if n != 0 {
			t.Errorf("Response row written on failed settlement")
		}
	})

	t.Run("payer without account counts as balance zero", func(t *testing.T) {
		store, req := setup(t)

		err := store.Settle(ctx, req.ID, "ghost")
		if !errors.Is(err, apperr.ErrInsufficientFunds) {
			t.Fatalf("Expected ErrInsufficientFunds, got %v", err)
		}
	})

	t.Run("missing payer may settle a zero-amount request", func(t *testing.T) {
		store, _ := setup(t)
		req := &models.Request{Amount: 0, Reason: "tip jar", CreatedBy: "alice"}
		if err := store.CreateRequest(ctx, req); err != nil {
			t.Fatalf("CreateRequest failed: %v", err)
		}

		if err := store.Settle(ctx, req.ID, "ghost"); err != nil {
			t.Fatalf("Settle failed: %v", err)
		}
		n, _ := store.CountResponses(ctx, req.ID, models.StatusAccepted)
		if n != 1 {
			t.Errorf("Expected 1 accepted response, got %d", n)
		}
	})

	t.Run("standing ask accepts multiple payers", func(t *testing.T) {
		store, req := setup(t)
		if _, err := store.CreateAccount(ctx, "carol"); err != nil {
			t.Fatalf("CreateAccount failed: %v", err)
		}
		store.Credit(ctx, "bob", 20)
		store.Credit(ctx, "carol", 20)

		if err := store.Settle(ctx, req.ID, "bob"); err != nil {
			t.Fatalf("Settle(bob) failed: %v", err)
		}
		if err := store.Settle(ctx, req.ID, "carol"); err != nil {
			t.Fatalf("Settle(carol) failed: %v", err)
		}

		settled, _ := store.GetRequest(ctx, req.ID)
		if settled.TotalCollected != 40 {
			t.Errorf("total_collected %f, want 40", settled.TotalCollected)
		}
		if got := balance(t, store, "alice"); got != 40 {
			t.Errorf("Creditor balance %f, want 40", got)
		}
	})

	t.Run("concurrent acceptances do not lose updates", func(t *testing.T) {
		store, req := setup(t)
		if _, err := store.CreateAccount(ctx, "carol"); err != nil {
			t.Fatalf("CreateAccount failed: %v", err)
		}
		store.Credit(ctx, "bob", 20)
		store.Credit(ctx, "carol", 20)

		done := make(chan error, 2)
		for _, payer := range []string{"bob", "carol"} {
			go func(p string) {
				done <- store.Settle(ctx, req.ID, p)
			}(payer)
		}
		for i := 0; i < 2; i++ {
			if err := <-done; err != nil {
				t.Fatalf("Settle failed: %v", err)
			}
		}

		if got := balance(t, store, "bob"); got != 0 {
			t.Errorf("bob balance %f, want 0", got)
		}
		if got := balance(t, store, "carol"); got != 0 {
			t.Errorf("carol balance %f, want 0", got)
		}
		if got := balance(t, store, "alice"); got != 40 {
			t.Errorf("alice balance %f, want 40", got)
		}
		settled, _ := store.GetRequest(ctx, req.ID)
		if settled.TotalCollected != 40 {
			t.Errorf("total_collected %f, want 40", settled.TotalCollected)
		}
	})

	t.Run("a balance covering one acceptance settles exactly once", func(t *testing.T) {
		store, req := setup(t)
		store.Credit(ctx, "bob", 20)
		// bob can pay once; a second acceptance by bob must fail cleanly.
		first := store.Settle(ctx, req.ID, "bob")
		second := store.Settle(ctx, req.ID, "bob")

		if first != nil {
			t.Fatalf("First settle failed: %v", first)
		}
		if !errors.Is(second, apperr.ErrInsufficientFunds) {
			t.Fatalf("Expected ErrInsufficientFunds on second settle, got %v", second)
		}
		if got := balance(t, store, "bob"); got != 0 {
			t.Errorf("bob balance %f, want 0", got)
		}
		settled, _ := store.GetRequest(ctx, req.ID)
		if settled.TotalCollected != 20 {
			t.Errorf("total_collected %f, want 20", settled.TotalCollected)
		}
	})
}
