package sqlite

import (
	"context"
	"fmt"
)

// AppendResponse inserts one immutable response row. By design it does not
// check that the request or the username exist; declines on unknown requests
// are recorded as-is.
func (s *SQLiteStore) AppendResponse(ctx context.Context, requestID, username, status string) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO responses (request_id, username, status) VALUES (?, ?, ?)",
		requestID, username, status,
	)
	if err != nil {
		return fmt.Errorf("failed to append response: %w", err)
	}
	return nil
}
