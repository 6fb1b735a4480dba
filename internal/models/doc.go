// Package models defines the core domain models for payme.
//
// # Models
//
//   - Account: a user identified by username, holding a balance
//   - Request: a standing ask for money, payable by any number of other users
//   - Response: one accept/decline action on a request (append-only)
//
// # Design Principles
//
// 1. **Weak references**: requests and responses reference accounts by username
// string, never by pointer, so rows can be persisted and scanned independently
// 2. **No deletes**: accounts, requests, and responses are never removed, so
// there is no cascade logic anywhere
// 3. **Explicit normalization**: amounts arriving over the wire are coerced
// through parse-or-zero (see Amount) instead of relying on decoder behavior
package models
