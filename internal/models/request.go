package models

import "time"

// Request is a standing ask for money created by one account. Any number of
// other accounts may accept it independently; each acceptance transfers
// Amount from the payer to the creator and adds Amount to TotalCollected.
//
// A request is never deleted, and only TotalCollected ever changes after
// creation.
type Request struct {
	// ID is an opaque unique token (UUID).
	ID string `json:"id"`

	// Amount is the sum asked for per acceptance. It is normalized at the
	// boundary: non-numeric input becomes 0 rather than an error.
	Amount float64 `json:"amount"`

	// Reason is free-form text describing the ask.
	Reason string `json:"reason"`

	// CreatedAt is when the request was created.
	CreatedAt time.Time `json:"created_at"`

	// CreatedBy is the username of the creator (weak reference).
	CreatedBy string `json:"created_by"`

	// TotalCollected is the running sum over all accepted responses.
	// Monotonically non-decreasing.
	TotalCollected float64 `json:"total_collected"`
}
