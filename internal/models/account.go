package models

import "time"

// Account represents a user and their balance.
//
// The username is the primary identity; there is no separate ID. The balance
// only changes through explicit funding or through settlement, and a
// settlement never drives it negative (the settlement path checks the floor
// before debiting).
type Account struct {
	// Username uniquely identifies the account.
	Username string `json:"username"`

	// Balance is the current funds available to the account.
	Balance float64 `json:"balance"`

	// CreatedAt is when the account was created.
	CreatedAt time.Time `json:"created_at"`
}
