package models

// Response statuses. These are the only two accepted at the boundary; any
// other literal is rejected with a validation error before reaching storage.
const (
	StatusAccepted = "accepted"
	StatusDeclined = "declined"
)

// ValidStatus reports whether s is one of the two response statuses.
func ValidStatus(s string) bool {
	return s == StatusAccepted || s == StatusDeclined
}

// Response is one accept/decline action on a request. Rows are append-only
// and are not deduplicated: a user who responds twice produces two rows.
type Response struct {
	// ID is an auto-incrementing sequence number assigned by the store.
	ID int64 `json:"id"`

	// RequestID references the request (weak).
	RequestID string `json:"request_id"`

	// Username references the responding account (weak).
	Username string `json:"username"`

	// Status is StatusAccepted or StatusDeclined.
	Status string `json:"status"`
}
