package models

// HTTP request and response payloads. Field names follow the wire format of
// the existing frontend, so createdBy and qrCodeData keep their camelCase.

type LoginRequest struct {
	Username string `json:"username"`
}

type SignupRequest struct {
	Username string `json:"username"`
}

type SignupResponse struct {
	Success  bool   `json:"success"`
	Username string `json:"username"`
}

type FundRequest struct {
	Username string `json:"username"`
	// Amount may arrive as a number or a string; non-numeric coerces to 0
	// and is then rejected as non-positive.
	Amount Amount `json:"amount"`
}

type CreateRequestRequest struct {
	Amount    Amount `json:"amount"`
	Reason    string `json:"reason"`
	CreatedBy string `json:"createdBy"`
}

type CreateRequestResponse struct {
	ID string `json:"id"`
	// QRCodeData is a data:image/png;base64 URI of the shareable link.
	// Empty when rendering failed; QRError then says why, and the request
	// is still durably created.
	QRCodeData string `json:"qrCodeData,omitempty"`
	QRError    string `json:"qr_error,omitempty"`
}

type RespondRequest struct {
	Username string `json:"username"`
	Status   string `json:"status"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
