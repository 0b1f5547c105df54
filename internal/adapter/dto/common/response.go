package common

import "time"

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error        string            `json:"error"`
	Code         string            `json:"code"`
	Timestamp    time.Time         `json:"timestamp"`
	Details      map[string]string `json:"details,omitempty"`
	NeedsPayment bool              `json:"needsPayment,omitempty"`
	PaymentURL   string            `json:"paymentUrl,omitempty"`
}

// PaginationResponse represents offset pagination metadata
type PaginationResponse struct {
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
	Total  int64 `json:"total"`
}
