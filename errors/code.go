package errors

import "encoding/json"

// ErrorCode is the machine-readable error code returned to clients
type ErrorCode int

const (
	ErrorCode_HTTP_OK ErrorCode = 200

	// General
	ErrorCode_INTERNAL ErrorCode = 1000 + iota
	ErrorCode_INVALID_ARGUMENT
	ErrorCode_INVALID_PAYLOAD
	ErrorCode_NOT_FOUND
	ErrorCode_ALREADY_EXISTS
	ErrorCode_PERMISSION_DENIED
	ErrorCode_RATE_LIMITED
)

const (
	// Authentication
	ErrorCode_UNAUTHENTICATED ErrorCode = 2000 + iota
	ErrorCode_AUTH_INVALID_TOKEN
	ErrorCode_AUTH_TOKEN_EXPIRED
	ErrorCode_AUTH_USER_NOT_FOUND
)

const (
	// Credits and license keys
	ErrorCode_PAYMENT_REQUIRED ErrorCode = 3000 + iota
	ErrorCode_LICENSE_KEY_INVALID
	ErrorCode_LICENSE_KEY_NOT_FOUND
	ErrorCode_LICENSE_KEY_REDEEMED
)

const (
	// AI analysis
	ErrorCode_AI_ANALYSIS_FAILED ErrorCode = 4000 + iota
	ErrorCode_AI_TIMEOUT
	ErrorCode_AI_SERVICE_UNAVAILABLE
)

const (
	// Memory bank and mentor
	ErrorCode_MEETING_NOT_FOUND ErrorCode = 5000 + iota
	ErrorCode_TAG_NOT_FOUND
	ErrorCode_MENTOR_SESSION_NOT_FOUND
)

const (
	// Database
	ErrorCode_DB_QUERY_FAILED ErrorCode = 6000 + iota
	ErrorCode_DB_TRANSACTION_FAILED
)

var codeNames = map[ErrorCode]string{
	ErrorCode_HTTP_OK:                  "OK",
	ErrorCode_INTERNAL:                 "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:         "INVALID_ARGUMENT",
	ErrorCode_INVALID_PAYLOAD:          "INVALID_PAYLOAD",
	ErrorCode_NOT_FOUND:                "NOT_FOUND",
	ErrorCode_ALREADY_EXISTS:           "ALREADY_EXISTS",
	ErrorCode_PERMISSION_DENIED:        "PERMISSION_DENIED",
	ErrorCode_RATE_LIMITED:             "RATE_LIMITED",
	ErrorCode_UNAUTHENTICATED:          "UNAUTHENTICATED",
	ErrorCode_AUTH_INVALID_TOKEN:       "AUTH_INVALID_TOKEN",
	ErrorCode_AUTH_TOKEN_EXPIRED:       "AUTH_TOKEN_EXPIRED",
	ErrorCode_AUTH_USER_NOT_FOUND:      "AUTH_USER_NOT_FOUND",
	ErrorCode_PAYMENT_REQUIRED:         "PAYMENT_REQUIRED",
	ErrorCode_LICENSE_KEY_INVALID:      "LICENSE_KEY_INVALID",
	ErrorCode_LICENSE_KEY_NOT_FOUND:    "LICENSE_KEY_NOT_FOUND",
	ErrorCode_LICENSE_KEY_REDEEMED:     "LICENSE_KEY_REDEEMED",
	ErrorCode_AI_ANALYSIS_FAILED:       "AI_ANALYSIS_FAILED",
	ErrorCode_AI_TIMEOUT:               "AI_TIMEOUT",
	ErrorCode_AI_SERVICE_UNAVAILABLE:   "AI_SERVICE_UNAVAILABLE",
	ErrorCode_MEETING_NOT_FOUND:        "MEETING_NOT_FOUND",
	ErrorCode_TAG_NOT_FOUND:            "TAG_NOT_FOUND",
	ErrorCode_MENTOR_SESSION_NOT_FOUND: "MENTOR_SESSION_NOT_FOUND",
	ErrorCode_DB_QUERY_FAILED:          "DB_QUERY_FAILED",
	ErrorCode_DB_TRANSACTION_FAILED:    "DB_TRANSACTION_FAILED",
}

// String returns the symbolic name of the code
func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}

// MarshalJSON renders the code by name so clients never depend on numbers
func (c ErrorCode) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}
