package entities

import "errors"

// Domain errors
var (
	// User errors
	ErrUserNotFound = errors.New("user not found")

	// Credit errors
	ErrInsufficientCredits = errors.New("insufficient credits")
	ErrChargeNotFound      = errors.New("credit charge not found")
	ErrChargeFinalized     = errors.New("credit charge already settled or refunded")

	// License key errors
	ErrInvalidLicenseKey  = errors.New("invalid license key format")
	ErrLicenseKeyNotFound = errors.New("license key not found")
	ErrLicenseKeyRedeemed = errors.New("license key already redeemed")

	// Analysis errors
	ErrInvalidMode        = errors.New("invalid analysis mode")
	ErrInvalidContentKind = errors.New("invalid content mode")
	ErrEmptyContent       = errors.New("no content to analyze")

	// Memory bank errors
	ErrMeetingNotFound = errors.New("meeting not found")
	ErrTagNotFound     = errors.New("tag not found")
	ErrTagExists       = errors.New("tag already exists")

	// Mentor errors
	ErrMentorSessionNotFound = errors.New("mentor session not found")
	ErrUnknownMentorSession  = errors.New("unknown mentor session type")
	ErrInvalidMentorStep     = errors.New("mentor step out of range")
)
