package models

import "errors"

// Sentinel errors for the storefront. Services wrap these with
// fmt.Errorf("...: %w", Err...) so handlers can map them to HTTP status
// codes with errors.Is while keeping contextual messages.
var (
	ErrAuthRequired       = errors.New("authentication required")
	ErrForbidden          = errors.New("insufficient permissions")
	ErrValidation         = errors.New("validation failed")
	ErrNotFound           = errors.New("not found")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrVerificationFailed = errors.New("payment verification failed")
	ErrUpstream           = errors.New("payment gateway error")
	ErrConflict           = errors.New("already exists")
)
