package domain

import "errors"

// Sentinel errors shared across services and mapped to HTTP status codes in
// the delivery layer.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
)
