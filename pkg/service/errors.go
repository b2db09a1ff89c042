package service

import "errors"

// Errors
var (
	ErrNotFound        = errors.New("key not found")
	ErrMalformedRecord = errors.New("malformed record")
)
