package store

import "errors"

// Error variables for store operations.
var (
	ErrIDGenerationFailed = errors.New("no unique id after repeated attempts")
	ErrUnknownBackend     = errors.New("unknown storage backend")
	ErrSecretMismatch     = errors.New("incorrect password")
	ErrSecretEmpty        = errors.New("password cannot be empty")
	ErrKeyEmpty           = errors.New("storage key is empty")
)
