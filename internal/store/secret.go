package store

import (
	"crypto/subtle"
	"fmt"
)

// DefaultSecret is written to the secret slot on first run.
const DefaultSecret = "admin123"

// EnsureSecret returns the stored shared secret, writing [DefaultSecret] first if none exists.
func EnsureSecret(kv KV) (string, error) {
	secret, ok, err := kv.Get(SecretKey)
	if err != nil {
		return "", fmt.Errorf("read secret: %w", err)
	}

	if ok {
		return secret, nil
	}

	err = kv.Set(SecretKey, DefaultSecret)
	if err != nil {
		return "", fmt.Errorf("write default secret: %w", err)
	}

	return DefaultSecret, nil
}

// CheckSecret compares entered against the stored secret.
// There is no lockout or backoff; callers may retry freely.
func CheckSecret(kv KV, entered string) error {
	secret, err := EnsureSecret(kv)
	if err != nil {
		return err
	}

	if subtle.ConstantTimeCompare([]byte(secret), []byte(entered)) != 1 {
		return ErrSecretMismatch
	}

	return nil
}

// SetSecret replaces the shared secret.
func SetSecret(kv KV, secret string) error {
	if secret == "" {
		return ErrSecretEmpty
	}

	err := kv.Set(SecretKey, secret)
	if err != nil {
		return fmt.Errorf("write secret: %w", err)
	}

	return nil
}
