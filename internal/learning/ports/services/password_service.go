// Package services defines service ports consumed by the application layer.
package services

import "context"

// PasswordService hashes and verifies passwords. Plaintext is never stored
// or compared directly.
type PasswordService interface {
	Hash(ctx context.Context, password string) (string, error)

	Verify(ctx context.Context, password, hash string) (bool, error)
}
