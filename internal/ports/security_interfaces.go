package ports

import (
	"time"

	"auth-web-server/internal/security"
)

type TokenCodec interface {
	Issue(userID string, tokenType string) (string, error)
	Verify(tokenString string, expectedType string) (*security.Claims, error)
	RefreshTTL() time.Duration
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(encodedHash, password string) bool
	NeedsRehash(encodedHash string) bool
}
