package auth

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"
)

var (
	ErrMissingCredential   = errors.New("missing bearer credential")
	ErrMalformedCredential = errors.New("malformed bearer credential")
	ErrCredentialMismatch  = errors.New("bearer credential mismatch")
)

const bearerScheme = "bearer"

// TokenFromRequest extracts the bearer credential from the Authorization header.
func TokenFromRequest(r *http.Request) (string, error) {
	if r == nil {
		return "", ErrMissingCredential
	}
	return TokenFromHeader(r.Header.Get("Authorization"))
}

// TokenFromHeader parses "Bearer <token>". The scheme is matched
// case-insensitively; the token is everything after the first space and is
// returned as-is, without trimming.
func TokenFromHeader(header string) (string, error) {
	if header == "" {
		return "", ErrMissingCredential
	}
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, bearerScheme) || token == "" {
		return "", ErrMalformedCredential
	}
	return token, nil
}

// Secret is the single process-wide credential that authorizes mutation.
// It is read once at startup and never changes.
type Secret struct {
	value []byte
}

func NewSecret(value string) Secret {
	return Secret{value: []byte(value)}
}

// IsZero reports whether no secret was configured. A zero Secret matches nothing.
func (s Secret) IsZero() bool {
	return len(s.value) == 0
}

// Matches compares token with the secret byte for byte in constant time.
func (s Secret) Matches(token string) bool {
	if s.IsZero() {
		return false
	}
	return subtle.ConstantTimeCompare(s.value, []byte(token)) == 1
}

// Verify checks the request's bearer credential against the secret.
func (s Secret) Verify(r *http.Request) error {
	token, err := TokenFromRequest(r)
	if err != nil {
		return err
	}
	if !s.Matches(token) {
		return ErrCredentialMismatch
	}
	return nil
}

// String never reveals the secret.
func (s Secret) String() string {
	return "[redacted]"
}
