package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenFromHeader(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr error
	}{
		{name: "bearer", header: "Bearer s3cret", want: "s3cret"},
		{name: "lowercase scheme", header: "bearer s3cret", want: "s3cret"},
		{name: "uppercase scheme", header: "BEARER s3cret", want: "s3cret"},
		{name: "token keeps trailing space", header: "Bearer s3cret ", want: "s3cret "},
		{name: "token keeps inner space", header: "Bearer s3 cret", want: "s3 cret"},
		{name: "token keeps leading space", header: "Bearer  s3cret", want: " s3cret"},
		{name: "empty", header: "", wantErr: ErrMissingCredential},
		{name: "scheme only", header: "Bearer", wantErr: ErrMalformedCredential},
		{name: "scheme and space", header: "Bearer ", wantErr: ErrMalformedCredential},
		{name: "basic scheme", header: "Basic dXNlcjpwYXNz", wantErr: ErrMalformedCredential},
		{name: "bare token", header: "s3cret", wantErr: ErrMalformedCredential},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TokenFromHeader(tt.header)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTokenFromRequestNil(t *testing.T) {
	_, err := TokenFromRequest(nil)
	assert.ErrorIs(t, err, ErrMissingCredential)
}

func TestSecretMatches(t *testing.T) {
	secret := NewSecret("s3cret")

	tests := []struct {
		token string
		want  bool
	}{
		{token: "s3cret", want: true},
		{token: "S3cret", want: false},
		{token: "s3cre", want: false},
		{token: "s3crett", want: false},
		{token: "s3cret ", want: false},
		{token: " s3cret", want: false},
		{token: "s3creT", want: false},
		{token: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			assert.Equal(t, tt.want, secret.Matches(tt.token))
		})
	}
}

func TestSecretSingleByteDifferences(t *testing.T) {
	const value = "s3cret"
	secret := NewSecret(value)

	for i := 0; i < len(value); i++ {
		b := []byte(value)
		b[i] ^= 0x01
		assert.False(t, secret.Matches(string(b)), "token %q should not match", b)
	}
}

func TestZeroSecretMatchesNothing(t *testing.T) {
	var secret Secret

	assert.True(t, secret.IsZero())
	assert.False(t, secret.Matches(""))
	assert.False(t, secret.Matches("anything"))
}

func TestSecretVerify(t *testing.T) {
	secret := NewSecret("s3cret")

	tests := []struct {
		name    string
		header  string
		wantErr error
	}{
		{name: "match", header: "Bearer s3cret"},
		{name: "mismatch", header: "Bearer wrong", wantErr: ErrCredentialMismatch},
		{name: "missing", header: "", wantErr: ErrMissingCredential},
		{name: "malformed", header: "Token s3cret", wantErr: ErrMalformedCredential},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/beeps", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			err := secret.Verify(req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestSecretStringIsRedacted(t *testing.T) {
	secret := NewSecret("s3cret")
	assert.NotContains(t, secret.String(), "s3cret")
}
