package beeps

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeCreateInput(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantText string
		wantErr  bool
	}{
		{name: "valid", body: `{"text":"hi"}`, wantText: "hi"},
		{name: "empty text", body: `{"text":""}`, wantText: ""},
		{name: "extra fields ignored", body: `{"text":"hi","mood":"loud"}`, wantText: "hi"},
		{name: "unicode", body: `{"text":"héllo"}`, wantText: "héllo"},
		{name: "huge number in extra field", body: `{"text":"hi","n":1e400}`, wantText: "hi"},
		{name: "missing text", body: `{}`, wantErr: true},
		{name: "text not string", body: `{"text":42}`, wantErr: true},
		{name: "null text", body: `{"text":null}`, wantErr: true},
		{name: "array body", body: `["hi"]`, wantErr: true},
		{name: "empty body", body: ``, wantErr: true},
		{name: "malformed", body: `{"text":`, wantErr: true},
		{name: "trailing garbage", body: `{"text":"hi"} {}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input, err := DecodeCreateInput(strings.NewReader(tt.body))
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidPayload), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantText, input.Text)
		})
	}
}

func TestDecodeCreateInputPassesThroughReadErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	body := http.MaxBytesReader(rec, io.NopCloser(strings.NewReader(`{"text":"` + strings.Repeat("x", 64) + `"}`)), 16)

	_, err := DecodeCreateInput(body)

	var maxErr *http.MaxBytesError
	require.True(t, errors.As(err, &maxErr), "got %v", err)
	assert.False(t, errors.Is(err, ErrInvalidPayload))
}
