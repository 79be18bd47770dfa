package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPerformHealthCheck(t *testing.T) {
	tests := []struct {
		name           string
		statusCode     int
		responseBody   any
		expectHealthy  bool
		expectError    bool
		expectedStatus string
	}{
		{
			name:       "healthy server",
			statusCode: http.StatusOK,
			responseBody: HealthResponse{
				Status: "healthy",
				Checks: map[string]CheckResult{"beeps": {Status: "pass"}},
			},
			expectHealthy:  true,
			expectedStatus: "healthy",
		},
		{
			name:           "unhealthy server (503)",
			statusCode:     http.StatusServiceUnavailable,
			responseBody:   HealthResponse{Status: "unhealthy"},
			expectedStatus: "unhealthy",
		},
		{
			name:           "shutting down",
			statusCode:     http.StatusServiceUnavailable,
			responseBody:   HealthResponse{Status: "shutting_down"},
			expectedStatus: "shutting_down",
		},
		{
			name:         "invalid response",
			statusCode:   http.StatusOK,
			responseBody: "not json",
			expectError:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
				if str, ok := tt.responseBody.(string); ok {
					fmt.Fprint(w, str)
				} else {
					_ = json.NewEncoder(w).Encode(tt.responseBody)
				}
			}))
			defer server.Close()

			result := performHealthCheck(server.URL)

			assert.Equal(t, tt.expectHealthy, result.IsHealthy)
			if tt.expectError {
				assert.NotEmpty(t, result.Error)
			} else {
				assert.Empty(t, result.Error)
				assert.Equal(t, tt.expectedStatus, result.Status)
			}
			assert.GreaterOrEqual(t, result.LatencyMs, int64(0))
		})
	}
}

func TestPerformHealthCheckTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-time.After(5 * time.Second):
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()
	defer close(release)

	orig := healthcheckTimeout
	healthcheckTimeout = 1
	defer func() { healthcheckTimeout = orig }()

	result := performHealthCheck(server.URL)

	assert.NotEmpty(t, result.Error)
	assert.False(t, result.IsHealthy)
}

func TestPerformHealthCheckUnreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	result := performHealthCheck(url)

	assert.NotEmpty(t, result.Error)
	assert.False(t, result.IsHealthy)
}

func TestHealthCheckURL(t *testing.T) {
	tests := []struct {
		name       string
		urlFlag    string
		serverPort string
		expected   string
	}{
		{name: "explicit URL", urlFlag: "http://example.com/health", expected: "http://example.com/health"},
		{name: "SERVER_PORT", serverPort: "9000", expected: "http://localhost:9000/health"},
		{name: "default port", expected: "http://localhost:7331/health"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orig := healthcheckURL
			healthcheckURL = tt.urlFlag
			defer func() { healthcheckURL = orig }()
			t.Setenv("SERVER_PORT", tt.serverPort)

			assert.Equal(t, tt.expected, healthCheckURL())
		})
	}
}

func TestRunHealthcheck(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(HealthResponse{Status: "healthy"})
	}))
	defer server.Close()

	root := newRootCommand()
	out := new(bytes.Buffer)
	root.SetOut(out)
	root.SetErr(out)
	root.SetArgs([]string{"healthcheck", "--url", server.URL + "/health"})
	defer func() { healthcheckURL = "" }()

	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "healthy")
}
