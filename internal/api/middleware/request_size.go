package middleware

import (
	"net/http"
)

// DefaultMaxBodySize caps request bodies on mutation endpoints (1MB).
const DefaultMaxBodySize int64 = 1 << 20

// RequestSize limits the size of incoming request bodies.
//
// It wraps the request body with http.MaxBytesReader; reading past maxBytes
// fails with *http.MaxBytesError, which handlers map to 413.
//
//	mux.Handle("POST /beeps", middleware.RequestSize(middleware.DefaultMaxBodySize)(create))
func RequestSize(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}
