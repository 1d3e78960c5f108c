package middleware

import "net/http"

// DefaultMaxRequestSize is the fallback request body cap (1MB)
const DefaultMaxRequestSize int64 = 1 << 20

// MaxRequestSize caps request body sizes. Requests with a Content-Length
// over the cap are rejected up front; chunked bodies are bounded by
// MaxBytesReader.
func MaxRequestSize(maxBytes int64) func(http.Handler) http.Handler {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxRequestSize
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > maxBytes {
				http.Error(w, "Request Entity Too Large", http.StatusRequestEntityTooLarge)
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}
