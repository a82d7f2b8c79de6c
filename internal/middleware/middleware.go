package middleware

import (
	"net/http"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/time/rate"
)

// KeyVerifier checks a presented API key. Split out as an interface so the
// middleware can be tested without real bcrypt hashes in every case.
type KeyVerifier interface {
	VerifyKey(key string) error
}

// BcryptVerifier compares presented keys against a bcrypt hash of the
// expected key. An empty hash disables the check (local/dev use).
type BcryptVerifier struct {
	Hash string
}

func (v BcryptVerifier) VerifyKey(key string) error {
	return bcrypt.CompareHashAndPassword([]byte(v.Hash), []byte(key))
}

// APIKeyMiddleware guards the refresh endpoints. A refresh rewrites whole
// feature classes, so anything beyond a health check requires the key.
func APIKeyMiddleware(verifier KeyVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get("X-API-Key")
			if key == "" {
				http.Error(w, "Missing API key", http.StatusUnauthorized)
				return
			}

			if err := verifier.VerifyKey(key); err != nil {
				http.Error(w, "Invalid API key", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RefreshLimiter throttles refresh requests. Refreshes are heavy and hold
// a transaction for their whole duration; rejecting bursts up front is
// kinder than queueing them against the database.
func RefreshLimiter(limiter *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				http.Error(w, "Refresh already in progress or rate limited", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
