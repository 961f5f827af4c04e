package middleware

import (
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/bbpmp-jabar/nyurat-keun/internal/middleware/ratelimiter"
)

// RateLimit throttles requests per identity. Used on the auth form posts so
// one account or number cannot be hammered.
func RateLimit(rl *ratelimiter.IdentityLimiter, getIdentity func(r *http.Request) (string, error)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := getIdentity(r)
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			if !rl.Allow(identity) {
				http.Error(w, "Terlalu banyak percobaan, coba lagi nanti", http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// GetIP extracts the real client IP from RemoteAddr
// Does NOT trust X-Real-IP or X-Forwarded-For headers (no reverse proxy)
func GetIP(r *http.Request) (string, error) {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		// Fallback: if RemoteAddr doesn't have port, use it directly
		ip = r.RemoteAddr
	}

	if net.ParseIP(ip) == nil {
		return "", fmt.Errorf("invalid IP address: %s", ip)
	}

	return ip, nil
}

// GetFieldFromForm extracts a form field for rate limiting purposes
func GetFieldFromForm(field string) func(r *http.Request) (string, error) {
	return func(r *http.Request) (string, error) {
		if err := r.ParseForm(); err != nil {
			return "", errors.New("failed to parse form")
		}

		value := r.FormValue(field)
		if value == "" {
			return "", fmt.Errorf("%s field is required", field)
		}

		return value, nil
	}
}
