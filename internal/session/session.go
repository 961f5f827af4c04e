// Package session abstracts the browser-side token storage behind a small
// Store capability so the auth gate can be exercised against an in-memory
// store in tests.
package session

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenKey is the storage key the bearer token is persisted under.
const TokenKey = "token"

// UserKey holds the cached user-profile blob, if the API returned one.
const UserKey = "user"

type Store interface {
	Get(key string) (string, bool)
	Set(key, value string)
	Clear(key string)
}

// CookieStore maps Store onto the request/response cookie pair, the
// server-rendered equivalent of localStorage.
type CookieStore struct {
	Request *http.Request
	Writer  http.ResponseWriter
	Secure  bool

	// overrides lets Set/Clear be observed by Get within one request.
	overrides map[string]*string
}

func NewCookieStore(w http.ResponseWriter, r *http.Request, secure bool) *CookieStore {
	return &CookieStore{Request: r, Writer: w, Secure: secure, overrides: map[string]*string{}}
}

func (s *CookieStore) Get(key string) (string, bool) {
	if v, ok := s.overrides[key]; ok {
		if v == nil {
			return "", false
		}
		return *v, true
	}
	c, err := s.Request.Cookie(key)
	if err != nil || c.Value == "" {
		return "", false
	}
	return c.Value, true
}

func (s *CookieStore) Set(key, value string) {
	s.overrides[key] = &value
	http.SetCookie(s.Writer, &http.Cookie{
		Name:     key,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *CookieStore) Clear(key string) {
	s.overrides[key] = nil
	http.SetCookie(s.Writer, &http.Cookie{
		Name:     key,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// MemoryStore is the test substitute for CookieStore.
type MemoryStore struct {
	values map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: map[string]string{}}
}

func (s *MemoryStore) Get(key string) (string, bool) {
	v, ok := s.values[key]
	return v, ok
}

func (s *MemoryStore) Set(key, value string) { s.values[key] = value }

func (s *MemoryStore) Clear(key string) { delete(s.values, key) }

// Reader reports the authenticated state derived from the stored token.
type Reader struct {
	// Now is overridable for expiry tests; defaults to time.Now.
	Now func() time.Time
}

func NewReader() *Reader {
	return &Reader{Now: time.Now}
}

// IsAuthenticated reads the stored token and reports whether it still grants
// access. Tokens with the three-part structure of a signed JWT get their
// payload decoded and are rejected once expired; any decode failure clears
// the stored token. Opaque tokens without that structure are accepted as-is.
func (rd *Reader) IsAuthenticated(store Store) bool {
	raw, ok := store.Get(TokenKey)
	if !ok || raw == "" {
		return false
	}

	if strings.Count(raw, ".") != 2 {
		// Not a decodable token; presence alone counts.
		return true
	}

	claims, err := rd.decode(raw)
	if err != nil {
		store.Clear(TokenKey)
		store.Clear(UserKey)
		return false
	}

	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil && exp.Before(rd.Now()) {
		store.Clear(TokenKey)
		store.Clear(UserKey)
		return false
	}
	return true
}

// Claims returns the decoded token payload for display purposes (dashboard
// greeting). Returns nil for opaque or undecodable tokens.
func (rd *Reader) Claims(store Store) jwt.MapClaims {
	raw, ok := store.Get(TokenKey)
	if !ok || strings.Count(raw, ".") != 2 {
		return nil
	}
	claims, err := rd.decode(raw)
	if err != nil {
		return nil
	}
	return claims
}

func (rd *Reader) decode(raw string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	// Signature verification stays with the API; this layer only inspects
	// the payload.
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return nil, err
	}
	return claims, nil
}
