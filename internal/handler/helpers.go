package handler

import (
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/bbpmp-jabar/nyurat-keun/internal/session"
)

// normalizePhone strips everything but digits and rewrites the country
// prefix, so "62812..." and "0812..." identify the same number.
func normalizePhone(raw string) string {
	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	value := digits.String()
	if strings.HasPrefix(value, "62") {
		value = "0" + value[2:]
	}
	return value
}

// storeSession persists the token and the optional user blob after a
// successful login or verification.
func (h *Handler) storeSession(w http.ResponseWriter, r *http.Request, token string, user []byte) {
	store := session.NewCookieStore(w, r, h.Config.SecureCookies)
	store.Set(session.TokenKey, token)
	if len(user) > 0 {
		store.Set(session.UserKey, base64.StdEncoding.EncodeToString(user))
	}
}

// clearSession drops the stored credentials.
func (h *Handler) clearSession(w http.ResponseWriter, r *http.Request) {
	store := session.NewCookieStore(w, r, h.Config.SecureCookies)
	store.Clear(session.TokenKey)
	store.Clear(session.UserKey)
}

// sessionToken reads the stored bearer token, if any.
func (h *Handler) sessionToken(w http.ResponseWriter, r *http.Request) (string, bool) {
	store := session.NewCookieStore(w, r, h.Config.SecureCookies)
	return store.Get(session.TokenKey)
}
