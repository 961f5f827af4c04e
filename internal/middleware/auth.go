package middleware

import (
	"encoding/base64"
	"net/http"

	"github.com/bbpmp-jabar/nyurat-keun/internal/session"
)

const flashCookieError = "flash_error"

// Auth gates dashboard pages behind a valid stored token.
type Auth struct {
	reader        *session.Reader
	secureCookies bool
}

func NewAuth(reader *session.Reader, secureCookies bool) *Auth {
	return &Auth{reader: reader, secureCookies: secureCookies}
}

// NeedAuth redirects unauthenticated requests to the login page. Expired or
// undecodable tokens are cleared on the way out.
func (a *Auth) NeedAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			store := session.NewCookieStore(w, r, a.secureCookies)
			if !a.reader.IsAuthenticated(store) {
				redirectToLogin(w, r, a.secureCookies, "Silakan login terlebih dahulu")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RedirectIfAuthenticated sends logged-in users straight to the dashboard,
// used on the login and register pages.
func (a *Auth) RedirectIfAuthenticated() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			store := session.NewCookieStore(w, r, a.secureCookies)
			if a.reader.IsAuthenticated(store) {
				http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func redirectToLogin(w http.ResponseWriter, r *http.Request, secureCookies bool, errorMsg string) {
	// Flash cookie is base64 encoded for safe storage of special characters
	encodedMessage := base64.StdEncoding.EncodeToString([]byte(errorMsg))
	cookie := &http.Cookie{
		Name:     flashCookieError,
		Value:    encodedMessage,
		Path:     "/",
		MaxAge:   300, // 5 minutes (enough time for redirect)
		HttpOnly: true,
		Secure:   secureCookies,
		SameSite: http.SameSiteLaxMode,
	}
	http.SetCookie(w, cookie)

	http.Redirect(w, r, "/", http.StatusSeeOther)
}
