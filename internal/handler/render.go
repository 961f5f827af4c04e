package handler

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/bbpmp-jabar/nyurat-keun/internal/logger"
	"github.com/bbpmp-jabar/nyurat-keun/internal/session"
)

const (
	flashCookieError   = "flash_error"
	flashCookieSuccess = "flash_success"
	emailPrefillCookie = "email_prefill"
	phonePrefillCookie = "phone_prefill"
)

// CommonTemplateData holds fields that are common to all page templates.
// Available in templates as .Common via the TemplateData wrapper.
type CommonTemplateData struct {
	Error            string
	Success          string
	Authenticated    bool
	UserName         string
	EmailPlaceholder string // Pre-filled email for auth forms (from cookie, not URL)
	PhonePlaceholder string
	DebounceMs       int64 // search auto-submit delay, read by the page script
}

// TemplateData wraps page-specific data with common template data.
// Templates access page data via .Data and common data via .Common.
type TemplateData struct {
	Data   any
	Common CommonTemplateData
}

func (h *Handler) renderTemplate(w http.ResponseWriter, r *http.Request, name string, data any) {
	h.renderTemplateWithError(w, r, name, data, "")
}

func (h *Handler) renderTemplateWithError(w http.ResponseWriter, r *http.Request, name string, data any, errMsg string) {
	tmpl, ok := h.Templates[name]
	if !ok {
		http.Error(w, fmt.Sprintf("Template %s not found", name), http.StatusInternalServerError)
		return
	}

	common := h.InitCommonTemplateData(w, r)
	if errMsg != "" {
		common.Error = errMsg
	}

	wrapped := TemplateData{
		Data:   data,
		Common: common,
	}

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, wrapped); err != nil {
		logger.Log.Error("error executing template", "template", name, "error", err)
		http.Error(w, "Internal Server Error rendering template", http.StatusInternalServerError)
		return
	}

	_, _ = buf.WriteTo(w)
}

// InitCommonTemplateData consumes flash cookies and resolves the session
// state for the shared template chrome.
func (h *Handler) InitCommonTemplateData(w http.ResponseWriter, r *http.Request) CommonTemplateData {
	common := CommonTemplateData{
		Error:            h.readFlash(w, r, flashCookieError),
		Success:          h.readFlash(w, r, flashCookieSuccess),
		EmailPlaceholder: h.readFlash(w, r, emailPrefillCookie),
		PhonePlaceholder: h.readFlash(w, r, phonePrefillCookie),
		DebounceMs:       h.Config.SearchDebounce.Std().Milliseconds(),
	}

	store := session.NewCookieStore(w, r, h.Config.SecureCookies)
	if h.Session.IsAuthenticated(store) {
		common.Authenticated = true
		common.UserName = h.userName(store)
	}
	return common
}

// userName resolves a display name from the cached user blob, falling back to
// the token claims.
func (h *Handler) userName(store session.Store) string {
	if raw, ok := store.Get(session.UserKey); ok {
		if decoded, err := base64.StdEncoding.DecodeString(raw); err == nil {
			var user map[string]any
			if json.Unmarshal(decoded, &user) == nil {
				for _, key := range []string{"nama_sesuai_ktp", "nama", "name"} {
					if name, ok := user[key].(string); ok && name != "" {
						return name
					}
				}
			}
		}
	}

	if claims := h.Session.Claims(store); claims != nil {
		for _, key := range []string{"nama", "name", "email"} {
			if name, ok := claims[key].(string); ok && name != "" {
				return name
			}
		}
	}
	return ""
}

// setFlash stores a short-lived message cookie (base64 encoded for safe
// storage of special characters).
func (h *Handler) setFlash(w http.ResponseWriter, name, value string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    base64.StdEncoding.EncodeToString([]byte(value)),
		Path:     "/",
		MaxAge:   300, // 5 minutes (enough time for redirect)
		HttpOnly: true,
		Secure:   h.Config.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

// readFlash reads and clears a flash cookie.
func (h *Handler) readFlash(w http.ResponseWriter, r *http.Request, name string) string {
	c, err := r.Cookie(name)
	if err != nil || c.Value == "" {
		return ""
	}

	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.Config.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	decoded, err := base64.StdEncoding.DecodeString(c.Value)
	if err != nil {
		return ""
	}
	return string(decoded)
}

func (h *Handler) redirectWithFlash(w http.ResponseWriter, r *http.Request, target, cookieName, message string) {
	h.setFlash(w, cookieName, message)
	http.Redirect(w, r, target, http.StatusSeeOther)
}
