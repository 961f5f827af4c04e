package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chi_middleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bbpmp-jabar/nyurat-keun/internal/handler"
	"github.com/bbpmp-jabar/nyurat-keun/internal/middleware"
	"github.com/bbpmp-jabar/nyurat-keun/internal/middleware/metrics"
	"github.com/bbpmp-jabar/nyurat-keun/internal/middleware/ratelimiter"
	"github.com/bbpmp-jabar/nyurat-keun/internal/session"
)

// Rate limits for the credential endpoints. Identities are the submitted
// email or phone where available, the client IP otherwise.
var (
	loginLimiter  = ratelimiter.New(1, 5, 10*time.Minute)
	signupLimiter = ratelimiter.New(0.2, 3, 10*time.Minute)
	resetLimiter  = ratelimiter.New(0.2, 3, 10*time.Minute)
)

// Page templates are served from the same origin; inline styles come from the
// shared layout.
const contentSecurityPolicy = "default-src 'self'; img-src 'self' data:; style-src 'self' 'unsafe-inline'"

func New(h *handler.Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(chi_middleware.Recoverer)
	r.Use(middleware.RequestLogger)
	r.Use(metrics.Middleware)
	r.Use(middleware.SecurityHeadersWithCSP(h.Config.SecureCookies, contentSecurityPolicy))

	if len(h.Config.AllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   h.Config.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST"},
			AllowedHeaders:   []string{"Accept", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	auth := middleware.NewAuth(session.NewReader(), h.Config.SecureCookies)

	r.Get("/favicon.ico", handler.FaviconHandler)
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))
	r.Handle("/metrics", promhttp.Handler())

	// Auth pages. Visitors with a live session go straight to the dashboard.
	r.Group(func(r chi.Router) {
		r.Use(auth.RedirectIfAuthenticated())

		r.Get("/", h.LoginGetHandler)
		r.With(middleware.RateLimit(loginLimiter, middleware.GetFieldFromForm("alamat_email"))).
			Post("/", h.LoginPostHandler)

		r.Get("/register", h.RegisterGetHandler)
		r.With(middleware.RateLimit(signupLimiter, middleware.GetFieldFromForm("alamat_email"))).
			Post("/register", h.RegisterPostHandler)

		r.Get("/register/verifikasi", h.VerifyGetHandler)
		r.Post("/register/verifikasi", h.VerifyPostHandler)
		r.With(middleware.RateLimit(signupLimiter, middleware.GetFieldFromForm("alamat_email"))).
			Post("/resend-verification", h.ResendVerificationPostHandler)

		r.Get("/lupapassword", h.ForgotPasswordGetHandler)
		r.With(middleware.RateLimit(resetLimiter, middleware.GetFieldFromForm("nomor_hp"))).
			Post("/lupapassword", h.ForgotPasswordPostHandler)
		r.With(middleware.RateLimit(resetLimiter, middleware.GetIP)).
			Post("/lupapassword/reset", h.ResetPasswordPostHandler)
	})

	// Everything behind the session gate.
	r.Group(func(r chi.Router) {
		r.Use(auth.NeedAuth())

		r.Get("/dashboard", h.DashboardGetHandler)
		r.Get("/dashboard/data-pegawai", h.DataPegawaiGetHandler)
		r.Get("/dashboard/data-pegawai/export", h.DataPegawaiExportHandler)
		r.Get("/dashboard/kegiatan-pegawai", h.KegiatanGetHandler)
		r.Get("/dashboard/kegiatan-pegawai/export", h.KegiatanExportHandler)
		r.Get("/dashboard/surat-kegiatan", h.SuratGetHandler)
		r.Post("/dashboard/surat-kegiatan", h.SuratPostHandler)
		r.Get("/logout", h.LogoutHandler)
	})

	return r
}
