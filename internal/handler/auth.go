package handler

import (
	"html/template"
	"net/http"

	"github.com/bbpmp-jabar/nyurat-keun/internal/apiclient"
	"github.com/bbpmp-jabar/nyurat-keun/internal/logger"
)

func (h *Handler) LoginGetHandler(w http.ResponseWriter, r *http.Request) {
	h.renderTemplate(w, r, "login.html", nil)
}

func (h *Handler) LoginPostHandler(w http.ResponseWriter, r *http.Request) {
	loginType := r.FormValue("login_type")
	email := r.FormValue("alamat_email")
	phone := normalizePhone(r.FormValue("nomor_hp"))
	password := r.FormValue("password")

	req := apiclient.LoginRequest{Password: password}
	if loginType == "whatsapp" {
		if phone == "" {
			h.redirectWithFlash(w, r, "/", flashCookieError, "Harap masukkan nomor WhatsApp")
			return
		}
		req.NomorHP = phone
	} else {
		if email == "" {
			h.redirectWithFlash(w, r, "/", flashCookieError, "Harap masukkan email")
			return
		}
		req.AlamatEmail = email
	}
	if password == "" {
		h.redirectWithFlash(w, r, "/", flashCookieError, "Harap masukkan password")
		return
	}

	result, err := h.API.Login(r.Context(), req)
	if err != nil {
		logger.Log.Error("during login API call", "error", err)
		h.setFlash(w, flashCookieError, template.HTMLEscapeString(err.Error()))
		h.setFlash(w, emailPrefillCookie, email)
		h.setFlash(w, phonePrefillCookie, phone)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	h.storeSession(w, r, result.Token, result.User)
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (h *Handler) RegisterGetHandler(w http.ResponseWriter, r *http.Request) {
	h.renderTemplate(w, r, "register.html", nil)
}

func (h *Handler) RegisterPostHandler(w http.ResponseWriter, r *http.Request) {
	req := apiclient.RegisterRequest{
		NamaSesuaiKTP:      r.FormValue("nama_sesuai_ktp"),
		NIP:                r.FormValue("nip"),
		Golongan:           r.FormValue("golongan"),
		Jabatan:            r.FormValue("jabatan"),
		UnitKerja:          r.FormValue("unit_kerja"),
		NomorHP:            normalizePhone(r.FormValue("nomor_hp")),
		AlamatEmail:        r.FormValue("alamat_email"),
		Password:           r.FormValue("password"),
		KonfirmasiPassword: r.FormValue("konfirmasi_password"),
	}

	if err := req.Validate(); err != nil {
		h.redirectWithFlash(w, r, "/register", flashCookieError, err.Error())
		return
	}

	if err := h.API.Register(r.Context(), req); err != nil {
		logger.Log.Error("during registration API call", "error", err)
		h.redirectWithFlash(w, r, "/register", flashCookieError, template.HTMLEscapeString(err.Error()))
		return
	}

	h.setFlash(w, flashCookieSuccess, "Registrasi berhasil! Masukkan kode verifikasi yang dikirim ke email Anda.")
	h.setFlash(w, emailPrefillCookie, req.AlamatEmail)
	http.Redirect(w, r, "/register/verifikasi", http.StatusSeeOther)
}

func (h *Handler) VerifyGetHandler(w http.ResponseWriter, r *http.Request) {
	h.renderTemplate(w, r, "verifikasi.html", nil)
}

func (h *Handler) VerifyPostHandler(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("alamat_email")
	code := r.FormValue("verification_code")

	if len(code) != 6 {
		h.setFlash(w, flashCookieError, "Masukkan 6 digit kode verifikasi")
		h.setFlash(w, emailPrefillCookie, email)
		http.Redirect(w, r, "/register/verifikasi", http.StatusSeeOther)
		return
	}

	result, err := h.API.Verify(r.Context(), email, code)
	if err != nil {
		logger.Log.Error("confirming registration via API", "error", err)
		h.setFlash(w, flashCookieError, template.HTMLEscapeString(err.Error()))
		h.setFlash(w, emailPrefillCookie, email)
		http.Redirect(w, r, "/register/verifikasi", http.StatusSeeOther)
		return
	}

	if result.Token != "" {
		h.storeSession(w, r, result.Token, result.User)
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	h.redirectWithFlash(w, r, "/", flashCookieSuccess, "Verifikasi berhasil! Silakan login.")
}

func (h *Handler) ResendVerificationPostHandler(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("alamat_email")
	if email == "" {
		h.redirectWithFlash(w, r, "/register/verifikasi", flashCookieError, "Masukkan email terlebih dahulu")
		return
	}

	if err := h.API.ResendVerification(r.Context(), email); err != nil {
		logger.Log.Error("resending verification via API", "error", err)
		h.setFlash(w, flashCookieError, template.HTMLEscapeString(err.Error()))
	} else {
		h.setFlash(w, flashCookieSuccess, "Kode verifikasi baru telah dikirim ke email Anda")
	}
	h.setFlash(w, emailPrefillCookie, email)
	http.Redirect(w, r, "/register/verifikasi", http.StatusSeeOther)
}

func (h *Handler) ForgotPasswordGetHandler(w http.ResponseWriter, r *http.Request) {
	data := struct {
		Step string
	}{Step: r.URL.Query().Get("step")}

	h.renderTemplate(w, r, "lupapassword.html", data)
}

func (h *Handler) ForgotPasswordPostHandler(w http.ResponseWriter, r *http.Request) {
	phone := normalizePhone(r.FormValue("nomor_hp"))
	if len(phone) < 10 {
		h.redirectWithFlash(w, r, "/lupapassword", flashCookieError, "Nomor HP minimal 10 digit")
		return
	}

	if err := h.API.ForgotPassword(r.Context(), phone); err != nil {
		logger.Log.Error("requesting password reset via API", "error", err)
		h.setFlash(w, flashCookieError, template.HTMLEscapeString(err.Error()))
		h.setFlash(w, phonePrefillCookie, phone)
		http.Redirect(w, r, "/lupapassword", http.StatusSeeOther)
		return
	}

	h.setFlash(w, flashCookieSuccess, "Kode verifikasi telah dikirim ke WhatsApp Anda")
	http.Redirect(w, r, "/lupapassword?step=reset", http.StatusSeeOther)
}

func (h *Handler) ResetPasswordPostHandler(w http.ResponseWriter, r *http.Request) {
	code := r.FormValue("verification_code")
	newPassword := r.FormValue("new_password")
	konfirmasi := r.FormValue("konfirmasi_password")

	target := "/lupapassword?step=reset"
	switch {
	case len(code) != 6:
		h.redirectWithFlash(w, r, target, flashCookieError, "Kode verifikasi harus 6 digit")
		return
	case len(newPassword) < 6:
		h.redirectWithFlash(w, r, target, flashCookieError, "Password minimal 6 karakter")
		return
	case newPassword != konfirmasi:
		h.redirectWithFlash(w, r, target, flashCookieError, "Konfirmasi password tidak sesuai")
		return
	}

	if err := h.API.ResetPassword(r.Context(), code, newPassword, konfirmasi); err != nil {
		logger.Log.Error("resetting password via API", "error", err)
		h.redirectWithFlash(w, r, target, flashCookieError, template.HTMLEscapeString(err.Error()))
		return
	}

	h.redirectWithFlash(w, r, "/", flashCookieSuccess, "Password berhasil direset! Silakan login.")
}

func (h *Handler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	h.clearSession(w, r)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
