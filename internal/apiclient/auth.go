package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	internal_errors "github.com/bbpmp-jabar/nyurat-keun/internal/errors"
)

var validate = validator.New()

// LoginRequest carries either an email or a WhatsApp number plus the
// password. Exactly one identity field should be set.
type LoginRequest struct {
	AlamatEmail string `json:"alamat_email,omitempty"`
	NomorHP     string `json:"nomor_hp,omitempty"`
	Password    string `json:"password"`
}

// LoginResult is the successful auth payload: the bearer token plus the raw
// user object for the session cookie.
type LoginResult struct {
	Token   string          `json:"token"`
	User    json.RawMessage `json:"user"`
	Message string          `json:"message"`
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, req LoginRequest) (LoginResult, error) {
	jsonBody, err := json.Marshal(req)
	if err != nil {
		return LoginResult{}, fmt.Errorf("failed to marshal login data: %w", err)
	}

	resp, err := c.do(ctx, http.MethodPost, "/api/auth/login", bytes.NewBuffer(jsonBody), "")
	if err != nil {
		return LoginResult{}, err
	}

	if resp.StatusCode != http.StatusOK {
		msg := apiMessage(resp, "Login gagal")
		return LoginResult{}, &internal_errors.ErrorWithStatusCode{Message: msg, StatusCode: resp.StatusCode}
	}

	defer resp.Body.Close()
	var result LoginResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return LoginResult{}, fmt.Errorf("failed to decode login response: %w", err)
	}
	return result, nil
}

// RegisterRequest is the account signup payload.
type RegisterRequest struct {
	NamaSesuaiKTP      string `json:"nama_sesuai_ktp" validate:"required"`
	NIP                string `json:"nip" validate:"omitempty,numeric,len=18"`
	Golongan           string `json:"golongan"`
	Jabatan            string `json:"jabatan"`
	UnitKerja          string `json:"unit_kerja"`
	NomorHP            string `json:"nomor_hp" validate:"required,numeric,min=10,max=13"`
	AlamatEmail        string `json:"alamat_email" validate:"required,email"`
	Password           string `json:"password" validate:"required,min=8"`
	KonfirmasiPassword string `json:"konfirmasi_password" validate:"required,eqfield=Password"`
}

// registerFieldMessages translate failed validation rules per field.
var registerFieldMessages = map[string]string{
	"NamaSesuaiKTP":      "Nama sesuai KTP wajib diisi",
	"NIP":                "NIP harus 18 digit angka",
	"NomorHP":            "Nomor HP harus 10-13 digit angka",
	"AlamatEmail":        "Alamat email tidak valid",
	"Password":           "Password minimal 8 karakter",
	"KonfirmasiPassword": "Konfirmasi password tidak sesuai",
}

// Validate checks the form rules and returns the first violation as an
// Indonesian message.
func (r RegisterRequest) Validate() error {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}
	if fieldErrs, ok := err.(validator.ValidationErrors); ok && len(fieldErrs) > 0 {
		if msg, ok := registerFieldMessages[fieldErrs[0].Field()]; ok {
			return fmt.Errorf("%s", msg)
		}
	}
	return fmt.Errorf("data registrasi tidak valid")
}

// Register creates a new account. The caller is expected to have validated
// the request already; the backend message is surfaced on failure.
func (c *Client) Register(ctx context.Context, req RegisterRequest) error {
	jsonBody, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to marshal register data: %w", err)
	}

	resp, err := c.do(ctx, http.MethodPost, "/api/auth/register", bytes.NewBuffer(jsonBody), "")
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		msg := apiMessage(resp, "Gagal melakukan registrasi")
		return &internal_errors.ErrorWithStatusCode{Message: msg, StatusCode: resp.StatusCode}
	}
	resp.Body.Close()
	return nil
}

// Verify confirms a registration with the 6-digit code sent to the user.
// On success the API may already return a token.
func (c *Client) Verify(ctx context.Context, email, code string) (LoginResult, error) {
	payload := map[string]string{"alamat_email": email, "verification_code": code}
	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return LoginResult{}, fmt.Errorf("failed to marshal verification data: %w", err)
	}

	resp, err := c.do(ctx, http.MethodPost, "/api/auth/verify", bytes.NewBuffer(jsonBody), "")
	if err != nil {
		return LoginResult{}, err
	}

	if resp.StatusCode != http.StatusOK {
		msg := apiMessage(resp, "Kode verifikasi tidak valid")
		return LoginResult{}, &internal_errors.ErrorWithStatusCode{Message: msg, StatusCode: resp.StatusCode}
	}

	defer resp.Body.Close()
	var result LoginResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return LoginResult{}, fmt.Errorf("failed to decode verification response: %w", err)
	}
	return result, nil
}

// ResendVerification asks the API to send a fresh verification code.
func (c *Client) ResendVerification(ctx context.Context, email string) error {
	payload := map[string]string{"alamat_email": email}
	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal resend data: %w", err)
	}

	resp, err := c.do(ctx, http.MethodPost, "/api/auth/resend-verification", bytes.NewBuffer(jsonBody), "")
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		msg := apiMessage(resp, "Gagal mengirim ulang kode verifikasi")
		return &internal_errors.ErrorWithStatusCode{Message: msg, StatusCode: resp.StatusCode}
	}
	resp.Body.Close()
	return nil
}

// ForgotPassword starts a password reset; the code goes out via WhatsApp.
func (c *Client) ForgotPassword(ctx context.Context, nomorHP string) error {
	payload := map[string]string{"nomor_hp": nomorHP}
	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal forgot-password data: %w", err)
	}

	resp, err := c.do(ctx, http.MethodPost, "/api/auth/forgot-password", bytes.NewBuffer(jsonBody), "")
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		msg := apiMessage(resp, "Gagal mengirim kode verifikasi")
		return &internal_errors.ErrorWithStatusCode{Message: msg, StatusCode: resp.StatusCode}
	}
	resp.Body.Close()
	return nil
}

// ResetPassword completes a password reset with the verification code.
func (c *Client) ResetPassword(ctx context.Context, code, newPassword, konfirmasi string) error {
	payload := map[string]string{
		"verification_code":   code,
		"new_password":        newPassword,
		"konfirmasi_password": konfirmasi,
	}
	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal reset-password data: %w", err)
	}

	resp, err := c.do(ctx, http.MethodPost, "/api/auth/reset-password", bytes.NewBuffer(jsonBody), "")
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		msg := apiMessage(resp, "Gagal reset password")
		return &internal_errors.ErrorWithStatusCode{Message: msg, StatusCode: resp.StatusCode}
	}
	resp.Body.Close()
	return nil
}
