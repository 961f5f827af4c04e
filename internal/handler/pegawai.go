package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/bbpmp-jabar/nyurat-keun/internal/apiclient"
	"github.com/bbpmp-jabar/nyurat-keun/internal/directory"
	"github.com/bbpmp-jabar/nyurat-keun/internal/logger"
	"github.com/bbpmp-jabar/nyurat-keun/internal/roster"
)

// fetchDirectory loads the employee directory with the visitor's token.
// An expired token clears the session; the caller should stop on error.
func (h *Handler) fetchDirectory(w http.ResponseWriter, r *http.Request) ([]directory.Person, error) {
	token, _ := h.sessionToken(w, r)

	people, err := h.API.FetchPegawai(r.Context(), token)
	if err != nil {
		if errors.Is(err, apiclient.ErrUnauthorized) {
			h.clearSession(w, r)
			h.redirectWithFlash(w, r, "/", flashCookieError, "Sesi telah berakhir. Silakan login kembali.")
			return nil, err
		}
		logger.Log.Error("fetching pegawai from API", "error", err)
		return nil, err
	}
	return people, nil
}

type pegawaiPageData struct {
	Query string
	Page  roster.Page
}

func (h *Handler) DataPegawaiGetHandler(w http.ResponseWriter, r *http.Request) {
	people, err := h.fetchDirectory(w, r)
	if err != nil {
		if !errors.Is(err, apiclient.ErrUnauthorized) {
			h.renderTemplateWithError(w, r, "data_pegawai.html", pegawaiPageData{}, "Gagal mengambil data dari server. Pastikan API berjalan.")
		}
		return
	}

	query := r.URL.Query().Get("q")
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}

	filtered := roster.Filter(people, query)
	data := pegawaiPageData{
		Query: query,
		Page:  roster.Paginate(filtered, page, h.Config.ItemsPerPage),
	}

	h.renderTemplate(w, r, "data_pegawai.html", data)
}

func (h *Handler) DataPegawaiExportHandler(w http.ResponseWriter, r *http.Request) {
	people, err := h.fetchDirectory(w, r)
	if err != nil {
		if !errors.Is(err, apiclient.ErrUnauthorized) {
			h.redirectWithFlash(w, r, "/dashboard/data-pegawai", flashCookieError, "Gagal mengekspor data")
		}
		return
	}

	query := r.URL.Query().Get("q")
	filtered := roster.Filter(people, query)

	csv, err := roster.ExportCSV(filtered)
	if err != nil {
		logger.Log.Error("building csv export", "error", err)
		h.redirectWithFlash(w, r, "/dashboard/data-pegawai", flashCookieError, "Gagal mengekspor data")
		return
	}

	filename := roster.CSVFilename(h.Now(), query)
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	_, _ = w.Write(csv)
}
