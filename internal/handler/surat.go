package handler

import (
	"errors"
	"html/template"
	"net/http"

	"github.com/bbpmp-jabar/nyurat-keun/internal/apiclient"
	"github.com/bbpmp-jabar/nyurat-keun/internal/directory"
	"github.com/bbpmp-jabar/nyurat-keun/internal/letter"
	"github.com/bbpmp-jabar/nyurat-keun/internal/logger"
	"github.com/bbpmp-jabar/nyurat-keun/internal/roster"
)

type suratPageData struct {
	Draft        letter.Draft
	Query        string
	Candidates   []directory.Person
	Selected     map[string]bool
	Availability map[string]bool
	Preview      letter.Preview
	TotalPegawai int

	// Lower bounds for the date inputs: activities start today at the
	// earliest, and may not end before they start.
	Today  string
	EndMin string
}

func draftFromForm(r *http.Request) letter.Draft {
	return letter.Draft{
		Judul:                 r.FormValue("judul"),
		Deskripsi:             r.FormValue("deskripsi"),
		TanggalMulai:          r.FormValue("tanggal_mulai"),
		TanggalSelesai:        r.FormValue("tanggal_selesai"),
		Lokasi:                r.FormValue("lokasi"),
		Penyelenggara:         r.FormValue("penyelenggara"),
		NomorSurat:            r.FormValue("nomor_surat"),
		NomorSuratPendukung:   r.FormValue("nomor_surat_pendukung"),
		TanggalSuratPendukung: r.FormValue("tanggal_surat_pendukung"),
		Angkatan:              r.FormValue("angkatan"),
		Keterangan:            r.FormValue("keterangan"),
		TanggalPelaporan:      r.FormValue("tanggal_pelaporan"),
		LinkPelaporan:         r.FormValue("link_pelaporan"),
	}
}

// selectedPeople resolves the checked NIPs against the directory, keeping the
// selection order of the directory itself.
func selectedPeople(people []directory.Person, nips []string) ([]directory.Person, map[string]bool) {
	selected := make(map[string]bool, len(nips))
	for _, nip := range nips {
		selected[nip] = true
	}

	var chosen []directory.Person
	for _, p := range people {
		if selected[p.NIP] {
			chosen = append(chosen, p)
		}
	}
	return chosen, selected
}

// suratDirectory loads and deduplicates the participant candidates.
func (h *Handler) suratDirectory(w http.ResponseWriter, r *http.Request) ([]directory.Person, error) {
	people, err := h.fetchDirectory(w, r)
	if err != nil {
		return nil, err
	}
	return directory.Deduplicate(people), nil
}

func (h *Handler) renderSurat(w http.ResponseWriter, r *http.Request, data suratPageData, chosen []directory.Person, errMsg string) {
	data.Today = h.Now().Format("2006-01-02")
	data.EndMin = data.Today
	if data.Draft.TanggalMulai != "" {
		data.EndMin = data.Draft.TanggalMulai
	}
	data.Preview = h.Letters.Render(data.Draft, chosen, h.Now())
	if errMsg != "" {
		h.renderTemplateWithError(w, r, "surat_kegiatan.html", data, errMsg)
		return
	}
	h.renderTemplate(w, r, "surat_kegiatan.html", data)
}

func (h *Handler) SuratGetHandler(w http.ResponseWriter, r *http.Request) {
	people, err := h.suratDirectory(w, r)
	if err != nil {
		if !errors.Is(err, apiclient.ErrUnauthorized) {
			h.renderSurat(w, r, suratPageData{}, nil, "Gagal memuat data pegawai")
		}
		return
	}

	query := r.URL.Query().Get("q")
	draft := letter.Draft{
		NomorSurat: letter.NewNumber(h.Now(), h.Config.InstitutionCode),
	}

	data := suratPageData{
		Draft:        draft,
		Query:        query,
		Candidates:   roster.Filter(people, query),
		Selected:     map[string]bool{},
		TotalPegawai: len(people),
	}
	h.renderSurat(w, r, data, nil, "")
}

// SuratPostHandler serves both form actions: availability checking and the
// final submission, distinguished by the "action" field.
func (h *Handler) SuratPostHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.redirectWithFlash(w, r, "/dashboard/surat-kegiatan", flashCookieError, "Form tidak valid")
		return
	}

	people, err := h.suratDirectory(w, r)
	if err != nil {
		if !errors.Is(err, apiclient.ErrUnauthorized) {
			h.renderSurat(w, r, suratPageData{}, nil, "Gagal memuat data pegawai")
		}
		return
	}

	draft := draftFromForm(r)
	query := r.FormValue("q")
	nips := r.Form["peserta"]
	chosen, selected := selectedPeople(people, nips)

	data := suratPageData{
		Draft:        draft,
		Query:        query,
		Candidates:   roster.Filter(people, query),
		Selected:     selected,
		TotalPegawai: len(people),
	}

	switch r.FormValue("action") {
	case "check":
		status, err := h.Checker.Check(r.Context(), nips, draft.TanggalMulai, draft.TanggalSelesai)
		if err != nil {
			h.renderSurat(w, r, data, chosen, template.HTMLEscapeString(err.Error()))
			return
		}
		data.Availability = status
		h.renderSurat(w, r, data, chosen, "")

	default:
		sub, err := letter.BuildSubmission(draft, chosen, h.Now())
		if err != nil {
			h.renderSurat(w, r, data, chosen, err.Error())
			return
		}

		if err := h.API.CreateSurat(r.Context(), sub); err != nil {
			logger.Log.Error("creating surat via API", "error", err)
			h.renderSurat(w, r, data, chosen, template.HTMLEscapeString("Gagal membuat surat: "+err.Error()))
			return
		}

		h.redirectWithFlash(w, r, "/dashboard", flashCookieSuccess, "Surat kegiatan berhasil dibuat!")
	}
}
