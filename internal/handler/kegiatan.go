package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/bbpmp-jabar/nyurat-keun/internal/directory"
	"github.com/bbpmp-jabar/nyurat-keun/internal/logger"
	"github.com/bbpmp-jabar/nyurat-keun/internal/roster"
	"github.com/bbpmp-jabar/nyurat-keun/internal/schedule"
)

type kegiatanPageData struct {
	Entries         []schedule.Entry
	Stats           schedule.Stats
	Filters         schedule.FilterOptions
	GolonganOptions []string
	TotalEntries    int
	Detail          *schedule.Entry
}

// loadSchedule joins the cached roster with the activity list.
func (h *Handler) loadSchedule(r *http.Request) ([]directory.Person, []schedule.Activity, []schedule.Entry, error) {
	people := h.Roster.People()
	if len(people) == 0 {
		h.Roster.Nudge()
	}

	activities, err := h.API.FetchSurat(r.Context())
	if err != nil {
		return nil, nil, nil, err
	}
	return people, activities, schedule.Build(people, activities), nil
}

func scheduleFilters(r *http.Request) schedule.FilterOptions {
	q := r.URL.Query()
	return schedule.FilterOptions{
		Query:    q.Get("q"),
		Golongan: q.Get("golongan"),
		Date:     q.Get("tanggal"),
	}
}

func (h *Handler) KegiatanGetHandler(w http.ResponseWriter, r *http.Request) {
	people, activities, entries, err := h.loadSchedule(r)
	if err != nil {
		logger.Log.Error("loading schedule data", "error", err)
		h.renderTemplateWithError(w, r, "kegiatan_pegawai.html", kegiatanPageData{}, "Gagal memuat data jadwal")
		return
	}

	filters := scheduleFilters(r)
	filtered := schedule.Filter(entries, filters)

	data := kegiatanPageData{
		Entries:         filtered,
		Stats:           schedule.Summarize(people, activities, entries),
		Filters:         filters,
		GolonganOptions: schedule.GolonganOptions(people),
		TotalEntries:    len(entries),
	}

	// Detail view for one employee, selected by NIP.
	if nip := r.URL.Query().Get("detail"); nip != "" {
		for i := range entries {
			if entries[i].Pegawai.NIP == nip {
				data.Detail = &entries[i]
				break
			}
		}
	}

	h.renderTemplate(w, r, "kegiatan_pegawai.html", data)
}

func (h *Handler) KegiatanExportHandler(w http.ResponseWriter, r *http.Request) {
	_, _, entries, err := h.loadSchedule(r)
	if err != nil {
		logger.Log.Error("loading schedule data for export", "error", err)
		h.redirectWithFlash(w, r, "/dashboard/kegiatan-pegawai", flashCookieError, "Gagal mengekspor jadwal")
		return
	}

	filtered := schedule.Filter(entries, scheduleFilters(r))

	payload, err := json.MarshalIndent(filtered, "", "  ")
	if err != nil {
		logger.Log.Error("encoding schedule export", "error", err)
		h.redirectWithFlash(w, r, "/dashboard/kegiatan-pegawai", flashCookieError, "Gagal mengekspor jadwal")
		return
	}

	filename := roster.JSONFilename(h.Now())
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	_, _ = w.Write(payload)
}
