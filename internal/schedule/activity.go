package schedule

import (
	"fmt"
	"strings"
	"time"
)

// Activity statuses as stored by the letter service.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusCancelled = "cancelled"
)

// activityTimeLayouts are tried in order when decoding timestamps; the letter
// service mixes full RFC 3339, zone-less and date-only values.
var activityTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// LocalTime decodes the timestamp variants the letter service emits.
type LocalTime struct {
	time.Time
}

func (t *LocalTime) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	if raw == "" || raw == "null" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range activityTimeLayouts {
		parsed, err := time.ParseInLocation(layout, raw, time.Local)
		if err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("format waktu tidak dikenali: %q", raw)
}

func (t LocalTime) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(`"` + t.Format("2006-01-02T15:04:05") + `"`), nil
}

// Activity is one scheduled event, with the NIPs of its participants.
type Activity struct {
	ID            string    `json:"id"`
	Judul         string    `json:"judul"`
	Deskripsi     string    `json:"deskripsi"`
	TanggalMulai  LocalTime `json:"tanggal_mulai"`
	TanggalAkhir  LocalTime `json:"tanggal_selesai"`
	Lokasi        string    `json:"lokasi"`
	Penyelenggara string    `json:"penyelenggara"`
	Status        string    `json:"status"`
	Peserta       []string  `json:"peserta"`
	CreatedAt     LocalTime `json:"created_at"`
}

// HasParticipant reports whether the given NIP is on the participant list.
func (a Activity) HasParticipant(nip string) bool {
	for _, p := range a.Peserta {
		if p == nip {
			return true
		}
	}
	return false
}

// StatusLabel is the Indonesian display name for the activity status.
func (a Activity) StatusLabel() string {
	switch a.Status {
	case StatusPublished:
		return "Dipublikasi"
	case StatusDraft:
		return "Draft"
	default:
		return "Dibatalkan"
	}
}

var indonesianMonths = [...]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// FormatDateTime renders a timestamp the way schedule views show it,
// e.g. "15 Juni 2025 08:00".
func FormatDateTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return fmt.Sprintf("%02d %s %d %02d:%02d",
		t.Day(), indonesianMonths[t.Month()-1], t.Year(), t.Hour(), t.Minute())
}

// FormatDate renders just the date portion, e.g. "15 Juni 2025".
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return fmt.Sprintf("%02d %s %d", t.Day(), indonesianMonths[t.Month()-1], t.Year())
}
