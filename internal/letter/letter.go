package letter

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/bbpmp-jabar/nyurat-keun/internal/directory"
	"github.com/bbpmp-jabar/nyurat-keun/internal/schedule"
)

// Draft holds everything the assignment-letter form collects before
// submission.
type Draft struct {
	Judul          string `json:"judul"`
	Deskripsi      string `json:"deskripsi"`
	TanggalMulai   string `json:"tanggal_mulai"`   // "2006-01-02"
	TanggalSelesai string `json:"tanggal_selesai"` // "2006-01-02"
	Lokasi         string `json:"lokasi"`
	Penyelenggara  string `json:"penyelenggara"`

	NomorSurat            string `json:"nomor_surat,omitempty"`
	NomorSuratPendukung   string `json:"nomor_surat_pendukung,omitempty"`
	TanggalSuratPendukung string `json:"tanggal_surat_pendukung,omitempty"`
	Angkatan              string `json:"angkatan,omitempty"`
	Keterangan            string `json:"keterangan,omitempty"`
	TanggalPelaporan      string `json:"tanggal_pelaporan,omitempty"`
	LinkPelaporan         string `json:"link_pelaporan,omitempty"`
}

// Submission is the payload posted to the letter service.
type Submission struct {
	Draft
	Peserta   []string `json:"peserta"`
	Status    string   `json:"status"`
	CreatedAt string   `json:"created_at"`
}

// NewNumber produces a fresh letter number in the institution's format,
// e.g. "042/BBPMP-JB/06.15/2025". The leading component is random; the
// letter service assigns the official number on approval. The package-level
// generator is safe for concurrent request handlers.
func NewNumber(now time.Time, institutionCode string) string {
	return fmt.Sprintf("%03d/%s/%02d.%02d/%04d",
		rand.Intn(1000), institutionCode, int(now.Month()), now.Day(), now.Year())
}

// BuildSubmission assembles the service payload from the form draft and the
// selected participants. At least one participant is required; form dates are
// stamped with the default start time.
func BuildSubmission(draft Draft, participants []directory.Person, now time.Time) (Submission, error) {
	if len(participants) == 0 {
		return Submission{}, fmt.Errorf("pilih minimal 1 pegawai sebagai peserta")
	}

	stamped := draft
	stamped.TanggalMulai = schedule.StampDate(draft.TanggalMulai)
	stamped.TanggalSelesai = schedule.StampDate(draft.TanggalSelesai)

	nips := make([]string, len(participants))
	for i, p := range participants {
		nips[i] = p.NIP
	}

	return Submission{
		Draft:     stamped,
		Peserta:   nips,
		Status:    schedule.StatusDraft,
		CreatedAt: now.Format(time.RFC3339),
	}, nil
}
