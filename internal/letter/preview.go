package letter

import (
	"fmt"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/bbpmp-jabar/nyurat-keun/internal/directory"
	"github.com/bbpmp-jabar/nyurat-keun/internal/schedule"
)

// Letterhead and signature block of the institution.
const (
	MinistryLine1    = "KEMENTERIAN PENDIDIKAN DASAR DAN"
	MinistryLine2    = "MENENGAH"
	InstitutionLine1 = "BALAI BESAR PENJAMINAN MUTU PENDIDIKAN"
	InstitutionLine2 = "PROVINSI JAWA BARAT"
	AddressLine      = "Jalan Raya Batujajar.Km.2 Nomor 90 Kecamatan Radalarang - Kabupaten Bandung Barat"
	PhoneLine        = "Telepon (022) 6866152"
	WebsiteLine      = "Laman https://www.bbpmpjabar.id"

	LetterTitle       = "SURAT TUGAS"
	NumberPlaceholder = ".../BBPMP-JB/..."

	ReportingLink = "https://s.id/bbpmpjabar_2025"
	ComplaintLink = "https://s.id/dumas_bbpmpjabar"
	SignatureCity = "Bandung"
	SignatureRole = "Kepala,"
	SignatureName = "Komalasari, S.Rd., M.Ed."
	SignatureNIP  = "NIP 197812252002122003"
)

// ParticipantRow is one line of the assignment table.
type ParticipantRow struct {
	No       int
	Identity string // "Nama, NIP, Pangkat Golongan"
	Jabatan  string
	Angkatan string
}

// Preview is the fully resolved view model of the letter, ready for the
// template. Free-text fields are sanitized; empty required fields show
// bracketed placeholders.
type Preview struct {
	Nomor       string
	Judul       string
	Opening     string // follow-up line, present only with a supporting letter
	Rows        []ParticipantRow
	Keterangan  string
	Assignment  string
	AngkatanRow string
	Schedule    string
	Location    string
	Closing     []string
	SignedAt    string // "Bandung, 15 Juni 2025"
}

// Renderer builds letter previews. All user-entered text passes through a
// strict sanitizer before it reaches the template.
type Renderer struct {
	policy *bluemonday.Policy
}

func NewRenderer() *Renderer {
	return &Renderer{policy: bluemonday.StrictPolicy()}
}

func (r *Renderer) clean(s string) string {
	return r.policy.Sanitize(s)
}

func orPlaceholder(s, placeholder string) string {
	if s == "" {
		return placeholder
	}
	return s
}

func formatFormDate(date string) string {
	t, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		return date
	}
	return schedule.FormatDate(t)
}

// Render resolves the draft and selected participants into the preview model.
func (r *Renderer) Render(draft Draft, participants []directory.Person, now time.Time) Preview {
	p := Preview{
		Nomor:      orPlaceholder(r.clean(draft.NomorSurat), NumberPlaceholder),
		Judul:      orPlaceholder(r.clean(draft.Judul), "[Judul Kegiatan]"),
		Keterangan: r.clean(draft.Keterangan),
		SignedAt:   fmt.Sprintf("%s, %s", SignatureCity, schedule.FormatDate(now)),
	}

	penyelenggara := orPlaceholder(r.clean(draft.Penyelenggara), "[Penyelenggara]")
	angkatan := r.clean(draft.Angkatan)

	if nomor := r.clean(draft.NomorSuratPendukung); nomor != "" {
		opening := fmt.Sprintf("Menindaklanjuti surat dari %s Nomor: %s", penyelenggara, nomor)
		if draft.TanggalSuratPendukung != "" {
			opening += fmt.Sprintf(" tanggal %s", formatFormDate(draft.TanggalSuratPendukung))
		}
		opening += ", Kepala Balai Besar Penjaminan Mutu Pendidikan (BBPMP) Provinsi Jawa Barat menugaskan:"
		p.Opening = opening
	}

	if len(participants) == 0 {
		p.Rows = []ParticipantRow{{
			No:       1,
			Identity: "[Nama], [NIP], [Pangkat Golongan]",
			Jabatan:  "[Jabatan]",
			Angkatan: "[Angkatan]",
		}}
	} else {
		for i, person := range participants {
			p.Rows = append(p.Rows, ParticipantRow{
				No:       i + 1,
				Identity: fmt.Sprintf("%s, %s, %s %s", person.Nama, person.NIP, person.Pangkat, person.Golongan),
				Jabatan:  person.Jabatan,
				Angkatan: orPlaceholder(angkatan, "-"),
			})
		}
	}

	p.Assignment = fmt.Sprintf("Untuk menjadi Peserta %s", orPlaceholder(r.clean(draft.Judul), "[Nama Kegiatan]"))
	if angkatan != "" {
		p.AngkatanRow = fmt.Sprintf("Angkatan %s di lingkungan %s", angkatan, penyelenggara)
	}
	if draft.TanggalMulai != "" && draft.TanggalSelesai != "" {
		p.Schedule = fmt.Sprintf("yang dilaksanakan pada tanggal %s s.d. %s, dengan rincian kegiatan sebagai berikut:",
			formatFormDate(draft.TanggalMulai), formatFormDate(draft.TanggalSelesai))
	}
	if lokasi := r.clean(draft.Lokasi); lokasi != "" {
		p.Location = fmt.Sprintf("- Bertempat di: %s", lokasi)
	}

	p.Closing = []string{
		fmt.Sprintf("Surat tugas ini dibuat, untuk dilaksanakan dengan penuh tanggung jawab serta mengumpulkan laporan pada tautan: %s paling lambat 3 hari setelah pelaksanaan tugas.", ReportingLink),
		"Dalam rangka membangun ZI WBBM, pegawai BBPMP Provinsi Jawa Barat tidak menerima gratifikasi dalam bentuk apapun saat melaksanakan tugas.",
		fmt.Sprintf("Jika ada keluhan dan/atau ketidakpuasan terhadap penyalahgunaan wewenang, pelanggaran disiplin dan pelanggaran kedinasan dan kinerja pegawai BBPMP Jawa Barat, dapat dilaporkan melalui tautan : %s", ComplaintLink),
	}

	return p
}
