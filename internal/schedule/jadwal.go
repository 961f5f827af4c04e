package schedule

import (
	"sort"
	"strings"

	"github.com/bbpmp-jabar/nyurat-keun/internal/directory"
)

// Entry is one row of the schedule monitor: an employee together with the
// activities they participate in and a conflict count.
type Entry struct {
	Pegawai       directory.Person `json:"pegawai"`
	Kegiatan      []Activity       `json:"kegiatan"`
	TotalKegiatan int              `json:"totalKegiatan"`
	KonflikJadwal int              `json:"konflikJadwal"`
}

// Build assigns every activity to the employees on its participant list and
// counts scheduling conflicts per employee.
func Build(people []directory.Person, activities []Activity) []Entry {
	entries := make([]Entry, 0, len(people))
	for _, p := range people {
		var mine []Activity
		for _, a := range activities {
			if a.HasParticipant(p.NIP) {
				mine = append(mine, a)
			}
		}
		entries = append(entries, Entry{
			Pegawai:       p,
			Kegiatan:      mine,
			TotalKegiatan: len(mine),
			KonflikJadwal: ConflictsFor(mine),
		})
	}
	return entries
}

// ConflictsFor counts overlaps between consecutive activities once they are
// ordered by start time: a pair conflicts when the earlier one is still
// running as the next begins. Only neighbouring pairs are compared, so an
// activity spanning several later ones counts once.
func ConflictsFor(activities []Activity) int {
	if len(activities) < 2 {
		return 0
	}
	sorted := make([]Activity, len(activities))
	copy(sorted, activities)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].TanggalMulai.Before(sorted[j].TanggalMulai.Time)
	})

	conflicts := 0
	for i := 0; i < len(sorted)-1; i++ {
		if sorted[i].TanggalAkhir.After(sorted[i+1].TanggalMulai.Time) {
			conflicts++
		}
	}
	return conflicts
}

// FilterOptions narrow the schedule monitor rows.
type FilterOptions struct {
	Query    string // matches name, NIP or position
	Golongan string // grade prefix, e.g. "I", "IV"
	Date     string // "2006-01-02"; keeps rows with an activity starting that day
}

// Filter applies the monitor filters in sequence.
func Filter(entries []Entry, opts FilterOptions) []Entry {
	filtered := entries

	if q := strings.TrimSpace(opts.Query); q != "" {
		lower := strings.ToLower(q)
		var next []Entry
		for _, e := range filtered {
			if strings.Contains(strings.ToLower(e.Pegawai.Nama), lower) ||
				strings.Contains(e.Pegawai.NIP, q) ||
				strings.Contains(strings.ToLower(e.Pegawai.Jabatan), lower) {
				next = append(next, e)
			}
		}
		filtered = next
	}

	if opts.Golongan != "" {
		var next []Entry
		for _, e := range filtered {
			if strings.HasPrefix(e.Pegawai.Golongan, opts.Golongan) {
				next = append(next, e)
			}
		}
		filtered = next
	}

	if opts.Date != "" {
		var next []Entry
		for _, e := range filtered {
			for _, a := range e.Kegiatan {
				if a.TanggalMulai.Format("2006-01-02") == opts.Date {
					next = append(next, e)
					break
				}
			}
		}
		filtered = next
	}

	return filtered
}

// GolonganOptions lists the distinct grade group prefixes (the roman-numeral
// first character) present in the roster, sorted.
func GolonganOptions(people []directory.Person) []string {
	seen := make(map[string]struct{})
	for _, p := range people {
		if p.Golongan == "" {
			continue
		}
		seen[p.Golongan[:1]] = struct{}{}
	}
	opts := make([]string, 0, len(seen))
	for g := range seen {
		opts = append(opts, g)
	}
	sort.Strings(opts)
	return opts
}

// Stats are the summary cards above the schedule table.
type Stats struct {
	TotalPegawai  int
	TotalKegiatan int
	RataRata      float64 // activities per employee
	TotalKonflik  int
}

// Summarize computes the monitor statistics over the unfiltered data.
func Summarize(people []directory.Person, activities []Activity, entries []Entry) Stats {
	s := Stats{
		TotalPegawai:  len(people),
		TotalKegiatan: len(activities),
	}
	if len(people) > 0 {
		s.RataRata = float64(len(activities)) / float64(len(people))
	}
	for _, e := range entries {
		s.TotalKonflik += e.KonflikJadwal
	}
	return s
}
