package directory

import "strings"

// Sentinel values substituted for missing fields so templates never render
// an empty cell.
const (
	MissingNIP    = "000000000000000000"
	MissingName   = "Tidak Diketahui"
	MissingField  = "-"
	DefaultStatus = "aktif"
)

// Person is one personnel record as served by GET /api/pegawai, after
// normalization.
type Person struct {
	NIP       string `json:"nip"`
	Nama      string `json:"nama"`
	Jabatan   string `json:"jabatan"`
	Golongan  string `json:"golongan"`
	Pangkat   string `json:"pangkat,omitempty"`
	UnitKerja string `json:"unit_kerja,omitempty"`
	Status    string `json:"status,omitempty"`
}

// DisplayNIP strips non-digits and hides the missing-NIP sentinel.
func (p Person) DisplayNIP() string {
	if p.NIP == "" || p.NIP == MissingNIP {
		return "-"
	}
	var b strings.Builder
	for _, r := range p.NIP {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// GolonganClass buckets the grade code by its roman-numeral prefix, used for
// badge styling.
func (p Person) GolonganClass() string {
	switch {
	case p.Golongan == "":
		return "none"
	case strings.HasPrefix(p.Golongan, "IV"):
		return "iv"
	case strings.HasPrefix(p.Golongan, "III"):
		return "iii"
	case strings.HasPrefix(p.Golongan, "II"):
		return "ii"
	case p.Golongan == "V":
		return "v"
	case strings.HasPrefix(p.Golongan, "I"):
		return "i"
	}
	return "none"
}

// Deduplicate keeps the first record seen per NIP, preserving order.
func Deduplicate(people []Person) []Person {
	seen := make(map[string]struct{}, len(people))
	out := make([]Person, 0, len(people))
	for _, p := range people {
		if _, ok := seen[p.NIP]; ok {
			continue
		}
		seen[p.NIP] = struct{}{}
		out = append(out, p)
	}
	return out
}
