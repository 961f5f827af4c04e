package roster

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/bbpmp-jabar/nyurat-keun/internal/directory"
)

var csvHeader = []string{"No", "Nama", "NIP", "Golongan", "Jabatan", "Unit Kerja", "Pangkat", "Status"}

// ExportCSV renders the filtered record set as the download the directory
// page offers: a header row plus one row per record, numbered from 1.
func ExportCSV(people []directory.Person) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("writing csv header: %w", err)
	}
	for i, p := range people {
		row := []string{
			strconv.Itoa(i + 1),
			p.Nama,
			p.NIP,
			p.Golongan,
			p.Jabatan,
			p.UnitKerja,
			p.Pangkat,
			p.Status,
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("writing csv row: %w", err)
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// CSVFilename embeds the export date and, when a search is active, the query.
func CSVFilename(now time.Time, query string) string {
	date := now.Format("2006-01-02")
	if query != "" {
		return fmt.Sprintf("data-pegawai-pencarian-%s-%s.csv", query, date)
	}
	return fmt.Sprintf("data-pegawai-bbpmp-%s.csv", date)
}

// JSONFilename names the schedule-monitor export.
func JSONFilename(now time.Time) string {
	return fmt.Sprintf("jadwal-pegawai-%s.json", now.Format("2006-01-02"))
}
