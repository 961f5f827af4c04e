package schedule

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/bbpmp-jabar/nyurat-keun/internal/directory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(hour, min int) LocalTime {
	return LocalTime{time.Date(2025, 6, 15, hour, min, 0, 0, time.Local)}
}

func activity(id string, start, end LocalTime, peserta ...string) Activity {
	return Activity{
		ID:           id,
		Judul:        "Kegiatan " + id,
		TanggalMulai: start,
		TanggalAkhir: end,
		Status:       StatusPublished,
		Peserta:      peserta,
	}
}

func TestConflictsFor(t *testing.T) {
	tests := []struct {
		name       string
		activities []Activity
		want       int
	}{
		{"no activities", nil, 0},
		{"single activity", []Activity{activity("a", at(10, 0), at(12, 0))}, 0},
		{
			"back to back is not a conflict",
			[]Activity{
				activity("a", at(10, 0), at(12, 0)),
				activity("b", at(12, 0), at(14, 0)),
			},
			0,
		},
		{
			"overlapping pair",
			[]Activity{
				activity("a", at(10, 0), at(12, 0)),
				activity("b", at(11, 0), at(13, 0)),
			},
			1,
		},
		{
			"only neighbouring pairs are compared",
			[]Activity{
				activity("a", at(10, 0), at(12, 0)),
				activity("b", at(11, 0), at(13, 0)),
				activity("c", at(13, 30), at(14, 0)),
			},
			1,
		},
		{
			"long activity spanning two later ones counts only its neighbour",
			[]Activity{
				activity("a", at(9, 0), at(17, 0)),
				activity("b", at(10, 0), at(11, 0)),
				activity("c", at(12, 0), at(13, 0)),
			},
			1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ConflictsFor(tt.activities))
		})
	}
}

func TestConflictsForOrderInvariant(t *testing.T) {
	a := activity("a", at(10, 0), at(12, 0))
	b := activity("b", at(11, 0), at(13, 0))
	c := activity("c", at(13, 30), at(14, 0))

	assert.Equal(t, ConflictsFor([]Activity{a, b, c}), ConflictsFor([]Activity{c, a, b}))
	assert.Equal(t, ConflictsFor([]Activity{a, b, c}), ConflictsFor([]Activity{b, c, a}))
}

func TestBuildAssignsActivitiesByParticipant(t *testing.T) {
	people := []directory.Person{
		{NIP: "111", Nama: "Budi"},
		{NIP: "222", Nama: "Siti"},
	}
	activities := []Activity{
		activity("a", at(10, 0), at(12, 0), "111", "222"),
		activity("b", at(11, 0), at(13, 0), "111"),
	}

	entries := Build(people, activities)
	require.Len(t, entries, 2)

	assert.Equal(t, 2, entries[0].TotalKegiatan)
	assert.Equal(t, 1, entries[0].KonflikJadwal)

	assert.Equal(t, 1, entries[1].TotalKegiatan)
	assert.Equal(t, 0, entries[1].KonflikJadwal)
}

func TestFilter(t *testing.T) {
	entries := Build(
		[]directory.Person{
			{NIP: "198001012005011001", Nama: "Budi Santoso", Jabatan: "Widyaprada", Golongan: "III/c"},
			{NIP: "197502022000032002", Nama: "Siti Aminah", Jabatan: "Analis", Golongan: "IV/a"},
		},
		[]Activity{activity("a", at(10, 0), at(12, 0), "198001012005011001")},
	)

	t.Run("by name", func(t *testing.T) {
		got := Filter(entries, FilterOptions{Query: "budi"})
		require.Len(t, got, 1)
		assert.Equal(t, "Budi Santoso", got[0].Pegawai.Nama)
	})

	t.Run("by nip fragment", func(t *testing.T) {
		got := Filter(entries, FilterOptions{Query: "197502"})
		require.Len(t, got, 1)
		assert.Equal(t, "Siti Aminah", got[0].Pegawai.Nama)
	})

	t.Run("by golongan prefix", func(t *testing.T) {
		got := Filter(entries, FilterOptions{Golongan: "IV"})
		require.Len(t, got, 1)
		assert.Equal(t, "Siti Aminah", got[0].Pegawai.Nama)
	})

	t.Run("by activity date", func(t *testing.T) {
		got := Filter(entries, FilterOptions{Date: "2025-06-15"})
		require.Len(t, got, 1)
		assert.Equal(t, "Budi Santoso", got[0].Pegawai.Nama)

		assert.Empty(t, Filter(entries, FilterOptions{Date: "2025-06-16"}))
	})

	t.Run("combined", func(t *testing.T) {
		got := Filter(entries, FilterOptions{Query: "budi", Golongan: "IV"})
		assert.Empty(t, got)
	})
}

func TestGolonganOptions(t *testing.T) {
	people := []directory.Person{
		{Golongan: "III/c"},
		{Golongan: "IV/a"},
		{Golongan: "III/a"},
		{Golongan: ""},
	}
	assert.Equal(t, []string{"I"}, GolonganOptions(people))
}

func TestSummarize(t *testing.T) {
	people := []directory.Person{{NIP: "111"}, {NIP: "222"}}
	activities := []Activity{
		activity("a", at(10, 0), at(12, 0), "111"),
		activity("b", at(11, 0), at(13, 0), "111"),
		activity("c", at(14, 0), at(15, 0), "222"),
	}
	entries := Build(people, activities)

	stats := Summarize(people, activities, entries)
	assert.Equal(t, 2, stats.TotalPegawai)
	assert.Equal(t, 3, stats.TotalKegiatan)
	assert.InDelta(t, 1.5, stats.RataRata, 0.001)
	assert.Equal(t, 1, stats.TotalKonflik)
}

func TestActivityDecoding(t *testing.T) {
	raw := `{
		"id": "keg-1",
		"judul": "Pelatihan Teknis",
		"tanggal_mulai": "2025-06-15T08:00:00",
		"tanggal_selesai": "2025-06-17",
		"status": "published",
		"peserta": ["111", "222"],
		"created_at": "2025-06-01T10:00:00Z"
	}`

	var a Activity
	require.NoError(t, json.Unmarshal([]byte(raw), &a))
	assert.Equal(t, 15, a.TanggalMulai.Day())
	assert.Equal(t, 8, a.TanggalMulai.Hour())
	assert.Equal(t, 17, a.TanggalAkhir.Day())
	assert.True(t, a.HasParticipant("222"))
	assert.False(t, a.HasParticipant("333"))
	assert.Equal(t, "Dipublikasi", a.StatusLabel())
}

func TestActivityDecodingRejectsGarbageTime(t *testing.T) {
	var a Activity
	err := json.Unmarshal([]byte(`{"tanggal_mulai": "besok pagi"}`), &a)
	assert.Error(t, err)
}

func TestFormatDateTime(t *testing.T) {
	assert.Equal(t, "15 Juni 2025 08:30", FormatDateTime(time.Date(2025, 6, 15, 8, 30, 0, 0, time.Local)))
	assert.Equal(t, "01 Desember 2024", FormatDate(time.Date(2024, 12, 1, 0, 0, 0, 0, time.Local)))
	assert.Equal(t, "-", FormatDate(time.Time{}))
}

type stubAvailability struct {
	calls     []string
	responses map[string]bool
	err       error
}

func (s *stubAvailability) CheckAvailability(_ context.Context, nip, start, end string) (bool, error) {
	s.calls = append(s.calls, nip+"|"+start+"|"+end)
	if s.err != nil {
		return false, s.err
	}
	return s.responses[nip], nil
}

func TestCheckerStampsDatesAndQueriesSequentially(t *testing.T) {
	stub := &stubAvailability{responses: map[string]bool{"111": true, "222": false}}
	checker := NewChecker(stub)

	status, err := checker.Check(context.Background(), []string{"111", "222"}, "2025-06-15", "2025-06-17")
	require.NoError(t, err)

	assert.Equal(t, map[string]bool{"111": true, "222": false}, status)
	assert.Equal(t, []string{
		"111|2025-06-15T08:00:00|2025-06-17T08:00:00",
		"222|2025-06-15T08:00:00|2025-06-17T08:00:00",
	}, stub.calls)
}

func TestCheckerRequiresDatesAndParticipants(t *testing.T) {
	checker := NewChecker(&stubAvailability{})

	_, err := checker.Check(context.Background(), nil, "2025-06-15", "2025-06-17")
	assert.Error(t, err)

	_, err = checker.Check(context.Background(), []string{"111"}, "", "2025-06-17")
	assert.Error(t, err)
}

func TestCheckerAbortsOnTransportError(t *testing.T) {
	stub := &stubAvailability{err: errors.New("connection refused")}
	checker := NewChecker(stub)

	_, err := checker.Check(context.Background(), []string{"111", "222"}, "2025-06-15", "2025-06-17")
	require.Error(t, err)
	assert.Len(t, stub.calls, 1, "the check stops at the first transport failure")
}
