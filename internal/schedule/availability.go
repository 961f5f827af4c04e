package schedule

import (
	"context"
	"fmt"
)

// DefaultStartTime is appended to date-only form input before it is sent to
// the letter service.
const DefaultStartTime = "08:00:00"

// StampDate turns a "2006-01-02" form value into the timestamp the letter
// service expects.
func StampDate(date string) string {
	if date == "" {
		return ""
	}
	return fmt.Sprintf("%sT%s", date, DefaultStartTime)
}

// AvailabilityClient asks the letter service whether one employee is free in
// a date range. Implementations report true when the service answers with a
// non-success status, so a flaky backend never blocks letter drafting.
type AvailabilityClient interface {
	CheckAvailability(ctx context.Context, nip, start, end string) (bool, error)
}

// Checker resolves availability for a set of selected participants.
type Checker struct {
	client AvailabilityClient
}

func NewChecker(client AvailabilityClient) *Checker {
	return &Checker{client: client}
}

// Check queries the letter service for each NIP in turn and returns the
// availability per NIP. Date-only inputs are stamped with the default start
// time. A transport failure aborts the whole check.
func (c *Checker) Check(ctx context.Context, nips []string, startDate, endDate string) (map[string]bool, error) {
	if startDate == "" || endDate == "" || len(nips) == 0 {
		return nil, fmt.Errorf("harap isi tanggal dan pilih pegawai terlebih dahulu")
	}

	start := StampDate(startDate)
	end := StampDate(endDate)

	status := make(map[string]bool, len(nips))
	for _, nip := range nips {
		available, err := c.client.CheckAvailability(ctx, nip, start, end)
		if err != nil {
			return nil, fmt.Errorf("gagal memeriksa ketersediaan: %w", err)
		}
		status[nip] = available
	}
	return status, nil
}
