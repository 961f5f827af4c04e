package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	internal_errors "github.com/bbpmp-jabar/nyurat-keun/internal/errors"
	"github.com/bbpmp-jabar/nyurat-keun/internal/letter"
	"github.com/bbpmp-jabar/nyurat-keun/internal/schedule"
)

// FetchSurat retrieves all activity letters. The endpoint returns either a
// bare array or a {data: [...]} wrapper.
func (c *Client) FetchSurat(ctx context.Context) ([]schedule.Activity, error) {
	resp, err := c.do(ctx, http.MethodGet, "/api/surat", nil, "")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gagal mengambil data kegiatan: status %d", resp.StatusCode)
	}

	var raw json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode surat response: %w", err)
	}

	var activities []schedule.Activity
	if err := json.Unmarshal(raw, &activities); err == nil {
		return activities, nil
	}

	var wrapped struct {
		Data []schedule.Activity `json:"data"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, fmt.Errorf("failed to decode surat response: %w", err)
	}
	return wrapped.Data, nil
}

// CreateSurat submits a new assignment letter draft.
func (c *Client) CreateSurat(ctx context.Context, sub letter.Submission) error {
	jsonBody, err := json.Marshal(sub)
	if err != nil {
		return fmt.Errorf("failed to marshal surat data: %w", err)
	}

	resp, err := c.do(ctx, http.MethodPost, "/api/surat", bytes.NewBuffer(jsonBody), "")
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		msg := apiMessage(resp, "Gagal membuat surat")
		return &internal_errors.ErrorWithStatusCode{Message: msg, StatusCode: resp.StatusCode}
	}
	resp.Body.Close()
	return nil
}

// CheckAvailability asks whether one employee is free in the date range.
// A reachable backend that answers with a non-success status is treated as
// available, so drafting is never blocked by a flaky availability endpoint.
func (c *Client) CheckAvailability(ctx context.Context, nip, start, end string) (bool, error) {
	query := url.Values{"nip": {nip}, "start": {start}, "end": {end}}

	resp, err := c.do(ctx, http.MethodGet, "/api/surat/check-availability?"+query.Encode(), nil, "")
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return true, nil
	}

	var payload struct {
		Available bool `json:"available"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return false, fmt.Errorf("failed to decode availability response: %w", err)
	}
	return payload.Available, nil
}
