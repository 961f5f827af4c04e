package apiclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/bbpmp-jabar/nyurat-keun/internal/directory"
)

// ErrUnauthorized means the bearer token was rejected; the session should be
// cleared and the user sent back to login.
var ErrUnauthorized = errors.New("sesi telah berakhir")

// FetchPegawai retrieves the full employee directory. The response shape
// varies between deployments; parsing is delegated to the directory package.
func (c *Client) FetchPegawai(ctx context.Context, token string) ([]directory.Person, error) {
	resp, err := c.do(ctx, http.MethodGet, "/api/pegawai", nil, token)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, ErrUnauthorized
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gagal mengambil data pegawai: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read pegawai response: %w", err)
	}
	return directory.Parse(body)
}
