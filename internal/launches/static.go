package launches

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"launchdash.dev/internal/logging"
	"launchdash.dev/internal/models"
)

const downloadTimeout = 30 * time.Second

func isRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

func rawLaunchData(ctx context.Context, source string, logger *slog.Logger) ([]byte, error) {
	if !isRemote(source) {
		b, err := os.ReadFile(source)
		if err != nil {
			return nil, fmt.Errorf("error reading local launch file: %w", err)
		}
		return b, nil
	}

	ctx, cancel := context.WithTimeout(ctx, downloadTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, fmt.Errorf("error building launch data request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error downloading launch data: %w", err)
	}
	defer logging.SafeCloseWithLogging(resp.Body, logger, "launch_data_download")

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("error downloading launch data: unexpected status %s", resp.Status)
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading launch data: %w", err)
	}
	return b, nil
}

// loadLaunchData reads and parses the launch records from a local file or a URL.
func loadLaunchData(ctx context.Context, source string, logger *slog.Logger) ([]models.Launch, error) {
	b, err := rawLaunchData(ctx, source, logger)
	if err != nil {
		return nil, err
	}

	launches, err := ParseCSV(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("error parsing launch data from %s: %w", source, err)
	}
	if len(launches) == 0 {
		return nil, fmt.Errorf("launch data from %s has no rows", source)
	}
	return launches, nil
}
