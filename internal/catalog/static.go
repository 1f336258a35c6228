package catalog

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/jamespfennell/gtfs"

	"wayfinder.app/internal/logging"
)

// IsLocalSource reports whether source is a file path rather than an http(s) URL.
func IsLocalSource(source string) bool {
	return !strings.HasPrefix(source, "http://") && !strings.HasPrefix(source, "https://")
}

// Load reads a GTFS static feed from a local path or URL and builds a catalog from its stops.
func Load(ctx context.Context, source string, logger *slog.Logger) (*Catalog, error) {
	start := time.Now()

	b, err := rawFeedData(ctx, source, logger)
	if err != nil {
		return nil, fmt.Errorf("error reading GTFS data: %w", err)
	}

	staticData, err := gtfs.ParseStatic(b, gtfs.ParseStaticOptions{})
	if err != nil {
		return nil, fmt.Errorf("error parsing GTFS data: %w", err)
	}

	c := NewCatalog(source, staticData.Stops)

	logging.LogOperation(logger, "catalog_loaded",
		slog.String("source", source),
		slog.Bool("local_file", IsLocalSource(source)),
		slog.Int("stops_count", len(staticData.Stops)),
		slog.Int("targets_count", c.Len()),
		slog.Duration("duration", time.Since(start)),
		slog.String("component", "catalog"))

	return c, nil
}

func rawFeedData(ctx context.Context, source string, logger *slog.Logger) (b []byte, err error) {
	if IsLocalSource(source) {
		b, err = os.ReadFile(source)
		if err != nil {
			return nil, fmt.Errorf("error reading local GTFS file: %w", err)
		}
		return b, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, fmt.Errorf("error building GTFS request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error downloading GTFS data: %w", err)
	}
	defer logging.HandleDeferredError(&err, resp.Body.Close, logger, "close_gtfs_response")

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("error downloading GTFS data: unexpected status %d", resp.StatusCode)
	}

	b, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading GTFS data: %w", err)
	}
	return b, nil
}
