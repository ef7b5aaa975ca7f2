// Command quakesnap renders a standalone earthquake map page from a saved
// USGS GeoJSON document or a single fetch of the live feed.
//
// Usage:
//
//	go run ./cmd/quakesnap -in testdata/all_week.geojson -out map.html
//	go run ./cmd/quakesnap -url https://earthquake.usgs.gov/earthquakes/feed/v1.0/summary/all_day.geojson -out map.html -tz UTC
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/couchcryptid/quake-map-service/internal/adapter/leaflet"
	"github.com/couchcryptid/quake-map-service/internal/adapter/usgs"
	"github.com/couchcryptid/quake-map-service/internal/config"
	"github.com/couchcryptid/quake-map-service/internal/domain"
)

func main() {
	if err := run(os.Args[1:], os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "quakesnap:", err)
		os.Exit(1)
	}
}

func run(args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("quakesnap", flag.ContinueOnError)
	fs.SetOutput(stderr)
	in := fs.String("in", "", "saved GeoJSON feed document (takes precedence over -url)")
	feedURL := fs.String("url", config.DefaultFeedURL, "feed URL to fetch when -in is not set")
	out := fs.String("out", "", "output HTML path")
	tz := fs.String("tz", "Local", "IANA time zone for popup dates")
	timeout := fs.Duration("timeout", 30*time.Second, "fetch timeout")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *out == "" {
		fs.Usage()
		return errors.New("missing required flag: -out")
	}
	loc, err := time.LoadLocation(*tz)
	if err != nil {
		return fmt.Errorf("invalid -tz: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(stderr, nil))

	features, err := loadFeatures(*in, *feedURL, *timeout, logger)
	if err != nil {
		return err
	}

	markers, err := domain.BuildMarkers(features, loc)
	if err != nil {
		logger.Warn("features skipped", "skipped", len(features)-len(markers), "error", err)
	}

	renderer, err := leaflet.NewRenderer()
	if err != nil {
		return err
	}

	f, err := os.Create(*out)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := renderer.Render(f, leaflet.BuildScene(markers, domain.Now())); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}

	logger.Info("map written", "path", *out, "markers", len(markers))
	return nil
}

func loadFeatures(path, feedURL string, timeout time.Duration, logger *slog.Logger) ([]domain.RawFeature, error) {
	if path == "" {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return usgs.NewClient(feedURL, timeout, 1, logger).Fetch(ctx)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open feed file: %w", err)
	}
	defer f.Close()

	features, err := usgs.Decode(f)
	if err != nil {
		return nil, &domain.FeedError{Kind: domain.FeedErrorPayload, URL: path, Err: err}
	}
	return features, nil
}
