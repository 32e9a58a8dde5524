// Package loader fetches the raw profile feed and turns it into the
// normalized collection the engine is built from.
package loader

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"go.uber.org/zap"

	"github.com/hyperjump/meibo/internal/config"
	"github.com/hyperjump/meibo/internal/models"
	"github.com/hyperjump/meibo/internal/normalize"
)

// Loader reads the profile feed from a local file or an HTTP endpoint and
// normalizes it. A load is a single attempt; retrying is the caller's call.
type Loader struct {
	cfg        config.SourceConfig
	normalizer *normalize.Normalizer
	client     *http.Client
	logger     *zap.Logger
}

// New creates a loader for the configured source. The URL takes precedence
// over the path when both are set.
func New(cfg config.SourceConfig, normalizer *normalize.Normalizer, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{
		cfg:        cfg,
		normalizer: normalizer,
		client:     &http.Client{Timeout: cfg.Timeout()},
		logger:     logger,
	}
}

// Source describes where profiles come from, for logs.
func (l *Loader) Source() string {
	if l.cfg.URL != "" {
		return l.cfg.URL
	}
	return l.cfg.Path
}

// Load fetches the feed, decodes it, and normalizes every record. The feed
// is a JSON array of profile objects; oddly-shaped fields inside a record
// degrade to empty values rather than failing the load, but a feed that is
// not valid JSON at the top level is an error.
func (l *Loader) Load(ctx context.Context) ([]models.NormalizedProfile, error) {
	data, err := l.fetch(ctx)
	if err != nil {
		return nil, err
	}

	var raws []models.RawProfile
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("failed to decode profile feed: %w", err)
	}

	profiles := l.normalizer.Normalize(raws)
	l.logger.Info("profiles loaded",
		zap.String("source", l.Source()),
		zap.Int("count", len(profiles)),
	)
	return profiles, nil
}

func (l *Loader) fetch(ctx context.Context) ([]byte, error) {
	if l.cfg.URL != "" {
		return l.fetchURL(ctx)
	}
	data, err := os.ReadFile(l.cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile feed: %w", err)
	}
	return data, nil
}

func (l *Loader) fetchURL(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.cfg.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build feed request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profile feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("profile feed returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read feed response: %w", err)
	}
	return data, nil
}
