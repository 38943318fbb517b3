// Package tracker scrapes the live summary of the BitTorrent tracker that
// sits next to the site. The tracker is run separately and is often down, so
// callers treat every error from this package as a degradation.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"
	"gitlab.com/ranfdev/sqadmin/internal/metrics"
	"gitlab.com/ranfdev/sqadmin/internal/models"
)

const (
	DefaultStatsPath = "/stats"
	maxBodyBytes     = 64 << 10
	breakerName      = "tracker-stats"
)

type Config struct {
	// URL is the tracker base URL, without the stats path.
	URL  string
	Path string
	// Timeout bounds a single scrape, independently of the caller's deadline.
	Timeout time.Duration
	// FailureThreshold is the number of consecutive failures that opens the
	// breaker; CooldownPeriod is how long it stays open.
	FailureThreshold uint32
	CooldownPeriod   time.Duration
	Logger           zerolog.Logger
}

func DefaultConfig(url string) Config {
	return Config{
		URL:              url,
		Path:             DefaultStatsPath,
		Timeout:          2 * time.Second,
		FailureThreshold: 5,
		CooldownPeriod:   30 * time.Second,
		Logger:           zerolog.Nop(),
	}
}

type Client struct {
	endpoint   string
	timeout    time.Duration
	httpClient *http.Client
	cb         *gobreaker.CircuitBreaker[models.TrackerStats]
	logger     zerolog.Logger
}

func NewClient(config Config) *Client {
	if config.Path == "" {
		config.Path = DefaultStatsPath
	}
	if config.FailureThreshold == 0 {
		config.FailureThreshold = 5
	}
	logger := config.Logger.With().Str("component", "tracker").Logger()

	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0)
	cb := gobreaker.NewCircuitBreaker[models.TrackerStats](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Timeout:     config.CooldownPeriod,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= config.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Info().Str("from", from.String()).Str("to", to.String()).Msg("Circuit breaker state change")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
		},
		// A caller hanging up says nothing about the tracker.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
	})

	return &Client{
		endpoint:   strings.TrimRight(config.URL, "/") + config.Path,
		timeout:    config.Timeout,
		httpClient: &http.Client{},
		cb:         cb,
		logger:     logger,
	}
}

// Scrape fetches and parses the tracker summary. It gives up after the
// configured timeout and fails fast while the breaker is open.
func (c *Client) Scrape(ctx context.Context) (models.TrackerStats, error) {
	stats, err := c.cb.Execute(func() (models.TrackerStats, error) {
		return c.scrape(ctx)
	})
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.TrackerScrapes.WithLabelValues(metrics.OutcomeRejected).Inc()
		return models.TrackerStats{}, fmt.Errorf("tracker scrape skipped: %w", err)
	case err != nil:
		metrics.TrackerScrapes.WithLabelValues(metrics.OutcomeError).Inc()
		return models.TrackerStats{}, err
	}
	metrics.TrackerScrapes.WithLabelValues(metrics.OutcomeSuccess).Inc()
	return stats, nil
}

func (c *Client) scrape(ctx context.Context) (models.TrackerStats, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	start := time.Now()
	defer func() {
		metrics.TrackerScrapeDuration.Observe(time.Since(start).Seconds())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return models.TrackerStats{}, fmt.Errorf("creating tracker request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return models.TrackerStats{}, fmt.Errorf("performing tracker scrape: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return models.TrackerStats{}, fmt.Errorf("reading tracker response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return models.TrackerStats{}, &StatusError{Code: resp.StatusCode, Body: truncate(string(body), 200)}
	}
	return ParseStats(string(body))
}

// StatusError is returned when the tracker answers with a non-2xx status.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("error performing tracker scrape: %d %s", e.Code, e.Body)
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}
