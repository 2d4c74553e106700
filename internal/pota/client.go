// Package pota fetches activation spots from the Parks on the Air API.
package pota

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"

	"potarig/internal/logger"
	"potarig/internal/metrics"
	"potarig/internal/models"
)

const (
	DefaultURL     = "https://api.pota.app/spot/"
	DefaultTimeout = 15 * time.Second

	breakerName = "pota-api"

	// spotTimeLayout is the feed's wall-clock format; values are UTC.
	spotTimeLayout = "2006-01-02T15:04:05"
)

var (
	// ErrTransport covers connection failures, timeouts, non-200 responses and an open breaker.
	ErrTransport = errors.New("pota: transport error")
	// ErrDecode means the payload could not be turned into spots.
	ErrDecode = errors.New("pota: decode error")
)

// Config configures the spot client.
type Config struct {
	URL     string
	Timeout time.Duration
}

// Client reads the spot feed. Safe for concurrent use.
type Client struct {
	url        string
	httpClient *http.Client
	cb         *gobreaker.CircuitBreaker[[]models.Spot]
	log        *logger.Logger
}

// NewClient builds a client with a circuit breaker around the feed. Empty config
// values fall back to DefaultURL and DefaultTimeout.
func NewClient(cfg Config, log *logger.Logger) *Client {
	if cfg.URL == "" {
		cfg.URL = DefaultURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if log == nil {
		log = logger.Nop()
	}
	c := &Client{
		url:        cfg.URL,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		log:        log,
	}
	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0)
	c.cb = gobreaker.NewCircuitBreaker[[]models.Spot](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		// A bad payload proves the API is reachable, and a caller that gave up
		// says nothing about it; only transport problems trip the breaker.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrDecode) || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			c.log.Infow("circuit_breaker_state", "name", name, "from", from.String(), "to", to.String())
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
		},
	})
	return c
}

// Spots fetches the feed and returns every spot sorted ascending by activator,
// with SpotTime normalized to epoch seconds. Errors wrap ErrTransport or ErrDecode.
func (c *Client) Spots(ctx context.Context) ([]models.Spot, error) {
	spots, err := c.cb.Execute(func() ([]models.Spot, error) {
		return c.fetch(ctx)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	return spots, err
}

func (c *Client) fetch(ctx context.Context) ([]models.Spot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %w", ErrTransport, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64*1024))
		return nil, fmt.Errorf("%w: unexpected status %d", ErrTransport, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", ErrTransport, err)
	}
	return Decode(body)
}

// wireSpot shadows SpotTime, which the feed sends as a wall-clock string.
type wireSpot struct {
	models.Spot
	SpotTime string `json:"spotTime"`
}

// Decode parses a feed payload. Ill-formed UTF-8 is replaced with '?' rather than
// rejected. The result is stably sorted by activator.
func Decode(body []byte) ([]models.Spot, error) {
	clean, _, err := transform.Bytes(runes.ReplaceIllFormed(), body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	clean = bytes.ReplaceAll(clean, []byte(string(utf8.RuneError)), []byte("?"))

	var raw []wireSpot
	if err := json.Unmarshal(clean, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	spots := make([]models.Spot, 0, len(raw))
	for i, w := range raw {
		s, err := w.normalize()
		if err != nil {
			return nil, fmt.Errorf("%w: spot %d (%s): %w", ErrDecode, i, w.Activator, err)
		}
		spots = append(spots, s)
	}
	slices.SortStableFunc(spots, func(a, b models.Spot) int {
		return strings.Compare(a.Activator, b.Activator)
	})
	return spots, nil
}

func (w wireSpot) normalize() (models.Spot, error) {
	s := w.Spot
	t, err := time.ParseInLocation(spotTimeLayout, w.SpotTime, time.UTC)
	if err != nil {
		return models.Spot{}, fmt.Errorf("spotTime %q: %w", w.SpotTime, err)
	}
	s.SpotTime = t.Unix()
	s.SpotTimeShort = t.Format("15:04")
	// Unparsable frequencies classify to no band rather than failing the feed.
	if khz, err := strconv.ParseFloat(strings.TrimSpace(s.Frequency), 64); err == nil {
		s.FrequencyKHz = khz
	}
	return s, nil
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
