package provider

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

const (
	summarizePath       = "/summarize"
	maxResponseBytes    = 1 << 20
	defaultFetchTimeout = 30 * time.Second
)

// RapidAPIConfig carries the credentials and endpoint of the RapidAPI article
// summarizer.
type RapidAPIConfig struct {
	Key     string
	Host    string
	BaseURL string
	Timeout time.Duration
}

type RapidAPI struct {
	cfg      RapidAPIConfig
	endpoint string
	client   *http.Client
	log      *slog.Logger
}

func NewRapidAPI(cfg RapidAPIConfig, log *slog.Logger) (*RapidAPI, error) {
	cfg.Key = strings.TrimSpace(cfg.Key)
	cfg.Host = strings.TrimSpace(cfg.Host)
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")

	if cfg.Key == "" {
		return nil, errors.New("API key is empty")
	}
	if cfg.Host == "" {
		return nil, errors.New("API host is empty")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://" + cfg.Host
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultFetchTimeout
	}

	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("parse base URL: %w", err)
	}

	return &RapidAPI{
		cfg:      cfg,
		endpoint: cfg.BaseURL + summarizePath,
		client:   &http.Client{Timeout: cfg.Timeout},
		log:      log,
	}, nil
}

func (r *RapidAPI) Fetch(ctx context.Context, articleURL string) (string, error) {
	query := url.Values{}
	query.Set("url", articleURL)
	query.Set("summarize", "true")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return "", newError("create request", articleURL, err)
	}

	req.Header.Set("x-rapidapi-key", r.cfg.Key)
	req.Header.Set("x-rapidapi-host", r.cfg.Host)
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return "", newError("do request", articleURL, err)
	}
	defer func() {
		if err = resp.Body.Close(); err != nil {
			r.log.ErrorContext(ctx, "Failed to close response body",
				"error", err,
				"url", articleURL,
				"operation", "Fetch")
		}
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", newError("read body", articleURL, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", newError("do request", articleURL,
			fmt.Errorf("unexpected status: %d (body = %q)", resp.StatusCode, truncate(body, 200)))
	}

	return parseSummary(body, articleURL)
}

func parseSummary(body []byte, articleURL string) (string, error) {
	if !gjson.ValidBytes(body) {
		return "", newError("parse body", articleURL, errors.New("response is not valid JSON"))
	}

	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return "", newError("parse body", articleURL, fmt.Errorf("response is not a JSON object (type = %s)", root.Type))
	}

	summary := root.Get("summary")
	if !summary.Exists() || summary.Type == gjson.Null || summary.String() == "" {
		return NoSummary, nil
	}

	return summary.String(), nil
}

func truncate(body []byte, limit int) string {
	if len(body) <= limit {
		return string(body)
	}

	return string(body[:limit]) + "..."
}
