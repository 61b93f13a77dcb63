package article

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
)

const (
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/127.0.0.0 Safari/537.36"

	defaultClientTimeout = 20 * time.Second
	maxBodyBytes         = 5 << 20
)

var ErrNoContent = errors.New("article has no readable content")

type Article struct {
	URL   string
	Title string
	Text  string
}

// Extractor downloads a web page and pulls the readable article out of it.
type Extractor struct {
	client *http.Client
	log    *slog.Logger
}

func NewExtractor(client *http.Client, log *slog.Logger) *Extractor {
	if client == nil {
		client = &http.Client{Timeout: defaultClientTimeout}
	}

	return &Extractor{client: client, log: log}
}

func (e *Extractor) Extract(ctx context.Context, articleURL string) (Article, error) {
	pageURL, err := url.Parse(strings.TrimSpace(articleURL))
	if err != nil {
		return Article{}, fmt.Errorf("parse URL: %w", err)
	}

	body, err := e.download(ctx, pageURL)
	if err != nil {
		return Article{}, err
	}

	a := Article{URL: pageURL.String()}

	parsed, err := readability.FromReader(bytes.NewReader(body), pageURL)
	if err != nil {
		e.log.WarnContext(ctx, "Failed to extract readable content",
			"error", err,
			"url", a.URL)
	} else {
		a.Title = strings.TrimSpace(parsed.Title)
		a.Text = normalizeSpace(parsed.TextContent)
	}

	if a.Title != "" && a.Text != "" {
		return a, nil
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return Article{}, fmt.Errorf("create document from reader: %w", err)
	}

	if a.Title == "" {
		a.Title = metaContent(doc, "meta[property='og:title']")
	}
	if a.Title == "" {
		a.Title = strings.TrimSpace(doc.Find("title").First().Text())
	}

	if a.Text == "" {
		e.log.WarnContext(ctx, "No readable article text, falling back to page description",
			"url", a.URL)

		a.Text = metaContent(doc, "meta[property='og:description']")
		if a.Text == "" {
			a.Text = metaContent(doc, "meta[name='description']")
		}
	}

	if a.Text == "" {
		return Article{}, fmt.Errorf("extract %s: %w", a.URL, ErrNoContent)
	}

	return a, nil
}

func (e *Extractor) download(ctx context.Context, pageURL *url.URL) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", userAgent)

	resp, err := e.client.Do(req) //nolint:gosec // URL is the article to summarize
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer func() {
		if err = resp.Body.Close(); err != nil {
			e.log.ErrorContext(ctx, "Failed to close response body",
				"error", err,
				"url", pageURL.String(),
				"operation", "download")
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("do request: unexpected status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	return body, nil
}

func metaContent(doc *goquery.Document, selector string) string {
	content, _ := doc.Find(selector).First().Attr("content")

	return strings.TrimSpace(content)
}

func normalizeSpace(text string) string {
	lines := strings.Split(text, "\n")
	kept := lines[:0]

	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			kept = append(kept, line)
		}
	}

	return strings.Join(kept, "\n")
}
