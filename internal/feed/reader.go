package feed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/mmcdole/gofeed"
)

const (
	feedClientTimeout                    = 20 * time.Second
	recentItemsWindow                    = 24 * time.Hour
	recentItemsGracePeriod               = 10 * time.Minute
	fetchFeedsMaxConcurrencyGrowthFactor = 10
)

// Reader turns RSS/Atom feeds into lists of article URLs worth summarizing.
type Reader struct {
	libParser *gofeed.Parser
	log       *slog.Logger
}

func NewReader(log *slog.Logger) *Reader {
	libParser := gofeed.NewParser()
	libParser.Client = &http.Client{Timeout: feedClientTimeout}

	return &Reader{libParser: libParser, log: log}
}

// ArticleURLs returns the links of the feed items published within the last
// day. Items without any date are kept.
func (r *Reader) ArticleURLs(ctx context.Context, feedURL string) ([]string, error) {
	feedURL = strings.TrimSpace(feedURL)
	if feedURL == "" {
		return nil, errors.New("feed URL is empty")
	}

	parsed, err := r.libParser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse feed (URL = %s): %w", feedURL, err)
	}

	urls := recentItemURLs(parsed.Items, time.Now())

	r.log.DebugContext(ctx, "Feed is parsed",
		"feedURL", feedURL,
		"itemCount", len(parsed.Items),
		"recentCount", len(urls))

	return urls, nil
}

// CollectArticleURLs reads all feeds concurrently and merges their article
// URLs without duplicates. Feeds that fail are skipped and reported in the
// joined error.
func (r *Reader) CollectArticleURLs(ctx context.Context, feedURLs []string) ([]string, error) {
	if len(feedURLs) == 0 {
		return nil, nil
	}

	concurrency := min(runtime.NumCPU()*fetchFeedsMaxConcurrencyGrowthFactor, len(feedURLs))
	semCh := make(chan struct{}, concurrency)

	results := make([][]string, len(feedURLs))
	errs := make([]error, len(feedURLs))

	var wg sync.WaitGroup
	for i, feedURL := range feedURLs {
		semCh <- struct{}{}

		wg.Go(func() {
			defer func() { <-semCh }()

			urls, err := r.ArticleURLs(ctx, feedURL)
			if err != nil {
				errs[i] = fmt.Errorf("read feed: %w", err)
				return
			}

			results[i] = urls
		})
	}
	wg.Wait()

	var merged []string
	seen := make(map[string]struct{})

	for _, urls := range results {
		for _, u := range urls {
			if _, ok := seen[u]; ok {
				continue
			}

			seen[u] = struct{}{}
			merged = append(merged, u)
		}
	}

	return merged, errors.Join(errs...)
}

func recentItemURLs(items []*gofeed.Item, now time.Time) []string {
	cutoffTime := now.Add(-recentItemsWindow - recentItemsGracePeriod)

	var urls []string
	seen := make(map[string]struct{}, len(items))

	for _, item := range items {
		if item == nil {
			continue
		}

		link := strings.TrimSpace(item.Link)
		if link == "" {
			continue
		}

		if published := itemTime(item); !published.IsZero() && !published.After(cutoffTime) {
			continue
		}

		if _, ok := seen[link]; ok {
			continue
		}

		seen[link] = struct{}{}
		urls = append(urls, link)
	}

	return urls
}

func itemTime(item *gofeed.Item) time.Time {
	if item.PublishedParsed != nil {
		return *item.PublishedParsed
	}

	if item.UpdatedParsed != nil {
		return *item.UpdatedParsed
	}

	return time.Time{}
}
