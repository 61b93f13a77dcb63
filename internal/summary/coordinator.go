package summary

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"articlesum/internal/cache"
	"articlesum/internal/markdown"
	"articlesum/internal/provider"

	"golang.org/x/sync/singleflight"
)

const defaultBatchConcurrency = 4

// Coordinator serves article summaries from the cache and asks the provider
// only on a miss. Cached entries are never refreshed.
type Coordinator struct {
	store            cache.Store
	client           provider.Client
	log              *slog.Logger
	coalesce         bool
	inFlight         singleflight.Group
	batchConcurrency int
}

type Option func(*Coordinator)

// WithCoalescing makes concurrent misses for the same URL share a single
// provider request.
func WithCoalescing() Option {
	return func(c *Coordinator) {
		c.coalesce = true
	}
}

func WithBatchConcurrency(n int) Option {
	return func(c *Coordinator) {
		if n > 0 {
			c.batchConcurrency = n
		}
	}
}

func New(store cache.Store, client provider.Client, log *slog.Logger, opts ...Option) *Coordinator {
	c := &Coordinator{
		store:            store,
		client:           client,
		log:              log,
		batchConcurrency: defaultBatchConcurrency,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

type fetchResult struct {
	summary string
	cached  bool
}

// Summarize returns the summary of the article at articleURL. A cache hit
// makes no provider request. On failure nothing is cached.
func (c *Coordinator) Summarize(ctx context.Context, articleURL string) Outcome {
	if strings.TrimSpace(articleURL) == "" {
		c.log.WarnContext(ctx, "Rejecting empty article URL",
			"urlLen", len(articleURL))

		return Failed(articleURL, ErrorKindInvalidInput)
	}

	if summary, ok := c.store.Get(ctx, articleURL); ok {
		c.log.DebugContext(ctx, "Summary is served from cache",
			"url", articleURL)

		return Cached(articleURL, summary)
	}

	res, shared, err := c.fetch(ctx, articleURL)
	if err != nil {
		c.log.ErrorContext(ctx, "Failed to fetch summary",
			"error", err,
			"url", articleURL,
			"shared", shared)

		return Failed(articleURL, ErrorKindSummaryFetchFailed)
	}

	if res.cached {
		return Cached(articleURL, res.summary)
	}

	c.log.InfoContext(ctx, "Summary is fetched",
		"url", articleURL,
		"summaryLen", len(res.summary),
		"shared", shared)

	return Fresh(articleURL, res.summary)
}

// SummarizeAsync runs Summarize in the background. The returned channel
// receives exactly one Outcome and is then closed.
func (c *Coordinator) SummarizeAsync(ctx context.Context, articleURL string) <-chan Outcome {
	done := make(chan Outcome, 1)

	go func() {
		defer close(done)
		done <- c.Summarize(ctx, articleURL)
	}()

	return done
}

// SummarizeAll summarizes every URL with a bounded number of workers. The
// outcomes are in the order of urls.
func (c *Coordinator) SummarizeAll(ctx context.Context, urls []string) []Outcome {
	outcomes := make([]Outcome, len(urls))
	if len(urls) == 0 {
		return outcomes
	}

	workerCount := min(c.batchConcurrency, len(urls))

	type task struct {
		resultIndex int
		url         string
	}

	tasks := make(chan task)
	var wg sync.WaitGroup

	for range workerCount {
		wg.Go(func() {
			for t := range tasks {
				outcomes[t.resultIndex] = c.Summarize(ctx, t.url)
			}
		})
	}

	for i, u := range urls {
		tasks <- task{resultIndex: i, url: u}
	}

	close(tasks)
	wg.Wait()

	return outcomes
}

// CacheSize reports how many summaries the store holds, if it can count them.
func (c *Coordinator) CacheSize(ctx context.Context) (int64, bool) {
	sizer, ok := c.store.(cache.Sizer)
	if !ok {
		return 0, false
	}

	n, err := sizer.Len(ctx)
	if err != nil {
		c.log.WarnContext(ctx, "Failed to count cached summaries",
			"error", err)

		return 0, false
	}

	return n, true
}

func (c *Coordinator) fetch(ctx context.Context, articleURL string) (fetchResult, bool, error) {
	if !c.coalesce {
		res, err := c.fetchAndStore(ctx, articleURL)

		return res, false, err
	}

	// The shared request outlives any single caller, so each caller waits
	// on its own context.
	shareCtx := context.WithoutCancel(ctx)

	ch := c.inFlight.DoChan(articleURL, func() (any, error) {
		// A request for this URL may have completed between our cache
		// lookup and entering the group.
		if summary, ok := c.store.Get(shareCtx, articleURL); ok {
			return fetchResult{summary: summary, cached: true}, nil
		}

		return c.fetchAndStore(shareCtx, articleURL)
	})

	var r singleflight.Result
	select {
	case r = <-ch:
	case <-ctx.Done():
		return fetchResult{}, true, fmt.Errorf("wait for in-flight request: %w", ctx.Err())
	}

	if r.Err != nil {
		return fetchResult{}, r.Shared, r.Err
	}

	res, ok := r.Val.(fetchResult)
	if !ok {
		return fetchResult{}, r.Shared, fmt.Errorf("unexpected in-flight result type %T", r.Val)
	}

	return res, r.Shared, nil
}

func (c *Coordinator) fetchAndStore(ctx context.Context, articleURL string) (fetchResult, error) {
	raw, err := c.client.Fetch(ctx, articleURL)
	if err != nil {
		return fetchResult{}, fmt.Errorf("fetch summary: %w", err)
	}

	summary := markdown.Clean(raw)
	if summary == "" {
		summary = provider.NoSummary
	}

	// A fetched summary is stored even if the caller has gone away.
	c.store.Put(context.WithoutCancel(ctx), articleURL, summary)

	return fetchResult{summary: summary}, nil
}
