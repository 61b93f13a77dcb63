package scheduler

import (
	"context"
	"log/slog"
	"time"

	"articlesum/internal/summary"

	"github.com/robfig/cron/v3"
)

const (
	Timezone              = "UTC"
	TimezoneOffsetSeconds = 0
	warmCacheTimeout      = 15 * time.Minute
)

type URLSource interface {
	CollectArticleURLs(ctx context.Context, feedURLs []string) ([]string, error)
}

type Summarizer interface {
	SummarizeAll(ctx context.Context, urls []string) []summary.Outcome
}

type cacheSizer interface {
	CacheSize(ctx context.Context) (int64, bool)
}

// Scheduler periodically summarizes fresh feed items so that later requests
// for them are cache hits.
type Scheduler struct {
	ctx        context.Context
	cron       *cron.Cron
	spec       string
	feedURLs   []string
	source     URLSource
	summarizer Summarizer
	log        *slog.Logger
}

func New(
	ctx context.Context,
	spec string,
	feedURLs []string,
	source URLSource,
	summarizer Summarizer,
	log *slog.Logger,
) *Scheduler {
	c := cron.New(cron.WithLocation(time.FixedZone(Timezone, TimezoneOffsetSeconds)))

	return &Scheduler{
		ctx:        ctx,
		cron:       c,
		spec:       spec,
		feedURLs:   feedURLs,
		source:     source,
		summarizer: summarizer,
		log:        log,
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.spec, s.warmCache); err != nil {
		return err
	}

	s.cron.Start()

	return nil
}

// Stop halts the schedule and waits for a running warm-up to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Scheduler) warmCache() {
	ctx, cancel := context.WithTimeout(s.ctx, warmCacheTimeout)
	defer cancel()

	s.WarmCache(ctx)
}

// WarmCache summarizes the recent items of every configured feed once.
func (s *Scheduler) WarmCache(ctx context.Context) map[summary.Status]int {
	select {
	case <-ctx.Done():
		s.log.InfoContext(ctx, "Scheduler context is done",
			"error", ctx.Err())
		return nil
	default:
	}

	urls, err := s.source.CollectArticleURLs(ctx, s.feedURLs)
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to collect article URLs",
			"error", err,
			"feedCount", len(s.feedURLs),
			"urlCount", len(urls))
	}

	if ctx.Err() != nil {
		s.log.InfoContext(ctx, "Scheduler context is done",
			"error", ctx.Err())
		return nil
	}

	counts := countByStatus(s.summarizer.SummarizeAll(ctx, urls))

	attrs := []any{
		"feedCount", len(s.feedURLs),
		"urlCount", len(urls),
		"cached", counts[summary.StatusCached],
		"fresh", counts[summary.StatusFresh],
		"failed", counts[summary.StatusFailed],
	}
	if sizer, ok := s.summarizer.(cacheSizer); ok {
		if size, counted := sizer.CacheSize(ctx); counted {
			attrs = append(attrs, "cacheSize", size)
		}
	}

	s.log.InfoContext(ctx, "Cache is warmed", attrs...)

	return counts
}

func countByStatus(outcomes []summary.Outcome) map[summary.Status]int {
	counts := make(map[summary.Status]int, 3)

	for _, o := range outcomes {
		counts[o.Status]++
	}

	return counts
}
