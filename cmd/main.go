package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"articlesum/internal/article"
	"articlesum/internal/cache"
	"articlesum/internal/config"
	"articlesum/internal/feed"
	"articlesum/internal/provider"
	"articlesum/internal/scheduler"
	"articlesum/internal/summarizer"
	"articlesum/internal/summary"

	"github.com/openai/openai-go/v3/option"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

	start := time.Now()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.ErrorContext(ctx, "Failed to load config",
			"error", err)

		return
	}

	log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(log)

	store, closeStore, err := cache.Open(ctx, cfg, log)
	if err != nil {
		log.ErrorContext(ctx, "Failed to open cache",
			"error", err,
			"backend", cfg.CacheBackend)

		return
	}
	defer func() {
		if err = closeStore(); err != nil {
			log.ErrorContext(ctx, "Failed to close cache",
				"error", err,
				"backend", cfg.CacheBackend)
		}
	}()
	log.InfoContext(ctx, "Cache is opened",
		"backend", cfg.CacheBackend,
		"prefix", cfg.CachePrefix)

	client, err := initProvider(ctx, cfg, log)
	if err != nil {
		log.ErrorContext(ctx, "Failed to initialize provider",
			"error", err,
			"provider", cfg.Provider)

		return
	}

	opts := []summary.Option{summary.WithBatchConcurrency(cfg.BatchConcurrency)}
	if cfg.CoalesceRequests {
		opts = append(opts, summary.WithCoalescing())
	}
	coordinator := summary.New(store, client, log, opts...)

	urls, err := article.FindURLs(strings.Join(os.Args[1:], " "))
	if err != nil {
		log.ErrorContext(ctx, "Failed to find article URLs in arguments",
			"error", err,
			"argCount", len(os.Args)-1)

		return
	}

	summarizeArgs(ctx, coordinator, urls, log)

	if len(cfg.WarmFeeds) == 0 {
		log.InfoContext(ctx, "No feeds to warm, exiting",
			"urlCount", len(urls),
			"uptimeSeconds", time.Since(start).Seconds())

		return
	}

	sched := scheduler.New(ctx, cfg.WarmSpec, cfg.WarmFeeds, feed.NewReader(log), coordinator, log)

	if err = sched.Start(); err != nil {
		log.ErrorContext(ctx, "Failed to start scheduler",
			"error", err,
			"spec", cfg.WarmSpec,
			"timezone", time.FixedZone(scheduler.Timezone, scheduler.TimezoneOffsetSeconds).String())

		return
	}
	log.InfoContext(ctx, "Scheduler is started",
		"spec", cfg.WarmSpec,
		"feedCount", len(cfg.WarmFeeds),
		"timezone", time.FixedZone(scheduler.Timezone, scheduler.TimezoneOffsetSeconds).String())

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	sig := <-c
	log.InfoContext(ctx, "Shutdown signal is received",
		"signal", sig.String())
	cancel()

	sched.Stop()
	log.InfoContext(ctx, "Scheduler is stopped",
		"signal", sig.String(),
		"uptimeSeconds", time.Since(start).Seconds())
}

func initProvider(ctx context.Context, cfg config.Config, log *slog.Logger) (provider.Client, error) {
	switch cfg.Provider {
	case config.ProviderRapidAPI:
		client, err := provider.NewRapidAPI(provider.RapidAPIConfig{
			Key:     cfg.RapidAPIKey,
			Host:    cfg.RapidAPIHost,
			BaseURL: cfg.RapidAPIEndpoint(),
			Timeout: cfg.ProviderTimeout,
		}, log)
		if err != nil {
			return nil, fmt.Errorf("create RapidAPI client: %w", err)
		}

		log.InfoContext(ctx, "RapidAPI provider is initialized",
			"provider", cfg.Provider,
			"host", cfg.RapidAPIHost,
			"timeout", cfg.ProviderTimeout.String())

		return client, nil
	case config.ProviderOpenAI:
		s, err := summarizer.NewOpenAISummarizer(cfg.OpenAIAPIKey, option.WithRequestTimeout(cfg.ProviderTimeout))
		if err != nil {
			return nil, fmt.Errorf("create OpenAI summarizer: %w", err)
		}

		extractor := article.NewExtractor(&http.Client{Timeout: cfg.ProviderTimeout}, log)

		log.InfoContext(ctx, "OpenAI provider is initialized",
			"provider", cfg.Provider,
			"timeout", cfg.ProviderTimeout.String())

		return provider.NewOpenAI(extractor, s, log), nil
	default:
		return nil, fmt.Errorf("unknown provider: %q", cfg.Provider)
	}
}

func summarizeArgs(ctx context.Context, coordinator *summary.Coordinator, urls []string, log *slog.Logger) {
	for _, outcome := range coordinator.SummarizeAll(ctx, urls) {
		if !outcome.OK() {
			log.ErrorContext(ctx, "Summary is unavailable",
				"url", outcome.URL,
				"reason", outcome.Kind.String())

			continue
		}

		log.InfoContext(ctx, "Summary is ready",
			"url", outcome.URL,
			"status", outcome.Status.String(),
			"summary", outcome.Summary)
	}
}
