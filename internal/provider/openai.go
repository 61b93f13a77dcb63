package provider

import (
	"context"
	"errors"
	"log/slog"

	"articlesum/internal/article"
	"articlesum/internal/summarizer"
)

type ArticleExtractor interface {
	Extract(ctx context.Context, articleURL string) (article.Article, error)
}

// OpenAI downloads the article itself and has an LLM summarize it.
type OpenAI struct {
	extractor  ArticleExtractor
	summarizer summarizer.Summarizer
	log        *slog.Logger
}

func NewOpenAI(extractor ArticleExtractor, s summarizer.Summarizer, log *slog.Logger) *OpenAI {
	return &OpenAI{extractor: extractor, summarizer: s, log: log}
}

func (o *OpenAI) Fetch(ctx context.Context, articleURL string) (string, error) {
	a, err := o.extractor.Extract(ctx, articleURL)
	if err != nil {
		return "", newError("extract article", articleURL, err)
	}

	summary, err := o.summarizer.Summarize(ctx, summarizer.Input{
		Title:     a.Title,
		Text:      a.Text,
		SourceURL: a.URL,
	})
	if errors.Is(err, summarizer.ErrEmptyOutput) {
		o.log.WarnContext(ctx, "Model returned no summary",
			"url", articleURL,
			"textLen", len(a.Text))

		return NoSummary, nil
	}
	if err != nil {
		return "", newError("summarize article", articleURL, err)
	}

	return summary, nil
}
