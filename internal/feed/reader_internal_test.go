package feed

import (
	"testing"
	"time"

	"github.com/mmcdole/gofeed"
)

func TestRecentItemURLs(t *testing.T) {
	now := time.Date(2025, 1, 2, 10, 0, 0, 0, time.UTC)
	fresh := now.Add(-time.Hour)
	withinGrace := now.Add(-24*time.Hour - 5*time.Minute)
	stale := now.Add(-48 * time.Hour)

	items := []*gofeed.Item{
		{Link: " https://example.com/fresh ", PublishedParsed: &fresh},
		{Link: "https://example.com/grace", UpdatedParsed: &withinGrace},
		{Link: "https://example.com/stale", PublishedParsed: &stale},
		{Link: "https://example.com/undated"},
		{Link: "https://example.com/fresh", PublishedParsed: &fresh},
		{Link: "   "},
		nil,
	}

	got := recentItemURLs(items, now)
	want := []string{
		"https://example.com/fresh",
		"https://example.com/grace",
		"https://example.com/undated",
	}

	if len(got) != len(want) {
		t.Fatalf("unexpected URLs: got %q want %q", got, want)
	}

	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("URL %d mismatch: got %q want %q", i, got[i], want[i])
		}
	}
}

func TestItemTimePrefersPublished(t *testing.T) {
	published := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	updated := published.Add(time.Hour)

	got := itemTime(&gofeed.Item{PublishedParsed: &published, UpdatedParsed: &updated})
	if !got.Equal(published) {
		t.Fatalf("expected published time, got %s", got)
	}

	if !itemTime(&gofeed.Item{}).IsZero() {
		t.Fatalf("expected zero time for undated item")
	}
}
