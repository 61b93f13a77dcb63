package markdown_test

import (
	"strings"
	"testing"

	"articlesum/internal/markdown"

	"pgregory.net/rapid"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"Empty", "", ""},
		{"Single bold word", "Breaking **news** today", "Breaking news today"},
		{"Whole text bold", "**Summary**", "Summary"},
		{"Several bold spans", "**One** and **two words** here", "One and two words here"},
		{"Multiline", "**Title**\n\nBody with **key** point.", "Title\n\nBody with key point."},
		{"No markers", "Plain summary, nothing to strip.", "Plain summary, nothing to strip."},
		{"Single asterisks kept", "An *italic* aside", "An *italic* aside"},
		{"Unpaired marker kept", "Dangling **marker here", "Dangling **marker here"},
		{"Spaced operators kept", "2 ** 3 and 4 ** 5", "2 ** 3 and 4 ** 5"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := markdown.Clean(test.input); got != test.want {
				t.Fatalf("Clean(%q) = %q, want %q", test.input, got, test.want)
			}
		})
	}
}

func TestCleanLeavesTextWithoutMarkersUntouched(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		input := rapid.StringMatching(`[^*]*`).Draw(t, "input")

		if got := markdown.Clean(input); got != input {
			t.Fatalf("Clean(%q) = %q, want input unchanged", input, got)
		}
	})
}

func TestCleanStripsWrappedWords(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		words := rapid.SliceOfN(rapid.StringMatching(`[A-Za-z0-9]{1,12}`), 1, 8).Draw(t, "words")
		boldIndex := rapid.IntRange(0, len(words)-1).Draw(t, "boldIndex")

		plain := strings.Join(words, " ")

		wrapped := make([]string, len(words))
		copy(wrapped, words)
		wrapped[boldIndex] = "**" + wrapped[boldIndex] + "**"

		if got := markdown.Clean(strings.Join(wrapped, " ")); got != plain {
			t.Fatalf("Clean returned %q, want %q", got, plain)
		}
	})
}

func TestHasEmphasis(t *testing.T) {
	if !markdown.HasEmphasis("a **b** c") {
		t.Fatalf("expected emphasis to be detected")
	}

	if markdown.HasEmphasis("a ** b") {
		t.Fatalf("expected unpaired marker to be ignored")
	}
}
