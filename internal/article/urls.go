package article

import (
	"fmt"
	"strings"

	"mvdan.cc/xurls/v2"
)

// FindURLs returns the http(s) URLs found in text, deduplicated, in order of
// appearance.
func FindURLs(text string) ([]string, error) {
	webURLRe, err := xurls.StrictMatchingScheme(`https?://`)
	if err != nil {
		return nil, fmt.Errorf("create regexp: %w", err)
	}

	matches := webURLRe.FindAllString(text, -1)

	urls := make([]string, 0, len(matches))
	seen := make(map[string]struct{}, len(matches))

	for _, m := range matches {
		m = strings.TrimSpace(m)
		if m == "" {
			continue
		}

		if _, ok := seen[m]; ok {
			continue
		}

		seen[m] = struct{}{}
		urls = append(urls, m)
	}

	return urls, nil
}
