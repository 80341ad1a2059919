package fetch

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ExtractPostingText parses HTML and returns the posting body text. Noise
// elements are removed first, then the board's content selectors are tried
// in order, falling back to the whole body.
func ExtractPostingText(html string, board Board) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("nav, footer, header, script, style, noscript, .ad, .ads, .sidebar, .popup").Remove()
	if noise := noiseSelectors(board); len(noise) > 0 {
		doc.Find(strings.Join(noise, ", ")).Remove()
	}

	var content *goquery.Selection
	for _, selector := range contentSelectors(board) {
		if found := doc.Find(selector); found.Length() > 0 {
			content = found.First()
			break
		}
	}
	if content == nil {
		content = doc.Find("body")
	}

	return collapseWhitespace(content.Text()), nil
}

// collapseWhitespace trims every line and drops blank ones.
func collapseWhitespace(text string) string {
	lines := strings.Split(text, "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}
