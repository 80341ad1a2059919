package ingestion

import (
	"regexp"
	"strings"
)

var (
	innerSpaceRe = regexp.MustCompile(`\s+`)
	blankRunsRe  = regexp.MustCompile(`\n\n\n+`)
)

// NormalizeText cleans raw posting text while keeping its structure: line
// endings become LF, trailing whitespace goes, runs of spaces collapse, and
// blank-line runs shrink to one separator. Headings and bullet lines keep
// their markers so section boundaries stay visible to extraction.
func NormalizeText(raw string) string {
	if raw == "" {
		return ""
	}

	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	raw = strings.ReplaceAll(raw, "\r", "\n")

	lines := strings.Split(raw, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		cleaned = append(cleaned, normalizeLine(line))
	}

	result := strings.Join(cleaned, "\n")
	result = blankRunsRe.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}

func normalizeLine(line string) string {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return ""
	}

	// Headings keep their marker, lose leading indentation.
	if strings.HasPrefix(trimmed, "#") {
		return trimmed
	}

	// Bullet markers are unified so extraction sees one list shape.
	for _, marker := range []string{"- ", "* ", "• ", "· "} {
		if strings.HasPrefix(trimmed, marker) {
			return "- " + innerSpaceRe.ReplaceAllString(strings.TrimPrefix(trimmed, marker), " ")
		}
	}

	return innerSpaceRe.ReplaceAllString(trimmed, " ")
}
