package extraction

import (
	"sort"
	"strings"

	"github.com/jonathan/cv-tailor/internal/types"
)

// mergeKeywords combines AI-sourced and pattern-sourced keywords with
// case-insensitive deduplication. AI-sourced keywords win on conflict.
func mergeKeywords(aiKeywords, patternKeywords []types.Keyword) []types.Keyword {
	merged := make([]types.Keyword, 0, len(aiKeywords)+len(patternKeywords))
	seen := make(map[string]bool)

	for _, kw := range aiKeywords {
		if kw.Text == "" || seen[kw.Text] {
			continue
		}
		seen[kw.Text] = true
		merged = append(merged, kw)
	}

	for _, kw := range patternKeywords {
		if kw.Text == "" || seen[kw.Text] {
			continue
		}
		seen[kw.Text] = true
		merged = append(merged, kw)
	}

	return merged
}

// rankKeywords re-scores merged keywords, sorts them by weight descending and
// truncates to the top limit. The score blend is
// baseWeight + frequencyBonus×occurrences + aiSourceBonus for AI-sourced
// keywords, clamped back into [0,1].
func rankKeywords(keywords []types.Keyword, jobText string, limit int) []types.Keyword {
	lowerText := strings.ToLower(jobText)

	ranked := make([]types.Keyword, len(keywords))
	for i, kw := range keywords {
		score := kw.Weight + frequencyBonus*float64(countOccurrences(lowerText, kw.Text))
		if kw.Source == types.SourceGenerated {
			score += aiSourceBonus
		}
		kw.Weight = types.ClampWeight(score)
		ranked[i] = kw
	}

	// Stable sort keeps merge order (AI first) for equal weights
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Weight > ranked[j].Weight
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	return ranked
}

// countOccurrences counts non-overlapping occurrences of a keyword in the
// lowercased posting text.
func countOccurrences(lowerText, keyword string) int {
	if keyword == "" || lowerText == "" {
		return 0
	}
	return strings.Count(lowerText, keyword)
}
