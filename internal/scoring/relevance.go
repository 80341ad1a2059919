// Package scoring computes the relevance match between a candidate's derived
// keyword set and a job's weighted keyword set. Everything here is pure and
// deterministic: identical inputs always produce identical output.
package scoring

import (
	"math"
	"sort"

	"github.com/jonathan/cv-tailor/internal/types"
)

// MatchResult is the outcome of scoring a candidate keyword set against a
// job keyword set.
type MatchResult struct {
	// Score is the weighted match percentage, always within [0,100].
	Score int
	// Matched holds the job keywords present in the candidate set,
	// sorted by match strength (weight) descending.
	Matched []types.Keyword
	// Missing holds the complement: job keywords absent from the
	// candidate set, sorted by weight descending.
	Missing []types.Keyword
}

// Score computes the weighted match between a candidate keyword set and the
// job keywords. Matching is exact, case-insensitive string equality only; the
// score is round(100 × Σ matched weights / Σ all weights), defined as 0 for
// an empty job keyword set.
func Score(candidateKeywords map[string]bool, jobKeywords []types.Keyword) MatchResult {
	result := MatchResult{
		Matched: []types.Keyword{},
		Missing: []types.Keyword{},
	}

	if len(jobKeywords) == 0 {
		return result
	}

	totalWeight := 0.0
	matchedWeight := 0.0
	for _, kw := range jobKeywords {
		totalWeight += kw.Weight
		if candidateKeywords[kw.Text] {
			matchedWeight += kw.Weight
			result.Matched = append(result.Matched, kw)
		} else {
			result.Missing = append(result.Missing, kw)
		}
	}

	if totalWeight > 0 {
		result.Score = clampScore(int(math.Round(100 * matchedWeight / totalWeight)))
	}

	sortByStrength(result.Matched)
	sortByStrength(result.Missing)

	return result
}

// ScoreProfile derives the candidate keyword set from a profile and scores it
// against the job keywords.
func ScoreProfile(profile *types.UserProfile, jobKeywords []types.Keyword) MatchResult {
	return Score(DeriveProfileKeywords(profile), jobKeywords)
}

// ScoreTailored derives the candidate keyword set from assembled tailored
// content and scores it against the job keywords.
func ScoreTailored(cv *types.TailoredCV, jobKeywords []types.Keyword) MatchResult {
	return Score(DeriveTailoredKeywords(cv), jobKeywords)
}

// sortByStrength orders keywords by weight descending, breaking ties
// alphabetically so output is deterministic.
func sortByStrength(keywords []types.Keyword) {
	sort.SliceStable(keywords, func(i, j int) bool {
		if keywords[i].Weight != keywords[j].Weight {
			return keywords[i].Weight > keywords[j].Weight
		}
		return keywords[i].Text < keywords[j].Text
	})
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
