// Package tailoring selects and rewrites profile content to maximize the
// relevance match against a job posting. Generative-text failures degrade
// locally: every rewrite has a deterministic fallback and the pipeline never
// fails because the dependency is unreachable.
package tailoring

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/cv-tailor/internal/llm"
	"github.com/jonathan/cv-tailor/internal/scoring"
	"github.com/jonathan/cv-tailor/internal/types"
)

// Keyword counts used when building prompts.
const (
	rewriteKeywordCount = 5
	summaryKeywordCount = 8
	fallbackKeywordCount = 3
)

// Tailor produces a TailoredCV for a (profile, job) pair. A nil client
// disables all generative rewriting and every section uses its deterministic
// fallback.
type Tailor struct {
	client llm.Client
}

// New creates a Tailor backed by the given generative client.
func New(client llm.Client) *Tailor {
	return &Tailor{client: client}
}

// TailorCV runs the full tailoring pass: experience selection, bullet
// rewriting, summary and skills generation, project selection, education
// formatting, and final scoring. The profile is read-only; the job's keyword
// set must already be populated.
func (t *Tailor) TailorCV(ctx context.Context, profile *types.UserProfile, job *types.JobDescription) (*types.TailoredCV, error) {
	if profile == nil {
		return nil, fmt.Errorf("profile is required")
	}
	if job == nil {
		return nil, fmt.Errorf("job description is required")
	}

	selected := selectExperience(profile.WorkExperience, job.Keywords)
	experience := t.rewriteExperience(ctx, selected, job.Keywords)

	cv := &types.TailoredCV{
		Summary:    t.generateSummary(ctx, profile, job),
		Skills:     t.generateSkills(ctx, profile.Skills, job.Keywords),
		Experience: experience,
		Projects:   selectProjects(profile.Projects, job.Keywords),
		Education:  formatEducation(profile.Education),
	}

	match := scoring.ScoreTailored(cv, job.Keywords)
	cv.RelevanceScore = match.Score
	cv.MatchedKeywords = keywordTexts(match.Matched)

	return cv, nil
}

// topKeywordTexts returns the texts of the first n keywords. The keyword set
// is already ranked descending by extraction.
func topKeywordTexts(keywords []types.Keyword, n int) []string {
	if n > len(keywords) {
		n = len(keywords)
	}
	texts := make([]string, n)
	for i := 0; i < n; i++ {
		texts[i] = keywords[i].Text
	}
	return texts
}

func keywordTexts(keywords []types.Keyword) []string {
	texts := make([]string, len(keywords))
	for i, kw := range keywords {
		texts[i] = kw.Text
	}
	return texts
}

// containsKeyword reports whether text contains the keyword,
// case-insensitively.
func containsKeyword(text, keyword string) bool {
	return strings.Contains(strings.ToLower(text), keyword)
}

// countKeyword counts case-insensitive occurrences of keyword in text.
func countKeyword(text, keyword string) int {
	if keyword == "" {
		return 0
	}
	return strings.Count(strings.ToLower(text), keyword)
}
