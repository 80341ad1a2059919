package tailoring

import (
	"context"
	"log"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/cv-tailor/internal/scoring"
	"github.com/jonathan/cv-tailor/internal/types"
)

// OptimizeResult reports the outcome of a single optimization pass.
type OptimizeResult struct {
	CV            *types.TailoredCV `json:"cv"`
	PreviousScore int               `json:"previousScore"`
	NewScore      int               `json:"newScore"`
	Delta         int               `json:"delta"`
	// Optimized is false when the current score already met the target and
	// the content was returned unchanged.
	Optimized bool `json:"optimized"`
}

// Optimize performs at most one additional rewrite pass over bullets, skills
// and summary using the current missing-keyword set. If the current score
// already meets targetScore the content is returned unchanged. It reports the
// score delta and never loops toward convergence.
func (t *Tailor) Optimize(ctx context.Context, cv *types.TailoredCV, job *types.JobDescription, targetScore int) *OptimizeResult {
	current := scoring.ScoreTailored(cv, job.Keywords)

	if current.Score >= targetScore {
		return &OptimizeResult{
			CV:            cv,
			PreviousScore: current.Score,
			NewScore:      current.Score,
			Optimized:     false,
		}
	}

	optimized := cloneCV(cv)
	missing := current.Missing

	t.reworkBullets(ctx, optimized, missing)
	t.reworkSkills(ctx, optimized, missing)
	t.reworkSummary(ctx, optimized, job, missing)

	after := scoring.ScoreTailored(optimized, job.Keywords)
	optimized.RelevanceScore = after.Score
	optimized.MatchedKeywords = keywordTexts(after.Matched)

	return &OptimizeResult{
		CV:            optimized,
		PreviousScore: current.Score,
		NewScore:      after.Score,
		Delta:         after.Score - current.Score,
		Optimized:     true,
	}
}

// reworkBullets rewrites each bullet emphasizing the missing keywords.
// Per-bullet failures keep the current text.
func (t *Tailor) reworkBullets(ctx context.Context, cv *types.TailoredCV, missing []types.Keyword) {
	if t.client == nil || len(missing) == 0 {
		return
	}

	missingTop := strings.Join(topKeywordTexts(missing, rewriteKeywordCount), ", ")

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(rewriteConcurrency)

	for i := range cv.Experience {
		for j := range cv.Experience[i].Bullets {
			g.Go(func() error {
				rewritten, err := t.rewriteBullet(ctx, cv.Experience[i].Bullets[j], missingTop)
				if err != nil {
					log.Printf("tailoring: optimize bullet rewrite failed, keeping current: %v", err)
					return nil
				}
				cv.Experience[i].Bullets[j] = rewritten
				return nil
			})
		}
	}

	_ = g.Wait()
}

// reworkSkills asks for suggestions against the missing-keyword set and
// merges new ones in, still capped at MaxSkills.
func (t *Tailor) reworkSkills(ctx context.Context, cv *types.TailoredCV, missing []types.Keyword) {
	currentSkills := make([]types.Skill, len(cv.Skills))
	for i, name := range cv.Skills {
		currentSkills[i] = types.Skill{Name: name}
	}

	suggestions := t.suggestSkills(ctx, currentSkills, missing)
	if len(suggestions) == 0 {
		return
	}

	seen := make(map[string]bool, len(cv.Skills))
	for _, name := range cv.Skills {
		seen[strings.ToLower(name)] = true
	}

	for _, suggestion := range suggestions {
		suggestion = strings.TrimSpace(suggestion)
		key := strings.ToLower(suggestion)
		if suggestion == "" || seen[key] || len(cv.Skills) >= types.MaxSkills {
			continue
		}
		seen[key] = true
		cv.Skills = append(cv.Skills, suggestion)
	}
}

// reworkSummary regenerates the summary with the missing keywords leading
// the keyword list. On failure the current summary is kept; the generic
// fallback is never substituted for already-tailored text.
func (t *Tailor) reworkSummary(ctx context.Context, cv *types.TailoredCV, job *types.JobDescription, missing []types.Keyword) {
	if t.client == nil || len(missing) == 0 {
		return
	}

	reordered := make([]types.Keyword, 0, len(job.Keywords))
	reordered = append(reordered, missing...)
	missingSet := make(map[string]bool, len(missing))
	for _, kw := range missing {
		missingSet[kw.Text] = true
	}
	for _, kw := range job.Keywords {
		if !missingSet[kw.Text] {
			reordered = append(reordered, kw)
		}
	}

	summary, err := t.summaryFromLLM(ctx, "", len(cv.Experience), job, reordered)
	if err != nil {
		log.Printf("tailoring: optimize summary rewrite failed, keeping current: %v", err)
		return
	}
	cv.Summary = summary
}

// cloneCV deep-copies a TailoredCV so optimization never mutates the
// caller's content.
func cloneCV(cv *types.TailoredCV) *types.TailoredCV {
	clone := *cv

	clone.Skills = append([]string(nil), cv.Skills...)
	clone.MatchedKeywords = append([]string(nil), cv.MatchedKeywords...)
	clone.Projects = append([]types.TailoredProject(nil), cv.Projects...)
	clone.Education = append([]types.FormattedEducation(nil), cv.Education...)

	clone.Experience = make([]types.TailoredExperience, len(cv.Experience))
	for i, exp := range cv.Experience {
		clone.Experience[i] = exp
		clone.Experience[i].Bullets = append([]string(nil), exp.Bullets...)
	}

	return &clone
}
