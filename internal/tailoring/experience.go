package tailoring

import (
	"context"
	"log"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/cv-tailor/internal/llm"
	"github.com/jonathan/cv-tailor/internal/prompts"
	"github.com/jonathan/cv-tailor/internal/types"
)

// Scoring weights for experience selection. A keyword hit in the role title
// counts double; bullet-text hits count once per occurrence.
const (
	titleOverlapWeight  = 2
	bulletOverlapWeight = 1
)

// rewriteConcurrency bounds parallel bullet rewrite calls.
const rewriteConcurrency = 4

// scoredExperience pairs an entry with its selection score and original
// position for stable tie-breaking.
type scoredExperience struct {
	entry types.WorkExperience
	score int
	index int
}

// selectExperience scores each work-experience entry against the job
// keywords and keeps the top MaxExperienceEntries. Ties are broken by
// original order.
func selectExperience(entries []types.WorkExperience, jobKeywords []types.Keyword) []types.WorkExperience {
	scored := make([]scoredExperience, len(entries))
	for i, entry := range entries {
		scored[i] = scoredExperience{
			entry: entry,
			score: scoreExperience(entry, jobKeywords),
			index: i,
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}
		return scored[i].index < scored[j].index
	})

	limit := types.MaxExperienceEntries
	if len(scored) < limit {
		limit = len(scored)
	}

	selected := make([]types.WorkExperience, limit)
	for i := 0; i < limit; i++ {
		selected[i] = scored[i].entry
	}
	return selected
}

// scoreExperience computes 2×(role-title keyword overlaps) + 1×(bullet-text
// keyword occurrences).
func scoreExperience(entry types.WorkExperience, jobKeywords []types.Keyword) int {
	score := 0
	for _, kw := range jobKeywords {
		if containsKeyword(entry.Role, kw.Text) {
			score += titleOverlapWeight
		}
		for _, bullet := range entry.Bullets {
			score += bulletOverlapWeight * countKeyword(bullet, kw.Text)
		}
	}
	return score
}

// rewriteExperience caps each selected entry at MaxBulletsPerEntry bullets
// and rewrites them concurrently. A per-bullet rewrite failure keeps the
// original bullet text; it never fails the entry or its siblings.
func (t *Tailor) rewriteExperience(ctx context.Context, selected []types.WorkExperience, jobKeywords []types.Keyword) []types.TailoredExperience {
	tailored := make([]types.TailoredExperience, len(selected))
	for i, entry := range selected {
		bullets := entry.Bullets
		if len(bullets) > types.MaxBulletsPerEntry {
			bullets = bullets[:types.MaxBulletsPerEntry]
		}
		rewritten := make([]string, len(bullets))
		copy(rewritten, bullets)

		tailored[i] = types.TailoredExperience{
			Role:      entry.Role,
			Company:   entry.Company,
			Location:  entry.Location,
			StartDate: entry.StartDate,
			EndDate:   entry.EndDate,
			Bullets:   rewritten,
		}
	}

	if t.client == nil {
		return tailored
	}

	topKeywords := strings.Join(topKeywordTexts(jobKeywords, rewriteKeywordCount), ", ")

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(rewriteConcurrency)

	for i := range tailored {
		for j := range tailored[i].Bullets {
			g.Go(func() error {
				original := tailored[i].Bullets[j]
				rewritten, err := t.rewriteBullet(ctx, original, topKeywords)
				if err != nil {
					log.Printf("tailoring: bullet rewrite failed, keeping original: %v", err)
					return nil
				}
				tailored[i].Bullets[j] = rewritten
				return nil
			})
		}
	}

	_ = g.Wait()
	return tailored
}

// rewriteBullet asks the generative-text dependency for an active-voice
// rewrite emphasizing the top job keywords while retaining metrics.
func (t *Tailor) rewriteBullet(ctx context.Context, bullet, topKeywords string) (string, error) {
	template := prompts.MustGet("tailoring.json", "rewrite-bullet")
	prompt := prompts.Format(template, map[string]string{
		"BulletText": bullet,
		"Keywords":   topKeywords,
	})

	responseText, err := t.client.GenerateText(ctx, prompt, llm.TierAdvanced)
	if err != nil {
		return "", err
	}

	rewritten := strings.TrimSpace(strings.Trim(strings.TrimSpace(responseText), `"`))
	if rewritten == "" {
		return bullet, nil
	}
	return rewritten, nil
}
