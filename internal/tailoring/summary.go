package tailoring

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/jonathan/cv-tailor/internal/llm"
	"github.com/jonathan/cv-tailor/internal/prompts"
	"github.com/jonathan/cv-tailor/internal/types"
)

// generateSummary produces the 3-line professional summary via the
// generative-text dependency, falling back to a deterministic template on
// any failure.
func (t *Tailor) generateSummary(ctx context.Context, profile *types.UserProfile, job *types.JobDescription) string {
	if t.client == nil {
		return fallbackSummary(profile, job.Keywords)
	}

	summary, err := t.summaryFromLLM(ctx, profile.Personal.Name, len(profile.WorkExperience), job, job.Keywords)
	if err != nil {
		log.Printf("tailoring: summary generation failed, using fallback: %v", err)
		return fallbackSummary(profile, job.Keywords)
	}
	return summary
}

// summaryFromLLM asks the generative-text dependency for a summary. An empty
// response is treated as an error so callers always get usable text or a
// failure they can degrade from.
func (t *Tailor) summaryFromLLM(ctx context.Context, name string, experienceCount int, job *types.JobDescription, keywords []types.Keyword) (string, error) {
	template := prompts.MustGet("tailoring.json", "generate-summary")
	prompt := prompts.Format(template, map[string]string{
		"Name":            name,
		"ExperienceCount": fmt.Sprintf("%d", experienceCount),
		"JobTitle":        job.Title,
		"Company":         job.Company,
		"Keywords":        strings.Join(topKeywordTexts(keywords, summaryKeywordCount), ", "),
	})

	responseText, err := t.client.GenerateText(ctx, prompt, llm.TierStandard)
	if err != nil {
		return "", err
	}

	summary := strings.TrimSpace(responseText)
	if summary == "" {
		return "", fmt.Errorf("empty summary response")
	}
	return summary, nil
}

// fallbackSummary composes a deterministic summary from the profile's first
// name, experience count and the top job keywords.
func fallbackSummary(profile *types.UserProfile, jobKeywords []types.Keyword) string {
	name := profile.FirstName()
	if name == "" {
		name = "The candidate"
	}

	count := len(profile.WorkExperience)
	roleWord := "roles"
	if count == 1 {
		roleWord = "role"
	}

	top := topKeywordTexts(jobKeywords, fallbackKeywordCount)
	if len(top) == 0 {
		return fmt.Sprintf("%s is an experienced professional with %d %s of relevant experience.", name, count, roleWord)
	}

	return fmt.Sprintf("%s is an experienced professional with %d %s of relevant experience, with strengths in %s.",
		name, count, roleWord, strings.Join(top, ", "))
}
