package tailoring

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"github.com/jonathan/cv-tailor/internal/llm"
	"github.com/jonathan/cv-tailor/internal/prompts"
	"github.com/jonathan/cv-tailor/internal/types"
)

// generateSkills assembles the tailored skill list in priority order:
// user skills matching job keywords first, then generative suggestions not
// already present, then the remaining user skills. Capped at MaxSkills.
func (t *Tailor) generateSkills(ctx context.Context, userSkills []types.Skill, jobKeywords []types.Keyword) []string {
	jobKeywordSet := make(map[string]bool, len(jobKeywords))
	for _, kw := range jobKeywords {
		jobKeywordSet[kw.Text] = true
	}

	skills := make([]string, 0, types.MaxSkills)
	seen := make(map[string]bool)

	add := func(name string) {
		name = strings.TrimSpace(name)
		key := strings.ToLower(name)
		if name == "" || seen[key] || len(skills) >= types.MaxSkills {
			return
		}
		seen[key] = true
		skills = append(skills, name)
	}

	// (a) user skills matching job keywords
	for _, skill := range userSkills {
		if jobKeywordSet[strings.ToLower(strings.TrimSpace(skill.Name))] {
			add(skill.Name)
		}
	}

	// (b) generative suggestions not already present
	for _, suggestion := range t.suggestSkills(ctx, userSkills, jobKeywords) {
		add(suggestion)
	}

	// (c) remaining user skills
	for _, skill := range userSkills {
		add(skill.Name)
	}

	return skills
}

// suggestSkills asks the generative-text dependency for additional plausible
// skills. Failures or unparsable responses yield no suggestions rather than
// an error.
func (t *Tailor) suggestSkills(ctx context.Context, userSkills []types.Skill, jobKeywords []types.Keyword) []string {
	if t.client == nil {
		return nil
	}

	names := make([]string, len(userSkills))
	for i, skill := range userSkills {
		names[i] = skill.Name
	}

	template := prompts.MustGet("tailoring.json", "suggest-skills")
	prompt := prompts.Format(template, map[string]string{
		"Keywords": strings.Join(keywordTexts(jobKeywords), ", "),
		"Skills":   strings.Join(names, ", "),
	})

	responseText, err := t.client.GenerateJSON(ctx, prompt, llm.TierLite)
	if err != nil {
		log.Printf("tailoring: skill suggestion failed, skipping: %v", err)
		return nil
	}

	var suggestions []string
	if err := json.Unmarshal([]byte(responseText), &suggestions); err != nil {
		log.Printf("tailoring: unparsable skill suggestions, skipping: %v", err)
		return nil
	}

	return suggestions
}
