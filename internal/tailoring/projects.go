package tailoring

import (
	"sort"
	"strings"

	"github.com/jonathan/cv-tailor/internal/types"
)

// Scoring weights for project selection. Technology tags are the strongest
// signal, then the project name, then description occurrences.
const (
	projectNameWeight = 2
	projectDescWeight = 1
	projectTechWeight = 3
)

type scoredProject struct {
	project types.Project
	score   int
	index   int
}

// selectProjects scores projects by weighted keyword overlap across name,
// description and technology tags, keeping the top MaxProjects. Ties are
// broken by original order.
func selectProjects(projects []types.Project, jobKeywords []types.Keyword) []types.TailoredProject {
	scored := make([]scoredProject, len(projects))
	for i, project := range projects {
		scored[i] = scoredProject{
			project: project,
			score:   scoreProject(project, jobKeywords),
			index:   i,
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}
		return scored[i].index < scored[j].index
	})

	limit := types.MaxProjects
	if len(scored) < limit {
		limit = len(scored)
	}

	selected := make([]types.TailoredProject, limit)
	for i := 0; i < limit; i++ {
		p := scored[i].project
		selected[i] = types.TailoredProject{
			Name:         p.Name,
			Description:  p.Description,
			Technologies: p.Technologies,
			URL:          p.URL,
		}
	}
	return selected
}

// scoreProject computes 2×(name overlaps) + 1×(description occurrences) +
// 3×(matching technology tags).
func scoreProject(project types.Project, jobKeywords []types.Keyword) int {
	score := 0
	for _, kw := range jobKeywords {
		if containsKeyword(project.Name, kw.Text) {
			score += projectNameWeight
		}
		score += projectDescWeight * countKeyword(project.Description, kw.Text)
		for _, tech := range project.Technologies {
			if strings.EqualFold(strings.TrimSpace(tech), kw.Text) {
				score += projectTechWeight
			}
		}
	}
	return score
}
