package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-tailor/internal/types"
)

func kw(text string, weight float64) types.Keyword {
	return types.NewKeyword(text, weight, types.CategoryTechnical, types.SourceGenerated)
}

func TestScore_EmptyJobKeywordSetIsZero(t *testing.T) {
	result := Score(map[string]bool{"react": true}, nil)
	assert.Equal(t, 0, result.Score)
	assert.Empty(t, result.Matched)
	assert.Empty(t, result.Missing)
}

func TestScore_FullMatchIsHundred(t *testing.T) {
	candidate := map[string]bool{"react": true, "aws": true}
	result := Score(candidate, []types.Keyword{kw("react", 0.9), kw("aws", 0.5)})
	assert.Equal(t, 100, result.Score)
	assert.Len(t, result.Matched, 2)
	assert.Empty(t, result.Missing)
}

func TestScore_NoMatchIsZero(t *testing.T) {
	result := Score(map[string]bool{"cobol": true}, []types.Keyword{kw("react", 0.9)})
	assert.Equal(t, 0, result.Score)
	assert.Len(t, result.Missing, 1)
}

func TestScore_WeightedPartialMatch(t *testing.T) {
	candidate := map[string]bool{"react": true}
	result := Score(candidate, []types.Keyword{kw("react", 0.75), kw("aws", 0.25)})
	// 100 * 0.75 / 1.0 = 75
	assert.Equal(t, 75, result.Score)
}

func TestScore_AlwaysWithinBounds(t *testing.T) {
	candidates := []map[string]bool{
		{},
		{"react": true},
		{"react": true, "aws": true, "docker": true},
	}
	jobSets := [][]types.Keyword{
		{},
		{kw("react", 0.0)},
		{kw("react", 1.0), kw("aws", 1.0)},
		{kw("docker", 0.001)},
	}
	for _, c := range candidates {
		for _, j := range jobSets {
			result := Score(c, j)
			assert.GreaterOrEqual(t, result.Score, 0)
			assert.LessOrEqual(t, result.Score, 100)
		}
	}
}

func TestScore_Deterministic(t *testing.T) {
	candidate := map[string]bool{"react": true, "docker": true}
	job := []types.Keyword{kw("react", 0.8), kw("docker", 0.8), kw("aws", 0.4)}

	first := Score(candidate, job)
	second := Score(candidate, job)
	assert.Equal(t, first, second)
}

func TestScore_MatchedSortedByStrengthDescending(t *testing.T) {
	candidate := map[string]bool{"react": true, "aws": true, "docker": true}
	job := []types.Keyword{kw("aws", 0.3), kw("react", 0.9), kw("docker", 0.6)}

	result := Score(candidate, job)
	require.Len(t, result.Matched, 3)
	assert.Equal(t, "react", result.Matched[0].Text)
	assert.Equal(t, "docker", result.Matched[1].Text)
	assert.Equal(t, "aws", result.Matched[2].Text)
}

func TestScoreProfile_ScenarioPartialOverlap(t *testing.T) {
	// Job: "...React, Node.js, AWS, 5 years..." / profile skills: JavaScript, React
	profile := &types.UserProfile{
		Skills: []types.Skill{{Name: "JavaScript"}, {Name: "React"}},
	}
	job := []types.Keyword{kw("react", 0.9), kw("node.js", 0.8), kw("aws", 0.7)}

	result := ScoreProfile(profile, job)

	matchedTexts := make([]string, len(result.Matched))
	for i, m := range result.Matched {
		matchedTexts[i] = m.Text
	}
	missingTexts := make([]string, len(result.Missing))
	for i, m := range result.Missing {
		missingTexts[i] = m.Text
	}

	assert.Contains(t, matchedTexts, "react")
	assert.Contains(t, missingTexts, "aws")
	assert.Contains(t, missingTexts, "node.js")
	assert.Greater(t, result.Score, 0)
	assert.Less(t, result.Score, 100)
}

func TestDeriveProfileKeywords_FiltersShortTokensAndStopWords(t *testing.T) {
	profile := &types.UserProfile{
		WorkExperience: []types.WorkExperience{{
			Role:    "Engineer",
			Bullets: []string{"Worked with the team to ship a new API"},
		}},
	}
	set := DeriveProfileKeywords(profile)
	assert.False(t, set["the"])
	assert.False(t, set["api"]) // 3 chars, filtered as a token
	assert.False(t, set["team"])
	assert.True(t, set["ship"])
	assert.True(t, set["engineer"])
}

func TestDeriveProfileKeywords_WholeSkillNamesSurvive(t *testing.T) {
	profile := &types.UserProfile{
		Skills: []types.Skill{{Name: "Node.js"}, {Name: "CI/CD"}},
		Projects: []types.Project{{
			Name:         "Pipeline",
			Technologies: []string{"REST API"},
		}},
	}
	set := DeriveProfileKeywords(profile)
	assert.True(t, set["node.js"])
	assert.True(t, set["ci/cd"])
	assert.True(t, set["rest api"])
}

func TestDeriveTailoredKeywords_CoversAllSections(t *testing.T) {
	cv := &types.TailoredCV{
		Summary: "Seasoned platform engineer",
		Skills:  []string{"Kubernetes"},
		Experience: []types.TailoredExperience{{
			Role:    "Platform Engineer",
			Bullets: []string{"Migrated services to docker containers"},
		}},
		Projects: []types.TailoredProject{{
			Description:  "Streaming analytics",
			Technologies: []string{"Kafka"},
		}},
	}
	set := DeriveTailoredKeywords(cv)
	assert.True(t, set["kubernetes"])
	assert.True(t, set["docker"])
	assert.True(t, set["kafka"])
	assert.True(t, set["platform"])
	assert.True(t, set["seasoned"])
}
