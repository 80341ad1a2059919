package tailoring

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-tailor/internal/llm"
	"github.com/jonathan/cv-tailor/internal/types"
)

// fakeClient is a canned-response llm.Client for tests.
type fakeClient struct {
	textResponse string
	jsonResponse string
	err          error
}

func (f *fakeClient) GenerateText(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	return f.textResponse, f.err
}

func (f *fakeClient) GenerateJSON(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	return f.jsonResponse, f.err
}

func (f *fakeClient) Close() error { return nil }

func kw(text string, weight float64) types.Keyword {
	return types.NewKeyword(text, weight, types.CategoryTechnical, types.SourceGenerated)
}

func testJob() *types.JobDescription {
	return &types.JobDescription{
		Title:   "Senior Backend Engineer",
		Company: "Acme",
		Keywords: []types.Keyword{
			kw("golang", 0.9), kw("kubernetes", 0.8), kw("postgresql", 0.7),
			kw("docker", 0.6), kw("aws", 0.5),
		},
	}
}

func testProfile() *types.UserProfile {
	return &types.UserProfile{
		Personal: types.PersonalInfo{Name: "Ada Lovelace", Email: "ada@example.com"},
		Skills: []types.Skill{
			{Name: "Golang"}, {Name: "Docker"}, {Name: "Ruby"},
		},
		WorkExperience: []types.WorkExperience{
			{
				Role: "Backend Engineer", Company: "Widgets Inc", StartDate: "2020-01",
				Bullets: []string{"Built golang services on kubernetes", "Maintained postgresql clusters"},
			},
			{
				Role: "Support Engineer", Company: "Legacy Corp", StartDate: "2016-03", EndDate: "2019-12",
				Bullets: []string{"Answered tickets"},
			},
		},
		Projects: []types.Project{
			{Name: "Cluster Tool", Description: "docker orchestration helper", Technologies: []string{"golang", "docker"}},
		},
		Education: []types.Education{
			{Institution: "State University", Degree: "BSc", Field: "CS", StartDate: "2012", EndDate: "2016"},
		},
	}
}

func TestTailorCV_RequiresInputs(t *testing.T) {
	tailor := New(nil)
	_, err := tailor.TailorCV(context.Background(), nil, testJob())
	assert.Error(t, err)
	_, err = tailor.TailorCV(context.Background(), testProfile(), nil)
	assert.Error(t, err)
}

func TestTailorCV_FullPassWithoutClient(t *testing.T) {
	tailor := New(nil)
	cv, err := tailor.TailorCV(context.Background(), testProfile(), testJob())
	require.NoError(t, err)

	assert.NotEmpty(t, cv.Summary)
	assert.NotEmpty(t, cv.Skills)
	assert.NotEmpty(t, cv.Experience)
	assert.Len(t, cv.Projects, 1)
	assert.Len(t, cv.Education, 1)
	assert.GreaterOrEqual(t, cv.RelevanceScore, 0)
	assert.LessOrEqual(t, cv.RelevanceScore, 100)
	assert.NotEmpty(t, cv.MatchedKeywords)
}

func TestSelectExperience_KeepsTopFourTiesByOriginalOrder(t *testing.T) {
	// Six entries: two rich matches, four with identical zero scores
	entries := []types.WorkExperience{
		{Role: "Chef", Bullets: []string{"Cooked meals"}},
		{Role: "Golang Developer", Bullets: []string{"golang golang kubernetes"}},
		{Role: "Writer", Bullets: []string{"Wrote essays"}},
		{Role: "Teacher", Bullets: []string{"Taught classes"}},
		{Role: "Kubernetes Admin", Bullets: []string{"Ran kubernetes"}},
		{Role: "Gardener", Bullets: []string{"Planted trees"}},
	}
	job := testJob()

	selected := selectExperience(entries, job.Keywords)
	require.Len(t, selected, types.MaxExperienceEntries)

	// Highest scorers first
	assert.Equal(t, "Golang Developer", selected[0].Role)
	assert.Equal(t, "Kubernetes Admin", selected[1].Role)
	// Zero-score ties keep original order: Chef before Writer
	assert.Equal(t, "Chef", selected[2].Role)
	assert.Equal(t, "Writer", selected[3].Role)
}

func TestScoreExperience_TitleCountsDouble(t *testing.T) {
	keywords := []types.Keyword{kw("golang", 0.9)}

	titleHit := types.WorkExperience{Role: "Golang Engineer"}
	bulletHit := types.WorkExperience{Role: "Engineer", Bullets: []string{"used golang"}}

	assert.Equal(t, 2, scoreExperience(titleHit, keywords))
	assert.Equal(t, 1, scoreExperience(bulletHit, keywords))
}

func TestRewriteExperience_CapsBulletsAtFour(t *testing.T) {
	tailor := New(nil)
	entries := []types.WorkExperience{{
		Role:    "Engineer",
		Bullets: []string{"one", "two", "three", "four", "five", "six"},
	}}

	tailored := tailor.rewriteExperience(context.Background(), entries, nil)
	require.Len(t, tailored, 1)
	assert.Len(t, tailored[0].Bullets, types.MaxBulletsPerEntry)
	assert.Equal(t, []string{"one", "two", "three", "four"}, tailored[0].Bullets)
}

func TestRewriteExperience_PerBulletFailureKeepsOriginal(t *testing.T) {
	tailor := New(&fakeClient{err: errors.New("unreachable")})
	entries := []types.WorkExperience{{
		Role:    "Engineer",
		Bullets: []string{"Shipped the payments service"},
	}}

	tailored := tailor.rewriteExperience(context.Background(), entries, testJob().Keywords)
	require.Len(t, tailored, 1)
	assert.Equal(t, "Shipped the payments service", tailored[0].Bullets[0])
}

func TestRewriteExperience_UsesRewrittenText(t *testing.T) {
	tailor := New(&fakeClient{textResponse: "Engineered golang services at scale"})
	entries := []types.WorkExperience{{
		Role:    "Engineer",
		Bullets: []string{"did some go work"},
	}}

	tailored := tailor.rewriteExperience(context.Background(), entries, testJob().Keywords)
	assert.Equal(t, "Engineered golang services at scale", tailored[0].Bullets[0])
}

func TestGenerateSummary_FallbackWhenUnreachable(t *testing.T) {
	tailor := New(&fakeClient{err: errors.New("service down")})
	profile := testProfile()
	job := testJob()

	summary := tailor.generateSummary(context.Background(), profile, job)

	assert.Contains(t, summary, "Ada")
	assert.Contains(t, summary, "2 roles")
	assert.Contains(t, summary, "golang")
	assert.Contains(t, summary, "kubernetes")
	assert.Contains(t, summary, "postgresql")
}

func TestFallbackSummary_NoKeywords(t *testing.T) {
	profile := testProfile()
	summary := fallbackSummary(profile, nil)
	assert.Contains(t, summary, "Ada")
	assert.Contains(t, summary, "2 roles")
}

func TestGenerateSkills_PriorityOrderAndCap(t *testing.T) {
	tailor := New(&fakeClient{jsonResponse: `["Terraform", "Golang"]`})

	skills := tailor.generateSkills(context.Background(), []types.Skill{
		{Name: "Ruby"}, {Name: "Golang"}, {Name: "Docker"},
	}, testJob().Keywords)

	// Matching user skills first, then new suggestions, then the rest.
	// "Golang" suggestion is a duplicate and must not appear twice.
	assert.Equal(t, []string{"Golang", "Docker", "Terraform", "Ruby"}, skills)
}

func TestGenerateSkills_CapAtFifteen(t *testing.T) {
	many := make([]types.Skill, 30)
	for i := range many {
		many[i] = types.Skill{Name: fmt.Sprintf("Skill%02d", i)}
	}
	tailor := New(nil)
	skills := tailor.generateSkills(context.Background(), many, nil)
	assert.Len(t, skills, types.MaxSkills)
}

func TestSelectProjects_TopThreeByWeightedOverlap(t *testing.T) {
	projects := []types.Project{
		{Name: "Recipe Blog", Description: "cooking site"},
		{Name: "Golang Monitor", Description: "golang golang metrics", Technologies: []string{"golang"}},
		{Name: "Docker Dashboard", Technologies: []string{"docker", "golang"}},
		{Name: "Photo Album", Description: "family photos"},
	}

	selected := selectProjects(projects, testJob().Keywords)
	require.Len(t, selected, types.MaxProjects)
	assert.Equal(t, "Docker Dashboard", selected[0].Name)
	assert.Equal(t, "Golang Monitor", selected[1].Name)
	assert.Equal(t, "Recipe Blog", selected[2].Name)
}

func TestFormatEducation_DateFormatting(t *testing.T) {
	formatted := formatEducation([]types.Education{
		{Institution: "State University", Degree: "BSc", StartDate: "2012", EndDate: "2016"},
		{Institution: "Online School", Degree: "Cert", StartDate: "2021"},
	})

	require.Len(t, formatted, 2)
	assert.Equal(t, "2012 - 2016", formatted[0].Dates)
	assert.Equal(t, "2021 - Present", formatted[1].Dates)
}

func TestTailorCV_SelectionCapsHoldForLargeInput(t *testing.T) {
	profile := testProfile()
	for i := 0; i < 20; i++ {
		profile.WorkExperience = append(profile.WorkExperience, types.WorkExperience{
			Role:    fmt.Sprintf("Role %d", i),
			Bullets: []string{"b1", "b2", "b3", "b4", "b5", "b6", "b7"},
		})
		profile.Projects = append(profile.Projects, types.Project{Name: fmt.Sprintf("Project %d", i)})
		profile.Skills = append(profile.Skills, types.Skill{Name: fmt.Sprintf("Skill %d", i)})
	}

	tailor := New(nil)
	cv, err := tailor.TailorCV(context.Background(), profile, testJob())
	require.NoError(t, err)

	assert.LessOrEqual(t, len(cv.Experience), types.MaxExperienceEntries)
	for _, exp := range cv.Experience {
		assert.LessOrEqual(t, len(exp.Bullets), types.MaxBulletsPerEntry)
	}
	assert.LessOrEqual(t, len(cv.Skills), types.MaxSkills)
	assert.LessOrEqual(t, len(cv.Projects), types.MaxProjects)
}
