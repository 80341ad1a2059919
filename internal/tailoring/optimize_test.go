package tailoring

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-tailor/internal/types"
)

func tailoredFixture() *types.TailoredCV {
	return &types.TailoredCV{
		Summary: "Backend engineer",
		Skills:  []string{"Golang"},
		Experience: []types.TailoredExperience{{
			Role:    "Backend Engineer",
			Bullets: []string{"Built golang services"},
		}},
	}
}

func TestOptimize_AtTargetReturnsUnchanged(t *testing.T) {
	tailor := New(&fakeClient{textResponse: "should never be used"})
	cv := tailoredFixture()
	job := &types.JobDescription{Keywords: []types.Keyword{kw("golang", 1.0)}}

	result := tailor.Optimize(context.Background(), cv, job, 50)

	assert.False(t, result.Optimized)
	assert.Equal(t, 0, result.Delta)
	assert.Same(t, cv, result.CV)
	assert.Equal(t, result.PreviousScore, result.NewScore)
}

func TestOptimize_SinglePassBelowTarget(t *testing.T) {
	tailor := New(&fakeClient{
		textResponse: "Deployed golang services to kubernetes clusters",
		jsonResponse: `["Kubernetes"]`,
	})
	cv := tailoredFixture()
	job := &types.JobDescription{Keywords: []types.Keyword{
		kw("golang", 0.5), kw("kubernetes", 0.5),
	}}

	result := tailor.Optimize(context.Background(), cv, job, 90)

	require.True(t, result.Optimized)
	assert.NotSame(t, cv, result.CV)
	assert.Contains(t, result.CV.Skills, "Kubernetes")
	assert.Equal(t, result.NewScore-result.PreviousScore, result.Delta)
	assert.Greater(t, result.NewScore, result.PreviousScore)
	// The caller's content was never mutated
	assert.Equal(t, []string{"Golang"}, cv.Skills)
	assert.Equal(t, "Built golang services", cv.Experience[0].Bullets[0])
}

func TestOptimize_DependencyFailureDegradesGracefully(t *testing.T) {
	tailor := New(&fakeClient{err: errors.New("unreachable")})
	cv := tailoredFixture()
	job := &types.JobDescription{Keywords: []types.Keyword{
		kw("golang", 0.5), kw("terraform", 0.5),
	}}

	result := tailor.Optimize(context.Background(), cv, job, 90)

	require.True(t, result.Optimized)
	// Nothing improved, but nothing broke either
	assert.Equal(t, result.PreviousScore, result.NewScore)
	assert.Equal(t, "Built golang services", result.CV.Experience[0].Bullets[0])
}
