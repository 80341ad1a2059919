package rendering

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/cv-tailor/internal/types"
)

// multiRenderConcurrency caps how many compiler subprocesses one multi-render
// call may run at once.
const multiRenderConcurrency = 2

// MultiResult is one template's outcome from a multi-template render.
// Exactly one of Result and Err is set.
type MultiResult struct {
	Template string
	Result   *types.RenderResult
	Err      error
}

// RenderAll renders the same CV with each named template concurrently. Each
// template is an independent job: one failing leaves the others untouched.
// Results are returned in template order.
func (r *Renderer) RenderAll(ctx context.Context, req *types.RenderRequest, templates []string) []MultiResult {
	if len(templates) == 0 {
		templates = []string{req.Template}
	}

	results := make([]MultiResult, len(templates))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(multiRenderConcurrency)

	for i, name := range templates {
		group.Go(func() error {
			perTemplate := *req
			perTemplate.Template = name

			result, err := r.Render(groupCtx, &perTemplate)
			results[i] = MultiResult{Template: sanitizeTemplate(name), Result: result, Err: err}
			return nil
		})
	}

	// Goroutines never return errors, so Wait only synchronizes.
	_ = group.Wait()

	return results
}
