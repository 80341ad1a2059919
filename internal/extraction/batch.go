package extraction

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/cv-tailor/internal/types"
)

// batchConcurrency bounds how many postings are extracted at once.
const batchConcurrency = 4

// BatchItem is one job posting submitted for batch extraction.
type BatchItem struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Description string `json:"description"`
}

// BatchResult is the per-unit outcome of a batch extraction. Exactly one of
// Job and Err is set.
type BatchResult struct {
	Index int
	Job   *types.JobDescription
	Err   error
}

// ExtractBatch extracts keywords for several postings concurrently. Units
// have no ordering dependency; one unit's failure never aborts its siblings.
// The returned slice is indexed like the input and always complete.
func (e *Extractor) ExtractBatch(ctx context.Context, items []BatchItem) []BatchResult {
	results := make([]BatchResult, len(items))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(batchConcurrency)

	for i, item := range items {
		g.Go(func() error {
			results[i] = e.extractOne(ctx, i, item)
			// Unit failures are captured in the result, never propagated,
			// so sibling units keep running.
			return nil
		})
	}

	_ = g.Wait()
	return results
}

func (e *Extractor) extractOne(ctx context.Context, index int, item BatchItem) BatchResult {
	text := strings.TrimSpace(item.Description)
	if len(text) < MinJobTextLength {
		return BatchResult{
			Index: index,
			Err: &ValidationError{
				Field:   "description",
				Message: fmt.Sprintf("job description must be at least %d characters", MinJobTextLength),
			},
		}
	}

	job := &types.JobDescription{
		Title:       item.Title,
		Company:     item.Company,
		Description: item.Description,
	}
	e.ExtractInto(ctx, job)

	return BatchResult{Index: index, Job: job}
}
