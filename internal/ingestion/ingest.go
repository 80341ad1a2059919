// Package ingestion turns raw posting input, pasted text, files, or URLs,
// into normalized job descriptions ready for keyword extraction.
package ingestion

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/jonathan/cv-tailor/internal/fetch"
	"github.com/jonathan/cv-tailor/internal/types"
)

// MinPostingLength is the minimum normalized posting length accepted.
// Anything shorter cannot yield a meaningful keyword set.
const MinPostingLength = 50

// ValidationError represents rejected posting input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// PostingFetcher is the slice of the fetch client ingestion needs.
type PostingFetcher interface {
	FetchPosting(ctx context.Context, url string) (*fetch.Posting, error)
}

// FromText normalizes pasted posting text into a job description.
func FromText(title, company, raw string) (*types.JobDescription, error) {
	normalized := NormalizeText(raw)
	if len(normalized) < MinPostingLength {
		return nil, &ValidationError{
			Field:   "description",
			Message: fmt.Sprintf("posting text must be at least %d characters", MinPostingLength),
		}
	}

	return &types.JobDescription{
		Title:       strings.TrimSpace(title),
		Company:     strings.TrimSpace(company),
		Description: normalized,
	}, nil
}

// FromFile reads a posting from a local text file.
func FromFile(path, title, company string) (*types.JobDescription, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read posting file: %w", err)
	}
	return FromText(title, company, string(content))
}

// FromURL fetches a posting page and normalizes its extracted text. Title and
// company stay empty unless the caller supplies them; board pages rarely
// expose them in a reliable place.
func FromURL(ctx context.Context, fetcher PostingFetcher, url, title, company string) (*types.JobDescription, error) {
	posting, err := fetcher.FetchPosting(ctx, url)
	if err != nil {
		return nil, err
	}
	return FromText(title, company, posting.Text)
}
