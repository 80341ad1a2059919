package ingestion

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-tailor/internal/fetch"
)

const samplePosting = `Senior Go Engineer

Requirements:
- 5+ years of Go experience
- Strong PostgreSQL and Kubernetes background
- Excellent communication skills`

func TestNormalizeText_CollapsesWhitespace(t *testing.T) {
	raw := "Line   with    extra spaces\r\n\r\n\r\n\r\nNext   section\t\t"

	normalized := NormalizeText(raw)

	assert.Equal(t, "Line with extra spaces\n\nNext section", normalized)
}

func TestNormalizeText_UnifiesBulletMarkers(t *testing.T) {
	raw := "* first\n• second\n· third\n- fourth"

	normalized := NormalizeText(raw)

	for _, line := range strings.Split(normalized, "\n") {
		assert.True(t, strings.HasPrefix(line, "- "), "line %q", line)
	}
}

func TestNormalizeText_KeepsHeadings(t *testing.T) {
	normalized := NormalizeText("   ## Requirements\ntext")
	assert.Equal(t, "## Requirements\ntext", normalized)
}

func TestFromText_Success(t *testing.T) {
	job, err := FromText("Senior Go Engineer", "Acme", samplePosting)
	require.NoError(t, err)

	assert.Equal(t, "Senior Go Engineer", job.Title)
	assert.Equal(t, "Acme", job.Company)
	assert.Contains(t, job.Description, "PostgreSQL")
	assert.Empty(t, job.Keywords)
}

func TestFromText_TooShortRejected(t *testing.T) {
	_, err := FromText("", "", "hire me")

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "description", validationErr.Field)
}

func TestFromFile_ReadsAndNormalizes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "posting.txt")
	require.NoError(t, os.WriteFile(path, []byte(samplePosting), 0o644))

	job, err := FromFile(path, "Engineer", "")
	require.NoError(t, err)
	assert.Contains(t, job.Description, "Kubernetes")
}

func TestFromFile_MissingFile(t *testing.T) {
	_, err := FromFile(filepath.Join(t.TempDir(), "absent.txt"), "", "")
	assert.Error(t, err)
}

type fakeFetcher struct {
	posting *fetch.Posting
	err     error
}

func (f *fakeFetcher) FetchPosting(ctx context.Context, url string) (*fetch.Posting, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.posting, nil
}

func TestFromURL_Success(t *testing.T) {
	fetcher := &fakeFetcher{posting: &fetch.Posting{Text: samplePosting}}

	job, err := FromURL(context.Background(), fetcher, "https://example.com/job", "Engineer", "Acme")
	require.NoError(t, err)
	assert.Equal(t, "Engineer", job.Title)
	assert.Contains(t, job.Description, "Go experience")
}

func TestFromURL_FetchErrorPropagates(t *testing.T) {
	fetcher := &fakeFetcher{err: &fetch.Error{URL: "https://example.com", Message: "HTTP status 500"}}

	_, err := FromURL(context.Background(), fetcher, "https://example.com", "", "")

	var fetchErr *fetch.Error
	assert.ErrorAs(t, err, &fetchErr)
}

func TestFromURL_ThinPageRejected(t *testing.T) {
	fetcher := &fakeFetcher{posting: &fetch.Posting{Text: "loading..."}}

	_, err := FromURL(context.Background(), fetcher, "https://example.com/job", "", "")

	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
}
