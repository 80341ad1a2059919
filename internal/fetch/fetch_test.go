package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const postingHTML = `<!DOCTYPE html>
<html>
<head><title>Job</title><script>tracking();</script></head>
<body>
<nav>Home | Jobs | About</nav>
<div class="job-description">
<h1>Senior Go Engineer</h1>
<p>We are looking for an engineer with Go and PostgreSQL experience.</p>
<ul><li>Build distributed services</li><li>Own the deployment pipeline</li></ul>
</div>
<form class="application-form"><input name="resume"></form>
<div class="cookie-banner">We use cookies</div>
<footer>Copyright 2026</footer>
</body>
</html>`

func TestDetectBoard(t *testing.T) {
	assert.Equal(t, BoardGreenhouse, DetectBoard("https://boards.greenhouse.io/acme/jobs/123"))
	assert.Equal(t, BoardLever, DetectBoard("https://jobs.lever.co/acme/abc-def"))
	assert.Equal(t, BoardWorkday, DetectBoard("https://acme.wd1.myworkdayjobs.com/careers/job/123"))
	assert.Equal(t, BoardUnknown, DetectBoard("https://careers.acme.com/jobs/123"))
	assert.Equal(t, BoardUnknown, DetectBoard("::not a url::"))
}

func TestExtractPostingText_StripsNoise(t *testing.T) {
	text, err := ExtractPostingText(postingHTML, BoardUnknown)
	require.NoError(t, err)

	assert.Contains(t, text, "Senior Go Engineer")
	assert.Contains(t, text, "Go and PostgreSQL")
	assert.Contains(t, text, "Build distributed services")

	assert.NotContains(t, text, "Home | Jobs")
	assert.NotContains(t, text, "We use cookies")
	assert.NotContains(t, text, "Copyright")
	assert.NotContains(t, text, "tracking")
}

func TestExtractPostingText_FallsBackToBody(t *testing.T) {
	text, err := ExtractPostingText("<html><body><p>Short plain page</p></body></html>", BoardUnknown)
	require.NoError(t, err)
	assert.Equal(t, "Short plain page", text)
}

func TestFetchPosting_Success(t *testing.T) {
	var gotUserAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(postingHTML))
	}))
	defer server.Close()

	client := NewClient(Options{})
	posting, err := client.FetchPosting(context.Background(), server.URL)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, posting.StatusCode)
	assert.Contains(t, posting.Text, "Senior Go Engineer")
	assert.False(t, posting.Rendered)
	assert.Equal(t, DefaultUserAgent, gotUserAgent)
}

func TestFetchPosting_InvalidURL(t *testing.T) {
	client := NewClient(Options{})

	_, err := client.FetchPosting(context.Background(), "not-a-url")

	var fetchErr *Error
	require.ErrorAs(t, err, &fetchErr)
	assert.Contains(t, fetchErr.Message, "invalid URL")
}

func TestFetchPosting_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(Options{})
	_, err := client.FetchPosting(context.Background(), server.URL)

	var fetchErr *Error
	require.ErrorAs(t, err, &fetchErr)
	assert.Contains(t, fetchErr.Message, "404")
}

func TestFetchPosting_BrowserFallbackOnShortContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body><div id="app"></div></body></html>`))
	}))
	defer server.Close()

	client := NewClient(Options{UseBrowser: true})
	client.render = func(ctx context.Context, url string, timeout time.Duration) (string, error) {
		return `<html><body><div class="job-description">` +
			strings.Repeat("Rendered posting content. ", 30) +
			`</div></body></html>`, nil
	}

	posting, err := client.FetchPosting(context.Background(), server.URL)
	require.NoError(t, err)
	assert.True(t, posting.Rendered)
	assert.Contains(t, posting.Text, "Rendered posting content")
}

func TestFetchPosting_BrowserFailureKeepsHTTPText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body><p>thin shell</p></body></html>`))
	}))
	defer server.Close()

	client := NewClient(Options{UseBrowser: true})
	client.render = func(ctx context.Context, url string, timeout time.Duration) (string, error) {
		return "", context.DeadlineExceeded
	}

	posting, err := client.FetchPosting(context.Background(), server.URL)
	require.NoError(t, err)
	assert.False(t, posting.Rendered)
	assert.Equal(t, "thin shell", posting.Text)
}
