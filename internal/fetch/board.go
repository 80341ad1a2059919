package fetch

import (
	"net/url"
	"strings"
)

// Board identifies a known job board platform, used to pick HTML selectors
// that isolate the posting body from application forms and boilerplate.
type Board string

const (
	BoardGreenhouse Board = "greenhouse"
	BoardLever      Board = "lever"
	BoardWorkday    Board = "workday"
	BoardUnknown    Board = "unknown"
)

// DetectBoard identifies the job board from a posting URL's host.
func DetectBoard(urlStr string) Board {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return BoardUnknown
	}

	host := strings.ToLower(parsed.Host)
	switch {
	case strings.Contains(host, "greenhouse.io"):
		return BoardGreenhouse
	case strings.Contains(host, "lever.co"):
		return BoardLever
	case strings.Contains(host, "workday.com"), strings.Contains(host, "myworkdayjobs.com"):
		return BoardWorkday
	default:
		return BoardUnknown
	}
}

// genericContentSelectors locate posting content on unrecognized pages,
// tried in order.
var genericContentSelectors = []string{
	".job-description",
	".job-content",
	"#job-description",
	".posting-content",
	".job-details",
	"[data-testid='job-description']",
	"main",
	"article",
	".content",
	"#content",
}

// contentSelectors returns the selectors most likely to isolate the posting
// body for a board.
func contentSelectors(board Board) []string {
	switch board {
	case BoardGreenhouse:
		return []string{
			".job__description.body",
			".job__description",
			".job-description__content",
			"#content",
		}
	case BoardLever:
		return []string{
			".posting-page",
			".posting-description",
			".section-wrapper.page-full-width",
			".content",
		}
	case BoardWorkday:
		return []string{
			"[data-automation-id='jobDescription']",
			".gwt-HTML",
			".job-description",
		}
	default:
		return genericContentSelectors
	}
}

// noiseSelectors returns elements to strip before extraction: application
// forms, legal disclosures, share widgets, consent banners.
func noiseSelectors(board Board) []string {
	common := []string{
		"form",
		".application-form",
		".apply-button-container",
		".voluntary-disclosure",
		".eeo-statement",
		".legal-disclosure",
		".self-identification",
		".social-share",
		".share-buttons",
		".cookie-banner",
		".cookie-consent",
		".gdpr-notice",
	}

	switch board {
	case BoardGreenhouse:
		return append(common, ".application--wrapper", ".voluntary-self-id", ".post-apply")
	case BoardLever:
		return append(common, ".apply-section", ".posting-apply")
	case BoardWorkday:
		return append(common, "[data-automation-id='applyButton']", ".application-section")
	default:
		return common
	}
}
