// Package extraction turns raw job posting text into a ranked, weighted
// keyword list. It prefers the generative-text dependency and falls back to
// deterministic vocabulary matching when that dependency is unavailable or
// returns unusable output.
package extraction

import (
	"context"
	"encoding/json"
	"log"

	"github.com/jonathan/cv-tailor/internal/llm"
	"github.com/jonathan/cv-tailor/internal/prompts"
	"github.com/jonathan/cv-tailor/internal/types"
)

// MaxKeywords is the maximum number of keywords returned per posting.
const MaxKeywords = 20

// aiSourceBonus is added to the score of AI-sourced keywords when merged
// results are re-ranked. Empirical constant, tunable.
const aiSourceBonus = 0.2

// frequencyBonus is the per-occurrence score bonus for a keyword appearing in
// the posting text. Empirical constant, tunable.
const frequencyBonus = 0.1

// Extractor extracts keywords from job postings. A nil client disables the
// generative path entirely and every extraction uses the pattern fallback.
type Extractor struct {
	client llm.Client
}

// NewExtractor creates an Extractor backed by the given generative client.
func NewExtractor(client llm.Client) *Extractor {
	return &Extractor{client: client}
}

// Extract produces the ranked keyword list for a posting. It never returns an
// error: generative failures degrade to the pattern fallback, and empty input
// yields an empty list.
func (e *Extractor) Extract(ctx context.Context, jobText string) []types.Keyword {
	patternKeywords := patternExtract(jobText)

	aiKeywords := e.aiExtract(ctx, jobText)

	merged := mergeKeywords(aiKeywords, patternKeywords)
	return rankKeywords(merged, jobText, MaxKeywords)
}

// ExtractInto populates the keyword set of a JobDescription in place. The
// keyword set is treated as immutable once populated: a description that
// already has keywords is left untouched.
func (e *Extractor) ExtractInto(ctx context.Context, job *types.JobDescription) {
	if len(job.Keywords) > 0 {
		return
	}
	job.Keywords = e.Extract(ctx, job.Description)
}

// aiExtract calls the generative-text dependency and parses its JSON
// response. Any failure (transport, exhausted retries, schema-invalid or
// unparsable output) returns nil so the caller proceeds with the fallback.
func (e *Extractor) aiExtract(ctx context.Context, jobText string) []types.Keyword {
	if e.client == nil || jobText == "" {
		return nil
	}

	template := prompts.MustGet("extraction.json", "extract-keywords")
	prompt := prompts.Format(template, map[string]string{"JobText": jobText})

	responseText, err := e.client.GenerateJSON(ctx, prompt, llm.TierLite)
	if err != nil {
		log.Printf("extraction: generative keyword extraction failed, using pattern fallback: %v", err)
		return nil
	}

	if err := validateKeywordsJSON(responseText); err != nil {
		log.Printf("extraction: %v, using pattern fallback", err)
		return nil
	}

	var raw []types.Keyword
	if err := json.Unmarshal([]byte(responseText), &raw); err != nil {
		log.Printf("extraction: unparsable keyword response, using pattern fallback: %v", err)
		return nil
	}

	keywords := make([]types.Keyword, 0, len(raw))
	for _, kw := range raw {
		if kw.Text == "" {
			continue
		}
		kw.Source = types.SourceGenerated
		keywords = append(keywords, kw)
	}

	return keywords
}
