// Package types defines the shared data model for the CV tailoring pipeline.
package types

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Keyword source values. Generated keywords come from the generative-text
// dependency; pattern keywords come from the deterministic vocabularies.
const (
	SourceGenerated = "generated"
	SourcePattern   = "pattern"
)

// Keyword categories used by extraction and the pattern vocabularies.
const (
	CategoryTechnical = "technical"
	CategorySoftSkill = "soft_skill"
	CategoryActionVerb = "action_verb"
	CategoryGeneral   = "general"
)

// Keyword is a term extracted from a job posting with a relevance weight in
// [0,1] and a category. Keywords are normalized here at the boundary; the rest
// of the pipeline never handles a bare string.
type Keyword struct {
	Text     string  `json:"text"`
	Weight   float64 `json:"weight"`
	Category string  `json:"category"`
	Source   string  `json:"source"`
}

// NewKeyword constructs a normalized keyword: text is trimmed and lowercased,
// the weight clamped to [0,1], and empty category/source filled with defaults.
func NewKeyword(text string, weight float64, category, source string) Keyword {
	if category == "" {
		category = CategoryGeneral
	}
	if source == "" {
		source = SourcePattern
	}
	return Keyword{
		Text:     strings.ToLower(strings.TrimSpace(text)),
		Weight:   ClampWeight(weight),
		Category: category,
		Source:   source,
	}
}

// ClampWeight forces a weight into the [0,1] invariant range.
func ClampWeight(w float64) float64 {
	if w < 0 {
		return 0
	}
	if w > 1 {
		return 1
	}
	return w
}

// rawKeyword mirrors the object shape returned by the generative-text
// dependency, which names the text field "keyword".
type rawKeyword struct {
	Keyword  string  `json:"keyword"`
	Text     string  `json:"text"`
	Weight   float64 `json:"weight"`
	Category string  `json:"category"`
	Source   string  `json:"source"`
}

// UnmarshalJSON accepts both runtime shapes of a keyword: a plain string
// ("React") or an object ({"keyword": "React", "weight": 0.9, ...}).
// Either form is normalized into the single tagged Keyword type so no
// shape branching happens deeper in the pipeline.
func (k *Keyword) UnmarshalJSON(data []byte) error {
	// Plain string form
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*k = NewKeyword(s, 0.5, "", "")
		return nil
	}

	var raw rawKeyword
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("keyword must be a string or an object: %w", err)
	}

	text := raw.Keyword
	if text == "" {
		text = raw.Text
	}
	*k = NewKeyword(text, raw.Weight, raw.Category, raw.Source)
	return nil
}

// JobDescription is a job posting plus its extracted keyword set. Keywords are
// populated once by extraction and are immutable afterward.
type JobDescription struct {
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Description string    `json:"description"`
	Keywords    []Keyword `json:"keywords"`
}
