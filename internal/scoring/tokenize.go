package scoring

import (
	"strings"

	"github.com/jonathan/cv-tailor/internal/types"
)

// minTokenLength filters out short noise tokens ("a", "the", "to", "API"
// survives as a whole skill name but not as a 3-char token).
const minTokenLength = 4

// stopWords are common words excluded from the candidate keyword set.
var stopWords = map[string]bool{
	"the": true, "and": true, "for": true, "with": true, "that": true,
	"this": true, "from": true, "have": true, "were": true, "been": true,
	"they": true, "their": true, "which": true, "while": true, "where": true,
	"will": true, "would": true, "could": true, "should": true, "about": true,
	"into": true, "over": true, "under": true, "between": true, "through": true,
	"using": true, "used": true, "work": true, "worked": true, "working": true,
	"team": true, "teams": true, "year": true, "years": true, "also": true,
	"more": true, "most": true, "other": true, "such": true, "than": true,
	"then": true, "them": true, "when": true, "what": true, "your": true,
}

// DeriveProfileKeywords builds the candidate keyword set from a profile:
// whole skill names and technology tags (lowercased, so multi-word and dotted
// job keywords like "node.js" can match exactly), plus individual tokens from
// skills, experience bullets and project descriptions. Tokens shorter than
// four characters and stop-words are filtered.
func DeriveProfileKeywords(profile *types.UserProfile) map[string]bool {
	set := make(map[string]bool)

	for _, skill := range profile.Skills {
		addWhole(set, skill.Name)
		addTokens(set, skill.Name)
	}

	for _, exp := range profile.WorkExperience {
		addTokens(set, exp.Role)
		for _, bullet := range exp.Bullets {
			addTokens(set, bullet)
		}
	}

	for _, project := range profile.Projects {
		addTokens(set, project.Description)
		for _, tech := range project.Technologies {
			addWhole(set, tech)
			addTokens(set, tech)
		}
	}

	return set
}

// DeriveTailoredKeywords builds the candidate keyword set from assembled
// tailored content, used to compute the final relevance score.
func DeriveTailoredKeywords(cv *types.TailoredCV) map[string]bool {
	set := make(map[string]bool)

	addTokens(set, cv.Summary)

	for _, skill := range cv.Skills {
		addWhole(set, skill)
		addTokens(set, skill)
	}

	for _, exp := range cv.Experience {
		addTokens(set, exp.Role)
		for _, bullet := range exp.Bullets {
			addTokens(set, bullet)
		}
	}

	for _, project := range cv.Projects {
		addTokens(set, project.Description)
		for _, tech := range project.Technologies {
			addWhole(set, tech)
			addTokens(set, tech)
		}
	}

	return set
}

// addWhole adds a full term (e.g. a skill name) lowercased and trimmed.
func addWhole(set map[string]bool, term string) {
	term = strings.ToLower(strings.TrimSpace(term))
	if term != "" {
		set[term] = true
	}
}

// addTokens splits text on non-alphanumeric runes and adds surviving tokens.
func addTokens(set map[string]bool, text string) {
	tokens := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !(r >= 'a' && r <= 'z') && !(r >= '0' && r <= '9')
	})
	for _, tok := range tokens {
		if len(tok) < minTokenLength || stopWords[tok] {
			continue
		}
		set[tok] = true
	}
}
