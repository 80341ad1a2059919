package extraction

import (
	"strings"

	"github.com/jonathan/cv-tailor/internal/types"
)

// Default base weights per category for pattern-sourced keywords. These are
// empirical constants; tune per category, not per term.
const (
	technicalBaseWeight  = 0.7
	softSkillBaseWeight  = 0.5
	actionVerbBaseWeight = 0.4
)

// technicalTerms is the curated vocabulary of technical keywords matched
// against job posting text. Multi-word and dotted terms are matched as
// substrings; plain words are matched on token boundaries.
var technicalTerms = []string{
	"python", "java", "javascript", "typescript", "golang", "rust", "ruby",
	"c++", "c#", "php", "scala", "kotlin", "swift", "sql", "nosql",
	"react", "angular", "vue", "node.js", "django", "flask", "spring",
	"rails", "express", "next.js", "graphql", "rest api", "grpc",
	"aws", "azure", "gcp", "docker", "kubernetes", "terraform", "ansible",
	"jenkins", "ci/cd", "git", "linux", "bash",
	"postgresql", "mysql", "mongodb", "redis", "elasticsearch", "kafka",
	"rabbitmq", "spark", "hadoop", "airflow",
	"machine learning", "deep learning", "data science", "nlp",
	"tensorflow", "pytorch", "pandas", "numpy",
	"microservices", "serverless", "distributed systems", "etl",
	"html", "css", "sass", "webpack", "agile", "scrum", "tdd",
}

// softSkillTerms is the curated vocabulary of soft-skill keywords.
var softSkillTerms = []string{
	"leadership", "communication", "collaboration", "teamwork",
	"problem solving", "problem-solving", "critical thinking",
	"time management", "adaptability", "mentoring", "mentorship",
	"stakeholder management", "cross-functional", "attention to detail",
	"self-motivated", "ownership", "initiative", "creativity",
	"analytical", "organized", "presentation",
}

// actionVerbTerms is the curated vocabulary of action verbs that signal
// expected responsibilities.
var actionVerbTerms = []string{
	"developed", "designed", "implemented", "architected", "built",
	"launched", "delivered", "optimized", "automated", "migrated",
	"scaled", "maintained", "deployed", "integrated", "managed",
	"led", "coordinated", "analyzed", "improved", "reduced",
	"increased", "streamlined", "collaborate", "develop", "design",
	"implement", "build", "maintain", "deploy", "lead",
}

// patternExtract runs the deterministic fallback: vocabulary matching against
// the posting text with fixed per-category base weights. The result is
// deduplicated (a term is reported once) and carries SourcePattern.
func patternExtract(text string) []types.Keyword {
	lower := strings.ToLower(text)
	if strings.TrimSpace(lower) == "" {
		return []types.Keyword{}
	}

	tokens := tokenSet(lower)
	keywords := make([]types.Keyword, 0)
	seen := make(map[string]bool)

	match := func(terms []string, weight float64, category string) {
		for _, term := range terms {
			if seen[term] {
				continue
			}
			if containsTerm(lower, tokens, term) {
				seen[term] = true
				keywords = append(keywords, types.NewKeyword(term, weight, category, types.SourcePattern))
			}
		}
	}

	match(technicalTerms, technicalBaseWeight, types.CategoryTechnical)
	match(softSkillTerms, softSkillBaseWeight, types.CategorySoftSkill)
	match(actionVerbTerms, actionVerbBaseWeight, types.CategoryActionVerb)

	return keywords
}

// containsTerm reports whether a vocabulary term occurs in the text.
// Single plain words must match a whole token; terms with spaces, dots or
// other punctuation ("node.js", "rest api", "c++") use substring matching
// because token splitting would mangle them.
func containsTerm(lowerText string, tokens map[string]bool, term string) bool {
	if isPlainWord(term) {
		return tokens[term]
	}
	return strings.Contains(lowerText, term)
}

// isPlainWord reports whether the term is a single unpunctuated word.
func isPlainWord(term string) bool {
	for _, r := range term {
		if !(r >= 'a' && r <= 'z') && !(r >= '0' && r <= '9') {
			return false
		}
	}
	return len(term) > 0
}

// tokenSet splits lowercased text into a set of alphanumeric tokens.
func tokenSet(lowerText string) map[string]bool {
	tokens := make(map[string]bool)
	for _, tok := range splitTokens(lowerText) {
		tokens[tok] = true
	}
	return tokens
}

// splitTokens splits on any non-alphanumeric rune.
func splitTokens(lowerText string) []string {
	return strings.FieldsFunc(lowerText, func(r rune) bool {
		return !(r >= 'a' && r <= 'z') && !(r >= '0' && r <= '9')
	})
}
