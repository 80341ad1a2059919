package rendering

import "strings"

// latexReplacements maps each LaTeX special character to its escaped form.
// Every piece of user- or AI-generated text passes through here before
// substitution, so no input can inject markup or control sequences into the
// rendered document.
var latexReplacements = map[rune]string{
	'\\': `\textbackslash{}`,
	'{':  `\{`,
	'}':  `\}`,
	'$':  `\$`,
	'&':  `\&`,
	'%':  `\%`,
	'#':  `\#`,
	'^':  `\textasciicircum{}`,
	'_':  `\_`,
	'~':  `\textasciitilde{}`,
}

// EscapeLaTeX escapes the LaTeX special characters \ { } $ & % # ^ _ ~ in
// text. All other runes, including unicode, pass through unchanged.
func EscapeLaTeX(text string) string {
	if text == "" {
		return ""
	}

	var result strings.Builder
	result.Grow(len(text) * 2)

	for _, r := range text {
		if escaped, ok := latexReplacements[r]; ok {
			result.WriteString(escaped)
		} else {
			result.WriteRune(r)
		}
	}

	return result.String()
}

// escapeAll escapes every string in a slice.
func escapeAll(texts []string) []string {
	escaped := make([]string, len(texts))
	for i, t := range texts {
		escaped[i] = EscapeLaTeX(t)
	}
	return escaped
}
