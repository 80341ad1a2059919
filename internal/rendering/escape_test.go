package rendering

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeLaTeX_SpecialCharacters(t *testing.T) {
	escaped := EscapeLaTeX(`50% & $100 #1 a_b c^d e~f {g} h\i`)

	assert.Contains(t, escaped, `50\%`)
	assert.Contains(t, escaped, `\&`)
	assert.Contains(t, escaped, `\$100`)
	assert.Contains(t, escaped, `\#1`)
	assert.Contains(t, escaped, `a\_b`)
	assert.Contains(t, escaped, `c\textasciicircum{}d`)
	assert.Contains(t, escaped, `e\textasciitilde{}f`)
	assert.Contains(t, escaped, `\{g\}`)
	assert.Contains(t, escaped, `h\textbackslash{}i`)
}

func TestEscapeLaTeX_PlainTextUnchanged(t *testing.T) {
	assert.Equal(t, "Senior Engineer, Platform Team", EscapeLaTeX("Senior Engineer, Platform Team"))
	assert.Equal(t, "", EscapeLaTeX(""))
}

func TestEscapeLaTeX_UnicodePassesThrough(t *testing.T) {
	assert.Equal(t, "Zoë Müller", EscapeLaTeX("Zoë Müller"))
}

func TestEscapeLaTeX_NoUnescapedSpecialsRemain(t *testing.T) {
	escaped := EscapeLaTeX(`100% uptime & $2M savings via A/B #tests`)

	// Strip the escape sequences we produced, then verify no bare specials
	// are left over.
	stripped := escaped
	for _, seq := range []string{`\%`, `\&`, `\$`, `\#`, `\_`, `\{`, `\}`,
		`\textbackslash{}`, `\textasciicircum{}`, `\textasciitilde{}`} {
		stripped = strings.ReplaceAll(stripped, seq, "")
	}
	assert.NotContains(t, stripped, "%")
	assert.NotContains(t, stripped, "&")
	assert.NotContains(t, stripped, "$")
	assert.NotContains(t, stripped, "#")
}
