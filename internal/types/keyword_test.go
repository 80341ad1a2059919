package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewKeyword_NormalizesTextAndWeight(t *testing.T) {
	kw := NewKeyword("  React  ", 1.5, "", "")
	assert.Equal(t, "react", kw.Text)
	assert.Equal(t, 1.0, kw.Weight)
	assert.Equal(t, CategoryGeneral, kw.Category)
	assert.Equal(t, SourcePattern, kw.Source)
}

func TestClampWeight_Bounds(t *testing.T) {
	assert.Equal(t, 0.0, ClampWeight(-0.3))
	assert.Equal(t, 1.0, ClampWeight(2.0))
	assert.Equal(t, 0.7, ClampWeight(0.7))
}

func TestKeywordUnmarshalJSON_StringForm(t *testing.T) {
	var kw Keyword
	err := json.Unmarshal([]byte(`"Kubernetes"`), &kw)
	require.NoError(t, err)
	assert.Equal(t, "kubernetes", kw.Text)
	assert.Equal(t, 0.5, kw.Weight)
}

func TestKeywordUnmarshalJSON_ObjectForm(t *testing.T) {
	var kw Keyword
	err := json.Unmarshal([]byte(`{"keyword": "AWS", "weight": 0.9, "category": "technical"}`), &kw)
	require.NoError(t, err)
	assert.Equal(t, "aws", kw.Text)
	assert.Equal(t, 0.9, kw.Weight)
	assert.Equal(t, CategoryTechnical, kw.Category)
}

func TestKeywordUnmarshalJSON_ObjectWithTextField(t *testing.T) {
	var kw Keyword
	err := json.Unmarshal([]byte(`{"text": "terraform", "weight": 0.4}`), &kw)
	require.NoError(t, err)
	assert.Equal(t, "terraform", kw.Text)
}

func TestKeywordUnmarshalJSON_InvalidShape(t *testing.T) {
	var kw Keyword
	err := json.Unmarshal([]byte(`42`), &kw)
	assert.Error(t, err)
}

func TestSkillUnmarshalJSON_BothShapes(t *testing.T) {
	var skills []Skill
	err := json.Unmarshal([]byte(`["Go", {"name": "Python", "category": "language"}]`), &skills)
	require.NoError(t, err)
	require.Len(t, skills, 2)
	assert.Equal(t, "Go", skills[0].Name)
	assert.Equal(t, "Python", skills[1].Name)
	assert.Equal(t, "language", skills[1].Category)
}

func TestFirstName(t *testing.T) {
	p := UserProfile{Personal: PersonalInfo{Name: "Ada Lovelace"}}
	assert.Equal(t, "Ada", p.FirstName())

	empty := UserProfile{}
	assert.Equal(t, "", empty.FirstName())
}
