package types

import "time"

// RenderOptions are the allow-listed document options. Invalid values are
// silently replaced with defaults by the rendering stage.
type RenderOptions struct {
	FontSize    string `json:"fontSize,omitempty"`    // 10pt | 11pt | 12pt
	Margins     string `json:"margins,omitempty"`     // narrow | normal | wide
	ColorScheme string `json:"colorScheme,omitempty"` // allow-listed per template
}

// RenderCV is the CV payload of a render request. Skills accept both plain
// strings and {name, category} objects at the boundary.
type RenderCV struct {
	Personal   PersonalInfo         `json:"personal" validate:"required"`
	Summary    string               `json:"summary,omitempty"`
	Skills     []Skill              `json:"skills,omitempty"`
	Experience []TailoredExperience `json:"experience,omitempty"`
	Projects   []TailoredProject    `json:"projects,omitempty"`
	Education  []FormattedEducation `json:"education,omitempty"`
}

// RenderRequest asks for one CV to be rendered with a template and options.
type RenderRequest struct {
	CVData   RenderCV      `json:"cvData" validate:"required"`
	Template string        `json:"template,omitempty"`
	Options  RenderOptions `json:"options,omitempty"`
}

// RenderResult describes a completed render job. The artifact lives at
// ArtifactPath until the caller consumes it; everything else under the job
// workspace is already cleaned up.
type RenderResult struct {
	JobID        string    `json:"jobId"`
	Filename     string    `json:"filename"`
	SizeBytes    int64     `json:"sizeBytes"`
	GeneratedAt  time.Time `json:"generatedAt"`
	TemplateUsed string    `json:"templateUsed"`
	ArtifactPath string    `json:"-"`
}
