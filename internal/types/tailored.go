package types

// Selection caps enforced by the tailoring stage. These hold for all inputs
// regardless of profile size.
const (
	MaxExperienceEntries = 4
	MaxBulletsPerEntry   = 4
	MaxSkills            = 15
	MaxProjects          = 3
)

// TailoredExperience is a selected work-experience entry with at most
// MaxBulletsPerEntry rewritten bullets.
type TailoredExperience struct {
	Role      string   `json:"role"`
	Company   string   `json:"company"`
	Location  string   `json:"location,omitempty"`
	StartDate string   `json:"startDate"`
	EndDate   string   `json:"endDate,omitempty"`
	Bullets   []string `json:"bullets"`
}

// TailoredProject is a selected project carried into the tailored CV.
type TailoredProject struct {
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
	URL          string   `json:"url,omitempty"`
}

// FormattedEducation is an education entry with its date range collapsed to a
// single display string ("2018 - 2022" or "2021 - Present").
type FormattedEducation struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Field       string `json:"field,omitempty"`
	Dates       string `json:"dates"`
	GPA         string `json:"gpa,omitempty"`
}

// TailoredCV is the selected and rewritten subset of a candidate profile
// aligned to one job posting. It is created per (profile, job) pair and is
// not persisted by this core.
type TailoredCV struct {
	Summary         string               `json:"summary"`
	Skills          []string             `json:"skills"`
	Experience      []TailoredExperience `json:"experience"`
	Projects        []TailoredProject    `json:"projects"`
	Education       []FormattedEducation `json:"education"`
	MatchedKeywords []string             `json:"matchedKeywords"`
	RelevanceScore  int                  `json:"relevanceScore"` // 0-100
	TemplateUsed    string               `json:"templateUsed,omitempty"`
}
