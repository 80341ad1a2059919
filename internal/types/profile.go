package types

import (
	"encoding/json"
	"strings"
)

// PersonalInfo holds candidate contact details. Name and Email are the only
// fields required at the rendering boundary.
type PersonalInfo struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone,omitempty"`
	LinkedIn string `json:"linkedIn,omitempty"`
	Location string `json:"location,omitempty"`
	Website  string `json:"website,omitempty"`
}

// WorkExperience is a single role in the candidate's history.
type WorkExperience struct {
	Role      string   `json:"role"`
	Company   string   `json:"company"`
	Location  string   `json:"location,omitempty"`
	StartDate string   `json:"startDate"`
	EndDate   string   `json:"endDate,omitempty"` // empty means current role
	Bullets   []string `json:"bullets"`
}

// Skill is a named skill with an optional category. Like Keyword, it accepts
// both a plain string and an object at the JSON boundary.
type Skill struct {
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
}

// UnmarshalJSON accepts "Go" or {"name": "Go", "category": "language"}.
func (s *Skill) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		s.Name = strings.TrimSpace(str)
		s.Category = ""
		return nil
	}

	type alias Skill
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	s.Name = strings.TrimSpace(a.Name)
	s.Category = a.Category
	return nil
}

// Project is a candidate project with technology tags.
type Project struct {
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
	URL          string   `json:"url,omitempty"`
}

// Education is a single education entry.
type Education struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Field       string `json:"field,omitempty"`
	StartDate   string `json:"startDate,omitempty"`
	EndDate     string `json:"endDate,omitempty"` // empty means in progress
	GPA         string `json:"gpa,omitempty"`
}

// UserProfile is the candidate profile owned by the caller. The tailoring
// core reads it and never mutates it.
type UserProfile struct {
	Personal       PersonalInfo     `json:"personal"`
	Summary        string           `json:"summary,omitempty"`
	WorkExperience []WorkExperience `json:"experience,omitempty"`
	Skills         []Skill          `json:"skills,omitempty"`
	Projects       []Project        `json:"projects,omitempty"`
	Education      []Education      `json:"education,omitempty"`
}

// FirstName returns the first whitespace-separated token of the candidate
// name, used by the deterministic summary fallback.
func (p *UserProfile) FirstName() string {
	fields := strings.Fields(p.Personal.Name)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
