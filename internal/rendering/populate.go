package rendering

import (
	"log"
	"strings"

	"github.com/jonathan/cv-tailor/internal/types"
)

// TemplateData is the fully-escaped structure passed to a LaTeX template.
// Every string field has already been through EscapeLaTeX; templates
// substitute values directly.
type TemplateData struct {
	FontSize    string
	Geometry    string
	AccentColor string

	Name     string
	Email    string
	Phone    string
	LinkedIn string
	Location string
	Website  string

	Summary    string
	Skills     []string
	Experience []ExperienceSection
	Projects   []ProjectSection
	Education  []EducationSection
}

// ExperienceSection is one rendered work-experience entry.
type ExperienceSection struct {
	Role    string
	Company string
	Where   string
	Dates   string
	Bullets []string
}

// ProjectSection is one rendered project entry.
type ProjectSection struct {
	Name         string
	Description  string
	Technologies string
}

// EducationSection is one rendered education entry.
type EducationSection struct {
	Institution string
	Degree      string
	Dates       string
}

// buildTemplateData escapes all CV content and resolves sanitized options
// into concrete LaTeX settings.
func buildTemplateData(cv *types.RenderCV, templateName string, opts types.RenderOptions) *TemplateData {
	data := &TemplateData{
		FontSize:    sanitizeFontSize(opts.FontSize),
		Geometry:    marginGeometry[sanitizeMargins(opts.Margins)],
		AccentColor: accentColors[sanitizeColorScheme(templateName, opts.ColorScheme)],

		Name:     EscapeLaTeX(cv.Personal.Name),
		Email:    EscapeLaTeX(cv.Personal.Email),
		Phone:    EscapeLaTeX(cv.Personal.Phone),
		LinkedIn: EscapeLaTeX(cv.Personal.LinkedIn),
		Location: EscapeLaTeX(cv.Personal.Location),
		Website:  EscapeLaTeX(cv.Personal.Website),

		Summary: EscapeLaTeX(cv.Summary),
	}

	for _, skill := range cv.Skills {
		data.Skills = append(data.Skills, EscapeLaTeX(skill.Name))
	}

	for _, exp := range cv.Experience {
		dates := exp.StartDate
		if dates != "" {
			end := exp.EndDate
			if end == "" {
				end = "Present"
			}
			dates = dates + " -- " + end
		}
		data.Experience = append(data.Experience, ExperienceSection{
			Role:    EscapeLaTeX(exp.Role),
			Company: EscapeLaTeX(exp.Company),
			Where:   EscapeLaTeX(exp.Location),
			Dates:   EscapeLaTeX(dates),
			Bullets: escapeAll(exp.Bullets),
		})
	}

	for _, project := range cv.Projects {
		data.Projects = append(data.Projects, ProjectSection{
			Name:         EscapeLaTeX(project.Name),
			Description:  EscapeLaTeX(project.Description),
			Technologies: EscapeLaTeX(strings.Join(project.Technologies, ", ")),
		})
	}

	for _, edu := range cv.Education {
		degree := edu.Degree
		if edu.Field != "" {
			degree = degree + ", " + edu.Field
		}
		data.Education = append(data.Education, EducationSection{
			Institution: EscapeLaTeX(edu.Institution),
			Degree:      EscapeLaTeX(degree),
			Dates:       EscapeLaTeX(edu.Dates),
		})
	}

	return data
}

// Populate executes the named (already sanitized) template with escaped CV
// content and returns the LaTeX source.
func Populate(cv *types.RenderCV, templateName string, opts types.RenderOptions) (string, error) {
	tmpl, err := loadTemplate(templateName)
	if err != nil {
		return "", err
	}

	data := buildTemplateData(cv, templateName, opts)

	var source strings.Builder
	if err := tmpl.Execute(&source, data); err != nil {
		return "", &TemplateError{
			Message: "failed to execute template",
			Cause:   err,
		}
	}

	populated := source.String()
	if markers := scanUnresolvedMarkers(populated); len(markers) > 0 {
		// Quality warning only: the document still compiles, but some
		// placeholder made it through unresolved.
		log.Printf("rendering: %d unresolved placeholder marker(s) in populated source: %s",
			len(markers), strings.Join(markers, ", "))
	}

	return populated, nil
}

// scanUnresolvedMarkers finds placeholder markers that survived template
// execution, such as "<no value>" from missing fields or literal {{...}}
// actions that were never parsed.
func scanUnresolvedMarkers(populated string) []string {
	markers := []string{}
	if n := strings.Count(populated, "<no value>"); n > 0 {
		markers = append(markers, "<no value>")
	}
	if idx := strings.Index(populated, "{{"); idx >= 0 {
		end := idx + 40
		if end > len(populated) {
			end = len(populated)
		}
		markers = append(markers, strings.TrimSpace(populated[idx:end]))
	}
	return markers
}
