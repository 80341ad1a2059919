package rendering

import (
	"embed"
	"fmt"
	"text/template"
)

//go:embed templates/*.tex
var templateFiles embed.FS

// DefaultTemplate is used when a request names no template or an
// unrecognized one. Sanitizing instead of erroring also defeats
// path-traversal via template-name injection: only allow-listed names ever
// reach the filesystem.
const DefaultTemplate = "modern"

// Option defaults applied when a request carries no value or an
// unrecognized one.
const (
	DefaultFontSize    = "11pt"
	DefaultMargins     = "normal"
	DefaultColorScheme = "blue"
)

// TemplateInfo is read-only catalog metadata for one template.
type TemplateInfo struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	ColorSchemes []string `json:"colorSchemes"`
}

// templateCatalog is the allow-list of renderable templates.
var templateCatalog = []TemplateInfo{
	{
		Name:         "modern",
		Description:  "Single-column layout with a colored accent rule and compact section headers",
		ColorSchemes: []string{"blue", "burgundy", "forest", "black"},
	},
	{
		Name:         "classic",
		Description:  "Traditional serif layout with centered header and ruled sections",
		ColorSchemes: []string{"black", "blue"},
	},
}

var allowedFontSizes = map[string]bool{"10pt": true, "11pt": true, "12pt": true}

// marginGeometry maps the allow-listed margin names to geometry settings.
var marginGeometry = map[string]string{
	"narrow": "margin=0.5in",
	"normal": "margin=0.75in",
	"wide":   "margin=1in",
}

// accentColors maps allow-listed color schemes to RGB definitions.
var accentColors = map[string]string{
	"blue":     "0.13,0.33,0.65",
	"burgundy": "0.50,0.08,0.13",
	"forest":   "0.09,0.42,0.22",
	"black":    "0,0,0",
}

// Catalog returns read-only metadata for all renderable templates. No
// rendering is performed.
func Catalog() []TemplateInfo {
	catalog := make([]TemplateInfo, len(templateCatalog))
	copy(catalog, templateCatalog)
	return catalog
}

// sanitizeTemplate maps any requested template name onto the allow-list,
// silently substituting the default for unknown names.
func sanitizeTemplate(name string) string {
	for _, info := range templateCatalog {
		if info.Name == name {
			return name
		}
	}
	return DefaultTemplate
}

// sanitizeFontSize returns the requested font size if allow-listed, else the
// default.
func sanitizeFontSize(size string) string {
	if allowedFontSizes[size] {
		return size
	}
	return DefaultFontSize
}

// sanitizeMargins returns the requested margin name if allow-listed, else
// the default.
func sanitizeMargins(margins string) string {
	if _, ok := marginGeometry[margins]; ok {
		return margins
	}
	return DefaultMargins
}

// sanitizeColorScheme returns the requested scheme if the template supports
// it, else the first scheme the template lists.
func sanitizeColorScheme(templateName, scheme string) string {
	for _, info := range templateCatalog {
		if info.Name != templateName {
			continue
		}
		for _, supported := range info.ColorSchemes {
			if supported == scheme {
				return scheme
			}
		}
		if len(info.ColorSchemes) > 0 {
			return info.ColorSchemes[0]
		}
	}
	return DefaultColorScheme
}

// loadTemplate parses an embedded template by allow-listed name.
func loadTemplate(name string) (*template.Template, error) {
	content, err := templateFiles.ReadFile(fmt.Sprintf("templates/%s.tex", name))
	if err != nil {
		return nil, &TemplateError{
			Message: fmt.Sprintf("embedded template not found: %s", name),
			Cause:   err,
		}
	}

	tmpl, err := template.New(name).Parse(string(content))
	if err != nil {
		return nil, &TemplateError{
			Message: fmt.Sprintf("failed to parse template %s", name),
			Cause:   err,
		}
	}

	return tmpl, nil
}
