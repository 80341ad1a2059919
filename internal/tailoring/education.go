package tailoring

import (
	"fmt"
	"strings"

	"github.com/jonathan/cv-tailor/internal/types"
)

// formatEducation passes education entries through with deterministic date
// formatting: "{start} - {end}", with an empty end date rendered as
// "Present".
func formatEducation(entries []types.Education) []types.FormattedEducation {
	formatted := make([]types.FormattedEducation, len(entries))
	for i, entry := range entries {
		formatted[i] = types.FormattedEducation{
			Institution: entry.Institution,
			Degree:      entry.Degree,
			Field:       entry.Field,
			Dates:       formatDateRange(entry.StartDate, entry.EndDate),
			GPA:         entry.GPA,
		}
	}
	return formatted
}

// formatDateRange renders "{start} - {end|Present}". A missing start date
// yields just the end portion.
func formatDateRange(start, end string) string {
	start = strings.TrimSpace(start)
	end = strings.TrimSpace(end)
	if end == "" {
		end = "Present"
	}
	if start == "" {
		return end
	}
	return fmt.Sprintf("%s - %s", start, end)
}
