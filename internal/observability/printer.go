// Package observability provides formatted output utilities for verbose CLI
// mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/cv-tailor/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 10
)

// Printer handles formatted output for verbose mode.
type Printer struct {
	out io.Writer
}

// NewPrinter creates a Printer that writes to the given writer.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintKeywords outputs the extracted keyword list for a posting.
func (p *Printer) PrintKeywords(job *types.JobDescription) {
	if job == nil || len(job.Keywords) == 0 {
		return
	}

	var sb strings.Builder
	if job.Title != "" {
		sb.WriteString(fmt.Sprintf("Role:    %s\n", job.Title))
	}
	if job.Company != "" {
		sb.WriteString(fmt.Sprintf("Company: %s\n", job.Company))
	}
	sb.WriteString(fmt.Sprintf("Keywords: %d\n\n", len(job.Keywords)))

	shown := job.Keywords
	if len(shown) > maxItemsToShow {
		shown = shown[:maxItemsToShow]
	}
	for _, kw := range shown {
		sb.WriteString(fmt.Sprintf("%-24s %.2f  %s/%s\n", kw.Text, kw.Weight, kw.Category, kw.Source))
	}
	if len(job.Keywords) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more\n", len(job.Keywords)-maxItemsToShow))
	}

	p.printBox("Extracted Keywords", strings.TrimRight(sb.String(), "\n"))
}

// PrintTailored outputs a human-readable summary of a tailored CV.
func (p *Printer) PrintTailored(cv *types.TailoredCV) {
	if cv == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Relevance score: %d/100\n", cv.RelevanceScore))
	sb.WriteString(fmt.Sprintf("Experience:      %d entries\n", len(cv.Experience)))
	sb.WriteString(fmt.Sprintf("Skills:          %d\n", len(cv.Skills)))
	sb.WriteString(fmt.Sprintf("Projects:        %d\n", len(cv.Projects)))

	if len(cv.MatchedKeywords) > 0 {
		sb.WriteString("\nMatched keywords:\n")
		shown := cv.MatchedKeywords
		if len(shown) > maxItemsToShow {
			shown = shown[:maxItemsToShow]
		}
		sb.WriteString(strings.Join(shown, ", "))
		if len(cv.MatchedKeywords) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf(" (+%d more)", len(cv.MatchedKeywords)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	p.printBox("Tailored CV", strings.TrimRight(sb.String(), "\n"))
}
