// Package rendering populates LaTeX templates with tailored CV content and
// drives the external compiler to produce a PDF artifact.
package rendering

import "fmt"

// FailureReason classifies why a render job failed.
type FailureReason string

const (
	FailureTimeout       FailureReason = "timeout"
	FailureCompilerError FailureReason = "compiler-error"
	FailureEmptyOutput   FailureReason = "empty-output"
	FailureOversized     FailureReason = "oversized"
)

// ValidationError represents missing required fields at the render boundary.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// TemplateError represents a failure parsing or executing a template.
type TemplateError struct {
	Message string
	Cause   error
}

func (e *TemplateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("template error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("template error: %s", e.Message)
}

func (e *TemplateError) Unwrap() error {
	return e.Cause
}

// CompilationError represents a compiler failure: non-zero exit, timeout, or
// an unusable artifact. Diagnostics carries the compiler's stdout/stderr.
type CompilationError struct {
	Reason      FailureReason
	Message     string
	Diagnostics string
	Cause       error
}

func (e *CompilationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("compilation error (%s): %s: %v", e.Reason, e.Message, e.Cause)
	}
	return fmt.Sprintf("compilation error (%s): %s", e.Reason, e.Message)
}

func (e *CompilationError) Unwrap() error {
	return e.Cause
}
