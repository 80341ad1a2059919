package extraction

import "fmt"

// MinJobTextLength is the minimum posting length accepted at the batch
// boundary. Shorter texts are rejected as a validation failure rather than
// producing a near-empty keyword list.
const MinJobTextLength = 50

// ValidationError represents a rejected input at the extraction boundary.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}
