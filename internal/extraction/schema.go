package extraction

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// keywordsSchema is the JSON Schema the generative-text response must satisfy
// before it is trusted. Anything that fails here falls back to pattern
// extraction rather than erroring.
const keywordsSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {
    "type": "object",
    "properties": {
      "keyword": {"type": "string", "minLength": 1},
      "weight": {"type": "number", "minimum": 0, "maximum": 1},
      "category": {"type": "string"}
    },
    "required": ["keyword"]
  }
}`

// validateKeywordsJSON checks the raw LLM response against keywordsSchema.
func validateKeywordsJSON(jsonText string) error {
	schemaLoader := gojsonschema.NewStringLoader(keywordsSchema)
	documentLoader := gojsonschema.NewStringLoader(jsonText)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("failed to validate keyword response: %w", err)
	}

	if !result.Valid() {
		messages := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			messages = append(messages, desc.String())
		}
		return fmt.Errorf("keyword response failed schema validation: %s", strings.Join(messages, "; "))
	}

	return nil
}
